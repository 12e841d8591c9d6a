package icd

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/polynav/polynav/pkg/errors"
)

// tokenURL is the WHO access management token endpoint. Only the official
// server requires a token; local deployments accept anonymous requests.
const tokenURL = "https://icdaccessmanagement.who.int/connect/token"

// refreshMargin is how long before expiry a token is considered stale.
const refreshMargin = 60 * time.Second

// TokenManager acquires and refreshes OAuth2 client-credential tokens for
// the official WHO API. It caches the current token and refreshes shortly
// before expiry.
//
// All methods are safe for concurrent use.
type TokenManager struct {
	clientID     string
	clientSecret string
	httpClient   *http.Client
	endpointURL  string // overrides tokenURL in tests

	mu        sync.Mutex
	token     string
	expiresAt time.Time
}

// NewTokenManager creates a TokenManager with the given credentials.
func NewTokenManager(clientID, clientSecret string) *TokenManager {
	return &TokenManager{
		clientID:     clientID,
		clientSecret: clientSecret,
		httpClient:   &http.Client{Timeout: 30 * time.Second},
	}
}

// IsConfigured reports whether both credentials are present.
func (m *TokenManager) IsConfigured() bool {
	return m.clientID != "" && m.clientSecret != ""
}

// Token returns a valid access token, requesting a fresh one if the cached
// token is missing or within refreshMargin of expiry.
func (m *TokenManager) Token(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.token != "" && time.Now().Before(m.expiresAt.Add(-refreshMargin)) {
		return m.token, nil
	}

	if !m.IsConfigured() {
		return "", errors.New(errors.ErrCodeUnauthorized,
			"ICD_CLIENT_ID and ICD_CLIENT_SECRET must be set for the official server")
	}

	token, expiresIn, err := m.request(ctx)
	if err != nil {
		return "", err
	}

	m.token = token
	m.expiresAt = time.Now().Add(time.Duration(expiresIn) * time.Second)
	return m.token, nil
}

func (m *TokenManager) request(ctx context.Context) (token string, expiresIn int, err error) {
	form := url.Values{
		"client_id":     {m.clientID},
		"client_secret": {m.clientSecret},
		"grant_type":    {"client_credentials"},
		"scope":         {"icdapi_access"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.endpoint(), strings.NewReader(form.Encode()))
	if err != nil {
		return "", 0, fmt.Errorf("create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return "", 0, errors.Wrap(errors.ErrCodeNetwork, err, "token request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", 0, errors.New(errors.ErrCodeUnauthorized, "token endpoint returned status %d", resp.StatusCode)
	}

	var result struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", 0, errors.Wrap(errors.ErrCodeNetwork, err, "decode token response")
	}
	if result.AccessToken == "" {
		return "", 0, errors.New(errors.ErrCodeUnauthorized, "token endpoint returned no access token")
	}

	if result.ExpiresIn <= 0 {
		result.ExpiresIn = 3600
	}
	return result.AccessToken, result.ExpiresIn, nil
}

func (m *TokenManager) endpoint() string {
	if m.endpointURL != "" {
		return m.endpointURL
	}
	return tokenURL
}
