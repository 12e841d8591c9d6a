package icd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/singleflight"

	"github.com/polynav/polynav/pkg/config"
	"github.com/polynav/polynav/pkg/errors"
	"github.com/polynav/polynav/pkg/httputil"
	"github.com/polynav/polynav/pkg/store"
)

const httpTimeout = 30 * time.Second

// Client fetches Foundation entities from the configured ICD-11 server.
//
// Entity lookups are read-through cached in the store and coalesced with
// singleflight, so N concurrent requests for the same concept cost one
// upstream call. All methods are safe for concurrent use.
type Client struct {
	http     *http.Client
	cfg      config.Config
	store    store.Store
	searches *httputil.Cache
	tokens   *TokenManager
	group    singleflight.Group
	logger   *log.Logger
}

// NewClient creates a Client for the server selected by cfg. The store is
// used as a read-through entity cache; pass a memory store to disable
// persistence. A non-nil cache is used for search responses, keyed by
// request URL and language. When the official server is selected, OAuth
// credentials are read from the environment.
func NewClient(cfg config.Config, st store.Store, cache *httputil.Cache, logger *log.Logger) *Client {
	if logger == nil {
		logger = log.Default()
	}
	var searches *httputil.Cache
	if cache != nil {
		searches = cache.Namespace("search:")
	}
	var tokens *TokenManager
	if cfg.IsOfficial() {
		id, secret := config.Credentials()
		tokens = NewTokenManager(id, secret)
	}
	return &Client{
		http:     &http.Client{Timeout: httpTimeout},
		cfg:      cfg,
		store:    st,
		searches: searches,
		tokens:   tokens,
		logger:   logger,
	}
}

// Entity fetches the Foundation entity with the given concept id. The id
// "root" addresses the hierarchy root. Cached records are served from the
// store; a miss goes upstream once regardless of concurrent callers.
func (c *Client) Entity(ctx context.Context, id string) (*Entity, error) {
	if err := errors.ValidateEntityID(id); err != nil {
		return nil, err
	}

	if c.store != nil {
		if data, ok, err := c.store.GetEntity(ctx, id); err == nil && ok {
			var e Entity
			if err := json.Unmarshal(data, &e); err == nil {
				return &e, nil
			}
			// Corrupt cache entry, fall through to a fresh fetch.
			c.logger.Warn("discarding unreadable cached entity", "id", id)
		}
	}

	v, err, _ := c.group.Do("entity:"+id, func() (any, error) {
		return c.fetchEntity(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	return v.(*Entity), nil
}

// EntityByURI fetches an entity by its full Foundation URI. Canonical
// id.who.int URIs are rewritten to the configured server so local
// deployments resolve their own entities.
func (c *Client) EntityByURI(ctx context.Context, uri string) (*Entity, error) {
	if err := errors.ValidateURL(uri); err != nil {
		return nil, err
	}
	return c.Entity(ctx, ExtractID(uri))
}

func (c *Client) fetchEntity(ctx context.Context, id string) (*Entity, error) {
	var e Entity
	err := httputil.RetryWithBackoff(ctx, func() error {
		return c.get(ctx, c.entityURL(id), &e)
	})
	if err != nil {
		return nil, err
	}

	if c.store != nil {
		if data, merr := json.Marshal(&e); merr == nil {
			if perr := c.store.PutEntity(ctx, id, data); perr != nil {
				c.logger.Warn("failed to cache entity", "id", id, "err", perr)
			}
		}
	}
	return &e, nil
}

// SearchHit is one match from a Foundation search.
type SearchHit struct {
	ID    string  `json:"id"`
	Title string  `json:"title"`
	Score float64 `json:"score"`
}

// Search runs a free-text search against the Foundation and returns the
// matching entities ordered by relevance. Responses are cached when the
// client was built with a cache, keyed by the full request URL plus the
// configured language (the language travels as a header, not in the URL).
func (c *Client) Search(ctx context.Context, query string) ([]SearchHit, error) {
	if err := errors.ValidateSearchQuery(query); err != nil {
		return nil, err
	}

	searchURL := fmt.Sprintf("%s/icd/entity/search?q=%s", c.cfg.ServerURL(), url.QueryEscape(query))
	cacheKey := c.cfg.API.Language + " " + searchURL
	if c.searches != nil {
		var hits []SearchHit
		if ok, err := c.searches.Get(cacheKey, &hits); err == nil && ok {
			return hits, nil
		}
	}

	var raw struct {
		DestinationEntities []struct {
			ID    string  `json:"id"`
			Title string  `json:"title"`
			Score float64 `json:"score"`
		} `json:"destinationEntities"`
	}
	err := httputil.RetryWithBackoff(ctx, func() error {
		return c.get(ctx, searchURL, &raw)
	})
	if err != nil {
		return nil, err
	}

	hits := make([]SearchHit, 0, len(raw.DestinationEntities))
	for _, e := range raw.DestinationEntities {
		hits = append(hits, SearchHit{
			ID:    ExtractID(e.ID),
			Title: stripSearchMarkup(e.Title),
			Score: e.Score,
		})
	}

	if c.searches != nil {
		if err := c.searches.Set(cacheKey, hits); err != nil {
			c.logger.Warn("failed to cache search response", "err", err)
		}
	}
	return hits, nil
}

// MMSEntity fetches an entity from the MMS linearization of the configured
// release, addressed by linearization entity id or ICD-11 code. The
// response is passed through undecoded; the linearization schema varies by
// entity kind.
func (c *Client) MMSEntity(ctx context.Context, id string) (json.RawMessage, error) {
	if err := errors.ValidateCode(id); err != nil {
		return nil, err
	}
	u := fmt.Sprintf("%s/icd/release/11/%s/mms/%s",
		c.cfg.ServerURL(), c.cfg.API.Release, url.PathEscape(id))
	return c.getRaw(ctx, u)
}

// CodeInfo looks up an ICD-11 code (such as "1A00") in the MMS
// linearization of the configured release.
func (c *Client) CodeInfo(ctx context.Context, code string) (json.RawMessage, error) {
	if err := errors.ValidateCode(code); err != nil {
		return nil, err
	}
	u := fmt.Sprintf("%s/icd/release/11/%s/mms/codeinfo/%s",
		c.cfg.ServerURL(), c.cfg.API.Release, url.PathEscape(code))
	return c.getRaw(ctx, u)
}

func (c *Client) getRaw(ctx context.Context, rawURL string) (json.RawMessage, error) {
	var msg json.RawMessage
	err := httputil.RetryWithBackoff(ctx, func() error {
		return c.get(ctx, rawURL, &msg)
	})
	if err != nil {
		return nil, err
	}
	return msg, nil
}

// entityURL builds the fetch URL for a concept id. The root is addressed
// by the bare entity path.
func (c *Client) entityURL(id string) string {
	if id == "root" {
		return c.cfg.ServerURL() + "/icd/entity"
	}
	return c.cfg.ServerURL() + "/icd/entity/" + id
}

func (c *Client) get(ctx context.Context, rawURL string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("API-Version", c.cfg.API.Version)
	req.Header.Set("Accept-Language", c.cfg.API.Language)

	if c.tokens != nil {
		token, err := c.tokens.Token(ctx)
		if err != nil {
			return err
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &httputil.RetryableError{Err: errors.Wrap(errors.ErrCodeNetwork, err, "GET %s", rawURL)}
	}
	defer resp.Body.Close()

	if err := checkStatus(resp.StatusCode); err != nil {
		io.Copy(io.Discard, resp.Body)
		return err
	}
	return json.NewDecoder(resp.Body).Decode(v)
}

func checkStatus(code int) error {
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusNotFound:
		return errors.New(errors.ErrCodeEntityNotFound, "entity not found")
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return errors.New(errors.ErrCodeUnauthorized, "server rejected credentials (status %d)", code)
	case code == http.StatusTooManyRequests:
		return &httputil.RetryableError{Err: &errors.RateLimitedError{}}
	case code >= 500:
		return &httputil.RetryableError{Err: errors.New(errors.ErrCodeNetwork, "server error (status %d)", code)}
	default:
		return errors.New(errors.ErrCodeNetwork, "unexpected status %d", code)
	}
}

// stripSearchMarkup removes the <em> highlight tags the search endpoint
// embeds in matched titles.
func stripSearchMarkup(s string) string {
	s = strings.ReplaceAll(s, "<em class='found'>", "")
	s = strings.ReplaceAll(s, "</em>", "")
	return s
}
