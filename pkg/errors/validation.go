package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// entityIDRegex matches numeric foundation entity identifiers.
var entityIDRegex = regexp.MustCompile(`^[0-9]+$`)

// ValidateEntityID validates a foundation entity identifier.
// Entity identifiers are either the literal "root" or a string of digits
// as assigned by the foundation API.
func ValidateEntityID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidEntity, "entity id cannot be empty")
	}

	if id == "root" {
		return nil
	}

	if len(id) > 32 {
		return New(ErrCodeInvalidEntity, "entity id too long (max 32 characters)")
	}

	if !entityIDRegex.MatchString(id) {
		return New(ErrCodeInvalidEntity, "entity id must be numeric or %q: %q", "root", id)
	}

	return nil
}

// languageRegex matches BCP 47-style language tags such as "en" or "zh-Hant".
var languageRegex = regexp.MustCompile(`^[a-z]{2,3}(-[A-Za-z0-9]{2,8})*$`)

// ValidateLanguage validates an API language tag.
func ValidateLanguage(lang string) error {
	if lang == "" {
		return New(ErrCodeInvalidLanguage, "language cannot be empty")
	}

	if !languageRegex.MatchString(lang) {
		return New(ErrCodeInvalidLanguage, "invalid language tag: %q", lang)
	}

	return nil
}

// ValidateSearchQuery validates a free-text search query for safety.
//
// The validation rules are intentionally conservative:
//   - No empty queries
//   - No control characters or null bytes
//   - Maximum length of 256 characters
func ValidateSearchQuery(q string) error {
	if q == "" {
		return New(ErrCodeInvalidInput, "search query cannot be empty")
	}

	if len(q) > 256 {
		return New(ErrCodeInvalidInput, "search query too long (max 256 characters)")
	}

	for _, r := range q {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "search query contains invalid control characters")
		}
	}

	return nil
}

// codeRegex matches ICD-11 codes such as "1A00" or "BA00.1" as well as
// plain numeric linearization entity ids.
var codeRegex = regexp.MustCompile(`^[0-9A-Za-z][0-9A-Za-z.&-]{0,63}$`)

// ValidateCode validates an ICD-11 code or linearization entity id.
func ValidateCode(code string) error {
	if code == "" {
		return New(ErrCodeInvalidInput, "code cannot be empty")
	}

	if !codeRegex.MatchString(code) {
		return New(ErrCodeInvalidInput, "invalid code: %q", code)
	}

	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	// Simple scheme validation without full URL parsing
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}
