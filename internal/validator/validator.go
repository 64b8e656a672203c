// Package validator checks env values: placeholder detection, type hints
// embedded in comments, and validation against those hints.
package validator

import (
	"errors"
	"fmt"
	"math/big"
	"net/url"
	"regexp"
	"strings"
)

// Hint is a type annotation taken from a trailing comment, e.g. "(int)"
type Hint string

const (
	HintNone Hint = ""
	HintInt  Hint = "int"
	HintURL  Hint = "url"
)

var hintPattern = regexp.MustCompile(`\((\w+)\)`)

// Result is the outcome of validating one value. Message is set iff the
// value is invalid.
type Result struct {
	valid   bool
	message string
}

// Valid returns a passing Result
func Valid() Result {
	return Result{valid: true}
}

// Invalid returns a failing Result with the given message
func Invalid(message string) Result {
	return Result{message: message}
}

// IsValid reports whether the value passed validation
func (r Result) IsValid() bool {
	return r.valid
}

// Message returns the failure message, or "" for valid results
func (r Result) Message() string {
	return r.message
}

// ExtractHint returns the first parenthesized word in comment, lowercased
func ExtractHint(comment string) (Hint, bool) {
	if comment == "" {
		return HintNone, false
	}

	match := hintPattern.FindStringSubmatch(comment)
	if match == nil {
		return HintNone, false
	}
	return Hint(strings.ToLower(match[1])), true
}

// normalize lowercases and trims a hint
func (h Hint) normalize() Hint {
	return Hint(strings.ToLower(strings.TrimSpace(string(h))))
}

// ValidateValue validates value against hint. Unknown hints always pass.
func ValidateValue(value string, hint Hint) Result {
	switch hint.normalize() {
	case HintNone:
		return Valid()
	case HintInt:
		return ValidateInt(value)
	case HintURL:
		return ValidateURL(value)
	default:
		return Valid()
	}
}

// ValidateInt accepts base-10 integers of any size with an optional sign
func ValidateInt(value string) Result {
	if _, ok := new(big.Int).SetString(strings.TrimSpace(value), 10); ok {
		return Valid()
	}
	return Invalid(fmt.Sprintf("'%s' is not a valid integer", value))
}

var schemePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9+.-]*$`)

// ValidateURL accepts URLs that have both a scheme and an authority. Bad
// percent escapes and unusual host characters are tolerated, so a raw '%'
// in a password does not make a connection string invalid.
func ValidateURL(value string) Result {
	missing := Invalid(fmt.Sprintf("'%s' is not a valid URL (must include scheme and domain)", value))

	u, err := url.Parse(value)
	if err != nil {
		var escapeErr url.EscapeError
		var hostErr url.InvalidHostError
		if !errors.As(err, &escapeErr) && !errors.As(err, &hostErr) {
			return Invalid(fmt.Sprintf("'%s' is not a valid URL: %v", value, err))
		}
		if scheme, authority := splitAuthority(value); scheme == "" || authority == "" {
			return missing
		}
		return Valid()
	}
	if u.Scheme == "" || (u.Host == "" && u.User == nil) {
		return missing
	}
	return Valid()
}

// splitAuthority returns the scheme and the raw authority of value without
// decoding either
func splitAuthority(value string) (scheme, authority string) {
	scheme, rest, ok := strings.Cut(value, ":")
	if !ok || !schemePattern.MatchString(scheme) {
		return "", ""
	}
	rest, ok = strings.CutPrefix(rest, "//")
	if !ok {
		return scheme, ""
	}
	if i := strings.IndexAny(rest, "/?#"); i >= 0 {
		rest = rest[:i]
	}
	return scheme, rest
}
