package validator

import (
	"fmt"
	"regexp"
	"strings"
)

// DefaultPatterns are searched anywhere in a value, case-insensitively
var DefaultPatterns = []string{
	`your[_\s].*here`,
	`placeholder`,
	`change[_\s]?me`,
	`replace[_\s]?this`,
	`todo`,
	`xxx+`,
}

// DefaultLiterals are values that are placeholders when they make up the whole value
var DefaultLiterals = []string{
	"admin123",
	"password123",
	"test123",
	"secret",
	"changeme",
}

// Matcher decides whether a value looks like an unfilled template default
type Matcher struct {
	patterns []*regexp.Regexp
	literals map[string]struct{}
}

var defaultMatcher = mustMatcher(nil, nil)

// DefaultMatcher returns the built-in rule set
func DefaultMatcher() *Matcher {
	return defaultMatcher
}

// NewMatcher returns the built-in rules extended with extra case-insensitive
// patterns and exact literals.
func NewMatcher(extraPatterns, extraLiterals []string) (*Matcher, error) {
	m := &Matcher{literals: make(map[string]struct{})}

	patterns := append(append([]string(nil), DefaultPatterns...), extraPatterns...)
	for _, pattern := range patterns {
		re, err := regexp.Compile("(?i)" + pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid placeholder pattern %q: %w", pattern, err)
		}
		m.patterns = append(m.patterns, re)
	}

	for _, literal := range DefaultLiterals {
		m.literals[literal] = struct{}{}
	}
	for _, literal := range extraLiterals {
		m.literals[literal] = struct{}{}
	}

	return m, nil
}

func mustMatcher(extraPatterns, extraLiterals []string) *Matcher {
	m, err := NewMatcher(extraPatterns, extraLiterals)
	if err != nil {
		panic(err)
	}
	return m
}

// IsPlaceholder reports whether value is blank or matches a placeholder rule
func (m *Matcher) IsPlaceholder(value string) bool {
	if strings.TrimSpace(value) == "" {
		return true
	}
	return m.Match(value)
}

// Match reports whether any pattern or literal matches value. Blank values
// are not matched here.
func (m *Matcher) Match(value string) bool {
	if _, ok := m.literals[value]; ok {
		return true
	}
	for _, re := range m.patterns {
		if re.MatchString(value) {
			return true
		}
	}
	return false
}

// IsPlaceholder reports whether value looks like a placeholder under the built-in rules
func IsPlaceholder(value string) bool {
	return defaultMatcher.IsPlaceholder(value)
}
