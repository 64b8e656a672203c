package validator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/railwayapp/henvdall/internal/validator"
)

func TestIsPlaceholder(t *testing.T) {
	placeholders := []string{
		"",
		"   ",
		"YOUR_API_KEY_HERE",
		"your key here",
		"placeholder",
		"<PLACEHOLDER>",
		"change_me",
		"changeme",
		"ChangeMe",
		"replace this",
		"TODO: fill in",
		"xxx",
		"sk-xxxxxxxx",
		"admin123",
		"password123",
		"test123",
		"secret",
	}
	for _, v := range placeholders {
		assert.True(t, validator.IsPlaceholder(v), "expected %q to be a placeholder", v)
	}

	real := []string{
		"sk-1234567890abcdef",
		"postgresql://localhost/db",
		"secret123",
		"Admin123",
		"3000",
		"xx",
	}
	for _, v := range real {
		assert.False(t, validator.IsPlaceholder(v), "expected %q to not be a placeholder", v)
	}
}

func TestMatcher_MatchIgnoresBlank(t *testing.T) {
	m := validator.DefaultMatcher()

	assert.False(t, m.Match(""))
	assert.False(t, m.Match("   "))
	assert.True(t, m.IsPlaceholder("   "))
}

func TestNewMatcher_Extends(t *testing.T) {
	m, err := validator.NewMatcher([]string{`^dummy`}, []string{"letmein"})
	require.NoError(t, err)

	assert.True(t, m.IsPlaceholder("DUMMY-token"))
	assert.True(t, m.IsPlaceholder("letmein"))
	assert.False(t, m.IsPlaceholder("LETMEIN"))

	// Built-in rules are kept
	assert.True(t, m.IsPlaceholder("admin123"))
	assert.True(t, m.IsPlaceholder("your_token_here"))

	// The default matcher is not affected
	assert.False(t, validator.IsPlaceholder("letmein"))
}

func TestNewMatcher_InvalidPattern(t *testing.T) {
	_, err := validator.NewMatcher([]string{"("}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid placeholder pattern")
}
