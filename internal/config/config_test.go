package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/railwayapp/henvdall/internal/config"
	"github.com/railwayapp/henvdall/internal/envsync"
)

func newViper() *viper.Viper {
	v := viper.New()
	config.SetDefaults(v)
	config.ConfigureEnv(v)
	return v
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load(newViper())
	require.NoError(t, err)

	assert.Equal(t, ".env", cfg.Env)
	assert.Equal(t, envsync.DefaultMarker, cfg.Marker)
	assert.Equal(t, "text", cfg.Output)
	assert.Empty(t, cfg.Example)
	assert.Empty(t, cfg.Placeholders.Patterns)
	assert.False(t, cfg.Verbose)
}

func TestLoad_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".henvdall.yaml")
	content := `env: config/.env
example: github://railwayapp/henvdall/tree/main
marker: "# synced"
placeholders:
  patterns:
    - dummy
  literals:
    - letmein
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	v := newViper()
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	cfg, err := config.Load(v)
	require.NoError(t, err)

	assert.Equal(t, "config/.env", cfg.Env)
	assert.Equal(t, "github://railwayapp/henvdall/tree/main", cfg.Example)
	assert.Equal(t, "# synced", cfg.Marker)
	assert.Equal(t, []string{"dummy"}, cfg.Placeholders.Patterns)
	assert.Equal(t, []string{"letmein"}, cfg.Placeholders.Literals)

	matcher, err := cfg.Matcher()
	require.NoError(t, err)
	assert.True(t, matcher.IsPlaceholder("dummy-token"))
	assert.True(t, matcher.IsPlaceholder("letmein"))
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("HENVDALL_ENV", "prod.env")
	t.Setenv("HENVDALL_VERBOSE", "true")
	t.Setenv("HENVDALL_PLACEHOLDERS_LITERALS", "letmein, hunter2,")

	cfg, err := config.Load(newViper())
	require.NoError(t, err)

	assert.Equal(t, "prod.env", cfg.Env)
	assert.True(t, cfg.Verbose)
	assert.Equal(t, []string{"letmein", "hunter2"}, cfg.Placeholders.Literals)
}

func TestConfig_MatcherInvalidPattern(t *testing.T) {
	cfg := &config.Config{Placeholders: config.Placeholders{Patterns: []string{"("}}}

	_, err := cfg.Matcher()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid placeholder rules")
}
