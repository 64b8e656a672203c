// Package config loads henvdall settings from flags, environment variables
// and an optional config file.
package config

import (
	"fmt"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"github.com/railwayapp/henvdall/internal/envsync"
	"github.com/railwayapp/henvdall/internal/validator"
)

// EnvPrefix is prepended to every environment variable read by viper
const EnvPrefix = "HENVDALL"

// Config is the decoded configuration
type Config struct {
	Example      string       `mapstructure:"example"`
	Env          string       `mapstructure:"env"`
	Backup       string       `mapstructure:"backup"`
	Marker       string       `mapstructure:"marker"`
	Values       string       `mapstructure:"values"`
	Output       string       `mapstructure:"output"`
	Mask         bool         `mapstructure:"mask"`
	Yes          bool         `mapstructure:"yes"`
	NoColor      bool         `mapstructure:"no_color"`
	Verbose      bool         `mapstructure:"verbose"`
	Placeholders Placeholders `mapstructure:"placeholders"`
}

// Placeholders extends the built-in placeholder rules
type Placeholders struct {
	Patterns []string `mapstructure:"patterns"`
	Literals []string `mapstructure:"literals"`
}

// SetDefaults registers every key with its default so environment
// variables are picked up by Load
func SetDefaults(v *viper.Viper) {
	v.SetDefault("example", "")
	v.SetDefault("env", ".env")
	v.SetDefault("backup", "")
	v.SetDefault("marker", envsync.DefaultMarker)
	v.SetDefault("values", "")
	v.SetDefault("output", "text")
	v.SetDefault("mask", false)
	v.SetDefault("yes", false)
	v.SetDefault("no_color", false)
	v.SetDefault("verbose", false)
	v.SetDefault("placeholders.patterns", []string{})
	v.SetDefault("placeholders.literals", []string{})
}

// ConfigureEnv makes v read HENVDALL_* environment variables, with nested
// keys separated by underscores (HENVDALL_PLACEHOLDERS_LITERALS)
func ConfigureEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
}

// Load decodes v into a Config
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToSliceHookFunc(","),
	))
	if err := v.Unmarshal(&cfg, hook); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.Placeholders.Patterns = compact(cfg.Placeholders.Patterns)
	cfg.Placeholders.Literals = compact(cfg.Placeholders.Literals)
	return &cfg, nil
}

// Matcher builds the placeholder matcher for the configured rules
func (c *Config) Matcher() (*validator.Matcher, error) {
	if len(c.Placeholders.Patterns) == 0 && len(c.Placeholders.Literals) == 0 {
		return validator.DefaultMatcher(), nil
	}
	m, err := validator.NewMatcher(c.Placeholders.Patterns, c.Placeholders.Literals)
	if err != nil {
		return nil, fmt.Errorf("invalid placeholder rules: %w", err)
	}
	return m, nil
}

func compact(values []string) []string {
	out := values[:0]
	for _, value := range values {
		if value = strings.TrimSpace(value); value != "" {
			out = append(out, value)
		}
	}
	return out
}
