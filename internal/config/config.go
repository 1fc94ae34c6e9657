// Package config holds the application configuration, loaded with viper from
// defaults, an optional YAML file and SHOWCASE_* environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	appName        = "showcase"
	defaultTimeout = 15 * time.Second

	// EnvPrefix prefixes environment overrides, e.g. SHOWCASE_API_TRANSPORT.
	EnvPrefix = "SHOWCASE"
)

// Config is the root configuration.
type Config struct {
	API     APIConfig     `mapstructure:"api"`
	Prefs   PrefsConfig   `mapstructure:"prefs"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// APIConfig selects and configures the remote post source.
type APIConfig struct {
	Transport  string        `mapstructure:"transport" validate:"oneof=rest graphql"`
	BaseURL    string        `mapstructure:"base_url" validate:"required,url"`
	GraphQLURL string        `mapstructure:"graphql_url" validate:"required,url"`
	Timeout    time.Duration `mapstructure:"timeout" validate:"gt=0"`
}

// PrefsConfig selects the preference backend. An empty Path resolves to a
// backend specific file under the user config directory.
type PrefsConfig struct {
	Backend string `mapstructure:"backend" validate:"oneof=file sqlite memory"`
	Path    string `mapstructure:"path"`
}

// LoggingConfig configures the diagnostics log file.
type LoggingConfig struct {
	Level string `mapstructure:"level" validate:"oneof=trace debug info warn error"`
	File  string `mapstructure:"file" validate:"required"`
	Human bool   `mapstructure:"human"`
}

// SetDefaults registers every default value on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("api.transport", "rest")
	v.SetDefault("api.base_url", "https://jsonplaceholder.typicode.com")
	v.SetDefault("api.graphql_url", "https://graphqlzero.almansi.me/api")
	v.SetDefault("api.timeout", defaultTimeout)

	v.SetDefault("prefs.backend", "file")
	v.SetDefault("prefs.path", "")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.file", filepath.Join(cacheDir(), "showcase.log"))
	v.SetDefault("logging.human", false)
}

// ConfigureEnv enables SHOWCASE_* overrides on v.
func ConfigureEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
}

// FromViper decodes and validates the configuration held by v.
func FromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	cfg.API.Transport = strings.ToLower(strings.TrimSpace(cfg.API.Transport))
	cfg.Prefs.Backend = strings.ToLower(strings.TrimSpace(cfg.Prefs.Backend))
	cfg.Logging.Level = strings.ToLower(strings.TrimSpace(cfg.Logging.Level))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the struct tags of c.
func (c *Config) Validate() error {
	if err := validatorInstance().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// ResolvedPath returns Path, or the default location for the backend.
func (p PrefsConfig) ResolvedPath() string {
	if p.Path != "" {
		return p.Path
	}
	name := "prefs.yaml"
	if p.Backend == "sqlite" {
		name = "prefs.db"
	}
	return filepath.Join(configDir(), name)
}

func configDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, appName)
	}
	return "." + appName
}

func cacheDir() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, appName)
	}
	return "." + appName
}
