// Package config resolves the process configuration once at startup.
// Sources, highest first: flags bound by the caller, USERPROFILES_* environment
// variables, a .env file, the YAML config file, built-in defaults.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	apperrors "github.com/reglet-dev/userprofiles/internal/application/errors"
)

// EnvPrefix is the prefix of the environment variables read by Load.
const EnvPrefix = "USERPROFILES"

// ModeDevelopment pins the API endpoint to the local backend.
const ModeDevelopment = "development"

// DefaultEndpoint is used in development mode and whenever no endpoint is set.
const DefaultEndpoint = "http://localhost:3000/api"

// Config is the resolved configuration.
type Config struct {
	Mode   string       `mapstructure:"mode"`
	API    APIConfig    `mapstructure:"api"`
	Server ServerConfig `mapstructure:"server"`
	Audit  AuditConfig  `mapstructure:"audit"`
}

// APIConfig configures the users API client.
type APIConfig struct {
	Endpoint          string        `mapstructure:"endpoint"`
	VersionConstraint string        `mapstructure:"version_constraint"`
	Timeout           time.Duration `mapstructure:"timeout"`
}

// ServerConfig configures the demo backend.
type ServerConfig struct {
	Addr           string   `mapstructure:"addr"`
	BasePath       string   `mapstructure:"base_path"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	// RateLimit is in requests per second; 0 disables limiting.
	RateLimit float64 `mapstructure:"rate_limit"`
	Burst     int     `mapstructure:"burst"`
}

// AuditConfig toggles the audit headers sent by the client.
type AuditConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// SetDefaults registers every key with its default so that environment
// variables are picked up by Unmarshal.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("mode", "production")
	v.SetDefault("api.endpoint", "")
	v.SetDefault("api.timeout", 10*time.Second)
	v.SetDefault("api.version_constraint", ">= 1.0.0, < 2.0.0")
	v.SetDefault("audit.enabled", false)
	v.SetDefault("server.addr", ":3000")
	v.SetDefault("server.base_path", "/api")
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("server.rate_limit", 0.0)
	v.SetDefault("server.burst", 20)
}

// BindEnv makes v read USERPROFILES_API_ENDPOINT and friends.
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// LoadDotEnv loads variables from the given .env files into the process
// environment without overriding variables that are already set. Missing
// files are ignored.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return apperrors.NewConfigurationError("dotenv", "failed to load "+p, err)
		}
	}
	return nil
}

// Load unmarshals v into a validated Config.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, apperrors.NewConfigurationError("config", "failed to decode configuration", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the configuration with every default applied.
func Default() *Config {
	v := viper.New()
	SetDefaults(v)
	cfg, err := Load(v)
	if err != nil {
		panic(err)
	}
	return cfg
}

// IsDevelopment reports whether the development mode is active.
func (c *Config) IsDevelopment() bool {
	return c.Mode == ModeDevelopment
}

// ResolveEndpoint returns the API base URL: the local backend in development
// mode, otherwise the configured endpoint or the same local fallback.
func (c *Config) ResolveEndpoint() string {
	if c.IsDevelopment() {
		return DefaultEndpoint
	}
	if ep := strings.TrimSpace(c.API.Endpoint); ep != "" {
		return ep
	}
	return DefaultEndpoint
}

// Validate checks the values that would otherwise fail later and less clearly.
func (c *Config) Validate() error {
	var errs []error

	if ep := strings.TrimSpace(c.API.Endpoint); ep != "" {
		u, err := url.Parse(ep)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			errs = append(errs, fmt.Errorf("api.endpoint %q must be an absolute http(s) URL", ep))
		}
	}
	if c.API.Timeout < 0 {
		errs = append(errs, fmt.Errorf("api.timeout must not be negative"))
	}
	if c.API.VersionConstraint != "" {
		if _, err := semver.NewConstraint(c.API.VersionConstraint); err != nil {
			errs = append(errs, fmt.Errorf("api.version_constraint: %w", err))
		}
	}
	if !strings.HasPrefix(c.Server.BasePath, "/") {
		errs = append(errs, fmt.Errorf("server.base_path %q must start with /", c.Server.BasePath))
	}
	if c.Server.RateLimit < 0 {
		errs = append(errs, fmt.Errorf("server.rate_limit must not be negative"))
	}
	if c.Server.RateLimit > 0 && c.Server.Burst < 1 {
		errs = append(errs, fmt.Errorf("server.burst must be at least 1 when rate limiting"))
	}

	if len(errs) > 0 {
		return apperrors.NewConfigurationError("config", "invalid configuration", errors.Join(errs...))
	}
	return nil
}
