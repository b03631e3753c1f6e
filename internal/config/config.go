package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"tasnim.dev/ecr-mirror/internal/constants"
)

// Data sources the console can be backed by.
const (
	SourceMock = "mock"
	SourceHTTP = "http"
	SourceAWS  = "aws"
)

// Config holds settings loaded from ~/.config/ecr-mirror/config.yaml and
// ECR_MIRROR_* environment variables.
type Config struct {
	Source         string `koanf:"source"`
	APIBaseURL     string `koanf:"api_base_url"`
	APIHost        string `koanf:"api_host"`
	RequestTimeout string `koanf:"request_timeout"`
	MockLatency    bool   `koanf:"mock_latency"`
	DefaultProfile string `koanf:"default_profile"`
	DefaultRegion  string `koanf:"default_region"`
	LogFile        string `koanf:"log_file"`
	LogLevel       string `koanf:"log_level"`
}

// Default returns the built-in settings: mock data with latency, /api base path.
func Default() *Config {
	return &Config{
		Source:      SourceMock,
		APIBaseURL:  constants.DefaultAPIBaseURL,
		APIHost:     constants.DefaultAPIHost,
		MockLatency: true,
		LogLevel:    "info",
	}
}

// Path returns the default config file location.
func Path() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", constants.AppName, "config.yaml")
}

// Load reads the default config file. A missing file yields the defaults
// plus environment overrides.
func Load() (*Config, error) {
	return LoadFrom(Path())
}

// LoadFrom layers defaults, the YAML file at path (skipped if absent) and
// environment overrides, then validates the result.
func LoadFrom(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("reading %s: %w", path, err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}

	// ECR_MIRROR_API_BASE_URL -> api_base_url
	if err := k.Load(env.Provider(".", env.Opt{
		Prefix:        constants.EnvPrefix,
		TransformFunc: envKeyTransform,
	}), nil); err != nil {
		return nil, fmt.Errorf("reading environment: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func envKeyTransform(k, v string) (string, any) {
	return strings.ToLower(strings.TrimPrefix(k, constants.EnvPrefix)), v
}

// Validate rejects unknown data sources and malformed durations.
func (c *Config) Validate() error {
	switch c.Source {
	case SourceMock, SourceHTTP, SourceAWS:
	default:
		return fmt.Errorf("unknown source %q (want %s, %s or %s)", c.Source, SourceMock, SourceHTTP, SourceAWS)
	}
	if _, err := c.Timeout(); err != nil {
		return err
	}
	return nil
}

// Timeout parses RequestTimeout. Zero means requests never time out.
func (c *Config) Timeout() (time.Duration, error) {
	if c.RequestTimeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.RequestTimeout)
	if err != nil {
		return 0, fmt.Errorf("invalid request_timeout %q: %w", c.RequestTimeout, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid request_timeout %q: must not be negative", c.RequestTimeout)
	}
	return d, nil
}

// Merge applies CLI flag overrides. Flags take precedence over config defaults.
func (c *Config) Merge(profile, region string) (string, string) {
	p := c.DefaultProfile
	if profile != "" {
		p = profile
	}
	r := c.DefaultRegion
	if region != "" {
		r = region
	}
	return p, r
}

// Override applies non-empty CLI values for the data source and base URL.
func (c *Config) Override(source, apiBaseURL string) error {
	if source != "" {
		c.Source = source
	}
	if apiBaseURL != "" {
		c.APIBaseURL = apiBaseURL
	}
	return c.Validate()
}
