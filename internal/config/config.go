package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Environment variables that override file values.
const (
	EnvConfig   = "TASKDECK_CONFIG"
	EnvBaseURL  = "TASKDECK_BASE_URL"
	EnvLogLevel = "TASKDECK_LOG_LEVEL"
)

const appName = "taskdeck"

type Config struct {
	API     APIConfig     `toml:"api" yaml:"api"`
	Logging LoggingConfig `toml:"logging" yaml:"logging"`
}

type APIConfig struct {
	BaseURL        string `toml:"base_url" yaml:"base_url"`
	Token          string `toml:"token" yaml:"token"`
	RequestTimeout string `toml:"request_timeout" yaml:"request_timeout"` // Go duration, e.g. "15s"
	PageSize       int    `toml:"page_size" yaml:"page_size"`
}

type LoggingConfig struct {
	Level string `toml:"level" yaml:"level"` // debug | info | warn | error
	File  string `toml:"file" yaml:"file"`
}

func Default() Config {
	return Config{
		API: APIConfig{
			BaseURL:        "https://yougile.com",
			RequestTimeout: "15s",
			PageSize:       1000,
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  DefaultLogPath(),
		},
	}
}

// Load reads path over defaults. A missing or empty file yields the defaults.
// The format follows the extension: .yaml/.yml for YAML, anything else TOML.
func Load(path string, defaults Config) (Config, error) {
	cfg := defaults
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if len(content) == 0 {
		return cfg, nil
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(content, &cfg); err != nil {
			return Config{}, fmt.Errorf("decode yaml: %w", err)
		}
	default:
		if err := toml.Unmarshal(content, &cfg); err != nil {
			return Config{}, fmt.Errorf("decode toml: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields from the environment.
func (c *Config) ApplyEnv() {
	if v := strings.TrimSpace(os.Getenv(EnvBaseURL)); v != "" {
		c.API.BaseURL = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		c.Logging.Level = v
	}
}

func (c Config) Validate() error {
	u, err := url.Parse(strings.TrimSpace(c.API.BaseURL))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("api.base_url must be an absolute URL, got %q", c.API.BaseURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("api.base_url must use http or https, got %q", u.Scheme)
	}

	d, err := time.ParseDuration(c.API.RequestTimeout)
	if err != nil {
		return fmt.Errorf("api.request_timeout: %w", err)
	}
	if d <= 0 {
		return errors.New("api.request_timeout must be positive")
	}

	if c.API.PageSize < 1 || c.API.PageSize > 1000 {
		return fmt.Errorf("api.page_size must be between 1 and 1000, got %d", c.API.PageSize)
	}

	if _, err := log.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	return nil
}

// Timeout returns the per-request timeout, 0 when it does not parse.
func (c Config) Timeout() time.Duration {
	d, err := time.ParseDuration(c.API.RequestTimeout)
	if err != nil {
		return 0
	}
	return d
}

// DefaultPath returns the config file location: $TASKDECK_CONFIG, or
// config.toml under the user config directory.
func DefaultPath() string {
	if p := strings.TrimSpace(os.Getenv(EnvConfig)); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".", appName+".toml")
	}
	return filepath.Join(dir, appName, "config.toml")
}

// DefaultLogPath returns taskdeck.log under the user cache directory.
func DefaultLogPath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, appName, appName+".log")
}

// EnsureDir creates the parent directory of path.
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory %s: %w", dir, err)
	}
	return nil
}
