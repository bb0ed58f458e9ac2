// Package config loads the gym client configuration from a YAML file with
// environment overrides. A missing file is fine: the client runs on defaults.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
	Session SessionConfig `yaml:"session"`
}

type ServerConfig struct {
	URL    string `yaml:"url"`
	APIKey string `yaml:"api_key"`
}

type StorageConfig struct {
	Path string `yaml:"path"`
}

type SessionConfig struct {
	DefaultRestSeconds int  `yaml:"default_rest_seconds"`
	RestCountdown      bool `yaml:"rest_countdown"`
	Sound              bool `yaml:"sound"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	home, _ := os.UserHomeDir()
	return &Config{
		Server: ServerConfig{
			URL: "http://localhost:8080",
		},
		Storage: StorageConfig{
			Path: filepath.Join(home, ".gym", "gym.db"),
		},
		Session: SessionConfig{
			DefaultRestSeconds: 120,
			RestCountdown:      true,
			Sound:              true,
		},
	}
}

// Load reads config from a YAML file, then applies environment variable
// overrides with the GYM_ prefix:
//
//	GYM_SERVER_URL, GYM_SERVER_API_KEY, GYM_STORAGE_PATH,
//	GYM_DEFAULT_REST_SECONDS, GYM_SOUND
//
// A missing file yields defaults; any other read or parse error is returned.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		// fall through to env overrides
	case err != nil:
		return nil, fmt.Errorf("reading config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("GYM_SERVER_URL"); v != "" {
		cfg.Server.URL = v
	}
	if v := os.Getenv("GYM_SERVER_API_KEY"); v != "" {
		cfg.Server.APIKey = v
	}
	if v := os.Getenv("GYM_STORAGE_PATH"); v != "" {
		cfg.Storage.Path = v
	}
	if v := os.Getenv("GYM_DEFAULT_REST_SECONDS"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil {
			cfg.Session.DefaultRestSeconds = secs
		}
	}
	if v := os.Getenv("GYM_SOUND"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Session.Sound = b
		}
	}
}

func (c *Config) validate() error {
	if c.Server.URL == "" {
		return fmt.Errorf("server.url is required")
	}
	if c.Storage.Path == "" {
		return fmt.Errorf("storage.path is required")
	}
	if c.Session.DefaultRestSeconds < 0 {
		return fmt.Errorf("session.default_rest_seconds must not be negative")
	}
	return nil
}

// DefaultPath is the config file location used when none is specified.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "gym.yaml"
	}
	return filepath.Join(home, ".gym", "config.yaml")
}
