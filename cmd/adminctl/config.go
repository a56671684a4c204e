package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the adminctl YAML configuration. Every field has a default so an
// absent file still yields a working local setup.
type Config struct {
	APIBaseURL      string `yaml:"api_base_url"`
	ListenAddr      string `yaml:"listen_addr"`
	BasePath        string `yaml:"base_path"`
	Title           string `yaml:"title"`
	Locale          string `yaml:"locale"`
	RefreshInterval string `yaml:"refresh_interval"`
	FetchTimeout    string `yaml:"fetch_timeout"`
	TokenPath       string `yaml:"token_path"`
	Activity        struct {
		Enabled bool `yaml:"enabled"`
	} `yaml:"activity"`
}

func loadConfig(path string) (Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return cfg, fmt.Errorf("adminctl: read config %s: %w", path, err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("adminctl: parse config %s: %w", path, err)
		}
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.APIBaseURL == "" {
		c.APIBaseURL = "http://localhost:5000"
	}
	if c.ListenAddr == "" {
		c.ListenAddr = ":8089"
	}
	if c.BasePath == "" {
		c.BasePath = "/admin"
	}
	if c.Locale == "" {
		c.Locale = "en"
	}
	if c.RefreshInterval == "" {
		c.RefreshInterval = "30s"
	}
	if c.FetchTimeout == "" {
		c.FetchTimeout = "10s"
	}
	if c.TokenPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		c.TokenPath = filepath.Join(home, ".adminconsole", "token")
	}
}

func (c Config) refreshInterval() (time.Duration, error) {
	d, err := time.ParseDuration(c.RefreshInterval)
	if err != nil {
		return 0, fmt.Errorf("adminctl: invalid refresh_interval %q: %w", c.RefreshInterval, err)
	}
	return d, nil
}

func (c Config) fetchTimeout() (time.Duration, error) {
	d, err := time.ParseDuration(c.FetchTimeout)
	if err != nil {
		return 0, fmt.Errorf("adminctl: invalid fetch_timeout %q: %w", c.FetchTimeout, err)
	}
	return d, nil
}
