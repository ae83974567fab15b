package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"
)

// Config holds explorer configuration.
type Config struct {
	ListenAddr        string
	APIBaseURL        string
	SiteBaseURL       string
	DemoAPIKey        string
	Timeout           time.Duration
	UserAgent         string
	MetadataCacheSize int
	PreviewRows       int
	Verbose           bool
}

// DefaultConfig returns defaults aimed at the public BLS endpoints.
func DefaultConfig() *Config {
	return &Config{
		ListenAddr:        ":8080",
		APIBaseURL:        "https://api.bls.gov/publicAPI/v2",
		SiteBaseURL:       "https://www.bls.gov",
		DemoAPIKey:        "",
		Timeout:           30 * time.Second,
		UserAgent:         "bls-explorer/1.0 (+https://www.bls.gov/developers/)",
		MetadataCacheSize: 64,
		PreviewRows:       10,
		Verbose:           false,
	}
}

// Validate ensures all configuration values are coherent.
func (c *Config) Validate() error {
	if c.ListenAddr == "" {
		return fmt.Errorf("listen address cannot be empty")
	}
	if err := validateURL("API base URL", c.APIBaseURL); err != nil {
		return err
	}
	if err := validateURL("site base URL", c.SiteBaseURL); err != nil {
		return err
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.UserAgent == "" {
		return fmt.Errorf("user agent cannot be empty")
	}
	if c.MetadataCacheSize <= 0 {
		return fmt.Errorf("metadata cache size must be positive")
	}
	if c.PreviewRows <= 0 {
		return fmt.Errorf("preview rows must be positive")
	}
	return nil
}

func validateURL(name, raw string) error {
	parsed, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", name, err)
	}
	if parsed.Host == "" {
		return fmt.Errorf("%s must include a host", name)
	}
	return nil
}

// EnvString reads a string environment override.
func EnvString(key string) (string, bool) {
	value, ok := os.LookupEnv(key)
	return value, ok
}

// EnvInt reads an integer environment override.
func EnvInt(key string) (int, bool, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return 0, false, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false, fmt.Errorf("%s: %w", key, err)
	}
	return value, true, nil
}
