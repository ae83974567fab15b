package config

import (
	"strings"
	"testing"
	"time"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name: "empty listen addr",
			mutate: func(cfg *Config) {
				cfg.ListenAddr = ""
			},
			wantErr: "listen address",
		},
		{
			name: "invalid api base url",
			mutate: func(cfg *Config) {
				cfg.APIBaseURL = "http://"
			},
			wantErr: "API base URL",
		},
		{
			name: "invalid site base url",
			mutate: func(cfg *Config) {
				cfg.SiteBaseURL = "http://"
			},
			wantErr: "site base URL",
		},
		{
			name: "negative timeout",
			mutate: func(cfg *Config) {
				cfg.Timeout = -1 * time.Second
			},
			wantErr: "timeout",
		},
		{
			name: "empty user agent",
			mutate: func(cfg *Config) {
				cfg.UserAgent = ""
			},
			wantErr: "user agent",
		},
		{
			name: "zero metadata cache",
			mutate: func(cfg *Config) {
				cfg.MetadataCacheSize = 0
			},
			wantErr: "metadata cache",
		},
		{
			name: "zero preview rows",
			mutate: func(cfg *Config) {
				cfg.PreviewRows = 0
			},
			wantErr: "preview rows",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestDefaultConfigValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate, got %v", err)
	}
}

func TestEnvInt(t *testing.T) {
	t.Setenv("EXPLORER_TEST_INT", "12")
	value, ok, err := EnvInt("EXPLORER_TEST_INT")
	if err != nil || !ok || value != 12 {
		t.Fatalf("EnvInt = (%d, %v, %v), want (12, true, nil)", value, ok, err)
	}

	t.Setenv("EXPLORER_TEST_INT", "not-a-number")
	if _, _, err := EnvInt("EXPLORER_TEST_INT"); err == nil {
		t.Fatalf("expected parse error for non-numeric value")
	}

	if _, ok, _ := EnvInt("EXPLORER_TEST_INT_ABSENT"); ok {
		t.Fatalf("absent variable should report ok=false")
	}
}
