package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func validConfig(t *testing.T) Config {
	t.Helper()
	dir := t.TempDir()
	return Config{
		Port:               "4000",
		StudentsPath:       filepath.Join(dir, "students.json"),
		CredentialsPath:    filepath.Join(dir, "credentials.json"),
		RateLimitPerMinute: 60,
		ShutdownTimeout:    30 * time.Second,
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		wantErr     bool
		errorString string
	}{
		{
			name:    "valid config",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:        "invalid port - non-numeric",
			mutate:      func(c *Config) { c.Port = "abc" },
			wantErr:     true,
			errorString: "invalid port 'abc': must be a number",
		},
		{
			name:        "invalid port - out of range low",
			mutate:      func(c *Config) { c.Port = "0" },
			wantErr:     true,
			errorString: "invalid port 0: must be between 1 and 65535",
		},
		{
			name:        "invalid port - out of range high",
			mutate:      func(c *Config) { c.Port = "70000" },
			wantErr:     true,
			errorString: "invalid port 70000: must be between 1 and 65535",
		},
		{
			name:        "empty students path",
			mutate:      func(c *Config) { c.StudentsPath = "" },
			wantErr:     true,
			errorString: "students file path cannot be empty",
		},
		{
			name:        "empty credentials path",
			mutate:      func(c *Config) { c.CredentialsPath = "" },
			wantErr:     true,
			errorString: "credentials file path cannot be empty",
		},
		{
			name:        "same file for both collections",
			mutate:      func(c *Config) { c.CredentialsPath = c.StudentsPath },
			wantErr:     true,
			errorString: "must be distinct",
		},
		{
			name:        "rate limit too low",
			mutate:      func(c *Config) { c.RateLimitPerMinute = 0 },
			wantErr:     true,
			errorString: "invalid rate limit 0: must be at least 1",
		},
		{
			name:        "rate limit too high",
			mutate:      func(c *Config) { c.RateLimitPerMinute = 20000 },
			wantErr:     true,
			errorString: "invalid rate limit 20000: must be at most 10000",
		},
		{
			name:        "shutdown timeout too short",
			mutate:      func(c *Config) { c.ShutdownTimeout = 100 * time.Millisecond },
			wantErr:     true,
			errorString: "must be at least 1 second",
		},
		{
			name:        "shutdown timeout too long",
			mutate:      func(c *Config) { c.ShutdownTimeout = time.Hour },
			wantErr:     true,
			errorString: "must be at most 5 minutes",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig(t)
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error containing %q, got nil", tt.errorString)
				}
				if !strings.Contains(err.Error(), tt.errorString) {
					t.Fatalf("error %q does not contain %q", err.Error(), tt.errorString)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidateDoesNotTouchFilesystem(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "missing")
	cfg := validConfig(t)
	cfg.StudentsPath = filepath.Join(dir, "students.json")
	cfg.CredentialsPath = filepath.Join(dir, "credentials.json")

	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Fatal("Validate created the data directory")
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.Port != "4000" {
		t.Fatalf("default port = %s", cfg.Port)
	}
	if cfg.StudentsPath != "./data/students.json" {
		t.Fatalf("default students path = %s", cfg.StudentsPath)
	}
	if cfg.CredentialsPath != "./data/credentials.json" {
		t.Fatalf("default credentials path = %s", cfg.CredentialsPath)
	}
	if cfg.RateLimitPerMinute != 60 {
		t.Fatalf("default rate limit = %d", cfg.RateLimitPerMinute)
	}
	if cfg.ShutdownTimeout != 30*time.Second {
		t.Fatalf("default shutdown timeout = %v", cfg.ShutdownTimeout)
	}
}
