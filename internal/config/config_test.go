package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	yaml := `
opencollective:
  account_slug: twohoursonelife
  api_key: test-key
  timeout: 10s
discord:
  webhook_url: https://discord.com/api/webhooks/123/abc
database:
  host: localhost
  port: 5432
  name: financials
  user: syncer
  password: testpass
sync:
  lookback: 48h
`
	path := writeTempFile(t, yaml)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.OpenCollective.AccountSlug != "twohoursonelife" {
		t.Errorf("OpenCollective.AccountSlug = %q, want %q", cfg.OpenCollective.AccountSlug, "twohoursonelife")
	}
	if cfg.OpenCollective.APIKey != "test-key" {
		t.Errorf("OpenCollective.APIKey = %q, want %q", cfg.OpenCollective.APIKey, "test-key")
	}
	if cfg.OpenCollective.Timeout.Std() != 10*time.Second {
		t.Errorf("OpenCollective.Timeout = %v, want %v", cfg.OpenCollective.Timeout.Std(), 10*time.Second)
	}
	if cfg.Discord.WebhookURL != "https://discord.com/api/webhooks/123/abc" {
		t.Errorf("Discord.WebhookURL = %q, want %q", cfg.Discord.WebhookURL, "https://discord.com/api/webhooks/123/abc")
	}
	if cfg.Database.Host != "localhost" {
		t.Errorf("Database.Host = %q, want %q", cfg.Database.Host, "localhost")
	}
	if cfg.Sync.Lookback.Std() != 48*time.Hour {
		t.Errorf("Sync.Lookback = %v, want %v", cfg.Sync.Lookback.Std(), 48*time.Hour)
	}
}

func TestLoadWithEnvSubstitution(t *testing.T) {
	t.Setenv("TEST_OC_API_KEY", "secret123")
	t.Setenv("TEST_DB_PASSWORD", "dbsecret")

	yaml := `
opencollective:
  api_key: ${TEST_OC_API_KEY}
database:
  host: localhost
  name: financials
  user: syncer
  password: ${TEST_DB_PASSWORD}
`
	path := writeTempFile(t, yaml)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.OpenCollective.APIKey != "secret123" {
		t.Errorf("OpenCollective.APIKey = %q, want %q", cfg.OpenCollective.APIKey, "secret123")
	}
	if cfg.Database.Password != "dbsecret" {
		t.Errorf("Database.Password = %q, want %q", cfg.Database.Password, "dbsecret")
	}
}

func TestLoadWithDefaults(t *testing.T) {
	yaml := `
discord:
  webhook_url: https://discord.com/api/webhooks/123/abc
database:
  host: localhost
  name: financials
  user: syncer
  password: testpass
`
	path := writeTempFile(t, yaml)

	cfg, err := LoadWithDefaults(path)
	if err != nil {
		t.Fatalf("LoadWithDefaults failed: %v", err)
	}

	// Check defaults were applied
	if cfg.OpenCollective.Endpoint != DefaultEndpoint {
		t.Errorf("OpenCollective.Endpoint = %q, want default %q", cfg.OpenCollective.Endpoint, DefaultEndpoint)
	}
	if cfg.OpenCollective.AccountSlug != DefaultAccountSlug {
		t.Errorf("OpenCollective.AccountSlug = %q, want default %q", cfg.OpenCollective.AccountSlug, DefaultAccountSlug)
	}
	if cfg.OpenCollective.Timeout.Std() != DefaultAPITimeout {
		t.Errorf("OpenCollective.Timeout = %v, want default %v", cfg.OpenCollective.Timeout.Std(), DefaultAPITimeout)
	}
	if cfg.Discord.Username != DefaultUsername {
		t.Errorf("Discord.Username = %q, want default %q", cfg.Discord.Username, DefaultUsername)
	}
	if cfg.Database.Port != DefaultDBPort {
		t.Errorf("Database.Port = %d, want default %d", cfg.Database.Port, DefaultDBPort)
	}
	if cfg.Database.MaxConns != DefaultMaxConns {
		t.Errorf("Database.MaxConns = %d, want default %d", cfg.Database.MaxConns, DefaultMaxConns)
	}
	if cfg.Sync.Lookback.Std() != DefaultLookback {
		t.Errorf("Sync.Lookback = %v, want default %v", cfg.Sync.Lookback.Std(), DefaultLookback)
	}
}

func TestLoadBadDuration(t *testing.T) {
	yaml := `
sync:
  lookback: soon
`
	path := writeTempFile(t, yaml)

	if _, err := Load(path); err == nil {
		t.Error("Load expected error for invalid duration, got nil")
	}
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			OpenCollective: OpenCollectiveConfig{
				Endpoint:    DefaultEndpoint,
				AccountSlug: "twohoursonelife",
				PageLimit:   1000,
				MaxRetries:  3,
			},
			Discord: DiscordConfig{WebhookURL: "https://discord.com/api/webhooks/123/abc"},
			Database: DBConfig{
				Host: "localhost", Port: 5432, Name: "financials",
				User: "syncer", Password: "pass", MaxConns: 4, MinConns: 1,
			},
			Sync: SyncConfig{Lookback: Duration(200 * time.Hour)},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "valid config",
			mutate:  func(c *Config) {},
			wantErr: "",
		},
		{
			name:    "missing account slug",
			mutate:  func(c *Config) { c.OpenCollective.AccountSlug = "" },
			wantErr: "opencollective.account_slug is required",
		},
		{
			name:    "page limit too large",
			mutate:  func(c *Config) { c.OpenCollective.PageLimit = 5000 },
			wantErr: "opencollective.page_limit must be between 1 and 1000, got 5000",
		},
		{
			name:    "missing webhook url",
			mutate:  func(c *Config) { c.Discord.WebhookURL = "" },
			wantErr: "discord.webhook_url is required",
		},
		{
			name:    "missing database host",
			mutate:  func(c *Config) { c.Database.Host = "" },
			wantErr: "database.host is required",
		},
		{
			name:    "missing database password",
			mutate:  func(c *Config) { c.Database.Password = "" },
			wantErr: "database.password is required",
		},
		{
			name:    "min_conns exceeds max_conns",
			mutate:  func(c *Config) { c.Database.MinConns = 10; c.Database.MaxConns = 5 },
			wantErr: "database.min_conns (10) cannot exceed max_conns (5)",
		},
		{
			name:    "zero lookback",
			mutate:  func(c *Config) { c.Sync.Lookback = 0 },
			wantErr: "sync.lookback must be a positive duration",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
			} else {
				if err == nil {
					t.Errorf("Validate() expected error containing %q, got nil", tt.wantErr)
				} else if err.Error() != tt.wantErr {
					t.Errorf("Validate() error = %q, want %q", err.Error(), tt.wantErr)
				}
			}
		})
	}
}

func writeTempFile(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return path
}
