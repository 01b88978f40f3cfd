package config

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration for a syncer run.
type Config struct {
	OpenCollective OpenCollectiveConfig `yaml:"opencollective"`
	Discord        DiscordConfig        `yaml:"discord"`
	Database       DBConfig             `yaml:"database"`
	Sync           SyncConfig           `yaml:"sync"`
}

// OpenCollectiveConfig holds Open Collective GraphQL API settings.
type OpenCollectiveConfig struct {
	Endpoint    string   `yaml:"endpoint"`
	APIKey      string   `yaml:"api_key"` // Sent as the Api-key header
	AccountSlug string   `yaml:"account_slug"`
	PageLimit   int      `yaml:"page_limit"`
	Timeout     Duration `yaml:"timeout"`
	MaxRetries  int      `yaml:"max_retries"`
}

// DiscordConfig holds webhook delivery settings.
type DiscordConfig struct {
	WebhookURL string `yaml:"webhook_url"`
	Username   string `yaml:"username"`
	AvatarURL  string `yaml:"avatar_url"`
}

// DBConfig holds the ledger database connection.
type DBConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"ssl_mode"`
	MaxConns int    `yaml:"max_conns"`
	MinConns int    `yaml:"min_conns"`
}

// SyncConfig holds orchestration settings.
type SyncConfig struct {
	// Lookback bounds both the remote fetch and the ledger query to
	// transactions created within this window before "now".
	Lookback Duration `yaml:"lookback"`
}

// Duration wraps time.Duration so YAML values like "200h" parse.
type Duration time.Duration

// UnmarshalYAML parses a Go duration string (e.g. "30s", "200h").
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}
