package config

import (
	"errors"
	"fmt"
)

// Validate checks that all required fields are set and values are valid.
func (c *Config) Validate() error {
	if c.OpenCollective.AccountSlug == "" {
		return errors.New("opencollective.account_slug is required")
	}
	if c.OpenCollective.Endpoint == "" {
		return errors.New("opencollective.endpoint is required")
	}
	if c.OpenCollective.PageLimit < 1 || c.OpenCollective.PageLimit > 1000 {
		return fmt.Errorf("opencollective.page_limit must be between 1 and 1000, got %d", c.OpenCollective.PageLimit)
	}
	if c.OpenCollective.MaxRetries < 0 {
		return errors.New("opencollective.max_retries must be >= 0")
	}

	if c.Discord.WebhookURL == "" {
		return errors.New("discord.webhook_url is required")
	}

	if err := c.Database.validate("database"); err != nil {
		return err
	}

	if c.Sync.Lookback <= 0 {
		return errors.New("sync.lookback must be a positive duration")
	}

	return nil
}

func (db *DBConfig) validate(prefix string) error {
	if db.Host == "" {
		return fmt.Errorf("%s.host is required", prefix)
	}
	if db.Name == "" {
		return fmt.Errorf("%s.name is required", prefix)
	}
	if db.User == "" {
		return fmt.Errorf("%s.user is required", prefix)
	}
	if db.Password == "" {
		return fmt.Errorf("%s.password is required", prefix)
	}
	if db.Port < 1 || db.Port > 65535 {
		return fmt.Errorf("%s.port must be between 1 and 65535, got %d", prefix, db.Port)
	}
	if db.MaxConns < 1 {
		return fmt.Errorf("%s.max_conns must be >= 1", prefix)
	}
	if db.MinConns < 0 {
		return fmt.Errorf("%s.min_conns must be >= 0", prefix)
	}
	if db.MinConns > db.MaxConns {
		return fmt.Errorf("%s.min_conns (%d) cannot exceed max_conns (%d)", prefix, db.MinConns, db.MaxConns)
	}
	return nil
}
