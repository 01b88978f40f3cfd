package config

import "time"

// Default values for optional configuration fields.
const (
	DefaultEndpoint    = "https://api.opencollective.com/graphql/v2"
	DefaultAccountSlug = "twohoursonelife"
	DefaultPageLimit   = 1000
	DefaultAPITimeout  = 30 * time.Second
	DefaultMaxRetries  = 3
	DefaultUsername    = "Open Collective"
	DefaultDBPort      = 5432
	DefaultDBSSLMode   = "prefer"
	DefaultMaxConns    = 4
	DefaultMinConns    = 1
	DefaultLookback    = 200 * time.Hour
)

func (c *Config) applyDefaults() {
	// Open Collective defaults
	if c.OpenCollective.Endpoint == "" {
		c.OpenCollective.Endpoint = DefaultEndpoint
	}
	if c.OpenCollective.AccountSlug == "" {
		c.OpenCollective.AccountSlug = DefaultAccountSlug
	}
	if c.OpenCollective.PageLimit == 0 {
		c.OpenCollective.PageLimit = DefaultPageLimit
	}
	if c.OpenCollective.Timeout == 0 {
		c.OpenCollective.Timeout = Duration(DefaultAPITimeout)
	}
	if c.OpenCollective.MaxRetries == 0 {
		c.OpenCollective.MaxRetries = DefaultMaxRetries
	}

	// Discord defaults
	if c.Discord.Username == "" {
		c.Discord.Username = DefaultUsername
	}

	// Database defaults
	if c.Database.Port == 0 {
		c.Database.Port = DefaultDBPort
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = DefaultDBSSLMode
	}
	if c.Database.MaxConns == 0 {
		c.Database.MaxConns = DefaultMaxConns
	}
	if c.Database.MinConns == 0 {
		c.Database.MinConns = DefaultMinConns
	}

	// Sync defaults
	if c.Sync.Lookback == 0 {
		c.Sync.Lookback = Duration(DefaultLookback)
	}
}
