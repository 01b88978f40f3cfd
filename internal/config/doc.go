// Package config loads and validates the syncer configuration.
//
// Configuration is a YAML file with ${VAR} environment variable
// substitution, so secrets (API key, webhook URL, database password)
// can stay out of the file itself.
package config
