package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate checks the configuration for required fields and valid values.
// Returns an error with a descriptive field path on failure.
func (c *Config) Validate() error {
	var errs []error

	// provider.name must be a known value.
	switch c.Provider.Name {
	case "openai", "anthropic", "perplexity":
		// valid
	default:
		errs = append(errs, fmt.Errorf("provider.name must be \"openai\", \"anthropic\", or \"perplexity\", got %q", c.Provider.Name))
	}

	// provider.endpoint must be an HTTP(S) URL if set.
	if c.Provider.Endpoint != "" &&
		!strings.HasPrefix(c.Provider.Endpoint, "http://") &&
		!strings.HasPrefix(c.Provider.Endpoint, "https://") {
		errs = append(errs, fmt.Errorf("provider.endpoint must start with http:// or https://, got %q", c.Provider.Endpoint))
	}

	// transport.binary must not be empty.
	if c.Transport.Binary == "" {
		errs = append(errs, fmt.Errorf("transport.binary must not be empty"))
	}

	// storage.type must be a known value.
	switch c.Storage.Type {
	case "memory", "postgres":
		// valid
	default:
		errs = append(errs, fmt.Errorf("storage.type must be \"memory\" or \"postgres\", got %q", c.Storage.Type))
	}

	// If storage.type is "postgres", DSN or DSNFile must be set.
	if c.Storage.Type == "postgres" {
		if c.Storage.Postgres.DSN == "" && c.Storage.Postgres.DSNFile == "" {
			errs = append(errs, fmt.Errorf("storage.postgres.dsn or storage.postgres.dsn_file is required when storage.type is \"postgres\""))
		}
	}

	return errors.Join(errs...)
}
