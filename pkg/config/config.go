// Package config provides unified configuration for the plauder pipeline.
//
// Configuration is loaded with a layered approach:
//  1. Built-in defaults
//  2. YAML config file (discovered or explicitly specified)
//  3. Environment variable overrides (PLAUDER_ prefix)
//  4. File reference resolution (_file suffix fields)
//  5. Validation
package config

import (
	"github.com/plauderhq/plauder/pkg/provider"
)

// Config holds all configuration for the plauder pipeline.
type Config struct {
	Provider      ProviderConfig      `yaml:"provider"`
	Engine        EngineConfig        `yaml:"engine"`
	Transport     TransportConfig     `yaml:"transport"`
	Storage       StorageConfig       `yaml:"storage"`
	Logging       LoggingConfig       `yaml:"logging"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// LoggingConfig holds log level and debug category settings, consumed
// by pkg/debug.
type LoggingConfig struct {
	Level string `yaml:"level"` // DEBUG, INFO, WARN, ERROR, TRACE
	Debug string `yaml:"debug"` // comma-separated debug categories, or "all"
}

// ObservabilityConfig holds monitoring settings.
type ObservabilityConfig struct {
	Metrics MetricsConfig `yaml:"metrics"`
}

// MetricsConfig holds the Prometheus metrics listener settings.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"` // default: false
	Addr    string `yaml:"addr"`    // default: ":9091"
}

// ProviderConfig holds backend provider settings.
type ProviderConfig struct {
	Name         string   `yaml:"name"`          // "openai", "anthropic", or "perplexity", default: "openai"
	Endpoint     string   `yaml:"endpoint"`      // optional endpoint override
	APIKey       string   `yaml:"api_key"`       // optional literal credential
	APIKeyFile   string   `yaml:"api_key_file"`  // _file variant for api_key
	Models       []string `yaml:"models"`        // optional model allow-list override
	DefaultModel string   `yaml:"default_model"` // optional
}

// Credential resolves the configured credential. A literal api_key
// always wins; otherwise api_key_file is read and trimmed. A reference
// that cannot be read yields the unresolved marker rather than an
// error, so startup proceeds and verification fails at request time.
func (p ProviderConfig) Credential() provider.Credential {
	if p.APIKey != "" {
		return provider.ResolvedCredential(p.APIKey)
	}
	if p.APIKeyFile != "" {
		val, err := readSecretFile(p.APIKeyFile)
		if err != nil || val == "" {
			return provider.UnresolvedCredential(p.APIKeyFile)
		}
		cred := provider.ResolvedCredential(val)
		cred.Ref = p.APIKeyFile
		return cred
	}
	return provider.Credential{}
}

// EngineConfig holds pipeline behavior settings.
type EngineConfig struct {
	SystemPrompt    string `yaml:"system_prompt"`    // optional, prepended to every conversation
	SaveTranscripts bool   `yaml:"save_transcripts"` // default: false
	Profile         string `yaml:"profile"`          // optional storage profile scope
}

// TransportConfig holds settings for the external transport process.
type TransportConfig struct {
	Binary string `yaml:"binary"` // default: "curl"
}

// StorageConfig holds transcript store settings.
type StorageConfig struct {
	Type     string         `yaml:"type"`     // "memory" or "postgres", default: "memory"
	MaxSize  int            `yaml:"max_size"` // for memory store, default: 10000
	Postgres PostgresConfig `yaml:"postgres"`
}

// PostgresConfig holds PostgreSQL-specific settings.
type PostgresConfig struct {
	DSN            string `yaml:"dsn"`
	DSNFile        string `yaml:"dsn_file"`         // _file variant for dsn
	MaxConns       int32  `yaml:"max_conns"`        // default: 25
	MigrateOnStart bool   `yaml:"migrate_on_start"` // default: false
}

// Defaults returns a Config with all default values filled in.
func Defaults() Config {
	return Config{
		Provider: ProviderConfig{
			Name: "openai",
		},
		Transport: TransportConfig{
			Binary: "curl",
		},
		Storage: StorageConfig{
			Type:    "memory",
			MaxSize: 10000,
			Postgres: PostgresConfig{
				MaxConns: 25,
			},
		},
		Observability: ObservabilityConfig{
			Metrics: MetricsConfig{
				Addr: ":9091",
			},
		},
	}
}
