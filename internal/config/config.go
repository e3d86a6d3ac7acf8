// Package config provides YAML-based configuration for hrdesk.
// Configuration is loaded with a layered precedence: defaults → YAML file → env vars.
// Environment variables always win, so existing workflows are unaffected.
//
// File search order:
//  1. --config CLI flag (explicit path)
//  2. HRDESK_CONFIG environment variable
//  3. ~/.hrdesk/config.yaml
//  4. ./hrdesk.yaml
//
// If no file is found the system runs entirely from env vars (backwards compatible).
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the top-level YAML configuration structure.
// Field names use yaml tags that mirror the env var naming (lowercase, underscored).
type Config struct {
	// Server configures the HTTP server.
	Server ServerConfig `yaml:"server"`

	// Dataset configures the FAQ dataset location.
	Dataset DatasetConfig `yaml:"dataset"`

	// Search configures retrieval behaviour.
	Search SearchConfig `yaml:"search"`

	// Index configures the similarity index backend.
	Index IndexConfig `yaml:"index"`

	// Qdrant configures the Qdrant vector store connection.
	Qdrant QdrantConfig `yaml:"qdrant"`

	// Embedding configures the embedding provider for vector search.
	Embedding EmbeddingConfig `yaml:"embedding"`

	// Cache configures the optional response cache.
	Cache CacheConfig `yaml:"cache"`

	// Tickets configures HR ticket persistence.
	Tickets TicketsConfig `yaml:"tickets"`

	// Logging configures structured logging.
	Logging LoggingConfig `yaml:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the bind address.
	Host string `yaml:"host"`
	// Port is the TCP port.
	Port int `yaml:"port"`
	// APIKey is the Bearer token for admin endpoints. Prefer env var HRDESK_API_KEY.
	APIKey string `yaml:"api_key"`
	// StaticDir is the directory of UI files served at "/".
	StaticDir string `yaml:"static_dir"`
	// RateLimit is the sustained chat requests/second allowed per client IP.
	RateLimit float64 `yaml:"rate_limit"`
	// RateBurst is the maximum instantaneous burst per client IP.
	RateBurst int `yaml:"rate_burst"`
}

// DatasetConfig holds FAQ dataset settings.
type DatasetConfig struct {
	// Path is the CSV dataset path.
	Path string `yaml:"path"`
}

// SearchConfig holds retrieval settings.
type SearchConfig struct {
	// TopK is the number of vector candidates requested per query.
	TopK int `yaml:"top_k"`
}

// IndexConfig holds similarity index settings.
type IndexConfig struct {
	// Provider selects the backend: chromem, qdrant, none.
	Provider string `yaml:"provider"`
	// ChromemPath is the persistence directory for the embedded index.
	// Empty keeps the index in memory only.
	ChromemPath string `yaml:"chromem_path"`
	// Collection is the index collection name.
	Collection string `yaml:"collection"`
}

// QdrantConfig holds Qdrant vector store settings.
type QdrantConfig struct {
	// Host is the Qdrant server hostname.
	Host string `yaml:"host"`
	// Port is the Qdrant gRPC port.
	Port int `yaml:"port"`
	// APIKey is the Qdrant API key. Prefer env var QDRANT_API_KEY.
	APIKey string `yaml:"api_key"`
	// TLS enables TLS for the Qdrant connection.
	TLS bool `yaml:"tls"`
}

// EmbeddingConfig holds embedding provider settings for vector search.
type EmbeddingConfig struct {
	// Provider selects the embedding backend (ollama, openai, azure).
	Provider string `yaml:"provider"`
	// Model is the embedding model name.
	Model string `yaml:"model"`
	// Dimensions overrides the embedding vector size.
	Dimensions int `yaml:"dimensions"`
	// APIKey is the embedding API key. Prefer env var EMBEDDING_API_KEY.
	APIKey string `yaml:"api_key"`
	// Endpoint is the embedding API endpoint.
	Endpoint string `yaml:"endpoint"`
	// OllamaHost is the Ollama API endpoint for the ollama backend.
	OllamaHost string `yaml:"ollama_host"`
}

// CacheConfig holds response cache settings.
type CacheConfig struct {
	// RedisAddr is the Redis address (host:port). Empty uses the in-memory cache.
	RedisAddr string `yaml:"redis_addr"`
	// TTL is the cached-envelope lifetime, e.g. "5m".
	TTL string `yaml:"ttl"`
}

// TicketsConfig holds ticket persistence settings.
type TicketsConfig struct {
	// DB is the SQLite database path. Set to "disabled" to disable.
	DB string `yaml:"db"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error.
	Level string `yaml:"level"`
	// Format is the log output format: json, text.
	Format string `yaml:"format"`
}

// envMapping maps YAML config fields to their corresponding env var names.
// Only non-empty YAML values are applied; env vars always take precedence.
var envMapping = []struct {
	envKey string
	value  func(*Config) string
}{
	{"HRDESK_HOST", func(c *Config) string { return c.Server.Host }},
	{"HRDESK_PORT", func(c *Config) string { return intStr(c.Server.Port) }},
	{"HRDESK_API_KEY", func(c *Config) string { return c.Server.APIKey }},
	{"HRDESK_STATIC_DIR", func(c *Config) string { return c.Server.StaticDir }},
	{"HRDESK_RATE_LIMIT", func(c *Config) string { return float64Str(c.Server.RateLimit) }},
	{"HRDESK_RATE_BURST", func(c *Config) string { return intStr(c.Server.RateBurst) }},
	{"DATASET_PATH", func(c *Config) string { return c.Dataset.Path }},
	{"SEARCH_TOP_K", func(c *Config) string { return intStr(c.Search.TopK) }},
	{"INDEX_PROVIDER", func(c *Config) string { return c.Index.Provider }},
	{"CHROMEM_PATH", func(c *Config) string { return c.Index.ChromemPath }},
	{"INDEX_COLLECTION", func(c *Config) string { return c.Index.Collection }},
	{"QDRANT_HOST", func(c *Config) string { return c.Qdrant.Host }},
	{"QDRANT_PORT", func(c *Config) string { return intStr(c.Qdrant.Port) }},
	{"QDRANT_API_KEY", func(c *Config) string { return c.Qdrant.APIKey }},
	{"QDRANT_TLS", func(c *Config) string { return boolStr(c.Qdrant.TLS) }},
	{"EMBEDDING_PROVIDER", func(c *Config) string { return c.Embedding.Provider }},
	{"EMBEDDING_MODEL", func(c *Config) string { return c.Embedding.Model }},
	{"EMBEDDING_DIMENSIONS", func(c *Config) string { return intStr(c.Embedding.Dimensions) }},
	{"EMBEDDING_API_KEY", func(c *Config) string { return c.Embedding.APIKey }},
	{"EMBEDDING_ENDPOINT", func(c *Config) string { return c.Embedding.Endpoint }},
	{"OLLAMA_HOST", func(c *Config) string { return c.Embedding.OllamaHost }},
	{"REDIS_ADDR", func(c *Config) string { return c.Cache.RedisAddr }},
	{"CACHE_TTL", func(c *Config) string { return c.Cache.TTL }},
	{"TICKETS_DB", func(c *Config) string { return c.Tickets.DB }},
	{"LOG_LEVEL", func(c *Config) string { return c.Logging.Level }},
	{"LOG_FORMAT", func(c *Config) string { return c.Logging.Format }},
}

// Load reads a YAML config file and applies non-empty values as environment
// variables. Existing env vars are never overwritten (env always wins).
// Returns the path that was loaded, or empty string if no file was found.
func Load(explicitPath string, log *slog.Logger) (string, error) {
	path := resolveConfigPath(explicitPath)
	if path == "" {
		log.Debug("config: no YAML config file found, using env vars only")
		return "", nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("config: failed to read %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return "", fmt.Errorf("config: failed to parse %s: %w", path, err)
	}

	applied := 0
	for _, m := range envMapping {
		yamlVal := m.value(&cfg)
		if yamlVal == "" || yamlVal == "0" || yamlVal == "false" {
			continue
		}
		if os.Getenv(m.envKey) != "" {
			continue // env var already set — do not override
		}
		os.Setenv(m.envKey, yamlVal)
		applied++
	}

	log.Info("config: loaded YAML config",
		slog.String("path", path),
		slog.Int("keys_applied", applied),
	)

	return path, nil
}

// resolveConfigPath returns the first config file path that exists.
func resolveConfigPath(explicit string) string {
	if explicit != "" {
		if _, err := os.Stat(explicit); err == nil {
			return explicit
		}
		return ""
	}

	if envPath := os.Getenv("HRDESK_CONFIG"); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	home, err := os.UserHomeDir()
	if err == nil {
		p := filepath.Join(home, ".hrdesk", "config.yaml")
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	if _, err := os.Stat("hrdesk.yaml"); err == nil {
		return "hrdesk.yaml"
	}

	return ""
}

// intStr converts an int to string, returning "" for zero values.
func intStr(v int) string {
	if v == 0 {
		return ""
	}
	return fmt.Sprintf("%d", v)
}

// float64Str converts a float64 to string, returning "" for zero values.
func float64Str(v float64) string {
	if v == 0 {
		return ""
	}
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.4f", v), "0"), ".")
}

// boolStr converts a bool to string, returning "" for false.
func boolStr(v bool) string {
	if !v {
		return ""
	}
	return "true"
}
