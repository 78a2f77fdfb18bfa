// Package config provides configuration loading for the query API service
// using Viper. Configuration is loaded from YAML files with automatic
// environment variable binding.
//
// Environment variables use the GAMEDIG_ prefix and underscore-separated
// keys:
//   - GAMEDIG_SERVER_HOST -> server.host
//   - GAMEDIG_SERVER_PORT -> server.port
//   - GAMEDIG_RATE_LIMIT_GLOBAL_QPS -> rate_limit.global_qps
package config

import (
	"os"
	"strings"
)

// ServerConfig contains the HTTP listener settings.
type ServerConfig struct {
	Host string `yaml:"host" mapstructure:"host"`
	Port int    `yaml:"port" mapstructure:"port"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level            string            `yaml:"level"             mapstructure:"level"             json:"level"`
	Structured       bool              `yaml:"structured"        mapstructure:"structured"        json:"structured"`
	StructuredFormat string            `yaml:"structured_format" mapstructure:"structured_format" json:"structured_format"`
	IncludePID       bool              `yaml:"include_pid"       mapstructure:"include_pid"       json:"include_pid"`
	ExtraFields      map[string]string `yaml:"extra_fields"      mapstructure:"extra_fields"      json:"extra_fields,omitempty"`
}

// RateLimitConfig controls the ambient API's admission control.
type RateLimitConfig struct {
	// CleanupSeconds is how often stale per-IP entries are cleaned up.
	CleanupSeconds float64 `yaml:"cleanup_seconds" mapstructure:"cleanup_seconds" json:"cleanup_seconds"`
	// MaxIPEntries is the maximum number of tracked source IPs.
	MaxIPEntries int `yaml:"max_ip_entries" mapstructure:"max_ip_entries" json:"max_ip_entries"`
	// GlobalQPS is the server-wide queries-per-second ceiling (0 disables).
	GlobalQPS float64 `yaml:"global_qps" mapstructure:"global_qps" json:"global_qps"`
	// GlobalBurst is the global burst size.
	GlobalBurst int `yaml:"global_burst" mapstructure:"global_burst" json:"global_burst"`
	// IPQPS is the per-source-IP queries-per-second ceiling (0 disables).
	IPQPS float64 `yaml:"ip_qps" mapstructure:"ip_qps" json:"ip_qps"`
	// IPBurst is the per-source-IP burst size.
	IPBurst int `yaml:"ip_burst" mapstructure:"ip_burst" json:"ip_burst"`
}

// QueryConfig holds the default transport budget applied to a query when
// the caller's request does not override it.
type QueryConfig struct {
	DefaultTCPConnectMS int `yaml:"default_tcp_connect_ms" mapstructure:"default_tcp_connect_ms" json:"default_tcp_connect_ms"`
	DefaultTCPReadMS    int `yaml:"default_tcp_read_ms"    mapstructure:"default_tcp_read_ms"    json:"default_tcp_read_ms"`
	DefaultUDPReadMS    int `yaml:"default_udp_read_ms"    mapstructure:"default_udp_read_ms"    json:"default_udp_read_ms"`
	DefaultRetries      int `yaml:"default_retries"        mapstructure:"default_retries"        json:"default_retries"`
}

// APIConfig contains ambient API-key auth settings.
//
// Note: APIKey is intentionally treated as a secret and should not be
// returned by any endpoint.
type APIConfig struct {
	APIKey string `yaml:"api_key" mapstructure:"api_key"`
}

// Config is the root configuration structure.
type Config struct {
	Server    ServerConfig    `yaml:"server"     mapstructure:"server"`
	Logging   LoggingConfig   `yaml:"logging"    mapstructure:"logging"`
	RateLimit RateLimitConfig `yaml:"rate_limit" mapstructure:"rate_limit"`
	Query     QueryConfig     `yaml:"query"      mapstructure:"query"`
	API       APIConfig       `yaml:"api"        mapstructure:"api"`
}

// ResolveConfigPath determines the config file path from flag or
// environment.
func ResolveConfigPath(flagValue string) string {
	if strings.TrimSpace(flagValue) != "" {
		return flagValue
	}
	if v := strings.TrimSpace(os.Getenv("GAMEDIG_CONFIG")); v != "" {
		return v
	}
	return ""
}

// Load loads configuration from a YAML file with environment variable
// overrides.
//
// Configuration priority (highest to lowest):
//  1. Environment variables (GAMEDIG_*)
//  2. Config file values
//  3. Default values
func Load(path string) (*Config, error) {
	return loadFromSource(path)
}
