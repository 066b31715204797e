// Package config loads application configuration from defaults, an optional
// config file and environment variables.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// API backends understood by the gateway.
const (
	APIREST    = "rest"
	APIGraphQL = "graphql"
)

// Config holds all configuration for the application.
type Config struct {
	GitHub GitHub
	Cache  Cache
	Server Server
	Query  Query
	Log    Log
}

// GitHub configures the upstream API client.
type GitHub struct {
	API               string
	BaseURL           string
	GraphQLURL        string
	Token             string
	MaxRateLimitSleep time.Duration
	Timeout           time.Duration
}

// Cache configures the upstream response cache.
type Cache struct {
	Enabled bool
	TTL     time.Duration
}

// Server configures the HTTP endpoint.
type Server struct {
	Port               int
	CorsAllowedOrigins []string
}

// Query configures the query endpoint.
type Query struct {
	// DefaultUsername replaces a missing or blank username.
	DefaultUsername string
}

// Log configures the logger.
type Log struct {
	Level string
}

// keys maps each setting to the environment variable that overrides it.
var keys = map[string]string{
	"github.api":                  "GITHUB_API",
	"github.base_url":             "GITHUB_API_URL",
	"github.graphql_url":          "GITHUB_GRAPHQL_URL",
	"github.token":                "GITHUB_TOKEN",
	"github.max_rate_limit_sleep": "RATE_LIMIT_MAX_SLEEP",
	"github.timeout":              "GITHUB_TIMEOUT",
	"cache.enabled":               "CACHE_ENABLED",
	"cache.ttl":                   "CACHE_TTL",
	"server.port":                 "SERVER_PORT",
	"server.cors_allowed_origins": "CORS_ALLOWED_ORIGINS",
	"query.default_username":      "DEFAULT_USERNAME",
	"log.level":                   "LOG_LEVEL",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("github.api", APIREST)
	v.SetDefault("github.base_url", "https://api.github.com/")
	v.SetDefault("github.graphql_url", "https://api.github.com/graphql")
	v.SetDefault("github.token", "")
	v.SetDefault("github.max_rate_limit_sleep", time.Duration(0))
	v.SetDefault("github.timeout", 30*time.Second)
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.ttl", time.Hour)
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.cors_allowed_origins", []string{"*"})
	v.SetDefault("query.default_username", "octocat")
	v.SetDefault("log.level", "info")
}

// Load reads configuration. configFile may be empty, in which case only
// defaults and environment variables apply.
func Load(configFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	for key, env := range keys {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	c := &Config{
		GitHub: GitHub{
			API:               strings.ToLower(strings.TrimSpace(v.GetString("github.api"))),
			BaseURL:           v.GetString("github.base_url"),
			GraphQLURL:        v.GetString("github.graphql_url"),
			Token:             v.GetString("github.token"),
			MaxRateLimitSleep: v.GetDuration("github.max_rate_limit_sleep"),
			Timeout:           v.GetDuration("github.timeout"),
		},
		Cache: Cache{
			Enabled: v.GetBool("cache.enabled"),
			TTL:     v.GetDuration("cache.ttl"),
		},
		Server: Server{
			Port:               v.GetInt("server.port"),
			CorsAllowedOrigins: splitList(v.GetStringSlice("server.cors_allowed_origins")),
		},
		Query: Query{
			DefaultUsername: strings.TrimSpace(v.GetString("query.default_username")),
		},
		Log: Log{
			Level: strings.ToLower(v.GetString("log.level")),
		},
	}

	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) validate() error {
	switch c.GitHub.API {
	case APIREST, APIGraphQL:
	default:
		return fmt.Errorf("unsupported GITHUB_API %q (want %q or %q)", c.GitHub.API, APIREST, APIGraphQL)
	}
	if c.GitHub.API == APIGraphQL && c.GitHub.Token == "" {
		return fmt.Errorf("GITHUB_TOKEN is required when GITHUB_API is %q", APIGraphQL)
	}
	if c.Query.DefaultUsername == "" {
		return fmt.Errorf("DEFAULT_USERNAME must not be blank")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid SERVER_PORT %d", c.Server.Port)
	}
	if c.Cache.TTL < 0 {
		return fmt.Errorf("CACHE_TTL must not be negative")
	}
	return nil
}

// splitList flattens comma-separated entries. Viper only splits
// environment values on whitespace.
func splitList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// IsDebug reports whether debug logging is enabled.
func (c *Config) IsDebug() bool {
	return c.Log.Level == "debug"
}
