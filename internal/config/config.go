// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults; Load layers file and env on top.
// - External errors are wrapped via this package's sentinel kinds.
package config

import "time"

// Default endpoint values mirror the learn platform the dashboard fronts.
const (
	defaultSigninEndpoint  = "https://learn.reboot01.com/api/auth/signin"
	defaultGraphQLEndpoint = "https://learn.reboot01.com/api/graphql-engine/v1/graphql"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogJSON switches log output to JSON.
	LogJSON bool `koanf:"log_json"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// SigninEndpoint is the upstream Basic-auth sign-in URL.
	SigninEndpoint string `koanf:"signin_endpoint"`

	// GraphQLEndpoint is the upstream GraphQL URL.
	GraphQLEndpoint string `koanf:"graphql_endpoint"`

	// UpstreamTimeoutMS bounds each upstream HTTP call.
	UpstreamTimeoutMS int `koanf:"upstream_timeout_ms"`

	// SessionCapacity bounds the in-memory session registry.
	SessionCapacity int `koanf:"session_capacity"`

	// ShardCount configures the number of shards in the snapshot store.
	ShardCount int `koanf:"shard_count"`

	// ListLimit caps the project and recent-transaction lists.
	ListLimit int `koanf:"list_limit"`

	// SkillLimit caps the top-skills series.
	SkillLimit int `koanf:"skill_limit"`
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:          "info",
		LogJSON:           false,
		Addr:              ":9080",
		SigninEndpoint:    defaultSigninEndpoint,
		GraphQLEndpoint:   defaultGraphQLEndpoint,
		UpstreamTimeoutMS: int(15 * time.Second / time.Millisecond),
		SessionCapacity:   10_000,
		ShardCount:        8,
		ListLimit:         10,
		SkillLimit:        6,
	}
}

// UpstreamTimeout returns the upstream timeout as a duration.
func (c *Config) UpstreamTimeout() time.Duration {
	return time.Duration(c.UpstreamTimeoutMS) * time.Millisecond
}
