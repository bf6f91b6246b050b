package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if PROFILEHUB_CONFIG is set
//  3. env (prefix PROFILEHUB_)
func Load(_ context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("PROFILEHUB_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: PROFILEHUB_ADDR, PROFILEHUB_LIST_LIMIT, ...
	// Keys keep their underscores to match the koanf tags on the struct.
	envProvider := env.Provider("PROFILEHUB_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "profilehub_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	switch {
	case cfg.Addr == "":
		return nil, fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case cfg.SigninEndpoint == "":
		return nil, fmt.Errorf("%w: signin_endpoint must not be empty", ErrInvalidConfig)
	case cfg.GraphQLEndpoint == "":
		return nil, fmt.Errorf("%w: graphql_endpoint must not be empty", ErrInvalidConfig)
	case cfg.ListLimit < 1:
		return nil, fmt.Errorf("%w: list_limit must be positive", ErrInvalidConfig)
	case cfg.SkillLimit < 1:
		return nil, fmt.Errorf("%w: skill_limit must be positive", ErrInvalidConfig)
	}
	return &cfg, nil
}
