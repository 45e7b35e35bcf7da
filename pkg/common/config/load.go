package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-yaml"
	"github.com/imdario/mergo"
)

var validate = validator.New()

// Load reads the yaml config at path, fills unset fields from Default,
// applies environment overrides and validates the result. An empty path (or
// a missing file) is not an error: the service then runs on defaults plus
// environment variables, exactly like the legacy deployment.
func Load(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// fall through to defaults
		case err != nil:
			return nil, err
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	defaults := Default()
	if err := mergo.Merge(&cfg, defaults); err != nil {
		return nil, fmt.Errorf("merge config defaults: %w", err)
	}

	if err := applyEnvOverrides(&cfg); err != nil {
		return nil, err
	}

	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("struct validation failed: %w", err)
	}

	return &cfg, nil
}

// applyEnvOverrides layers the legacy environment contract on top of the
// file: REDIS_HOST, REDIS_PORT and ENVIRONMENT always win over yaml.
func applyEnvOverrides(cfg *Config) error {
	if host := os.Getenv("REDIS_HOST"); host != "" {
		cfg.KVStore.Redis.Host = host
	}
	if port := os.Getenv("REDIS_PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return fmt.Errorf("invalid REDIS_PORT %q: %w", port, err)
		}
		cfg.KVStore.Redis.Port = p
	}
	if env := os.Getenv("ENVIRONMENT"); env != "" {
		cfg.Environment = env
	}
	return nil
}
