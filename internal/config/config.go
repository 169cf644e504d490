package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	apperrors "github.com/jrsteele09/go-anilist-web/internal/errors"
)

type Config interface {
	EnvConfig
	AniListConfig
	SecurityConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetEnv() string
	GetLogLevel() string
}

type mainConfig struct {
	EnvVars
	AniList
	Security
}

// Load resolves the configuration from the process environment.
// A missing client id, client secret or cookie secret is an error.
func Load() (Config, error) {
	return LoadFromMap(env.ToMap(os.Environ()))
}

// LoadFromMap resolves the configuration from the given variables instead of
// the process environment.
func LoadFromMap(vars map[string]string) (Config, error) {
	vars = applyAliases(vars)

	var c mainConfig
	if err := env.ParseWithOptions(&c, env.Options{Environment: vars}); err != nil {
		return nil, apperrors.Wrapf(fmt.Errorf("%w: %w", apperrors.ErrMissingConfig, err), "[config Load]")
	}
	if err := c.Security.validate(); err != nil {
		return nil, apperrors.Wrapf(err, "[config Load]")
	}
	return c, nil
}

// applyAliases copies legacy variable names onto their current names when
// only the legacy one is set.
func applyAliases(vars map[string]string) map[string]string {
	out := make(map[string]string, len(vars))
	for k, v := range vars {
		out[k] = v
	}
	for legacy, current := range legacyEnvVars {
		if out[current] == "" && out[legacy] != "" {
			out[current] = out[legacy]
		}
	}
	return out
}
