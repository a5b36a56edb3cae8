package config

// loader.go - configuration loading from the environment.
//
// Precedence order (highest wins):
//   1. CLI flags  (handled by cmd/root.go)
//   2. Environment variables, then a .env file  (this file)
//   3. Defaults   (defaults.go)

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// ── Environment variable mapping ─────────────────────────────────────
//
// Every supported env var uses the SOCKCHAT_ prefix:
//
//	SOCKCHAT_HOST  SOCKCHAT_PORT  SOCKCHAT_SCHEME  SOCKCHAT_USERNAME
//	SOCKCHAT_TIMEOUT (e.g. 10s)  SOCKCHAT_VERBOSE  SOCKCHAT_NO_COLOR
//	SOCKCHAT_STATS

// LoadFromEnv overlays environment variables onto cfg.  Unset variables
// leave the existing value alone.  Call it BEFORE applying CLI flags so
// that flags take precedence.
func LoadFromEnv(cfg *Config) error {
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return fmt.Errorf("environment: %w", err)
	}
	return nil
}

// LoadDotEnv reads KEY=VALUE pairs from path into the process
// environment without overriding variables that are already set.  An
// empty path means DefaultEnvFile, which may be absent.
func LoadDotEnv(path string) error {
	optional := path == ""
	if optional {
		path = DefaultEnvFile
	}
	if err := godotenv.Load(path); err != nil {
		if optional && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("env file %s: %w", path, err)
	}
	return nil
}

// Usage describes the supported environment variables.
func Usage() string {
	return `Environment:
  SOCKCHAT_HOST, SOCKCHAT_PORT, SOCKCHAT_SCHEME, SOCKCHAT_USERNAME,
  SOCKCHAT_TIMEOUT (duration, e.g. 10s), SOCKCHAT_VERBOSE (0-3),
  SOCKCHAT_NO_COLOR, SOCKCHAT_STATS
  A .env file in the working directory is read when present.
`
}
