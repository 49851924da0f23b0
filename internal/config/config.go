// Package config loads runtime settings from the environment and an optional .env file
package config

import (
	"errors"
	"fmt"
	"maps"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// ErrParsingConfig is returned when environment variables cannot be parsed into Config
var ErrParsingConfig = errors.New("failed to parse environment variables into config")

// Config holds every setting the CLI reads from the environment
type Config struct {
	// Database is the dataset root; empty selects the embedded dataset
	Database string `env:"RANDNAME_DATABASE"`
	// Snapshot is a single-file dataset, mutually exclusive with Database
	Snapshot string `env:"RANDNAME_SNAPSHOT"`
	// Seed makes draws reproducible when set
	Seed *uint64 `env:"RANDNAME_SEED"`

	LogLevel     string `env:"LOG_LEVEL" envDefault:"warn"`
	LogFormat    string `env:"LOG_FORMAT" envDefault:"text"`
	LogAddSource bool   `env:"LOG_ADD_SOURCE"`
}

// Load reads Config from the process environment.
// Values from envFiles (default: ./.env, if present) fill in variables the
// process environment does not set; the process environment is not modified.
func Load(envFiles ...string) (Config, error) {
	environment := make(map[string]string)
	if len(envFiles) == 0 {
		// The default .env file is optional
		if values, err := godotenv.Read(); err == nil {
			maps.Copy(environment, values)
		}
	} else {
		values, err := godotenv.Read(envFiles...)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read env file: %w", err)
		}
		maps.Copy(environment, values)
	}
	maps.Copy(environment, env.ToMap(os.Environ()))

	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: environment}); err != nil {
		return Config{}, errors.Join(ErrParsingConfig, err)
	}
	return cfg, nil
}
