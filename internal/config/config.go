// Package config provides configuration loading for the openapi-matchers CLI.
package config

import (
	"errors"
	"fmt"
	"os"

	configloader "github.com/GabrielNunesIT/go-libs/config-loader"
)

const (
	// DefaultFile is read from the working directory when present.
	DefaultFile = "openapi-matchers.yaml"

	// EnvPrefix prefixes the environment variables that override the file.
	EnvPrefix = "OPENAPI_MATCHERS_"
)

// Config holds the application configuration. Command-line flags take
// precedence over every source loaded here.
type Config struct {
	// Spec is the path of the OpenAPI document.
	Spec string `koanf:"spec"`

	// Format is the report format: text, pdf, docx or confluence.
	Format string `koanf:"format"`

	// Output is the report destination; "-" writes to standard output.
	Output string `koanf:"output"`

	// Strict rejects documents that are not valid OpenAPI.
	Strict bool `koanf:"strict"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Format: "text",
		Output: "-",
	}
}

// Load returns the application configuration using go-libs config-loader:
// defaults, then the file at path when it exists, then the environment.
// An empty path means DefaultFile.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	var loader interface{ Load() (Config, error) }

	switch _, err := os.Stat(path); {
	case err == nil:
		loader = configloader.NewConfigLoader(
			configloader.WithDefaults(Defaults()),
			configloader.WithFile[Config](path),
			configloader.WithEnv[Config](EnvPrefix),
		)
	case explicit || !errors.Is(err, os.ErrNotExist):
		return nil, fmt.Errorf("failed to read config file: %w", err)
	default:
		loader = configloader.NewConfigLoader(
			configloader.WithDefaults(Defaults()),
			configloader.WithEnv[Config](EnvPrefix),
		)
	}

	cfg, err := loader.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return &cfg, nil
}
