// Package config reads command defaults from the environment and optional
// dotenv files.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/vearutop/resample"
)

// Environment variables.
const (
	EnvKernel       = "BMPRESIZE_KERNEL"
	EnvWorkers      = "BMPRESIZE_WORKERS"
	EnvLogLevel     = "BMPRESIZE_LOG_LEVEL"
	EnvMaxDimension = "BMPRESIZE_MAX_DIMENSION"
)

// DefaultMaxDimension bounds the target width and height. A configured
// bound may only lower it.
const DefaultMaxDimension = 1 << 20

// Config holds defaults that flags may override.
type Config struct {
	Kernel       resample.Kernel
	Workers      int // 0 means GOMAXPROCS.
	LogLevel     slog.Level
	MaxDimension int
}

// Default returns the configuration used when the environment is empty.
func Default() Config {
	return Config{
		Kernel:       resample.Bilinear,
		LogLevel:     slog.LevelInfo,
		MaxDimension: DefaultMaxDimension,
	}
}

// Load applies envFiles (".env" if none given) to the process environment,
// skipping files that do not exist, and reads the configuration from it.
// Variables already set in the environment win over file values.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, fn := range envFiles {
		if err := godotenv.Load(fn); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", fn, err)
		}
	}
	return FromEnv(os.LookupEnv)
}

// FromEnv reads the configuration with lookup.
func FromEnv(lookup func(key string) (string, bool)) (Config, error) {
	c := Default()

	if v, ok := lookup(EnvKernel); ok && strings.TrimSpace(v) != "" {
		k, err := resample.ParseKernel(v)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvKernel, err)
		}
		c.Kernel = k
	}

	if v, ok := lookup(EnvWorkers); ok && strings.TrimSpace(v) != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil || n < 0 {
			return Config{}, fmt.Errorf("%s: invalid worker count %q", EnvWorkers, v)
		}
		c.Workers = n
	}

	if v, ok := lookup(EnvLogLevel); ok && strings.TrimSpace(v) != "" {
		if err := c.LogLevel.UnmarshalText([]byte(strings.TrimSpace(v))); err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvLogLevel, err)
		}
	}

	if v, ok := lookup(EnvMaxDimension); ok && strings.TrimSpace(v) != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil || n <= 0 {
			return Config{}, fmt.Errorf("%s: invalid dimension %q", EnvMaxDimension, v)
		}
		c.MaxDimension = min(n, DefaultMaxDimension)
	}

	return c, nil
}
