// Package config loads wipe settings from files and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/idelchi/wipe/internal/logging"
	"github.com/idelchi/wipe/internal/wipe"
)

// Environment keys, also used as keys in dotenv config files.
const (
	EnvFactor   = "WIPE_FACTOR"
	EnvThreads  = "WIPE_THREADS"
	EnvLogLevel = "WIPE_LOG_LEVEL"
	EnvYes      = "WIPE_YES"
	EnvOutput   = "WIPE_OUTPUT"
)

// Outputs lists the supported report formats.
//
//nolint:gochecknoglobals // Config constant
var Outputs = []string{"table", "json"}

var (
	// ErrFactor is returned for a factor below one.
	ErrFactor = errors.New("factor must be at least 1")
	// ErrThreads is returned for a negative thread count.
	ErrThreads = errors.New("threads cannot be negative")
)

// Config holds the settings of a wipe run.
type Config struct {
	// Factor is the number of workers per logical CPU.
	Factor int `yaml:"factor"`
	// Threads is an explicit worker count (0 = derive from Factor).
	Threads int `yaml:"threads"`
	// LogLevel is one of debug, info, warn or error.
	LogLevel string `yaml:"log_level"`
	// Yes skips the confirmation prompt.
	Yes bool `yaml:"yes"`
	// Output is the timing report format (table or json).
	Output string `yaml:"output"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Factor:   wipe.DefaultFactor,
		LogLevel: "info",
		Output:   "table",
	}
}

// Load reads path over cfg. YAML files are recognised by extension, any
// other file is read as dotenv.
func (c *Config) Load(path string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading config %q: %w", path, err)
		}

		if err := yaml.Unmarshal(data, c); err != nil {
			return fmt.Errorf("parsing config %q: %w", path, err)
		}

		return nil
	default:
		env, err := godotenv.Read(path)
		if err != nil {
			return fmt.Errorf("reading config %q: %w", path, err)
		}

		return c.Apply(env)
	}
}

// Environ collects the WIPE_* variables from the process environment.
func Environ() map[string]string {
	env := make(map[string]string)

	for _, key := range []string{EnvFactor, EnvThreads, EnvLogLevel, EnvYes, EnvOutput} {
		if value, ok := os.LookupEnv(key); ok {
			env[key] = value
		}
	}

	return env
}

// Apply overrides cfg with the WIPE_* keys present in env.
func (c *Config) Apply(env map[string]string) error {
	if value, ok := env[EnvFactor]; ok {
		factor, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", EnvFactor, err)
		}

		c.Factor = factor
	}

	if value, ok := env[EnvThreads]; ok {
		threads, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", EnvThreads, err)
		}

		c.Threads = threads
	}

	if value, ok := env[EnvYes]; ok {
		yes, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", EnvYes, err)
		}

		c.Yes = yes
	}

	if value, ok := env[EnvLogLevel]; ok {
		c.LogLevel = value
	}

	if value, ok := env[EnvOutput]; ok {
		c.Output = value
	}

	return nil
}

// Validate checks that cfg holds usable values.
func (c Config) Validate() error {
	if c.Factor < 1 {
		return fmt.Errorf("%w: got %d", ErrFactor, c.Factor)
	}

	if c.Threads < 0 {
		return fmt.Errorf("%w: got %d", ErrThreads, c.Threads)
	}

	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}

	if !slices.Contains(Outputs, c.Output) {
		return fmt.Errorf("invalid output format %q: must be one of %v", c.Output, Outputs)
	}

	return nil
}
