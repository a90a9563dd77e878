// Package config loads lineal configuration. Precedence, highest to
// lowest: command-line flags, environment (LINEAL_*), config file
// (--config or ~/.lineal.yaml), defaults.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	// EnvPrefix namespaces environment overrides, e.g. LINEAL_OUTPUT.
	EnvPrefix = "LINEAL"

	// DefaultBaseDir is where lineal keeps its own data under the
	// artifact root marker.
	DefaultBaseDir = ".agents/lineal"

	// ProvenanceDir holds the provenance log inside the base dir.
	ProvenanceDir = "provenance"

	// ProvenanceFile is the append-only lineage log.
	ProvenanceFile = "graph.jsonl"
)

// Config holds all lineal settings.
type Config struct {
	// Output is the default output format (table, json, yaml).
	Output string `mapstructure:"output"`

	// Verbose enables diagnostic output.
	Verbose bool `mapstructure:"verbose"`

	// Strict makes provenance loading fail on malformed log lines
	// instead of skipping them.
	Strict bool `mapstructure:"strict"`

	// BaseDir is the lineal data directory relative to the project root.
	BaseDir string `mapstructure:"base_dir"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Output:  "table",
		BaseDir: DefaultBaseDir,
	}
}

// Load reads configuration through viper. cfgFile overrides the default
// config location; a missing config file is fine, defaults apply.
func Load(cfgFile string) (Config, error) {
	v := viper.New()

	defaults := Default()
	v.SetDefault("output", defaults.Output)
	v.SetDefault("verbose", defaults.Verbose)
	v.SetDefault("strict", defaults.Strict)
	v.SetDefault("base_dir", defaults.BaseDir)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else if home, err := os.UserHomeDir(); err == nil {
		v.SetConfigFile(filepath.Join(home, ".lineal.yaml"))
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// The default config file is optional. An explicitly requested one
	// that fails to read is an error the user should see.
	if err := v.ReadInConfig(); err != nil && cfgFile != "" {
		return Config{}, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ProvenancePath returns the log file location for a project root.
func (c Config) ProvenancePath(root string) string {
	return filepath.Join(root, c.BaseDir, ProvenanceDir, ProvenanceFile)
}
