// Package config resolves ucc settings from flags, UCC_* environment
// variables and an optional config file.
package config

import (
	"fmt"
	"slices"

	"github.com/spf13/viper"

	"github.com/dhamidi/ucc/parse"
)

const (
	KeyMaxStates = "max_states"
	KeyAmbiguity = "ambiguity"
	KeyVerbose   = "verbose"
	KeyLogFile   = "log_file"
	KeyFormat    = "format"

	EnvPrefix = "UCC"
)

// Formats are the tree renderings accepted by `ucc parse`.
var Formats = []string{"tree", "sexpr", "json"}

type Config struct {
	MaxStates int
	Ambiguity parse.AmbiguityPolicy
	Verbosity int
	LogFile   string
	Format    string
}

// Defaults registers default values and the environment binding on v.
func Defaults(v *viper.Viper) {
	v.SetDefault(KeyMaxStates, parse.DefaultMaxStates)
	v.SetDefault(KeyAmbiguity, parse.AmbiguityError.String())
	v.SetDefault(KeyVerbose, 0)
	v.SetDefault(KeyLogFile, "")
	v.SetDefault(KeyFormat, "tree")

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
}

// ReadFile merges the config file at path into v. An empty path is a
// no-op.
func ReadFile(v *viper.Viper, path string) error {
	if path == "" {
		return nil
	}
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("reading config %s: %w", path, err)
	}
	return nil
}

// Load validates the values in v.
func Load(v *viper.Viper) (Config, error) {
	cfg := Config{
		MaxStates: v.GetInt(KeyMaxStates),
		Verbosity: v.GetInt(KeyVerbose),
		LogFile:   v.GetString(KeyLogFile),
		Format:    v.GetString(KeyFormat),
	}
	if cfg.MaxStates <= 0 {
		return Config{}, fmt.Errorf("%s must be positive, got %d", KeyMaxStates, cfg.MaxStates)
	}

	name := v.GetString(KeyAmbiguity)
	policy, ok := parse.ParseAmbiguityPolicy(name)
	if !ok {
		return Config{}, fmt.Errorf("unknown ambiguity policy %q (want error or first)", name)
	}
	cfg.Ambiguity = policy

	if !slices.Contains(Formats, cfg.Format) {
		return Config{}, fmt.Errorf("unknown format %q (want one of %v)", cfg.Format, Formats)
	}
	return cfg, nil
}

// ParseOptions returns the parser options for c.
func (c Config) ParseOptions() []parse.Option {
	return []parse.Option{
		parse.WithMaxStates(c.MaxStates),
		parse.WithAmbiguity(c.Ambiguity),
	}
}

// LogPath is the commonlog output path: nil logs to stderr.
func (c Config) LogPath() *string {
	if c.LogFile == "" {
		return nil
	}
	path := c.LogFile
	return &path
}
