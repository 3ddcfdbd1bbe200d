package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/ucc/parse"
)

func TestDefaults(t *testing.T) {
	v := viper.New()
	Defaults(v)
	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, Config{
		MaxStates: parse.DefaultMaxStates,
		Ambiguity: parse.AmbiguityError,
		Format:    "tree",
	}, cfg)
	assert.Nil(t, cfg.LogPath())
	assert.Len(t, cfg.ParseOptions(), 2)
}

func TestEnvironment(t *testing.T) {
	t.Setenv("UCC_MAX_STATES", "500")
	t.Setenv("UCC_AMBIGUITY", "first")
	t.Setenv("UCC_LOG_FILE", "/tmp/ucc.log")

	v := viper.New()
	Defaults(v)
	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, 500, cfg.MaxStates)
	assert.Equal(t, parse.AmbiguityFirst, cfg.Ambiguity)
	require.NotNil(t, cfg.LogPath())
	assert.Equal(t, "/tmp/ucc.log", *cfg.LogPath())
}

func TestConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ucc.yaml")
	require.NoError(t, os.WriteFile(path, []byte("max_states: 42\nformat: sexpr\n"), 0o644))

	v := viper.New()
	Defaults(v)
	require.NoError(t, ReadFile(v, path))
	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, 42, cfg.MaxStates)
	assert.Equal(t, "sexpr", cfg.Format)
}

func TestReadFileErrors(t *testing.T) {
	v := viper.New()
	assert.NoError(t, ReadFile(v, ""))
	assert.Error(t, ReadFile(v, filepath.Join(t.TempDir(), "missing.yaml")))
}

func TestInvalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value any
	}{
		{"zero states", KeyMaxStates, 0},
		{"negative states", KeyMaxStates, -3},
		{"ambiguity", KeyAmbiguity, "guess"},
		{"format", KeyFormat, "xml"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := viper.New()
			Defaults(v)
			v.Set(tt.key, tt.value)
			_, err := Load(v)
			assert.Error(t, err)
		})
	}
}
