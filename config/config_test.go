package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MHmorgan/remscan/grammar"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), DefaultPath)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.Equal(t, []string{"TODO", "FIXME", "BUG"}, cfg.Verbs)
	assert.Equal(t, runtime.NumCPU(), cfg.Workers)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "auto", cfg.Color)
}

func TestLoadConfig_OverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
verbs: [TODO, FIXME, BUG, XXX]
workers: 3
hidden: true
no_ignore: true
exclude:
  - vendor/
  - "*.min.js"
languages:
  .foo: hash
  Justfile: hash
log_level: debug
color: never
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"TODO", "FIXME", "BUG", "XXX"}, cfg.Verbs)
	assert.Equal(t, 3, cfg.Workers)
	assert.True(t, cfg.Hidden)
	assert.True(t, cfg.NoIgnore)
	assert.Equal(t, []string{"vendor/", "*.min.js"}, cfg.Exclude)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "never", cfg.Color)

	reg, err := cfg.Registry()
	require.NoError(t, err)
	g, ok := reg.Lookup("x/y.foo")
	require.True(t, ok)
	assert.Equal(t, "hash", g.Name)
	_, ok = reg.Lookup("Justfile")
	assert.True(t, ok)
}

func TestLoadConfig_PartialKeepsDefaults(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, "hidden: true\n"))
	require.NoError(t, err)
	assert.True(t, cfg.Hidden)
	assert.Equal(t, []string{"TODO", "FIXME", "BUG"}, cfg.Verbs)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestLoadConfig_Errors(t *testing.T) {
	var tests = []struct {
		name    string
		content string
	}{
		{name: "malformed", content: "verbs: [TODO\n"},
		{name: "lowercase verb", content: "verbs: [todo]\n"},
		{name: "empty verbs", content: "verbs: []\n"},
		{name: "zero workers", content: "workers: 0\n"},
		{name: "bad level", content: "log_level: loud\n"},
		{name: "bad color", content: "color: sometimes\n"},
		{name: "unknown grammar", content: "languages:\n  .foo: klingon\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.content))
			require.Error(t, err)
		})
	}
}

func TestRegistry_UnknownGrammar(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Languages = map[string]string{".foo": "klingon"}
	_, err := cfg.Registry()
	require.ErrorIs(t, err, grammar.ErrUnknownGrammar)
}
