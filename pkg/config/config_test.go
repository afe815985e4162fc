package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestDefault(t *testing.T) {
	t.Parallel()

	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, FlavorGFM, cfg.Flavor)
	assert.Equal(t, 200, cfg.DebounceMs)
	assert.Equal(t, 200*time.Millisecond, cfg.Debounce())
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "auto", cfg.Color)
	assert.Equal(t, 24.0, cfg.Layout.LineHeight)
	assert.Len(t, cfg.Layout.HeadingScales, 6)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults pass", func(*Config) {}, ""},
		{"bad flavor", func(c *Config) { c.Flavor = "markdown" }, "invalid flavor"},
		{"negative debounce", func(c *Config) { c.DebounceMs = -5 }, "debounce_ms"},
		{"zero debounce ok", func(c *Config) { c.DebounceMs = 0 }, ""},
		{"bad log level", func(c *Config) { c.LogLevel = "trace" }, "invalid log_level"},
		{"empty log level ok", func(c *Config) { c.LogLevel = "" }, ""},
		{"bad color", func(c *Config) { c.Color = "maybe" }, "invalid color"},
		{"zero line height", func(c *Config) { c.Layout.LineHeight = 0 }, "line_height"},
		{"negative margin", func(c *Config) { c.Layout.BlockMargin = -1 }, "must not be negative"},
		{"too many scales", func(c *Config) {
			c.Layout.HeadingScales = []float64{1, 1, 1, 1, 1, 1, 1}
		}, "at most 6"},
		{"non-positive scale", func(c *Config) {
			c.Layout.HeadingScales = []float64{2.0, 0}
		}, "must be positive"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			cfg := Default()
			testCase.mutate(cfg)
			err := cfg.Validate()
			if testCase.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), testCase.wantErr)
			}
		})
	}
}

func TestMetricsConversion(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Layout.HeadingScales = []float64{3.0, 2.0}

	m := cfg.Metrics()
	assert.Equal(t, 24.0, m.LineHeight)
	assert.Equal(t, 3.0, m.HeadingScales[0])
	assert.Equal(t, 2.0, m.HeadingScales[1])
	assert.Equal(t, 0.0, m.HeadingScales[2], "missing scales stay zero and fall back at measure time")
	assert.True(t, m.Validate())
}

func TestTemplateIsValidConfig(t *testing.T) {
	t.Parallel()

	cfg := Default()
	require.NoError(t, yaml.Unmarshal([]byte(Template()), cfg))
	require.NoError(t, cfg.Validate())
	assert.Equal(t, *Default(), *cfg, "the template must restate the defaults")
}

func TestLoadExplicitPath(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	writeFile(t, path, "flavor: commonmark\ndebounce_ms: 50\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, FlavorCommonMark, cfg.Flavor)
	assert.Equal(t, 50, cfg.DebounceMs)
	// Untouched keys keep their defaults.
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 24.0, cfg.Layout.LineHeight)
}

func TestLoadMissingExplicitPath(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoadInvalidYAML(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), ".mdsync.yaml")
	writeFile(t, path, "flavor: [unclosed\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), ".mdsync.yaml")
	writeFile(t, path, "debounce_ms: -1\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "debounce_ms")
}
