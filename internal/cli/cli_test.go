package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdsync/pkg/config"
)

const sampleDoc = "# Title\n\nHello world.\n\n```go\npackage main\n```\n"

// writeFixtures creates a Markdown file and a config file in a temp dir and
// returns their paths. The config pins color off so assertions can match raw
// text.
func writeFixtures(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()

	doc := filepath.Join(dir, "doc.md")
	require.NoError(t, os.WriteFile(doc, []byte(sampleDoc), 0o644))

	cfg := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("flavor: gfm\ncolor: never\n"), 0o644))

	return doc, cfg
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand(BuildInfo{Version: "test", Commit: "none", Date: "today"})
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestMapCommand(t *testing.T) {
	doc, cfg := writeFixtures(t)

	out, err := execute(t, "map", doc, "--config", cfg)
	require.NoError(t, err)

	assert.Contains(t, out, "BLOCK")
	assert.Contains(t, out, "heading")
	assert.Contains(t, out, "paragraph")
	assert.Contains(t, out, "code")
	assert.Contains(t, out, "5-7", "fence lines belong to the code block")
	assert.Contains(t, out, "go")
	assert.Contains(t, out, "map built")
	assert.Contains(t, out, "3 blocks")
}

func TestMapCommandMissingFile(t *testing.T) {
	_, cfg := writeFixtures(t)

	_, err := execute(t, "map", filepath.Join(t.TempDir(), "nope.md"), "--config", cfg)
	require.Error(t, err)
}

func TestMapCommandRequiresFile(t *testing.T) {
	_, err := execute(t, "map")
	require.Error(t, err)
}

func TestResolveLine(t *testing.T) {
	doc, cfg := writeFixtures(t)

	out, err := execute(t, "resolve", doc, "--line", "1", "--config", cfg)
	require.NoError(t, err)

	assert.Contains(t, out, "offset:")
	assert.Contains(t, out, "0.0px")
	assert.Contains(t, out, "heading")
	assert.Contains(t, out, "raw zone: false")
}

func TestResolveLineInRawZone(t *testing.T) {
	doc, cfg := writeFixtures(t)

	out, err := execute(t, "resolve", doc, "--line", "6", "--config", cfg)
	require.NoError(t, err)

	assert.Contains(t, out, "code")
	assert.Contains(t, out, "raw zone: true")
}

func TestResolveOffset(t *testing.T) {
	doc, cfg := writeFixtures(t)

	out, err := execute(t, "resolve", doc, "--offset", "0", "--config", cfg)
	require.NoError(t, err)

	assert.Contains(t, out, "line:")
	assert.Contains(t, out, "1.00")
	assert.Contains(t, out, "heading")
}

func TestResolveFlagValidation(t *testing.T) {
	doc, cfg := writeFixtures(t)

	_, err := execute(t, "resolve", doc, "--config", cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exactly one")

	_, err = execute(t, "resolve", doc, "--line", "1", "--offset", "10", "--config", cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exactly one")
}

func TestInitCommand(t *testing.T) {
	target := filepath.Join(t.TempDir(), ".mdsync.yaml")

	_, err := execute(t, "init", "--output", target)
	require.NoError(t, err)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Contains(t, string(data), "debounce_ms: 200")

	// A second run without --force refuses to clobber.
	_, err = execute(t, "init", "--output", target)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, err = execute(t, "init", "--output", target, "--force")
	require.NoError(t, err)
}

func TestVersionCommand(t *testing.T) {
	_, err := execute(t, "version")
	require.NoError(t, err)
}

func TestUnknownCommand(t *testing.T) {
	_, err := execute(t, "bogus")
	require.Error(t, err)
}

func TestColorMode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		flag string
		cfg  string
		want string
	}{
		{"flag wins", "always", "never", "always"},
		{"config when no flag", "", "never", "never"},
		{"auto fallback", "", "", "auto"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			opts := &rootOptions{color: testCase.flag}
			cfg := &config.Config{Color: testCase.cfg}
			assert.Equal(t, testCase.want, colorMode(opts, cfg))
		})
	}
}
