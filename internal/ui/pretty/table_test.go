package pretty

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdsync/pkg/blocktree"
	"github.com/yaklabco/mdsync/pkg/linemap"
)

func sampleTree() *blocktree.Tree {
	tree := blocktree.NewTree()
	h := tree.AppendTagged(blocktree.KindHeading, 1, 1)
	h.HeadingLevel = 1
	h.Height = 48

	code := tree.AppendTagged(blocktree.KindCodeBlock, 3, 7)
	code.Language = "go"
	code.OffsetTop = 64
	code.Height = 129

	tree.Append(blocktree.KindRaw)
	return tree
}

func TestFormatTree(t *testing.T) {
	t.Parallel()

	f := NewTableFormatter(NewStyles(false), 100)
	out := f.FormatTree(sampleTree())

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 5, "header, separator, and one row per block")

	assert.Contains(t, lines[0], "BLOCK")
	assert.Contains(t, lines[0], "LINES")
	assert.Contains(t, lines[0], "LANG")
	assert.True(t, strings.HasPrefix(lines[1], "="))

	assert.Contains(t, lines[2], "heading")
	assert.Contains(t, lines[3], "3-7")
	assert.Contains(t, lines[3], "code")
	assert.Contains(t, lines[3], "go")
	assert.Contains(t, lines[3], "64.0")
	assert.Contains(t, lines[3], "129.0")

	// Untagged blocks render the marker instead of a range.
	assert.Contains(t, lines[4], untaggedMarker)
}

func TestFormatTreeEmpty(t *testing.T) {
	t.Parallel()

	f := NewTableFormatter(NewStyles(false), 100)
	assert.Empty(t, f.FormatTree(nil))
	assert.Empty(t, f.FormatTree(blocktree.NewTree()))
}

func TestFormatRange(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		block *blocktree.Block
		want  string
	}{
		{"single line", &blocktree.Block{Tagged: true, Range: blocktree.LineRange{Start: 4, End: 4}}, "4"},
		{"multi line", &blocktree.Block{Tagged: true, Range: blocktree.LineRange{Start: 2, End: 9}}, "2-9"},
		{"untagged", &blocktree.Block{}, untaggedMarker},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.want, formatRange(testCase.block))
		})
	}
}

func TestFormatBuildSummary(t *testing.T) {
	t.Parallel()

	f := NewSummaryFormatter(NewStyles(false))
	out := f.FormatBuild(linemap.UpdateEvent{
		LineCount:    42,
		ElementCount: 7,
		BuildTime:    1500 * time.Microsecond,
	}, 980.5)

	assert.Contains(t, out, "map built")
	assert.Contains(t, out, "42 lines")
	assert.Contains(t, out, "7 blocks")
	assert.Contains(t, out, "980.5px")
}

func TestFormatErrorSummary(t *testing.T) {
	t.Parallel()

	f := NewSummaryFormatter(NewStyles(false))
	out := f.FormatError(linemap.ErrorEvent{Message: "no container attached"})

	assert.Contains(t, out, "map failed")
	assert.Contains(t, out, "no container attached")
}

func TestColorEnabled(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	assert.True(t, ColorEnabled("always", &buf))
	assert.False(t, ColorEnabled("never", &buf))
	// A plain buffer is not a terminal.
	assert.False(t, ColorEnabled("auto", &buf))
}
