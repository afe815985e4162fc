// Package goldmark renders Markdown source into a blocktree using the
// goldmark library. Each top-level block element becomes one tree block
// tagged with the 1-based source line range it was parsed from, and the tree
// is measured through a layout model so the mapper can answer position
// queries against it.
package goldmark

import (
	"context"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/yaklabco/mdsync/internal/logging"
	"github.com/yaklabco/mdsync/pkg/blocktree"
	"github.com/yaklabco/mdsync/pkg/layout"
)

// Flavor identifies the Markdown flavor supported by the renderer.
const (
	FlavorCommonMark = "commonmark"
	FlavorGFM        = "gfm"
)

// Renderer parses Markdown and produces measured block trees.
type Renderer struct {
	flavor   string
	md       goldmark.Markdown
	measurer *layout.Measurer
}

// New creates a renderer for the given flavor. Invalid flavors default to
// CommonMark; invalid metrics default to layout.DefaultMetrics.
func New(flavor string, metrics layout.Metrics) *Renderer {
	f := flavorOrDefault(flavor)
	return &Renderer{
		flavor:   f,
		md:       newGoldmarkInstance(f),
		measurer: layout.NewMeasurer(metrics),
	}
}

// Flavor returns the configured Markdown flavor.
func (r *Renderer) Flavor() string {
	return r.flavor
}

// Render parses content into a new measured block tree.
//
// The pass:
//  1. Builds a line index over the full content (CRLF-aware).
//  2. Splits off YAML frontmatter, which goldmark would misparse.
//  3. Parses the body with goldmark and converts top-level block nodes
//     into tagged tree blocks.
//  4. Measures the tree through the layout model.
func (r *Renderer) Render(ctx context.Context, content []byte) (*blocktree.Tree, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("render cancelled: %w", err)
	}

	tree := blocktree.NewTree()
	idx := blocktree.BuildLineIndex(content)

	body := content
	bodyStart := 0
	headerEnd := 0
	if fm, ok := detectFrontmatter(content); ok {
		b := tree.AppendTagged(blocktree.KindFrontmatter, 1, fm.endLine)
		b.Language = "yaml"
		body = content[fm.endOffset:]
		bodyStart = fm.endOffset
		headerEnd = fm.endLine
	}

	reader := text.NewReader(body)
	doc := r.md.Parser().Parse(reader, parser.WithContext(parser.NewContext()))

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("render cancelled: %w", err)
	}

	c := &collector{
		tree:      tree,
		idx:       idx,
		content:   content,
		body:      body,
		bodyStart: bodyStart,
		lastLine:  headerEnd,
	}
	c.collectBlocks(doc)

	r.measurer.Measure(tree)

	logging.FromContext(ctx).Debug("rendered block tree",
		logging.FieldFlavor, r.flavor,
		logging.FieldBlocks, tree.Len(),
		logging.FieldLineCount, idx.Count(),
	)
	return tree, nil
}

// Rerender parses content into the given tree in place, clearing previous
// blocks, and returns the same tree. Callers holding a mapper on the tree
// follow this with Mapper.Update or NotifyChanged.
func (r *Renderer) Rerender(ctx context.Context, content []byte, tree *blocktree.Tree) error {
	fresh, err := r.Render(ctx, content)
	if err != nil {
		return err
	}
	tree.Clear()
	for _, b := range fresh.Blocks() {
		nb := tree.Append(b.Kind)
		nb.Range = b.Range
		nb.Tagged = b.Tagged
		nb.HeadingLevel = b.HeadingLevel
		nb.Language = b.Language
		nb.Height = b.Height
		nb.OffsetTop = b.OffsetTop
	}
	r.measurer.Measure(tree)
	return nil
}

// flavorOrDefault returns the flavor if valid, otherwise CommonMark.
func flavorOrDefault(flavor string) string {
	switch flavor {
	case FlavorCommonMark, FlavorGFM:
		return flavor
	default:
		return FlavorCommonMark
	}
}

// newGoldmarkInstance creates a configured goldmark.Markdown instance.
//
//nolint:ireturn // goldmark.Markdown is an external interface type
func newGoldmarkInstance(flavor string) goldmark.Markdown {
	var opts []goldmark.Option
	if flavor == FlavorGFM {
		opts = append(opts, goldmark.WithExtensions(extension.GFM))
	}
	return goldmark.New(opts...)
}
