package goldmark

import (
	"bytes"

	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"

	"github.com/yaklabco/mdsync/pkg/blocktree"
	"github.com/yaklabco/mdsync/pkg/langdetect"
)

// collector converts top-level goldmark block nodes into tree blocks.
type collector struct {
	tree    *blocktree.Tree
	idx     *blocktree.LineIndex
	content []byte
	body    []byte

	// bodyStart is the byte offset of the parsed body within content;
	// nonzero when frontmatter was split off. goldmark segment positions
	// are relative to the body.
	bodyStart int

	// lastLine tracks the end line of the previous tagged block, used to
	// place nodes goldmark reports without line segments. Seeded with the
	// frontmatter's end line when a header was split off, so a segment-less
	// node at the top of the body never lands inside the header's range.
	lastLine int
}

// collectBlocks walks the document's direct children in order.
func (c *collector) collectBlocks(doc ast.Node) {
	for child := doc.FirstChild(); child != nil; child = child.NextSibling() {
		c.collectNode(child)
	}
}

// collectNode appends one tree block for a goldmark block node. Nodes whose
// source extent cannot be determined are appended untagged; the mapper skips
// them.
func (c *collector) collectNode(n ast.Node) {
	kind := kindFor(n)

	rng, ok := c.lineRangeFor(n)
	if !ok {
		c.tree.Append(kind)
		return
	}

	b := c.tree.AppendTagged(kind, rng.Start, rng.End)
	c.lastLine = rng.End

	switch gmn := n.(type) {
	case *ast.Heading:
		b.HeadingLevel = gmn.Level
	case *ast.FencedCodeBlock:
		b.Language = c.fenceLanguage(gmn)
	case *ast.CodeBlock:
		b.Language = langdetect.Detect(c.nodeText(gmn))
	}
}

// kindFor maps a goldmark node type to a block kind.
func kindFor(n ast.Node) blocktree.Kind {
	switch n.(type) {
	case *ast.Heading:
		return blocktree.KindHeading
	case *ast.Paragraph, *ast.TextBlock:
		return blocktree.KindParagraph
	case *ast.List:
		return blocktree.KindList
	case *ast.Blockquote:
		return blocktree.KindBlockquote
	case *ast.FencedCodeBlock, *ast.CodeBlock:
		return blocktree.KindCodeBlock
	case *ast.HTMLBlock:
		return blocktree.KindHTMLBlock
	case *ast.ThematicBreak:
		return blocktree.KindThematicBreak
	case *east.Table:
		return blocktree.KindTable
	default:
		return blocktree.KindRaw
	}
}

// lineRangeFor determines the 1-based source line range of a node.
func (c *collector) lineRangeFor(n ast.Node) (blocktree.LineRange, bool) {
	start, end, ok := byteRange(n)
	if ok {
		rng := c.idx.LineSpan(start+c.bodyStart, end+c.bodyStart)
		if fenced, isFence := n.(*ast.FencedCodeBlock); isFence {
			rng = c.expandFence(fenced, rng)
		}
		if rng.IsValid() {
			return rng, true
		}
		return blocktree.LineRange{}, false
	}

	// Thematic breaks and empty blocks carry no line segments; take the
	// first non-blank line after the previous block.
	if line, found := c.firstNonBlankAfter(c.lastLine); found {
		return blocktree.LineRange{Start: line, End: line}, true
	}
	return blocktree.LineRange{}, false
}

// byteRange returns the body-relative byte extent of a node, recursing into
// container nodes (lists, blockquotes) whose own segment list is empty.
func byteRange(n ast.Node) (int, int, bool) {
	if n.Type() == ast.TypeBlock {
		if lines := n.Lines(); lines.Len() > 0 {
			return lines.At(0).Start, lines.At(lines.Len() - 1).Stop, true
		}
	}

	start, end := -1, -1
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		cs, ce, ok := byteRange(child)
		if !ok {
			continue
		}
		if start == -1 || cs < start {
			start = cs
		}
		if ce > end {
			end = ce
		}
	}
	if start == -1 {
		return 0, 0, false
	}
	return start, end, true
}

// expandFence widens a fenced code block's range to include the fence lines,
// which goldmark excludes from the node's segments.
func (c *collector) expandFence(n *ast.FencedCodeBlock, rng blocktree.LineRange) blocktree.LineRange {
	if n.Info != nil {
		// The info string sits on the opening fence line.
		if line := c.idx.LineAt(n.Info.Segment.Start + c.bodyStart); line > 0 {
			rng.Start = line
		}
	} else if rng.Start > 1 {
		if c.isFenceLine(rng.Start - 1) {
			rng.Start--
		}
	}
	if rng.End < c.idx.Count() && c.isFenceLine(rng.End+1) {
		rng.End++
	}
	return rng
}

// isFenceLine reports whether a source line starts a code fence.
func (c *collector) isFenceLine(line int) bool {
	info, ok := c.idx.Info(line)
	if !ok {
		return false
	}
	text := bytes.TrimLeft(c.content[info.StartOffset:info.NewlineStart], " \t")
	return bytes.HasPrefix(text, []byte("```")) || bytes.HasPrefix(text, []byte("~~~"))
}

// firstNonBlankAfter finds the first non-blank source line after the given
// line.
func (c *collector) firstNonBlankAfter(after int) (int, bool) {
	for line := after + 1; line <= c.idx.Count(); line++ {
		info, ok := c.idx.Info(line)
		if !ok {
			return 0, false
		}
		if len(bytes.TrimSpace(c.content[info.StartOffset:info.NewlineStart])) > 0 {
			return line, true
		}
	}
	return 0, false
}

// fenceLanguage resolves a fenced block's language from its info string, or
// guesses from content when the fence is bare.
func (c *collector) fenceLanguage(n *ast.FencedCodeBlock) string {
	if n.Info != nil {
		if info := bytes.Fields(n.Info.Value(c.body)); len(info) > 0 {
			return langdetect.Normalize(string(info[0]))
		}
	}
	return langdetect.Detect(c.nodeText(n))
}

// nodeText concatenates a block node's content line segments.
func (c *collector) nodeText(n ast.Node) []byte {
	var out []byte
	lines := n.Lines()
	for i := range lines.Len() {
		seg := lines.At(i)
		out = append(out, seg.Value(c.body)...)
	}
	return out
}
