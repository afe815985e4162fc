// Package blocktree models the rendered output of a Markdown preview as a
// flat, document-ordered sequence of blocks. Each block corresponds to one
// rendered element (paragraph, heading, code fence, ...) and optionally
// carries the 1-based source line range it was rendered from. The tree is
// produced by a renderer and consumed read-only by the line mapper.
package blocktree

// Kind classifies the rendered element a block represents.
type Kind uint8

const (
	KindParagraph Kind = iota
	KindHeading
	KindList
	KindBlockquote
	KindCodeBlock
	KindHTMLBlock
	KindThematicBreak
	KindTable
	KindFrontmatter

	// Fallback for unrecognized content.
	KindRaw
)

// IsRawZone returns true for block kinds that represent verbatim source
// regions. Callers use this to suppress rich-editing behavior over the
// block's line range.
func (k Kind) IsRawZone() bool {
	switch k {
	case KindCodeBlock, KindFrontmatter:
		return true
	default:
		return false
	}
}

// String returns a short lowercase name for the kind.
func (k Kind) String() string {
	switch k {
	case KindParagraph:
		return "paragraph"
	case KindHeading:
		return "heading"
	case KindList:
		return "list"
	case KindBlockquote:
		return "blockquote"
	case KindCodeBlock:
		return "code"
	case KindHTMLBlock:
		return "html"
	case KindThematicBreak:
		return "break"
	case KindTable:
		return "table"
	case KindFrontmatter:
		return "frontmatter"
	default:
		return "raw"
	}
}

// LineRange is the inclusive 1-based source line span a block claims to
// represent.
type LineRange struct {
	Start int
	End   int
}

// IsValid returns true if the range has positive, ordered bounds.
func (r LineRange) IsValid() bool {
	return r.Start > 0 && r.End >= r.Start
}

// Contains returns true if the given 1-based line falls within the range.
func (r LineRange) Contains(line int) bool {
	return line >= r.Start && line <= r.End
}

// Span returns the number of source lines covered by the range.
func (r LineRange) Span() int {
	if !r.IsValid() {
		return 0
	}
	return r.End - r.Start + 1
}

// ID identifies a block within its tree. IDs are assigned monotonically and
// are never reused for the lifetime of the tree.
type ID int

// IDNone is the zero sentinel for "no block".
const IDNone ID = 0

// Block is a single rendered element.
//
// Range is meaningful only when Tagged is true; the renderer leaves synthetic
// blocks (e.g. generated anchors) untagged and the mapper skips them.
// Height and OffsetTop are computed by a layout measurer after rendering and
// are expressed in pixels from the top of the scrollable container.
type Block struct {
	ID     ID
	Kind   Kind
	Range  LineRange
	Tagged bool

	// Kind-specific metadata.
	HeadingLevel int
	Language     string

	// Layout, assigned by layout.Measurer.
	Height    float64
	OffsetTop float64
}
