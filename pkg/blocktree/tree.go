package blocktree

// Tree holds blocks in document order. It is owned and mutated by the
// renderer; the mapper only reads it. The revision counter increments on
// every structural mutation so observers can cheaply detect staleness.
type Tree struct {
	blocks   []*Block
	byID     map[ID]*Block
	nextID   ID
	revision uint64
}

// NewTree creates an empty tree.
func NewTree() *Tree {
	return &Tree{
		byID:   make(map[ID]*Block),
		nextID: 1,
	}
}

// Append adds a block to the end of the tree, assigns its ID, and returns it.
// The caller fills in kind-specific metadata on the returned block before the
// next measurement pass.
func (t *Tree) Append(kind Kind) *Block {
	b := &Block{
		ID:   t.nextID,
		Kind: kind,
	}
	t.nextID++
	t.blocks = append(t.blocks, b)
	t.byID[b.ID] = b
	t.revision++
	return b
}

// AppendTagged adds a block carrying a source line range.
func (t *Tree) AppendTagged(kind Kind, start, end int) *Block {
	b := t.Append(kind)
	b.Range = LineRange{Start: start, End: end}
	b.Tagged = b.Range.IsValid()
	return b
}

// Blocks returns the blocks in document order. The returned slice is the
// tree's backing storage and must not be mutated by callers.
func (t *Tree) Blocks() []*Block {
	return t.blocks
}

// Len returns the number of blocks.
func (t *Tree) Len() int {
	return len(t.blocks)
}

// ByID returns the block with the given ID, or nil.
func (t *Tree) ByID(id ID) *Block {
	return t.byID[id]
}

// Revision returns the current mutation counter.
func (t *Tree) Revision() uint64 {
	return t.revision
}

// Clear removes all blocks. IDs are not reused.
func (t *Tree) Clear() {
	t.blocks = nil
	t.byID = make(map[ID]*Block)
	t.revision++
}

// Retag replaces a block's line range. Passing an invalid range untags the
// block.
func (t *Tree) Retag(id ID, start, end int) bool {
	b := t.byID[id]
	if b == nil {
		return false
	}
	b.Range = LineRange{Start: start, End: end}
	b.Tagged = b.Range.IsValid()
	t.revision++
	return true
}
