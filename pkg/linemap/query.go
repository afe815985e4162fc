package linemap

import "github.com/yaklabco/mdsync/pkg/blocktree"

// ElementForLine returns the block whose line range contains the given
// 1-based line, or nil if no tagged block covers it. A dirty map is rebuilt
// inline first.
func (m *Mapper) ElementForLine(line int) *blocktree.Block {
	m.mu.Lock()
	events := m.ensureFreshLocked()
	var blk *blocktree.Block
	if s := m.spanForLineLocked(line); s != nil && m.tree != nil {
		blk = m.tree.ByID(s.id)
	}
	m.mu.Unlock()
	m.dispatch(events)
	return blk
}

// ScrollPositionForLine maps a source line to a vertical pixel offset using
// height-weighted interpolation inside the containing block: a block
// spanning several source lines renders as one element of known height, so
// intra-block position is estimated proportionally by line index.
//
// Lines past the mapped range clamp to the offset of the last block; lines
// before the first block map to 0.
func (m *Mapper) ScrollPositionForLine(line int) float64 {
	m.mu.Lock()
	events := m.ensureFreshLocked()
	pos := m.scrollPositionLocked(line)
	m.mu.Unlock()
	m.dispatch(events)
	return pos
}

// LineForScrollPosition is the inverse mapping: it finds the block whose
// vertical interval contains scrollTop and interpolates a source line inside
// its range. The result may be fractional; callers needing an integer line
// round explicitly, which preserves sub-line precision for smooth sync.
//
// Offsets past the last block return that block's end line.
func (m *Mapper) LineForScrollPosition(scrollTop float64) float64 {
	m.mu.Lock()
	events := m.ensureFreshLocked()
	line := m.lineForScrollLocked(scrollTop)
	m.mu.Unlock()
	m.dispatch(events)
	return line
}

// ElementHeight returns the measured height of the block containing the
// given line, or 0 if no block covers it.
func (m *Mapper) ElementHeight(line int) float64 {
	m.mu.Lock()
	events := m.ensureFreshLocked()
	var h float64
	if s := m.spanForLineLocked(line); s != nil {
		h = s.height
	}
	m.mu.Unlock()
	m.dispatch(events)
	return h
}

// ElementOffset returns the measured top offset of the block containing the
// given line, or 0 if no block covers it.
func (m *Mapper) ElementOffset(line int) float64 {
	m.mu.Lock()
	events := m.ensureFreshLocked()
	var off float64
	if s := m.spanForLineLocked(line); s != nil {
		off = s.offset
	}
	m.mu.Unlock()
	m.dispatch(events)
	return off
}

// TotalMappedHeight returns the maximum offset+height across all tagged
// blocks.
func (m *Mapper) TotalMappedHeight() float64 {
	m.mu.Lock()
	events := m.ensureFreshLocked()
	h := m.totalMappedHeight
	m.mu.Unlock()
	m.dispatch(events)
	return h
}

// TotalSourceLines returns the highest tagged source line.
func (m *Mapper) TotalSourceLines() int {
	m.mu.Lock()
	events := m.ensureFreshLocked()
	n := m.totalSourceLines
	m.mu.Unlock()
	m.dispatch(events)
	return n
}

// IsRawZone returns true if the block containing the line is a verbatim
// region (code block or frontmatter). A line with no containing block yields
// false, not an error.
func (m *Mapper) IsRawZone(line int) bool {
	m.mu.Lock()
	events := m.ensureFreshLocked()
	raw := false
	if s := m.spanForLineLocked(line); s != nil {
		raw = s.kind.IsRawZone()
	}
	m.mu.Unlock()
	m.dispatch(events)
	return raw
}

// spanForLineLocked locates the span containing a line: O(1) through the
// line index when the line was collected, linear scan of the ordered spans
// otherwise.
func (m *Mapper) spanForLineLocked(line int) *span {
	if line < 1 {
		return nil
	}
	if id, ok := m.lineToBlock[line]; ok {
		if i, ok := m.spanByID[id]; ok {
			return &m.spans[i]
		}
	}
	for i := range m.spans {
		if m.spans[i].rng.Contains(line) {
			return &m.spans[i]
		}
	}
	return nil
}

// scrollPositionLocked implements the forward interpolation.
func (m *Mapper) scrollPositionLocked(line int) float64 {
	if len(m.spans) == 0 || line < 1 {
		return 0
	}

	// Track the last block entirely before the line in case nothing
	// contains it.
	var before *span
	for i := range m.spans {
		s := &m.spans[i]
		if s.rng.Contains(line) {
			fraction := 0.0
			if n := s.rng.Span(); n > 1 {
				fraction = float64(line-s.rng.Start) / float64(n)
			}
			return s.offset + s.height*fraction
		}
		if s.rng.End < line {
			before = s
		}
	}
	if before != nil {
		return before.offset
	}
	return 0
}

// lineForScrollLocked implements the inverse interpolation.
func (m *Mapper) lineForScrollLocked(scrollTop float64) float64 {
	if len(m.spans) == 0 {
		return 0
	}

	// Each span occupies the half-open interval [offset, offset+height).
	for i := range m.spans {
		s := &m.spans[i]
		if s.offset+s.height <= scrollTop {
			continue
		}
		if scrollTop < s.offset {
			// Gap before this block; snap to its first line.
			return float64(s.rng.Start)
		}
		fraction := 0.0
		if s.height > 0 {
			fraction = (scrollTop - s.offset) / s.height
		}
		return float64(s.rng.Start) + fraction*float64(s.rng.Span())
	}

	// Past the last block.
	return float64(m.spans[len(m.spans)-1].rng.End)
}
