package blocktree

import "sort"

// LineInfo records the byte extent of a single source line.
type LineInfo struct {
	// StartOffset is the byte index of the first character of the line.
	StartOffset int

	// NewlineStart is the byte index where the line terminator begins
	// (equal to EndOffset for the final, unterminated line).
	NewlineStart int

	// EndOffset is the byte index just past the line terminator.
	EndOffset int
}

// LineIndex converts byte offsets in source content to 1-based line numbers.
// It handles both LF and CRLF line endings.
type LineIndex struct {
	lines []LineInfo
	size  int
}

// BuildLineIndex scans content and constructs a LineIndex.
func BuildLineIndex(content []byte) *LineIndex {
	idx := &LineIndex{size: len(content)}
	if len(content) == 0 {
		return idx
	}

	lineStart := 0
	for i, c := range content {
		if c == '\n' {
			newlineStart := i
			if i > 0 && content[i-1] == '\r' {
				newlineStart = i - 1
			}
			idx.lines = append(idx.lines, LineInfo{
				StartOffset:  lineStart,
				NewlineStart: newlineStart,
				EndOffset:    i + 1,
			})
			lineStart = i + 1
		}
	}

	// Final line, possibly without a trailing newline.
	if lineStart <= len(content) {
		idx.lines = append(idx.lines, LineInfo{
			StartOffset:  lineStart,
			NewlineStart: len(content),
			EndOffset:    len(content),
		})
	}

	return idx
}

// Count returns the number of source lines.
func (idx *LineIndex) Count() int {
	return len(idx.lines)
}

// LineAt converts a byte offset to a 1-based line number.
// Offsets at or past the end of content map to the last line.
// Returns 0 for negative offsets or an empty index.
func (idx *LineIndex) LineAt(offset int) int {
	if offset < 0 || len(idx.lines) == 0 {
		return 0
	}
	if offset >= idx.size {
		return len(idx.lines)
	}

	i := sort.Search(len(idx.lines), func(i int) bool {
		return idx.lines[i].EndOffset > offset
	})
	if i >= len(idx.lines) {
		i = len(idx.lines) - 1
	}
	return i + 1
}

// Info returns the byte extent of a 1-based line.
func (idx *LineIndex) Info(line int) (LineInfo, bool) {
	if line < 1 || line > len(idx.lines) {
		return LineInfo{}, false
	}
	return idx.lines[line-1], true
}

// LineSpan converts an inclusive-exclusive byte range to a 1-based inclusive
// line range. The end offset is treated as pointing one past the last byte of
// the range; an empty range yields the single line containing start.
func (idx *LineIndex) LineSpan(start, end int) LineRange {
	startLine := idx.LineAt(start)
	if startLine == 0 {
		return LineRange{}
	}
	endLine := startLine
	if end > start {
		endLine = idx.LineAt(end - 1)
	}
	if endLine < startLine {
		endLine = startLine
	}
	return LineRange{Start: startLine, End: endLine}
}
