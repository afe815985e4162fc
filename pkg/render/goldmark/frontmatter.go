package goldmark

import "bytes"

// frontmatter describes a YAML metadata header at the top of the document.
type frontmatter struct {
	// endLine is the 1-based line of the closing delimiter.
	endLine int

	// endOffset is the byte offset just past the closing delimiter's line,
	// where the Markdown body begins.
	endOffset int
}

// detectFrontmatter recognizes a leading YAML header delimited by "---"
// lines ("..." is also accepted as the closing delimiter). The header is a
// raw zone: goldmark would otherwise parse the delimiters as thematic breaks
// and the keys as paragraphs.
func detectFrontmatter(content []byte) (frontmatter, bool) {
	if !bytes.HasPrefix(content, []byte("---")) {
		return frontmatter{}, false
	}

	nl := bytes.IndexByte(content, '\n')
	if nl < 0 || len(trimLineEnd(content[:nl])) != 3 {
		return frontmatter{}, false
	}

	line := 1
	pos := nl + 1
	for pos < len(content) {
		next := bytes.IndexByte(content[pos:], '\n')
		var lineEnd, nextPos int
		if next < 0 {
			lineEnd = len(content)
			nextPos = len(content)
		} else {
			lineEnd = pos + next
			nextPos = pos + next + 1
		}
		line++

		text := trimLineEnd(content[pos:lineEnd])
		if bytes.Equal(text, []byte("---")) || bytes.Equal(text, []byte("...")) {
			return frontmatter{endLine: line, endOffset: nextPos}, true
		}
		pos = nextPos
	}

	// Unclosed header: treat the document as plain Markdown.
	return frontmatter{}, false
}

// trimLineEnd strips a trailing carriage return.
func trimLineEnd(line []byte) []byte {
	return bytes.TrimSuffix(line, []byte("\r"))
}
