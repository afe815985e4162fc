package blocktree

import "testing"

func TestBuildLineIndex(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		content   string
		wantCount int
	}{
		{"empty content", "", 0},
		{"single unterminated line", "hello", 1},
		{"single terminated line", "hello\n", 2},
		{"two lines", "a\nb", 2},
		{"crlf endings", "a\r\nb\r\n", 3},
		{"blank lines", "a\n\n\nb", 4},
		{"only newline", "\n", 2},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			idx := BuildLineIndex([]byte(testCase.content))
			if got := idx.Count(); got != testCase.wantCount {
				t.Errorf("expected %d lines, got %d", testCase.wantCount, got)
			}
		})
	}
}

func TestLineAt(t *testing.T) {
	t.Parallel()

	// Offsets:  0123 456 789
	content := []byte("abc\nde\nfg\n")
	idx := BuildLineIndex(content)

	tests := []struct {
		name   string
		offset int
		want   int
	}{
		{"start of first line", 0, 1},
		{"inside first line", 2, 1},
		{"first newline", 3, 1},
		{"start of second line", 4, 2},
		{"start of third line", 7, 3},
		{"last newline", 9, 3},
		{"past end clamps to last line", 100, 4},
		{"negative offset", -1, 0},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			if got := idx.LineAt(testCase.offset); got != testCase.want {
				t.Errorf("LineAt(%d): expected %d, got %d", testCase.offset, testCase.want, got)
			}
		})
	}
}

func TestLineAtCRLF(t *testing.T) {
	t.Parallel()

	// Offsets:  01 23 45 67
	content := []byte("ab\r\ncd\r\n")
	idx := BuildLineIndex(content)

	if got := idx.LineAt(1); got != 1 {
		t.Errorf("expected line 1, got %d", got)
	}
	// The CR belongs to the first line's terminator.
	if got := idx.LineAt(2); got != 1 {
		t.Errorf("expected CR offset on line 1, got %d", got)
	}
	if got := idx.LineAt(4); got != 2 {
		t.Errorf("expected line 2, got %d", got)
	}
}

func TestLineInfo(t *testing.T) {
	t.Parallel()

	idx := BuildLineIndex([]byte("ab\r\ncd"))

	info, ok := idx.Info(1)
	if !ok {
		t.Fatal("expected info for line 1")
	}
	if info.StartOffset != 0 || info.NewlineStart != 2 || info.EndOffset != 4 {
		t.Errorf("unexpected extents for line 1: %+v", info)
	}

	info, ok = idx.Info(2)
	if !ok {
		t.Fatal("expected info for line 2")
	}
	if info.StartOffset != 4 || info.NewlineStart != 6 || info.EndOffset != 6 {
		t.Errorf("unexpected extents for unterminated line 2: %+v", info)
	}

	if _, ok := idx.Info(0); ok {
		t.Error("expected no info for line 0")
	}
	if _, ok := idx.Info(3); ok {
		t.Error("expected no info past the last line")
	}
}

func TestLineSpan(t *testing.T) {
	t.Parallel()

	// Offsets:  0123 456 789
	content := []byte("abc\nde\nfg\n")
	idx := BuildLineIndex(content)

	tests := []struct {
		name       string
		start, end int
		want       LineRange
	}{
		{"single line", 0, 3, LineRange{Start: 1, End: 1}},
		{"two lines", 0, 6, LineRange{Start: 1, End: 2}},
		{"all lines", 0, 10, LineRange{Start: 1, End: 3}},
		{"empty range", 4, 4, LineRange{Start: 2, End: 2}},
		{"mid line to mid line", 1, 8, LineRange{Start: 1, End: 3}},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			got := idx.LineSpan(testCase.start, testCase.end)
			if got != testCase.want {
				t.Errorf("LineSpan(%d, %d): expected %v, got %v",
					testCase.start, testCase.end, testCase.want, got)
			}
		})
	}
}
