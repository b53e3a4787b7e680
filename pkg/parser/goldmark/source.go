package goldmark

import (
	"bytes"
	"sort"
	"unicode/utf8"

	"github.com/yaklabco/mdhighlight/pkg/mdast"
)

// source is the raw Markdown bytes split into lines.
// Only '\n' ends a line, matching mdast.LineIndex.
type source struct {
	content []byte

	// starts holds the byte offset of every line start.
	starts []int
}

func newSource(content []byte) *source {
	starts := []int{0}
	for i, b := range content {
		if b == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &source{content: content, starts: starts}
}

// lineCount returns the number of lines.
func (s *source) lineCount() int {
	return len(s.starts)
}

// lineOf returns the 0-based line containing byte offset.
func (s *source) lineOf(offset int) int {
	return sort.Search(len(s.starts), func(i int) bool {
		return s.starts[i] > offset
	}) - 1
}

// lineBounds returns the byte range of a line, excluding its line feed.
func (s *source) lineBounds(line int) (int, int) {
	start := s.starts[line]
	end := len(s.content)
	if line+1 < len(s.starts) {
		end = s.starts[line+1] - 1
	}
	return start, end
}

// lineBytes returns the content of a line, excluding its line feed.
func (s *source) lineBytes(line int) []byte {
	start, end := s.lineBounds(line)
	return s.content[start:end]
}

// isBlank reports whether a line holds only whitespace.
func (s *source) isBlank(line int) bool {
	return len(bytes.TrimSpace(s.lineBytes(line))) == 0
}

// firstNonBlank returns the offset of the first non-whitespace byte of a line,
// or -1 for blank lines.
func (s *source) firstNonBlank(line int) int {
	start, end := s.lineBounds(line)
	for i := start; i < end; i++ {
		if !isSpace(s.content[i]) {
			return i
		}
	}
	return -1
}

// lastNonBlank returns the offset of the first byte of the last non-whitespace
// rune of a line, or -1 for blank lines.
func (s *source) lastNonBlank(line int) int {
	start, end := s.lineBounds(line)
	for end > start && isSpace(s.content[end-1]) {
		end--
	}
	if end == start {
		return -1
	}
	_, size := utf8.DecodeLastRune(s.content[start:end])
	return end - size
}

// lastNonBlankFrom searches backwards from line for a non-blank line and
// returns its last non-whitespace rune offset.
func (s *source) lastNonBlankFrom(line int) (int, int) {
	for ; line >= 0; line-- {
		if offset := s.lastNonBlank(line); offset >= 0 {
			return line, offset
		}
	}
	return -1, -1
}

// nextNonBlank returns the first non-blank line at or after line, or -1.
func (s *source) nextNonBlank(line int) int {
	for ; line < s.lineCount(); line++ {
		if !s.isBlank(line) {
			return line
		}
	}
	return -1
}

// position converts a byte offset to a 1-based position counted in runes.
func (s *source) position(offset int) mdast.Position {
	line := s.lineOf(offset)
	col := utf8.RuneCount(s.content[s.starts[line]:offset]) + 1
	return mdast.Position{Line: line + 1, Column: col}
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\n' || b == '\f' || b == '\v'
}
