package mdast

import (
	"errors"
	"fmt"
	"sort"
	"unicode/utf8"
)

// Errors returned by LineIndex resolution.
var (
	// ErrInvalidPosition indicates a line or column below 1.
	ErrInvalidPosition = errors.New("invalid position")

	// ErrOutOfRange indicates a position past the end of the text.
	ErrOutOfRange = errors.New("position out of range")
)

// LineIndex maps 1-based line numbers to rune offsets.
// Entry i is the offset of the first rune of line i+1; entry 0 is always 0.
//
// Only '\n' terminates a line. A lone '\r' stays part of the line it is on.
type LineIndex []int

// BuildLineIndex scans text once and records the rune offset following
// every line feed.
func BuildLineIndex(text string) LineIndex {
	index := LineIndex{0}
	offset := 0
	for _, r := range text {
		offset++
		if r == '\n' {
			index = append(index, offset)
		}
	}
	return index
}

// LineCount returns the number of lines in the index.
func (idx LineIndex) LineCount() int {
	return len(idx)
}

// Resolve converts a 1-based position into a rune offset within text.
// The offset may equal the rune count of text (end of text) but never exceed it.
func (idx LineIndex) Resolve(text string, pos Position) (int, error) {
	return idx.ResolveCount(utf8.RuneCountInString(text), pos)
}

// ResolveCount is Resolve for callers that already know the rune count of the text.
func (idx LineIndex) ResolveCount(runeCount int, pos Position) (int, error) {
	if !pos.IsValid() {
		return 0, fmt.Errorf("%w: line %d, column %d", ErrInvalidPosition, pos.Line, pos.Column)
	}

	if pos.Line > len(idx) {
		return 0, fmt.Errorf("%w: line %d of %d", ErrOutOfRange, pos.Line, len(idx))
	}

	offset := idx[pos.Line-1] + pos.Column - 1
	if offset > runeCount {
		return 0, fmt.Errorf("%w: line %d, column %d resolves to offset %d of %d",
			ErrOutOfRange, pos.Line, pos.Column, offset, runeCount)
	}

	return offset, nil
}

// PositionAt converts a rune offset back into a 1-based position.
// Returns an invalid Position if offset is negative.
func (idx LineIndex) PositionAt(offset int) Position {
	if offset < 0 || len(idx) == 0 {
		return Position{}
	}

	// Binary search for the last line starting at or before offset.
	line := sort.Search(len(idx), func(i int) bool {
		return idx[i] > offset
	})

	return Position{Line: line, Column: offset - idx[line-1] + 1}
}
