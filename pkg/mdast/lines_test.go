package mdast_test

import (
	"errors"
	"testing"

	"github.com/yaklabco/mdhighlight/pkg/mdast"
)

func TestBuildLineIndex(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		content  string
		expected mdast.LineIndex
	}{
		{"empty content", "", mdast.LineIndex{0}},
		{"single line no newline", "hello", mdast.LineIndex{0}},
		{"single line with LF", "hello\n", mdast.LineIndex{0, 6}},
		{"multiple lines", "abc\ndef\nghi", mdast.LineIndex{0, 4, 8}},
		{"only newline", "\n", mdast.LineIndex{0, 1}},
		{"CRLF counts CR as content", "ab\r\ncd", mdast.LineIndex{0, 4}},
		{"lone CR is not a line break", "ab\rcd", mdast.LineIndex{0}},
		{"multi-byte runes", "h\u00e9llo\nw\u00f6rld\n", mdast.LineIndex{0, 6, 12}},
		{"emoji sequence", "\U0001F469\u200D\U0001F4BB\nx", mdast.LineIndex{0, 4}},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			index := mdast.BuildLineIndex(testCase.content)

			if len(index) != len(testCase.expected) {
				t.Fatalf("expected %d lines, got %d (%v)", len(testCase.expected), len(index), index)
			}

			for i, exp := range testCase.expected {
				if index[i] != exp {
					t.Errorf("line %d: expected offset %d, got %d", i+1, exp, index[i])
				}
			}
		})
	}
}

func TestLineIndex_LengthMatchesLineFeeds(t *testing.T) {
	t.Parallel()

	content := "a\n\nb\r\nc\n"
	index := mdast.BuildLineIndex(content)

	if index.LineCount() != 5 {
		t.Errorf("expected 5 lines, got %d", index.LineCount())
	}
}

func TestLineIndex_Resolve(t *testing.T) {
	t.Parallel()

	content := "abc\ndef\nghi"
	index := mdast.BuildLineIndex(content)

	tests := []struct {
		name     string
		pos      mdast.Position
		expected int
	}{
		{"first rune", mdast.Position{Line: 1, Column: 1}, 0},
		{"line two start", mdast.Position{Line: 2, Column: 1}, 4},
		{"line two end", mdast.Position{Line: 2, Column: 3}, 6},
		{"newline rune", mdast.Position{Line: 1, Column: 4}, 3},
		{"last rune", mdast.Position{Line: 3, Column: 3}, 10},
		{"end of text", mdast.Position{Line: 3, Column: 4}, 11},
		{"column crosses line", mdast.Position{Line: 1, Column: 6}, 5},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			offset, err := index.Resolve(content, testCase.pos)
			if err != nil {
				t.Fatalf("Resolve(%+v) error = %v", testCase.pos, err)
			}

			if offset != testCase.expected {
				t.Errorf("Resolve(%+v) = %d, want %d", testCase.pos, offset, testCase.expected)
			}
		})
	}
}

func TestLineIndex_Resolve_Errors(t *testing.T) {
	t.Parallel()

	content := "abc\ndef"
	index := mdast.BuildLineIndex(content)

	tests := []struct {
		name    string
		pos     mdast.Position
		wantErr error
	}{
		{"zero line", mdast.Position{Line: 0, Column: 1}, mdast.ErrInvalidPosition},
		{"zero column", mdast.Position{Line: 1, Column: 0}, mdast.ErrInvalidPosition},
		{"negative column", mdast.Position{Line: 1, Column: -3}, mdast.ErrInvalidPosition},
		{"line past end", mdast.Position{Line: 3, Column: 1}, mdast.ErrOutOfRange},
		{"column past end", mdast.Position{Line: 2, Column: 5}, mdast.ErrOutOfRange},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			_, err := index.Resolve(content, testCase.pos)
			if !errors.Is(err, testCase.wantErr) {
				t.Errorf("Resolve(%+v) error = %v, want %v", testCase.pos, err, testCase.wantErr)
			}
		})
	}
}

func TestLineIndex_Resolve_Unicode(t *testing.T) {
	t.Parallel()

	// "e" + combining acute accent is one grapheme but two runes;
	// the family emoji is one grapheme but five runes.
	content := "e\u0301x\n\U0001F468\u200D\U0001F469\u200D\U0001F467z"
	index := mdast.BuildLineIndex(content)

	offset, err := index.Resolve(content, mdast.Position{Line: 1, Column: 3})
	if err != nil {
		t.Fatalf("Resolve error = %v", err)
	}
	if offset != 2 {
		t.Errorf("expected offset 2 for 'x', got %d", offset)
	}

	offset, err = index.Resolve(content, mdast.Position{Line: 2, Column: 6})
	if err != nil {
		t.Fatalf("Resolve error = %v", err)
	}
	runes := []rune(content)
	if runes[offset] != 'z' {
		t.Errorf("expected offset %d to land on 'z', got %q", offset, runes[offset])
	}
}

func TestLineIndex_PositionAt(t *testing.T) {
	t.Parallel()

	content := "abc\ndef\nghi"
	index := mdast.BuildLineIndex(content)

	for offset := 0; offset <= 11; offset++ {
		pos := index.PositionAt(offset)
		got, err := index.Resolve(content, pos)
		if err != nil {
			t.Fatalf("Resolve(PositionAt(%d)) error = %v", offset, err)
		}
		if got != offset {
			t.Errorf("round trip for offset %d produced %d (pos %+v)", offset, got, pos)
		}
	}

	if pos := index.PositionAt(-1); pos.IsValid() {
		t.Errorf("expected invalid position for negative offset, got %+v", pos)
	}
}
