package goldmark

import (
	"bytes"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/yaklabco/mdhighlight/pkg/mdast"
)

// minFenceLength is the shortest run of backticks or tildes that opens a fence.
const minFenceLength = 3

// locateLines returns the extent of a leaf block from its line segments.
// The end is the last non-blank rune at or before the last segment's line.
func (m *mapper) locateLines(lines *text.Segments) extent {
	if lines.Len() == 0 {
		return noExtent
	}

	first := lines.At(0)
	start := m.skipSpace(first.Start)

	_, end := m.src.lastNonBlankFrom(m.segmentLine(lines.At(lines.Len() - 1)))
	if start < 0 || end < start {
		return noExtent
	}
	return extent{start: start, end: end}
}

// locateHeading handles both ATX headings, which start at their '#' run,
// and setext headings, which end on their underline.
func (m *mapper) locateHeading(heading *ast.Heading, cursor int) extent {
	lines := heading.Lines()
	if lines.Len() == 0 {
		// An ATX heading with no text ("#").
		return m.locateGap(cursor)
	}

	first := lines.At(0)
	line := m.src.lineOf(first.Start)
	lineStart, _ := m.src.lineBounds(line)
	prefix := m.src.content[lineStart:first.Start]

	if hash := bytes.LastIndexByte(prefix, '#'); hash >= 0 {
		for hash > 0 && prefix[hash-1] == '#' {
			hash--
		}
		return extent{start: lineStart + hash, end: m.src.lastNonBlank(line)}
	}

	// Setext: the underline is the line after the last text line.
	underline := m.segmentLine(lines.At(lines.Len()-1)) + 1
	if underline >= m.src.lineCount() {
		return m.locateLines(lines)
	}
	_, end := m.src.lastNonBlankFrom(underline)
	return extent{start: m.skipSpace(first.Start), end: end}
}

// locateFencedCode spans the opening fence through the closing fence.
// An unclosed block ends at its last non-blank content line.
func (m *mapper) locateFencedCode(block *ast.FencedCodeBlock, cursor int) extent {
	lines := block.Lines()

	open := -1
	switch {
	case block.Info != nil:
		open = m.src.lineOf(block.Info.Segment.Start)
	case lines.Len() > 0:
		open = m.segmentLine(lines.At(0)) - 1
	default:
		open = m.findFenceLine(cursor)
	}
	if open < 0 {
		return noExtent
	}

	openStart, _ := m.src.lineBounds(open)
	fenceAt, fenceChar, fenceLen := findFence(m.src.lineBytes(open))
	start := openStart + fenceAt
	if fenceAt < 0 {
		start = m.src.firstNonBlank(open)
	}

	closing := open + 1
	if lines.Len() > 0 {
		closing = m.segmentLine(lines.At(lines.Len()-1)) + 1
	}

	endLine := closing - 1
	if fenceAt >= 0 && closing < m.src.lineCount() &&
		isClosingFence(m.src.lineBytes(closing), fenceChar, fenceLen) {
		endLine = closing
	}

	_, end := m.src.lastNonBlankFrom(endLine)
	if start < 0 || end < start {
		return noExtent
	}
	return extent{start: start, end: end}
}

// locateHTMLBlock includes the closure line when the block has one.
func (m *mapper) locateHTMLBlock(block *ast.HTMLBlock) extent {
	ext := m.locateLines(block.Lines())
	if !block.HasClosure() {
		return ext
	}

	closure := m.segmentExtent(block.ClosureLine)
	if !closure.valid() {
		return ext
	}
	_, end := m.src.lastNonBlankFrom(m.src.lineOf(closure.end))
	return ext.union(extent{start: m.skipSpace(block.ClosureLine.Start), end: end})
}

// locateContainer maps the children of a container block and spans them.
// A container without locatable children occupies the next non-blank line.
func (m *mapper) locateContainer(gmNode ast.Node, node *mdast.Node, cursor int) extent {
	ext := m.mapChildren(gmNode, node, cursor)
	if ext.valid() {
		return ext
	}
	return m.locateGap(cursor)
}

// locateGap returns the first non-blank line at or after cursor.
// Blocks that carry no segments (thematic breaks, empty containers) are
// found this way.
func (m *mapper) locateGap(cursor int) extent {
	line := m.src.nextNonBlank(cursor)
	if line < 0 {
		return noExtent
	}
	return extent{start: m.src.firstNonBlank(line), end: m.src.lastNonBlank(line)}
}

// quoteMarker moves start back to the nearest '>' on its line.
func (m *mapper) quoteMarker(start int) int {
	lineStart, _ := m.src.lineBounds(m.src.lineOf(start))
	if idx := bytes.LastIndexByte(m.src.content[lineStart:start], '>'); idx >= 0 {
		return lineStart + idx
	}
	return start
}

// listMarker moves start back over the list marker preceding it on its line.
func (m *mapper) listMarker(start int) int {
	content := m.src.content
	lineStart, _ := m.src.lineBounds(m.src.lineOf(start))

	pos := start
	for pos > lineStart && (content[pos-1] == ' ' || content[pos-1] == '\t') {
		pos--
	}
	if pos == lineStart {
		return start
	}

	switch content[pos-1] {
	case '-', '+', '*':
		return pos - 1
	case '.', ')':
		digits := pos - 1
		for digits > lineStart && content[digits-1] >= '0' && content[digits-1] <= '9' {
			digits--
		}
		if digits < pos-1 {
			return digits
		}
	}
	return start
}

// findFenceLine returns the first non-blank line at or after cursor that
// holds a code fence, or -1.
func (m *mapper) findFenceLine(cursor int) int {
	for line := m.src.nextNonBlank(cursor); line >= 0 && line < m.src.lineCount(); line++ {
		if at, _, _ := findFence(m.src.lineBytes(line)); at >= 0 {
			return line
		}
	}
	return -1
}

// segmentLine returns the line holding the last byte of seg.
func (m *mapper) segmentLine(seg text.Segment) int {
	if seg.Stop > seg.Start {
		return m.src.lineOf(seg.Stop - 1)
	}
	return m.src.lineOf(seg.Start)
}

// skipSpace advances offset past spaces and tabs on the same line.
func (m *mapper) skipSpace(offset int) int {
	content := m.src.content
	for offset < len(content) && (content[offset] == ' ' || content[offset] == '\t') {
		offset++
	}
	return offset
}

// findFence locates the first run of at least three backticks or tildes
// in line. It returns the run's offset, character and length, or -1.
func findFence(line []byte) (int, byte, int) {
	for i := 0; i < len(line); {
		ch := line[i]
		if ch != '`' && ch != '~' {
			i++
			continue
		}

		n := 0
		for i+n < len(line) && line[i+n] == ch {
			n++
		}
		if n >= minFenceLength {
			return i, ch, n
		}
		i += n
	}
	return -1, 0, 0
}

// isClosingFence reports whether line closes a fence opened with n runes of ch.
// Leading container markers ('>') and indentation are ignored.
func isClosingFence(line []byte, ch byte, n int) bool {
	line = bytes.TrimLeft(line, " \t>")

	run := 0
	for run < len(line) && line[run] == ch {
		run++
	}
	if run < n {
		return false
	}
	return len(bytes.TrimSpace(line[run:])) == 0
}
