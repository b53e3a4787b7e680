package goldmark

import (
	"bytes"
	"unicode/utf8"

	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"github.com/yaklabco/mdhighlight/pkg/mdast"
)

// extent is an inclusive byte span: start is the first byte of the first
// rune, end is the first byte of the last rune.
type extent struct {
	start int
	end   int
}

//nolint:gochecknoglobals // Immutable sentinel value.
var noExtent = extent{start: -1, end: -1}

func (e extent) valid() bool {
	return e.start >= 0 && e.end >= e.start
}

func (e extent) union(other extent) extent {
	if !e.valid() {
		return other
	}
	if !other.valid() {
		return e
	}
	return extent{start: min(e.start, other.start), end: max(e.end, other.end)}
}

// mapper converts a goldmark AST into an mdast.Node tree with
// CommonMark-style source positions.
type mapper struct {
	src *source
}

// newMapper creates a new mapper for the given content.
func newMapper(content []byte) *mapper {
	return &mapper{src: newSource(content)}
}

// mapDocument converts a goldmark document node to an mdast.Node tree.
// Top-level blocks start at the first non-blank rune of their first line.
func (m *mapper) mapDocument(gmDoc ast.Node) *mdast.Node {
	doc := mdast.NewDocument()
	doc.Start = mdast.Position{Line: 1, Column: 1}
	doc.End = doc.Start
	if _, last := m.src.lastNonBlankFrom(m.src.lineCount() - 1); last >= 0 {
		doc.End = m.src.position(last)
	}

	cursor := 0
	for child := gmDoc.FirstChild(); child != nil; child = child.NextSibling() {
		node, ext := m.mapBlock(child, cursor, true)
		mdast.AppendChild(doc, node)
		if ext.valid() {
			cursor = m.src.lineOf(ext.end) + 1
		}
	}

	return doc
}

// mapChildren maps every child of gmParent onto parent and returns the
// union of their extents. cursor is the first line the children may occupy.
func (m *mapper) mapChildren(gmParent ast.Node, parent *mdast.Node, cursor int) extent {
	ext := noExtent
	for child := gmParent.FirstChild(); child != nil; child = child.NextSibling() {
		var childExt extent
		if child.Type() == ast.TypeInline {
			var nodes []*mdast.Node
			nodes, childExt = m.mapInline(child)
			for _, node := range nodes {
				mdast.AppendChild(parent, node)
			}
		} else {
			var node *mdast.Node
			node, childExt = m.mapBlock(child, cursor, false)
			mdast.AppendChild(parent, node)
		}

		if childExt.valid() {
			ext = ext.union(childExt)
			cursor = m.src.lineOf(childExt.end) + 1
		}
	}
	return ext
}

// mapBlock converts a block node and locates it in the source.
func (m *mapper) mapBlock(gmNode ast.Node, cursor int, topLevel bool) (*mdast.Node, extent) {
	var node *mdast.Node
	var ext extent

	switch gmn := gmNode.(type) {
	case *ast.Heading:
		node = mdast.NewNode(mdast.NodeHeading)
		node.Level = gmn.Level
		m.mapChildren(gmn, node, cursor)
		ext = m.locateHeading(gmn, cursor)

	case *ast.Paragraph, *ast.TextBlock:
		node = mdast.NewNode(mdast.NodeParagraph)
		m.mapChildren(gmNode, node, cursor)
		ext = m.locateLines(gmNode.Lines())

	case *ast.FencedCodeBlock:
		node = mdast.NewNode(mdast.NodeCodeBlock)
		literal := m.linesValue(gmn.Lines())
		node.Literal = &literal
		if gmn.Info != nil {
			info := string(gmn.Info.Segment.Value(m.src.content))
			node.FenceInfo = &info
		}
		ext = m.locateFencedCode(gmn, cursor)

	case *ast.CodeBlock:
		node = mdast.NewNode(mdast.NodeCodeBlock)
		literal := m.linesValue(gmn.Lines())
		node.Literal = &literal
		ext = m.locateLines(gmn.Lines())

	case *ast.HTMLBlock:
		node = mdast.NewNode(mdast.NodeHTMLBlock)
		literal := m.linesValue(gmn.Lines())
		if gmn.HasClosure() {
			literal += string(gmn.ClosureLine.Value(m.src.content))
		}
		node.Literal = &literal
		ext = m.locateHTMLBlock(gmn)

	case *ast.ThematicBreak:
		node = mdast.NewNode(mdast.NodeThematicBreak)
		ext = m.locateGap(cursor)

	case *ast.Blockquote:
		node = mdast.NewNode(mdast.NodeBlockQuote)
		ext = m.locateContainer(gmn, node, cursor)
		if !topLevel {
			ext.start = m.quoteMarker(ext.start)
		}

	case *ast.List:
		node = mdast.NewNode(mdast.NodeList)
		ext = m.locateContainer(gmn, node, cursor)

	case *ast.ListItem:
		node = mdast.NewNode(mdast.NodeItem)
		ext = m.locateContainer(gmn, node, cursor)
		if !topLevel {
			ext.start = m.listMarker(ext.start)
		}

	case *east.Table, *east.TableHeader, *east.TableRow, *east.TableCell:
		node = mdast.NewNode(mdast.NodeCustomBlock)
		ext = m.locateContainer(gmNode, node, cursor)

	default:
		node = mdast.NewNode(mdast.NodeCustomBlock)
		ext = m.locateContainer(gmNode, node, cursor)
	}

	if ext.valid() {
		line := m.src.lineOf(ext.start)
		if topLevel {
			if first := m.src.firstNonBlank(line); first >= 0 {
				ext.start = first
			}
		}
		if last := m.src.lastNonBlank(m.src.lineOf(ext.end)); last > ext.end {
			ext.end = last
		}
		node.Start = m.src.position(ext.start)
		node.End = m.src.position(ext.end)
	}

	return node, ext
}

// mapInline converts an inline node. A text node ending in a line break
// yields an extra softbreak or linebreak node.
func (m *mapper) mapInline(gmNode ast.Node) ([]*mdast.Node, extent) {
	var node *mdast.Node
	ext := noExtent
	var trailing *mdast.Node

	switch gmn := gmNode.(type) {
	case *ast.Text:
		node = mdast.NewNode(mdast.NodeText)
		literal := string(gmn.Value(m.src.content))
		node.Literal = &literal
		ext = m.segmentExtent(gmn.Segment)
		switch {
		case gmn.HardLineBreak():
			trailing = mdast.NewNode(mdast.NodeLineBreak)
		case gmn.SoftLineBreak():
			trailing = mdast.NewNode(mdast.NodeSoftBreak)
		}

	case *ast.String:
		node = mdast.NewNode(mdast.NodeText)
		literal := string(gmn.Value)
		node.Literal = &literal

	case *ast.CodeSpan:
		node = mdast.NewNode(mdast.NodeCode)
		var buf bytes.Buffer
		for child := gmn.FirstChild(); child != nil; child = child.NextSibling() {
			switch c := child.(type) {
			case *ast.Text:
				buf.Write(c.Value(m.src.content))
				ext = ext.union(m.segmentExtent(c.Segment))
			case *ast.String:
				buf.Write(c.Value)
			}
		}
		literal := buf.String()
		node.Literal = &literal

	case *ast.Emphasis:
		if gmn.Level >= 2 {
			node = mdast.NewNode(mdast.NodeStrong)
		} else {
			node = mdast.NewNode(mdast.NodeEmph)
		}
		ext = m.mapChildren(gmn, node, 0)

	case *ast.Link:
		node = mdast.NewNode(mdast.NodeLink)
		ext = m.mapChildren(gmn, node, 0)

	case *ast.Image:
		node = mdast.NewNode(mdast.NodeImage)
		ext = m.mapChildren(gmn, node, 0)

	case *ast.AutoLink:
		node = mdast.NewNode(mdast.NodeLink)
		literal := string(gmn.Label(m.src.content))
		node.Literal = &literal

	case *ast.RawHTML:
		node = mdast.NewNode(mdast.NodeHTMLInline)
		var buf bytes.Buffer
		for i := range gmn.Segments.Len() {
			seg := gmn.Segments.At(i)
			buf.Write(seg.Value(m.src.content))
			ext = ext.union(m.segmentExtent(seg))
		}
		literal := buf.String()
		node.Literal = &literal

	case *east.Strikethrough, *east.TaskCheckBox:
		node = mdast.NewNode(mdast.NodeCustomInline)
		ext = m.mapChildren(gmNode, node, 0)

	default:
		node = mdast.NewNode(mdast.NodeCustomInline)
		ext = m.mapChildren(gmNode, node, 0)
	}

	if ext.valid() {
		node.Start = m.src.position(ext.start)
		node.End = m.src.position(ext.end)
	}

	if trailing != nil {
		return []*mdast.Node{node, trailing}, ext
	}
	return []*mdast.Node{node}, ext
}

// linesValue concatenates the values of block line segments.
func (m *mapper) linesValue(lines *text.Segments) string {
	var buf bytes.Buffer
	for i := range lines.Len() {
		seg := lines.At(i)
		buf.Write(seg.Value(m.src.content))
	}
	return buf.String()
}

// segmentExtent returns the extent of the runes inside seg.
func (m *mapper) segmentExtent(seg text.Segment) extent {
	if seg.Stop <= seg.Start || seg.Start < 0 || seg.Stop > len(m.src.content) {
		return noExtent
	}
	_, size := utf8.DecodeLastRune(m.src.content[seg.Start:seg.Stop])
	return extent{start: seg.Start, end: seg.Stop - size}
}
