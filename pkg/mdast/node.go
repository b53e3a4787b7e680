// Package mdast provides the Markdown node tree consumed by the highlighter
// and the position resolver that maps node coordinates onto text offsets.
package mdast

// NodeType classifies a node. The set mirrors the CommonMark reference node
// types, including the range-bound sentinels that never appear on real nodes.
type NodeType uint32

// Node types in CommonMark reference order.
const (
	NodeNone NodeType = iota

	// Block-level nodes.
	NodeDocument
	NodeBlockQuote
	NodeList
	NodeItem
	NodeCodeBlock
	NodeHTMLBlock
	NodeCustomBlock
	NodeParagraph
	NodeHeading
	NodeThematicBreak
	NodeFirstBlock
	NodeLastBlock

	// Inline-level nodes.
	NodeText
	NodeSoftBreak
	NodeLineBreak
	NodeCode
	NodeHTMLInline
	NodeCustomInline
	NodeEmph
	NodeStrong
	NodeLink
	NodeImage
	NodeFirstInline
	NodeLastInline
)

//nolint:gochecknoglobals // Read-only lookup table.
var nodeTypeNames = [...]string{
	NodeNone:          "none",
	NodeDocument:      "document",
	NodeBlockQuote:    "block_quote",
	NodeList:          "list",
	NodeItem:          "item",
	NodeCodeBlock:     "code_block",
	NodeHTMLBlock:     "html_block",
	NodeCustomBlock:   "custom_block",
	NodeParagraph:     "paragraph",
	NodeHeading:       "heading",
	NodeThematicBreak: "thematic_break",
	NodeFirstBlock:    "first_block",
	NodeLastBlock:     "last_block",
	NodeText:          "text",
	NodeSoftBreak:     "softbreak",
	NodeLineBreak:     "linebreak",
	NodeCode:          "code",
	NodeHTMLInline:    "html_inline",
	NodeCustomInline:  "custom_inline",
	NodeEmph:          "emph",
	NodeStrong:        "strong",
	NodeLink:          "link",
	NodeImage:         "image",
	NodeFirstInline:   "first_inline",
	NodeLastInline:    "last_inline",
}

// IsKnown reports whether t is a member of the enumeration.
// Unknown values are produced only by foreign or future parsers.
func (t NodeType) IsKnown() bool {
	return t <= NodeLastInline
}

// IsSentinel reports whether t is a range-bound marker rather than a real node type.
func (t NodeType) IsSentinel() bool {
	switch t {
	case NodeNone, NodeFirstBlock, NodeLastBlock, NodeFirstInline, NodeLastInline:
		return true
	default:
		return false
	}
}

// String returns the CommonMark name of the node type.
func (t NodeType) String() string {
	if !t.IsKnown() {
		return "unknown"
	}
	return nodeTypeNames[t]
}

// Node is a single element of a parsed Markdown document.
// Children are kept in document order.
type Node struct {
	// Type identifies what kind of node this is.
	Type NodeType

	// Start and End are the inclusive 1-based source coordinates of the node.
	Start Position
	End   Position

	// Literal holds text content for code blocks, text and code spans.
	Literal *string

	// FenceInfo holds the info string of a fenced code block.
	FenceInfo *string

	// Level is the heading level (1-6); zero for other nodes.
	Level int

	// Tree structure pointers.
	Parent     *Node
	FirstChild *Node
	LastChild  *Node
	Prev       *Node
	Next       *Node
}

// HasChildren returns true if this node has any children.
func (n *Node) HasChildren() bool {
	return n.FirstChild != nil
}

// Children returns a slice of all direct children.
func (n *Node) Children() []*Node {
	var children []*Node
	for child := n.FirstChild; child != nil; child = child.Next {
		children = append(children, child)
	}
	return children
}
