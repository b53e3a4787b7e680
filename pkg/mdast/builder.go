package mdast

// NewNode returns a detached node of type t with no position.
func NewNode(t NodeType) *Node {
	return &Node{Type: t}
}

// NewDocument returns an empty document root.
func NewDocument() *Node {
	return NewNode(NodeDocument)
}

// NewSpanNode returns a node of type t covering start..end.
func NewSpanNode(t NodeType, start, end Position) *Node {
	return &Node{Type: t, Start: start, End: end}
}

// NewCodeBlock returns a code_block node. An empty info string leaves FenceInfo unset.
func NewCodeBlock(start, end Position, literal, info string) *Node {
	node := NewSpanNode(NodeCodeBlock, start, end)
	node.Literal = &literal
	if info != "" {
		node.FenceInfo = &info
	}
	return node
}

// AppendChild makes child the last child of parent, detaching it from
// any previous parent first. Nil arguments are ignored.
func AppendChild(parent, child *Node) {
	if parent == nil || child == nil {
		return
	}
	child.detach()

	child.Parent = parent
	child.Prev = parent.LastChild
	child.Next = nil
	if parent.LastChild == nil {
		parent.FirstChild = child
	} else {
		parent.LastChild.Next = child
	}
	parent.LastChild = child
}

func (n *Node) detach() {
	parent := n.Parent
	if parent == nil {
		return
	}

	if n.Prev == nil {
		parent.FirstChild = n.Next
	} else {
		n.Prev.Next = n.Next
	}
	if n.Next == nil {
		parent.LastChild = n.Prev
	} else {
		n.Next.Prev = n.Prev
	}

	n.Parent, n.Prev, n.Next = nil, nil, nil
}
