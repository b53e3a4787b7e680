package mdast_test

import (
	"testing"

	"github.com/yaklabco/mdhighlight/pkg/mdast"
)

func TestNewNode(t *testing.T) {
	t.Parallel()

	node := mdast.NewNode(mdast.NodeParagraph)

	if node.Type != mdast.NodeParagraph {
		t.Errorf("expected paragraph, got %s", node.Type)
	}

	if node.Start.IsValid() || node.End.IsValid() {
		t.Error("expected zero positions")
	}

	if node.Parent != nil || node.FirstChild != nil || node.LastChild != nil {
		t.Error("expected nil parent and children")
	}
}

func TestNewCodeBlock(t *testing.T) {
	t.Parallel()

	start := mdast.Position{Line: 1, Column: 1}
	end := mdast.Position{Line: 3, Column: 3}

	block := mdast.NewCodeBlock(start, end, "x := 1\n", "go")
	if block.Type != mdast.NodeCodeBlock {
		t.Fatalf("expected code_block, got %s", block.Type)
	}
	if block.Literal == nil || *block.Literal != "x := 1\n" {
		t.Errorf("unexpected literal %v", block.Literal)
	}
	if block.FenceInfo == nil || *block.FenceInfo != "go" {
		t.Errorf("unexpected fence info %v", block.FenceInfo)
	}

	bare := mdast.NewCodeBlock(start, end, "", "")
	if bare.FenceInfo != nil {
		t.Error("expected nil fence info for empty info string")
	}
	if bare.Literal == nil {
		t.Error("empty literal should still be present")
	}
}

func TestAppendChild(t *testing.T) {
	t.Parallel()

	parent := mdast.NewDocument()
	child1 := mdast.NewNode(mdast.NodeParagraph)
	child2 := mdast.NewNode(mdast.NodeHeading)

	mdast.AppendChild(parent, child1)

	if parent.FirstChild != child1 || parent.LastChild != child1 {
		t.Error("first child not set correctly")
	}

	if child1.Parent != parent {
		t.Error("child1 parent not set")
	}

	mdast.AppendChild(parent, child2)

	if parent.FirstChild != child1 {
		t.Error("first child should still be child1")
	}

	if parent.LastChild != child2 {
		t.Error("last child should be child2")
	}

	if child1.Next != child2 || child2.Prev != child1 {
		t.Error("sibling links not set")
	}

	if got := len(parent.Children()); got != 2 {
		t.Errorf("expected 2 children, got %d", got)
	}
}

func TestAppendChild_Reparents(t *testing.T) {
	t.Parallel()

	first := mdast.NewDocument()
	second := mdast.NewDocument()
	child := mdast.NewNode(mdast.NodeParagraph)

	mdast.AppendChild(first, child)
	mdast.AppendChild(second, child)

	if first.HasChildren() || first.LastChild != nil {
		t.Error("child should have been removed from first parent")
	}
	if child.Parent != second {
		t.Error("child should belong to second parent")
	}
}

func TestAppendChild_ReparentsMiddleChild(t *testing.T) {
	t.Parallel()

	doc := mdast.NewDocument()
	nodes := []*mdast.Node{
		mdast.NewNode(mdast.NodeParagraph),
		mdast.NewNode(mdast.NodeHeading),
		mdast.NewNode(mdast.NodeCodeBlock),
	}
	for _, n := range nodes {
		mdast.AppendChild(doc, n)
	}

	quote := mdast.NewNode(mdast.NodeBlockQuote)
	mdast.AppendChild(quote, nodes[1])

	children := doc.Children()
	if len(children) != 2 || children[0] != nodes[0] || children[1] != nodes[2] {
		t.Fatalf("unexpected children after move: %v", children)
	}
	if nodes[0].Next != nodes[2] || nodes[2].Prev != nodes[0] {
		t.Error("siblings not relinked")
	}
	if nodes[1].Parent != quote || nodes[1].Prev != nil || nodes[1].Next != nil {
		t.Error("moved node keeps stale links")
	}
}
