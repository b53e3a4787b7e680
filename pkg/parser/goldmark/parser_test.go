package goldmark

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdhighlight/pkg/mdast"
)

func pos(line, col int) mdast.Position {
	return mdast.Position{Line: line, Column: col}
}

// literalOf returns the node's literal, or "" when absent.
func literalOf(n *mdast.Node) string {
	if n.Literal == nil {
		return ""
	}
	return *n.Literal
}

// findByType collects the nodes of type typ in document order.
func findByType(root *mdast.Node, typ mdast.NodeType) []*mdast.Node {
	var found []*mdast.Node
	for child := root.FirstChild; child != nil; child = child.Next {
		if child.Type == typ {
			found = append(found, child)
		}
		found = append(found, findByType(child, typ)...)
	}
	return found
}

func parse(t *testing.T, flavor, src string) *mdast.Node {
	t.Helper()

	root, err := New(flavor).Parse(context.Background(), src)
	require.NoError(t, err)
	require.NotNil(t, root)
	require.Equal(t, mdast.NodeDocument, root.Type)
	return root
}

func TestParser_New(t *testing.T) {
	const table = "| a |\n|---|\n| 1 |\n"

	tests := []struct {
		name   string
		flavor string
		want   mdast.NodeType
	}{
		{"commonmark", FlavorCommonMark, mdast.NodeParagraph},
		{"gfm", FlavorGFM, mdast.NodeCustomBlock},
		{"unknown falls back to commonmark", "markdown-it", mdast.NodeParagraph},
		{"empty falls back to commonmark", "", mdast.NodeParagraph},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := parse(t, tt.flavor, table)
			require.NotNil(t, root.FirstChild)
			assert.Equal(t, tt.want, root.FirstChild.Type)
		})
	}
}

func TestParser_Parse_Empty(t *testing.T) {
	root, err := New(FlavorCommonMark).Parse(context.Background(), "")
	require.NoError(t, err)
	assert.Nil(t, root, "empty text holds no document")
}

func TestParser_Parse_WhitespaceOnly(t *testing.T) {
	root := parse(t, FlavorCommonMark, "\n\n   \n")
	assert.False(t, root.HasChildren())
}

func TestParser_Parse_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(FlavorCommonMark).Parse(ctx, "# Hello")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestParser_Parse_ContextTimeout(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()
	time.Sleep(time.Millisecond)

	_, err := New(FlavorCommonMark).Parse(ctx, "# Hello")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestParser_Parse_BlockPositions(t *testing.T) {
	type block struct {
		typ   mdast.NodeType
		start mdast.Position
		end   mdast.Position
	}

	tests := []struct {
		name   string
		flavor string
		src    string
		want   []block
	}{
		{
			name: "heading paragraph and fenced code",
			src:  "# Title\nSome text.\n\n```lang\nlet x = 1\n```\n",
			want: []block{
				{mdast.NodeHeading, pos(1, 1), pos(1, 7)},
				{mdast.NodeParagraph, pos(2, 1), pos(2, 10)},
				{mdast.NodeCodeBlock, pos(4, 1), pos(6, 3)},
			},
		},
		{
			name: "setext heading ends on underline",
			src:  "Title\n=====\n\nbody",
			want: []block{
				{mdast.NodeHeading, pos(1, 1), pos(2, 5)},
				{mdast.NodeParagraph, pos(4, 1), pos(4, 4)},
			},
		},
		{
			name: "atx heading with closing sequence",
			src:  "## Title ##\n",
			want: []block{
				{mdast.NodeHeading, pos(1, 1), pos(1, 11)},
			},
		},
		{
			name: "block quote",
			src:  "> quote\n> more\n",
			want: []block{
				{mdast.NodeBlockQuote, pos(1, 1), pos(2, 6)},
			},
		},
		{
			name: "bullet list",
			src:  "- a\n- b\n",
			want: []block{
				{mdast.NodeList, pos(1, 1), pos(2, 3)},
			},
		},
		{
			name: "thematic break between paragraphs",
			src:  "a\n\n---\n\nb",
			want: []block{
				{mdast.NodeParagraph, pos(1, 1), pos(1, 1)},
				{mdast.NodeThematicBreak, pos(3, 1), pos(3, 3)},
				{mdast.NodeParagraph, pos(5, 1), pos(5, 1)},
			},
		},
		{
			name: "indented code",
			src:  "    code\n",
			want: []block{
				{mdast.NodeCodeBlock, pos(1, 5), pos(1, 8)},
			},
		},
		{
			name: "empty fenced block",
			src:  "```\n```\n",
			want: []block{
				{mdast.NodeCodeBlock, pos(1, 1), pos(2, 3)},
			},
		},
		{
			name: "unclosed fence ends at last content line",
			src:  "```go\nx\n",
			want: []block{
				{mdast.NodeCodeBlock, pos(1, 1), pos(2, 1)},
			},
		},
		{
			name: "tilde fence closed by longer run",
			src:  "~~~~\nA\n~~~~~\n",
			want: []block{
				{mdast.NodeCodeBlock, pos(1, 1), pos(3, 5)},
			},
		},
		{
			name: "columns count runes",
			src:  "# héllo \U0001F44B\n\néé\n",
			want: []block{
				{mdast.NodeHeading, pos(1, 1), pos(1, 9)},
				{mdast.NodeParagraph, pos(3, 1), pos(3, 2)},
			},
		},
		{
			name:   "gfm table maps to custom block",
			flavor: FlavorGFM,
			src:    "| a | b |\n|---|---|\n| 1 | 2 |\n",
			want: []block{
				{mdast.NodeCustomBlock, pos(1, 1), pos(3, 9)},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := parse(t, tt.flavor, tt.src)

			children := root.Children()
			require.Len(t, children, len(tt.want))

			for i, want := range tt.want {
				got := children[i]
				assert.Equal(t, want.typ, got.Type, "child %d type", i)
				assert.Equal(t, want.start, got.Start, "child %d start", i)
				assert.Equal(t, want.end, got.End, "child %d end", i)
			}
		})
	}
}

func TestParser_Parse_FencedCodeBlock(t *testing.T) {
	root := parse(t, FlavorCommonMark, "```go title\nfunc main() {}\n\n```\n")

	code := root.FirstChild
	require.NotNil(t, code)
	require.Equal(t, mdast.NodeCodeBlock, code.Type)

	require.NotNil(t, code.Literal)
	assert.Equal(t, "func main() {}\n\n", *code.Literal)

	require.NotNil(t, code.FenceInfo)
	assert.Equal(t, "go title", *code.FenceInfo)
}

func TestParser_Parse_CodeBlockLiterals(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"backtick fence", "```go\na := 1\nb := 2\n```\n", "a := 1\nb := 2\n"},
		{"tilde fence", "~~~py\nprint(1)\n~~~\n", "print(1)\n"},
		{"empty fence", "```\n```\n", ""},
		{"unclosed fence", "```\nunclosed\n", "unclosed\n"},
		{"multibyte content", "```\n\u00e9\U0001F600\n```\n", "\u00e9\U0001F600\n"},
		{"indented with blank line", "    a\n\n    b\n", "a\n\nb\n"},
		{"fence inside quote", "> ```\n> q\n> ```\n", "q\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := parse(t, FlavorCommonMark, tt.src)

			blocks := findByType(root, mdast.NodeCodeBlock)
			require.Len(t, blocks, 1)
			require.NotNil(t, blocks[0].Literal)
			assert.Equal(t, tt.want, *blocks[0].Literal)
		})
	}
}

func TestParser_Parse_FenceWithoutInfo(t *testing.T) {
	root := parse(t, FlavorCommonMark, "```\nplain\n```")

	code := root.FirstChild
	require.NotNil(t, code)
	assert.Nil(t, code.FenceInfo)
	require.NotNil(t, code.Literal)
	assert.Equal(t, "plain\n", *code.Literal)
	assert.Equal(t, pos(3, 3), code.End)
}

func TestParser_Parse_IndentedCodeLiteral(t *testing.T) {
	root := parse(t, FlavorCommonMark, "    a\n    b\n")

	code := root.FirstChild
	require.NotNil(t, code)
	require.NotNil(t, code.Literal)
	assert.Equal(t, "a\nb\n", *code.Literal)
	assert.Nil(t, code.FenceInfo)
}

func TestParser_Parse_HeadingLevel(t *testing.T) {
	root := parse(t, FlavorCommonMark, "### Three\n")

	heading := root.FirstChild
	require.NotNil(t, heading)
	assert.Equal(t, 3, heading.Level)

	text := heading.FirstChild
	require.NotNil(t, text)
	assert.Equal(t, mdast.NodeText, text.Type)
	assert.Equal(t, "Three", literalOf(text))
	assert.Equal(t, pos(1, 5), text.Start)
	assert.Equal(t, pos(1, 9), text.End)
}

func TestParser_Parse_Inlines(t *testing.T) {
	root := parse(t, FlavorCommonMark, "a *b* **c** `d` [e](f)\ng")

	para := root.FirstChild
	require.NotNil(t, para)
	require.Equal(t, mdast.NodeParagraph, para.Type)

	counts := map[mdast.NodeType]int{}
	for _, typ := range []mdast.NodeType{
		mdast.NodeEmph, mdast.NodeStrong, mdast.NodeCode, mdast.NodeLink, mdast.NodeSoftBreak,
	} {
		counts[typ] = len(findByType(para, typ))
	}

	assert.Equal(t, 1, counts[mdast.NodeEmph])
	assert.Equal(t, 1, counts[mdast.NodeStrong])
	assert.Equal(t, 1, counts[mdast.NodeCode])
	assert.Equal(t, 1, counts[mdast.NodeLink])
	assert.Equal(t, 1, counts[mdast.NodeSoftBreak])

	code := findByType(root, mdast.NodeCode)
	require.Len(t, code, 1)
	assert.Equal(t, "d", literalOf(code[0]))

	first := para.FirstChild
	require.NotNil(t, first)
	assert.Equal(t, mdast.NodeText, first.Type)
	assert.Equal(t, pos(1, 1), first.Start)
}

func TestParser_Parse_GFMInlines(t *testing.T) {
	root := parse(t, FlavorGFM, "~~gone~~ https://example.com\n")

	custom := findByType(root, mdast.NodeCustomInline)
	require.Len(t, custom, 1)

	links := findByType(root, mdast.NodeLink)
	require.Len(t, links, 1)
	assert.Equal(t, "https://example.com", literalOf(links[0]))
}

func TestParser_Parse_NestedPositions(t *testing.T) {
	root := parse(t, FlavorCommonMark, "> - a\n> - b\n")

	quote := root.FirstChild
	require.NotNil(t, quote)
	assert.Equal(t, mdast.NodeBlockQuote, quote.Type)
	assert.Equal(t, pos(1, 1), quote.Start)
	assert.Equal(t, pos(2, 5), quote.End)

	list := quote.FirstChild
	require.NotNil(t, list)
	assert.Equal(t, mdast.NodeList, list.Type)
	assert.Equal(t, pos(1, 3), list.Start)

	items := list.Children()
	require.Len(t, items, 2)
	assert.Equal(t, pos(2, 3), items[1].Start)
	assert.Equal(t, pos(2, 5), items[1].End)
}

func TestParser_Parse_PositionsResolve(t *testing.T) {
	src := "# Tïtle\n\n> quote\n\n- item\n\n```\ncode\n```\n\n---\n"
	root := parse(t, FlavorGFM, src)
	index := mdast.BuildLineIndex(src)
	runes := []rune(src)

	for _, child := range root.Children() {
		start, err := index.Resolve(src, child.Start)
		require.NoError(t, err, child.Type.String())
		end, err := index.Resolve(src, child.End)
		require.NoError(t, err, child.Type.String())

		assert.LessOrEqual(t, start, end, child.Type.String())
		assert.Less(t, end, len(runes), child.Type.String())
		assert.NotEqual(t, ' ', runes[start], "%s starts on a space", child.Type)
	}
}
