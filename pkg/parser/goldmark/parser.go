// Package goldmark provides a Parser implementation using the goldmark library.
//
// The resulting mdast tree carries CommonMark-style positions: 1-based lines
// and rune columns, with block spans running from the first rune of the
// block (markers and fences included) to its last non-blank rune.
package goldmark

import (
	"context"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/yaklabco/mdhighlight/pkg/mdast"
)

// Flavor identifies the Markdown flavor supported by the parser.
const (
	FlavorCommonMark = "commonmark"
	FlavorGFM        = "gfm"
)

// Parser implements highlight.Parser using goldmark. It is safe for
// concurrent use.
type Parser struct {
	md goldmark.Markdown
}

// New returns a parser for flavor, "commonmark" or "gfm". GFM adds tables,
// strikethrough, autolinks and task lists; any other value means CommonMark.
func New(flavor string) *Parser {
	var opts []goldmark.Option
	if flavor == FlavorGFM {
		opts = append(opts, goldmark.WithExtensions(extension.GFM))
	}
	return &Parser{md: goldmark.New(opts...)}
}

// Parse converts Markdown text into an mdast tree.
// Empty text holds no document and yields a nil root.
//
//nolint:nilnil // A nil root is the documented "no document" result.
func (p *Parser) Parse(ctx context.Context, src string) (*mdast.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	if src == "" {
		return nil, nil
	}

	content := []byte(src)
	gmDoc := p.md.Parser().Parse(text.NewReader(content), parser.WithContext(parser.NewContext()))

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	return newMapper(content).mapDocument(gmDoc), nil
}
