// Package highlight applies block-level Markdown styling to a styled buffer
// and extracts its code blocks.
package highlight

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/mdhighlight/pkg/langdetect"
	"github.com/yaklabco/mdhighlight/pkg/mdast"
	"github.com/yaklabco/mdhighlight/pkg/styled"
)

// ErrMissingLiteral is returned when the parser hands over a code block
// without literal text.
var ErrMissingLiteral = errors.New("code block has no literal text")

// Parser turns Markdown text into a node tree.
// A nil root with a nil error means the text holds no document.
type Parser interface {
	Parse(ctx context.Context, text string) (*mdast.Node, error)
}

// Highlighter styles top-level Markdown blocks in a buffer.
type Highlighter struct {
	parser Parser
	theme  Theme
	detect bool
	logger *log.Logger
}

// Option configures a Highlighter.
type Option func(*Highlighter)

// WithTheme sets the attributes the highlighter applies.
func WithTheme(theme Theme) Option {
	return func(h *Highlighter) {
		h.theme = theme
	}
}

// WithLanguageDetection enables guessing the language of code blocks
// that have no fence info.
func WithLanguageDetection(enabled bool) Option {
	return func(h *Highlighter) {
		h.detect = enabled
	}
}

// WithLogger sets the logger used for skipped-node diagnostics.
func WithLogger(logger *log.Logger) Option {
	return func(h *Highlighter) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// New creates a Highlighter that parses with parser.
func New(parser Parser, opts ...Option) *Highlighter {
	h := &Highlighter{
		parser: parser,
		theme:  DefaultTheme(),
		logger: log.Default(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Logger returns the logger for a pass run under ctx: the one attached with
// log.WithContext if present, else the configured logger.
func (h *Highlighter) Logger(ctx context.Context) *log.Logger {
	if logger, ok := ctx.Value(log.ContextKey).(*log.Logger); ok && logger != nil {
		return logger
	}
	return h.logger
}

// Theme returns the configured theme.
func (h *Highlighter) Theme() Theme {
	return h.theme
}

// Highlight restyles buf and returns its code blocks in document order.
//
// The whole pass runs inside one BeginEditing/EndEditing batch:
//  1. The theme defaults are applied to the entire buffer.
//  2. The text is parsed and a LineIndex is built once.
//  3. Each direct child of the document is resolved to a rune span and
//     styled by type. Nested nodes are never visited.
//
// Nodes with an unknown or sentinel type, an invalid position, a start after their end,
// or a span outside the text are skipped. A code block without literal text
// aborts the pass with ErrMissingLiteral.
func (h *Highlighter) Highlight(ctx context.Context, buf styled.Buffer) ([]CodeBlock, error) {
	buf.BeginEditing()
	defer buf.EndEditing()

	buf.SetAttributes(h.theme.Defaults, styled.Range{Location: 0, Length: buf.Len()})

	text := buf.String()
	root, err := h.parser.Parse(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}

	index := mdast.BuildLineIndex(text)
	length := utf8.RuneCountInString(text)
	logger := h.Logger(ctx)

	var blocks []CodeBlock
	if root == nil {
		return blocks, nil
	}

	for _, node := range root.Children() {
		if !node.Type.IsKnown() || node.Type.IsSentinel() {
			continue
		}

		span, ok := resolveSpan(logger, index, length, node)
		if !ok {
			continue
		}

		switch node.Type {
		case mdast.NodeHeading:
			buf.AddAttribute(h.theme.HeadingColor, span)

		case mdast.NodeCodeBlock:
			if node.Literal == nil {
				return nil, fmt.Errorf("%w: block at %d:%d",
					ErrMissingLiteral, node.Start.Line, node.Start.Column)
			}
			buf.AddAttribute(h.theme.CodeFont, span)
			blocks = append(blocks, h.codeBlock(node, span))

		default:
		}
	}

	return blocks, nil
}

// resolveSpan maps a node's inclusive start/end positions onto a rune range.
func resolveSpan(logger *log.Logger, index mdast.LineIndex, length int, node *mdast.Node) (styled.Range, bool) {
	start, err := index.ResolveCount(length, node.Start)
	if err != nil {
		logSkip(logger, node, err)
		return styled.Range{}, false
	}

	end, err := index.ResolveCount(length, node.End)
	if err != nil {
		logSkip(logger, node, err)
		return styled.Range{}, false
	}

	if start > end {
		logger.Debug("skipping node with start after end",
			"node_type", node.Type, "start", node.Start, "end", node.End)
		return styled.Range{}, false
	}

	// The end position is inclusive, so it must name an existing rune.
	if end >= length {
		logSkip(logger, node, fmt.Errorf("%w: inclusive end offset %d of %d", mdast.ErrOutOfRange, end, length))
		return styled.Range{}, false
	}

	return styled.Range{Location: start, Length: end - start + 1}, true
}

func logSkip(logger *log.Logger, node *mdast.Node, err error) {
	if errors.Is(err, mdast.ErrOutOfRange) {
		logger.Warn("skipping node outside text", "node_type", node.Type, "error", err)
		return
	}
	logger.Debug("skipping node with malformed span", "node_type", node.Type, "error", err)
}

func (h *Highlighter) codeBlock(node *mdast.Node, span styled.Range) CodeBlock {
	block := CodeBlock{
		Range:     span,
		Start:     node.Start,
		End:       node.End,
		FenceInfo: node.FenceInfo,
		Text:      *node.Literal,
	}

	block.Language = languageFromInfo(block.Info())
	if block.Language == "" && h.detect && block.Text != "" {
		block.Language = langdetect.Detect([]byte(block.Text))
	}

	return block
}
