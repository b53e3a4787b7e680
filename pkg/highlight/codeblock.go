package highlight

import (
	"strings"

	"github.com/yaklabco/mdhighlight/pkg/mdast"
	"github.com/yaklabco/mdhighlight/pkg/styled"
)

// CodeBlock is a code block extracted during a highlight pass.
type CodeBlock struct {
	// Range is the span of the whole block in the buffer, fences included.
	Range styled.Range `json:"range" yaml:"range"`

	// Start and End are the inclusive source positions of the block.
	Start mdast.Position `json:"start" yaml:"start"`
	End   mdast.Position `json:"end" yaml:"end"`

	// FenceInfo is the info string after the opening fence, if any.
	FenceInfo *string `json:"fenceInfo,omitempty" yaml:"fence_info,omitempty"`

	// Text is the literal code content.
	Text string `json:"text" yaml:"text"`

	// Language is the first word of FenceInfo, or a detected language
	// when detection is enabled and the block has no fence info.
	Language string `json:"language,omitempty" yaml:"language,omitempty"`
}

// Info returns the fence info string, or "" when absent.
func (b CodeBlock) Info() string {
	if b.FenceInfo == nil {
		return ""
	}
	return *b.FenceInfo
}

// LineCount returns the number of lines of code in the block.
func (b CodeBlock) LineCount() int {
	if b.Text == "" {
		return 0
	}
	n := strings.Count(b.Text, "\n")
	if !strings.HasSuffix(b.Text, "\n") {
		n++
	}
	return n
}

// languageFromInfo returns the first word of a fence info string.
func languageFromInfo(info string) string {
	fields := strings.Fields(info)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
