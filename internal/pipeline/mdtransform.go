package pipeline

import (
	"context"
)

// MarkdownPreprocessor defines the contract for markdown preprocessing.
type MarkdownPreprocessor interface {
	PreprocessMarkdown(ctx context.Context, content string) string
}

// CJKPreprocessor repairs line-wrap artifacts between wide characters
// before the Markdown reaches the renderer.
type CJKPreprocessor struct {
	joiner *CJKJoiner
}

// NewCJKPreprocessor creates a preprocessor using class to detect wide runes.
// A nil class means RangeClass.
func NewCJKPreprocessor(class WideClass) *CJKPreprocessor {
	return &CJKPreprocessor{joiner: NewCJKJoiner(class)}
}

// PreprocessMarkdown joins wrapped CJK lines outside fenced blocks.
// Returns content unchanged when ctx is already done.
func (p *CJKPreprocessor) PreprocessMarkdown(ctx context.Context, content string) string {
	if ctx.Err() != nil {
		return content
	}
	if p.joiner == nil {
		return JoinCJKLines(content)
	}
	return p.joiner.Join(content)
}

// PassthroughPreprocessor leaves Markdown untouched.
// Used when CJK joining is disabled.
type PassthroughPreprocessor struct{}

// PreprocessMarkdown returns content as is.
func (PassthroughPreprocessor) PreprocessMarkdown(_ context.Context, content string) string {
	return content
}
