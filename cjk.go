package mdpreview

import "github.com/alnah/go-mdpreview/internal/pipeline"

// JoinCJKLines removes each line break (and the blanks around it) that sits
// between two wide characters, leaving fenced code blocks untouched. Wide
// characters are those of the fixed CJK code point ranges.
func JoinCJKLines(text string) string {
	return pipeline.JoinCJKLines(text)
}
