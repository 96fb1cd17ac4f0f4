package pipeline

import (
	"context"
	"testing"
)

func TestCJKPreprocessor_PreprocessMarkdown(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		class    WideClass
		input    string
		expected string
	}{
		{
			name:     "default class joins ideographs",
			input:    "# 标题\n\n第一\n第二",
			expected: "# 标题\n\n第一第二",
		},
		{
			name:     "east asian class joins ideographs",
			class:    EastAsianWidthClass,
			input:    "第一\n第二",
			expected: "第一第二",
		},
		{
			name:     "fenced code is preserved",
			input:    "```\n第一\n第二\n```\n",
			expected: "```\n第一\n第二\n```\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p := NewCJKPreprocessor(tt.class)
			got := p.PreprocessMarkdown(context.Background(), tt.input)
			if got != tt.expected {
				t.Errorf("PreprocessMarkdown(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestCJKPreprocessor_CancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	input := "第一\n第二"
	got := NewCJKPreprocessor(nil).PreprocessMarkdown(ctx, input)
	if got != input {
		t.Errorf("cancelled context should return input unchanged, got %q", got)
	}
}

func TestCJKPreprocessor_ZeroValue(t *testing.T) {
	t.Parallel()

	var p CJKPreprocessor
	got := p.PreprocessMarkdown(context.Background(), "第一\n第二")
	if got != "第一第二" {
		t.Errorf("zero value preprocessor = %q, want %q", got, "第一第二")
	}
}

func TestPassthroughPreprocessor(t *testing.T) {
	t.Parallel()

	input := "第一\n第二"
	got := PassthroughPreprocessor{}.PreprocessMarkdown(context.Background(), input)
	if got != input {
		t.Errorf("PassthroughPreprocessor changed input: %q", got)
	}
}
