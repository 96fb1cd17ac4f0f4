//go:build integration

package mdpreview

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func assertValidPDF(t *testing.T, data []byte) {
	t.Helper()

	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Errorf("data does not have PDF magic bytes, got prefix: %q", data[:min(10, len(data))])
	}
	if len(data) < 100 {
		t.Errorf("PDF data suspiciously small: %d bytes", len(data))
	}
}

// TestConvert_PDF_Integration renders preview pages in headless Chrome.
// Rod downloads Chromium on first run if not found.
func TestConvert_PDF_Integration(t *testing.T) {
	t.Parallel()

	imgDir := t.TempDir()
	// 1x1 transparent PNG
	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00\x1f\x15\xc4\x89\x00\x00\x00\rIDATx\x9cc\xf8\x0f\x00\x00\x01\x01\x00\x05\x18\xd8N\x00\x00\x00\x00IEND\xaeB`\x82")
	if err := os.WriteFile(filepath.Join(imgDir, "dot.png"), png, 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	tests := []struct {
		name  string
		input Input
	}{
		{
			name:  "CJK document",
			input: Input{Markdown: "# 标题\n\n第一行\n第二行\n", PDF: true},
		},
		{
			name:  "TOC and A4 landscape",
			input: Input{Markdown: "# T\n\n## A\n\n## B", TOC: &TOC{}, Page: &PageSettings{Size: PageSizeA4, Orientation: OrientationLandscape, Margin: 1}, PDF: true},
		},
		{
			name:  "relative image",
			input: Input{Markdown: "![dot](dot.png)", SourceDir: imgDir, PDF: true},
		},
		{
			name:  "highlighted code",
			input: Input{Markdown: "```go\nfunc main() {}\n```", PDF: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			conv := acquireConverter(t)
			ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
			defer cancel()

			result, err := conv.Convert(ctx, tt.input)
			if err != nil {
				t.Fatalf("Convert() error = %v", err)
			}
			assertValidPDF(t, result.PDF)
		})
	}
}

// TestRodRenderer_WaitsForReadyFlag checks that a page which never reports
// ready fails within the timeout instead of printing half-typeset output.
func TestRodRenderer_WaitsForReadyFlag(t *testing.T) {
	t.Parallel()

	converter := newRodConverter(testTimeout)
	defer converter.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	_, err := converter.ToPDF(ctx, "<html><body><p>never ready</p></body></html>", nil)
	if err == nil {
		t.Fatal("ToPDF() should fail when the page never sets the ready flag")
	}

	ready := "<html><body><script>window.__mdpreviewReady = true;</script></body></html>"
	data, err := converter.ToPDF(context.Background(), ready, nil)
	if err != nil {
		t.Fatalf("ToPDF() error = %v", err)
	}
	assertValidPDF(t, data)
}

func TestConverter_CloseKillsBrowser_Integration(t *testing.T) {
	t.Parallel()

	conv, err := NewConverter(WithoutMath(), WithDiagramLanguage(""))
	if err != nil {
		t.Fatalf("NewConverter() error = %v", err)
	}
	if _, err := conv.Convert(context.Background(), Input{Markdown: "x", PDF: true}); err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if err := conv.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}

	r := conv.pdfConverter.(*rodConverter).renderer
	if r.browser != nil || r.launcher != nil {
		t.Error("Close() should release the browser and launcher")
	}
}
