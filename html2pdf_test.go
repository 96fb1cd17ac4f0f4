package mdpreview

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/alnah/go-mdpreview/internal/fileutil"
)

// mockRenderer implements pdfRenderer for testing.
type mockRenderer struct {
	Result      []byte
	Err         error
	CalledWith  string
	CalledOpts  *pdfOptions
	FileContent string
}

func (m *mockRenderer) RenderFromFile(ctx context.Context, filePath string, opts *pdfOptions) ([]byte, error) {
	m.CalledWith = filePath
	m.CalledOpts = opts
	if data, err := os.ReadFile(filePath); err == nil {
		m.FileContent = string(data)
	}
	return m.Result, m.Err
}

// testableRodConverter mirrors rodConverter.ToPDF with a mock renderer.
type testableRodConverter struct {
	mock *mockRenderer
}

func (c *testableRodConverter) ToPDF(ctx context.Context, htmlContent string, opts *pdfOptions) ([]byte, error) {
	tmpPath, cleanup, err := fileutil.WriteTempFile(htmlContent, "html")
	if err != nil {
		return nil, err
	}
	defer cleanup()

	return c.mock.RenderFromFile(ctx, tmpPath, opts)
}

func TestRodConverter_ToPDF(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		html    string
		mock    *mockRenderer
		wantErr error
	}{
		{
			name: "successful render returns PDF bytes",
			html: "<html><body>你好</body></html>",
			mock: &mockRenderer{Result: []byte("%PDF-1.4 fake")},
		},
		{
			name:    "renderer error propagates",
			html:    "<html></html>",
			mock:    &mockRenderer{Err: ErrPageNotReady},
			wantErr: ErrPageNotReady,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			converter := &testableRodConverter{mock: tt.mock}
			result, err := converter.ToPDF(context.Background(), tt.html, nil)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ToPDF() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ToPDF() error = %v", err)
			}
			if string(result) != string(tt.mock.Result) {
				t.Errorf("ToPDF() = %q, want %q", result, tt.mock.Result)
			}
			if !strings.Contains(tt.mock.CalledWith, fileutil.TempPrefix) || !strings.HasSuffix(tt.mock.CalledWith, ".html") {
				t.Errorf("renderer called with %q, want an html temp file", tt.mock.CalledWith)
			}
			if tt.mock.FileContent != tt.html {
				t.Errorf("temp file content = %q, want %q", tt.mock.FileContent, tt.html)
			}
			if _, err := os.Stat(tt.mock.CalledWith); !os.IsNotExist(err) {
				t.Error("temp file should be removed after rendering")
			}
		})
	}
}

func TestNewRodConverter(t *testing.T) {
	t.Parallel()

	converter := newRodConverter(defaultTimeout)
	if converter.renderer == nil {
		t.Fatal("expected non-nil renderer")
	}
	if converter.renderer.timeout != defaultTimeout {
		t.Errorf("timeout = %v, want %v", converter.renderer.timeout, defaultTimeout)
	}
	if err := converter.Close(); err != nil {
		t.Errorf("Close() without browser error = %v", err)
	}
}

func TestRodRenderer_CancelledBeforeLaunch(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := newRodRenderer(defaultTimeout)
	if _, err := r.RenderFromFile(ctx, "/tmp/none.html", nil); !errors.Is(err, context.Canceled) {
		t.Errorf("RenderFromFile() error = %v, want context.Canceled", err)
	}
	if r.browser != nil {
		t.Error("browser should not be launched for a cancelled context")
	}
}

func TestBuildPDFOptions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		opts       *pdfOptions
		wantWidth  float64
		wantHeight float64
		wantMargin float64
	}{
		{"nil options use letter portrait", nil, 8.5, 11, DefaultMargin},
		{"nil page uses defaults", &pdfOptions{}, 8.5, 11, DefaultMargin},
		{
			"a4 portrait",
			&pdfOptions{Page: &PageSettings{Size: PageSizeA4, Orientation: OrientationPortrait, Margin: 1}},
			8.27, 11.69, 1,
		},
		{
			"legal landscape swaps dimensions",
			&pdfOptions{Page: &PageSettings{Size: "Legal", Orientation: "LANDSCAPE", Margin: 0.25}},
			14, 8.5, 0.25,
		},
		{
			"zero margin falls back to default",
			&pdfOptions{Page: &PageSettings{Size: PageSizeLetter, Orientation: OrientationPortrait}},
			8.5, 11, DefaultMargin,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := buildPDFOptions(tt.opts)
			if *got.PaperWidth != tt.wantWidth || *got.PaperHeight != tt.wantHeight {
				t.Errorf("paper = %vx%v, want %vx%v", *got.PaperWidth, *got.PaperHeight, tt.wantWidth, tt.wantHeight)
			}
			for _, m := range []*float64{got.MarginTop, got.MarginBottom, got.MarginLeft, got.MarginRight} {
				if *m != tt.wantMargin {
					t.Errorf("margin = %v, want %v", *m, tt.wantMargin)
				}
			}
			if !got.PrintBackground {
				t.Error("PrintBackground should be enabled")
			}
		})
	}
}

func TestNoSandbox(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want bool
	}{
		{"nothing set", map[string]string{"CI": "", "ROD_BROWSER_BIN": "", "ROD_NO_SANDBOX": ""}, false},
		{"CI", map[string]string{"CI": "true", "ROD_BROWSER_BIN": "", "ROD_NO_SANDBOX": ""}, true},
		{"custom binary", map[string]string{"CI": "", "ROD_BROWSER_BIN": "/usr/bin/chromium", "ROD_NO_SANDBOX": ""}, true},
		{"explicit", map[string]string{"CI": "", "ROD_BROWSER_BIN": "", "ROD_NO_SANDBOX": "true"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if got := noSandbox(); got != tt.want {
				t.Errorf("noSandbox() = %v, want %v", got, tt.want)
			}
		})
	}
}
