package mdpreview

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/alnah/go-mdpreview/internal/assets"
)

func TestNewAssetLoader_EmptyPath(t *testing.T) {
	t.Parallel()

	loader, err := NewAssetLoader("")
	if err != nil {
		t.Fatalf("NewAssetLoader(\"\") error = %v", err)
	}

	css, err := loader.LoadStyle(DefaultStyle)
	if err != nil || css == "" {
		t.Errorf("LoadStyle(%q) = %d bytes, error = %v", DefaultStyle, len(css), err)
	}

	tmpl, err := loader.LoadTemplate(DefaultTemplate)
	if err != nil {
		t.Fatalf("LoadTemplate(%q) error = %v", DefaultTemplate, err)
	}
	if !strings.Contains(tmpl, "markdown-base64") {
		t.Error("default template should carry the payload element")
	}
}

func TestNewAssetLoader_InvalidPath(t *testing.T) {
	t.Parallel()

	_, err := NewAssetLoader("/nonexistent/path/to/assets")
	if !errors.Is(err, ErrInvalidAssetPath) {
		t.Errorf("NewAssetLoader() error = %v, want ErrInvalidAssetPath", err)
	}
}

func TestNewAssetLoader_CustomOverride(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	for path, content := range map[string]string{
		"styles/brand.css":       "body { color: navy; }",
		"templates/preview.html": "<html><body><div id=\"content\"></div></body></html>",
	} {
		full := filepath.Join(dir, path)
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatalf("MkdirAll() error = %v", err)
		}
		if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
			t.Fatalf("WriteFile() error = %v", err)
		}
	}

	loader, err := NewAssetLoader(dir)
	if err != nil {
		t.Fatalf("NewAssetLoader() error = %v", err)
	}

	if css, err := loader.LoadStyle("brand"); err != nil || css != "body { color: navy; }" {
		t.Errorf("LoadStyle(brand) = %q, %v", css, err)
	}
	if tmpl, err := loader.LoadTemplate(DefaultTemplate); err != nil || !strings.Contains(tmpl, `id="content"`) {
		t.Errorf("LoadTemplate() = %q, %v; want the custom template", tmpl, err)
	}

	// Falls back to embedded assets
	if css, err := loader.LoadStyle(DefaultStyle); err != nil || css == "" {
		t.Errorf("LoadStyle(default) fallback = %d bytes, %v", len(css), err)
	}
}

func TestWithAssetPath_ScriptOverride(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	full := filepath.Join(dir, "scripts", "mathjax.js")
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}
	if err := os.WriteFile(full, []byte("window.customMath = true;"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	conv, err := NewConverter(WithAssetPath(dir))
	if err != nil {
		t.Fatalf("NewConverter() error = %v", err)
	}
	t.Cleanup(func() { _ = conv.Close() })

	res, err := conv.Convert(context.Background(), Input{Markdown: "$x$"})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	page := string(res.HTML)

	if !strings.Contains(page, "window.customMath = true;") {
		t.Error("custom mathjax script should replace the built-in one")
	}
	// The other scripts fall back to the embedded copies.
	if !strings.Contains(page, "window.__mdpreviewReady") {
		t.Error("embedded readiness script missing")
	}
}

func TestAssetLoader_NotFound(t *testing.T) {
	t.Parallel()

	loader, err := NewAssetLoader("")
	if err != nil {
		t.Fatalf("NewAssetLoader() error = %v", err)
	}

	if _, err := loader.LoadStyle("nonexistent"); !errors.Is(err, ErrStyleNotFound) {
		t.Errorf("LoadStyle() error = %v, want ErrStyleNotFound", err)
	}
	if _, err := loader.LoadTemplate("nonexistent"); !errors.Is(err, ErrTemplateNotFound) {
		t.Errorf("LoadTemplate() error = %v, want ErrTemplateNotFound", err)
	}
	if _, err := loader.LoadStyle("../etc/passwd"); !errors.Is(err, ErrStyleNotFound) {
		t.Errorf("LoadStyle(traversal) error = %v, want ErrStyleNotFound", err)
	}
}

func TestStyleNames(t *testing.T) {
	t.Parallel()

	names := StyleNames()
	for _, want := range []string{"default", "minimal"} {
		if !slices.Contains(names, want) {
			t.Errorf("StyleNames() = %v, missing %q", names, want)
		}
	}
}

func TestConvertAssetError(t *testing.T) {
	t.Parallel()

	if convertAssetError(nil) != nil {
		t.Error("convertAssetError(nil) should be nil")
	}

	tests := []struct {
		internal error
		want     error
	}{
		{assets.ErrStyleNotFound, ErrStyleNotFound},
		{assets.ErrTemplateNotFound, ErrTemplateNotFound},
		{assets.ErrScriptNotFound, ErrScriptNotFound},
		{assets.ErrInvalidBasePath, ErrInvalidAssetPath},
		{assets.ErrPathTraversal, ErrInvalidAssetPath},
		{assets.ErrInvalidAssetName, ErrStyleNotFound},
	}

	for _, tt := range tests {
		original := errors.Join(tt.internal, errors.New("detail"))
		got := convertAssetError(original)
		if !errors.Is(got, tt.want) {
			t.Errorf("convertAssetError(%v) does not match %v", tt.internal, tt.want)
		}
		if got.Error() != original.Error() {
			t.Errorf("message = %q, want the original %q", got.Error(), original.Error())
		}
	}

	other := errors.New("unrelated")
	if convertAssetError(other) != other {
		t.Error("unknown errors should pass through unchanged")
	}
}
