package assets

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewResolver(t *testing.T) {
	t.Parallel()

	r, err := NewResolver("")
	if err != nil {
		t.Fatalf("NewResolver(\"\") error = %v", err)
	}
	if r.custom != nil {
		t.Error("empty path should serve embedded assets only")
	}

	if _, err := NewResolver("/nonexistent/path/abc123xyz"); !errors.Is(err, ErrInvalidBasePath) {
		t.Errorf("NewResolver() error = %v, want ErrInvalidBasePath", err)
	}
}

func TestResolver_Fallback(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	writeAsset(t, base, "templates", "preview.html", "<html>custom</html>")
	writeAsset(t, base, "scripts", "mermaid.js", "window.diagrams = 1;")

	r, err := NewResolver(base)
	if err != nil {
		t.Fatalf("NewResolver() error = %v", err)
	}

	tests := []struct {
		name    string
		kind    Kind
		asset   string
		want    string
		wantErr error
	}{
		{"custom template wins", KindTemplate, DefaultTemplateName, "<html>custom</html>", nil},
		{"custom script wins", KindScript, ScriptMermaid, "window.diagrams = 1;", nil},
		{"embedded style fallback", KindStyle, DefaultStyleName, ".header-anchor", nil},
		{"embedded script fallback", KindScript, ScriptReadiness, "__mdpreviewReady", nil},
		{"missing everywhere", KindStyle, "nonexistent-xyz", "", ErrStyleNotFound},
		{"invalid name not retried", KindStyle, "../default", "", ErrInvalidAssetName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := r.Load(tt.kind, tt.asset)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Load() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if !strings.Contains(got, tt.want) {
				t.Errorf("Load() = %q, want it to contain %q", got, tt.want)
			}
		})
	}
}

func TestResolver_ReadErrorNotFallenBack(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	// A directory where a file is expected makes ReadFile fail with a
	// non-NotExist error.
	if err := os.MkdirAll(filepath.Join(base, "styles", "default.css"), 0o755); err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}

	r, err := NewResolver(base)
	if err != nil {
		t.Fatalf("NewResolver() error = %v", err)
	}

	if _, err := r.Load(KindStyle, DefaultStyleName); !errors.Is(err, ErrAssetRead) {
		t.Errorf("Load() error = %v, want ErrAssetRead", err)
	}
}
