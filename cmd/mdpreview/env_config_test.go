package main

// Notes:
// - Tests use t.Setenv() and therefore cannot run in parallel.

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/alnah/go-mdpreview/internal/config"
)

// ---------------------------------------------------------------------------
// TestLoadEnvConfig - Parsing
// ---------------------------------------------------------------------------

func TestLoadEnvConfig(t *testing.T) {
	t.Setenv("MDPREVIEW_STYLE", "minimal")
	t.Setenv("MDPREVIEW_TIMEOUT", "45s")
	t.Setenv("MDPREVIEW_WORKERS", "3")
	t.Setenv("MDPREVIEW_WIDE_CLASS", "east-asian")
	t.Setenv("MDPREVIEW_DIAGRAM_LANG", "diagram")

	env := loadEnvConfig()

	if env.Style != "minimal" {
		t.Errorf("Style = %q, want %q", env.Style, "minimal")
	}
	if env.Timeout != 45*time.Second {
		t.Errorf("Timeout = %v, want 45s", env.Timeout)
	}
	if env.Workers != 3 {
		t.Errorf("Workers = %d, want 3", env.Workers)
	}
	if env.WideClass != "east-asian" {
		t.Errorf("WideClass = %q, want %q", env.WideClass, "east-asian")
	}
	if env.DiagramLang != "diagram" {
		t.Errorf("DiagramLang = %q, want %q", env.DiagramLang, "diagram")
	}
}

func TestLoadEnvConfig_InvalidNumbersIgnored(t *testing.T) {
	t.Setenv("MDPREVIEW_TIMEOUT", "soon")
	t.Setenv("MDPREVIEW_WORKERS", "-2")

	env := loadEnvConfig()

	if env.Timeout != 0 {
		t.Errorf("Timeout = %v, want 0", env.Timeout)
	}
	if env.Workers != 0 {
		t.Errorf("Workers = %d, want 0", env.Workers)
	}
}

// ---------------------------------------------------------------------------
// TestWarnUnknownEnvVars - Typo Detection
// ---------------------------------------------------------------------------

func TestWarnUnknownEnvVars(t *testing.T) {
	t.Setenv("MDPREVIEW_STYLE", "default")
	t.Setenv("MDPREVIEW_STYEL", "typo")
	t.Setenv("MDPREVIEW_ZOOM", "2")

	var buf bytes.Buffer
	warnUnknownEnvVars(&buf)
	out := buf.String()

	if strings.Contains(out, "MDPREVIEW_STYLE ") {
		t.Errorf("known variable reported: %q", out)
	}
	first := strings.Index(out, "MDPREVIEW_STYEL")
	second := strings.Index(out, "MDPREVIEW_ZOOM")
	if first == -1 || second == -1 {
		t.Fatalf("unknown variables not reported: %q", out)
	}
	if first > second {
		t.Errorf("warnings should be sorted: %q", out)
	}
}

// ---------------------------------------------------------------------------
// TestApplyEnvConfig - Precedence
// ---------------------------------------------------------------------------

func TestApplyEnvConfig(t *testing.T) {
	t.Run("env overrides config file values", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.CSS.Style = "from-file"

		applyEnvConfig(&envConfig{Style: "from-env", PageSize: "a4"}, cfg)

		if cfg.CSS.Style != "from-env" {
			t.Errorf("CSS.Style = %q, want %q", cfg.CSS.Style, "from-env")
		}
		if cfg.Page.Size != "a4" {
			t.Errorf("Page.Size = %q, want %q", cfg.Page.Size, "a4")
		}
	})

	t.Run("unset env keeps config", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.Headings.Prefix = "doc-"

		applyEnvConfig(&envConfig{}, cfg)

		if cfg.Headings.Prefix != "doc-" {
			t.Errorf("Headings.Prefix = %q, want %q", cfg.Headings.Prefix, "doc-")
		}
		if cfg.Code.DiagramLanguage != "mermaid" {
			t.Errorf("Code.DiagramLanguage = %q, want %q", cfg.Code.DiagramLanguage, "mermaid")
		}
	})

	t.Run("mathjax url enables math", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.Math.Enabled = false

		applyEnvConfig(&envConfig{MathJaxURL: "https://cdn.example/mathjax.js"}, cfg)

		if !cfg.Math.Enabled || cfg.Math.URL != "https://cdn.example/mathjax.js" {
			t.Errorf("Math = %+v, want enabled with URL", cfg.Math)
		}
	})
}
