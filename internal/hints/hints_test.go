package hints

// Notes:
// - Browser hints read the environment and IsInContainer, so those tests
//   use t.Setenv and do not run in parallel.

import (
	"strings"
	"testing"
)

// clearEnv blanks every variable the browser hints read.
func clearEnv(t *testing.T, container bool) {
	t.Helper()

	orig := IsInContainer
	IsInContainer = func() bool { return container }
	t.Cleanup(func() { IsInContainer = orig })

	for _, v := range append([]string{"ROD_NO_SANDBOX", "ROD_BROWSER_BIN"}, CIVars...) {
		t.Setenv(v, "")
	}
}

// ---------------------------------------------------------------------------
// TestForBrowserConnect - Environment-aware advice
// ---------------------------------------------------------------------------

func TestForBrowserConnect(t *testing.T) {
	tests := []struct {
		name        string
		container   bool
		env         map[string]string
		wantSandbox bool
		wantBin     bool
	}{
		{"plain host", false, nil, false, true},
		{"CI", false, map[string]string{"CI": "true"}, true, true},
		{"GitLab", false, map[string]string{"GITLAB_CI": "1"}, true, true},
		{"docker", true, nil, true, true},
		{"sandbox already disabled", true, map[string]string{"ROD_NO_SANDBOX": "true"}, false, true},
		{"sandbox value not literal true", true, map[string]string{"ROD_NO_SANDBOX": "1"}, true, true},
		{"browser bin set", false, map[string]string{"ROD_BROWSER_BIN": "/usr/bin/chromium"}, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t, tt.container)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			hint := ForBrowserConnect()

			if !strings.HasPrefix(hint, "\n  hint: ") {
				t.Fatalf("hint = %q, want hint prefix", hint)
			}
			if got := strings.Contains(hint, "ROD_NO_SANDBOX=true"); got != tt.wantSandbox {
				t.Errorf("sandbox advice = %v, want %v (%q)", got, tt.wantSandbox, hint)
			}
			if got := strings.Contains(hint, "ROD_BROWSER_BIN"); got != tt.wantBin {
				t.Errorf("browser bin advice = %v, want %v (%q)", got, tt.wantBin, hint)
			}
			if !strings.Contains(hint, "mdpreview doctor") {
				t.Errorf("hint = %q, want doctor suggestion", hint)
			}
		})
	}
}

func TestInCI(t *testing.T) {
	clearEnv(t, false)
	if InCI() {
		t.Fatal("InCI() = true with no CI variables set")
	}

	t.Setenv("CIRCLECI", "true")
	if !InCI() {
		t.Error("InCI() = false with CIRCLECI set")
	}
}

// ---------------------------------------------------------------------------
// TestStaticHints - Fixed advice
// ---------------------------------------------------------------------------

func TestStaticHints(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		hint     string
		contains string
	}{
		{"timeout", ForTimeout(), "--timeout"},
		{"page not ready", ForPageNotReady(), "--no-math"},
		{"page not ready offline", ForPageNotReady(), "CDN"},
		{"output directory", ForOutputDirectory(), "parent directory"},
		{"payload", ForPayload(), "mdpreview render"},
		{"wide class", ForWideClass([]string{"ranges", "east-asian"}), "use one of: ranges, east-asian"},
		{"style", ForStyleNotFound([]string{"default", "minimal"}), "available: default, minimal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if !strings.HasPrefix(tt.hint, "\n  hint: ") {
				t.Errorf("hint = %q, want hint prefix", tt.hint)
			}
			if strings.Count(tt.hint, "hint:") != 1 {
				t.Errorf("hint = %q, want a single hint line", tt.hint)
			}
			if !strings.Contains(tt.hint, tt.contains) {
				t.Errorf("hint = %q, want substring %q", tt.hint, tt.contains)
			}
		})
	}
}

func TestForStyleNotFound_NoStyles(t *testing.T) {
	t.Parallel()

	if got := ForStyleNotFound(nil); got != "" {
		t.Errorf("ForStyleNotFound(nil) = %q, want empty", got)
	}
}

func TestForConfigNotFound(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		paths   []string
		want    string
		exclude string
	}{
		{"no paths", nil, "use --config /path/to/file.yaml", "create"},
		{"user config dir", []string{"work.yaml", "/home/u/.config/go-mdpreview/work.yaml"}, "or create /home/u/.config/go-mdpreview/work.yaml", ""},
		{"windows separators", []string{`C:\Users\u\.config\go-mdpreview\work.yaml`}, `or create C:\Users\u\.config\go-mdpreview\work.yaml`, ""},
		{"only local paths", []string{"work.yaml", "work.yml"}, "--config", "create"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			hint := ForConfigNotFound(tt.paths)
			if !strings.Contains(hint, tt.want) {
				t.Errorf("hint = %q, want substring %q", hint, tt.want)
			}
			if tt.exclude != "" && strings.Contains(hint, tt.exclude) {
				t.Errorf("hint = %q, should not contain %q", hint, tt.exclude)
			}
		})
	}
}
