package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alnah/go-mdpreview/internal/hints"
)

// Notes:
// - These tests replace lookBrowser and hints.IsInContainer and set env vars,
//   so none of them run in parallel.

// stubDoctor isolates the doctor checks from the host machine.
func stubDoctor(t *testing.T, browser string, found bool) {
	t.Helper()

	origLook, origContainer := lookBrowser, hints.IsInContainer
	lookBrowser = func() (string, bool) { return browser, found }
	hints.IsInContainer = func() bool { return false }
	t.Cleanup(func() {
		lookBrowser, hints.IsInContainer = origLook, origContainer
	})

	for _, v := range append([]string{"ROD_BROWSER_BIN", "ROD_NO_SANDBOX", "MDPREVIEW_CONFIG"}, hints.CIVars...) {
		t.Setenv(v, "")
	}
}

// ---------------------------------------------------------------------------
// TestDiagnose - Status Derivation
// ---------------------------------------------------------------------------

func TestDiagnose_NoBrowserIsWarning(t *testing.T) {
	stubDoctor(t, "", false)

	d := diagnose("")

	if d.Status != statusWarnings {
		t.Errorf("Status = %q, want %q (errors: %v)", d.Status, statusWarnings, d.Errors)
	}
	if d.Browser.Found {
		t.Error("Browser.Found = true, want false")
	}
	if !d.Runtime.TempWritable {
		t.Error("Runtime.TempWritable = false, want true")
	}
}

func TestDiagnose_MissingBrowserBinIsError(t *testing.T) {
	stubDoctor(t, "", false)
	t.Setenv("ROD_BROWSER_BIN", filepath.Join(t.TempDir(), "chrome"))

	d := diagnose("")

	if d.Status != statusErrors {
		t.Errorf("Status = %q, want %q", d.Status, statusErrors)
	}
}

func TestDiagnose_CIWithoutSandboxFlag(t *testing.T) {
	stubDoctor(t, "", false)
	t.Setenv("CI", "true")

	d := diagnose("")

	if !d.Runtime.CI {
		t.Fatal("Runtime.CI = false, want true")
	}
	var found bool
	for _, w := range d.Warnings {
		if strings.Contains(w, "ROD_NO_SANDBOX=true") {
			found = true
		}
	}
	if !found {
		t.Errorf("Warnings = %v, want sandbox warning", d.Warnings)
	}
}

func TestDiagnose_Config(t *testing.T) {
	stubDoctor(t, "", false)

	dir := t.TempDir()
	good := filepath.Join(dir, "good.yaml")
	writeFile(t, good, "cjk:\n  wideClass: east-asian\n")
	bad := filepath.Join(dir, "bad.yaml")
	writeFile(t, bad, "cjk:\n  wideClass: nope\n")

	tests := []struct {
		name      string
		config    string
		wantPath  string
		wantError bool
	}{
		{"valid file", good, good, false},
		{"invalid value", bad, bad, true},
		{"missing file", filepath.Join(dir, "none.yaml"), "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := diagnose(tt.config)

			if d.Config.Path != tt.wantPath {
				t.Errorf("Config.Path = %q, want %q", d.Config.Path, tt.wantPath)
			}
			if gotError := len(d.Errors) > 0; gotError != tt.wantError {
				t.Errorf("errors = %v, wantError %v", d.Errors, tt.wantError)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestRunDoctor - Output Formats
// ---------------------------------------------------------------------------

func TestRunDoctor(t *testing.T) {
	stubDoctor(t, "", false)

	t.Run("text", func(t *testing.T) {
		env, stdout, _ := testEnv()

		if code := runDoctor(nil, env); code != ExitSuccess {
			t.Fatalf("runDoctor() = %d, want %d", code, ExitSuccess)
		}
		for _, want := range []string{"mdpreview doctor", "[WARN] Not found", "Status: Ready with warnings"} {
			if !strings.Contains(stdout.String(), want) {
				t.Errorf("output missing %q:\n%s", want, stdout.String())
			}
		}
	})

	t.Run("json", func(t *testing.T) {
		env, stdout, _ := testEnv()

		if code := runDoctor([]string{"--json"}, env); code != ExitSuccess {
			t.Fatalf("runDoctor() = %d, want %d", code, ExitSuccess)
		}
		var d diagnosis
		if err := json.Unmarshal(stdout.Bytes(), &d); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if d.Status != statusWarnings {
			t.Errorf("Status = %q, want %q", d.Status, statusWarnings)
		}
	})

	t.Run("missing config exits non-zero", func(t *testing.T) {
		env, _, _ := testEnv()

		missing := filepath.Join(t.TempDir(), "none.yaml")
		if code := runDoctor([]string{"-c", missing}, env); code != ExitGeneral {
			t.Errorf("runDoctor() = %d, want %d", code, ExitGeneral)
		}
	})

	t.Run("bad flag", func(t *testing.T) {
		env, _, _ := testEnv()

		if code := runDoctor([]string{"--bogus"}, env); code != ExitUsage {
			t.Errorf("runDoctor() = %d, want %d", code, ExitUsage)
		}
	})
}

func TestCheckRuntime_TempDir(t *testing.T) {
	stubDoctor(t, "", false)
	if os.Getuid() == 0 {
		t.Skip("root can write to read-only directories")
	}

	dir := t.TempDir()
	if err := os.Chmod(dir, 0o500); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chmod(dir, 0o700) })
	t.Setenv("TMPDIR", dir)

	d := &diagnosis{}
	checkRuntime(d)

	if d.Runtime.TempWritable {
		t.Error("TempWritable = true, want false")
	}
}
