// Package hints appends actionable advice to CLI error messages. Every
// helper returns either "" or a single "\n  hint: ..." suffix.
package hints

import (
	"os"
	"strings"

	"github.com/alnah/go-mdpreview/internal/fileutil"
)

// IsInContainer reports whether /.dockerenv exists. Replaced in tests.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// CIVars are set by the CI runners we recognize.
var CIVars = []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"}

// InCI reports whether any of CIVars is set.
func InCI() bool {
	for _, v := range CIVars {
		if os.Getenv(v) != "" {
			return true
		}
	}
	return false
}

// SandboxDisabled reports whether Chrome runs without its sandbox. Only the
// literal "true" counts, as in the PDF renderer.
func SandboxDisabled() bool {
	return os.Getenv("ROD_NO_SANDBOX") == "true"
}

// list renders advice items as one hint line.
type list []string

func (l list) String() string {
	if len(l) == 0 {
		return ""
	}
	return "\n  hint: " + strings.Join(l, "; ")
}

// ForBrowserConnect suggests the env vars that usually fix a failed Chrome
// launch in the current environment.
func ForBrowserConnect() string {
	var l list
	if (InCI() || IsInContainer()) && !SandboxDisabled() {
		l = append(l, "set ROD_NO_SANDBOX=true for Docker/CI")
	}
	if os.Getenv("ROD_BROWSER_BIN") == "" {
		l = append(l, "set ROD_BROWSER_BIN to use custom Chrome")
	}
	l = append(l, "run 'mdpreview doctor' to check the setup")
	return l.String()
}

// ForPageNotReady explains why math or diagram scripts may never finish.
func ForPageNotReady() string {
	return list{
		"math and diagrams load from a CDN and need network access",
		"use --no-math or --diagram-lang \"\" for offline PDF output",
	}.String()
}

// ForTimeout suggests a longer --timeout.
func ForTimeout() string {
	return list{"for large documents, use --timeout flag"}.String()
}

// ForConfigNotFound points at --config and at the user config directory
// among the searched paths.
func ForConfigNotFound(searched []string) string {
	advice := "use --config /path/to/file.yaml"
	for _, p := range searched {
		if strings.Contains(filepath2slash(p), ".config/go-mdpreview") {
			advice += " or create " + p
			break
		}
	}
	return list{advice}.String()
}

// ForOutputDirectory covers failures to write a page or PDF.
func ForOutputDirectory() string {
	return list{"check parent directory exists and is writable"}.String()
}

// ForStyleNotFound lists the built-in styles. Empty when there are none.
func ForStyleNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return list{"available: " + strings.Join(available, ", ")}.String()
}

// ForPayload covers pages without a readable embedded source.
func ForPayload() string {
	return list{"only pages written by mdpreview render carry the Markdown source"}.String()
}

// ForWideClass lists the accepted wide character class names.
func ForWideClass(available []string) string {
	return list{"use one of: " + strings.Join(available, ", ")}.String()
}

func filepath2slash(p string) string {
	return strings.ReplaceAll(p, `\`, "/")
}
