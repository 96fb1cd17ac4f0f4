package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/go-rod/rod/lib/launcher"
	flag "github.com/spf13/pflag"

	"github.com/alnah/go-mdpreview/internal/config"
	"github.com/alnah/go-mdpreview/internal/fileutil"
	"github.com/alnah/go-mdpreview/internal/hints"
)

// Doctor status values.
const (
	statusReady    = "ready"
	statusWarnings = "warnings"
	statusErrors   = "errors"
)

// lookBrowser locates Chrome. Replaced in tests.
var lookBrowser = launcher.LookPath

// diagnosis is the doctor report. Missing Chrome only blocks PDF output, so
// it is a warning: HTML previews never start a browser.
type diagnosis struct {
	Status   string      `json:"status"`
	Browser  browserInfo `json:"browser"`
	Runtime  runtimeInfo `json:"runtime"`
	Config   configInfo  `json:"config"`
	Warnings []string    `json:"warnings,omitempty"`
	Errors   []string    `json:"errors,omitempty"`
}

type browserInfo struct {
	Found   bool   `json:"found"`
	Path    string `json:"path,omitempty"`
	Version string `json:"version,omitempty"`
	Sandbox bool   `json:"sandbox"`
}

type runtimeInfo struct {
	OS           string `json:"os"`
	Arch         string `json:"arch"`
	Container    bool   `json:"container"`
	CI           bool   `json:"ci"`
	TempWritable bool   `json:"temp_writable"`
}

type configInfo struct {
	Name     string   `json:"name,omitempty"`
	Path     string   `json:"path,omitempty"`
	Searched []string `json:"searched,omitempty"`
}

// runDoctor checks the environment for PDF output and config resolution.
// Only errors produce a non-zero exit code.
func runDoctor(args []string, env *Environment) int {
	fs := flag.NewFlagSet("doctor", flag.ContinueOnError)
	fs.SetOutput(env.Stderr)
	jsonOutput := fs.Bool("json", false, "print the report as JSON")
	configName := fs.StringP("config", "c", "", "config name or path to resolve")
	fs.Usage = func() { printDoctorUsage(env.Stderr) }
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		return ExitUsage
	}

	d := diagnose(*configName)

	if *jsonOutput {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(d)
	} else {
		printDiagnosis(env.Stdout, d)
	}

	if d.Status == statusErrors {
		return ExitGeneral
	}
	return ExitSuccess
}

// diagnose runs every check and derives the overall status.
func diagnose(configName string) *diagnosis {
	d := &diagnosis{
		Runtime: runtimeInfo{OS: runtime.GOOS, Arch: runtime.GOARCH},
	}

	checkBrowser(d)
	checkRuntime(d)
	checkConfig(d, configName)

	switch {
	case len(d.Errors) > 0:
		d.Status = statusErrors
	case len(d.Warnings) > 0:
		d.Status = statusWarnings
	default:
		d.Status = statusReady
	}
	return d
}

func checkBrowser(d *diagnosis) {
	path := os.Getenv("ROD_BROWSER_BIN")
	if path == "" {
		var found bool
		if path, found = lookBrowser(); !found {
			d.Warnings = append(d.Warnings,
				"Chrome/Chromium not found; --pdf will download one or set ROD_BROWSER_BIN")
			return
		}
	}
	if !fileutil.FileExists(path) {
		d.Errors = append(d.Errors, fmt.Sprintf("ROD_BROWSER_BIN points to a missing file: %s", path))
		return
	}

	d.Browser.Found = true
	d.Browser.Path = path
	d.Browser.Sandbox = !hints.SandboxDisabled()

	out, err := exec.Command(path, "--version").Output() // #nosec G204 -- browser path from env or lookup
	if err != nil {
		d.Warnings = append(d.Warnings, fmt.Sprintf("could not read browser version: %v", err))
		return
	}
	d.Browser.Version = strings.TrimSpace(string(out))
}

func checkRuntime(d *diagnosis) {
	d.Runtime.Container = hints.IsInContainer()
	d.Runtime.CI = hints.InCI()
	if (d.Runtime.Container || d.Runtime.CI) && !hints.SandboxDisabled() {
		d.Warnings = append(d.Warnings, "container or CI detected; set ROD_NO_SANDBOX=true for --pdf")
	}

	f, err := os.CreateTemp("", "mdpreview-doctor-*")
	if err != nil {
		d.Errors = append(d.Errors, fmt.Sprintf("temp directory not writable: %s", os.TempDir()))
		return
	}
	_ = f.Close()
	_ = os.Remove(f.Name())
	d.Runtime.TempWritable = true
}

// checkConfig reports which file a config name resolves to. Without a name
// nothing is loaded and defaults apply.
func checkConfig(d *diagnosis, name string) {
	if name == "" {
		name = os.Getenv(envPrefix + "CONFIG")
	}
	if name == "" {
		return
	}
	d.Config.Name = name

	if fileutil.IsFilePath(name) {
		d.Config.Searched = []string{name}
	} else {
		d.Config.Searched = config.SearchPaths(name)
	}
	for _, p := range d.Config.Searched {
		if fileutil.FileExists(p) {
			d.Config.Path = p
			break
		}
	}
	if d.Config.Path == "" {
		d.Errors = append(d.Errors, fmt.Sprintf("config %q not found", name))
		return
	}
	if _, err := config.LoadConfig(name); err != nil {
		d.Errors = append(d.Errors, err.Error())
	}
}

// printDiagnosis writes the human-readable report.
func printDiagnosis(w io.Writer, d *diagnosis) {
	fmt.Fprintln(w, "mdpreview doctor")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Browser (PDF output)")
	if d.Browser.Found {
		fmt.Fprintf(w, "  [OK] Found at %s\n", d.Browser.Path)
		if d.Browser.Version != "" {
			fmt.Fprintf(w, "  [OK] Version: %s\n", d.Browser.Version)
		}
		if d.Browser.Sandbox {
			fmt.Fprintln(w, "  [OK] Sandbox: enabled")
		} else {
			fmt.Fprintln(w, "  [OK] Sandbox: disabled (ROD_NO_SANDBOX=true)")
		}
	} else {
		fmt.Fprintln(w, "  [WARN] Not found")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Runtime")
	fmt.Fprintf(w, "  [OK] Platform: %s/%s\n", d.Runtime.OS, d.Runtime.Arch)
	if d.Runtime.Container {
		fmt.Fprintln(w, "  [OK] Container: detected")
	}
	if d.Runtime.CI {
		fmt.Fprintln(w, "  [OK] CI: detected")
	}
	if d.Runtime.TempWritable {
		fmt.Fprintln(w, "  [OK] Temp directory: writable")
	} else {
		fmt.Fprintln(w, "  [ERROR] Temp directory: not writable")
	}
	fmt.Fprintln(w)

	if d.Config.Name != "" {
		fmt.Fprintln(w, "Config")
		if d.Config.Path != "" {
			fmt.Fprintf(w, "  [OK] %s -> %s\n", d.Config.Name, filepath.Clean(d.Config.Path))
		} else {
			fmt.Fprintf(w, "  [ERROR] %s not found in %s\n", d.Config.Name, strings.Join(d.Config.Searched, ", "))
		}
		fmt.Fprintln(w)
	}

	printList(w, "Warnings:", "WARN", d.Warnings)
	printList(w, "Errors:", "ERROR", d.Errors)

	switch d.Status {
	case statusReady:
		fmt.Fprintln(w, "Status: Ready")
	case statusWarnings:
		fmt.Fprintln(w, "Status: Ready with warnings")
	case statusErrors:
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}

func printList(w io.Writer, title, tag string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintln(w, title)
	for _, item := range items {
		fmt.Fprintf(w, "  [%s] %s\n", tag, item)
	}
	fmt.Fprintln(w)
}
