package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/alnah/go-mdpreview/internal/config"
)

// envPrefix is shared by every recognized environment variable.
const envPrefix = "MDPREVIEW_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	// Tier 1 - Essential
	ConfigPath string        // MDPREVIEW_CONFIG: config file path
	Style      string        // MDPREVIEW_STYLE: CSS style name or path
	Timeout    time.Duration // MDPREVIEW_TIMEOUT: PDF rendering timeout

	// Tier 2 - I/O
	InputDir  string // MDPREVIEW_INPUT_DIR: default input directory
	OutputDir string // MDPREVIEW_OUTPUT_DIR: default output directory
	Workers   int    // MDPREVIEW_WORKERS: parallel workers

	// Tier 3 - Rendering
	HeaderPrefix string // MDPREVIEW_HEADER_PREFIX: heading anchor prefix
	WideClass    string // MDPREVIEW_WIDE_CLASS: ranges, east-asian
	DiagramLang  string // MDPREVIEW_DIAGRAM_LANG: diagram fence language
	MathJaxURL   string // MDPREVIEW_MATHJAX_URL: MathJax script location
	MermaidURL   string // MDPREVIEW_MERMAID_URL: Mermaid script location
	PageSize     string // MDPREVIEW_PAGE_SIZE: a4, letter, legal
	Lang         string // MDPREVIEW_LANG: html lang attribute
}

// knownEnvVars lists valid MDPREVIEW_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	// Tier 1 - Essential
	"MDPREVIEW_CONFIG":  true,
	"MDPREVIEW_STYLE":   true,
	"MDPREVIEW_TIMEOUT": true,
	// Tier 2 - I/O
	"MDPREVIEW_INPUT_DIR":  true,
	"MDPREVIEW_OUTPUT_DIR": true,
	"MDPREVIEW_WORKERS":    true,
	// Tier 3 - Rendering
	"MDPREVIEW_HEADER_PREFIX": true,
	"MDPREVIEW_WIDE_CLASS":    true,
	"MDPREVIEW_DIAGRAM_LANG":  true,
	"MDPREVIEW_MATHJAX_URL":   true,
	"MDPREVIEW_MERMAID_URL":   true,
	"MDPREVIEW_PAGE_SIZE":     true,
	"MDPREVIEW_LANG":          true,
}

// loadEnvConfig reads configuration from environment variables.
// Returns a struct with all recognized MDPREVIEW_* values.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath:   os.Getenv("MDPREVIEW_CONFIG"),
		Style:        os.Getenv("MDPREVIEW_STYLE"),
		InputDir:     os.Getenv("MDPREVIEW_INPUT_DIR"),
		OutputDir:    os.Getenv("MDPREVIEW_OUTPUT_DIR"),
		HeaderPrefix: os.Getenv("MDPREVIEW_HEADER_PREFIX"),
		WideClass:    os.Getenv("MDPREVIEW_WIDE_CLASS"),
		DiagramLang:  os.Getenv("MDPREVIEW_DIAGRAM_LANG"),
		MathJaxURL:   os.Getenv("MDPREVIEW_MATHJAX_URL"),
		MermaidURL:   os.Getenv("MDPREVIEW_MERMAID_URL"),
		PageSize:     os.Getenv("MDPREVIEW_PAGE_SIZE"),
		Lang:         os.Getenv("MDPREVIEW_LANG"),
	}

	if timeout := os.Getenv("MDPREVIEW_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	if workers := os.Getenv("MDPREVIEW_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars writes warnings for unrecognized MDPREVIEW_* variables,
// sorted by name.
func warnUnknownEnvVars(w io.Writer) {
	var unknown []string
	for _, env := range os.Environ() {
		if !strings.HasPrefix(env, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(env, "=")
		if !knownEnvVars[name] {
			unknown = append(unknown, name)
		}
	}
	sort.Strings(unknown)
	for _, name := range unknown {
		fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
	}
}

// applyEnvConfig applies set environment values over the loaded config.
// Precedence: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeFlags).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	setString(&cfg.CSS.Style, env.Style)
	setString(&cfg.Input.DefaultDir, env.InputDir)
	setString(&cfg.Output.DefaultDir, env.OutputDir)
	setString(&cfg.Output.Lang, env.Lang)
	setString(&cfg.Headings.Prefix, env.HeaderPrefix)
	setString(&cfg.CJK.WideClass, env.WideClass)
	setString(&cfg.Code.DiagramLanguage, env.DiagramLang)
	setString(&cfg.Mermaid.URL, env.MermaidURL)
	setString(&cfg.Page.Size, env.PageSize)

	// A MathJax location turns math back on.
	if env.MathJaxURL != "" {
		cfg.Math.URL = env.MathJaxURL
		cfg.Math.Enabled = true
	}
}

// setString overwrites dst when value is non-empty.
func setString(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}
