package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-mdpreview/internal/fileutil"
	"github.com/alnah/go-mdpreview/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// AppName names the per-user config directory.
const AppName = "go-mdpreview"

// Field length limits.
const (
	MaxPathLength        = 4096
	MaxURLLength         = 2048 // Browser limit
	MaxStyleLength       = 100
	MaxPrefixLength      = 50
	MaxLanguageLength    = 50
	MaxLangTagLength     = 35 // BCP 47 practical limit
	MaxTOCTitleLength    = 100
	MaxPageSizeLength    = 10 // "letter", "a4", "legal"
	MaxOrientationLength = 10 // "portrait", "landscape"
	MaxDebounceMs        = 10000
)

// Config holds all configuration for preview generation.
type Config struct {
	Input    InputConfig    `yaml:"input"`
	Output   OutputConfig   `yaml:"output"`
	CSS      CSSConfig      `yaml:"css"`
	Assets   AssetsConfig   `yaml:"assets"`
	CJK      CJKConfig      `yaml:"cjk"`
	Headings HeadingsConfig `yaml:"headings"`
	Code     CodeConfig     `yaml:"code"`
	Math     MathConfig     `yaml:"math"`
	Mermaid  MermaidConfig  `yaml:"mermaid"`
	TOC      TOCConfig      `yaml:"toc"`
	Page     PageConfig     `yaml:"page"`
	Watch    WatchConfig    `yaml:"watch"`
}

// InputConfig defines input source options.
type InputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default input directory (empty = must specify)
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default output directory (empty = same as source)
	PDF        bool   `yaml:"pdf"`        // Also write a PDF next to the page
	Lang       string `yaml:"lang"`       // html lang attribute
}

// CSSConfig defines CSS styling options.
type CSSConfig struct {
	Style string `yaml:"style"` // Style name, file path, or CSS content (empty = default)
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = use embedded assets
}

// CJKConfig controls line joining between wide characters.
type CJKConfig struct {
	Enabled   bool   `yaml:"enabled"`
	WideClass string `yaml:"wideClass"` // "ranges" or "east-asian"
}

// HeadingsConfig controls heading anchors.
type HeadingsConfig struct {
	Prefix string `yaml:"prefix"` // Prepended to every anchor
}

// CodeConfig controls fenced code rendering.
type CodeConfig struct {
	DiagramLanguage string `yaml:"diagramLanguage"` // Fence language rendered as a diagram
	HighlightStyle  string `yaml:"highlightStyle"`  // chroma style name
}

// MathConfig controls the MathJax script.
type MathConfig struct {
	Enabled bool   `yaml:"enabled"`
	URL     string `yaml:"url"`
}

// MermaidConfig controls the Mermaid script.
type MermaidConfig struct {
	URL string `yaml:"url"`
}

// TOCConfig defines table of contents options.
type TOCConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Title    string `yaml:"title"`    // Empty = no title above TOC
	MinDepth int    `yaml:"minDepth"` // 1-6, default 2
	MaxDepth int    `yaml:"maxDepth"` // 1-6, default 3
}

// PageConfig defines PDF page settings.
type PageConfig struct {
	Size        string  `yaml:"size"`        // "letter", "a4", "legal" (default: "letter")
	Orientation string  `yaml:"orientation"` // "portrait", "landscape" (default: "portrait")
	Margin      float64 `yaml:"margin"`      // inches (default: 0.5)
}

// WatchConfig defines watch mode options.
type WatchConfig struct {
	DebounceMs int `yaml:"debounceMs"` // Quiet period before a rebuild (default: 300)
}

// Validate checks field lengths and enumerated values.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	fields := []struct {
		name  string
		value string
		max   int
	}{
		{"input.defaultDir", c.Input.DefaultDir, MaxPathLength},
		{"output.defaultDir", c.Output.DefaultDir, MaxPathLength},
		{"output.lang", c.Output.Lang, MaxLangTagLength},
		{"css.style", c.CSS.Style, MaxPathLength},
		{"assets.basePath", c.Assets.BasePath, MaxPathLength},
		{"headings.prefix", c.Headings.Prefix, MaxPrefixLength},
		{"code.diagramLanguage", c.Code.DiagramLanguage, MaxLanguageLength},
		{"code.highlightStyle", c.Code.HighlightStyle, MaxStyleLength},
		{"math.url", c.Math.URL, MaxURLLength},
		{"mermaid.url", c.Mermaid.URL, MaxURLLength},
		{"toc.title", c.TOC.Title, MaxTOCTitleLength},
		{"page.size", c.Page.Size, MaxPageSizeLength},
		{"page.orientation", c.Page.Orientation, MaxOrientationLength},
	}
	for _, f := range fields {
		if err := validateFieldLength(f.name, f.value, f.max); err != nil {
			return err
		}
	}

	if strings.ContainsAny(c.Code.DiagramLanguage, " \t\n") {
		return fmt.Errorf("%w: code.diagramLanguage %q contains whitespace", ErrInvalidValue, c.Code.DiagramLanguage)
	}

	if c.CJK.WideClass != "" {
		switch strings.ToLower(c.CJK.WideClass) {
		case "ranges", "east-asian":
			// valid
		default:
			return fmt.Errorf("%w: cjk.wideClass %q (must be ranges or east-asian)", ErrInvalidValue, c.CJK.WideClass)
		}
	}

	if c.TOC.Enabled {
		if err := validateDepth("toc.minDepth", c.TOC.MinDepth); err != nil {
			return err
		}
		if err := validateDepth("toc.maxDepth", c.TOC.MaxDepth); err != nil {
			return err
		}
		if c.TOC.MinDepth != 0 && c.TOC.MaxDepth != 0 && c.TOC.MinDepth > c.TOC.MaxDepth {
			return fmt.Errorf("%w: toc.minDepth (%d) > toc.maxDepth (%d)", ErrInvalidValue, c.TOC.MinDepth, c.TOC.MaxDepth)
		}
	}

	if c.Page.Margin < 0 {
		return fmt.Errorf("%w: page.margin must not be negative, got %.2f", ErrInvalidValue, c.Page.Margin)
	}

	if c.Watch.DebounceMs < 0 || c.Watch.DebounceMs > MaxDebounceMs {
		return fmt.Errorf("%w: watch.debounceMs must be between 0 and %d, got %d", ErrInvalidValue, MaxDebounceMs, c.Watch.DebounceMs)
	}

	return nil
}

// validateDepth accepts 0 (use default) or a heading level.
func validateDepth(field string, depth int) error {
	if depth == 0 {
		return nil
	}
	if depth < 1 || depth > 6 {
		return fmt.Errorf("%w: %s must be between 1 and 6, got %d", ErrInvalidValue, field, depth)
	}
	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns the configuration used when no file is given.
// CJK joining and math are on; the TOC is off.
func DefaultConfig() *Config {
	return &Config{
		CJK:     CJKConfig{Enabled: true, WideClass: "ranges"},
		Code:    CodeConfig{DiagramLanguage: "mermaid"},
		Math:    MathConfig{Enabled: true},
		TOC:     TOCConfig{Enabled: false, MinDepth: 2, MaxDepth: 3},
		Page:    PageConfig{Size: "letter", Orientation: "portrait", Margin: 0.5},
		Watch:   WatchConfig{DebounceMs: 300},
		Output:  OutputConfig{Lang: "en"},
		Mermaid: MermaidConfig{},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Keys missing from the file keep their DefaultConfig values.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.Decode(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SearchPaths lists the candidate files for a config name, in lookup order:
// current directory, then the user config directory, .yaml before .yml.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}

	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, AppName, name+ext))
		}
	}

	return paths
}

// resolveConfigPath searches for a config file by name in standard locations.
func resolveConfigPath(name string) (string, error) {
	paths := SearchPaths(name)
	for _, p := range paths {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(paths, ", "))
}
