package mdpreview

import (
	"time"

	"github.com/alnah/go-mdpreview/internal/pipeline"
)

// Defaults exposed for callers building their own configuration.
const (
	DefaultDiagramLanguage = pipeline.DefaultDiagramLanguage
	DefaultHighlightStyle  = pipeline.DefaultHighlightStyle
	DefaultMathJaxURL      = pipeline.DefaultMathJaxURL
	DefaultMermaidURL      = pipeline.DefaultMermaidURL
	DefaultLang            = pipeline.DefaultLang
	DefaultWideClass       = WideClassRanges
)

// Wide character class names accepted by WithWideClass.
const (
	WideClassRanges    = pipeline.WideClassRanges
	WideClassEastAsian = pipeline.WideClassEastAsian
)

// defaultTimeout is used when no timeout is specified.
const defaultTimeout = 30 * time.Second

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	timeout         time.Duration
	styleInput      string // name, file path, or CSS content
	resolvedStyle   string
	assetPath       string
	headerPrefix    string
	diagramLanguage string // "" disables diagrams
	wideClass       string
	cjkJoin         bool
	math            bool
	mathJaxURL      string
	mermaidURL      string
	highlightStyle  string
	lang            string
	hooks           *Hooks
}

func defaultConfig() converterConfig {
	return converterConfig{
		timeout:         defaultTimeout,
		styleInput:      DefaultStyle,
		diagramLanguage: DefaultDiagramLanguage,
		wideClass:       DefaultWideClass,
		cjkJoin:         true,
		math:            true,
		mathJaxURL:      DefaultMathJaxURL,
		mermaidURL:      DefaultMermaidURL,
		highlightStyle:  DefaultHighlightStyle,
		lang:            DefaultLang,
	}
}

// WithTimeout sets the PDF rendering timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("mdpreview: WithTimeout duration must be positive")
	}
	return func(c *Converter) {
		c.cfg.timeout = d
	}
}

// WithStyle sets the page CSS. The value can be:
//   - a style name ("default", "minimal") resolved by the asset loader
//   - a file path (contains / or \)
//   - CSS content (contains {)
//
// An empty value disables the base style.
func WithStyle(style string) Option {
	return func(c *Converter) {
		c.cfg.styleInput = style
	}
}

// WithAssetPath sets a directory holding styles/ and templates/ overrides.
// Embedded assets are used for anything the directory does not provide.
func WithAssetPath(path string) Option {
	return func(c *Converter) {
		c.cfg.assetPath = path
	}
}

// WithHeaderPrefix prepends prefix to every heading anchor.
func WithHeaderPrefix(prefix string) Option {
	return func(c *Converter) {
		c.cfg.headerPrefix = prefix
	}
}

// WithDiagramLanguage sets the fence language rendered as a diagram
// container. An empty language disables diagrams and the diagram script.
func WithDiagramLanguage(language string) Option {
	return func(c *Converter) {
		c.cfg.diagramLanguage = language
	}
}

// WithWideClass selects the wide character class used to join CJK lines:
// "ranges" (fixed code point ranges) or "east-asian" (Unicode East Asian
// Width wide and fullwidth).
func WithWideClass(name string) Option {
	return func(c *Converter) {
		c.cfg.wideClass = name
	}
}

// WithoutCJKJoin leaves line breaks between wide characters untouched.
func WithoutCJKJoin() Option {
	return func(c *Converter) {
		c.cfg.cjkJoin = false
	}
}

// WithMath enables math typesetting and loads MathJax from url.
// An empty url keeps the default location.
func WithMath(url string) Option {
	return func(c *Converter) {
		c.cfg.math = true
		if url != "" {
			c.cfg.mathJaxURL = url
		}
	}
}

// WithoutMath omits the math typesetter from the page.
func WithoutMath() Option {
	return func(c *Converter) {
		c.cfg.math = false
	}
}

// WithMermaidURL sets where the diagram script is loaded from.
func WithMermaidURL(url string) Option {
	return func(c *Converter) {
		c.cfg.mermaidURL = url
	}
}

// WithHighlightStyle sets the chroma style used for code highlighting CSS.
func WithHighlightStyle(name string) Option {
	return func(c *Converter) {
		c.cfg.highlightStyle = name
	}
}

// WithLang sets the lang attribute of the page.
func WithLang(lang string) Option {
	return func(c *Converter) {
		c.cfg.lang = lang
	}
}

// WithHooks replaces the heading and code rendering hooks.
// Nil fields keep the defaults.
func WithHooks(hooks *Hooks) Option {
	return func(c *Converter) {
		c.cfg.hooks = hooks
	}
}

// WithAssetLoader sets a custom loader for styles and page templates.
// Takes precedence over WithAssetPath.
func WithAssetLoader(loader AssetLoader) Option {
	return func(c *Converter) {
		c.publicAssetLoader = loader
	}
}
