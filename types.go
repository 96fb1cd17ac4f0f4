package mdpreview

import (
	"fmt"
	"strings"

	"github.com/alnah/go-mdpreview/internal/pipeline"
)

// Page size constants.
const (
	PageSizeLetter = "letter"
	PageSizeA4     = "a4"
	PageSizeLegal  = "legal"
)

// Orientation constants.
const (
	OrientationPortrait  = "portrait"
	OrientationLandscape = "landscape"
)

// Margin bounds in inches.
const (
	MinMargin     = 0.25
	MaxMargin     = 3.0
	DefaultMargin = 0.5
)

// PageSettings configures PDF page dimensions.
type PageSettings struct {
	Size        string  // "letter", "a4", "legal"
	Orientation string  // "portrait", "landscape"
	Margin      float64 // inches, applied to all sides
}

// DefaultPageSettings returns page settings with default values.
func DefaultPageSettings() *PageSettings {
	return &PageSettings{
		Size:        PageSizeLetter,
		Orientation: OrientationPortrait,
		Margin:      DefaultMargin,
	}
}

// Validate checks that page settings are valid.
// Returns nil if p is nil (nil means use defaults).
// Does not mutate - uses case-insensitive comparison.
func (p *PageSettings) Validate() error {
	if p == nil {
		return nil
	}

	if !isValidPageSize(p.Size) {
		return fmt.Errorf("%w: %q", ErrInvalidPageSize, p.Size)
	}

	if !isValidOrientation(p.Orientation) {
		return fmt.Errorf("%w: %q", ErrInvalidOrientation, p.Orientation)
	}

	if p.Margin < MinMargin || p.Margin > MaxMargin {
		return fmt.Errorf("%w: %.2f (must be between %.2f and %.2f)", ErrInvalidMargin, p.Margin, MinMargin, MaxMargin)
	}

	return nil
}

func isValidPageSize(size string) bool {
	switch strings.ToLower(size) {
	case PageSizeLetter, PageSizeA4, PageSizeLegal:
		return true
	}
	return false
}

func isValidOrientation(orientation string) bool {
	switch strings.ToLower(orientation) {
	case OrientationPortrait, OrientationLandscape:
		return true
	}
	return false
}

// TOC depth constants.
const (
	DefaultTOCMinDepth = 2
	DefaultTOCMaxDepth = 3
	MaxTOCDepth        = 6
)

// TOC configures the table of contents placed in the page.
// Zero depths mean the defaults (2 and 3).
type TOC struct {
	Title    string
	MinDepth int
	MaxDepth int
}

// Validate checks depth bounds. Returns nil if t is nil (nil means no TOC).
func (t *TOC) Validate() error {
	if t == nil {
		return nil
	}
	minDepth, maxDepth := t.depths()
	if minDepth < 1 || minDepth > MaxTOCDepth {
		return fmt.Errorf("%w: minDepth %d (must be 1-%d)", ErrInvalidTOCDepth, minDepth, MaxTOCDepth)
	}
	if maxDepth < 1 || maxDepth > MaxTOCDepth {
		return fmt.Errorf("%w: maxDepth %d (must be 1-%d)", ErrInvalidTOCDepth, maxDepth, MaxTOCDepth)
	}
	if minDepth > maxDepth {
		return fmt.Errorf("%w: minDepth %d > maxDepth %d", ErrInvalidTOCDepth, minDepth, maxDepth)
	}
	return nil
}

func (t *TOC) depths() (int, int) {
	minDepth, maxDepth := t.MinDepth, t.MaxDepth
	if minDepth == 0 {
		minDepth = DefaultTOCMinDepth
	}
	if maxDepth == 0 {
		maxDepth = DefaultTOCMaxDepth
	}
	return minDepth, maxDepth
}

// Input contains conversion parameters.
type Input struct {
	Markdown  string        // Markdown content (required unless Payload is set)
	Payload   string        // base64 Markdown, used when Markdown is empty
	Title     string        // page title (optional, defaults to the first H1)
	SourceDir string        // resolves relative image and link paths (optional)
	CSS       string        // custom CSS appended after the style (optional)
	TOC       *TOC          // table of contents (optional)
	Page      *PageSettings // PDF page settings (optional, nil = defaults)
	PDF       bool          // also render the page to PDF
}

// Result holds the output of a conversion.
type Result struct {
	HTML     []byte    // self-contained preview page
	PDF      []byte    // nil unless Input.PDF was set
	TOC      []Heading // every heading in document order
	Markdown string    // source after payload decoding, before transforms
}

// Heading is one table-of-contents entry collected during rendering.
type Heading struct {
	Anchor string // id of the heading element, header prefix included
	Level  int    // 1-6
	Text   string // rendered inline markup of the heading
}

// Hooks customizes how headings and fenced code blocks are rendered.
// A nil field keeps the default behavior.
type Hooks struct {
	// Heading returns the full markup of a heading element.
	Heading func(h Heading) string

	// Code returns markup for a fenced block and whether it handled it.
	// Unhandled blocks are syntax highlighted.
	Code func(code, language string) (markup string, handled bool)
}

// DefaultHeadingMarkup renders a heading the way the converter does by
// default: an element with the anchor as id and an empty self link.
func DefaultHeadingMarkup(h Heading) string {
	return pipeline.DefaultHeadingFormatter(pipeline.Heading(h))
}

// DiagramMarkup wraps code in a container with the language as class when
// language matches diagramLanguage. The code is HTML-escaped, never
// highlighted.
func DiagramMarkup(diagramLanguage, code, language string) (string, bool) {
	return pipeline.DiagramCodeFormatter(diagramLanguage)(code, language)
}

// toRenderHooks builds the per-call hook record for the renderer.
func toRenderHooks(prefix, diagramLanguage string, hooks *Hooks) *pipeline.RenderHooks {
	rh := &pipeline.RenderHooks{
		HeaderPrefix: prefix,
		Code:         pipeline.DiagramCodeFormatter(diagramLanguage),
	}
	if hooks == nil {
		return rh
	}
	if hooks.Heading != nil {
		fn := hooks.Heading
		rh.Heading = func(h pipeline.Heading) string { return fn(Heading(h)) }
	}
	if hooks.Code != nil {
		rh.Code = hooks.Code
	}
	return rh
}

func toHeadings(in []pipeline.Heading) []Heading {
	if in == nil {
		return nil
	}
	out := make([]Heading, len(in))
	for i, h := range in {
		out[i] = Heading(h)
	}
	return out
}

func toTOCData(t *TOC) *pipeline.TOCData {
	if t == nil {
		return nil
	}
	minDepth, maxDepth := t.depths()
	return &pipeline.TOCData{
		Title:    t.Title,
		MinDepth: minDepth,
		MaxDepth: maxDepth,
	}
}
