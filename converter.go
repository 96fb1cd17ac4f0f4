package mdpreview

import (
	"context"
	"fmt"
	"os"

	"github.com/alnah/go-mdpreview/internal/assets"
	"github.com/alnah/go-mdpreview/internal/fileutil"
	"github.com/alnah/go-mdpreview/internal/pipeline"
)

// DefaultTitle is the page title used when the input has no title and no
// level-1 heading.
const DefaultTitle = "Preview"

// Compile-time interface implementation checks.
var (
	_ pipeline.MarkdownPreprocessor = (*pipeline.CJKPreprocessor)(nil)
	_ pipeline.MarkdownPreprocessor = pipeline.PassthroughPreprocessor{}
	_ pipeline.HTMLConverter        = (*pipeline.GoldmarkConverter)(nil)
	_ pipeline.CSSInjector          = (*pipeline.CSSInjection)(nil)
	_ pipeline.TOCInjector          = (*pipeline.TOCInjection)(nil)
	_ pdfConverter                  = (*rodConverter)(nil)
	_ pdfRenderer                   = (*rodRenderer)(nil)
)

// Converter orchestrates the Markdown-to-preview pipeline.
// Create with NewConverter(), use Convert() for conversion, and Close() when done.
// A Converter holds no per-call state besides its browser and can be reused
// sequentially; use a ConverterPool for parallel PDF output.
type Converter struct {
	cfg               converterConfig
	assetLoader       assets.Loader
	publicAssetLoader AssetLoader // from WithAssetLoader
	preprocessor      pipeline.MarkdownPreprocessor
	htmlConverter     pipeline.HTMLConverter
	pageBuilder       *pipeline.PageBuilder
	cssInjector       pipeline.CSSInjector
	tocInjector       pipeline.TOCInjector
	pdfConverter      pdfConverter
	highlightCSS      string
}

// publicToInternalAdapter serves styles and templates from a public
// AssetLoader. Client scripts always come from the embedded assets.
type publicToInternalAdapter struct {
	pub AssetLoader
}

func (a *publicToInternalAdapter) Load(kind assets.Kind, name string) (string, error) {
	switch kind {
	case assets.KindStyle:
		return a.pub.LoadStyle(name)
	case assets.KindTemplate:
		return a.pub.LoadTemplate(name)
	default:
		return assets.Load(kind, name)
	}
}

// NewConverter creates a Converter with default configuration.
// Use options to customize behavior (e.g., WithStyle, WithoutMath, WithHooks).
// Returns error if asset loading, option validation, or template parsing fails.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg:           defaultConfig(),
		assetLoader:   assets.NewEmbeddedLoader(),
		htmlConverter: pipeline.NewGoldmarkConverter(),
		cssInjector:   &pipeline.CSSInjection{},
		tocInjector:   pipeline.NewTOCInjection(),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.cfg.assetPath != "" {
		resolver, err := assets.NewResolver(c.cfg.assetPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
		}
		c.assetLoader = resolver
	}

	if c.publicAssetLoader != nil {
		c.assetLoader = &publicToInternalAdapter{pub: c.publicAssetLoader}
	}

	if c.preprocessor == nil {
		class, ok := pipeline.WideClassByName(c.cfg.wideClass)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrInvalidWideClass, c.cfg.wideClass)
		}
		if c.cfg.cjkJoin {
			c.preprocessor = pipeline.NewCJKPreprocessor(class)
		} else {
			c.preprocessor = pipeline.PassthroughPreprocessor{}
		}
	}

	if err := c.resolveStyle(); err != nil {
		return nil, err
	}

	css, err := pipeline.HighlightCSS(c.cfg.highlightStyle)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidHighlightStyle, err)
	}
	c.highlightCSS = css

	if c.pageBuilder == nil {
		if err := c.initPageBuilder(); err != nil {
			return nil, err
		}
	}

	// Browser is launched lazily on the first PDF request.
	if c.pdfConverter == nil {
		c.pdfConverter = newRodConverter(c.cfg.timeout)
	}

	return c, nil
}

// Convert runs the full pipeline and returns the preview page, the TOC, and
// the PDF when input.PDF is set. The context is used for cancellation and timeout.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (c *Converter) Convert(ctx context.Context, input Input) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	markdown, err := resolveMarkdown(input)
	if err != nil {
		return nil, err
	}

	if err := validateInput(input); err != nil {
		return nil, err
	}

	mdContent := c.preprocessor.PreprocessMarkdown(ctx, markdown)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	rendered, err := c.htmlConverter.Render(ctx, mdContent, toRenderHooks(c.cfg.headerPrefix, c.cfg.diagramLanguage, c.cfg.hooks))
	if err != nil {
		return nil, fmt.Errorf("converting to HTML: %w", err)
	}

	fragment := rendered.HTML
	if input.SourceDir != "" {
		fragment, err = pipeline.RewriteRelativePaths(fragment, input.SourceDir)
		if err != nil {
			return nil, fmt.Errorf("rewriting relative paths: %w", err)
		}
	}

	// The payload carries the source as written, before any transform.
	page, err := c.pageBuilder.Build(ctx, c.pageData(input, markdown, rendered.TOC))
	if err != nil {
		return nil, fmt.Errorf("building page: %w", err)
	}

	page, err = pipeline.InjectContent(page, pipeline.DefaultContainerID, fragment)
	if err != nil {
		return nil, fmt.Errorf("injecting content: %w", err)
	}

	page, err = c.tocInjector.InjectTOC(ctx, page, rendered.TOC, toTOCData(input.TOC))
	if err != nil {
		return nil, fmt.Errorf("injecting TOC: %w", err)
	}

	// Order matters: base style, then highlighting, then user CSS (can override).
	cssContent := c.cfg.resolvedStyle + "\n" + c.highlightCSS
	if input.CSS != "" {
		cssContent += "\n" + input.CSS
	}
	page = c.cssInjector.InjectCSS(ctx, page, cssContent)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	res := &Result{
		HTML:     []byte(page),
		TOC:      toHeadings(rendered.TOC),
		Markdown: markdown,
	}

	if !input.PDF {
		return res, nil
	}

	pdfBytes, err := c.pdfConverter.ToPDF(ctx, page, &pdfOptions{Page: input.Page})
	if err != nil {
		return nil, fmt.Errorf("converting to PDF: %w", err)
	}
	res.PDF = pdfBytes
	return res, nil
}

// initPageBuilder loads the page template and the client scripts.
func (c *Converter) initPageBuilder() error {
	tmpl, err := c.assetLoader.Load(assets.KindTemplate, DefaultTemplate)
	if err != nil {
		return fmt.Errorf("loading page template: %w", convertAssetError(err))
	}

	var scripts pipeline.PageScripts
	for _, s := range []struct {
		name string
		dst  *string
	}{
		{assets.ScriptReadiness, &scripts.Readiness},
		{assets.ScriptMathJax, &scripts.MathJax},
		{assets.ScriptMermaid, &scripts.Mermaid},
	} {
		if *s.dst, err = c.assetLoader.Load(assets.KindScript, s.name); err != nil {
			return fmt.Errorf("loading %s script: %w", s.name, convertAssetError(err))
		}
	}

	c.pageBuilder, err = pipeline.NewPageBuilder(tmpl, scripts)
	if err != nil {
		return fmt.Errorf("initializing page builder: %w", err)
	}
	return nil
}

// Close releases resources (headless Chrome browser).
func (c *Converter) Close() error {
	if c.pdfConverter != nil {
		return c.pdfConverter.Close()
	}
	return nil
}

// pageData fills the page template from the input and configuration.
func (c *Converter) pageData(input Input, markdown string, headings []pipeline.Heading) pipeline.PageData {
	data := pipeline.PageData{
		Title:       pageTitle(input.Title, headings),
		Lang:        c.cfg.lang,
		Payload:     EncodePayload(markdown),
		ContainerID: pipeline.DefaultContainerID,
	}
	if input.TOC != nil {
		data.TOCID = pipeline.DefaultTOCID
	}
	if c.cfg.math {
		data.MathJaxURL = c.cfg.mathJaxURL
		data.MathJax = pipeline.DefaultMathJaxConfig()
	}
	if c.cfg.diagramLanguage != "" {
		data.MermaidURL = c.cfg.mermaidURL
		data.DiagramClass = c.cfg.diagramLanguage
	}
	return data
}

// pageTitle returns title, else the text of the first level-1 heading.
func pageTitle(title string, headings []pipeline.Heading) string {
	if title != "" {
		return title
	}
	for _, h := range headings {
		if h.Level != 1 {
			continue
		}
		if text := pipeline.PlainText(h.Text); text != "" {
			return text
		}
	}
	return DefaultTitle
}

// resolveMarkdown returns the Markdown source, decoding the payload when
// no Markdown is given.
func resolveMarkdown(input Input) (string, error) {
	if input.Markdown != "" {
		return input.Markdown, nil
	}
	if input.Payload == "" {
		return "", ErrEmptyMarkdown
	}
	markdown, err := DecodePayload(input.Payload)
	if err != nil {
		return "", err
	}
	if markdown == "" {
		return "", ErrEmptyMarkdown
	}
	return markdown, nil
}

// resolveStyle resolves the style input (name, path, or CSS content) to CSS content.
// Called during NewConverter() after options are applied and the asset loader is configured.
func (c *Converter) resolveStyle() error {
	input := c.cfg.styleInput
	if input == "" {
		return nil
	}

	if fileutil.IsFilePath(input) {
		content, err := os.ReadFile(input) // #nosec G304 -- user-provided path
		if err != nil {
			return fmt.Errorf("loading style file %q: %w", input, err)
		}
		c.cfg.resolvedStyle = string(content)
		return nil
	}

	if fileutil.IsCSS(input) {
		c.cfg.resolvedStyle = input
		return nil
	}

	css, err := c.assetLoader.Load(assets.KindStyle, input)
	if err != nil {
		return fmt.Errorf("loading style %q: %w", input, convertAssetError(err))
	}
	c.cfg.resolvedStyle = css
	return nil
}

// validateInput checks the optional settings of an input.
//
// This is a TRUST BOUNDARY for direct library users who build Input manually.
// CLI users have their input validated earlier by Config.Validate() at config load time.
func validateInput(input Input) error {
	if err := input.Page.Validate(); err != nil {
		return err
	}
	return input.TOC.Validate()
}
