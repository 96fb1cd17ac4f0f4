package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html"
	"regexp"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// ErrHTMLConversion indicates HTML conversion failed.
var ErrHTMLConversion = errors.New("HTML conversion failed")

// Defaults for the code hook and highlighting.
const (
	DefaultDiagramLanguage  = "mermaid"
	DefaultFallbackLanguage = "plaintext"
	DefaultHighlightStyle   = "github"
)

// Heading is one table of contents record, in document order.
type Heading struct {
	Anchor string // header prefix + slug of the raw heading source
	Level  int    // 1-6
	Text   string // rendered inline markup
}

// HeadingFormatter returns the markup for one heading.
type HeadingFormatter func(h Heading) string

// CodeFormatter returns markup for a fenced code block. Returning false
// hands the block to the default highlighter.
type CodeFormatter func(code, language string) (markup string, handled bool)

// RenderHooks is the per-call hook record passed to Render.
// Nil formatters use DefaultHeadingFormatter and DiagramCodeFormatter(DefaultDiagramLanguage).
type RenderHooks struct {
	HeaderPrefix string
	Heading      HeadingFormatter
	Code         CodeFormatter
}

// withDefaults returns a copy with nil formatters filled in.
func (h *RenderHooks) withDefaults() RenderHooks {
	var out RenderHooks
	if h != nil {
		out = *h
	}
	if out.Heading == nil {
		out.Heading = DefaultHeadingFormatter
	}
	if out.Code == nil {
		out.Code = DiagramCodeFormatter(DefaultDiagramLanguage)
	}
	return out
}

// Rendered is the output of one Render call.
type Rendered struct {
	HTML string    // HTML fragment (no document wrapper)
	TOC  []Heading // headings encountered, in document order
}

// HTMLConverter abstracts Markdown to HTML conversion.
type HTMLConverter interface {
	Render(ctx context.Context, content string, hooks *RenderHooks) (*Rendered, error)
}

// nonWordRun matches runs of characters outside [A-Za-z0-9_].
var nonWordRun = regexp.MustCompile(`[^\w]+`)

// Anchor builds a heading anchor: prefix followed by the lowercased raw
// heading text with every run of non-word characters replaced by "-".
func Anchor(prefix, raw string) string {
	return prefix + nonWordRun.ReplaceAllString(strings.ToLower(raw), "-")
}

// DefaultHeadingFormatter renders a heading with an id and an empty
// header-anchor link in front of the text.
func DefaultHeadingFormatter(h Heading) string {
	anchor := html.EscapeString(h.Anchor)
	return fmt.Sprintf(
		"<h%d id=\"%s\"><a class=\"header-anchor\" href=\"#%s\"></a>%s</h%d>\n",
		h.Level, anchor, anchor, h.Text, h.Level,
	)
}

// DiagramCodeFormatter handles blocks tagged with language by wrapping the
// unhighlighted content in a container that a client-side diagram renderer
// picks up. Every other block is left to the default highlighter.
func DiagramCodeFormatter(language string) CodeFormatter {
	return func(code, lang string) (string, bool) {
		if language == "" || lang != language {
			return "", false
		}
		return `<div class="` + html.EscapeString(language) + `">` + html.EscapeString(code) + "</div>\n", true
	}
}

// KindMarkupBlock identifies blocks whose markup was produced by a hook.
var KindMarkupBlock = ast.NewNodeKind("MarkupBlock")

// markupBlock replaces a heading or code block once a hook produced its markup.
type markupBlock struct {
	ast.BaseBlock
	markup string
}

// Kind implements ast.Node.
func (n *markupBlock) Kind() ast.NodeKind { return KindMarkupBlock }

// Dump implements ast.Node.
func (n *markupBlock) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{"Markup": n.markup}, nil)
}

// markupRenderer writes markupBlock content as is.
type markupRenderer struct{}

// RegisterFuncs implements renderer.NodeRenderer.
func (markupRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindMarkupBlock, func(w util.BufWriter, _ []byte, n ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering {
			_, _ = w.WriteString(n.(*markupBlock).markup)
		}
		return ast.WalkSkipChildren, nil
	})
}

// GoldmarkConverter converts Markdown to HTML using goldmark (pure Go).
// The goldmark instance is built once and never modified; hooks travel
// with each Render call.
type GoldmarkConverter struct {
	md goldmark.Markdown
}

// NewGoldmarkConverter creates a GoldmarkConverter with GFM extensions and
// class-based syntax highlighting.
func NewGoldmarkConverter() *GoldmarkConverter {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,      // Tables, strikethrough, autolinks, task lists
			extension.Footnote, // [^1] footnotes
			highlighting.NewHighlighting(
				highlighting.WithStyle(DefaultHighlightStyle),
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(true), // CSS classes; stylesheet comes from HighlightCSS
				),
				highlighting.WithWrapperRenderer(fallbackWrapper),
			),
		),
		goldmark.WithRendererOptions(
			renderer.WithNodeRenderers(util.Prioritized(markupRenderer{}, 100)),
			// WithUnsafe() intentionally not used; raw HTML stays escaped.
		),
	)
	return &GoldmarkConverter{md: md}
}

// fallbackWrapper wraps blocks the highlighter could not lex. They render
// as the fallback language so the stylesheet treats them like any other block.
func fallbackWrapper(w util.BufWriter, ctx highlighting.CodeBlockContext, entering bool) {
	if ctx.Highlighted() {
		return
	}
	if entering {
		_, _ = w.WriteString(`<pre class="chroma"><code class="language-` + DefaultFallbackLanguage + `">`)
		return
	}
	_, _ = w.WriteString("</code></pre>\n")
}

// plainCodeMarkup renders an indented code block like a fenced block the
// highlighter could not lex.
func plainCodeMarkup(code string) string {
	return `<pre class="chroma"><code class="language-` + DefaultFallbackLanguage + `">` +
		html.EscapeString(code) + "</code></pre>\n"
}

// Render converts Markdown content to an HTML fragment and collects headings.
// Supports context cancellation via goroutine + select pattern since
// Goldmark doesn't natively support context.
func (c *GoldmarkConverter) Render(ctx context.Context, content string, hooks *RenderHooks) (*Rendered, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	h := hooks.withDefaults()

	type result struct {
		rendered *Rendered
		err      error
	}

	done := make(chan result, 1)

	go func() {
		r, err := c.render([]byte(content), h)
		if err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrHTMLConversion, err)}
			return
		}
		done <- result{rendered: r}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-done:
		return r.rendered, r.err
	}
}

// render parses source, runs the hooks over headings and code blocks, then
// renders the rewritten tree. Each call owns its TOC slice.
func (c *GoldmarkConverter) render(source []byte, hooks RenderHooks) (*Rendered, error) {
	doc := c.md.Parser().Parse(text.NewReader(source))

	type replacement struct {
		node   ast.Node
		markup string
	}
	var (
		toc      []Heading
		replaced []replacement
	)

	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *ast.Heading:
			inline, err := c.renderInline(source, node)
			if err != nil {
				return ast.WalkStop, err
			}
			h := Heading{
				Anchor: Anchor(hooks.HeaderPrefix, rawText(node, source)),
				Level:  node.Level,
				Text:   inline,
			}
			toc = append(toc, h)
			replaced = append(replaced, replacement{node: node, markup: hooks.Heading(h)})
			return ast.WalkSkipChildren, nil

		case *ast.FencedCodeBlock:
			lang := string(node.Language(source))
			if markup, ok := hooks.Code(string(rawText(node, source)), lang); ok {
				replaced = append(replaced, replacement{node: node, markup: markup})
			}
			return ast.WalkSkipChildren, nil

		case *ast.CodeBlock:
			code := rawText(node, source)
			markup, ok := hooks.Code(code, "")
			if !ok {
				markup = plainCodeMarkup(code)
			}
			replaced = append(replaced, replacement{node: node, markup: markup})
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, err
	}

	for _, r := range replaced {
		parent := r.node.Parent()
		parent.ReplaceChild(parent, r.node, &markupBlock{markup: r.markup})
	}

	var buf bytes.Buffer
	if err := c.md.Renderer().Render(&buf, source, doc); err != nil {
		return nil, err
	}
	return &Rendered{HTML: buf.String(), TOC: toc}, nil
}

// renderInline renders the inline children of a heading.
func (c *GoldmarkConverter) renderInline(source []byte, heading *ast.Heading) (string, error) {
	var buf bytes.Buffer
	for child := heading.FirstChild(); child != nil; child = child.NextSibling() {
		if err := c.md.Renderer().Render(&buf, source, child); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

// rawText concatenates the source lines of a block node.
// Heading lines are joined with "\n" (setext headings may span lines).
func rawText(n ast.Node, source []byte) string {
	lines := n.Lines()
	var b strings.Builder
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		if _, heading := n.(*ast.Heading); heading && i > 0 {
			b.WriteByte('\n')
		}
		b.Write(seg.Value(source))
	}
	return b.String()
}

// ErrUnknownHighlightStyle indicates the requested chroma style does not exist.
var ErrUnknownHighlightStyle = errors.New("unknown highlight style")

// HighlightCSS returns the stylesheet matching the classes emitted by the
// highlighter for the named chroma style. Empty name means DefaultHighlightStyle.
func HighlightCSS(name string) (string, error) {
	if name == "" {
		name = DefaultHighlightStyle
	}
	style, ok := styles.Registry[strings.ToLower(name)]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownHighlightStyle, name)
	}

	var buf bytes.Buffer
	formatter := chromahtml.New(chromahtml.WithClasses(true))
	if err := formatter.WriteCSS(&buf, style); err != nil {
		return "", fmt.Errorf("%w: %v", ErrHTMLConversion, err)
	}
	return buf.String(), nil
}
