package pipeline

import (
	"context"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// CSSInjector defines the contract for CSS injection into HTML.
type CSSInjector interface {
	InjectCSS(ctx context.Context, htmlContent, cssContent string) string
}

// CSSInjection adds CSS to a page as a <style> element.
type CSSInjection struct{}

// InjectCSS appends a <style> element to <head>. Fragments without a head
// get the style element first. The page is returned unchanged when css is
// empty, ctx is done, or the page cannot be parsed.
func (s *CSSInjection) InjectCSS(ctx context.Context, htmlContent, cssContent string) string {
	if cssContent == "" || ctx.Err() != nil {
		return htmlContent
	}

	doc, isFragment, err := parseHTML(htmlContent)
	if err != nil {
		return htmlContent
	}

	style := &html.Node{Type: html.ElementNode, DataAtom: atom.Style, Data: "style"}
	style.AppendChild(&html.Node{Type: html.TextNode, Data: sanitizeCSS(cssContent)})

	if head := findElement(doc, atom.Head); head != nil {
		head.AppendChild(style)
	} else {
		doc.InsertBefore(style, doc.FirstChild)
	}

	out, err := renderHTML(doc, isFragment)
	if err != nil {
		return htmlContent
	}
	return out
}

// sanitizeCSS keeps the stylesheet from closing its <style> element.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}

var _ CSSInjector = (*CSSInjection)(nil)
