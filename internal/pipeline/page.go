package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
)

// Sentinel errors for page assembly.
var (
	ErrPageTemplate = errors.New("page template parsing failed")
	ErrPageRender   = errors.New("page template rendering failed")
)

// Default client-side script locations.
const (
	DefaultMermaidURL   = "https://cdn.jsdelivr.net/npm/mermaid@10/dist/mermaid.min.js"
	DefaultMermaidTheme = "default"
	DefaultLang         = "en"
)

// PayloadElementID is the element holding the base64 Markdown source.
const PayloadElementID = "markdown-base64"

// PageData is the data passed to the page template.
type PageData struct {
	Title   string
	Lang    string
	Payload string // base64 Markdown source, embedded as is

	ContainerID string // element receiving the rendered document
	TOCID       string // element receiving the TOC; empty omits it

	MathJaxURL string
	MathJax    *MathJaxConfig // nil disables math typesetting

	MermaidURL   string // empty disables diagram rendering
	MermaidTheme string
	DiagramClass string // class carried by diagram containers
}

// withDefaults fills empty fields with package defaults.
func (d PageData) withDefaults() PageData {
	if d.Lang == "" {
		d.Lang = DefaultLang
	}
	if d.ContainerID == "" {
		d.ContainerID = DefaultContainerID
	}
	if d.MathJax != nil && d.MathJaxURL == "" {
		d.MathJaxURL = DefaultMathJaxURL
	}
	if d.MermaidTheme == "" {
		d.MermaidTheme = DefaultMermaidTheme
	}
	if d.DiagramClass == "" {
		d.DiagramClass = DefaultDiagramLanguage
	}
	return d
}

// PageScripts holds the client scripts inlined into the page. The math and
// diagram scripts are only emitted when the page enables them.
type PageScripts struct {
	Readiness string
	MathJax   string
	Mermaid   string
}

// clientConfig is serialized into the page and read by the client scripts.
type clientConfig struct {
	MathJax         *MathJaxConfig `json:"mathjax,omitempty"`
	MobileEqnChunk  int            `json:"mobileEqnChunk,omitempty"`
	MarkClass       string         `json:"markClass,omitempty"`
	DiagramSelector string         `json:"diagramSelector,omitempty"`
	MermaidTheme    string         `json:"mermaidTheme,omitempty"`
}

// pageView is what the template sees: the page data, the trusted scripts
// and the client settings.
type pageView struct {
	PageData
	Scripts struct {
		Readiness, MathJax, Mermaid template.JS
	}
	Client clientConfig
}

func (d PageData) view(scripts PageScripts) pageView {
	v := pageView{PageData: d}
	// Scripts come from the asset loader, never from the document.
	v.Scripts.Readiness = template.JS(scripts.Readiness) // #nosec G203
	if d.MathJax != nil {
		v.Scripts.MathJax = template.JS(scripts.MathJax) // #nosec G203
		v.Client.MathJax = d.MathJax
		v.Client.MobileEqnChunk = d.MathJax.MobileEqnChunk
		v.Client.MarkClass = d.MathJax.MarkClass
	}
	if d.MermaidURL != "" {
		v.Scripts.Mermaid = template.JS(scripts.Mermaid) // #nosec G203
		v.Client.DiagramSelector = "." + d.DiagramClass
		v.Client.MermaidTheme = d.MermaidTheme
	}
	return v
}

// PageBuilder renders the page shell around a rendered document.
// The parsed template is immutable and safe for concurrent use.
type PageBuilder struct {
	tmpl    *template.Template
	scripts PageScripts
}

// NewPageBuilder parses the page template.
func NewPageBuilder(tmplContent string, scripts PageScripts) (*PageBuilder, error) {
	tmpl, err := template.New("page").Parse(tmplContent)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageTemplate, err)
	}
	return &PageBuilder{tmpl: tmpl, scripts: scripts}, nil
}

// Build renders the page shell. The document container is left empty;
// InjectContent fills it.
func (b *PageBuilder) Build(ctx context.Context, data PageData) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := b.tmpl.Execute(&buf, data.withDefaults().view(b.scripts)); err != nil {
		return "", fmt.Errorf("%w: %v", ErrPageRender, err)
	}
	return buf.String(), nil
}
