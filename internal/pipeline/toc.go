package pipeline

import (
	"context"
	"fmt"
	"html"
	"regexp"
	"strconv"
	"strings"

	xhtml "golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// DefaultTOCID is the element that receives the table of contents.
const DefaultTOCID = "toc"

// TOCData holds TOC configuration for injection.
type TOCData struct {
	Title       string
	MinDepth    int    // lowest heading level listed
	MaxDepth    int    // highest heading level listed
	ContainerID string // element receiving the TOC, DefaultTOCID if empty
}

// TOCInjector defines the contract for TOC injection into HTML.
type TOCInjector interface {
	InjectTOC(ctx context.Context, page string, headings []Heading, data *TOCData) (string, error)
}

var tagPattern = regexp.MustCompile(`<[^>]*>`)

// PlainText strips tags from rendered inline markup and decodes entities.
func PlainText(s string) string {
	return strings.TrimSpace(html.UnescapeString(tagPattern.ReplaceAllString(s, "")))
}

// filterHeadings keeps linkable headings with minDepth <= level <= maxDepth.
func filterHeadings(headings []Heading, minDepth, maxDepth int) []Heading {
	var out []Heading
	for _, h := range headings {
		if h.Anchor != "" && h.Level >= minDepth && h.Level <= maxDepth {
			out = append(out, h)
		}
	}
	return out
}

// outline numbers TOC entries hierarchically. The first entry's level is
// depth 1, and an entry is never more than one depth below its predecessor,
// so an H1 followed by an H3 reads "1." then "1.1.".
type outline struct {
	base int
	path []int
}

// add records an entry at level and returns its number and depth.
func (o *outline) add(level int) (string, int) {
	if o.base == 0 {
		o.base = level
	}
	depth := min(max(level-o.base+1, 1), len(o.path)+1)

	if depth > len(o.path) {
		o.path = append(o.path, 1)
	} else {
		o.path = o.path[:depth]
		o.path[depth-1]++
	}

	var b strings.Builder
	for _, n := range o.path {
		b.WriteString(strconv.Itoa(n))
		b.WriteByte('.')
	}
	return b.String(), depth
}

// tocNode builds the <nav class="toc"> tree, or nil for no headings.
// Entries are <div> rows indented by depth, so page styles for lists
// do not apply.
func tocNode(headings []Heading, title string) *xhtml.Node {
	if len(headings) == 0 {
		return nil
	}

	nav := element(atom.Nav, "class", "toc")
	if title != "" {
		h := element(atom.H2, "class", "toc-title")
		h.AppendChild(textNode(title))
		nav.AppendChild(h)
	}

	list := element(atom.Div, "class", "toc-list")
	nav.AppendChild(list)

	var o outline
	for _, h := range headings {
		num, depth := o.add(h.Level)

		row := element(atom.Div, "class", "toc-item")
		if depth > 1 {
			row.Attr = append(row.Attr, xhtml.Attribute{
				Key: "style",
				Val: fmt.Sprintf("padding-left:%.1fem", float64(depth-1)*1.5),
			})
		}
		link := element(atom.A, "href", "#"+h.Anchor)
		link.AppendChild(textNode(num + " " + PlainText(h.Text)))
		row.AppendChild(link)
		list.AppendChild(row)
	}
	return nav
}

// NumberedTOC renders the numbered TOC markup for headings. Empty when
// there are none.
func NumberedTOC(headings []Heading, title string) string {
	nav := tocNode(headings, title)
	if nav == nil {
		return ""
	}
	var b strings.Builder
	if err := xhtml.Render(&b, nav); err != nil {
		return ""
	}
	return b.String()
}

func element(a atom.Atom, key, val string) *xhtml.Node {
	return &xhtml.Node{
		Type:     xhtml.ElementNode,
		DataAtom: a,
		Data:     a.String(),
		Attr:     []xhtml.Attribute{{Key: key, Val: val}},
	}
}

func textNode(s string) *xhtml.Node {
	return &xhtml.Node{Type: xhtml.TextNode, Data: s}
}

// TOCInjection implements TOCInjector.
type TOCInjection struct{}

// NewTOCInjection creates a new TOC injector.
func NewTOCInjection() *TOCInjection {
	return &TOCInjection{}
}

// InjectTOC places the numbered TOC in the TOC container, or first in
// <body> when the page has none. The page is returned unchanged when data
// is nil or no heading falls in the depth range.
func (t *TOCInjection) InjectTOC(ctx context.Context, page string, headings []Heading, data *TOCData) (string, error) {
	if data == nil {
		return page, nil
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	nav := tocNode(filterHeadings(headings, data.MinDepth, data.MaxDepth), data.Title)
	if nav == nil {
		return page, nil
	}

	id := data.ContainerID
	if id == "" {
		id = DefaultTOCID
	}

	doc, isFragment, err := parseHTML(page)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrHTMLParse, err)
	}

	switch container := findByID(doc, id); {
	case container != nil:
		container.AppendChild(nav)
	default:
		parent := findElement(doc, atom.Body)
		if parent == nil {
			parent = doc
		}
		parent.InsertBefore(nav, parent.FirstChild)
	}
	return renderHTML(doc, isFragment)
}

var _ TOCInjector = (*TOCInjection)(nil)
