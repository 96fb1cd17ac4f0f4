package pipeline

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Sentinel errors for DOM operations.
var (
	ErrContainerNotFound = errors.New("container element not found")
	ErrHTMLParse         = errors.New("HTML parsing failed")
)

// DefaultContainerID is the element that receives the rendered document.
const DefaultContainerID = "content"

// InjectContent parses page, appends fragment to the element whose id is
// containerID and renders the page back. Existing children are kept.
// Returns ErrContainerNotFound when no element carries the id.
func InjectContent(page, containerID, fragment string) (string, error) {
	if containerID == "" {
		containerID = DefaultContainerID
	}

	doc, isFragment, err := parseHTML(page)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrHTMLParse, err)
	}

	container := findByID(doc, containerID)
	if container == nil {
		return "", fmt.Errorf("%w: #%s", ErrContainerNotFound, containerID)
	}

	if err := appendFragment(container, fragment); err != nil {
		return "", err
	}
	return renderHTML(doc, isFragment)
}

// PayloadText reads a generated page and returns the text content of the
// payload element, a <div> with id PayloadElementID directly under <body>.
// Elements deeper in the page carrying the same id, such as heading anchors
// inside the content container, are skipped. Entities are decoded.
func PayloadText(r io.Reader) (string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrHTMLParse, err)
	}

	if body := findElement(doc, atom.Body); body != nil {
		for c := body.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && c.DataAtom == atom.Div && attr(c, "id") == PayloadElementID {
				return textContent(c), nil
			}
		}
	}
	return "", fmt.Errorf("%w: body > div#%s", ErrContainerNotFound, PayloadElementID)
}

// parseHTML parses HTML content, handling both full documents and fragments.
// Returns the parsed node, whether it was a fragment, and any error.
func parseHTML(content string) (*html.Node, bool, error) {
	trimmed := strings.ToLower(strings.TrimSpace(content))

	if strings.HasPrefix(trimmed, "<!doctype") || strings.HasPrefix(trimmed, "<html") {
		doc, err := html.Parse(strings.NewReader(content))
		return doc, false, err
	}

	// Fragment: parse with body context to avoid wrapping
	nodes, err := html.ParseFragment(strings.NewReader(content), bodyContext())
	if err != nil {
		return nil, true, err
	}

	container := &html.Node{Type: html.DocumentNode}
	for _, n := range nodes {
		container.AppendChild(n)
	}
	return container, true, nil
}

// renderHTML renders the document back to string.
// For fragments, only renders the children (avoids adding <html><body> wrapper).
func renderHTML(doc *html.Node, isFragment bool) (string, error) {
	var buf strings.Builder

	if !isFragment {
		if err := html.Render(&buf, doc); err != nil {
			return "", err
		}
		return buf.String(), nil
	}

	for c := doc.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

// appendFragment parses fragment in the context of parent and appends the
// resulting nodes to it.
func appendFragment(parent *html.Node, fragment string) error {
	context := parent
	if parent.DataAtom == 0 {
		context = bodyContext()
	}

	nodes, err := html.ParseFragment(strings.NewReader(fragment), context)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrHTMLParse, err)
	}
	for _, n := range nodes {
		parent.AppendChild(n)
	}
	return nil
}

func bodyContext() *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: atom.Body, Data: "body"}
}

// walkElements calls fn for every element node under n in document order.
// Traversal stops when fn returns false.
func walkElements(n *html.Node, fn func(*html.Node) bool) bool {
	if n.Type == html.ElementNode && !fn(n) {
		return false
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if !walkElements(c, fn) {
			return false
		}
	}
	return true
}

// findByID returns the first element whose id attribute equals id.
func findByID(root *html.Node, id string) *html.Node {
	var found *html.Node
	walkElements(root, func(n *html.Node) bool {
		if attr(n, "id") == id {
			found = n
			return false
		}
		return true
	})
	return found
}

// findElement returns the first element with the given atom.
func findElement(root *html.Node, a atom.Atom) *html.Node {
	var found *html.Node
	walkElements(root, func(n *html.Node) bool {
		if n.DataAtom == a {
			found = n
			return false
		}
		return true
	})
	return found
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}
