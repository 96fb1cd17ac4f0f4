package pipeline

import (
	"net/url"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// RewriteRelativePaths resolves relative image and link targets against
// sourceDir so a page written elsewhere (or loaded by the browser from a
// temp file) still finds the files next to the Markdown source.
// If sourceDir is empty, returns the HTML unchanged.
//
// Only img[src] and a[href] are rewritten. Heading anchors ("#..."), URLs,
// absolute paths and targets escaping sourceDir are left alone.
func RewriteRelativePaths(htmlContent, sourceDir string) (string, error) {
	if sourceDir == "" {
		return htmlContent, nil
	}

	absSourceDir, err := filepath.Abs(sourceDir)
	if err != nil {
		return "", err
	}

	doc, isFragment, err := parseHTML(htmlContent)
	if err != nil {
		return "", err
	}

	walkElements(doc, func(n *html.Node) bool {
		switch n.DataAtom {
		case atom.Img:
			rewriteAttr(n, "src", absSourceDir)
		case atom.A:
			rewriteAttr(n, "href", absSourceDir)
		}
		return true
	})

	return renderHTML(doc, isFragment)
}

// rewriteAttr rewrites a single attribute if it's a relative path under sourceDir.
func rewriteAttr(n *html.Node, key, sourceDir string) {
	for i, a := range n.Attr {
		if a.Key != key || !isRelativePath(a.Val) {
			continue
		}

		absPath := filepath.Join(sourceDir, a.Val)
		if !isPathUnderDir(absPath, sourceDir) {
			continue
		}
		n.Attr[i].Val = pathToFileURL(absPath)
	}
}

// isRelativePath returns true if the path should be rewritten.
func isRelativePath(path string) bool {
	if path == "" || strings.HasPrefix(path, "#") {
		return false
	}

	for _, prefix := range []string{"http://", "https://", "file://", "data:", "mailto:", "//"} {
		if strings.HasPrefix(path, prefix) {
			return false
		}
	}

	return !filepath.IsAbs(path)
}

// isPathUnderDir checks if absPath is under dir (prevents path traversal).
func isPathUnderDir(absPath, dir string) bool {
	cleanDir := filepath.Clean(dir)
	if !strings.HasSuffix(cleanDir, string(filepath.Separator)) {
		cleanDir += string(filepath.Separator)
	}
	return strings.HasPrefix(filepath.Clean(absPath)+string(filepath.Separator), cleanDir)
}

// pathToFileURL converts an absolute path to a file:// URL.
func pathToFileURL(absPath string) string {
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(absPath)}
	return u.String()
}
