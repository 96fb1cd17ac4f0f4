// Package mdpreview renders Markdown into a self-contained HTML preview page,
// with optional PDF output through headless Chrome.
//
// # Quick Start
//
//	conv, err := mdpreview.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer conv.Close()
//
//	result, err := conv.Convert(ctx, mdpreview.Input{
//	    Markdown: "# 你好\n\n世界",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("preview.html", result.HTML, 0644)
//
// The result holds the page (result.HTML), every heading in document order
// (result.TOC), and the PDF when Input.PDF is set.
//
// # Conversion Pipeline
//
//  1. Payload decoding when the source arrives as base64 (Input.Payload)
//  2. CJK line joining: a line break wrapped between two wide characters is
//     removed, fenced blocks are left verbatim
//  3. Markdown to HTML via Goldmark with a per-call hook record: headings get
//     anchors and are collected, diagram fences become diagram containers,
//     other fences are highlighted with chroma classes
//  4. Page assembly: template, content, numbered TOC, CSS, the base64 source
//     payload, and the MathJax and Mermaid configuration
//  5. PDF rendering via go-rod once the page scripts signal they are done
//
// # Configuration
//
//	conv, err := mdpreview.NewConverter(
//	    mdpreview.WithStyle("minimal"),
//	    mdpreview.WithHeaderPrefix("doc-"),
//	    mdpreview.WithWideClass(mdpreview.WideClassEastAsian),
//	    mdpreview.WithoutMath(),
//	)
//
// Rendering hooks replace the heading or code markup:
//
//	conv, err := mdpreview.NewConverter(mdpreview.WithHooks(&mdpreview.Hooks{
//	    Code: func(code, lang string) (string, bool) {
//	        return mdpreview.DiagramMarkup("dot", code, lang)
//	    },
//	}))
//
// # Parallel Processing
//
//	pool := mdpreview.NewConverterPool(4, mdpreview.WithTimeout(time.Minute))
//	defer pool.Close()
//
//	conv, err := pool.Acquire()
//	if err != nil {
//	    return err
//	}
//	defer pool.Release(conv)
//
// # Browser Requirements
//
// PDF generation requires Chrome/Chromium. The go-rod library downloads a
// managed Chromium on first run (~/.cache/rod/browser/). Set
// ROD_NO_SANDBOX=true in containers and ROD_BROWSER_BIN to use a specific
// binary. Math and diagrams load from a CDN, so PDF output of pages using
// them needs network access.
package mdpreview
