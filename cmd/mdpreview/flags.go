package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// markdownFlags holds Markdown transform and rendering flags.
type markdownFlags struct {
	headerPrefix   string
	diagramLang    string
	diagramLangSet bool // --diagram-lang given, even as ""
	wideClass      string
	noCJK          bool
	highlightStyle string
	title          string
	lang           string
}

// scriptFlags holds flags for the client-side scripts.
type scriptFlags struct {
	mathURL    string
	noMath     bool
	mermaidURL string
}

// tocFlags holds table of contents flags.
type tocFlags struct {
	enabled  bool
	title    string
	minDepth int
	maxDepth int
}

// pageFlags holds PDF page layout flags.
type pageFlags struct {
	size        string
	orientation string
	margin      float64
}

// assetFlags holds style and asset directory flags.
type assetFlags struct {
	style     string
	assetPath string
	noStyle   bool
	css       string // Extra CSS file appended after the style
}

// renderFlags holds all flags for the render and watch commands.
type renderFlags struct {
	common   commonFlags
	output   string
	workers  int
	timeout  string
	pdf      bool
	debounce string // watch only
	markdown markdownFlags
	scripts  scriptFlags
	toc      tocFlags
	page     pageFlags
	assets   assetFlags
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug logging and timing")
}

// addMarkdownFlags adds rendering flags to a FlagSet.
func addMarkdownFlags(fs *flag.FlagSet, f *markdownFlags) {
	fs.StringVar(&f.headerPrefix, "header-prefix", "", "prefix for heading anchors")
	fs.StringVar(&f.diagramLang, "diagram-lang", "", "fence language rendered as a diagram (\"\" disables)")
	fs.StringVar(&f.wideClass, "wide-class", "", "wide character class: ranges, east-asian")
	fs.BoolVar(&f.noCJK, "no-cjk-join", false, "keep line breaks between CJK characters")
	fs.StringVar(&f.highlightStyle, "highlight-style", "", "chroma style for code blocks")
	fs.StringVar(&f.title, "title", "", "page title (default: first H1)")
	fs.StringVar(&f.lang, "lang", "", "html lang attribute")
}

// addScriptFlags adds math and diagram script flags to a FlagSet.
func addScriptFlags(fs *flag.FlagSet, f *scriptFlags) {
	fs.StringVar(&f.mathURL, "mathjax-url", "", "MathJax script URL")
	fs.BoolVar(&f.noMath, "no-math", false, "omit the MathJax script")
	fs.StringVar(&f.mermaidURL, "mermaid-url", "", "Mermaid script URL")
}

// addTOCFlags adds TOC flags to a FlagSet.
func addTOCFlags(fs *flag.FlagSet, f *tocFlags) {
	fs.BoolVar(&f.enabled, "toc", false, "insert a table of contents")
	fs.StringVar(&f.title, "toc-title", "", "table of contents heading")
	fs.IntVar(&f.minDepth, "toc-min-depth", 0, "min heading depth for TOC (1-6, default: 2)")
	fs.IntVar(&f.maxDepth, "toc-max-depth", 0, "max heading depth for TOC (1-6, default: 3)")
}

// addPageFlags adds page layout flags to a FlagSet.
func addPageFlags(fs *flag.FlagSet, f *pageFlags) {
	fs.StringVarP(&f.size, "page-size", "p", "", "page size: letter, a4, legal")
	fs.StringVar(&f.orientation, "orientation", "", "page orientation: portrait, landscape")
	fs.Float64Var(&f.margin, "margin", 0, "page margin in inches (0.25-3.0)")
}

// addAssetFlags adds asset-related flags to a FlagSet.
func addAssetFlags(fs *flag.FlagSet, f *assetFlags) {
	fs.StringVar(&f.style, "style", "", "CSS style name or file path")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
	fs.BoolVar(&f.noStyle, "no-style", false, "disable the base style")
	fs.StringVar(&f.css, "css", "", "extra CSS file appended after the style")
}

// newRenderFlagSet builds the flag set shared by render and watch.
func newRenderFlagSet(name string, f *renderFlags, usage func(io.Writer), stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "PDF rendering timeout (e.g., 30s, 2m)")
	fs.BoolVar(&f.pdf, "pdf", false, "also write a PDF")

	addCommonFlags(fs, &f.common)
	addMarkdownFlags(fs, &f.markdown)
	addScriptFlags(fs, &f.scripts)
	addTOCFlags(fs, &f.toc)
	addPageFlags(fs, &f.page)
	addAssetFlags(fs, &f.assets)

	fs.Usage = func() { usage(stderr) }
	return fs
}

// parseRenderFlags parses render command flags and returns positional args.
func parseRenderFlags(args []string, stderr io.Writer) (*renderFlags, []string, error) {
	f := &renderFlags{}
	fs := newRenderFlagSet("render", f, printRenderUsage, stderr)
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	f.markdown.diagramLangSet = fs.Changed("diagram-lang")

	return f, fs.Args(), nil
}

// parseWatchFlags parses watch command flags and returns positional args.
func parseWatchFlags(args []string, stderr io.Writer) (*renderFlags, []string, error) {
	f := &renderFlags{}
	fs := newRenderFlagSet("watch", f, printWatchUsage, stderr)
	fs.StringVar(&f.debounce, "debounce", "", "quiet period before a rebuild (e.g., 300ms)")

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	f.markdown.diagramLangSet = fs.Changed("diagram-lang")

	return f, fs.Args(), nil
}

// tocCommandFlags holds flags for the toc command.
type tocCommandFlags struct {
	common       commonFlags
	headerPrefix string
	minDepth     int
	maxDepth     int
	anchors      bool
	width        int
}

// parseTOCFlags parses toc command flags and returns positional args.
func parseTOCFlags(args []string, stderr io.Writer) (*tocCommandFlags, []string, error) {
	fs := flag.NewFlagSet("toc", flag.ContinueOnError)
	fs.SetOutput(stderr)
	f := &tocCommandFlags{}

	addCommonFlags(fs, &f.common)
	fs.StringVar(&f.headerPrefix, "header-prefix", "", "prefix for heading anchors")
	fs.IntVar(&f.minDepth, "min-depth", 1, "min heading depth (1-6)")
	fs.IntVar(&f.maxDepth, "max-depth", 6, "max heading depth (1-6)")
	fs.BoolVarP(&f.anchors, "anchors", "a", false, "show anchors")
	fs.IntVar(&f.width, "width", 0, "output width in columns (0 = terminal width)")
	fs.Usage = func() { printTOCUsage(stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// extractFlags holds flags for the extract command.
type extractFlags struct {
	output string
}

// parseExtractFlags parses extract command flags and returns positional args.
func parseExtractFlags(args []string, stderr io.Writer) (*extractFlags, []string, error) {
	fs := flag.NewFlagSet("extract", flag.ContinueOnError)
	fs.SetOutput(stderr)
	f := &extractFlags{}

	fs.StringVarP(&f.output, "output", "o", "", "write Markdown to a file instead of stdout")
	fs.Usage = func() { printExtractUsage(stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}
