package assets

// Built-in asset names.
const (
	DefaultStyleName    = "default"
	DefaultTemplateName = "preview"

	// Client scripts inlined into the page.
	ScriptReadiness = "readiness"
	ScriptMathJax   = "mathjax"
	ScriptMermaid   = "mermaid"
)

var defaultLoader = NewEmbeddedLoader()

// Load reads an embedded asset.
func Load(kind Kind, name string) (string, error) {
	return defaultLoader.Load(kind, name)
}
