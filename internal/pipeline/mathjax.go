package pipeline

// DefaultMathJaxURL is the MathJax v2 bundle loaded by the preview page.
const DefaultMathJaxURL = "https://cdnjs.cloudflare.com/ajax/libs/mathjax/2.7.9/MathJax.js?config=TeX-AMS-MML_HTMLorMML"

// MathJaxConfig is serialized into the page and passed to MathJax.Hub.Config.
// Field names follow the MathJax v2 configuration object.
type MathJaxConfig struct {
	HTMLCSS      MathJaxHTMLCSS `json:"HTML-CSS"`
	Tex2Jax      MathJaxTex2Jax `json:"tex2jax"`
	TeX          MathJaxTeX     `json:"TeX"`
	MessageStyle string         `json:"messageStyle"`

	// MobileEqnChunk replaces HTMLCSS.EqnChunk on mobile user agents.
	MobileEqnChunk int `json:"-"`
	// MarkClass is appended to the parent of every typeset element.
	MarkClass string `json:"-"`
}

// MathJaxHTMLCSS configures the HTML-CSS output processor.
type MathJaxHTMLCSS struct {
	PreferredFont  string            `json:"preferredFont"`
	AvailableFonts []string          `json:"availableFonts"`
	Linebreaks     MathJaxLinebreaks `json:"linebreaks"`
	EqnChunk       int               `json:"EqnChunk"`
}

// MathJaxLinebreaks toggles automatic line breaking.
type MathJaxLinebreaks struct {
	Automatic bool `json:"automatic"`
}

// MathJaxTex2Jax configures TeX delimiter scanning.
type MathJaxTex2Jax struct {
	InlineMath     [][2]string `json:"inlineMath"`
	ProcessEscapes bool        `json:"processEscapes"`
	IgnoreClass    string      `json:"ignoreClass"`
	SkipTags       []string    `json:"skipTags"`
}

// MathJaxTeX configures the TeX input processor.
type MathJaxTeX struct {
	NoUndefined MathJaxNoUndefined `json:"noUndefined"`
	Macros      map[string]string  `json:"Macros"`
}

// MathJaxNoUndefined styles undefined macros instead of failing.
type MathJaxNoUndefined struct {
	Attributes map[string]string `json:"attributes"`
}

// DefaultMathJaxConfig returns the configuration used by the preview page.
// Each call returns a fresh value.
func DefaultMathJaxConfig() *MathJaxConfig {
	return &MathJaxConfig{
		HTMLCSS: MathJaxHTMLCSS{
			PreferredFont:  "TeX",
			AvailableFonts: []string{"STIX", "TeX"},
			Linebreaks:     MathJaxLinebreaks{Automatic: true},
			EqnChunk:       50,
		},
		Tex2Jax: MathJaxTex2Jax{
			InlineMath:     [][2]string{{"$", "$"}, {`\(`, `\)`}},
			ProcessEscapes: true,
			IgnoreClass:    "tex2jax_ignore|dno",
			SkipTags:       []string{"script", "noscript", "style", "textarea", "pre", "code"},
		},
		TeX: MathJaxTeX{
			NoUndefined: MathJaxNoUndefined{
				Attributes: map[string]string{
					"mathcolor":      "red",
					"mathbackground": "#FFEEEE",
					"mathsize":       "90%",
				},
			},
			Macros: map[string]string{"href": "{}"},
		},
		MessageStyle:   "none",
		MobileEqnChunk: 10,
		MarkClass:      "has-jax",
	}
}
