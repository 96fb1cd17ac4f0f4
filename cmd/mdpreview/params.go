package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	mdpreview "github.com/alnah/go-mdpreview"
	"github.com/alnah/go-mdpreview/internal/config"
)

// Sentinel errors for parameter resolution.
var (
	ErrInvalidTimeout = errors.New("invalid timeout")
	ErrReadCSS        = errors.New("failed to read CSS file")
)

// conversionParams groups parameters shared across batch/file conversion.
type conversionParams struct {
	cfg   *config.Config
	css   string // Extra CSS appended after the base style
	title string
	toc   *mdpreview.TOC
	page  *mdpreview.PageSettings
	pdf   bool
}

// loadConfig resolves configuration in precedence order: defaults, config
// file (--config, else MDPREVIEW_CONFIG), environment. Flags are merged by
// the caller.
func loadConfig(configFlag string, env *envConfig) (*config.Config, error) {
	name := configFlag
	if name == "" {
		name = env.ConfigPath
	}

	cfg := config.DefaultConfig()
	if name != "" {
		loaded, err := config.LoadConfig(name)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}

	applyEnvConfig(env, cfg)
	return cfg, nil
}

// mergeFlags applies CLI flags to config (CLI wins).
func mergeFlags(flags *renderFlags, cfg *config.Config) {
	setString(&cfg.CSS.Style, flags.assets.style)
	setString(&cfg.Assets.BasePath, flags.assets.assetPath)

	setString(&cfg.Headings.Prefix, flags.markdown.headerPrefix)
	setString(&cfg.CJK.WideClass, flags.markdown.wideClass)
	setString(&cfg.Code.HighlightStyle, flags.markdown.highlightStyle)
	setString(&cfg.Output.Lang, flags.markdown.lang)
	if flags.markdown.diagramLangSet {
		cfg.Code.DiagramLanguage = flags.markdown.diagramLang
	}
	if flags.markdown.noCJK {
		cfg.CJK.Enabled = false
	}

	if flags.scripts.mathURL != "" {
		cfg.Math.URL = flags.scripts.mathURL
		cfg.Math.Enabled = true
	}
	if flags.scripts.noMath {
		cfg.Math.Enabled = false
	}
	setString(&cfg.Mermaid.URL, flags.scripts.mermaidURL)

	if flags.toc.enabled {
		cfg.TOC.Enabled = true
	}
	setString(&cfg.TOC.Title, flags.toc.title)
	if flags.toc.minDepth != 0 {
		cfg.TOC.MinDepth = flags.toc.minDepth
	}
	if flags.toc.maxDepth != 0 {
		cfg.TOC.MaxDepth = flags.toc.maxDepth
	}

	setString(&cfg.Page.Size, flags.page.size)
	setString(&cfg.Page.Orientation, flags.page.orientation)
	if flags.page.margin != 0 {
		cfg.Page.Margin = flags.page.margin
	}

	if flags.pdf {
		cfg.Output.PDF = true
	}
}

// resolveTimeout returns the rendering timeout: flag, then environment.
// Zero means the converter default.
func resolveTimeout(flagValue string, env *envConfig) (time.Duration, error) {
	if flagValue != "" {
		d, err := time.ParseDuration(flagValue)
		if err != nil {
			return 0, fmt.Errorf("%w: %q (use e.g. 30s, 2m)", ErrInvalidTimeout, flagValue)
		}
		if d <= 0 {
			return 0, fmt.Errorf("%w: %q (must be positive)", ErrInvalidTimeout, flagValue)
		}
		return d, nil
	}
	return env.Timeout, nil
}

// buildOptions translates the resolved config into converter options.
func buildOptions(cfg *config.Config, timeout time.Duration, noStyle bool) []mdpreview.Option {
	var opts []mdpreview.Option

	if timeout > 0 {
		opts = append(opts, mdpreview.WithTimeout(timeout))
	}

	switch {
	case noStyle:
		opts = append(opts, mdpreview.WithStyle(""))
	case cfg.CSS.Style != "":
		opts = append(opts, mdpreview.WithStyle(cfg.CSS.Style))
	}
	if cfg.Assets.BasePath != "" {
		opts = append(opts, mdpreview.WithAssetPath(cfg.Assets.BasePath))
	}

	opts = append(opts,
		mdpreview.WithHeaderPrefix(cfg.Headings.Prefix),
		mdpreview.WithDiagramLanguage(cfg.Code.DiagramLanguage),
	)

	if cfg.CJK.WideClass != "" {
		opts = append(opts, mdpreview.WithWideClass(strings.ToLower(cfg.CJK.WideClass)))
	}
	if !cfg.CJK.Enabled {
		opts = append(opts, mdpreview.WithoutCJKJoin())
	}

	if cfg.Math.Enabled {
		opts = append(opts, mdpreview.WithMath(cfg.Math.URL))
	} else {
		opts = append(opts, mdpreview.WithoutMath())
	}
	if cfg.Mermaid.URL != "" {
		opts = append(opts, mdpreview.WithMermaidURL(cfg.Mermaid.URL))
	}

	if cfg.Code.HighlightStyle != "" {
		opts = append(opts, mdpreview.WithHighlightStyle(cfg.Code.HighlightStyle))
	}
	if cfg.Output.Lang != "" {
		opts = append(opts, mdpreview.WithLang(cfg.Output.Lang))
	}

	return opts
}

// buildTOCData returns nil when the TOC is disabled.
func buildTOCData(cfg *config.Config) *mdpreview.TOC {
	if !cfg.TOC.Enabled {
		return nil
	}
	return &mdpreview.TOC{
		Title:    cfg.TOC.Title,
		MinDepth: cfg.TOC.MinDepth,
		MaxDepth: cfg.TOC.MaxDepth,
	}
}

// buildPageSettings fills unset page fields with defaults.
func buildPageSettings(cfg *config.Config) *mdpreview.PageSettings {
	page := mdpreview.DefaultPageSettings()
	if cfg.Page.Size != "" {
		page.Size = strings.ToLower(cfg.Page.Size)
	}
	if cfg.Page.Orientation != "" {
		page.Orientation = strings.ToLower(cfg.Page.Orientation)
	}
	if cfg.Page.Margin != 0 {
		page.Margin = cfg.Page.Margin
	}
	return page
}

// readExtraCSS reads the --css file, if any.
func readExtraCSS(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided CSS path
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrReadCSS, err)
	}
	return string(data), nil
}

// buildParams resolves everything a conversion needs from flags.
// Returns the converter options and per-file parameters.
func buildParams(flags *renderFlags, env *envConfig) ([]mdpreview.Option, *conversionParams, error) {
	cfg, err := loadConfig(flags.common.config, env)
	if err != nil {
		return nil, nil, err
	}
	mergeFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	timeout, err := resolveTimeout(flags.timeout, env)
	if err != nil {
		return nil, nil, err
	}

	css, err := readExtraCSS(flags.assets.css)
	if err != nil {
		return nil, nil, err
	}

	params := &conversionParams{
		cfg:   cfg,
		css:   css,
		title: flags.markdown.title,
		toc:   buildTOCData(cfg),
		page:  buildPageSettings(cfg),
		pdf:   cfg.Output.PDF,
	}
	if err := params.toc.Validate(); err != nil {
		return nil, nil, err
	}
	if params.pdf {
		if err := params.page.Validate(); err != nil {
			return nil, nil, err
		}
	}

	return buildOptions(cfg, timeout, flags.assets.noStyle), params, nil
}
