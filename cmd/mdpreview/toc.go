package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/muesli/reflow/truncate"
	"golang.org/x/term"

	mdpreview "github.com/alnah/go-mdpreview"
	"github.com/alnah/go-mdpreview/internal/pipeline"
)

// defaultTOCWidth is used when stdout is not a terminal.
const defaultTOCWidth = 80

// runTOC prints the heading outline of a markdown file.
func runTOC(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseTOCFlags(args, env.Stderr)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}
	if len(positional) != 1 {
		return fmt.Errorf("%w: toc takes exactly one markdown file", ErrUsage)
	}
	toc := &mdpreview.TOC{MinDepth: flags.minDepth, MaxDepth: flags.maxDepth}
	if err := toc.Validate(); err != nil {
		return err
	}

	content, err := os.ReadFile(positional[0]) // #nosec G304 -- user-provided path
	if err != nil {
		return fmt.Errorf("%w: %v", ErrReadMarkdown, err)
	}

	envCfg := loadEnvConfig()
	cfg, err := loadConfig(flags.common.config, envCfg)
	if err != nil {
		return err
	}
	setString(&cfg.Headings.Prefix, flags.headerPrefix)

	// Only headings are needed; the browser is never started.
	pool := env.NewPool(1, buildOptions(cfg, 0, true)...)
	defer func() { _ = pool.Close() }()

	conv, err := pool.Acquire()
	if err != nil {
		return err
	}
	defer pool.Release(conv)

	res, err := conv.Convert(ctx, mdpreview.Input{Markdown: string(content)})
	if err != nil {
		return err
	}

	width := flags.width
	if width <= 0 {
		width = env.TermSize()
	}
	if width <= 0 {
		width = defaultTOCWidth
	}

	printOutline(env.Stdout, res.TOC, flags.minDepth, flags.maxDepth, flags.anchors, width)
	return nil
}

// printOutline writes one line per heading in range, indented by level and
// truncated to width display columns.
func printOutline(w io.Writer, headings []mdpreview.Heading, minDepth, maxDepth int, anchors bool, width int) {
	for _, h := range headings {
		if h.Level < minDepth || h.Level > maxDepth {
			continue
		}
		line := strings.Repeat("  ", h.Level-minDepth) + pipeline.PlainText(h.Text)
		if anchors && h.Anchor != "" {
			line += "  #" + h.Anchor
		}
		fmt.Fprintln(w, truncate.StringWithTail(line, uint(width), "…")) // #nosec G115 -- width > 0
	}
}

// terminalWidth returns the width of stdout, falling back to $COLUMNS.
// Returns 0 when neither is available.
func terminalWidth() int {
	fd := int(os.Stdout.Fd()) // #nosec G115 -- file descriptors fit in int
	if term.IsTerminal(fd) {
		if w, _, err := term.GetSize(fd); err == nil && w > 0 {
			return w
		}
	}
	if value := os.Getenv("COLUMNS"); value != "" {
		if w, err := strconv.Atoi(value); err == nil && w > 0 {
			return w
		}
	}
	return 0
}
