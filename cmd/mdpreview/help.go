package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdpreview <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  render     Render markdown files to HTML preview pages (and PDF)")
	fmt.Fprintln(w, "  watch      Re-render a markdown file whenever it changes")
	fmt.Fprintln(w, "  toc        Print the heading outline of a markdown file")
	fmt.Fprintln(w, "  extract    Print the markdown embedded in a preview page")
	fmt.Fprintln(w, "  doctor     Check the browser and config setup")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'mdpreview help <command>' for details on a specific command.")
}

// printRenderOptions prints the flags shared by render and watch.
func printRenderOptions(w io.Writer) {
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>         Output file (.html) or directory")
	fmt.Fprintln(w, "  -c, --config <name>         Config file name or path")
	fmt.Fprintln(w, "      --pdf                   Also write a PDF (needs Chrome)")
	fmt.Fprintln(w, "  -t, --timeout <d>           PDF rendering timeout (e.g., 30s, 2m)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Markdown:")
	fmt.Fprintln(w, "      --title <s>             Page title (default: first H1)")
	fmt.Fprintln(w, "      --header-prefix <s>     Prefix for heading anchors")
	fmt.Fprintln(w, "      --wide-class <s>        Wide characters: ranges, east-asian")
	fmt.Fprintln(w, "      --no-cjk-join           Keep line breaks between CJK characters")
	fmt.Fprintln(w, "      --diagram-lang <s>      Fence language drawn as a diagram (\"\" disables)")
	fmt.Fprintln(w, "      --highlight-style <s>   Code highlighting style (chroma name)")
	fmt.Fprintln(w, "      --lang <s>              html lang attribute")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Scripts:")
	fmt.Fprintln(w, "      --no-math               Omit MathJax")
	fmt.Fprintln(w, "      --mathjax-url <url>     MathJax script location")
	fmt.Fprintln(w, "      --mermaid-url <url>     Mermaid script location")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Table of Contents:")
	fmt.Fprintln(w, "      --toc                   Insert a table of contents")
	fmt.Fprintln(w, "      --toc-title <s>         TOC heading text")
	fmt.Fprintln(w, "      --toc-min-depth <n>     Min heading depth (1-6, default: 2)")
	fmt.Fprintln(w, "      --toc-max-depth <n>     Max heading depth (1-6, default: 3)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Page (PDF):")
	fmt.Fprintln(w, "  -p, --page-size <s>         Page size: letter, a4, legal")
	fmt.Fprintln(w, "      --orientation <s>       Orientation: portrait, landscape")
	fmt.Fprintln(w, "      --margin <f>            Margin in inches (0.25-3.0)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Styling:")
	fmt.Fprintln(w, "      --style <s>             Style name or CSS file path")
	fmt.Fprintln(w, "      --css <path>            Extra CSS appended after the style")
	fmt.Fprintln(w, "      --asset-path <dir>      Directory with styles/ and templates/")
	fmt.Fprintln(w, "      --no-style              Disable the base style")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet                 Only show errors")
	fmt.Fprintln(w, "  -v, --verbose               Show debug logging and timing")
}

// printRenderUsage prints usage for the render command.
func printRenderUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdpreview render <input> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render markdown files to self-contained HTML preview pages.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    Markdown file or directory (optional if config has input.defaultDir)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  -w, --workers <n>           Parallel workers (0 = auto)")
	printRenderOptions(w)
}

// printWatchUsage prints usage for the watch command.
func printWatchUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdpreview watch <input.md> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render a markdown file, then render it again on every change.")
	fmt.Fprintln(w, "Stop with Ctrl+C.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "      --debounce <d>          Quiet period before a rebuild (default: 300ms)")
	printRenderOptions(w)
}

// printTOCUsage prints usage for the toc command.
func printTOCUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdpreview toc <input.md> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Print the heading outline of a markdown file.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  -a, --anchors               Show heading anchors")
	fmt.Fprintln(w, "      --header-prefix <s>     Prefix for heading anchors")
	fmt.Fprintln(w, "      --min-depth <n>         Min heading depth (default: 1)")
	fmt.Fprintln(w, "      --max-depth <n>         Max heading depth (default: 6)")
	fmt.Fprintln(w, "      --width <n>             Line width (default: terminal width)")
	fmt.Fprintln(w, "  -c, --config <name>         Config file name or path")
}

// printExtractUsage prints usage for the extract command.
func printExtractUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdpreview extract <page.html> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Print the markdown source embedded in a page written by 'mdpreview render'.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  -o, --output <path>         Write to a file instead of stdout")
}

// printDoctorUsage prints usage for the doctor command.
func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdpreview doctor [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check the browser used for PDF output, the runtime and config resolution.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "      --json                  Print the report as JSON")
	fmt.Fprintln(w, "  -c, --config <name>         Config file name or path to resolve")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case "render":
		printRenderUsage(env.Stdout)
	case "watch":
		printWatchUsage(env.Stdout)
	case "toc":
		printTOCUsage(env.Stdout)
	case "extract":
		printExtractUsage(env.Stdout)
	case "doctor":
		printDoctorUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: mdpreview version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: mdpreview help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}
