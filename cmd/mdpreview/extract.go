package main

import (
	"fmt"
	"os"

	mdpreview "github.com/alnah/go-mdpreview"
	"github.com/alnah/go-mdpreview/internal/fileutil"
)

// runExtract prints the Markdown source embedded in a generated page.
func runExtract(args []string, env *Environment) error {
	flags, positional, err := parseExtractFlags(args, env.Stderr)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}
	if len(positional) != 1 {
		return fmt.Errorf("%w: extract takes exactly one page", ErrUsage)
	}

	f, err := os.Open(positional[0]) // #nosec G304 -- user-provided path
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	markdown, err := mdpreview.ExtractPayload(f)
	if err != nil {
		return fmt.Errorf("%s: %w", positional[0], err)
	}

	if flags.output != "" {
		if err := fileutil.WriteFileAtomic(flags.output, []byte(markdown)); err != nil {
			return fmt.Errorf("%w: %v", ErrWriteOutput, err)
		}
		return nil
	}

	_, err = fmt.Fprint(env.Stdout, markdown)
	return err
}
