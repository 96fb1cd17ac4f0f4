package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	mdpreview "github.com/alnah/go-mdpreview"
	"github.com/alnah/go-mdpreview/internal/fileutil"
)

// Sentinel errors for rendering.
var (
	ErrReadMarkdown = errors.New("failed to read markdown file")
	ErrWriteOutput  = errors.New("failed to write output file")
	ErrBatchFailed  = errors.New("some files failed to render")
)

// RenderResult holds the outcome of a single file.
type RenderResult struct {
	InputPath  string
	OutputPath string
	PDFPath    string // Empty unless a PDF was written
	Err        error
	Duration   time.Duration
}

// runRender orchestrates the render command.
func runRender(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseRenderFlags(args, env.Stderr)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}

	logger := newLogger(env.Stderr, flags.common)
	setMaxProcs(logger)
	envCfg := loadEnvConfig()
	warnUnknownEnvVars(env.Stderr)

	workers := flags.workers
	if workers == 0 {
		workers = envCfg.Workers
	}
	if err := validateWorkers(workers); err != nil {
		return err
	}

	opts, params, err := buildParams(flags, envCfg)
	if err != nil {
		return err
	}

	inputPath, err := resolveInputPath(positional, params.cfg)
	if err != nil {
		return err
	}

	files, err := discoverFiles(inputPath, resolveOutputDir(flags.output, params.cfg))
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("%w in %s", ErrNoFiles, inputPath)
	}

	poolSize := min(mdpreview.ResolvePoolSize(workers), len(files))
	logger.Debug("rendering", "files", len(files), "workers", poolSize, "pdf", params.pdf)

	pool := env.NewPool(poolSize, opts...)
	defer func() {
		if err := pool.Close(); err != nil {
			logger.Warn("closing converters", "error", err)
		}
	}()

	results := renderBatch(ctx, pool, files, params)
	if failed := printResults(results, flags.common, env); failed > 0 {
		if len(results) == 1 {
			return results[0].Err
		}
		return fmt.Errorf("%w: %d of %d", ErrBatchFailed, failed, len(results))
	}
	return nil
}

// renderBatch processes files concurrently using the converter pool.
func renderBatch(ctx context.Context, pool Pool, files []FileToRender, params *conversionParams) []RenderResult {
	if len(files) == 0 {
		return nil
	}

	concurrency := min(pool.Size(), len(files))

	results := make([]RenderResult, len(files))
	var wg sync.WaitGroup
	jobs := make(chan int, len(files))

	for range concurrency {
		wg.Add(1)
		go func() {
			defer wg.Done()

			conv, err := pool.Acquire()
			if err != nil {
				// Converter creation failed, fail the jobs this worker takes.
				for idx := range jobs {
					results[idx] = RenderResult{InputPath: files[idx].InputPath, Err: err}
				}
				return
			}
			defer pool.Release(conv)

			for idx := range jobs {
				if ctx.Err() != nil {
					results[idx] = RenderResult{InputPath: files[idx].InputPath, Err: ctx.Err()}
					continue
				}
				results[idx] = renderFile(ctx, conv, files[idx], params)
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// renderFile converts a single file and writes the page (and PDF).
func renderFile(ctx context.Context, conv CLIConverter, f FileToRender, params *conversionParams) RenderResult {
	start := time.Now()
	result := RenderResult{InputPath: f.InputPath, OutputPath: f.OutputPath}
	finish := func(err error) RenderResult {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	content, err := os.ReadFile(f.InputPath) // #nosec G304 -- discovered path
	if err != nil {
		return finish(fmt.Errorf("%w: %v", ErrReadMarkdown, err))
	}

	res, err := conv.Convert(ctx, mdpreview.Input{
		Markdown:  string(content),
		Title:     params.title,
		SourceDir: filepath.Dir(f.InputPath),
		CSS:       params.css,
		TOC:       params.toc,
		Page:      params.page,
		PDF:       params.pdf,
	})
	if err != nil {
		return finish(err)
	}

	if err := fileutil.WriteFileAtomic(f.OutputPath, res.HTML); err != nil {
		return finish(fmt.Errorf("%w: %v", ErrWriteOutput, err))
	}

	if params.pdf {
		result.PDFPath = f.PDFPath()
		if err := fileutil.WriteFileAtomic(result.PDFPath, res.PDF); err != nil {
			return finish(fmt.Errorf("%w: %v", ErrWriteOutput, err))
		}
	}

	return finish(nil)
}

// ResultSummary holds the count of succeeded and failed renders.
type ResultSummary struct {
	Succeeded int
	Failed    int
}

// countResults tallies succeeded and failed renders.
func countResults(results []RenderResult) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		if r.Err != nil {
			summary.Failed++
		} else {
			summary.Succeeded++
		}
	}
	return summary
}

// printResults outputs render results and returns the failure count.
// Single-file failures are reported by the caller.
func printResults(results []RenderResult, common commonFlags, env *Environment) int {
	summary := countResults(results)

	for _, r := range results {
		if r.Err != nil {
			if len(results) > 1 {
				fmt.Fprintf(env.Stderr, "FAILED %s: %v%s\n", r.InputPath, r.Err, hintFor(r.Err, ""))
			}
			continue
		}
		if common.quiet {
			continue
		}
		printCreated(env.Stdout, r, common.verbose)
	}

	if !common.quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", summary.Succeeded, summary.Failed)
	}

	return summary.Failed
}

func printCreated(w io.Writer, r RenderResult, verbose bool) {
	if verbose {
		fmt.Fprintf(w, "%s -> %s (%v)\n", r.InputPath, r.OutputPath, r.Duration.Round(time.Millisecond))
	} else {
		fmt.Fprintf(w, "Created %s\n", r.OutputPath)
	}
	if r.PDFPath != "" {
		fmt.Fprintf(w, "Created %s\n", r.PDFPath)
	}
}

// newLogger returns a text logger on w: debug when verbose, errors only
// when quiet, info otherwise.
func newLogger(w io.Writer, common commonFlags) *slog.Logger {
	level := slog.LevelInfo
	switch {
	case common.verbose:
		level = slog.LevelDebug
	case common.quiet:
		level = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
