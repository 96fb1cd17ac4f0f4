package main

import (
	"context"
	"fmt"
	"time"

	"github.com/alnah/go-mdpreview/internal/config"
	"github.com/alnah/go-mdpreview/internal/watch"
)

// runWatch renders one file, then re-renders it whenever it changes.
func runWatch(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseWatchFlags(args, env.Stderr)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}
	if len(positional) != 1 {
		return fmt.Errorf("%w: watch takes exactly one markdown file", ErrUsage)
	}

	logger := newLogger(env.Stderr, flags.common)
	setMaxProcs(logger)
	envCfg := loadEnvConfig()
	warnUnknownEnvVars(env.Stderr)

	opts, params, err := buildParams(flags, envCfg)
	if err != nil {
		return err
	}

	inputPath := positional[0]
	if err := validateMarkdownExtension(inputPath); err != nil {
		return err
	}
	file := FileToRender{
		InputPath:  inputPath,
		OutputPath: resolveOutputPath(inputPath, resolveOutputDir(flags.output, params.cfg), ""),
	}

	debounce, err := resolveDebounce(flags.debounce, params.cfg)
	if err != nil {
		return err
	}

	pool := env.NewPool(1, opts...)
	defer func() {
		if err := pool.Close(); err != nil {
			logger.Warn("closing converter", "error", err)
		}
	}()

	conv, err := pool.Acquire()
	if err != nil {
		return err
	}
	defer pool.Release(conv)

	rebuild := func(ctx context.Context) error {
		r := renderFile(ctx, conv, file, params)
		if r.Err != nil {
			return fmt.Errorf("%s: %w", r.InputPath, r.Err)
		}
		if !flags.common.quiet {
			printCreated(env.Stdout, r, flags.common.verbose)
		}
		return nil
	}

	w, err := watch.New(rebuild, []string{inputPath}, watch.WithDebounce(debounce), watch.WithLogger(logger))
	if err != nil {
		return err
	}
	return w.Run(ctx)
}

// resolveDebounce returns the --debounce flag, else the configured value.
func resolveDebounce(flagValue string, cfg *config.Config) (time.Duration, error) {
	if flagValue == "" {
		return time.Duration(cfg.Watch.DebounceMs) * time.Millisecond, nil
	}
	d, err := time.ParseDuration(flagValue)
	if err != nil || d < 0 {
		return 0, fmt.Errorf("%w: invalid debounce %q", ErrUsage, flagValue)
	}
	return d, nil
}
