package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"

	mdpreview "github.com/alnah/go-mdpreview"
	"github.com/alnah/go-mdpreview/internal/config"
	"github.com/alnah/go-mdpreview/internal/hints"
)

// Sentinel errors for command dispatch.
var (
	ErrUsage          = errors.New("usage error")
	ErrUnknownCommand = errors.New("unknown command")
)

// run dispatches a command and returns the process exit code.
// args includes the program name, as os.Args does.
func run(args []string, env *Environment) int {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	ctx, stop := notifyContext(context.Background())
	defer stop()

	cmd, cmdArgs := args[1], args[2:]
	var err error

	switch cmd {
	case "render":
		err = runRender(ctx, cmdArgs, env)
	case "watch":
		err = runWatch(ctx, cmdArgs, env)
	case "toc":
		err = runTOC(ctx, cmdArgs, env)
	case "extract":
		err = runExtract(cmdArgs, env)
	case "doctor":
		return runDoctor(cmdArgs, env)
	case "version", "--version":
		fmt.Fprintf(env.Stdout, "mdpreview %s\n", Version)
		return ExitSuccess
	case "help", "-h", "--help":
		return runHelp(cmdArgs, env)
	default:
		err = fmt.Errorf("%w: %q", ErrUnknownCommand, cmd)
		printUsage(env.Stderr)
	}

	if err == nil {
		return ExitSuccess
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, flag.ErrHelp) {
		return ExitSuccess
	}

	fmt.Fprintf(env.Stderr, "error: %v%s\n", err, hintFor(err, configName(cmdArgs)))
	return exitCodeFor(err)
}

// setMaxProcs matches GOMAXPROCS to the container CPU quota.
// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
// in which case Go runtime defaults apply and the program continues safely.
func setMaxProcs(logger *slog.Logger) {
	_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...any) {
		logger.Debug(fmt.Sprintf(format, args...))
	}))
}

// hintFor returns an actionable hint for common failures, or "".
func hintFor(err error, configName string) string {
	switch {
	case errors.Is(err, mdpreview.ErrBrowserConnect):
		return hints.ForBrowserConnect()
	case errors.Is(err, mdpreview.ErrPageNotReady):
		return hints.ForPageNotReady()
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, mdpreview.ErrPageLoad):
		return hints.ForTimeout()
	case errors.Is(err, config.ErrConfigNotFound) && configName != "":
		return hints.ForConfigNotFound(config.SearchPaths(configName))
	case errors.Is(err, mdpreview.ErrStyleNotFound):
		return hints.ForStyleNotFound(mdpreview.StyleNames())
	case errors.Is(err, mdpreview.ErrInvalidWideClass):
		return hints.ForWideClass([]string{mdpreview.WideClassRanges, mdpreview.WideClassEastAsian})
	case errors.Is(err, mdpreview.ErrPayloadNotFound),
		errors.Is(err, mdpreview.ErrPayloadDecode),
		errors.Is(err, mdpreview.ErrPayloadEncoding):
		return hints.ForPayload()
	case errors.Is(err, ErrWriteOutput):
		return hints.ForOutputDirectory()
	}
	return ""
}

// configName finds the --config/-c value in raw args for hint purposes.
func configName(args []string) string {
	for i, a := range args {
		switch {
		case (a == "--config" || a == "-c") && i+1 < len(args):
			return args[i+1]
		case strings.HasPrefix(a, "--config="):
			return strings.TrimPrefix(a, "--config=")
		}
	}
	return ""
}
