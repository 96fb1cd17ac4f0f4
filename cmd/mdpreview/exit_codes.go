package main

import (
	"errors"
	"os"

	mdpreview "github.com/alnah/go-mdpreview"
	"github.com/alnah/go-mdpreview/internal/config"
)

// Exit codes for the mdpreview CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful run
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied
	ExitBrowser = 4 // Browser/Chrome errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, mdpreview.ErrBrowserConnect) ||
		errors.Is(err, mdpreview.ErrPageCreate) ||
		errors.Is(err, mdpreview.ErrPageLoad) ||
		errors.Is(err, mdpreview.ErrPageNotReady) ||
		errors.Is(err, mdpreview.ErrPDFGeneration) {
		return ExitBrowser
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadMarkdown) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrNoFiles) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrUnknownCommand) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrInvalidTimeout) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, mdpreview.ErrEmptyMarkdown) ||
		errors.Is(err, mdpreview.ErrInvalidPageSize) ||
		errors.Is(err, mdpreview.ErrInvalidOrientation) ||
		errors.Is(err, mdpreview.ErrInvalidMargin) ||
		errors.Is(err, mdpreview.ErrInvalidTOCDepth) ||
		errors.Is(err, mdpreview.ErrInvalidWideClass) ||
		errors.Is(err, mdpreview.ErrInvalidHighlightStyle) ||
		errors.Is(err, mdpreview.ErrStyleNotFound) ||
		errors.Is(err, mdpreview.ErrTemplateNotFound) ||
		errors.Is(err, mdpreview.ErrScriptNotFound) ||
		errors.Is(err, mdpreview.ErrInvalidAssetPath) {
		return ExitUsage
	}

	return ExitGeneral
}
