package assets

import (
	"errors"
	"fmt"
)

// ErrNotFound matches every "asset does not exist" error.
var ErrNotFound = errors.New("asset not found")

// Sentinel errors for asset operations. The per-kind not-found errors wrap
// ErrNotFound.
var (
	ErrStyleNotFound    = fmt.Errorf("style %w", ErrNotFound)
	ErrTemplateNotFound = fmt.Errorf("template %w", ErrNotFound)
	ErrScriptNotFound   = fmt.Errorf("script %w", ErrNotFound)

	// ErrInvalidAssetName rejects empty names and names with separators or dots.
	ErrInvalidAssetName = errors.New("invalid asset name")

	ErrUnknownKind     = errors.New("unknown asset kind")
	ErrInvalidBasePath = errors.New("invalid base path")
	ErrAssetRead       = errors.New("failed to read asset")
	ErrPathTraversal   = errors.New("path traversal detected")
)
