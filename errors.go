package mdpreview

import "errors"

// Sentinel errors for library operations.
var (
	ErrEmptyMarkdown  = errors.New("markdown content cannot be empty")
	ErrPDFGeneration  = errors.New("PDF generation failed")
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")
	ErrPageNotReady   = errors.New("page scripts did not finish")

	// Payload errors.
	ErrPayloadDecode   = errors.New("payload is not valid base64")
	ErrPayloadEncoding = errors.New("payload is not valid UTF-8")
	ErrPayloadNotFound = errors.New("payload element not found")

	// Page settings validation errors.
	ErrInvalidPageSize    = errors.New("invalid page size")
	ErrInvalidOrientation = errors.New("invalid orientation")
	ErrInvalidMargin      = errors.New("invalid margin")

	// TOC validation errors.
	ErrInvalidTOCDepth = errors.New("invalid TOC depth")

	// Option errors.
	ErrInvalidWideClass      = errors.New("invalid wide character class")
	ErrInvalidHighlightStyle = errors.New("invalid highlight style")

	// Asset loading errors.
	ErrStyleNotFound    = errors.New("style not found")
	ErrTemplateNotFound = errors.New("template not found")
	ErrScriptNotFound   = errors.New("script not found")
	ErrInvalidAssetPath = errors.New("invalid asset path")
)
