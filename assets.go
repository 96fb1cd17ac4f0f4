package mdpreview

import (
	"errors"

	"github.com/alnah/go-mdpreview/internal/assets"
)

// Asset name constants for built-in styles and templates.
const (
	// DefaultStyle is the name of the built-in CSS style.
	DefaultStyle = assets.DefaultStyleName

	// DefaultTemplate is the name of the built-in page template.
	DefaultTemplate = assets.DefaultTemplateName
)

// AssetLoader defines the contract for loading CSS styles and page templates.
// Implementations may load from filesystem, embedded assets, a database, etc.
//
// The library provides NewAssetLoader() for filesystem-based loading with
// fallback to embedded defaults. Implement this interface for custom backends.
type AssetLoader interface {
	// LoadStyle loads a CSS style by name (without .css extension).
	// Returns ErrStyleNotFound if the style doesn't exist.
	LoadStyle(name string) (string, error)

	// LoadTemplate loads a page template by name (without .html extension).
	// The template must keep the container, payload, and script hooks of
	// the built-in one. Returns ErrTemplateNotFound if it doesn't exist.
	LoadTemplate(name string) (string, error)
}

// StyleNames lists the built-in styles.
func StyleNames() []string {
	return assets.Names(assets.KindStyle)
}

// NewAssetLoader creates an AssetLoader for the given base path.
// If basePath is empty, returns a loader using only embedded assets.
// If basePath is set, custom assets take precedence with fallback to embedded.
//
// The basePath directory should contain:
//   - styles/{name}.css for CSS styles
//   - templates/{name}.html for page templates
//   - scripts/{name}.js for the client scripts (readiness, mathjax, mermaid)
//
// Returns ErrInvalidAssetPath if basePath is set but not a valid, readable directory.
func NewAssetLoader(basePath string) (AssetLoader, error) {
	resolver, err := assets.NewResolver(basePath)
	if err != nil {
		return nil, convertAssetError(err)
	}
	return &assetLoaderAdapter{loader: resolver}, nil
}

// assetLoaderAdapter maps internal asset errors to public sentinels.
type assetLoaderAdapter struct {
	loader assets.Loader
}

func (a *assetLoaderAdapter) LoadStyle(name string) (string, error) {
	return a.load(assets.KindStyle, name)
}

func (a *assetLoaderAdapter) LoadTemplate(name string) (string, error) {
	return a.load(assets.KindTemplate, name)
}

func (a *assetLoaderAdapter) load(kind assets.Kind, name string) (string, error) {
	content, err := a.loader.Load(kind, name)
	if err != nil {
		return "", convertAssetError(err)
	}
	return content, nil
}

// convertAssetError maps internal asset errors to public errors.
func convertAssetError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, assets.ErrStyleNotFound):
		return wrapError(ErrStyleNotFound, err)
	case errors.Is(err, assets.ErrTemplateNotFound):
		return wrapError(ErrTemplateNotFound, err)
	case errors.Is(err, assets.ErrScriptNotFound):
		return wrapError(ErrScriptNotFound, err)
	case errors.Is(err, assets.ErrInvalidBasePath), errors.Is(err, assets.ErrPathTraversal):
		return wrapError(ErrInvalidAssetPath, err)
	case errors.Is(err, assets.ErrInvalidAssetName):
		return wrapError(ErrStyleNotFound, err) // an invalid name cannot exist
	default:
		return err
	}
}

// wrapError creates an error that keeps the original message while
// matching the public sentinel with errors.Is.
func wrapError(sentinel, original error) error {
	return &wrappedAssetError{sentinel: sentinel, original: original}
}

type wrappedAssetError struct {
	sentinel error
	original error
}

func (e *wrappedAssetError) Error() string {
	return e.original.Error()
}

// Unwrap returns the public sentinel. Internal errors are not exposed.
func (e *wrappedAssetError) Unwrap() error {
	return e.sentinel
}
