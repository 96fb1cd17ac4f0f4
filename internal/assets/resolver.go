package assets

import "errors"

// Resolver reads from a custom directory first and falls back to the
// embedded assets when the custom directory lacks the asset. Validation and
// read errors from the custom directory are returned as is.
type Resolver struct {
	custom   Loader // nil without a base path
	embedded Loader
}

// NewResolver creates a Resolver. An empty basePath serves embedded assets
// only; otherwise basePath must be a readable directory.
func NewResolver(basePath string) (*Resolver, error) {
	r := &Resolver{embedded: NewEmbeddedLoader()}
	if basePath == "" {
		return r, nil
	}

	fsLoader, err := NewFilesystemLoader(basePath)
	if err != nil {
		return nil, err
	}
	r.custom = fsLoader
	return r, nil
}

// Load implements Loader.
func (r *Resolver) Load(kind Kind, name string) (string, error) {
	if r.custom == nil {
		return r.embedded.Load(kind, name)
	}

	content, err := r.custom.Load(kind, name)
	if err == nil || !errors.Is(err, ErrNotFound) {
		return content, err
	}
	return r.embedded.Load(kind, name)
}

var _ Loader = (*Resolver)(nil)
