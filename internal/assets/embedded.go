package assets

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"
)

//go:embed styles/*.css templates/*.html scripts/*.js
var embedded embed.FS

// Loader reads one asset by kind and name (without extension).
type Loader interface {
	Load(kind Kind, name string) (string, error)
}

// EmbeddedLoader serves the assets compiled into the binary.
type EmbeddedLoader struct{}

// NewEmbeddedLoader creates an EmbeddedLoader.
func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{}
}

// Load reads an embedded asset.
func (EmbeddedLoader) Load(kind Kind, name string) (string, error) {
	rel, info, err := kind.relPath(name)
	if err != nil {
		return "", err
	}
	content, err := embedded.ReadFile(rel)
	if err != nil {
		return "", fmt.Errorf("%w: %q", info.notFound, name)
	}
	return string(content), nil
}

// Names lists the embedded assets of a kind, sorted, without extensions.
func Names(kind Kind) []string {
	info, err := kind.info()
	if err != nil {
		return nil
	}
	entries, err := fs.ReadDir(embedded, info.dir)
	if err != nil {
		return nil
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), info.ext))
	}
	sort.Strings(names)
	return names
}

var _ Loader = EmbeddedLoader{}
