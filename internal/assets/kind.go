package assets

import (
	"fmt"
	"strings"
)

// Kind selects an asset family. Each kind lives in its own directory with a
// fixed extension, both in the embedded tree and under a custom base path.
type Kind int

const (
	KindStyle Kind = iota
	KindTemplate
	KindScript
)

type kindInfo struct {
	name     string
	dir      string
	ext      string
	notFound error
}

var kinds = [...]kindInfo{
	KindStyle:    {"style", "styles", ".css", ErrStyleNotFound},
	KindTemplate: {"template", "templates", ".html", ErrTemplateNotFound},
	KindScript:   {"script", "scripts", ".js", ErrScriptNotFound},
}

func (k Kind) String() string {
	if info, err := k.info(); err == nil {
		return info.name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

func (k Kind) info() (kindInfo, error) {
	if k < 0 || int(k) >= len(kinds) {
		return kindInfo{}, fmt.Errorf("%w: %d", ErrUnknownKind, int(k))
	}
	return kinds[k], nil
}

// relPath validates name and returns "{dir}/{name}{ext}" for the kind.
func (k Kind) relPath(name string) (string, kindInfo, error) {
	info, err := k.info()
	if err != nil {
		return "", kindInfo{}, err
	}
	if err := ValidateName(name); err != nil {
		return "", kindInfo{}, err
	}
	return info.dir + "/" + name + info.ext, info, nil
}

// ValidateName checks that an asset name is a bare file stem: not empty, and
// free of path separators and dots.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if strings.ContainsAny(name, "/\\.") {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}
