package assets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FilesystemLoader reads assets from {basePath}/{styles,templates,scripts}.
type FilesystemLoader struct {
	basePath string // absolute, symlinks resolved
}

// NewFilesystemLoader checks that basePath is a readable directory.
// Returns ErrInvalidBasePath otherwise.
func NewFilesystemLoader(basePath string) (*FilesystemLoader, error) {
	if basePath == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidBasePath)
	}

	absPath, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}
	if realPath, err := filepath.EvalSymlinks(absPath); err == nil {
		absPath = realPath
	}

	info, err := os.Stat(absPath)
	switch {
	case os.IsNotExist(err):
		return nil, fmt.Errorf("%w: directory does not exist: %s", ErrInvalidBasePath, absPath)
	case err != nil:
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	case !info.IsDir():
		return nil, fmt.Errorf("%w: not a directory: %s", ErrInvalidBasePath, absPath)
	}
	if _, err := os.ReadDir(absPath); err != nil {
		return nil, fmt.Errorf("%w: cannot read directory: %v", ErrInvalidBasePath, err)
	}

	return &FilesystemLoader{basePath: absPath}, nil
}

// Load reads {basePath}/{dir}/{name}{ext}. A symlink resolving outside
// basePath is rejected with ErrPathTraversal.
func (f *FilesystemLoader) Load(kind Kind, name string) (string, error) {
	rel, info, err := kind.relPath(name)
	if err != nil {
		return "", err
	}

	path := filepath.Join(f.basePath, filepath.FromSlash(rel))
	if err := f.contains(path); err != nil {
		return "", err
	}

	content, err := os.ReadFile(path) // #nosec G304 -- contained in basePath
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %q", info.notFound, name)
		}
		return "", fmt.Errorf("%w: %v", ErrAssetRead, err)
	}
	return string(content), nil
}

// contains follows symlinks in path and checks the target stays inside
// basePath. A missing file is checked as is.
func (f *FilesystemLoader) contains(path string) error {
	if realPath, err := filepath.EvalSymlinks(path); err == nil {
		path = realPath
	}
	if !strings.HasPrefix(path, f.basePath+string(filepath.Separator)) {
		return fmt.Errorf("%w: path escapes base directory", ErrPathTraversal)
	}
	return nil
}

var _ Loader = (*FilesystemLoader)(nil)
