// internal/export/archive/localfs.go
package archive

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// LocalFS stores export artifacts under a root directory on the local
// filesystem. Paths are confined to the root; anything that resolves
// outside it is rejected.
type LocalFS struct {
	root string
}

// NewLocalFS creates a local archive rooted at root, creating the
// directory if needed.
func NewLocalFS(root string) (*LocalFS, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("creating archive root: %w", err)
	}
	return &LocalFS{root: root}, nil
}

// resolve maps an archive path to a filesystem path, refusing anything
// that would land outside the archive root.
func (l *LocalFS) resolve(path string) (string, error) {
	target := filepath.Join(l.root, filepath.FromSlash(path))
	rel, err := filepath.Rel(l.root, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("path %q escapes archive root", path)
	}
	return target, nil
}

func (l *LocalFS) Write(ctx context.Context, path string, data []byte) error {
	target, err := l.resolve(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return fmt.Errorf("creating export directory: %w", err)
	}
	return os.WriteFile(target, data, 0644)
}

func (l *LocalFS) Read(ctx context.Context, path string) ([]byte, error) {
	target, err := l.resolve(path)
	if err != nil {
		return nil, err
	}
	return os.ReadFile(target)
}

// List returns the relative paths of all artifacts under prefix, sorted.
// A prefix that does not exist yet lists as empty rather than failing.
func (l *LocalFS) List(ctx context.Context, prefix string) ([]string, error) {
	start, err := l.resolve(prefix)
	if err != nil {
		return nil, err
	}

	paths := []string{}
	err = filepath.WalkDir(start, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(l.root, path)
		if err != nil {
			return err
		}
		paths = append(paths, filepath.ToSlash(rel))
		return nil
	})
	if os.IsNotExist(err) {
		return []string{}, nil
	}
	if err != nil {
		return nil, err
	}

	sort.Strings(paths)
	return paths, nil
}

func (l *LocalFS) Delete(ctx context.Context, path string) error {
	target, err := l.resolve(path)
	if err != nil {
		return err
	}
	return os.Remove(target)
}

func (l *LocalFS) Exists(ctx context.Context, path string) (bool, error) {
	target, err := l.resolve(path)
	if err != nil {
		return false, err
	}
	_, err = os.Stat(target)
	if os.IsNotExist(err) {
		return false, nil
	}
	return err == nil, err
}
