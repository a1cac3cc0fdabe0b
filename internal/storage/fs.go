package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"
)

// FSSource serves posts from a directory of a filesystem, typically os.DirFS.
type FSSource struct {
	fsys fs.FS
	dir  string
}

func NewFSSource(fsys fs.FS, dir string) *FSSource {
	if dir == "" {
		dir = "."
	}
	return &FSSource{
		fsys: fsys,
		dir:  path.Clean(dir),
	}
}

func (s *FSSource) Name() string {
	return "fs-listing"
}

func (s *FSSource) Discover(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := fs.ReadDir(s.fsys, s.dir)
	if err != nil {
		return nil, fmt.Errorf("read post directory %s: %w", s.dir, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !IsContentFile(entry.Name()) {
			continue
		}
		names = append(names, entry.Name())
	}
	return names, nil
}

func (s *FSSource) Fetch(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, &FetchError{Name: name, Err: err}
	}
	if strings.ContainsAny(name, `/\`) {
		return nil, &FetchError{Name: name, Err: ErrNotFound}
	}

	data, err := fs.ReadFile(s.fsys, path.Join(s.dir, name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &FetchError{Name: name, Err: fmt.Errorf("%w: %w", ErrNotFound, err)}
		}
		return nil, &FetchError{Name: name, Err: err}
	}
	return data, nil
}
