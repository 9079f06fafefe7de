package localfs

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"upload-collector/internal/record"
)

type fileContent struct {
	fsys fs.FS
	rel  string
	name string
	size int64
}

func (c *fileContent) Name() string { return c.name }
func (c *fileContent) Size() int64  { return c.size }

func (c *fileContent) Open() (io.ReadCloser, error) {
	return c.fsys.Open(c.rel)
}

func resolveContent(ctx context.Context, fsys fs.FS, rel, name string) (record.Content, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	info, err := fs.Stat(fsys, rel)
	if err != nil {
		return nil, err
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%s is not a regular file", name)
	}

	return &fileContent{
		fsys: fsys,
		rel:  rel,
		name: name,
		size: info.Size(),
	}, nil
}

// OpenFile resolves a path on disk to file content.
func OpenFile(filePath string) (record.Content, error) {
	abs, err := filepath.Abs(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path: %w", err)
	}

	fsys, rel, name := split(abs)
	return resolveContent(context.Background(), fsys, rel, name)
}

// split roots an fs.FS at the parent of abs so the final element keeps its name.
func split(abs string) (fs.FS, string, string) {
	parent := filepath.Dir(abs)
	if parent == abs {
		return os.DirFS(abs), ".", abs
	}
	name := filepath.Base(abs)
	return os.DirFS(parent), name, name
}
