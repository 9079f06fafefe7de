package localfs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"iter"
	"path"

	"upload-collector/internal/record"
	"upload-collector/internal/walker"
)

// fileNode serves as both a picker FileHandle and a drop FileEntry.
type fileNode struct {
	fsys fs.FS
	rel  string
	name string
}

func (n *fileNode) Name() string { return n.name }

func (n *fileNode) File(ctx context.Context) (record.Content, error) {
	return resolveContent(ctx, n.fsys, n.rel, n.name)
}

// otherNode is a device, socket or pipe; it is neither file nor directory.
type otherNode struct {
	name string
}

func (n *otherNode) Name() string { return n.name }

// dirNode serves as both a picker DirectoryHandle and a drop DirectoryEntry.
type dirNode struct {
	fsys fs.FS
	rel  string
	name string
	opts Options
	// match is the path below the traversal root used for exclusions.
	match string
}

func (n *dirNode) Name() string { return n.name }

func (n *dirNode) child(e fs.DirEntry) (node interface{ Name() string }, ok bool) {
	rel := path.Join(n.rel, e.Name())
	match := path.Join(n.match, e.Name())
	if n.opts.skip(match, e.Name(), e.IsDir()) {
		return nil, false
	}

	switch {
	case e.IsDir():
		return &dirNode{fsys: n.fsys, rel: rel, name: e.Name(), opts: n.opts, match: match}, true
	case e.Type().IsRegular(), e.Type()&fs.ModeSymlink != 0:
		// Symlinks are resolved as files only, so directory cycles are never followed
		return &fileNode{fsys: n.fsys, rel: rel, name: e.Name()}, true
	default:
		return &otherNode{name: e.Name()}, true
	}
}

// Entries lists the directory sorted by name.
func (n *dirNode) Entries(ctx context.Context) iter.Seq2[walker.Handle, error] {
	return func(yield func(walker.Handle, error) bool) {
		entries, err := fs.ReadDir(n.fsys, n.rel)
		if err != nil {
			yield(nil, err)
			return
		}

		for _, e := range entries {
			if err := ctx.Err(); err != nil {
				yield(nil, err)
				return
			}
			node, ok := n.child(e)
			if !ok {
				continue
			}
			if !yield(node, nil) {
				return
			}
		}
	}
}

func (n *dirNode) CreateReader() walker.BatchReader {
	return &batchReader{dir: n, size: n.opts.batchSize()}
}

// batchReader pages through a directory with fs.ReadDirFile.ReadDir(n).
type batchReader struct {
	dir  *dirNode
	size int
	file fs.ReadDirFile
	done bool
}

func (r *batchReader) ReadEntries(ctx context.Context) ([]walker.Entry, error) {
	if r.done {
		return nil, nil
	}

	if r.file == nil {
		f, err := r.dir.fsys.Open(r.dir.rel)
		if err != nil {
			r.done = true
			return nil, err
		}
		rdf, ok := f.(fs.ReadDirFile)
		if !ok {
			f.Close()
			r.done = true
			return nil, fmt.Errorf("%s is not a directory", r.dir.name)
		}
		r.file = rdf
	}

	// Keep reading until a batch survives filtering or the listing ends
	for {
		if err := ctx.Err(); err != nil {
			r.finish()
			return nil, err
		}

		batch, err := r.file.ReadDir(r.size)
		entries := make([]walker.Entry, 0, len(batch))
		for _, e := range batch {
			if node, ok := r.dir.child(e); ok {
				entries = append(entries, node)
			}
		}

		if err != nil {
			r.finish()
			if errors.Is(err, io.EOF) {
				return entries, nil
			}
			return nil, err
		}
		if len(entries) > 0 {
			return entries, nil
		}
		if len(batch) == 0 {
			r.finish()
			return nil, nil
		}
	}
}

func (r *batchReader) finish() {
	r.done = true
	if r.file != nil {
		r.file.Close()
		r.file = nil
	}
}
