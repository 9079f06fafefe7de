package localfs

import (
	"fmt"
	"os"
	"path/filepath"

	"upload-collector/internal/walker"
)

// pathItem is a dropped path. It resolves to an entry only if the path exists.
type pathItem struct {
	path string
	opts Options
}

// DropItems turns dropped paths into drop items, in order.
func DropItems(paths []string, opts Options) []walker.Item {
	items := make([]walker.Item, 0, len(paths))
	for _, p := range paths {
		items = append(items, &pathItem{path: p, opts: opts})
	}
	return items
}

func (it *pathItem) AsEntry() (walker.Entry, error) {
	abs, err := filepath.Abs(it.path)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(abs)
	if err != nil {
		return nil, err
	}

	fsys, rel, name := split(abs)
	switch {
	case info.IsDir():
		return &dirNode{fsys: fsys, rel: rel, name: name, opts: it.opts}, nil
	case info.Mode().IsRegular():
		return &fileNode{fsys: fsys, rel: rel, name: name}, nil
	default:
		return nil, fmt.Errorf("%s is not a file or directory", abs)
	}
}
