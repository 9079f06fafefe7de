// Package dropzone implements manual multi-file selection: files are checked
// against size and name rules and reported as accepted or rejected.
package dropzone

import (
	"fmt"
	"path"
	"path/filepath"

	"upload-collector/internal/config"
	"upload-collector/internal/localfs"
	"upload-collector/internal/record"
)

type Rejection struct {
	Name   string
	Size   int64
	Reason string
}

// Change is what one selection reports back.
type Change struct {
	Added    []record.Content
	Rejected []Rejection
}

type Filter struct {
	// Accept holds glob patterns on the file name; empty accepts everything.
	Accept      []string
	Exclude     []string
	MaxFileSize int64
}

func FilterFromConfig(cfg *config.Config) Filter {
	return Filter{
		Accept:      cfg.Accept,
		Exclude:     cfg.Exclude,
		MaxFileSize: cfg.MaxFileSize,
	}
}

// Check returns an empty reason when the file is accepted.
func (f Filter) Check(name string, size int64) string {
	if f.MaxFileSize > 0 && size > f.MaxFileSize {
		return fmt.Sprintf("exceeds maximum size of %d bytes", f.MaxFileSize)
	}
	if localfs.ShouldExclude(name, false, f.Exclude) {
		return "excluded by pattern"
	}
	if len(f.Accept) == 0 {
		return ""
	}
	for _, pattern := range f.Accept {
		if matched, err := path.Match(pattern, name); err == nil && matched {
			return ""
		}
	}
	return "file type not accepted"
}

// Select resolves each path and sorts it into Added or Rejected, keeping order.
func (f Filter) Select(paths []string) Change {
	change := Change{
		Added:    make([]record.Content, 0, len(paths)),
		Rejected: make([]Rejection, 0),
	}

	for _, p := range paths {
		content, err := localfs.OpenFile(p)
		if err != nil {
			change.Rejected = append(change.Rejected, Rejection{
				Name:   filepath.Base(p),
				Reason: err.Error(),
			})
			continue
		}

		if reason := f.Check(content.Name(), content.Size()); reason != "" {
			change.Rejected = append(change.Rejected, Rejection{
				Name:   content.Name(),
				Size:   content.Size(),
				Reason: reason,
			})
			continue
		}
		change.Added = append(change.Added, content)
	}

	return change
}
