// Package localfs provides directory-picker and drop capabilities backed by
// the local filesystem.
package localfs

import (
	"path"
	"strings"

	"upload-collector/internal/config"
)

// Options filters what the local handles expose to a traversal.
type Options struct {
	// Exclude holds glob patterns; a trailing "/" matches directory names.
	Exclude []string
	// IncludeHidden exposes dot-files and dot-directories.
	IncludeHidden bool
	// BatchSize is the number of entries a drop reader returns per call.
	BatchSize int
}

func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Exclude:       cfg.Exclude,
		IncludeHidden: cfg.IncludeHidden,
		BatchSize:     cfg.BatchSize,
	}
}

func (o Options) batchSize() int {
	if o.BatchSize <= 0 {
		return config.DefaultBatchSize
	}
	return o.BatchSize
}

func (o Options) skip(relPath, name string, isDir bool) bool {
	if !o.IncludeHidden && IsHiddenName(name) {
		return true
	}
	return ShouldExclude(relPath, isDir, o.Exclude)
}

// IsHiddenName reports whether name is a dot-file. "." and ".." are not hidden.
func IsHiddenName(name string) bool {
	if name == "." || name == ".." {
		return false
	}
	return strings.HasPrefix(name, ".")
}

// ShouldExclude matches a slash-separated relative path against exclusion
// patterns. Patterns ending in "/" only match directories or paths below them.
func ShouldExclude(relPath string, isDir bool, exclusions []string) bool {
	for _, pattern := range exclusions {
		if strings.HasSuffix(pattern, "/") {
			dirPattern := strings.TrimSuffix(pattern, "/")
			parts := strings.Split(relPath, "/")
			if !isDir {
				// The last part is the file itself
				parts = parts[:len(parts)-1]
			}
			for _, part := range parts {
				if part == dirPattern {
					return true
				}
				if matched, _ := path.Match(dirPattern, part); matched {
					return true
				}
			}
			continue
		}

		if matched, err := path.Match(pattern, path.Base(relPath)); err == nil && matched {
			return true
		}
		// Patterns with a slash match against the full relative path
		if strings.Contains(pattern, "/") {
			if matched, err := path.Match(pattern, relPath); err == nil && matched {
				return true
			}
		}
	}
	return false
}
