package manifest

import (
	"fmt"
	"sort"
	"strings"
)

type ChangeType string

const (
	Added    ChangeType = "ADDED"
	Modified ChangeType = "MODIFIED"
	Deleted  ChangeType = "DELETED"
)

type Change struct {
	Type     ChangeType
	Path     string
	OldEntry *Entry
	NewEntry *Entry
}

type CompareResult struct {
	Added    []Change
	Modified []Change
	Deleted  []Change
}

func (r *CompareResult) HasChanges() bool {
	return len(r.Added) > 0 || len(r.Modified) > 0 || len(r.Deleted) > 0
}

// entryKey tells apart entries queued more than once under the same path.
type entryKey struct {
	path string
	seen int
}

func index(m *Manifest) map[entryKey]Entry {
	entries := make(map[entryKey]Entry, len(m.Entries))
	counts := make(map[string]int, len(m.Entries))
	for _, e := range m.Entries {
		entries[entryKey{path: e.Path, seen: counts[e.Path]}] = e
		counts[e.Path]++
	}
	return entries
}

// Compare reports what a new selection adds, changes or drops relative to a
// previously saved manifest. Entries are matched by path, and repeated paths
// by their order of appearance.
func Compare(oldManifest, newManifest *Manifest) *CompareResult {
	result := &CompareResult{
		Added:    make([]Change, 0),
		Modified: make([]Change, 0),
		Deleted:  make([]Change, 0),
	}

	oldEntries := index(oldManifest)
	newEntries := index(newManifest)

	for key, newEntry := range newEntries {
		if oldEntry, exists := oldEntries[key]; exists {
			if oldEntry.Directory != newEntry.Directory || oldEntry.Hash != newEntry.Hash || oldEntry.Size != newEntry.Size {
				result.Modified = append(result.Modified, Change{
					Type:     Modified,
					Path:     key.path,
					OldEntry: &oldEntry,
					NewEntry: &newEntry,
				})
			}
		} else {
			result.Added = append(result.Added, Change{
				Type:     Added,
				Path:     key.path,
				NewEntry: &newEntry,
			})
		}
	}

	for key, oldEntry := range oldEntries {
		if _, exists := newEntries[key]; !exists {
			result.Deleted = append(result.Deleted, Change{
				Type:     Deleted,
				Path:     key.path,
				OldEntry: &oldEntry,
			})
		}
	}

	// Sort for deterministic output
	sort.Slice(result.Added, func(i, j int) bool {
		return result.Added[i].Path < result.Added[j].Path
	})
	sort.Slice(result.Modified, func(i, j int) bool {
		return result.Modified[i].Path < result.Modified[j].Path
	})
	sort.Slice(result.Deleted, func(i, j int) bool {
		return result.Deleted[i].Path < result.Deleted[j].Path
	})

	return result
}

func describe(e *Entry) string {
	if e.Directory {
		return "directory"
	}
	return fmt.Sprintf("hash: %s, size: %d bytes", e.Hash, e.Size)
}

func FormatReport(result *CompareResult) string {
	if !result.HasChanges() {
		return "No changes since the saved manifest."
	}

	var b strings.Builder
	b.WriteString("Changes since the saved manifest:\n\n")

	if len(result.Added) > 0 {
		fmt.Fprintf(&b, "ADDED (%d):\n", len(result.Added))
		for _, change := range result.Added {
			fmt.Fprintf(&b, "  + %s (%s)\n", change.Path, describe(change.NewEntry))
		}
		b.WriteString("\n")
	}

	if len(result.Modified) > 0 {
		fmt.Fprintf(&b, "MODIFIED (%d):\n", len(result.Modified))
		for _, change := range result.Modified {
			fmt.Fprintf(&b, "  ~ %s\n", change.Path)
			fmt.Fprintf(&b, "    Old: %s\n", describe(change.OldEntry))
			fmt.Fprintf(&b, "    New: %s\n", describe(change.NewEntry))
		}
		b.WriteString("\n")
	}

	if len(result.Deleted) > 0 {
		fmt.Fprintf(&b, "DELETED (%d):\n", len(result.Deleted))
		for _, change := range result.Deleted {
			fmt.Fprintf(&b, "  - %s (%s)\n", change.Path, describe(change.OldEntry))
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "Summary: %d added, %d modified, %d deleted\n",
		len(result.Added), len(result.Modified), len(result.Deleted))

	return b.String()
}
