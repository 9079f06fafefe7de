package walker

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"upload-collector/internal/record"
)

// Entry is a drag-and-drop filesystem entry. Concrete entries implement
// exactly one of FileEntry or DirectoryEntry.
type Entry interface {
	Name() string
}

type FileEntry interface {
	Entry
	File(ctx context.Context) (record.Content, error)
}

type DirectoryEntry interface {
	Entry
	CreateReader() BatchReader
}

// BatchReader returns a directory's children a batch at a time. An empty
// batch means the listing is exhausted.
type BatchReader interface {
	ReadEntries(ctx context.Context) ([]Entry, error)
}

// Item is one element of a drop event.
type Item interface {
	// AsEntry returns nil or an error when the item is not backed by a
	// filesystem entry.
	AsEntry() (Entry, error)
}

type RootEntry struct {
	Path  string
	Entry Entry
}

// DropTraversal walks every dropped root concurrently; each root's subtree
// is walked depth-first in order.
type DropTraversal struct {
	Logger   zerolog.Logger
	Observer Observer
}

func NewDropTraversal(logger zerolog.Logger, observer Observer) *DropTraversal {
	return &DropTraversal{
		Logger:   logger,
		Observer: observer,
	}
}

// ResolveItems converts drop items to root entries, skipping those without
// an entry. It returns the number skipped.
func (t *DropTraversal) ResolveItems(items []Item) ([]RootEntry, int) {
	roots := make([]RootEntry, 0, len(items))
	skipped := 0

	for i, item := range items {
		if item == nil {
			skipped++
			continue
		}
		entry, err := item.AsEntry()
		if err != nil || entry == nil {
			t.Logger.Debug().Err(err).Int("item", i).Msg(ErrEntryResolution.Error())
			skipped++
			continue
		}
		roots = append(roots, RootEntry{Path: "", Entry: entry})
	}

	return roots, skipped
}

// Drop resolves the items of one drop event and walks them.
func (t *DropTraversal) Drop(ctx context.Context, items []Item) (*Result, error) {
	roots, skipped := t.ResolveItems(items)

	result, err := t.Run(ctx, roots)
	if err != nil {
		return nil, err
	}
	result.Skipped += skipped
	return result, nil
}

// Run walks all roots and returns once every one has finished. Records are
// grouped per root, in root order.
func (t *DropTraversal) Run(ctx context.Context, roots []RootEntry) (*Result, error) {
	partials := make([]*Result, len(roots))

	g, gctx := errgroup.WithContext(ctx)
	for i, root := range roots {
		partials[i] = newResult()
		g.Go(func() error {
			return t.searchEntry(gctx, root.Path, root.Entry, partials[i])
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := newResult()
	for _, partial := range partials {
		result.merge(partial)
	}

	t.Logger.Debug().
		Int("roots", len(roots)).
		Int("files", result.Files()).
		Int("directories", result.Directories()).
		Int("errors", len(result.Errors)).
		Msg("drop traversal finished")

	return result, nil
}

// searchEntry only returns an error when ctx is done.
func (t *DropTraversal) searchEntry(ctx context.Context, prefix string, entry Entry, result *Result) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	switch e := entry.(type) {
	case FileEntry:
		content, err := e.File(ctx)
		if err == nil && content == nil {
			err = errNoContent
		}
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			t.fail(result, fmt.Errorf("%s: %w: %w", entryPath(prefix, e.Name()), ErrContentResolution, err))
			return nil
		}
		emit(result, t.Observer, record.NewFile(prefix, content))

	case DirectoryEntry:
		emit(result, t.Observer, record.NewDirectoryMarker(prefix, e.Name()))

		children, err := ReadAllEntries(ctx, e.CreateReader())
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			t.fail(result, fmt.Errorf("%s: %w: %w", entryPath(prefix, e.Name()), ErrReadEntries, err))
		}

		childPrefix := record.ChildPrefix(prefix, e.Name())
		for _, child := range children {
			if child == nil {
				continue
			}
			if err := t.searchEntry(ctx, childPrefix, child, result); err != nil {
				return err
			}
		}

	default:
		t.fail(result, fmt.Errorf("%s: %w", entryPath(prefix, entry.Name()), ErrUnknownKind))
	}

	return nil
}

func (t *DropTraversal) fail(result *Result, err error) {
	t.Logger.Warn().Err(err).Msg("skipping entry")
	result.Errors = append(result.Errors, err)
}

// ReadAllEntries calls ReadEntries until it returns an empty batch, so it
// makes exactly one call more than there are non-empty batches. On error
// the entries read so far are returned with it.
func ReadAllEntries(ctx context.Context, reader BatchReader) ([]Entry, error) {
	entries := make([]Entry, 0)
	for {
		batch, err := reader.ReadEntries(ctx)
		if err != nil {
			return entries, err
		}
		if len(batch) == 0 {
			return entries, nil
		}
		entries = append(entries, batch...)
	}
}
