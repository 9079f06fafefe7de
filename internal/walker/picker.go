package walker

import (
	"context"
	"errors"
	"fmt"
	"iter"

	"github.com/rs/zerolog"

	"upload-collector/internal/record"
)

// Handle is one child of a picked directory. Concrete handles implement
// exactly one of FileHandle or DirectoryHandle.
type Handle interface {
	Name() string
}

type FileHandle interface {
	Handle
	File(ctx context.Context) (record.Content, error)
}

type DirectoryHandle interface {
	Handle
	// Entries yields direct children in the order the backend returns them.
	// A non-nil error ends the sequence.
	Entries(ctx context.Context) iter.Seq2[Handle, error]
}

// Picker is the directory-picker capability.
type Picker interface {
	// Supported reports whether ShowDirectoryPicker can be offered at all.
	Supported() bool
	ShowDirectoryPicker(ctx context.Context) (DirectoryHandle, error)
}

// PickerTraversal walks a picked directory depth-first, one child at a time.
type PickerTraversal struct {
	Logger   zerolog.Logger
	Observer Observer
}

func NewPickerTraversal(logger zerolog.Logger, observer Observer) *PickerTraversal {
	return &PickerTraversal{
		Logger:   logger,
		Observer: observer,
	}
}

// Pick shows the picker and walks the chosen directory. Any picker failure is
// reported as ErrPickerCancelled and yields no result.
func (t *PickerTraversal) Pick(ctx context.Context, picker Picker) (*Result, error) {
	if !picker.Supported() {
		return nil, ErrPickerUnsupported
	}

	root, err := picker.ShowDirectoryPicker(ctx)
	if err != nil {
		if errors.Is(err, ErrPickerCancelled) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrPickerCancelled, err)
	}
	if root == nil {
		return nil, ErrPickerCancelled
	}

	return t.Run(ctx, root)
}

// Run walks root. The root itself produces no record; its children sit at
// the empty prefix.
func (t *PickerTraversal) Run(ctx context.Context, root DirectoryHandle) (*Result, error) {
	result := newResult()

	if err := t.searchDirectory(ctx, "", root, result); err != nil {
		return nil, err
	}

	t.Logger.Debug().
		Str("root", root.Name()).
		Int("files", result.Files()).
		Int("directories", result.Directories()).
		Int("errors", len(result.Errors)).
		Msg("directory picker traversal finished")

	return result, nil
}

// searchDirectory only returns an error when ctx is done.
func (t *PickerTraversal) searchDirectory(ctx context.Context, prefix string, dir DirectoryHandle, result *Result) error {
	for child, err := range dir.Entries(ctx) {
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			t.fail(result, fmt.Errorf("%s: %w: %w", entryPath(prefix, ""), ErrReadEntries, err))
			break
		}
		if child == nil {
			continue
		}

		switch h := child.(type) {
		case FileHandle:
			content, err := h.File(ctx)
			if err == nil && content == nil {
				err = errNoContent
			}
			if err != nil {
				if ctxErr := ctx.Err(); ctxErr != nil {
					return ctxErr
				}
				t.fail(result, fmt.Errorf("%s: %w: %w", entryPath(prefix, h.Name()), ErrContentResolution, err))
				continue
			}
			emit(result, t.Observer, record.NewFile(prefix, content))

		case DirectoryHandle:
			emit(result, t.Observer, record.NewDirectoryMarker(prefix, h.Name()))
			if err := t.searchDirectory(ctx, record.ChildPrefix(prefix, h.Name()), h, result); err != nil {
				return err
			}

		default:
			t.fail(result, fmt.Errorf("%s: %w", entryPath(prefix, child.Name()), ErrUnknownKind))
		}
	}

	return nil
}

func (t *PickerTraversal) fail(result *Result, err error) {
	t.Logger.Warn().Err(err).Msg("skipping entry")
	result.Errors = append(result.Errors, err)
}
