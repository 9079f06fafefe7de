package localfs

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"

	"upload-collector/internal/walker"
)

// Picker is a directory picker for terminals. A preset Path is used as the
// user's choice; otherwise the user is prompted on In.
type Picker struct {
	Path    string
	Options Options

	In          io.Reader
	Out         io.Writer
	Interactive bool
}

// NewPicker prompts on stdin when path is empty and stdin is a terminal.
func NewPicker(path string, opts Options) *Picker {
	return &Picker{
		Path:        path,
		Options:     opts,
		In:          os.Stdin,
		Out:         os.Stderr,
		Interactive: isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd()),
	}
}

func (p *Picker) Supported() bool {
	return p.Path != "" || (p.Interactive && p.In != nil)
}

func (p *Picker) ShowDirectoryPicker(ctx context.Context) (walker.DirectoryHandle, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", walker.ErrPickerCancelled, err)
	}

	chosen := p.Path
	if chosen == "" {
		var err error
		if chosen, err = p.prompt(); err != nil {
			return nil, err
		}
	}

	abs, err := filepath.Abs(chosen)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", walker.ErrPickerCancelled, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", walker.ErrPickerCancelled, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", walker.ErrPickerCancelled, abs)
	}

	return &dirNode{
		fsys: os.DirFS(abs),
		rel:  ".",
		name: filepath.Base(abs),
		opts: p.Options,
	}, nil
}

// prompt reads one line; an empty answer dismisses the picker.
func (p *Picker) prompt() (string, error) {
	if p.In == nil {
		return "", walker.ErrPickerUnsupported
	}
	if p.Out != nil {
		fmt.Fprint(p.Out, "Directory to upload (empty to cancel): ")
	}

	line, err := bufio.NewReader(p.In).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("%w: %w", walker.ErrPickerCancelled, err)
	}

	line = strings.TrimSpace(line)
	if line == "" {
		return "", walker.ErrPickerCancelled
	}
	return line, nil
}
