package progress

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"upload-collector/internal/record"
)

// Bar renders progress on a single terminal line. A total of 0 means the
// amount of work is unknown and only a running count is shown.
type Bar struct {
	label       string
	total       int64
	current     int64
	width       int
	writer      io.Writer
	mu          sync.Mutex
	currentDirs map[string]bool
	dirMu       sync.Mutex
	enabled     bool
	lastUpdate  time.Time
}

func New(label string, total int64) *Bar {
	return NewWithWriter(label, total, os.Stdout)
}

// NewWithWriter renders to w; a nil writer disables rendering but keeps
// counting.
func NewWithWriter(label string, total int64, w io.Writer) *Bar {
	return &Bar{
		label:       label,
		total:       total,
		current:     0,
		width:       40,
		writer:      w,
		currentDirs: make(map[string]bool),
		enabled:     w != nil,
		lastUpdate:  time.Now(),
	}
}

func (b *Bar) Current() int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.current
}

func (b *Bar) SetDirectory(dir string) {
	b.dirMu.Lock()
	if !b.currentDirs[dir] {
		b.currentDirs[dir] = true
	}
	b.dirMu.Unlock()
}

func (b *Bar) Increment() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.current++
	if !b.enabled {
		return
	}

	// Update at most every 100ms to reduce flickering
	now := time.Now()
	if now.Sub(b.lastUpdate) > 100*time.Millisecond || b.current == b.total {
		b.lastUpdate = now
		b.render()
	}
}

// Observe counts a discovered record.
func (b *Bar) Observe(r record.UploadFileRecord) {
	dir := strings.TrimSuffix(r.PathPrefix, record.Separator)
	if dir == "" {
		dir = "."
	}
	b.SetDirectory(dir)
	b.Increment()
}

// render must be called with mu already locked
func (b *Bar) render() {
	b.dirMu.Lock()
	dirs := make([]string, 0, len(b.currentDirs))
	for dir := range b.currentDirs {
		dirs = append(dirs, filepath.Base(dir))
	}
	b.dirMu.Unlock()
	sort.Strings(dirs)

	var dirDisplay string
	if len(dirs) > 0 {
		if len(dirs) > 3 {
			dirDisplay = fmt.Sprintf(" | %s, %s, %s +%d more", dirs[0], dirs[1], dirs[2], len(dirs)-3)
		} else {
			dirDisplay = " | " + strings.Join(dirs, ", ")
		}
	}

	if b.total <= 0 {
		fmt.Fprintf(b.writer, "\r\033[K%s: %d%s", b.label, b.current, dirDisplay)
		return
	}

	percent := float64(b.current) / float64(b.total) * 100
	filledWidth := int(float64(b.width) * float64(b.current) / float64(b.total))
	if filledWidth > b.width {
		filledWidth = b.width
	}

	bar := strings.Repeat("█", filledWidth) + strings.Repeat("░", b.width-filledWidth)

	fmt.Fprintf(b.writer, "\r\033[K%s [%s] %3d%% (%d/%d)%s",
		b.label, bar, int(percent), b.current, b.total, dirDisplay)
}

func (b *Bar) Finish() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.total > 0 {
		b.current = b.total
	}
	if !b.enabled {
		return
	}
	b.render()
	fmt.Fprintf(b.writer, "\n")
}
