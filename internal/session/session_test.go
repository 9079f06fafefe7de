package session

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"upload-collector/internal/dropzone"
	"upload-collector/internal/localfs"
	"upload-collector/internal/record"
	"upload-collector/internal/walker"
)

func writeFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		full := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0644))
	}
}

func TestNew_UniqueIDs(t *testing.T) {
	a := New(zerolog.Nop())
	b := New(zerolog.Nop())

	assert.NotEmpty(t, a.ID())
	assert.NotEqual(t, a.ID(), b.ID())
	assert.Equal(t, 0, a.Len())
}

func TestPickDirectory_AppendsInOrder(t *testing.T) {
	tmpDir := t.TempDir()
	writeFiles(t, tmpDir, map[string]string{"a/b.txt": "b", "a/c/d.txt": "d"})

	s := New(zerolog.Nop())
	_, err := s.PickDirectory(context.Background(), localfs.NewPicker(tmpDir, localfs.Options{}))
	require.NoError(t, err)

	snap := s.Snapshot()
	require.Len(t, snap, 4)
	assert.Equal(t, "a", snap[0].DisplayName())
	assert.True(t, snap[0].IsDirectoryMarker())
	assert.Equal(t, "a/c/d.txt", snap[3].DisplayName())
}

func TestPickDirectory_CancelLeavesQueueUnchanged(t *testing.T) {
	s := New(zerolog.Nop())
	s.AddSelected(dropzone.Change{Added: []record.Content{
		record.BytesContent{FileName: "existing.txt", Data: []byte("e")},
	}})
	before := s.Snapshot()

	_, err := s.PickDirectory(context.Background(), localfs.NewPicker("/nonexistent/dir", localfs.Options{}))
	assert.ErrorIs(t, err, walker.ErrPickerCancelled)
	assert.Equal(t, before, s.Snapshot())
}

func TestDrop_EmptyLeavesQueueUnchanged(t *testing.T) {
	s := New(zerolog.Nop())
	s.AddSelected(dropzone.Change{Added: []record.Content{
		record.BytesContent{FileName: "existing.txt", Data: []byte("e")},
	}})
	before := s.Snapshot()

	result, err := s.Drop(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, result.Records)
	assert.Equal(t, before, s.Snapshot())
}

func TestDrop_AppendsAfterEarlierRuns(t *testing.T) {
	tmpDir := t.TempDir()
	writeFiles(t, tmpDir, map[string]string{"x.txt": "x", "y.txt": "y", "dir/z.txt": "z"})

	s := New(zerolog.Nop())
	s.AddSelected(dropzone.Change{Added: []record.Content{
		record.BytesContent{FileName: "first.txt", Data: []byte("f")},
	}})

	items := localfs.DropItems([]string{
		filepath.Join(tmpDir, "x.txt"),
		filepath.Join(tmpDir, "dir"),
		filepath.Join(tmpDir, "y.txt"),
	}, localfs.Options{BatchSize: 1})
	_, err := s.Drop(context.Background(), items)
	require.NoError(t, err)

	snap := s.Snapshot()
	require.Len(t, snap, 5)
	assert.Equal(t, "first.txt", snap[0].DisplayName())

	dropped := make([]string, 0, 4)
	for _, r := range snap[1:] {
		dropped = append(dropped, r.DisplayName())
	}
	assert.ElementsMatch(t, []string{"x.txt", "dir", "dir/z.txt", "y.txt"}, dropped)
}

func TestAddSelected_OnlyAccepted(t *testing.T) {
	s := New(zerolog.Nop())

	added := s.AddSelected(dropzone.Change{
		Added: []record.Content{
			record.BytesContent{FileName: "one.pdf", Data: []byte("1")},
			record.BytesContent{FileName: "two.pdf", Data: []byte("2")},
		},
		Rejected: []dropzone.Rejection{{Name: "huge.iso", Size: 1 << 32, Reason: "too big"}},
	})

	assert.Equal(t, 2, added)
	snap := s.Snapshot()
	require.Len(t, snap, 2)
	for i, name := range []string{"one.pdf", "two.pdf"} {
		assert.Equal(t, name, snap[i].DisplayName())
		assert.Equal(t, "", snap[i].PathPrefix)
		assert.False(t, snap[i].IsDirectoryMarker())
	}
}

func TestPickerVisible(t *testing.T) {
	s := New(zerolog.Nop())

	assert.True(t, s.PickerVisible(localfs.NewPicker("/tmp", localfs.Options{})))
	assert.False(t, s.PickerVisible(&localfs.Picker{}))
	assert.False(t, s.PickerVisible(nil))
}

func TestReset(t *testing.T) {
	s := New(zerolog.Nop())
	s.AddSelected(dropzone.Change{Added: []record.Content{
		record.BytesContent{FileName: "a", Data: []byte("a")},
	}})

	s.Reset()
	assert.Equal(t, 0, s.Len())
}

func TestAddSelected_IgnoresNilContent(t *testing.T) {
	s := New(zerolog.Nop())

	added := s.AddSelected(dropzone.Change{
		Added: []record.Content{nil, record.BytesContent{FileName: "one.pdf", Data: []byte("1")}},
	})

	assert.Equal(t, 1, added)
	require.Equal(t, 1, s.Len())
	assert.Equal(t, "one.pdf", s.Snapshot()[0].DisplayName())
}
