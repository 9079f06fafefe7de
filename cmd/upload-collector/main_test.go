package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"upload-collector/internal/manifest"
)

func run(t *testing.T, args ...string) string {
	t.Helper()

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(append([]string{"--quiet", "--config", filepath.Join(t.TempDir(), "none.yaml")}, args...))

	require.NoError(t, cmd.Execute())
	return out.String()
}

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		full := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0644))
	}
}

func TestPickCommand_WritesManifest(t *testing.T) {
	tmpDir := t.TempDir()
	writeTree(t, tmpDir, map[string]string{"a/b.txt": "b", "a/c/d.txt": "d"})
	output := filepath.Join(t.TempDir(), "manifest.json")

	out := run(t, "pick", tmpDir, "--output", output)

	lines := strings.Split(out, "\n")
	require.GreaterOrEqual(t, len(lines), 5)
	assert.Contains(t, lines[0], "Pending uploads (4)")
	assert.True(t, strings.HasSuffix(lines[1], " a/"))
	assert.True(t, strings.HasSuffix(lines[2], " a/b.txt"))
	assert.True(t, strings.HasSuffix(lines[3], " a/c/"))
	assert.True(t, strings.HasSuffix(lines[4], " a/c/d.txt"))

	m, err := manifest.Load(output)
	require.NoError(t, err)
	assert.Len(t, m.Entries, 4)
	assert.NotEmpty(t, m.Entries[1].Hash)
}

func TestPickCommand_MissingDirectoryIsNoop(t *testing.T) {
	out := run(t, "pick", filepath.Join(t.TempDir(), "missing"))
	assert.NotContains(t, out, "Pending uploads")
}

func TestDropCommand(t *testing.T) {
	tmpDir := t.TempDir()
	writeTree(t, tmpDir, map[string]string{"x.txt": "x", "y.txt": "y"})

	out := run(t, "drop", "--no-hash",
		filepath.Join(tmpDir, "x.txt"),
		filepath.Join(tmpDir, "nope.txt"),
		filepath.Join(tmpDir, "y.txt"))

	assert.Contains(t, out, "Pending uploads (2)")
	assert.Contains(t, out, " x.txt\n")
	assert.Contains(t, out, " y.txt\n")
}

func TestSelectCommand_ComparesWithSavedManifest(t *testing.T) {
	tmpDir := t.TempDir()
	writeTree(t, tmpDir, map[string]string{"one.txt": "1", "two.txt": "2", "skip.tmp": "t"})
	saved := filepath.Join(t.TempDir(), "saved.json")

	run(t, "select", filepath.Join(tmpDir, "one.txt"), "--output", saved)

	out := run(t, "select",
		filepath.Join(tmpDir, "one.txt"),
		filepath.Join(tmpDir, "two.txt"),
		filepath.Join(tmpDir, "skip.tmp"),
		"--against", saved)

	assert.Contains(t, out, "Pending uploads (2)")
	assert.NotContains(t, out, "skip.tmp")
	assert.Contains(t, out, "+ two.txt")
	assert.Contains(t, out, "1 added, 0 modified, 0 deleted")
}
