package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

type serializedManifest struct {
	Generator string    `json:"generator"`
	Session   string    `json:"session"`
	Created   time.Time `json:"created"`
	Root      string    `json:"root"`
	Size      string    `json:"size"`
	TotalSize int64     `json:"total_size"`
	Entries   []Entry   `json:"entries"`
}

func formatSize(bytes int64) string {
	const (
		KB = 1024
		MB = KB * 1024
		GB = MB * 1024
	)

	switch {
	case bytes >= GB:
		return fmt.Sprintf("%.2f GB", float64(bytes)/float64(GB))
	case bytes >= MB:
		return fmt.Sprintf("%.2f MB", float64(bytes)/float64(MB))
	case bytes >= KB:
		return fmt.Sprintf("%.2f KB", float64(bytes)/float64(KB))
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}

// Save writes the manifest as indented JSON, creating parent directories.
func Save(m *Manifest, path string) error {
	serialized := serializedManifest{
		Generator: generator,
		Session:   m.Session,
		Created:   m.Created,
		Root:      m.Root,
		Size:      formatSize(m.TotalSize),
		TotalSize: m.TotalSize,
		Entries:   m.Entries,
	}

	data, err := json.MarshalIndent(serialized, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}

func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var serialized serializedManifest
	if err := json.Unmarshal(data, &serialized); err != nil {
		return nil, fmt.Errorf("failed to unmarshal manifest: %w", err)
	}

	if serialized.Entries == nil {
		serialized.Entries = []Entry{}
	}

	return &Manifest{
		Session:   serialized.Session,
		Created:   serialized.Created,
		Root:      serialized.Root,
		TotalSize: serialized.TotalSize,
		Entries:   serialized.Entries,
	}, nil
}
