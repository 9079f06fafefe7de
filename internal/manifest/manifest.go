// Package manifest records a snapshot of the upload queue together with a
// merkle root over its entries, so a later upload step can verify it.
package manifest

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"time"

	mt "github.com/txaty/go-merkletree"

	"upload-collector/internal/hash"
	"upload-collector/internal/record"
)

const generator = "upload-collector"

type Entry struct {
	Path      string `json:"path"`
	Directory bool   `json:"directory,omitempty"`
	Size      int64  `json:"size"`
	Hash      string `json:"hash,omitempty"`
}

// Serialize implements the go-merkletree DataBlock interface.
func (e Entry) Serialize() ([]byte, error) {
	kind := "f"
	if e.Directory {
		kind = "d"
	}
	return []byte(e.Path + "\x00" + kind + "\x00" + strconv.FormatInt(e.Size, 10) + "\x00" + e.Hash), nil
}

type Manifest struct {
	Session   string
	Created   time.Time
	Root      string
	TotalSize int64
	Entries   []Entry
}

// Build turns records into manifest entries, in queue order. hashes maps
// record indexes to content hashes and may be nil.
func Build(sessionID string, records []record.UploadFileRecord, hashes map[int]string) (*Manifest, error) {
	entries := make([]Entry, 0, len(records))
	var totalSize int64

	for i, r := range records {
		entry := Entry{
			Path:      r.DisplayName(),
			Directory: r.IsDirectoryMarker(),
			Size:      r.Size(),
		}
		if !entry.Directory {
			entry.Hash = hashes[i]
		}
		totalSize += entry.Size
		entries = append(entries, entry)
	}

	root, err := rootHash(entries)
	if err != nil {
		return nil, err
	}

	return &Manifest{
		Session:   sessionID,
		Created:   time.Now(),
		Root:      root,
		TotalSize: totalSize,
		Entries:   entries,
	}, nil
}

// rootHash computes the merkle root over the serialized entries. The
// library needs at least two blocks, so smaller lists are hashed directly.
func rootHash(entries []Entry) (string, error) {
	switch len(entries) {
	case 0:
		sum, err := hash.XXHashFunc([]byte("empty-manifest"))
		if err != nil {
			return "", fmt.Errorf("failed to hash empty manifest: %w", err)
		}
		return hex.EncodeToString(sum), nil
	case 1:
		data, err := entries[0].Serialize()
		if err != nil {
			return "", fmt.Errorf("failed to serialize entry: %w", err)
		}
		sum, err := hash.XXHashFunc(data)
		if err != nil {
			return "", fmt.Errorf("failed to hash entry: %w", err)
		}
		return hex.EncodeToString(sum), nil
	}

	blocks := make([]mt.DataBlock, 0, len(entries))
	for _, e := range entries {
		blocks = append(blocks, e)
	}

	tree, err := mt.New(&mt.Config{HashFunc: hash.XXHashFunc}, blocks)
	if err != nil {
		return "", fmt.Errorf("failed to build merkle tree: %w", err)
	}

	return hex.EncodeToString(tree.Root), nil
}

func (m *Manifest) Files() int {
	n := 0
	for _, e := range m.Entries {
		if !e.Directory {
			n++
		}
	}
	return n
}
