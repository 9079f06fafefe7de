// Package record defines the normalized unit produced by every selection flow.
package record

import (
	"bytes"
	"io"
)

// Separator terminates every directory name inside a path prefix.
const Separator = "/"

type Kind int

const (
	KindFile Kind = iota
	KindDirectory
)

func (k Kind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindDirectory:
		return "directory"
	default:
		return "unknown"
	}
}

// Content is the resolved body of a real file.
type Content interface {
	Name() string
	Size() int64
	Open() (io.ReadCloser, error)
}

// Payload is either a real file (Content set) or a directory marker (name only).
type Payload struct {
	Kind    Kind
	Name    string
	Content Content
}

type UploadFileRecord struct {
	PathPrefix string
	Payload    Payload
}

func NewFile(prefix string, content Content) UploadFileRecord {
	return UploadFileRecord{
		PathPrefix: prefix,
		Payload: Payload{
			Kind:    KindFile,
			Name:    content.Name(),
			Content: content,
		},
	}
}

func NewDirectoryMarker(prefix, name string) UploadFileRecord {
	return UploadFileRecord{
		PathPrefix: prefix,
		Payload: Payload{
			Kind: KindDirectory,
			Name: name,
		},
	}
}

// IsDirectoryMarker reports whether the record stands for a directory rather
// than file content. Zero-byte files are still real files.
func (r UploadFileRecord) IsDirectoryMarker() bool {
	return r.Payload.Kind == KindDirectory
}

func (r UploadFileRecord) DisplayName() string {
	return r.PathPrefix + r.Payload.Name
}

// Size is the content size, 0 for markers.
func (r UploadFileRecord) Size() int64 {
	if r.Payload.Content == nil {
		return 0
	}
	return r.Payload.Content.Size()
}

// ChildPrefix is the prefix under which children of a directory record live.
func ChildPrefix(prefix, dirName string) string {
	return prefix + dirName + Separator
}

// BytesContent is an in-memory Content.
type BytesContent struct {
	FileName string
	Data     []byte
}

func (b BytesContent) Name() string { return b.FileName }
func (b BytesContent) Size() int64  { return int64(len(b.Data)) }

func (b BytesContent) Open() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(b.Data)), nil
}
