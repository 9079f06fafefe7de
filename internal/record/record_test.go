package record

import (
	"io"
	"testing"
)

func TestNewFile_DisplayName(t *testing.T) {
	r := NewFile("a/c/", BytesContent{FileName: "d.txt", Data: []byte("hello")})

	if r.IsDirectoryMarker() {
		t.Error("File record should not be a directory marker")
	}
	if got := r.DisplayName(); got != "a/c/d.txt" {
		t.Errorf("Expected display name %q, got %q", "a/c/d.txt", got)
	}
	if r.Size() != 5 {
		t.Errorf("Expected size 5, got %d", r.Size())
	}
}

func TestNewDirectoryMarker(t *testing.T) {
	r := NewDirectoryMarker("", "a")

	if !r.IsDirectoryMarker() {
		t.Error("Marker record should be a directory marker")
	}
	if r.DisplayName() != "a" {
		t.Errorf("Expected display name %q, got %q", "a", r.DisplayName())
	}
	if r.Size() != 0 {
		t.Errorf("Marker size should be 0, got %d", r.Size())
	}
}

func TestEmptyFileIsNotMarker(t *testing.T) {
	r := NewFile("", BytesContent{FileName: "empty.txt"})

	if r.IsDirectoryMarker() {
		t.Error("Zero-byte file must stay a real file")
	}
}

func TestChildPrefix(t *testing.T) {
	if got := ChildPrefix("", "a"); got != "a/" {
		t.Errorf("Expected %q, got %q", "a/", got)
	}
	if got := ChildPrefix("a/", "c"); got != "a/c/" {
		t.Errorf("Expected %q, got %q", "a/c/", got)
	}
}

func TestBytesContent_Open(t *testing.T) {
	c := BytesContent{FileName: "x.txt", Data: []byte("payload")}

	rc, err := c.Open()
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if string(data) != "payload" {
		t.Errorf("Expected %q, got %q", "payload", string(data))
	}
}

func TestKindString(t *testing.T) {
	if KindFile.String() != "file" || KindDirectory.String() != "directory" {
		t.Error("Unexpected kind names")
	}
}
