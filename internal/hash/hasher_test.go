package hash

import (
	"encoding/hex"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/cespare/xxhash/v2"

	"upload-collector/internal/record"
)

func TestHashReader_Small(t *testing.T) {
	content := []byte("Hello, World!")

	hash, err := HashReader(strings.NewReader(string(content)))
	if err != nil {
		t.Fatalf("HashReader failed: %v", err)
	}

	h := xxhash.New()
	h.Write(content)
	expected := hex.EncodeToString(h.Sum(nil))

	if hash != expected {
		t.Errorf("Hash mismatch: expected %s, got %s", expected, hash)
	}
}

func TestHashContent_Large(t *testing.T) {
	// 1MB crosses many buffer boundaries
	size := 1024 * 1024
	data := make([]byte, size)
	for i := range data {
		data[i] = byte(i % 256)
	}

	hash, err := HashContent(record.BytesContent{FileName: "large.bin", Data: data})
	if err != nil {
		t.Fatalf("HashContent failed: %v", err)
	}

	h := xxhash.New()
	h.Write(data)
	expected := hex.EncodeToString(h.Sum(nil))

	if hash != expected {
		t.Errorf("Hash mismatch: expected %s, got %s", expected, hash)
	}
}

func TestHashContent_Empty(t *testing.T) {
	hash, err := HashContent(record.BytesContent{FileName: "empty.txt"})
	if err != nil {
		t.Fatalf("HashContent failed: %v", err)
	}

	if hash == "" {
		t.Error("Hash should not be empty string")
	}
}

func TestHashContent_Nil(t *testing.T) {
	if _, err := HashContent(nil); err == nil {
		t.Error("HashContent should fail for nil content")
	}
}

type brokenContent struct{}

func (brokenContent) Name() string { return "broken" }
func (brokenContent) Size() int64  { return 1 }
func (brokenContent) Open() (io.ReadCloser, error) {
	return nil, errors.New("permission denied")
}

func TestHashContent_OpenError(t *testing.T) {
	if _, err := HashContent(brokenContent{}); err == nil {
		t.Error("HashContent should fail when content cannot be opened")
	}
}

func TestXXHashFunc(t *testing.T) {
	data := []byte("test data")

	hashBytes, err := XXHashFunc(data)
	if err != nil {
		t.Fatalf("XXHashFunc failed: %v", err)
	}

	if len(hashBytes) != 8 {
		t.Errorf("Expected 8 bytes, got %d", len(hashBytes))
	}

	hashBytes2, err := XXHashFunc(data)
	if err != nil {
		t.Fatalf("XXHashFunc failed on second call: %v", err)
	}

	if hex.EncodeToString(hashBytes) != hex.EncodeToString(hashBytes2) {
		t.Error("XXHashFunc should be deterministic")
	}
}

func TestXXHashFunc_EmptyData(t *testing.T) {
	hashBytes, err := XXHashFunc([]byte{})
	if err != nil {
		t.Fatalf("XXHashFunc failed: %v", err)
	}

	if len(hashBytes) != 8 {
		t.Errorf("Expected 8 bytes, got %d", len(hashBytes))
	}
}
