package hash

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"io"

	"github.com/cespare/xxhash/v2"

	"upload-collector/internal/record"
)

const bufferSize = 32 * 1024 // 32KB buffer for streaming

// HashReader computes the hex xxHash of everything r yields.
func HashReader(r io.Reader) (string, error) {
	h := xxhash.New()
	buf := make([]byte, bufferSize)

	if _, err := io.CopyBuffer(h, r, buf); err != nil {
		return "", fmt.Errorf("failed to read content: %w", err)
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}

// HashContent opens c and hashes its full body.
func HashContent(c record.Content) (string, error) {
	if c == nil {
		return "", fmt.Errorf("no content to hash")
	}

	rc, err := c.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", c.Name(), err)
	}
	defer rc.Close()

	return HashReader(rc)
}

// XXHashFunc is the go-merkletree hash function: big-endian xxHash64 of data.
func XXHashFunc(data []byte) ([]byte, error) {
	sum := xxhash.Sum64(data)

	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, sum)
	return buf, nil
}
