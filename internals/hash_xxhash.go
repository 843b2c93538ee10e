package internals

import (
	"encoding/binary"
	"encoding/hex"
	"io"
	"os"

	"github.com/cespare/xxhash/v2"
)

// XXHash implements the fast, non-cryptographic hash function invented by
// Yann Collet. It trades collision resistance for throughput and is meant
// as a quicker alternative to fnv-1a-128 when content equality, not
// adversarial resistance, is the only concern.
type XXHash struct {
	h *xxhash.Digest
}

// NewXXHash returns a freshly initialized XXHash instance.
func NewXXHash() *XXHash {
	c := new(XXHash)
	c.h = xxhash.New()
	return c
}

// ReadFile updates the hash state with the content of an entire file.
func (c *XXHash) ReadFile(filepath string) error {
	fd, err := os.Open(filepath)
	if err != nil {
		return err
	}
	defer fd.Close()

	_, err = io.Copy(c.h, fd)
	return err
}

// ReadBytes updates the hash state with individual bytes.
func (c *XXHash) ReadBytes(data []byte) error {
	_, err := c.h.Write(data)
	return err
}

// Reset resets the hash state to its initial state.
func (c *XXHash) Reset() {
	c.h.Reset()
}

// Digest returns the digest resulting from the hash state.
func (c *XXHash) Digest() []byte {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, c.h.Sum64())
	return buf
}

// HexDigest returns the hash state digest encoded as a hexadecimal string.
func (c *XXHash) HexDigest() string {
	return hex.EncodeToString(c.Digest())
}

// Name returns the hash algorithm's name.
func (c *XXHash) Name() string {
	return "xxhash"
}
