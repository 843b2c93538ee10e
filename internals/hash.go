package internals

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// FileHasher is the interface every hash algorithm registered with FileSweep
// must implement. It covers both whole-file digests (ReadFile) and
// incremental digests (ReadBytes, which HashFile feeds chunk by chunk to
// build the full content hash).
type FileHasher interface {
	// ReadFile updates the hash state with the content of an entire file
	ReadFile(filepath string) error
	// ReadBytes updates the hash state with the given bytes
	ReadBytes(data []byte) error
	// Reset resets the hash state to its initial, freshly-constructed state
	Reset()
	// Digest returns the raw digest resulting from the current hash state
	Digest() []byte
	// HexDigest returns Digest() encoded as a hexadecimal string
	HexDigest() string
	// Name returns the algorithm's canonical name, as used in configuration
	// files and on the command line
	Name() string
}

// HashAlgo is an index into the table of all registered hash algorithms.
type HashAlgo uint16

// HashAlgos is a namespace for operations over the set of registered
// hash algorithms (default selection, name lookup, enumeration).
type HashAlgos struct{}

const (
	// HashCRC64 → Cyclic redundancy check, 64 bits output
	HashCRC64 HashAlgo = iota
	// HashCRC32 → Cyclic redundancy check, 32 bits output
	HashCRC32
	// HashFNV1_32 → Fowler–Noll–Vo hash function, 32 bits output
	HashFNV1_32
	// HashFNV1_64 → Fowler–Noll–Vo hash function, 64 bits output
	HashFNV1_64
	// HashFNV1_128 → Fowler–Noll–Vo hash function, 128 bits output
	HashFNV1_128
	// HashFNV1A32 → Fowler–Noll–Vo 1a hash function, 32 bits output
	HashFNV1A32
	// HashFNV1A64 → Fowler–Noll–Vo 1a hash function, 64 bits output
	HashFNV1A64
	// HashFNV1A128 → Fowler–Noll–Vo 1a hash function, 128 bits output
	HashFNV1A128
	// HashADLER32 → Mark Adler's checksum algorithm, 32 bits output
	HashADLER32
	// HashMD5 → Message-digest algorithm, 128 bits output. Kept only for
	// compatibility with indexes built by older releases; new indexes
	// should prefer HashSHA256.
	HashMD5
	// HashSHA1 → hash function, 160 bits output
	HashSHA1
	// HashSHA256 → cryptographic hash function, 256 bits output. The
	// collision-resistant default for new snapshots.
	HashSHA256
	// HashSHA512 → cryptographic hash function, 512 bits output
	HashSHA512
	// HashSHA3_512 → cryptographic hash function, 512 bits output
	HashSHA3_512
	// HashSHAKE256_64 → cryptographic hash function, 64 bytes output
	HashSHAKE256_64
	// HashSHAKE256_128 → cryptographic hash function, 128 bytes output
	HashSHAKE256_128
	// HashXXHash → fast non-cryptographic hash, 64 bits output
	HashXXHash
	// HashPy → legacy debug rolling hash, kept for compatibility with
	// indexes produced by the original Python implementation
	HashPy
)

// CountHashAlgos returns the total number of registered hash algorithms
const CountHashAlgos = 18

// Algorithm returns a freshly constructed FileHasher for this HashAlgo.
func (h HashAlgo) Algorithm() FileHasher {
	switch h {
	case HashCRC64:
		return NewCRC64()
	case HashCRC32:
		return NewCRC32()
	case HashFNV1_32:
		return NewFNV1_32()
	case HashFNV1_64:
		return NewFNV1_64()
	case HashFNV1_128:
		return NewFNV1_128()
	case HashFNV1A32:
		return NewFNV1a_32()
	case HashFNV1A64:
		return NewFNV1a_64()
	case HashFNV1A128:
		return NewFNV1a_128()
	case HashADLER32:
		return NewAdler32()
	case HashMD5:
		return NewMD5()
	case HashSHA1:
		return NewSHA1()
	case HashSHA256:
		return NewSHA256()
	case HashSHA512:
		return NewSHA512()
	case HashSHA3_512:
		return NewSHA3_512()
	case HashSHAKE256_64:
		return NewSHAKE256_64()
	case HashSHAKE256_128:
		return NewSHAKE256_128()
	case HashXXHash:
		return NewXXHash()
	case HashPy:
		return NewPyHash()
	}
	return HashAlgos{}.Default().Algorithm()
}

// Default returns the default hash algorithm used for newly created
// snapshots, unless a configuration or CLI flag overrides it.
func (h HashAlgos) Default() HashAlgo {
	return HashSHA256
}

// FromString returns the HashAlgo matching the given algorithm name.
// Matching is case-insensitive and trims surrounding whitespace; "python"
// is accepted as an alias of "py".
func (h HashAlgos) FromString(name string) (HashAlgo, error) {
	name = strings.TrimSpace(strings.ToLower(name))
	if name == "python" {
		name = "py"
	}
	for i := 0; i < CountHashAlgos; i++ {
		a := HashAlgo(i)
		if a.Algorithm().Name() == name {
			return a, nil
		}
	}
	return h.Default(), fmt.Errorf("unsupported hash algorithm: %s", name)
}

// Names returns the list of names of every supported hash algorithm.
func (h HashAlgos) Names() []string {
	list := make([]string, CountHashAlgos)
	for i := 0; i < CountHashAlgos; i++ {
		list[i] = HashAlgo(i).Algorithm().Name()
	}
	return list
}

// Hash represents a raw digest value.
type Hash []byte

// Digest returns the hexadecimal nibble representation of a hash value.
func (h Hash) Digest() string {
	return hex.EncodeToString(h)
}

// XOR updates this hash value by xoring it with another hash value of the
// same length. Bytes beyond the shorter of the two lengths are left as is.
func (h Hash) XOR(other Hash) {
	for i := 0; i < len(h) && i < len(other); i++ {
		h[i] ^= other[i]
	}
}
