package internals

import (
	"io"
	"os"
)

const defaultChunkSize = 8192

// ReadFileInfo lstats path and builds an IncompleteFileInfo from it. The
// content fingerprints are left unset; callers promote the result with
// Complete once a hash has been computed.
func ReadFileInfo(path string) (IncompleteFileInfo, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return IncompleteFileInfo{}, err
	}
	device, inode, accessedNs, createdNs, ok := platformStat(info)
	modifiedNs := info.ModTime().UnixNano()
	if !ok {
		accessedNs = modifiedNs
		createdNs = modifiedNs
	}
	return IncompleteFileInfo{
		Path:     path,
		Size:     info.Size(),
		Modified: modifiedNs,
		Accessed: accessedNs,
		Created:  createdNs,
		Device:   device,
		Inode:    inode,
	}, nil
}

// HashFile computes the lowercase hex full-content digest of the file at
// path using the given algorithm, reading in chunks of chunkSize (0 means
// defaultChunkSize) and stopping early once maxRead bytes have been read
// (0 means unbounded).
func HashFile(algo HashAlgo, path string, chunkSize, maxRead int64) (string, error) {
	if chunkSize <= 0 {
		chunkSize = defaultChunkSize
	}

	fd, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer fd.Close()

	h := algo.Algorithm()
	buf := make([]byte, chunkSize)
	var read int64
	for {
		n, err := fd.Read(buf)
		if n > 0 {
			if maxRead > 0 && read+int64(n) > maxRead {
				n = int(maxRead - read)
			}
			if rerr := h.ReadBytes(buf[:n]); rerr != nil {
				return "", rerr
			}
			read += int64(n)
			if maxRead > 0 && read >= maxRead {
				break
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
	}
	return h.HexDigest(), nil
}

// rotateLeft8 rotates an 8-bit value x left by n bits (0 <= n < 8), with
// n == 0 returning x unchanged.
func rotateLeft8(x byte, n int) byte {
	if n == 0 {
		return x
	}
	return ((x << uint(n)) | (x >> uint(8-n))) & 0xFF
}

// First16B computes the short prefix fingerprint: the first 64 bytes of
// the file, split into four zero-padded 16-byte chunks, XOR-combined byte
// by byte with a position-dependent rotation. Deterministic, endian-
// independent, and dependent only on the file's initial 64 bytes.
func First16B(path string) (string, error) {
	fd, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer fd.Close()

	var chunks [4][16]byte
	for c := 0; c < 4; c++ {
		io.ReadFull(fd, chunks[c][:]) //nolint:errcheck // short/empty reads leave zero padding, which is correct
	}

	var out [16]byte
	for i := 0; i < 16; i++ {
		var val byte
		for j := 0; j < 4; j++ {
			n := (i + j) % 8
			val ^= rotateLeft8(chunks[j][i], n)
		}
		out[i] = val
	}

	const hexdigits = "0123456789abcdef"
	hex := make([]byte, 32)
	for i, b := range out {
		hex[2*i] = hexdigits[b>>4]
		hex[2*i+1] = hexdigits[b&0x0F]
	}
	return string(hex), nil
}
