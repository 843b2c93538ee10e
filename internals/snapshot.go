package internals

import (
	"compress/gzip"
	"encoding/json"
	"os"

	"github.com/pkg/errors"
)

// errSnapshotNotFound is returned by loadSnapshot when the configured
// cache path does not exist yet — a fresh index, not a failure.
var errSnapshotNotFound = errors.New("snapshot file not found")

// wireFileInfo is the on-disk shape of a FileInfo record: short field keys,
// matching the original tool's snapshot format so existing caches can
// still be read.
type wireFileInfo struct {
	Path     string `json:"fp"`
	Size     int64  `json:"sz"`
	Modified int64  `json:"mt"`
	Accessed int64  `json:"at"`
	Created  int64  `json:"ct"`
	Inode    uint64 `json:"in"`
	Device   uint64 `json:"dv"`
	FileHash string `json:"fh"`
	First16B string `json:"16"`
}

type wireSnapshot struct {
	Files      []wireFileInfo `json:"files"`
	Collisions [][2]string    `json:"collisions"`
}

type snapshot struct {
	Files      []FileInfo
	Collisions [][2]string
}

func toWire(f FileInfo) wireFileInfo {
	return wireFileInfo{
		Path: f.Path, Size: f.Size, Modified: f.Modified, Accessed: f.Accessed,
		Created: f.Created, Inode: f.Inode, Device: f.Device,
		FileHash: f.FileHash, First16B: f.First16B,
	}
}

func fromWire(w wireFileInfo) FileInfo {
	return FileInfo{
		Path: w.Path, Size: w.Size, Modified: w.Modified, Accessed: w.Accessed,
		Created: w.Created, Inode: w.Inode, Device: w.Device,
		FileHash: w.FileHash, First16B: w.First16B,
	}
}

// loadSnapshot reads and decompresses a gzip+JSON snapshot from path.
func loadSnapshot(path string) (snapshot, error) {
	fd, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return snapshot{}, errSnapshotNotFound
		}
		return snapshot{}, err
	}
	defer fd.Close()

	gz, err := gzip.NewReader(fd)
	if err != nil {
		return snapshot{}, errors.Wrap(err, "opening gzip snapshot")
	}
	defer gz.Close()

	var wire wireSnapshot
	if err := json.NewDecoder(gz).Decode(&wire); err != nil {
		return snapshot{}, errors.Wrap(err, "decoding snapshot JSON")
	}

	out := snapshot{
		Files:      make([]FileInfo, 0, len(wire.Files)),
		Collisions: wire.Collisions,
	}
	for _, w := range wire.Files {
		out.Files = append(out.Files, fromWire(w))
	}
	return out, nil
}

// saveSnapshot writes an atomic gzip+JSON snapshot to path: it is first
// written to a temporary sibling file, then renamed into place, so a crash
// mid-write never leaves a truncated snapshot behind.
func saveSnapshot(path string, files []FileInfo, collisions [][2]string) error {
	wire := wireSnapshot{
		Files:      make([]wireFileInfo, 0, len(files)),
		Collisions: collisions,
	}
	for _, f := range files {
		wire.Files = append(wire.Files, toWire(f))
	}

	tmp := path + ".tmp"
	fd, err := os.Create(tmp)
	if err != nil {
		return err
	}

	gz := gzip.NewWriter(fd)
	enc := json.NewEncoder(gz)
	if err := enc.Encode(&wire); err != nil {
		gz.Close()
		fd.Close()
		os.Remove(tmp)
		return errors.Wrap(err, "encoding snapshot JSON")
	}
	if err := gz.Close(); err != nil {
		fd.Close()
		os.Remove(tmp)
		return errors.Wrap(err, "closing gzip writer")
	}
	if err := fd.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}
