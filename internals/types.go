package internals

// FileInfo is the canonical record for a known file: its identity on the
// volume, its timestamps, and its content fingerprints.
type FileInfo struct {
	Path      string
	Size      int64
	Modified  int64 // nanoseconds since Unix epoch
	Accessed  int64
	Created   int64
	Device    uint64
	Inode     uint64
	FileHash  string // lowercase hex, full content digest
	First16B  string // 32 lowercase hex chars
}

// IncompleteFileInfo is a FileInfo without its two fingerprint fields. It is
// produced by a metadata stat and promoted to a FileInfo once the
// fingerprints have been computed.
type IncompleteFileInfo struct {
	Path     string
	Size     int64
	Modified int64
	Accessed int64
	Created  int64
	Device   uint64
	Inode    uint64
}

// Complete promotes an IncompleteFileInfo to a full FileInfo once the
// content hash and short fingerprint are known.
func (i IncompleteFileInfo) Complete(fileHash, first16b string) FileInfo {
	return FileInfo{
		Path:     i.Path,
		Size:     i.Size,
		Modified: i.Modified,
		Accessed: i.Accessed,
		Created:  i.Created,
		Device:   i.Device,
		Inode:    i.Inode,
		FileHash: fileHash,
		First16B: first16b,
	}
}

// DeviceInode is the (device, inode) pair that uniquely identifies a file
// on its volume, independent of its path.
type DeviceInode struct {
	Device uint64
	Inode  uint64
}

// Decision is the outcome the decision engine produces for one file: the
// directory config that governed it, its position in the index, its
// current metadata, the action to take, and (depending on the action) a
// link/trash/delete target path or a retime timestamp.
type Decision struct {
	DirConfig  *DirectoryConfig
	FileIndex  int
	FileInfo   FileInfo
	Action     Action
	Target     string // winner path, when Action needs one
	Time       int64  // ns timestamp to write, when Action == RETIME
	HasTarget  bool
	HasTime    bool
}
