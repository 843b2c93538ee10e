//go:build !unix

package internals

import "io/fs"

// platformStat has no device/inode/accessed/created identity to offer on
// platforms without a Unix-style stat struct; callers fall back to treating
// every file as its own volume identity (device 0, inode 0) and use the
// portable modified time for every timestamp field.
func platformStat(info fs.FileInfo) (device, inode uint64, accessedNs, createdNs int64, ok bool) {
	return 0, 0, 0, 0, false
}
