//go:build unix

package internals

import (
	"io/fs"
	"syscall"
)

// platformStat extracts the device/inode identity and the accessed/created
// timestamps that os.FileInfo does not expose portably. Created is birth
// time where the platform's Stat_t carries one (BSD/Darwin Birthtimespec);
// elsewhere it falls back to the change time, the closest available proxy,
// matching statdb.py's own best-effort fallback for platforms without a
// true birth time.
func platformStat(info fs.FileInfo) (device, inode uint64, accessedNs, createdNs int64, ok bool) {
	st, isStat := info.Sys().(*syscall.Stat_t)
	if !isStat {
		return 0, 0, 0, 0, false
	}
	device = uint64(st.Dev)
	inode = st.Ino
	accessedNs = st.Atim.Sec*1e9 + st.Atim.Nsec
	createdNs = birthtimeNs(st)
	return device, inode, accessedNs, createdNs, true
}
