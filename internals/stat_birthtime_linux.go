//go:build linux

package internals

import "syscall"

// birthtimeNs falls back to the change time on Linux: syscall.Stat_t carries
// no birth time field there (statx's STATX_BTIME is not exposed through the
// stdlib syscall package), so ctime is the closest available proxy.
func birthtimeNs(st *syscall.Stat_t) int64 {
	return st.Ctim.Sec*1e9 + st.Ctim.Nsec
}
