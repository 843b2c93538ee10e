//go:build darwin || freebsd || netbsd || openbsd

package internals

import "syscall"

// birthtimeNs reads the true filesystem birth time, available on BSD-family
// Stat_t structs as Birthtimespec.
func birthtimeNs(st *syscall.Stat_t) int64 {
	return st.Birthtimespec.Sec*1e9 + st.Birthtimespec.Nsec
}
