//go:build linux

package inventory

import (
	"io/fs"
	"syscall"
	"time"
)

// createdTime approximates creation time with the inode change time, the
// closest stat field Linux exposes.
func createdTime(info fs.FileInfo) time.Time {
	if st, ok := info.Sys().(*syscall.Stat_t); ok {
		return time.Unix(st.Ctim.Sec, st.Ctim.Nsec)
	}
	return info.ModTime()
}
