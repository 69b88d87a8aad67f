//go:build unix

package fsutils

import (
	"os"
	"syscall"
)

func allocatedBlocks(info os.FileInfo) (uint64, bool) {
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok || st == nil {
		return 0, false
	}
	if st.Blocks < 0 {
		return 0, true
	}
	return uint64(st.Blocks), true
}
