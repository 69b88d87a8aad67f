//go:build !unix

package fsutils

import "os"

// No portable block count outside unix, DiskUsage falls back to the apparent size.
func allocatedBlocks(_ os.FileInfo) (uint64, bool) {
	return 0, false
}
