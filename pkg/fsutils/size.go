package fsutils

import (
	"os"

	"github.com/dustin/go-humanize"
)

// DeviceBlockSize is the unit st_blocks is counted in. It is not the IO block
// size reported by st_blksize, which is usually 4096.
const DeviceBlockSize = 512

// DiskUsage returns the number of bytes the object occupies on disk, that is
// its allocated block count times DeviceBlockSize. For FileInfo values that
// carry no platform stat data the apparent size is used instead.
func DiskUsage(info os.FileInfo) uint64 {
	if info == nil {
		return 0
	}
	if blocks, ok := allocatedBlocks(info); ok {
		return blocks * DeviceBlockSize
	}
	return ApparentSize(info)
}

// ApparentSize returns the logical length of the object in bytes.
func ApparentSize(info os.FileInfo) uint64 {
	if info == nil || info.Size() < 0 {
		return 0
	}
	return uint64(info.Size())
}

// GetSizeShortText returns a human readable size string using IEC units,
// e.g. "0 B", "1.0 KiB", "3.4 GiB".
func GetSizeShortText(size uint64) string {
	return humanize.IBytes(size)
}
