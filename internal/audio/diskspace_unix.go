//go:build !windows

package audio

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// checkDiskSpace verifies the filesystem holding dir can take n more
// bytes. A failed statfs is ignored rather than blocking the download.
func checkDiskSpace(dir string, n int64) error {
	if n <= 0 {
		return nil
	}
	var stat unix.Statfs_t
	if err := unix.Statfs(dir, &stat); err != nil {
		return nil
	}
	avail := int64(stat.Bavail) * int64(stat.Bsize)
	if avail < n {
		return fmt.Errorf("insufficient disk space: need %d bytes, have %d", n, avail)
	}
	return nil
}
