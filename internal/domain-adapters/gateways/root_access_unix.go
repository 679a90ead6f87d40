//go:build unix

package gateways

import (
	"golang.org/x/sys/unix"
)

// checkAccess asks the kernel whether the real user may read (and, for
// directories, search) path
func checkAccess(path string, isDir bool) error {
	mode := uint32(unix.R_OK)
	if isDir {
		mode |= unix.X_OK
	}
	return unix.Access(path, mode)
}
