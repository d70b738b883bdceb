//go:build unix

package recognizer

import "golang.org/x/sys/unix"

const (
	accessRead = unix.R_OK
	accessExec = unix.X_OK
)

// canAccess asks the kernel whether the real user may access path in mode.
func canAccess(path string, mode uint32) bool {
	return unix.Access(path, mode) == nil
}
