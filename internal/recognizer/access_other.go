//go:build !unix

package recognizer

import "os"

const (
	accessRead uint32 = 1 << iota
	accessExec
)

// canAccess approximates access(2) by trying the operation. Directories are
// listed, files are opened for reading.
func canAccess(path string, mode uint32) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	if info.IsDir() {
		_, err := os.ReadDir(path)
		return err == nil
	}
	if mode&accessRead == 0 {
		return true
	}
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	f.Close()
	return true
}
