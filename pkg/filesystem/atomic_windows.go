//go:build windows

package filesystem

import "os"

// writeFileAtomic falls back to a plain write on Windows, where atomic
// rename over an existing file is not reliably available.
func writeFileAtomic(filename string, data []byte, perm os.FileMode) error {
	return os.WriteFile(filename, data, perm)
}
