package util

import "os"

// EnsureDir creates path and any missing parents with owner-only write
// access.
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0750)
}
