package cache

import (
	"os"
	"path/filepath"

	"github.com/blackwell-systems/okreads/internal/util"
)

// Manager handles the local cache directory.
type Manager struct {
	baseDir string
}

// New creates a cache Manager rooted at baseDir.
func New(baseDir string) *Manager {
	return &Manager{baseDir: baseDir}
}

// Path returns the full cache path for a file name.
// Layout: <baseDir>/<name>
func (m *Manager) Path(name string) string {
	return filepath.Join(m.baseDir, name)
}

// Exists reports whether the cached file exists.
func (m *Manager) Exists(name string) bool {
	_, err := os.Stat(m.Path(name))
	return err == nil
}

// EnsureDir creates the cache directory.
func (m *Manager) EnsureDir() error {
	return util.EnsureDir(m.baseDir)
}

// Remove deletes the cached file if it exists.
func (m *Manager) Remove(name string) error {
	err := os.Remove(m.Path(name))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
