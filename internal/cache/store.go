package cache

import (
	"fmt"
	"os"
)

// write stores data under name, replacing any previous file atomically.
func (m *Manager) write(name string, data []byte) error {
	if err := m.EnsureDir(); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}

	destPath := m.Path(name)
	tmpPath := destPath + ".tmp"

	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("writing to cache: %w", err)
	}
	if err := os.Rename(tmpPath, destPath); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	return nil
}
