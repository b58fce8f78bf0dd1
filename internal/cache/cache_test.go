package cache_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/blackwell-systems/okreads/internal/cache"
)

func TestPath_Layout(t *testing.T) {
	m := cache.New("/base")
	got := m.Path(cache.ReadingListFile)
	want := filepath.Join("/base", "reading-list.yml")
	if got != want {
		t.Errorf("Path() = %q, want %q", got, want)
	}
}

func TestExists_False(t *testing.T) {
	m := cache.New("/no/such/base")
	if m.Exists(cache.ReadingListFile) {
		t.Error("Exists() should be false for missing file")
	}
}

func TestRemove(t *testing.T) {
	dir := t.TempDir()
	m := cache.New(dir)

	if err := os.WriteFile(m.Path("x.yml"), []byte("a: 1\n"), 0600); err != nil {
		t.Fatal(err)
	}
	if err := m.Remove("x.yml"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if m.Exists("x.yml") {
		t.Error("file still exists after Remove")
	}
	// Removing a missing file is not an error.
	if err := m.Remove("x.yml"); err != nil {
		t.Errorf("Remove missing: %v", err)
	}
}
