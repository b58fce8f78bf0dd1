package cache

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/blackwell-systems/okreads/internal/model"
)

func TestSnapshot_RoundTrip(t *testing.T) {
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	now = func() time.Time { return fixed }
	defer func() { now = time.Now }()

	m := New(filepath.Join(t.TempDir(), "nested", "cache"))
	finished := fixed.Add(-time.Hour)
	items := []model.ReadingListItem{
		{BookID: "b1", Title: "One", Authors: []string{"A"}},
		{BookID: "b2", Title: "Two", Finished: true, FinishedDate: &finished},
	}
	if err := m.SaveReadingList(items); err != nil {
		t.Fatalf("SaveReadingList: %v", err)
	}
	if !m.Exists(ReadingListFile) {
		t.Fatal("snapshot file missing after save")
	}
	if _, err := os.Stat(m.Path(ReadingListFile) + ".tmp"); !os.IsNotExist(err) {
		t.Error("temp file left behind")
	}

	s, err := m.LoadReadingList()
	if err != nil {
		t.Fatalf("LoadReadingList: %v", err)
	}
	if !s.SavedAt.Equal(fixed) {
		t.Errorf("SavedAt = %v, want %v", s.SavedAt, fixed)
	}
	if len(s.Items) != 2 || s.Items[1].BookID != "b2" || !s.Items[1].Finished {
		t.Errorf("Items = %+v", s.Items)
	}
	if s.Items[1].FinishedDate == nil || !s.Items[1].FinishedDate.Equal(finished) {
		t.Errorf("FinishedDate = %v, want %v", s.Items[1].FinishedDate, finished)
	}
}

func TestLoadReadingList_Missing(t *testing.T) {
	m := New(t.TempDir())
	s, err := m.LoadReadingList()
	if err != nil {
		t.Fatalf("LoadReadingList: %v", err)
	}
	if len(s.Items) != 0 || !s.SavedAt.IsZero() {
		t.Errorf("missing snapshot = %+v", s)
	}
}

func TestLoadReadingList_Corrupt(t *testing.T) {
	m := New(t.TempDir())
	if err := os.WriteFile(m.Path(ReadingListFile), []byte("items: [unclosed"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := m.LoadReadingList(); err == nil {
		t.Error("expected parse error")
	}
}

func TestRemove_Missing(t *testing.T) {
	m := New(t.TempDir())
	if err := m.Remove(ReadingListFile); err != nil {
		t.Errorf("Remove missing: %v", err)
	}
}
