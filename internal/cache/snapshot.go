package cache

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/blackwell-systems/okreads/internal/model"
)

// ReadingListFile is the snapshot file name inside the cache dir.
const ReadingListFile = "reading-list.yml"

// Snapshot is the last reading list the backend confirmed.
type Snapshot struct {
	SavedAt time.Time               `yaml:"saved_at"`
	Items   []model.ReadingListItem `yaml:"items"`
}

// now is swapped in tests.
var now = time.Now

// SaveReadingList writes items as the current snapshot.
func (m *Manager) SaveReadingList(items []model.ReadingListItem) error {
	if items == nil {
		items = []model.ReadingListItem{}
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(Snapshot{SavedAt: now().UTC(), Items: items}); err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	return m.write(ReadingListFile, buf.Bytes())
}

// LoadReadingList reads the snapshot. A missing file yields an empty
// snapshot with a zero SavedAt.
func (m *Manager) LoadReadingList() (*Snapshot, error) {
	data, err := os.ReadFile(m.Path(ReadingListFile))
	if err != nil {
		if os.IsNotExist(err) {
			return &Snapshot{Items: []model.ReadingListItem{}}, nil
		}
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}
	var s Snapshot
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing snapshot YAML: %w", err)
	}
	if s.Items == nil {
		s.Items = []model.ReadingListItem{}
	}
	return &s, nil
}
