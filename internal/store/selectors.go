package store

import "github.com/blackwell-systems/okreads/internal/model"

// ReadingList returns the current reading list.
func ReadingList(s State) []model.ReadingListItem {
	return s.ReadingList.Items
}

// AllBooks returns the search results, each marked with whether it is on
// the reading list.
func AllBooks(s State) []model.BookView {
	added := make(map[string]bool, len(s.ReadingList.Items))
	for _, it := range s.ReadingList.Items {
		added[it.BookID] = true
	}
	out := make([]model.BookView, len(s.Books.Entities))
	for i, b := range s.Books.Entities {
		out[i] = model.BookView{Book: b, IsAdded: added[b.ID]}
	}
	return out
}

// TotalUnread counts reading list items not yet finished.
func TotalUnread(s State) int {
	n := 0
	for _, it := range s.ReadingList.Items {
		if !it.Finished {
			n++
		}
	}
	return n
}
