package model

import "strings"

// Upsert adds an item or replaces an existing one with the same BookID.
// The input slice is never modified.
func Upsert(items []ReadingListItem, it ReadingListItem) []ReadingListItem {
	out := make([]ReadingListItem, 0, len(items)+1)
	replaced := false
	for _, existing := range items {
		if existing.BookID == it.BookID {
			out = append(out, it)
			replaced = true
			continue
		}
		out = append(out, existing)
	}
	if !replaced {
		out = append(out, it)
	}
	return out
}

// Remove drops the item with the given BookID. Returns the new list and
// whether the item was present.
func Remove(items []ReadingListItem, bookID string) ([]ReadingListItem, bool) {
	out := make([]ReadingListItem, 0, len(items))
	found := false
	for _, it := range items {
		if it.BookID == bookID {
			found = true
			continue
		}
		out = append(out, it)
	}
	return out, found
}

// ByBookID returns the item with the given BookID, or nil.
func ByBookID(items []ReadingListItem, bookID string) *ReadingListItem {
	for i := range items {
		if items[i].BookID == bookID {
			return &items[i]
		}
	}
	return nil
}

// AuthorLine joins authors for display.
func AuthorLine(authors []string) string {
	return strings.Join(authors, ", ")
}
