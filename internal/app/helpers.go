package app

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/blackwell-systems/okreads/internal/model"
	"github.com/blackwell-systems/okreads/internal/store"
)

// withReadingList loads the reading list in a fresh session and runs fn.
// When fn succeeds, the resulting list is saved as the offline snapshot.
func withReadingList(ctx context.Context, errOut io.Writer, fn func(s *session, items []model.ReadingListItem) error) error {
	s := newSession(client, nil, cfg.SnackBar.Duration, log)
	items, err := s.load(ctx)
	if err != nil {
		_ = s.stop()
		return err
	}

	fnErr := fn(s, items)
	if err := s.stop(); err != nil {
		log.Warn("stopping effects", "error", err)
	}
	if fnErr != nil {
		return fnErr
	}

	if err := cacheMgr.SaveReadingList(store.ReadingList(s.store.State())); err != nil {
		warn(errOut, "Could not update offline snapshot: %v", err)
	}
	return nil
}

// findItem returns the reading list entry for bookID or a not-found error.
func findItem(items []model.ReadingListItem, bookID string) (model.ReadingListItem, error) {
	it := model.ByBookID(items, bookID)
	if it == nil {
		return model.ReadingListItem{}, fmt.Errorf("%q is not on your reading list", bookID)
	}
	return *it, nil
}

func printReadingList(w io.Writer, items []model.ReadingListItem) {
	if len(items) == 0 {
		fmt.Fprintln(w, "Your reading list is empty.")
		return
	}

	unread := 0
	for _, it := range items {
		if !it.Finished {
			unread++
		}
	}
	header(w, "Reading list: %d book(s), %d unread", len(items), unread)

	for _, it := range items {
		mark := " "
		if it.Finished {
			mark = color.GreenString("✓")
		}
		fmt.Fprintf(w, "  %s %s%s %s\n", mark, it.Title, byline(it.Authors), color.HiBlackString("[%s]", it.BookID))
		if it.Finished && it.FinishedDate != nil {
			fmt.Fprintf(w, "      finished %s\n", it.FinishedDate.Local().Format("Jan 2, 2006"))
		}
	}
}

func printSearchResults(w io.Writer, term string, books []model.BookView) {
	if len(books) == 0 {
		fmt.Fprintf(w, "No books found for %q.\n", term)
		return
	}

	header(w, "%d result(s) for %q", len(books), term)
	for _, b := range books {
		mark := " "
		if b.IsAdded {
			mark = color.GreenString("•")
		}
		line := fmt.Sprintf("  %s %s%s %s", mark, b.Title, byline(b.Authors), color.HiBlackString("[%s]", b.ID))
		if b.PublishedDate != "" {
			line += " " + color.HiBlackString("(%s)", strings.SplitN(b.PublishedDate, "-", 2)[0])
		}
		fmt.Fprintln(w, line)
	}
}

func byline(authors []string) string {
	if len(authors) == 0 {
		return ""
	}
	return " by " + model.AuthorLine(authors)
}
