package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	xansi "github.com/charmbracelet/x/ansi"

	"github.com/blackwell-systems/okreads/internal/model"
)

// readingItem is a reading list entry in the list widget.
type readingItem struct {
	model.ReadingListItem
}

// FilterValue includes title and authors.
func (i readingItem) FilterValue() string {
	return i.Title + " " + strings.Join(i.Authors, " ")
}

// resultItem is a search result in the list widget.
type resultItem struct {
	model.BookView
}

func (i resultItem) FilterValue() string {
	return i.Title + " " + strings.Join(i.Authors, " ")
}

type readingDelegate struct{}

func (d readingDelegate) Height() int                             { return 1 }
func (d readingDelegate) Spacing() int                            { return 0 }
func (d readingDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d readingDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(readingItem)
	if !ok {
		return
	}

	mark := "  "
	if it.Finished {
		mark = StyleFinished.Render("✓ ")
	}
	authors := ""
	if len(it.Authors) > 0 {
		authors = " " + StyleAuthor.Render(model.AuthorLine(it.Authors))
	}
	finished := ""
	if it.Finished && it.FinishedDate != nil {
		finished = " " + StyleHelp.Render("finished "+it.FinishedDate.Local().Format("Jan 2, 2006"))
	}

	renderRow(w, m, index, mark+it.Title, authors+finished)
}

type resultDelegate struct{}

func (d resultDelegate) Height() int                             { return 1 }
func (d resultDelegate) Spacing() int                            { return 0 }
func (d resultDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d resultDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(resultItem)
	if !ok {
		return
	}

	state := "  "
	if it.IsAdded {
		state = StyleFinished.Render("• ")
	}
	extra := ""
	if len(it.Authors) > 0 {
		extra = " " + StyleAuthor.Render(model.AuthorLine(it.Authors))
	}
	if it.PublishedDate != "" {
		extra += " " + StyleHelp.Render(it.PublishedDate)
	}

	renderRow(w, m, index, state+it.Title, extra)
}

// renderRow draws one line, truncated to the list width.
func renderRow(w io.Writer, m list.Model, index int, title, extra string) {
	width := m.Width() - 2
	if width < 10 {
		width = 10
	}

	var line string
	if index == m.Index() {
		line = StyleHighlight.Render("› "+title) + extra
	} else {
		line = "  " + StyleNormal.Render(title) + extra
	}
	_, _ = fmt.Fprint(w, xansi.Truncate(line, width, "…"))
}

func toReadingItems(items []model.ReadingListItem) []list.Item {
	out := make([]list.Item, len(items))
	for i, it := range items {
		out[i] = readingItem{it}
	}
	return out
}

func toResultItems(books []model.BookView) []list.Item {
	out := make([]list.Item, len(books))
	for i, b := range books {
		out[i] = resultItem{b}
	}
	return out
}
