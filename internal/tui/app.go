package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/blackwell-systems/okreads/internal/action"
	"github.com/blackwell-systems/okreads/internal/snackbar"
	"github.com/blackwell-systems/okreads/internal/store"
)

// View identifies the active screen.
type View string

const (
	ViewReadingList View = "reading-list"
	ViewSearch      View = "search"
)

// Store is the part of the state container the TUI uses. The TUI only
// reads state and dispatches actions; it never calls the API.
type Store interface {
	Dispatch(action.Action)
	Subscribe() *store.StateSubscription
}

// SnackBar is the rendering side of the snackbar service.
type SnackBar interface {
	Current() (snackbar.Notification, bool)
	Undo() bool
	Changes() <-chan struct{}
}

type stateMsg struct{ state store.State }

type snackBarMsg struct{}

// Model is the root bubbletea model.
type Model struct {
	ctx   context.Context
	store Store
	sub   *store.StateSubscription
	bar   SnackBar
	keys  keyMap

	view   View
	width  int
	height int

	state     store.State
	reading   list.Model
	results   list.Model
	input     textinput.Model
	activeCmd string
	quitting  bool
}

// New creates the root model. It subscribes to st immediately.
func New(ctx context.Context, st Store, bar SnackBar) Model {
	reading := newList("My Reading List", readingDelegate{}, "book", "books")
	results := newList("Search Results", resultDelegate{}, "result", "results")

	input := textinput.New()
	input.Placeholder = "Search for books to add to your reading list"
	input.Prompt = "search › "
	input.CharLimit = 200

	return Model{
		ctx:     ctx,
		store:   st,
		sub:     st.Subscribe(),
		bar:     bar,
		keys:    newKeyMap(),
		view:    ViewReadingList,
		reading: reading,
		results: results,
		input:   input,
	}
}

func newList(title string, delegate list.ItemDelegate, singular, plural string) list.Model {
	l := list.New(nil, delegate, 0, 0)
	l.Title = title
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)
	l.SetStatusBarItemName(singular, plural)
	l.Styles.Title = StyleHeader
	l.Styles.PaginationStyle = StyleHelp
	// q and esc are handled by the root model.
	l.KeyMap.Quit.SetEnabled(false)
	return l
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.waitForState(), m.waitForSnackBar())
}

func (m Model) waitForState() tea.Cmd {
	sub, ctx := m.sub, m.ctx
	return func() tea.Msg {
		s, ok := sub.Next(ctx)
		if !ok {
			return nil
		}
		return stateMsg{state: s}
	}
}

func (m Model) waitForSnackBar() tea.Cmd {
	bar, ctx := m.bar, m.ctx
	return func() tea.Msg {
		select {
		case <-bar.Changes():
			return snackBarMsg{}
		case <-ctx.Done():
			return nil
		}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case stateMsg:
		m.state = msg.state
		readingCmd := m.reading.SetItems(toReadingItems(store.ReadingList(m.state)))
		resultsCmd := m.results.SetItems(toResultItems(store.AllBooks(m.state)))
		return m, tea.Batch(readingCmd, resultsCmd, m.waitForState())

	case snackBarMsg:
		return m, m.waitForSnackBar()

	case ClearActiveCmdMsg:
		m.activeCmd = ""
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case tea.KeyMsg:
		if m.input.Focused() {
			return m.updateInput(msg)
		}
		// Don't handle keys when filtering
		if m.activeList().FilterState() == list.Filtering {
			break
		}
		if next, cmd, handled := m.handleKey(msg); handled {
			return next, cmd
		}
	}

	var cmd tea.Cmd
	if m.view == ViewReadingList {
		m.reading, cmd = m.reading.Update(msg)
	} else {
		m.results, cmd = m.results.Update(msg)
	}
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit, true

	case key.Matches(msg, m.keys.Tab):
		if m.view == ViewReadingList {
			m.view = ViewSearch
		} else {
			m.view = ViewReadingList
		}
		return m, nil, true

	case key.Matches(msg, m.keys.Undo):
		if !m.bar.Undo() {
			return m, nil, true
		}
		m.activeCmd = "u"
		return m, HighlightCmd(), true

	case key.Matches(msg, m.keys.Reload):
		m.store.Dispatch(action.Init{})
		m.activeCmd = "r"
		return m, HighlightCmd(), true

	case key.Matches(msg, m.keys.Search):
		m.view = ViewSearch
		cmd := m.input.Focus()
		return m, cmd, true
	}

	if m.view == ViewReadingList {
		it, ok := m.reading.SelectedItem().(readingItem)
		switch {
		case key.Matches(msg, m.keys.Remove):
			if ok {
				m.store.Dispatch(action.RemoveFromReadingList{Item: it.ReadingListItem, ShowSnackBar: true})
				m.activeCmd = "d"
				return m, HighlightCmd(), true
			}
			return m, nil, true
		case key.Matches(msg, m.keys.Finish):
			if ok && !it.Finished {
				m.store.Dispatch(action.MarkBookAsFinished{Item: it.ReadingListItem})
				m.activeCmd = "f"
				return m, HighlightCmd(), true
			}
			return m, nil, true
		}
		return m, nil, false
	}

	if key.Matches(msg, m.keys.Add) {
		if it, ok := m.results.SelectedItem().(resultItem); ok && !it.IsAdded {
			m.store.Dispatch(action.AddToReadingList{Book: it.Book, ShowSnackBar: true})
			m.activeCmd = "a"
			return m, HighlightCmd(), true
		}
		return m, nil, true
	}
	return m, nil, false
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyCtrlC:
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Submit):
		term := strings.TrimSpace(m.input.Value())
		if term == "" {
			m.store.Dispatch(action.ClearSearch{})
		} else {
			m.store.Dispatch(action.SearchBooks{Term: term})
		}
		m.input.Blur()
		return m, nil
	case key.Matches(msg, m.keys.Cancel):
		m.input.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) activeList() *list.Model {
	if m.view == ViewReadingList {
		return &m.reading
	}
	return &m.results
}

// chrome is the number of lines outside the list: tabs, status,
// snackbar and footer.
const chrome = 4

func (m *Model) resize() {
	h, v := StyleBorder.GetFrameSize()
	height := m.height - v - chrome
	if height < 3 {
		height = 3
	}
	m.reading.SetSize(m.width-h, height)
	m.results.SetSize(m.width-h, height-1)
	m.input.Width = m.width - h - len(m.input.Prompt) - 1
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var body string
	if m.view == ViewReadingList {
		body = m.reading.View()
	} else {
		body = m.input.View() + "\n" + m.results.View()
	}

	content := lipgloss.JoinVertical(lipgloss.Left, m.renderTabs(), m.renderStatus(), body)
	return StyleBorder.Render(content) + "\n" + m.renderSnackBar() + "\n" + RenderFooterBar(m.shortcuts(), m.activeCmd)
}

func (m Model) renderTabs() string {
	reading := fmt.Sprintf("Reading List (%d unread)", store.TotalUnread(m.state))
	search := "Search"
	if m.view == ViewReadingList {
		return StyleTabActive.Render(reading) + StyleTabInactive.Render(search)
	}
	return StyleTabInactive.Render(reading) + StyleTabActive.Render(search)
}

// renderStatus shows loading state and load or search errors. Failed
// add, remove and finish operations are not surfaced here.
func (m Model) renderStatus() string {
	if m.view == ViewReadingList {
		rl := m.state.ReadingList
		switch {
		case rl.Err != nil:
			return StyleError.Render("Could not load reading list: " + rl.Err.Error())
		case !rl.Loaded:
			return StyleHelp.Render("Loading…")
		case len(rl.Items) == 0:
			return StyleHelp.Render("You haven't added any books to your reading list yet.")
		}
		return ""
	}

	b := m.state.Books
	switch {
	case b.Err != nil:
		return StyleError.Render("Search failed: " + b.Err.Error())
	case b.SearchTerm != "" && !b.Loaded:
		return StyleHelp.Render(fmt.Sprintf("Searching for %q…", b.SearchTerm))
	case b.SearchTerm != "" && len(b.Entities) == 0:
		return StyleHelp.Render(fmt.Sprintf("No results for %q.", b.SearchTerm))
	}
	return ""
}

func (m Model) renderSnackBar() string {
	n, ok := m.bar.Current()
	if !ok {
		return ""
	}
	return snackBarStyle(n.Class).Render(n.Message) + " " + StyleHighlight.Render("[u] "+n.Label)
}

func (m Model) shortcuts() []ShortcutEntry {
	common := []ShortcutEntry{
		{Key: "tab", Label: "tab switch"},
		{Key: "s", Label: "s search"},
		{Key: "r", Label: "r reload"},
		{Key: "u", Label: "u undo"},
		{Key: "q", Label: "q quit"},
	}
	if m.view == ViewReadingList {
		return append([]ShortcutEntry{
			{Key: "d", Label: "d remove"},
			{Key: "f", Label: "f finished"},
		}, common...)
	}
	return append([]ShortcutEntry{
		{Key: "enter", Label: "enter search"},
		{Key: "a", Label: "a want to read"},
	}, common...)
}

// Run launches the TUI and blocks until the user quits or ctx is done.
func Run(ctx context.Context, st Store, bar SnackBar) error {
	m := New(ctx, st, bar)
	defer m.sub.Close()

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("running TUI: %w", err)
	}
	return nil
}
