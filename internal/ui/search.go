package ui

import (
	"github.com/gomission/gomission/internal/action"
	"github.com/gomission/gomission/internal/state"
	"github.com/gomission/gomission/internal/transmission"
	uistate "github.com/gomission/gomission/internal/ui/state"
)

// SearchTab filters the torrent list by a fuzzy or glob query. Confirm on a
// match jumps to it in the torrents tab.
type SearchTab struct {
	store *state.Store
	send  Sender
	query *uistate.Input
	table *uistate.Table

	focused  bool
	torrents []transmission.Torrent
	matches  []transmission.Torrent
	gen      uint64
	loaded   bool
	pageSize int
}

func NewSearchTab(store *state.Store, send Sender) *SearchTab {
	return &SearchTab{
		store:    store,
		send:     send,
		query:    uistate.NewInput(""),
		table:    uistate.NewTable(),
		pageSize: defaultHeight - 4,
	}
}

// HasPopup reports a focused query line, which takes Quit to unfocus.
func (s *SearchTab) HasPopup() bool {
	return s.focused
}

// Query returns the current search text.
func (s *SearchTab) Query() string {
	return s.query.Value()
}

// Matches returns the torrents matching the query, best first.
func (s *SearchTab) Matches() []transmission.Torrent {
	s.sync()
	return s.matches
}

func (s *SearchTab) sync() {
	gen := s.store.Torrents.Generation()
	if s.loaded && gen == s.gen {
		return
	}
	torrents, ok := s.store.Torrents.Load()
	if !ok {
		return
	}
	s.torrents, s.gen, s.loaded = torrents, gen, true
	s.recompute()
}

func (s *SearchTab) recompute() {
	labels := make([]string, len(s.torrents))
	for i, t := range s.torrents {
		labels[i] = t.Name
	}
	idx := uistate.Match(labels, s.query.Value())
	s.matches = make([]transmission.Torrent, len(idx))
	for i, j := range idx {
		s.matches[i] = s.torrents[j]
	}
	s.table.SetLength(len(s.matches))
}

func (s *SearchTab) HandleAction(a action.Action) action.Action {
	s.sync()
	if s.focused {
		return s.handleFocused(a)
	}
	switch a.(type) {
	case action.Search:
		s.focused = true
		return action.SwitchToInputMode{}
	case action.Up, action.Down, action.Home, action.End, action.PageUp, action.PageDown:
		if moveTable(s.table, a, s.pageSize) {
			return action.Render{}
		}
		return nil
	case action.Confirm:
		s.focus()
		return nil
	}
	return a
}

func (s *SearchTab) handleFocused(a action.Action) action.Action {
	switch a := a.(type) {
	case action.Input:
		if s.query.Apply(a.Request) {
			s.recompute()
			s.table.Select(0)
			return action.Render{}
		}
		return nil
	case action.Up, action.Down:
		if moveTable(s.table, a, s.pageSize) {
			return action.Render{}
		}
		return nil
	case action.Confirm:
		s.focused = false
		s.focus()
		return action.SwitchToNormalMode{}
	case action.Quit:
		s.focused = false
		return action.SwitchToNormalMode{}
	}
	return nil
}

// focus asks the main window to show the selected match in the torrents tab.
func (s *SearchTab) focus() {
	i, ok := s.table.Selected()
	if !ok {
		return
	}
	s.send(action.FocusItem{ID: s.matches[i].ID})
}

func (s *SearchTab) Render(width, height int) string {
	s.sync()
	line := renderInputLine("/", s.query, "search torrents", width)
	if !s.focused {
		line = fitLine(styles.Prompt.Render("/")+styles.InputText.Render(s.query.Value()), width)
	}
	bodyHeight := height - 1
	if bodyHeight < 1 {
		return line
	}
	var body string
	switch {
	case !s.loaded:
		body = placeholder("Waiting for the daemon…", width)
	case len(s.matches) == 0:
		body = placeholder("No matches.", width)
	default:
		s.pageSize = bodyHeight - 1
		body = renderTorrentTable(s.matches, s.table, width, bodyHeight)
	}
	return line + "\n" + body
}
