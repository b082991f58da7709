package ui

import (
	"strings"

	"github.com/gomission/gomission/internal/action"
	"github.com/gomission/gomission/internal/logging/events"
	"github.com/gomission/gomission/internal/state"
)

// tab is a top-level view. HasPopup reports a local popup or focused prompt
// that should receive Quit instead of the session.
type tab interface {
	Component
	HasPopup() bool
}

// MainWindow is the root of the component tree. Global popups sit above the
// tabs and see every action first.
type MainWindow struct {
	tabs     *TabBar
	torrents *TorrentsTab
	search   *SearchTab
	stats    *statsLine
	errPopup *errorPopup
	help     *helpPopup
}

func NewMainWindow(store *state.Store, send Sender) *MainWindow {
	return &MainWindow{
		tabs:     NewTabBar(),
		torrents: NewTorrentsTab(store, send),
		search:   NewSearchTab(store, send),
		stats:    newStatsLine(store),
	}
}

// HasPopup reports whether Quit would close something rather than end the
// session.
func (w *MainWindow) HasPopup() bool {
	if w.errPopup != nil || w.help != nil {
		return true
	}
	return w.active().HasPopup()
}

// ActiveTab reports the tab currently shown.
func (w *MainWindow) ActiveTab() action.Tab {
	return w.tabs.Active()
}

func (w *MainWindow) active() tab {
	if w.tabs.Active() == action.TabSearch {
		return w.search
	}
	return w.torrents
}

func (w *MainWindow) HandleAction(a action.Action) action.Action {
	if e, ok := a.(action.Error); ok {
		events.Action.Error(e.Popup.Title, e.Popup.Message)
		w.errPopup = newErrorPopup(e.Popup)
		tracePopupOpen(w.errPopup)
		return action.Render{}
	}
	if w.errPopup != nil {
		res, _, closed := routePopup(w.errPopup, a)
		if closed {
			tracePopupClose(w.errPopup)
			w.errPopup = nil
		}
		return res
	}
	if _, ok := a.(action.ShowHelp); ok {
		if w.help != nil {
			tracePopupClose(w.help)
			w.help = nil
		} else {
			w.help = newHelpPopup()
			tracePopupOpen(w.help)
		}
		return action.Render{}
	}
	if w.help != nil {
		res, handled, closed := routePopup(w.help, a)
		if closed {
			tracePopupClose(w.help)
			w.help = nil
		}
		if handled {
			return res
		}
	}
	switch a := a.(type) {
	case action.ChangeTab:
		return w.tabs.HandleAction(a)
	case action.FocusItem:
		w.tabs.set(action.TabTorrents)
		return w.torrents.HandleAction(a)
	case action.Search:
		w.tabs.set(action.TabSearch)
		return w.search.HandleAction(a)
	}
	return w.active().HandleAction(a)
}

func (w *MainWindow) Render(width, height int) string {
	bodyHeight := height - 2
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	frame := strings.Join([]string{
		w.tabs.Render(width, 1),
		place(w.active().Render(width, bodyHeight), width, bodyHeight),
		w.stats.Render(width, 1),
	}, "\n")
	frame = place(frame, width, height)
	if w.help != nil {
		frame = overlay(frame, w.help.Render(width, height), width, height)
	}
	if w.errPopup != nil {
		frame = overlay(frame, w.errPopup.Render(width, height), width, height)
	}
	return frame
}
