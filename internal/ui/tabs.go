package ui

import (
	"fmt"

	"github.com/gomission/gomission/internal/action"
	"github.com/gomission/gomission/internal/logging/events"
)

// TabBar tracks and draws the active tab.
type TabBar struct {
	active action.Tab
}

func NewTabBar() *TabBar {
	return &TabBar{active: action.TabTorrents}
}

func (b *TabBar) Active() action.Tab {
	return b.active
}

func (b *TabBar) HandleAction(a action.Action) action.Action {
	ct, ok := a.(action.ChangeTab)
	if !ok {
		return a
	}
	b.set(ct.Tab)
	return action.Render{}
}

func (b *TabBar) set(t action.Tab) {
	if t == b.active {
		return
	}
	events.Tab.Change(b.active.String(), t.String())
	b.active = t
}

func (b *TabBar) Render(width, height int) string {
	var line string
	for i, t := range action.Tabs {
		if i > 0 {
			line += styles.TabGap.Render("│")
		}
		label := fmt.Sprintf("%d %s", i+1, t)
		if t == b.active {
			line += styles.ActiveTab.Render(label)
		} else {
			line += styles.Tab.Render(label)
		}
	}
	return fitLine(line, width)
}
