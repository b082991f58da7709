// Package action defines the closed set of intents that flow through the
// session: keyboard translations, background notifications and component
// follow-ups all travel as Action values.
package action

import (
	"fmt"
	"strings"

	"github.com/gomission/gomission/internal/transmission"
)

// Action is implemented only by the variants in this package. Every variant
// is a comparable value so results can be checked with ==. A nil Action
// means "nothing further to do".
type Action interface {
	isAction()
}

// Tab identifies a top-level tab.
type Tab int

const (
	TabTorrents Tab = iota
	TabSearch
)

// Tabs lists every tab in display order.
var Tabs = []Tab{TabTorrents, TabSearch}

func (t Tab) String() string {
	switch t {
	case TabTorrents:
		return "Torrents"
	case TabSearch:
		return "Search"
	default:
		return fmt.Sprintf("Tab(%d)", int(t))
	}
}

// ErrorPopup is the content shown by the global error popup.
type ErrorPopup struct {
	Title   string
	Message string
}

type (
	Quit               struct{}
	Render             struct{}
	ChangeTab          struct{ Tab Tab }
	SwitchToInputMode  struct{}
	SwitchToNormalMode struct{}
	ShowHelp           struct{}
	ShowStats          struct{}

	Up       struct{}
	Down     struct{}
	Home     struct{}
	End      struct{}
	PageUp   struct{}
	PageDown struct{}
	Confirm  struct{}

	// Input carries a text-edit request produced in Input mode.
	Input struct{ Request InputRequest }

	// ItemAdd, ItemMutate and ItemRemove are handed to the fetch scheduler.
	ItemAdd    struct{ Descriptor transmission.Descriptor }
	ItemMutate struct {
		ID int64
		Op transmission.Operation
	}
	ItemRemove struct {
		ID         int64
		DeleteData bool
	}

	// Error asks the main window to show a popup.
	Error struct{ Popup ErrorPopup }

	AddTorrent  struct{}
	TogglePause struct{}
	Verify      struct{}
	Reannounce  struct{}
	Delete      struct{ WithData bool }
	Search      struct{}
	FocusItem   struct{ ID int64 }
)

func (Quit) isAction()               {}
func (Render) isAction()             {}
func (ChangeTab) isAction()          {}
func (SwitchToInputMode) isAction()  {}
func (SwitchToNormalMode) isAction() {}
func (ShowHelp) isAction()           {}
func (ShowStats) isAction()          {}
func (Up) isAction()                 {}
func (Down) isAction()               {}
func (Home) isAction()               {}
func (End) isAction()                {}
func (PageUp) isAction()             {}
func (PageDown) isAction()           {}
func (Confirm) isAction()            {}
func (Input) isAction()              {}
func (ItemAdd) isAction()            {}
func (ItemMutate) isAction()         {}
func (ItemRemove) isAction()         {}
func (Error) isAction()              {}
func (AddTorrent) isAction()         {}
func (TogglePause) isAction()        {}
func (Verify) isAction()             {}
func (Reannounce) isAction()         {}
func (Delete) isAction()             {}
func (Search) isAction()             {}
func (FocusItem) isAction()          {}

// All returns one representative value of every variant.
func All() []Action {
	return []Action{
		Quit{},
		Render{},
		ChangeTab{Tab: TabSearch},
		SwitchToInputMode{},
		SwitchToNormalMode{},
		ShowHelp{},
		ShowStats{},
		Up{},
		Down{},
		Home{},
		End{},
		PageUp{},
		PageDown{},
		Confirm{},
		Input{Request: InputRequest{Kind: InsertText, Text: "x"}},
		ItemAdd{Descriptor: transmission.Descriptor{Source: "magnet:?xt=urn:btih:0"}},
		ItemMutate{ID: 1, Op: transmission.OpStop},
		ItemRemove{ID: 1},
		Error{Popup: ErrorPopup{Title: "Error", Message: "boom"}},
		AddTorrent{},
		TogglePause{},
		Verify{},
		Reannounce{},
		Delete{},
		Search{},
		FocusItem{ID: 1},
	}
}

// IsRender reports whether a is a redraw request.
func IsRender(a Action) bool {
	_, ok := a.(Render)
	return ok
}

// IsMutation reports whether a must be handed to the backend.
func IsMutation(a Action) bool {
	switch a.(type) {
	case ItemAdd, ItemMutate, ItemRemove:
		return true
	default:
		return false
	}
}

// Name returns a short, stable label for tracing.
func Name(a Action) string {
	if a == nil {
		return "none"
	}
	name := fmt.Sprintf("%T", a)
	if idx := strings.LastIndexByte(name, '.'); idx >= 0 {
		name = name[idx+1:]
	}
	return name
}
