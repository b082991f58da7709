package ui

import "github.com/gomission/gomission/internal/action"

// Component is a node in the action routing tree.
type Component interface {
	HandleAction(a action.Action) action.Action
	Render(width, height int) string
}

// popup is a component drawn over its parent. Exclusive popups consume
// every action while open; the others may hand an action back unchanged to
// let the parent route it.
type popup interface {
	Component
	Name() string
	Exclusive() bool
}

// Sender posts an action onto the session bus. It reports false once the
// session is shutting down.
type Sender func(action.Action) bool

// routePopup gives p the first look at a. handled is false only when a
// non-exclusive popup declined the action. closed reports that p asked to
// be dismissed.
func routePopup(p popup, a action.Action) (result action.Action, handled, closed bool) {
	res := p.HandleAction(a)
	if _, ok := res.(action.Quit); ok {
		return action.Render{}, true, true
	}
	if p.Exclusive() {
		return res, true, false
	}
	if res == a {
		return nil, false, false
	}
	return res, true, false
}

func isClose(a action.Action) bool {
	switch a.(type) {
	case action.Quit, action.Confirm:
		return true
	default:
		return false
	}
}
