package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/gomission/gomission/internal/action"
	"github.com/gomission/gomission/internal/logging/events"
)

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	if a := action.Translate(m.mode, keyMsg); a != nil {
		m.dispatch(a)
	}
	return nil
}

// dispatch runs a through the session tier and then the component tree.
func (m *Model) dispatch(a action.Action) {
	if a == nil {
		return
	}
	name := action.Name(a)
	events.Action.Dispatch(name, m.mode.String())
	switch a := a.(type) {
	case action.Render:
		m.redraw()
		return
	case action.Quit:
		if !m.root.HasPopup() {
			m.quitting = true
			return
		}
	case action.SwitchToInputMode:
		m.setMode(action.ModeInput)
		return
	case action.SwitchToNormalMode:
		m.setMode(action.ModeNormal)
		return
	case action.ItemAdd, action.ItemMutate, action.ItemRemove:
		m.submit(a)
		return
	}
	res := m.root.HandleAction(a)
	switch {
	case res == nil:
	case res == a:
		if action.IsMutation(res) {
			m.submit(res)
			return
		}
		events.Action.Unhandled(name)
	default:
		m.enqueue(name, res)
	}
}

// setMode switches key translation and requests a redraw. Switching to the
// current mode changes nothing but the frame.
func (m *Model) setMode(mode action.Mode) {
	if m.mode != mode {
		events.Mode.Switch(m.mode.String(), mode.String())
		m.mode = mode
	}
	m.enqueue("mode", action.Render{})
}

func (m *Model) submit(a action.Action) {
	if m.commands == nil {
		events.Action.Dropped(action.Name(a))
		return
	}
	m.commands.Submit(a)
}

func (m *Model) enqueue(from string, a action.Action) {
	events.Action.Followup(from, action.Name(a))
	if !m.actions.Send(a) {
		events.Action.Dropped(action.Name(a))
	}
}
