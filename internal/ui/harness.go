package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/gomission/gomission/internal/action"
)

// Harness drives the UI model programmatically for tests. It replaces the
// background bus waiter with a synchronous drain after every message.
type Harness struct {
	model *Model
}

// NewHarness creates a harness for the provided model and runs Init.
func NewHarness(model *Model) *Harness {
	model.pump = false
	h := &Harness{model: model}
	h.processCmd(model.Init())
	h.drain()
	return h
}

// Send routes a message through the model, then processes every action the
// message left on the bus.
func (h *Harness) Send(msg tea.Msg) {
	if h.model == nil {
		return
	}
	h.update(msg)
	h.drain()
}

// Dispatch posts a onto the bus as a background producer would.
func (h *Harness) Dispatch(a action.Action) {
	h.model.actions.Send(a)
	h.drain()
}

func (h *Harness) drain() {
	for !h.model.quitting {
		a, ok := h.model.actions.TryRecv()
		if !ok {
			return
		}
		h.update(actionMsg{action: a})
	}
}

func (h *Harness) update(msg tea.Msg) {
	mdl, cmd := h.model.Update(msg)
	if updated, ok := mdl.(*Model); ok {
		h.model = updated
	}
	h.processCmd(cmd)
}

func (h *Harness) processCmd(cmd tea.Cmd) {
	for cmd != nil {
		msg := cmd()
		if msg == nil {
			return
		}
		if _, ok := msg.(tea.QuitMsg); ok {
			return
		}
		mdl, next := h.model.Update(msg)
		if updated, ok := mdl.(*Model); ok {
			h.model = updated
		}
		cmd = next
	}
}

// View returns the current view string.
func (h *Harness) View() string {
	if h.model == nil {
		return ""
	}
	return h.model.View()
}

// Model exposes the underlying model.
func (h *Harness) Model() *Model {
	return h.model
}

// Renders reports how many render passes the model has run.
func (h *Harness) Renders() int {
	return h.model.Renders()
}
