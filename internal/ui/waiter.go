package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gomission/gomission/internal/action"
	"github.com/gomission/gomission/internal/bus"
)

type actionMsg struct {
	action action.Action
}

type busClosedMsg struct{}

// waitForAction blocks on the bus for the next action. Only one waiter is
// outstanding at a time so actions reach Update in arrival order.
func waitForAction(ctx context.Context, q *bus.Queue[action.Action]) tea.Cmd {
	if q == nil {
		return nil
	}
	return func() tea.Msg {
		a, err := q.Recv(ctx)
		if err != nil {
			return busClosedMsg{}
		}
		return actionMsg{action: a}
	}
}

func (m *Model) handleActionMsg(msg tea.Msg) tea.Cmd {
	am, ok := msg.(actionMsg)
	if !ok {
		return nil
	}
	m.dispatch(am.action)
	return m.waiter()
}

func (m *Model) handleBusClosedMsg(tea.Msg) tea.Cmd {
	m.quitting = true
	return nil
}
