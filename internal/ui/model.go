package ui

import (
	"context"
	"reflect"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gomission/gomission/internal/action"
	"github.com/gomission/gomission/internal/bus"
	"github.com/gomission/gomission/internal/state"
	"github.com/gomission/gomission/internal/theme"
	"github.com/gomission/gomission/internal/ui/command"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
)

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// Model implements the Bubble Tea model for the torrent client session.
type Model struct {
	mode     action.Mode
	root     *MainWindow
	actions  *bus.Queue[action.Action]
	commands *command.Bus

	ctx    context.Context
	cancel context.CancelFunc

	width    int
	height   int
	frame    string
	renders  int
	quitting bool

	// pump keeps a waitForAction command outstanding. The test harness
	// turns it off and drains the bus itself.
	pump bool

	handlers map[reflect.Type]msgHandler
}

// NewModel builds the component tree over store. Components post follow-ups
// onto actions; mutations are handed to commands.
func NewModel(store *state.Store, actions *bus.Queue[action.Action], commands *command.Bus) *Model {
	ctx, cancel := context.WithCancel(context.Background())
	m := &Model{
		mode:     action.ModeNormal,
		root:     NewMainWindow(store, actions.Send),
		actions:  actions,
		commands: commands,
		ctx:      ctx,
		cancel:   cancel,
		pump:     true,
	}
	m.registerHandlers()
	return m
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	m.redraw()
	return m.waiter()
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if handler := m.handlerFor(msg); handler != nil {
		cmd = handler(msg)
	}
	if m.quitting {
		m.cancel()
		return m, tea.Quit
	}
	return m, cmd
}

// Mode reports the current key translation mode.
func (m *Model) Mode() action.Mode {
	return m.mode
}

// Renders reports how many render passes have run.
func (m *Model) Renders() int {
	return m.renders
}

// Quitting reports whether the session has been asked to stop.
func (m *Model) Quitting() bool {
	return m.quitting
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(actionMsg{}):         m.handleActionMsg,
		reflect.TypeOf(busClosedMsg{}):      m.handleBusClosedMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) waiter() tea.Cmd {
	if !m.pump {
		return nil
	}
	return waitForAction(m.ctx, m.actions)
}
