package app

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gomission/gomission/internal/action"
	"github.com/gomission/gomission/internal/backend"
	"github.com/gomission/gomission/internal/bus"
	"github.com/gomission/gomission/internal/data/dispatcher"
	"github.com/gomission/gomission/internal/logging"
	"github.com/gomission/gomission/internal/logging/events"
	"github.com/gomission/gomission/internal/state"
	"github.com/gomission/gomission/internal/transmission"
	"github.com/gomission/gomission/internal/ui"
	"github.com/gomission/gomission/internal/ui/command"
)

const userAgent = "gomission"

// Config describes user-provided application options.
type Config struct {
	Connection  transmission.Connection
	Intervals   backend.Intervals
	DownloadDir string
}

// Run bootstraps and executes the Bubble Tea program against the daemon
// described by cfg.
func Run(cfg Config) error {
	client, err := transmission.NewClient(cfg.Connection, userAgent)
	if err != nil {
		return fmt.Errorf("create rpc client: %w", err)
	}
	return RunWith(client, cfg, tea.WithAltScreen())
}

// RunWith runs the session against svc. Extra program options are passed to
// Bubble Tea, which lets tests supply their own input and output.
func RunWith(svc transmission.Service, cfg Config, opts ...tea.ProgramOption) error {
	store := state.NewStore()
	actions := bus.New[action.Action]()
	defer actions.Close()

	sched := backend.New(svc, dispatcher.New(store).Handle, actions, backend.Options{
		Intervals:   cfg.Intervals,
		DownloadDir: cfg.DownloadDir,
	})
	defer func() {
		sched.Stop()
		if err := sched.Wait(); err != nil {
			logging.Error(fmt.Errorf("stop scheduler: %w", err))
		}
	}()

	model := ui.NewModel(store, actions, command.New(sched))
	program := tea.NewProgram(model, opts...)
	_, err := program.Run()
	events.App.Stop(model.Renders())
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}
