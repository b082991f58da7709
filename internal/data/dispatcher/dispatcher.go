package dispatcher

import (
	"fmt"

	"github.com/gomission/gomission/internal/action"
	"github.com/gomission/gomission/internal/backend"
	"github.com/gomission/gomission/internal/logging/events"
	"github.com/gomission/gomission/internal/state"
	"github.com/gomission/gomission/internal/transmission"
)

// Dispatcher applies backend events to the snapshot store. Handle runs on
// the poller goroutine of the event's kind, so each slot sees one writer.
type Dispatcher struct {
	store *state.Store
}

func New(store *state.Store) *Dispatcher {
	return &Dispatcher{store: store}
}

// Handle stores successful results and returns Render, or returns an Error
// action describing the failure. Payloads of the wrong type are ignored.
func (d *Dispatcher) Handle(evt backend.Event) action.Action {
	if evt.Err != nil {
		popup := action.ErrorPopup{
			Title:   fmt.Sprintf("Failed to fetch %s", evt.Kind),
			Message: evt.Err.Error(),
		}
		events.Action.Error(popup.Title, popup.Message)
		return action.Error{Popup: popup}
	}
	switch evt.Kind {
	case backend.KindTorrents:
		if torrents, ok := evt.Data.([]transmission.Torrent); ok {
			d.store.Torrents.Store(torrents)
			return action.Render{}
		}
	case backend.KindStats:
		if stats, ok := evt.Data.(transmission.Stats); ok {
			d.store.Stats.Store(stats)
			return action.Render{}
		}
	case backend.KindFreeSpace:
		if free, ok := evt.Data.(transmission.FreeSpace); ok {
			d.store.FreeSpace.Store(free)
			return action.Render{}
		}
	}
	return nil
}
