package command

import (
	"github.com/gomission/gomission/internal/action"
	"github.com/gomission/gomission/internal/backend"
	"github.com/gomission/gomission/internal/logging/events"
	"github.com/google/uuid"
)

// Submitter accepts mutation requests. *backend.Scheduler satisfies it.
type Submitter interface {
	Submit(backend.Request) bool
}

// Bus turns mutation actions into backend requests while emitting trace logs.
type Bus struct {
	submitter Submitter
	newID     func() string
}

// New initialises a command bus instance. A nil submitter drops every
// request, which keeps the UI usable without a backend.
func New(submitter Submitter) *Bus {
	return &Bus{submitter: submitter, newID: uuid.NewString}
}

// Submit hands a mutation to the backend. It reports false when a is not a
// mutation or nothing accepted it.
func (b *Bus) Submit(a action.Action) bool {
	req, ok := RequestFor(a)
	if !ok {
		events.Command.Skip("", action.Name(a))
		return false
	}
	req.ID = b.newID()
	label := req.Label()
	if b.submitter == nil {
		events.Command.Skip(req.ID, label)
		return false
	}
	events.Command.Queue(req.ID, label)
	accepted := b.submitter.Submit(req)
	if !accepted {
		events.Command.Skip(req.ID, label)
	}
	return accepted
}

// RequestFor converts a mutation action into a request without an ID.
func RequestFor(a action.Action) (backend.Request, bool) {
	switch m := a.(type) {
	case action.ItemAdd:
		return backend.Request{Kind: backend.RequestAdd, Descriptor: m.Descriptor}, true
	case action.ItemMutate:
		return backend.Request{Kind: backend.RequestMutate, TorrentID: m.ID, Op: m.Op}, true
	case action.ItemRemove:
		return backend.Request{Kind: backend.RequestRemove, TorrentID: m.ID, DeleteData: m.DeleteData}, true
	default:
		return backend.Request{}, false
	}
}
