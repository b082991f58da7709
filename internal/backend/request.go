package backend

import (
	"context"
	"fmt"

	"github.com/gomission/gomission/internal/transmission"
)

// RequestKind distinguishes queued mutations.
type RequestKind int

const (
	RequestAdd RequestKind = iota
	RequestMutate
	RequestRemove
)

// Request is a single queued mutation. Only the fields relevant to Kind are
// read.
type Request struct {
	ID         string
	Kind       RequestKind
	Descriptor transmission.Descriptor
	TorrentID  int64
	Op         transmission.Operation
	DeleteData bool
}

// Label is a short human description used in traces and error titles.
func (r Request) Label() string {
	switch r.Kind {
	case RequestAdd:
		return "add torrent"
	case RequestMutate:
		return fmt.Sprintf("%s torrent %d", r.Op, r.TorrentID)
	case RequestRemove:
		if r.DeleteData {
			return fmt.Sprintf("remove torrent %d and its data", r.TorrentID)
		}
		return fmt.Sprintf("remove torrent %d", r.TorrentID)
	default:
		return "unknown request"
	}
}

func (r Request) execute(ctx context.Context, svc transmission.Service) error {
	switch r.Kind {
	case RequestAdd:
		return svc.AddTorrent(ctx, r.Descriptor)
	case RequestMutate:
		return svc.MutateTorrent(ctx, r.TorrentID, r.Op)
	case RequestRemove:
		return svc.RemoveTorrent(ctx, r.TorrentID, r.DeleteData)
	default:
		return fmt.Errorf("unknown request kind %d", int(r.Kind))
	}
}

// refreshes lists the snapshot kinds a successful request invalidates.
func (r Request) refreshes() []Kind {
	switch r.Kind {
	case RequestAdd:
		return []Kind{KindTorrents, KindStats, KindFreeSpace}
	case RequestRemove:
		if r.DeleteData {
			return []Kind{KindTorrents, KindStats, KindFreeSpace}
		}
		return []Kind{KindTorrents, KindStats}
	default:
		return []Kind{KindTorrents, KindStats}
	}
}
