package state

import "github.com/gomission/gomission/internal/transmission"

// Store groups the snapshots the UI renders from. Each slot is written by
// exactly one fetch loop.
type Store struct {
	Torrents  *Slot[[]transmission.Torrent]
	Stats     *Slot[transmission.Stats]
	FreeSpace *Slot[transmission.FreeSpace]
}

func NewStore() *Store {
	return &Store{
		Torrents:  NewSlot(cloneTorrents),
		Stats:     NewSlot[transmission.Stats](nil),
		FreeSpace: NewSlot[transmission.FreeSpace](nil),
	}
}

func cloneTorrents(torrents []transmission.Torrent) []transmission.Torrent {
	if len(torrents) == 0 {
		return nil
	}
	dup := make([]transmission.Torrent, len(torrents))
	copy(dup, torrents)
	return dup
}
