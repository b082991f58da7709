package ui

import (
	"fmt"
	"strings"

	"github.com/gomission/gomission/internal/action"
	"github.com/gomission/gomission/internal/format/units"
	"github.com/gomission/gomission/internal/state"
)

// statsLine is the footer: free space, transfer rates and torrent counts.
type statsLine struct {
	store *state.Store
}

func newStatsLine(store *state.Store) *statsLine {
	return &statsLine{store: store}
}

func (s *statsLine) HandleAction(a action.Action) action.Action {
	return a
}

func (s *statsLine) Render(width, height int) string {
	var parts []string
	if free, ok := s.store.FreeSpace.Load(); ok {
		parts = append(parts, fmt.Sprintf("free %s", units.Bytes(free.SizeBytes)))
	}
	if stats, ok := s.store.Stats.Load(); ok {
		parts = append(parts,
			styles.Download.Render("▼ "+units.Speed(stats.DownloadSpeed)),
			styles.Upload.Render("▲ "+units.Speed(stats.UploadSpeed)),
			fmt.Sprintf("%d torrents (%d active)", stats.TorrentCount, stats.Active),
		)
	}
	if len(parts) == 0 {
		return ""
	}
	return fitLine(styles.StatsLine.Render(strings.Join(parts, " │ ")), width)
}
