package ui

import (
	"strings"

	"github.com/gomission/gomission/internal/format/table"
	"github.com/gomission/gomission/internal/format/units"
	"github.com/gomission/gomission/internal/transmission"
	uistate "github.com/gomission/gomission/internal/ui/state"
)

var torrentHeader = []string{"Name", "Size", "Done", "ETA", "▼", "▲", "Ratio", "Status"}

var torrentLayout = []table.Alignment{
	table.AlignLeft,
	table.AlignRight,
	table.AlignRight,
	table.AlignRight,
	table.AlignRight,
	table.AlignRight,
	table.AlignRight,
	table.AlignLeft,
}

func torrentRow(t transmission.Torrent) []string {
	status := t.Status.String()
	if t.Error != "" {
		status = "error: " + t.Error
	}
	return []string{
		t.Name,
		units.Bytes(t.SizeBytes),
		units.Percent(t.PercentDone),
		units.ETA(t.ETA),
		units.Speed(t.RateDownload),
		units.Speed(t.RateUpload),
		units.DaemonRatio(t.UploadRatio),
		status,
	}
}

// renderTorrentTable draws rows with a header line, scrolled so the
// selection stays visible within height lines.
func renderTorrentTable(rows []transmission.Torrent, sel *uistate.Table, width, height int) string {
	visible := height - 1
	if visible < 1 {
		visible = 1
	}
	start, end := sel.Window(visible)
	cells := make([][]string, 0, end-start+1)
	cells = append(cells, torrentHeader)
	for i := start; i < end; i++ {
		cells = append(cells, torrentRow(rows[i]))
	}
	lines := table.FormatLayout(cells, table.Layout{Alignments: torrentLayout, Flex: 0, Width: width})
	cursor, hasCursor := sel.Selected()
	out := make([]string, len(lines))
	for i, line := range lines {
		switch {
		case i == 0:
			out[i] = styles.Header.Render(line)
		case hasCursor && start+i-1 == cursor:
			out[i] = styles.SelectedRow.Render(line)
		case rows[start+i-1].Error != "":
			out[i] = styles.ErroredRow.Render(line)
		default:
			out[i] = styles.Row.Render(line)
		}
	}
	return strings.Join(out, "\n")
}

func placeholder(text string, width int) string {
	return fitLine(styles.Placeholder.Render(text), width)
}
