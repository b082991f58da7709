package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
	"github.com/gomission/gomission/internal/action"
	"github.com/gomission/gomission/internal/format/table"
	"github.com/gomission/gomission/internal/format/units"
	"github.com/gomission/gomission/internal/transmission"
)

const closeHint = "enter/esc to close"

// box draws a bordered popup no wider than width.
func box(style *lipgloss.Style, title string, titleStyle *lipgloss.Style, body string, hint string, width int) string {
	parts := []string{titleStyle.Render(title), "", body}
	if hint != "" {
		parts = append(parts, "", styles.PopupHint.Render(hint))
	}
	content := strings.Join(parts, "\n")
	s := *style
	if width > 4 && lipgloss.Width(content)+4 > width {
		s = s.Width(width - 2)
	}
	return s.Render(content)
}

// errorPopup shows the most recent failure. It is exclusive: nothing else
// happens until it is dismissed.
type errorPopup struct {
	content action.ErrorPopup
}

func newErrorPopup(content action.ErrorPopup) *errorPopup {
	return &errorPopup{content: content}
}

func (p *errorPopup) Name() string    { return "error" }
func (p *errorPopup) Exclusive() bool { return true }

func (p *errorPopup) HandleAction(a action.Action) action.Action {
	if isClose(a) {
		return action.Quit{}
	}
	return nil
}

func (p *errorPopup) Render(width, height int) string {
	title := p.content.Title
	if title == "" {
		title = "Error"
	}
	return box(styles.ErrorPopup, title, styles.ErrorTitle, p.content.Message, closeHint, width*2/3)
}

// helpPopup lists key bindings. Navigation keeps working underneath it.
type helpPopup struct {
	model help.Model
}

func newHelpPopup() *helpPopup {
	h := help.New()
	h.ShowAll = true
	return &helpPopup{model: h}
}

func (p *helpPopup) Name() string    { return "help" }
func (p *helpPopup) Exclusive() bool { return false }

func (p *helpPopup) HandleAction(a action.Action) action.Action {
	if isClose(a) {
		return action.Quit{}
	}
	return a
}

func (p *helpPopup) Render(width, height int) string {
	p.model.Width = width - 4
	return box(styles.Popup, "Keys", styles.PopupTitle, p.model.View(action.Keys), closeHint, width)
}

// statsPopup shows session transfer totals.
type statsPopup struct {
	stats transmission.Stats
}

func newStatsPopup(stats transmission.Stats) *statsPopup {
	return &statsPopup{stats: stats}
}

func (p *statsPopup) Name() string    { return "statistics" }
func (p *statsPopup) Exclusive() bool { return true }

func (p *statsPopup) HandleAction(a action.Action) action.Action {
	if isClose(a) {
		return action.Quit{}
	}
	return nil
}

func (p *statsPopup) Render(width, height int) string {
	cum, cur := p.stats.Cumulative, p.stats.Current
	rows := [][]string{
		{"", "this session", "all time"},
		{"Uploaded", units.Bytes(cur.UploadedBytes), units.Bytes(cum.UploadedBytes)},
		{"Downloaded", units.Bytes(cur.DownloadedBytes), units.Bytes(cum.DownloadedBytes)},
		{"Ratio", units.Ratio(cur.UploadedBytes, cur.DownloadedBytes), units.Ratio(cum.UploadedBytes, cum.DownloadedBytes)},
		{"Files added", fmt.Sprint(cur.FilesAdded), fmt.Sprint(cum.FilesAdded)},
		{"Active", units.Elapsed(cur.SecondsActive), units.Elapsed(cum.SecondsActive)},
		{"Sessions", "", fmt.Sprint(cum.SessionCount)},
	}
	lines := table.Format(rows, []table.Alignment{table.AlignLeft, table.AlignRight, table.AlignRight})
	return box(styles.Popup, "Statistics", styles.PopupTitle, strings.Join(lines, "\n"), closeHint, width)
}

// confirmPopup asks before removing a torrent.
type confirmPopup struct {
	id       int64
	name     string
	withData bool
	send     Sender
}

func newConfirmPopup(t transmission.Torrent, withData bool, send Sender) *confirmPopup {
	return &confirmPopup{id: t.ID, name: t.Name, withData: withData, send: send}
}

func (p *confirmPopup) Name() string    { return "confirm-remove" }
func (p *confirmPopup) Exclusive() bool { return true }

func (p *confirmPopup) HandleAction(a action.Action) action.Action {
	switch a.(type) {
	case action.Confirm:
		p.send(action.ItemRemove{ID: p.id, DeleteData: p.withData})
		return action.Quit{}
	case action.Quit:
		return action.Quit{}
	}
	return nil
}

func (p *confirmPopup) Render(width, height int) string {
	question := fmt.Sprintf("Remove %q?", p.name)
	if p.withData {
		question = fmt.Sprintf("Remove %q and delete its data?", p.name)
	}
	return box(styles.Popup, "Remove torrent", styles.PopupTitle, question, "enter to confirm, esc to cancel", width*2/3)
}
