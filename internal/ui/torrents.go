package ui

import (
	"github.com/gomission/gomission/internal/action"
	"github.com/gomission/gomission/internal/logging/events"
	"github.com/gomission/gomission/internal/state"
	"github.com/gomission/gomission/internal/transmission"
	uistate "github.com/gomission/gomission/internal/ui/state"
)

const addTaskName = "add-torrent"

// TorrentsTab lists every torrent and owns the per-torrent commands.
type TorrentsTab struct {
	store *state.Store
	send  Sender
	table *uistate.Table

	rows       []transmission.Torrent
	gen        uint64
	loaded     bool
	selectedID int64
	pageSize   int

	popup popup
	task  *addTask
}

func NewTorrentsTab(store *state.Store, send Sender) *TorrentsTab {
	return &TorrentsTab{
		store:    store,
		send:     send,
		table:    uistate.NewTable(),
		pageSize: defaultHeight - 3,
	}
}

func (t *TorrentsTab) HasPopup() bool {
	return t.popup != nil || t.task != nil
}

// Selected returns the torrent under the cursor.
func (t *TorrentsTab) Selected() (transmission.Torrent, bool) {
	t.sync()
	i, ok := t.table.Selected()
	if !ok {
		return transmission.Torrent{}, false
	}
	return t.rows[i], true
}

// sync reloads rows when the snapshot changed, keeping the selected torrent
// under the cursor when it is still listed.
func (t *TorrentsTab) sync() {
	gen := t.store.Torrents.Generation()
	if t.loaded && gen == t.gen {
		return
	}
	rows, ok := t.store.Torrents.Load()
	if !ok {
		return
	}
	t.rows, t.gen, t.loaded = rows, gen, true
	t.table.SetLength(len(rows))
	if i := t.indexOf(t.selectedID); i >= 0 {
		t.table.Select(i)
	}
	t.remember()
}

func (t *TorrentsTab) indexOf(id int64) int {
	for i, row := range t.rows {
		if row.ID == id {
			return i
		}
	}
	return -1
}

func (t *TorrentsTab) remember() {
	if i, ok := t.table.Selected(); ok {
		t.selectedID = t.rows[i].ID
	}
}

func (t *TorrentsTab) HandleAction(a action.Action) action.Action {
	t.sync()
	if t.task != nil {
		res := t.task.HandleAction(a)
		if _, ok := res.(action.SwitchToNormalMode); ok {
			events.Popup.Close(addTaskName)
			t.task = nil
		}
		return res
	}
	if t.popup != nil {
		res, _, closed := routePopup(t.popup, a)
		if closed {
			tracePopupClose(t.popup)
			t.popup = nil
		}
		return res
	}
	switch a := a.(type) {
	case action.Up, action.Down, action.Home, action.End, action.PageUp, action.PageDown:
		if moveTable(t.table, a, t.pageSize) {
			t.remember()
			return action.Render{}
		}
		return nil
	case action.FocusItem:
		i := t.indexOf(a.ID)
		if i < 0 {
			return nil
		}
		t.table.Select(i)
		t.remember()
		return action.Render{}
	case action.ShowStats:
		stats, ok := t.store.Stats.Load()
		if !ok {
			// Not fetched yet.
			return nil
		}
		t.open(newStatsPopup(stats))
		return action.Render{}
	case action.AddTorrent:
		t.task = newAddTask(t.send)
		events.Popup.Open(addTaskName)
		return action.SwitchToInputMode{}
	case action.TogglePause:
		sel, ok := t.Selected()
		if !ok {
			return nil
		}
		op := transmission.OpStart
		if sel.Status.Active() {
			op = transmission.OpStop
		}
		t.send(action.ItemMutate{ID: sel.ID, Op: op})
		return nil
	case action.Verify:
		return t.mutate(transmission.OpVerify)
	case action.Reannounce:
		return t.mutate(transmission.OpReannounce)
	case action.Delete:
		sel, ok := t.Selected()
		if !ok {
			return nil
		}
		t.open(newConfirmPopup(sel, a.WithData, t.send))
		return action.Render{}
	}
	return a
}

func (t *TorrentsTab) mutate(op transmission.Operation) action.Action {
	sel, ok := t.Selected()
	if !ok {
		return nil
	}
	t.send(action.ItemMutate{ID: sel.ID, Op: op})
	return nil
}

func (t *TorrentsTab) open(p popup) {
	t.popup = p
	tracePopupOpen(p)
}

func (t *TorrentsTab) Render(width, height int) string {
	t.sync()
	bodyHeight := height
	if t.task != nil && bodyHeight > 1 {
		bodyHeight--
	}
	var body string
	switch {
	case !t.loaded:
		body = placeholder("Waiting for the daemon…", width)
	case len(t.rows) == 0:
		body = placeholder("No torrents. Press a to add one.", width)
	default:
		t.pageSize = bodyHeight - 1
		body = renderTorrentTable(t.rows, t.table, width, bodyHeight)
	}
	if t.task != nil {
		body = place(body, width, bodyHeight) + "\n" + t.task.Render(width, 1)
	}
	if t.popup != nil {
		body = overlay(body, t.popup.Render(width, height), width, height)
	}
	return body
}

// moveTable applies a navigation action and reports whether the cursor moved.
func moveTable(tbl *uistate.Table, a action.Action, pageSize int) bool {
	switch a.(type) {
	case action.Up:
		return tbl.Prev()
	case action.Down:
		return tbl.Next()
	case action.Home:
		return tbl.MoveCursorHome()
	case action.End:
		return tbl.MoveCursorEnd()
	case action.PageUp:
		return tbl.MoveCursorPageUp(pageSize)
	case action.PageDown:
		return tbl.MoveCursorPageDown(pageSize)
	}
	return false
}
