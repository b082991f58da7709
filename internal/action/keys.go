package action

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// KeyMap holds the Normal-mode bindings. It satisfies help.KeyMap.
type KeyMap struct {
	Quit        key.Binding
	Help        key.Binding
	Stats       key.Binding
	TabTorrents key.Binding
	TabSearch   key.Binding
	Up          key.Binding
	Down        key.Binding
	Home        key.Binding
	End         key.Binding
	PageUp      key.Binding
	PageDown    key.Binding
	Confirm     key.Binding
	Add         key.Binding
	Pause       key.Binding
	Verify      key.Binding
	Reannounce  key.Binding
	Delete      key.Binding
	DeleteData  key.Binding
	Search      key.Binding
}

// Keys is the default key map.
var Keys = KeyMap{
	Quit:        key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q/esc", "quit or close popup")),
	Help:        key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "toggle help")),
	Stats:       key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "statistics")),
	TabTorrents: key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "torrents tab")),
	TabSearch:   key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "search tab")),
	Up:          key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "up")),
	Down:        key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "down")),
	Home:        key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "first")),
	End:         key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "last")),
	PageUp:      key.NewBinding(key.WithKeys("ctrl+u", "pgup"), key.WithHelp("ctrl+u", "page up")),
	PageDown:    key.NewBinding(key.WithKeys("ctrl+d", "pgdown"), key.WithHelp("ctrl+d", "page down")),
	Confirm:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm")),
	Add:         key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add torrent")),
	Pause:       key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pause/resume")),
	Verify:      key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "verify")),
	Reannounce:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reannounce")),
	Delete:      key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "remove")),
	DeleteData:  key.NewBinding(key.WithKeys("D"), key.WithHelp("D", "remove with data")),
	Search:      key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Home, k.End, k.PageUp, k.PageDown},
		{k.TabTorrents, k.TabSearch, k.Search, k.Confirm, k.Stats},
		{k.Add, k.Pause, k.Verify, k.Reannounce, k.Delete, k.DeleteData},
		{k.Help, k.Quit},
	}
}

// normalBindings is checked in order; first match wins.
var normalBindings = []struct {
	binding *key.Binding
	action  Action
}{
	{&Keys.Quit, Quit{}},
	{&Keys.Help, ShowHelp{}},
	{&Keys.Stats, ShowStats{}},
	{&Keys.TabTorrents, ChangeTab{Tab: TabTorrents}},
	{&Keys.TabSearch, ChangeTab{Tab: TabSearch}},
	{&Keys.Up, Up{}},
	{&Keys.Down, Down{}},
	{&Keys.Home, Home{}},
	{&Keys.End, End{}},
	{&Keys.PageUp, PageUp{}},
	{&Keys.PageDown, PageDown{}},
	{&Keys.Confirm, Confirm{}},
	{&Keys.Add, AddTorrent{}},
	{&Keys.Pause, TogglePause{}},
	{&Keys.Verify, Verify{}},
	{&Keys.Reannounce, Reannounce{}},
	{&Keys.Delete, Delete{}},
	{&Keys.DeleteData, Delete{WithData: true}},
	{&Keys.Search, Search{}},
}

// Translate converts a key press into an action for the given mode. Keys
// with no meaning in that mode return nil.
func Translate(mode Mode, msg tea.KeyMsg) Action {
	if mode == ModeInput {
		return translateInput(msg)
	}
	for _, b := range normalBindings {
		if key.Matches(msg, *b.binding) {
			return b.action
		}
	}
	return nil
}

func translateInput(msg tea.KeyMsg) Action {
	switch msg.String() {
	case "esc", "ctrl+c":
		return Quit{}
	case "enter":
		return Confirm{}
	case "up":
		return Up{}
	case "down":
		return Down{}
	case "alt+backspace", "ctrl+w":
		return Input{Request: InputRequest{Kind: DeletePrevWord}}
	case "backspace", "ctrl+h":
		return Input{Request: InputRequest{Kind: DeletePrevChar}}
	case "delete":
		return Input{Request: InputRequest{Kind: DeleteNextChar}}
	case "left", "ctrl+b":
		return Input{Request: InputRequest{Kind: CaretLeft}}
	case "right", "ctrl+f":
		return Input{Request: InputRequest{Kind: CaretRight}}
	case "alt+b", "alt+left", "ctrl+left":
		return Input{Request: InputRequest{Kind: CaretWordLeft}}
	case "alt+f", "alt+right", "ctrl+right":
		return Input{Request: InputRequest{Kind: CaretWordRight}}
	case "home", "ctrl+a":
		return Input{Request: InputRequest{Kind: CaretStart}}
	case "end", "ctrl+e":
		return Input{Request: InputRequest{Kind: CaretEnd}}
	}
	switch msg.Type {
	case tea.KeySpace:
		return Input{Request: InputRequest{Kind: InsertText, Text: " "}}
	case tea.KeyRunes:
		if msg.Alt || len(msg.Runes) == 0 {
			return nil
		}
		return Input{Request: InputRequest{Kind: InsertText, Text: string(msg.Runes)}}
	}
	return nil
}
