package ui

import (
	"strings"

	"github.com/gomission/gomission/internal/action"
	"github.com/gomission/gomission/internal/transmission"
	uistate "github.com/gomission/gomission/internal/ui/state"
)

// addTask is the add-torrent prompt. It lives while the session is in Input
// mode and ends by returning SwitchToNormalMode.
type addTask struct {
	input *uistate.Input
	send  Sender
}

func newAddTask(send Sender) *addTask {
	return &addTask{input: uistate.NewInput(""), send: send}
}

func (p *addTask) HandleAction(a action.Action) action.Action {
	switch a := a.(type) {
	case action.Input:
		if p.input.Apply(a.Request) {
			return action.Render{}
		}
		return nil
	case action.Confirm:
		source := strings.TrimSpace(p.input.Value())
		if source == "" {
			return nil
		}
		p.send(action.ItemAdd{Descriptor: transmission.Descriptor{Source: source}})
		return action.SwitchToNormalMode{}
	case action.Quit:
		return action.SwitchToNormalMode{}
	}
	return nil
}

func (p *addTask) Render(width, height int) string {
	return renderInputLine("Add (magnet/url/path): ", p.input, "", width)
}
