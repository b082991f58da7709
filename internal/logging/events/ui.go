package events

import "github.com/gomission/gomission/internal/logging"

type ActionTracer struct{}

type ModeTracer struct{}

type PopupTracer struct{}

type TabTracer struct{}

type CommandTracer struct{}

var (
	Action  = ActionTracer{}
	Mode    = ModeTracer{}
	Popup   = PopupTracer{}
	Tab     = TabTracer{}
	Command = CommandTracer{}
)

func (ActionTracer) Dispatch(name, mode string) {
	logging.Trace("action.dispatch", map[string]interface{}{"action": name, "mode": mode})
}

func (ActionTracer) Unhandled(name string) {
	logging.Trace("action.unhandled", map[string]interface{}{"action": name})
}

func (ActionTracer) Followup(from, to string) {
	logging.Trace("action.followup", map[string]interface{}{"from": from, "to": to})
}

func (ActionTracer) Dropped(name string) {
	logging.Trace("action.dropped", map[string]interface{}{"action": name})
}

func (ActionTracer) Error(title, message string) {
	logging.Trace("action.error", map[string]interface{}{"title": title, "message": message})
}

func (ModeTracer) Switch(from, to string) {
	logging.Trace("mode.switch", map[string]interface{}{"from": from, "to": to})
}

func (PopupTracer) Open(name string) {
	logging.Trace("popup.open", map[string]interface{}{"popup": name})
}

func (PopupTracer) Close(name string) {
	logging.Trace("popup.close", map[string]interface{}{"popup": name})
}

func (TabTracer) Change(from, to string) {
	logging.Trace("tab.change", map[string]interface{}{"from": from, "to": to})
}

func (CommandTracer) Queue(id, label string) {
	logging.Trace("command.queue", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Skip(id, label string) {
	logging.Trace("command.skip", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Result(id, label string, err error) {
	payload := map[string]interface{}{"id": id, "label": label}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("command.result", payload)
}
