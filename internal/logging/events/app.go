package events

import "github.com/gomission/gomission/internal/logging"

type AppTracer struct{}

var App = AppTracer{}

func (AppTracer) Start(payload map[string]interface{}) {
	logging.Trace("app.start", payload)
}

func (AppTracer) Stop(renders int) {
	logging.Trace("app.stop", map[string]interface{}{"renders": renders})
}
