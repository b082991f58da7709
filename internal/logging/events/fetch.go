package events

import (
	"time"

	"github.com/gomission/gomission/internal/logging"
)

type FetchTracer struct{}

var Fetch = FetchTracer{}

func (FetchTracer) Result(kind string, elapsed time.Duration, err error) {
	payload := map[string]interface{}{"kind": kind, "elapsed_ms": elapsed.Milliseconds()}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("fetch.result", payload)
}

func (FetchTracer) Suppressed(kind, message string) {
	logging.Trace("fetch.suppressed", map[string]interface{}{"kind": kind, "error": message})
}

func (FetchTracer) Refresh(kind string) {
	logging.Trace("fetch.refresh", map[string]interface{}{"kind": kind})
}

func (FetchTracer) MutationStart(id, label string) {
	logging.Trace("mutation.start", map[string]interface{}{"id": id, "label": label})
}

func (FetchTracer) MutationResult(id, label string, err error) {
	payload := map[string]interface{}{"id": id, "label": label}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("mutation.result", payload)
}
