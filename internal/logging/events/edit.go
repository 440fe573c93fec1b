package events

import "github.com/atomicstack/rtc-menu/internal/logging"

type EditTracer struct{}

var Edit = EditTracer{}

func (EditTracer) Start(value string) {
	logging.Trace("edit.start", map[string]interface{}{"value": value})
}

func (EditTracer) Append(value string) {
	logging.Trace("edit.append", map[string]interface{}{"value": value})
}

func (EditTracer) Backspace(value string) {
	logging.Trace("edit.backspace", map[string]interface{}{"value": value})
}

func (EditTracer) WordBackspace(value string) {
	logging.Trace("edit.word-backspace", map[string]interface{}{"value": value})
}

func (EditTracer) Cleared() {
	logging.Trace("edit.clear", nil)
}

func (EditTracer) Commit(value string) {
	logging.Trace("edit.commit", map[string]interface{}{"value": value})
}

func (EditTracer) Cancel() {
	logging.Trace("edit.cancel", nil)
}
