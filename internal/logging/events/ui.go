package events

import "github.com/atomicstack/rtc-menu/internal/logging"

type UITracer struct{}

var UI = UITracer{}

func (UITracer) Cursor(index, offset int) {
	logging.Trace("ui.cursor", map[string]interface{}{"index": index, "offset": offset})
}

func (UITracer) Mode(from, to string) {
	logging.Trace("ui.mode", map[string]interface{}{"from": from, "to": to})
}

func (UITracer) SelectNoOp(index int, label string) {
	logging.Trace("ui.select.noop", map[string]interface{}{"index": index, "label": label})
}

func (UITracer) Jump(query string, index int) {
	logging.Trace("ui.jump", map[string]interface{}{"query": query, "index": index})
}

func (UITracer) Resize(width, height, pageSize int) {
	logging.Trace("ui.resize", map[string]interface{}{"width": width, "height": height, "pageSize": pageSize})
}

func (UITracer) Unmapped(key, mode string) {
	logging.Trace("ui.key.unmapped", map[string]interface{}{"key": key, "mode": mode})
}
