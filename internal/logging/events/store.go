package events

import "github.com/atomicstack/rtc-menu/internal/logging"

type StoreTracer struct{}

var Store = StoreTracer{}

func (StoreTracer) Load(backend string, generated bool) {
	logging.Trace("store.load", map[string]interface{}{"backend": backend, "generated": generated})
}

func (StoreTracer) Save(backend string, size int) {
	logging.Trace("store.save", map[string]interface{}{"backend": backend, "bytes": size})
}

// Failure is logged unconditionally; persistence problems must reach the log
// even with tracing off.
func (StoreTracer) Failure(err error) {
	if err == nil {
		return
	}
	logging.Error(err)
	logging.Trace("store.failure", map[string]interface{}{"error": err.Error()})
}
