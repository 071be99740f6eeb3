package events

import "github.com/atomicstack/gridmenu/internal/logging"

type ConsoleTracer struct{}

var Console = ConsoleTracer{}

func (ConsoleTracer) Cursor(window, slot int) {
	logging.Trace("console.cursor", map[string]interface{}{"window": window, "slot": slot})
}

func (ConsoleTracer) Click(window, slot int, kind string) {
	logging.Trace("console.click", map[string]interface{}{"window": window, "slot": slot, "kind": kind})
}

func (ConsoleTracer) Key(key string) {
	logging.Trace("console.key", map[string]interface{}{"key": key})
}

func (ConsoleTracer) Queue(id, label string) {
	logging.Trace("console.queue", map[string]interface{}{"id": id, "label": label})
}

func (ConsoleTracer) Skip(id, label string) {
	logging.Trace("console.skip", map[string]interface{}{"id": id, "label": label})
}

func (ConsoleTracer) Result(id, label string, err error) {
	payload := map[string]interface{}{"id": id, "label": label}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("console.result", payload)
}
