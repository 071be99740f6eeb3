package events

import "github.com/atomicstack/gridmenu/internal/logging"

type AnimTracer struct{}

var Anim = AnimTracer{}

func (AnimTracer) Start(direction string, frames, size int) {
	logging.Trace("anim.start", map[string]interface{}{"direction": direction, "frames": frames, "size": size})
}

func (AnimTracer) Cut(err error) {
	logging.Trace("anim.cut", map[string]interface{}{"error": err.Error()})
}

func (AnimTracer) Done(direction string, frame int, reason string) {
	logging.Trace("anim.done", map[string]interface{}{"direction": direction, "frame": frame, "reason": reason})
}
