package events

import "github.com/atomicstack/gridmenu/internal/logging"

type TemplateTracer struct{}

type InstanceTracer struct{}

type RefreshTracer struct{}

var (
	Template = TemplateTracer{}
	Instance = InstanceTracer{}
	Refresh  = RefreshTracer{}
)

func (TemplateTracer) Register(name string, rows, fixed, pageSlots int) {
	logging.Trace("template.register", map[string]interface{}{
		"template":   name,
		"rows":       rows,
		"fixed":      fixed,
		"page_slots": pageSlots,
	})
}

func (TemplateTracer) Show(name, viewer string) {
	logging.Trace("template.show", map[string]interface{}{"template": name, "viewer": viewer})
}

func (TemplateTracer) Rejected(name, viewer string) {
	logging.Trace("template.rejected", map[string]interface{}{"template": name, "viewer": viewer})
}

func (InstanceTracer) Open(id, template, viewer string, surface int) {
	logging.Trace("instance.open", map[string]interface{}{
		"instance": id,
		"template": template,
		"viewer":   viewer,
		"surface":  surface,
	})
}

func (InstanceTracer) Close(id, template string, consumed bool) {
	logging.Trace("instance.close", map[string]interface{}{
		"instance": id,
		"template": template,
		"consumed": consumed,
	})
}

func (InstanceTracer) Click(id string, slot int, kind string) {
	logging.Trace("instance.click", map[string]interface{}{"instance": id, "slot": slot, "kind": kind})
}

func (InstanceTracer) Page(id string, page, pages int) {
	logging.Trace("instance.page", map[string]interface{}{"instance": id, "page": page, "pages": pages})
}

func (InstanceTracer) Switch(id, from, to string, animated bool) {
	logging.Trace("instance.switch", map[string]interface{}{
		"instance": id,
		"from":     from,
		"to":       to,
		"animated": animated,
	})
}

func (InstanceTracer) Stale(id, op string, err error) {
	logging.Trace("instance.stale", map[string]interface{}{"instance": id, "op": op, "error": err.Error()})
}

func (InstanceTracer) Panic(id, op string, recovered interface{}) {
	logging.Trace("instance.panic", map[string]interface{}{"instance": id, "op": op, "panic": recovered})
}

func (RefreshTracer) Fire(time, instances int) {
	logging.Trace("refresh.fire", map[string]interface{}{"time": time, "instances": instances})
}
