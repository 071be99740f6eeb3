package events

import "github.com/atomicstack/gridmenu/internal/logging"

type TransportTracer struct{}

type CatalogTracer struct{}

var (
	Transport = TransportTracer{}
	Catalog   = CatalogTracer{}
)

func (TransportTracer) Connect(viewer, remote string) {
	logging.Trace("transport.connect", map[string]interface{}{"viewer": viewer, "remote": remote})
}

func (TransportTracer) Disconnect(viewer string, err error) {
	payload := map[string]interface{}{"viewer": viewer}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("transport.disconnect", payload)
}

func (TransportTracer) Drop(viewer string, queued int) {
	logging.Trace("transport.drop", map[string]interface{}{"viewer": viewer, "queued": queued})
}

func (TransportTracer) Message(viewer, kind string) {
	logging.Trace("transport.message", map[string]interface{}{"viewer": viewer, "type": kind})
}

func (CatalogTracer) Load(path string, listings int) {
	logging.Trace("catalog.load", map[string]interface{}{"path": path, "listings": listings})
}

func (CatalogTracer) Apply(listings, instances int) {
	logging.Trace("catalog.apply", map[string]interface{}{"listings": listings, "instances": instances})
}
