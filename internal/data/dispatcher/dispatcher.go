package dispatcher

import (
	"github.com/atomicstack/gridmenu/internal/backend"
	"github.com/atomicstack/gridmenu/internal/catalog"
	"github.com/atomicstack/gridmenu/internal/logging"
	"github.com/atomicstack/gridmenu/internal/logging/events"
	"github.com/atomicstack/gridmenu/internal/menu"
	"github.com/atomicstack/gridmenu/internal/state"
)

type Result struct {
	ListingsUpdated bool
	Repaginated     int
}

// Dispatcher applies backend events to the stores and re-supplies the paged
// content of live menus. It must run on the engine loop.
type Dispatcher struct {
	listings state.ListingStore
	engine   *menu.Engine
}

func New(l state.ListingStore, e *menu.Engine) *Dispatcher {
	return &Dispatcher{listings: l, engine: e}
}

func (d *Dispatcher) Handle(evt backend.Event) Result {
	var res Result
	if evt.Err != nil {
		logging.Error(evt.Err)
		return res
	}
	switch evt.Kind {
	case backend.KindListings:
		if listings, ok := evt.Data.([]catalog.Listing); ok {
			d.listings.SetListings(listings)
			res.ListingsUpdated = true
			res.Repaginated = d.Broadcast()
			events.Catalog.Apply(len(listings), res.Repaginated)
		}
	}
	return res
}

// Broadcast repaginates every live instance and returns how many there were.
func (d *Dispatcher) Broadcast() int {
	if d.engine == nil {
		return 0
	}
	live := d.engine.Instances()
	for _, in := range live {
		in.Repaginate()
	}
	return len(live)
}
