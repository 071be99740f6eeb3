package dispatcher

import (
	"errors"
	"fmt"
	"testing"

	"github.com/atomicstack/gridmenu/internal/backend"
	"github.com/atomicstack/gridmenu/internal/catalog"
	"github.com/atomicstack/gridmenu/internal/clock"
	"github.com/atomicstack/gridmenu/internal/grid"
	"github.com/atomicstack/gridmenu/internal/menu"
	"github.com/atomicstack/gridmenu/internal/state"
	"github.com/atomicstack/gridmenu/internal/testutil"
)

func listings(n int) []catalog.Listing {
	out := make([]catalog.Listing, n)
	for i := range out {
		out[i] = catalog.Listing{ID: fmt.Sprintf("l%d", i), Item: fmt.Sprintf("item%d", i), Icon: "stone", Amount: 1}
	}
	return out
}

func setup(t *testing.T) (*Dispatcher, state.ListingStore, *menu.Engine, *menu.Template) {
	t.Helper()
	store := state.NewListingStore()
	e := menu.NewEngine(grid.NewWindowProvider(), clock.NewScheduler())
	tmpl := menu.NewBuilder(e, "list", 1).
		PageSlots("0-8").
		Opening(func(in *menu.Instance) bool {
			in.SetPagedContent(func() []menu.Item {
				var items []menu.Item
				for _, l := range store.Listings() {
					items = append(items, menu.Static(grid.Cell{Icon: l.Icon, Name: l.Item}))
				}
				return items
			})
			return true
		}).
		MustBuild()
	return New(store, e), store, e, tmpl
}

func TestHandleListingsRepaginatesLiveMenus(t *testing.T) {
	d, store, _, tmpl := setup(t)
	sink := testutil.NewSink("alice")
	in, err := tmpl.Show(sink, nil)
	if err != nil {
		t.Fatalf("show failed: %v", err)
	}
	if in.ItemCount() != 0 {
		t.Fatalf("expected empty menu, got %d items", in.ItemCount())
	}

	res := d.Handle(backend.Event{Kind: backend.KindListings, Data: listings(3)})
	if !res.ListingsUpdated || res.Repaginated != 1 {
		t.Fatalf("unexpected result %+v", res)
	}
	if len(store.Listings()) != 3 {
		t.Fatalf("expected store to hold 3 listings")
	}
	if in.ItemCount() != 3 {
		t.Fatalf("expected live menu to repaginate, got %d items", in.ItemCount())
	}
	if got := sink.Screens[in.Surface().ID()][2].Name; got != "item2" {
		t.Fatalf("expected item2 on slot 2, got %q", got)
	}
}

func TestHandleErrorLeavesStoreUntouched(t *testing.T) {
	d, store, _, _ := setup(t)
	store.SetListings(listings(2))
	res := d.Handle(backend.Event{Kind: backend.KindListings, Err: errors.New("boom")})
	if res.ListingsUpdated {
		t.Fatalf("expected error event to be ignored")
	}
	if len(store.Listings()) != 2 {
		t.Fatalf("expected store to keep its listings")
	}
}

func TestBroadcastSkipsNothingWhenIdle(t *testing.T) {
	d, _, e, _ := setup(t)
	if n := d.Broadcast(); n != 0 {
		t.Fatalf("expected no instances, got %d", n)
	}
	if len(e.Instances()) != 0 {
		t.Fatalf("expected engine to stay idle")
	}
	if (&Dispatcher{}).Broadcast() != 0 {
		t.Fatalf("expected nil engine to be a no-op")
	}
}
