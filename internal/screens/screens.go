// Package screens defines the demo menus served by gridmenu: an auction
// browser paging through the catalogue, a listing detail view and a
// confirmation dialog.
package screens

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/atomicstack/gridmenu/internal/anim"
	"github.com/atomicstack/gridmenu/internal/catalog"
	"github.com/atomicstack/gridmenu/internal/grid"
	"github.com/atomicstack/gridmenu/internal/logging"
	"github.com/atomicstack/gridmenu/internal/menu"
	"github.com/atomicstack/gridmenu/internal/state"
)

const (
	BrowserName = "auction"
	DetailName  = "listing"
	ConfirmName = "confirm"
)

const (
	// countdownRefresh redraws listing lore once a second at 20 ticks/s.
	countdownRefresh = 20
	navRefresh       = 10

	browserBorder = "0,1-8,9,17,18,26,27,35,36,44,45-52,53"
	browserPages  = "10-16,19-25,28-34,37-43"
	browserPrev   = 45
	browserNext   = 53
	browserClose  = 49
	browserInfo   = 4

	detailItem = 13
	detailBuy  = 11
	detailBack = 15

	confirmYes    = 2
	confirmPrompt = 4
	confirmNo     = 6
)

// Deps are the collaborators the screens read from.
type Deps struct {
	Store state.ListingStore
	// Now defaults to time.Now.
	Now func() time.Time
	// Changed runs after a purchase removed a listing.
	Changed func()
}

// Screens holds the registered templates.
type Screens struct {
	deps    Deps
	Browser *menu.Template
	Detail  *menu.Template
	Confirm *menu.Template
}

// Confirmation is the argument of the confirm dialog. OnCancel runs when
// the dialog closes without an answer.
type Confirmation struct {
	Prompt    string
	OnConfirm func(*menu.Instance)
	OnCancel  func(*menu.Instance)

	answered bool
}

// Register builds the demo templates on e.
func Register(e *menu.Engine, deps Deps) (*Screens, error) {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	s := &Screens{deps: deps}
	var err error
	if s.Browser, err = s.buildBrowser(e); err != nil {
		return nil, err
	}
	if s.Detail, err = s.buildDetail(e); err != nil {
		return nil, err
	}
	if s.Confirm, err = s.buildConfirm(e); err != nil {
		return nil, err
	}
	return s, nil
}

func query(arg any) string {
	q, _ := arg.(string)
	return q
}

func (s *Screens) buildBrowser(e *menu.Engine) (*menu.Template, error) {
	return menu.NewBuilder(e, BrowserName, 6).
		TitleFunc(func(_ grid.Viewer, arg any) string {
			if q := query(arg); q != "" {
				return "Auction House: " + q
			}
			return "Auction House"
		}).
		Fixed(browserBorder, menu.Static(fillerCell)).
		PageSlots(browserPages).
		Fixed(fmt.Sprint(browserInfo), menu.Item{
			Refresh: navRefresh,
			Supplier: func(in *menu.Instance) grid.Cell {
				return summaryCell(in.ItemCount(), query(in.Arg()))
			},
		}).
		Fixed(fmt.Sprint(browserPrev), menu.Item{
			Refresh: navRefresh,
			Supplier: func(in *menu.Instance) grid.Cell {
				return pageCell("arrow", "Previous page", in.Page(), in.PageCount())
			},
			OnClick: func(in *menu.Instance, ev *grid.ClickEvent) {
				delta := -1
				if ev.Kind.IsShift() {
					delta = -in.Page()
				}
				s.turn(in, delta, anim.Right)
			},
		}).
		Fixed(fmt.Sprint(browserNext), menu.Item{
			Refresh: navRefresh,
			Supplier: func(in *menu.Instance) grid.Cell {
				return pageCell("arrow", "Next page", in.Page(), in.PageCount())
			},
			OnClick: func(in *menu.Instance, ev *grid.ClickEvent) {
				delta := 1
				if ev.Kind.IsShift() {
					delta = in.PageCount() - 1 - in.Page()
				}
				s.turn(in, delta, anim.Left)
			},
		}).
		Fixed(fmt.Sprint(browserClose), menu.Button(closeCell, func(in *menu.Instance, _ *grid.ClickEvent) {
			in.Close()
		})).
		Opening(func(in *menu.Instance) bool {
			q := query(in.Arg())
			in.SetPagedContent(func() []menu.Item { return s.listingItems(q) })
			return true
		}).
		Closed(func(*menu.Instance) bool { return true }).
		Build()
}

func (s *Screens) turn(in *menu.Instance, delta int, dir anim.Direction) {
	if delta == 0 || !in.TurnPage(delta, dir) {
		return
	}
	if err := in.Redraw(fmt.Sprintf("%d,%d,%d", browserPrev, browserNext, browserInfo)); err != nil {
		logging.Error(err)
	}
}

func (s *Screens) listingItems(q string) []menu.Item {
	now := s.deps.Now()
	var items []menu.Item
	for _, l := range filterListings(s.deps.Store.Listings(), q) {
		if l.Remaining(now) == 0 {
			continue
		}
		items = append(items, s.listingItem(l))
	}
	if len(items) == 0 {
		return []menu.Item{menu.Static(emptyCell)}
	}
	return items
}

func (s *Screens) listingItem(l catalog.Listing) menu.Item {
	return menu.Item{
		Refresh: countdownRefresh,
		Supplier: func(*menu.Instance) grid.Cell {
			return listingCell(l, s.deps.Now())
		},
		OnClick: func(in *menu.Instance, _ *grid.ClickEvent) {
			if _, err := in.SwitchTo(s.Detail, l.ID, menu.WithAnimation(anim.Up)); err != nil {
				logging.Error(err)
			}
		},
	}
}

func (s *Screens) buildDetail(e *menu.Engine) (*menu.Template, error) {
	return menu.NewBuilder(e, DetailName, 3).
		TitleFunc(func(_ grid.Viewer, arg any) string {
			if l, ok := s.deps.Store.Listing(query(arg)); ok {
				return l.Item
			}
			return "Listing"
		}).
		Fixed("*", menu.Static(fillerCell)).
		Fixed(fmt.Sprint(detailItem), menu.Item{
			Refresh: countdownRefresh,
			Supplier: func(in *menu.Instance) grid.Cell {
				l, ok := s.deps.Store.Listing(query(in.Arg()))
				if !ok {
					return soldCell
				}
				return listingCell(l, s.deps.Now())
			},
		}).
		Fixed(fmt.Sprint(detailBuy), menu.Item{
			Supplier: func(in *menu.Instance) grid.Cell {
				l, ok := s.deps.Store.Listing(query(in.Arg()))
				if !ok {
					return soldCell
				}
				return grid.Cell{Icon: "emerald", Name: "Buy", Lore: []string{"for " + humanize.Comma(l.Price)}}
			},
			OnClick: func(in *menu.Instance, _ *grid.ClickEvent) {
				s.askToBuy(in, query(in.Arg()))
			},
		}).
		Fixed(fmt.Sprint(detailBack), menu.Button(backCell, func(in *menu.Instance, _ *grid.ClickEvent) {
			if _, err := in.SwitchTo(s.Browser, "", menu.WithAnimation(anim.Down)); err != nil {
				logging.Error(err)
			}
		})).
		Opening(func(in *menu.Instance) bool {
			_, ok := s.deps.Store.Listing(query(in.Arg()))
			return ok
		}).
		Closed(func(*menu.Instance) bool { return true }).
		Build()
}

func (s *Screens) askToBuy(in *menu.Instance, id string) {
	l, ok := s.deps.Store.Listing(id)
	if !ok {
		if err := in.Redraw(fmt.Sprintf("%d,%d", detailItem, detailBuy)); err != nil {
			logging.Error(err)
		}
		return
	}
	req := &Confirmation{
		Prompt: fmt.Sprintf("Buy %s for %s?", l.Item, humanize.Comma(l.Price)),
		OnConfirm: func(ci *menu.Instance) {
			if s.deps.Store.Remove(id) && s.deps.Changed != nil {
				s.deps.Changed()
			}
			if _, err := ci.SwitchTo(s.Browser, "", menu.WithAnimation(anim.Down)); err != nil {
				logging.Error(err)
			}
		},
		OnCancel: func(ci *menu.Instance) {
			if _, err := s.Detail.Show(ci.Viewer(), id); err != nil {
				logging.Error(err)
			}
		},
	}
	if _, err := in.SwitchTo(s.Confirm, req); err != nil {
		logging.Error(err)
	}
}

func (s *Screens) buildConfirm(e *menu.Engine) (*menu.Template, error) {
	request := func(in *menu.Instance) *Confirmation {
		req, _ := in.Arg().(*Confirmation)
		return req
	}
	return menu.NewBuilder(e, ConfirmName, 1).
		Title("Are you sure?").
		Fixed("*", menu.Static(fillerCell)).
		Fixed(fmt.Sprint(confirmPrompt), menu.Item{
			Supplier: func(in *menu.Instance) grid.Cell { return promptCell(request(in).Prompt) },
		}).
		Fixed(fmt.Sprint(confirmYes), menu.Button(confirmCell, func(in *menu.Instance, _ *grid.ClickEvent) {
			req := request(in)
			req.answered = true
			if req.OnConfirm != nil {
				req.OnConfirm(in)
			}
			in.Close()
		})).
		Fixed(fmt.Sprint(confirmNo), menu.Button(cancelCell, func(in *menu.Instance, _ *grid.ClickEvent) {
			in.Close()
		})).
		Opening(func(in *menu.Instance) bool {
			req := request(in)
			if req == nil {
				return false
			}
			if req.OnCancel != nil {
				in.OnCancel(req.OnCancel)
			}
			return true
		}).
		Closed(func(in *menu.Instance) bool { return request(in).answered }).
		Build()
}
