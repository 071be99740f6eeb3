package menu

import (
	"slices"

	"github.com/atomicstack/gridmenu/internal/clock"
	"github.com/atomicstack/gridmenu/internal/logging/events"
)

// DefaultRefreshInterval is the number of ticks between refresh firings.
const DefaultRefreshInterval = 10

// Refresher is the single repeating task that redraws items with a refresh
// period. Its time counter starts at 0 and grows by the interval after each
// firing, so item periods are expressed in ticks.
type Refresher struct {
	interval int
	time     int
	live     []*Instance
	task     clock.Task
}

func newRefresher(c clock.Clock, interval int) *Refresher {
	r := &Refresher{interval: interval}
	if c != nil {
		r.task = c.ScheduleRepeating(interval, r.Fire)
	}
	return r
}

func (r *Refresher) Interval() int { return r.interval }

// Time returns the counter value the next firing will use.
func (r *Refresher) Time() int { return r.time }

// Len returns the number of registered instances.
func (r *Refresher) Len() int { return len(r.live) }

// Fire refreshes every registered instance, fixed items before page items,
// then advances the counter.
func (r *Refresher) Fire() {
	now := r.time
	live := append(r.live[:0:0], r.live...)
	events.Refresh.Fire(now, len(live))
	for _, in := range live {
		if in.Closed() {
			continue
		}
		in.refresh(now)
	}
	r.time += r.interval
}

func (r *Refresher) add(in *Instance) {
	r.live = append(r.live, in)
}

func (r *Refresher) remove(in *Instance) {
	r.live = slices.DeleteFunc(r.live, func(other *Instance) bool { return other == in })
}

func (r *Refresher) stop() {
	if r.task != nil {
		r.task.Cancel()
		r.task = nil
	}
}
