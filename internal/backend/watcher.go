package backend

import (
	"context"
	"os"
	"sync"
	"time"

	"github.com/atomicstack/gridmenu/internal/catalog"
	"github.com/atomicstack/gridmenu/internal/logging/events"
)

// Kind represents the type of data emitted by the backend watcher.
type Kind int

const (
	KindListings Kind = iota
)

// Event conveys updated data or an error from a backend poll.
type Event struct {
	Kind Kind
	Data interface{}
	Err  error
}

// Watcher polls the catalogue file at a fixed interval and publishes an
// event whenever its contents change.
type Watcher struct {
	path     string
	interval time.Duration

	ctx    context.Context
	cancel context.CancelFunc

	events chan Event
	wg     sync.WaitGroup
}

// NewWatcher creates a watcher that checks path every interval. The first
// load is always published.
func NewWatcher(path string, interval time.Duration) *Watcher {
	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		path:     path,
		interval: interval,
		ctx:      ctx,
		cancel:   cancel,
		events:   make(chan Event, 16),
	}

	w.startListingPoller()

	go func() {
		w.wg.Wait()
		close(w.events)
	}()

	return w
}

// Events returns a channel of backend events.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Stop cancels the watcher. Pollers exit after their current fetch completes;
// use Wait if a clean drain is required (e.g. in tests).
func (w *Watcher) Stop() {
	w.cancel()
}

// Wait blocks until all poller goroutines have exited and the events channel
// is closed. Call after Stop when a clean shutdown is required.
func (w *Watcher) Wait() {
	w.wg.Wait()
}

type fileStamp struct {
	mod  time.Time
	size int64
	err  string
}

func (w *Watcher) startListingPoller() {
	throttle := newThrottle(250 * time.Millisecond)
	var last *fileStamp
	w.wg.Add(1)
	go w.poll(KindListings, func(ctx context.Context) (interface{}, bool, error) {
		if err := throttle.wait(ctx); err != nil {
			return nil, false, nil
		}
		stamp := fileStamp{}
		info, err := os.Stat(w.path)
		if err != nil {
			stamp.err = err.Error()
		} else {
			stamp.mod, stamp.size = info.ModTime(), info.Size()
		}
		if last != nil && *last == stamp {
			return nil, false, nil
		}
		last = &stamp
		if err != nil {
			return nil, true, err
		}
		listings, err := catalog.Load(w.path)
		if err == nil {
			events.Catalog.Load(w.path, len(listings))
		}
		return listings, true, err
	})
}

func (w *Watcher) poll(kind Kind, fetch func(context.Context) (interface{}, bool, error)) {
	defer w.wg.Done()

	emit := func() bool {
		data, changed, err := fetch(w.ctx)
		if !changed {
			return true
		}
		evt := Event{Kind: kind, Data: data, Err: err}
		select {
		case <-w.ctx.Done():
			return false
		case w.events <- evt:
			return true
		}
	}

	if !emit() {
		return
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return
		case <-ticker.C:
			if !emit() {
				return
			}
		}
	}
}
