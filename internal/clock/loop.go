package clock

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrLoopStopped is returned when work is submitted after the loop exited.
var ErrLoopStopped = errors.New("engine loop stopped")

const (
	// DefaultTick is the duration of one tick (20 ticks per second).
	DefaultTick  = 50 * time.Millisecond
	defaultQueue = 256
)

// Loop owns the goroutine every engine mutation runs on. Ticks advance the
// scheduler; submitted functions run between ticks in submission order.
type Loop struct {
	sched *Scheduler
	tick  time.Duration
	cmds  chan func()
	done  chan struct{}

	mu       sync.Mutex
	stopping []func()
}

// NewLoop creates a loop around sched. A non-positive tick uses DefaultTick.
func NewLoop(sched *Scheduler, tick time.Duration) *Loop {
	if tick <= 0 {
		tick = DefaultTick
	}
	return &Loop{
		sched: sched,
		tick:  tick,
		cmds:  make(chan func(), defaultQueue),
		done:  make(chan struct{}),
	}
}

// Clock returns the scheduler driven by the loop. Its methods may only be
// called from functions running on the loop.
func (l *Loop) Clock() Clock { return l.sched }

// OnStop registers fn to run on the loop goroutine when Run returns.
func (l *Loop) OnStop(fn func()) {
	l.mu.Lock()
	l.stopping = append(l.stopping, fn)
	l.mu.Unlock()
}

// Run processes ticks and submitted work until ctx is cancelled.
func (l *Loop) Run(ctx context.Context) error {
	ticker := time.NewTicker(l.tick)
	defer ticker.Stop()
	defer close(l.done)
	for {
		select {
		case <-ctx.Done():
			l.drain()
			l.mu.Lock()
			hooks := l.stopping
			l.mu.Unlock()
			for _, fn := range hooks {
				run(fn)
			}
			return nil
		case fn := <-l.cmds:
			run(fn)
		case <-ticker.C:
			l.sched.Step()
		}
	}
}

func (l *Loop) drain() {
	for {
		select {
		case fn := <-l.cmds:
			run(fn)
		default:
			return
		}
	}
}

// Done is closed once Run has returned.
func (l *Loop) Done() <-chan struct{} { return l.done }

// Do queues fn to run on the loop. It returns at once while the queue has
// room and blocks while it is full, so functions running on the loop must
// not call it; they run follow-up work directly.
func (l *Loop) Do(fn func()) error {
	select {
	case <-l.done:
		return ErrLoopStopped
	default:
	}
	select {
	case l.cmds <- fn:
		return nil
	case <-l.done:
		return ErrLoopStopped
	}
}

// Call runs fn on the loop and waits for it to finish.
func (l *Loop) Call(ctx context.Context, fn func()) error {
	finished := make(chan struct{})
	if err := l.Do(func() {
		defer close(finished)
		fn()
	}); err != nil {
		return err
	}
	select {
	case <-finished:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-l.done:
		select {
		case <-finished:
			return nil
		default:
			return ErrLoopStopped
		}
	}
}
