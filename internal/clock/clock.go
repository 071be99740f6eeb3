// Package clock provides the tick-based scheduling the menu engine runs on.
// A Scheduler holds the queue of pending callbacks and is advanced one tick
// at a time; a Loop drives it from a ticker and serialises every other piece
// of work onto the same goroutine.
package clock

import (
	"container/heap"
	"fmt"

	"github.com/atomicstack/gridmenu/internal/logging"
)

// Task is a scheduled callback.
type Task interface {
	Cancel()
}

// Clock schedules callbacks in ticks. Callbacks always run on the goroutine
// that advances the clock.
type Clock interface {
	ScheduleRepeating(interval int, fn func()) Task
	ScheduleOnce(delay int, fn func()) Task
	Now() int
}

type task struct {
	due       int
	seq       uint64
	interval  int
	fn        func()
	cancelled bool
}

func (t *task) Cancel() { t.cancelled = true }

type taskQueue []*task

func (q taskQueue) Len() int { return len(q) }

func (q taskQueue) Less(i, j int) bool {
	if q[i].due != q[j].due {
		return q[i].due < q[j].due
	}
	return q[i].seq < q[j].seq
}

func (q taskQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *taskQueue) Push(x any) { *q = append(*q, x.(*task)) }

func (q *taskQueue) Pop() any {
	old := *q
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return t
}

// Scheduler is a deterministic Clock. Nothing happens until Step is called.
// It is not safe for concurrent use.
type Scheduler struct {
	now   int
	seq   uint64
	queue taskQueue
}

// NewScheduler returns a scheduler at tick 0.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Now returns the current tick.
func (s *Scheduler) Now() int { return s.now }

// Pending returns the number of queued tasks, cancelled ones included.
func (s *Scheduler) Pending() int { return len(s.queue) }

// ScheduleOnce runs fn after delay ticks. Delays below one are treated as
// one, so a callback never runs inside the tick that scheduled it.
func (s *Scheduler) ScheduleOnce(delay int, fn func()) Task {
	return s.push(delay, 0, fn)
}

// ScheduleRepeating runs fn every interval ticks, starting interval ticks
// from now.
func (s *Scheduler) ScheduleRepeating(interval int, fn func()) Task {
	if interval < 1 {
		interval = 1
	}
	return s.push(interval, interval, fn)
}

func (s *Scheduler) push(delay, interval int, fn func()) *task {
	if delay < 1 {
		delay = 1
	}
	s.seq++
	t := &task{due: s.now + delay, seq: s.seq, interval: interval, fn: fn}
	heap.Push(&s.queue, t)
	return t
}

// Step advances the clock by one tick and runs every task that became due,
// in the order they were scheduled. A panicking task is logged and, if
// repeating, stays scheduled.
func (s *Scheduler) Step() {
	s.now++
	for len(s.queue) > 0 && s.queue[0].due <= s.now {
		t := heap.Pop(&s.queue).(*task)
		if t.cancelled {
			continue
		}
		run(t.fn)
		if t.interval > 0 && !t.cancelled {
			s.seq++
			t.due += t.interval
			t.seq = s.seq
			heap.Push(&s.queue, t)
		}
	}
}

// Advance calls Step n times.
func (s *Scheduler) Advance(n int) {
	for i := 0; i < n; i++ {
		s.Step()
	}
}

func run(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			logging.Error(fmt.Errorf("clock task panic: %v", r))
		}
	}()
	fn()
}
