package engine

import (
	"sync/atomic"
	"time"

	"github.com/gammazero/deque"

	"github.com/lixenwraith/ringmotion/status"
)

// Task is a one-shot callback registered with a Scheduler
type Task struct {
	due   time.Time
	seq   uint64
	fn    func()
	sched *Scheduler
	state taskState
}

type taskState uint8

const (
	taskPending taskState = iota
	taskFired
	taskCancelled
)

// Due returns the time the task fires at or after
func (t *Task) Due() time.Time { return t.due }

// Pending reports whether the task has neither fired nor been cancelled
func (t *Task) Pending() bool { return t.state == taskPending }

// Fired reports whether the callback ran
func (t *Task) Fired() bool { return t.state == taskFired }

// Cancel removes a pending task; returns false if it already fired or was cancelled
func (t *Task) Cancel() bool {
	if t.state != taskPending {
		return false
	}
	t.state = taskCancelled
	t.sched.remove(t)
	return true
}

// before orders tasks by due time, then registration order
func (t *Task) before(o *Task) bool {
	if t.due.Equal(o.due) {
		return t.seq < o.seq
	}
	return t.due.Before(o.due)
}

// Scheduler runs one-shot delayed callbacks on the host's loop
// Callbacks only run inside Advance, so everything a caller does between two Advance
// calls is atomic relative to scheduled work
// Not safe for concurrent use; owned by a single host goroutine
type Scheduler struct {
	clock Clock
	queue deque.Deque[*Task] // Sorted by (due, seq)
	seq   uint64

	statFired     *atomic.Int64
	statCancelled *atomic.Int64
	statPending   *atomic.Int64
	statLag       *status.AtomicFloat // Lateness of the last fired task, ms
}

// NewScheduler creates a scheduler reading time from clock
// reg may be nil when metrics are not wanted
func NewScheduler(clock Clock, reg *status.Registry) *Scheduler {
	if reg == nil {
		reg = status.NewRegistry()
	}
	return &Scheduler{
		clock:         clock,
		statFired:     reg.Ints.Get("scheduler.fired"),
		statCancelled: reg.Ints.Get("scheduler.cancelled"),
		statPending:   reg.Ints.Get("scheduler.pending"),
		statLag:       reg.Floats.Get("scheduler.lag_ms"),
	}
}

// Now returns the scheduler's current time
func (s *Scheduler) Now() time.Time {
	return s.clock.Now()
}

// After registers fn to run once at least d has elapsed; negative d counts as zero
func (s *Scheduler) After(d time.Duration, fn func()) *Task {
	if d < 0 {
		d = 0
	}
	s.seq++
	t := &Task{
		due:   s.clock.Now().Add(d),
		seq:   s.seq,
		fn:    fn,
		sched: s,
	}

	// Scan from the back: staggered registrations mostly arrive in due order
	i := s.queue.Len()
	for i > 0 && t.before(s.queue.At(i-1)) {
		i--
	}
	if i == s.queue.Len() {
		s.queue.PushBack(t)
	} else {
		s.queue.Insert(i, t)
	}
	s.statPending.Store(int64(s.queue.Len()))
	return t
}

// Advance fires every task due at or before the current time, in due order
// Tasks registered by a callback that are already due run in the same call
// Returns the number of callbacks run
func (s *Scheduler) Advance() int {
	now := s.clock.Now()
	fired := 0
	for s.queue.Len() > 0 {
		t := s.queue.Front()
		if t.due.After(now) {
			break
		}
		s.queue.PopFront()
		t.state = taskFired
		s.statLag.Set(float64(now.Sub(t.due)) / float64(time.Millisecond))
		s.statPending.Store(int64(s.queue.Len()))
		t.fn()
		fired++
	}
	if fired > 0 {
		s.statFired.Add(int64(fired))
	}
	return fired
}

// Pending returns the number of registered tasks not yet fired or cancelled
func (s *Scheduler) Pending() int {
	return s.queue.Len()
}

// NextDue returns the due time of the earliest pending task
func (s *Scheduler) NextDue() (time.Time, bool) {
	if s.queue.Len() == 0 {
		return time.Time{}, false
	}
	return s.queue.Front().due, true
}

// CancelAll cancels every pending task and returns how many were dropped
func (s *Scheduler) CancelAll() int {
	n := s.queue.Len()
	for i := 0; i < n; i++ {
		s.queue.At(i).state = taskCancelled
	}
	s.queue.Clear()
	s.statCancelled.Add(int64(n))
	s.statPending.Store(0)
	return n
}

func (s *Scheduler) remove(t *Task) {
	if i := s.queue.Index(func(q *Task) bool { return q == t }); i >= 0 {
		s.queue.Remove(i)
	}
	s.statCancelled.Add(1)
	s.statPending.Store(int64(s.queue.Len()))
}
