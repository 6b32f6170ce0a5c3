// Package animation schedules circular-arrangement trajectories and hands them to a consumer
package animation

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/BrugadaSyndrome/bslogger"
	"github.com/google/uuid"

	"github.com/lixenwraith/ringmotion/core"
	"github.com/lixenwraith/ringmotion/engine"
	"github.com/lixenwraith/ringmotion/event"
	"github.com/lixenwraith/ringmotion/parameter"
	"github.com/lixenwraith/ringmotion/status"
	"github.com/lixenwraith/ringmotion/trajectory"
)

// Config is the instance-level setup of an Animator
type Config struct {
	Circle   core.Circle
	Angular  trajectory.Angular
	Step     float64         // Degrees per sample; zero uses parameter.StepDegrees
	Wrap     trajectory.Wrap // Seam handling while stepping
	Defaults Options         // Fallback for fields a call does not override

	Logger *bslogger.Logger // nil logs to stdout
	Status *status.Registry // nil keeps metrics private
	Events *event.Queue     // nil disables lifecycle events
}

// Call describes one accepted Animate invocation
type Call struct {
	ID           uuid.UUID
	Options      Options
	Delays       []time.Duration
	Trajectories []trajectory.Trajectory
}

// tracked is the per-element bookkeeping of the latest call that touched it
type tracked struct {
	call     uuid.UUID
	state    ElementState
	dispatch *engine.Task
	settle   *engine.Task
}

// Animator distributes elements around a circle with staggered trajectories
// Animate and the scheduler's Advance must run on the same goroutine
type Animator[E comparable] struct {
	cfg      Config
	consumer Consumer[E]
	sched    *engine.Scheduler
	logger   bslogger.Logger
	events   *event.Queue

	elements map[E]*tracked

	statCalls      *atomic.Int64
	statRejected   *atomic.Int64
	statSuperseded *atomic.Int64
	statDispatched *atomic.Int64
	statSettled    *atomic.Int64
}

// New creates an Animator; the layout and defaults are validated up front
func New[E comparable](cfg Config, consumer Consumer[E], sched *engine.Scheduler) (*Animator[E], error) {
	if consumer == nil {
		return nil, fmt.Errorf("%w: nil consumer", trajectory.ErrInvalidConfiguration)
	}
	if sched == nil {
		return nil, fmt.Errorf("%w: nil scheduler", trajectory.ErrInvalidConfiguration)
	}
	if err := cfg.Defaults.Validate(); err != nil {
		return nil, fmt.Errorf("defaults: %w", err)
	}
	if err := cfg.params(0, trajectory.Enter).Validate(); err != nil {
		return nil, err
	}

	reg := cfg.Status
	if reg == nil {
		reg = status.NewRegistry()
	}

	a := &Animator[E]{
		cfg:            cfg,
		consumer:       consumer,
		sched:          sched,
		events:         cfg.Events,
		elements:       make(map[E]*tracked),
		statCalls:      reg.Ints.Get("animator.calls"),
		statRejected:   reg.Ints.Get("animator.rejected"),
		statSuperseded: reg.Ints.Get("animator.superseded"),
		statDispatched: reg.Ints.Get("animator.dispatched"),
		statSettled:    reg.Ints.Get("animator.settled"),
	}
	if cfg.Logger != nil {
		a.logger = *cfg.Logger
	} else {
		a.logger = bslogger.NewLogger("Animator", bslogger.Normal, nil)
	}
	return a, nil
}

func (c Config) params(count int, mode trajectory.Mode) trajectory.Params {
	return trajectory.Params{
		Circle:  c.Circle,
		Angular: c.Angular,
		Count:   count,
		Mode:    mode,
		Step:    c.Step,
		Wrap:    c.Wrap,
	}
}

// Defaults returns a copy of the instance defaults
func (a *Animator[E]) Defaults() Options {
	return a.cfg.Defaults
}

// SetLayout replaces the circle and angular distribution used by later calls
// In-flight trajectories are unaffected
func (a *Animator[E]) SetLayout(c core.Circle, ang trajectory.Angular) error {
	next := a.cfg
	next.Circle = c
	next.Angular = ang
	if err := next.params(0, trajectory.Enter).Validate(); err != nil {
		return err
	}
	a.cfg = next
	return nil
}

// State returns the lifecycle state of e; elements never animated are Idle
func (a *Animator[E]) State(e E) ElementState {
	if t, ok := a.elements[e]; ok {
		return t.state
	}
	return Idle
}

// Forget drops bookkeeping for e, cancelling anything still scheduled for it
func (a *Animator[E]) Forget(e E) {
	if t, ok := a.elements[e]; ok {
		a.cancel(t)
		delete(a.elements, e)
	}
}

// Animate places every element at its trajectory's first point and schedules the rest
// All validation happens before any element is touched; on error nothing changes
// An empty element slice is a no-op
func (a *Animator[E]) Animate(elements []E, ov Overrides) (Call, error) {
	opts := a.cfg.Defaults.Merge(ov)
	if err := opts.Validate(); err != nil {
		return a.reject(err)
	}

	count := len(elements)
	seen := make(map[E]struct{}, count)
	for i, e := range elements {
		if _, dup := seen[e]; dup {
			return a.reject(fmt.Errorf("%w: element at index %d appears more than once", trajectory.ErrInvalidConfiguration, i))
		}
		seen[e] = struct{}{}
	}

	trajs, err := trajectory.GenerateAll(a.cfg.params(count, opts.Mode))
	if err != nil {
		return a.reject(err)
	}
	if count == 0 {
		return Call{Options: opts}, nil
	}

	call := Call{
		ID:           uuid.New(),
		Options:      opts,
		Delays:       make([]time.Duration, count),
		Trajectories: trajs,
	}
	a.statCalls.Add(1)
	a.logger.Debugf("call %s: %d element(s), mode=%v order=%v duration=%v delay=%v curve=%v",
		call.ID, count, opts.Mode, opts.Order, opts.Duration, opts.DelayUnit, opts.Curve)

	// Supersede earlier calls before placing anything
	for i, e := range elements {
		if prev, ok := a.elements[e]; ok && a.cancel(prev) {
			a.statSuperseded.Add(1)
			a.emit(event.EventSuperseded, prev.call, i, count)
		}
	}

	// Synchronous placement; no task of this call can fire before Advance
	states := make([]*tracked, count)
	for i, e := range elements {
		t := &tracked{call: call.ID, state: Positioned}
		a.elements[e] = t
		states[i] = t
		a.consumer.SetPosition(e, trajs[i].First().Point)
		a.emit(event.EventPositioned, call.ID, i, count)
	}

	for i, e := range elements {
		delay := Delay(i, count, opts.Order, opts.DelayUnit)
		call.Delays[i] = delay

		sub := Submission{
			Key:        parameter.AnimationKey,
			Trajectory: trajs[i],
			Duration:   opts.Duration,
			Curve:      opts.Curve,
		}
		t := states[i]
		t.dispatch = a.sched.After(delay, func() {
			a.dispatch(e, t, sub, i, count)
		})
	}

	return call, nil
}

// dispatch runs when an element's delay elapses
func (a *Animator[E]) dispatch(e E, t *tracked, sub Submission, index, count int) {
	t.dispatch = nil
	a.consumer.SetPosition(e, sub.Trajectory.Last().Point)
	a.consumer.Submit(e, sub)
	t.state = Animating
	a.statDispatched.Add(1)
	a.emit(event.EventDispatched, t.call, index, count)
	a.logger.Debugf("call %s: dispatched element %d/%d (%d samples)", t.call, index+1, count, sub.Trajectory.Len())

	t.settle = a.sched.After(sub.Duration, func() {
		t.settle = nil
		t.state = Settled
		a.statSettled.Add(1)
		a.emit(event.EventSettled, t.call, index, count)
	})
}

// cancel drops pending tasks of t; reports whether a dispatch was still pending
func (a *Animator[E]) cancel(t *tracked) bool {
	pending := false
	if t.dispatch != nil {
		pending = t.dispatch.Cancel()
		t.dispatch = nil
	}
	if t.settle != nil {
		t.settle.Cancel()
		t.settle = nil
	}
	return pending
}

func (a *Animator[E]) reject(err error) (Call, error) {
	a.statRejected.Add(1)
	a.logger.Warningf("animate rejected: %v", err)
	return Call{}, err
}

func (a *Animator[E]) emit(typ event.Type, call uuid.UUID, index, count int) {
	if a.events == nil {
		return
	}
	a.events.Push(event.Event{
		Type:  typ,
		Call:  call,
		Index: index,
		Count: count,
		At:    a.sched.Now(),
	})
}
