package animation

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/lixenwraith/ringmotion/core"
	"github.com/lixenwraith/ringmotion/curve"
	"github.com/lixenwraith/ringmotion/engine"
	"github.com/lixenwraith/ringmotion/event"
	"github.com/lixenwraith/ringmotion/parameter"
	"github.com/lixenwraith/ringmotion/status"
	"github.com/lixenwraith/ringmotion/trajectory"
)

var epoch = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

// --- Test helpers ---

type record struct {
	op  string // "set" or "submit"
	el  string
	pt  core.Point
	sub Submission
	at  time.Time
}

type recorder struct {
	clock engine.Clock
	log   []record
}

func (r *recorder) SetPosition(e string, p core.Point) {
	r.log = append(r.log, record{op: "set", el: e, pt: p, at: r.clock.Now()})
}

func (r *recorder) Submit(e string, s Submission) {
	r.log = append(r.log, record{op: "submit", el: e, sub: s, at: r.clock.Now()})
}

func (r *recorder) ops(op string) []record {
	var out []record
	for _, rec := range r.log {
		if rec.op == op {
			out = append(out, rec)
		}
	}
	return out
}

type harness struct {
	anim   *Animator[string]
	rec    *recorder
	clock  *engine.MockTimeProvider
	sched  *engine.Scheduler
	reg    *status.Registry
	events *event.Queue
}

func newHarness(t *testing.T, ang trajectory.Angular) *harness {
	t.Helper()
	clock := engine.NewMockTimeProvider(epoch)
	reg := status.NewRegistry()
	sched := engine.NewScheduler(clock, reg)
	rec := &recorder{clock: clock}
	events := event.NewQueue()

	anim, err := New[string](Config{
		Circle:   core.Circle{Radius: 100},
		Angular:  ang,
		Defaults: DefaultOptions(),
		Status:   reg,
		Events:   events,
	}, rec, sched)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return &harness{anim: anim, rec: rec, clock: clock, sched: sched, reg: reg, events: events}
}

func quarter() trajectory.Angular {
	return trajectory.Angular{Source: 0, Start: 0, Sweep: 90}
}

func near(a, b core.Point) bool {
	return math.Abs(a.X-b.X) <= 1e-9 && math.Abs(a.Y-b.Y) <= 1e-9
}

func (h *harness) step(d time.Duration) {
	h.clock.Advance(d)
	h.sched.Advance()
}

// --- Placement and dispatch ---

func TestAnimatePlacesAllBeforeDispatch(t *testing.T) {
	h := newHarness(t, quarter())
	elements := []string{"a", "b", "c", "d"}

	call, err := h.anim.Animate(elements, Overrides{DelayUnit: Ptr(time.Duration(0))})
	if err != nil {
		t.Fatalf("Animate: %v", err)
	}
	if len(call.Trajectories) != 4 {
		t.Fatalf("Expected 4 trajectories, got %d", len(call.Trajectories))
	}

	// Zero delay still waits for the host loop
	if n := len(h.rec.log); n != 4 {
		t.Fatalf("Expected 4 synchronous placements, got %d", n)
	}
	for i, rec := range h.rec.log {
		if rec.op != "set" || rec.el != elements[i] {
			t.Fatalf("Expected set of %s, got %s %s", elements[i], rec.op, rec.el)
		}
		if !near(rec.pt, core.Point{X: 100, Y: 0}) {
			t.Errorf("Expected %s at source (100,0), got %v", rec.el, rec.pt)
		}
		if got := h.anim.State(rec.el); got != Positioned {
			t.Errorf("Expected %s positioned, got %v", rec.el, got)
		}
	}

	h.sched.Advance()

	subs := h.rec.ops("submit")
	if len(subs) != 4 {
		t.Fatalf("Expected 4 submissions, got %d", len(subs))
	}
	// Resting placement precedes each submission
	for i := 4; i < len(h.rec.log); i += 2 {
		set, sub := h.rec.log[i], h.rec.log[i+1]
		if set.op != "set" || sub.op != "submit" || set.el != sub.el {
			t.Fatalf("Expected set then submit for one element, got %s %s / %s %s", set.op, set.el, sub.op, sub.el)
		}
		if !near(set.pt, sub.sub.Trajectory.Last().Point) {
			t.Errorf("Expected %s set to resting point, got %v", set.el, set.pt)
		}
		if sub.sub.Key != parameter.AnimationKey {
			t.Errorf("Expected key %q, got %q", parameter.AnimationKey, sub.sub.Key)
		}
	}

	want := core.Point{X: 50, Y: 86.60254037844386}
	if got := subs[2].sub.Trajectory.Last().Point; !near(got, want) {
		t.Errorf("Expected third element resting at %v, got %v", want, got)
	}
}

func TestAnimateReversedDelays(t *testing.T) {
	h := newHarness(t, quarter())
	unit := 200 * time.Millisecond

	call, err := h.anim.Animate([]string{"a", "b", "c"}, Overrides{Order: Ptr(Reversed), DelayUnit: &unit})
	if err != nil {
		t.Fatalf("Animate: %v", err)
	}

	want := []time.Duration{600 * time.Millisecond, 400 * time.Millisecond, 200 * time.Millisecond}
	for i := range want {
		if call.Delays[i] != want[i] {
			t.Errorf("Expected delay %v for element %d, got %v", want[i], i, call.Delays[i])
		}
	}

	h.step(200 * time.Millisecond)
	if subs := h.rec.ops("submit"); len(subs) != 1 || subs[0].el != "c" {
		t.Fatalf("Expected only c dispatched at 200ms, got %v", subs)
	}
	h.step(200 * time.Millisecond)
	h.step(200 * time.Millisecond)

	subs := h.rec.ops("submit")
	order := []string{"c", "b", "a"}
	if len(subs) != 3 {
		t.Fatalf("Expected 3 submissions, got %d", len(subs))
	}
	for i, el := range order {
		if subs[i].el != el {
			t.Errorf("Expected dispatch %d to be %s, got %s", i, el, subs[i].el)
		}
		if got := subs[i].at.Sub(epoch); got != want[2-i] {
			t.Errorf("Expected %s dispatched at %v, got %v", el, want[2-i], got)
		}
	}
}

func TestAnimateNaturalDelays(t *testing.T) {
	h := newHarness(t, quarter())

	call, err := h.anim.Animate([]string{"a", "b", "c"}, Overrides{})
	if err != nil {
		t.Fatalf("Animate: %v", err)
	}
	for i, d := range call.Delays {
		if want := time.Duration(i) * parameter.DefaultDelayUnit; d != want {
			t.Errorf("Expected delay %v for element %d, got %v", want, i, d)
		}
	}
}

func TestAnimateExitMode(t *testing.T) {
	h := newHarness(t, quarter())

	call, err := h.anim.Animate([]string{"a", "b", "c", "d"}, Overrides{Mode: Ptr(trajectory.Exit)})
	if err != nil {
		t.Fatalf("Animate: %v", err)
	}

	sets := h.rec.ops("set")
	for i, rec := range sets {
		if !near(rec.pt, call.Trajectories[i].First().Point) {
			t.Errorf("Expected %s placed at %v, got %v", rec.el, call.Trajectories[i].First().Point, rec.pt)
		}
	}
	// Exit trajectories end at the common source
	for i, traj := range call.Trajectories {
		if !near(traj.Last().Point, core.Point{X: 100, Y: 0}) {
			t.Errorf("Expected trajectory %d to end at source, got %v", i, traj.Last().Point)
		}
	}
}

// --- Validation ---

func TestAnimateDegenerateTouchesNothing(t *testing.T) {
	h := newHarness(t, quarter())

	_, err := h.anim.Animate([]string{"solo"}, Overrides{})
	if !errors.Is(err, trajectory.ErrDegenerateConfiguration) {
		t.Fatalf("Expected degenerate configuration, got %v", err)
	}
	if len(h.rec.log) != 0 {
		t.Errorf("Expected no consumer calls, got %d", len(h.rec.log))
	}
	if h.sched.Pending() != 0 {
		t.Errorf("Expected nothing scheduled, got %d", h.sched.Pending())
	}
	if got := h.reg.Ints.Get("animator.rejected").Load(); got != 1 {
		t.Errorf("Expected 1 rejection, got %d", got)
	}
}

func TestAnimateSingleOnFullCircle(t *testing.T) {
	h := newHarness(t, trajectory.Angular{Source: 0, Start: 90, Sweep: 360, FullCircle: true})

	call, err := h.anim.Animate([]string{"solo"}, Overrides{})
	if err != nil {
		t.Fatalf("Animate: %v", err)
	}
	if !near(call.Trajectories[0].Last().Point, core.Point{X: 0, Y: 100}) {
		t.Errorf("Expected resting point (0,100), got %v", call.Trajectories[0].Last().Point)
	}
}

func TestAnimateInvalidOptions(t *testing.T) {
	h := newHarness(t, quarter())

	cases := []struct {
		name string
		ov   Overrides
	}{
		{"zero duration", Overrides{Duration: Ptr(time.Duration(0))}},
		{"negative delay", Overrides{DelayUnit: Ptr(-time.Millisecond)}},
		{"unset curve", Overrides{Curve: &curve.Curve{}}},
		{"unknown mode", Overrides{Mode: Ptr(trajectory.Mode(9))}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := h.anim.Animate([]string{"a", "b"}, tc.ov)
			if !errors.Is(err, ErrInvalidOptions) {
				t.Fatalf("Expected ErrInvalidOptions, got %v", err)
			}
			if !errors.Is(err, trajectory.ErrInvalidConfiguration) {
				t.Errorf("Expected error to match ErrInvalidConfiguration, got %v", err)
			}
		})
	}
	if len(h.rec.log) != 0 {
		t.Errorf("Expected no consumer calls, got %d", len(h.rec.log))
	}
}

func TestAnimateRejectsDuplicates(t *testing.T) {
	h := newHarness(t, quarter())

	_, err := h.anim.Animate([]string{"a", "b", "a"}, Overrides{})
	if !errors.Is(err, trajectory.ErrInvalidConfiguration) {
		t.Fatalf("Expected invalid configuration, got %v", err)
	}
	if len(h.rec.log) != 0 {
		t.Errorf("Expected no consumer calls, got %d", len(h.rec.log))
	}
}

func TestAnimateEmptyIsNoop(t *testing.T) {
	h := newHarness(t, quarter())

	call, err := h.anim.Animate(nil, Overrides{})
	if err != nil {
		t.Fatalf("Expected no error for empty set, got %v", err)
	}
	if len(call.Trajectories) != 0 || len(h.rec.log) != 0 || h.sched.Pending() != 0 {
		t.Errorf("Expected no effects, got %d trajectories %d calls %d tasks",
			len(call.Trajectories), len(h.rec.log), h.sched.Pending())
	}

	// Options are still checked for an empty set
	if _, err := h.anim.Animate(nil, Overrides{Duration: Ptr(time.Duration(-1))}); err == nil {
		t.Error("Expected invalid options to be rejected for empty set")
	}
}

func TestNewRejectsBadLayout(t *testing.T) {
	sched := engine.NewScheduler(engine.NewMockTimeProvider(epoch), nil)
	rec := &recorder{clock: engine.NewMockTimeProvider(epoch)}

	_, err := New[string](Config{
		Circle:   core.Circle{Radius: 10},
		Angular:  trajectory.Angular{Source: 400},
		Defaults: DefaultOptions(),
	}, rec, sched)
	if !errors.Is(err, trajectory.ErrInvalidConfiguration) {
		t.Fatalf("Expected invalid configuration, got %v", err)
	}

	if _, err := New[string](Config{Circle: core.Circle{Radius: 10}}, rec, sched); err == nil {
		t.Error("Expected zero-value defaults to be rejected")
	}
}

func TestSetLayout(t *testing.T) {
	h := newHarness(t, quarter())

	if err := h.anim.SetLayout(core.Circle{Radius: 10}, trajectory.Angular{Sweep: 500}); err == nil {
		t.Fatal("Expected invalid sweep to be rejected")
	}
	if err := h.anim.SetLayout(core.Circle{Center: core.Point{X: 10, Y: 10}, Radius: 10}, trajectory.Angular{Sweep: 180}); err != nil {
		t.Fatalf("SetLayout: %v", err)
	}

	call, err := h.anim.Animate([]string{"a", "b"}, Overrides{})
	if err != nil {
		t.Fatalf("Animate: %v", err)
	}
	if !near(call.Trajectories[1].Last().Point, core.Point{X: 0, Y: 10}) {
		t.Errorf("Expected second element at (0,10), got %v", call.Trajectories[1].Last().Point)
	}
}

func TestOverridesLeaveDefaults(t *testing.T) {
	h := newHarness(t, quarter())

	call, err := h.anim.Animate([]string{"a", "b"}, Overrides{Mode: Ptr(trajectory.Exit), Order: Ptr(Reversed)})
	if err != nil {
		t.Fatalf("Animate: %v", err)
	}
	if call.Options.Mode != trajectory.Exit || call.Options.Order != Reversed {
		t.Errorf("Expected call to use overrides, got %v %v", call.Options.Mode, call.Options.Order)
	}

	d := h.anim.Defaults()
	if d.Mode != trajectory.Enter || d.Order != Natural || d.Duration != parameter.DefaultDuration {
		t.Errorf("Expected instance defaults untouched, got %v %v %v", d.Mode, d.Order, d.Duration)
	}
}

// --- Lifecycle ---

func TestLifecycleEvents(t *testing.T) {
	h := newHarness(t, quarter())
	duration := 500 * time.Millisecond

	call, err := h.anim.Animate([]string{"a", "b"}, Overrides{
		DelayUnit: Ptr(100 * time.Millisecond),
		Duration:  &duration,
	})
	if err != nil {
		t.Fatalf("Animate: %v", err)
	}

	h.step(100 * time.Millisecond)
	if got := h.anim.State("a"); got != Animating {
		t.Errorf("Expected a animating, got %v", got)
	}
	if got := h.anim.State("b"); got != Animating {
		t.Errorf("Expected b animating, got %v", got)
	}
	if got := h.anim.State("zz"); got != Idle {
		t.Errorf("Expected unknown element idle, got %v", got)
	}

	h.step(600 * time.Millisecond)
	if got := h.anim.State("b"); got != Settled {
		t.Errorf("Expected b settled, got %v", got)
	}

	var types []event.Type
	for _, ev := range h.events.Consume() {
		if ev.Call != call.ID {
			t.Errorf("Expected call id %v, got %v", call.ID, ev.Call)
		}
		types = append(types, ev.Type)
	}
	want := []event.Type{
		event.EventPositioned, event.EventPositioned,
		event.EventDispatched, event.EventDispatched,
		event.EventSettled, event.EventSettled,
	}
	if len(types) != len(want) {
		t.Fatalf("Expected events %v, got %v", want, types)
	}
	for i := range want {
		if types[i] != want[i] {
			t.Errorf("Expected event %d %v, got %v", i, want[i], types[i])
		}
	}

	if got := h.reg.Ints.Get("animator.settled").Load(); got != 2 {
		t.Errorf("Expected 2 settled, got %d", got)
	}
}

func TestSupersedeCancelsPendingDispatch(t *testing.T) {
	h := newHarness(t, quarter())
	unit := 100 * time.Millisecond

	first, err := h.anim.Animate([]string{"a", "b", "c"}, Overrides{DelayUnit: &unit})
	if err != nil {
		t.Fatalf("Animate: %v", err)
	}
	h.step(0) // a dispatches

	second, err := h.anim.Animate([]string{"a", "b", "c"}, Overrides{DelayUnit: &unit, Order: Ptr(Reversed)})
	if err != nil {
		t.Fatalf("Animate: %v", err)
	}
	if first.ID == second.ID {
		t.Fatal("Expected distinct call ids")
	}
	if got := h.reg.Ints.Get("animator.superseded").Load(); got != 2 {
		t.Errorf("Expected b and c superseded, got %d", got)
	}

	h.step(time.Second)

	subs := h.rec.ops("submit")
	// a from the first call, then c, b, a from the second
	want := []string{"a", "c", "b", "a"}
	if len(subs) != len(want) {
		t.Fatalf("Expected %d submissions, got %d", len(want), len(subs))
	}
	for i, el := range want {
		if subs[i].el != el {
			t.Errorf("Expected submission %d for %s, got %s", i, el, subs[i].el)
		}
	}

	superseded := 0
	for _, ev := range h.events.Consume() {
		if ev.Type == event.EventSuperseded {
			superseded++
			if ev.Call != first.ID {
				t.Errorf("Expected superseded event for first call, got %v", ev.Call)
			}
		}
	}
	if superseded != 2 {
		t.Errorf("Expected 2 superseded events, got %d", superseded)
	}
}

func TestForgetCancelsScheduledWork(t *testing.T) {
	h := newHarness(t, quarter())

	if _, err := h.anim.Animate([]string{"a", "b"}, Overrides{}); err != nil {
		t.Fatalf("Animate: %v", err)
	}
	h.anim.Forget("b")
	h.step(time.Second)

	for _, rec := range h.rec.ops("submit") {
		if rec.el == "b" {
			t.Error("Expected forgotten element not to be dispatched")
		}
	}
	if got := h.anim.State("b"); got != Idle {
		t.Errorf("Expected forgotten element idle, got %v", got)
	}
}

func TestAnimateIdempotentTrajectories(t *testing.T) {
	h := newHarness(t, quarter())

	c1, err := h.anim.Animate([]string{"a", "b", "c"}, Overrides{})
	if err != nil {
		t.Fatalf("Animate: %v", err)
	}
	c2, err := h.anim.Animate([]string{"a", "b", "c"}, Overrides{})
	if err != nil {
		t.Fatalf("Animate: %v", err)
	}
	for i := range c1.Trajectories {
		if c1.Trajectories[i].Len() != c2.Trajectories[i].Len() {
			t.Fatalf("Expected identical sample counts for element %d", i)
		}
		for j := range c1.Trajectories[i] {
			if c1.Trajectories[i][j] != c2.Trajectories[i][j] {
				t.Fatalf("Expected identical keyframe %d of element %d", j, i)
			}
		}
	}
}
