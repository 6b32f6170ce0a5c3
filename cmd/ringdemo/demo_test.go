package main

import (
	"math"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/ringmotion/config"
	"github.com/lixenwraith/ringmotion/core"
	"github.com/lixenwraith/ringmotion/engine"
	"github.com/lixenwraith/ringmotion/parameter"
)

func newTestDemo(t *testing.T) (*demo, *engine.MockTimeProvider) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(80, 24)

	wall := engine.NewMockTimeProvider(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	logger := config.NewLogger("RingDemoTest", config.LevelMinimal, nil)
	d, err := newDemo(screen, config.Default(), wall, logger, nil)
	if err != nil {
		t.Fatalf("newDemo: %v", err)
	}
	return d, wall
}

func key(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func (d *demo) runFor(wall *engine.MockTimeProvider, dur time.Duration) {
	for elapsed := time.Duration(0); elapsed < dur; elapsed += parameter.FrameUpdateInterval {
		wall.Advance(parameter.FrameUpdateInterval)
		d.tick()
	}
}

func TestDemoAnimatesRing(t *testing.T) {
	d, wall := newTestDemo(t)

	if !d.handleKey(key(' ')) {
		t.Fatal("Space must not quit")
	}
	top := core.Point{X: 40, Y: 8} // Source angle 270 on the default circle
	for _, e := range d.elements {
		p, ok := d.stage.Model(e)
		if !ok || math.Abs(p.X-top.X) > 1e-9 || math.Abs(p.Y-top.Y) > 1e-9 {
			t.Fatalf("Expected element %d at source %v, got %v", e, top, p)
		}
	}

	d.runFor(wall, 3*time.Second)

	// Element 2 of 8 settles a quarter turn past the start angle
	want := core.Point{X: 40, Y: 40}
	got, _ := d.stage.Position(2, parameter.AnimationKey, d.clock.Now())
	if math.Abs(got.X-want.X) > 1e-9 || math.Abs(got.Y-want.Y) > 1e-9 {
		t.Errorf("Expected element 2 at %v, got %v", want, got)
	}
	if r := d.renderer.Buffer().Get(40, 20).Rune; r != '2' {
		t.Errorf("Expected glyph '2' at (40,20), got %q", r)
	}
	if n := d.reg.Ints.Get("animator.settled").Load(); n != 8 {
		t.Errorf("Expected 8 settled, got %d", n)
	}
}

func TestDemoPauseFreezesTime(t *testing.T) {
	d, wall := newTestDemo(t)
	d.handleKey(key(' '))

	d.handleKey(key('p'))
	if !d.clock.IsPaused() {
		t.Fatal("Expected paused clock")
	}
	d.runFor(wall, 3*time.Second)
	if n := d.reg.Ints.Get("animator.dispatched").Load(); n != 1 {
		t.Errorf("Expected only the zero-delay element dispatched while paused, got %d", n)
	}

	d.handleKey(key('p'))
	d.runFor(wall, 3*time.Second)
	if n := d.reg.Ints.Get("animator.dispatched").Load(); n != 8 {
		t.Errorf("Expected all dispatched after resume, got %d", n)
	}
}

func TestDemoKeys(t *testing.T) {
	d, _ := newTestDemo(t)

	d.handleKey(key('r'))
	if d.order.String() != "reversed" {
		t.Errorf("Expected reversed order, got %v", d.order)
	}
	d.handleKey(key('+'))
	if len(d.elements) != 9 {
		t.Errorf("Expected 9 elements, got %d", len(d.elements))
	}
	d.handleKey(key('-'))
	d.handleKey(key('-'))
	if len(d.elements) != 7 {
		t.Errorf("Expected 7 elements, got %d", len(d.elements))
	}
	d.handleKey(key('x'))
	if d.mode.String() != "exit" {
		t.Errorf("Expected exit mode, got %v", d.mode)
	}

	if d.handleKey(key('q')) {
		t.Error("Expected q to quit")
	}
	if d.handleKey(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)) {
		t.Error("Expected Escape to quit")
	}
}
