package main

import (
	"fmt"
	"time"

	"github.com/BrugadaSyndrome/bslogger"
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/ringmotion/animation"
	"github.com/lixenwraith/ringmotion/audio"
	"github.com/lixenwraith/ringmotion/config"
	"github.com/lixenwraith/ringmotion/core"
	"github.com/lixenwraith/ringmotion/engine"
	"github.com/lixenwraith/ringmotion/event"
	"github.com/lixenwraith/ringmotion/parameter"
	"github.com/lixenwraith/ringmotion/playback"
	"github.com/lixenwraith/ringmotion/render"
	"github.com/lixenwraith/ringmotion/status"
	"github.com/lixenwraith/ringmotion/trajectory"
)

// demo wires one animator to a terminal
type demo struct {
	screen   tcell.Screen
	renderer *render.TerminalRenderer
	logger   bslogger.Logger

	clock  *engine.PausableClock
	sched  *engine.Scheduler
	stage  *playback.Stage[int]
	anim   *animation.Animator[int]
	events *event.Queue
	reg    *status.Registry
	sound  *audio.SoundManager // nil without audio

	settings config.Settings
	elements []int
	mode     trajectory.Mode
	order    animation.Order
	message  string
}

// newDemo builds the pipeline; wall drives the pausable animation clock
func newDemo(screen tcell.Screen, settings config.Settings, wall engine.Clock, logger bslogger.Logger, sound *audio.SoundManager) (*demo, error) {
	d := &demo{
		screen:   screen,
		renderer: render.NewTerminalRenderer(screen),
		logger:   logger,
		clock:    engine.NewPausableClock(wall),
		events:   event.NewQueue(),
		reg:      status.NewRegistry(),
		sound:    sound,
		settings: settings,
	}
	d.sched = engine.NewScheduler(d.clock, d.reg)
	d.stage = playback.NewStage[int](d.clock, d.reg)

	cfg, err := settings.AnimatorConfig(&d.logger, d.reg, d.events)
	if err != nil {
		return nil, err
	}
	d.anim, err = animation.New[int](cfg, d.stage, d.sched)
	if err != nil {
		return nil, err
	}
	defaults := d.anim.Defaults()
	d.mode = defaults.Mode
	d.order = defaults.Order
	d.resize(settings.Elements)
	return d, nil
}

// resize changes the element set to 0..n-1
func (d *demo) resize(n int) {
	n = max(0, min(n, parameter.MaxElements))
	for _, e := range d.elements {
		if e >= n {
			d.anim.Forget(e)
			d.stage.Remove(e)
		}
	}
	d.elements = d.elements[:0]
	for i := 0; i < n; i++ {
		d.elements = append(d.elements, i)
	}
}

// animate runs one call with the current mode and order
func (d *demo) animate() {
	call, err := d.anim.Animate(d.elements, animation.Overrides{
		Mode:  animation.Ptr(d.mode),
		Order: animation.Ptr(d.order),
	})
	if err != nil {
		d.message = err.Error()
		return
	}
	d.message = fmt.Sprintf("%s %s x%d", d.mode, d.order, len(call.Trajectories))
}

// handleKey applies one key press; returns false to quit
func (d *demo) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyEnter:
		d.animate()
		return true
	case tcell.KeyRune:
	default:
		return true
	}

	switch ev.Rune() {
	case 'q':
		return false
	case ' ':
		d.animate()
	case 'e':
		d.mode = trajectory.Enter
		d.animate()
	case 'x':
		d.mode = trajectory.Exit
		d.animate()
	case 'r':
		if d.order == animation.Natural {
			d.order = animation.Reversed
		} else {
			d.order = animation.Natural
		}
		d.message = "order " + d.order.String()
	case 'p':
		if d.clock.Toggle() {
			d.logger.Info("paused")
		} else {
			d.logger.Info("resumed")
		}
	case 'm':
		if d.sound != nil {
			d.sound.SetMuted(!d.sound.Muted())
		}
	case '+', '=':
		d.resize(len(d.elements) + 1)
		d.message = fmt.Sprintf("%d elements", len(d.elements))
	case '-':
		d.resize(len(d.elements) - 1)
		d.message = fmt.Sprintf("%d elements", len(d.elements))
	}
	return true
}

// handleEvent dispatches a terminal event; returns false to quit
func (d *demo) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return d.handleKey(ev)
	case *tcell.EventResize:
		w, h := ev.Size()
		d.renderer.Resize(w, h)
		d.screen.Sync()
	}
	return true
}

// tick advances scheduled work, drains lifecycle events and draws a frame
func (d *demo) tick() {
	d.sched.Advance()
	now := d.clock.Now()

	for _, ev := range d.events.Consume() {
		d.logger.Debugf("%s call=%s element=%d/%d", ev.Type, ev.Call, ev.Index+1, ev.Count)
		if d.sound != nil {
			d.sound.HandleEvent(ev)
		}
	}
	d.stage.Prune(now)

	line := playback.Summary(len(d.elements), d.reg.Snapshot())
	if d.message != "" {
		line += " | " + d.message
	}
	d.renderer.RenderFrame(render.Frame{
		Circle: d.settings.CircleValue(),
		Source: d.settings.Angles.Source,
		Glyphs: d.stage.Glyphs(parameter.AnimationKey, now, playback.IndexLabel),
		Status: line,
		Paused: d.clock.IsPaused(),
	})
}

// run is the host loop: input from a polling goroutine, frames on a ticker
func (d *demo) run() {
	ticker := time.NewTicker(parameter.FrameUpdateInterval)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, parameter.InputBufferSize)
	screen := d.screen
	core.Go(func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return // Screen finalized
			}
			eventChan <- ev
		}
	})

	d.animate()
	for {
		select {
		case ev := <-eventChan:
			if !d.handleEvent(ev) {
				return
			}
		case <-ticker.C:
			d.tick()
		}
	}
}
