package window

import (
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"github.com/lixenwraith/ringmotion/animation"
	"github.com/lixenwraith/ringmotion/core"
	"github.com/lixenwraith/ringmotion/engine"
	"github.com/lixenwraith/ringmotion/event"
	"github.com/lixenwraith/ringmotion/parameter"
	"github.com/lixenwraith/ringmotion/playback"
	"github.com/lixenwraith/ringmotion/status"
	"github.com/lixenwraith/ringmotion/trajectory"
	"github.com/lixenwraith/ringmotion/vmath"
)

// Pipeline is the animation state a Game drives
type Pipeline struct {
	Clock    *engine.PausableClock
	Sched    *engine.Scheduler
	Stage    *playback.Stage[int]
	Anim     *animation.Animator[int]
	Events   *event.Queue
	Status   *status.Registry
	Circle   core.Circle
	Source   float64
	Elements []int

	// OnEvent receives every drained lifecycle event; may be nil
	OnEvent func(event.Event)
}

// Game implements ebiten.Game over a Pipeline
type Game struct {
	p      Pipeline
	width  int
	height int
	proj   Projection
	face   font.Face

	mode    trajectory.Mode
	order   animation.Order
	message string
	quit    bool
}

// NewGame creates a window host of width x height pixels
func NewGame(p Pipeline, defaults animation.Options, width, height int) *Game {
	return &Game{
		p:      p,
		width:  width,
		height: height,
		proj:   Fit(p.Circle, width, height, parameter.WindowMargin),
		face:   basicfont.Face7x13,
		mode:   defaults.Mode,
		order:  defaults.Order,
	}
}

// Animate runs one call with the current mode and order
func (g *Game) Animate() {
	_, err := g.p.Anim.Animate(g.p.Elements, animation.Overrides{
		Mode:  animation.Ptr(g.mode),
		Order: animation.Ptr(g.order),
	})
	if err != nil {
		g.message = err.Error()
		return
	}
	g.message = fmt.Sprintf("%s %s", g.mode, g.order)
}

// Update handles input and fires due tasks
func (g *Game) Update() error {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape), inpututil.IsKeyJustPressed(ebiten.KeyQ):
		g.quit = true
	case inpututil.IsKeyJustPressed(ebiten.KeySpace), inpututil.IsKeyJustPressed(ebiten.KeyEnter):
		g.Animate()
	case inpututil.IsKeyJustPressed(ebiten.KeyE):
		g.mode = trajectory.Enter
		g.Animate()
	case inpututil.IsKeyJustPressed(ebiten.KeyX):
		g.mode = trajectory.Exit
		g.Animate()
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		if g.order == animation.Natural {
			g.order = animation.Reversed
		} else {
			g.order = animation.Natural
		}
		g.message = "order " + g.order.String()
	case inpututil.IsKeyJustPressed(ebiten.KeyP):
		g.p.Clock.Toggle()
	}
	if g.quit {
		return ebiten.Termination
	}

	g.p.Sched.Advance()
	for _, ev := range g.p.Events.Consume() {
		if g.p.OnEvent != nil {
			g.p.OnEvent(ev)
		}
	}
	g.p.Stage.Prune(g.p.Clock.Now())
	return nil
}

// Draw renders the ring, the elements and the status line
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(ColorBackground)
	now := g.p.Clock.Now()

	cx, cy := g.proj.Apply(g.p.Circle.Center)
	vector.StrokeCircle(screen, cx, cy, g.proj.Radius(g.p.Circle.Radius), outlineWidth, ColorOutline, true)

	sx, sy := g.proj.Apply(vmath.PointOnCircle(g.p.Circle, g.p.Source))
	vector.DrawFilledCircle(screen, sx, sy, sourceRadius, ColorSource, true)

	for _, gl := range g.p.Stage.Glyphs(parameter.AnimationKey, now, playback.IndexLabel) {
		x, y := g.proj.Apply(gl.Point)
		vector.DrawFilledCircle(screen, x, y, dotRadius, DotColor(gl.Moving), true)
		text.Draw(screen, string(gl.Rune), g.face, int(x)+labelOffsetX, int(y)+labelOffsetY, ColorBackground)
	}

	line := playback.Summary(len(g.p.Elements), g.p.Status.Snapshot())
	if g.message != "" {
		line += " | " + g.message
	}
	clr := ColorText
	if g.p.Clock.IsPaused() {
		line = "PAUSED " + line
		clr = ColorPaused
	}
	text.Draw(screen, line, g.face, statusMarginX, g.height-statusMarginY, clr)
}

// Layout keeps a fixed logical size
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}

// Run opens the window and blocks until it closes
func (g *Game) Run(title string) error {
	ebiten.SetWindowSize(g.width, g.height)
	ebiten.SetWindowTitle(title)
	ebiten.SetTPS(int(time.Second / parameter.FrameUpdateInterval))
	g.Animate()
	return ebiten.RunGame(g)
}
