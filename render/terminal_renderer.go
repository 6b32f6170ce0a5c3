// Package render draws a playback stage onto a tcell screen
package render

import (
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/ringmotion/core"
	"github.com/lixenwraith/ringmotion/playback"
	"github.com/lixenwraith/ringmotion/vmath"
)

const (
	// Terminal cells are roughly twice as tall as wide
	defaultAspectY = 0.5
	outlineStep    = 3.0 // Degrees between outline dots
	statusRows     = 1
)

// Frame is everything drawn in one pass
type Frame struct {
	Circle core.Circle
	Source float64 // Source angle in degrees, marked on the outline
	Glyphs []playback.Glyph
	Status string
	Paused bool
}

// TerminalRenderer composes frames into a Buffer and flushes them to a screen
type TerminalRenderer struct {
	screen  tcell.Screen
	buf     *Buffer
	aspectY float64
}

// NewTerminalRenderer creates a renderer sized to the screen
func NewTerminalRenderer(screen tcell.Screen) *TerminalRenderer {
	w, h := screen.Size()
	return &TerminalRenderer{
		screen:  screen,
		buf:     NewBuffer(w, h),
		aspectY: defaultAspectY,
	}
}

// SetAspect changes the vertical scale applied to world coordinates
func (r *TerminalRenderer) SetAspect(aspectY float64) {
	if aspectY > 0 {
		r.aspectY = aspectY
	}
}

// Resize matches the buffer to new screen dimensions
func (r *TerminalRenderer) Resize(width, height int) {
	r.buf.Resize(width, height)
}

// Buffer exposes the compositor for inspection
func (r *TerminalRenderer) Buffer() *Buffer {
	return r.buf
}

// Cell maps a world point to a terminal cell
func (r *TerminalRenderer) Cell(p core.Point) (int, int) {
	return int(math.Round(p.X)), int(math.Round(p.Y * r.aspectY))
}

// Playfield returns the area available above the status bar
func (r *TerminalRenderer) Playfield() core.Area {
	w, h := r.buf.Bounds()
	return core.Area{Width: w, Height: max(h-statusRows, 0)}
}

// RenderFrame draws the outline, the glyphs and the status bar, then shows the screen
func (r *TerminalRenderer) RenderFrame(f Frame) {
	r.buf.Clear()
	field := r.Playfield()

	r.drawOutline(f.Circle, field)

	sx, sy := r.Cell(vmath.PointOnCircle(f.Circle, f.Source))
	if field.Contains(sx, sy) {
		r.buf.Set(sx, sy, '+', styleSource)
	}

	for _, g := range f.Glyphs {
		x, y := r.Cell(g.Point)
		if !field.Contains(x, y) {
			continue
		}
		r.buf.Set(x, y, g.Rune, ElementStyle(g.Moving, g.Settled))
	}

	r.drawStatus(f)
	r.buf.Flush(r.screen)
	r.screen.Show()
}

func (r *TerminalRenderer) drawOutline(c core.Circle, field core.Area) {
	if c.Radius <= 0 {
		return
	}
	for deg := 0.0; deg < vmath.FullTurn; deg += outlineStep {
		x, y := r.Cell(vmath.PointOnCircle(c, deg))
		if field.Contains(x, y) && !r.buf.Touched(x, y) {
			r.buf.Set(x, y, '·', styleOutline)
		}
	}
}

func (r *TerminalRenderer) drawStatus(f Frame) {
	w, h := r.buf.Bounds()
	if h == 0 {
		return
	}
	y := h - 1
	for x := 0; x < w; x++ {
		r.buf.Set(x, y, ' ', styleStatus)
	}
	x := 0
	if f.Paused {
		r.buf.SetString(x, y, "PAUSED ", stylePaused)
		x += len("PAUSED ")
	}
	r.buf.SetString(x, y, f.Status, styleStatus)
}
