// Package window hosts a playback stage in an ebiten window
package window

import (
	"image/color"

	"github.com/lixenwraith/ringmotion/core"
)

// Palette mirrors the terminal colors
var (
	ColorBackground = color.RGBA{R: 26, G: 27, B: 38, A: 255}
	ColorOutline    = color.RGBA{R: 65, G: 72, B: 104, A: 255}
	ColorSource     = color.RGBA{R: 255, G: 165, B: 0, A: 255}
	ColorIdle       = color.RGBA{R: 100, G: 150, B: 255, A: 255}
	ColorMoving     = color.RGBA{R: 50, G: 255, B: 50, A: 255}
	ColorText       = color.RGBA{R: 180, G: 180, B: 180, A: 255}
	ColorPaused     = color.RGBA{R: 255, G: 80, B: 80, A: 255}
)

const (
	dotRadius     = 6
	sourceRadius  = 3
	outlineWidth  = 1
	labelOffsetX  = -3
	labelOffsetY  = 4
	statusMarginX = 8
	statusMarginY = 16
)

// Projection maps world units to window pixels
type Projection struct {
	Scale  float64
	Offset core.Point // Added after scaling
}

// Apply returns the pixel position of p
func (pr Projection) Apply(p core.Point) (float32, float32) {
	return float32(p.X*pr.Scale + pr.Offset.X), float32(p.Y*pr.Scale + pr.Offset.Y)
}

// Radius scales a world length
func (pr Projection) Radius(r float64) float32 {
	return float32(r * pr.Scale)
}

// Fit returns a projection centering c in a width x height window with margin pixels spare
func Fit(c core.Circle, width, height int, margin float64) Projection {
	if c.Radius <= 0 {
		return Projection{Scale: 1, Offset: core.Point{X: float64(width)/2 - c.Center.X, Y: float64(height)/2 - c.Center.Y}}
	}
	avail := float64(min(width, height))/2 - margin
	if avail <= 0 {
		avail = 1
	}
	scale := avail / c.Radius
	return Projection{
		Scale: scale,
		Offset: core.Point{
			X: float64(width)/2 - c.Center.X*scale,
			Y: float64(height)/2 - c.Center.Y*scale,
		},
	}
}

// DotColor picks an element color by phase
func DotColor(moving bool) color.Color {
	if moving {
		return ColorMoving
	}
	return ColorIdle
}
