package render

import (
	"github.com/gdamore/tcell/v2"
)

// RGB color definitions for the ring display
var (
	RgbBackground = tcell.NewRGBColor(26, 27, 38)    // Tokyo Night background
	RgbOutline    = tcell.NewRGBColor(65, 72, 104)   // Dim blue-gray for the circle track
	RgbSource     = tcell.NewRGBColor(255, 165, 0)   // Orange marker at the source angle
	RgbStatusBar  = tcell.NewRGBColor(180, 180, 180) // Brighter gray
	RgbPaused     = tcell.NewRGBColor(255, 80, 80)   // Normal Red

	RgbElementIdle    = tcell.NewRGBColor(100, 150, 255) // Normal Blue
	RgbElementMoving  = tcell.NewRGBColor(50, 255, 50)   // Bright Green
	RgbElementSettled = tcell.NewRGBColor(255, 255, 255) // White
)

// Style helpers over the shared background
var (
	styleBase    = tcell.StyleDefault.Background(RgbBackground)
	styleOutline = styleBase.Foreground(RgbOutline)
	styleSource  = styleBase.Foreground(RgbSource).Bold(true)
	styleStatus  = styleBase.Foreground(RgbStatusBar)
	stylePaused  = styleBase.Foreground(RgbPaused).Bold(true)
)

// ElementStyle returns the glyph style for an element in the given phase
func ElementStyle(moving, settled bool) tcell.Style {
	switch {
	case moving:
		return styleBase.Foreground(RgbElementMoving).Bold(true)
	case settled:
		return styleBase.Foreground(RgbElementSettled)
	default:
		return styleBase.Foreground(RgbElementIdle)
	}
}
