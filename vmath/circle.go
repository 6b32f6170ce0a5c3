package vmath

import (
	"math"

	"github.com/lixenwraith/ringmotion/core"
)

// FullTurn is one rotation in degrees
const FullTurn = 360.0

// DegToRad converts degrees to radians
func DegToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// PointOnCircle maps an angle in degrees to a point on the circle
// Pure for all finite input; NaN and Inf propagate per IEEE-754
func PointOnCircle(c core.Circle, deg float64) core.Point {
	rad := DegToRad(deg)
	return core.Point{
		X: c.Center.X + c.Radius*math.Cos(rad),
		Y: c.Center.Y + c.Radius*math.Sin(rad),
	}
}

// NormalizeDegrees wraps an angle into [0,360)
func NormalizeDegrees(deg float64) float64 {
	deg = math.Mod(deg, FullTurn)
	if deg < 0 {
		deg += FullTurn
	}
	// -tiny + 360 rounds to 360 in float64
	if deg >= FullTurn {
		deg = 0
	}
	return deg
}

// InRange reports whether v lies in [lo, hi]; NaN is never in range
func InRange(v, lo, hi float64) bool {
	return v >= lo && v <= hi
}

// AngularDistance returns the directed arc from one angle to another, in [0,360)
// Clockwise means increasing angle; counter-clockwise mirrors the comparison and wrap term
func AngularDistance(from, to float64, clockwise bool) float64 {
	from = NormalizeDegrees(from)
	to = NormalizeDegrees(to)

	var d float64
	if clockwise {
		if from <= to {
			d = to - from
		} else {
			d = (FullTurn - from) + to
		}
	} else {
		if from >= to {
			d = from - to
		} else {
			d = from + (FullTurn - to)
		}
	}

	if d >= FullTurn {
		d = 0
	}
	return d
}
