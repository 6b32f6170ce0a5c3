package vmath

import "math"

// Cubic Bezier timing solver
// Endpoints are fixed at (0,0) and (1,1); x is time, y is progress

const (
	bezierEpsilon    = 1e-7
	bezierNewtonIter = 8
	bezierBisectIter = 64
)

// CubicBezier holds polynomial coefficients for one timing curve
type CubicBezier struct {
	ax, bx, cx float64
	ay, by, cy float64
}

// NewCubicBezier builds a solver from control points P1=(x1,y1), P2=(x2,y2)
// x1 and x2 are clamped to [0,1] so x(t) stays monotonic
func NewCubicBezier(x1, y1, x2, y2 float64) CubicBezier {
	x1 = Clamp(x1, 0, 1)
	x2 = Clamp(x2, 0, 1)

	var b CubicBezier
	b.cx = 3 * x1
	b.bx = 3*(x2-x1) - b.cx
	b.ax = 1 - b.cx - b.bx

	b.cy = 3 * y1
	b.by = 3*(y2-y1) - b.cy
	b.ay = 1 - b.cy - b.by
	return b
}

func (b CubicBezier) sampleX(t float64) float64 {
	return ((b.ax*t+b.bx)*t + b.cx) * t
}

func (b CubicBezier) sampleY(t float64) float64 {
	return ((b.ay*t+b.by)*t + b.cy) * t
}

func (b CubicBezier) sampleDX(t float64) float64 {
	return (3*b.ax*t+2*b.bx)*t + b.cx
}

// solveT finds the curve parameter whose x equals x
// Newton first, bisection when the derivative flattens out
func (b CubicBezier) solveT(x float64) float64 {
	t := x
	for i := 0; i < bezierNewtonIter; i++ {
		dx := b.sampleX(t) - x
		if math.Abs(dx) < bezierEpsilon {
			return t
		}
		d := b.sampleDX(t)
		if math.Abs(d) < 1e-6 {
			break
		}
		t -= dx / d
	}

	lo, hi := 0.0, 1.0
	t = x
	for i := 0; i < bezierBisectIter; i++ {
		v := b.sampleX(t)
		if math.Abs(v-x) < bezierEpsilon {
			return t
		}
		if x > v {
			lo = t
		} else {
			hi = t
		}
		t = (lo + hi) / 2
	}
	return t
}

// Solve returns progress for normalized time x, x clamped to [0,1]
func (b CubicBezier) Solve(x float64) float64 {
	if x <= 0 {
		return 0
	}
	if x >= 1 {
		return 1
	}
	return b.sampleY(b.solveT(x))
}

// --- Scalar helpers ---

// Clamp limits v to [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Lerp performs linear interpolation between a and b
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
