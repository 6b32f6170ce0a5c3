// Package curve provides timing curves mapping normalized time to progress
package curve

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/charmbracelet/harmonica"

	"github.com/lixenwraith/ringmotion/vmath"
)

// ErrInvalidCurve reports control parameters outside the curve's domain
var ErrInvalidCurve = errors.New("invalid timing curve")

// Kind selects how a curve is evaluated
type Kind uint8

const (
	KindBezier Kind = iota
	KindSpring
)

// springSamples is the resolution of the precomputed spring response
const springSamples = 256

// Curve is an immutable timing curve
// Zero value is not usable; build with Lookup, Bezier or Spring
type Curve struct {
	Name string
	Kind Kind

	// Bezier control points, endpoints fixed at (0,0) and (1,1)
	X1, Y1, X2, Y2 float64

	// Spring parameters in units of the animation duration
	Frequency, Damping float64

	bez    vmath.CubicBezier
	spring *[springSamples + 1]float64
}

// named holds the fixed curve set, keyed by config name
var named = map[string][4]float64{
	"linear":         {0, 0, 1, 1},
	"ease":           {0.25, 0.1, 0.25, 1},
	"ease-in":        {0.42, 0, 1, 1},
	"ease-out":       {0, 0, 0.58, 1},
	"ease-in-out":    {0.42, 0, 0.58, 1},
	"ease-out-quint": {0.23, 1, 0.32, 1},
	"ease-out-quart": {0.165, 0.84, 0.44, 1},
	"ease-out-expo":  {0.19, 1, 0.22, 1},
}

// Names returns the fixed curve names in sorted order
func Names() []string {
	names := make([]string, 0, len(named))
	for n := range named {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Lookup returns a named curve from the fixed set
func Lookup(name string) (Curve, bool) {
	p, ok := named[name]
	if !ok {
		return Curve{}, false
	}
	c := newBezier(p[0], p[1], p[2], p[3])
	c.Name = name
	return c, true
}

// MustLookup is Lookup for names known at compile time
func MustLookup(name string) Curve {
	c, ok := Lookup(name)
	if !ok {
		panic(fmt.Sprintf("curve: unknown name %q", name))
	}
	return c
}

// Linear returns the identity curve
func Linear() Curve { return MustLookup("linear") }

// EaseOutQuint returns the default curve for circular arrangements
func EaseOutQuint() Curve { return MustLookup("ease-out-quint") }

// EaseOutQuart returns the quartic ease-out curve
func EaseOutQuart() Curve { return MustLookup("ease-out-quart") }

// EaseOutExpo returns the exponential ease-out curve
func EaseOutExpo() Curve { return MustLookup("ease-out-expo") }

// Bezier builds a curve from explicit control points
// x1 and x2 must lie in [0,1]; y values are free so curves may overshoot
func Bezier(x1, y1, x2, y2 float64) (Curve, error) {
	for _, v := range []float64{x1, y1, x2, y2} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Curve{}, fmt.Errorf("%w: non-finite control point", ErrInvalidCurve)
		}
	}
	if !vmath.InRange(x1, 0, 1) || !vmath.InRange(x2, 0, 1) {
		return Curve{}, fmt.Errorf("%w: x control points must be in [0,1], got %v and %v", ErrInvalidCurve, x1, x2)
	}
	c := newBezier(x1, y1, x2, y2)
	c.Name = fmt.Sprintf("cubic-bezier(%g,%g,%g,%g)", x1, y1, x2, y2)
	return c, nil
}

func newBezier(x1, y1, x2, y2 float64) Curve {
	return Curve{
		Kind: KindBezier,
		X1:   x1, Y1: y1, X2: x2, Y2: y2,
		bez: vmath.NewCubicBezier(x1, y1, x2, y2),
	}
}

// Spring builds a damped spring curve settling on 1
// frequency is angular frequency per animation duration, damping is the damping ratio
func Spring(frequency, damping float64) (Curve, error) {
	if !(frequency > 0) || math.IsInf(frequency, 0) {
		return Curve{}, fmt.Errorf("%w: spring frequency must be positive, got %v", ErrInvalidCurve, frequency)
	}
	if !(damping > 0) || math.IsInf(damping, 0) {
		return Curve{}, fmt.Errorf("%w: spring damping must be positive, got %v", ErrInvalidCurve, damping)
	}

	var lut [springSamples + 1]float64
	s := harmonica.NewSpring(1.0/springSamples, frequency, damping)
	pos, vel := 0.0, 0.0
	for i := 1; i <= springSamples; i++ {
		pos, vel = s.Update(pos, vel, 1)
		lut[i] = pos
	}
	// An unsettled spring would otherwise end short of the resting point
	lut[springSamples] = 1

	return Curve{
		Name:      fmt.Sprintf("spring(%g,%g)", frequency, damping),
		Kind:      KindSpring,
		Frequency: frequency,
		Damping:   damping,
		spring:    &lut,
	}, nil
}

// Ease maps normalized time to progress; t is clamped to [0,1]
// Ease(0) == 0 and Ease(1) == 1 for every curve
func (c Curve) Ease(t float64) float64 {
	if !(t > 0) {
		return 0
	}
	if t >= 1 {
		return 1
	}

	switch c.Kind {
	case KindSpring:
		if c.spring == nil {
			return t
		}
		f := t * springSamples
		i := int(f)
		return vmath.Lerp(c.spring[i], c.spring[i+1], f-float64(i))
	default:
		return c.bez.Solve(t)
	}
}

// Valid reports whether the curve was built by this package
func (c Curve) Valid() bool {
	return c.Name != ""
}

func (c Curve) String() string {
	return c.Name
}
