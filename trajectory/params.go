// Package trajectory generates keyframe paths along a circle for elements in a circular arrangement
package trajectory

import (
	"errors"
	"fmt"
	"math"

	"github.com/lixenwraith/ringmotion/core"
	"github.com/lixenwraith/ringmotion/parameter"
	"github.com/lixenwraith/ringmotion/vmath"
)

var (
	// ErrInvalidConfiguration reports an angle, sweep, radius or step outside its domain
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrDegenerateConfiguration reports an element count the distribution cannot divide by
	ErrDegenerateConfiguration = errors.New("degenerate configuration")
)

// Mode selects the travel direction of a transition
type Mode uint8

const (
	// Enter travels from the source point to the resting point
	Enter Mode = iota
	// Exit travels from the resting point back to the source point
	Exit
)

func (m Mode) String() string {
	switch m {
	case Enter:
		return "enter"
	case Exit:
		return "exit"
	default:
		return fmt.Sprintf("mode(%d)", uint8(m))
	}
}

// Wrap selects how a stepped angle is brought back into [0,360)
type Wrap uint8

const (
	// WrapModulo wraps with a true modulo
	WrapModulo Wrap = iota
	// WrapLegacy snaps below-zero angles to 359.9 and at-or-above 360 to 0
	// Introduces a half-step bias at the seam; kept for visual parity with older layouts
	WrapLegacy
)

func (w Wrap) String() string {
	switch w {
	case WrapModulo:
		return "modulo"
	case WrapLegacy:
		return "legacy"
	default:
		return fmt.Sprintf("wrap(%d)", uint8(w))
	}
}

// Angular describes where elements come from and how they spread out
type Angular struct {
	Source     float64 // Shared starting angle, [0,360]
	Start      float64 // Resting angle of the first element, [0,360]
	Sweep      float64 // Signed span the elements spread across, [-360,360]; sign picks direction
	FullCircle bool    // Last slot is spaced as if followed by the first
}

// Clockwise reports the travel direction; zero sweep counts as clockwise
func (a Angular) Clockwise() bool {
	return a.Sweep >= 0
}

// Params is everything needed to generate trajectories for one animate call
type Params struct {
	Circle  core.Circle
	Angular Angular
	Count   int
	Mode    Mode
	Step    float64 // Degrees per sample; zero means parameter.StepDegrees
	Wrap    Wrap
}

// step returns the effective sampling step
func (p Params) step() float64 {
	if p.Step == 0 {
		return parameter.StepDegrees
	}
	return p.Step
}

// Validate checks every field against its domain
// Returns ErrInvalidConfiguration or ErrDegenerateConfiguration wrapped with detail
func (p Params) Validate() error {
	a := p.Angular
	if !vmath.InRange(a.Source, 0, vmath.FullTurn) {
		return fmt.Errorf("%w: source angle %v outside [0,360]", ErrInvalidConfiguration, a.Source)
	}
	if !vmath.InRange(a.Start, 0, vmath.FullTurn) {
		return fmt.Errorf("%w: start angle %v outside [0,360]", ErrInvalidConfiguration, a.Start)
	}
	if !vmath.InRange(a.Sweep, -vmath.FullTurn, vmath.FullTurn) {
		return fmt.Errorf("%w: sweep %v outside [-360,360]", ErrInvalidConfiguration, a.Sweep)
	}
	if !(p.Circle.Radius >= 0) || math.IsInf(p.Circle.Radius, 0) {
		return fmt.Errorf("%w: radius %v must be finite and non-negative", ErrInvalidConfiguration, p.Circle.Radius)
	}
	if s := p.step(); !(s >= parameter.MinStepDegrees) || math.IsInf(s, 0) {
		return fmt.Errorf("%w: step %v must be finite and at least %v", ErrInvalidConfiguration, p.Step, parameter.MinStepDegrees)
	}
	if p.Count < 0 {
		return fmt.Errorf("%w: negative element count %d", ErrInvalidConfiguration, p.Count)
	}
	if p.Mode > Exit {
		return fmt.Errorf("%w: unknown mode %v", ErrInvalidConfiguration, p.Mode)
	}
	if p.Wrap > WrapLegacy {
		return fmt.Errorf("%w: unknown wrap %v", ErrInvalidConfiguration, p.Wrap)
	}
	if p.Count > 0 && p.divisor() <= 0 {
		return fmt.Errorf("%w: %d element(s) cannot be distributed without full circle", ErrDegenerateConfiguration, p.Count)
	}
	return nil
}

// divisor is the number of gaps between slots
func (p Params) divisor() int {
	if p.Angular.FullCircle {
		return p.Count
	}
	return p.Count - 1
}

// PerElementSweep returns the angular gap between neighbouring resting slots
// Only meaningful on validated params
func (p Params) PerElementSweep() float64 {
	return math.Abs(p.Angular.Sweep) / float64(p.divisor())
}

// TargetSweep returns the total travel of element index from the source angle to its slot
func (p Params) TargetSweep(index int) float64 {
	base := vmath.AngularDistance(p.Angular.Source, p.Angular.Start, p.Angular.Clockwise())
	return base + p.PerElementSweep()*float64(index)
}

// RestingAngle returns the normalized resting angle of element index
func (p Params) RestingAngle(index int) float64 {
	travel := p.TargetSweep(index)
	if !p.Angular.Clockwise() {
		travel = -travel
	}
	return vmath.NormalizeDegrees(p.Angular.Source + travel)
}
