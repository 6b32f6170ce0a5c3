package trajectory

import (
	"fmt"
	"sort"

	"github.com/lixenwraith/ringmotion/core"
	"github.com/lixenwraith/ringmotion/parameter"
	"github.com/lixenwraith/ringmotion/vmath"
)

// Keyframe is one sample of a trajectory
type Keyframe struct {
	Point core.Point
	Time  float64 // Normalized, [0,1]
}

// Trajectory is an ordered keyframe sequence with strictly increasing Time
// First Time is 0; last is 1 unless the trajectory is a single resting sample
type Trajectory []Keyframe

// Len returns the sample count
func (t Trajectory) Len() int { return len(t) }

// First returns the first keyframe, zero value when empty
func (t Trajectory) First() Keyframe {
	if len(t) == 0 {
		return Keyframe{}
	}
	return t[0]
}

// Last returns the last keyframe, zero value when empty
func (t Trajectory) Last() Keyframe {
	if len(t) == 0 {
		return Keyframe{}
	}
	return t[len(t)-1]
}

// Times returns sample times in order
func (t Trajectory) Times() []float64 {
	out := make([]float64, len(t))
	for i, k := range t {
		out[i] = k.Time
	}
	return out
}

// At returns the position at normalized progress u by linear interpolation between samples
// Progress past either end mirrors the path through that end point, so overshooting
// curves carry elements beyond the source or resting point and back
func (t Trajectory) At(u float64) core.Point {
	switch len(t) {
	case 0:
		return core.Point{}
	case 1:
		return t[0].Point
	}

	first, last := t[0], t[len(t)-1]
	switch {
	case u < first.Time:
		return mirror(first.Point, t.sample(2*first.Time-u))
	case u > last.Time:
		return mirror(last.Point, t.sample(2*last.Time-u))
	}
	return t.sample(u)
}

// sample interpolates with u clamped to the time span
func (t Trajectory) sample(u float64) core.Point {
	if !(u > t[0].Time) {
		return t[0].Point
	}
	last := t[len(t)-1]
	if u >= last.Time {
		return last.Point
	}

	// First sample strictly after u; always in [1, len-1] here
	i := sort.Search(len(t), func(i int) bool { return t[i].Time > u })
	a, b := t[i-1], t[i]
	f := (u - a.Time) / (b.Time - a.Time)
	return core.Point{
		X: vmath.Lerp(a.Point.X, b.Point.X, f),
		Y: vmath.Lerp(a.Point.Y, b.Point.Y, f),
	}
}

// mirror reflects p through pivot
func mirror(pivot, p core.Point) core.Point {
	return core.Point{X: 2*pivot.X - p.X, Y: 2*pivot.Y - p.Y}
}

// Generate produces the trajectory of element index out of p.Count
func Generate(p Params, index int) (Trajectory, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if index < 0 || index >= p.Count {
		return nil, fmt.Errorf("%w: index %d outside [0,%d)", ErrInvalidConfiguration, index, p.Count)
	}
	return generate(p, index), nil
}

// GenerateAll produces one trajectory per element, validating once
// Zero count yields an empty slice and no error
func GenerateAll(p Params) ([]Trajectory, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	out := make([]Trajectory, p.Count)
	for i := range out {
		out[i] = generate(p, i)
	}
	return out, nil
}

// generate assumes validated params and an in-range index
func generate(p Params, index int) Trajectory {
	target := p.TargetSweep(index)
	resting := vmath.PointOnCircle(p.Circle, p.RestingAngle(index))

	if target == 0 {
		return Trajectory{{Point: resting, Time: 0}}
	}

	step := p.step()
	dir := 1.0
	if !p.Angular.Clockwise() {
		dir = -1
	}

	frames := make(Trajectory, 0, int(target/step)+2)
	angle := p.Angular.Source
	for i := 0; ; i++ {
		travel := float64(i) * step
		if travel >= target {
			break
		}

		switch p.Wrap {
		case WrapLegacy:
			// Incremental stepping with seam snapping
			if i > 0 {
				angle += step * dir
			}
			angle = wrapLegacy(angle)
		default:
			angle = vmath.NormalizeDegrees(p.Angular.Source + dir*travel)
		}

		frames = append(frames, Keyframe{
			Point: vmath.PointOnCircle(p.Circle, angle),
			Time:  travel / target,
		})
	}
	frames = append(frames, Keyframe{Point: resting, Time: 1})

	if p.Mode == Exit {
		reversePoints(frames)
	}
	return frames
}

func wrapLegacy(angle float64) float64 {
	if angle < 0 {
		return parameter.LegacyWrapDegrees
	}
	if angle >= vmath.FullTurn {
		return 0
	}
	return angle
}

// reversePoints reverses the spatial order in place; times stay ascending
func reversePoints(frames Trajectory) {
	for i, j := 0, len(frames)-1; i < j; i, j = i+1, j-1 {
		frames[i].Point, frames[j].Point = frames[j].Point, frames[i].Point
	}
}
