package animation

import (
	"fmt"
	"time"

	"github.com/lixenwraith/ringmotion/core"
	"github.com/lixenwraith/ringmotion/curve"
	"github.com/lixenwraith/ringmotion/trajectory"
)

// Submission is one trajectory handed to the consumer for playback
type Submission struct {
	Key        string // Property key; a resubmission under the same key replaces the in-flight one
	Trajectory trajectory.Trajectory
	Duration   time.Duration
	Curve      curve.Curve
}

// Consumer owns the canonical position of every element and plays trajectories back
// The animator calls SetPosition with the source point synchronously during Animate, then
// SetPosition with the resting point immediately before Submit when the element's delay elapses
type Consumer[E comparable] interface {
	SetPosition(e E, p core.Point)
	Submit(e E, s Submission)
}

// ElementState is where an element is in its lifecycle for the latest call touching it
type ElementState uint8

const (
	Idle ElementState = iota
	Positioned
	Animating
	Settled
)

func (s ElementState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Positioned:
		return "positioned"
	case Animating:
		return "animating"
	case Settled:
		return "settled"
	default:
		return fmt.Sprintf("state(%d)", uint8(s))
	}
}
