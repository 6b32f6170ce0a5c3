package parameter

import "time"

// Trajectory Sampling
const (
	// StepDegrees is the angular distance between consecutive trajectory samples
	StepDegrees = 0.1

	// MinStepDegrees bounds a trajectory to 720000 samples over the longest travel (720 degrees)
	MinStepDegrees = 0.001

	// LegacyWrapDegrees is the angle a counter-clockwise step lands on when it crosses zero
	// in legacy wrap mode (one step short of a full turn)
	LegacyWrapDegrees = 359.9
)

// Animation Defaults
const (
	// AnimationKey is the consumer property key trajectories are submitted under
	// Resubmitting under the same key replaces the in-flight trajectory
	AnimationKey = "position"

	// DefaultDuration is the per-element animation length
	DefaultDuration = 1200 * time.Millisecond

	// DefaultDelayUnit is the stagger between consecutive elements
	DefaultDelayUnit = 100 * time.Millisecond

	// DefaultCurveName is the timing curve used when none is configured
	DefaultCurveName = "ease-out-quint"
)

// Host Loop Timing
const (
	// FrameUpdateInterval is the rendering frame rate interval (~60 FPS)
	FrameUpdateInterval = 16 * time.Millisecond

	// InputBufferSize is the capacity of the host input event channel
	InputBufferSize = 100
)

// Queue Limits
const (
	// EventQueueSize is the fixed capacity of the lifecycle event ring buffer
	EventQueueSize = 1024

	// EventBufferMask is the bitmask for fast modulo operations (1024 - 1)
	EventBufferMask = 1023
)

// Logging
const (
	// LogDir is the directory host log files are written to
	LogDir = "logs"

	// LogFileName is the host log file name inside LogDir
	LogFileName = "ringmotion.log"

	// MaxLogSize is the size at which the log file is rotated on startup
	MaxLogSize = 10 * 1024 * 1024
)

// Host Limits
const (
	// MaxElements caps interactive element count changes (one glyph per label)
	MaxElements = 36

	// WindowWidth and WindowHeight size the ebiten host window in pixels
	WindowWidth  = 640
	WindowHeight = 480

	// WindowMargin is the pixel gap kept between the ring and the window edge
	WindowMargin = 40.0
)
