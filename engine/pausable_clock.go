package engine

import (
	"sync"
	"time"
)

// PausableClock provides animation time that stops while paused
// Elapsed animation time = wall elapsed - total paused time
type PausableClock struct {
	mu sync.RWMutex

	wall      Clock
	realStart time.Time // Real time at creation
	epoch     time.Time // Animation time at creation

	paused      bool
	pauseStart  time.Time     // Real time the current pause began
	totalPaused time.Duration // Completed pauses only
}

// NewPausableClock creates a running clock on top of wall
// nil wall uses the monotonic system clock
func NewPausableClock(wall Clock) *PausableClock {
	if wall == nil {
		wall = NewMonotonicTimeProvider()
	}
	now := wall.Now()
	return &PausableClock{
		wall:      wall,
		realStart: now,
		epoch:     now,
	}
}

// Now returns current animation time, frozen while paused
func (pc *PausableClock) Now() time.Time {
	pc.mu.RLock()
	defer pc.mu.RUnlock()

	realNow := pc.wall.Now()
	if pc.paused {
		realNow = pc.pauseStart
	}
	return pc.epoch.Add(realNow.Sub(pc.realStart) - pc.totalPaused)
}

// Pause stops animation time; no-op when already paused
func (pc *PausableClock) Pause() {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	if pc.paused {
		return
	}
	pc.paused = true
	pc.pauseStart = pc.wall.Now()
}

// Resume continues animation time; no-op when running
func (pc *PausableClock) Resume() {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	if !pc.paused {
		return
	}
	pc.totalPaused += pc.wall.Now().Sub(pc.pauseStart)
	pc.paused = false
	pc.pauseStart = time.Time{}
}

// Toggle flips the pause state and returns the new state
func (pc *PausableClock) Toggle() bool {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	now := pc.wall.Now()
	if pc.paused {
		pc.totalPaused += now.Sub(pc.pauseStart)
		pc.paused = false
		pc.pauseStart = time.Time{}
		return false
	}
	pc.paused = true
	pc.pauseStart = now
	return true
}

// IsPaused returns current pause state
func (pc *PausableClock) IsPaused() bool {
	pc.mu.RLock()
	defer pc.mu.RUnlock()
	return pc.paused
}

// TotalPauseDuration returns cumulative pause time including an ongoing pause
func (pc *PausableClock) TotalPauseDuration() time.Duration {
	pc.mu.RLock()
	defer pc.mu.RUnlock()

	total := pc.totalPaused
	if pc.paused {
		total += pc.wall.Now().Sub(pc.pauseStart)
	}
	return total
}
