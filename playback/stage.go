// Package playback holds element positions and plays submitted trajectories back over time
package playback

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/ringmotion/animation"
	"github.com/lixenwraith/ringmotion/core"
	"github.com/lixenwraith/ringmotion/engine"
	"github.com/lixenwraith/ringmotion/status"
)

// clip is one in-flight submission
type clip struct {
	sub   animation.Submission
	start time.Time
}

// progress returns normalized elapsed time, clamped to [0,1]
func (c *clip) progress(now time.Time) float64 {
	if c.sub.Duration <= 0 {
		return 1
	}
	u := float64(now.Sub(c.start)) / float64(c.sub.Duration)
	switch {
	case u < 0:
		return 0
	case u > 1:
		return 1
	}
	return u
}

type entry struct {
	model core.Point
	clips map[string]*clip
}

// Stage is the reference consumer: a canonical model position per element plus
// keyed clips that override it while they play
// Safe for concurrent use; hosts typically submit from the loop and draw from a renderer
type Stage[E comparable] struct {
	mu      sync.RWMutex
	clock   engine.Clock
	entries map[E]*entry
	order   []E // First-seen order, used for stable draw order

	statSubmissions *atomic.Int64
	statReplaced    *atomic.Int64
}

var _ animation.Consumer[int] = (*Stage[int])(nil)

// NewStage creates an empty stage stamping submissions with clock
// reg may be nil
func NewStage[E comparable](clock engine.Clock, reg *status.Registry) *Stage[E] {
	if reg == nil {
		reg = status.NewRegistry()
	}
	return &Stage[E]{
		clock:           clock,
		entries:         make(map[E]*entry),
		statSubmissions: reg.Ints.Get("playback.submissions"),
		statReplaced:    reg.Ints.Get("playback.replaced"),
	}
}

func (s *Stage[E]) entry(e E) *entry {
	en, ok := s.entries[e]
	if !ok {
		en = &entry{clips: make(map[string]*clip)}
		s.entries[e] = en
		s.order = append(s.order, e)
	}
	return en
}

// SetPosition updates the model position; clips already playing keep playing
func (s *Stage[E]) SetPosition(e E, p core.Point) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entry(e).model = p
}

// Submit starts playing sub now, replacing any clip under the same key
func (s *Stage[E]) Submit(e E, sub animation.Submission) {
	s.mu.Lock()
	defer s.mu.Unlock()

	en := s.entry(e)
	if _, ok := en.clips[sub.Key]; ok {
		s.statReplaced.Add(1)
	}
	en.clips[sub.Key] = &clip{sub: sub, start: s.clock.Now()}
	s.statSubmissions.Add(1)
}

// Model returns the canonical position of e
func (s *Stage[E]) Model(e E) (core.Point, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	en, ok := s.entries[e]
	if !ok {
		return core.Point{}, false
	}
	return en.model, true
}

// Position returns where e appears at now
// A playing clip under key wins over the model; finished clips fall back to it
func (s *Stage[E]) Position(e E, key string, now time.Time) (core.Point, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	en, ok := s.entries[e]
	if !ok {
		return core.Point{}, false
	}
	c, ok := en.clips[key]
	if !ok || len(c.sub.Trajectory) == 0 || c.progress(now) >= 1 {
		return en.model, true
	}
	return c.sub.Trajectory.At(c.sub.Curve.Ease(c.progress(now))), true
}

// Playing reports whether e has an unfinished clip under key at now
func (s *Stage[E]) Playing(e E, key string, now time.Time) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if en, ok := s.entries[e]; ok {
		if c, ok := en.clips[key]; ok {
			return c.progress(now) < 1
		}
	}
	return false
}

// Elements returns every element ever touched, in first-seen order
func (s *Stage[E]) Elements() []E {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]E, len(s.order))
	copy(out, s.order)
	return out
}

// Prune drops finished clips and returns how many remain playing
func (s *Stage[E]) Prune(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	active := 0
	for _, en := range s.entries {
		for key, c := range en.clips {
			if c.progress(now) >= 1 {
				delete(en.clips, key)
				continue
			}
			active++
		}
	}
	return active
}

// Remove forgets e entirely
func (s *Stage[E]) Remove(e E) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[e]; !ok {
		return
	}
	delete(s.entries, e)
	for i, o := range s.order {
		if o == e {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}
