// Package audio plays short cues for animation lifecycle events
package audio

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/ringmotion/event"
)

const (
	sampleRate = beep.SampleRate(48000)

	chimeLength = 180 * time.Millisecond
	tickLength  = 40 * time.Millisecond
	baseFreq    = 440.0 // A4
)

// Major pentatonic offsets in semitones
var pentatonic = [...]int{0, 2, 4, 7, 9}

// SoundManager mixes lifecycle cues onto the speaker
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	ctrl        *beep.Ctrl
	initialized bool
}

// NewSoundManager creates a new sound manager
func NewSoundManager() *SoundManager {
	mixer := &beep.Mixer{}
	return &SoundManager{
		mixer: mixer,
		ctrl:  &beep.Ctrl{Streamer: mixer},
	}
}

// Initialize sets up the audio system
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*100))
	if err != nil {
		return err
	}

	speaker.Play(sm.ctrl)
	sm.initialized = true
	return nil
}

// Cleanup silences everything and detaches from the speaker
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	speaker.Clear()
	sm.initialized = false
}

// SetMuted pauses or resumes all output
func (sm *SoundManager) SetMuted(muted bool) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		speaker.Lock()
		defer speaker.Unlock()
	}
	sm.ctrl.Paused = muted
}

// Muted reports whether output is paused
func (sm *SoundManager) Muted() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.ctrl.Paused
}

// PlayDispatch plays a chime whose pitch climbs with the element index
func (sm *SoundManager) PlayDispatch(index int) {
	sm.add(beep.Take(sampleRate.N(chimeLength), NewChimeGenerator(sampleRate, DispatchFrequency(index))))
}

// PlaySettle plays a short tick
func (sm *SoundManager) PlaySettle() {
	sm.add(beep.Take(sampleRate.N(tickLength), NewTickGenerator(sampleRate)))
}

// HandleEvent maps a lifecycle event to its cue
// Settle ticks only for the last element of a call so a full ring produces one tick
func (sm *SoundManager) HandleEvent(ev event.Event) {
	switch ev.Type {
	case event.EventDispatched:
		sm.PlayDispatch(ev.Index)
	case event.EventSettled:
		if ev.Index == ev.Count-1 {
			sm.PlaySettle()
		}
	}
}

func (sm *SoundManager) add(s beep.Streamer) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
}

// DispatchFrequency walks the pentatonic scale upward from A4, one step per index
func DispatchFrequency(index int) float64 {
	if index < 0 {
		index = 0
	}
	octave := index / len(pentatonic)
	semis := octave*12 + pentatonic[index%len(pentatonic)]
	// Cap at two octaves to keep large rings listenable
	if semis > 24 {
		semis = 24
	}
	return baseFreq * math.Pow(2, float64(semis)/12)
}

// ChimeGenerator is a sine with a fast attack and exponential decay
type ChimeGenerator struct {
	sr   beep.SampleRate
	freq float64
	pos  int
}

// NewChimeGenerator creates a chime at freq
func NewChimeGenerator(sr beep.SampleRate, freq float64) *ChimeGenerator {
	return &ChimeGenerator{sr: sr, freq: freq}
}

func (g *ChimeGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)

		attack := math.Min(t/0.005, 1.0)
		decay := math.Exp(-t * 18)
		sample := 0.25 * attack * decay * (math.Sin(2*math.Pi*g.freq*t) + 0.3*math.Sin(4*math.Pi*g.freq*t))

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *ChimeGenerator) Err() error {
	return nil
}

// TickGenerator is a short filtered click
type TickGenerator struct {
	sr  beep.SampleRate
	pos int
}

// NewTickGenerator creates a tick generator
func NewTickGenerator(sr beep.SampleRate) *TickGenerator {
	return &TickGenerator{sr: sr}
}

func (g *TickGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)

		sample := 0.2 * math.Exp(-t*120) * math.Sin(2*math.Pi*1800*t)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *TickGenerator) Err() error {
	return nil
}
