package playback

import (
	"fmt"
	"time"

	"github.com/lixenwraith/ringmotion/core"
)

// Glyph is one element ready to draw, independent of the drawing backend
type Glyph struct {
	Point   core.Point
	Rune    rune
	Moving  bool
	Settled bool
}

// Glyphs collects the current appearance of every element under key, in first-seen order
// label picks the rune for each element
func (s *Stage[E]) Glyphs(key string, now time.Time, label func(E) rune) []Glyph {
	elements := s.Elements()
	out := make([]Glyph, 0, len(elements))
	for _, e := range elements {
		p, ok := s.Position(e, key, now)
		if !ok {
			continue
		}
		moving := s.Playing(e, key, now)
		out = append(out, Glyph{
			Point:   p,
			Rune:    label(e),
			Moving:  moving,
			Settled: !moving,
		})
	}
	return out
}

// IndexLabel labels element i with a digit or letter, cycling after 36
func IndexLabel(i int) rune {
	const alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
	if i < 0 {
		return '?'
	}
	return rune(alphabet[i%len(alphabet)])
}

// Summary formats the status line from a metrics snapshot
func Summary(elements int, snap map[string]float64) string {
	return fmt.Sprintf("elements:%d calls:%d dispatched:%d settled:%d pending:%d",
		elements,
		int64(snap["animator.calls"]),
		int64(snap["animator.dispatched"]),
		int64(snap["animator.settled"]),
		int64(snap["scheduler.pending"]))
}
