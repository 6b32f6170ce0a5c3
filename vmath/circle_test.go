package vmath

import (
	"math"
	"testing"

	"github.com/lixenwraith/ringmotion/core"
)

const eps = 1e-9

func TestPointOnCircle(t *testing.T) {
	c := core.Circle{Center: core.Point{}, Radius: 100}

	cases := []struct {
		deg  float64
		want core.Point
	}{
		{0, core.Point{X: 100, Y: 0}},
		{60, core.Point{X: 50, Y: 86.60254037844386}},
		{90, core.Point{X: 0, Y: 100}},
		{180, core.Point{X: -100, Y: 0}},
		{270, core.Point{X: 0, Y: -100}},
	}
	for _, tc := range cases {
		got := PointOnCircle(c, tc.deg)
		if math.Abs(got.X-tc.want.X) > eps || math.Abs(got.Y-tc.want.Y) > eps {
			t.Errorf("PointOnCircle(%v): expected %v, got %v", tc.deg, tc.want, got)
		}
	}
}

func TestPointOnCircleDistance(t *testing.T) {
	c := core.Circle{Center: core.Point{X: -12.5, Y: 40}, Radius: 33}
	for deg := 0.0; deg < 360; deg += 7.3 {
		p := PointOnCircle(c, deg)
		if d := p.Dist(c.Center); math.Abs(d-c.Radius) > 1e-9 {
			t.Fatalf("Angle %v: expected distance %v, got %v", deg, c.Radius, d)
		}
	}
}

func TestPointOnCircleNaN(t *testing.T) {
	p := PointOnCircle(core.Circle{Radius: 1}, math.NaN())
	if !math.IsNaN(p.X) || !math.IsNaN(p.Y) {
		t.Errorf("Expected NaN to propagate, got %v", p)
	}
}

func TestNormalizeDegrees(t *testing.T) {
	cases := map[float64]float64{
		0:      0,
		360:    0,
		361:    1,
		-0.5:   359.5,
		-360:   0,
		725:    5,
		-1e-14: 0,
	}
	for in, want := range cases {
		got := NormalizeDegrees(in)
		if math.Abs(got-want) > eps {
			t.Errorf("NormalizeDegrees(%v): expected %v, got %v", in, want, got)
		}
		if got < 0 || got >= 360 {
			t.Errorf("NormalizeDegrees(%v) = %v outside [0,360)", in, got)
		}
	}
}

func TestAngularDistance(t *testing.T) {
	cases := []struct {
		from, to  float64
		clockwise bool
		want      float64
	}{
		{0, 90, true, 90},
		{270, 90, true, 180},
		{350, 10, true, 20},
		{90, 0, false, 90},
		{10, 350, false, 20},
		{45, 45, true, 0},
		{45, 45, false, 0},
		{0, 360, true, 0},
	}
	for _, tc := range cases {
		got := AngularDistance(tc.from, tc.to, tc.clockwise)
		if math.Abs(got-tc.want) > eps {
			t.Errorf("AngularDistance(%v,%v,%v): expected %v, got %v", tc.from, tc.to, tc.clockwise, tc.want, got)
		}
	}
}

func TestAngularDistanceRoundTrip(t *testing.T) {
	for a := 0.0; a < 360; a += 11.25 {
		for b := 0.0; b < 360; b += 13.5 {
			cw := AngularDistance(a, b, true)
			ccw := AngularDistance(a, b, false)

			if cw < 0 || cw >= 360 || ccw < 0 || ccw >= 360 {
				t.Fatalf("(%v,%v): distances out of range cw=%v ccw=%v", a, b, cw, ccw)
			}

			// Both arcs between the same endpoints cover the full turn
			if sum := math.Mod(cw+ccw, 360); math.Abs(sum) > eps {
				t.Errorf("(%v,%v): expected cw+ccw ≡ 0 (mod 360), got %v", a, b, sum)
			}

			// The same arc walked backwards has the same length
			back := AngularDistance(b, a, false)
			if math.Abs(cw-back) > eps {
				t.Errorf("(%v,%v): expected reverse ccw %v to equal cw %v", a, b, back, cw)
			}
		}
	}
}
