package geom

import (
	"math"
	"testing"
)

func TestCamera_RoundTrip(t *testing.T) {
	cams := []*Camera{
		{TranslateX: 0, TranslateY: 0, Scale: 1},
		{TranslateX: 120, TranslateY: -45, Scale: 0.5},
		{TranslateX: -300.5, TranslateY: 900, Scale: 3.2},
	}
	points := []Point{{0, 0}, {100, 100}, {-53.2, 881.1}, {0.001, -0.001}}

	for _, c := range cams {
		for _, p := range points {
			got := c.ToScreen(c.ToCanvas(p))
			if math.Abs(got.X-p.X) > 1e-9 || math.Abs(got.Y-p.Y) > 1e-9 {
				t.Errorf("round trip drifted: cam %+v point %+v got %+v", c, p, got)
			}
		}
	}
}

// The canvas point under the pinch focal coordinate must resolve to the
// same screen coordinate before and after a scale change.
func TestCamera_ZoomAt_FocalStability(t *testing.T) {
	c := &Camera{TranslateX: 40, TranslateY: -60, Scale: 1.5}
	focal := Point{500, 300}
	under := c.ToCanvas(focal)

	c.ZoomAt(2.4, focal)

	after := c.ToScreen(under)
	if math.Abs(after.X-focal.X) > 1e-9 || math.Abs(after.Y-focal.Y) > 1e-9 {
		t.Errorf("focal point drifted: %+v -> %+v", focal, after)
	}
}

func TestCamera_ZoomAt_Clamps(t *testing.T) {
	c := NewCamera()
	c.ZoomAt(100, Point{0, 0})
	if c.Scale != MaxZoom {
		t.Errorf("expected scale clamped to %v, got %v", MaxZoom, c.Scale)
	}
	c.ZoomAt(0.0001, Point{0, 0})
	if c.Scale != MinZoom {
		t.Errorf("expected scale clamped to %v, got %v", MinZoom, c.Scale)
	}
}

func TestCamera_PanBy(t *testing.T) {
	c := &Camera{Scale: 2}
	c.PanBy(10, -5)
	if c.TranslateX != 10 || c.TranslateY != -5 {
		t.Errorf("unexpected translate: %+v", c)
	}
	// Pan is screen-space: canvas coordinates shift by delta/scale.
	p := c.ToCanvas(Point{10, -5})
	if p.X != 0 || p.Y != 0 {
		t.Errorf("expected canvas origin under translate, got %+v", p)
	}
}
