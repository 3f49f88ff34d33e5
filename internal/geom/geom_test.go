package geom

import (
	"math"
	"testing"
)

func TestPointSegmentDistance_Projection(t *testing.T) {
	// Point above the middle of a horizontal segment.
	d := PointSegmentDistance(Point{5, 3}, Point{0, 0}, Point{10, 0})
	if math.Abs(d-3) > 1e-9 {
		t.Errorf("expected distance 3, got %v", d)
	}
}

func TestPointSegmentDistance_ClampsToEndpoint(t *testing.T) {
	// Point past the segment end projects onto the endpoint.
	d := PointSegmentDistance(Point{13, 4}, Point{0, 0}, Point{10, 0})
	if math.Abs(d-5) > 1e-9 {
		t.Errorf("expected distance 5, got %v", d)
	}
}

func TestPointSegmentDistance_DegenerateSegment(t *testing.T) {
	d := PointSegmentDistance(Point{3, 4}, Point{0, 0}, Point{0, 0})
	if math.Abs(d-5) > 1e-9 {
		t.Errorf("expected point distance 5, got %v", d)
	}
}

func TestRect_Intersects(t *testing.T) {
	a := Rect{0, 0, 10, 10}
	cases := []struct {
		name string
		b    Rect
		want bool
	}{
		{"overlap", Rect{5, 5, 10, 10}, true},
		{"contained", Rect{2, 2, 3, 3}, true},
		{"disjoint", Rect{20, 20, 5, 5}, false},
		{"touching edge", Rect{10, 0, 5, 5}, false},
	}
	for _, tc := range cases {
		if got := a.Intersects(tc.b); got != tc.want {
			t.Errorf("%s: got %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestRect_Normalized(t *testing.T) {
	r := Rect{10, 10, -4, -6}.Normalized()
	if r.X != 6 || r.Y != 4 || r.Width != 4 || r.Height != 6 {
		t.Errorf("unexpected normalized rect: %+v", r)
	}
}

func TestRectFromPoints(t *testing.T) {
	r := RectFromPoints(Point{10, 20}, Point{4, 2})
	if r.X != 4 || r.Y != 2 || r.Width != 6 || r.Height != 18 {
		t.Errorf("unexpected rect: %+v", r)
	}
}
