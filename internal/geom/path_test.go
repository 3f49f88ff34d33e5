package geom

import "testing"

func TestParsePath(t *testing.T) {
	pts := ParsePath("M10,10 L50,50 L60,20")
	if len(pts) != 3 {
		t.Fatalf("expected 3 points, got %d", len(pts))
	}
	if pts[0] != (Point{10, 10}) || pts[2] != (Point{60, 20}) {
		t.Errorf("unexpected points: %+v", pts)
	}
}

func TestParsePath_SkipsMalformedTokens(t *testing.T) {
	pts := ParsePath("M10,10 garbage L50,abc L50,50 Lnope")
	if len(pts) != 2 {
		t.Fatalf("expected malformed tokens skipped, got %d points", len(pts))
	}
	if pts[1] != (Point{50, 50}) {
		t.Errorf("unexpected second point: %+v", pts[1])
	}
}

func TestParsePath_Empty(t *testing.T) {
	if pts := ParsePath(""); pts != nil {
		t.Errorf("expected nil for empty path, got %+v", pts)
	}
}

func TestPathBuilder(t *testing.T) {
	var b PathBuilder
	b.Append(Point{10, 10})
	b.Append(Point{50, 50})
	if got := b.String(); got != "M10,10 L50,50" {
		t.Errorf("unexpected path string: %q", got)
	}
	if b.Len() != 2 {
		t.Errorf("expected 2 points, got %d", b.Len())
	}
	if pts := ParsePath(b.String()); len(pts) != 2 || pts[1] != (Point{50, 50}) {
		t.Errorf("builder output did not parse back: %+v", pts)
	}
}

func TestPathBounds(t *testing.T) {
	r, ok := PathBounds("M10,20 L50,5 L30,40", 100, 200)
	if !ok {
		t.Fatal("expected bounds")
	}
	want := Rect{110, 205, 40, 35}
	if r != want {
		t.Errorf("got %+v, want %+v", r, want)
	}
}

func TestPathBounds_SinglePoint(t *testing.T) {
	r, ok := PathBounds("M5,5", 0, 0)
	if !ok {
		t.Fatal("expected bounds for single point")
	}
	if r != (Rect{5, 5, 0, 0}) {
		t.Errorf("unexpected rect: %+v", r)
	}
}

func TestPathBounds_Unparseable(t *testing.T) {
	if _, ok := PathBounds("not a path", 0, 0); ok {
		t.Error("expected no bounds for unparseable data")
	}
}
