package canvas

import (
	"testing"

	"slate/internal/domain"
	"slate/internal/geom"
)

func plainBounds(it *domain.Item) geom.Rect {
	return geom.Rect{X: it.X, Y: it.Y, Width: it.Width, Height: it.Height}
}

func plainOffset(st *domain.Stroke) geom.Point {
	return geom.Point{X: st.XOffset, Y: st.YOffset}
}

func TestHitItem_TopmostWins(t *testing.T) {
	items := []domain.Item{
		{ID: "under", Type: domain.ItemTypeShape, X: 0, Y: 0, Width: 100, Height: 100},
		{ID: "over", Type: domain.ItemTypeShape, X: 50, Y: 50, Width: 100, Height: 100},
	}
	hit := hitItem(geom.Point{X: 60, Y: 60}, items, plainBounds)
	if hit == nil || hit.ID != "over" {
		t.Fatalf("expected later item to win, got %+v", hit)
	}
}

func TestHitItem_SkipsEmptyText(t *testing.T) {
	items := []domain.Item{
		{ID: "shape", Type: domain.ItemTypeShape, X: 0, Y: 0, Width: 100, Height: 100},
		{ID: "empty", Type: domain.ItemTypeText, X: 0, Y: 0, Width: 100, Height: 100},
	}
	hit := hitItem(geom.Point{X: 10, Y: 10}, items, plainBounds)
	if hit == nil || hit.ID != "shape" {
		t.Fatalf("expected content-less text skipped, got %+v", hit)
	}
}

func TestHitItem_Miss(t *testing.T) {
	items := []domain.Item{{ID: "a", Type: domain.ItemTypeShape, Width: 10, Height: 10}}
	if hit := hitItem(geom.Point{X: 50, Y: 50}, items, plainBounds); hit != nil {
		t.Fatalf("expected miss, got %+v", hit)
	}
}

func TestHitStroke_ToleranceBoundary(t *testing.T) {
	strokes := []domain.Stroke{
		{ID: "s", PathData: "M0,0 L100,0", Width: 4}, // tolerance = max(2, 15) = 15
	}
	if hit := hitStroke(geom.Point{X: 50, Y: 15}, strokes, plainOffset); hit == nil {
		t.Error("point at exactly tolerance distance should hit")
	}
	if hit := hitStroke(geom.Point{X: 50, Y: 15.001}, strokes, plainOffset); hit != nil {
		t.Error("point past tolerance should miss")
	}
}

func TestHitStroke_WideStrokeUsesHalfWidth(t *testing.T) {
	strokes := []domain.Stroke{{ID: "s", PathData: "M0,0 L100,0", Width: 60}}
	if hit := hitStroke(geom.Point{X: 50, Y: 30}, strokes, plainOffset); hit == nil {
		t.Error("expected hit at width/2 distance")
	}
	if hit := hitStroke(geom.Point{X: 50, Y: 31}, strokes, plainOffset); hit != nil {
		t.Error("expected miss past width/2")
	}
}

func TestHitStroke_RespectsOffset(t *testing.T) {
	strokes := []domain.Stroke{{ID: "s", PathData: "M0,0 L100,0", Width: 4, XOffset: 0, YOffset: 200}}
	if hit := hitStroke(geom.Point{X: 50, Y: 200}, strokes, plainOffset); hit == nil {
		t.Error("expected hit on translated stroke")
	}
	if hit := hitStroke(geom.Point{X: 50, Y: 0}, strokes, plainOffset); hit != nil {
		t.Error("expected miss at untranslated position")
	}
}

func TestHitStroke_SinglePointPath(t *testing.T) {
	strokes := []domain.Stroke{{ID: "dot", PathData: "M40,40", Width: 4}}
	if hit := hitStroke(geom.Point{X: 50, Y: 40}, strokes, plainOffset); hit == nil {
		t.Error("expected hit within tolerance of single point")
	}
}

func TestHitStroke_MalformedPathSkipped(t *testing.T) {
	strokes := []domain.Stroke{
		{ID: "bad", PathData: "not a path", Width: 4},
		{ID: "good", PathData: "M0,0 L100,0", Width: 4},
	}
	hit := hitStroke(geom.Point{X: 50, Y: 0}, strokes, plainOffset)
	if hit == nil || hit.ID != "good" {
		t.Fatalf("malformed stroke should be skipped, got %+v", hit)
	}
}

func TestHitHandle_SideBeforeCorner(t *testing.T) {
	cam := geom.NewCamera()
	r := geom.Rect{X: 0, Y: 0, Width: 40, Height: 40}
	// (0, 10) is equidistant from the left connection handle at (0, 20)
	// and the top-left corner; connection handles take priority.
	h := hitHandle(geom.Point{X: 0, Y: 10}, r, domain.ItemTypeShape, cam)
	if !h.IsSide() {
		t.Fatalf("expected a side handle to win over the corner, got %v", h)
	}
}

func TestHitHandle_SmallItemKeepsInterior(t *testing.T) {
	cam := geom.NewCamera()
	r := geom.Rect{X: 0, Y: 0, Width: 20, Height: 20}
	// The center of a small item must stay outside every handle box so
	// an interior touch can still start a move.
	h := hitHandle(geom.Point{X: 10, Y: 10}, r, domain.ItemTypeShape, cam)
	if h != HandleNone {
		t.Fatalf("expected no handle at the item center, got %v", h)
	}
	// The border itself still hits.
	if h := hitHandle(geom.Point{X: 0, Y: 10}, r, domain.ItemTypeShape, cam); !h.IsSide() {
		t.Fatalf("expected the left handle on the border, got %v", h)
	}
}

func TestHitHandle_Corner(t *testing.T) {
	cam := geom.NewCamera()
	r := geom.Rect{X: 0, Y: 0, Width: 200, Height: 200}
	h := hitHandle(geom.Point{X: 205, Y: 206}, r, domain.ItemTypeShape, cam)
	if h != HandleBottomRight {
		t.Fatalf("expected bottom-right corner, got %v", h)
	}
}

func TestHitHandle_AudioHasNoCorners(t *testing.T) {
	cam := geom.NewCamera()
	r := geom.Rect{X: 0, Y: 0, Width: 200, Height: 200}
	h := hitHandle(geom.Point{X: 200, Y: 200}, r, domain.ItemTypeAudio, cam)
	if h != HandleNone {
		t.Fatalf("expected no corner handle on audio item, got %v", h)
	}
}

func TestHitHandle_FixedScreenSizeUnderZoom(t *testing.T) {
	cam := &geom.Camera{Scale: 0.1}
	r := geom.Rect{X: 0, Y: 0, Width: 1400, Height: 1400}
	// Top-right corner sits at screen (140, 0); 13px away still hits even
	// though 13 screen px is 130 canvas units at this zoom.
	h := hitHandle(geom.Point{X: 153, Y: 0}, r, domain.ItemTypeShape, cam)
	if h != HandleTopRight {
		t.Fatalf("expected top-right corner at 13px screen distance, got %v", h)
	}
}

func TestClosestSide(t *testing.T) {
	r := geom.Rect{X: 0, Y: 0, Width: 40, Height: 40}
	cases := []struct {
		p    geom.Point
		want domain.Side
	}{
		{geom.Point{X: 2, Y: 20}, domain.SideLeft},
		{geom.Point{X: 38, Y: 20}, domain.SideRight},
		{geom.Point{X: 20, Y: 3}, domain.SideTop},
		{geom.Point{X: 20, Y: 38}, domain.SideBottom},
	}
	for _, tc := range cases {
		if got := closestSide(r, tc.p); got != tc.want {
			t.Errorf("closestSide(%+v) = %v, want %v", tc.p, got, tc.want)
		}
	}
}
