package canvas

import (
	"math"

	"slate/internal/domain"
	"slate/internal/geom"
)

// ─────────────────────────────────────────────────────────────
// Hit testing — pure geometry queries, no state mutation
// ─────────────────────────────────────────────────────────────

const (
	// handleHitRadius is the half-size of a handle's hit box in screen
	// pixels, independent of zoom.
	handleHitRadius = 14.0
	// minStrokeTolerance is the minimum hit distance for thin strokes.
	minStrokeTolerance = 15.0
)

// Handle identifies one hit region on a selected item's border.
type Handle int

const (
	HandleNone Handle = iota
	// Side midpoints start a connection drag.
	HandleTop
	HandleBottom
	HandleLeft
	HandleRight
	// Corners resize.
	HandleTopLeft
	HandleTopRight
	HandleBottomLeft
	HandleBottomRight
)

// IsSide reports whether the handle is a connection (side-midpoint) handle.
func (h Handle) IsSide() bool {
	return h >= HandleTop && h <= HandleRight
}

// IsCorner reports whether the handle is a resize (corner) handle.
func (h Handle) IsCorner() bool {
	return h >= HandleTopLeft && h <= HandleBottomRight
}

// Side maps a side handle to its connection anchor side.
func (h Handle) Side() domain.Side {
	switch h {
	case HandleTop:
		return domain.SideTop
	case HandleBottom:
		return domain.SideBottom
	case HandleLeft:
		return domain.SideLeft
	default:
		return domain.SideRight
	}
}

// hitItem returns the topmost item containing the canvas point, or nil.
// Items later in the list render on top and win. Text items with no
// content are transparent to hit testing. bounds supplies the effective
// bounding box per item (override- and measured-size-aware).
func hitItem(p geom.Point, items []domain.Item, bounds func(*domain.Item) geom.Rect) *domain.Item {
	for i := len(items) - 1; i >= 0; i-- {
		it := &items[i]
		if it.Type == domain.ItemTypeText && it.Content == "" {
			continue
		}
		if bounds(it).Contains(p) {
			return it
		}
	}
	return nil
}

// strokeTolerance is the hit distance for a stroke: half its width, but
// never thinner than minStrokeTolerance so hairlines stay tappable.
func strokeTolerance(st *domain.Stroke) float64 {
	return math.Max(st.Width/2, minStrokeTolerance)
}

// hitStroke returns the topmost stroke within tolerance of the canvas
// point, or nil. offset supplies the effective translation per stroke.
// Unparseable path data is skipped rather than raised.
func hitStroke(p geom.Point, strokes []domain.Stroke, offset func(*domain.Stroke) geom.Point) *domain.Stroke {
	for i := len(strokes) - 1; i >= 0; i-- {
		st := &strokes[i]
		pts := geom.ParsePath(st.PathData)
		if len(pts) == 0 {
			continue
		}
		off := offset(st)
		tol := strokeTolerance(st)
		if len(pts) == 1 {
			if p.Dist(pts[0].Add(off)) <= tol {
				return st
			}
			continue
		}
		for j := 0; j < len(pts)-1; j++ {
			a := pts[j].Add(off)
			b := pts[j+1].Add(off)
			if geom.PointSegmentDistance(p, a, b) <= tol {
				return st
			}
		}
	}
	return nil
}

// handleAnchors returns the canvas-space anchor point of every handle on
// the item's bounds, in hit-test priority order: the four connection
// handles first, then (for non-audio items) the four resize corners.
func handleAnchors(r geom.Rect, itemType domain.ItemType) []struct {
	Handle Handle
	At     geom.Point
} {
	anchors := []struct {
		Handle Handle
		At     geom.Point
	}{
		{HandleTop, geom.Point{X: r.X + r.Width/2, Y: r.Y}},
		{HandleBottom, geom.Point{X: r.X + r.Width/2, Y: r.Y + r.Height}},
		{HandleLeft, geom.Point{X: r.X, Y: r.Y + r.Height/2}},
		{HandleRight, geom.Point{X: r.X + r.Width, Y: r.Y + r.Height/2}},
	}
	if itemType != domain.ItemTypeAudio {
		anchors = append(anchors, []struct {
			Handle Handle
			At     geom.Point
		}{
			{HandleTopLeft, geom.Point{X: r.X, Y: r.Y}},
			{HandleTopRight, geom.Point{X: r.X + r.Width, Y: r.Y}},
			{HandleBottomLeft, geom.Point{X: r.X, Y: r.Y + r.Height}},
			{HandleBottomRight, geom.Point{X: r.X + r.Width, Y: r.Y + r.Height}},
		}...)
	}
	return anchors
}

// hitHandle tests a screen point against the handles of an item whose
// canvas bounds are r. The hit box is a ±handleHitRadius square in screen
// space regardless of zoom, clamped to a quarter of the item's on-screen
// footprint: adjacent handle boxes never overlap, and a small item keeps
// a grabbable interior for moves.
func hitHandle(screen geom.Point, r geom.Rect, itemType domain.ItemType, cam *geom.Camera) Handle {
	radius := float64(handleHitRadius)
	if q := r.Width * cam.Scale / 4; q < radius {
		radius = q
	}
	if q := r.Height * cam.Scale / 4; q < radius {
		radius = q
	}
	for _, a := range handleAnchors(r, itemType) {
		at := cam.ToScreen(a.At)
		if math.Abs(screen.X-at.X) <= radius && math.Abs(screen.Y-at.Y) <= radius {
			return a.Handle
		}
	}
	return HandleNone
}

// closestSide returns the side of r nearest to the canvas point, by
// axis-aligned distance to each of the four edges.
func closestSide(r geom.Rect, p geom.Point) domain.Side {
	side := domain.SideLeft
	best := math.Abs(p.X - r.X)
	if d := math.Abs(p.X - (r.X + r.Width)); d < best {
		side, best = domain.SideRight, d
	}
	if d := math.Abs(p.Y - r.Y); d < best {
		side, best = domain.SideTop, d
	}
	if d := math.Abs(p.Y - (r.Y + r.Height)); d < best {
		side = domain.SideBottom
	}
	return side
}

// sideMidpoint returns the canvas-space midpoint of one side of r.
func sideMidpoint(r geom.Rect, side domain.Side) geom.Point {
	switch side {
	case domain.SideTop:
		return geom.Point{X: r.X + r.Width/2, Y: r.Y}
	case domain.SideBottom:
		return geom.Point{X: r.X + r.Width/2, Y: r.Y + r.Height}
	case domain.SideLeft:
		return geom.Point{X: r.X, Y: r.Y + r.Height/2}
	default:
		return geom.Point{X: r.X + r.Width, Y: r.Y + r.Height/2}
	}
}
