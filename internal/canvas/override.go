package canvas

import "slate/internal/geom"

// ─────────────────────────────────────────────────────────────
// Optimistic override layer
// ─────────────────────────────────────────────────────────────

// Overrides hold locally computed geometry that shadows the persisted
// value while an entity is being dragged or resized, and afterwards until
// the persistence collaborator's confirmed state catches up. They are read
// only by the render path and hit testing — never by persistence calls.
//
// Each entry is stamped with a generation when its gesture ends. An
// authoritative refresh clears an entry only when no manipulation is
// active and the refresh generation has passed the stamp, which prevents
// the one-frame snap-back between gesture end and confirmation.
type overrideMap struct {
	items   map[string]overrideEntry  // id → shadowed bounds
	strokes map[string]offsetOverride // id → shadowed offset
}

type overrideEntry struct {
	bounds geom.Rect
	gen    int // 0 while the gesture is live
}

type offsetOverride struct {
	offset geom.Point
	gen    int
}

func newOverrideMap() *overrideMap {
	return &overrideMap{
		items:   map[string]overrideEntry{},
		strokes: map[string]offsetOverride{},
	}
}

func (o *overrideMap) setItem(id string, r geom.Rect) {
	o.items[id] = overrideEntry{bounds: r}
}

func (o *overrideMap) setStroke(id string, off geom.Point) {
	o.strokes[id] = offsetOverride{offset: off}
}

func (o *overrideMap) itemBounds(id string) (geom.Rect, bool) {
	e, ok := o.items[id]
	return e.bounds, ok
}

func (o *overrideMap) strokeOffset(id string) (geom.Point, bool) {
	e, ok := o.strokes[id]
	return e.offset, ok
}

// stamp marks every live entry as finished at the given generation.
// Called at gesture end; the entries survive until a refresh at or past
// that generation arrives.
func (o *overrideMap) stamp(gen int) {
	for id, e := range o.items {
		if e.gen == 0 {
			e.gen = gen
			o.items[id] = e
		}
	}
	for id, e := range o.strokes {
		if e.gen == 0 {
			e.gen = gen
			o.strokes[id] = e
		}
	}
}

// sweep clears stamped entries that a refresh at generation gen has
// confirmed. Live (unstamped) entries are never swept.
func (o *overrideMap) sweep(gen int) {
	for id, e := range o.items {
		if e.gen > 0 && e.gen <= gen {
			delete(o.items, id)
		}
	}
	for id, e := range o.strokes {
		if e.gen > 0 && e.gen <= gen {
			delete(o.strokes, id)
		}
	}
}
