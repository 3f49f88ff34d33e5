package canvas

import "slate/internal/geom"

// marqueeSelect replaces the selection with every item and stroke whose
// bounding box intersects the canvas-space rect. Intersection semantics:
// partial overlap selects; containment is not required. Any hit entity
// belonging to a group pulls in the whole group.
func (e *Engine) marqueeSelect(r geom.Rect) {
	e.sel.Clear()
	for i := range e.items {
		it := &e.items[i]
		if e.ItemBounds(it).Intersects(r) {
			e.selectItem(it)
		}
	}
	for i := range e.strokes {
		st := &e.strokes[i]
		off := e.StrokeOffset(st)
		b, ok := geom.PathBounds(st.PathData, off.X, off.Y)
		if !ok {
			continue
		}
		// Zero-area bounds (straight lines, dots) still count when they
		// sit inside the rect.
		if b.Intersects(r) || r.Contains(geom.Point{X: b.X, Y: b.Y}) {
			e.selectStroke(st)
		}
	}
}
