package canvas

import (
	"github.com/google/uuid"

	"slate/internal/domain"
	"slate/internal/geom"
)

// ─────────────────────────────────────────────────────────────
// Clipboard — cut/copy/paste with repeated-paste fan-out
// ─────────────────────────────────────────────────────────────

// pasteStep is how far each successive paste shifts, in canvas units, so
// repeated pastes fan out instead of stacking exactly.
const pasteStep = 30.0

// clipboard snapshots selected entities by value. The snapshot survives
// later edits or deletion of the originals.
type clipboard struct {
	items      []domain.Item
	strokes    []domain.Stroke
	pasteCount int
}

func (c *clipboard) empty() bool {
	return len(c.items) == 0 && len(c.strokes) == 0
}

// snapshotSelection copies the selected items and strokes into the
// clipboard and resets the paste offset.
func (e *Engine) snapshotSelection() {
	c := e.clip
	c.items = c.items[:0]
	c.strokes = c.strokes[:0]
	c.pasteCount = 0
	for _, id := range e.sel.ItemIDs() {
		if it := e.findItem(id); it != nil {
			snap := *it
			snap.GroupID = copyGroupID(it.GroupID)
			c.items = append(c.items, snap)
		}
	}
	for _, id := range e.sel.StrokeIDs() {
		if st := e.findStroke(id); st != nil {
			snap := *st
			snap.GroupID = copyGroupID(st.GroupID)
			c.strokes = append(c.strokes, snap)
		}
	}
}

// Copy snapshots the selection and clears it.
func (e *Engine) Copy() {
	if e.sel.Empty() {
		return
	}
	e.snapshotSelection()
	e.sel.Clear()
}

// Cut snapshots the selection, then deletes it like DeleteSelected.
func (e *Engine) Cut() {
	if e.sel.Empty() {
		return
	}
	e.snapshotSelection()
	e.DeleteSelected()
}

// Paste clones the clipboard onto the board, centered on the current
// viewport center plus a growing offset per successive paste. Clones get
// fresh ids; group membership inside the snapshot is preserved under a
// fresh group id per original group.
func (e *Engine) Paste(viewportCenter geom.Point) {
	c := e.clip
	if c.empty() {
		return
	}

	bounds, ok := e.clipBounds()
	if !ok {
		return
	}
	offset := pasteStep * float64(c.pasteCount)
	c.pasteCount++
	center := bounds.Center()
	dx := viewportCenter.X - center.X + offset
	dy := viewportCenter.Y - center.Y + offset

	groupIDs := map[string]string{} // original group id → fresh id
	remap := func(g *string) *string {
		if g == nil {
			return nil
		}
		fresh, ok := groupIDs[*g]
		if !ok {
			fresh = uuid.New().String()
			groupIDs[*g] = fresh
		}
		return &fresh
	}

	rec := &batchCreateAction{}
	for _, it := range c.items {
		clone := it
		clone.ID = uuid.New().String()
		clone.BoardID = e.boardID
		clone.X += dx
		clone.Y += dy
		clone.GroupID = remap(it.GroupID)
		e.store.CreateItem(&clone, nil)
		rec.itemIDs = append(rec.itemIDs, clone.ID)
	}
	for _, st := range c.strokes {
		clone := st
		clone.ID = uuid.New().String()
		clone.BoardID = e.boardID
		clone.XOffset += dx
		clone.YOffset += dy
		clone.GroupID = remap(st.GroupID)
		e.store.CreateStroke(&clone, nil)
		rec.strokeIDs = append(rec.strokeIDs, clone.ID)
	}
	e.record(rec)
}

// clipBounds returns the bounding box of the clipboard snapshot.
func (e *Engine) clipBounds() (geom.Rect, bool) {
	c := e.clip
	var out geom.Rect
	have := false
	grow := func(r geom.Rect) {
		if !have {
			out = r
			have = true
			return
		}
		right := out.X + out.Width
		bottom := out.Y + out.Height
		if r.X < out.X {
			out.Width = right - r.X
			out.X = r.X
		}
		if r.Y < out.Y {
			out.Height = bottom - r.Y
			out.Y = r.Y
		}
		if r.X+r.Width > out.X+out.Width {
			out.Width = r.X + r.Width - out.X
		}
		if r.Y+r.Height > out.Y+out.Height {
			out.Height = r.Y + r.Height - out.Y
		}
	}
	for _, it := range c.items {
		grow(geom.Rect{X: it.X, Y: it.Y, Width: it.Width, Height: it.Height})
	}
	for _, st := range c.strokes {
		if b, ok := geom.PathBounds(st.PathData, st.XOffset, st.YOffset); ok {
			grow(b)
		}
	}
	return out, have
}
