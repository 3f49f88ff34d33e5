package canvas

import (
	"slate/internal/domain"
	"slate/internal/geom"
)

// ─────────────────────────────────────────────────────────────
// Undo/redo log
// ─────────────────────────────────────────────────────────────

// historyLimit bounds the undo stack; the oldest entries are evicted on
// overflow.
const historyLimit = 50

// action is one reversible user operation. revert applies the inverse
// persistence calls and returns the opposing action, so undo and redo
// stay symmetric: reverting a record from the undo stack yields the
// record for the redo stack and vice versa. Entities deleted out from
// under a record are skipped per entity, never aborting a composite
// revert.
type action interface {
	label() string
	revert(e *Engine) action
}

type history struct {
	limit int
	undo  []action
	redo  []action
}

func newHistory(limit int) *history {
	return &history{limit: limit}
}

func (h *history) push(a action) {
	h.undo = append(h.undo, a)
	if len(h.undo) > h.limit {
		h.undo = h.undo[len(h.undo)-h.limit:]
	}
	// A new forward action invalidates the redo branch.
	h.redo = nil
}

func (h *history) canUndo() bool { return len(h.undo) > 0 }
func (h *history) canRedo() bool { return len(h.redo) > 0 }

func (h *history) len() int { return len(h.undo) }

// record pushes a forward action from a completed user operation.
func (e *Engine) record(a action) {
	e.history.push(a)
}

// Undo reverts the most recent action and pushes its inverse onto the
// redo stack. The selection is cleared afterward — the reverted entities
// may no longer exist.
func (e *Engine) Undo() {
	n := len(e.history.undo)
	if n == 0 {
		return
	}
	a := e.history.undo[n-1]
	e.history.undo = e.history.undo[:n-1]
	if inv := a.revert(e); inv != nil {
		e.history.redo = append(e.history.redo, inv)
	}
	e.sel.Clear()
}

// Redo re-applies the most recently undone action.
func (e *Engine) Redo() {
	n := len(e.history.redo)
	if n == 0 {
		return
	}
	a := e.history.redo[n-1]
	e.history.redo = e.history.redo[:n-1]
	if inv := a.revert(e); inv != nil {
		e.history.undo = append(e.history.undo, inv)
	}
	e.sel.Clear()
}

// ─────────────────────────────────────────────────────────────
// Action kinds
// ─────────────────────────────────────────────────────────────

// createStrokeAction reverses a finished draw gesture.
type createStrokeAction struct {
	strokeID string
}

func (*createStrokeAction) label() string { return "draw" }

func (a *createStrokeAction) revert(e *Engine) action {
	st := e.findStroke(a.strokeID)
	if st == nil {
		return nil
	}
	snap := *st
	_ = e.store.DeleteStroke(a.strokeID)
	return &deleteAction{strokes: []domain.Stroke{snap}}
}

// createItemAction reverses an item creation (tap-to-place or paste of a
// single item).
type createItemAction struct {
	itemID string
}

func (*createItemAction) label() string { return "create" }

func (a *createItemAction) revert(e *Engine) action {
	it := e.findItem(a.itemID)
	if it == nil {
		return nil
	}
	snap := *it
	conns := e.connectionsTouching(map[string]bool{a.itemID: true})
	_ = e.store.DeleteItem(a.itemID)
	return &deleteAction{items: []domain.Item{snap}, conns: conns}
}

// createConnectionAction reverses a connection drag.
type createConnectionAction struct {
	connID string
}

func (*createConnectionAction) label() string { return "connect" }

func (a *createConnectionAction) revert(e *Engine) action {
	c := e.findConnection(a.connID)
	if c == nil {
		return nil
	}
	snap := *c
	_ = e.store.DeleteConnection(a.connID)
	return &deleteAction{conns: []domain.Connection{snap}}
}

// deleteAction snapshots every removed entity by value; reverting
// recreates them with their original fields. Connections are captured
// transitively when either endpoint was deleted.
type deleteAction struct {
	items   []domain.Item
	strokes []domain.Stroke
	conns   []domain.Connection
}

func (*deleteAction) label() string { return "delete" }

func (a *deleteAction) revert(e *Engine) action {
	inv := &batchCreateAction{}
	for i := range a.items {
		it := a.items[i]
		e.store.CreateItem(&it, nil)
		inv.itemIDs = append(inv.itemIDs, it.ID)
	}
	for i := range a.strokes {
		st := a.strokes[i]
		e.store.CreateStroke(&st, nil)
		inv.strokeIDs = append(inv.strokeIDs, st.ID)
	}
	for i := range a.conns {
		c := a.conns[i]
		if _, err := e.store.CreateConnection(&c); err == nil {
			inv.connIDs = append(inv.connIDs, c.ID)
		}
	}
	return inv
}

// moveAction holds the pre-gesture bounds and offsets of every entity a
// move touched.
type moveAction struct {
	items   map[string]geom.Rect
	strokes map[string]geom.Point
}

func (*moveAction) label() string { return "move" }

func (a *moveAction) revert(e *Engine) action {
	inv := &moveAction{items: map[string]geom.Rect{}, strokes: map[string]geom.Point{}}
	var positions []domain.ItemPosition
	for id, r := range a.items {
		it := e.findItem(id)
		if it == nil {
			continue // independently deleted; skip, keep going
		}
		inv.items[id] = e.ItemBounds(it)
		positions = append(positions, domain.ItemPosition{ID: id, X: r.X, Y: r.Y, Width: r.Width, Height: r.Height})
		e.shadowItem(id, r)
	}
	if len(positions) == 1 && len(a.strokes) == 0 {
		pos := positions[0]
		_ = e.store.UpdateItemPosition(pos.ID, pos.X, pos.Y, pos.Width, pos.Height)
	} else if len(positions) > 0 {
		_ = e.store.BatchUpdatePositions(positions)
	}
	for id, off := range a.strokes {
		st := e.findStroke(id)
		if st == nil {
			continue
		}
		inv.strokes[id] = e.StrokeOffset(st)
		_ = e.store.UpdateStrokeOffset(id, off.X, off.Y)
		e.shadowStroke(id, off)
	}
	if len(inv.items) == 0 && len(inv.strokes) == 0 {
		return nil
	}
	return inv
}

// resizeAction holds the pre-gesture bounds of the one resized item.
type resizeAction struct {
	itemID string
	prev   geom.Rect
}

func (*resizeAction) label() string { return "resize" }

func (a *resizeAction) revert(e *Engine) action {
	it := e.findItem(a.itemID)
	if it == nil {
		return nil
	}
	inv := &resizeAction{itemID: a.itemID, prev: e.ItemBounds(it)}
	_ = e.store.UpdateItemPosition(a.itemID, a.prev.X, a.prev.Y, a.prev.Width, a.prev.Height)
	e.shadowItem(a.itemID, a.prev)
	return inv
}

// updateItemAction holds a field name and its previous value; used for
// text-content edits.
type updateItemAction struct {
	itemID string
	field  string
	prev   string
}

func (*updateItemAction) label() string { return "edit" }

func (a *updateItemAction) revert(e *Engine) action {
	it := e.findItem(a.itemID)
	if it == nil {
		return nil
	}
	inv := &updateItemAction{itemID: a.itemID, field: a.field, prev: it.Content}
	_ = e.store.UpdateItemContent(a.itemID, a.prev)
	return inv
}

// groupAction holds the previous groupId per affected entity: a group
// operation may merge entities out of different prior groups, so a
// single shared previous value is not enough.
type groupAction struct {
	name        string // "group" or "ungroup"
	prevItems   map[string]*string
	prevStrokes map[string]*string
}

func (a *groupAction) label() string { return a.name }

func (a *groupAction) revert(e *Engine) action {
	inv := &groupAction{name: a.name, prevItems: map[string]*string{}, prevStrokes: map[string]*string{}}

	// Bucket restores by target group id — SetGroup applies one value
	// per call.
	type bucket struct {
		gid     *string
		items   []string
		strokes []string
	}
	buckets := map[string]*bucket{}
	key := func(g *string) string {
		if g == nil {
			return ""
		}
		return *g
	}
	for id, gid := range a.prevItems {
		it := e.findItem(id)
		if it == nil {
			continue
		}
		inv.prevItems[id] = copyGroupID(it.GroupID)
		b := buckets[key(gid)]
		if b == nil {
			b = &bucket{gid: gid}
			buckets[key(gid)] = b
		}
		b.items = append(b.items, id)
	}
	for id, gid := range a.prevStrokes {
		st := e.findStroke(id)
		if st == nil {
			continue
		}
		inv.prevStrokes[id] = copyGroupID(st.GroupID)
		b := buckets[key(gid)]
		if b == nil {
			b = &bucket{gid: gid}
			buckets[key(gid)] = b
		}
		b.strokes = append(b.strokes, id)
	}
	for _, b := range buckets {
		_ = e.store.SetGroup(b.items, b.strokes, b.gid)
	}
	if len(inv.prevItems) == 0 && len(inv.prevStrokes) == 0 {
		return nil
	}
	return inv
}

// batchCreateAction holds the ids of a multi-entity paste (or of a
// reverted delete); reverting removes them all again.
type batchCreateAction struct {
	itemIDs   []string
	strokeIDs []string
	connIDs   []string
}

func (*batchCreateAction) label() string { return "paste" }

func (a *batchCreateAction) revert(e *Engine) action {
	inv := &deleteAction{}
	deleted := map[string]bool{}
	for _, id := range a.itemIDs {
		if it := e.findItem(id); it != nil {
			inv.items = append(inv.items, *it)
			deleted[id] = true
		}
	}
	for _, id := range a.strokeIDs {
		if st := e.findStroke(id); st != nil {
			inv.strokes = append(inv.strokes, *st)
		}
	}
	// Connections cascade with their endpoints; capture them for the
	// opposing recreate.
	inv.conns = e.connectionsTouching(deleted)
	seen := map[string]bool{}
	for _, c := range inv.conns {
		seen[c.ID] = true
	}
	for _, id := range a.connIDs {
		if c := e.findConnection(id); c != nil {
			if !seen[c.ID] {
				inv.conns = append(inv.conns, *c)
			}
			_ = e.store.DeleteConnection(id)
		}
	}
	if len(a.itemIDs) > 0 || len(a.strokeIDs) > 0 {
		_ = e.store.BatchDelete(a.itemIDs, a.strokeIDs)
	}
	if len(inv.items) == 0 && len(inv.strokes) == 0 && len(inv.conns) == 0 {
		return nil
	}
	return inv
}

// shadowItem writes a stamped override so a reverted geometry shows
// immediately, without waiting for the authoritative refresh.
func (e *Engine) shadowItem(id string, r geom.Rect) {
	e.overrides.setItem(id, r)
	e.overrides.stamp(e.stateGen + 1)
}

func (e *Engine) shadowStroke(id string, off geom.Point) {
	e.overrides.setStroke(id, off)
	e.overrides.stamp(e.stateGen + 1)
}
