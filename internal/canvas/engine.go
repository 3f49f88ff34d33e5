package canvas

import (
	"sort"

	"github.com/google/uuid"

	"slate/internal/domain"
	"slate/internal/geom"
)

// ─────────────────────────────────────────────────────────────
// Interaction engine — turns pointer gestures into board edits
// ─────────────────────────────────────────────────────────────

// Store is the persistence collaborator. Every call is fire-and-forget
// from the engine's perspective: the engine never blocks on persistence
// and re-derives its entity lists from the collaborator's authoritative
// read (ApplyState) rather than trusting local mutation alone.
//
// Creates take a completion callback because the created record may only
// be confirmed later; the callback must be invoked on the engine's
// (single) thread.
type Store interface {
	CreateItem(it *domain.Item, done func(*domain.Item, error))
	UpdateItemPosition(id string, x, y, width, height float64) error
	UpdateItemContent(id, content string) error
	DeleteItem(id string) error
	BatchUpdatePositions(positions []domain.ItemPosition) error
	BatchDelete(itemIDs, strokeIDs []string) error

	CreateStroke(st *domain.Stroke, done func(*domain.Stroke, error))
	UpdateStrokeOffset(id string, xOffset, yOffset float64) error
	DeleteStroke(id string) error

	CreateConnection(c *domain.Connection) (*domain.Connection, error)
	DeleteConnection(id string) error

	SetGroup(itemIDs, strokeIDs []string, groupID *string) error
	SaveViewport(x, y, zoom float64)
}

// Brush holds the stroke style applied to new draw gestures.
type Brush struct {
	Color   string  `json:"color"`
	Width   float64 `json:"width"`
	Opacity float64 `json:"opacity"`
}

// Engine is the manipulation controller for one open board. It is
// single-threaded and cooperative: every method must be called from the
// same goroutine, driven by discrete pointer-event callbacks.
type Engine struct {
	boardID string
	store   Store
	cam     *geom.Camera

	// Authoritative entity lists, replaced wholesale by ApplyState.
	// List order is z-order: later entries render on top.
	items   []domain.Item
	strokes []domain.Stroke
	conns   []domain.Connection

	// Measured render sizes for text items whose persisted size is still
	// zero. Hit testing must work before the size round-trips storage.
	measured map[string]geom.Size

	sel       *Selection
	overrides *overrideMap
	history   *history
	clip      *clipboard
	gesture   gestureState

	// pending holds just-drawn strokes rendered under a temporary id so
	// there is no frame where a stroke disappears before its record
	// returns from persistence.
	pending []domain.Stroke

	brush         Brush
	marqueeArmed  bool
	editingItemID string
	quickMenuOpen bool

	// stateGen counts authoritative refreshes; override entries are
	// stamped against it at gesture end.
	stateGen int
}

// New creates an engine for one board. cam carries the board's restored
// viewport.
func New(boardID string, store Store, cam *geom.Camera) *Engine {
	return &Engine{
		boardID:   boardID,
		store:     store,
		cam:       cam,
		measured:  map[string]geom.Size{},
		sel:       newSelection(),
		overrides: newOverrideMap(),
		history:   newHistory(historyLimit),
		clip:      &clipboard{},
		gesture:   idleState{},
		brush:     Brush{Color: "#e8e8e8", Width: 3, Opacity: 1},
	}
}

// ApplyState replaces the entity lists with the collaborator's
// authoritative read. Stamped overrides that this refresh confirms are
// swept, but never while a manipulation is in flight.
func (e *Engine) ApplyState(items []domain.Item, strokes []domain.Stroke, conns []domain.Connection) {
	e.items = items
	e.strokes = strokes
	e.conns = conns
	e.stateGen++
	if e.gesture.mode() == ModeIdle {
		e.overrides.sweep(e.stateGen)
	}
	e.pruneSelection()
	for id := range e.measured {
		if e.findItem(id) == nil {
			delete(e.measured, id)
		}
	}
}

// Camera returns the viewport transform. The host mutates it only
// through the engine's pan/pinch entry points.
func (e *Engine) Camera() *geom.Camera { return e.cam }

func (e *Engine) SetBrush(b Brush) { e.brush = b }

func (e *Engine) Selection() *Selection { return e.sel }

// Mode returns the current manipulation mode for cursor and handle
// rendering.
func (e *Engine) Mode() Mode { return e.gesture.mode() }

func (e *Engine) CanUndo() bool { return e.history.canUndo() }
func (e *Engine) CanRedo() bool { return e.history.canRedo() }

func (e *Engine) EditingItemID() string { return e.editingItemID }
func (e *Engine) QuickMenuOpen() bool   { return e.quickMenuOpen }
func (e *Engine) MarqueeArmed() bool    { return e.marqueeArmed }

// CloseQuickMenu dismisses the quick-action menu opened by a tap on
// empty space.
func (e *Engine) CloseQuickMenu() { e.quickMenuOpen = false }

// StopEditing ends an in-progress text edit.
func (e *Engine) StopEditing() { e.editingItemID = "" }

// ToggleMarquee arms or disarms marquee selection mode. Arming takes
// effect at the next gesture start.
func (e *Engine) ToggleMarquee() { e.marqueeArmed = !e.marqueeArmed }

// PendingStrokes returns optimistically rendered strokes that have not
// been confirmed by persistence yet.
func (e *Engine) PendingStrokes() []domain.Stroke {
	out := make([]domain.Stroke, len(e.pending))
	copy(out, e.pending)
	return out
}

// ─────────────────────────────────────────────────────────────
// Effective geometry — override- and measurement-aware
// ─────────────────────────────────────────────────────────────

// ItemBounds returns the bounds to render and hit-test an item at: the
// optimistic override when present, else a locally measured size for
// text items whose persisted size has not round-tripped yet, else the
// persisted bounds.
func (e *Engine) ItemBounds(it *domain.Item) geom.Rect {
	if r, ok := e.overrides.itemBounds(it.ID); ok {
		return r
	}
	if it.Type == domain.ItemTypeText && it.Width == 0 && it.Height == 0 {
		if sz, ok := e.measured[it.ID]; ok {
			return geom.Rect{X: it.X, Y: it.Y, Width: sz.Width, Height: sz.Height}
		}
	}
	return geom.Rect{X: it.X, Y: it.Y, Width: it.Width, Height: it.Height}
}

// StrokeOffset returns the effective translation of a stroke.
func (e *Engine) StrokeOffset(st *domain.Stroke) geom.Point {
	if off, ok := e.overrides.strokeOffset(st.ID); ok {
		return off
	}
	return geom.Point{X: st.XOffset, Y: st.YOffset}
}

// OverriddenItemBounds returns the items whose rendered bounds currently
// shadow the persisted record, for the host's render snapshot.
func (e *Engine) OverriddenItemBounds() map[string]geom.Rect {
	out := make(map[string]geom.Rect, len(e.overrides.items))
	for id, ov := range e.overrides.items {
		out[id] = ov.bounds
	}
	return out
}

// OverriddenStrokeOffsets returns strokes whose rendered offset currently
// shadows the persisted record.
func (e *Engine) OverriddenStrokeOffsets() map[string]geom.Point {
	out := make(map[string]geom.Point, len(e.overrides.strokes))
	for id, ov := range e.overrides.strokes {
		out[id] = ov.offset
	}
	return out
}

// SetMeasuredSize records the rendered size of a text item. If the
// persisted size is still zero the measurement is pushed to persistence
// so it survives reload.
func (e *Engine) SetMeasuredSize(itemID string, width, height float64) {
	e.measured[itemID] = geom.Size{Width: width, Height: height}
	it := e.findItem(itemID)
	if it != nil && it.Width == 0 && it.Height == 0 {
		_ = e.store.UpdateItemPosition(itemID, it.X, it.Y, width, height)
	}
}

func (e *Engine) findItem(id string) *domain.Item {
	for i := range e.items {
		if e.items[i].ID == id {
			return &e.items[i]
		}
	}
	return nil
}

func (e *Engine) findStroke(id string) *domain.Stroke {
	for i := range e.strokes {
		if e.strokes[i].ID == id {
			return &e.strokes[i]
		}
	}
	return nil
}

func (e *Engine) findConnection(id string) *domain.Connection {
	for i := range e.conns {
		if e.conns[i].ID == id {
			return &e.conns[i]
		}
	}
	return nil
}

// connectionsTouching returns connections with either endpoint in ids.
func (e *Engine) connectionsTouching(ids map[string]bool) []domain.Connection {
	var out []domain.Connection
	for _, c := range e.conns {
		if ids[c.FromItemID] || ids[c.ToItemID] {
			out = append(out, c)
		}
	}
	return out
}

// ─────────────────────────────────────────────────────────────
// Imperative triggers
// ─────────────────────────────────────────────────────────────

// DeleteSelected removes every selected entity. Connections touching a
// deleted item are captured transitively for undo; their records are
// removed by the storage cascade.
func (e *Engine) DeleteSelected() {
	if e.sel.Empty() {
		return
	}
	itemIDs := e.sel.ItemIDs()
	strokeIDs := e.sel.StrokeIDs()

	var items []domain.Item
	for _, id := range itemIDs {
		if it := e.findItem(id); it != nil {
			items = append(items, *it)
		}
	}
	var strokes []domain.Stroke
	for _, id := range strokeIDs {
		if st := e.findStroke(id); st != nil {
			strokes = append(strokes, *st)
		}
	}
	conns := e.connectionsTouching(e.sel.items)
	seen := map[string]bool{}
	for _, c := range conns {
		seen[c.ID] = true
	}
	for _, id := range e.sel.ConnectionIDs() {
		if c := e.findConnection(id); c != nil && !seen[c.ID] {
			conns = append(conns, *c)
			// Not cascaded by the item delete; remove explicitly.
			_ = e.store.DeleteConnection(c.ID)
		}
	}

	if len(itemIDs) > 0 || len(strokeIDs) > 0 {
		_ = e.store.BatchDelete(itemIDs, strokeIDs)
	}
	e.record(&deleteAction{items: items, strokes: strokes, conns: conns})
	e.sel.Clear()
}

// GroupSelected assigns every selected item and stroke a fresh shared
// group id. Previous memberships are captured per entity since the
// selection may mix entities from different prior groups.
func (e *Engine) GroupSelected() {
	itemIDs := e.sel.ItemIDs()
	strokeIDs := e.sel.StrokeIDs()
	if len(itemIDs)+len(strokeIDs) < 2 {
		return
	}
	prev := e.captureGroups(itemIDs, strokeIDs)
	gid := uuid.New().String()
	if err := e.store.SetGroup(itemIDs, strokeIDs, &gid); err != nil {
		return
	}
	e.record(&groupAction{name: "group", prevItems: prev.items, prevStrokes: prev.strokes})
}

// UngroupSelected clears group membership on every selected entity.
func (e *Engine) UngroupSelected() {
	itemIDs := e.sel.ItemIDs()
	strokeIDs := e.sel.StrokeIDs()
	if len(itemIDs)+len(strokeIDs) == 0 {
		return
	}
	prev := e.captureGroups(itemIDs, strokeIDs)
	if err := e.store.SetGroup(itemIDs, strokeIDs, nil); err != nil {
		return
	}
	e.record(&groupAction{name: "ungroup", prevItems: prev.items, prevStrokes: prev.strokes})
}

type groupSnapshot struct {
	items   map[string]*string
	strokes map[string]*string
}

func (e *Engine) captureGroups(itemIDs, strokeIDs []string) groupSnapshot {
	snap := groupSnapshot{items: map[string]*string{}, strokes: map[string]*string{}}
	for _, id := range itemIDs {
		if it := e.findItem(id); it != nil {
			snap.items[id] = copyGroupID(it.GroupID)
		}
	}
	for _, id := range strokeIDs {
		if st := e.findStroke(id); st != nil {
			snap.strokes[id] = copyGroupID(st.GroupID)
		}
	}
	return snap
}

// SetItemContent edits a text item's content, recording the previous
// value for undo.
func (e *Engine) SetItemContent(itemID, content string) {
	it := e.findItem(itemID)
	if it == nil {
		return
	}
	prev := it.Content
	if err := e.store.UpdateItemContent(itemID, content); err != nil {
		return
	}
	e.record(&updateItemAction{itemID: itemID, field: "content", prev: prev})
}

func copyGroupID(g *string) *string {
	if g == nil {
		return nil
	}
	v := *g
	return &v
}

func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
