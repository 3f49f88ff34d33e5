package canvas

import (
	"github.com/google/uuid"

	"slate/internal/domain"
	"slate/internal/geom"
)

// ─────────────────────────────────────────────────────────────
// Manipulation state machine
// ─────────────────────────────────────────────────────────────

// Mode is the externally visible manipulation mode.
type Mode string

const (
	ModeIdle    Mode = "idle"
	ModeDrawing Mode = "drawing"
	ModeMoving  Mode = "moving"
	ModeResize  Mode = "resizing"
	ModeConnect Mode = "connecting"
	ModeMarquee Mode = "marquee"
)

// minItemSize is the smallest width/height a resize may produce, in
// canvas units.
const minItemSize = 30.0

// degeneratePathLen is the path-string length below which a draw gesture
// is discarded as accidental.
const degeneratePathLen = 5

// gestureState is the current mode plus exactly the in-progress fields
// that mode needs. One variant per mode keeps fields from leaking across
// modes.
type gestureState interface {
	mode() Mode
}

type idleState struct{}

func (idleState) mode() Mode { return ModeIdle }

type drawingState struct {
	path geom.PathBuilder
}

func (*drawingState) mode() Mode { return ModeDrawing }

type movingState struct {
	start geom.Point // canvas-space gesture origin
	// Pre-gesture geometry for every selected entity; per-frame deltas
	// apply against these, and the undo record keeps them.
	startItems   map[string]geom.Rect
	startStrokes map[string]geom.Point
}

func (*movingState) mode() Mode { return ModeMoving }

type resizingState struct {
	itemID string
	handle Handle
	start  geom.Rect  // pre-gesture bounds
	origin geom.Point // canvas-space gesture origin
}

func (*resizingState) mode() Mode { return ModeResize }

type connectingState struct {
	fromItemID string
	fromSide   domain.Side
	anchor     geom.Point // screen-space source side midpoint
	cursor     geom.Point // screen-space pointer
}

func (*connectingState) mode() Mode { return ModeConnect }

type marqueeState struct {
	origin geom.Point // screen space
	cursor geom.Point
}

func (*marqueeState) mode() Mode { return ModeMarquee }

// ─────────────────────────────────────────────────────────────
// Gesture entry
// ─────────────────────────────────────────────────────────────

// PointerDown starts a single-finger gesture. The host must pass the
// initial touch point as captured before any minimum-drag-distance gate,
// so handle hits tolerate recognizer latency. Mode entry is decided once,
// here, by fixed precedence.
func (e *Engine) PointerDown(screen geom.Point) {
	if e.gesture.mode() != ModeIdle {
		return
	}
	p := e.cam.ToCanvas(screen)

	// 1. Marquee mode toggled on.
	if e.marqueeArmed {
		e.gesture = &marqueeState{origin: screen, cursor: screen}
		return
	}

	// 2. Exactly one selected item and the touch lands on a handle.
	if ids := e.sel.ItemIDs(); len(ids) == 1 && len(e.sel.StrokeIDs()) == 0 {
		if it := e.findItem(ids[0]); it != nil {
			bounds := e.ItemBounds(it)
			switch h := hitHandle(screen, bounds, it.Type, e.cam); {
			case h.IsSide():
				side := h.Side()
				e.gesture = &connectingState{
					fromItemID: it.ID,
					fromSide:   side,
					anchor:     e.cam.ToScreen(sideMidpoint(bounds, side)),
					cursor:     screen,
				}
				return
			case h.IsCorner():
				e.gesture = &resizingState{itemID: it.ID, handle: h, start: bounds, origin: p}
				return
			}
		}
	}

	hit := hitItem(p, e.items, e.ItemBounds)

	// 3. Non-empty selection and the touch hits a selected item.
	if !e.sel.Empty() && hit != nil && e.sel.HasItem(hit.ID) {
		ms := &movingState{
			start:        p,
			startItems:   map[string]geom.Rect{},
			startStrokes: map[string]geom.Point{},
		}
		for _, id := range e.sel.ItemIDs() {
			if it := e.findItem(id); it != nil {
				ms.startItems[id] = e.ItemBounds(it)
			}
		}
		for _, id := range e.sel.StrokeIDs() {
			if st := e.findStroke(id); st != nil {
				ms.startStrokes[id] = e.StrokeOffset(st)
			}
		}
		e.gesture = ms
		return
	}

	// 4. Touch on any other item swallows the gesture: drawing must
	// never start on top of an item.
	if hit != nil {
		return
	}

	// 5. Empty canvas: draw.
	ds := &drawingState{}
	ds.path.Append(p)
	e.gesture = ds
}

// PointerMove advances the active gesture by one frame. Live geometry
// goes to the override layer only — never to persistence.
func (e *Engine) PointerMove(screen geom.Point) {
	p := e.cam.ToCanvas(screen)
	switch g := e.gesture.(type) {
	case *movingState:
		delta := p.Sub(g.start)
		for id, r := range g.startItems {
			e.overrides.setItem(id, geom.Rect{X: r.X + delta.X, Y: r.Y + delta.Y, Width: r.Width, Height: r.Height})
		}
		for id, off := range g.startStrokes {
			e.overrides.setStroke(id, off.Add(delta))
		}
	case *resizingState:
		delta := p.Sub(g.origin)
		e.overrides.setItem(g.itemID, resizeRect(g.start, g.handle, delta))
	case *connectingState:
		g.cursor = screen
	case *marqueeState:
		g.cursor = screen
	case *drawingState:
		g.path.Append(p)
	}
}

// PointerUp finishes the active gesture: persistence calls go out, the
// undo record is pushed, and the engine returns to Idle.
func (e *Engine) PointerUp(screen geom.Point) {
	p := e.cam.ToCanvas(screen)
	switch g := e.gesture.(type) {
	case *movingState:
		e.finishMove(g, p)
	case *resizingState:
		e.finishResize(g, p)
	case *connectingState:
		e.finishConnect(g, p)
	case *marqueeState:
		g.cursor = screen // the release point is the final corner
		e.marqueeSelect(geom.RectFromPoints(e.cam.ToCanvas(g.origin), e.cam.ToCanvas(g.cursor)))
		e.marqueeArmed = false
	case *drawingState:
		e.finishDraw(g)
	}
	e.gesture = idleState{}
}

// CancelGesture abandons the active gesture without persisting anything.
func (e *Engine) CancelGesture() {
	switch g := e.gesture.(type) {
	case *movingState:
		for id := range g.startItems {
			delete(e.overrides.items, id)
		}
		for id := range g.startStrokes {
			delete(e.overrides.strokes, id)
		}
	case *resizingState:
		delete(e.overrides.items, g.itemID)
	}
	e.gesture = idleState{}
}

// ─────────────────────────────────────────────────────────────
// Gesture completion
// ─────────────────────────────────────────────────────────────

func (e *Engine) finishMove(g *movingState, p geom.Point) {
	delta := p.Sub(g.start)
	moved := delta.X != 0 || delta.Y != 0
	e.overrides.stamp(e.stateGen + 1)
	if !moved {
		return
	}

	var positions []domain.ItemPosition
	for id, r := range g.startItems {
		positions = append(positions, domain.ItemPosition{
			ID: id, X: r.X + delta.X, Y: r.Y + delta.Y, Width: r.Width, Height: r.Height,
		})
	}
	// Single-item moves use the simpler single-entity call.
	if len(positions) == 1 && len(g.startStrokes) == 0 {
		pos := positions[0]
		_ = e.store.UpdateItemPosition(pos.ID, pos.X, pos.Y, pos.Width, pos.Height)
	} else if len(positions) > 0 {
		_ = e.store.BatchUpdatePositions(positions)
	}
	for id, off := range g.startStrokes {
		_ = e.store.UpdateStrokeOffset(id, off.X+delta.X, off.Y+delta.Y)
	}

	e.record(&moveAction{items: g.startItems, strokes: g.startStrokes})
}

func (e *Engine) finishResize(g *resizingState, p geom.Point) {
	delta := p.Sub(g.origin)
	e.overrides.stamp(e.stateGen + 1)
	if delta.X == 0 && delta.Y == 0 {
		return
	}
	r := resizeRect(g.start, g.handle, delta)
	_ = e.store.UpdateItemPosition(g.itemID, r.X, r.Y, r.Width, r.Height)
	e.record(&resizeAction{itemID: g.itemID, prev: g.start})
}

func (e *Engine) finishConnect(g *connectingState, p geom.Point) {
	target := hitItem(p, e.items, e.ItemBounds)
	// Releasing over empty space or back over the source is a no-op.
	if target == nil || target.ID == g.fromItemID {
		return
	}
	c := &domain.Connection{
		ID:          uuid.New().String(),
		BoardID:     e.boardID,
		FromItemID:  g.fromItemID,
		ToItemID:    target.ID,
		FromSide:    g.fromSide,
		ToSide:      closestSide(e.ItemBounds(target), p),
		Color:       "#666666",
		StrokeWidth: 2,
	}
	created, err := e.store.CreateConnection(c)
	if err != nil {
		// Fail closed: nothing visibly changes.
		return
	}
	e.record(&createConnectionAction{connID: created.ID})
}

func (e *Engine) finishDraw(g *drawingState) {
	data := g.path.String()
	if len(data) < degeneratePathLen {
		return
	}
	st := domain.Stroke{
		ID:       "pending-" + uuid.New().String(),
		BoardID:  e.boardID,
		PathData: data,
		Color:    e.brush.Color,
		Width:    e.brush.Width,
		Opacity:  e.brush.Opacity,
	}
	// Render immediately under the temporary id so the stroke never
	// disappears for a frame while persistence is in flight.
	e.pending = append(e.pending, st)

	tempID := st.ID
	create := st
	create.ID = uuid.New().String()
	e.store.CreateStroke(&create, func(created *domain.Stroke, err error) {
		e.dropPending(tempID)
		if err != nil || created == nil {
			return
		}
		e.record(&createStrokeAction{strokeID: created.ID})
	})
}

func (e *Engine) dropPending(tempID string) {
	for i, st := range e.pending {
		if st.ID == tempID {
			e.pending = append(e.pending[:i], e.pending[i+1:]...)
			return
		}
	}
}

// resizeRect applies a drag delta to the rect edge(s) owned by the
// corner handle, enforcing the minimum size against the fixed anchor.
func resizeRect(r geom.Rect, h Handle, delta geom.Point) geom.Rect {
	left, top := r.X, r.Y
	right, bottom := r.X+r.Width, r.Y+r.Height
	switch h {
	case HandleTopLeft:
		left += delta.X
		top += delta.Y
	case HandleTopRight:
		right += delta.X
		top += delta.Y
	case HandleBottomLeft:
		left += delta.X
		bottom += delta.Y
	case HandleBottomRight:
		right += delta.X
		bottom += delta.Y
	}
	if right-left < minItemSize {
		if h == HandleTopLeft || h == HandleBottomLeft {
			left = right - minItemSize
		} else {
			right = left + minItemSize
		}
	}
	if bottom-top < minItemSize {
		if h == HandleTopLeft || h == HandleTopRight {
			top = bottom - minItemSize
		} else {
			bottom = top + minItemSize
		}
	}
	return geom.Rect{X: left, Y: top, Width: right - left, Height: bottom - top}
}

// ─────────────────────────────────────────────────────────────
// Taps and long-presses
// ─────────────────────────────────────────────────────────────

// Tap handles a recognized tap, raced below the drag gestures by the
// host's recognizer composition. With a live selection a tap is additive;
// otherwise it opens items for editing or places a new text item.
func (e *Engine) Tap(screen geom.Point) {
	p := e.cam.ToCanvas(screen)
	hitIt := hitItem(p, e.items, e.ItemBounds)
	hitSt := hitStroke(p, e.strokes, e.StrokeOffset)

	if !e.sel.Empty() {
		switch {
		case hitIt != nil:
			e.toggleItem(hitIt)
		case hitSt != nil:
			e.toggleStroke(hitSt)
		default:
			e.sel.Clear()
		}
		return
	}

	switch {
	case hitIt != nil && hitIt.Type == domain.ItemTypeText:
		e.editingItemID = hitIt.ID
	case hitIt != nil:
		e.selectItem(hitIt)
	case hitSt != nil:
		e.selectStroke(hitSt)
	case e.quickMenuOpen:
		e.quickMenuOpen = false
	default:
		e.placeTextItem(p)
	}
}

// placeTextItem creates a pending empty text item at the tap point and
// opens the quick-action menu. The item's size stays zero until the host
// measures the rendered text.
func (e *Engine) placeTextItem(p geom.Point) {
	it := &domain.Item{
		ID:       uuid.New().String(),
		BoardID:  e.boardID,
		Type:     domain.ItemTypeText,
		X:        p.X,
		Y:        p.Y,
		FontSize: 16,
	}
	e.quickMenuOpen = true
	e.editingItemID = it.ID
	e.store.CreateItem(it, func(created *domain.Item, err error) {
		if err != nil || created == nil {
			return
		}
		e.record(&createItemAction{itemID: created.ID})
	})
}

// LongPress selects the pressed entity (or its whole group); on empty
// space it clears the selection.
func (e *Engine) LongPress(screen geom.Point) {
	p := e.cam.ToCanvas(screen)
	e.sel.Clear()
	if it := hitItem(p, e.items, e.ItemBounds); it != nil {
		e.selectItem(it)
		return
	}
	if st := hitStroke(p, e.strokes, e.StrokeOffset); st != nil {
		e.selectStroke(st)
	}
}

// ─────────────────────────────────────────────────────────────
// Viewport gestures
// ─────────────────────────────────────────────────────────────

// Pan applies a two-finger pan delta in screen space. Pan and pinch run
// concurrently with each other but exclusively against the single-finger
// gestures; the host's recognizer composition enforces that.
func (e *Engine) Pan(dx, dy float64) {
	e.cam.PanBy(dx, dy)
}

// Pinch rescales the viewport anchored at the screen-space focal point.
func (e *Engine) Pinch(scale float64, focal geom.Point) {
	e.cam.ZoomAt(scale, focal)
}

// EndViewportGesture persists the viewport. The store debounces.
func (e *Engine) EndViewportGesture() {
	e.store.SaveViewport(e.cam.TranslateX, e.cam.TranslateY, e.cam.Scale)
}

// ─────────────────────────────────────────────────────────────
// Live previews for the host renderer
// ─────────────────────────────────────────────────────────────

// DrawPath returns the in-progress draw path string, if drawing.
func (e *Engine) DrawPath() (string, bool) {
	if g, ok := e.gesture.(*drawingState); ok {
		return g.path.String(), true
	}
	return "", false
}

// MarqueeRect returns the screen-space marquee rectangle, if selecting.
func (e *Engine) MarqueeRect() (geom.Rect, bool) {
	if g, ok := e.gesture.(*marqueeState); ok {
		return geom.RectFromPoints(g.origin, g.cursor), true
	}
	return geom.Rect{}, false
}

// ConnectionPreview returns the screen-space preview line of an active
// connection drag.
func (e *Engine) ConnectionPreview() (from, to geom.Point, ok bool) {
	if g, ok := e.gesture.(*connectingState); ok {
		return g.anchor, g.cursor, true
	}
	return geom.Point{}, geom.Point{}, false
}
