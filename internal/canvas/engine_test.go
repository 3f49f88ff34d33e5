package canvas

import (
	"testing"

	"slate/internal/domain"
	"slate/internal/geom"
)

// ─────────────────────────────────────────────────────────────
// Gesture scenarios
// ─────────────────────────────────────────────────────────────

func TestDrawThenUndo(t *testing.T) {
	e, f := newTestEngine()

	e.PointerDown(geom.Point{X: 10, Y: 10})
	if e.Mode() != ModeDrawing {
		t.Fatalf("expected drawing mode, got %v", e.Mode())
	}
	e.PointerMove(geom.Point{X: 50, Y: 50})
	if path, ok := e.DrawPath(); !ok || path != "M10,10 L50,50" {
		t.Fatalf("unexpected live path: %q", path)
	}
	e.PointerUp(geom.Point{X: 50, Y: 50})

	if len(f.strokes) != 1 {
		t.Fatalf("expected 1 stroke after draw, got %d", len(f.strokes))
	}
	if f.strokes[0].PathData != "M10,10 L50,50" {
		t.Errorf("unexpected path data: %q", f.strokes[0].PathData)
	}
	f.sync(e)

	if !e.CanUndo() {
		t.Fatal("expected undo available after draw")
	}
	e.Undo()
	if len(f.strokes) != 0 {
		t.Fatalf("expected 0 strokes after undo, got %d", len(f.strokes))
	}
}

func TestDraw_DegeneratePathDiscarded(t *testing.T) {
	e, f := newTestEngine()
	e.PointerDown(geom.Point{X: 1, Y: 1})
	e.PointerUp(geom.Point{X: 1, Y: 1}) // path "M1,1" — 4 chars

	if len(f.strokes) != 0 {
		t.Fatalf("expected degenerate path discarded, got %d strokes", len(f.strokes))
	}
	if e.CanUndo() {
		t.Error("discarded draw must not record an undo entry")
	}
}

func TestDraw_PendingStrokeVisibleUntilConfirm(t *testing.T) {
	e, f := newTestEngine()
	f.deferCreates = true

	e.PointerDown(geom.Point{X: 10, Y: 10})
	e.PointerMove(geom.Point{X: 50, Y: 50})
	e.PointerUp(geom.Point{X: 50, Y: 50})

	if len(e.PendingStrokes()) != 1 {
		t.Fatal("just-drawn stroke must render under a temporary id before confirmation")
	}
	if e.CanUndo() {
		t.Error("undo record must wait for persistence confirmation")
	}

	f.flush()
	if len(e.PendingStrokes()) != 0 {
		t.Error("pending stroke must drop once confirmed")
	}
	if !e.CanUndo() {
		t.Error("undo record must exist after confirmation")
	}
}

func TestDraw_SwallowedOnTopOfItem(t *testing.T) {
	e, f := newTestEngine()
	addItem(f, e, "a", 0, 0, 100, 100)

	e.PointerDown(geom.Point{X: 50, Y: 50})
	if e.Mode() != ModeIdle {
		t.Fatalf("gesture over an unselected item must be swallowed, mode %v", e.Mode())
	}
	e.PointerMove(geom.Point{X: 80, Y: 80})
	e.PointerUp(geom.Point{X: 80, Y: 80})
	if len(f.strokes) != 0 {
		t.Fatal("drawing must never occur on top of an item")
	}
}

func TestMultiMove(t *testing.T) {
	e, f := newTestEngine()
	addItem(f, e, "a", 0, 0, 20, 20)
	addItem(f, e, "b", 100, 100, 20, 20)
	e.sel.items["a"] = true
	e.sel.items["b"] = true

	e.PointerDown(geom.Point{X: 10, Y: 10}) // inside the first item
	if e.Mode() != ModeMoving {
		t.Fatalf("expected moving mode, got %v", e.Mode())
	}
	e.PointerMove(geom.Point{X: 15, Y: 15})
	e.PointerUp(geom.Point{X: 15, Y: 15})

	wantA := domain.Item{X: 5, Y: 5, Width: 20, Height: 20}
	wantB := domain.Item{X: 105, Y: 105, Width: 20, Height: 20}
	for _, it := range f.items {
		want := wantA
		if it.ID == "b" {
			want = wantB
		}
		if it.X != want.X || it.Y != want.Y || it.Width != want.Width || it.Height != want.Height {
			t.Errorf("item %s at (%v,%v,%v,%v), want (%v,%v,%v,%v)",
				it.ID, it.X, it.Y, it.Width, it.Height, want.X, want.Y, want.Width, want.Height)
		}
	}
	if f.batchPositionCalls != 1 {
		t.Errorf("multi-item move must use the batch call, got %d batch calls", f.batchPositionCalls)
	}
}

func TestMove_StartsFromSmallItemInterior(t *testing.T) {
	e, f := newTestEngine()
	addItem(f, e, "a", 0, 0, 20, 20)
	e.sel.items["a"] = true

	// Handle boxes shrink with the item; the interior of a 20x20 item
	// must start a move, not a connection drag.
	e.PointerDown(geom.Point{X: 10, Y: 10})
	if e.Mode() != ModeMoving {
		t.Fatalf("mode at gesture start: %v, want %v", e.Mode(), ModeMoving)
	}
	e.CancelGesture()
}

func TestMove_SingleItemUsesSingleCall(t *testing.T) {
	e, f := newTestEngine()
	addItem(f, e, "a", 0, 0, 20, 20)
	e.sel.items["a"] = true

	e.PointerDown(geom.Point{X: 10, Y: 10})
	e.PointerMove(geom.Point{X: 30, Y: 10})
	e.PointerUp(geom.Point{X: 30, Y: 10})

	if f.singlePositionCalls != 1 || f.batchPositionCalls != 0 {
		t.Errorf("single-item move must use the single-entity call (single=%d batch=%d)",
			f.singlePositionCalls, f.batchPositionCalls)
	}
}

func TestMoveUndoRoundTrip(t *testing.T) {
	e, f := newTestEngine()
	addItem(f, e, "a", 7, 9, 40, 30)
	e.sel.items["a"] = true

	// Grab the item center, clear of the border handles.
	e.PointerDown(geom.Point{X: 27, Y: 24})
	if e.Mode() != ModeMoving {
		t.Fatalf("mode at gesture start: %v, want %v", e.Mode(), ModeMoving)
	}
	e.PointerMove(geom.Point{X: 40.5, Y: 10})
	e.PointerUp(geom.Point{X: 40.5, Y: 10})
	f.sync(e)

	e.Undo()
	it := f.items[0]
	if it.X != 7 || it.Y != 9 || it.Width != 40 || it.Height != 30 {
		t.Fatalf("undo must restore exact original bounds, got (%v,%v,%v,%v)", it.X, it.Y, it.Width, it.Height)
	}
	if !e.Selection().Empty() {
		t.Error("undo must clear the selection")
	}

	// Redo replays the move, undo restores again.
	f.sync(e)
	e.Redo()
	if f.items[0].X != 20.5 || f.items[0].Y != -5 {
		t.Fatalf("redo must replay the move, got (%v,%v)", f.items[0].X, f.items[0].Y)
	}
}

func TestMove_StrokeOffsets(t *testing.T) {
	e, f := newTestEngine()
	addItem(f, e, "a", 0, 0, 20, 20)
	f.strokes = append(f.strokes, domain.Stroke{ID: "s", BoardID: "board-1", PathData: "M0,0 L10,0", Width: 3, XOffset: 5, YOffset: 5})
	f.sync(e)
	e.sel.items["a"] = true
	e.sel.strokes["s"] = true

	e.PointerDown(geom.Point{X: 10, Y: 10})
	e.PointerMove(geom.Point{X: 14, Y: 17})
	e.PointerUp(geom.Point{X: 14, Y: 17})

	st := f.strokes[0]
	if st.XOffset != 9 || st.YOffset != 12 {
		t.Fatalf("stroke offset not moved, got (%v,%v)", st.XOffset, st.YOffset)
	}
	if st.PathData != "M0,0 L10,0" {
		t.Error("moving a stroke must not touch its path data")
	}
}

func TestResize_EnforcesMinimumSize(t *testing.T) {
	e, f := newTestEngine()
	addItem(f, e, "a", 0, 0, 100, 100)
	e.sel.items["a"] = true

	// Grab the bottom-right corner and drag far past the opposite edge.
	e.PointerDown(geom.Point{X: 100, Y: 100})
	if e.Mode() != ModeResize {
		t.Fatalf("expected resizing mode, got %v", e.Mode())
	}
	e.PointerMove(geom.Point{X: -500, Y: -500})
	e.PointerUp(geom.Point{X: -500, Y: -500})

	it := f.items[0]
	if it.Width != minItemSize || it.Height != minItemSize {
		t.Fatalf("expected clamp to %v, got (%v,%v)", minItemSize, it.Width, it.Height)
	}
	if it.X != 0 || it.Y != 0 {
		t.Errorf("bottom-right resize must keep the top-left anchor, got (%v,%v)", it.X, it.Y)
	}
}

func TestResizeUndo(t *testing.T) {
	e, f := newTestEngine()
	addItem(f, e, "a", 0, 0, 100, 100)
	e.sel.items["a"] = true

	e.PointerDown(geom.Point{X: 100, Y: 100})
	e.PointerMove(geom.Point{X: 160, Y: 130})
	e.PointerUp(geom.Point{X: 160, Y: 130})
	if f.items[0].Width != 160 || f.items[0].Height != 130 {
		t.Fatalf("resize not applied: %+v", f.items[0])
	}
	f.sync(e)

	e.Undo()
	it := f.items[0]
	if it.X != 0 || it.Y != 0 || it.Width != 100 || it.Height != 100 {
		t.Fatalf("undo must restore pre-gesture bounds, got %+v", it)
	}
}

func TestConnectionCreation(t *testing.T) {
	e, f := newTestEngine()
	addItem(f, e, "A", 0, 0, 40, 40)
	addItem(f, e, "B", 200, 0, 40, 40)
	e.sel.items["A"] = true

	// Drag from A's right-side handle to a point inside B near its left
	// side.
	e.PointerDown(geom.Point{X: 40, Y: 20})
	if e.Mode() != ModeConnect {
		t.Fatalf("expected connecting mode, got %v", e.Mode())
	}
	e.PointerMove(geom.Point{X: 210, Y: 20})
	if _, _, ok := e.ConnectionPreview(); !ok {
		t.Fatal("expected a live connection preview")
	}
	e.PointerUp(geom.Point{X: 210, Y: 20})

	if len(f.conns) != 1 {
		t.Fatalf("expected 1 connection, got %d", len(f.conns))
	}
	c := f.conns[0]
	if c.FromItemID != "A" || c.ToItemID != "B" {
		t.Errorf("unexpected endpoints: %s -> %s", c.FromItemID, c.ToItemID)
	}
	if c.FromSide != domain.SideRight || c.ToSide != domain.SideLeft {
		t.Errorf("unexpected sides: %s -> %s", c.FromSide, c.ToSide)
	}
}

func TestConnection_ReleaseOverEmptySpaceIsNoop(t *testing.T) {
	e, f := newTestEngine()
	addItem(f, e, "A", 0, 0, 40, 40)
	e.sel.items["A"] = true

	e.PointerDown(geom.Point{X: 40, Y: 20})
	e.PointerUp(geom.Point{X: 500, Y: 500})
	if len(f.conns) != 0 {
		t.Fatal("release over empty space must not create a connection")
	}

	// Release back over the source item is also a no-op.
	e.PointerDown(geom.Point{X: 40, Y: 20})
	e.PointerUp(geom.Point{X: 20, Y: 20})
	if len(f.conns) != 0 {
		t.Fatal("release over the source item must not create a connection")
	}
}

func TestMarqueeSelection(t *testing.T) {
	e, f := newTestEngine()
	addItem(f, e, "inside", 10, 10, 20, 20)
	addItem(f, e, "partial", 90, 90, 40, 40)
	addItem(f, e, "outside", 500, 500, 20, 20)
	e.sel.items["outside"] = true // replaced, not merged

	e.ToggleMarquee()
	e.PointerDown(geom.Point{X: 0, Y: 0})
	if e.Mode() != ModeMarquee {
		t.Fatalf("expected marquee mode, got %v", e.Mode())
	}
	e.PointerMove(geom.Point{X: 100, Y: 100})
	if _, ok := e.MarqueeRect(); !ok {
		t.Fatal("expected live marquee rect")
	}
	e.PointerUp(geom.Point{X: 100, Y: 100})

	sel := e.Selection()
	if !sel.HasItem("inside") {
		t.Error("fully contained item must be selected")
	}
	if !sel.HasItem("partial") {
		t.Error("partially overlapping item must be selected (intersection semantics)")
	}
	if sel.HasItem("outside") {
		t.Error("item outside the marquee must not stay selected")
	}
	if e.MarqueeArmed() {
		t.Error("marquee mode must disarm after one use")
	}
}

func TestMarquee_GroupPullIn(t *testing.T) {
	e, f := newTestEngine()
	gid := "g1"
	f.items = append(f.items,
		domain.Item{ID: "in", BoardID: "board-1", Type: domain.ItemTypeShape, X: 10, Y: 10, Width: 20, Height: 20, GroupID: &gid},
		domain.Item{ID: "far", BoardID: "board-1", Type: domain.ItemTypeShape, X: 900, Y: 900, Width: 20, Height: 20, GroupID: &gid},
	)
	f.sync(e)

	e.ToggleMarquee()
	e.PointerDown(geom.Point{X: 0, Y: 0})
	e.PointerUp(geom.Point{X: 50, Y: 50})

	if !e.Selection().HasItem("far") {
		t.Error("marquee hit on one group member must pull in the whole group")
	}
}

// ─────────────────────────────────────────────────────────────
// Taps, selection, grouping
// ─────────────────────────────────────────────────────────────

func TestTap_EmptySpaceCreatesTextItem(t *testing.T) {
	e, f := newTestEngine()

	e.Tap(geom.Point{X: 100, Y: 60})
	if len(f.items) != 1 {
		t.Fatalf("expected a pending text item, got %d items", len(f.items))
	}
	it := f.items[0]
	if it.Type != domain.ItemTypeText || it.X != 100 || it.Y != 60 {
		t.Errorf("unexpected item: %+v", it)
	}
	if it.Width != 0 || it.Height != 0 {
		t.Error("pending text item must start with zero size")
	}
	if !e.QuickMenuOpen() {
		t.Error("tap on empty space must open the quick-action menu")
	}
	if e.EditingItemID() != it.ID {
		t.Error("new text item must open for editing")
	}
}

func TestTap_OnTextItemOpensEditing(t *testing.T) {
	e, f := newTestEngine()
	f.items = append(f.items, domain.Item{ID: "t", BoardID: "board-1", Type: domain.ItemTypeText, Content: "hello", Width: 80, Height: 20})
	f.sync(e)

	e.Tap(geom.Point{X: 10, Y: 10})
	if e.EditingItemID() != "t" {
		t.Errorf("expected text item opened for editing, got %q", e.EditingItemID())
	}
	if len(f.items) != 1 {
		t.Error("tap on an existing item must not create a new one")
	}
}

func TestTap_AdditiveWithSelection(t *testing.T) {
	e, f := newTestEngine()
	addItem(f, e, "a", 0, 0, 20, 20)
	addItem(f, e, "b", 100, 0, 20, 20)
	e.sel.items["a"] = true

	e.Tap(geom.Point{X: 110, Y: 10})
	if !e.Selection().HasItem("a") || !e.Selection().HasItem("b") {
		t.Fatal("tap with active selection must add, not replace")
	}

	e.Tap(geom.Point{X: 110, Y: 10})
	if e.Selection().HasItem("b") {
		t.Fatal("second tap must toggle the item back out")
	}
}

func TestTap_GroupToggles(t *testing.T) {
	e, f := newTestEngine()
	gid := "g1"
	f.items = append(f.items,
		domain.Item{ID: "m1", BoardID: "board-1", Type: domain.ItemTypeShape, X: 0, Y: 0, Width: 20, Height: 20, GroupID: &gid},
		domain.Item{ID: "m2", BoardID: "board-1", Type: domain.ItemTypeShape, X: 100, Y: 0, Width: 20, Height: 20, GroupID: &gid},
		domain.Item{ID: "solo", BoardID: "board-1", Type: domain.ItemTypeShape, X: 200, Y: 0, Width: 20, Height: 20},
	)
	f.sync(e)
	e.sel.items["solo"] = true

	e.Tap(geom.Point{X: 10, Y: 10})
	sel := e.Selection()
	if !sel.HasItem("m1") || !sel.HasItem("m2") {
		t.Fatal("tapping one group member must toggle the whole group in")
	}
	e.Tap(geom.Point{X: 110, Y: 10})
	if sel.HasItem("m1") || sel.HasItem("m2") {
		t.Fatal("tapping a selected group member must toggle the whole group out")
	}
}

func TestLongPress_GroupSymmetry(t *testing.T) {
	e, f := newTestEngine()
	gid := "g1"
	f.items = append(f.items,
		domain.Item{ID: "m1", BoardID: "board-1", Type: domain.ItemTypeShape, X: 0, Y: 0, Width: 20, Height: 20, GroupID: &gid},
		domain.Item{ID: "m2", BoardID: "board-1", Type: domain.ItemTypeShape, X: 500, Y: 0, Width: 20, Height: 20, GroupID: &gid},
	)
	f.strokes = append(f.strokes, domain.Stroke{ID: "s1", BoardID: "board-1", PathData: "M0,200 L50,200", Width: 3, GroupID: &gid})
	f.sync(e)

	e.LongPress(geom.Point{X: 10, Y: 10})
	sel := e.Selection()
	if !sel.HasItem("m1") || !sel.HasItem("m2") || !sel.HasStroke("s1") {
		t.Fatal("selecting one member must yield the full group's item and stroke sets")
	}
}

func TestLongPress_EmptyClearsSelection(t *testing.T) {
	e, f := newTestEngine()
	addItem(f, e, "a", 0, 0, 20, 20)
	e.sel.items["a"] = true

	e.LongPress(geom.Point{X: 400, Y: 400})
	if !e.Selection().Empty() {
		t.Fatal("long-press on empty space must clear the selection")
	}
}

func TestGroupUngroupUndo(t *testing.T) {
	e, f := newTestEngine()
	old := "old-group"
	f.items = append(f.items,
		domain.Item{ID: "a", BoardID: "board-1", Type: domain.ItemTypeShape, Width: 20, Height: 20, GroupID: &old},
		domain.Item{ID: "b", BoardID: "board-1", Type: domain.ItemTypeShape, X: 100, Width: 20, Height: 20},
	)
	f.sync(e)
	e.sel.items["a"] = true
	e.sel.items["b"] = true

	e.GroupSelected()
	if f.items[0].GroupID == nil || f.items[1].GroupID == nil || *f.items[0].GroupID != *f.items[1].GroupID {
		t.Fatal("group must assign one shared id")
	}
	f.sync(e)

	e.Undo()
	if f.items[0].GroupID == nil || *f.items[0].GroupID != "old-group" {
		t.Error("undo must restore the previous group per entity")
	}
	if f.items[1].GroupID != nil {
		t.Error("undo must restore nil membership for previously ungrouped entity")
	}
}

// ─────────────────────────────────────────────────────────────
// Delete, undo bound, missing entities
// ─────────────────────────────────────────────────────────────

func TestDeleteSelected_CascadesAndRestores(t *testing.T) {
	e, f := newTestEngine()
	addItem(f, e, "A", 0, 0, 40, 40)
	addItem(f, e, "B", 200, 0, 40, 40)
	f.conns = append(f.conns, domain.Connection{ID: "c1", BoardID: "board-1", FromItemID: "A", ToItemID: "B", FromSide: domain.SideRight, ToSide: domain.SideLeft})
	f.sync(e)
	e.sel.items["A"] = true

	e.DeleteSelected()
	if len(f.items) != 1 || len(f.conns) != 0 {
		t.Fatalf("expected cascade delete, items=%d conns=%d", len(f.items), len(f.conns))
	}
	if !e.Selection().Empty() {
		t.Error("delete must clear selection")
	}
	f.sync(e)

	e.Undo()
	if len(f.items) != 2 {
		t.Fatalf("undo must recreate the item, got %d", len(f.items))
	}
	if len(f.conns) != 1 {
		t.Fatalf("undo must recreate the cascaded connection, got %d", len(f.conns))
	}
}

func TestDelete_EvictsConnectionFromSelection(t *testing.T) {
	e, f := newTestEngine()
	addItem(f, e, "A", 0, 0, 40, 40)
	addItem(f, e, "B", 200, 0, 40, 40)
	f.conns = append(f.conns, domain.Connection{ID: "c1", BoardID: "board-1", FromItemID: "A", ToItemID: "B"})
	f.sync(e)
	e.sel.conns["c1"] = true
	e.sel.items["B"] = true

	// B's deletion cascades c1 away; the refresh must evict the stale
	// connection id from selection state.
	_ = f.BatchDelete([]string{"B"}, nil)
	f.sync(e)
	if e.Selection().HasConnection("c1") {
		t.Fatal("dangling connection id must be evicted from selection")
	}
}

func TestUndoStackBound(t *testing.T) {
	e, f := newTestEngine()
	addItem(f, e, "a", 0, 0, 20, 20)
	e.sel.items["a"] = true

	for i := 0; i < 60; i++ {
		e.PointerDown(geom.Point{X: 10, Y: 10})
		e.PointerMove(geom.Point{X: 11, Y: 10})
		e.PointerUp(geom.Point{X: 11, Y: 10})
		f.sync(e)
		e.sel.items["a"] = true
	}
	if got := e.history.len(); got != historyLimit {
		t.Fatalf("expected stack bounded to %d, got %d", historyLimit, got)
	}
}

func TestUndo_MissingEntityIsNoop(t *testing.T) {
	e, f := newTestEngine()
	addItem(f, e, "a", 0, 0, 20, 20)
	addItem(f, e, "b", 100, 0, 20, 20)
	e.sel.items["a"] = true
	e.sel.items["b"] = true

	e.PointerDown(geom.Point{X: 10, Y: 10})
	e.PointerMove(geom.Point{X: 20, Y: 10})
	e.PointerUp(geom.Point{X: 20, Y: 10})
	f.sync(e)

	// "a" is deleted independently before the undo.
	_ = f.BatchDelete([]string{"a"}, nil)
	f.sync(e)

	e.Undo() // must not panic; "b" still reverts
	for _, it := range f.items {
		if it.ID == "b" && it.X != 100 {
			t.Errorf("surviving entity must still revert, got x=%v", it.X)
		}
	}
}

func TestUndoEmptyStackIsNoop(t *testing.T) {
	e, _ := newTestEngine()
	e.Undo()
	e.Redo()
	if e.CanUndo() || e.CanRedo() {
		t.Fatal("expected empty history")
	}
}

func TestNewActionClearsRedo(t *testing.T) {
	e, f := newTestEngine()
	addItem(f, e, "a", 0, 0, 20, 20)
	e.sel.items["a"] = true

	e.PointerDown(geom.Point{X: 10, Y: 10})
	e.PointerMove(geom.Point{X: 20, Y: 10})
	e.PointerUp(geom.Point{X: 20, Y: 10})
	f.sync(e)
	e.Undo()
	if !e.CanRedo() {
		t.Fatal("expected redo after undo")
	}

	f.sync(e)
	e.sel.items["a"] = true
	e.PointerDown(geom.Point{X: 10, Y: 10})
	e.PointerMove(geom.Point{X: 11, Y: 10})
	e.PointerUp(geom.Point{X: 11, Y: 10})
	if e.CanRedo() {
		t.Fatal("a new forward action must clear the redo branch")
	}
}

// ─────────────────────────────────────────────────────────────
// Optimistic overrides
// ─────────────────────────────────────────────────────────────

func TestOverride_LiveDuringMove(t *testing.T) {
	e, f := newTestEngine()
	addItem(f, e, "a", 0, 0, 20, 20)
	e.sel.items["a"] = true

	e.PointerDown(geom.Point{X: 10, Y: 10})
	e.PointerMove(geom.Point{X: 40, Y: 10})

	// Persistence untouched mid-gesture; render path sees the override.
	if f.items[0].X != 0 {
		t.Fatal("per-frame updates must never reach persistence")
	}
	it := e.findItem("a")
	if b := e.ItemBounds(it); b.X != 30 {
		t.Fatalf("expected live override at x=30, got %v", b.X)
	}
	e.PointerUp(geom.Point{X: 40, Y: 10})
}

func TestOverride_NoSnapBackBetweenGestureEndAndConfirm(t *testing.T) {
	e, f := newTestEngine()
	addItem(f, e, "a", 0, 0, 20, 20)
	e.sel.items["a"] = true

	e.PointerDown(geom.Point{X: 10, Y: 10})
	e.PointerMove(geom.Point{X: 40, Y: 10})
	e.PointerUp(geom.Point{X: 40, Y: 10})

	// Gesture ended, confirmation not yet re-derived: the override must
	// still shadow the stale persisted copy.
	it := e.findItem("a")
	if b := e.ItemBounds(it); b.X != 30 {
		t.Fatalf("override must survive until a refresh confirms, got x=%v", b.X)
	}

	f.sync(e)
	it = e.findItem("a")
	if b := e.ItemBounds(it); b.X != 30 {
		t.Fatalf("confirmed refresh must agree with the cleared override, got x=%v", b.X)
	}
	if _, ok := e.overrides.itemBounds("a"); ok {
		t.Error("confirmed refresh must clear the stamped override")
	}
}

func TestOverride_StaleRefreshDuringGestureKept(t *testing.T) {
	e, f := newTestEngine()
	addItem(f, e, "a", 0, 0, 20, 20)
	e.sel.items["a"] = true

	e.PointerDown(geom.Point{X: 10, Y: 10})
	e.PointerMove(geom.Point{X: 40, Y: 10})

	// A refresh racing the gesture must not clear the live override.
	f.sync(e)
	e.sel.items["a"] = true
	it := e.findItem("a")
	if b := e.ItemBounds(it); b.X != 30 {
		t.Fatalf("live override must survive a mid-gesture refresh, got x=%v", b.X)
	}
	e.PointerUp(geom.Point{X: 40, Y: 10})
}

func TestMeasuredSizeFallback(t *testing.T) {
	e, f := newTestEngine()
	f.items = append(f.items, domain.Item{ID: "t", BoardID: "board-1", Type: domain.ItemTypeText, Content: "hi", X: 10, Y: 10})
	f.sync(e)

	// Unmeasured zero-size text cannot be hit.
	if hit := hitItem(geom.Point{X: 20, Y: 15}, e.items, e.ItemBounds); hit != nil {
		t.Fatal("zero-size text without a measurement must not hit")
	}

	e.SetMeasuredSize("t", 80, 24)
	if hit := hitItem(geom.Point{X: 20, Y: 15}, e.items, e.ItemBounds); hit == nil || hit.ID != "t" {
		t.Fatal("measured size must make the text hittable before persistence round-trips")
	}
	if f.items[0].Width != 80 || f.items[0].Height != 24 {
		t.Error("measurement must be pushed to persistence for zero-size items")
	}
}

// ─────────────────────────────────────────────────────────────
// Clipboard
// ─────────────────────────────────────────────────────────────

func TestPasteOffset(t *testing.T) {
	e, f := newTestEngine()
	addItem(f, e, "a", 10, 10, 20, 20)
	e.sel.items["a"] = true
	e.Copy()

	center := geom.Point{X: 400, Y: 300}
	e.Paste(center)
	e.Paste(center)

	if len(f.items) != 3 {
		t.Fatalf("expected 2 pasted copies, got %d items", len(f.items))
	}
	first, second := f.items[1], f.items[2]
	if dx, dy := second.X-first.X, second.Y-first.Y; dx != pasteStep || dy != pasteStep {
		t.Fatalf("successive pastes must differ by exactly (%v,%v), got (%v,%v)", pasteStep, pasteStep, dx, dy)
	}
	// First paste centers the snapshot on the viewport center.
	if first.X != center.X-10 || first.Y != center.Y-10 {
		t.Errorf("first paste not centered: (%v,%v)", first.X, first.Y)
	}
}

func TestCopy_SnapshotsByValue(t *testing.T) {
	e, f := newTestEngine()
	addItem(f, e, "a", 10, 10, 20, 20)
	e.sel.items["a"] = true
	e.Copy()
	if !e.Selection().Empty() {
		t.Error("copy must clear the selection")
	}

	// Deleting the original must not affect the snapshot.
	_ = f.BatchDelete([]string{"a"}, nil)
	f.sync(e)
	e.Paste(geom.Point{X: 0, Y: 0})
	if len(f.items) != 1 {
		t.Fatal("paste must recreate from the by-value snapshot")
	}
}

func TestCut_DeletesAndPastes(t *testing.T) {
	e, f := newTestEngine()
	addItem(f, e, "a", 10, 10, 20, 20)
	e.sel.items["a"] = true
	e.Cut()
	if len(f.items) != 0 {
		t.Fatal("cut must delete the selection immediately")
	}
	f.sync(e)

	e.Paste(geom.Point{X: 100, Y: 100})
	if len(f.items) != 1 {
		t.Fatal("paste after cut must recreate the entity")
	}
	if f.items[0].ID == "a" {
		t.Error("pasted clone must get a fresh id")
	}
}

func TestCopyResetsPasteOffset(t *testing.T) {
	e, f := newTestEngine()
	addItem(f, e, "a", 0, 0, 20, 20)
	e.sel.items["a"] = true
	e.Copy()
	e.Paste(geom.Point{X: 0, Y: 0})
	e.Paste(geom.Point{X: 0, Y: 0})

	f.sync(e)
	e.sel.items["a"] = true
	e.Copy() // new copy resets the fan-out
	e.Paste(geom.Point{X: 0, Y: 0})

	last := f.items[len(f.items)-1]
	if last.X != -10 || last.Y != -10 {
		t.Fatalf("paste after a fresh copy must start at offset 0, got (%v,%v)", last.X, last.Y)
	}
}

func TestPasteUndo_RemovesAllClones(t *testing.T) {
	e, f := newTestEngine()
	addItem(f, e, "a", 0, 0, 20, 20)
	f.strokes = append(f.strokes, domain.Stroke{ID: "s", BoardID: "board-1", PathData: "M0,0 L10,10", Width: 3})
	f.sync(e)
	e.sel.items["a"] = true
	e.sel.strokes["s"] = true
	e.Copy()
	e.Paste(geom.Point{X: 200, Y: 200})
	f.sync(e)

	e.Undo()
	if len(f.items) != 1 || len(f.strokes) != 1 {
		t.Fatalf("undo of paste must remove every clone, items=%d strokes=%d", len(f.items), len(f.strokes))
	}
}

// ─────────────────────────────────────────────────────────────
// Viewport
// ─────────────────────────────────────────────────────────────

func TestViewportGesturePersists(t *testing.T) {
	e, f := newTestEngine()
	e.Pan(30, -20)
	e.Pinch(2, geom.Point{X: 100, Y: 100})
	e.EndViewportGesture()
	if f.viewportSaves != 1 {
		t.Fatalf("expected one viewport save on gesture end, got %d", f.viewportSaves)
	}
	if e.Camera().Scale != 2 {
		t.Errorf("unexpected scale %v", e.Camera().Scale)
	}
}
