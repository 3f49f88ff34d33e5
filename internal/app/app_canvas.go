package app

import (
	"slate/internal/canvas"
	"slate/internal/domain"
	"slate/internal/geom"
)

// ============================================================
// Canvas pointer surface
// ============================================================

// ConnectionPreviewView is the live rubber-band line of a connection drag.
type ConnectionPreviewView struct {
	From geom.Point `json:"from"`
	To   geom.Point `json:"to"`
}

// CanvasView is the engine's render snapshot, returned from every canvas
// binding so the frontend draws the interaction layer without a second
// round trip.
type CanvasView struct {
	Mode              string                 `json:"mode"`
	SelectedItems     []string               `json:"selectedItems"`
	SelectedStrokes   []string               `json:"selectedStrokes"`
	SelectedConns     []string               `json:"selectedConnections"`
	CanUndo           bool                   `json:"canUndo"`
	CanRedo           bool                   `json:"canRedo"`
	EditingItemID     string                 `json:"editingItemId"`
	QuickMenuOpen     bool                   `json:"quickMenuOpen"`
	MarqueeArmed      bool                   `json:"marqueeArmed"`
	Camera            geom.Camera            `json:"camera"`
	DrawPath          string                 `json:"drawPath,omitempty"`
	MarqueeRect       *geom.Rect             `json:"marqueeRect,omitempty"`
	ConnectionPreview *ConnectionPreviewView `json:"connectionPreview,omitempty"`
	PendingStrokes    []domain.Stroke        `json:"pendingStrokes"`
	ItemOverrides     map[string]geom.Rect   `json:"itemOverrides"`
	StrokeOverrides   map[string]geom.Point  `json:"strokeOverrides"`
}

// view builds the snapshot from current engine state.
func (a *App) view() CanvasView {
	e := a.engine
	if e == nil {
		return CanvasView{Mode: "idle", Camera: *geom.NewCamera()}
	}

	v := CanvasView{
		Mode:            string(e.Mode()),
		SelectedItems:   e.Selection().ItemIDs(),
		SelectedStrokes: e.Selection().StrokeIDs(),
		SelectedConns:   e.Selection().ConnectionIDs(),
		CanUndo:         e.CanUndo(),
		CanRedo:         e.CanRedo(),
		EditingItemID:   e.EditingItemID(),
		QuickMenuOpen:   e.QuickMenuOpen(),
		MarqueeArmed:    e.MarqueeArmed(),
		Camera:          *e.Camera(),
		PendingStrokes:  e.PendingStrokes(),
		ItemOverrides:   e.OverriddenItemBounds(),
		StrokeOverrides: e.OverriddenStrokeOffsets(),
	}

	if path, ok := e.DrawPath(); ok {
		v.DrawPath = path
	}
	if r, ok := e.MarqueeRect(); ok {
		v.MarqueeRect = &r
	}
	if from, to, ok := e.ConnectionPreview(); ok {
		v.ConnectionPreview = &ConnectionPreviewView{From: from, To: to}
	}

	return v
}

// refreshCanvas re-reads the open board's entities and feeds them to the
// engine as the authoritative state, then tells the frontend to re-render.
func (a *App) refreshCanvas() {
	if a.engine == nil || a.gateway == nil {
		return
	}
	state, err := a.boards.GetBoardState(a.gateway.boardID)
	if err != nil {
		return
	}
	a.engine.ApplyState(state.Items, state.Strokes, state.Connections)
	a.Emit(a.ctx, "canvas:changed", map[string]string{"boardId": a.gateway.boardID})
}

// RefreshCanvas re-syncs the engine with the database. Called by the
// frontend when the board watcher reports an external change.
func (a *App) RefreshCanvas() CanvasView {
	a.refreshCanvas()
	return a.view()
}

func (a *App) CanvasPointerDown(x, y float64) CanvasView {
	if a.engine != nil {
		a.engine.PointerDown(geom.Point{X: x, Y: y})
	}
	return a.view()
}

func (a *App) CanvasPointerMove(x, y float64) CanvasView {
	if a.engine != nil {
		a.engine.PointerMove(geom.Point{X: x, Y: y})
	}
	return a.view()
}

func (a *App) CanvasPointerUp(x, y float64) CanvasView {
	if a.engine != nil {
		a.engine.PointerUp(geom.Point{X: x, Y: y})
		a.refreshCanvas()
	}
	return a.view()
}

func (a *App) CanvasTap(x, y float64) CanvasView {
	if a.engine != nil {
		a.engine.Tap(geom.Point{X: x, Y: y})
		a.refreshCanvas()
	}
	return a.view()
}

func (a *App) CanvasLongPress(x, y float64) CanvasView {
	if a.engine != nil {
		a.engine.LongPress(geom.Point{X: x, Y: y})
	}
	return a.view()
}

func (a *App) CanvasCancelGesture() CanvasView {
	if a.engine != nil {
		a.engine.CancelGesture()
	}
	return a.view()
}

// ============================================================
// Viewport gestures
// ============================================================

func (a *App) CanvasPan(dx, dy float64) CanvasView {
	if a.engine != nil {
		a.engine.Pan(dx, dy)
	}
	return a.view()
}

func (a *App) CanvasPinch(scale, focalX, focalY float64) CanvasView {
	if a.engine != nil {
		a.engine.Pinch(scale, geom.Point{X: focalX, Y: focalY})
	}
	return a.view()
}

func (a *App) CanvasEndViewportGesture() CanvasView {
	if a.engine != nil {
		a.engine.EndViewportGesture()
	}
	return a.view()
}

// ============================================================
// Imperative triggers
// ============================================================

func (a *App) DeleteSelected() CanvasView {
	if a.engine != nil {
		a.engine.DeleteSelected()
		a.refreshCanvas()
	}
	return a.view()
}

func (a *App) GroupSelected() CanvasView {
	if a.engine != nil {
		a.engine.GroupSelected()
		a.refreshCanvas()
	}
	return a.view()
}

func (a *App) UngroupSelected() CanvasView {
	if a.engine != nil {
		a.engine.UngroupSelected()
		a.refreshCanvas()
	}
	return a.view()
}

func (a *App) CutSelected() CanvasView {
	if a.engine != nil {
		a.engine.Cut()
		a.refreshCanvas()
	}
	return a.view()
}

func (a *App) CopySelected() CanvasView {
	if a.engine != nil {
		a.engine.Copy()
	}
	return a.view()
}

// PasteClipboard clones the copied entities centered on the given canvas
// point, usually the current viewport center.
func (a *App) PasteClipboard(centerX, centerY float64) CanvasView {
	if a.engine != nil {
		a.engine.Paste(geom.Point{X: centerX, Y: centerY})
		a.refreshCanvas()
	}
	return a.view()
}

func (a *App) ToggleMarquee() CanvasView {
	if a.engine != nil {
		a.engine.ToggleMarquee()
	}
	return a.view()
}

func (a *App) Undo() CanvasView {
	if a.engine != nil {
		a.engine.Undo()
		a.refreshCanvas()
	}
	return a.view()
}

func (a *App) Redo() CanvasView {
	if a.engine != nil {
		a.engine.Redo()
		a.refreshCanvas()
	}
	return a.view()
}

func (a *App) CloseQuickMenu() CanvasView {
	if a.engine != nil {
		a.engine.CloseQuickMenu()
	}
	return a.view()
}

func (a *App) StopEditing() CanvasView {
	if a.engine != nil {
		a.engine.StopEditing()
	}
	return a.view()
}

// SetItemContent confirms the text of the item being edited.
func (a *App) SetItemContent(itemID, content string) CanvasView {
	if a.engine != nil {
		a.engine.SetItemContent(itemID, content)
		a.refreshCanvas()
	}
	return a.view()
}

// SetBrush updates the stroke style for subsequent draw gestures.
func (a *App) SetBrush(color string, width, opacity float64) {
	if a.engine != nil {
		a.engine.SetBrush(canvas.Brush{Color: color, Width: width, Opacity: opacity})
	}
}
