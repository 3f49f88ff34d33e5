package canvas

import (
	"fmt"

	"slate/internal/domain"
	"slate/internal/geom"
)

// fakeStore is an in-memory persistence collaborator for engine tests.
// It mirrors the real storage semantics, including the connection
// cascade on item deletion, and can defer create confirmations to
// exercise the optimistic paths.
type fakeStore struct {
	items   []domain.Item
	strokes []domain.Stroke
	conns   []domain.Connection

	deferCreates bool
	deferred     []func()

	singlePositionCalls int
	batchPositionCalls  int
	batchDeleteCalls    int
	viewportSaves       int
}

func newFakeStore() *fakeStore { return &fakeStore{} }

// sync feeds the store's current state to the engine as the
// authoritative read.
func (f *fakeStore) sync(e *Engine) {
	items := make([]domain.Item, len(f.items))
	copy(items, f.items)
	strokes := make([]domain.Stroke, len(f.strokes))
	copy(strokes, f.strokes)
	conns := make([]domain.Connection, len(f.conns))
	copy(conns, f.conns)
	e.ApplyState(items, strokes, conns)
}

// flush runs deferred create confirmations in order.
func (f *fakeStore) flush() {
	for _, fn := range f.deferred {
		fn()
	}
	f.deferred = nil
}

func (f *fakeStore) CreateItem(it *domain.Item, done func(*domain.Item, error)) {
	cp := *it
	f.items = append(f.items, cp)
	if done == nil {
		return
	}
	confirm := func() { done(&cp, nil) }
	if f.deferCreates {
		f.deferred = append(f.deferred, confirm)
	} else {
		confirm()
	}
}

func (f *fakeStore) UpdateItemPosition(id string, x, y, w, h float64) error {
	f.singlePositionCalls++
	for i := range f.items {
		if f.items[i].ID == id {
			f.items[i].X, f.items[i].Y = x, y
			f.items[i].Width, f.items[i].Height = w, h
			return nil
		}
	}
	return fmt.Errorf("item %s not found", id)
}

func (f *fakeStore) UpdateItemContent(id, content string) error {
	for i := range f.items {
		if f.items[i].ID == id {
			f.items[i].Content = content
			return nil
		}
	}
	return fmt.Errorf("item %s not found", id)
}

func (f *fakeStore) DeleteItem(id string) error {
	for i := range f.items {
		if f.items[i].ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			break
		}
	}
	f.cascade(map[string]bool{id: true})
	return nil
}

func (f *fakeStore) BatchUpdatePositions(positions []domain.ItemPosition) error {
	f.batchPositionCalls++
	for _, p := range positions {
		for i := range f.items {
			if f.items[i].ID == p.ID {
				f.items[i].X, f.items[i].Y = p.X, p.Y
				f.items[i].Width, f.items[i].Height = p.Width, p.Height
			}
		}
	}
	return nil
}

func (f *fakeStore) BatchDelete(itemIDs, strokeIDs []string) error {
	f.batchDeleteCalls++
	gone := map[string]bool{}
	for _, id := range itemIDs {
		gone[id] = true
	}
	var items []domain.Item
	for _, it := range f.items {
		if !gone[it.ID] {
			items = append(items, it)
		}
	}
	f.items = items
	goneStrokes := map[string]bool{}
	for _, id := range strokeIDs {
		goneStrokes[id] = true
	}
	var strokes []domain.Stroke
	for _, st := range f.strokes {
		if !goneStrokes[st.ID] {
			strokes = append(strokes, st)
		}
	}
	f.strokes = strokes
	f.cascade(gone)
	return nil
}

// cascade removes connections touching deleted items — the contract the
// real storage layer provides.
func (f *fakeStore) cascade(gone map[string]bool) {
	var conns []domain.Connection
	for _, c := range f.conns {
		if !gone[c.FromItemID] && !gone[c.ToItemID] {
			conns = append(conns, c)
		}
	}
	f.conns = conns
}

func (f *fakeStore) CreateStroke(st *domain.Stroke, done func(*domain.Stroke, error)) {
	cp := *st
	f.strokes = append(f.strokes, cp)
	if done == nil {
		return
	}
	confirm := func() { done(&cp, nil) }
	if f.deferCreates {
		f.deferred = append(f.deferred, confirm)
	} else {
		confirm()
	}
}

func (f *fakeStore) UpdateStrokeOffset(id string, x, y float64) error {
	for i := range f.strokes {
		if f.strokes[i].ID == id {
			f.strokes[i].XOffset, f.strokes[i].YOffset = x, y
			return nil
		}
	}
	return fmt.Errorf("stroke %s not found", id)
}

func (f *fakeStore) DeleteStroke(id string) error {
	for i := range f.strokes {
		if f.strokes[i].ID == id {
			f.strokes = append(f.strokes[:i], f.strokes[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeStore) CreateConnection(c *domain.Connection) (*domain.Connection, error) {
	cp := *c
	f.conns = append(f.conns, cp)
	return &cp, nil
}

func (f *fakeStore) DeleteConnection(id string) error {
	for i := range f.conns {
		if f.conns[i].ID == id {
			f.conns = append(f.conns[:i], f.conns[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeStore) SetGroup(itemIDs, strokeIDs []string, groupID *string) error {
	for _, id := range itemIDs {
		for i := range f.items {
			if f.items[i].ID == id {
				f.items[i].GroupID = copyGroupID(groupID)
			}
		}
	}
	for _, id := range strokeIDs {
		for i := range f.strokes {
			if f.strokes[i].ID == id {
				f.strokes[i].GroupID = copyGroupID(groupID)
			}
		}
	}
	return nil
}

func (f *fakeStore) SaveViewport(x, y, zoom float64) {
	f.viewportSaves++
}

// newTestEngine wires an engine to a fresh fake store at zoom 1 with no
// pan, so canvas and screen coordinates coincide.
func newTestEngine() (*Engine, *fakeStore) {
	f := newFakeStore()
	e := New("board-1", f, geom.NewCamera())
	return e, f
}

func addItem(f *fakeStore, e *Engine, id string, x, y, w, h float64) {
	f.items = append(f.items, domain.Item{
		ID: id, BoardID: "board-1", Type: domain.ItemTypeShape,
		X: x, Y: y, Width: w, Height: h,
	})
	f.sync(e)
}
