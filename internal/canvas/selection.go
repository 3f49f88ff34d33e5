package canvas

import "slate/internal/domain"

// ─────────────────────────────────────────────────────────────
// Selection & grouping model
// ─────────────────────────────────────────────────────────────

// Selection tracks the multi-selected items, strokes and connections.
type Selection struct {
	items   map[string]bool
	strokes map[string]bool
	conns   map[string]bool
}

func newSelection() *Selection {
	return &Selection{
		items:   map[string]bool{},
		strokes: map[string]bool{},
		conns:   map[string]bool{},
	}
}

func (s *Selection) Empty() bool {
	return len(s.items) == 0 && len(s.strokes) == 0 && len(s.conns) == 0
}

func (s *Selection) Clear() {
	s.items = map[string]bool{}
	s.strokes = map[string]bool{}
	s.conns = map[string]bool{}
}

func (s *Selection) HasItem(id string) bool       { return s.items[id] }
func (s *Selection) HasStroke(id string) bool     { return s.strokes[id] }
func (s *Selection) HasConnection(id string) bool { return s.conns[id] }

func (s *Selection) ItemIDs() []string       { return sortedKeys(s.items) }
func (s *Selection) StrokeIDs() []string     { return sortedKeys(s.strokes) }
func (s *Selection) ConnectionIDs() []string { return sortedKeys(s.conns) }

// groupMembers returns every item and stroke id sharing the group.
func groupMembers(groupID string, items []domain.Item, strokes []domain.Stroke) (itemIDs, strokeIDs []string) {
	for _, it := range items {
		if it.GroupID != nil && *it.GroupID == groupID {
			itemIDs = append(itemIDs, it.ID)
		}
	}
	for _, st := range strokes {
		if st.GroupID != nil && *st.GroupID == groupID {
			strokeIDs = append(strokeIDs, st.ID)
		}
	}
	return itemIDs, strokeIDs
}

// selectItem adds an item to the selection; if it belongs to a group the
// whole group is pulled in — selecting any fraction of a group via click
// extends to every member.
func (e *Engine) selectItem(it *domain.Item) {
	if it.GroupID != nil {
		e.selectGroup(*it.GroupID)
		return
	}
	e.sel.items[it.ID] = true
}

func (e *Engine) selectStroke(st *domain.Stroke) {
	if st.GroupID != nil {
		e.selectGroup(*st.GroupID)
		return
	}
	e.sel.strokes[st.ID] = true
}

func (e *Engine) selectGroup(groupID string) {
	itemIDs, strokeIDs := groupMembers(groupID, e.items, e.strokes)
	for _, id := range itemIDs {
		e.sel.items[id] = true
	}
	for _, id := range strokeIDs {
		e.sel.strokes[id] = true
	}
}

// toggleItem flips selection membership. Grouped entities toggle as a
// whole: either every member joins the selection or every member leaves.
func (e *Engine) toggleItem(it *domain.Item) {
	if it.GroupID != nil {
		e.toggleGroup(*it.GroupID, e.sel.HasItem(it.ID))
		return
	}
	if e.sel.items[it.ID] {
		delete(e.sel.items, it.ID)
	} else {
		e.sel.items[it.ID] = true
	}
}

func (e *Engine) toggleStroke(st *domain.Stroke) {
	if st.GroupID != nil {
		e.toggleGroup(*st.GroupID, e.sel.HasStroke(st.ID))
		return
	}
	if e.sel.strokes[st.ID] {
		delete(e.sel.strokes, st.ID)
	} else {
		e.sel.strokes[st.ID] = true
	}
}

func (e *Engine) toggleGroup(groupID string, selected bool) {
	itemIDs, strokeIDs := groupMembers(groupID, e.items, e.strokes)
	for _, id := range itemIDs {
		if selected {
			delete(e.sel.items, id)
		} else {
			e.sel.items[id] = true
		}
	}
	for _, id := range strokeIDs {
		if selected {
			delete(e.sel.strokes, id)
		} else {
			e.sel.strokes[id] = true
		}
	}
}

// pruneSelection drops selected ids that no longer exist in the
// authoritative entity lists. Connections whose endpoints were deleted
// are evicted here even though the storage cascade removed the records.
func (e *Engine) pruneSelection() {
	live := map[string]bool{}
	for _, it := range e.items {
		live[it.ID] = true
	}
	for id := range e.sel.items {
		if !live[id] {
			delete(e.sel.items, id)
		}
	}
	liveStrokes := map[string]bool{}
	for _, st := range e.strokes {
		liveStrokes[st.ID] = true
	}
	for id := range e.sel.strokes {
		if !liveStrokes[id] {
			delete(e.sel.strokes, id)
		}
	}
	liveConns := map[string]bool{}
	for _, c := range e.conns {
		if live[c.FromItemID] && live[c.ToItemID] {
			liveConns[c.ID] = true
		}
	}
	for id := range e.sel.conns {
		if !liveConns[id] {
			delete(e.sel.conns, id)
		}
	}
}
