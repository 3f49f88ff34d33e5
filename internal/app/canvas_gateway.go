package app

import (
	"context"

	"slate/internal/domain"
)

// canvasGateway adapts the service layer to the interaction engine's
// persistence interface. Service calls here run synchronously on the
// binding goroutine; the engine treats them as fire-and-forget and
// re-derives its state from refreshEngine afterwards.
type canvasGateway struct {
	app     *App
	boardID string
}

func newCanvasGateway(app *App, boardID string) *canvasGateway {
	return &canvasGateway{app: app, boardID: boardID}
}

func (g *canvasGateway) CreateItem(it *domain.Item, done func(*domain.Item, error)) {
	created, err := g.app.items.CreateItem(it)
	if done != nil {
		done(created, err)
	}
}

func (g *canvasGateway) UpdateItemPosition(id string, x, y, width, height float64) error {
	return g.app.items.UpdateItemPosition(id, x, y, width, height)
}

func (g *canvasGateway) UpdateItemContent(id, content string) error {
	return g.app.items.UpdateItemContent(id, content)
}

func (g *canvasGateway) DeleteItem(id string) error {
	return g.app.items.DeleteItem(context.Background(), id)
}

func (g *canvasGateway) BatchUpdatePositions(positions []domain.ItemPosition) error {
	return g.app.items.BatchUpdatePositions(positions)
}

func (g *canvasGateway) BatchDelete(itemIDs, strokeIDs []string) error {
	return g.app.items.BatchDelete(itemIDs, strokeIDs)
}

func (g *canvasGateway) CreateStroke(st *domain.Stroke, done func(*domain.Stroke, error)) {
	st.BoardID = g.boardID
	created, err := g.app.strokes.CreateStroke(st)
	if done != nil {
		done(created, err)
	}
}

func (g *canvasGateway) UpdateStrokeOffset(id string, xOffset, yOffset float64) error {
	return g.app.strokes.UpdateStrokeOffset(id, xOffset, yOffset)
}

func (g *canvasGateway) DeleteStroke(id string) error {
	return g.app.strokes.DeleteStroke(id)
}

func (g *canvasGateway) CreateConnection(c *domain.Connection) (*domain.Connection, error) {
	c.BoardID = g.boardID
	return g.app.conns.CreateConnection(c)
}

func (g *canvasGateway) DeleteConnection(id string) error {
	return g.app.conns.DeleteConnection(id)
}

func (g *canvasGateway) SetGroup(itemIDs, strokeIDs []string, groupID *string) error {
	return g.app.items.SetGroup(itemIDs, strokeIDs, groupID)
}

func (g *canvasGateway) SaveViewport(x, y, zoom float64) {
	g.app.boards.SaveViewport(g.boardID, x, y, zoom)
}
