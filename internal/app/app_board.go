package app

import (
	"slate/internal/canvas"
	"slate/internal/domain"
	"slate/internal/geom"
)

// ============================================================
// Notebooks
// ============================================================

func (a *App) ListNotebooks() ([]domain.Notebook, error) {
	return a.boards.ListNotebooks()
}

func (a *App) CreateNotebook(name string) (*domain.Notebook, error) {
	return a.boards.CreateNotebook(name)
}

func (a *App) RenameNotebook(id, name string) error {
	return a.boards.RenameNotebook(id, name)
}

func (a *App) DeleteNotebook(id string) error {
	return a.boards.DeleteNotebook(id)
}

// ============================================================
// Boards
// ============================================================

func (a *App) ListBoards(notebookID string) ([]domain.Board, error) {
	return a.boards.ListBoards(notebookID)
}

func (a *App) CreateBoard(notebookID, name string) (*domain.Board, error) {
	return a.boards.CreateBoard(notebookID, name)
}

func (a *App) RenameBoard(id, name string) error {
	return a.boards.RenameBoard(id, name)
}

func (a *App) DeleteBoard(id string) error {
	return a.boards.DeleteBoard(id)
}

func (a *App) GetBoardState(boardID string) (*domain.BoardState, error) {
	return a.boards.GetBoardState(boardID)
}

// OpenBoard loads a board's full state and swaps the interaction engine
// over to it, restoring the persisted viewport.
func (a *App) OpenBoard(boardID string) (*domain.BoardState, error) {
	state, err := a.boards.GetBoardState(boardID)
	if err != nil {
		return nil, err
	}

	cam := geom.NewCamera()
	cam.TranslateX = state.Board.ViewportX
	cam.TranslateY = state.Board.ViewportY
	if state.Board.ViewportZoom > 0 {
		cam.Scale = state.Board.ViewportZoom
	}

	a.gateway = newCanvasGateway(a, boardID)
	a.engine = canvas.New(boardID, a.gateway, cam)
	a.engine.ApplyState(state.Items, state.Strokes, state.Connections)

	if a.watcher != nil {
		a.watcher.SetBoard(boardID, state.Board.NotebookID)
	}

	return state, nil
}

// UpdateViewport persists the viewport directly, bypassing the gesture
// path. Used when the frontend restores or programmatically moves the view.
func (a *App) UpdateViewport(boardID string, x, y, zoom float64) {
	a.boards.SaveViewport(boardID, x, y, zoom)
	if a.engine != nil {
		cam := a.engine.Camera()
		cam.TranslateX = x
		cam.TranslateY = y
		cam.Scale = zoom
	}
}
