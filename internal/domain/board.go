package domain

import "time"

type Notebook struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Icon      string    `json:"icon"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Board struct {
	ID           string    `json:"id"`
	NotebookID   string    `json:"notebookId"`
	Name         string    `json:"name"`
	Order        int       `json:"order"`
	ViewportX    float64   `json:"viewportX"`
	ViewportY    float64   `json:"viewportY"`
	ViewportZoom float64   `json:"viewportZoom"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type BoardStore interface {
	CreateNotebook(nb *Notebook) error
	GetNotebook(id string) (*Notebook, error)
	ListNotebooks() ([]Notebook, error)
	UpdateNotebook(nb *Notebook) error
	DeleteNotebook(id string) error

	CreateBoard(b *Board) error
	GetBoard(id string) (*Board, error)
	ListBoards(notebookID string) ([]Board, error)
	UpdateBoard(b *Board) error
	UpdateViewport(boardID string, x, y, zoom float64) error
	DeleteBoard(id string) error
	DeleteBoardsByNotebook(notebookID string) error
}
