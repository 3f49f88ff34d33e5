package domain

import "time"

// Stroke is a freehand path drawn on a board. The path data is immutable
// after creation; moving a stroke only changes its x/y offset.
type Stroke struct {
	ID        string    `json:"id"`
	BoardID   string    `json:"boardId"`
	PathData  string    `json:"pathData"` // compact path string, e.g. "M10,10 L50,50"
	Color     string    `json:"color"`
	Width     float64   `json:"width"`
	Opacity   float64   `json:"opacity"`
	XOffset   float64   `json:"xOffset"`
	YOffset   float64   `json:"yOffset"`
	GroupID   *string   `json:"groupId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type StrokeStore interface {
	CreateStroke(st *Stroke) error
	GetStroke(id string) (*Stroke, error)
	ListStrokes(boardID string) ([]Stroke, error)
	UpdateStroke(st *Stroke) error
	DeleteStroke(id string) error
	DeleteStrokesByBoard(boardID string) error
}
