package domain

import "time"

// Side names one edge of an item's bounding box. Used for connection
// anchors on both ends of an edge.
type Side string

const (
	SideTop    Side = "top"
	SideBottom Side = "bottom"
	SideLeft   Side = "left"
	SideRight  Side = "right"
)

// Connection is a directed edge between two items on the same board.
type Connection struct {
	ID          string    `json:"id"`
	BoardID     string    `json:"boardId"`
	FromItemID  string    `json:"fromItemId"`
	ToItemID    string    `json:"toItemId"`
	FromSide    Side      `json:"fromSide"`
	ToSide      Side      `json:"toSide"`
	Color       string    `json:"color"`
	StrokeWidth float64   `json:"strokeWidth"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type ConnectionStore interface {
	CreateConnection(c *Connection) error
	GetConnection(id string) (*Connection, error)
	ListConnections(boardID string) ([]Connection, error)
	UpdateConnection(c *Connection) error
	DeleteConnection(id string) error
	DeleteConnectionsByBoard(boardID string) error
}
