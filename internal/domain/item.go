package domain

import "time"

type ItemType string

const (
	ItemTypeText  ItemType = "text"
	ItemTypeImage ItemType = "image"
	ItemTypeShape ItemType = "shape"
	ItemTypeAudio ItemType = "audio"
)

type Item struct {
	ID          string    `json:"id"`
	BoardID     string    `json:"boardId"`
	Type        ItemType  `json:"type"`
	X           float64   `json:"x"`
	Y           float64   `json:"y"`
	Width       float64   `json:"width"`
	Height      float64   `json:"height"`
	Content     string    `json:"content"`  // text content, or shape kind
	FilePath    string    `json:"filePath"` // image/audio attachment on disk
	StrokeColor string    `json:"strokeColor"`
	FillColor   string    `json:"fillColor"`
	FontSize    float64   `json:"fontSize"`   // text only
	FontWeight  string    `json:"fontWeight"` // text only
	DurationMs  int       `json:"durationMs"` // audio only
	GroupID     *string   `json:"groupId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ItemPosition is one entry of a batch position update.
type ItemPosition struct {
	ID     string  `json:"id"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type ItemStore interface {
	CreateItem(it *Item) error
	GetItem(id string) (*Item, error)
	ListItems(boardID string) ([]Item, error)
	UpdateItem(it *Item) error
	DeleteItem(id string) error
	DeleteItemsByBoard(boardID string) error
	BatchUpdatePositions(positions []ItemPosition) error
	BatchDelete(itemIDs, strokeIDs []string) error
	SetGroup(itemIDs, strokeIDs []string, groupID *string) error
}
