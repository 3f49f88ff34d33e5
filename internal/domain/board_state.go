package domain

// BoardState is the complete state of a board for rendering.
// Returned to the frontend to render the full canvas, and fed to the
// interaction engine as the authoritative read.
type BoardState struct {
	Board       Board        `json:"board"`
	Items       []Item       `json:"items"`
	Strokes     []Stroke     `json:"strokes"`
	Connections []Connection `json:"connections"`
}
