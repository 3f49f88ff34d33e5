package service

import (
	"fmt"

	"slate/internal/domain"
	"slate/internal/storage"
)

// StrokeService manages freehand strokes.
type StrokeService struct {
	store   *storage.StrokeStore
	emitter EventEmitter
}

func NewStrokeService(store *storage.StrokeStore, emitter EventEmitter) *StrokeService {
	return &StrokeService{store: store, emitter: emitter}
}

// CreateStroke inserts a new stroke with the caller-provided id.
func (s *StrokeService) CreateStroke(st *domain.Stroke) (*domain.Stroke, error) {
	if st.Opacity == 0 {
		st.Opacity = 1
	}
	if err := s.store.CreateStroke(st); err != nil {
		return nil, fmt.Errorf("create stroke: %w", err)
	}
	return st, nil
}

func (s *StrokeService) GetStroke(id string) (*domain.Stroke, error) {
	return s.store.GetStroke(id)
}

func (s *StrokeService) ListStrokes(boardID string) ([]domain.Stroke, error) {
	return s.store.ListStrokes(boardID)
}

// UpdateStrokeOffset moves a stroke. Path data stays immutable; only the
// render-time translation changes.
func (s *StrokeService) UpdateStrokeOffset(id string, xOffset, yOffset float64) error {
	st, err := s.store.GetStroke(id)
	if err != nil {
		return err
	}
	st.XOffset, st.YOffset = xOffset, yOffset
	return s.store.UpdateStroke(st)
}

func (s *StrokeService) DeleteStroke(id string) error {
	return s.store.DeleteStroke(id)
}

func (s *StrokeService) DeleteStrokesByBoard(boardID string) error {
	return s.store.DeleteStrokesByBoard(boardID)
}
