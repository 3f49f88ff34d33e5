package storage

import (
	"fmt"
	"time"

	"slate/internal/domain"
)

// StrokeStore implements domain.StrokeStore using SQLite.
type StrokeStore struct {
	db *DB
}

func NewStrokeStore(db *DB) *StrokeStore {
	return &StrokeStore{db: db}
}

const strokeColumns = `id, board_id, path_data, color, width, opacity, x_offset, y_offset, group_id, created_at, updated_at`

func (s *StrokeStore) CreateStroke(st *domain.Stroke) error {
	now := time.Now()
	st.CreatedAt = now
	st.UpdatedAt = now
	_, err := s.db.Conn().Exec(
		`INSERT INTO strokes (`+strokeColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		st.ID, st.BoardID, st.PathData, st.Color, st.Width, st.Opacity,
		st.XOffset, st.YOffset, st.GroupID, st.CreatedAt, st.UpdatedAt,
	)
	return err
}

func (s *StrokeStore) GetStroke(id string) (*domain.Stroke, error) {
	st := &domain.Stroke{}
	err := s.db.Conn().QueryRow(
		`SELECT `+strokeColumns+` FROM strokes WHERE id = ?`, id,
	).Scan(&st.ID, &st.BoardID, &st.PathData, &st.Color, &st.Width, &st.Opacity,
		&st.XOffset, &st.YOffset, &st.GroupID, &st.CreatedAt, &st.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("get stroke: %w", err)
	}
	return st, nil
}

func (s *StrokeStore) ListStrokes(boardID string) ([]domain.Stroke, error) {
	rows, err := s.db.Conn().Query(
		`SELECT `+strokeColumns+` FROM strokes WHERE board_id = ? ORDER BY created_at ASC`,
		boardID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var strokes []domain.Stroke
	for rows.Next() {
		var st domain.Stroke
		if err := rows.Scan(&st.ID, &st.BoardID, &st.PathData, &st.Color, &st.Width, &st.Opacity,
			&st.XOffset, &st.YOffset, &st.GroupID, &st.CreatedAt, &st.UpdatedAt); err != nil {
			return nil, err
		}
		strokes = append(strokes, st)
	}
	return strokes, rows.Err()
}

func (s *StrokeStore) UpdateStroke(st *domain.Stroke) error {
	st.UpdatedAt = time.Now()
	_, err := s.db.Conn().Exec(
		`UPDATE strokes SET path_data = ?, color = ?, width = ?, opacity = ?, x_offset = ?, y_offset = ?, group_id = ?, updated_at = ? WHERE id = ?`,
		st.PathData, st.Color, st.Width, st.Opacity, st.XOffset, st.YOffset, st.GroupID, st.UpdatedAt, st.ID,
	)
	return err
}

func (s *StrokeStore) DeleteStroke(id string) error {
	_, err := s.db.Conn().Exec(`DELETE FROM strokes WHERE id = ?`, id)
	return err
}

func (s *StrokeStore) DeleteStrokesByBoard(boardID string) error {
	_, err := s.db.Conn().Exec(`DELETE FROM strokes WHERE board_id = ?`, boardID)
	return err
}
