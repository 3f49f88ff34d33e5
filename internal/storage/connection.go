package storage

import (
	"fmt"
	"time"

	"slate/internal/domain"
)

// ConnectionStore implements domain.ConnectionStore using SQLite.
type ConnectionStore struct {
	db *DB
}

func NewConnectionStore(db *DB) *ConnectionStore {
	return &ConnectionStore{db: db}
}

const connColumns = `id, board_id, from_item_id, to_item_id, from_side, to_side, color, stroke_width, created_at, updated_at`

func (s *ConnectionStore) CreateConnection(c *domain.Connection) error {
	now := time.Now()
	c.CreatedAt = now
	c.UpdatedAt = now
	_, err := s.db.Conn().Exec(
		`INSERT INTO connections (`+connColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.BoardID, c.FromItemID, c.ToItemID, c.FromSide, c.ToSide,
		c.Color, c.StrokeWidth, c.CreatedAt, c.UpdatedAt,
	)
	return err
}

func (s *ConnectionStore) GetConnection(id string) (*domain.Connection, error) {
	c := &domain.Connection{}
	err := s.db.Conn().QueryRow(
		`SELECT `+connColumns+` FROM connections WHERE id = ?`, id,
	).Scan(&c.ID, &c.BoardID, &c.FromItemID, &c.ToItemID, &c.FromSide, &c.ToSide,
		&c.Color, &c.StrokeWidth, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("get connection: %w", err)
	}
	return c, nil
}

func (s *ConnectionStore) ListConnections(boardID string) ([]domain.Connection, error) {
	rows, err := s.db.Conn().Query(
		`SELECT `+connColumns+` FROM connections WHERE board_id = ? ORDER BY created_at ASC`,
		boardID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var conns []domain.Connection
	for rows.Next() {
		var c domain.Connection
		if err := rows.Scan(&c.ID, &c.BoardID, &c.FromItemID, &c.ToItemID, &c.FromSide, &c.ToSide,
			&c.Color, &c.StrokeWidth, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		conns = append(conns, c)
	}
	return conns, rows.Err()
}

func (s *ConnectionStore) UpdateConnection(c *domain.Connection) error {
	c.UpdatedAt = time.Now()
	_, err := s.db.Conn().Exec(
		`UPDATE connections SET from_item_id = ?, to_item_id = ?, from_side = ?, to_side = ?, color = ?, stroke_width = ?, updated_at = ? WHERE id = ?`,
		c.FromItemID, c.ToItemID, c.FromSide, c.ToSide, c.Color, c.StrokeWidth, c.UpdatedAt, c.ID,
	)
	return err
}

func (s *ConnectionStore) DeleteConnection(id string) error {
	_, err := s.db.Conn().Exec(`DELETE FROM connections WHERE id = ?`, id)
	return err
}

func (s *ConnectionStore) DeleteConnectionsByBoard(boardID string) error {
	_, err := s.db.Conn().Exec(`DELETE FROM connections WHERE board_id = ?`, boardID)
	return err
}
