package storage

import (
	"fmt"
	"time"

	"slate/internal/domain"
)

// ItemStore implements domain.ItemStore using SQLite.
type ItemStore struct {
	db *DB
}

func NewItemStore(db *DB) *ItemStore {
	return &ItemStore{db: db}
}

const itemColumns = `id, board_id, type, x, y, width, height, content, file_path, stroke_color, fill_color, font_size, font_weight, duration_ms, group_id, created_at, updated_at`

func scanItem(row interface{ Scan(...any) error }, it *domain.Item) error {
	return row.Scan(&it.ID, &it.BoardID, &it.Type, &it.X, &it.Y, &it.Width, &it.Height,
		&it.Content, &it.FilePath, &it.StrokeColor, &it.FillColor, &it.FontSize,
		&it.FontWeight, &it.DurationMs, &it.GroupID, &it.CreatedAt, &it.UpdatedAt)
}

func (s *ItemStore) CreateItem(it *domain.Item) error {
	now := time.Now()
	it.CreatedAt = now
	it.UpdatedAt = now
	_, err := s.db.Conn().Exec(
		`INSERT INTO items (`+itemColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		it.ID, it.BoardID, it.Type, it.X, it.Y, it.Width, it.Height, it.Content, it.FilePath,
		it.StrokeColor, it.FillColor, it.FontSize, it.FontWeight, it.DurationMs, it.GroupID,
		it.CreatedAt, it.UpdatedAt,
	)
	return err
}

func (s *ItemStore) GetItem(id string) (*domain.Item, error) {
	it := &domain.Item{}
	err := scanItem(s.db.Conn().QueryRow(
		`SELECT `+itemColumns+` FROM items WHERE id = ?`, id,
	), it)
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	return it, nil
}

func (s *ItemStore) ListItems(boardID string) ([]domain.Item, error) {
	rows, err := s.db.Conn().Query(
		`SELECT `+itemColumns+` FROM items WHERE board_id = ? ORDER BY created_at ASC`,
		boardID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.Item
	for rows.Next() {
		var it domain.Item
		if err := scanItem(rows, &it); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (s *ItemStore) UpdateItem(it *domain.Item) error {
	it.UpdatedAt = time.Now()
	_, err := s.db.Conn().Exec(
		`UPDATE items SET type = ?, x = ?, y = ?, width = ?, height = ?, content = ?, file_path = ?, stroke_color = ?, fill_color = ?, font_size = ?, font_weight = ?, duration_ms = ?, group_id = ?, updated_at = ? WHERE id = ?`,
		it.Type, it.X, it.Y, it.Width, it.Height, it.Content, it.FilePath, it.StrokeColor,
		it.FillColor, it.FontSize, it.FontWeight, it.DurationMs, it.GroupID, it.UpdatedAt, it.ID,
	)
	return err
}

// DeleteItem removes an item and cascades its connections.
func (s *ItemStore) DeleteItem(id string) error {
	tx, err := s.db.Conn().Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM connections WHERE from_item_id = ? OR to_item_id = ?`, id, id); err != nil {
		return fmt.Errorf("cascade connections: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM items WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	return tx.Commit()
}

func (s *ItemStore) DeleteItemsByBoard(boardID string) error {
	_, err := s.db.Conn().Exec(`DELETE FROM items WHERE board_id = ?`, boardID)
	return err
}

// BatchUpdatePositions moves/resizes many items in one transaction, as a
// single multi-entity gesture commit.
func (s *ItemStore) BatchUpdatePositions(positions []domain.ItemPosition) error {
	if len(positions) == 0 {
		return nil
	}
	tx, err := s.db.Conn().Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	now := time.Now()
	for _, p := range positions {
		if _, err := tx.Exec(
			`UPDATE items SET x = ?, y = ?, width = ?, height = ?, updated_at = ? WHERE id = ?`,
			p.X, p.Y, p.Width, p.Height, now, p.ID,
		); err != nil {
			return fmt.Errorf("update item %s: %w", p.ID, err)
		}
	}
	return tx.Commit()
}

// BatchDelete removes items and strokes in one transaction. Connections
// touching a deleted item are cascaded here — callers rely on this
// contract rather than issuing their own connection deletes.
func (s *ItemStore) BatchDelete(itemIDs, strokeIDs []string) error {
	if len(itemIDs) == 0 && len(strokeIDs) == 0 {
		return nil
	}
	tx, err := s.db.Conn().Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	for _, id := range itemIDs {
		if _, err := tx.Exec(`DELETE FROM connections WHERE from_item_id = ? OR to_item_id = ?`, id, id); err != nil {
			return fmt.Errorf("cascade connections for %s: %w", id, err)
		}
		if _, err := tx.Exec(`DELETE FROM items WHERE id = ?`, id); err != nil {
			return fmt.Errorf("delete item %s: %w", id, err)
		}
	}
	for _, id := range strokeIDs {
		if _, err := tx.Exec(`DELETE FROM strokes WHERE id = ?`, id); err != nil {
			return fmt.Errorf("delete stroke %s: %w", id, err)
		}
	}
	return tx.Commit()
}

// SetGroup assigns (or clears, with nil) group membership across items
// and strokes in one transaction.
func (s *ItemStore) SetGroup(itemIDs, strokeIDs []string, groupID *string) error {
	if len(itemIDs) == 0 && len(strokeIDs) == 0 {
		return nil
	}
	tx, err := s.db.Conn().Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	now := time.Now()
	for _, id := range itemIDs {
		if _, err := tx.Exec(`UPDATE items SET group_id = ?, updated_at = ? WHERE id = ?`, groupID, now, id); err != nil {
			return fmt.Errorf("set group on item %s: %w", id, err)
		}
	}
	for _, id := range strokeIDs {
		if _, err := tx.Exec(`UPDATE strokes SET group_id = ?, updated_at = ? WHERE id = ?`, groupID, now, id); err != nil {
			return fmt.Errorf("set group on stroke %s: %w", id, err)
		}
	}
	return tx.Commit()
}
