package storage

import (
	"fmt"
	"time"

	"slate/internal/domain"
)

// BoardStore implements domain.BoardStore using SQLite.
type BoardStore struct {
	db *DB
}

func NewBoardStore(db *DB) *BoardStore {
	return &BoardStore{db: db}
}

func (s *BoardStore) CreateNotebook(nb *domain.Notebook) error {
	now := time.Now()
	nb.CreatedAt = now
	nb.UpdatedAt = now
	_, err := s.db.Conn().Exec(
		`INSERT INTO notebooks (id, name, icon, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		nb.ID, nb.Name, nb.Icon, nb.CreatedAt, nb.UpdatedAt,
	)
	return err
}

func (s *BoardStore) GetNotebook(id string) (*domain.Notebook, error) {
	nb := &domain.Notebook{}
	err := s.db.Conn().QueryRow(
		`SELECT id, name, icon, created_at, updated_at FROM notebooks WHERE id = ?`, id,
	).Scan(&nb.ID, &nb.Name, &nb.Icon, &nb.CreatedAt, &nb.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("get notebook: %w", err)
	}
	return nb, nil
}

func (s *BoardStore) ListNotebooks() ([]domain.Notebook, error) {
	rows, err := s.db.Conn().Query(
		`SELECT id, name, icon, created_at, updated_at FROM notebooks ORDER BY created_at ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notebooks []domain.Notebook
	for rows.Next() {
		var nb domain.Notebook
		if err := rows.Scan(&nb.ID, &nb.Name, &nb.Icon, &nb.CreatedAt, &nb.UpdatedAt); err != nil {
			return nil, err
		}
		notebooks = append(notebooks, nb)
	}
	return notebooks, rows.Err()
}

func (s *BoardStore) UpdateNotebook(nb *domain.Notebook) error {
	nb.UpdatedAt = time.Now()
	_, err := s.db.Conn().Exec(
		`UPDATE notebooks SET name = ?, icon = ?, updated_at = ? WHERE id = ?`,
		nb.Name, nb.Icon, nb.UpdatedAt, nb.ID,
	)
	return err
}

func (s *BoardStore) DeleteNotebook(id string) error {
	_, err := s.db.Conn().Exec(`DELETE FROM notebooks WHERE id = ?`, id)
	return err
}

const boardColumns = `id, notebook_id, name, sort_order, viewport_x, viewport_y, viewport_zoom, created_at, updated_at`

func (s *BoardStore) CreateBoard(b *domain.Board) error {
	now := time.Now()
	b.CreatedAt = now
	b.UpdatedAt = now
	if b.ViewportZoom == 0 {
		b.ViewportZoom = 1
	}
	_, err := s.db.Conn().Exec(
		`INSERT INTO boards (`+boardColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.ID, b.NotebookID, b.Name, b.Order, b.ViewportX, b.ViewportY, b.ViewportZoom,
		b.CreatedAt, b.UpdatedAt,
	)
	return err
}

func (s *BoardStore) GetBoard(id string) (*domain.Board, error) {
	b := &domain.Board{}
	err := s.db.Conn().QueryRow(
		`SELECT `+boardColumns+` FROM boards WHERE id = ?`, id,
	).Scan(&b.ID, &b.NotebookID, &b.Name, &b.Order, &b.ViewportX, &b.ViewportY,
		&b.ViewportZoom, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("get board: %w", err)
	}
	return b, nil
}

func (s *BoardStore) ListBoards(notebookID string) ([]domain.Board, error) {
	rows, err := s.db.Conn().Query(
		`SELECT `+boardColumns+` FROM boards WHERE notebook_id = ? ORDER BY sort_order ASC, created_at ASC`,
		notebookID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var boards []domain.Board
	for rows.Next() {
		var b domain.Board
		if err := rows.Scan(&b.ID, &b.NotebookID, &b.Name, &b.Order, &b.ViewportX, &b.ViewportY,
			&b.ViewportZoom, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, err
		}
		boards = append(boards, b)
	}
	return boards, rows.Err()
}

func (s *BoardStore) UpdateBoard(b *domain.Board) error {
	b.UpdatedAt = time.Now()
	_, err := s.db.Conn().Exec(
		`UPDATE boards SET name = ?, sort_order = ?, viewport_x = ?, viewport_y = ?, viewport_zoom = ?, updated_at = ? WHERE id = ?`,
		b.Name, b.Order, b.ViewportX, b.ViewportY, b.ViewportZoom, b.UpdatedAt, b.ID,
	)
	return err
}

// UpdateViewport persists pan/zoom without touching the rest of the
// board row.
func (s *BoardStore) UpdateViewport(boardID string, x, y, zoom float64) error {
	_, err := s.db.Conn().Exec(
		`UPDATE boards SET viewport_x = ?, viewport_y = ?, viewport_zoom = ?, updated_at = ? WHERE id = ?`,
		x, y, zoom, time.Now(), boardID,
	)
	return err
}

func (s *BoardStore) DeleteBoard(id string) error {
	_, err := s.db.Conn().Exec(`DELETE FROM boards WHERE id = ?`, id)
	return err
}

func (s *BoardStore) DeleteBoardsByNotebook(notebookID string) error {
	_, err := s.db.Conn().Exec(`DELETE FROM boards WHERE notebook_id = ?`, notebookID)
	return err
}
