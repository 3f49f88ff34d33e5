package service

import (
	"fmt"

	"slate/internal/domain"
	"slate/internal/storage"
)

// ConnectionService manages directed edges between items.
type ConnectionService struct {
	store   *storage.ConnectionStore
	items   *storage.ItemStore
	emitter EventEmitter
}

func NewConnectionService(store *storage.ConnectionStore, items *storage.ItemStore, emitter EventEmitter) *ConnectionService {
	return &ConnectionService{store: store, items: items, emitter: emitter}
}

// CreateConnection validates both endpoints live on the same board
// before inserting.
func (s *ConnectionService) CreateConnection(c *domain.Connection) (*domain.Connection, error) {
	from, err := s.items.GetItem(c.FromItemID)
	if err != nil {
		return nil, fmt.Errorf("connection source: %w", err)
	}
	to, err := s.items.GetItem(c.ToItemID)
	if err != nil {
		return nil, fmt.Errorf("connection target: %w", err)
	}
	if from.BoardID != to.BoardID {
		return nil, fmt.Errorf("connection endpoints on different boards: %s vs %s", from.BoardID, to.BoardID)
	}
	c.BoardID = from.BoardID
	if err := s.store.CreateConnection(c); err != nil {
		return nil, fmt.Errorf("create connection: %w", err)
	}
	return c, nil
}

func (s *ConnectionService) GetConnection(id string) (*domain.Connection, error) {
	return s.store.GetConnection(id)
}

func (s *ConnectionService) ListConnections(boardID string) ([]domain.Connection, error) {
	return s.store.ListConnections(boardID)
}

func (s *ConnectionService) UpdateConnection(c *domain.Connection) error {
	return s.store.UpdateConnection(c)
}

func (s *ConnectionService) DeleteConnection(id string) error {
	return s.store.DeleteConnection(id)
}

func (s *ConnectionService) DeleteConnectionsByBoard(boardID string) error {
	return s.store.DeleteConnectionsByBoard(boardID)
}
