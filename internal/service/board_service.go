package service

import (
	"fmt"
	"sync"
	"time"

	"github.com/bep/debounce"
	"github.com/google/uuid"

	"slate/internal/domain"
	"slate/internal/storage"
)

// ─────────────────────────────────────────────────────────────
// Board Service — notebooks, boards, viewport persistence
// ─────────────────────────────────────────────────────────────

// viewportDebounce is how long viewport writes are coalesced: pan/pinch
// gesture ends arrive in bursts and only the last state matters.
const viewportDebounce = 400 * time.Millisecond

// BoardService manages notebooks and boards.
type BoardService struct {
	store   *storage.BoardStore
	items   *ItemService
	strokes *StrokeService
	conns   *ConnectionService
	emitter EventEmitter

	mu        sync.Mutex
	debounced func(f func())
	pendingVP map[string][3]float64 // boardID → x, y, zoom
}

func NewBoardService(store *storage.BoardStore, items *ItemService, strokes *StrokeService, conns *ConnectionService, emitter EventEmitter) *BoardService {
	return &BoardService{
		store:     store,
		items:     items,
		strokes:   strokes,
		conns:     conns,
		emitter:   emitter,
		debounced: debounce.New(viewportDebounce),
		pendingVP: map[string][3]float64{},
	}
}

func (s *BoardService) ListNotebooks() ([]domain.Notebook, error) {
	return s.store.ListNotebooks()
}

func (s *BoardService) CreateNotebook(name string) (*domain.Notebook, error) {
	nb := &domain.Notebook{ID: uuid.New().String(), Name: name, Icon: "📓"}
	if err := s.store.CreateNotebook(nb); err != nil {
		return nil, fmt.Errorf("create notebook: %w", err)
	}
	return nb, nil
}

func (s *BoardService) RenameNotebook(id, name string) error {
	nb, err := s.store.GetNotebook(id)
	if err != nil {
		return err
	}
	nb.Name = name
	return s.store.UpdateNotebook(nb)
}

// DeleteNotebook removes a notebook and everything on its boards.
func (s *BoardService) DeleteNotebook(id string) error {
	boards, err := s.store.ListBoards(id)
	if err != nil {
		return err
	}
	for _, b := range boards {
		if err := s.deleteBoardContents(b.ID); err != nil {
			return err
		}
	}
	if err := s.store.DeleteBoardsByNotebook(id); err != nil {
		return fmt.Errorf("delete boards: %w", err)
	}
	return s.store.DeleteNotebook(id)
}

func (s *BoardService) ListBoards(notebookID string) ([]domain.Board, error) {
	return s.store.ListBoards(notebookID)
}

func (s *BoardService) CreateBoard(notebookID, name string) (*domain.Board, error) {
	boards, _ := s.store.ListBoards(notebookID)
	b := &domain.Board{
		ID:           uuid.New().String(),
		NotebookID:   notebookID,
		Name:         name,
		Order:        len(boards),
		ViewportZoom: 1,
	}
	if err := s.store.CreateBoard(b); err != nil {
		return nil, fmt.Errorf("create board: %w", err)
	}
	return b, nil
}

func (s *BoardService) GetBoard(id string) (*domain.Board, error) {
	return s.store.GetBoard(id)
}

func (s *BoardService) RenameBoard(id, name string) error {
	b, err := s.store.GetBoard(id)
	if err != nil {
		return err
	}
	b.Name = name
	return s.store.UpdateBoard(b)
}

// DeleteBoard removes a board and all its content.
func (s *BoardService) DeleteBoard(id string) error {
	if err := s.deleteBoardContents(id); err != nil {
		return err
	}
	return s.store.DeleteBoard(id)
}

func (s *BoardService) deleteBoardContents(boardID string) error {
	if err := s.conns.DeleteConnectionsByBoard(boardID); err != nil {
		return fmt.Errorf("delete connections: %w", err)
	}
	if err := s.strokes.DeleteStrokesByBoard(boardID); err != nil {
		return fmt.Errorf("delete strokes: %w", err)
	}
	if err := s.items.DeleteItemsByBoard(boardID); err != nil {
		return fmt.Errorf("delete items: %w", err)
	}
	return nil
}

// GetBoardState assembles the authoritative read of one board.
func (s *BoardService) GetBoardState(boardID string) (*domain.BoardState, error) {
	b, err := s.store.GetBoard(boardID)
	if err != nil {
		return nil, err
	}
	items, err := s.items.ListItems(boardID)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	strokes, err := s.strokes.ListStrokes(boardID)
	if err != nil {
		return nil, fmt.Errorf("list strokes: %w", err)
	}
	conns, err := s.conns.ListConnections(boardID)
	if err != nil {
		return nil, fmt.Errorf("list connections: %w", err)
	}
	return &domain.BoardState{Board: *b, Items: items, Strokes: strokes, Connections: conns}, nil
}

// SaveViewport records pan/zoom for a board, debounced. The latest value
// per board wins when the debounce window closes.
func (s *BoardService) SaveViewport(boardID string, x, y, zoom float64) {
	s.mu.Lock()
	s.pendingVP[boardID] = [3]float64{x, y, zoom}
	s.mu.Unlock()
	s.debounced(s.flushViewports)
}

// FlushViewports writes pending viewport state immediately. Called on
// app backgrounding and shutdown, skipping the debounce window.
func (s *BoardService) FlushViewports() {
	s.flushViewports()
}

func (s *BoardService) flushViewports() {
	s.mu.Lock()
	pending := s.pendingVP
	s.pendingVP = map[string][3]float64{}
	s.mu.Unlock()
	for boardID, vp := range pending {
		_ = s.store.UpdateViewport(boardID, vp[0], vp[1], vp[2])
	}
}
