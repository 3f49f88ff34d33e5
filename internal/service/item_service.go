package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"slate/internal/domain"
	"slate/internal/storage"
)

// ─────────────────────────────────────────────────────────────
// Item Service — business logic for canvas items
// ─────────────────────────────────────────────────────────────

// ItemService manages the lifecycle of canvas items.
type ItemService struct {
	store   *storage.ItemStore
	dataDir string
	emitter EventEmitter
}

// NewItemService creates an ItemService.
func NewItemService(store *storage.ItemStore, dataDir string, emitter EventEmitter) *ItemService {
	return &ItemService{store: store, dataDir: dataDir, emitter: emitter}
}

// CreateItem inserts a new item. The caller provides the id so
// optimistic local state and the persisted record stay aligned.
func (s *ItemService) CreateItem(it *domain.Item) (*domain.Item, error) {
	if err := s.store.CreateItem(it); err != nil {
		return nil, fmt.Errorf("create item: %w", err)
	}
	return it, nil
}

// GetItem returns an item by ID.
func (s *ItemService) GetItem(id string) (*domain.Item, error) {
	return s.store.GetItem(id)
}

// ListItems returns all items for a board.
func (s *ItemService) ListItems(boardID string) ([]domain.Item, error) {
	return s.store.ListItems(boardID)
}

// UpdateItemPosition updates the position and size of an item.
func (s *ItemService) UpdateItemPosition(id string, x, y, width, height float64) error {
	it, err := s.store.GetItem(id)
	if err != nil {
		return err
	}
	it.X, it.Y, it.Width, it.Height = x, y, width, height
	return s.store.UpdateItem(it)
}

// UpdateItemContent updates the content of an item.
func (s *ItemService) UpdateItemContent(id, content string) error {
	it, err := s.store.GetItem(id)
	if err != nil {
		return err
	}
	it.Content = content
	return s.store.UpdateItem(it)
}

// UpdateItem updates an existing item directly.
func (s *ItemService) UpdateItem(it *domain.Item) error {
	return s.store.UpdateItem(it)
}

// BatchUpdatePositions commits one multi-item gesture in a single call.
func (s *ItemService) BatchUpdatePositions(positions []domain.ItemPosition) error {
	if err := s.store.BatchUpdatePositions(positions); err != nil {
		return fmt.Errorf("batch update positions: %w", err)
	}
	return nil
}

// BatchDelete removes items and strokes together; connections on the
// deleted items cascade in storage. Attachment files go with them.
func (s *ItemService) BatchDelete(itemIDs, strokeIDs []string) error {
	for _, id := range itemIDs {
		if it, err := s.store.GetItem(id); err == nil && it.FilePath != "" {
			_ = os.Remove(it.FilePath)
		}
	}
	if err := s.store.BatchDelete(itemIDs, strokeIDs); err != nil {
		return fmt.Errorf("batch delete: %w", err)
	}
	return nil
}

// SetGroup assigns or clears (nil) shared group membership.
func (s *ItemService) SetGroup(itemIDs, strokeIDs []string, groupID *string) error {
	if err := s.store.SetGroup(itemIDs, strokeIDs, groupID); err != nil {
		return fmt.Errorf("set group: %w", err)
	}
	return nil
}

// DeleteItem removes an item, its connections and any attachment file.
func (s *ItemService) DeleteItem(_ context.Context, id string) error {
	it, err := s.store.GetItem(id)
	if err != nil {
		return err
	}
	if it.FilePath != "" {
		_ = os.Remove(it.FilePath)
	}
	return s.store.DeleteItem(id)
}

// DeleteItemsByBoard removes all items for a board and their files.
func (s *ItemService) DeleteItemsByBoard(boardID string) error {
	items, _ := s.store.ListItems(boardID)
	for _, it := range items {
		if it.FilePath != "" {
			_ = os.Remove(it.FilePath)
		}
	}
	return s.store.DeleteItemsByBoard(boardID)
}

// SaveAttachment saves base64-encoded image or audio data to disk and
// updates the item's FilePath.
func (s *ItemService) SaveAttachment(itemID, dataURL, ext string) (string, error) {
	it, err := s.store.GetItem(itemID)
	if err != nil {
		return "", err
	}
	dir := filepath.Join(s.dataDir, it.BoardID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("mkdir for attachment: %w", err)
	}
	filePath := filepath.Join(dir, itemID+ext)
	data, err := decodeBase64Data(dataURL)
	if err != nil {
		return "", fmt.Errorf("decode attachment: %w", err)
	}
	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return "", fmt.Errorf("write attachment: %w", err)
	}
	it.FilePath = filePath
	if err := s.store.UpdateItem(it); err != nil {
		return "", err
	}
	return filePath, nil
}

// GetAttachmentData returns a base64 data URL for an item's attachment.
func (s *ItemService) GetAttachmentData(itemID string) (string, error) {
	it, err := s.store.GetItem(itemID)
	if err != nil {
		return "", err
	}
	if it.FilePath == "" {
		return "", nil
	}
	return readBase64File(it.FilePath)
}

// ── helpers ────────────────────────────────────────────────

func decodeBase64Data(dataURL string) ([]byte, error) {
	encoded := dataURL
	if i := strings.Index(dataURL, ";base64,"); i >= 0 {
		encoded = dataURL[i+len(";base64,"):]
	}
	return base64.StdEncoding.DecodeString(encoded)
}

func readBase64File(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	mime := "application/octet-stream"
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		mime = "image/png"
	case ".jpg", ".jpeg":
		mime = "image/jpeg"
	case ".m4a":
		mime = "audio/mp4"
	case ".wav":
		mime = "audio/wav"
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}
