package service_test

import (
	"context"
	"testing"

	"slate/internal/service"
)

// ─────────────────────────────────────────────────────────────
// Service unit tests
// Only tests paths that don't require a real SQLite store.
// ─────────────────────────────────────────────────────────────

func TestMockEmitter_RecordsEvents(t *testing.T) {
	emitter := &service.MockEmitter{}
	emitter.Emit(context.Background(), "board:changed", map[string]string{"boardId": "b1"})
	emitter.Emit(context.Background(), "canvas:changed", nil)

	if len(emitter.Events) != 2 {
		t.Fatalf("expected 2 recorded events, got %d", len(emitter.Events))
	}
	if emitter.Events[0].Event != "board:changed" {
		t.Errorf("unexpected first event: %q", emitter.Events[0].Event)
	}
}

func TestNewItemService(t *testing.T) {
	emitter := &service.MockEmitter{}
	svc := service.NewItemService(nil, "/tmp/test", emitter)
	if svc == nil {
		t.Fatal("expected non-nil ItemService")
	}
	_ = svc.UpdateItemPosition
	_ = svc.BatchUpdatePositions
	_ = svc.SetGroup
}

func TestNewStrokeService(t *testing.T) {
	emitter := &service.MockEmitter{}
	svc := service.NewStrokeService(nil, emitter)
	if svc == nil {
		t.Fatal("expected non-nil StrokeService")
	}
	_ = svc.UpdateStrokeOffset
}

func TestNewConnectionService(t *testing.T) {
	emitter := &service.MockEmitter{}
	svc := service.NewConnectionService(nil, nil, emitter)
	if svc == nil {
		t.Fatal("expected non-nil ConnectionService")
	}
	_ = svc.CreateConnection
}

func TestNewBoardService(t *testing.T) {
	emitter := &service.MockEmitter{}
	svc := service.NewBoardService(nil, nil, nil, nil, emitter)
	if svc == nil {
		t.Fatal("expected non-nil BoardService")
	}
	_ = svc.SaveViewport
	_ = svc.FlushViewports
}
