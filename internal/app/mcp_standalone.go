package app

import (
	"context"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	mcpserver "slate/internal/mcp"
	"slate/internal/service"
	"slate/internal/storage"
)

// noopEmitter is a no-op EventEmitter used in MCP-only mode (no Wails frontend).
type noopEmitter struct{}

func (noopEmitter) Emit(_ context.Context, _ string, _ any) {}

// ServeMCP runs the app as a standalone MCP server on stdin/stdout with no GUI.
// It initializes storage, services, and runs the MCP server until interrupted.
func ServeMCP() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	homeDir, _ := os.UserHomeDir()
	dataDir := filepath.Join(homeDir, ".local", "share", "slate")
	dbPath := filepath.Join(dataDir, "slate.db")

	db, err := storage.New(dbPath, dataDir)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	emitter := noopEmitter{}

	itemsSvc := service.NewItemService(storage.NewItemStore(db), dataDir, emitter)
	strokesSvc := service.NewStrokeService(storage.NewStrokeStore(db), emitter)
	connsSvc := service.NewConnectionService(storage.NewConnectionStore(db), storage.NewItemStore(db), emitter)
	boardsSvc := service.NewBoardService(storage.NewBoardStore(db), itemsSvc, strokesSvc, connsSvc, emitter)

	mcpSrv := mcpserver.New(ctx, mcpserver.Deps{
		Emitter:     emitter,
		Boards:      boardsSvc,
		Items:       itemsSvc,
		Strokes:     strokesSvc,
		Connections: connsSvc,
		ApprovalDB:  db.Conn(), // Enable SQLite-based approval IPC
	})

	log.Println("[MCP] Starting standalone stdio server...")
	if err := mcpSrv.ServeStdio(); err != nil {
		log.Fatalf("MCP server error: %v", err)
	}
}
