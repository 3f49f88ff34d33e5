package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	wailsRuntime "github.com/wailsapp/wails/v2/pkg/runtime"
)

// boardWatcher polls the database for changes to the active board,
// detecting external modifications (e.g. from the MCP standalone process)
// and emitting Wails events so the frontend auto-refreshes.
type boardWatcher struct {
	ctx context.Context
	app *App
	mu  sync.Mutex
	// Active board tracking
	boardID    string
	notebookID string
	lastBoard  string // board updated_at fingerprint (viewport writes)
	lastEntity string // items+strokes+connections fingerprint
	// Board list tracking (sidebar refresh)
	lastBoardList string
	stopCh        chan struct{}
	// Track emitted approval IDs to avoid infinite re-emission
	emittedApprovals map[string]bool
}

func newBoardWatcher(ctx context.Context, app *App) *boardWatcher {
	return &boardWatcher{ctx: ctx, app: app, emittedApprovals: map[string]bool{}}
}

// SetBoard updates the watched board ID. Called when the user opens a board.
func (w *boardWatcher) SetBoard(boardID, notebookID string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.boardID = boardID
	w.notebookID = notebookID
	// Reset tracked state when switching boards
	w.lastBoard = ""
	w.lastEntity = ""
	w.lastBoardList = ""
}

// Start begins the polling loop. Should be called once on app startup.
func (w *boardWatcher) Start() {
	w.stopCh = make(chan struct{})
	go w.pollLoop()
}

// Stop terminates the polling loop.
func (w *boardWatcher) Stop() {
	if w.stopCh != nil {
		close(w.stopCh)
	}
}

func (w *boardWatcher) pollLoop() {
	ticker := time.NewTicker(2 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.check()
		case <-w.stopCh:
			return
		case <-w.ctx.Done():
			return
		}
	}
}

func (w *boardWatcher) check() {
	w.mu.Lock()
	boardID := w.boardID
	notebookID := w.notebookID
	w.mu.Unlock()

	if boardID == "" {
		return
	}

	db := w.app.db.Conn()

	// ── Check board updated_at ──────────────────────────
	var boardUpdated string
	err := db.QueryRow(`SELECT COALESCE(updated_at, '') FROM boards WHERE id = ?`, boardID).Scan(&boardUpdated)
	if err != nil {
		return
	}

	// ── Check items/strokes/connections counts and MAX(updated_at) ──
	var entityFingerprint string
	for _, table := range []string{"items", "strokes", "connections"} {
		var count int
		var maxUpdated string
		err = db.QueryRow(
			`SELECT COUNT(*), COALESCE(MAX(updated_at), '') FROM `+table+` WHERE board_id = ?`, boardID,
		).Scan(&count, &maxUpdated)
		if err != nil {
			return
		}
		entityFingerprint += fmt.Sprintf("%d:%s;", count, maxUpdated)
	}

	// ── Check board list changes (sidebar) ──────────────
	var boardListFingerprint string
	if notebookID != "" {
		var boardCount int
		var boardsMaxUpdated string
		err = db.QueryRow(
			`SELECT COUNT(*), COALESCE(MAX(updated_at), '') FROM boards WHERE notebook_id = ?`, notebookID,
		).Scan(&boardCount, &boardsMaxUpdated)
		if err == nil {
			boardListFingerprint = fmt.Sprintf("%d:%s", boardCount, boardsMaxUpdated)
		}
	}

	// ── Build fingerprints and compare ──────────────────
	w.mu.Lock()
	boardChanged := w.lastBoard != "" && w.lastBoard != boardUpdated
	entitiesChanged := w.lastEntity != "" && w.lastEntity != entityFingerprint
	boardsChanged := w.lastBoardList != "" && boardListFingerprint != "" && w.lastBoardList != boardListFingerprint
	w.lastBoard = boardUpdated
	w.lastEntity = entityFingerprint
	if boardListFingerprint != "" {
		w.lastBoardList = boardListFingerprint
	}
	w.mu.Unlock()

	// ── Emit events ────────────────────────────────────
	// The engine is confined to the binding goroutine, so the watcher
	// never touches it directly: the frontend reacts to these events by
	// calling RefreshCanvas, which applies the external writes there.
	if entitiesChanged {
		wailsRuntime.EventsEmit(w.ctx, "mcp:canvas-changed", map[string]string{"boardId": boardID})
	}
	if boardChanged && !entitiesChanged {
		wailsRuntime.EventsEmit(w.ctx, "mcp:board-changed", map[string]string{"boardId": boardID})
	}
	if boardsChanged {
		wailsRuntime.EventsEmit(w.ctx, "mcp:boards-changed", map[string]string{"notebookId": notebookID})
	}

	// ── Check pending MCP approvals (cross-process IPC) ─
	rows, err := db.Query(`SELECT id, tool, description, created_at, metadata FROM mcp_approvals WHERE status = 'pending'`)
	if err == nil {
		for rows.Next() {
			var id, tool, desc, createdAt, metadata string
			if rows.Scan(&id, &tool, &desc, &createdAt, &metadata) == nil {
				w.mu.Lock()
				alreadySent := w.emittedApprovals[id]
				if !alreadySent {
					w.emittedApprovals[id] = true
				}
				w.mu.Unlock()
				if !alreadySent {
					wailsRuntime.EventsEmit(w.ctx, "mcp:approval-required", map[string]string{
						"id":          id,
						"tool":        tool,
						"description": desc,
						"createdAt":   createdAt,
						"metadata":    metadata,
					})
				}
			}
		}
		rows.Close()
	}

	// Clean up tracking for resolved/deleted approvals (standalone MCP deletes after reading)
	w.mu.Lock()
	for id := range w.emittedApprovals {
		var count int
		if db.QueryRow(`SELECT COUNT(*) FROM mcp_approvals WHERE id = ? AND status = 'pending'`, id).Scan(&count) == nil && count == 0 {
			delete(w.emittedApprovals, id)
		}
	}
	w.mu.Unlock()
}

// ResolveApproval records the user's decision on a pending MCP action.
// The standalone MCP process polls the row and deletes it after reading.
func (a *App) ResolveApproval(id string, approved bool) error {
	status := "rejected"
	if approved {
		status = "approved"
	}
	_, err := a.db.Conn().Exec(`UPDATE mcp_approvals SET status = ? WHERE id = ?`, status, id)
	return err
}
