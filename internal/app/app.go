package app

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/robfig/cron/v3"
	wailsRuntime "github.com/wailsapp/wails/v2/pkg/runtime"

	"slate/internal/canvas"
	"slate/internal/service"
	"slate/internal/storage"
)

// App is the main Wails application struct.
// All exported methods are available as Wails bindings.
type App struct {
	ctx context.Context

	db      *storage.DB
	boards  *service.BoardService
	items   *service.ItemService
	strokes *service.StrokeService
	conns   *service.ConnectionService

	// Interaction engine for the currently open board. Nil until the
	// frontend calls OpenBoard. All engine calls arrive on the Wails
	// binding goroutine, which gives the engine its single-thread model.
	engine  *canvas.Engine
	gateway *canvasGateway

	watcher *boardWatcher
	files   *attachmentWatcher
	jobs    *cron.Cron
}

// New creates a new App.
func New() *App {
	return &App{}
}

// Emit implements service.EventEmitter by delegating to the Wails
// event bus.
func (a *App) Emit(_ context.Context, event string, data any) {
	if a.ctx == nil {
		return
	}
	wailsRuntime.EventsEmit(a.ctx, event, data)
}

// Startup is called when the app starts.
func (a *App) Startup(ctx context.Context) {
	a.ctx = ctx

	homeDir, _ := os.UserHomeDir()
	dataDir := filepath.Join(homeDir, ".local", "share", "slate")
	dbPath := filepath.Join(dataDir, "slate.db")

	db, err := storage.New(dbPath, dataDir)
	if err != nil {
		wailsRuntime.LogFatalf(ctx, "Failed to open database: %v", err)
		return
	}
	a.db = db

	a.items = service.NewItemService(storage.NewItemStore(db), dataDir, a)
	a.strokes = service.NewStrokeService(storage.NewStrokeStore(db), a)
	a.conns = service.NewConnectionService(storage.NewConnectionStore(db), storage.NewItemStore(db), a)
	a.boards = service.NewBoardService(storage.NewBoardStore(db), a.items, a.strokes, a.conns, a)

	a.watcher = newBoardWatcher(ctx, a)
	a.watcher.Start()

	files, err := newAttachmentWatcher(ctx, dataDir)
	if err != nil {
		wailsRuntime.LogErrorf(ctx, "Failed to watch attachments: %v", err)
	} else {
		a.files = files
	}

	a.jobs = cron.New()
	a.jobs.AddFunc("@daily", a.runMaintenance)
	a.jobs.Start()
}

// Shutdown is called when the app is closing.
func (a *App) Shutdown(ctx context.Context) {
	if a.jobs != nil {
		a.jobs.Stop()
	}
	if a.watcher != nil {
		a.watcher.Stop()
	}
	if a.files != nil {
		a.files.Close()
	}
	if a.boards != nil {
		a.boards.FlushViewports()
	}
	if a.db != nil {
		a.db.Close()
	}
}

// runMaintenance removes attachment files whose item no longer exists and
// compacts the database. Scheduled daily; cheap enough to run on demand too.
func (a *App) runMaintenance() {
	removed := a.sweepOrphanedAttachments()
	if err := a.db.Vacuum(); err != nil {
		wailsRuntime.LogErrorf(a.ctx, "[maintenance] vacuum: %v", err)
	}
	wailsRuntime.LogInfof(a.ctx, "[maintenance] done, %d orphaned attachments removed", removed)
}

func (a *App) sweepOrphanedAttachments() int {
	referenced := map[string]bool{}
	rows, err := a.db.Conn().Query(`SELECT file_path FROM items WHERE file_path != ''`)
	if err != nil {
		return 0
	}
	for rows.Next() {
		var p string
		if rows.Scan(&p) == nil {
			referenced[p] = true
		}
	}
	rows.Close()

	removed := 0
	filepath.WalkDir(a.db.DataDir(), func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		switch ext {
		case ".png", ".jpg", ".jpeg", ".m4a", ".wav":
		default:
			return nil
		}
		if !referenced[path] {
			if os.Remove(path) == nil {
				removed++
			}
		}
		return nil
	})
	return removed
}
