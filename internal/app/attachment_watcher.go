package app

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	wailsRuntime "github.com/wailsapp/wails/v2/pkg/runtime"
)

// attachmentWatcher watches the data directory for attachment files being
// replaced outside the app (image edited in an external tool, file synced
// in) and tells the frontend to re-read them.
type attachmentWatcher struct {
	ctx     context.Context
	watcher *fsnotify.Watcher
}

func newAttachmentWatcher(ctx context.Context, dataDir string) (*attachmentWatcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(dataDir); err != nil {
		fw.Close()
		return nil, err
	}

	w := &attachmentWatcher{ctx: ctx, watcher: fw}
	go w.loop()
	return w, nil
}

func (w *attachmentWatcher) Close() error {
	return w.watcher.Close()
}

func (w *attachmentWatcher) loop() {
	for {
		select {
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			// Board attachment subdirectories are created lazily; watch
			// them as they appear.
			if ev.Has(fsnotify.Create) {
				if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
					w.watcher.Add(ev.Name)
					continue
				}
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			if !isAttachmentFile(ev.Name) {
				continue
			}
			// Attachment files are named <itemID><ext>.
			base := filepath.Base(ev.Name)
			itemID := strings.TrimSuffix(base, filepath.Ext(base))
			wailsRuntime.EventsEmit(w.ctx, "attachment:changed", map[string]string{
				"itemId": itemID,
				"path":   ev.Name,
			})
		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
		case <-w.ctx.Done():
			return
		}
	}
}

func isAttachmentFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".jpg", ".jpeg", ".m4a", ".wav":
		return true
	}
	return false
}
