package app

import (
	wailsRuntime "github.com/wailsapp/wails/v2/pkg/runtime"
)

// ============================================================
// Attachments (image/audio files on disk)
// ============================================================

// SaveAttachment writes a base64 data URL to disk next to the board's
// other files and points the item at it. Large payloads never touch the
// database content column.
func (a *App) SaveAttachment(itemID, dataURL, ext string) (string, error) {
	path, err := a.items.SaveAttachment(itemID, dataURL, ext)
	if err != nil {
		return "", err
	}
	a.refreshCanvas()
	return path, nil
}

// GetAttachmentData reads an item's attachment file and returns it as a
// base64 data URL. Called lazily by the frontend per image/audio item.
func (a *App) GetAttachmentData(itemID string) (string, error) {
	return a.items.GetAttachmentData(itemID)
}

// PickImageFile opens a native file picker for selecting an image.
func (a *App) PickImageFile() (string, error) {
	return wailsRuntime.OpenFileDialog(a.ctx, wailsRuntime.OpenDialogOptions{
		Title: "Select Image",
		Filters: []wailsRuntime.FileFilter{
			{DisplayName: "Images", Pattern: "*.png;*.jpg;*.jpeg"},
			{DisplayName: "All Files", Pattern: "*.*"},
		},
	})
}

// SetMeasuredTextSize reports the rendered size of a text item so
// zero-size items become hit-testable and the size survives reload.
func (a *App) SetMeasuredTextSize(itemID string, width, height float64) CanvasView {
	if a.engine != nil {
		a.engine.SetMeasuredSize(itemID, width, height)
	}
	return a.view()
}
