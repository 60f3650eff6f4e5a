package ui

import (
	"fmt"
	"image"
	"path/filepath"
	"time"

	"TraceBoard/internal/export"

	"fyne.io/fyne/v2"
)

// Export writes the current trace as a PDF worksheet into the export
// directory and returns its path.
func (h *Host) Export() (string, error) {
	dir := h.opts.ExportDir
	if dir == "" {
		dir = "."
	}
	path := filepath.Join(dir, fmt.Sprintf("traceboard-%s.pdf", time.Now().Format("20060102-150405")))

	w, ht := h.board.Raster().Size()
	sheet := export.Sheet{
		Title:      "TraceBoard " + time.Now().Format("2006-01-02"),
		Label:      h.DisplayText(),
		FontPath:   h.opts.ExportFont,
		Background: h.captureTracing(),
		Strokes:    h.board.Surface().Strokes(),
		Width:      w,
		Height:     ht,
	}
	if err := export.Worksheet(path, sheet); err != nil {
		return "", err
	}
	logger.Infof("Exported %d strokes to %s", len(sheet.Strokes), path)
	return path, nil
}

// captureTracing grabs the guide text and ink as rendered on screen.
func (h *Host) captureTracing() image.Image {
	c := h.window.Canvas()
	shot := c.Capture()
	if shot == nil {
		return nil
	}
	sub, ok := shot.(interface {
		SubImage(r image.Rectangle) image.Image
	})
	if !ok {
		return nil
	}

	pos := fyne.CurrentApp().Driver().AbsolutePositionForObject(h.tracing)
	size := h.tracing.Size()
	scale := c.Scale()
	rect := image.Rect(
		int(pos.X*scale), int(pos.Y*scale),
		int((pos.X+size.Width)*scale), int((pos.Y+size.Height)*scale),
	).Intersect(shot.Bounds())
	if rect.Empty() {
		return nil
	}
	return sub.SubImage(rect)
}
