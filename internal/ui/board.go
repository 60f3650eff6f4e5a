package ui

import (
	"image/color"

	"TraceBoard/internal/trace"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

// TraceWidget is the transparent drawing layer laid over the guide text.
// Pointer events go straight to the surface; the raster is sized in device
// pixels so the palm-rejection distance means the same on every screen.
type TraceWidget struct {
	widget.BaseWidget
	surface *trace.Surface
	raster  *trace.Raster
	img     *canvas.Image
	scale   float32
}

var _ fyne.Widget = (*TraceWidget)(nil)
var _ fyne.Draggable = (*TraceWidget)(nil)
var _ desktop.Mouseable = (*TraceWidget)(nil)

func NewTraceWidget(s *trace.Surface, strokeWidth float32) *TraceWidget {
	b := &TraceWidget{
		surface: s,
		raster:  trace.NewRaster(0, 0, color.Black, strokeWidth),
		scale:   1,
	}
	s.Attach(b.raster)
	b.img = canvas.NewImageFromImage(b.raster.Image())
	b.img.FillMode = canvas.ImageFillStretch
	b.img.ScaleMode = canvas.ImageScaleFastest
	b.ExtendBaseWidget(b)
	return b
}

func (b *TraceWidget) Surface() *trace.Surface { return b.surface }

// Raster exposes the pixel backend, mainly for export and tests.
func (b *TraceWidget) Raster() *trace.Raster { return b.raster }

// SetScale sets device pixels per Fyne unit. The surface's palm-rejection
// distance follows it.
func (b *TraceWidget) SetScale(scale float32) {
	if scale <= 0 {
		return
	}
	b.scale = scale
	b.surface.SetScale(scale)
	b.resizeRaster(b.Size())
}

func (b *TraceWidget) toPoint(pos fyne.Position) trace.Point {
	return trace.Point{X: pos.X * b.scale, Y: pos.Y * b.scale}
}

// Clear erases the ink; safe to call from a button handler.
func (b *TraceWidget) Clear() {
	b.surface.Clear()
	b.img.Refresh()
}

func (b *TraceWidget) MouseDown(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	b.surface.Begin(b.toPoint(e.Position))
	b.img.Refresh()
}

func (b *TraceWidget) MouseUp(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	b.surface.End()
}

// Dragged keeps delivering positions after the pointer leaves the widget,
// which is what keeps a stroke alive outside the tracing area.
func (b *TraceWidget) Dragged(e *fyne.DragEvent) {
	if !b.surface.State().Drawing {
		// touch drivers deliver drags without a MouseDown
		start := e.Position.Subtract(e.Dragged)
		b.surface.Begin(b.toPoint(start))
	}
	b.surface.Extend(b.toPoint(e.Position))
	b.img.Refresh()
}

func (b *TraceWidget) DragEnd() {
	b.surface.End()
}

func (b *TraceWidget) resizeRaster(size fyne.Size) {
	b.surface.Resize(int(size.Width*b.scale), int(size.Height*b.scale))
	b.img.Image = b.raster.Image()
	b.img.Refresh()
}

func (b *TraceWidget) CreateRenderer() fyne.WidgetRenderer {
	return &traceWidgetRenderer{board: b}
}

type traceWidgetRenderer struct {
	board *TraceWidget
}

func (r *traceWidgetRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.board.img}
}

func (r *traceWidgetRenderer) Layout(size fyne.Size) {
	r.board.img.Resize(size)
	r.board.resizeRaster(size)
}

func (r *traceWidgetRenderer) MinSize() fyne.Size {
	return fyne.NewSize(600, 150)
}

func (r *traceWidgetRenderer) Refresh() {
	r.board.img.Refresh()
}

func (r *traceWidgetRenderer) Destroy() {}

func (b *TraceWidget) MouseIn(*desktop.MouseEvent)    {}
func (b *TraceWidget) MouseOut()                      {}
func (b *TraceWidget) MouseMoved(*desktop.MouseEvent) {}
