package ui

import (
	"testing"

	"TraceBoard/internal/trace"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mouse(x, y float32, button desktop.MouseButton) *desktop.MouseEvent {
	return &desktop.MouseEvent{
		PointEvent: fyne.PointEvent{Position: fyne.NewPos(x, y)},
		Button:     button,
	}
}

func drag(x, y, dx, dy float32) *fyne.DragEvent {
	return &fyne.DragEvent{
		PointEvent: fyne.PointEvent{Position: fyne.NewPos(x, y)},
		Dragged:    fyne.NewDelta(dx, dy),
	}
}

func newTestBoard(t *testing.T) *TraceWidget {
	t.Helper()
	a := test.NewApp()
	t.Cleanup(a.Quit)

	b := NewTraceWidget(trace.NewSurface(), 6)
	w := test.NewWindow(b)
	t.Cleanup(w.Close)
	w.Resize(fyne.NewSize(300, 200))
	b.Resize(fyne.NewSize(300, 200))
	return b
}

func TestTraceWidget_MouseStroke(t *testing.T) {
	b := newTestBoard(t)
	w, h := b.Raster().Size()
	require.Equal(t, 300, w)
	require.Equal(t, 200, h)

	var changes []bool
	b.Surface().OnDrawingChange = func(v bool) { changes = append(changes, v) }

	b.MouseDown(mouse(20, 50, desktop.MouseButtonPrimary))
	b.Dragged(drag(60, 50, 40, 0))
	b.MouseUp(mouse(60, 50, desktop.MouseButtonPrimary))

	assert.True(t, b.Raster().Inked(40, 50))
	assert.Equal(t, []bool{true}, changes)
	require.Len(t, b.Surface().Strokes(), 1)
	assert.False(t, b.Surface().State().Drawing)

	b.Clear()
	assert.False(t, b.Raster().Inked(40, 50))
	assert.Equal(t, []bool{true, false}, changes)
}

func TestTraceWidget_SecondaryButtonIgnored(t *testing.T) {
	b := newTestBoard(t)
	b.MouseDown(mouse(20, 50, desktop.MouseButtonSecondary))
	assert.False(t, b.Surface().State().Drawing)
	assert.False(t, b.Surface().HasDrawing())
}

func TestTraceWidget_TouchDragStartsStroke(t *testing.T) {
	b := newTestBoard(t)
	b.Dragged(drag(50, 50, 10, 0))
	b.DragEnd()

	strokes := b.Surface().Strokes()
	require.Len(t, strokes, 1)
	assert.Equal(t, trace.Point{X: 40, Y: 50}, strokes[0].Points[0])
	assert.True(t, b.Raster().Inked(45, 50))
}

func TestTraceWidget_PalmJumpNotDrawn(t *testing.T) {
	b := newTestBoard(t)
	b.MouseDown(mouse(10, 100, desktop.MouseButtonPrimary))
	b.Dragged(drag(250, 100, 240, 0))
	b.MouseUp(mouse(250, 100, desktop.MouseButtonPrimary))

	assert.False(t, b.Raster().Inked(130, 100))
	assert.Empty(t, b.Surface().Strokes())
}

func TestTraceWidget_ScaleMapsToDevicePixels(t *testing.T) {
	b := newTestBoard(t)
	b.SetScale(2)

	w, h := b.Raster().Size()
	assert.Equal(t, 600, w)
	assert.Equal(t, 400, h)
	assert.Equal(t, float32(160), b.Surface().Threshold())

	b.MouseDown(mouse(10, 10, desktop.MouseButtonPrimary))
	b.Dragged(drag(20, 10, 10, 0))
	b.MouseUp(mouse(20, 10, desktop.MouseButtonPrimary))
	strokes := b.Surface().Strokes()
	require.Len(t, strokes, 1)
	assert.Equal(t, []trace.Point{{X: 20, Y: 20}, {X: 40, Y: 20}}, strokes[0].Points)
}
