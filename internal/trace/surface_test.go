package trace

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder is a Canvas that remembers what it was asked to do.
type recorder struct {
	w, h        int
	lines       []Segment
	clears      int
	snapshotErr error
	restoreErr  error
	restored    image.Image
}

func (r *recorder) Size() (int, int) { return r.w, r.h }
func (r *recorder) Line(s Segment)   { r.lines = append(r.lines, s) }
func (r *recorder) Clear()           { r.clears++; r.lines = nil }
func (r *recorder) Resize(w, h int)  { r.w, r.h = w, h }

func (r *recorder) Snapshot() (image.Image, error) {
	if r.snapshotErr != nil {
		return nil, r.snapshotErr
	}
	return image.NewRGBA(image.Rect(0, 0, r.w, r.h)), nil
}

func (r *recorder) Restore(img image.Image) error {
	if r.restoreErr != nil {
		return r.restoreErr
	}
	r.restored = img
	return nil
}

func newAttached(opts ...Option) (*Surface, *recorder) {
	rec := &recorder{w: 600, h: 150}
	s := NewSurface(opts...)
	s.Attach(rec)
	return s, rec
}

func TestSurface_ShortSegmentDrawsExactlyOneLine(t *testing.T) {
	tests := []struct {
		name string
		to   Point
	}{
		{"Tiny", Point{X: 11, Y: 10}},
		{"Diagonal", Point{X: 50, Y: 50}},
		{"AtThreshold", Point{X: 90, Y: 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, rec := newAttached()
			s.Begin(Point{X: 10, Y: 10})
			s.Extend(tt.to)

			require.Len(t, rec.lines, 1)
			assert.Equal(t, Segment{From: Point{X: 10, Y: 10}, To: tt.to}, rec.lines[0])
		})
	}
}

func TestSurface_LongSegmentOnlyMovesPosition(t *testing.T) {
	s, rec := newAttached()
	s.Begin(Point{X: 0, Y: 0})
	s.Extend(Point{X: 200, Y: 0})

	assert.Empty(t, rec.lines)
	st := s.State()
	require.NotNil(t, st.Last)
	assert.Equal(t, Point{X: 200, Y: 0}, *st.Last)

	s.Extend(Point{X: 210, Y: 0})
	require.Len(t, rec.lines, 1)
	assert.Equal(t, Point{X: 200, Y: 0}, rec.lines[0].From)
}

func TestSurface_PalmRejectionDisabled(t *testing.T) {
	s, rec := newAttached(WithPalmRejection(false))
	s.Begin(Point{X: 0, Y: 0})
	s.Extend(Point{X: 500, Y: 100})
	assert.Len(t, rec.lines, 1)
}

func TestSurface_ThresholdScales(t *testing.T) {
	s, rec := newAttached(WithScale(2))
	assert.Equal(t, float32(160), s.Threshold())

	s.Begin(Point{X: 0, Y: 0})
	s.Extend(Point{X: 150, Y: 0})
	assert.Len(t, rec.lines, 1)

	s2, _ := newAttached(WithMaxSegment(20))
	assert.Equal(t, float32(20), s2.Threshold())
}

func TestSurface_SetScaleWhileDrawing(t *testing.T) {
	s, _ := newAttached()
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 1; i <= 100; i++ {
			s.SetScale(float32(i%3 + 1))
		}
	}()

	s.Begin(Point{X: 0, Y: 0})
	for i := 0; i < 100; i++ {
		s.Extend(Point{X: float32(i), Y: 0})
		assert.GreaterOrEqual(t, s.Threshold(), float32(DefaultMaxSegment))
	}
	s.End()
	<-done
	assert.Contains(t, []float32{80, 160, 240}, s.Threshold())
}

func TestSurface_ExtendWithoutBeginIsIgnored(t *testing.T) {
	s, rec := newAttached()
	s.Extend(Point{X: 1, Y: 1})
	assert.Empty(t, rec.lines)

	s.Begin(Point{X: 0, Y: 0})
	s.End()
	s.Extend(Point{X: 2, Y: 2})
	assert.Empty(t, rec.lines)
}

func TestSurface_EndKeepsInk(t *testing.T) {
	s, rec := newAttached()
	s.Begin(Point{X: 0, Y: 0})
	s.Extend(Point{X: 5, Y: 5})
	s.End()

	st := s.State()
	assert.False(t, st.Drawing)
	assert.Nil(t, st.Last)
	assert.True(t, st.HasDrawing)
	assert.Len(t, rec.lines, 1)
	assert.Zero(t, rec.clears)
}

func TestSurface_DrawingChangeNotifications(t *testing.T) {
	s, _ := newAttached()
	var got []bool
	s.OnDrawingChange = func(v bool) { got = append(got, v) }

	s.Begin(Point{X: 0, Y: 0})
	s.Extend(Point{X: 3, Y: 3})
	s.End()
	s.Begin(Point{X: 10, Y: 10})
	s.End()
	assert.Equal(t, []bool{true}, got, "only the first ink on an empty surface notifies")

	s.Clear()
	assert.Equal(t, []bool{true, false}, got)
	assert.False(t, s.HasDrawing())

	s.Clear()
	assert.Equal(t, []bool{true, false, false}, got)
}

func TestSurface_ClearAfterAnySequence(t *testing.T) {
	sequences := map[string]func(s *Surface){
		"Nothing":   func(s *Surface) {},
		"BeginOnly": func(s *Surface) { s.Begin(Point{X: 1, Y: 1}) },
		"MidStroke": func(s *Surface) {
			s.Begin(Point{X: 1, Y: 1})
			s.Extend(Point{X: 4, Y: 4})
		},
		"Finished": func(s *Surface) {
			s.Begin(Point{X: 1, Y: 1})
			s.Extend(Point{X: 4, Y: 4})
			s.End()
		},
	}

	for name, seq := range sequences {
		t.Run(name, func(t *testing.T) {
			s, rec := newAttached()
			var last *bool
			s.OnDrawingChange = func(v bool) { last = &v }
			cleared := false
			s.OnClear = func() { cleared = true }

			seq(s)
			s.Clear()

			require.NotNil(t, last)
			assert.False(t, *last)
			assert.False(t, s.HasDrawing())
			assert.True(t, cleared)
			assert.Equal(t, 1, rec.clears)
			assert.Empty(t, s.Strokes())
		})
	}
}

func TestSurface_OperationsBeforeAttachAreNoops(t *testing.T) {
	s := NewSurface()
	called := false
	s.OnDrawingChange = func(bool) { called = true }

	assert.NotPanics(t, func() {
		s.Begin(Point{X: 1, Y: 1})
		s.Extend(Point{X: 2, Y: 2})
		s.End()
		s.Clear()
		s.Resize(10, 10)
	})
	assert.False(t, called)
	assert.Equal(t, State{}, s.State())
}

func TestSurface_StrokeLog(t *testing.T) {
	s, _ := newAttached()
	var segs []Segment
	s.OnSegment = func(seg Segment) { segs = append(segs, seg) }

	s.Begin(Point{X: 0, Y: 0})
	s.Extend(Point{X: 10, Y: 0})
	s.Extend(Point{X: 20, Y: 0})
	s.Extend(Point{X: 300, Y: 0}) // rejected, splits the stroke
	s.Extend(Point{X: 310, Y: 0})
	s.End()

	strokes := s.Strokes()
	require.Len(t, strokes, 2)
	assert.Equal(t, []Point{{X: 0}, {X: 10}, {X: 20}}, strokes[0].Points)
	assert.Equal(t, []Point{{X: 300}, {X: 310}}, strokes[1].Points)
	assert.NotEqual(t, strokes[0].ID, strokes[1].ID)
	assert.Len(t, segs, 3)

	// a tap without movement leaves no stroke behind
	s.Begin(Point{X: 50, Y: 50})
	s.End()
	assert.Len(t, s.Strokes(), 2)
}

func TestSurface_Resize(t *testing.T) {
	t.Run("SameSizeIsIgnored", func(t *testing.T) {
		s, rec := newAttached()
		s.Begin(Point{})
		s.Resize(600, 150)
		assert.Nil(t, rec.restored)
	})

	t.Run("PreservesPixels", func(t *testing.T) {
		s, rec := newAttached()
		s.Begin(Point{})
		s.Resize(800, 200)
		assert.Equal(t, 800, rec.w)
		assert.Equal(t, 200, rec.h)
		assert.NotNil(t, rec.restored)
	})

	t.Run("EmptySurfaceSkipsSnapshot", func(t *testing.T) {
		s, rec := newAttached()
		s.Resize(800, 200)
		assert.Equal(t, 800, rec.w)
		assert.Nil(t, rec.restored)
	})

	t.Run("SnapshotFailureIsSwallowed", func(t *testing.T) {
		s, rec := newAttached()
		rec.snapshotErr = errEmptyCanvas
		s.Begin(Point{})
		assert.NotPanics(t, func() { s.Resize(30, 40) })
		assert.Equal(t, 30, rec.w)
		assert.Nil(t, rec.restored)
	})

	t.Run("RestoreFailureIsSwallowed", func(t *testing.T) {
		s, rec := newAttached()
		rec.restoreErr = errEmptyImage
		s.Begin(Point{})
		assert.NotPanics(t, func() { s.Resize(30, 40) })
		assert.Equal(t, 40, rec.h)
	})
}
