package trace

import (
	"sync"

	"github.com/google/uuid"
	"github.com/kataras/golog"
)

// DefaultMaxSegment is the palm-rejection distance at scale 1.
const DefaultMaxSegment float32 = 80

var logger = golog.Child("[trace]")

// Option configures a Surface.
type Option func(*Surface)

// WithPalmRejection toggles the long-segment filter.
func WithPalmRejection(on bool) Option {
	return func(s *Surface) { s.palmRejection = on }
}

// WithMaxSegment sets the palm-rejection distance in logical pixels.
func WithMaxSegment(d float32) Option {
	return func(s *Surface) {
		if d > 0 {
			s.maxSegment = d
		}
	}
}

// WithScale multiplies the palm-rejection distance, e.g. by the device scale factor.
func WithScale(scale float32) Option {
	return func(s *Surface) {
		if scale > 0 {
			s.scale = scale
		}
	}
}

// Surface turns pointer input into ink on a Canvas. It is meant to be driven
// from a single event loop; the mutex only guards reads from other goroutines
// such as the mirror snapshot.
type Surface struct {
	mu            sync.Mutex
	canvas        Canvas
	state         State
	strokes       []Stroke
	current       *Stroke
	palmRejection bool
	maxSegment    float32
	scale         float32

	OnDrawingChange func(hasDrawing bool)
	OnSegment       func(seg Segment)
	OnClear         func()
}

func NewSurface(opts ...Option) *Surface {
	s := &Surface{
		palmRejection: true,
		maxSegment:    DefaultMaxSegment,
		scale:         1,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Attach binds the pixel backend. Every operation before Attach is a no-op.
func (s *Surface) Attach(c Canvas) {
	s.mu.Lock()
	s.canvas = c
	s.mu.Unlock()
}

// SetScale updates the palm-rejection multiplier, e.g. when the window
// moves to a screen with a different scale factor.
func (s *Surface) SetScale(scale float32) {
	if scale <= 0 {
		return
	}
	s.mu.Lock()
	s.scale = scale
	s.mu.Unlock()
}

// Threshold is the effective palm-rejection distance in canvas pixels.
func (s *Surface) Threshold() float32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.threshold()
}

// threshold requires s.mu.
func (s *Surface) threshold() float32 {
	return s.maxSegment * s.scale
}

func (s *Surface) Begin(p Point) {
	s.mu.Lock()
	if s.canvas == nil {
		s.mu.Unlock()
		return
	}
	s.state.Drawing = true
	last := p
	s.state.Last = &last
	s.current = &Stroke{ID: uuid.NewString(), Points: []Point{p}}

	first := !s.state.HasDrawing
	s.state.HasDrawing = true
	cb := s.OnDrawingChange
	s.mu.Unlock()

	if first && cb != nil {
		cb(true)
	}
}

func (s *Surface) Extend(p Point) {
	s.mu.Lock()
	if s.canvas == nil || !s.state.Drawing || s.state.Last == nil {
		s.mu.Unlock()
		return
	}
	from := *s.state.Last
	next := p
	s.state.Last = &next

	// a jump this long is a resting hand, not a pen
	if s.palmRejection && from.Distance(p) > s.threshold() {
		s.finishStroke()
		s.current = &Stroke{ID: uuid.NewString(), Points: []Point{p}}
		s.mu.Unlock()
		return
	}

	seg := Segment{From: from, To: p}
	s.canvas.Line(seg)
	if s.current != nil {
		s.current.Points = append(s.current.Points, p)
	}
	cb := s.OnSegment
	s.mu.Unlock()

	if cb != nil {
		cb(seg)
	}
}

func (s *Surface) End() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.canvas == nil {
		return
	}
	s.state.Drawing = false
	s.state.Last = nil
	s.finishStroke()
}

func (s *Surface) finishStroke() {
	if s.current != nil && len(s.current.Points) > 1 {
		s.strokes = append(s.strokes, *s.current)
	}
	s.current = nil
}

// Clear erases all ink and always reports HasDrawing=false to the listener.
func (s *Surface) Clear() {
	s.mu.Lock()
	if s.canvas == nil {
		s.mu.Unlock()
		return
	}
	s.canvas.Clear()
	s.state.HasDrawing = false
	s.strokes = nil
	if s.current != nil && s.state.Last != nil {
		s.current = &Stroke{ID: uuid.NewString(), Points: []Point{*s.state.Last}}
	}
	change, cleared := s.OnDrawingChange, s.OnClear
	s.mu.Unlock()

	if change != nil {
		change(false)
	}
	if cleared != nil {
		cleared()
	}
}

// Resize changes the canvas size, keeping existing pixels when possible.
func (s *Surface) Resize(w, h int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.canvas == nil {
		return
	}
	cw, ch := s.canvas.Size()
	if cw == w && ch == h {
		return
	}

	if !s.state.HasDrawing {
		s.canvas.Resize(w, h)
		return
	}
	snap, err := s.canvas.Snapshot()
	if err != nil {
		logger.Warnf("Failed to save canvas data: %v", err)
		snap = nil
	}
	s.canvas.Resize(w, h)
	if snap == nil {
		return
	}
	if err := s.canvas.Restore(snap); err != nil {
		logger.Warnf("Failed to restore canvas data: %v", err)
	}
}

func (s *Surface) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state
	if st.Last != nil {
		last := *st.Last
		st.Last = &last
	}
	return st
}

func (s *Surface) HasDrawing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.HasDrawing
}

// Strokes returns a copy of the finished strokes plus the one in progress.
func (s *Surface) Strokes() []Stroke {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Stroke, 0, len(s.strokes)+1)
	for _, st := range s.strokes {
		out = append(out, Stroke{ID: st.ID, Points: append([]Point(nil), st.Points...)})
	}
	if s.current != nil && len(s.current.Points) > 1 {
		out = append(out, Stroke{ID: s.current.ID, Points: append([]Point(nil), s.current.Points...)})
	}
	return out
}
