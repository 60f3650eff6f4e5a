package trace

import (
	"image"
	"math"
)

// Point is a position in canvas pixel space.
type Point struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
}

// Distance returns the euclidean distance between p and q.
func (p Point) Distance(q Point) float32 {
	dx := float64(q.X - p.X)
	dy := float64(q.Y - p.Y)
	return float32(math.Sqrt(dx*dx + dy*dy))
}

// Segment is one rendered piece of ink.
type Segment struct {
	From Point `json:"from"`
	To   Point `json:"to"`
}

// Stroke is a single pen-down to pen-up gesture. Points holds the start
// point followed by the end of every segment that was actually rendered.
type Stroke struct {
	ID     string  `json:"id"`
	Points []Point `json:"points"`
}

// State is the surface's drawing state.
type State struct {
	Drawing    bool
	Last       *Point
	HasDrawing bool
}

// Canvas is the pixel backend a Surface draws onto.
type Canvas interface {
	Size() (w, h int)
	Line(s Segment)
	Clear()
	Snapshot() (image.Image, error)
	Resize(w, h int)
	Restore(img image.Image) error
}
