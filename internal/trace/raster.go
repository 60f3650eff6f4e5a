package trace

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/vector"
)

const (
	errEmptyCanvas = Error("canvas has no pixels")
	errEmptyImage  = Error("snapshot has no pixels")
)

// Error is a constant trace error.
type Error string

func (e Error) Error() string { return string(e) }

// capSteps is the number of edges used to approximate a round line cap.
const capSteps = 16

// Raster is an in-memory RGBA Canvas. Ink is drawn with round caps so joins
// between consecutive segments look continuous.
type Raster struct {
	img   *image.RGBA
	ink   color.Color
	width float32
}

func NewRaster(w, h int, ink color.Color, width float32) *Raster {
	if ink == nil {
		ink = color.Black
	}
	if width <= 0 {
		width = 10
	}
	return &Raster{
		img:   image.NewRGBA(image.Rect(0, 0, max(w, 0), max(h, 0))),
		ink:   ink,
		width: width,
	}
}

// Image returns the backing image. It is replaced on Resize.
func (r *Raster) Image() *image.RGBA { return r.img }

func (r *Raster) Size() (int, int) {
	b := r.img.Bounds()
	return b.Dx(), b.Dy()
}

func (r *Raster) Line(s Segment) {
	w, h := r.Size()
	if w == 0 || h == 0 {
		return
	}
	half := r.width / 2
	src := image.NewUniform(r.ink)

	dx, dy := s.To.X-s.From.X, s.To.Y-s.From.Y
	if l := float32(math.Hypot(float64(dx), float64(dy))); l > 0 {
		nx, ny := -dy/l*half, dx/l*half
		z := vector.NewRasterizer(w, h)
		z.DrawOp = draw.Over
		z.MoveTo(s.From.X+nx, s.From.Y+ny)
		z.LineTo(s.To.X+nx, s.To.Y+ny)
		z.LineTo(s.To.X-nx, s.To.Y-ny)
		z.LineTo(s.From.X-nx, s.From.Y-ny)
		z.ClosePath()
		z.Draw(r.img, r.img.Bounds(), src, image.Point{})
	}
	r.dot(s.From, half, src)
	r.dot(s.To, half, src)
}

func (r *Raster) dot(c Point, radius float32, src image.Image) {
	w, h := r.Size()
	z := vector.NewRasterizer(w, h)
	z.DrawOp = draw.Over
	for i := 0; i < capSteps; i++ {
		a := 2 * math.Pi * float64(i) / capSteps
		x := c.X + radius*float32(math.Cos(a))
		y := c.Y + radius*float32(math.Sin(a))
		if i == 0 {
			z.MoveTo(x, y)
		} else {
			z.LineTo(x, y)
		}
	}
	z.ClosePath()
	z.Draw(r.img, r.img.Bounds(), src, image.Point{})
}

func (r *Raster) Clear() {
	draw.Draw(r.img, r.img.Bounds(), image.Transparent, image.Point{}, draw.Src)
}

func (r *Raster) Snapshot() (image.Image, error) {
	if r.img.Bounds().Empty() {
		return nil, errEmptyCanvas
	}
	cp := image.NewRGBA(r.img.Bounds())
	copy(cp.Pix, r.img.Pix)
	return cp, nil
}

func (r *Raster) Resize(w, h int) {
	r.img = image.NewRGBA(image.Rect(0, 0, max(w, 0), max(h, 0)))
}

// Restore copies img into the top-left corner, clipping to the current size.
func (r *Raster) Restore(img image.Image) error {
	if img == nil || img.Bounds().Empty() {
		return errEmptyImage
	}
	if r.img.Bounds().Empty() {
		return errEmptyCanvas
	}
	draw.Draw(r.img, r.img.Bounds(), img, img.Bounds().Min, draw.Src)
	return nil
}

// Inked reports whether the pixel at (x, y) carries any ink.
func (r *Raster) Inked(x, y int) bool {
	if !(image.Point{X: x, Y: y}.In(r.img.Bounds())) {
		return false
	}
	return r.img.RGBAAt(x, y).A > 0
}
