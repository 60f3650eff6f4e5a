package export

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"TraceBoard/internal/trace"

	"github.com/jung-kurt/gofpdf"
)

const (
	pageW  = 297.0
	pageH  = 210.0
	margin = 15.0
	header = 20.0
)

// Sheet is one practice worksheet.
type Sheet struct {
	Title string
	// Label is the traced text; it needs FontPath when it is not Latin-1.
	Label    string
	FontPath string
	// Background is an optional capture of the tracing area.
	Background image.Image
	Strokes    []trace.Stroke
	// Width and Height are the canvas size the strokes were drawn on.
	Width, Height int
}

// Worksheet writes s as an A4 landscape PDF at path.
func Worksheet(path string, s Sheet) error {
	p := gofpdf.New("L", "mm", "A4", "")
	p.SetTitle(s.Title, true)
	p.AddPage()

	p.SetFont("Helvetica", "B", 16)
	p.CellFormat(0, 10, s.Title, "", 1, "L", false, 0, "")
	if s.Label != "" && s.FontPath != "" {
		p.AddUTF8Font("label", "", s.FontPath)
		p.SetFont("label", "", 14)
		p.CellFormat(0, 8, s.Label, "", 1, "L", false, 0, "")
	}

	areaW, areaH := pageW-2*margin, pageH-2*margin-header
	scale, offX, offY := fit(float64(s.Width), float64(s.Height), areaW, areaH)
	originX, originY := margin+offX, margin+header+offY

	if s.Background != nil && !s.Background.Bounds().Empty() {
		var buf bytes.Buffer
		if err := png.Encode(&buf, s.Background); err != nil {
			return fmt.Errorf("encode background: %w", err)
		}
		p.RegisterImageOptionsReader("background", gofpdf.ImageOptions{ImageType: "PNG"}, &buf)
		p.ImageOptions("background", originX, originY,
			float64(s.Width)*scale, float64(s.Height)*scale, false, gofpdf.ImageOptions{ImageType: "PNG"}, 0, "")
	}

	p.SetDrawColor(0, 0, 0)
	p.SetLineWidth(1.5)
	p.SetLineCapStyle("round")
	p.SetLineJoinStyle("round")
	for _, st := range s.Strokes {
		for i := 1; i < len(st.Points); i++ {
			a, b := st.Points[i-1], st.Points[i]
			p.Line(
				originX+float64(a.X)*scale, originY+float64(a.Y)*scale,
				originX+float64(b.X)*scale, originY+float64(b.Y)*scale,
			)
		}
	}

	if err := p.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("write worksheet: %w", err)
	}
	return nil
}

// fit scales a w×h canvas into the box, centred, keeping its aspect ratio.
func fit(w, h, boxW, boxH float64) (scale, offX, offY float64) {
	if w <= 0 || h <= 0 {
		return 1, 0, 0
	}
	scale = boxW / w
	if s := boxH / h; s < scale {
		scale = s
	}
	return scale, (boxW - w*scale) / 2, (boxH - h*scale) / 2
}
