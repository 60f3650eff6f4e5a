package export

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"TraceBoard/internal/trace"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorksheet_WritesPDF(t *testing.T) {
	bg := image.NewRGBA(image.Rect(0, 0, 60, 15))
	bg.Set(5, 5, color.Black)

	tests := []struct {
		name  string
		sheet Sheet
	}{
		{"Empty", Sheet{Title: "TraceBoard"}},
		{"Strokes", Sheet{
			Title:  "TraceBoard",
			Width:  600,
			Height: 150,
			Strokes: []trace.Stroke{
				{ID: "a", Points: []trace.Point{{X: 10, Y: 10}, {X: 100, Y: 80}, {X: 200, Y: 20}}},
			},
		}},
		{"Background", Sheet{Title: "TraceBoard", Width: 60, Height: 15, Background: bg}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "sheet.pdf")
			require.NoError(t, Worksheet(path, tt.sheet))

			data, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.True(t, len(data) > 4 && string(data[:4]) == "%PDF")
		})
	}
}

func TestWorksheet_BadPath(t *testing.T) {
	err := Worksheet(filepath.Join(t.TempDir(), "missing", "sheet.pdf"), Sheet{Title: "x"})
	assert.Error(t, err)
}

func TestFit(t *testing.T) {
	tests := []struct {
		name              string
		w, h, boxW, boxH  float64
		scale, offX, offY float64
	}{
		{"WideCanvas", 600, 150, 300, 150, 0.5, 0, 37.5},
		{"TallCanvas", 100, 200, 300, 100, 0.5, 125, 0},
		{"Zero", 0, 0, 100, 100, 1, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scale, x, y := fit(tt.w, tt.h, tt.boxW, tt.boxH)
			assert.InDelta(t, tt.scale, scale, 1e-9)
			assert.InDelta(t, tt.offX, x, 1e-9)
			assert.InDelta(t, tt.offY, y, 1e-9)
		})
	}
}
