package systems

import (
	"image"
	"log/slog"
	"math/rand"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"

	"github.com/pthm-cable/flux/components"
)

// The text raster is fixed at 800px wide regardless of output resolution,
// bounding the sampling cost; points are mapped linearly to output space.
const (
	rasterWidth    = 800
	rasterMargin   = 50
	baseFontSize   = 250.0
	alphaThreshold = 128
)

var (
	fontOnce  sync.Once
	glyphFont *truetype.Font
	fontErr   error
)

func loadGlyphFont() (*truetype.Font, error) {
	fontOnce.Do(func() {
		glyphFont, fontErr = truetype.Parse(gobold.TTF)
	})
	return glyphFont, fontErr
}

func newFace(f *truetype.Font, size float64) font.Face {
	return truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

// SampleText rasterizes a string offscreen and returns a shuffled point
// cloud in output surface coordinates. The font auto-scales down from the
// base size so the text fits inside the raster margin, and the scan grid
// tightens for smaller text to preserve point density. Empty text or a
// degenerate resolution yields no points.
func SampleText(text string, outW, outH int, rng *rand.Rand) []components.TextPoint {
	if text == "" || outW <= 0 || outH <= 0 {
		return nil
	}

	f, err := loadGlyphFont()
	if err != nil {
		slog.Warn("glyph font unavailable, text morph disabled", "error", err)
		return nil
	}

	rasterH := rasterWidth * outH / outW
	if rasterH < 1 {
		rasterH = 1
	}

	dc := gg.NewContext(rasterWidth, rasterH)
	fontSize := baseFontSize
	dc.SetFontFace(newFace(f, fontSize))

	// Scale down proportionally if the rendered text overflows the margin.
	if w, _ := dc.MeasureString(text); w > rasterWidth-2*rasterMargin {
		fontSize *= (rasterWidth - 2*rasterMargin) / w
		dc.SetFontFace(newFace(f, fontSize))
	}

	dc.SetRGB(1, 1, 1)
	dc.DrawStringAnchored(text, rasterWidth/2, float64(rasterH)/2, 0.5, 0.5)

	gap := int(fontSize / 40)
	if gap < 2 {
		gap = 2
	}

	points := scanRaster(dc.Image(), gap,
		float64(outW)/rasterWidth, float64(outH)/float64(rasterH))

	rng.Shuffle(len(points), func(i, j int) {
		points[i], points[j] = points[j], points[i]
	})
	return points
}

// scanRaster walks the raster on a gap-spaced grid and keeps every cell
// whose alpha clears the coverage threshold, mapped to output space.
func scanRaster(img image.Image, gap int, sx, sy float64) []components.TextPoint {
	bounds := img.Bounds()
	points := make([]components.TextPoint, 0, 256)
	for y := bounds.Min.Y; y < bounds.Max.Y; y += gap {
		for x := bounds.Min.X; x < bounds.Max.X; x += gap {
			_, _, _, a := img.At(x, y).RGBA()
			if a>>8 > alphaThreshold {
				points = append(points, components.TextPoint{
					X: float64(x) * sx,
					Y: float64(y) * sy,
				})
			}
		}
	}
	return points
}
