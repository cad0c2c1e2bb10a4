// Package renderer composites each frame onto the render surface and exposes
// the surface pixels to the recording sink.
package renderer

import (
	"image"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Surface is the pixel buffer every frame composites onto. It lives in a
// render texture sized exactly to the configured resolution, so the window
// can present it scaled while the recording sink reads back the raw pixels.
type Surface struct {
	target rl.RenderTexture2D
	width  int
	height int
}

// NewSurface allocates a render texture of the given resolution.
func NewSurface(width, height int) *Surface {
	return &Surface{
		target: rl.LoadRenderTexture(int32(width), int32(height)),
		width:  width,
		height: height,
	}
}

// Size returns the surface resolution.
func (s *Surface) Size() (int, int) {
	return s.width, s.height
}

// Begin redirects subsequent draws into the surface.
func (s *Surface) Begin() {
	rl.BeginTextureMode(s.target)
}

// End stops drawing into the surface.
func (s *Surface) End() {
	rl.EndTextureMode()
}

// Present draws the surface scaled into the current window.
// The texture is upside down (OpenGL convention), so the source flips.
func (s *Surface) Present(windowW, windowH int) {
	src := rl.Rectangle{
		X:      0,
		Y:      float32(s.height),
		Width:  float32(s.width),
		Height: -float32(s.height),
	}
	dst := rl.Rectangle{
		X:      0,
		Y:      0,
		Width:  float32(windowW),
		Height: float32(windowH),
	}
	rl.DrawTexturePro(s.target.Texture, src, dst, rl.Vector2{}, 0, rl.White)
}

// Frame reads the surface back into an RGBA image, top row first.
func (s *Surface) Frame() *image.RGBA {
	img := rl.LoadImageFromTexture(s.target.Texture)
	defer rl.UnloadImage(img)

	colors := rl.LoadImageColors(img)
	defer rl.UnloadImageColors(colors)

	out := image.NewRGBA(image.Rect(0, 0, s.width, s.height))
	for y := 0; y < s.height; y++ {
		// Texture rows are bottom-up.
		row := (s.height - 1 - y) * s.width
		for x := 0; x < s.width; x++ {
			c := colors[row+x]
			i := out.PixOffset(x, y)
			out.Pix[i+0] = c.R
			out.Pix[i+1] = c.G
			out.Pix[i+2] = c.B
			out.Pix[i+3] = c.A
		}
	}
	return out
}

// Unload releases the render texture.
func (s *Surface) Unload() {
	rl.UnloadRenderTexture(s.target)
}
