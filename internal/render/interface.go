package render

import (
	"image"
	"image/color"
)

// Renderer turns text into a fixed-size frame. Rendering is deterministic:
// the same inputs always produce identical pixels.
type Renderer interface {
	Render(text string, background, foreground color.RGBA) *image.RGBA
	Size() image.Point
}
