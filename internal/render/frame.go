package render

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Render draws text onto a background-filled frame. Lines start at the margin
// and advance by the line height; text that runs past the bottom edge is
// clipped.
func (r *implRenderer) Render(text string, background, foreground color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rectangle{Max: r.size})
	draw.Draw(img, img.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)

	maxWidth := float64(r.size.X - 2*r.margin)
	top := r.margin

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(foreground),
		Face: r.face,
	}

	for _, line := range Wrap(text, maxWidth, r.fontSize) {
		if top >= r.size.Y {
			break
		}
		d.Dot = fixed.P(r.margin, top+r.ascent)
		d.DrawString(line)
		top += r.lineHeight
	}

	return img
}

func (r *implRenderer) Size() image.Point {
	return r.size
}
