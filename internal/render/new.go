package render

import (
	"fmt"
	"image"

	"github.com/nguyentantai21042004/qa-video/internal/config"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

type implRenderer struct {
	size       image.Point
	margin     int
	fontSize   float64
	lineHeight int
	face       font.Face
	ascent     int
}

// New creates a Renderer from the video settings. The returned Renderer holds
// a font face and must not be shared across goroutines.
func New(cfg config.VideoConfig) (Renderer, error) {
	ttf, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}

	face, err := opentype.NewFace(ttf, &opentype.FaceOptions{
		Size:    cfg.FontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("create font face: %w", err)
	}

	return &implRenderer{
		size:       image.Pt(cfg.Width, cfg.Height),
		margin:     cfg.Margin,
		fontSize:   cfg.FontSize,
		lineHeight: int(cfg.FontSize * cfg.LineSpacing),
		face:       face,
		ascent:     face.Metrics().Ascent.Ceil(),
	}, nil
}
