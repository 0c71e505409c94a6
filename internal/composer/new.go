package composer

import (
	"time"

	"github.com/nguyentantai21042004/qa-video/internal/config"
	"github.com/nguyentantai21042004/qa-video/internal/logger"
	"github.com/nguyentantai21042004/qa-video/internal/render"
	"github.com/nguyentantai21042004/qa-video/internal/speech"
)

type implComposer struct {
	synth    speech.Synthesizer
	renderer render.Renderer
	theme    config.ThemeConfig
	pause    time.Duration
	logger   logger.Logger
}

// New creates a Composer
func New(cfg *config.Config, synth speech.Synthesizer, renderer render.Renderer, log logger.Logger) Composer {
	return &implComposer{
		synth:    synth,
		renderer: renderer,
		theme:    cfg.Theme,
		pause:    cfg.Video.Pause,
		logger:   log,
	}
}
