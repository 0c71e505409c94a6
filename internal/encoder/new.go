package encoder

import (
	"github.com/nguyentantai21042004/qa-video/internal/config"
	"github.com/nguyentantai21042004/qa-video/internal/logger"
	"github.com/nguyentantai21042004/qa-video/pkg/executor"
)

type implEncoder struct {
	ffmpeg   config.FFmpegConfig
	fps      int
	executor executor.Executor
	logger   logger.Logger
}

// New creates a new Encoder instance
func New(cfg *config.Config, exec executor.Executor, log logger.Logger) Encoder {
	return &implEncoder{
		ffmpeg:   cfg.FFmpeg,
		fps:      cfg.Video.FPS,
		executor: exec,
		logger:   log,
	}
}
