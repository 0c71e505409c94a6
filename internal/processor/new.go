package processor

import (
	"github.com/nguyentantai21042004/qa-video/internal/config"
	"github.com/nguyentantai21042004/qa-video/internal/logger"
	"github.com/nguyentantai21042004/qa-video/internal/speech"
	"github.com/nguyentantai21042004/qa-video/pkg/executor"
)

type implProcessor struct {
	cfg      *config.Config
	engine   speech.Engine
	executor executor.Executor
	logger   logger.Logger
}

// New creates a new Processor instance
func New(cfg *config.Config, engine speech.Engine, exec executor.Executor, log logger.Logger) Processor {
	return &implProcessor{
		cfg:      cfg,
		engine:   engine,
		executor: exec,
		logger:   log,
	}
}
