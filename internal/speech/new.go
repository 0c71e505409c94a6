package speech

import (
	"fmt"

	"github.com/nguyentantai21042004/qa-video/internal/config"
	"github.com/nguyentantai21042004/qa-video/internal/logger"
	"github.com/nguyentantai21042004/qa-video/pkg/executor"
)

type implSynthesizer struct {
	engine Engine
	voice  Voice
	dir    string
	logger logger.Logger
}

// New creates a Synthesizer that keeps its temporary audio files in dir.
func New(engine Engine, voice Voice, dir string, log logger.Logger) Synthesizer {
	return &implSynthesizer{
		engine: engine,
		voice:  voice,
		dir:    dir,
		logger: log,
	}
}

// VoiceFromConfig extracts the speaking parameters.
func VoiceFromConfig(cfg config.SpeechConfig) Voice {
	return Voice{Rate: cfg.Rate, Volume: cfg.Volume}
}

// NewEngine builds the engine named in cfg.Speech.Engine.
func NewEngine(cfg *config.Config, exec executor.Executor, log logger.Logger) (Engine, error) {
	switch cfg.Speech.Engine {
	case config.EngineEspeak:
		return NewEspeak(cfg.Speech.Binary, exec), nil
	case config.EngineGemini:
		return NewGemini(cfg.Gemini, APIKeysFromEnv(), log)
	default:
		return nil, fmt.Errorf("unknown speech engine %q", cfg.Speech.Engine)
	}
}
