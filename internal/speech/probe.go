package speech

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nguyentantai21042004/qa-video/internal/config"
	"github.com/nguyentantai21042004/qa-video/internal/logger"
	"github.com/nguyentantai21042004/qa-video/pkg/executor"
)

const probeSampleRate = 44100

type implProber struct {
	player   string
	args     []string
	executor executor.Executor
	logger   logger.Logger
}

// NewProber plays one second of silence through the configured player.
func NewProber(cfg config.SelfTestConfig, exec executor.Executor, log logger.Logger) Prober {
	return &implProber{
		player:   cfg.Player,
		args:     cfg.Args,
		executor: exec,
		logger:   log,
	}
}

// Probe blocks until playback completes.
func (p *implProber) Probe(ctx context.Context) error {
	dir, err := os.MkdirTemp("", "qa-selftest-*")
	if err != nil {
		return fmt.Errorf("create self-test dir: %w", err)
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "silence.wav")
	if err := WriteWAV(path, Silence(probeSampleRate, probeSampleRate)); err != nil {
		return fmt.Errorf("write self-test audio: %w", err)
	}

	p.logger.Info(ctx, "Testing audio system...")
	args := append(append([]string{}, p.args...), path)
	if _, err := p.executor.Execute(ctx, p.player, args...); err != nil {
		return fmt.Errorf("audio playback self-test: %w", err)
	}
	p.logger.Info(ctx, "Audio system test complete")

	return nil
}
