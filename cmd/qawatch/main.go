package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/nguyentantai21042004/qa-video/internal/config"
	"github.com/nguyentantai21042004/qa-video/internal/logger"
	"github.com/nguyentantai21042004/qa-video/internal/processor"
	"github.com/nguyentantai21042004/qa-video/internal/speech"
	"github.com/nguyentantai21042004/qa-video/internal/watcher"
	"github.com/nguyentantai21042004/qa-video/pkg/executor"
)

func main() {
	ctx := context.Background()
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.LoadOptional("config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Logging.Level)
	defer logger.Sync(log)
	log.Info(ctx, "========================================")
	log.Info(ctx, "Q&A Video Watcher")
	log.Info(ctx, "========================================")
	log.Info(ctx, "System: %s/%s", runtime.GOOS, runtime.GOARCH)
	log.Info(ctx, "Max Concurrent Processing: %d", cfg.Performance.MaxConcurrent)

	if err := ensureDirectories(cfg); err != nil {
		log.Error(ctx, "Failed to create directories: %v", err)
		os.Exit(1)
	}

	exec := executor.New()

	if !cfg.SelfTest.Skip {
		if err := speech.NewProber(cfg.SelfTest, exec, log).Probe(ctx); err != nil {
			log.Error(ctx, "Audio self-test failed: %v", err)
			os.Exit(1)
		}
	}

	engine, err := speech.NewEngine(cfg, exec, log)
	if err != nil {
		log.Error(ctx, "Failed to create speech engine: %v", err)
		os.Exit(1)
	}
	proc := processor.New(cfg, engine, exec, log)

	w, err := watcher.New(cfg.Paths.Input, proc.Process, log, cfg.Performance.MaxConcurrent)
	if err != nil {
		log.Error(ctx, "Failed to create watcher: %v", err)
		os.Exit(1)
	}
	defer w.Stop()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Setup graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		if err := w.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			errChan <- err
		}
		close(errChan)
	}()

	log.Info(ctx, "========================================")
	log.Info(ctx, "Watching: %s", cfg.Paths.Input)
	log.Info(ctx, "Output: %s/<csv name>/%s", cfg.Paths.Output, processor.VideoName)
	log.Info(ctx, "Speech engine: %s, audio fallback policy: %s", engine.Name(), cfg.FFmpeg.FallbackPolicy)
	log.Info(ctx, "Press Ctrl+C to stop")
	log.Info(ctx, "========================================")

	select {
	case <-sigChan:
		log.Info(ctx, "Shutdown signal received")
	case err := <-errChan:
		if err != nil {
			log.Error(ctx, "Watcher error: %v", err)
		}
	}

	log.Info(ctx, "Shutting down gracefully...")
	cancel()
	// wait for in-flight runs
	<-errChan

	log.Info(ctx, "Q&A Video Watcher stopped")
}

// ensureDirectories creates required directories if they don't exist
func ensureDirectories(cfg *config.Config) error {
	dirs := []string{
		cfg.Paths.Input,
		cfg.Paths.Output,
		cfg.Paths.Temp,
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	return nil
}
