package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/nguyentantai21042004/qa-video/internal/config"
	"github.com/nguyentantai21042004/qa-video/internal/logger"
	"github.com/nguyentantai21042004/qa-video/internal/processor"
	"github.com/nguyentantai21042004/qa-video/internal/speech"
	"github.com/nguyentantai21042004/qa-video/pkg/executor"
)

func main() {
	csvPath := flag.String("csv", "", "path to the Q&A CSV file (required)")
	configPath := flag.String("config", "config.yaml", "path to the config file")
	flag.Parse()

	if *csvPath == "" {
		fmt.Fprintln(os.Stderr, "Error: --csv is required")
		flag.Usage()
		os.Exit(1)
	}

	if err := run(*csvPath, *configPath); err != nil {
		os.Exit(1)
	}
}

// run prints its own user-facing message for every failure.
func run(csvPath, configPath string) error {
	_ = godotenv.Load()

	cfg, err := config.LoadOptional(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return err
	}

	log := logger.New(cfg.Logging.Level)
	defer logger.Sync(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	exec := executor.New()

	if cfg.SelfTest.Skip {
		log.Debug(ctx, "Audio self-test skipped")
	} else if err := speech.NewProber(cfg.SelfTest, exec, log).Probe(ctx); err != nil {
		fmt.Printf("Error: %v\n", err)
		return err
	}

	if _, err := os.Stat(csvPath); err != nil {
		fmt.Printf("CSV file not found: %s\n", csvPath)
		return err
	}

	engine, err := speech.NewEngine(cfg, exec, log)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return err
	}

	proc := processor.New(cfg, engine, exec, log)
	videoPath, err := proc.Run(ctx, csvPath, cfg.Paths.Output)
	if errors.Is(err, processor.ErrNoPairs) {
		fmt.Println("No Q&A pairs found in CSV file")
		return err
	}
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return err
	}

	fmt.Printf("Video created successfully: %s\n", videoPath)
	return nil
}
