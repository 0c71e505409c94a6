package speech

import (
	"context"
	"fmt"
	"math"
	"os"
	"strconv"

	"github.com/nguyentantai21042004/qa-video/pkg/executor"
)

type espeakEngine struct {
	binary   string
	executor executor.Executor
}

// NewEspeak creates an Engine backed by the espeak-ng command line tool.
func NewEspeak(binary string, exec executor.Executor) Engine {
	return &espeakEngine{binary: binary, executor: exec}
}

func (e *espeakEngine) Name() string {
	return "espeak"
}

// Speak writes text to a side file and passes it with -f, so text that looks
// like a flag is still read as text.
func (e *espeakEngine) Speak(ctx context.Context, text string, voice Voice, outPath string) error {
	textPath := outPath + ".txt"
	if err := os.WriteFile(textPath, []byte(text), 0644); err != nil {
		return fmt.Errorf("write text file: %w", err)
	}
	defer os.Remove(textPath)

	// -s: speed in words per minute
	// -a: amplitude 0..200, 100 is the engine's normal level
	// -w: write a WAV file instead of playing
	// -f: read text from file
	args := []string{
		"-s", strconv.Itoa(voice.Rate),
		"-a", strconv.Itoa(int(math.Round(voice.Volume * 100))),
		"-w", outPath,
		"-f", textPath,
	}

	if _, err := e.executor.Execute(ctx, e.binary, args...); err != nil {
		return fmt.Errorf("espeak: %w", err)
	}
	return nil
}
