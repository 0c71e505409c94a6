package speech

import (
	"context"
	"fmt"
	"os"
)

// Synthesize runs the engine and decodes its output once before returning, so
// every Asset handed out is known to be playable and non-empty. On failure the
// temporary file is removed here; on success the caller owns it.
func (s *implSynthesizer) Synthesize(ctx context.Context, text string) (*Asset, error) {
	f, err := os.CreateTemp(s.dir, "speech-*.wav")
	if err != nil {
		return nil, &SynthesisError{Engine: s.engine.Name(), Text: text, Err: fmt.Errorf("create temp file: %w", err)}
	}
	path := f.Name()
	f.Close()

	s.logger.Info(ctx, "Generating speech: %s", preview(text))

	if err := s.engine.Speak(ctx, text, s.voice, path); err != nil {
		s.discard(ctx, path)
		return nil, &SynthesisError{Engine: s.engine.Name(), Text: text, Err: err}
	}

	pcm, err := Decode(path)
	if err != nil {
		s.discard(ctx, path)
		return nil, &ValidationError{Path: path, Err: err}
	}

	asset := &Asset{
		Path:     path,
		PCM:      pcm,
		Duration: pcm.Duration(),
	}

	s.logger.Info(ctx, "Audio file created: %s", path)
	s.logger.Info(ctx, "Sample rate: %dHz, Duration: %.2fs", pcm.SampleRate, asset.Duration.Seconds())

	return asset, nil
}

func (s *implSynthesizer) discard(ctx context.Context, path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		s.logger.Warn(ctx, "Failed to remove rejected audio %s: %v", path, err)
	}
}
