package speech

import (
	"errors"
	"io/fs"
	"os"
	"time"
)

// PCM is decoded, interleaved integer audio.
type PCM struct {
	Samples    []int
	SampleRate int
	Channels   int
	BitDepth   int
}

// Frames is the number of sample frames (samples per channel).
func (p PCM) Frames() int {
	if p.Channels <= 0 {
		return 0
	}
	return len(p.Samples) / p.Channels
}

// Duration is Frames / SampleRate.
func (p PCM) Duration() time.Duration {
	return FramesDuration(p.Frames(), p.SampleRate)
}

// FramesDuration converts a frame count at a sample rate into a duration.
func FramesDuration(frames, sampleRate int) time.Duration {
	if sampleRate <= 0 {
		return 0
	}
	return time.Duration(frames) * time.Second / time.Duration(sampleRate)
}

// Asset is synthesized speech backed by a temporary WAV file.
type Asset struct {
	Path     string
	PCM      PCM
	Duration time.Duration
}

// Release removes the backing file. Releasing twice is not an error.
func (a *Asset) Release() error {
	if a == nil || a.Path == "" {
		return nil
	}
	if err := os.Remove(a.Path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
