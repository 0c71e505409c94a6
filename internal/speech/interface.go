package speech

import "context"

// Voice carries the engine-independent speaking parameters.
type Voice struct {
	Rate   int     // words per minute
	Volume float64 // 0..1
}

// Engine is a text-to-speech backend that writes a WAV file to outPath.
type Engine interface {
	Name() string
	Speak(ctx context.Context, text string, voice Voice, outPath string) error
}

// Synthesizer turns text into a validated, decodable Asset. Callers own the
// returned Asset and must Release it.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) (*Asset, error)
}

// Prober checks that the audio output device can play a sound end to end.
type Prober interface {
	Probe(ctx context.Context) error
}
