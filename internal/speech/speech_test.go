package speech

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/nguyentantai21042004/qa-video/internal/config"
	"github.com/nguyentantai21042004/qa-video/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEngine struct {
	speak func(text, outPath string) error
	calls int
}

func (f *fakeEngine) Name() string { return "fake" }

func (f *fakeEngine) Speak(ctx context.Context, text string, voice Voice, outPath string) error {
	f.calls++
	return f.speak(text, outPath)
}

// toneEngine writes frames of a constant non-zero signal at rate.
func toneEngine(frames, rate int) *fakeEngine {
	return &fakeEngine{speak: func(text, outPath string) error {
		pcm := Silence(frames, rate)
		for i := range pcm.Samples {
			pcm.Samples[i] = 1000
		}
		return WriteWAV(outPath, pcm)
	}}
}

type call struct {
	name string
	args []string
}

type fakeExecutor struct {
	calls []call
	run   func(name string, args []string) error
}

func (f *fakeExecutor) Execute(ctx context.Context, name string, args ...string) (string, error) {
	f.calls = append(f.calls, call{name: name, args: args})
	if f.run != nil {
		return "", f.run(name, args)
	}
	return "", nil
}

func (f *fakeExecutor) ExecuteInDir(ctx context.Context, dir string, name string, args ...string) (string, error) {
	return f.Execute(ctx, name, args...)
}

func testLogger() logger.Logger {
	return logger.New("error")
}

func dirEntries(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestSynthesize(t *testing.T) {
	dir := t.TempDir()
	s := New(toneEngine(33075, 22050), Voice{Rate: 150, Volume: 0.9}, dir, testLogger())

	asset, err := s.Synthesize(context.Background(), "What is 2+2?")
	require.NoError(t, err)

	assert.Equal(t, 1500*time.Millisecond, asset.Duration)
	assert.Equal(t, asset.PCM.Duration(), asset.Duration)
	assert.Equal(t, 22050, asset.PCM.SampleRate)
	assert.Equal(t, 1, asset.PCM.Channels)
	assert.Equal(t, 16, asset.PCM.BitDepth)
	assert.FileExists(t, asset.Path)
	assert.Equal(t, dir, filepath.Dir(asset.Path))

	require.NoError(t, asset.Release())
	assert.NoFileExists(t, asset.Path)
	assert.NoError(t, asset.Release(), "second release is a no-op")
}

func TestSynthesizeEngineFailure(t *testing.T) {
	dir := t.TempDir()
	engine := &fakeEngine{speak: func(string, string) error { return errors.New("engine crashed") }}
	s := New(engine, Voice{}, dir, testLogger())

	_, err := s.Synthesize(context.Background(), "hello")

	var synthErr *SynthesisError
	require.ErrorAs(t, err, &synthErr)
	assert.Equal(t, "fake", synthErr.Engine)
	assert.Empty(t, dirEntries(t, dir), "temp file must be removed")
}

func TestSynthesizeValidationFailure(t *testing.T) {
	tests := []struct {
		name  string
		speak func(text, outPath string) error
	}{
		{
			name: "not audio",
			speak: func(_, outPath string) error {
				return os.WriteFile(outPath, []byte("this is not a wav file at all"), 0644)
			},
		},
		{
			name:  "empty file",
			speak: func(string, string) error { return nil },
		},
		{
			name: "zero samples",
			speak: func(_, outPath string) error {
				return WriteWAV(outPath, Silence(0, 22050))
			},
		},
		{
			name: "truncated wav",
			speak: func(_, outPath string) error {
				if err := WriteWAV(outPath, Silence(22050, 22050)); err != nil {
					return err
				}
				return os.Truncate(outPath, 20)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			s := New(&fakeEngine{speak: tt.speak}, Voice{}, dir, testLogger())

			_, err := s.Synthesize(context.Background(), "hello")

			var valErr *ValidationError
			require.ErrorAs(t, err, &valErr)
			assert.Empty(t, dirEntries(t, dir), "rejected audio must be removed")
		})
	}
}

func TestPCMDuration(t *testing.T) {
	tests := []struct {
		name string
		pcm  PCM
		want time.Duration
	}{
		{"one second mono", PCM{Samples: make([]int, 22050), SampleRate: 22050, Channels: 1}, time.Second},
		{"half second stereo", PCM{Samples: make([]int, 44100), SampleRate: 44100, Channels: 2}, 500 * time.Millisecond},
		{"no rate", PCM{Samples: make([]int, 10), Channels: 1}, 0},
		{"no channels", PCM{Samples: make([]int, 10), SampleRate: 10}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.pcm.Duration())
		})
	}
}

func TestEspeakArgs(t *testing.T) {
	var spokenText string
	exec := &fakeExecutor{run: func(name string, args []string) error {
		for i, a := range args {
			if a == "-f" {
				data, err := os.ReadFile(args[i+1])
				if err != nil {
					return err
				}
				spokenText = string(data)
			}
		}
		return nil
	}}

	out := filepath.Join(t.TempDir(), "q.wav")
	err := NewEspeak("espeak-ng", exec).Speak(context.Background(), "-not a flag", Voice{Rate: 150, Volume: 0.9}, out)
	require.NoError(t, err)

	require.Len(t, exec.calls, 1)
	assert.Equal(t, "espeak-ng", exec.calls[0].name)
	assert.Equal(t, []string{"-s", "150", "-a", "90", "-w", out, "-f", out + ".txt"}, exec.calls[0].args)
	assert.Equal(t, "-not a flag", spokenText)
	assert.NoFileExists(t, out+".txt")
}

func TestEspeakFailure(t *testing.T) {
	exec := &fakeExecutor{run: func(string, []string) error { return errors.New("exit status 1") }}

	err := NewEspeak("espeak-ng", exec).Speak(context.Background(), "hi", Voice{Rate: 150}, filepath.Join(t.TempDir(), "a.wav"))
	assert.ErrorContains(t, err, "espeak")
}

func TestProbe(t *testing.T) {
	var played PCM
	exec := &fakeExecutor{run: func(name string, args []string) error {
		pcm, err := Decode(args[len(args)-1])
		played = pcm
		return err
	}}

	p := NewProber(config.Default().SelfTest, exec, testLogger())
	require.NoError(t, p.Probe(context.Background()))

	require.Len(t, exec.calls, 1)
	assert.Equal(t, "ffplay", exec.calls[0].name)
	assert.Equal(t, []string{"-nodisp", "-autoexit", "-loglevel", "error"}, exec.calls[0].args[:4])
	assert.Equal(t, time.Second, played.Duration())
}

func TestProbeFailure(t *testing.T) {
	exec := &fakeExecutor{run: func(string, []string) error { return errors.New("no audio device") }}

	err := NewProber(config.Default().SelfTest, exec, testLogger()).Probe(context.Background())
	assert.ErrorContains(t, err, "no audio device")
}

func TestPCMFromS16LE(t *testing.T) {
	pcm := pcmFromS16LE([]byte{0x01, 0x00, 0xff, 0xff, 0x00, 0x80})
	assert.Equal(t, []int{1, -1, -32768}, pcm.Samples)
	assert.Equal(t, 24000, pcm.SampleRate)
}

func TestAPIKeysFromEnv(t *testing.T) {
	t.Setenv("GEMINI_API_KEYS", " a, b ,,c")
	assert.Equal(t, []string{"a", "b", "c"}, APIKeysFromEnv())

	t.Setenv("GEMINI_API_KEYS", "")
	t.Setenv("GEMINI_API_KEY", "single")
	assert.Equal(t, []string{"single"}, APIKeysFromEnv())
}

func TestNewEngine(t *testing.T) {
	cfg := config.Default()
	engine, err := NewEngine(cfg, &fakeExecutor{}, testLogger())
	require.NoError(t, err)
	assert.Equal(t, "espeak", engine.Name())

	t.Setenv("GEMINI_API_KEYS", "")
	t.Setenv("GEMINI_API_KEY", "")
	cfg.Speech.Engine = config.EngineGemini
	_, err = NewEngine(cfg, &fakeExecutor{}, testLogger())
	assert.Error(t, err, "gemini without keys")
}
