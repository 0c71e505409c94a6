package composer

import (
	"context"
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/nguyentantai21042004/qa-video/internal/config"
	"github.com/nguyentantai21042004/qa-video/internal/logger"
	"github.com/nguyentantai21042004/qa-video/internal/models"
	"github.com/nguyentantai21042004/qa-video/internal/speech"
	"github.com/nguyentantai21042004/qa-video/internal/timeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSynth hands out assets backed by real files so release can be checked.
type fakeSynth struct {
	dir     string
	frames  map[string]int
	fail    map[string]error
	created []string
}

func (f *fakeSynth) Synthesize(ctx context.Context, text string) (*speech.Asset, error) {
	if err, ok := f.fail[text]; ok {
		return nil, err
	}
	path := filepath.Join(f.dir, "asset-"+text+".wav")
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		return nil, err
	}
	f.created = append(f.created, path)
	pcm := speech.Silence(f.frames[text], 22050)
	return &speech.Asset{Path: path, PCM: pcm, Duration: pcm.Duration()}, nil
}

type renderCall struct {
	text string
	bg   color.RGBA
}

type fakeRenderer struct {
	calls []renderCall
}

func (f *fakeRenderer) Render(text string, background, foreground color.RGBA) *image.RGBA {
	f.calls = append(f.calls, renderCall{text: text, bg: background})
	return image.NewRGBA(image.Rect(0, 0, 8, 8))
}

func (f *fakeRenderer) Size() image.Point {
	return image.Pt(8, 8)
}

func newComposer(synth speech.Synthesizer, r *fakeRenderer) Composer {
	return New(config.Default(), synth, r, logger.New("error"))
}

func TestCompose(t *testing.T) {
	synth := &fakeSynth{
		dir:    t.TempDir(),
		frames: map[string]int{"What is 2+2?": 33075, "4": 11025},
	}
	r := &fakeRenderer{}

	segs, err := newComposer(synth, r).Compose(context.Background(), models.QAPair{Question: "What is 2+2?", Answer: "4"}, 1)
	require.NoError(t, err)
	require.Len(t, segs, SegmentsPerPair)

	assert.Equal(t, timeline.KindQuestion, segs[0].Kind)
	assert.Equal(t, "Q: What is 2+2?", segs[0].Text)
	assert.Equal(t, 1500*time.Millisecond, segs[0].Duration)
	assert.Equal(t, segs[0].Audio.Duration(), segs[0].Duration)

	assert.Equal(t, timeline.KindPause, segs[1].Kind)
	assert.Equal(t, 500*time.Millisecond, segs[1].Duration)
	assert.False(t, segs[1].HasAudio())

	assert.Equal(t, timeline.KindAnswer, segs[2].Kind)
	assert.Equal(t, "A: 4", segs[2].Text)
	assert.Equal(t, 500*time.Millisecond, segs[2].Duration)
	assert.Equal(t, segs[2].Audio.Duration(), segs[2].Duration)

	assert.Equal(t, timeline.KindPause, segs[3].Kind)
	assert.False(t, segs[3].HasAudio())

	require.Len(t, r.calls, 3)
	assert.Equal(t, renderCall{"Q: What is 2+2?", color.RGBA{0, 0, 128, 255}}, r.calls[0])
	assert.Equal(t, renderCall{"A: 4", color.RGBA{0, 64, 0, 255}}, r.calls[1])
	assert.Equal(t, renderCall{"", color.RGBA{0, 0, 0, 255}}, r.calls[2])

	for _, p := range synth.created {
		assert.NoFileExists(t, p, "assets are released once segments are built")
	}
}

func TestComposeAnswerFailureReleasesQuestion(t *testing.T) {
	cause := &speech.ValidationError{Path: "a.wav", Err: errors.New("zero duration")}
	synth := &fakeSynth{
		dir:    t.TempDir(),
		frames: map[string]int{"Q?": 22050},
		fail:   map[string]error{"A!": cause},
	}

	segs, err := newComposer(synth, &fakeRenderer{}).Compose(context.Background(), models.QAPair{Question: "Q?", Answer: "A!"}, 3)

	assert.Nil(t, segs)
	var buildErr *SegmentBuildError
	require.ErrorAs(t, err, &buildErr)
	assert.Equal(t, 3, buildErr.Index)
	assert.Equal(t, "answer", buildErr.Role)

	var valErr *speech.ValidationError
	assert.ErrorAs(t, err, &valErr)

	require.Len(t, synth.created, 1)
	assert.NoFileExists(t, synth.created[0])
}

func TestComposeQuestionFailure(t *testing.T) {
	synth := &fakeSynth{
		dir:  t.TempDir(),
		fail: map[string]error{"Q?": &speech.SynthesisError{Engine: "fake", Text: "Q?", Err: errors.New("boom")}},
	}
	r := &fakeRenderer{}

	segs, err := newComposer(synth, r).Compose(context.Background(), models.QAPair{Question: "Q?", Answer: "A!"}, 1)

	assert.Nil(t, segs)
	var buildErr *SegmentBuildError
	require.ErrorAs(t, err, &buildErr)
	assert.Equal(t, "question", buildErr.Role)
	assert.Empty(t, synth.created, "answer is never synthesized")
	assert.Empty(t, r.calls)
}
