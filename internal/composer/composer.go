package composer

import (
	"context"

	"github.com/nguyentantai21042004/qa-video/internal/models"
	"github.com/nguyentantai21042004/qa-video/internal/speech"
	"github.com/nguyentantai21042004/qa-video/internal/timeline"
)

const (
	roleQuestion = "question"
	roleAnswer   = "answer"
)

// Compose synthesizes both texts, renders their frames and returns exactly
// four segments, or none. Audio files are released before returning on every
// path; the segments keep the decoded samples.
func (c *implComposer) Compose(ctx context.Context, pair models.QAPair, index int) ([]timeline.Segment, error) {
	q, err := c.synth.Synthesize(ctx, pair.Question)
	if err != nil {
		return nil, &SegmentBuildError{Index: index, Role: roleQuestion, Err: err}
	}
	defer c.release(ctx, q)

	a, err := c.synth.Synthesize(ctx, pair.Answer)
	if err != nil {
		return nil, &SegmentBuildError{Index: index, Role: roleAnswer, Err: err}
	}
	defer c.release(ctx, a)

	c.logger.Info(ctx, "Audio clip durations - Q: %.2fs, A: %.2fs", q.Duration.Seconds(), a.Duration.Seconds())

	qText := "Q: " + pair.Question
	aText := "A: " + pair.Answer

	text := c.theme.Text.RGBA()
	qFrame := c.renderer.Render(qText, c.theme.Question.RGBA(), text)
	aFrame := c.renderer.Render(aText, c.theme.Answer.RGBA(), text)
	pauseFrame := c.renderer.Render("", c.theme.Pause.RGBA(), text)

	return []timeline.Segment{
		timeline.Spoken(timeline.KindQuestion, qText, qFrame, q.PCM),
		timeline.Pause(pauseFrame, c.pause),
		timeline.Spoken(timeline.KindAnswer, aText, aFrame, a.PCM),
		timeline.Pause(pauseFrame, c.pause),
	}, nil
}

// release is best effort: a file that cannot be removed is only logged.
func (c *implComposer) release(ctx context.Context, asset *speech.Asset) {
	if err := asset.Release(); err != nil {
		c.logger.Warn(ctx, "Could not delete temporary audio %s: %v", asset.Path, err)
	}
}
