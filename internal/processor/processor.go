package processor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nguyentantai21042004/qa-video/internal/composer"
	"github.com/nguyentantai21042004/qa-video/internal/csvsource"
	"github.com/nguyentantai21042004/qa-video/internal/encoder"
	"github.com/nguyentantai21042004/qa-video/internal/logger"
	"github.com/nguyentantai21042004/qa-video/internal/models"
	"github.com/nguyentantai21042004/qa-video/internal/render"
	"github.com/nguyentantai21042004/qa-video/internal/speech"
	"github.com/nguyentantai21042004/qa-video/internal/timeline"
	"github.com/nguyentantai21042004/qa-video/internal/transcript"
)

// Process orchestrates one watched CSV file end to end
func (p *implProcessor) Process(ctx context.Context, csvPath string) error {
	startTime := time.Now()
	base := strings.TrimSuffix(filepath.Base(csvPath), filepath.Ext(csvPath))
	outputDir := filepath.Join(p.cfg.Paths.Output, base)

	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Starting Q&A video: %s", csvPath)
	p.logger.Info(ctx, "========================================")

	videoPath, err := p.Run(ctx, csvPath, outputDir)
	if err != nil {
		return err
	}

	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Processing completed successfully!")
	p.logger.Info(ctx, "Output video: %s", videoPath)
	p.logger.Info(ctx, "Processing time: %s", time.Since(startTime))
	p.logger.Info(ctx, "========================================")

	return nil
}

// Run loads the pairs from csvPath and builds the video.
func (p *implProcessor) Run(ctx context.Context, csvPath, outputDir string) (string, error) {
	p.logger.Info(ctx, "Reading CSV file: %s", csvPath)
	res, err := csvsource.Read(csvPath)
	if err != nil {
		return "", fmt.Errorf("read csv: %w", err)
	}
	p.logger.Info(ctx, "Read %d Q&A pairs (encoding: %s)", len(res.Pairs), res.Encoding)

	return p.Build(ctx, res.Pairs, outputDir)
}

// Build composes every pair in input order into one timeline and encodes it.
// The run's temporary directory is removed on every exit path.
func (p *implProcessor) Build(ctx context.Context, pairs []models.QAPair, outputDir string) (string, error) {
	if len(pairs) == 0 {
		return "", ErrNoPairs
	}

	log := p.logger.With("run", uuid.NewString())

	runDir, err := p.newRunDir()
	if err != nil {
		return "", fmt.Errorf("create temp dir: %w", err)
	}
	defer cleanupRunDir(ctx, log, runDir)

	tl, err := p.compose(ctx, log, pairs, runDir)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	workDir := filepath.Join(runDir, "encode")
	if err := os.Mkdir(workDir, 0755); err != nil {
		return "", fmt.Errorf("create encoder dir: %w", err)
	}

	enc := encoder.New(p.cfg, p.executor, log)
	result, err := enc.Encode(ctx, tl, workDir, filepath.Join(outputDir, VideoName))
	if err != nil {
		return "", err
	}
	if result.UsedFallback {
		log.Info(ctx, "Video encoded with alternate audio codec %s", result.AudioCodec)
	}

	p.inspect(ctx, log, enc, result.Path)
	p.writeCompanions(ctx, log, tl, outputDir)

	log.Info(ctx, "Video saved to: %s", result.Path)
	return result.Path, nil
}

// compose builds the timeline one pair at a time.
func (p *implProcessor) compose(ctx context.Context, log logger.Logger, pairs []models.QAPair, runDir string) (*timeline.Timeline, error) {
	renderer, err := render.New(p.cfg.Video)
	if err != nil {
		return nil, fmt.Errorf("create renderer: %w", err)
	}
	synth := speech.New(p.engine, speech.VoiceFromConfig(p.cfg.Speech), runDir, log)
	comp := composer.New(p.cfg, synth, renderer, log)

	tl := timeline.New()
	for i, pair := range pairs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		log.Info(ctx, "Processing Q&A pair %d of %d", i+1, len(pairs))
		segs, err := comp.Compose(ctx, pair, i+1)
		if err != nil {
			return nil, fmt.Errorf("compose: %w", err)
		}
		tl.Append(segs...)
		log.Info(ctx, "Progress: %d/%d pairs (%.0f%%)", i+1, len(pairs), float64(i+1)*100/float64(len(pairs)))
	}

	log.Info(ctx, "Timeline ready: %d segments, %.2fs", tl.Len(), tl.Duration().Seconds())
	return tl, nil
}

// inspect logs what ffprobe reports about the finished file. Failure here
// does not fail the run.
func (p *implProcessor) inspect(ctx context.Context, log logger.Logger, enc encoder.Encoder, path string) {
	report, err := enc.Inspect(ctx, path)
	if err != nil {
		log.Warn(ctx, "Could not inspect output video: %v", err)
		return
	}

	log.Info(ctx, "Video file size: %.1f MB", float64(report.Size)/(1024*1024))
	log.Info(ctx, "Video duration: %.2fs", report.Duration.Seconds())
	if !report.HasAudio {
		log.Warn(ctx, "Output video has no audio track")
	}
}

const scriptTitle = "Q&A Video Script"

// writeCompanions writes the captions and the script next to the video.
func (p *implProcessor) writeCompanions(ctx context.Context, log logger.Logger, tl *timeline.Timeline, outputDir string) {
	cues := tl.Cues()

	srtPath := filepath.Join(outputDir, SRTName)
	if err := transcript.WriteSRT(srtPath, cues); err != nil {
		log.Warn(ctx, "Failed to write subtitles: %v", err)
	} else {
		log.Info(ctx, "Subtitles saved to: %s", srtPath)
	}

	scriptPath := filepath.Join(outputDir, ScriptName)
	if err := transcript.WriteScript(scriptPath, scriptTitle, cues, time.Now()); err != nil {
		log.Warn(ctx, "Failed to write script: %v", err)
	} else {
		log.Info(ctx, "Script saved to: %s", scriptPath)
	}
}
