package encoder

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/google/uuid"
	"github.com/nguyentantai21042004/qa-video/internal/config"
	"github.com/nguyentantai21042004/qa-video/internal/timeline"
)

// Encode tries the primary audio profile and, if that fails, the fallback
// exactly once. ffmpeg writes to a hidden part file next to outputPath that is
// renamed into place only after a successful run.
func (e *implEncoder) Encode(ctx context.Context, tl *timeline.Timeline, workDir, outputPath string) (*Result, error) {
	if err := tl.Validate(); err != nil {
		return nil, fmt.Errorf("invalid timeline: %w", err)
	}

	e.logger.Info(ctx, "Combining %d clips (%.2fs)...", tl.Len(), tl.Duration().Seconds())
	if err := prepare(tl, workDir); err != nil {
		return nil, fmt.Errorf("prepare encoder inputs: %w", err)
	}

	partPath := filepath.Join(filepath.Dir(outputPath), fmt.Sprintf(".%s.%s.part", filepath.Base(outputPath), uuid.NewString()))
	defer os.Remove(partPath)

	e.logger.Info(ctx, "Writing final video...")
	primaryErr := e.attempt(ctx, workDir, e.ffmpeg.Primary, partPath)
	if primaryErr == nil {
		return e.finish(partPath, outputPath, e.ffmpeg.Primary.Codec, false)
	}

	e.logger.Warn(ctx, "First attempt failed: %v", primaryErr)
	if !e.shouldFallback(primaryErr) {
		e.logger.Error(ctx, "Failure is not recoverable, skipping alternate audio codec")
		return nil, &EncodingError{Primary: primaryErr}
	}

	e.logger.Info(ctx, "Trying alternate audio codec (%s)...", e.ffmpeg.Fallback.Codec)
	_ = os.Remove(partPath)
	if err := e.attempt(ctx, workDir, e.ffmpeg.Fallback, partPath); err != nil {
		return nil, &EncodingError{Primary: primaryErr, Fallback: err}
	}

	return e.finish(partPath, outputPath, e.ffmpeg.Fallback.Codec, true)
}

func (e *implEncoder) attempt(ctx context.Context, workDir string, profile config.AudioProfile, out string) error {
	absOut, err := filepath.Abs(out)
	if err != nil {
		return fmt.Errorf("resolve output path: %w", err)
	}

	// Inputs are referenced relative to workDir so the concat demuxer never
	// has to deal with quoting absolute paths.
	if _, err := e.executor.ExecuteInDir(ctx, workDir, e.ffmpeg.Binary, e.buildArgs(profile, absOut)...); err != nil {
		return fmt.Errorf("ffmpeg (%s): %w", profile.Codec, err)
	}

	if _, err := os.Stat(absOut); err != nil {
		return errNoOutput
	}
	return nil
}

// buildArgs assembles one ffmpeg invocation.
// -f concat -safe 0: still frames with per-entry durations
// -map: video from the frame list, audio from the mixed track
// -r: constant output frame rate
// -pix_fmt yuv420p: widest player compatibility for H.264
// -f mp4: the part file has no .mp4 extension to infer the container from
func (e *implEncoder) buildArgs(profile config.AudioProfile, out string) []string {
	args := []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-f", "concat", "-safe", "0", "-i", framesListName,
		"-i", audioTrackName,
		"-map", "0:v:0",
		"-map", "1:a:0",
		"-r", strconv.Itoa(e.fps),
		"-c:v", e.ffmpeg.VideoCodec,
		"-pix_fmt", e.ffmpeg.PixelFormat,
		"-c:a", profile.Codec,
	}
	if profile.Bitrate != "" {
		args = append(args, "-b:a", profile.Bitrate)
	}
	args = append(args, profile.Args...)
	args = append(args, "-f", "mp4", out)
	return args
}

func (e *implEncoder) finish(partPath, outputPath, codec string, fallback bool) (*Result, error) {
	if err := os.Rename(partPath, outputPath); err != nil {
		return nil, fmt.Errorf("move output to final location: %w", err)
	}
	return &Result{Path: outputPath, AudioCodec: codec, UsedFallback: fallback}, nil
}

func (e *implEncoder) shouldFallback(err error) bool {
	if e.ffmpeg.FallbackPolicy == config.FallbackAlways {
		return true
	}
	return !unrecoverable(err)
}

// unrecoverable matches failures a different audio codec cannot fix.
func unrecoverable(err error) bool {
	switch {
	case errors.Is(err, syscall.ENOSPC),
		errors.Is(err, exec.ErrNotFound),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return true
	}
	return strings.Contains(err.Error(), "No space left on device")
}
