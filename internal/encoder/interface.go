package encoder

import (
	"context"
	"time"

	"github.com/nguyentantai21042004/qa-video/internal/timeline"
)

// Encoder writes a timeline to a single MP4 file.
type Encoder interface {
	// Encode renders tl into outputPath. Intermediate files go to workDir,
	// which the caller owns and removes. outputPath only ever appears
	// complete.
	Encode(ctx context.Context, tl *timeline.Timeline, workDir, outputPath string) (*Result, error)
	// Inspect reports what an encoded file actually contains.
	Inspect(ctx context.Context, path string) (*Report, error)
}

// Result describes a successful encode.
type Result struct {
	Path         string
	AudioCodec   string
	UsedFallback bool
}

// Report is the ffprobe view of an output file.
type Report struct {
	Duration time.Duration
	HasVideo bool
	HasAudio bool
	Size     int64
}
