package processor

import (
	"context"
	"errors"

	"github.com/nguyentantai21042004/qa-video/internal/models"
)

// Output file names, all written to the run's output directory.
const (
	VideoName  = "qa_video.mp4"
	SRTName    = "qa_video.srt"
	ScriptName = "qa_video_script.docx"
)

// ErrNoPairs is returned when the input holds no question/answer rows.
var ErrNoPairs = errors.New("no Q&A pairs found")

// Processor turns Q&A input into a narrated video.
type Processor interface {
	// Process handles one CSV dropped into the watch directory. Output goes
	// to a directory named after the file under the configured output path.
	Process(ctx context.Context, csvPath string) error
	// Run reads csvPath and builds the video in outputDir.
	Run(ctx context.Context, csvPath, outputDir string) (string, error)
	// Build renders pairs, in order, into outputDir and returns the video path.
	Build(ctx context.Context, pairs []models.QAPair, outputDir string) (string, error)
}
