package encoder

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"
)

type probeOutput struct {
	Streams []struct {
		CodecType string `json:"codec_type"`
	} `json:"streams"`
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

// Inspect runs ffprobe on path.
func (e *implEncoder) Inspect(ctx context.Context, path string) (*Report, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat output: %w", err)
	}

	out, err := e.executor.Execute(ctx, e.ffmpeg.ProbeBinary,
		"-v", "error",
		"-show_entries", "format=duration:stream=codec_type",
		"-of", "json",
		path,
	)
	if err != nil {
		return nil, fmt.Errorf("ffprobe: %w", err)
	}

	report, err := parseProbe([]byte(out))
	if err != nil {
		return nil, err
	}
	report.Size = info.Size()
	return report, nil
}

func parseProbe(data []byte) (*Report, error) {
	var po probeOutput
	if err := json.Unmarshal(data, &po); err != nil {
		return nil, fmt.Errorf("parse ffprobe output: %w", err)
	}

	report := &Report{}
	for _, s := range po.Streams {
		switch s.CodecType {
		case "video":
			report.HasVideo = true
		case "audio":
			report.HasAudio = true
		}
	}

	if po.Format.Duration != "" {
		secs, err := strconv.ParseFloat(po.Format.Duration, 64)
		if err != nil {
			return nil, fmt.Errorf("parse duration %q: %w", po.Format.Duration, err)
		}
		report.Duration = time.Duration(secs * float64(time.Second))
	}
	return report, nil
}
