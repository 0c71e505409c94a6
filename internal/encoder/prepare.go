package encoder

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nguyentantai21042004/qa-video/internal/speech"
	"github.com/nguyentantai21042004/qa-video/internal/timeline"
)

const (
	framesListName = "frames.ffconcat"
	audioTrackName = "audio.wav"

	// used when no segment carries audio
	defaultSampleRate = 44100
	trackBitDepth     = 16
)

// prepare writes everything ffmpeg reads: one PNG per distinct frame, an
// ffconcat list holding each segment's exact duration, and the whole audio
// track as a single mono WAV.
func prepare(tl *timeline.Timeline, workDir string) error {
	list, err := writeFrames(tl.Segments(), workDir)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(workDir, framesListName), []byte(list), 0644); err != nil {
		return fmt.Errorf("write frame list: %w", err)
	}

	if err := speech.WriteWAV(filepath.Join(workDir, audioTrackName), mixdown(tl.Segments())); err != nil {
		return fmt.Errorf("write audio track: %w", err)
	}
	return nil
}

func writeFrames(segs []timeline.Segment, workDir string) (string, error) {
	written := make(map[*image.RGBA]string)
	var b strings.Builder
	b.WriteString("ffconcat version 1.0\n")

	var last string
	for i, seg := range segs {
		name, ok := written[seg.Frame]
		if !ok {
			name = fmt.Sprintf("frame_%04d.png", i+1)
			if err := writePNG(filepath.Join(workDir, name), seg.Frame); err != nil {
				return "", fmt.Errorf("write frame %d: %w", i+1, err)
			}
			written[seg.Frame] = name
		}
		fmt.Fprintf(&b, "file '%s'\nduration %.6f\n", name, seg.Duration.Seconds())
		last = name
	}
	// the concat demuxer ignores the duration of the final entry unless the
	// file is listed once more
	if last != "" {
		fmt.Fprintf(&b, "file '%s'\n", last)
	}

	return b.String(), nil
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// mixdown concatenates every segment's audio into one mono 16-bit track at
// the sample rate of the first spoken segment. Pauses become silence. Each
// segment ends on the frame nearest its cumulative end time, so the track
// never drifts from the frame list.
func mixdown(segs []timeline.Segment) speech.PCM {
	rate := trackRate(segs)
	var (
		at      time.Duration
		written int
	)
	samples := make([]int, 0, framesAt(totalDuration(segs), rate))

	for _, seg := range segs {
		at += seg.Duration
		end := framesAt(at, rate)
		n := end - written

		var src []int
		if seg.HasAudio() {
			src = resample(to16Bit(toMono(*seg.Audio), seg.Audio.BitDepth), seg.Audio.SampleRate, rate)
		}
		if len(src) > n {
			src = src[:n]
		}
		samples = append(samples, src...)
		for range n - len(src) {
			samples = append(samples, 0)
		}
		written = end
	}

	return speech.PCM{
		Samples:    samples,
		SampleRate: rate,
		Channels:   1,
		BitDepth:   trackBitDepth,
	}
}

func trackRate(segs []timeline.Segment) int {
	for _, seg := range segs {
		if seg.HasAudio() && seg.Audio.SampleRate > 0 {
			return seg.Audio.SampleRate
		}
	}
	return defaultSampleRate
}

func totalDuration(segs []timeline.Segment) time.Duration {
	var d time.Duration
	for _, s := range segs {
		d += s.Duration
	}
	return d
}

// framesAt rounds d to the nearest whole frame at rate.
func framesAt(d time.Duration, rate int) int {
	return int((int64(d)*int64(rate) + int64(time.Second)/2) / int64(time.Second))
}

func toMono(p speech.PCM) []int {
	if p.Channels <= 1 {
		return p.Samples
	}
	out := make([]int, p.Frames())
	for i := range out {
		sum := 0
		for c := 0; c < p.Channels; c++ {
			sum += p.Samples[i*p.Channels+c]
		}
		out[i] = sum / p.Channels
	}
	return out
}

// to16Bit rescales samples of the given bit depth to signed 16-bit. 8-bit
// WAV is unsigned.
func to16Bit(s []int, bitDepth int) []int {
	switch {
	case bitDepth == 16 || bitDepth == 0:
		return s
	case bitDepth == 8:
		out := make([]int, len(s))
		for i, v := range s {
			out[i] = (v - 128) << 8
		}
		return out
	case bitDepth > 16:
		shift := uint(bitDepth - 16)
		out := make([]int, len(s))
		for i, v := range s {
			out[i] = v >> shift
		}
		return out
	default:
		shift := uint(16 - bitDepth)
		out := make([]int, len(s))
		for i, v := range s {
			out[i] = v << shift
		}
		return out
	}
}

// resample converts by linear interpolation.
func resample(s []int, from, to int) []int {
	if from == to || from <= 0 || len(s) == 0 {
		return s
	}
	n := int(int64(len(s)) * int64(to) / int64(from))
	out := make([]int, n)
	step := float64(from) / float64(to)
	for i := range out {
		pos := float64(i) * step
		j := int(pos)
		if j+1 >= len(s) {
			out[i] = s[len(s)-1]
			continue
		}
		frac := pos - float64(j)
		out[i] = int(float64(s[j])*(1-frac) + float64(s[j+1])*frac)
	}
	return out
}
