package timeline

import (
	"image"
	"time"

	"github.com/nguyentantai21042004/qa-video/internal/speech"
)

// Kind says what a segment shows.
type Kind int

const (
	KindQuestion Kind = iota
	KindAnswer
	KindPause
)

func (k Kind) String() string {
	switch k {
	case KindQuestion:
		return "question"
	case KindAnswer:
		return "answer"
	case KindPause:
		return "pause"
	default:
		return "unknown"
	}
}

// Segment is one timed unit of playback: a still frame, how long it stays on
// screen and, except for pauses, the speech played over it.
type Segment struct {
	Kind     Kind
	Text     string
	Frame    *image.RGBA
	Duration time.Duration
	Audio    *speech.PCM
}

// Spoken builds a segment whose screen time is exactly the audio's length.
func Spoken(kind Kind, text string, frame *image.RGBA, audio speech.PCM) Segment {
	return Segment{
		Kind:     kind,
		Text:     text,
		Frame:    frame,
		Duration: audio.Duration(),
		Audio:    &audio,
	}
}

// Pause builds a silent segment.
func Pause(frame *image.RGBA, d time.Duration) Segment {
	return Segment{
		Kind:     KindPause,
		Frame:    frame,
		Duration: d,
	}
}

func (s Segment) HasAudio() bool {
	return s.Audio != nil
}
