package timeline

import (
	"errors"
	"fmt"
	"time"
)

var ErrEmpty = errors.New("timeline has no segments")

// Timeline is the ordered concatenation of every segment in a run.
type Timeline struct {
	segments []Segment
}

func New() *Timeline {
	return &Timeline{}
}

// Append adds segments at the end, keeping their order.
func (t *Timeline) Append(segs ...Segment) {
	t.segments = append(t.segments, segs...)
}

func (t *Timeline) Segments() []Segment {
	return t.segments
}

func (t *Timeline) Len() int {
	return len(t.segments)
}

// Duration is the sum of all segment durations.
func (t *Timeline) Duration() time.Duration {
	var total time.Duration
	for _, s := range t.segments {
		total += s.Duration
	}
	return total
}

// HasAudio reports whether any segment carries speech.
func (t *Timeline) HasAudio() bool {
	for _, s := range t.segments {
		if s.HasAudio() {
			return true
		}
	}
	return false
}

// Validate checks the timeline can be encoded without audio/video drift.
func (t *Timeline) Validate() error {
	if len(t.segments) == 0 {
		return ErrEmpty
	}
	for i, s := range t.segments {
		if s.Frame == nil {
			return fmt.Errorf("segment %d (%s): no frame", i, s.Kind)
		}
		if s.Duration <= 0 {
			return fmt.Errorf("segment %d (%s): duration %s is not positive", i, s.Kind, s.Duration)
		}
		if s.HasAudio() && s.Audio.Duration() != s.Duration {
			return fmt.Errorf("segment %d (%s): audio lasts %s but frame lasts %s", i, s.Kind, s.Audio.Duration(), s.Duration)
		}
	}
	return nil
}

// Cue is a captioned span of the timeline.
type Cue struct {
	Index int
	Kind  Kind
	Start time.Duration
	End   time.Duration
	Text  string
}

// Cues lists the spoken segments with their absolute positions. Pauses only
// advance the clock.
func (t *Timeline) Cues() []Cue {
	var (
		cues []Cue
		at   time.Duration
	)
	for _, s := range t.segments {
		if s.Kind != KindPause {
			cues = append(cues, Cue{
				Index: len(cues) + 1,
				Kind:  s.Kind,
				Start: at,
				End:   at + s.Duration,
				Text:  s.Text,
			})
		}
		at += s.Duration
	}
	return cues
}
