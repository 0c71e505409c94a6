package transcript

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/nguyentantai21042004/qa-video/internal/timeline"
)

// FormatSRT renders cues as SubRip text. Cues are renumbered from 1 in the
// order given.
func FormatSRT(cues []timeline.Cue) string {
	var b strings.Builder
	for i, c := range cues {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%d\n%s --> %s\n%s\n", i+1, srtTimestamp(c.Start), srtTimestamp(c.End), c.Text)
	}
	return b.String()
}

// WriteSRT writes cues to path.
func WriteSRT(path string, cues []timeline.Cue) error {
	if err := os.WriteFile(path, []byte(FormatSRT(cues)), 0644); err != nil {
		return fmt.Errorf("write srt: %w", err)
	}
	return nil
}

// srtTimestamp formats d as HH:MM:SS,mmm, truncating to the millisecond.
func srtTimestamp(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	ms := d.Milliseconds()
	return fmt.Sprintf("%02d:%02d:%02d,%03d", ms/3600000, ms/60000%60, ms/1000%60, ms%1000)
}
