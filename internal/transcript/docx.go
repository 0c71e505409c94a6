package transcript

import (
	"fmt"
	"time"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"
	"github.com/nguyentantai21042004/qa-video/internal/timeline"
)

const (
	fontName  = "Times New Roman"
	fontSize  = 13
	titleSize = 16
	textColor = "000000"
)

// WriteScript writes a narration script for the video: a title, then every
// spoken cue with its start time. Questions are bold.
func WriteScript(path, title string, cues []timeline.Cue, createdAt time.Time) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return fmt.Errorf("create document: %w", err)
	}

	addRun(doc.AddParagraph(""), title, true, titleSize)
	addRun(doc.AddParagraph(""), createdAt.Format("2006-01-02 15:04"), false, fontSize)
	doc.AddParagraph("")

	for _, c := range cues {
		p := doc.AddParagraph("")
		addRun(p, "["+clock(c.Start)+"] ", false, fontSize)
		addRun(p, c.Text, c.Kind == timeline.KindQuestion, fontSize)
		if c.Kind == timeline.KindAnswer {
			doc.AddParagraph("")
		}
	}

	if err := doc.SaveTo(path); err != nil {
		return fmt.Errorf("save document: %w", err)
	}
	return nil
}

func addRun(p *docx.Paragraph, text string, bold bool, size uint64) {
	run := p.AddText(text).Font(fontName).Size(size).Color(textColor)
	if bold {
		run.Bold(true)
	}
}

// clock formats d as MM:SS, or H:MM:SS past the first hour.
func clock(d time.Duration) string {
	s := int(d / time.Second)
	if s >= 3600 {
		return fmt.Sprintf("%d:%02d:%02d", s/3600, s/60%60, s%60)
	}
	return fmt.Sprintf("%02d:%02d", s/60, s%60)
}
