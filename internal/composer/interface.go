package composer

import (
	"context"

	"github.com/nguyentantai21042004/qa-video/internal/models"
	"github.com/nguyentantai21042004/qa-video/internal/timeline"
)

// SegmentsPerPair is how many segments Compose returns on success.
const SegmentsPerPair = 4

// Composer turns one Q&A pair into question, pause, answer, pause.
type Composer interface {
	Compose(ctx context.Context, pair models.QAPair, index int) ([]timeline.Segment, error)
}
