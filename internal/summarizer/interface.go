package summarizer

import (
	"context"

	"github.com/nguyentantai21042004/meeting-notes/internal/models"
)

// Summarizer produces one bounded-length summary from transcript chunks
// using map-reduce over a text-completion capability.
type Summarizer interface {
	Summarize(ctx context.Context, chunks []models.Chunk) (models.SummaryResult, error)
}
