package persister

import (
	"context"

	"github.com/nguyentantai21042004/meeting-notes/internal/document"
	"github.com/nguyentantai21042004/meeting-notes/internal/models"
)

// Input is everything one successful run produced for a transcript.
type Input struct {
	TranscriptID string
	Summary      models.SummaryResult
	Translation  *models.TranslationResult
	Document     document.Document
}

// Persister is the terminal pipeline stage. Every durable write is an
// overwrite by key, so Persist may be repeated safely; the notification is
// the only side effect that is not idempotent.
type Persister interface {
	Persist(ctx context.Context, in Input) error
}
