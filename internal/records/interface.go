package records

import (
	"context"
	"errors"

	"github.com/nguyentantai21042004/meeting-notes/internal/models"
)

// ErrRecordNotFound is returned when no record exists for an id.
var ErrRecordNotFound = errors.New("transcript record not found")

// Store is the durable per-upload record store. Records are created by the
// upload flow; the pipeline only reads them and sets combined_summary.
type Store interface {
	Get(ctx context.Context, id string) (models.TranscriptRecord, error)
	// UpdateSummary sets combined_summary on an existing record. It never
	// creates a record and returns ErrRecordNotFound when none matches.
	UpdateSummary(ctx context.Context, id, summary string) error
	Close() error
}
