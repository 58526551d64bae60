package records

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/nguyentantai21042004/meeting-notes/internal/models"
)

func (s *implPostgres) Get(ctx context.Context, id string) (models.TranscriptRecord, error) {
	query := fmt.Sprintf(`
		SELECT file_name, file_owner, file_timestamp, file_original, combined_summary
		FROM %s
		WHERE file_name = $1
	`, s.table)

	var row pgRecord
	err := s.pool.QueryRow(ctx, query, id).Scan(
		&row.ID, &row.Owner, &row.CreatedAt, &row.OriginalFilename, &row.CombinedSummary,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.TranscriptRecord{}, fmt.Errorf("%w: %s", ErrRecordNotFound, id)
	}
	if err != nil {
		return models.TranscriptRecord{}, fmt.Errorf("fetch record %s: %w", id, err)
	}
	return row.toModel(), nil
}

// pgRecord is a transcripts row. Every column except the key may be NULL
// while the upload flow still holds the placeholder.
type pgRecord struct {
	ID               string
	Owner            pgtype.Text
	CreatedAt        pgtype.Timestamptz
	OriginalFilename pgtype.Text
	CombinedSummary  pgtype.Text
}

func (r pgRecord) toModel() models.TranscriptRecord {
	rec := models.TranscriptRecord{
		ID:               r.ID,
		Owner:            r.Owner.String,
		OriginalFilename: r.OriginalFilename.String,
		CombinedSummary:  r.CombinedSummary.String,
	}
	if r.CreatedAt.Valid {
		rec.CreatedAt = r.CreatedAt.Time
	}
	return rec
}

func (s *implPostgres) UpdateSummary(ctx context.Context, id, summary string) error {
	query := fmt.Sprintf(`UPDATE %s SET combined_summary = $1 WHERE file_name = $2`, s.table)

	tag, err := s.pool.Exec(ctx, query, summary, id)
	if err != nil {
		return fmt.Errorf("update record %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", ErrRecordNotFound, id)
	}
	return nil
}

func (s *implPostgres) Close() error {
	s.pool.Close()
	return nil
}
