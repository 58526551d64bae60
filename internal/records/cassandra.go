package records

import (
	"context"
	"errors"
	"fmt"

	"github.com/gocql/gocql"

	"github.com/nguyentantai21042004/meeting-notes/internal/models"
)

func (s *implCassandra) Get(ctx context.Context, id string) (models.TranscriptRecord, error) {
	query := fmt.Sprintf(`
		SELECT file_name, file_owner, file_timestamp, file_original, combined_summary
		FROM %s
		WHERE file_name = ?
	`, s.table)

	var rec models.TranscriptRecord
	err := s.session.Query(query, id).WithContext(ctx).Scan(
		&rec.ID, &rec.Owner, &rec.CreatedAt, &rec.OriginalFilename, &rec.CombinedSummary,
	)
	if errors.Is(err, gocql.ErrNotFound) {
		return models.TranscriptRecord{}, fmt.Errorf("%w: %s", ErrRecordNotFound, id)
	}
	if err != nil {
		return models.TranscriptRecord{}, fmt.Errorf("error fetching record %s: %w", id, err)
	}
	return rec, nil
}

// UpdateSummary uses a lightweight transaction so a missing record is never
// created by the upsert semantics of UPDATE.
func (s *implCassandra) UpdateSummary(ctx context.Context, id, summary string) error {
	query := fmt.Sprintf(`UPDATE %s SET combined_summary = ? WHERE file_name = ? IF EXISTS`, s.table)

	applied, err := s.session.Query(query, summary, id).WithContext(ctx).MapScanCAS(map[string]interface{}{})
	if err != nil {
		return fmt.Errorf("error updating record %s: %w", id, err)
	}
	if !applied {
		return fmt.Errorf("%w: %s", ErrRecordNotFound, id)
	}
	return nil
}

func (s *implCassandra) Close() error {
	s.session.Close()
	return nil
}
