package datastore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/coreybb/daybrief/models"
)

type ScanRepository struct {
	db *sql.DB
}

func NewScanRepository(db *sql.DB) *ScanRepository {
	return &ScanRepository{db: db}
}

// InsertScanLog records that a fetch-and-rank run completed at the given
// time. This is the only write path for scan_log rows.
func (r *ScanRepository) InsertScanLog(ctx context.Context, scanDate time.Time) error {
	entry := models.ScanLog{
		ID:       uuid.NewString(),
		ScanDate: scanDate,
	}

	query := `
		INSERT INTO scan_log (id, scan_date)
		VALUES ($1, $2)
	`
	_, err := r.db.ExecContext(ctx, query, entry.ID, entry.ScanDate)
	if err != nil {
		return fmt.Errorf("failed to insert scan log: %w", err)
	}
	return nil
}

// HasScanSince reports whether any scan-log row carries a scan_date at or
// after the cutoff. The comparison is inclusive.
func (r *ScanRepository) HasScanSince(ctx context.Context, cutoff time.Time) (bool, error) {
	query := `
		SELECT COUNT(*)
		FROM scan_log
		WHERE scan_date >= $1
	`
	var count int64
	if err := r.db.QueryRowContext(ctx, query, cutoff).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to count scan log rows: %w", err)
	}
	return count > 0, nil
}
