package postgres

import (
	"context"
	"log/slog"
	"time"

	"lending-engine/internal/pkg/clock"
)

// SystemDateRepository backs the business-date clock with a single-row table.
type SystemDateRepository struct {
	db     DBPool
	logger *slog.Logger
}

var _ clock.SystemDateStore = (*SystemDateRepository)(nil)

func NewSystemDateRepository(db DBPool, logger *slog.Logger) *SystemDateRepository {
	if db == nil {
		panic("SystemDateRepository: db pool cannot be nil")
	}
	return &SystemDateRepository{db: db, logger: logger.With("component", "SystemDateRepository")}
}

func (r *SystemDateRepository) GetSystemDate(ctx context.Context) (time.Time, error) {
	query := `SELECT business_date FROM system_dates ORDER BY id LIMIT 1`

	var date time.Time
	start := time.Now()
	err := r.db.QueryRow(ctx, query).Scan(&date)
	track("get_system_date", start, err)
	if err != nil {
		return time.Time{}, translateDBError(err, "system_dates")
	}
	return date, nil
}

func (r *SystemDateRepository) UpdateSystemDate(ctx context.Context, date time.Time, updatedBy string) error {
	query := `
		INSERT INTO system_dates (id, business_date, updated_by, updated_at)
		VALUES (1, $1, $2, NOW())
		ON CONFLICT (id) DO UPDATE
		SET business_date = EXCLUDED.business_date,
			updated_by = EXCLUDED.updated_by,
			updated_at = NOW()`

	start := time.Now()
	_, err := r.db.Exec(ctx, query, date, updatedBy)
	track("update_system_date", start, err)
	if err != nil {
		return translateDBError(err, "system_dates")
	}

	r.logger.InfoContext(ctx, "System date updated", "businessDate", date.Format(time.DateOnly), "updatedBy", updatedBy)
	return nil
}
