package batch

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"lending-engine/internal/domain/job"
)

// BillingSweepJob is the cron entrypoint for the nightly billing sweep. It
// delegates to the execution tracker so scheduled runs share one code path
// with manually triggered ones.
type BillingSweepJob struct {
	tracker job.ExecutionTracker
	logger  *slog.Logger
}

func NewBillingSweepJob(tracker job.ExecutionTracker, logger *slog.Logger) *BillingSweepJob {
	if tracker == nil || logger == nil {
		panic("BillingSweepJob dependencies cannot be nil")
	}
	return &BillingSweepJob{
		tracker: tracker,
		logger:  logger.With("job", "BillingSweep"),
	}
}

func (j *BillingSweepJob) Run(ctx context.Context) error {
	startTime := time.Now()
	j.logger.InfoContext(ctx, "Starting scheduled billing sweep job.")

	record, result, err := j.tracker.RunBillingSweep(ctx, job.ModeAutomatic)
	if err != nil {
		j.logger.ErrorContext(ctx, "Scheduled billing sweep failed.",
			slog.Any("error", err), slog.Duration("duration", time.Since(startTime)))
		return fmt.Errorf("billing sweep job failed: %w", err)
	}

	logCtx := j.logger.With(slog.Duration("duration", time.Since(startTime)))
	if record != nil {
		logCtx = logCtx.With(slog.Int64("seqNo", record.SeqNo), slog.String("status", string(record.Status)))
	}
	if result != nil {
		logCtx = logCtx.With(
			slog.Int("processed", result.ProcessedCount),
			slog.Int("errors", result.ErrorCount),
		)
	}
	logCtx.InfoContext(ctx, "Scheduled billing sweep job finished.")
	return nil
}

// SystemDateAdvanceJob rolls the business date forward to the wall-clock date
// once a day, so an idle installation does not fall behind real time.
type SystemDateAdvanceJob struct {
	advancer DateAdvancer
	logger   *slog.Logger
}

// DateAdvancer is implemented by the system date clock.
type DateAdvancer interface {
	Advance(ctx context.Context, updatedBy string) (time.Time, error)
}

func NewSystemDateAdvanceJob(advancer DateAdvancer, logger *slog.Logger) *SystemDateAdvanceJob {
	if advancer == nil || logger == nil {
		panic("SystemDateAdvanceJob dependencies cannot be nil")
	}
	return &SystemDateAdvanceJob{
		advancer: advancer,
		logger:   logger.With("job", "SystemDateAdvance"),
	}
}

func (j *SystemDateAdvanceJob) Run(ctx context.Context) error {
	date, err := j.advancer.Advance(ctx, "SYSTEM")
	if err != nil {
		j.logger.ErrorContext(ctx, "Failed to advance system date.", slog.Any("error", err))
		return fmt.Errorf("system date advance job failed: %w", err)
	}
	j.logger.InfoContext(ctx, "System date advanced by scheduler.", "businessDate", date.Format(time.DateOnly))
	return nil
}
