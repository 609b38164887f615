package job

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"lending-engine/internal/domain/billing"
	"lending-engine/internal/event"
	"lending-engine/internal/infrastructure/monitoring"
	"lending-engine/internal/pkg/apperrors"
	"lending-engine/internal/pkg/clock"
)

// SweepLock is an advisory mutex over concurrent sweep invocations for one
// business date. It does not guarantee correctness on its own; the
// billing-done compare-and-set does.
type SweepLock interface {
	// Acquire returns false when another holder owns the date. The returned
	// release func is safe to call when acquisition succeeded.
	Acquire(ctx context.Context, businessDate time.Time) (bool, func(), error)
}

// ExecutionTracker wraps every billing sweep invocation, manual or scheduled,
// with a persisted execution record so the audit trail has no gaps.
type ExecutionTracker interface {
	RunBillingSweep(ctx context.Context, mode ExecutionMode) (*Job, *billing.SweepResult, error)

	RunJob(ctx context.Context, jobMasterID int64) (*Job, *billing.SweepResult, error)

	GetJobHistory(ctx context.Context, jobMasterID int64) ([]Job, error)

	ListJobDefinitions(ctx context.Context) ([]JobDefinition, error)
}

type trackerImpl struct {
	repo      Repository
	sweep     billing.SweepEngine
	clock     clock.Clock
	lock      SweepLock
	publisher event.Publisher
	logger    *slog.Logger
}

func NewExecutionTracker(repo Repository, sweep billing.SweepEngine, c clock.Clock, lock SweepLock, p event.Publisher, logger *slog.Logger) ExecutionTracker {
	if repo == nil || sweep == nil || c == nil || logger == nil {
		panic("ExecutionTracker dependencies cannot be nil")
	}
	if p == nil {
		p = event.NoopPublisher{}
	}
	return &trackerImpl{
		repo:      repo,
		sweep:     sweep,
		clock:     c,
		lock:      lock,
		publisher: p,
		logger:    logger.With("component", "ExecutionTracker"),
	}
}

func (t *trackerImpl) RunBillingSweep(ctx context.Context, mode ExecutionMode) (*Job, *billing.SweepResult, error) {
	var master *JobMaster
	if m, err := t.repo.GetJobMasterByName(ctx, JobNameLoanBilling); err == nil {
		master = m
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		t.logger.WarnContext(ctx, "Failed to resolve billing job definition, running unlinked", "error", err)
	}
	return t.runSweep(ctx, master, mode)
}

func (t *trackerImpl) RunJob(ctx context.Context, jobMasterID int64) (*Job, *billing.SweepResult, error) {
	master, err := t.repo.GetJobMasterByID(ctx, jobMasterID)
	if err != nil {
		return nil, nil, err
	}

	switch master.JobName {
	case JobNameLoanBilling:
		if !master.Active {
			j, err := t.recordOutcome(ctx, master, ModeManual, StatusSkipped,
				fmt.Sprintf("Job definition %s is disabled", master.JobName))
			return j, nil, err
		}
		return t.runSweep(ctx, master, ModeManual)
	default:
		j, err := t.recordOutcome(ctx, master, ModeManual, StatusSkipped,
			fmt.Sprintf("No job handler defined for: %s", master.JobName))
		return j, nil, err
	}
}

func (t *trackerImpl) runSweep(ctx context.Context, master *JobMaster, mode ExecutionMode) (*Job, *billing.SweepResult, error) {
	businessDate, dateErr := t.clock.BusinessDate(ctx)

	j := &Job{
		JobType:       JobNameLoanBilling,
		ExecutionMode: mode,
		Status:        StatusRunning,
		ProcessedDate: businessDate,
		StartTime:     time.Now(),
	}
	if master != nil {
		id := master.JobID
		j.JobMasterID = &id
		j.JobType = master.JobName
	}

	j, err := t.repo.CreateJob(ctx, j)
	if err != nil {
		t.logger.ErrorContext(ctx, "Failed to create job execution record", "error", err)
		return nil, nil, err
	}
	logCtx := t.logger.With(slog.Int64("seqNo", j.SeqNo), slog.String("mode", string(mode)))
	logCtx.InfoContext(ctx, "Starting billing sweep job", "businessDate", businessDate)

	if dateErr != nil {
		t.finish(ctx, j, StatusFailed, fmt.Sprintf("Billing sweep failed: %s", dateErr.Error()))
		monitoring.RecordSweep(string(StatusFailed), string(mode), 0)
		return j, nil, dateErr
	}

	if t.lock != nil {
		acquired, release, lockErr := t.lock.Acquire(ctx, businessDate)
		if lockErr != nil {
			logCtx.WarnContext(ctx, "Sweep lock unavailable, proceeding without it", "error", lockErr)
		} else if !acquired {
			t.finish(ctx, j, StatusSkipped,
				fmt.Sprintf("Another sweep is already running for business date %s", businessDate.Format(time.DateOnly)))
			monitoring.RecordSweep(string(StatusSkipped), string(mode), 0)
			return j, nil, nil
		} else {
			defer release()
		}
	}

	result, sweepErr := t.sweep.Run(ctx)
	if sweepErr != nil {
		t.finish(ctx, j, StatusFailed, fmt.Sprintf("Billing sweep failed: %s", sweepErr.Error()))
		monitoring.RecordSweep(string(StatusFailed), string(mode), 0)
		return j, nil, sweepErr
	}

	t.finish(ctx, j, StatusCompleted, result.Remarks)
	monitoring.RecordSweep(string(StatusCompleted), string(mode), result.ProcessedCount)

	if pubErr := t.publisher.PublishBillingSweepCompleted(ctx, event.BillingSweepCompletedEvent{
		BillingDate:    result.BillingDate,
		ProcessedCount: result.ProcessedCount,
		ExecutionMode:  string(mode),
		JobSeqNo:       j.SeqNo,
		Timestamp:      time.Now(),
	}); pubErr != nil {
		logCtx.WarnContext(ctx, "Failed to publish sweep completed event", "error", pubErr)
	}

	logCtx.InfoContext(ctx, "Billing sweep job finished", "status", j.Status, "processed", result.ProcessedCount)
	return j, result, nil
}

// recordOutcome persists a job record that never ran the sweep (skips).
func (t *trackerImpl) recordOutcome(ctx context.Context, master *JobMaster, mode ExecutionMode, status Status, remarks string) (*Job, error) {
	businessDate, dateErr := t.clock.BusinessDate(ctx)
	if dateErr != nil {
		t.logger.WarnContext(ctx, "Failed to read business date for job record", "error", dateErr)
	}

	j := &Job{
		JobType:       master.JobName,
		ExecutionMode: mode,
		Status:        StatusRunning,
		ProcessedDate: businessDate,
		StartTime:     time.Now(),
	}
	id := master.JobID
	j.JobMasterID = &id

	j, err := t.repo.CreateJob(ctx, j)
	if err != nil {
		return nil, err
	}
	t.finish(ctx, j, status, remarks)
	return j, nil
}

func (t *trackerImpl) finish(ctx context.Context, j *Job, status Status, remarks string) {
	now := time.Now()
	j.Status = status
	j.Remarks = remarks
	j.EndTime = &now

	if err := t.repo.UpdateJob(ctx, j); err != nil {
		t.logger.ErrorContext(ctx, "Failed to finalize job execution record", "seqNo", j.SeqNo, "error", err)
	}
}

func (t *trackerImpl) GetJobHistory(ctx context.Context, jobMasterID int64) ([]Job, error) {
	if _, err := t.repo.GetJobMasterByID(ctx, jobMasterID); err != nil {
		return nil, err
	}
	return t.repo.GetJobHistory(ctx, jobMasterID)
}

func (t *trackerImpl) ListJobDefinitions(ctx context.Context) ([]JobDefinition, error) {
	masters, err := t.repo.ListJobMasters(ctx)
	if err != nil {
		return nil, err
	}

	defs := make([]JobDefinition, 0, len(masters))
	for _, m := range masters {
		def := JobDefinition{JobMaster: m, LastStatus: "NEVER_RUN"}
		last, err := t.repo.GetLastExecution(ctx, m.JobID)
		if err == nil {
			def.LastStatus = string(last.Status)
			start := last.StartTime
			def.LastRunTime = &start
		} else if !errors.Is(err, apperrors.ErrNotFound) {
			t.logger.WarnContext(ctx, "Failed to load last execution for job definition", "jobID", m.JobID, "error", err)
		}
		defs = append(defs, def)
	}
	return defs, nil
}
