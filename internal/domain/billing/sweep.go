package billing

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"lending-engine/internal/domain/loan"
	"lending-engine/internal/pkg/clock"
)

type SweepEngine interface {
	// Run performs one billing sweep as of the current business date. A
	// failure on a single repayment is logged and does not abort the sweep;
	// only failures before the per-repayment loop propagate as an error.
	Run(ctx context.Context) (*SweepResult, error)
}

type sweepEngineImpl struct {
	repo   Repository
	clock  clock.Clock
	logger *slog.Logger
}

func NewSweepEngine(repo Repository, c clock.Clock, logger *slog.Logger) SweepEngine {
	return &sweepEngineImpl{repo: repo, clock: c, logger: logger.With("component", "SweepEngine")}
}

func (s *sweepEngineImpl) Run(ctx context.Context) (*SweepResult, error) {
	businessDate, err := s.clock.BusinessDate(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "Cannot run sweep, failed to read business date", "error", err)
		return nil, fmt.Errorf("cannot run billing sweep, failed to read business date: %w", err)
	}

	logCtx := s.logger.With(slog.Time("businessDate", businessDate))
	logCtx.InfoContext(ctx, "Starting billing sweep")

	repayments, err := s.repo.FindDueUnbilled(ctx, businessDate)
	if err != nil {
		logCtx.ErrorContext(ctx, "Cannot run sweep, failed to query due repayments", "error", err)
		return nil, fmt.Errorf("cannot run billing sweep, failed to query due repayments: %w", err)
	}

	result := &SweepResult{BillingDate: businessDate, Records: make([]Billing, 0, len(repayments))}
	if len(repayments) == 0 {
		result.Remarks = fmt.Sprintf("No repayments due for billing on %s", businessDate.Format(time.DateOnly))
		logCtx.InfoContext(ctx, "Billing sweep finished: nothing to bill")
		return result, nil
	}

	for i := range repayments {
		repayment := repayments[i]
		record, err := s.processRepayment(ctx, businessDate, &repayment)
		if err != nil {
			logCtx.ErrorContext(ctx, "Failed to bill repayment, continuing sweep",
				"repaymentID", repayment.RepaymentID, "loanID", repayment.LoanID, "error", err)
			result.ErrorCount++
			continue
		}
		if record == nil {
			// Claimed by a concurrent sweep between the select and the lock.
			result.SkippedCount++
			continue
		}
		result.Records = append(result.Records, *record)
		result.ProcessedCount++
	}

	result.Remarks = fmt.Sprintf("Billing completed for %d repayments (business date: %s)",
		result.ProcessedCount, businessDate.Format(time.DateOnly))
	if result.ErrorCount > 0 {
		result.Remarks = fmt.Sprintf("%s, %d failed", result.Remarks, result.ErrorCount)
	}

	logCtx.InfoContext(ctx, "Billing sweep finished",
		"processed", result.ProcessedCount,
		"skipped", result.SkippedCount,
		"errors", result.ErrorCount,
	)
	return result, nil
}

// processRepayment bills one repayment in its own transaction so a mid-sweep
// crash leaves already-billed rows flagged and the next run picks up exactly
// the unbilled remainder. Returns (nil, nil) when the repayment was already
// claimed by a concurrent sweep.
func (s *sweepEngineImpl) processRepayment(ctx context.Context, businessDate time.Time, repayment *loan.Repayment) (record *Billing, err error) {
	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = s.repo.RollbackTx(ctx, tx)
		}
	}()

	claimed, err := s.repo.ClaimRepaymentInTx(ctx, tx, repayment.RepaymentID)
	if err != nil {
		return nil, err
	}
	if !claimed {
		_ = s.repo.RollbackTx(ctx, tx)
		return nil, nil
	}

	totalDue := repayment.ExpectedPrincipal.Add(repayment.ExpectedInterest)

	repayment.Status = resolveStatus(businessDate, repayment, totalDue)
	repayment.RemainingPrincipal = decimal.Max(repayment.RemainingPrincipal.Sub(repayment.PrincipalPaid), decimal.Zero)
	repayment.OutstandingInterest = decimal.Max(repayment.ExpectedInterest.Sub(repayment.InterestPaid), decimal.Zero)
	repayment.BillingDone = true

	if err = s.repo.UpdateRepaymentStatusInTx(ctx, tx, repayment); err != nil {
		return nil, err
	}

	record, err = s.repo.InsertBillingInTx(ctx, tx, &Billing{
		LoanID:      repayment.LoanID,
		RepaymentID: repayment.RepaymentID,
		BillingDate: businessDate,
		DueDate:     repayment.DueDate,
		AmountDue:   totalDue,
		AmountPaid:  repayment.AmountPaid,
		Status:      repayment.Status,
		Remarks:     fmt.Sprintf("Auto-generated billing on business date: %s", businessDate.Format(time.DateOnly)),
	})
	if err != nil {
		return nil, err
	}

	if err = s.repo.CommitTx(ctx, tx); err != nil {
		return nil, err
	}
	return record, nil
}

func resolveStatus(businessDate time.Time, r *loan.Repayment, totalDue decimal.Decimal) loan.RepaymentStatus {
	switch {
	case r.AmountPaid.GreaterThanOrEqual(totalDue):
		return loan.RepaymentPaid
	case businessDate.After(r.DueDate):
		return loan.RepaymentOverdue
	case r.AmountPaid.GreaterThan(decimal.Zero):
		return loan.RepaymentPartial
	default:
		return loan.RepaymentUnpaid
	}
}
