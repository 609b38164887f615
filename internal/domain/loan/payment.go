package loan

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"lending-engine/internal/event"
	"lending-engine/internal/infrastructure/monitoring"
	"lending-engine/internal/pkg/apperrors"
	"lending-engine/internal/pkg/clock"
)

type PaymentService interface {
	// ApplyPayment applies a cash payment to one installment, splitting it
	// into interest and principal against the loan's current balance.
	ApplyPayment(ctx context.Context, repaymentID int64, amount decimal.Decimal) (*Repayment, error)

	GetRepayment(ctx context.Context, repaymentID int64) (*Repayment, error)

	DeleteRepayment(ctx context.Context, repaymentID int64) error
}

type paymentServiceImpl struct {
	repo      Repository
	clock     clock.Clock
	publisher event.Publisher
	logger    *slog.Logger
}

func NewPaymentService(r Repository, c clock.Clock, p event.Publisher, logger *slog.Logger) PaymentService {
	if p == nil {
		p = event.NoopPublisher{}
	}
	return &paymentServiceImpl{repo: r, clock: c, publisher: p, logger: logger.With("component", "PaymentService")}
}

func (s *paymentServiceImpl) ApplyPayment(ctx context.Context, repaymentID int64, amount decimal.Decimal) (result *Repayment, err error) {
	s.logger.InfoContext(ctx, "Applying payment", "repaymentID", repaymentID, "amount", amount.String())

	defer func() {
		status := "success"
		if err != nil {
			status = "failure"
		}
		monitoring.RecordPayment(status)
	}()

	if amount.LessThanOrEqual(decimal.Zero) {
		s.logger.WarnContext(ctx, "Rejecting non-positive payment", "repaymentID", repaymentID, "amount", amount.String())
		return nil, fmt.Errorf("%w: payment amount %s must be positive", apperrors.ErrInvalidPaymentAmount, amount.String())
	}

	businessDate, err := s.clock.BusinessDate(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read business date: %v", apperrors.ErrInternalServer, err)
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: could not begin transaction: %v", apperrors.ErrInternalServer, err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = s.repo.RollbackTx(ctx, tx)
			panic(p)
		} else if err != nil {
			_ = s.repo.RollbackTx(ctx, tx)
		}
	}()

	// Repayment then loan, both locked, so a concurrent billing sweep cannot
	// interleave its defensive recomputation with this split.
	repayment, err := s.repo.GetRepaymentForUpdate(ctx, tx, repaymentID)
	if err != nil {
		return nil, err
	}
	l, err := s.repo.GetLoanForUpdate(ctx, tx, repayment.LoanID)
	if err != nil {
		return nil, err
	}
	if l.Status == StatusPending {
		return nil, fmt.Errorf("%w: loan %d has not been approved", apperrors.ErrInvalidState, l.LoanID)
	}

	// Interest is recomputed against the current balance rather than the
	// originally scheduled value, so prior partial or extra payments lower
	// the interest charged here.
	currentBalance := l.BalancePrincipal
	interestDue := currentBalance.Mul(MonthlyRate(l.InterestRate)).Round(2)

	interestPaid := decimal.Min(amount, interestDue)
	principalPaid := decimal.Max(amount.Sub(interestPaid), decimal.Zero)

	repayment.AmountPaid = amount.Round(2)
	repayment.InterestPaid = interestPaid
	repayment.PrincipalPaid = principalPaid
	repayment.OutstandingInterest = decimal.Max(interestDue.Sub(interestPaid), decimal.Zero)
	repayment.RemainingPrincipal = decimal.Max(currentBalance.Sub(principalPaid), decimal.Zero)
	repayment.PaymentDate = &businessDate

	switch {
	case amount.GreaterThanOrEqual(repayment.TotalDue):
		repayment.Status = RepaymentPaid
	case amount.GreaterThan(decimal.Zero):
		repayment.Status = RepaymentPartial
	default:
		repayment.Status = RepaymentUnpaid
	}

	newBalance := decimal.Max(currentBalance.Sub(principalPaid), decimal.Zero)
	loanStatus := l.Status
	if newBalance.IsZero() {
		loanStatus = StatusClosed
	}

	if err = s.repo.UpdateRepaymentInTx(ctx, tx, repayment); err != nil {
		return nil, err
	}
	if err = s.repo.UpdateLoanBalanceInTx(ctx, tx, l.LoanID, newBalance, loanStatus); err != nil {
		return nil, err
	}
	if err = s.repo.CommitTx(ctx, tx); err != nil {
		return nil, err
	}

	if pubErr := s.publisher.PublishPaymentApplied(ctx, event.PaymentAppliedEvent{
		LoanID:        l.LoanID,
		RepaymentID:   repayment.RepaymentID,
		AmountPaid:    repayment.AmountPaid.StringFixed(2),
		PrincipalPaid: principalPaid.StringFixed(2),
		InterestPaid:  interestPaid.StringFixed(2),
		LoanBalance:   newBalance.StringFixed(2),
		LoanClosed:    loanStatus == StatusClosed,
		Timestamp:     time.Now(),
	}); pubErr != nil {
		s.logger.WarnContext(ctx, "Failed to publish payment applied event", "repaymentID", repaymentID, "error", pubErr)
	}

	s.logger.InfoContext(ctx, "Payment applied",
		"repaymentID", repaymentID,
		"loanID", l.LoanID,
		"interestPaid", interestPaid.String(),
		"principalPaid", principalPaid.String(),
		"newBalance", newBalance.String(),
		"status", repayment.Status,
	)
	return repayment, nil
}

func (s *paymentServiceImpl) GetRepayment(ctx context.Context, repaymentID int64) (*Repayment, error) {
	return s.repo.GetRepaymentByID(ctx, repaymentID)
}

// DeleteRepayment removes a single installment, refused once it is paid.
func (s *paymentServiceImpl) DeleteRepayment(ctx context.Context, repaymentID int64) error {
	repayment, err := s.repo.GetRepaymentByID(ctx, repaymentID)
	if err != nil {
		return err
	}
	if repayment.Status == RepaymentPaid {
		return fmt.Errorf("%w: paid repayments cannot be deleted", apperrors.ErrInvalidState)
	}
	return s.repo.DeleteRepayment(ctx, repaymentID)
}
