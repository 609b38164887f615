package loan

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"lending-engine/internal/event"
	"lending-engine/internal/infrastructure/monitoring"
	"lending-engine/internal/pkg/apperrors"
	"lending-engine/internal/pkg/clock"
)

type CreateLoanParams struct {
	CustomerID   int64
	BranchID     int64
	CollateralID *int64
	LoanType     string
	Principal    decimal.Decimal
	InterestRate decimal.Decimal
	TenureMonths int
	// StartDate must be empty: it is assigned at approval, never at creation.
	StartDate *time.Time
}

type UpdateLoanParams struct {
	LoanType     *string
	InterestRate *decimal.Decimal
	TenureMonths *int
	BranchID     *int64
	CustomerID   *int64
	CollateralID *int64
}

type LoanService interface {
	CreateLoan(ctx context.Context, params CreateLoanParams) (*Loan, error)

	ApproveLoan(ctx context.Context, loanID int64) (*Loan, error)

	UpdateLoan(ctx context.Context, loanID int64, params UpdateLoanParams) (*Loan, error)

	DeactivateLoan(ctx context.Context, loanID int64) error

	SafeDeleteLoan(ctx context.Context, loanID int64) error

	GetLoan(ctx context.Context, loanID int64) (*Loan, error)

	GetRepaymentSchedule(ctx context.Context, loanID int64) ([]Repayment, error)

	ListLoans(ctx context.Context) ([]Loan, error)
}

type loanServiceImpl struct {
	repo      Repository
	clock     clock.Clock
	publisher event.Publisher
	logger    *slog.Logger
}

func NewLoanService(r Repository, c clock.Clock, p event.Publisher, logger *slog.Logger) LoanService {
	if p == nil {
		p = event.NoopPublisher{}
	}
	return &loanServiceImpl{repo: r, clock: c, publisher: p, logger: logger.With("component", "LoanService")}
}

func (s *loanServiceImpl) CreateLoan(ctx context.Context, params CreateLoanParams) (*Loan, error) {
	s.logger.InfoContext(ctx, "Creating new loan", "customerID", params.CustomerID)

	if params.StartDate != nil {
		s.logger.WarnContext(ctx, "Rejecting loan creation with explicit start date")
		return nil, fmt.Errorf("%w: start date is assigned at approval and must not be supplied", apperrors.ErrValidation)
	}

	businessDate, err := s.clock.BusinessDate(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to read business date", "error", err)
		return nil, fmt.Errorf("%w: failed to read business date: %v", apperrors.ErrInternalServer, err)
	}

	newLoan, err := NewLoan(params.CustomerID, params.BranchID, params.CollateralID, params.LoanType,
		params.Principal, params.InterestRate, params.TenureMonths, businessDate)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to build loan", "error", err)
		return nil, err
	}

	created, err := s.repo.CreateLoan(ctx, newLoan)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to save loan", "error", err)
		return nil, fmt.Errorf("%w: failed to save loan: %v", apperrors.ErrInternalServer, err)
	}

	s.logger.InfoContext(ctx, "Loan created", "loanID", created.LoanID, "loanNo", created.LoanNo)
	return created, nil
}

// ApproveLoan is the single point where a repayment schedule comes into
// existence. It sets the start date from the business date and persists the
// loan transition and the full schedule atomically.
func (s *loanServiceImpl) ApproveLoan(ctx context.Context, loanID int64) (approved *Loan, err error) {
	s.logger.InfoContext(ctx, "Approving loan", "loanID", loanID)

	l, err := s.repo.GetLoanByID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	if l.Status != StatusPending {
		s.logger.WarnContext(ctx, "Approval rejected: loan is not pending", "loanID", loanID, "status", l.Status)
		return nil, fmt.Errorf("%w: only pending loans can be approved, current status is %s", apperrors.ErrInvalidState, l.Status)
	}

	businessDate, err := s.clock.BusinessDate(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to read business date", "error", err)
		return nil, fmt.Errorf("%w: failed to read business date: %v", apperrors.ErrInternalServer, err)
	}

	maturity := businessDate.AddDate(0, l.TenureMonths, 0)
	l.StartDate = &businessDate
	l.MaturityDate = &maturity
	l.Status = StatusActive
	l.BalancePrincipal = l.Principal

	schedule, err := GenerateSchedule(l)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to generate repayment schedule", "loanID", loanID, "error", err)
		return nil, err
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: could not begin transaction: %v", apperrors.ErrInternalServer, err)
	}
	defer func() {
		if err != nil {
			_ = s.repo.RollbackTx(ctx, tx)
		}
	}()

	if err = s.repo.ApproveLoanInTx(ctx, tx, l, schedule); err != nil {
		s.logger.ErrorContext(ctx, "Failed to persist approval", "loanID", loanID, "error", err)
		return nil, err
	}
	if err = s.repo.CommitTx(ctx, tx); err != nil {
		return nil, err
	}

	monitoring.RecordLoanApproved()
	if pubErr := s.publisher.PublishLoanApproved(ctx, event.LoanApprovedEvent{
		LoanID:       l.LoanID,
		LoanNo:       l.LoanNo,
		CustomerID:   l.CustomerID,
		Principal:    l.Principal.StringFixed(2),
		StartDate:    *l.StartDate,
		MaturityDate: *l.MaturityDate,
		Timestamp:    time.Now(),
	}); pubErr != nil {
		s.logger.WarnContext(ctx, "Failed to publish loan approved event", "loanID", l.LoanID, "error", pubErr)
	}

	s.logger.InfoContext(ctx, "Loan approved", "loanID", l.LoanID, "startDate", businessDate, "installments", len(schedule))
	return l, nil
}

// UpdateLoan mutates the loan's mutable fields. Principal and the outstanding
// balance are frozen once the loan has been approved; maturity is recomputed
// from tenure only while the loan is still pending.
func (s *loanServiceImpl) UpdateLoan(ctx context.Context, loanID int64, params UpdateLoanParams) (*Loan, error) {
	s.logger.InfoContext(ctx, "Updating loan", "loanID", loanID)

	l, err := s.repo.GetLoanByID(ctx, loanID)
	if err != nil {
		return nil, err
	}

	if params.LoanType != nil {
		l.LoanType = *params.LoanType
	}
	if params.InterestRate != nil {
		if params.InterestRate.IsNegative() {
			return nil, fmt.Errorf("%w: interest rate must not be negative", apperrors.ErrValidation)
		}
		l.InterestRate = *params.InterestRate
	}
	if params.TenureMonths != nil {
		if *params.TenureMonths <= 0 {
			return nil, fmt.Errorf("%w: tenure months must be positive", apperrors.ErrValidation)
		}
		if l.Status != StatusPending {
			return nil, fmt.Errorf("%w: tenure cannot change after approval", apperrors.ErrInvalidState)
		}
		l.TenureMonths = *params.TenureMonths
	}
	if params.BranchID != nil {
		l.BranchID = *params.BranchID
	}
	if params.CustomerID != nil {
		l.CustomerID = *params.CustomerID
	}
	if params.CollateralID != nil {
		l.CollateralID = params.CollateralID
	}

	updated, err := s.repo.UpdateLoan(ctx, l)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to update loan", "loanID", loanID, "error", err)
		return nil, err
	}
	return updated, nil
}

// DeactivateLoan flips the loan to inactive and explicitly cascades the same
// flip onto every repayment in the schedule.
func (s *loanServiceImpl) DeactivateLoan(ctx context.Context, loanID int64) (err error) {
	s.logger.InfoContext(ctx, "Deactivating loan", "loanID", loanID)

	if _, err = s.repo.GetLoanByID(ctx, loanID); err != nil {
		return err
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("%w: could not begin transaction: %v", apperrors.ErrInternalServer, err)
	}
	defer func() {
		if err != nil {
			_ = s.repo.RollbackTx(ctx, tx)
		}
	}()

	if err = s.repo.UpdateLoanStatusInTx(ctx, tx, loanID, StatusInactive); err != nil {
		return err
	}
	deactivated, err := s.repo.DeactivateRepaymentsInTx(ctx, tx, loanID)
	if err != nil {
		return err
	}
	if err = s.repo.CommitTx(ctx, tx); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "Loan deactivated", "loanID", loanID, "repayments_deactivated", deactivated)
	return nil
}

func (s *loanServiceImpl) SafeDeleteLoan(ctx context.Context, loanID int64) (err error) {
	s.logger.InfoContext(ctx, "Deleting loan", "loanID", loanID)

	l, err := s.repo.GetLoanByID(ctx, loanID)
	if err != nil {
		return err
	}
	if !l.IsDeletable() {
		s.logger.WarnContext(ctx, "Delete rejected: loan must be inactive or closed", "loanID", loanID, "status", l.Status)
		return fmt.Errorf("%w: only inactive or closed loans can be deleted, current status is %s", apperrors.ErrInvalidState, l.Status)
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("%w: could not begin transaction: %v", apperrors.ErrInternalServer, err)
	}
	defer func() {
		if err != nil {
			_ = s.repo.RollbackTx(ctx, tx)
		}
	}()

	if err = s.repo.DeleteRepaymentsByLoanInTx(ctx, tx, loanID); err != nil {
		return err
	}
	if err = s.repo.DeleteLoanInTx(ctx, tx, loanID); err != nil {
		return err
	}
	if err = s.repo.CommitTx(ctx, tx); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "Loan deleted", "loanID", loanID)
	return nil
}

func (s *loanServiceImpl) GetLoan(ctx context.Context, loanID int64) (*Loan, error) {
	l, err := s.repo.GetLoanByID(ctx, loanID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: loan with ID %d not found", apperrors.ErrNotFound, loanID)
		}
		return nil, err
	}
	return l, nil
}

func (s *loanServiceImpl) GetRepaymentSchedule(ctx context.Context, loanID int64) ([]Repayment, error) {
	schedule, err := s.repo.GetScheduleByLoanID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	if len(schedule) == 0 {
		if _, checkErr := s.repo.GetLoanByID(ctx, loanID); errors.Is(checkErr, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: loan with ID %d not found when getting schedule", apperrors.ErrNotFound, loanID)
		}
	}
	return schedule, nil
}

func (s *loanServiceImpl) ListLoans(ctx context.Context) ([]Loan, error) {
	return s.repo.ListLoans(ctx)
}
