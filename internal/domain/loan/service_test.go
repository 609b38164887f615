package loan_test

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"lending-engine/internal/domain/loan"
	"lending-engine/internal/pkg/apperrors"
	"lending-engine/internal/pkg/clock"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

var businessDate = time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

func newLoanService(repo *MockLoanRepository) loan.LoanService {
	return loan.NewLoanService(repo, clock.Fixed(businessDate), nil, testLogger)
}

func pendingLoan() *loan.Loan {
	principal := decimal.NewFromInt(12000)
	return &loan.Loan{
		LoanID:           1,
		LoanNo:           "LN202503010001",
		CustomerID:       10,
		BranchID:         2,
		Principal:        principal,
		InterestRate:     decimal.NewFromInt(12),
		TenureMonths:     12,
		BalancePrincipal: principal,
		Status:           loan.StatusPending,
	}
}

func TestCreateLoan(t *testing.T) {
	ctx := context.Background()

	t.Run("creates pending loan with balance equal to principal", func(t *testing.T) {
		repo := new(MockLoanRepository)
		svc := newLoanService(repo)

		repo.On("CreateLoan", ctx, mock.MatchedBy(func(l *loan.Loan) bool {
			return l.Status == loan.StatusPending &&
				l.BalancePrincipal.Equal(l.Principal) &&
				l.StartDate == nil &&
				strings.HasPrefix(l.LoanNo, "LN20250301")
		})).Return(pendingLoan(), nil)

		created, err := svc.CreateLoan(ctx, loan.CreateLoanParams{
			CustomerID:   10,
			BranchID:     2,
			Principal:    decimal.NewFromInt(12000),
			InterestRate: decimal.NewFromInt(12),
			TenureMonths: 12,
		})
		require.NoError(t, err)
		assert.Equal(t, loan.StatusPending, created.Status)

		repo.AssertExpectations(t)
	})

	t.Run("rejects explicit start date", func(t *testing.T) {
		repo := new(MockLoanRepository)
		svc := newLoanService(repo)

		start := businessDate
		_, err := svc.CreateLoan(ctx, loan.CreateLoanParams{
			CustomerID:   10,
			Principal:    decimal.NewFromInt(12000),
			InterestRate: decimal.NewFromInt(12),
			TenureMonths: 12,
			StartDate:    &start,
		})
		assert.ErrorIs(t, err, apperrors.ErrValidation)
		repo.AssertNotCalled(t, "CreateLoan", mock.Anything, mock.Anything)
	})

	t.Run("rejects non-positive principal", func(t *testing.T) {
		repo := new(MockLoanRepository)
		svc := newLoanService(repo)

		_, err := svc.CreateLoan(ctx, loan.CreateLoanParams{
			CustomerID:   10,
			Principal:    decimal.Zero,
			InterestRate: decimal.NewFromInt(12),
			TenureMonths: 12,
		})
		assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)
	})
}

func TestApproveLoan(t *testing.T) {
	ctx := context.Background()

	t.Run("activates loan and persists schedule", func(t *testing.T) {
		repo := new(MockLoanRepository)
		svc := newLoanService(repo)

		repo.On("GetLoanByID", ctx, int64(1)).Return(pendingLoan(), nil)
		repo.On("BeginTx", ctx).Return(tx, nil)
		repo.On("ApproveLoanInTx", ctx, tx, mock.MatchedBy(func(l *loan.Loan) bool {
			return l.Status == loan.StatusActive &&
				l.StartDate != nil && l.StartDate.Equal(businessDate) &&
				l.MaturityDate != nil && l.MaturityDate.Equal(businessDate.AddDate(0, 12, 0))
		}), mock.MatchedBy(func(schedule []loan.Repayment) bool {
			return len(schedule) == 12
		})).Return(nil)
		repo.On("CommitTx", ctx, tx).Return(nil)

		approved, err := svc.ApproveLoan(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, loan.StatusActive, approved.Status)
		assert.Equal(t, businessDate, *approved.StartDate)

		repo.AssertExpectations(t)
	})

	t.Run("rejects non-pending loan", func(t *testing.T) {
		repo := new(MockLoanRepository)
		svc := newLoanService(repo)

		active := pendingLoan()
		active.Status = loan.StatusActive
		repo.On("GetLoanByID", ctx, int64(1)).Return(active, nil)

		_, err := svc.ApproveLoan(ctx, 1)
		assert.ErrorIs(t, err, apperrors.ErrInvalidState)
		repo.AssertNotCalled(t, "BeginTx", mock.Anything)
	})

	t.Run("rolls back when schedule persistence fails", func(t *testing.T) {
		repo := new(MockLoanRepository)
		svc := newLoanService(repo)

		repo.On("GetLoanByID", ctx, int64(1)).Return(pendingLoan(), nil)
		repo.On("BeginTx", ctx).Return(tx, nil)
		repo.On("ApproveLoanInTx", ctx, tx, mock.Anything, mock.Anything).Return(assert.AnError)
		repo.On("RollbackTx", ctx, tx).Return(nil)

		_, err := svc.ApproveLoan(ctx, 1)
		assert.Error(t, err)

		repo.AssertCalled(t, "RollbackTx", ctx, tx)
		repo.AssertNotCalled(t, "CommitTx", mock.Anything, mock.Anything)
	})
}

func TestUpdateLoan(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects tenure change after approval", func(t *testing.T) {
		repo := new(MockLoanRepository)
		svc := newLoanService(repo)

		active := pendingLoan()
		active.Status = loan.StatusActive
		repo.On("GetLoanByID", ctx, int64(1)).Return(active, nil)

		tenure := 24
		_, err := svc.UpdateLoan(ctx, 1, loan.UpdateLoanParams{TenureMonths: &tenure})
		assert.ErrorIs(t, err, apperrors.ErrInvalidState)
		repo.AssertNotCalled(t, "UpdateLoan", mock.Anything, mock.Anything)
	})

	t.Run("updates tenure while pending", func(t *testing.T) {
		repo := new(MockLoanRepository)
		svc := newLoanService(repo)

		repo.On("GetLoanByID", ctx, int64(1)).Return(pendingLoan(), nil)
		repo.On("UpdateLoan", ctx, mock.MatchedBy(func(l *loan.Loan) bool {
			return l.TenureMonths == 24
		})).Return(pendingLoan(), nil)

		tenure := 24
		_, err := svc.UpdateLoan(ctx, 1, loan.UpdateLoanParams{TenureMonths: &tenure})
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})
}

func TestDeactivateLoan(t *testing.T) {
	ctx := context.Background()

	t.Run("cascades inactive status to the schedule", func(t *testing.T) {
		repo := new(MockLoanRepository)
		svc := newLoanService(repo)

		repo.On("GetLoanByID", ctx, int64(1)).Return(pendingLoan(), nil)
		repo.On("BeginTx", ctx).Return(tx, nil)
		repo.On("UpdateLoanStatusInTx", ctx, tx, int64(1), loan.StatusInactive).Return(nil)
		repo.On("DeactivateRepaymentsInTx", ctx, tx, int64(1)).Return(int64(12), nil)
		repo.On("CommitTx", ctx, tx).Return(nil)

		err := svc.DeactivateLoan(ctx, 1)
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})
}

func TestSafeDeleteLoan(t *testing.T) {
	ctx := context.Background()

	t.Run("refuses active loan", func(t *testing.T) {
		repo := new(MockLoanRepository)
		svc := newLoanService(repo)

		active := pendingLoan()
		active.Status = loan.StatusActive
		repo.On("GetLoanByID", ctx, int64(1)).Return(active, nil)

		err := svc.SafeDeleteLoan(ctx, 1)
		assert.ErrorIs(t, err, apperrors.ErrInvalidState)
		repo.AssertNotCalled(t, "BeginTx", mock.Anything)
	})

	t.Run("deletes inactive loan with its schedule", func(t *testing.T) {
		repo := new(MockLoanRepository)
		svc := newLoanService(repo)

		inactive := pendingLoan()
		inactive.Status = loan.StatusInactive
		repo.On("GetLoanByID", ctx, int64(1)).Return(inactive, nil)
		repo.On("BeginTx", ctx).Return(tx, nil)
		repo.On("DeleteRepaymentsByLoanInTx", ctx, tx, int64(1)).Return(nil)
		repo.On("DeleteLoanInTx", ctx, tx, int64(1)).Return(nil)
		repo.On("CommitTx", ctx, tx).Return(nil)

		err := svc.SafeDeleteLoan(ctx, 1)
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})
}
