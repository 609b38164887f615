package loan_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lending-engine/internal/domain/loan"
	"lending-engine/internal/pkg/apperrors"
)

func activeLoan(principal string, rate string, tenure int, start time.Time) *loan.Loan {
	p := decimal.RequireFromString(principal)
	return &loan.Loan{
		LoanID:           1,
		CustomerID:       10,
		Principal:        p,
		InterestRate:     decimal.RequireFromString(rate),
		TenureMonths:     tenure,
		StartDate:        &start,
		BalancePrincipal: p,
		Status:           loan.StatusActive,
	}
}

func TestGenerateSchedule(t *testing.T) {
	start := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)

	t.Run("flat principal with diminishing interest", func(t *testing.T) {
		l := activeLoan("12000", "12", 12, start)

		schedule, err := loan.GenerateSchedule(l)
		require.NoError(t, err)
		require.Len(t, schedule, 12)

		first := schedule[0]
		assert.Equal(t, "1000.00", first.ExpectedPrincipal.StringFixed(2))
		assert.Equal(t, "120.00", first.ExpectedInterest.StringFixed(2))
		assert.Equal(t, "1120.00", first.TotalDue.StringFixed(2))
		assert.Equal(t, "12000.00", first.RemainingPrincipal.StringFixed(2))
		assert.Equal(t, start.AddDate(0, 1, 0), first.DueDate)
		assert.Equal(t, loan.RepaymentUnpaid, first.Status)
		assert.False(t, first.BillingDone)

		second := schedule[1]
		assert.Equal(t, "110.00", second.ExpectedInterest.StringFixed(2))
		assert.Equal(t, "11000.00", second.RemainingPrincipal.StringFixed(2))

		last := schedule[11]
		assert.Equal(t, "10.00", last.ExpectedInterest.StringFixed(2))
		assert.Equal(t, "1000.00", last.RemainingPrincipal.StringFixed(2))
		assert.Equal(t, start.AddDate(0, 12, 0), last.DueDate)
	})

	t.Run("last installment absorbs rounding residual", func(t *testing.T) {
		l := activeLoan("10000", "12", 3, start)

		schedule, err := loan.GenerateSchedule(l)
		require.NoError(t, err)
		require.Len(t, schedule, 3)

		assert.Equal(t, "3333.33", schedule[0].ExpectedPrincipal.StringFixed(2))
		assert.Equal(t, "3333.33", schedule[1].ExpectedPrincipal.StringFixed(2))
		assert.Equal(t, "3333.34", schedule[2].ExpectedPrincipal.StringFixed(2))

		sum := decimal.Zero
		for _, entry := range schedule {
			sum = sum.Add(entry.ExpectedPrincipal)
		}
		assert.True(t, sum.Equal(l.Principal), "expected principal to sum exactly to %s, got %s", l.Principal, sum)
	})

	t.Run("zero interest rate yields zero interest", func(t *testing.T) {
		l := activeLoan("1200", "0", 12, start)

		schedule, err := loan.GenerateSchedule(l)
		require.NoError(t, err)
		for _, entry := range schedule {
			assert.True(t, entry.ExpectedInterest.IsZero())
			assert.True(t, entry.TotalDue.Equal(entry.ExpectedPrincipal))
		}
	})

	t.Run("rejects missing start date", func(t *testing.T) {
		l := activeLoan("12000", "12", 12, start)
		l.StartDate = nil

		_, err := loan.GenerateSchedule(l)
		assert.ErrorIs(t, err, apperrors.ErrComputation)
	})

	t.Run("rejects non-positive tenure", func(t *testing.T) {
		l := activeLoan("12000", "12", 0, start)

		_, err := loan.GenerateSchedule(l)
		assert.ErrorIs(t, err, apperrors.ErrComputation)
	})
}

func TestMonthlyRate(t *testing.T) {
	assert.Equal(t, "0.01", loan.MonthlyRate(decimal.NewFromInt(12)).String())
	assert.Equal(t, "0.00875", loan.MonthlyRate(decimal.RequireFromString("10.5")).String())
	assert.True(t, loan.MonthlyRate(decimal.Zero).IsZero())
}

func TestGenerateLoanNo(t *testing.T) {
	loanNo := loan.GenerateLoanNo(businessDate)
	assert.Len(t, loanNo, 14)
	assert.Equal(t, "LN20250301", loanNo[:10])
}
