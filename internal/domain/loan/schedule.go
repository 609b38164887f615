package loan

import (
	"fmt"

	"github.com/shopspring/decimal"

	"lending-engine/internal/pkg/apperrors"
)

// GenerateSchedule computes the repayment schedule for an approved loan:
// a flat principal portion per month plus interest recomputed each period on
// the diminishing balance. The final installment absorbs the rounding residual
// of the flat split so the expected principal sums to the loan principal
// exactly. The returned drafts are unsaved.
func GenerateSchedule(l *Loan) ([]Repayment, error) {
	if l.TenureMonths <= 0 {
		return nil, fmt.Errorf("%w: tenure months must be positive", apperrors.ErrComputation)
	}
	if l.Principal.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: principal must be positive", apperrors.ErrComputation)
	}
	if l.InterestRate.IsNegative() {
		return nil, fmt.Errorf("%w: interest rate must not be negative", apperrors.ErrComputation)
	}
	if l.StartDate == nil {
		return nil, fmt.Errorf("%w: start date is not set", apperrors.ErrComputation)
	}

	tenure := int64(l.TenureMonths)
	monthlyRate := MonthlyRate(l.InterestRate)
	flatPrincipal := l.Principal.DivRound(decimal.NewFromInt(tenure), 2)
	remainingBalance := l.BalancePrincipal

	schedule := make([]Repayment, 0, l.TenureMonths)
	for i := 1; i <= l.TenureMonths; i++ {
		principalDue := flatPrincipal
		if i == l.TenureMonths {
			principalDue = l.Principal.Sub(flatPrincipal.Mul(decimal.NewFromInt(tenure - 1)))
		}
		interestDue := remainingBalance.Mul(monthlyRate).Round(2)

		schedule = append(schedule, Repayment{
			LoanID:              l.LoanID,
			CustomerID:          l.CustomerID,
			DueDate:             l.StartDate.AddDate(0, i, 0),
			ExpectedPrincipal:   principalDue,
			ExpectedInterest:    interestDue,
			TotalDue:            principalDue.Add(interestDue),
			AmountPaid:          decimal.Zero,
			PrincipalPaid:       decimal.Zero,
			InterestPaid:        decimal.Zero,
			RemainingPrincipal:  remainingBalance,
			OutstandingInterest: decimal.Zero,
			RateOfInterest:      l.InterestRate,
			Status:              RepaymentUnpaid,
			BillingDone:         false,
		})

		remainingBalance = remainingBalance.Sub(principalDue)
	}

	if !remainingBalance.IsZero() {
		return nil, fmt.Errorf("%w: schedule generation failed sanity check - residual balance %s after %d periods",
			apperrors.ErrComputation, remainingBalance.String(), l.TenureMonths)
	}

	return schedule, nil
}
