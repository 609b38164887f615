package loan

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"

	"lending-engine/internal/pkg/apperrors"
)

type LoanStatus string

const (
	StatusPending  LoanStatus = "PENDING"
	StatusActive   LoanStatus = "ACTIVE"
	StatusInactive LoanStatus = "INACTIVE"
	StatusClosed   LoanStatus = "CLOSED"
)

type RepaymentStatus string

const (
	RepaymentUnpaid   RepaymentStatus = "UNPAID"
	RepaymentPartial  RepaymentStatus = "PARTIAL"
	RepaymentPaid     RepaymentStatus = "PAID"
	RepaymentOverdue  RepaymentStatus = "OVERDUE"
	RepaymentInactive RepaymentStatus = "INACTIVE"
)

// Loan is a lending agreement. BalancePrincipal is the outstanding principal;
// it only decreases while the loan is active and the loan closes exactly when
// it reaches zero.
type Loan struct {
	LoanID           int64
	LoanNo           string
	LoanType         string
	CustomerID       int64
	BranchID         int64
	CollateralID     *int64
	Principal        decimal.Decimal
	InterestRate     decimal.Decimal
	TenureMonths     int
	StartDate        *time.Time
	MaturityDate     *time.Time
	BalancePrincipal decimal.Decimal
	Status           LoanStatus
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Repayment is one scheduled installment of a loan. Expected amounts are fixed
// at schedule-generation time; paid amounts and status change as payments and
// billing sweeps touch the row.
type Repayment struct {
	RepaymentID         int64
	LoanID              int64
	CustomerID          int64
	DueDate             time.Time
	PaymentDate         *time.Time
	ExpectedPrincipal   decimal.Decimal
	ExpectedInterest    decimal.Decimal
	TotalDue            decimal.Decimal
	AmountPaid          decimal.Decimal
	PrincipalPaid       decimal.Decimal
	InterestPaid        decimal.Decimal
	RemainingPrincipal  decimal.Decimal
	OutstandingInterest decimal.Decimal
	RateOfInterest      decimal.Decimal
	Status              RepaymentStatus
	BillingDone         bool
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

func NewLoan(customerID, branchID int64, collateralID *int64, loanType string, principal, annualRate decimal.Decimal, tenureMonths int, createdOn time.Time) (*Loan, error) {
	if principal.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: principal must be positive", apperrors.ErrInvalidArgument)
	}
	if tenureMonths <= 0 {
		return nil, fmt.Errorf("%w: tenure months must be positive", apperrors.ErrInvalidArgument)
	}
	if annualRate.IsNegative() {
		return nil, fmt.Errorf("%w: interest rate must not be negative", apperrors.ErrInvalidArgument)
	}

	return &Loan{
		LoanNo:           GenerateLoanNo(createdOn),
		LoanType:         loanType,
		CustomerID:       customerID,
		BranchID:         branchID,
		CollateralID:     collateralID,
		Principal:        principal,
		InterestRate:     annualRate,
		TenureMonths:     tenureMonths,
		BalancePrincipal: principal,
		Status:           StatusPending,
	}, nil
}

// GenerateLoanNo produces a human-readable loan number, LN<yyyymmdd><4 digits>,
// dated on the given business date.
func GenerateLoanNo(date time.Time) string {
	return fmt.Sprintf("LN%s%04d", date.Format("20060102"), rand.Intn(9000)+1000)
}

// MonthlyRate converts an annual percentage rate to a monthly fraction with
// 10 fractional digits, e.g. 12% -> 0.01.
func MonthlyRate(annualRatePercent decimal.Decimal) decimal.Decimal {
	return annualRatePercent.DivRound(decimal.NewFromInt(12*100), 10)
}

// TotalOutstanding is the sum of principal balance and the unpaid interest
// carried on the given schedule.
func (l *Loan) TotalOutstanding(schedule []Repayment) decimal.Decimal {
	total := l.BalancePrincipal
	for _, r := range schedule {
		total = total.Add(r.OutstandingInterest)
	}
	return total
}

func (l *Loan) IsDeletable() bool {
	return l.Status == StatusInactive || l.Status == StatusClosed
}
