package billing

import (
	"time"

	"github.com/shopspring/decimal"

	"lending-engine/internal/domain/loan"
)

// Billing is an immutable ledger entry produced by a billing sweep: one per
// (repayment, sweep) pair where the repayment was due and not yet billed.
// It is never updated or deleted after creation.
type Billing struct {
	BillingID   int64
	LoanID      int64
	RepaymentID int64
	BillingDate time.Time
	DueDate     time.Time
	AmountDue   decimal.Decimal
	AmountPaid  decimal.Decimal
	Status      loan.RepaymentStatus
	Remarks     string
	CreatedAt   time.Time
}

type SweepResult struct {
	BillingDate    time.Time
	ProcessedCount int
	SkippedCount   int
	ErrorCount     int
	Remarks        string
	Records        []Billing
}
