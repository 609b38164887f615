package billing

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"lending-engine/internal/domain/loan"
)

type Repository interface {
	BeginTx(ctx context.Context) (pgx.Tx, error)

	CommitTx(ctx context.Context, tx pgx.Tx) error

	RollbackTx(ctx context.Context, tx pgx.Tx) error

	// FindDueUnbilled returns every repayment with billing_done=false and a
	// due date on or before the business date, oldest first.
	FindDueUnbilled(ctx context.Context, businessDate time.Time) ([]loan.Repayment, error)

	// ClaimRepaymentInTx flips billing_done from false to true as a
	// compare-and-set. It reports false when another sweep already claimed
	// the repayment.
	ClaimRepaymentInTx(ctx context.Context, tx pgx.Tx, repaymentID int64) (bool, error)

	UpdateRepaymentStatusInTx(ctx context.Context, tx pgx.Tx, r *loan.Repayment) error

	InsertBillingInTx(ctx context.Context, tx pgx.Tx, b *Billing) (*Billing, error)

	ListBillingsByLoanID(ctx context.Context, loanID int64) ([]Billing, error)
}
