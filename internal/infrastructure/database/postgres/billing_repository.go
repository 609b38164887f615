package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"

	"lending-engine/internal/domain/billing"
	"lending-engine/internal/domain/loan"
	"lending-engine/internal/pkg/apperrors"
)

const billingColumns = `billing_id, loan_id, repayment_id, billing_date, due_date,
	amount_due, amount_paid, status, remarks, created_at`

type BillingRepository struct {
	db     DBPool
	logger *slog.Logger
}

var _ billing.Repository = (*BillingRepository)(nil)

func NewBillingRepository(db DBPool, logger *slog.Logger) *BillingRepository {
	if db == nil {
		panic("BillingRepository: db pool cannot be nil")
	}
	return &BillingRepository{db: db, logger: logger.With("component", "BillingRepository")}
}

func (r *BillingRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, apperrors.WrapDatabaseError(err, "failed to begin transaction")
	}
	return tx, nil
}

func (r *BillingRepository) CommitTx(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Commit(ctx); err != nil {
		return apperrors.WrapDatabaseError(err, "failed to commit transaction")
	}
	return nil
}

func (r *BillingRepository) RollbackTx(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return apperrors.WrapDatabaseError(err, "failed to rollback transaction")
	}
	return nil
}

func (r *BillingRepository) FindDueUnbilled(ctx context.Context, businessDate time.Time) ([]loan.Repayment, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM repayments
		WHERE billing_done = false AND due_date <= $1 AND status <> $2
		ORDER BY due_date, repayment_id`, repaymentColumns)

	start := time.Now()
	rows, err := r.db.Query(ctx, query, businessDate, loan.RepaymentInactive)
	track("find_due_unbilled", start, err)
	if err != nil {
		return nil, translateDBError(err, "repayments")
	}
	defer rows.Close()

	var due []loan.Repayment
	for rows.Next() {
		rp, err := scanRepayment(rows)
		if err != nil {
			return nil, translateDBError(err, "repayments")
		}
		due = append(due, *rp)
	}
	if err := rows.Err(); err != nil {
		return nil, translateDBError(err, "repayments")
	}
	return due, nil
}

func (r *BillingRepository) ClaimRepaymentInTx(ctx context.Context, tx pgx.Tx, repaymentID int64) (bool, error) {
	query := `
		UPDATE repayments
		SET billing_done = true, updated_at = NOW()
		WHERE repayment_id = $1 AND billing_done = false`

	tag, err := tx.Exec(ctx, query, repaymentID)
	if err != nil {
		return false, translateDBError(err, "repayments")
	}
	return tag.RowsAffected() == 1, nil
}

func (r *BillingRepository) UpdateRepaymentStatusInTx(ctx context.Context, tx pgx.Tx, rp *loan.Repayment) error {
	query := `
		UPDATE repayments
		SET status = $2, remaining_principal = $3, outstanding_interest = $4,
			updated_at = NOW()
		WHERE repayment_id = $1`

	tag, err := tx.Exec(ctx, query,
		rp.RepaymentID, rp.Status, rp.RemainingPrincipal, rp.OutstandingInterest)
	if err != nil {
		return translateDBError(err, "repayments")
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: repayment %d", apperrors.ErrNotFound, rp.RepaymentID)
	}
	return nil
}

func (r *BillingRepository) InsertBillingInTx(ctx context.Context, tx pgx.Tx, b *billing.Billing) (*billing.Billing, error) {
	query := `
		INSERT INTO billings (loan_id, repayment_id, billing_date, due_date,
			amount_due, amount_paid, status, remarks, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		RETURNING billing_id, created_at`

	err := tx.QueryRow(ctx, query,
		b.LoanID, b.RepaymentID, b.BillingDate, b.DueDate,
		b.AmountDue, b.AmountPaid, b.Status, b.Remarks,
	).Scan(&b.BillingID, &b.CreatedAt)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to insert billing record", "repaymentID", b.RepaymentID, "error", err)
		return nil, translateDBError(err, "billings")
	}
	return b, nil
}

func (r *BillingRepository) ListBillingsByLoanID(ctx context.Context, loanID int64) ([]billing.Billing, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM billings WHERE loan_id = $1 ORDER BY billing_date, billing_id`, billingColumns)

	start := time.Now()
	rows, err := r.db.Query(ctx, query, loanID)
	track("list_billings_by_loan_id", start, err)
	if err != nil {
		return nil, translateDBError(err, "billings")
	}
	defer rows.Close()

	var records []billing.Billing
	for rows.Next() {
		var b billing.Billing
		if err := rows.Scan(
			&b.BillingID, &b.LoanID, &b.RepaymentID, &b.BillingDate, &b.DueDate,
			&b.AmountDue, &b.AmountPaid, &b.Status, &b.Remarks, &b.CreatedAt,
		); err != nil {
			return nil, translateDBError(err, "billings")
		}
		records = append(records, b)
	}
	if err := rows.Err(); err != nil {
		return nil, translateDBError(err, "billings")
	}
	return records, nil
}
