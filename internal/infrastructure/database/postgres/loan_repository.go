package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	"lending-engine/internal/domain/loan"
	"lending-engine/internal/infrastructure/monitoring"
	"lending-engine/internal/pkg/apperrors"
)

const errMsgFormat = "%w: %w"

// DBPool is the subset of pgxpool.Pool the repositories use. pgxmock
// implements it, so repository tests run against a mocked pool.
type DBPool interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func translateDBError(err error, resource string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf(errMsgFormat, apperrors.ErrNotFound, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return fmt.Errorf(errMsgFormat, apperrors.ErrAlreadyExists, err)
		case "23503":
			return fmt.Errorf(errMsgFormat, apperrors.ErrConflict, err)
		}
	}

	return apperrors.WrapDatabaseError(err, fmt.Sprintf("unexpected database error on %s", resource))
}

// track records query latency for the metrics histogram.
func track(queryName string, start time.Time, err error) {
	status := "success"
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		status = "error"
	}
	monitoring.RecordDBQuery(queryName, status, time.Since(start))
}

const loanColumns = `loan_id, loan_no, loan_type, customer_id, branch_id, collateral_id,
	principal, interest_rate, tenure_months, start_date, maturity_date,
	balance_principal, status, created_at, updated_at`

const repaymentColumns = `repayment_id, loan_id, customer_id, due_date, payment_date,
	expected_principal, expected_interest, total_due, amount_paid, principal_paid,
	interest_paid, remaining_principal, outstanding_interest, rate_of_interest,
	status, billing_done, created_at, updated_at`

type LoanRepository struct {
	db     DBPool
	logger *slog.Logger
}

var _ loan.Repository = (*LoanRepository)(nil)

func NewLoanRepository(db DBPool, logger *slog.Logger) *LoanRepository {
	if db == nil {
		panic("LoanRepository: db pool cannot be nil")
	}
	return &LoanRepository{db: db, logger: logger.With("component", "LoanRepository")}
}

func (r *LoanRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, apperrors.WrapDatabaseError(err, "failed to begin transaction")
	}
	return tx, nil
}

func (r *LoanRepository) CommitTx(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Commit(ctx); err != nil {
		return apperrors.WrapDatabaseError(err, "failed to commit transaction")
	}
	return nil
}

func (r *LoanRepository) RollbackTx(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return apperrors.WrapDatabaseError(err, "failed to rollback transaction")
	}
	return nil
}

func (r *LoanRepository) CreateLoan(ctx context.Context, l *loan.Loan) (*loan.Loan, error) {
	query := `
		INSERT INTO loans (loan_no, loan_type, customer_id, branch_id, collateral_id,
			principal, interest_rate, tenure_months, balance_principal, status,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
		RETURNING loan_id, created_at, updated_at`

	start := time.Now()
	err := r.db.QueryRow(ctx, query,
		l.LoanNo, l.LoanType, l.CustomerID, l.BranchID, l.CollateralID,
		l.Principal, l.InterestRate, l.TenureMonths, l.BalancePrincipal, l.Status,
	).Scan(&l.LoanID, &l.CreatedAt, &l.UpdatedAt)
	track("create_loan", start, err)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to insert loan", "loanNo", l.LoanNo, "error", err)
		return nil, translateDBError(err, "loans")
	}

	r.logger.InfoContext(ctx, "Loan created", "loanID", l.LoanID, "loanNo", l.LoanNo)
	return l, nil
}

func (r *LoanRepository) GetLoanByID(ctx context.Context, loanID int64) (*loan.Loan, error) {
	query := fmt.Sprintf(`SELECT %s FROM loans WHERE loan_id = $1`, loanColumns)

	start := time.Now()
	l, err := scanLoan(r.db.QueryRow(ctx, query, loanID))
	track("get_loan_by_id", start, err)
	if err != nil {
		return nil, translateDBError(err, "loans")
	}
	return l, nil
}

func (r *LoanRepository) GetLoanForUpdate(ctx context.Context, tx pgx.Tx, loanID int64) (*loan.Loan, error) {
	query := fmt.Sprintf(`SELECT %s FROM loans WHERE loan_id = $1 FOR UPDATE`, loanColumns)

	l, err := scanLoan(tx.QueryRow(ctx, query, loanID))
	if err != nil {
		return nil, translateDBError(err, "loans")
	}
	return l, nil
}

func (r *LoanRepository) ListLoans(ctx context.Context) ([]loan.Loan, error) {
	query := fmt.Sprintf(`SELECT %s FROM loans ORDER BY loan_id`, loanColumns)

	start := time.Now()
	rows, err := r.db.Query(ctx, query)
	track("list_loans", start, err)
	if err != nil {
		return nil, translateDBError(err, "loans")
	}
	defer rows.Close()

	var loans []loan.Loan
	for rows.Next() {
		l, err := scanLoan(rows)
		if err != nil {
			return nil, translateDBError(err, "loans")
		}
		loans = append(loans, *l)
	}
	if err := rows.Err(); err != nil {
		return nil, translateDBError(err, "loans")
	}
	return loans, nil
}

func (r *LoanRepository) UpdateLoan(ctx context.Context, l *loan.Loan) (*loan.Loan, error) {
	query := `
		UPDATE loans
		SET loan_type = $2, customer_id = $3, branch_id = $4, collateral_id = $5,
			principal = $6, interest_rate = $7, tenure_months = $8, balance_principal = $9,
			updated_at = NOW()
		WHERE loan_id = $1
		RETURNING updated_at`

	start := time.Now()
	err := r.db.QueryRow(ctx, query,
		l.LoanID, l.LoanType, l.CustomerID, l.BranchID, l.CollateralID,
		l.Principal, l.InterestRate, l.TenureMonths, l.BalancePrincipal,
	).Scan(&l.UpdatedAt)
	track("update_loan", start, err)
	if err != nil {
		return nil, translateDBError(err, "loans")
	}
	return l, nil
}

func (r *LoanRepository) ApproveLoanInTx(ctx context.Context, tx pgx.Tx, l *loan.Loan, schedule []loan.Repayment) error {
	query := `
		UPDATE loans
		SET status = $2, start_date = $3, maturity_date = $4, updated_at = NOW()
		WHERE loan_id = $1`

	tag, err := tx.Exec(ctx, query, l.LoanID, l.Status, l.StartDate, l.MaturityDate)
	if err != nil {
		return translateDBError(err, "loans")
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: loan %d", apperrors.ErrNotFound, l.LoanID)
	}

	insert := `
		INSERT INTO repayments (loan_id, customer_id, due_date, expected_principal,
			expected_interest, total_due, amount_paid, principal_paid, interest_paid,
			remaining_principal, outstanding_interest, rate_of_interest, status,
			billing_done, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, NOW(), NOW())`

	batch := &pgx.Batch{}
	for _, rp := range schedule {
		batch.Queue(insert,
			rp.LoanID, rp.CustomerID, rp.DueDate, rp.ExpectedPrincipal,
			rp.ExpectedInterest, rp.TotalDue, rp.AmountPaid, rp.PrincipalPaid,
			rp.InterestPaid, rp.RemainingPrincipal, rp.OutstandingInterest,
			rp.RateOfInterest, rp.Status, rp.BillingDone)
	}

	results := tx.SendBatch(ctx, batch)
	defer results.Close()
	for range schedule {
		if _, err := results.Exec(); err != nil {
			return translateDBError(err, "repayments")
		}
	}

	r.logger.InfoContext(ctx, "Loan approved with schedule", "loanID", l.LoanID, "installments", len(schedule))
	return nil
}

func (r *LoanRepository) UpdateLoanStatusInTx(ctx context.Context, tx pgx.Tx, loanID int64, status loan.LoanStatus) error {
	query := `UPDATE loans SET status = $2, updated_at = NOW() WHERE loan_id = $1`

	tag, err := tx.Exec(ctx, query, loanID, status)
	if err != nil {
		return translateDBError(err, "loans")
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: loan %d", apperrors.ErrNotFound, loanID)
	}
	return nil
}

func (r *LoanRepository) UpdateLoanBalanceInTx(ctx context.Context, tx pgx.Tx, loanID int64, balance decimal.Decimal, status loan.LoanStatus) error {
	query := `UPDATE loans SET balance_principal = $2, status = $3, updated_at = NOW() WHERE loan_id = $1`

	tag, err := tx.Exec(ctx, query, loanID, balance, status)
	if err != nil {
		return translateDBError(err, "loans")
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: loan %d", apperrors.ErrNotFound, loanID)
	}
	return nil
}

func (r *LoanRepository) DeleteLoanInTx(ctx context.Context, tx pgx.Tx, loanID int64) error {
	tag, err := tx.Exec(ctx, `DELETE FROM loans WHERE loan_id = $1`, loanID)
	if err != nil {
		return translateDBError(err, "loans")
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: loan %d", apperrors.ErrNotFound, loanID)
	}
	return nil
}

func (r *LoanRepository) GetRepaymentByID(ctx context.Context, repaymentID int64) (*loan.Repayment, error) {
	query := fmt.Sprintf(`SELECT %s FROM repayments WHERE repayment_id = $1`, repaymentColumns)

	start := time.Now()
	rp, err := scanRepayment(r.db.QueryRow(ctx, query, repaymentID))
	track("get_repayment_by_id", start, err)
	if err != nil {
		return nil, translateDBError(err, "repayments")
	}
	return rp, nil
}

func (r *LoanRepository) GetRepaymentForUpdate(ctx context.Context, tx pgx.Tx, repaymentID int64) (*loan.Repayment, error) {
	query := fmt.Sprintf(`SELECT %s FROM repayments WHERE repayment_id = $1 FOR UPDATE`, repaymentColumns)

	rp, err := scanRepayment(tx.QueryRow(ctx, query, repaymentID))
	if err != nil {
		return nil, translateDBError(err, "repayments")
	}
	return rp, nil
}

func (r *LoanRepository) GetScheduleByLoanID(ctx context.Context, loanID int64) ([]loan.Repayment, error) {
	query := fmt.Sprintf(`SELECT %s FROM repayments WHERE loan_id = $1 ORDER BY due_date`, repaymentColumns)

	start := time.Now()
	rows, err := r.db.Query(ctx, query, loanID)
	track("get_schedule_by_loan_id", start, err)
	if err != nil {
		return nil, translateDBError(err, "repayments")
	}
	defer rows.Close()

	var schedule []loan.Repayment
	for rows.Next() {
		rp, err := scanRepayment(rows)
		if err != nil {
			return nil, translateDBError(err, "repayments")
		}
		schedule = append(schedule, *rp)
	}
	if err := rows.Err(); err != nil {
		return nil, translateDBError(err, "repayments")
	}
	return schedule, nil
}

func (r *LoanRepository) UpdateRepaymentInTx(ctx context.Context, tx pgx.Tx, rp *loan.Repayment) error {
	query := `
		UPDATE repayments
		SET payment_date = $2, amount_paid = $3, principal_paid = $4, interest_paid = $5,
			remaining_principal = $6, outstanding_interest = $7, status = $8,
			updated_at = NOW()
		WHERE repayment_id = $1`

	tag, err := tx.Exec(ctx, query,
		rp.RepaymentID, rp.PaymentDate, rp.AmountPaid, rp.PrincipalPaid,
		rp.InterestPaid, rp.RemainingPrincipal, rp.OutstandingInterest, rp.Status)
	if err != nil {
		return translateDBError(err, "repayments")
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: repayment %d", apperrors.ErrNotFound, rp.RepaymentID)
	}
	return nil
}

func (r *LoanRepository) DeactivateRepaymentsInTx(ctx context.Context, tx pgx.Tx, loanID int64) (int64, error) {
	query := `
		UPDATE repayments
		SET status = $2, updated_at = NOW()
		WHERE loan_id = $1 AND status <> $3`

	tag, err := tx.Exec(ctx, query, loanID, loan.RepaymentInactive, loan.RepaymentPaid)
	if err != nil {
		return 0, translateDBError(err, "repayments")
	}
	return tag.RowsAffected(), nil
}

func (r *LoanRepository) DeleteRepaymentsByLoanInTx(ctx context.Context, tx pgx.Tx, loanID int64) error {
	if _, err := tx.Exec(ctx, `DELETE FROM repayments WHERE loan_id = $1`, loanID); err != nil {
		return translateDBError(err, "repayments")
	}
	return nil
}

func (r *LoanRepository) DeleteRepayment(ctx context.Context, repaymentID int64) error {
	start := time.Now()
	tag, err := r.db.Exec(ctx, `DELETE FROM repayments WHERE repayment_id = $1`, repaymentID)
	track("delete_repayment", start, err)
	if err != nil {
		return translateDBError(err, "repayments")
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: repayment %d", apperrors.ErrNotFound, repaymentID)
	}
	return nil
}

func scanLoan(row pgx.Row) (*loan.Loan, error) {
	var l loan.Loan
	err := row.Scan(
		&l.LoanID, &l.LoanNo, &l.LoanType, &l.CustomerID, &l.BranchID, &l.CollateralID,
		&l.Principal, &l.InterestRate, &l.TenureMonths, &l.StartDate, &l.MaturityDate,
		&l.BalancePrincipal, &l.Status, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func scanRepayment(row pgx.Row) (*loan.Repayment, error) {
	var rp loan.Repayment
	err := row.Scan(
		&rp.RepaymentID, &rp.LoanID, &rp.CustomerID, &rp.DueDate, &rp.PaymentDate,
		&rp.ExpectedPrincipal, &rp.ExpectedInterest, &rp.TotalDue, &rp.AmountPaid,
		&rp.PrincipalPaid, &rp.InterestPaid, &rp.RemainingPrincipal,
		&rp.OutstandingInterest, &rp.RateOfInterest, &rp.Status, &rp.BillingDone,
		&rp.CreatedAt, &rp.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rp, nil
}
