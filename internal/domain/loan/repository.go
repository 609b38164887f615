package loan

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type Repository interface {
	BeginTx(ctx context.Context) (pgx.Tx, error)

	CommitTx(ctx context.Context, tx pgx.Tx) error

	RollbackTx(ctx context.Context, tx pgx.Tx) error

	CreateLoan(ctx context.Context, l *Loan) (*Loan, error)

	GetLoanByID(ctx context.Context, loanID int64) (*Loan, error)

	GetLoanForUpdate(ctx context.Context, tx pgx.Tx, loanID int64) (*Loan, error)

	ListLoans(ctx context.Context) ([]Loan, error)

	UpdateLoan(ctx context.Context, l *Loan) (*Loan, error)

	// ApproveLoanInTx writes the approved loan fields and inserts the full
	// schedule in the supplied transaction.
	ApproveLoanInTx(ctx context.Context, tx pgx.Tx, l *Loan, schedule []Repayment) error

	UpdateLoanStatusInTx(ctx context.Context, tx pgx.Tx, loanID int64, status LoanStatus) error

	UpdateLoanBalanceInTx(ctx context.Context, tx pgx.Tx, loanID int64, balance decimal.Decimal, status LoanStatus) error

	DeleteLoanInTx(ctx context.Context, tx pgx.Tx, loanID int64) error

	GetRepaymentByID(ctx context.Context, repaymentID int64) (*Repayment, error)

	GetRepaymentForUpdate(ctx context.Context, tx pgx.Tx, repaymentID int64) (*Repayment, error)

	GetScheduleByLoanID(ctx context.Context, loanID int64) ([]Repayment, error)

	UpdateRepaymentInTx(ctx context.Context, tx pgx.Tx, r *Repayment) error

	DeactivateRepaymentsInTx(ctx context.Context, tx pgx.Tx, loanID int64) (int64, error)

	DeleteRepaymentsByLoanInTx(ctx context.Context, tx pgx.Tx, loanID int64) error

	DeleteRepayment(ctx context.Context, repaymentID int64) error
}
