package loan_test

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"lending-engine/internal/domain/loan"
)

type MockLoanRepository struct {
	mock.Mock
}

type TxMock struct {
	pgx.Tx
}

var tx pgx.Tx = &TxMock{}

func (m *MockLoanRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockLoanRepository) CommitTx(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockLoanRepository) RollbackTx(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockLoanRepository) CreateLoan(ctx context.Context, l *loan.Loan) (*loan.Loan, error) {
	args := m.Called(ctx, l)
	if created, ok := args.Get(0).(*loan.Loan); ok {
		return created, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockLoanRepository) GetLoanByID(ctx context.Context, loanID int64) (*loan.Loan, error) {
	args := m.Called(ctx, loanID)
	if l, ok := args.Get(0).(*loan.Loan); ok {
		return l, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockLoanRepository) GetLoanForUpdate(ctx context.Context, tx pgx.Tx, loanID int64) (*loan.Loan, error) {
	args := m.Called(ctx, tx, loanID)
	if l, ok := args.Get(0).(*loan.Loan); ok {
		return l, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockLoanRepository) ListLoans(ctx context.Context) ([]loan.Loan, error) {
	args := m.Called(ctx)
	if loans, ok := args.Get(0).([]loan.Loan); ok {
		return loans, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockLoanRepository) UpdateLoan(ctx context.Context, l *loan.Loan) (*loan.Loan, error) {
	args := m.Called(ctx, l)
	if updated, ok := args.Get(0).(*loan.Loan); ok {
		return updated, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockLoanRepository) ApproveLoanInTx(ctx context.Context, tx pgx.Tx, l *loan.Loan, schedule []loan.Repayment) error {
	args := m.Called(ctx, tx, l, schedule)
	return args.Error(0)
}

func (m *MockLoanRepository) UpdateLoanStatusInTx(ctx context.Context, tx pgx.Tx, loanID int64, status loan.LoanStatus) error {
	args := m.Called(ctx, tx, loanID, status)
	return args.Error(0)
}

func (m *MockLoanRepository) UpdateLoanBalanceInTx(ctx context.Context, tx pgx.Tx, loanID int64, balance decimal.Decimal, status loan.LoanStatus) error {
	args := m.Called(ctx, tx, loanID, balance, status)
	return args.Error(0)
}

func (m *MockLoanRepository) DeleteLoanInTx(ctx context.Context, tx pgx.Tx, loanID int64) error {
	args := m.Called(ctx, tx, loanID)
	return args.Error(0)
}

func (m *MockLoanRepository) GetRepaymentByID(ctx context.Context, repaymentID int64) (*loan.Repayment, error) {
	args := m.Called(ctx, repaymentID)
	if r, ok := args.Get(0).(*loan.Repayment); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockLoanRepository) GetRepaymentForUpdate(ctx context.Context, tx pgx.Tx, repaymentID int64) (*loan.Repayment, error) {
	args := m.Called(ctx, tx, repaymentID)
	if r, ok := args.Get(0).(*loan.Repayment); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockLoanRepository) GetScheduleByLoanID(ctx context.Context, loanID int64) ([]loan.Repayment, error) {
	args := m.Called(ctx, loanID)
	if schedule, ok := args.Get(0).([]loan.Repayment); ok {
		return schedule, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockLoanRepository) UpdateRepaymentInTx(ctx context.Context, tx pgx.Tx, r *loan.Repayment) error {
	args := m.Called(ctx, tx, r)
	return args.Error(0)
}

func (m *MockLoanRepository) DeactivateRepaymentsInTx(ctx context.Context, tx pgx.Tx, loanID int64) (int64, error) {
	args := m.Called(ctx, tx, loanID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLoanRepository) DeleteRepaymentsByLoanInTx(ctx context.Context, tx pgx.Tx, loanID int64) error {
	args := m.Called(ctx, tx, loanID)
	return args.Error(0)
}

func (m *MockLoanRepository) DeleteRepayment(ctx context.Context, repaymentID int64) error {
	args := m.Called(ctx, repaymentID)
	return args.Error(0)
}
