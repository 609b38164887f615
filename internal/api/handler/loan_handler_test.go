package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"lending-engine/internal/api/handler/dto"
	"lending-engine/internal/domain/loan"
	"lending-engine/internal/pkg/apperrors"
)

type MockLoanService struct {
	mock.Mock
}

func (m *MockLoanService) CreateLoan(ctx context.Context, params loan.CreateLoanParams) (*loan.Loan, error) {
	args := m.Called(ctx, params)
	if created, ok := args.Get(0).(*loan.Loan); ok {
		return created, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockLoanService) ApproveLoan(ctx context.Context, loanID int64) (*loan.Loan, error) {
	args := m.Called(ctx, loanID)
	if approved, ok := args.Get(0).(*loan.Loan); ok {
		return approved, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockLoanService) UpdateLoan(ctx context.Context, loanID int64, params loan.UpdateLoanParams) (*loan.Loan, error) {
	args := m.Called(ctx, loanID, params)
	if updated, ok := args.Get(0).(*loan.Loan); ok {
		return updated, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockLoanService) DeactivateLoan(ctx context.Context, loanID int64) error {
	args := m.Called(ctx, loanID)
	return args.Error(0)
}

func (m *MockLoanService) SafeDeleteLoan(ctx context.Context, loanID int64) error {
	args := m.Called(ctx, loanID)
	return args.Error(0)
}

func (m *MockLoanService) GetLoan(ctx context.Context, loanID int64) (*loan.Loan, error) {
	args := m.Called(ctx, loanID)
	if l, ok := args.Get(0).(*loan.Loan); ok {
		return l, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockLoanService) GetRepaymentSchedule(ctx context.Context, loanID int64) ([]loan.Repayment, error) {
	args := m.Called(ctx, loanID)
	if schedule, ok := args.Get(0).([]loan.Repayment); ok {
		return schedule, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockLoanService) ListLoans(ctx context.Context) ([]loan.Loan, error) {
	args := m.Called(ctx)
	if loans, ok := args.Get(0).([]loan.Loan); ok {
		return loans, args.Error(1)
	}
	return nil, args.Error(1)
}

func withURLParam(req *http.Request, key, value string) *http.Request {
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, &chi.Context{
		URLParams: chi.RouteParams{Keys: []string{key}, Values: []string{value}},
	}))
}

func sampleLoan(loanID int64) *loan.Loan {
	return &loan.Loan{
		LoanID:           loanID,
		LoanNo:           "LN202503010001",
		CustomerID:       10,
		BranchID:         2,
		Principal:        decimal.NewFromInt(12000),
		InterestRate:     decimal.NewFromInt(12),
		TenureMonths:     12,
		BalancePrincipal: decimal.NewFromInt(12000),
		Status:           loan.StatusPending,
	}
}

func TestLoanHandlerGetLoan(t *testing.T) {
	mockService := new(MockLoanService)
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	handler := NewLoanHandler(mockService, logger)

	t.Run("successfully retrieves loan details", func(t *testing.T) {
		loanID := int64(123)
		mockService.On("GetLoan", mock.Anything, loanID).Return(sampleLoan(loanID), nil)

		req := withURLParam(httptest.NewRequest(http.MethodGet, "/loans/123", nil), "loanID", "123")
		rec := httptest.NewRecorder()

		handler.GetLoan(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		var resp dto.LoanResponse
		err := json.NewDecoder(rec.Body).Decode(&resp)
		assert.NoError(t, err)
		assert.Equal(t, "123", resp.ID)
		assert.Equal(t, "12000.00", resp.Principal)
		assert.Nil(t, resp.Schedule)
		mockService.AssertExpectations(t)
	})

	t.Run("embeds the schedule when requested", func(t *testing.T) {
		loanID := int64(124)
		mockService.On("GetLoan", mock.Anything, loanID).Return(sampleLoan(loanID), nil)
		mockService.On("GetRepaymentSchedule", mock.Anything, loanID).Return([]loan.Repayment{
			{RepaymentID: 1, LoanID: loanID, DueDate: time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
				ExpectedPrincipal: decimal.NewFromInt(1000), ExpectedInterest: decimal.NewFromInt(120),
				TotalDue: decimal.NewFromInt(1120), RemainingPrincipal: decimal.NewFromInt(12000),
				Status: loan.RepaymentUnpaid},
		}, nil)

		req := withURLParam(httptest.NewRequest(http.MethodGet, "/loans/124?include=schedule", nil), "loanID", "124")
		rec := httptest.NewRecorder()

		handler.GetLoan(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		var resp dto.LoanResponse
		err := json.NewDecoder(rec.Body).Decode(&resp)
		assert.NoError(t, err)
		assert.Len(t, resp.Schedule, 1)
		assert.Equal(t, "1120.00", resp.Schedule[0].TotalDue)
		mockService.AssertExpectations(t)
	})

	t.Run("returns error for invalid loan ID", func(t *testing.T) {
		req := withURLParam(httptest.NewRequest(http.MethodGet, "/loans/invalid", nil), "loanID", "invalid")
		rec := httptest.NewRecorder()

		handler.GetLoan(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		var resp dto.ErrorResponse
		err := json.NewDecoder(rec.Body).Decode(&resp)
		assert.NoError(t, err)
		assert.Contains(t, resp.Error.Message, "invalid syntax")
	})

	t.Run("returns error when loan not found", func(t *testing.T) {
		loanID := int64(2)
		mockService.On("GetLoan", mock.Anything, loanID).Return((*loan.Loan)(nil), apperrors.ErrNotFound)

		req := withURLParam(httptest.NewRequest(http.MethodGet, "/loans/2", nil), "loanID", "2")
		rec := httptest.NewRecorder()

		handler.GetLoan(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		var resp dto.ErrorResponse
		err := json.NewDecoder(rec.Body).Decode(&resp)
		assert.NoError(t, err)
		assert.Equal(t, "Resource not found.", resp.Error.Message)
		mockService.AssertExpectations(t)
	})

	t.Run("returns internal server error for unexpected errors", func(t *testing.T) {
		loanID := int64(3)
		mockService.On("GetLoan", mock.Anything, loanID).Return((*loan.Loan)(nil), errors.New("unexpected error"))

		req := withURLParam(httptest.NewRequest(http.MethodGet, "/loans/3", nil), "loanID", "3")
		rec := httptest.NewRecorder()

		handler.GetLoan(rec, req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		var resp dto.ErrorResponse
		err := json.NewDecoder(rec.Body).Decode(&resp)
		assert.NoError(t, err)
		assert.Equal(t, "An unexpected error occurred.", resp.Error.Message)
		mockService.AssertExpectations(t)
	})
}

func TestLoanHandlerCreateLoan(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	t.Run("successfully creates a loan", func(t *testing.T) {
		mockService := new(MockLoanService)
		handler := NewLoanHandler(mockService, logger)

		mockService.On("CreateLoan", mock.Anything, mock.MatchedBy(func(p loan.CreateLoanParams) bool {
			return p.CustomerID == 10 &&
				p.Principal.Equal(decimal.NewFromInt(12000)) &&
				p.TenureMonths == 12
		})).Return(sampleLoan(1), nil)

		body := `{"customerId":10,"branchId":2,"principal":"12000","interestRate":"12","tenureMonths":12}`
		req := httptest.NewRequest(http.MethodPost, "/loans", strings.NewReader(body))
		rec := httptest.NewRecorder()

		handler.CreateLoan(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
		var resp dto.LoanResponse
		err := json.NewDecoder(rec.Body).Decode(&resp)
		assert.NoError(t, err)
		assert.Equal(t, "PENDING", resp.Status)
		mockService.AssertExpectations(t)
	})

	t.Run("rejects malformed JSON", func(t *testing.T) {
		mockService := new(MockLoanService)
		handler := NewLoanHandler(mockService, logger)

		req := httptest.NewRequest(http.MethodPost, "/loans", strings.NewReader("{not json"))
		rec := httptest.NewRecorder()

		handler.CreateLoan(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		mockService.AssertNotCalled(t, "CreateLoan", mock.Anything, mock.Anything)
	})

	t.Run("rejects invalid principal", func(t *testing.T) {
		mockService := new(MockLoanService)
		handler := NewLoanHandler(mockService, logger)

		body := `{"customerId":10,"branchId":2,"principal":"0","interestRate":"12","tenureMonths":12}`
		req := httptest.NewRequest(http.MethodPost, "/loans", strings.NewReader(body))
		rec := httptest.NewRecorder()

		handler.CreateLoan(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		var resp dto.ErrorResponse
		err := json.NewDecoder(rec.Body).Decode(&resp)
		assert.NoError(t, err)
		assert.Contains(t, resp.Error.Message, "principal must be greater than zero")
		mockService.AssertNotCalled(t, "CreateLoan", mock.Anything, mock.Anything)
	})
}

func TestLoanHandlerApproveLoan(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	t.Run("approves a pending loan", func(t *testing.T) {
		mockService := new(MockLoanService)
		handler := NewLoanHandler(mockService, logger)

		approved := sampleLoan(5)
		approved.Status = loan.StatusActive
		start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
		approved.StartDate = &start
		mockService.On("ApproveLoan", mock.Anything, int64(5)).Return(approved, nil)

		req := withURLParam(httptest.NewRequest(http.MethodPut, "/loans/5/approve", nil), "loanID", "5")
		rec := httptest.NewRecorder()

		handler.ApproveLoan(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		var resp dto.LoanResponse
		err := json.NewDecoder(rec.Body).Decode(&resp)
		assert.NoError(t, err)
		assert.Equal(t, "ACTIVE", resp.Status)
		assert.Equal(t, "2025-03-01", resp.StartDate)
		mockService.AssertExpectations(t)
	})

	t.Run("returns conflict for a non-pending loan", func(t *testing.T) {
		mockService := new(MockLoanService)
		handler := NewLoanHandler(mockService, logger)

		mockService.On("ApproveLoan", mock.Anything, int64(5)).Return((*loan.Loan)(nil), apperrors.ErrInvalidState)

		req := withURLParam(httptest.NewRequest(http.MethodPut, "/loans/5/approve", nil), "loanID", "5")
		rec := httptest.NewRecorder()

		handler.ApproveLoan(rec, req)

		assert.Equal(t, http.StatusConflict, rec.Code)
		mockService.AssertExpectations(t)
	})
}

func TestLoanHandlerGetOutstanding(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	t.Run("sums balance and unpaid interest", func(t *testing.T) {
		mockService := new(MockLoanService)
		handler := NewLoanHandler(mockService, logger)

		l := sampleLoan(9)
		l.Status = loan.StatusActive
		l.BalancePrincipal = decimal.NewFromInt(11000)
		mockService.On("GetLoan", mock.Anything, int64(9)).Return(l, nil)
		mockService.On("GetRepaymentSchedule", mock.Anything, int64(9)).Return([]loan.Repayment{
			{Status: loan.RepaymentOverdue, OutstandingInterest: decimal.NewFromInt(120)},
			{Status: loan.RepaymentUnpaid, OutstandingInterest: decimal.Zero},
		}, nil)

		req := withURLParam(httptest.NewRequest(http.MethodGet, "/loans/9/outstanding", nil), "loanID", "9")
		rec := httptest.NewRecorder()

		handler.GetOutstanding(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		var resp dto.OutstandingResponse
		err := json.NewDecoder(rec.Body).Decode(&resp)
		assert.NoError(t, err)
		assert.Equal(t, "11120.00", resp.OutstandingAmount)
		mockService.AssertExpectations(t)
	})
}
