package dto

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"lending-engine/internal/domain/loan"
)

func TestNewLoanResponse(t *testing.T) {
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	maturity := start.AddDate(0, 12, 0)
	mockLoan := &loan.Loan{
		LoanID:           1,
		LoanNo:           "LN202503010001",
		LoanType:         "PERSONAL",
		CustomerID:       10,
		BranchID:         2,
		Principal:        decimal.NewFromInt(12000),
		InterestRate:     decimal.NewFromInt(12),
		TenureMonths:     12,
		StartDate:        &start,
		MaturityDate:     &maturity,
		BalancePrincipal: decimal.NewFromInt(11000),
		Status:           loan.StatusActive,
		CreatedAt:        time.Now(),
		UpdatedAt:        time.Now(),
	}

	schedule := []loan.Repayment{
		{
			RepaymentID:        7,
			LoanID:             1,
			CustomerID:         10,
			DueDate:            start.AddDate(0, 1, 0),
			ExpectedPrincipal:  decimal.NewFromInt(1000),
			ExpectedInterest:   decimal.NewFromInt(120),
			TotalDue:           decimal.NewFromInt(1120),
			AmountPaid:         decimal.NewFromInt(1120),
			PrincipalPaid:      decimal.NewFromInt(1000),
			InterestPaid:       decimal.NewFromInt(120),
			RemainingPrincipal: decimal.NewFromInt(11000),
			RateOfInterest:     decimal.NewFromInt(12),
			Status:             loan.RepaymentPaid,
			BillingDone:        true,
		},
	}

	t.Run("without schedule", func(t *testing.T) {
		response := NewLoanResponse(mockLoan, nil)

		assert.Equal(t, "1", response.ID)
		assert.Equal(t, "LN202503010001", response.LoanNo)
		assert.Equal(t, "12000.00", response.Principal)
		assert.Equal(t, "12", response.InterestRate)
		assert.Equal(t, 12, response.TenureMonths)
		assert.Equal(t, "2025-03-01", response.StartDate)
		assert.Equal(t, "2026-03-01", response.MaturityDate)
		assert.Equal(t, "11000.00", response.BalancePrincipal)
		assert.Equal(t, string(loan.StatusActive), response.Status)
		assert.Nil(t, response.Schedule)
	})

	t.Run("with schedule", func(t *testing.T) {
		response := NewLoanResponse(mockLoan, schedule)

		assert.NotNil(t, response.Schedule)
		assert.Len(t, response.Schedule, 1)

		entry := response.Schedule[0]
		assert.Equal(t, "7", entry.ID)
		assert.Equal(t, "1", entry.LoanID)
		assert.Equal(t, "2025-04-01", entry.DueDate)
		assert.Equal(t, "1120.00", entry.TotalDue)
		assert.Equal(t, "1120.00", entry.AmountPaid)
		assert.Equal(t, "1000.00", entry.PrincipalPaid)
		assert.Equal(t, "120.00", entry.InterestPaid)
		assert.Equal(t, string(loan.RepaymentPaid), entry.Status)
		assert.True(t, entry.BillingDone)
	})

	t.Run("pending loan omits dates", func(t *testing.T) {
		pending := *mockLoan
		pending.StartDate = nil
		pending.MaturityDate = nil
		pending.Status = loan.StatusPending

		response := NewLoanResponse(&pending, nil)
		assert.Empty(t, response.StartDate)
		assert.Empty(t, response.MaturityDate)
	})
}

func TestCreateLoanRequestValidate(t *testing.T) {
	valid := CreateLoanRequest{
		CustomerID:   10,
		BranchID:     2,
		Principal:    "12000",
		InterestRate: "12",
		TenureMonths: 12,
	}

	t.Run("accepts a valid request", func(t *testing.T) {
		req := valid
		assert.NoError(t, req.Validate())
	})

	t.Run("rejects zero principal", func(t *testing.T) {
		req := valid
		req.Principal = "0"
		assert.ErrorContains(t, req.Validate(), "principal must be greater than zero")
	})

	t.Run("rejects non-numeric rate", func(t *testing.T) {
		req := valid
		req.InterestRate = "twelve"
		assert.ErrorContains(t, req.Validate(), "invalid numeric format for interestRate")
	})

	t.Run("rejects negative rate", func(t *testing.T) {
		req := valid
		req.InterestRate = "-1"
		assert.ErrorContains(t, req.Validate(), "interestRate must not be negative")
	})

	t.Run("rejects missing customer", func(t *testing.T) {
		req := valid
		req.CustomerID = 0
		assert.ErrorContains(t, req.Validate(), "customerId is required")
	})
}

func TestApplyPaymentRequestValidate(t *testing.T) {
	t.Run("accepts a positive amount", func(t *testing.T) {
		req := ApplyPaymentRequest{Amount: "500.25"}
		assert.NoError(t, req.Validate())
	})

	t.Run("rejects a zero amount", func(t *testing.T) {
		req := ApplyPaymentRequest{Amount: "0"}
		assert.Error(t, req.Validate())
	})

	t.Run("rejects a non-numeric amount", func(t *testing.T) {
		req := ApplyPaymentRequest{Amount: "lots"}
		assert.Error(t, req.Validate())
	})
}
