package dto

import (
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"lending-engine/internal/domain/loan"
)

type CreateLoanRequest struct {
	CustomerID   int64  `json:"customerId"`
	BranchID     int64  `json:"branchId"`
	CollateralID *int64 `json:"collateralId,omitempty"`
	LoanType     string `json:"loanType"`
	Principal    string `json:"principal"`
	InterestRate string `json:"interestRate"`
	TenureMonths int    `json:"tenureMonths"`
}

func (r *CreateLoanRequest) Validate() error {
	principal, err := decimal.NewFromString(r.Principal)
	if err != nil {
		return fmt.Errorf("invalid numeric format for principal: %w", err)
	}
	if principal.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("principal must be greater than zero")
	}
	rate, err := decimal.NewFromString(r.InterestRate)
	if err != nil {
		return fmt.Errorf("invalid numeric format for interestRate: %w", err)
	}
	if rate.IsNegative() {
		return fmt.Errorf("interestRate must not be negative")
	}
	if r.TenureMonths <= 0 {
		return fmt.Errorf("tenureMonths must be positive")
	}
	if r.CustomerID <= 0 {
		return fmt.Errorf("customerId is required")
	}
	return nil
}

type UpdateLoanRequest struct {
	LoanType     *string `json:"loanType,omitempty"`
	InterestRate *string `json:"interestRate,omitempty"`
	TenureMonths *int    `json:"tenureMonths,omitempty"`
	BranchID     *int64  `json:"branchId,omitempty"`
	CustomerID   *int64  `json:"customerId,omitempty"`
	CollateralID *int64  `json:"collateralId,omitempty"`
}

func (r *UpdateLoanRequest) Validate() error {
	if r.InterestRate != nil {
		if _, err := decimal.NewFromString(*r.InterestRate); err != nil {
			return fmt.Errorf("invalid numeric format for interestRate: %w", err)
		}
	}
	if r.TenureMonths != nil && *r.TenureMonths <= 0 {
		return fmt.Errorf("tenureMonths must be positive")
	}
	return nil
}

type LoanResponse struct {
	ID               string              `json:"id"`
	LoanNo           string              `json:"loanNo"`
	LoanType         string              `json:"loanType,omitempty"`
	CustomerID       int64               `json:"customerId"`
	BranchID         int64               `json:"branchId"`
	CollateralID     *int64              `json:"collateralId,omitempty"`
	Principal        string              `json:"principal"`
	InterestRate     string              `json:"interestRate"`
	TenureMonths     int                 `json:"tenureMonths"`
	StartDate        string              `json:"startDate,omitempty"`
	MaturityDate     string              `json:"maturityDate,omitempty"`
	BalancePrincipal string              `json:"balancePrincipal"`
	Status           string              `json:"status"`
	CreatedAt        time.Time           `json:"createdAt"`
	UpdatedAt        time.Time           `json:"updatedAt"`
	Schedule         []RepaymentResponse `json:"schedule,omitempty"`
}

type RepaymentResponse struct {
	ID                  string     `json:"id"`
	LoanID              string     `json:"loanId"`
	CustomerID          int64      `json:"customerId"`
	DueDate             string     `json:"dueDate"`
	PaymentDate         *time.Time `json:"paymentDate,omitempty"`
	ExpectedPrincipal   string     `json:"expectedPrincipal"`
	ExpectedInterest    string     `json:"expectedInterest"`
	TotalDue            string     `json:"totalDue"`
	AmountPaid          string     `json:"amountPaid"`
	PrincipalPaid       string     `json:"principalPaid"`
	InterestPaid        string     `json:"interestPaid"`
	RemainingPrincipal  string     `json:"remainingPrincipal"`
	OutstandingInterest string     `json:"outstandingInterest"`
	RateOfInterest      string     `json:"rateOfInterest"`
	Status              string     `json:"status"`
	BillingDone         bool       `json:"billingDone"`
}

type OutstandingResponse struct {
	LoanID            string `json:"loanId"`
	OutstandingAmount string `json:"outstandingAmount"`
}

type ErrorDetail struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type TokenRequest struct {
	Username string `json:"username"`
}

func NewLoanResponse(l *loan.Loan, schedule []loan.Repayment) LoanResponse {
	resp := LoanResponse{
		ID:               strconv.FormatInt(l.LoanID, 10),
		LoanNo:           l.LoanNo,
		LoanType:         l.LoanType,
		CustomerID:       l.CustomerID,
		BranchID:         l.BranchID,
		CollateralID:     l.CollateralID,
		Principal:        l.Principal.StringFixed(2),
		InterestRate:     l.InterestRate.String(),
		TenureMonths:     l.TenureMonths,
		BalancePrincipal: l.BalancePrincipal.StringFixed(2),
		Status:           string(l.Status),
		CreatedAt:        l.CreatedAt,
		UpdatedAt:        l.UpdatedAt,
	}
	if l.StartDate != nil {
		resp.StartDate = l.StartDate.Format(time.DateOnly)
	}
	if l.MaturityDate != nil {
		resp.MaturityDate = l.MaturityDate.Format(time.DateOnly)
	}

	if schedule != nil {
		resp.Schedule = make([]RepaymentResponse, len(schedule))
		for i, entry := range schedule {
			resp.Schedule[i] = NewRepaymentResponse(&entry)
		}
	}
	return resp
}

func NewRepaymentResponse(r *loan.Repayment) RepaymentResponse {
	return RepaymentResponse{
		ID:                  strconv.FormatInt(r.RepaymentID, 10),
		LoanID:              strconv.FormatInt(r.LoanID, 10),
		CustomerID:          r.CustomerID,
		DueDate:             r.DueDate.Format(time.DateOnly),
		PaymentDate:         r.PaymentDate,
		ExpectedPrincipal:   r.ExpectedPrincipal.StringFixed(2),
		ExpectedInterest:    r.ExpectedInterest.StringFixed(2),
		TotalDue:            r.TotalDue.StringFixed(2),
		AmountPaid:          r.AmountPaid.StringFixed(2),
		PrincipalPaid:       r.PrincipalPaid.StringFixed(2),
		InterestPaid:        r.InterestPaid.StringFixed(2),
		RemainingPrincipal:  r.RemainingPrincipal.StringFixed(2),
		OutstandingInterest: r.OutstandingInterest.StringFixed(2),
		RateOfInterest:      r.RateOfInterest.String(),
		Status:              string(r.Status),
		BillingDone:         r.BillingDone,
	}
}
