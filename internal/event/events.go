package event

import (
	"context"
	"time"
)

type LoanApprovedEvent struct {
	LoanID       int64     `json:"loanId"`
	LoanNo       string    `json:"loanNo"`
	CustomerID   int64     `json:"customerId"`
	Principal    string    `json:"principal"`
	StartDate    time.Time `json:"startDate"`
	MaturityDate time.Time `json:"maturityDate"`
	Timestamp    time.Time `json:"timestamp"`
}

type PaymentAppliedEvent struct {
	LoanID        int64     `json:"loanId"`
	RepaymentID   int64     `json:"repaymentId"`
	AmountPaid    string    `json:"amountPaid"`
	PrincipalPaid string    `json:"principalPaid"`
	InterestPaid  string    `json:"interestPaid"`
	LoanBalance   string    `json:"loanBalance"`
	LoanClosed    bool      `json:"loanClosed"`
	Timestamp     time.Time `json:"timestamp"`
}

type BillingSweepCompletedEvent struct {
	BillingDate    time.Time `json:"billingDate"`
	ProcessedCount int       `json:"processedCount"`
	ExecutionMode  string    `json:"executionMode"`
	JobSeqNo       int64     `json:"jobSeqNo"`
	Timestamp      time.Time `json:"timestamp"`
}

type Publisher interface {
	PublishLoanApproved(ctx context.Context, event LoanApprovedEvent) error
	PublishPaymentApplied(ctx context.Context, event PaymentAppliedEvent) error
	PublishBillingSweepCompleted(ctx context.Context, event BillingSweepCompletedEvent) error
}

// NoopPublisher satisfies Publisher when messaging is disabled.
type NoopPublisher struct{}

func (NoopPublisher) PublishLoanApproved(context.Context, LoanApprovedEvent) error { return nil }

func (NoopPublisher) PublishPaymentApplied(context.Context, PaymentAppliedEvent) error { return nil }

func (NoopPublisher) PublishBillingSweepCompleted(context.Context, BillingSweepCompletedEvent) error {
	return nil
}
