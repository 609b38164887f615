package dto

import (
	"strconv"
	"time"

	"lending-engine/internal/domain/billing"
	"lending-engine/internal/domain/job"
)

type BillingResponse struct {
	ID          string    `json:"id"`
	LoanID      string    `json:"loanId"`
	RepaymentID string    `json:"repaymentId"`
	BillingDate string    `json:"billingDate"`
	DueDate     string    `json:"dueDate"`
	AmountDue   string    `json:"amountDue"`
	AmountPaid  string    `json:"amountPaid"`
	Status      string    `json:"status"`
	Remarks     string    `json:"remarks,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

type SweepRunResponse struct {
	SeqNo          int64  `json:"seqNo"`
	Status         string `json:"status"`
	ExecutionMode  string `json:"executionMode"`
	BusinessDate   string `json:"businessDate,omitempty"`
	ProcessedCount int    `json:"processedCount"`
	ErrorCount     int    `json:"errorCount"`
	Remarks        string `json:"remarks,omitempty"`
}

func NewBillingResponse(b *billing.Billing) BillingResponse {
	return BillingResponse{
		ID:          strconv.FormatInt(b.BillingID, 10),
		LoanID:      strconv.FormatInt(b.LoanID, 10),
		RepaymentID: strconv.FormatInt(b.RepaymentID, 10),
		BillingDate: b.BillingDate.Format(time.DateOnly),
		DueDate:     b.DueDate.Format(time.DateOnly),
		AmountDue:   b.AmountDue.StringFixed(2),
		AmountPaid:  b.AmountPaid.StringFixed(2),
		Status:      string(b.Status),
		Remarks:     b.Remarks,
		CreatedAt:   b.CreatedAt,
	}
}

func NewSweepRunResponse(record *job.Job, result *billing.SweepResult) SweepRunResponse {
	resp := SweepRunResponse{}
	if record != nil {
		resp.SeqNo = record.SeqNo
		resp.Status = string(record.Status)
		resp.ExecutionMode = string(record.ExecutionMode)
		resp.Remarks = record.Remarks
	}
	if result != nil {
		resp.BusinessDate = result.BillingDate.Format(time.DateOnly)
		resp.ProcessedCount = result.ProcessedCount
		resp.ErrorCount = result.ErrorCount
	}
	return resp
}
