package handler

import (
	"fmt"
	"log/slog"
	"net/http"

	"lending-engine/internal/api/handler/dto"
	"lending-engine/internal/domain/billing"
	"lending-engine/internal/domain/job"
	"lending-engine/internal/pkg/apperrors"
)

type BillingHandler struct {
	tracker job.ExecutionTracker
	repo    billing.Repository
	logger  *slog.Logger
}

func NewBillingHandler(tracker job.ExecutionTracker, repo billing.Repository, l *slog.Logger) *BillingHandler {
	return &BillingHandler{
		tracker: tracker,
		repo:    repo,
		logger:  l.With("component", "BillingHandler"),
	}
}

// RunBillingSweep triggers a billing sweep immediately.
//
// @Summary Trigger a billing sweep
// @Description Runs the billing sweep for the current business date in MANUAL mode. The run is recorded as a job execution either way.
// @Tags Billing
// @Produce json
// @Success 200 {object} dto.SweepRunResponse "Sweep finished"
// @Failure 500 {object} dto.ErrorResponse "Sweep failed"
// @Router /billing/run [post]
// @Security BearerAuth
func (h *BillingHandler) RunBillingSweep(w http.ResponseWriter, r *http.Request) {
	record, result, err := h.tracker.RunBillingSweep(r.Context(), job.ModeManual)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.NewSweepRunResponse(record, result))
}

// ListBillingsByLoan retrieves the billing ledger entries of a loan.
//
// @Summary List billing records for a loan
// @Tags Billing
// @Produce json
// @Param loanID path int true "Loan ID"
// @Success 200 {array} dto.BillingResponse "Billing records successfully retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid loan ID"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /loans/{loanID}/billings [get]
// @Security BearerAuth
func (h *BillingHandler) ListBillingsByLoan(w http.ResponseWriter, r *http.Request) {
	loanID, err := getIDFromURL(r, "loanID")
	if err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	records, err := h.repo.ListBillingsByLoanID(r.Context(), loanID)
	if err != nil {
		respondError(w, err)
		return
	}

	resp := make([]dto.BillingResponse, len(records))
	for i := range records {
		resp[i] = dto.NewBillingResponse(&records[i])
	}
	respondJSON(w, http.StatusOK, resp)
}
