package handler

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/shopspring/decimal"

	"lending-engine/internal/api/handler/dto"
	"lending-engine/internal/domain/loan"
	"lending-engine/internal/pkg/apperrors"
)

type RepaymentHandler struct {
	service loan.PaymentService
	logger  *slog.Logger
}

func NewRepaymentHandler(s loan.PaymentService, l *slog.Logger) *RepaymentHandler {
	return &RepaymentHandler{
		service: s,
		logger:  l.With("component", "RepaymentHandler"),
	}
}

// GetRepayment retrieves a single installment.
//
// @Summary Retrieve repayment details
// @Tags Repayments
// @Produce json
// @Param repaymentID path int true "Repayment ID"
// @Success 200 {object} dto.RepaymentResponse "Repayment successfully retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid repayment ID"
// @Failure 404 {object} dto.ErrorResponse "Repayment not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /repayments/{repaymentID} [get]
// @Security BearerAuth
func (h *RepaymentHandler) GetRepayment(w http.ResponseWriter, r *http.Request) {
	repaymentID, err := getIDFromURL(r, "repaymentID")
	if err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	repayment, err := h.service.GetRepayment(r.Context(), repaymentID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.NewRepaymentResponse(repayment))
}

// ApplyPayment applies a cash payment to an installment.
//
// @Summary Pay an installment
// @Description Splits the paid amount into interest and principal against the loan's current balance, updates the installment and reduces the loan balance. A loan reaching zero balance is closed.
// @Tags Repayments
// @Accept json
// @Produce json
// @Param repaymentID path int true "Repayment ID"
// @Param request body dto.ApplyPaymentRequest true "Payment request payload"
// @Success 200 {object} dto.RepaymentResponse "Payment successfully applied"
// @Failure 400 {object} dto.ErrorResponse "Invalid repayment ID, payload, or payment amount"
// @Failure 404 {object} dto.ErrorResponse "Repayment not found"
// @Failure 409 {object} dto.ErrorResponse "Loan has not been approved"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /repayments/{repaymentID}/payments [post]
// @Security BearerAuth
func (h *RepaymentHandler) ApplyPayment(w http.ResponseWriter, r *http.Request) {
	repaymentID, err := getIDFromURL(r, "repaymentID")
	if err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	var req dto.ApplyPaymentRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	amount, _ := decimal.NewFromString(req.Amount)

	updated, err := h.service.ApplyPayment(r.Context(), repaymentID, amount)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.NewRepaymentResponse(updated))
}

// DeleteRepayment removes a single unpaid installment.
//
// @Summary Delete a repayment
// @Description Removes one installment from a schedule. Paid installments cannot be deleted.
// @Tags Repayments
// @Produce json
// @Param repaymentID path int true "Repayment ID"
// @Success 200 {object} map[string]string "Repayment successfully deleted"
// @Failure 400 {object} dto.ErrorResponse "Invalid repayment ID"
// @Failure 404 {object} dto.ErrorResponse "Repayment not found"
// @Failure 409 {object} dto.ErrorResponse "Repayment is already paid"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /repayments/{repaymentID} [delete]
// @Security BearerAuth
func (h *RepaymentHandler) DeleteRepayment(w http.ResponseWriter, r *http.Request) {
	repaymentID, err := getIDFromURL(r, "repaymentID")
	if err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	if err := h.service.DeleteRepayment(r.Context(), repaymentID); err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Repayment deleted"})
}
