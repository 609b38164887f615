package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"lending-engine/internal/api/handler/dto"
	"lending-engine/internal/pkg/apperrors"
	"lending-engine/internal/pkg/clock"
)

type SystemDateHandler struct {
	clock  *clock.SystemDateClock
	logger *slog.Logger
}

func NewSystemDateHandler(c *clock.SystemDateClock, l *slog.Logger) *SystemDateHandler {
	return &SystemDateHandler{
		clock:  c,
		logger: l.With("component", "SystemDateHandler"),
	}
}

// GetSystemDate returns the current business date.
//
// @Summary Retrieve the current business date
// @Tags Admin
// @Produce json
// @Success 200 {object} dto.SystemDateResponse "Business date successfully retrieved"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/system-date [get]
// @Security BearerAuth
func (h *SystemDateHandler) GetSystemDate(w http.ResponseWriter, r *http.Request) {
	date, err := h.clock.BusinessDate(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.SystemDateResponse{BusinessDate: date.Format(time.DateOnly)})
}

// SetSystemDate pins the business date to a specific day.
//
// @Summary Set the business date
// @Description Pins the simulated business date, letting operators replay or fast-forward billing days.
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body dto.SetSystemDateRequest true "System date payload"
// @Success 200 {object} dto.SystemDateResponse "Business date successfully updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request payload"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/system-date [put]
// @Security BearerAuth
func (h *SystemDateHandler) SetSystemDate(w http.ResponseWriter, r *http.Request) {
	var req dto.SetSystemDateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	date, _ := time.Parse(time.DateOnly, req.BusinessDate)
	updatedBy := req.UpdatedBy
	if updatedBy == "" {
		updatedBy = "API"
	}

	if err := h.clock.Set(r.Context(), date, updatedBy); err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.SystemDateResponse{BusinessDate: req.BusinessDate})
}

// AdvanceSystemDate rolls the business date forward to today.
//
// @Summary Advance the business date
// @Description Moves the business date to the current wall-clock date.
// @Tags Admin
// @Produce json
// @Success 200 {object} dto.SystemDateResponse "Business date successfully advanced"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/system-date/advance [post]
// @Security BearerAuth
func (h *SystemDateHandler) AdvanceSystemDate(w http.ResponseWriter, r *http.Request) {
	date, err := h.clock.Advance(r.Context(), "API")
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.SystemDateResponse{BusinessDate: date.Format(time.DateOnly)})
}
