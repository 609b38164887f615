package handler

import (
	"fmt"
	"log/slog"
	"net/http"

	"lending-engine/internal/api/handler/dto"
	"lending-engine/internal/domain/job"
	"lending-engine/internal/pkg/apperrors"
)

type JobHandler struct {
	tracker job.ExecutionTracker
	logger  *slog.Logger
}

func NewJobHandler(tracker job.ExecutionTracker, l *slog.Logger) *JobHandler {
	return &JobHandler{
		tracker: tracker,
		logger:  l.With("component", "JobHandler"),
	}
}

// ListJobDefinitions lists job definitions with their last execution.
//
// @Summary List job definitions
// @Tags Jobs
// @Produce json
// @Success 200 {array} dto.JobDefinitionResponse "Job definitions successfully retrieved"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /jobs [get]
// @Security BearerAuth
func (h *JobHandler) ListJobDefinitions(w http.ResponseWriter, r *http.Request) {
	defs, err := h.tracker.ListJobDefinitions(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	resp := make([]dto.JobDefinitionResponse, len(defs))
	for i := range defs {
		resp[i] = dto.NewJobDefinitionResponse(&defs[i])
	}
	respondJSON(w, http.StatusOK, resp)
}

// RunJob executes a job definition immediately.
//
// @Summary Run a job definition
// @Description Dispatches the job by name in MANUAL mode. Disabled or unhandled definitions produce a SKIPPED execution record.
// @Tags Jobs
// @Produce json
// @Param jobID path int true "Job definition ID"
// @Success 200 {object} dto.JobResponse "Job execution record"
// @Failure 400 {object} dto.ErrorResponse "Invalid job ID"
// @Failure 404 {object} dto.ErrorResponse "Job definition not found"
// @Failure 500 {object} dto.ErrorResponse "Job failed"
// @Router /jobs/{jobID}/run [post]
// @Security BearerAuth
func (h *JobHandler) RunJob(w http.ResponseWriter, r *http.Request) {
	jobID, err := getIDFromURL(r, "jobID")
	if err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	record, _, err := h.tracker.RunJob(r.Context(), jobID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.NewJobResponse(record))
}

// GetJobHistory lists the execution history of a job definition.
//
// @Summary Retrieve job execution history
// @Description Returns executions of the given definition, most recent first.
// @Tags Jobs
// @Produce json
// @Param jobID path int true "Job definition ID"
// @Success 200 {array} dto.JobResponse "Job history successfully retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid job ID"
// @Failure 404 {object} dto.ErrorResponse "Job definition not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /jobs/{jobID}/history [get]
// @Security BearerAuth
func (h *JobHandler) GetJobHistory(w http.ResponseWriter, r *http.Request) {
	jobID, err := getIDFromURL(r, "jobID")
	if err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	history, err := h.tracker.GetJobHistory(r.Context(), jobID)
	if err != nil {
		respondError(w, err)
		return
	}

	resp := make([]dto.JobResponse, len(history))
	for i := range history {
		resp[i] = dto.NewJobResponse(&history[i])
	}
	respondJSON(w, http.StatusOK, resp)
}
