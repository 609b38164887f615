package dto

import (
	"fmt"
	"time"
)

type SystemDateResponse struct {
	BusinessDate string `json:"businessDate"`
}

type SetSystemDateRequest struct {
	BusinessDate string `json:"businessDate"`
	UpdatedBy    string `json:"updatedBy"`
}

func (r *SetSystemDateRequest) Validate() error {
	if r.BusinessDate == "" {
		return fmt.Errorf("businessDate is required")
	}
	if _, err := time.Parse(time.DateOnly, r.BusinessDate); err != nil {
		return fmt.Errorf("invalid businessDate format (use YYYY-MM-DD): %w", err)
	}
	return nil
}
