package dto

import (
	"fmt"

	"github.com/shopspring/decimal"
)

type ApplyPaymentRequest struct {
	Amount string `json:"amount"`
}

func (r *ApplyPaymentRequest) Validate() error {
	if r.Amount == "" {
		return fmt.Errorf("payment amount is required")
	}
	amount, err := decimal.NewFromString(r.Amount)
	if err != nil {
		return fmt.Errorf("invalid payment amount: %w", err)
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("payment amount must be greater than zero")
	}
	return nil
}
