package models

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

type TransferRequest struct {
	FromAccountID string `json:"fromAccountId"`
	ToAccountID   string `json:"toAccountId"`
	Amount        string `json:"amount"`
}

func (r TransferRequest) Validate() error {
	var errs []string

	fromID := strings.TrimSpace(r.FromAccountID)
	toID := strings.TrimSpace(r.ToAccountID)
	if fromID == "" {
		errs = append(errs, "fromAccountId is required")
	}
	if toID == "" {
		errs = append(errs, "toAccountId is required")
	}

	amount := strings.TrimSpace(r.Amount)
	if amount == "" {
		errs = append(errs, "amount is required")
	} else {
		parsed, err := decimal.NewFromString(amount)
		if err != nil {
			errs = append(errs, "amount must be numeric")
		} else if parsed.LessThanOrEqual(decimal.Zero) {
			errs = append(errs, "amount must be greater than zero")
		}
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

type TransferResponse struct {
	FromAccountID    string `json:"fromAccountId"`
	ToAccountID      string `json:"toAccountId"`
	Amount           string `json:"amount"`
	FromBalance      string `json:"fromBalance"`
	ToBalance        string `json:"toBalance"`
	OutTransactionID string `json:"outTransactionId"`
	InTransactionID  string `json:"inTransactionId"`
}
