package models

import (
	"errors"
	"strings"
	"time"

	"github.com/api-sage/account-ledger/internal/domain"
	"github.com/shopspring/decimal"
)

type CreateAccountRequest struct {
	OwnerName      string `json:"ownerName"`
	AccountClass   string `json:"accountClass"`
	InitialDeposit string `json:"initialDeposit,omitempty"`
}

func (r CreateAccountRequest) Validate() error {
	var errs []string

	if strings.TrimSpace(r.OwnerName) == "" {
		errs = append(errs, "ownerName is required")
	}

	class := strings.ToUpper(strings.TrimSpace(r.AccountClass))
	if class == "" {
		errs = append(errs, "accountClass is required")
	} else if class != string(domain.AccountClassSavings) && class != string(domain.AccountClassCurrent) {
		errs = append(errs, "accountClass must be one of SAVINGS, CURRENT")
	}

	if deposit := strings.TrimSpace(r.InitialDeposit); deposit != "" {
		parsed, err := decimal.NewFromString(deposit)
		if err != nil {
			errs = append(errs, "initialDeposit must be numeric")
		} else if parsed.IsNegative() {
			errs = append(errs, "initialDeposit cannot be negative")
		}
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

type AccountResponse struct {
	ID           string `json:"id"`
	OwnerName    string `json:"ownerName"`
	AccountClass string `json:"accountClass"`
	Balance      string `json:"balance"`
	Status       string `json:"status"`
	CreatedAt    string `json:"createdAt"`
}

type TransactionResponse struct {
	ID             string `json:"id"`
	Kind           string `json:"kind"`
	Amount         string `json:"amount"`
	Description    string `json:"description,omitempty"`
	Timestamp      string `json:"timestamp"`
	BalanceAfter   string `json:"balanceAfter"`
	CounterpartyID string `json:"counterpartyId,omitempty"`
}

type AccountDetailResponse struct {
	AccountResponse
	Transactions []TransactionResponse `json:"transactions"`
}

type MovementRequest struct {
	Amount      string `json:"amount"`
	Description string `json:"description,omitempty"`
}

func (r MovementRequest) Validate() error {
	var errs []string

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

type MovementResponse struct {
	AccountID     string `json:"accountId"`
	TransactionID string `json:"transactionId,omitempty"`
	Kind          string `json:"kind"`
	Amount        string `json:"amount"`
	Balance       string `json:"balance"`
}

func MapAccountToResponse(account domain.Account) AccountResponse {
	return AccountResponse{
		ID:           account.ID,
		OwnerName:    account.OwnerName,
		AccountClass: string(account.Class),
		Balance:      account.Balance.String(),
		Status:       string(account.Status),
		CreatedAt:    account.CreatedAt.Format(time.RFC3339),
	}
}

func MapTransactionToResponse(txn domain.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:             txn.ID,
		Kind:           string(txn.Kind),
		Amount:         txn.Amount.String(),
		Description:    txn.Description,
		Timestamp:      txn.Timestamp.Format(time.RFC3339Nano),
		BalanceAfter:   txn.BalanceAfter.String(),
		CounterpartyID: txn.CounterpartyID,
	}
}

func MapAccountToDetailResponse(detail domain.AccountDetail) AccountDetailResponse {
	out := AccountDetailResponse{
		AccountResponse: MapAccountToResponse(detail.Account),
		Transactions:    make([]TransactionResponse, 0, len(detail.Transactions)),
	}
	for _, txn := range detail.Transactions {
		out.Transactions = append(out.Transactions, MapTransactionToResponse(txn))
	}
	return out
}
