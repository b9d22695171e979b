package domain

import (
	"fmt"
	"strings"
	"time"
)

type AccountStatus string

const (
	AccountStatusActive      AccountStatus = "ACTIVE"
	AccountStatusDeactivated AccountStatus = "DEACTIVATED"
)

type AccountClass string

const (
	AccountClassSavings AccountClass = "SAVINGS"
	AccountClassCurrent AccountClass = "CURRENT"
)

// ParseAccountClass validates a boundary string against the closed class set.
func ParseAccountClass(raw string) (AccountClass, error) {
	switch AccountClass(strings.ToUpper(strings.TrimSpace(raw))) {
	case AccountClassSavings:
		return AccountClassSavings, nil
	case AccountClassCurrent:
		return AccountClassCurrent, nil
	default:
		return "", fmt.Errorf("%w: accountClass must be one of SAVINGS, CURRENT", ErrInvalidInput)
	}
}

// Account is the safe read-only projection of an account: identity, balance
// and status, without the transaction log.
type Account struct {
	ID        string
	OwnerName string
	Class     AccountClass
	Balance   Money
	Status    AccountStatus
	CreatedAt time.Time
}

// AccountDetail is the full view including the transaction history, in
// append order.
type AccountDetail struct {
	Account
	Transactions []Transaction
}
