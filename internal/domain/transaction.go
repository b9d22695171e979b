package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type TransactionKind string

const (
	TransactionKindDeposit     TransactionKind = "DEPOSIT"
	TransactionKindWithdraw    TransactionKind = "WITHDRAW"
	TransactionKindTransferOut TransactionKind = "TRANSFER_OUT"
	TransactionKindTransferIn  TransactionKind = "TRANSFER_IN"
)

// Transaction is an immutable record of one balance-affecting event. Once
// appended to an account it is never edited, reordered or removed.
type Transaction struct {
	ID             string
	Kind           TransactionKind
	Amount         Money
	Description    string
	Timestamp      time.Time
	BalanceAfter   Money
	CounterpartyID string
}

// NewTransactionID returns a fresh record id. A v4 uuid keeps ids
// collision-resistant even under rapid sequential calls, which a wall-clock
// based id would not.
func NewTransactionID() string {
	return fmt.Sprintf("TXN-%s", uuid.NewString())
}
