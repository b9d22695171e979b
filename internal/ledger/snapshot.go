package ledger

import (
	"time"

	"github.com/api-sage/account-ledger/internal/domain"
)

// Snapshot is the persistable form of the whole ledger. It exists so a
// durable store can save and load state through explicit hooks without the
// engine ever depending on storage directly.
type Snapshot struct {
	Version  int               `json:"version"`
	TakenAt  time.Time         `json:"takenAt"`
	Accounts []AccountSnapshot `json:"accounts"`
}

type AccountSnapshot struct {
	ID           string                `json:"id"`
	OwnerName    string                `json:"ownerName"`
	Class        string                `json:"class"`
	BalanceUnits int64                 `json:"balanceUnits"`
	Status       string                `json:"status"`
	CreatedAt    time.Time             `json:"createdAt"`
	Transactions []TransactionSnapshot `json:"transactions"`
}

type TransactionSnapshot struct {
	ID                string    `json:"id"`
	Kind              string    `json:"kind"`
	AmountUnits       int64     `json:"amountUnits"`
	Description       string    `json:"description,omitempty"`
	Timestamp         time.Time `json:"timestamp"`
	BalanceAfterUnits int64     `json:"balanceAfterUnits"`
	CounterpartyID    string    `json:"counterpartyId,omitempty"`
}

const snapshotVersion = 1

// Snapshot exports a consistent copy of every account. Accounts are frozen
// one at a time under their own lock while the registry read lock prevents
// concurrent creations from being half-included.
func (l *Ledger) Snapshot() Snapshot {
	l.mu.RLock()
	defer l.mu.RUnlock()

	s := Snapshot{Version: snapshotVersion, TakenAt: time.Now().UTC()}
	for _, a := range l.accounts {
		a.mu.Lock()
		as := AccountSnapshot{
			ID:           a.id,
			OwnerName:    a.ownerName,
			Class:        string(a.class),
			BalanceUnits: a.balance.Units(),
			Status:       string(a.status),
			CreatedAt:    a.createdAt,
		}
		for _, txn := range a.transactions {
			as.Transactions = append(as.Transactions, TransactionSnapshot{
				ID:                txn.ID,
				Kind:              string(txn.Kind),
				AmountUnits:       txn.Amount.Units(),
				Description:       txn.Description,
				Timestamp:         txn.Timestamp,
				BalanceAfterUnits: txn.BalanceAfter.Units(),
				CounterpartyID:    txn.CounterpartyID,
			})
		}
		a.mu.Unlock()
		s.Accounts = append(s.Accounts, as)
	}
	return s
}

// Restore replaces the ledger contents with a previously exported snapshot.
// Intended for bootstrap, before the ledger is shared with callers.
func (l *Ledger) Restore(s Snapshot) error {
	accounts := make(map[string]*account, len(s.Accounts))
	for _, as := range s.Accounts {
		balance, err := domain.NewMoney(as.BalanceUnits)
		if err != nil {
			return err
		}
		a := &account{
			id:        as.ID,
			ownerName: as.OwnerName,
			class:     domain.AccountClass(as.Class),
			balance:   balance,
			status:    domain.AccountStatus(as.Status),
			createdAt: as.CreatedAt,
		}
		for _, ts := range as.Transactions {
			amount, err := domain.NewMoney(ts.AmountUnits)
			if err != nil {
				return err
			}
			after, err := domain.NewMoney(ts.BalanceAfterUnits)
			if err != nil {
				return err
			}
			a.transactions = append(a.transactions, domain.Transaction{
				ID:             ts.ID,
				Kind:           domain.TransactionKind(ts.Kind),
				Amount:         amount,
				Description:    ts.Description,
				Timestamp:      ts.Timestamp,
				BalanceAfter:   after,
				CounterpartyID: ts.CounterpartyID,
			})
		}
		accounts[a.id] = a
	}

	l.mu.Lock()
	l.accounts = accounts
	l.mu.Unlock()
	return nil
}
