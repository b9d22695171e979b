// Package ledger implements the in-memory account ledger engine: it owns all
// account state, validates every mutation before touching anything, and keeps
// balance changes and transaction records atomic with respect to concurrent
// callers.
//
// Locking discipline: the registry map is guarded by an RWMutex so lookups on
// unrelated accounts never contend; each account carries its own mutex
// guarding balance, status and the transaction log as one unit. Transfer
// locks both accounts in lexicographic id order, which makes deadlock between
// opposing transfers structurally impossible.
package ledger

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/api-sage/account-ledger/internal/domain"
	"github.com/google/uuid"
)

// account is the single mutable unit for one account. All fields after id
// are guarded by mu; transactions is append-only.
type account struct {
	mu           sync.Mutex
	id           string
	ownerName    string
	class        domain.AccountClass
	balance      domain.Money
	status       domain.AccountStatus
	createdAt    time.Time
	transactions []domain.Transaction
}

// view snapshots the safe projection. Caller must hold a.mu.
func (a *account) view() domain.Account {
	return domain.Account{
		ID:        a.id,
		OwnerName: a.ownerName,
		Class:     a.class,
		Balance:   a.balance,
		Status:    a.status,
		CreatedAt: a.createdAt,
	}
}

// detail snapshots the full view with a copied transaction slice so callers
// can never reach the live log. Caller must hold a.mu.
func (a *account) detail() domain.AccountDetail {
	txns := make([]domain.Transaction, len(a.transactions))
	copy(txns, a.transactions)
	return domain.AccountDetail{Account: a.view(), Transactions: txns}
}

// record appends a transaction reflecting the current balance. Caller must
// hold a.mu and must have applied the balance change already.
func (a *account) record(kind domain.TransactionKind, amount domain.Money, description, counterparty string, at time.Time) domain.Transaction {
	txn := domain.Transaction{
		ID:             domain.NewTransactionID(),
		Kind:           kind,
		Amount:         amount,
		Description:    description,
		Timestamp:      at,
		BalanceAfter:   a.balance,
		CounterpartyID: counterparty,
	}
	a.transactions = append(a.transactions, txn)
	return txn
}

// Ledger is the engine owning the account registry. Construct with New; the
// zero value is not usable.
type Ledger struct {
	mu       sync.RWMutex
	accounts map[string]*account
}

func New() *Ledger {
	return &Ledger{accounts: make(map[string]*account)}
}

// lookup fetches the live account under a registry read lock. The returned
// pointer is only dereferenced after acquiring the account's own mutex.
func (l *Ledger) lookup(id string) (*account, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	a, ok := l.accounts[strings.TrimSpace(id)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return a, nil
}

// CreateAccount registers a new ACTIVE account and, when the initial deposit
// is positive, records the opening DEPOSIT. The account is visible to all
// subsequent operations the moment this returns.
func (l *Ledger) CreateAccount(ownerName string, class domain.AccountClass, initialDeposit domain.Money) (domain.Account, error) {
	ownerName = strings.TrimSpace(ownerName)
	if ownerName == "" {
		return domain.Account{}, fmt.Errorf("%w: ownerName is required", domain.ErrInvalidInput)
	}
	switch class {
	case domain.AccountClassSavings, domain.AccountClassCurrent:
	default:
		return domain.Account{}, fmt.Errorf("%w: unknown account class %q", domain.ErrInvalidInput, class)
	}

	now := time.Now().UTC()
	a := &account{
		id:        uuid.NewString(),
		ownerName: ownerName,
		class:     class,
		balance:   initialDeposit,
		status:    domain.AccountStatusActive,
		createdAt: now,
	}
	if initialDeposit.IsPositive() {
		a.record(domain.TransactionKindDeposit, initialDeposit, "Initial deposit", "", now)
	}

	l.mu.Lock()
	l.accounts[a.id] = a
	l.mu.Unlock()

	a.mu.Lock()
	defer a.mu.Unlock()
	return a.view(), nil
}

// MovementResult reports the post-movement snapshot and the record that the
// movement appended.
type MovementResult struct {
	Account domain.Account
	Tx      domain.Transaction
}

// Deposit credits an active account and appends the DEPOSIT record inside
// the same critical section, so no reader can observe one without the other.
func (l *Ledger) Deposit(id string, amount domain.Money, description string) (MovementResult, error) {
	if !amount.IsPositive() {
		return MovementResult{}, fmt.Errorf("%w: deposit amount must be greater than zero", domain.ErrInvalidAmount)
	}
	a, err := l.lookup(id)
	if err != nil {
		return MovementResult{}, err
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.status != domain.AccountStatusActive {
		return MovementResult{}, domain.ErrAccountInactive
	}
	a.balance = a.balance.Add(amount)
	txn := a.record(domain.TransactionKindDeposit, amount, orDefault(description, "Deposit"), "", time.Now().UTC())
	return MovementResult{Account: a.view(), Tx: txn}, nil
}

// Withdraw debits an active account, rejecting any over-draw before state
// changes. There is no overdraft facility.
func (l *Ledger) Withdraw(id string, amount domain.Money, description string) (MovementResult, error) {
	if !amount.IsPositive() {
		return MovementResult{}, fmt.Errorf("%w: withdrawal amount must be greater than zero", domain.ErrInvalidAmount)
	}
	a, err := l.lookup(id)
	if err != nil {
		return MovementResult{}, err
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.status != domain.AccountStatusActive {
		return MovementResult{}, domain.ErrAccountInactive
	}
	if a.balance.LessThan(amount) {
		return MovementResult{}, domain.ErrInsufficientFunds
	}
	next, err := a.balance.Sub(amount)
	if err != nil {
		return MovementResult{}, err
	}
	a.balance = next
	txn := a.record(domain.TransactionKindWithdraw, amount, orDefault(description, "Withdrawal"), "", time.Now().UTC())
	return MovementResult{Account: a.view(), Tx: txn}, nil
}

// TransferResult reports both post-transfer snapshots and the two records
// the transfer appended.
type TransferResult struct {
	From  domain.Account
	To    domain.Account
	OutTx domain.Transaction
	InTx  domain.Transaction
}

// Transfer moves amount between two distinct active accounts as one
// indivisible unit: debit, credit and both records land inside a single
// two-account critical section, or nothing changes at all.
func (l *Ledger) Transfer(fromID, toID string, amount domain.Money) (TransferResult, error) {
	fromID = strings.TrimSpace(fromID)
	toID = strings.TrimSpace(toID)
	if fromID == toID {
		return TransferResult{}, domain.ErrSameAccount
	}
	if !amount.IsPositive() {
		return TransferResult{}, fmt.Errorf("%w: transfer amount must be greater than zero", domain.ErrInvalidAmount)
	}

	from, err := l.lookup(fromID)
	if err != nil {
		return TransferResult{}, fmt.Errorf("debit account: %w", domain.ErrNotFound)
	}
	to, err := l.lookup(toID)
	if err != nil {
		return TransferResult{}, fmt.Errorf("credit account: %w", domain.ErrNotFound)
	}

	// Global lock order by id keeps opposing concurrent transfers from
	// deadlocking on each other.
	first, second := from, to
	if second.id < first.id {
		first, second = second, first
	}
	first.mu.Lock()
	defer first.mu.Unlock()
	second.mu.Lock()
	defer second.mu.Unlock()

	if from.status != domain.AccountStatusActive || to.status != domain.AccountStatusActive {
		return TransferResult{}, domain.ErrAccountInactive
	}
	if from.balance.LessThan(amount) {
		return TransferResult{}, domain.ErrInsufficientFunds
	}

	debited, err := from.balance.Sub(amount)
	if err != nil {
		return TransferResult{}, err
	}
	from.balance = debited
	to.balance = to.balance.Add(amount)

	now := time.Now().UTC()
	outTx := from.record(domain.TransactionKindTransferOut, amount, fmt.Sprintf("Transferred to %s", to.id), to.id, now)
	inTx := to.record(domain.TransactionKindTransferIn, amount, fmt.Sprintf("Received from %s", from.id), from.id, now)

	return TransferResult{From: from.view(), To: to.view(), OutTx: outTx, InTx: inTx}, nil
}

// Deactivate soft-deletes an account. The transition is terminal: there is
// no way back to ACTIVE, and every mutating operation on the account fails
// from this point on while the history stays available for audit.
func (l *Ledger) Deactivate(id string) (domain.Account, error) {
	a, err := l.lookup(id)
	if err != nil {
		return domain.Account{}, err
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.status == domain.AccountStatusDeactivated {
		return domain.Account{}, domain.ErrAlreadyInactive
	}
	a.status = domain.AccountStatusDeactivated
	return a.view(), nil
}

// GetAccount returns the safe projection of an active account.
func (l *Ledger) GetAccount(id string) (domain.Account, error) {
	a, err := l.lookup(id)
	if err != nil {
		return domain.Account{}, err
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.status != domain.AccountStatusActive {
		return domain.Account{}, domain.ErrAccountInactive
	}
	return a.view(), nil
}

// History returns the full detail view including the transaction log in
// chronological append order. Unlike GetAccount it is permitted on a
// deactivated account, so the audit trail survives soft deletion.
func (l *Ledger) History(id string) (domain.AccountDetail, error) {
	a, err := l.lookup(id)
	if err != nil {
		return domain.AccountDetail{}, err
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	return a.detail(), nil
}

// FindByOwnerName returns safe projections of all active accounts whose
// owner name contains the query, case-insensitively. Zero matches is an
// empty result, not a failure.
func (l *Ledger) FindByOwnerName(query string) ([]domain.Account, error) {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil, fmt.Errorf("%w: owner name query is required", domain.ErrInvalidInput)
	}

	l.mu.RLock()
	candidates := make([]*account, 0, len(l.accounts))
	for _, a := range l.accounts {
		candidates = append(candidates, a)
	}
	l.mu.RUnlock()

	found := make([]domain.Account, 0)
	for _, a := range candidates {
		a.mu.Lock()
		if a.status == domain.AccountStatusActive && strings.Contains(strings.ToLower(a.ownerName), query) {
			found = append(found, a.view())
		}
		a.mu.Unlock()
	}

	// Map iteration order is random; present oldest accounts first.
	sort.Slice(found, func(i, j int) bool {
		if found[i].CreatedAt.Equal(found[j].CreatedAt) {
			return found[i].ID < found[j].ID
		}
		return found[i].CreatedAt.Before(found[j].CreatedAt)
	})
	return found, nil
}

func orDefault(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}
