package ledger_test

import (
	"encoding/json"
	"testing"

	"github.com/api-sage/account-ledger/internal/domain"
	"github.com/api-sage/account-ledger/internal/ledger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotRestoreRoundTrip(t *testing.T) {
	l := ledger.New()
	a := newAccount(t, l, "John Doe", domain.AccountClassSavings, "1000.00")
	b := newAccount(t, l, "Jane Smith", domain.AccountClassCurrent, "500.00")

	_, err := l.Transfer(a.ID, b.ID, money(t, "150.00"))
	require.NoError(t, err)
	_, err = l.Deactivate(b.ID)
	require.NoError(t, err)

	snapshot := l.Snapshot()
	require.Len(t, snapshot.Accounts, 2)

	// The snapshot must survive the same encoding the store applies.
	raw, err := json.Marshal(snapshot)
	require.NoError(t, err)
	var decoded ledger.Snapshot
	require.NoError(t, json.Unmarshal(raw, &decoded))

	restored := ledger.New()
	require.NoError(t, restored.Restore(decoded))

	aDetail, err := restored.History(a.ID)
	require.NoError(t, err)
	assert.Equal(t, "850.00", aDetail.Balance.String())
	assert.Equal(t, domain.AccountStatusActive, aDetail.Status)
	require.Len(t, aDetail.Transactions, 2)
	assert.Equal(t, domain.TransactionKindTransferOut, aDetail.Transactions[1].Kind)

	bDetail, err := restored.History(b.ID)
	require.NoError(t, err)
	assert.Equal(t, "650.00", bDetail.Balance.String())
	assert.Equal(t, domain.AccountStatusDeactivated, bDetail.Status)

	// Restored accounts keep behaving: deactivated stays terminal, active
	// accounts keep accepting movements.
	_, err = restored.Deposit(b.ID, money(t, "1.00"), "")
	require.ErrorIs(t, err, domain.ErrAccountInactive)

	result, err := restored.Deposit(a.ID, money(t, "50.00"), "")
	require.NoError(t, err)
	assert.Equal(t, "900.00", result.Account.Balance.String())
}

func TestRestoreRejectsNegativeBalances(t *testing.T) {
	l := ledger.New()
	err := l.Restore(ledger.Snapshot{
		Version: 1,
		Accounts: []ledger.AccountSnapshot{
			{ID: "acc-1", OwnerName: "John Doe", Class: "SAVINGS", BalanceUnits: -100, Status: "ACTIVE"},
		},
	})
	require.ErrorIs(t, err, domain.ErrInvalidAmount)
}
