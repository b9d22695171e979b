package services_test

import (
	"context"
	"testing"

	"github.com/api-sage/account-ledger/internal/adapter/http/models"
	"github.com/api-sage/account-ledger/internal/domain"
	"github.com/api-sage/account-ledger/internal/ledger"
	"github.com/api-sage/account-ledger/internal/usecase/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createAccount(t *testing.T, svc *services.AccountService, owner, class, deposit string) string {
	t.Helper()
	response, err := svc.CreateAccount(context.Background(), models.CreateAccountRequest{
		OwnerName:      owner,
		AccountClass:   class,
		InitialDeposit: deposit,
	})
	require.NoError(t, err)
	require.NotNil(t, response.Data)
	return response.Data.ID
}

func TestTransferServiceValidationError(t *testing.T) {
	svc := services.NewTransferService(ledger.New(), nil)

	response, err := svc.Transfer(context.Background(), models.TransferRequest{})
	require.Error(t, err)
	assert.False(t, response.Success)
	assert.Equal(t, "validation failed", response.Message)
}

func TestTransferService(t *testing.T) {
	engine := ledger.New()
	publisher := &capturePublisher{}
	accounts := services.NewAccountService(engine, publisher)
	transfers := services.NewTransferService(engine, publisher)

	fromID := createAccount(t, accounts, "John Doe", "SAVINGS", "1000.00")
	toID := createAccount(t, accounts, "Jane Smith", "CURRENT", "500.00")

	response, err := transfers.Transfer(context.Background(), models.TransferRequest{
		FromAccountID: fromID,
		ToAccountID:   toID,
		Amount:        "150.00",
	})
	require.NoError(t, err)
	require.True(t, response.Success)
	require.NotNil(t, response.Data)
	assert.Equal(t, "850.00", response.Data.FromBalance)
	assert.Equal(t, "650.00", response.Data.ToBalance)
	assert.NotEmpty(t, response.Data.OutTransactionID)
	assert.NotEmpty(t, response.Data.InTransactionID)

	published := publisher.published()
	require.Len(t, published, 2)
	assert.Equal(t, "TRANSFER_OUT", published[0].Kind)
	assert.Equal(t, fromID, published[0].AccountID)
	assert.Equal(t, toID, published[0].CounterpartyID)
	assert.Equal(t, "TRANSFER_IN", published[1].Kind)
	assert.Equal(t, toID, published[1].AccountID)
	assert.Equal(t, fromID, published[1].CounterpartyID)
}

func TestTransferServiceSameAccount(t *testing.T) {
	engine := ledger.New()
	accounts := services.NewAccountService(engine, nil)
	transfers := services.NewTransferService(engine, nil)

	id := createAccount(t, accounts, "John Doe", "SAVINGS", "100.00")

	_, err := transfers.Transfer(context.Background(), models.TransferRequest{
		FromAccountID: id,
		ToAccountID:   id,
		Amount:        "10.00",
	})
	require.ErrorIs(t, err, domain.ErrSameAccount)
}

func TestTransferServiceInsufficientFunds(t *testing.T) {
	engine := ledger.New()
	accounts := services.NewAccountService(engine, nil)
	transfers := services.NewTransferService(engine, nil)

	fromID := createAccount(t, accounts, "John Doe", "SAVINGS", "100.00")
	toID := createAccount(t, accounts, "Jane Smith", "CURRENT", "0")

	_, err := transfers.Transfer(context.Background(), models.TransferRequest{
		FromAccountID: fromID,
		ToAccountID:   toID,
		Amount:        "250.00",
	})
	require.ErrorIs(t, err, domain.ErrInsufficientFunds)

	got, err := accounts.GetAccount(context.Background(), fromID)
	require.NoError(t, err)
	assert.Equal(t, "100.00", got.Data.Balance)
}
