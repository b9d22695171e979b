package services

import (
	"context"

	"github.com/api-sage/account-ledger/internal/adapter/events"
	"github.com/api-sage/account-ledger/internal/adapter/http/models"
	"github.com/api-sage/account-ledger/internal/commons"
	"github.com/api-sage/account-ledger/internal/domain"
	"github.com/api-sage/account-ledger/internal/ledger"
	"github.com/api-sage/account-ledger/internal/logger"
)

// TransferService fronts the ledger engine for two-account transfers.
type TransferService struct {
	engine    *ledger.Ledger
	publisher events.Publisher
}

func NewTransferService(engine *ledger.Ledger, publisher events.Publisher) *TransferService {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	return &TransferService{engine: engine, publisher: publisher}
}

func (s *TransferService) Transfer(ctx context.Context, req models.TransferRequest) (commons.Response[models.TransferResponse], error) {
	logger.Info("transfer service transfer request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("transfer service transfer validation failed", err, nil)
		return commons.ErrorResponse[models.TransferResponse]("validation failed", err.Error()), domain.ErrInvalidInput
	}

	amount, err := domain.ParseMoney(req.Amount)
	if err != nil {
		return commons.ErrorResponse[models.TransferResponse]("validation failed", err.Error()), err
	}

	result, err := s.engine.Transfer(req.FromAccountID, req.ToAccountID, amount)
	if err != nil {
		logger.Error("transfer service transfer failed", err, logger.Fields{
			"fromAccountId": req.FromAccountID,
			"toAccountId":   req.ToAccountID,
			"amount":        amount.String(),
		})
		return commons.ErrorResponse[models.TransferResponse]("failed to process transfer", err.Error()), err
	}

	s.publish(ctx, result.From.ID, result.OutTx)
	s.publish(ctx, result.To.ID, result.InTx)

	response := models.TransferResponse{
		FromAccountID:    result.From.ID,
		ToAccountID:      result.To.ID,
		Amount:           amount.String(),
		FromBalance:      result.From.Balance.String(),
		ToBalance:        result.To.Balance.String(),
		OutTransactionID: result.OutTx.ID,
		InTransactionID:  result.InTx.ID,
	}

	logger.Info("transfer service transfer success", logger.Fields{
		"fromAccountId": response.FromAccountID,
		"toAccountId":   response.ToAccountID,
		"amount":        response.Amount,
		"fromBalance":   response.FromBalance,
		"toBalance":     response.ToBalance,
	})

	return commons.SuccessResponse("transfer processed successfully", response), nil
}

func (s *TransferService) publish(ctx context.Context, accountID string, txn domain.Transaction) {
	if err := s.publisher.PublishTransaction(ctx, events.TransactionEvent{
		AccountID:      accountID,
		TransactionID:  txn.ID,
		Kind:           string(txn.Kind),
		Amount:         txn.Amount.String(),
		BalanceAfter:   txn.BalanceAfter.String(),
		CounterpartyID: txn.CounterpartyID,
		Timestamp:      txn.Timestamp,
	}); err != nil {
		logger.Error("transfer service event publish failed", err, logger.Fields{
			"accountId":     accountID,
			"transactionId": txn.ID,
		})
	}
}
