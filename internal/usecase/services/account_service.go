package services

import (
	"context"
	"strings"

	"github.com/api-sage/account-ledger/internal/adapter/events"
	"github.com/api-sage/account-ledger/internal/adapter/http/models"
	"github.com/api-sage/account-ledger/internal/commons"
	"github.com/api-sage/account-ledger/internal/domain"
	"github.com/api-sage/account-ledger/internal/ledger"
	"github.com/api-sage/account-ledger/internal/logger"
)

// AccountService fronts the ledger engine for single-account operations:
// lifecycle, balance movements and queries. The engine enforces every
// invariant; this layer validates request shapes, logs, maps views to wire
// models and emits events for committed movements.
type AccountService struct {
	engine    *ledger.Ledger
	publisher events.Publisher
}

func NewAccountService(engine *ledger.Ledger, publisher events.Publisher) *AccountService {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	return &AccountService{engine: engine, publisher: publisher}
}

func (s *AccountService) CreateAccount(ctx context.Context, req models.CreateAccountRequest) (commons.Response[models.AccountResponse], error) {
	logger.Info("account service create account request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("account service create account validation failed", err, nil)
		return commons.ErrorResponse[models.AccountResponse]("validation failed", err.Error()), domain.ErrInvalidInput
	}

	class, err := domain.ParseAccountClass(req.AccountClass)
	if err != nil {
		return commons.ErrorResponse[models.AccountResponse]("validation failed", err.Error()), err
	}

	initialDeposit := domain.ZeroMoney
	if strings.TrimSpace(req.InitialDeposit) != "" {
		initialDeposit, err = domain.ParseMoney(req.InitialDeposit)
		if err != nil {
			return commons.ErrorResponse[models.AccountResponse]("validation failed", err.Error()), err
		}
	}

	account, err := s.engine.CreateAccount(req.OwnerName, class, initialDeposit)
	if err != nil {
		logger.Error("account service create account failed", err, nil)
		return commons.ErrorResponse[models.AccountResponse]("failed to create account", err.Error()), err
	}

	logger.Info("account service create account success", logger.Fields{
		"accountId": account.ID,
		"balance":   account.Balance.String(),
	})

	return commons.SuccessResponse("account created successfully", models.MapAccountToResponse(account)), nil
}

func (s *AccountService) GetAccount(ctx context.Context, accountID string) (commons.Response[models.AccountResponse], error) {
	accountID = strings.TrimSpace(accountID)
	if accountID == "" {
		err := domain.ErrInvalidInput
		return commons.ErrorResponse[models.AccountResponse]("validation failed", "accountId is required"), err
	}

	account, err := s.engine.GetAccount(accountID)
	if err != nil {
		logger.Error("account service get account failed", err, logger.Fields{
			"accountId": accountID,
		})
		return commons.ErrorResponse[models.AccountResponse]("failed to get account", err.Error()), err
	}

	return commons.SuccessResponse("account fetched successfully", models.MapAccountToResponse(account)), nil
}

// GetHistory returns the detail view including the transaction log. It works
// for deactivated accounts too; history stays readable for audit after soft
// deletion.
func (s *AccountService) GetHistory(ctx context.Context, accountID string) (commons.Response[models.AccountDetailResponse], error) {
	accountID = strings.TrimSpace(accountID)
	if accountID == "" {
		err := domain.ErrInvalidInput
		return commons.ErrorResponse[models.AccountDetailResponse]("validation failed", "accountId is required"), err
	}

	detail, err := s.engine.History(accountID)
	if err != nil {
		logger.Error("account service get history failed", err, logger.Fields{
			"accountId": accountID,
		})
		return commons.ErrorResponse[models.AccountDetailResponse]("failed to get account history", err.Error()), err
	}

	return commons.SuccessResponse("account history fetched successfully", models.MapAccountToDetailResponse(detail)), nil
}

func (s *AccountService) SearchAccounts(ctx context.Context, ownerName string) (commons.Response[[]models.AccountResponse], error) {
	logger.Info("account service search accounts request", logger.Fields{
		"ownerName": ownerName,
	})

	accounts, err := s.engine.FindByOwnerName(ownerName)
	if err != nil {
		logger.Error("account service search accounts failed", err, logger.Fields{
			"ownerName": ownerName,
		})
		return commons.ErrorResponse[[]models.AccountResponse]("validation failed", err.Error()), err
	}

	out := make([]models.AccountResponse, 0, len(accounts))
	for _, account := range accounts {
		out = append(out, models.MapAccountToResponse(account))
	}

	return commons.SuccessResponse("accounts fetched successfully", out), nil
}

func (s *AccountService) Deposit(ctx context.Context, accountID string, req models.MovementRequest) (commons.Response[models.MovementResponse], error) {
	return s.move(ctx, accountID, req, domain.TransactionKindDeposit)
}

func (s *AccountService) Withdraw(ctx context.Context, accountID string, req models.MovementRequest) (commons.Response[models.MovementResponse], error) {
	return s.move(ctx, accountID, req, domain.TransactionKindWithdraw)
}

func (s *AccountService) move(ctx context.Context, accountID string, req models.MovementRequest, kind domain.TransactionKind) (commons.Response[models.MovementResponse], error) {
	logger.Info("account service movement request", logger.Fields{
		"accountId": accountID,
		"kind":      string(kind),
		"payload":   logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("account service movement validation failed", err, logger.Fields{
			"accountId": accountID,
			"kind":      string(kind),
		})
		return commons.ErrorResponse[models.MovementResponse]("validation failed", err.Error()), domain.ErrInvalidAmount
	}

	amount, err := domain.ParseMoney(req.Amount)
	if err != nil {
		return commons.ErrorResponse[models.MovementResponse]("validation failed", err.Error()), err
	}

	var result ledger.MovementResult
	switch kind {
	case domain.TransactionKindDeposit:
		result, err = s.engine.Deposit(accountID, amount, req.Description)
	default:
		result, err = s.engine.Withdraw(accountID, amount, req.Description)
	}
	if err != nil {
		logger.Error("account service movement failed", err, logger.Fields{
			"accountId": accountID,
			"kind":      string(kind),
			"amount":    amount.String(),
		})
		return commons.ErrorResponse[models.MovementResponse]("failed to process movement", err.Error()), err
	}

	s.publish(ctx, result.Account.ID, result.Tx)

	response := models.MovementResponse{
		AccountID:     result.Account.ID,
		TransactionID: result.Tx.ID,
		Kind:          string(kind),
		Amount:        amount.String(),
		Balance:       result.Account.Balance.String(),
	}

	logger.Info("account service movement success", logger.Fields{
		"accountId": response.AccountID,
		"kind":      response.Kind,
		"amount":    response.Amount,
		"balance":   response.Balance,
	})

	return commons.SuccessResponse("movement processed successfully", response), nil
}

func (s *AccountService) Deactivate(ctx context.Context, accountID string) (commons.Response[models.AccountResponse], error) {
	logger.Info("account service deactivate request", logger.Fields{
		"accountId": accountID,
	})

	accountID = strings.TrimSpace(accountID)
	if accountID == "" {
		err := domain.ErrInvalidInput
		return commons.ErrorResponse[models.AccountResponse]("validation failed", "accountId is required"), err
	}

	account, err := s.engine.Deactivate(accountID)
	if err != nil {
		logger.Error("account service deactivate failed", err, logger.Fields{
			"accountId": accountID,
		})
		return commons.ErrorResponse[models.AccountResponse]("failed to deactivate account", err.Error()), err
	}

	logger.Info("account service deactivate success", logger.Fields{
		"accountId": account.ID,
	})

	return commons.SuccessResponse("account deactivated successfully", models.MapAccountToResponse(account)), nil
}

// publish emits an event for a committed record. Delivery is best-effort;
// the mutation is already committed.
func (s *AccountService) publish(ctx context.Context, accountID string, txn domain.Transaction) {
	if err := s.publisher.PublishTransaction(ctx, events.TransactionEvent{
		AccountID:      accountID,
		TransactionID:  txn.ID,
		Kind:           string(txn.Kind),
		Amount:         txn.Amount.String(),
		BalanceAfter:   txn.BalanceAfter.String(),
		CounterpartyID: txn.CounterpartyID,
		Timestamp:      txn.Timestamp,
	}); err != nil {
		logger.Error("account service event publish failed", err, logger.Fields{
			"accountId":     accountID,
			"transactionId": txn.ID,
		})
	}
}
