package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/api-sage/account-ledger/internal/adapter/http/models"
	"github.com/api-sage/account-ledger/internal/commons"
	"github.com/go-chi/chi/v5"
)

type AccountService interface {
	CreateAccount(ctx context.Context, req models.CreateAccountRequest) (commons.Response[models.AccountResponse], error)
	GetAccount(ctx context.Context, accountID string) (commons.Response[models.AccountResponse], error)
	GetHistory(ctx context.Context, accountID string) (commons.Response[models.AccountDetailResponse], error)
	SearchAccounts(ctx context.Context, ownerName string) (commons.Response[[]models.AccountResponse], error)
	Deposit(ctx context.Context, accountID string, req models.MovementRequest) (commons.Response[models.MovementResponse], error)
	Withdraw(ctx context.Context, accountID string, req models.MovementRequest) (commons.Response[models.MovementResponse], error)
	Deactivate(ctx context.Context, accountID string) (commons.Response[models.AccountResponse], error)
}

type AccountController struct {
	service AccountService
}

func NewAccountController(service AccountService) *AccountController {
	return &AccountController{service: service}
}

func (c *AccountController) RegisterRoutes(r chi.Router) {
	r.Post("/accounts", c.createAccount)
	r.Get("/accounts", c.searchAccounts)
	r.Get("/accounts/{accountID}", c.getAccount)
	r.Get("/accounts/{accountID}/transactions", c.getHistory)
	r.Post("/accounts/{accountID}/deposit", c.deposit)
	r.Post("/accounts/{accountID}/withdraw", c.withdraw)
	r.Delete("/accounts/{accountID}", c.deactivate)
}

func (c *AccountController) createAccount(w http.ResponseWriter, r *http.Request) {
	var req models.CreateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.AccountResponse]("invalid request body", err.Error()))
		return
	}

	response, err := c.service.CreateAccount(r.Context(), req)
	if err != nil {
		writeJSON(w, statusFromError(err), response)
		return
	}

	writeJSON(w, http.StatusCreated, response)
}

func (c *AccountController) getAccount(w http.ResponseWriter, r *http.Request) {
	response, err := c.service.GetAccount(r.Context(), chi.URLParam(r, "accountID"))
	if err != nil {
		writeJSON(w, statusFromError(err), response)
		return
	}

	writeJSON(w, http.StatusOK, response)
}

func (c *AccountController) getHistory(w http.ResponseWriter, r *http.Request) {
	response, err := c.service.GetHistory(r.Context(), chi.URLParam(r, "accountID"))
	if err != nil {
		writeJSON(w, statusFromError(err), response)
		return
	}

	writeJSON(w, http.StatusOK, response)
}

func (c *AccountController) searchAccounts(w http.ResponseWriter, r *http.Request) {
	owner := strings.TrimSpace(r.URL.Query().Get("owner"))

	response, err := c.service.SearchAccounts(r.Context(), owner)
	if err != nil {
		writeJSON(w, statusFromError(err), response)
		return
	}

	writeJSON(w, http.StatusOK, response)
}

func (c *AccountController) deposit(w http.ResponseWriter, r *http.Request) {
	var req models.MovementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.MovementResponse]("invalid request body", err.Error()))
		return
	}

	response, err := c.service.Deposit(r.Context(), chi.URLParam(r, "accountID"), req)
	if err != nil {
		writeJSON(w, statusFromError(err), response)
		return
	}

	writeJSON(w, http.StatusOK, response)
}

func (c *AccountController) withdraw(w http.ResponseWriter, r *http.Request) {
	var req models.MovementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.MovementResponse]("invalid request body", err.Error()))
		return
	}

	response, err := c.service.Withdraw(r.Context(), chi.URLParam(r, "accountID"), req)
	if err != nil {
		writeJSON(w, statusFromError(err), response)
		return
	}

	writeJSON(w, http.StatusOK, response)
}

func (c *AccountController) deactivate(w http.ResponseWriter, r *http.Request) {
	response, err := c.service.Deactivate(r.Context(), chi.URLParam(r, "accountID"))
	if err != nil {
		writeJSON(w, statusFromError(err), response)
		return
	}

	writeJSON(w, http.StatusOK, response)
}
