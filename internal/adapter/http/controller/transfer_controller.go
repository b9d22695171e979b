package controller

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/api-sage/account-ledger/internal/adapter/http/models"
	"github.com/api-sage/account-ledger/internal/commons"
	"github.com/go-chi/chi/v5"
)

type TransferService interface {
	Transfer(ctx context.Context, req models.TransferRequest) (commons.Response[models.TransferResponse], error)
}

type TransferController struct {
	service TransferService
}

func NewTransferController(service TransferService) *TransferController {
	return &TransferController{service: service}
}

func (c *TransferController) RegisterRoutes(r chi.Router) {
	r.Post("/transfers", c.transfer)
}

func (c *TransferController) transfer(w http.ResponseWriter, r *http.Request) {
	var req models.TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.TransferResponse]("invalid request body", err.Error()))
		return
	}

	response, err := c.service.Transfer(r.Context(), req)
	if err != nil {
		writeJSON(w, statusFromError(err), response)
		return
	}

	writeJSON(w, http.StatusOK, response)
}
