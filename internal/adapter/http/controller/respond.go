package controller

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/api-sage/account-ledger/internal/domain"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// statusFromError maps the ledger error taxonomy onto transport status
// codes: bad request data is 400, unknown accounts 404, and operations that
// conflict with current account state 409. Anything unrecognized is a 500 so
// internal detail never leaks through a misleading client code.
func statusFromError(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrUnderflow):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrAccountInactive),
		errors.Is(err, domain.ErrAlreadyInactive),
		errors.Is(err, domain.ErrInsufficientFunds),
		errors.Is(err, domain.ErrSameAccount):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
