package domain

import "errors"

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrUnderflow         = errors.New("amount underflow")
	ErrNotFound          = errors.New("account not found")
	ErrAccountInactive   = errors.New("account is deactivated")
	ErrAlreadyInactive   = errors.New("account is already deactivated")
	ErrInsufficientFunds = errors.New("insufficient balance")
	ErrSameAccount       = errors.New("cannot transfer to the same account")
)
