package errors

import "errors"

var (
	ErrInvalidTransferInput = errors.New("transfer input is invalid")
	ErrAccountNotFound      = errors.New("treasury account not found")
	ErrInsufficientFunds    = errors.New("treasury account has insufficient funds")
	ErrTransferNotFound     = errors.New("transfer not found")
)
