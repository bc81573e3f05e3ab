package services

import "errors"

// Domain errors. These are expected, non-retriable failures; the API layer
// collapses them into a plain success=false signal and logs the reason.
var (
	ErrPoolNotFound      = errors.New("pool not found")
	ErrCoinNotFound      = errors.New("coin not found")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrInvalidTrade      = errors.New("invalid trade")
	ErrInvalidQuantity   = errors.New("quantity must be positive")
)
