package models

import "errors"

// Expected, recoverable outcomes of ledger operations. Callers dispatch on
// these with errors.Is; none of them indicates a crash or a partial write.
var (
	// ErrUserNotFound the referenced user id does not exist
	ErrUserNotFound = errors.New("user not found")

	// ErrInsufficientFunds the withdrawal would drive the balance below zero
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrInvalidAmount the amount is zero or negative
	ErrInvalidAmount = errors.New("amount must be positive")

	// ErrInvalidOperationType the operation kind is not a known one
	ErrInvalidOperationType = errors.New("invalid operation type")

	// ErrStatementNotFound the requested statement id does not exist
	ErrStatementNotFound = errors.New("statement not found")
)
