package services

import "errors"

var (
	// ErrInvalidAmount rejects a charge or use whose amount is not strictly
	// positive. Raised before any exclusion is taken; no state is touched.
	ErrInvalidAmount = errors.New("amount must be > 0")

	// ErrInsufficientBalance rejects a use larger than the current balance.
	// Raised after the balance read; nothing has been mutated.
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrCommitFailed reports a storage commit or history append failure.
	// Any half-applied commit has been rolled back; the operation must not
	// be blindly retried.
	ErrCommitFailed = errors.New("commit failed")
)
