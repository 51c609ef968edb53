package models

import "errors"

// Domain errors that can be returned by repositories and providers
var (
	// ErrNotFound indicates the requested entity was not found
	ErrNotFound = errors.New("not found")

	// ErrTransactionNotFound indicates a status provider has no record of the transaction
	ErrTransactionNotFound = errors.New("transaction not found")
)
