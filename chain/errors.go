package chain

import "github.com/pkg/errors"

// Sentinel errors a Client implementation wraps with context before returning, exported so
// callers can errors.Cause against them.
var (
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrBlockNotFound       = errors.New("block not found")
	ErrInsufficientFunds   = errors.New("insufficient funds")
)
