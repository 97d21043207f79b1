// Package chain defines the Chain Client contract: the external collaborator that gives the VTL
// subsystem its view of Bitcoin. This module only defines the interface, the data it exchanges,
// and an in-memory test double; a production implementation (wallet, RPC, transaction
// construction) lives outside this subsystem.
package chain

import (
	"context"

	"github.com/tokenized/vtl/bitcoin"
)

// Output is one output of a transaction: value in satoshis and its locking script.
type Output struct {
	Value         int64
	LockingScript bitcoin.Script
}

// Transaction is the Chain Client's view of a transaction relevant to a lock: its outputs and its
// confirmation state. Confirmations <= 0 means not yet confirmed.
type Transaction struct {
	TransactionID string
	Outputs       []Output
	Confirmations int64
	BlockHash     string
}

// BlockInfo is the Chain Client's view of a block.
type BlockInfo struct {
	Height int32
}

// LockTransaction is what the Chain Client returns from any of the three lock-transaction
// construction calls.
type LockTransaction struct {
	TransactionID   string
	RawBytes        []byte
	RedeemScriptHex string
	Fee             int64
}

// Client is the Chain Client contract. Every method may block on network I/O and the client is
// assumed thread-safe, since the Monitor and Resolver may both call it.
type Client interface {
	// GetRawTransaction fails if txid is unknown to the client.
	GetRawTransaction(ctx context.Context, txid string) (*Transaction, error)

	// GetBlockInfo returns the block identified by hash.
	GetBlockInfo(ctx context.Context, hash string) (*BlockInfo, error)

	GetCurrentBlockHeight(ctx context.Context) (int32, error)

	GetBalanceInSatoshis(ctx context.Context) (int64, error)

	CreateLockTransaction(ctx context.Context, amount int64, durationBlocks uint64) (*LockTransaction, error)

	CreateRelockTransaction(ctx context.Context, priorTxID string, priorDuration,
		newDuration uint64) (*LockTransaction, error)

	CreateReleaseLockTransaction(ctx context.Context, priorTxID string,
		priorDuration uint64) (*LockTransaction, error)

	// BroadcastLockTransaction is idempotent: broadcasting an already-seen txid again must not
	// be treated as an error.
	BroadcastLockTransaction(ctx context.Context, tx *LockTransaction) error
}
