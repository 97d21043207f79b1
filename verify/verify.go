// Package verify implements the Value-Time-Lock Verifier, the gate a batch of operations must
// pass before it is accepted based on the writer's current lock.
package verify

import (
	"github.com/pkg/errors"

	"github.com/tokenized/vtl/bitcoin"
	"github.com/tokenized/vtl/protocol"
	"github.com/tokenized/vtl/vtl"
)

// ErrLockOwnerMismatch is returned when the lock's owner does not match the batch's writer.
var ErrLockOwnerMismatch = errors.New("lock owner mismatch")

// ErrLockTimeOutsideRange is returned when tx_block falls outside the lock's active window.
var ErrLockTimeOutsideRange = errors.New("lock time outside range")

// ErrInvalidNumberOfOperations is returned when a batch exceeds the number of operations its
// lock (or the free-operations floor) permits.
var ErrInvalidNumberOfOperations = errors.New("invalid number of operations")

// Verify checks whether a batch of opsInBatch operations from txWriter at height txBlock is
// valid against an optional lock, a normalizedFee, and the protocol Parameters in effect.
func Verify(lock *vtl.ValueTimeLock, opsInBatch int64, normalizedFee int64, txBlock int32,
	txWriter bitcoin.Hash20, parameters protocol.Parameters) error {
	if opsInBatch <= parameters.FreeOps {
		return nil
	}

	if lock != nil {
		if lock.Owner != txWriter {
			return ErrLockOwnerMismatch
		}
		if txBlock < lock.LockTransactionTime || txBlock >= lock.UnlockTransactionTime {
			return ErrLockTimeOutsideRange
		}
	}

	feePerOp := normalizedFee * parameters.NormFeeMultiplier

	var maxOps int64
	if lock != nil && feePerOp > 0 {
		maxOps = lock.AmountLocked / (feePerOp * parameters.LockAmountMultiplier)
	}
	if maxOps < parameters.FreeOps {
		maxOps = parameters.FreeOps
	}

	if opsInBatch > maxOps {
		return ErrInvalidNumberOfOperations
	}

	return nil
}
