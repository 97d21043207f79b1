package verify

import (
	"testing"

	"github.com/tokenized/vtl/bitcoin"
	"github.com/tokenized/vtl/protocol"
	"github.com/tokenized/vtl/vtl"
)

func TestVerifyAcceptsUnderFreeOps(t *testing.T) {
	params := protocol.NewParameters()
	var writer bitcoin.Hash20

	if err := Verify(nil, params.FreeOps, 5, 100, writer, params); err != nil {
		t.Fatalf("unexpected error : %s", err)
	}
}

func TestVerifyRejectsNoLockOverFreeOps(t *testing.T) {
	params := protocol.NewParameters()
	var writer bitcoin.Hash20

	err := Verify(nil, params.FreeOps+1, 5, 100, writer, params)
	if err != ErrInvalidNumberOfOperations {
		t.Fatalf("got %v, want ErrInvalidNumberOfOperations", err)
	}
}

func TestVerifyRejectsOwnerMismatch(t *testing.T) {
	params := protocol.NewParameters()
	var owner, writer bitcoin.Hash20
	owner[0] = 1

	lock := &vtl.ValueTimeLock{
		Owner:                 owner,
		AmountLocked:          1_000_000,
		LockTransactionTime:   10,
		UnlockTransactionTime: 1000,
		NormalizedFee:         1,
	}

	err := Verify(lock, params.FreeOps+1, 1, 100, writer, params)
	if err != ErrLockOwnerMismatch {
		t.Fatalf("got %v, want ErrLockOwnerMismatch", err)
	}
}

func TestVerifyRejectsTimeOutsideRange(t *testing.T) {
	params := protocol.NewParameters()
	var owner bitcoin.Hash20

	lock := &vtl.ValueTimeLock{
		Owner:                 owner,
		AmountLocked:          1_000_000,
		LockTransactionTime:   10,
		UnlockTransactionTime: 1000,
		NormalizedFee:         1,
	}

	err := Verify(lock, params.FreeOps+1, 1, 1000, owner, params)
	if err != ErrLockTimeOutsideRange {
		t.Fatalf("got %v, want ErrLockTimeOutsideRange", err)
	}
}

func TestVerifyAcceptsWithinMaxOps(t *testing.T) {
	params := protocol.NewParameters()
	var owner bitcoin.Hash20

	lock := &vtl.ValueTimeLock{
		Owner:                 owner,
		AmountLocked:          1_000_000,
		LockTransactionTime:   10,
		UnlockTransactionTime: 1000,
		NormalizedFee:         1,
	}

	// fee_per_op = 1, max_ops = 1,000,000.
	err := Verify(lock, 500_000, 1, 100, owner, params)
	if err != nil {
		t.Fatalf("unexpected error : %s", err)
	}
}

func TestVerifyRejectsOverMaxOps(t *testing.T) {
	params := protocol.NewParameters()
	var owner bitcoin.Hash20

	lock := &vtl.ValueTimeLock{
		Owner:                 owner,
		AmountLocked:          1_000_000,
		LockTransactionTime:   10,
		UnlockTransactionTime: 1000,
		NormalizedFee:         1,
	}

	err := Verify(lock, 2_000_000, 1, 100, owner, params)
	if err != ErrInvalidNumberOfOperations {
		t.Fatalf("got %v, want ErrInvalidNumberOfOperations", err)
	}
}
