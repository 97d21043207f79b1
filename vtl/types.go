package vtl

import (
	"time"

	"github.com/tokenized/vtl/bitcoin"
)

// LockIdentifier names a lock by the transaction that created it and the redeem script it pays
// to. The wire encoding of a LockIdentifier is defined by package lockid.
type LockIdentifier struct {
	TransactionID   string
	RedeemScriptHex string
}

// ValueTimeLock is the authoritative, resolved view of an on-chain value-time-lock.
type ValueTimeLock struct {
	Identifier            string
	AmountLocked          int64
	Owner                 bitcoin.Hash20
	LockTransactionTime   int32
	UnlockTransactionTime int32
	NormalizedFee         int64
}

// Valid checks the ValueTimeLock invariants.
func (v *ValueTimeLock) Valid() bool {
	return v.UnlockTransactionTime > v.LockTransactionTime &&
		v.AmountLocked > 0 &&
		v.NormalizedFee >= 1
}

// LockType enumerates the kind of intent a SavedLock records.
type LockType int

const (
	LockTypeCreate LockType = iota
	LockTypeRelock
	LockTypeReturnToWallet
)

func (t LockType) String() string {
	switch t {
	case LockTypeCreate:
		return "create"
	case LockTypeRelock:
		return "relock"
	case LockTypeReturnToWallet:
		return "return_to_wallet"
	}
	return "unknown"
}

// SavedLock is the persisted intent the Monitor wrote before broadcasting it.
type SavedLock struct {
	TransactionID             string
	RawTransaction            []byte
	RedeemScriptHex           string
	DesiredLockAmountSatoshis int64
	CreateTimestamp           int64
	Type                      LockType
}

// NewCreateTimestamp returns the current time as the int64 create_timestamp used to order
// SavedLock records.
func NewCreateTimestamp() int64 {
	return time.Now().UnixNano()
}

// LockStatus is the three-variant tagged state of the Monitor's derived LockState, modeled as a
// sum type rather than independent booleans.
type LockStatus int

const (
	LockStatusNone LockStatus = iota
	LockStatusPending
	LockStatusConfirmed
)

func (s LockStatus) String() string {
	switch s {
	case LockStatusNone:
		return "none"
	case LockStatusPending:
		return "pending"
	case LockStatusConfirmed:
		return "confirmed"
	}
	return "unknown"
}

// LockState is the Monitor's in-memory, per-tick derived state. It is never persisted;
// ActiveLock is only non-nil when Status is LockStatusConfirmed, and LatestSaved is nil only when
// no SavedLock has ever been written.
type LockState struct {
	Status      LockStatus
	ActiveLock  *ValueTimeLock
	LatestSaved *SavedLock
}
