// Package protocol holds the version-managed constants the Resolver and Verifier consult: the
// permitted lock duration, the fee multipliers, and the free-operations floor.
package protocol

import "fmt"

const (
	// DefaultLockPeriodInBlocks is the duration, in blocks, that handle_create and handle_renew
	// request for every new or renewed lock.
	DefaultLockPeriodInBlocks = 2016

	// DefaultNormFeeMultiplier scales a normalized fee into a per-operation satoshi cost.
	DefaultNormFeeMultiplier = 1

	// DefaultLockAmountMultiplier scales fee_per_op before dividing into amount_locked.
	DefaultLockAmountMultiplier = 1

	// DefaultFreeOps is the number of operations any batch is allowed without a lock at all.
	DefaultFreeOps = 10
)

// Parameters is the version manager consulted by the Resolver and Verifier for the permitted
// duration_in_blocks and fee/free-ops settings. It loads with struct tags for
// github.com/tokenized/config, alongside package-level defaults.
type Parameters struct {
	LockPeriodInBlocks   uint64 `default:"2016" envconfig:"VTL_LOCK_PERIOD_IN_BLOCKS" json:"lock_period_in_blocks"`
	NormFeeMultiplier    int64  `default:"1" envconfig:"VTL_NORM_FEE_MULTIPLIER" json:"norm_fee_multiplier"`
	LockAmountMultiplier int64  `default:"1" envconfig:"VTL_LOCK_AMOUNT_MULTIPLIER" json:"lock_amount_multiplier"`
	FreeOps              int64  `default:"10" envconfig:"VTL_FREE_OPS" json:"free_ops"`
}

// NewParameters returns Parameters populated with the protocol's defaults.
func NewParameters() Parameters {
	return Parameters{
		LockPeriodInBlocks:   DefaultLockPeriodInBlocks,
		NormFeeMultiplier:    DefaultNormFeeMultiplier,
		LockAmountMultiplier: DefaultLockAmountMultiplier,
		FreeOps:              DefaultFreeOps,
	}
}

// DurationInBlocksAt returns the permitted redeem-script duration for a lock anchored at height.
// The current protocol version does not vary duration by height, but the signature keeps room
// for a future version manager to consult lock_start_block.
func (p Parameters) DurationInBlocksAt(height int32) uint64 {
	return p.LockPeriodInBlocks
}

func (p Parameters) String() string {
	return fmt.Sprintf("{LockPeriodInBlocks:%d NormFeeMultiplier:%d LockAmountMultiplier:%d FreeOps:%d}",
		p.LockPeriodInBlocks, p.NormFeeMultiplier, p.LockAmountMultiplier, p.FreeOps)
}
