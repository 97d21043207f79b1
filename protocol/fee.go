package protocol

import (
	"context"
	"sync"

	"github.com/tokenized/vtl/quantile"
)

// FeeCalculator derives the normalized fee in effect at a given block height, consulted at
// lock_start_block for its current normalized fee. Normalized fee is expressed in the same unit
// the Quantile Engine's ValueApproximator operates over, so it can be fed straight into a sliding
// window of historical fees.
type FeeCalculator interface {
	NormalizedFeeAt(height int32) (int64, error)
}

// StaticFeeCalculator returns a single fixed normalized fee regardless of height, the simplest
// FeeCalculator a deployment can wire in before a real fee market model exists.
type StaticFeeCalculator struct {
	Fee int64
}

func NewStaticFeeCalculator(fee int64) StaticFeeCalculator {
	return StaticFeeCalculator{Fee: fee}
}

func (c StaticFeeCalculator) NormalizedFeeAt(height int32) (int64, error) {
	return c.Fee, nil
}

// QuantileFeeCalculator adapts a quantile.SlidingWindow into a FeeCalculator: the normalized fee
// at any height is the window's current quantile, continuously refreshed as fee samples are
// recorded through Record. Height is ignored, since the window tracks recent fee history directly
// rather than a per-height ledger.
type QuantileFeeCalculator struct {
	mutex  sync.Mutex
	window *quantile.SlidingWindow
	q      float64
}

// NewQuantileFeeCalculator builds a QuantileFeeCalculator reading the q quantile (in [0, 1]) of
// window, e.g. q=0.5 for the median observed fee.
func NewQuantileFeeCalculator(window *quantile.SlidingWindow, q float64) *QuantileFeeCalculator {
	return &QuantileFeeCalculator{window: window, q: q}
}

// Record folds a batch of observed fee samples into the underlying window as the current group.
func (c *QuantileFeeCalculator) Record(fees []int64) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.window.Add(fees)
}

func (c *QuantileFeeCalculator) NormalizedFeeAt(height int32) (int64, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.window.Quantile(c.q)
}

// Rotate pushes an empty group onto the window, advancing it forward in time even when no fees
// were observed since the last tick. Its signature matches threads.TaskFunction so it can be
// driven by a periodic task, keeping the window moving during quiet polling intervals.
func (c *QuantileFeeCalculator) Rotate(ctx context.Context) error {
	c.Record(nil)
	return nil
}
