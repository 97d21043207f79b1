package monitor

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
)

// ErrFractionalAmount is returned from New when a configured satoshi amount is negative;
// desired_lock_amount_satoshis and transaction_fees_amount_satoshis must both be whole,
// non-negative numbers.
var ErrFractionalAmount = errors.New("amount must be a whole number of satoshis")

// Config holds the Monitor's tunables, loaded with struct tags for github.com/tokenized/config
// and package-level defaults.
type Config struct {
	DesiredLockAmountSatoshis     int64 `envconfig:"VTL_DESIRED_LOCK_AMOUNT_SATOSHIS" json:"desired_lock_amount_satoshis"`
	TransactionFeesAmountSatoshis int64 `default:"100" envconfig:"VTL_TRANSACTION_FEES_AMOUNT_SATOSHIS" json:"transaction_fees_amount_satoshis"`
	PollPeriodSeconds             int   `default:"600" envconfig:"VTL_POLL_PERIOD_SECONDS" json:"poll_period_seconds"`
}

// Validate checks the whole-number invariant. Satoshi amounts are already integers in Go's
// int64, so this exists to reject negative amounts a misconfigured deployment might supply.
func (c Config) Validate() error {
	if c.DesiredLockAmountSatoshis < 0 || c.TransactionFeesAmountSatoshis < 0 {
		return ErrFractionalAmount
	}
	if c.PollPeriodSeconds <= 0 {
		return errors.New("poll_period_seconds must be positive")
	}
	return nil
}

func (c Config) PollPeriod() time.Duration {
	return time.Duration(c.PollPeriodSeconds) * time.Second
}

func (c Config) String() string {
	return fmt.Sprintf("{DesiredLockAmountSatoshis:%d TransactionFeesAmountSatoshis:%d PollPeriodSeconds:%d}",
		c.DesiredLockAmountSatoshis, c.TransactionFeesAmountSatoshis, c.PollPeriodSeconds)
}
