// Package monitor implements the Lock Monitor, the long-running state machine that keeps a
// node's value-time-lock renewed to match a configured target, built on a periodic-task
// scheduling loop.
package monitor

import (
	"context"
	"encoding/hex"
	"sync"

	"github.com/pkg/errors"

	"github.com/tokenized/vtl/chain"
	"github.com/tokenized/vtl/logger"
	"github.com/tokenized/vtl/protocol"
	"github.com/tokenized/vtl/resolver"
	"github.com/tokenized/vtl/store"
	"github.com/tokenized/vtl/threads"
	"github.com/tokenized/vtl/vtl"
)

// FeeRecorder receives the fee paid by every transaction the Monitor broadcasts, so a fee source
// such as protocol.QuantileFeeCalculator can be kept current from the Monitor's own activity. A
// nil FeeRecorder disables this observation.
type FeeRecorder interface {
	Record(fees []int64)
}

// Monitor is the Lock Monitor. It owns the Resolver as a constructor-supplied collaborator: the
// Resolver only reads from the Chain Client, so passing it in at construction avoids any cycle.
type Monitor struct {
	client      chain.Client
	lockStore   store.LockStore
	resolver    *resolver.Resolver
	parameters  protocol.Parameters
	config      Config
	feeRecorder FeeRecorder

	thread *threads.Thread

	stateMutex sync.Mutex
	state      vtl.LockState
}

func New(client chain.Client, lockStore store.LockStore, resolver *resolver.Resolver,
	parameters protocol.Parameters, config Config, feeRecorder FeeRecorder) (*Monitor, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &Monitor{
		client:      client,
		lockStore:   lockStore,
		resolver:    resolver,
		parameters:  parameters,
		config:      config,
		feeRecorder: feeRecorder,
		state:       vtl.LockState{Status: vtl.LockStatusNone},
	}, nil
}

// Initialize runs the first reconciliation synchronously; any failure propagates, since a
// configuration error discovered here must stop startup rather than be logged and ignored.
func (m *Monitor) Initialize(ctx context.Context) error {
	return m.tick(ctx)
}

// GetCurrentValueTimeLock returns a snapshot of the last computed LockState's active lock, or
// fails with CurrentValueTimeLockInPendingState if the current intent has not yet confirmed.
func (m *Monitor) GetCurrentValueTimeLock(ctx context.Context) (*vtl.ValueTimeLock, error) {
	m.stateMutex.Lock()
	state := m.state
	m.stateMutex.Unlock()

	switch state.Status {
	case vtl.LockStatusConfirmed:
		return state.ActiveLock, nil
	case vtl.LockStatusPending:
		return nil, vtl.NewCurrentValueTimeLockInPendingStateError()
	default:
		return nil, nil
	}
}

// Start schedules periodic reconciliation at the configured poll period.
func (m *Monitor) Start(ctx context.Context) {
	m.thread = threads.NewPeriodicTask("lock_monitor", m.config.PollPeriod(), m.tick)
	m.thread.Start(ctx)
}

// Stop waits for any in-flight tick to complete, then returns; the next tick will not be
// scheduled.
func (m *Monitor) Stop(ctx context.Context) {
	if m.thread != nil {
		m.thread.Stop(ctx)
	}
}

// tick runs one full reconciliation cycle: derive state, act on it, then publish the new state
// atomically. Within a tick, { read SavedLock -> probe chain -> (resolve|rebroadcast) -> decide
// -> save -> broadcast } is observed strictly in program order.
func (m *Monitor) tick(ctx context.Context) error {
	state, err := m.computeState(ctx)
	if err != nil {
		return err
	}

	if err := m.reconcile(ctx, state); err != nil {
		return err
	}

	m.stateMutex.Lock()
	m.state = state
	m.stateMutex.Unlock()

	return nil
}

// computeState derives the current LockState from the Lock Store and Chain Client.
func (m *Monitor) computeState(ctx context.Context) (vtl.LockState, error) {
	latest, err := m.lockStore.GetLastLock(ctx)
	if err != nil {
		return vtl.LockState{}, errors.Wrap(err, "get last lock")
	}
	if latest == nil {
		return vtl.LockState{Status: vtl.LockStatusNone}, nil
	}

	if _, err := m.client.GetRawTransaction(ctx, latest.TransactionID); err != nil {
		if rebroadcastErr := m.rebroadcast(ctx, latest); rebroadcastErr != nil {
			logger.ErrorWithFields(ctx, []logger.Field{logger.String("transaction_id", latest.TransactionID)},
				"Rebroadcast failed : %s", rebroadcastErr)
		}
		return vtl.LockState{Status: vtl.LockStatusPending, LatestSaved: latest}, nil
	}

	if latest.Type == vtl.LockTypeReturnToWallet {
		return vtl.LockState{Status: vtl.LockStatusNone, LatestSaved: latest}, nil
	}

	redeemBytes, decodeErr := hex.DecodeString(latest.RedeemScriptHex)
	if decodeErr != nil {
		return vtl.LockState{}, errors.Wrap(decodeErr, "decode redeem script")
	}

	id := vtl.LockIdentifier{TransactionID: latest.TransactionID, RedeemScriptHex: hex.EncodeToString(redeemBytes)}
	resolved, resolveErr := m.resolver.Resolve(ctx, id)
	if resolveErr == nil {
		return vtl.LockState{
			Status:      vtl.LockStatusConfirmed,
			ActiveLock:  resolved,
			LatestSaved: latest,
		}, nil
	}

	if vtl.IsErrorCode(resolveErr, vtl.ErrorCodeTransactionNotConfirmed) {
		return vtl.LockState{Status: vtl.LockStatusPending, LatestSaved: latest}, nil
	}

	// Any other failure means the lock is broken; propagate for operator intervention.
	return vtl.LockState{}, resolveErr
}

// reconcile applies the lock-maintenance decision table to state: whether a lock is required,
// already valid, both, or neither, and dispatches to the matching handler.
func (m *Monitor) reconcile(ctx context.Context, state vtl.LockState) error {
	if state.Status == vtl.LockStatusPending {
		return nil
	}

	lockRequired := m.config.DesiredLockAmountSatoshis > 0
	validLockExists := state.Status == vtl.LockStatusConfirmed

	switch {
	case !lockRequired && !validLockExists:
		return nil

	case lockRequired && !validLockExists:
		return m.handleCreate(ctx, m.config.DesiredLockAmountSatoshis)

	case lockRequired && validLockExists:
		return m.handleRenew(ctx, state.ActiveLock, state.LatestSaved, m.config.DesiredLockAmountSatoshis)

	case !lockRequired && validLockExists:
		_, err := m.handleRelease(ctx, state.ActiveLock, m.config.DesiredLockAmountSatoshis)
		return err
	}

	return nil
}

// handleCreate opens a brand new lock for desired satoshis.
func (m *Monitor) handleCreate(ctx context.Context, desired int64) error {
	total := desired + m.config.TransactionFeesAmountSatoshis

	balance, err := m.client.GetBalanceInSatoshis(ctx)
	if err != nil {
		return errors.Wrap(err, "get balance")
	}
	if balance <= total {
		return vtl.NewNotEnoughBalanceForFirstLockError("")
	}

	tx, err := m.client.CreateLockTransaction(ctx, total, m.parameters.LockPeriodInBlocks)
	if err != nil {
		return errors.Wrap(err, "create lock transaction")
	}

	return m.saveThenBroadcast(ctx, tx, vtl.LockTypeCreate, desired)
}

// handleRenew extends an existing lock once the current height reaches its unlock height, falling back to
// release when the desired amount has changed or the relock can no longer afford its own fee.
func (m *Monitor) handleRenew(ctx context.Context, active *vtl.ValueTimeLock, latest *vtl.SavedLock,
	desired int64) error {
	height, err := m.client.GetCurrentBlockHeight(ctx)
	if err != nil {
		return errors.Wrap(err, "get current block height")
	}
	if height < active.UnlockTransactionTime {
		return nil
	}

	if latest.DesiredLockAmountSatoshis != desired {
		_, err := m.handleRelease(ctx, active, desired)
		return err
	}

	activeDuration := uint64(active.UnlockTransactionTime - active.LockTransactionTime)
	newDuration := m.parameters.LockPeriodInBlocks

	relock, err := m.client.CreateRelockTransaction(ctx, active.Identifier, activeDuration, newDuration)
	if err != nil {
		return errors.Wrap(err, "create relock transaction")
	}

	if active.AmountLocked-relock.Fee < desired {
		_, releaseErr := m.handleRelease(ctx, active, desired)
		return releaseErr
	}

	return m.saveThenBroadcast(ctx, relock, vtl.LockTypeRelock, desired)
}

// handleRelease returns a matured lock's funds to the wallet once no lock is required.
func (m *Monitor) handleRelease(ctx context.Context, active *vtl.ValueTimeLock,
	desired int64) (bool, error) {
	height, err := m.client.GetCurrentBlockHeight(ctx)
	if err != nil {
		return false, errors.Wrap(err, "get current block height")
	}
	if height < active.UnlockTransactionTime {
		return false, nil
	}

	activeDuration := uint64(active.UnlockTransactionTime - active.LockTransactionTime)

	release, err := m.client.CreateReleaseLockTransaction(ctx, active.Identifier, activeDuration)
	if err != nil {
		return false, errors.Wrap(err, "create release transaction")
	}

	if err := m.saveThenBroadcast(ctx, release, vtl.LockTypeReturnToWallet, desired); err != nil {
		return false, err
	}
	return true, nil
}

// saveThenBroadcast is the critical invariant: the record MUST be appended to the Lock Store
// before the transaction is handed to the Chain Client for broadcast.
func (m *Monitor) saveThenBroadcast(ctx context.Context, tx *chain.LockTransaction, lockType vtl.LockType,
	desired int64) error {
	saved := &vtl.SavedLock{
		TransactionID:             tx.TransactionID,
		RawTransaction:            tx.RawBytes,
		RedeemScriptHex:           tx.RedeemScriptHex,
		DesiredLockAmountSatoshis: desired,
		CreateTimestamp:           vtl.NewCreateTimestamp(),
		Type:                      lockType,
	}

	if err := m.lockStore.AddLock(ctx, saved); err != nil {
		if errors.Cause(err) == store.ErrDuplicateCreateTimestamp {
			// Already stored under this timestamp; treat as committed.
		} else {
			return errors.Wrap(err, "add lock")
		}
	}

	logger.InfoWithFields(ctx, []logger.Field{
		logger.String("transaction_id", tx.TransactionID),
		logger.Stringer("type", lockType),
	}, "Broadcasting lock transaction")

	if err := m.client.BroadcastLockTransaction(ctx, tx); err != nil {
		// Broadcast failures are swallowed: the saved intent already records the bytes and the
		// next rebroadcast will retry.
		logger.WarnWithFields(ctx, []logger.Field{logger.String("transaction_id", tx.TransactionID)},
			"Broadcast failed, will retry on next rebroadcast : %s", err)
	}

	if m.feeRecorder != nil {
		m.feeRecorder.Record([]int64{tx.Fee})
	}

	return nil
}

// rebroadcast resubmits the preserved raw transaction bytes verbatim, with fee 0.
func (m *Monitor) rebroadcast(ctx context.Context, saved *vtl.SavedLock) error {
	tx := &chain.LockTransaction{
		TransactionID:   saved.TransactionID,
		RawBytes:        saved.RawTransaction,
		RedeemScriptHex: saved.RedeemScriptHex,
		Fee:             0,
	}
	return m.client.BroadcastLockTransaction(ctx, tx)
}
