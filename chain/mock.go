package chain

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// MockClient is an in-memory Client used by package tests: fixtures live in maps guarded
// by a mutex instead of talking to a real node.
type MockClient struct {
	mutex sync.Mutex

	height       int32
	balance      int64
	transactions map[string]*Transaction
	blocks       map[string]*BlockInfo
	broadcast    map[string]*LockTransaction
}

func NewMockClient(height int32, balance int64) *MockClient {
	return &MockClient{
		height:       height,
		balance:      balance,
		transactions: make(map[string]*Transaction),
		blocks:       make(map[string]*BlockInfo),
		broadcast:    make(map[string]*LockTransaction),
	}
}

func (m *MockClient) SetHeight(height int32) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.height = height
}

func (m *MockClient) SetBalance(balance int64) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.balance = balance
}

// AddTransaction registers a transaction fixture for GetRawTransaction to return.
func (m *MockClient) AddTransaction(tx *Transaction) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.transactions[tx.TransactionID] = tx
}

func (m *MockClient) AddBlock(hash string, info *BlockInfo) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.blocks[hash] = info
}

func (m *MockClient) GetRawTransaction(ctx context.Context, txid string) (*Transaction, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	tx, exists := m.transactions[txid]
	if !exists {
		return nil, errors.Wrap(ErrTransactionNotFound, txid)
	}
	return tx, nil
}

func (m *MockClient) GetBlockInfo(ctx context.Context, hash string) (*BlockInfo, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	info, exists := m.blocks[hash]
	if !exists {
		return nil, errors.Wrap(ErrBlockNotFound, hash)
	}
	return info, nil
}

func (m *MockClient) GetCurrentBlockHeight(ctx context.Context) (int32, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.height, nil
}

func (m *MockClient) GetBalanceInSatoshis(ctx context.Context) (int64, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.balance, nil
}

// newTxID fabricates a unique synthetic transaction id for fixtures that never touch a chain.
func (m *MockClient) newTxID() string {
	return uuid.New().String()
}

func (m *MockClient) CreateLockTransaction(ctx context.Context, amount int64,
	durationBlocks uint64) (*LockTransaction, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if amount > m.balance {
		return nil, errors.Wrap(ErrInsufficientFunds, "lock")
	}

	return &LockTransaction{
		TransactionID: m.newTxID(),
		Fee:           1,
	}, nil
}

func (m *MockClient) CreateRelockTransaction(ctx context.Context, priorTxID string,
	priorDuration, newDuration uint64) (*LockTransaction, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	return &LockTransaction{
		TransactionID: m.newTxID(),
		Fee:           1,
	}, nil
}

func (m *MockClient) CreateReleaseLockTransaction(ctx context.Context, priorTxID string,
	priorDuration uint64) (*LockTransaction, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	return &LockTransaction{
		TransactionID: m.newTxID(),
		Fee:           1,
	}, nil
}

func (m *MockClient) BroadcastLockTransaction(ctx context.Context, tx *LockTransaction) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	// Idempotent: re-broadcasting a previously broadcast transaction is not an error.
	m.broadcast[tx.TransactionID] = tx
	return nil
}

// WasBroadcast reports whether txid was ever passed to BroadcastLockTransaction.
func (m *MockClient) WasBroadcast(txid string) bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	_, exists := m.broadcast[txid]
	return exists
}
