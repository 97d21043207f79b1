// Package store defines the Lock Store and Quantile Store contracts plus in-memory
// implementations for tests, backing each narrow interface with a mutex-guarded map.
package store

import (
	"context"
	"sync"

	"github.com/pkg/errors"

	"github.com/tokenized/vtl/vtl"
)

// ErrDuplicateCreateTimestamp is returned when AddLock is given a create_timestamp already
// present in the store. The unique index on create_timestamp makes duplicate appends fail
// deterministically; callers should treat such a failure as the record already being stored.
var ErrDuplicateCreateTimestamp = errors.New("duplicate create_timestamp")

// LockStore is the append-only, create_timestamp-indexed collection of SavedLock records.
type LockStore interface {
	// AddLock appends lock. It fails with ErrDuplicateCreateTimestamp if lock.CreateTimestamp is
	// already present.
	AddLock(ctx context.Context, lock *vtl.SavedLock) error

	// GetLastLock returns the most recently appended record, or nil if the store is empty.
	GetLastLock(ctx context.Context) (*vtl.SavedLock, error)

	Clear(ctx context.Context) error
}

// MemoryLockStore is an in-memory LockStore ordered by insertion, which is equivalent to
// create_timestamp order since ticks never overlap.
type MemoryLockStore struct {
	mutex sync.Mutex
	locks []*vtl.SavedLock
	seen  map[int64]bool
}

func NewMemoryLockStore() *MemoryLockStore {
	return &MemoryLockStore{seen: make(map[int64]bool)}
}

func (s *MemoryLockStore) AddLock(ctx context.Context, lock *vtl.SavedLock) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.seen[lock.CreateTimestamp] {
		return ErrDuplicateCreateTimestamp
	}

	s.seen[lock.CreateTimestamp] = true
	s.locks = append(s.locks, lock)
	return nil
}

func (s *MemoryLockStore) GetLastLock(ctx context.Context) (*vtl.SavedLock, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if len(s.locks) == 0 {
		return nil, nil
	}
	return s.locks[len(s.locks)-1], nil
}

func (s *MemoryLockStore) Clear(ctx context.Context) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.locks = nil
	s.seen = make(map[int64]bool)
	return nil
}

// All returns every record in append order, for tests asserting on full history.
func (s *MemoryLockStore) All() []*vtl.SavedLock {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	result := make([]*vtl.SavedLock, len(s.locks))
	copy(result, s.locks)
	return result
}
