package store

import (
	"context"
	"testing"

	"github.com/tokenized/vtl/vtl"
)

func TestLockStoreAppendOrder(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryLockStore()

	first := &vtl.SavedLock{TransactionID: "a", CreateTimestamp: 1, Type: vtl.LockTypeCreate}
	second := &vtl.SavedLock{TransactionID: "b", CreateTimestamp: 2, Type: vtl.LockTypeRelock}

	if err := s.AddLock(ctx, first); err != nil {
		t.Fatalf("add first failed : %s", err)
	}
	if err := s.AddLock(ctx, second); err != nil {
		t.Fatalf("add second failed : %s", err)
	}

	last, err := s.GetLastLock(ctx)
	if err != nil {
		t.Fatalf("get last failed : %s", err)
	}
	if last.TransactionID != "b" {
		t.Fatalf("got last %s, want b", last.TransactionID)
	}
}

func TestLockStoreRejectsDuplicateTimestamp(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryLockStore()

	lock := &vtl.SavedLock{TransactionID: "a", CreateTimestamp: 1}
	if err := s.AddLock(ctx, lock); err != nil {
		t.Fatalf("add failed : %s", err)
	}

	dup := &vtl.SavedLock{TransactionID: "b", CreateTimestamp: 1}
	if err := s.AddLock(ctx, dup); err != ErrDuplicateCreateTimestamp {
		t.Fatalf("got %v, want ErrDuplicateCreateTimestamp", err)
	}
}

func TestQuantileStoreRemoveAtOrAfter(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryQuantileStore()

	s.Put(ctx, QuantileGroup{GroupID: 10, Reservoir: []int64{1}})
	s.Put(ctx, QuantileGroup{GroupID: 20, Reservoir: []int64{2}})
	s.Put(ctx, QuantileGroup{GroupID: 30, Reservoir: []int64{3}})

	if err := s.RemoveGroupsAtOrAfter(ctx, 20); err != nil {
		t.Fatalf("remove failed : %s", err)
	}

	last, exists, err := s.LastGroupID(ctx)
	if err != nil {
		t.Fatalf("last group id failed : %s", err)
	}
	if !exists || last != 10 {
		t.Fatalf("got last=%d exists=%v, want 10/true", last, exists)
	}
}
