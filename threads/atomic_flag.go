package threads

import "sync/atomic"

// AtomicFlag is a boolean that can be set and read safely from different goroutines. Thread uses
// one to record that Stop has been called, which makes Stop idempotent and backs Stopped.
type AtomicFlag struct {
	value atomic.Value
}

func NewAtomicFlag() *AtomicFlag {
	result := &AtomicFlag{}
	result.value.Store(uint64(0))
	return result
}

func (f *AtomicFlag) Set() {
	f.value.Store(uint64(1))
}

func (f *AtomicFlag) Clear() {
	f.value.Store(uint64(0))
}

func (f *AtomicFlag) IsSet() bool {
	return f.value.Load().(uint64) != 0
}
