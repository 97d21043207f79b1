package threads

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestThreadRunsAndStops(t *testing.T) {
	var mutex sync.Mutex
	var ticks int

	thread := NewPeriodicTask("test", 5*time.Millisecond, func(ctx context.Context) error {
		mutex.Lock()
		ticks++
		mutex.Unlock()
		return nil
	})

	thread.Start(context.Background())
	time.Sleep(30 * time.Millisecond)
	thread.Stop(context.Background())

	mutex.Lock()
	got := ticks
	mutex.Unlock()
	if got == 0 {
		t.Fatal("expected at least one tick before stop")
	}
}

func TestThreadStopIsIdempotent(t *testing.T) {
	thread := NewPeriodicTask("test", time.Hour, func(ctx context.Context) error { return nil })
	thread.Start(context.Background())

	if thread.Stopped() {
		t.Fatal("expected not stopped before Stop is called")
	}

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			thread.Stop(context.Background())
		}()
	}
	wg.Wait()

	if !thread.Stopped() {
		t.Fatal("expected stopped after Stop is called")
	}
}

type fakeStopper struct {
	stopped bool
}

func (f *fakeStopper) Stop(ctx context.Context) {
	f.stopped = true
}

func TestStopCombinerStopsEveryStopper(t *testing.T) {
	a := &fakeStopper{}
	b := &fakeStopper{}

	var combiner StopCombiner
	combiner.Add(a)
	combiner.Add(b)

	combiner.Stop(context.Background())

	if !a.stopped || !b.stopped {
		t.Fatalf("expected both stoppers stopped, got a=%v b=%v", a.stopped, b.stopped)
	}
}

func TestAtomicFlagSetClear(t *testing.T) {
	flag := NewAtomicFlag()
	if flag.IsSet() {
		t.Fatal("expected flag clear initially")
	}

	flag.Set()
	if !flag.IsSet() {
		t.Fatal("expected flag set")
	}

	flag.Clear()
	if flag.IsSet() {
		t.Fatal("expected flag clear after Clear")
	}
}
