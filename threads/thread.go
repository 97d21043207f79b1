package threads

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/tokenized/vtl/logger"
)

// Interrupted is an exported sentinel for a stopped Thread; nothing in this package returns it.
var Interrupted = errors.New("interrupted")

// TaskFunction performs one periodic task invocation.
type TaskFunction func(ctx context.Context) error

// Thread runs a TaskFunction on a fixed interval until stopped: a single goroutine alternates
// between sleeping and running the task, which means invocations can never overlap, and Stop
// only closes the interrupt channel -- a task already running is allowed to finish.
type Thread struct {
	name      string
	frequency time.Duration
	task      TaskFunction

	interrupt chan struct{}
	done      chan struct{}

	stopped *AtomicFlag

	mutex sync.Mutex
	err   error
}

// NewPeriodicTask creates a Thread that invokes task every frequency, starting after the first
// interval elapses.
func NewPeriodicTask(name string, frequency time.Duration, task TaskFunction) *Thread {
	return &Thread{
		name:      name,
		frequency: frequency,
		task:      task,
		interrupt: make(chan struct{}),
		done:      make(chan struct{}),
		stopped:   NewAtomicFlag(),
	}
}

// Start runs the periodic loop in a new goroutine.
func (t *Thread) Start(ctx context.Context) {
	go func() {
		defer close(t.done)

		for {
			select {
			case <-t.interrupt:
				return

			case <-time.After(t.frequency):
				if err := t.task(ctx); err != nil {
					logger.ErrorWithFields(ctx, []logger.Field{logger.String("thread", t.name)},
						"Periodic task failed : %s", err)
					t.mutex.Lock()
					t.err = err
					t.mutex.Unlock()
				}
			}
		}
	}()
}

// Stop signals the loop to exit after its current sleep (or running task) completes, then waits
// for it to actually exit. Safe to call more than once, including concurrently.
func (t *Thread) Stop(ctx context.Context) {
	t.mutex.Lock()
	if t.stopped.IsSet() {
		t.mutex.Unlock()
		return
	}
	t.stopped.Set()
	close(t.interrupt)
	t.mutex.Unlock()

	<-t.done
}

// Stopped reports whether Stop has been called, without blocking on the loop's exit.
func (t *Thread) Stopped() bool {
	return t.stopped.IsSet()
}

// Error returns the error from the most recent failed task invocation, if any.
func (t *Thread) Error() error {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	return t.err
}
