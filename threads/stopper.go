package threads

import "context"

// Stopper is anything that can be asked to stop and waited on.
type Stopper interface {
	Stop(context.Context)
}

// StopCombiner lets several Stoppers be shut down together in the order they were added.
type StopCombiner []Stopper

func (s *StopCombiner) Add(stopper Stopper) {
	*s = append(*s, stopper)
}

func (s StopCombiner) Stop(ctx context.Context) {
	for _, stopper := range s {
		stopper.Stop(ctx)
	}
}
