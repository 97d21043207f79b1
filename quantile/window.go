package quantile

import "github.com/pkg/errors"

// ErrQuantileOutOfRange is returned by Quantile when q is outside [0, 1].
var ErrQuantileOutOfRange = errors.New("quantile out of range")

// FrequencyVector counts how many normalized values fall in each bucket, one vector per
// block-group.
type FrequencyVector []int64

func newFrequencyVector(length int) FrequencyVector {
	return make(FrequencyVector, length)
}

func (v FrequencyVector) addElementWise(other FrequencyVector) {
	for i := range v {
		v[i] += other[i]
	}
}

func (v FrequencyVector) subtractElementWise(other FrequencyVector) {
	for i := range v {
		v[i] -= other[i]
	}
}

// SlidingWindow is a bounded FIFO queue of FrequencyVectors plus their element-wise aggregate.
// GroupLimit is the number of groups the window retains; a group pushed past the limit causes
// the oldest to be evicted so the aggregate invariant (aggregate = sum of queued vectors) keeps
// holding.
type SlidingWindow struct {
	approximator *ValueApproximator
	groupLimit   int

	groups    []FrequencyVector
	aggregate FrequencyVector
}

// NewSlidingWindow builds an empty window over approximator with at most groupLimit groups held
// at once.
func NewSlidingWindow(approximator *ValueApproximator, groupLimit int) *SlidingWindow {
	return &SlidingWindow{
		approximator: approximator,
		groupLimit:   groupLimit,
		aggregate:    newFrequencyVector(approximator.VectorLength()),
	}
}

// Add normalizes each value, builds one frequency vector for the batch, pushes it onto the
// window, and folds it into the aggregate. If the window is now over its group limit, the oldest
// group is evicted.
func (w *SlidingWindow) Add(values []int64) {
	batch := newFrequencyVector(w.approximator.VectorLength())
	for _, v := range values {
		batch[w.approximator.Normalize(v)]++
	}

	w.groups = append(w.groups, batch)
	w.aggregate.addElementWise(batch)

	for len(w.groups) > w.groupLimit {
		w.evictOldest()
	}
}

// DeleteLast pops the oldest group from the queue and subtracts it from the aggregate. It is a
// no-op if the window is empty.
func (w *SlidingWindow) DeleteLast() {
	if len(w.groups) == 0 {
		return
	}
	w.evictOldest()
}

func (w *SlidingWindow) evictOldest() {
	oldest := w.groups[0]
	w.groups = w.groups[1:]
	w.aggregate.subtractElementWise(oldest)
}

// Aggregate returns the current element-wise sum of every queued group, for testing the
// invariant that it always equals the sum of the groups currently held.
func (w *SlidingWindow) Aggregate() FrequencyVector {
	result := make(FrequencyVector, len(w.aggregate))
	copy(result, w.aggregate)
	return result
}

// Quantile returns the denormalized value at quantile q in [0, 1]: the smallest bucket at which
// the prefix sum of the aggregate first reaches q * total.
func (w *SlidingWindow) Quantile(q float64) (int64, error) {
	if q < 0 || q > 1 {
		return 0, ErrQuantileOutOfRange
	}

	var total int64
	for _, count := range w.aggregate {
		total += count
	}

	threshold := q * float64(total)

	var prefix float64
	for i, count := range w.aggregate {
		prefix += float64(count)
		if prefix >= threshold {
			return w.approximator.Denormalize(i), nil
		}
	}

	return w.approximator.Denormalize(len(w.aggregate) - 1), nil
}
