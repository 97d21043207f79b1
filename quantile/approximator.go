// Package quantile implements the Sliding-Window Quantile Engine.
package quantile

import "math"

// ValueApproximator maps values into a small number of logarithmic buckets so a sliding window
// of historical fees (or any other quantity) can be tracked with bounded memory, guaranteeing
// v <= denormalize(normalize(v)) < b*v for v >= 1.
type ValueApproximator struct {
	b float64
	m int64
}

// NewValueApproximator builds an approximator with approximation factor b (b > 1) and maximum
// representable value m.
func NewValueApproximator(b float64, m int64) *ValueApproximator {
	return &ValueApproximator{b: b, m: m}
}

// VectorLength returns the number of buckets needed to hold every normalized value up to m. It is
// derived from Normalize(m) rather than 1+ceil(log_b(m)): when m is an exact power of b, Normalize
// returns 1+floor(log_b(m)), which equals 1+ceil(log_b(m)) and would be one past the end of a
// slice sized that way.
func (a *ValueApproximator) VectorLength() int {
	return a.Normalize(a.m) + 1
}

// Normalize maps v to its bucket index: 0 if v <= 0, else 1 + floor(log_b(min(v, M))).
func (a *ValueApproximator) Normalize(v int64) int {
	if v <= 0 {
		return 0
	}
	capped := v
	if capped > a.m {
		capped = a.m
	}
	return 1 + int(math.Floor(math.Log(float64(capped))/math.Log(a.b)))
}

// Denormalize is the inverse of Normalize: round(b^(n-1)) for n > 0, else 0.
func (a *ValueApproximator) Denormalize(n int) int64 {
	if n <= 0 {
		return 0
	}
	return int64(math.Round(math.Pow(a.b, float64(n-1))))
}
