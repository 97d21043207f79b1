package quantile

import "testing"

func TestApproximationGuarantee(t *testing.T) {
	a := NewValueApproximator(2, 1024)

	for v := int64(1); v <= 1024; v++ {
		got := a.Denormalize(a.Normalize(v))
		if got < v {
			t.Fatalf("denormalize(normalize(%d)) = %d, want >= %d", v, got, v)
		}
		max := int64(2 * v)
		if max < 1 {
			max = 1
		}
		if got >= max {
			t.Fatalf("denormalize(normalize(%d)) = %d, want < %d", v, got, max)
		}
	}
}

func TestAggregateMatchesElementWiseSum(t *testing.T) {
	a := NewValueApproximator(2, 1024)
	w := NewSlidingWindow(a, 3)

	w.Add([]int64{1, 2, 3})
	w.Add([]int64{4, 5})
	w.Add([]int64{6})

	want := newFrequencyVector(a.VectorLength())
	want[a.Normalize(1)]++
	want[a.Normalize(2)]++
	want[a.Normalize(3)]++
	want[a.Normalize(4)]++
	want[a.Normalize(5)]++
	want[a.Normalize(6)]++

	got := w.Aggregate()
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("aggregate mismatch at bucket %d: got %d want %d", i, got[i], want[i])
		}
	}

	w.DeleteLast()
	for i := range want {
		want[i] -= 0
	}
	want[a.Normalize(1)]--
	want[a.Normalize(2)]--
	want[a.Normalize(3)]--

	got = w.Aggregate()
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("aggregate mismatch after delete at bucket %d: got %d want %d", i, got[i], want[i])
		}
	}
}

func TestWindowEvictsOverLimit(t *testing.T) {
	a := NewValueApproximator(2, 1024)
	w := NewSlidingWindow(a, 2)

	w.Add([]int64{1})
	w.Add([]int64{2})
	w.Add([]int64{3})

	if len(w.groups) != 2 {
		t.Fatalf("expected 2 groups retained, got %d", len(w.groups))
	}
}

func TestQuantileWithinApproximationBounds(t *testing.T) {
	a := NewValueApproximator(2, 1024)
	w := NewSlidingWindow(a, 1)

	values := make([]int64, 0, 1024)
	for v := int64(1); v <= 1024; v++ {
		values = append(values, v)
	}
	w.Add(values)

	got, err := w.Quantile(0.5)
	if err != nil {
		t.Fatalf("quantile failed : %s", err)
	}

	lower := a.Denormalize(a.Normalize(512))
	upper := int64(2 * 512)
	if got < lower || got >= upper {
		t.Fatalf("quantile(0.5) = %d, want in [%d, %d)", got, lower, upper)
	}
}

func TestQuantileOutOfRange(t *testing.T) {
	a := NewValueApproximator(2, 1024)
	w := NewSlidingWindow(a, 1)
	w.Add([]int64{1})

	if _, err := w.Quantile(-0.1); err == nil {
		t.Fatal("expected error for q < 0")
	}
	if _, err := w.Quantile(1.1); err == nil {
		t.Fatal("expected error for q > 1")
	}
}
