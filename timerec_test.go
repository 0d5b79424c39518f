package ftprime

import "testing"

func TestTimeReconcilerBasic(t *testing.T) {
	var r timeReconciler
	r.observe(0)
	r.observe(1)
	r.observe(2)

	// Three samples added at forward-time 2 (the current generation),
	// two ancestors added earlier at forward-time 0 and 1.
	times := []float64{0, 1, 2, 2, 2}
	r.reconcile(times)

	want := []float64{2, 1, 0, 0, 0}
	for i := range want {
		if times[i] != want[i] {
			t.Fatalf("reconcile mismatch at %d: got %v want %v", i, times, want)
		}
	}
}

func TestTimeReconcilerIdempotent(t *testing.T) {
	var r timeReconciler
	r.observe(0)
	r.observe(1)
	times := []float64{0, 1, 1}
	r.reconcile(times)
	first := append([]float64{}, times...)

	r.reconcile(times)
	for i := range first {
		if times[i] != first[i] {
			t.Fatalf("second reconcile changed values: got %v want %v", times, first)
		}
	}
}

func TestTimeReconcilerIncrementalGrowth(t *testing.T) {
	var r timeReconciler
	r.observe(0)
	times := []float64{0, 0}
	r.reconcile(times)
	if times[0] != 0 || times[1] != 0 {
		t.Fatalf("unexpected first reconcile: %v", times)
	}

	// Simulation advances to generation 3; two new individuals appended
	// with raw forward time 3.
	r.observe(3)
	times = append(times, 3, 3)
	r.reconcile(times)

	want := []float64{3, 3, 0, 0}
	for i := range want {
		if times[i] != want[i] {
			t.Fatalf("incremental reconcile mismatch: got %v want %v", times, want)
		}
	}
}

func TestTimeReconcilerReset(t *testing.T) {
	var r timeReconciler
	r.observe(5)
	times := []float64{5}
	r.reconcile(times)
	r.reset()
	if r.maxTime != 0 || r.lastUpdateTime != 0 || r.lastUpdateNode != 0 {
		t.Fatalf("reset did not clear state: %+v", r)
	}
}
