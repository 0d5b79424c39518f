// Package rlog provides the diagnostic logging and timing
// instrumentation an ARG recorder's host program wires up around it:
// per-cycle CSV or SQLite table dumps and a small wall-clock
// accumulator, in the style of the teacher repository's DataLogger
// family (logger.go, csv_logger.go, sqlite_logger.go) and
// ftprime's benchmarker.Timings.
package rlog

import "time"

// Timings accumulates wall-clock time spent in the three phases a
// recording cycle goes through: sorting edges, running simplify, and
// whatever bookkeeping the caller wants to call "prepping" (e.g.
// building the next generation's add_record batch). A nil *Timings is
// valid and every Add method on it is a no-op, so instrumentation can
// be left off by simply not constructing one.
type Timings struct {
	Sorting     time.Duration
	Simplifying time.Duration
	Prepping    time.Duration
}

func (t *Timings) AddSorting(d time.Duration) {
	if t != nil {
		t.Sorting += d
	}
}

func (t *Timings) AddSimplifying(d time.Duration) {
	if t != nil {
		t.Simplifying += d
	}
}

func (t *Timings) AddPrepping(d time.Duration) {
	if t != nil {
		t.Prepping += d
	}
}

// Total returns the sum of all three buckets.
func (t *Timings) Total() time.Duration {
	if t == nil {
		return 0
	}
	return t.Sorting + t.Simplifying + t.Prepping
}
