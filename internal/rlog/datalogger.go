package rlog

import "time"

// NodeRow is one diagnostic row describing a node at the point it was
// recorded or materialized: its dense node id, its ksuid.KSUID
// lineage tag (as a string, for log correlation only -- see
// SPEC_FULL.md section 3), its time, population, and flags.
type NodeRow struct {
	NodeID     int32
	Lineage    string
	Time       float64
	Population int32
	Flags      uint32
}

// CycleRecord summarizes one simplify cycle: table sizes before and
// after, and how long it took.
type CycleRecord struct {
	Cycle        int
	NodesBefore  int
	NodesAfter   int
	EdgesBefore  int
	EdgesAfter   int
	Duration     time.Duration
}

// DataLogger is the pluggable diagnostics sink a recording program
// wires up around a Recorder, mirroring the teacher's DataLogger
// interface (logger.go): callers choose a CSV- or SQLite-backed
// implementation via configuration (SPEC_FULL.md section 2.3) without
// the Recorder itself knowing which.
type DataLogger interface {
	SetBasePath(basepath string, instance int)
	Init() error
	WriteNodes(rows []NodeRow) error
	WriteCycle(c CycleRecord) error
	Close() error
}
