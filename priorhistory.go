package ftprime

// PriorHistory supplies a previously recorded genealogy, together with
// the input-ID -> node-ID bindings that were in effect for it, to seed
// a new Recorder. This mirrors the branch of argrecorder.py.__init__
// that wraps an existing tskit.TableCollection instead of starting
// from an empty one.
type PriorHistory struct {
	Tables  TableCollection
	NodeIDs map[int]int32 // input ID -> node ID, as of the end of the prior history
}

// InitialRoster describes a flat starting population with no prior
// genealogy (SPEC_FULL §4.2): each of InputIDs is registered as a node
// row at forward-time Time, population NullPopulation. None are
// marked as samples at construction time -- sample status is assigned
// later via MarkSamples, once the simulator knows which lineages it
// wants retained.
type InitialRoster struct {
	InputIDs []int
	Time     float64
}
