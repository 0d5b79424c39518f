package ftprime

import (
	"sort"
	"time"

	"github.com/pkg/errors"
	"github.com/segmentio/ksuid"

	"github.com/ashander/ftprime/internal/rlog"
)

// Recorder is the simulator-facing ARG recording engine: a
// TableCollection plus the ID map and time reconciler needed to accept
// input from a forward-time simulator and, on demand, hand back a
// simplified tree sequence. A Recorder performs no I/O of its own
// (spec.md section 5): every method is a synchronous, in-memory
// operation, and nothing here opens a file, a socket, or a log.
type Recorder struct {
	tables TableCollection
	ids    *idMap
	times  timeReconciler

	sitePositions map[float64]int32

	// lineage carries a ksuid.KSUID per node row purely for diagnostics
	// and log correlation (SPEC_FULL section 3); it never participates
	// in a tree-sequence invariant. Node identity inside the tables is
	// still the dense row index.
	lineage []ksuid.KSUID

	// Timings, if non-nil, accumulates wall-clock spent in Simplify and
	// TreeSequence (SPEC_FULL section 4.3). Left nil by NewRecorder; set
	// it directly to opt in.
	Timings *rlog.Timings
}

// NewRecorder constructs a Recorder from an explicit sequence length
// and no prior history: the table collection starts empty.
func NewRecorder(sequenceLength float64) (*Recorder, error) {
	if sequenceLength <= 0 {
		return nil, errMissingSequenceLength()
	}
	r := &Recorder{
		ids:           newIDMap(),
		sitePositions: make(map[float64]int32),
	}
	r.tables.SequenceLength = sequenceLength
	return r, nil
}

// NewRecorderFromPriorHistory seeds a Recorder from a previously
// recorded genealogy, per SPEC_FULL section 4.2. If sequenceLength is
// non-zero it must match prior.Tables.SequenceLength, or
// SequenceLengthMismatch is raised.
func NewRecorderFromPriorHistory(prior PriorHistory, sequenceLength float64) (*Recorder, error) {
	if sequenceLength != 0 && sequenceLength != prior.Tables.SequenceLength {
		return nil, errSequenceLengthMismatch(sequenceLength, prior.Tables.SequenceLength)
	}
	if prior.Tables.SequenceLength <= 0 {
		return nil, errMissingSequenceLength()
	}
	r := &Recorder{
		tables:        prior.Tables,
		ids:           newIDMap(),
		sitePositions: make(map[float64]int32),
		lineage:       make([]ksuid.KSUID, prior.Tables.Nodes.NumRows()),
	}
	for i := range r.lineage {
		r.lineage[i] = ksuid.New()
	}
	for inputID, nodeID := range prior.NodeIDs {
		if err := r.ids.assign(inputID, nodeID); err != nil {
			return nil, errors.Wrapf(err, "NewRecorderFromPriorHistory: binding input id %d", inputID)
		}
	}
	for _, pos := range prior.Tables.Sites.Position {
		r.sitePositions[pos] = int32(len(r.sitePositions))
	}
	for _, t := range prior.Tables.Nodes.Time {
		r.times.observe(t)
	}
	r.times.lastUpdateTime = r.times.maxTime
	r.times.lastUpdateNode = prior.Tables.Nodes.NumRows()
	return r, nil
}

// NewRecorderFromRoster seeds a Recorder with a flat initial
// population and no prior genealogy (SPEC_FULL section 4.2).
func NewRecorderFromRoster(roster InitialRoster, sequenceLength float64) (*Recorder, error) {
	r, err := NewRecorder(sequenceLength)
	if err != nil {
		return nil, err
	}
	if err := r.AddIndividuals(roster.InputIDs, roster.Time, NullPopulation, 0); err != nil {
		return nil, errors.Wrap(err, "NewRecorderFromRoster")
	}
	return r, nil
}

// SequenceLength returns the genome length this Recorder's edges are
// defined over.
func (r *Recorder) SequenceLength() float64 {
	return r.tables.SequenceLength
}

// NumNodes returns the number of node rows recorded so far.
func (r *Recorder) NumNodes() int {
	return r.tables.Nodes.NumRows()
}

// AddIndividual registers a single new individual, assigning it a
// fresh node row. time is given in forward-time (generation) units;
// the time reconciler defers converting it to tree-sequence reverse
// time until Simplify or TreeSequence is called. Fails with
// DuplicateId if inputID has already been registered.
func (r *Recorder) AddIndividual(inputID int, time float64, population int32, flags uint32) (int32, error) {
	if r.ids.has(inputID) {
		return 0, errDuplicateID(inputID)
	}
	r.times.observe(time)
	nodeID, err := r.tables.Nodes.AppendRow(flags, population, time)
	if err != nil {
		return 0, errors.Wrapf(err, "AddIndividual input id %d", inputID)
	}
	if err := r.ids.assign(inputID, int32(nodeID)); err != nil {
		return 0, err
	}
	r.lineage = append(r.lineage, ksuid.New())
	return int32(nodeID), nil
}

// AddIndividuals registers a batch of individuals sharing the same
// time, population, and flags, as used to seed an initial roster.
func (r *Recorder) AddIndividuals(inputIDs []int, time float64, population int32, flags uint32) error {
	for _, id := range inputIDs {
		if _, err := r.AddIndividual(id, time, population, flags); err != nil {
			return err
		}
	}
	return nil
}

// AddRecord records that, over the half-open interval [left, right),
// each of children inherited from parent. Both parent and every child
// must already be registered (via AddIndividual), or UnknownId is
// raised. The interval must satisfy 0 <= left < right <= sequence
// length, and parent must differ from every child, or InvalidEdge is
// raised.
func (r *Recorder) AddRecord(left, right float64, parentInputID int, childInputIDs []int) error {
	if left < 0 || left >= right || right > r.tables.SequenceLength {
		return errInvalidEdge(left, right, parentInputID, -1, "interval out of bounds")
	}
	parentNode, err := r.ids.lookup(parentInputID)
	if err != nil {
		return errors.Wrapf(err, "AddRecord parent %d", parentInputID)
	}
	for _, childInputID := range childInputIDs {
		if childInputID == parentInputID {
			return errInvalidEdge(left, right, parentInputID, childInputID, "parent equals child")
		}
		childNode, err := r.ids.lookup(childInputID)
		if err != nil {
			return errors.Wrapf(err, "AddRecord child %d", childInputID)
		}
		if err := r.tables.Edges.AppendRow(left, right, parentNode, childNode); err != nil {
			return errors.Wrapf(err, "AddRecord parent %d child %d", parentInputID, childInputID)
		}
	}
	return nil
}

// Call is the combined add_individual + add_record entry point
// (argrecorder.py.__call__): if child is not yet registered, it is
// added first at the given time and population; the parent/child edge
// is then recorded. A child that was already registered earlier in
// the same generation (e.g. the second of a pair of recombinant
// chromosomes) is tolerated rather than treated as DuplicateId.
func (r *Recorder) Call(parentInputID, childInputID int, left, right, time float64, population int32, flags uint32) error {
	if !r.ids.has(childInputID) {
		if _, err := r.AddIndividual(childInputID, time, population, flags); err != nil {
			return errors.Wrapf(err, "Call: add_individual child %d", childInputID)
		}
	}
	return r.AddRecord(left, right, parentInputID, []int{childInputID})
}

// AddMutation records that node carries derivedState at position.
// Sites are created on demand, keyed by position (argrecorder.py's
// self.site_positions dict); a second mutation at an already-known
// position reuses the existing site row.
func (r *Recorder) AddMutation(inputID int, position float64, ancestralState, derivedState string) error {
	nodeID, err := r.ids.lookup(inputID)
	if err != nil {
		return errors.Wrapf(err, "AddMutation node %d", inputID)
	}
	siteID, ok := r.sitePositions[position]
	if !ok {
		idx, err := r.tables.Sites.AppendRow(position, ancestralState)
		if err != nil {
			return errors.Wrapf(err, "AddMutation site at %g", position)
		}
		siteID = int32(idx)
		r.sitePositions[position] = siteID
	}
	return r.tables.Mutations.AppendRow(siteID, nodeID, derivedState)
}

// MarkSamples sets the IS_SAMPLE flag for exactly the node rows bound
// to sampleInputIDs, clearing it everywhere else -- the same
// semantics as tskit's samples= argument to simplify.
func (r *Recorder) MarkSamples(sampleInputIDs []int) error {
	for i := range r.tables.Nodes.Flags {
		r.tables.Nodes.Flags[i] &^= IsSample
	}
	for _, inputID := range sampleInputIDs {
		nodeID, err := r.ids.lookup(inputID)
		if err != nil {
			return errors.Wrapf(err, "MarkSamples input id %d", inputID)
		}
		r.tables.Nodes.Flags[nodeID] |= IsSample
	}
	return nil
}

// SampleInputIDs returns the input IDs currently bound to sample
// nodes, in ascending input-ID order.
func (r *Recorder) SampleInputIDs() []int {
	var ids []int
	for nodeID, flags := range r.tables.Nodes.Flags {
		if flags&IsSample == 0 {
			continue
		}
		if inputID, ok := r.ids.inputFor(int32(nodeID)); ok {
			ids = append(ids, inputID)
		}
	}
	sort.Ints(ids)
	return ids
}

// sortEdges stably sorts the edge table by (parent time ascending,
// parent, child, left), the ordering Simplify and TreeSequence require
// before calling simplify.
func (r *Recorder) sortEdges() {
	sortEdgeTable(&r.tables.Edges, r.tables.Nodes.Time)
}

// Simplify reduces the recorder's own tables in place to the minimal
// genealogy explaining its current samples (those marked via
// MarkSamples), renumbering surviving nodes and rebinding the ID map
// accordingly. It is the in-place counterpart to TreeSequence, which
// performs the same reduction on a detached copy.
func (r *Recorder) Simplify() error {
	sortStart := time.Now()
	r.times.reconcile(r.tables.Nodes.Time)
	r.sortEdges()
	r.Timings.AddSorting(time.Since(sortStart))

	simplifyStart := time.Now()
	samples := r.sampleNodeIDs()
	result, oldToNew, err := Simplify(r.tables, samples)
	r.Timings.AddSimplifying(time.Since(simplifyStart))
	if err != nil {
		return errors.Wrap(err, "Simplify")
	}
	r.tables = result
	r.times.lastUpdateNode = r.tables.Nodes.NumRows()
	r.ids.rebind(oldToNew)
	r.reconcileLineage(oldToNew)
	return nil
}

func (r *Recorder) sampleNodeIDs() []int32 {
	return r.sampleNodeIDsIn(r.tables.Nodes.Flags)
}

func (r *Recorder) sampleNodeIDsIn(flags []uint32) []int32 {
	var samples []int32
	for nodeID, f := range flags {
		if f&IsSample != 0 {
			samples = append(samples, int32(nodeID))
		}
	}
	return samples
}

func (r *Recorder) reconcileLineage(oldToNew map[int32]int32) {
	newLineage := make([]ksuid.KSUID, len(oldToNew))
	for old, nw := range oldToNew {
		if int(old) < len(r.lineage) {
			newLineage[nw] = r.lineage[old]
		}
	}
	for i, tag := range newLineage {
		if tag.IsNil() {
			newLineage[i] = ksuid.New()
		}
	}
	r.lineage = newLineage
}

// Lineage returns the diagnostic ksuid.KSUID lineage tag for a node
// ID, for log correlation only -- it is not part of any tree-sequence
// invariant.
func (r *Recorder) Lineage(nodeID int32) (ksuid.KSUID, bool) {
	if int(nodeID) < 0 || int(nodeID) >= len(r.lineage) {
		return ksuid.KSUID{}, false
	}
	return r.lineage[nodeID], true
}
