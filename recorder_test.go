package ftprime

import "testing"

func TestRecorderAddIndividualAndLookup(t *testing.T) {
	r, err := NewRecorder(1.0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	nodeID, err := r.AddIndividual(100, 0.0, NullPopulation, IsSample)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if nodeID != 0 {
		t.Fatalf("expected node id 0, got %d", nodeID)
	}
	if r.NumNodes() != 1 {
		t.Fatalf("expected 1 node, got %d", r.NumNodes())
	}
}

func TestRecorderAddIndividualDuplicateID(t *testing.T) {
	r, err := NewRecorder(1.0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := r.AddIndividual(100, 0.0, NullPopulation, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := r.AddIndividual(100, 0.0, NullPopulation, 0); err == nil || !IsKind(err, KindDuplicateID) {
		t.Fatalf("expected DuplicateId error, got %v", err)
	}
}

func TestRecorderAddIndividuals(t *testing.T) {
	r, err := NewRecorder(1.0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := r.AddIndividuals([]int{1, 2, 3}, 0.0, NullPopulation, IsSample); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.NumNodes() != 3 {
		t.Fatalf("expected 3 nodes, got %d", r.NumNodes())
	}
}

func TestRecorderAddRecordUnknownParent(t *testing.T) {
	r, err := NewRecorder(1.0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := r.AddIndividual(1, 0.0, NullPopulation, IsSample); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := r.AddRecord(0.0, 1.0, 99, []int{1}); err == nil || !IsKind(err, KindUnknownID) {
		t.Fatalf("expected UnknownId error, got %v", err)
	}
}

func TestRecorderAddRecordUnknownChild(t *testing.T) {
	r, err := NewRecorder(1.0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := r.AddIndividual(1, 1.0, NullPopulation, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := r.AddRecord(0.0, 1.0, 1, []int{99}); err == nil || !IsKind(err, KindUnknownID) {
		t.Fatalf("expected UnknownId error, got %v", err)
	}
}

// TestRecorderAddRecordInvalidEdge exercises the exact inverted- and
// zero-length-interval calls from the concrete seed scenario: both must
// fail InvalidEdge without touching the edge table.
func TestRecorderAddRecordInvalidEdge(t *testing.T) {
	r, err := NewRecorder(1.0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := r.AddIndividual(1, 1.0, NullPopulation, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := r.AddIndividual(2, 0.0, NullPopulation, IsSample); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := r.AddRecord(0.5, 0.5, 1, []int{2}); err == nil || !IsKind(err, KindInvalidEdge) {
		t.Fatalf("expected InvalidEdge for left == right, got %v", err)
	}
	if err := r.AddRecord(0.5, 0.4, 1, []int{2}); err == nil || !IsKind(err, KindInvalidEdge) {
		t.Fatalf("expected InvalidEdge for left > right, got %v", err)
	}
	if r.tables.Edges.NumRows() != 0 {
		t.Fatalf("expected no edges recorded, got %d", r.tables.Edges.NumRows())
	}
}

func TestRecorderAddRecordRejectsRightBeyondSequenceLength(t *testing.T) {
	r, err := NewRecorder(1.0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := r.AddIndividual(1, 1.0, NullPopulation, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := r.AddIndividual(2, 0.0, NullPopulation, IsSample); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := r.AddRecord(0.0, 1.5, 1, []int{2}); err == nil || !IsKind(err, KindInvalidEdge) {
		t.Fatalf("expected InvalidEdge for right > sequence_length, got %v", err)
	}
}

func TestRecorderCallAddsUnregisteredChildAndTolerateSecond(t *testing.T) {
	r, err := NewRecorder(1.0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := r.AddIndividual(1, 1.0, NullPopulation, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := r.Call(1, 2, 0.0, 0.5, 0.0, NullPopulation, IsSample); err != nil {
		t.Fatalf("unexpected error on first call: %v", err)
	}
	if err := r.Call(1, 2, 0.5, 1.0, 0.0, NullPopulation, IsSample); err != nil {
		t.Fatalf("unexpected error on second call for already-registered child: %v", err)
	}
	if r.NumNodes() != 2 {
		t.Fatalf("expected 2 nodes, got %d", r.NumNodes())
	}
	if r.tables.Edges.NumRows() != 2 {
		t.Fatalf("expected 2 edges, got %d", r.tables.Edges.NumRows())
	}
}

func TestRecorderAddMutationReusesSiteAtSamePosition(t *testing.T) {
	r, err := NewRecorder(1.0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := r.AddIndividual(1, 0.0, NullPopulation, IsSample); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := r.AddIndividual(2, 0.0, NullPopulation, IsSample); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := r.AddMutation(1, 0.3, "A", "T"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := r.AddMutation(2, 0.3, "A", "G"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.tables.Sites.NumRows() != 1 {
		t.Fatalf("expected 1 site shared by both mutations, got %d", r.tables.Sites.NumRows())
	}
	if r.tables.Mutations.NumRows() != 2 {
		t.Fatalf("expected 2 mutations, got %d", r.tables.Mutations.NumRows())
	}
}

func TestRecorderAddMutationUnknownNode(t *testing.T) {
	r, err := NewRecorder(1.0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := r.AddMutation(1, 0.3, "A", "T"); err == nil || !IsKind(err, KindUnknownID) {
		t.Fatalf("expected UnknownId error, got %v", err)
	}
}

func TestRecorderMarkSamplesClearsPreviousFlags(t *testing.T) {
	r, err := NewRecorder(1.0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := r.AddIndividuals([]int{1, 2, 3}, 0.0, NullPopulation, IsSample); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := r.MarkSamples([]int{2}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := r.SampleInputIDs()
	if len(got) != 1 || got[0] != 2 {
		t.Fatalf("expected only input id 2 marked as sample, got %v", got)
	}
}

func TestRecorderMarkSamplesUnknownID(t *testing.T) {
	r, err := NewRecorder(1.0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := r.MarkSamples([]int{42}); err == nil || !IsKind(err, KindUnknownID) {
		t.Fatalf("expected UnknownId error, got %v", err)
	}
}

func TestNewRecorderMissingSequenceLength(t *testing.T) {
	if _, err := NewRecorder(0); err == nil || !IsKind(err, KindMissingSequenceLength) {
		t.Fatalf("expected MissingSequenceLength error, got %v", err)
	}
}

func TestNewRecorderFromRosterSeedsPopulation(t *testing.T) {
	roster := InitialRoster{InputIDs: []int{1, 2, 3}, Time: 0.0}
	r, err := NewRecorderFromRoster(roster, 1.0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.NumNodes() != 3 {
		t.Fatalf("expected 3 nodes, got %d", r.NumNodes())
	}
}
