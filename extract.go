package ftprime

import (
	"time"

	"github.com/pkg/errors"
)

// TreeSequence returns a simplified copy of the recorded genealogy
// without disturbing the recorder's own state, mirroring
// argrecorder.py.tree_sequence. If sampleInputIDs is non-nil it is
// bound as the sample set for this call only; otherwise the
// recorder's currently marked samples are used.
func (r *Recorder) TreeSequence(sampleInputIDs []int) (TableCollection, error) {
	sortStart := time.Now()

	working := copyTables(r.tables)

	times := append([]float64{}, r.tables.Nodes.Time...)
	reconciler := r.times
	reconciler.reconcile(times)
	working.Nodes.Time = times
	sortEdgeTable(&working.Edges, times)
	r.Timings.AddSorting(time.Since(sortStart))

	var samples []int32
	if sampleInputIDs != nil {
		samples = make([]int32, len(sampleInputIDs))
		for i, inputID := range sampleInputIDs {
			nodeID, err := r.ids.lookup(inputID)
			if err != nil {
				return TableCollection{}, errors.Wrapf(err, "TreeSequence sample %d", inputID)
			}
			samples[i] = nodeID
		}
		for i := range working.Nodes.Flags {
			working.Nodes.Flags[i] &^= IsSample
		}
		for _, s := range samples {
			working.Nodes.Flags[s] |= IsSample
		}
	} else {
		samples = r.sampleNodeIDsIn(working.Nodes.Flags)
	}

	simplifyStart := time.Now()
	result, _, err := Simplify(working, samples)
	r.Timings.AddSimplifying(time.Since(simplifyStart))
	if err != nil {
		return TableCollection{}, errors.Wrap(err, "TreeSequence")
	}
	return result, nil
}

// copyTables returns a deep copy of a TableCollection's column slices,
// so mutating the copy (as TreeSequence does, via Simplify) cannot
// reach back into the original.
func copyTables(tc TableCollection) TableCollection {
	var out TableCollection
	out.SequenceLength = tc.SequenceLength
	out.Nodes.Flags = append([]uint32{}, tc.Nodes.Flags...)
	out.Nodes.Population = append([]int32{}, tc.Nodes.Population...)
	out.Nodes.Time = append([]float64{}, tc.Nodes.Time...)
	out.Edges.Left = append([]float64{}, tc.Edges.Left...)
	out.Edges.Right = append([]float64{}, tc.Edges.Right...)
	out.Edges.Parent = append([]int32{}, tc.Edges.Parent...)
	out.Edges.Child = append([]int32{}, tc.Edges.Child...)
	out.Sites.Position = append([]float64{}, tc.Sites.Position...)
	out.Sites.AncestralState = append([]string{}, tc.Sites.AncestralState...)
	out.Mutations.Site = append([]int32{}, tc.Mutations.Site...)
	out.Mutations.Node = append([]int32{}, tc.Mutations.Node...)
	out.Mutations.DerivedState = append([]string{}, tc.Mutations.DerivedState...)
	return out
}
