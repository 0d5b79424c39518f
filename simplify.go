package ftprime

import (
	"math"
	"sort"
)

// ancestrySeg records that, over [left, right), a node's genome maps
// forward into the simplified output as node id "to" -- either its own
// freshly assigned output id (it was retained) or, for a node that
// turned out to be a unary pass-through, the id of the single
// descendant it forwards to transparently.
type ancestrySeg struct {
	left, right float64
	to          int32
}

// sortEdgeTable stably sorts an edge table ascending by
// (time of parent, parent, child, left), the ordering Simplify
// requires of its input and restores on its output.
func sortEdgeTable(edges *EdgeTable, nodeTime []float64) {
	n := edges.NumRows()
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		ia, ib := idx[a], idx[b]
		ta, tb := nodeTime[edges.Parent[ia]], nodeTime[edges.Parent[ib]]
		if ta != tb {
			return ta < tb
		}
		if edges.Parent[ia] != edges.Parent[ib] {
			return edges.Parent[ia] < edges.Parent[ib]
		}
		if edges.Child[ia] != edges.Child[ib] {
			return edges.Child[ia] < edges.Child[ib]
		}
		return edges.Left[ia] < edges.Left[ib]
	})
	left := make([]float64, n)
	right := make([]float64, n)
	parent := make([]int32, n)
	child := make([]int32, n)
	for newPos, oldPos := range idx {
		left[newPos] = edges.Left[oldPos]
		right[newPos] = edges.Right[oldPos]
		parent[newPos] = edges.Parent[oldPos]
		child[newPos] = edges.Child[oldPos]
	}
	edges.Left, edges.Right, edges.Parent, edges.Child = left, right, parent, child
}

// findCovering returns the "to" id of the ancestry segment in segs
// that covers position, if any.
func findCovering(segs []ancestrySeg, position float64) (int32, bool) {
	for _, s := range segs {
		if s.left <= position && position < s.right {
			return s.to, true
		}
	}
	return 0, false
}

// coalesceAncestry merges adjacent ancestrySeg entries that map to the
// same output node, keeping a propagated list in canonical form.
func coalesceAncestry(segs []ancestrySeg) []ancestrySeg {
	if len(segs) == 0 {
		return segs
	}
	sort.SliceStable(segs, func(i, j int) bool { return segs[i].left < segs[j].left })
	out := make([]ancestrySeg, 0, len(segs))
	cur := segs[0]
	for _, s := range segs[1:] {
		if cur.right == s.left && cur.to == s.to {
			cur.right = s.right
			continue
		}
		out = append(out, cur)
		cur = s
	}
	out = append(out, cur)
	return out
}

// Simplify reduces tables (which must already have reconciled,
// reverse-time node times and edges sorted by sortEdgeTable) to the
// minimal genealogy explaining samples, following the ancestry-segment
// algorithm of msprime's published simplify ("Algorithm S"): process
// parents in ascending time order, track each node's surviving
// ancestry as a set of (interval, output-node) segments, and
// materialize a new output node for a parent only where the decision is
// warranted: a requested sample materializes across every interval
// unconditionally, while an ordinary parent materializes only those
// maximal sub-intervals where two or more children genuinely coalesce,
// forwarding any purely unary sub-interval's single child mapping
// transparently. The two kinds of interval can coexist within one
// parent's span.
//
// It returns the simplified TableCollection and a map from surviving
// original node ids to their new, dense node ids.
func Simplify(tables TableCollection, samples []int32) (TableCollection, map[int32]int32, error) {
	L := tables.SequenceLength

	sampleSet := make(map[int32]bool, len(samples))
	for _, s := range samples {
		sampleSet[s] = true
	}

	for k := 0; k < tables.Edges.NumRows(); k++ {
		left, right := tables.Edges.Left[k], tables.Edges.Right[k]
		parent, child := tables.Edges.Parent[k], tables.Edges.Child[k]
		if left < 0 || left >= right || right > L {
			return TableCollection{}, nil, errInvalidEdge(left, right, int(parent), int(child), "interval out of bounds")
		}
		if tables.Nodes.Time[parent] <= tables.Nodes.Time[child] {
			return TableCollection{}, nil, errInvalidEdge(left, right, int(parent), int(child), "parent time does not exceed child time")
		}
	}

	A := make(map[int32][]ancestrySeg)
	oldToNew := make(map[int32]int32, len(samples))

	var outNodes NodeTable
	for i, s := range samples {
		newID := int32(i)
		oldToNew[s] = newID
		A[s] = []ancestrySeg{{0, L, newID}}
		if _, err := outNodes.AppendRow(tables.Nodes.Flags[s]|IsSample, tables.Nodes.Population[s], tables.Nodes.Time[s]); err != nil {
			return TableCollection{}, nil, err
		}
	}
	nextID := int32(len(samples))

	var outEdges EdgeTable

	edges := tables.Edges
	n := edges.NumRows()
	i := 0
	for i < n {
		parent := edges.Parent[i]
		j := i
		for j < n && edges.Parent[j] == parent {
			j++
		}

		var parentSegs []Segment
		for k := i; k < j; k++ {
			child := edges.Child[k]
			left, right := edges.Left[k], edges.Right[k]
			for _, cs := range A[child] {
				ovLeft := math.Max(left, cs.left)
				ovRight := math.Min(right, cs.right)
				if ovLeft >= ovRight {
					continue
				}
				var err error
				parentSegs, err = MergeSegment(parentSegs, ovLeft, ovRight, 0, []int32{cs.to})
				if err != nil {
					return TableCollection{}, nil, err
				}
			}
		}

		if len(parentSegs) > 0 {
			isSample := sampleSet[parent]

			// A sample's own node identity must persist everywhere,
			// regardless of coalescence, so it needs an output node
			// even where every one of its segments is unary. An
			// ordinary parent needs one only if some segment
			// genuinely coalesces two or more children; the node, if
			// created, is shared by every segment that materializes,
			// but each segment still decides independently whether
			// it materializes or forwards unchanged.
			needsNode := isSample
			if !needsNode {
				for _, seg := range parentSegs {
					if len(seg.Children) >= 2 {
						needsNode = true
						break
					}
				}
			}

			var newID int32
			if needsNode {
				if isSample {
					newID = oldToNew[parent]
				} else {
					newID = nextID
					nextID++
					if _, err := outNodes.AppendRow(tables.Nodes.Flags[parent], tables.Nodes.Population[parent], tables.Nodes.Time[parent]); err != nil {
						return TableCollection{}, nil, err
					}
					oldToNew[parent] = newID
				}
			}

			propagated := make([]ancestrySeg, 0, len(parentSegs))
			for _, seg := range parentSegs {
				materializeSeg := isSample || len(seg.Children) >= 2
				if materializeSeg {
					for _, c := range seg.Children {
						if err := outEdges.AppendRow(seg.Left, seg.Right, newID, c); err != nil {
							return TableCollection{}, nil, err
						}
					}
					propagated = append(propagated, ancestrySeg{seg.Left, seg.Right, newID})
				} else {
					propagated = append(propagated, ancestrySeg{seg.Left, seg.Right, seg.Children[0]})
				}
			}
			if isSample {
				// A sample keeps its own [0, L) segment: it maps to
				// itself everywhere, not only where it has descendants.
				A[parent] = []ancestrySeg{{0, L, newID}}
			} else {
				A[parent] = coalesceAncestry(propagated)
			}
		}

		i = j
	}

	sortEdgeTable(&outEdges, outNodes.Time)

	type survivor struct {
		origSite int32
		node     int32
		derived  string
		time     float64
	}
	survivors := make([]survivor, 0)
	siteHasSurvivor := make(map[int32]bool)
	for m := 0; m < tables.Mutations.NumRows(); m++ {
		origSite := tables.Mutations.Site[m]
		origNode := tables.Mutations.Node[m]
		pos := tables.Sites.Position[origSite]
		newNode, ok := findCovering(A[origNode], pos)
		if !ok {
			continue
		}
		survivors = append(survivors, survivor{
			origSite: origSite,
			node:     newNode,
			derived:  tables.Mutations.DerivedState[m],
			time:     outNodes.Time[newNode],
		})
		siteHasSurvivor[origSite] = true
	}

	var outSites SiteTable
	siteRemap := make(map[int32]int32)
	for origSite := 0; origSite < tables.Sites.NumRows(); origSite++ {
		if !siteHasSurvivor[int32(origSite)] {
			continue
		}
		idx, err := outSites.AppendRow(tables.Sites.Position[origSite], tables.Sites.AncestralState[origSite])
		if err != nil {
			return TableCollection{}, nil, err
		}
		siteRemap[int32(origSite)] = int32(idx)
	}

	bucket := make(map[int32][]survivor)
	for _, sv := range survivors {
		bucket[sv.origSite] = append(bucket[sv.origSite], sv)
	}

	var outMutations MutationTable
	for origSite := 0; origSite < tables.Sites.NumRows(); origSite++ {
		bucketed, ok := bucket[int32(origSite)]
		if !ok {
			continue
		}
		sort.SliceStable(bucketed, func(a, b int) bool { return bucketed[a].time > bucketed[b].time })
		newSite := siteRemap[int32(origSite)]
		for _, sv := range bucketed {
			if err := outMutations.AppendRow(newSite, sv.node, sv.derived); err != nil {
				return TableCollection{}, nil, err
			}
		}
	}

	result := TableCollection{
		Nodes:          outNodes,
		Edges:          outEdges,
		Sites:          outSites,
		Mutations:      outMutations,
		SequenceLength: L,
	}
	return result, oldToNew, nil
}
