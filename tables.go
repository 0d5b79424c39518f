package ftprime

// NullPopulation is the sentinel population value meaning "no
// population assigned".
const NullPopulation int32 = -1

// Node flag bits.
const (
	// IsSample marks a node as a sample: one whose complete history
	// must be preserved by simplify.
	IsSample uint32 = 1 << 0
)

// NodeTable holds one row per chromosome (haploid genome). Row index
// is the node ID. Columns are stored contiguously, matching the
// teacher's preference for plain typed slices over per-row structs
// (see adjacencyMatrix, GenotypeSet in the teacher repository).
type NodeTable struct {
	Flags      []uint32
	Population []int32
	Time       []float64
}

// NumRows returns the number of rows currently stored.
func (t *NodeTable) NumRows() int {
	return len(t.Time)
}

// AppendRow appends a single node row, validating column-level domain
// constraints. Returns the new row's node ID.
func (t *NodeTable) AppendRow(flags uint32, population int32, time float64) (int, error) {
	if time < 0 {
		return 0, errInvalidRow("negative time")
	}
	t.Flags = append(t.Flags, flags)
	t.Population = append(t.Population, population)
	t.Time = append(t.Time, time)
	return len(t.Time) - 1, nil
}

// AppendColumns appends the given columns in bulk. All three slices
// must have equal length.
func (t *NodeTable) AppendColumns(flags []uint32, population []int32, time []float64) error {
	if len(flags) != len(population) || len(flags) != len(time) {
		return errInvalidRow("unequal column lengths in AppendColumns")
	}
	for _, tm := range time {
		if tm < 0 {
			return errInvalidRow("negative time")
		}
	}
	t.Flags = append(t.Flags, flags...)
	t.Population = append(t.Population, population...)
	t.Time = append(t.Time, time...)
	return nil
}

// SetColumns bulk-replaces the table's contents. The new columns need
// not have the same length as the old ones.
func (t *NodeTable) SetColumns(flags []uint32, population []int32, time []float64) error {
	if len(flags) != len(population) || len(flags) != len(time) {
		return errInvalidRow("unequal column lengths in SetColumns")
	}
	t.Flags = flags
	t.Population = population
	t.Time = time
	return nil
}

// Reset empties the table.
func (t *NodeTable) Reset() {
	t.Flags = nil
	t.Population = nil
	t.Time = nil
}

// EdgeTable holds one row per half-open genomic inheritance interval.
type EdgeTable struct {
	Left, Right   []float64
	Parent, Child []int32
}

// NumRows returns the number of rows currently stored.
func (t *EdgeTable) NumRows() int {
	return len(t.Left)
}

// AppendRow appends a single edge row. This is a last-resort,
// column-level sanity check (left >= 0, left < right); the fuller
// InvalidEdge semantics (sequence_length bound, parent/child time
// ordering) are the caller's responsibility (Recorder.AddRecord,
// Simplify), per the specification's error taxonomy.
func (t *EdgeTable) AppendRow(left, right float64, parent, child int32) error {
	if left < 0 || left >= right {
		return errInvalidRow("left < 0 or left >= right")
	}
	t.Left = append(t.Left, left)
	t.Right = append(t.Right, right)
	t.Parent = append(t.Parent, parent)
	t.Child = append(t.Child, child)
	return nil
}

// AppendColumns appends the given columns in bulk.
func (t *EdgeTable) AppendColumns(left, right []float64, parent, child []int32) error {
	if len(left) != len(right) || len(left) != len(parent) || len(left) != len(child) {
		return errInvalidRow("unequal column lengths in AppendColumns")
	}
	t.Left = append(t.Left, left...)
	t.Right = append(t.Right, right...)
	t.Parent = append(t.Parent, parent...)
	t.Child = append(t.Child, child...)
	return nil
}

// SetColumns bulk-replaces the table's contents.
func (t *EdgeTable) SetColumns(left, right []float64, parent, child []int32) error {
	if len(left) != len(right) || len(left) != len(parent) || len(left) != len(child) {
		return errInvalidRow("unequal column lengths in SetColumns")
	}
	t.Left, t.Right, t.Parent, t.Child = left, right, parent, child
	return nil
}

// Reset empties the table.
func (t *EdgeTable) Reset() {
	t.Left, t.Right, t.Parent, t.Child = nil, nil, nil, nil
}

// SiteTable holds one row per chromosomal position carrying at least
// one mutation.
type SiteTable struct {
	Position       []float64
	AncestralState []string
}

// NumRows returns the number of rows currently stored.
func (t *SiteTable) NumRows() int {
	return len(t.Position)
}

// AppendRow appends a single site row. Returns the new row's index.
// Uniqueness of Position is enforced by the caller's site_positions
// side map (spec section 3), not by the table itself.
func (t *SiteTable) AppendRow(position float64, ancestralState string) (int, error) {
	t.Position = append(t.Position, position)
	t.AncestralState = append(t.AncestralState, ancestralState)
	return len(t.Position) - 1, nil
}

// SetColumns bulk-replaces the table's contents.
func (t *SiteTable) SetColumns(position []float64, ancestralState []string) error {
	if len(position) != len(ancestralState) {
		return errInvalidRow("unequal column lengths in SetColumns")
	}
	t.Position, t.AncestralState = position, ancestralState
	return nil
}

// Reset empties the table.
func (t *SiteTable) Reset() {
	t.Position, t.AncestralState = nil, nil
}

// MutationTable holds one row per mutation: the site it occurs at,
// the node carrying the derived allele, and the derived state.
type MutationTable struct {
	Site         []int32
	Node         []int32
	DerivedState []string
}

// NumRows returns the number of rows currently stored.
func (t *MutationTable) NumRows() int {
	return len(t.Site)
}

// AppendRow appends a single mutation row.
func (t *MutationTable) AppendRow(site, node int32, derivedState string) error {
	t.Site = append(t.Site, site)
	t.Node = append(t.Node, node)
	t.DerivedState = append(t.DerivedState, derivedState)
	return nil
}

// SetColumns bulk-replaces the table's contents.
func (t *MutationTable) SetColumns(site, node []int32, derivedState []string) error {
	if len(site) != len(node) || len(site) != len(derivedState) {
		return errInvalidRow("unequal column lengths in SetColumns")
	}
	t.Site, t.Node, t.DerivedState = site, node, derivedState
	return nil
}

// Reset empties the table.
func (t *MutationTable) Reset() {
	t.Site, t.Node, t.DerivedState = nil, nil, nil
}

// TableCollection bundles the four tables that make up a recorded
// genealogy, together with the sequence length they are defined over.
type TableCollection struct {
	Nodes     NodeTable
	Edges     EdgeTable
	Sites     SiteTable
	Mutations MutationTable

	SequenceLength float64
}

// Reset empties all four tables, leaving SequenceLength untouched.
func (tc *TableCollection) Reset() {
	tc.Nodes.Reset()
	tc.Edges.Reset()
	tc.Sites.Reset()
	tc.Mutations.Reset()
}
