package domain

// LineageResult is the output of one directional traversal: the nodes,
// relationship IDs, and ports touched while walking from a starting port.
// Results are disposable — recomputed on every selection change, never
// persisted.
type LineageResult struct {
	NodeIDs StringSet `json:"nodeIds"`
	EdgeIDs StringSet `json:"edgeIds"`
	PortIDs StringSet `json:"portIds"`
}

// NewLineageResult returns an empty result with all sets initialised.
func NewLineageResult() LineageResult {
	return LineageResult{
		NodeIDs: StringSet{},
		EdgeIDs: StringSet{},
		PortIDs: StringSet{},
	}
}

// Union returns a new result containing the members of both r and other.
func (r LineageResult) Union(other LineageResult) LineageResult {
	out := NewLineageResult()
	out.NodeIDs.AddAll(r.NodeIDs)
	out.NodeIDs.AddAll(other.NodeIDs)
	out.EdgeIDs.AddAll(r.EdgeIDs)
	out.EdgeIDs.AddAll(other.EdgeIDs)
	out.PortIDs.AddAll(r.PortIDs)
	out.PortIDs.AddAll(other.PortIDs)
	return out
}

// CompleteLineage combines the upstream and downstream traversals from one
// starting port. The embedded LineageResult holds the union; the halves are
// kept because callers weight ancestors and descendants differently.
type CompleteLineage struct {
	LineageResult
	Upstream   LineageResult `json:"upstream"`
	Downstream LineageResult `json:"downstream"`
}

// EmptyCompleteLineage is the deselection sentinel: every set present and
// empty. Returned when no starting port is selected.
func EmptyCompleteLineage() CompleteLineage {
	return CompleteLineage{
		LineageResult: NewLineageResult(),
		Upstream:      NewLineageResult(),
		Downstream:    NewLineageResult(),
	}
}

// NodeLineageResult is the simplified lineage used when a node is collapsed
// and no port detail exists: only nodes and direct-relationship edges, no
// port set.
type NodeLineageResult struct {
	NodeIDs StringSet `json:"nodeIds"`
	EdgeIDs StringSet `json:"edgeIds"`
}

// NewNodeLineageResult returns an empty node-level result.
func NewNodeLineageResult() NodeLineageResult {
	return NodeLineageResult{NodeIDs: StringSet{}, EdgeIDs: StringSet{}}
}

// ColumnLineageResult is the column-granularity analogue of LineageResult:
// touched columns, derived column-edge IDs, and the ports owning the
// touched columns.
type ColumnLineageResult struct {
	ColumnIDs StringSet `json:"columnIds"`
	EdgeIDs   StringSet `json:"edgeIds"`
	PortIDs   StringSet `json:"portIds"`
}

// NewColumnLineageResult returns an empty result with all sets initialised.
func NewColumnLineageResult() ColumnLineageResult {
	return ColumnLineageResult{
		ColumnIDs: StringSet{},
		EdgeIDs:   StringSet{},
		PortIDs:   StringSet{},
	}
}

// Union returns a new result containing the members of both r and other.
func (r ColumnLineageResult) Union(other ColumnLineageResult) ColumnLineageResult {
	out := NewColumnLineageResult()
	out.ColumnIDs.AddAll(r.ColumnIDs)
	out.ColumnIDs.AddAll(other.ColumnIDs)
	out.EdgeIDs.AddAll(r.EdgeIDs)
	out.EdgeIDs.AddAll(other.EdgeIDs)
	out.PortIDs.AddAll(r.PortIDs)
	out.PortIDs.AddAll(other.PortIDs)
	return out
}

// CompleteColumnLineage combines the upstream and downstream column
// traversals from one starting column.
type CompleteColumnLineage struct {
	ColumnLineageResult
	Upstream   ColumnLineageResult `json:"upstream"`
	Downstream ColumnLineageResult `json:"downstream"`
}

// EmptyCompleteColumnLineage is the deselection sentinel for column lineage.
func EmptyCompleteColumnLineage() CompleteColumnLineage {
	return CompleteColumnLineage{
		ColumnLineageResult: NewColumnLineageResult(),
		Upstream:            NewColumnLineageResult(),
		Downstream:          NewColumnLineageResult(),
	}
}

// PortScope is the slice of the graph a column traversal runs over: the
// selected port plus the ports found upstream and downstream of it. Column
// lookups are restricted to exactly these ports.
type PortScope struct {
	Selected   Port
	Upstream   []Port
	Downstream []Port
}

// All returns every port in the scope, selected port first.
func (s PortScope) All() []Port {
	out := make([]Port, 0, 1+len(s.Upstream)+len(s.Downstream))
	out = append(out, s.Selected)
	out = append(out, s.Upstream...)
	out = append(out, s.Downstream...)
	return out
}
