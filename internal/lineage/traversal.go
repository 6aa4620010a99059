package lineage

import "mesh-demo/internal/domain"

// Direction selects which way a traversal walks the graph.
type Direction string

const (
	// DirUpstream walks backward toward data sources.
	DirUpstream Direction = "upstream"
	// DirDownstream walks forward toward data consumers.
	DirDownstream Direction = "downstream"
)

// Upstream walks from startPortID toward data sources and returns every
// node, relationship, and port touched on the way.
func Upstream(startPortID string, m *Maps) domain.LineageResult {
	res := domain.NewLineageResult()
	m.traversePort(startPortID, DirUpstream, map[string]bool{}, &res)
	return res
}

// Downstream walks from startPortID toward data consumers.
func Downstream(startPortID string, m *Maps) domain.LineageResult {
	res := domain.NewLineageResult()
	m.traversePort(startPortID, DirDownstream, map[string]bool{}, &res)
	return res
}

// traversePort is the depth-first walk. The visited set is the only guard
// against cycles, both in relationship graphs and in related-port
// declarations, so marking must happen before any recursion.
//
// The two steps below are mutually exclusive per direction and port type.
// An output port reached going upstream follows its related-port
// declarations (the inputs that produced it) and nothing else; reached
// going downstream it follows its outgoing relationships and nothing else.
// Inputs mirror that: related ports only going downstream, incoming
// relationships only going upstream. This asymmetry is what threads the
// walk alternately through the inside of a node and across nodes.
func (m *Maps) traversePort(portID string, dir Direction, visited map[string]bool, res *domain.LineageResult) {
	if visited[portID] {
		return
	}
	visited[portID] = true
	res.PortIDs.Add(portID)

	owner, ok := m.portOwners[portID]
	if !ok {
		// Dangling reference: the relationship list mentions a port no node
		// declares. The branch just ends here.
		return
	}
	res.NodeIDs.Add(owner.nodeID)

	// Intra-node step: hop to the ports on the same node this port
	// transforms into/from.
	if (dir == DirUpstream && owner.direction == domain.PortOutput) ||
		(dir == DirDownstream && owner.direction == domain.PortInput) {
		for _, relatedID := range owner.port.RelatedPortIDs {
			m.traversePort(relatedID, dir, visited, res)
		}
		return
	}

	// Cross-node step: follow port relationships out of this node.
	switch {
	case dir == DirUpstream && owner.direction == domain.PortInput:
		for _, rel := range m.portEdges[portID] {
			if rel.TargetPortID == portID {
				res.EdgeIDs.Add(rel.ID)
				m.traversePort(rel.SourcePortID, dir, visited, res)
			}
		}
	case dir == DirDownstream && owner.direction == domain.PortOutput:
		for _, rel := range m.portEdges[portID] {
			if rel.SourcePortID == portID {
				res.EdgeIDs.Add(rel.ID)
				m.traversePort(rel.TargetPortID, dir, visited, res)
			}
		}
	}
}

// ColumnUpstream walks from startColumnID toward source columns.
func ColumnUpstream(startColumnID string, m *ColumnMaps) domain.ColumnLineageResult {
	res := domain.NewColumnLineageResult()
	m.traverseColumn(startColumnID, DirUpstream, map[string]bool{}, &res)
	return res
}

// ColumnDownstream walks from startColumnID toward consuming columns.
func ColumnDownstream(startColumnID string, m *ColumnMaps) domain.ColumnLineageResult {
	res := domain.NewColumnLineageResult()
	m.traverseColumn(startColumnID, DirDownstream, map[string]bool{}, &res)
	return res
}

// traverseColumn is the flattened mirror of traversePort: no node concept
// and no intra-node hop. A column follows edges where it is the target
// going upstream and edges where it is the source going downstream.
func (m *ColumnMaps) traverseColumn(columnID string, dir Direction, visited map[string]bool, res *domain.ColumnLineageResult) {
	if visited[columnID] {
		return
	}
	visited[columnID] = true
	res.ColumnIDs.Add(columnID)

	portID, ok := m.columnOwners[columnID]
	if !ok {
		return
	}
	res.PortIDs.Add(portID)

	for _, edge := range m.columnEdges[columnID] {
		switch {
		case dir == DirUpstream && edge.rel.TargetColumnID == columnID:
			res.EdgeIDs.Add(edge.id)
			m.traverseColumn(edge.rel.SourceColumnID, dir, visited, res)
		case dir == DirDownstream && edge.rel.SourceColumnID == columnID:
			res.EdgeIDs.Add(edge.id)
			m.traverseColumn(edge.rel.TargetColumnID, dir, visited, res)
		}
	}
}
