package lineage

import "mesh-demo/internal/domain"

// ForPort computes the complete lineage of one port: adjacency maps are
// built once, the upstream and downstream walks run independently from the
// same start, and their sets are unioned into the combined view. The start
// port is always part of the result, even with no neighbors at all.
//
// An empty startPortID is the deselection case and returns the all-empty
// sentinel rather than an error.
func ForPort(startPortID string, rels []domain.Relationship, nodes []domain.Node) domain.CompleteLineage {
	if startPortID == "" {
		return domain.EmptyCompleteLineage()
	}

	m := BuildMaps(rels, nodes)
	return ForPortWithMaps(startPortID, m)
}

// ForPortWithMaps is ForPort against pre-built maps, for callers that keep
// the maps warm across selections.
func ForPortWithMaps(startPortID string, m *Maps) domain.CompleteLineage {
	if startPortID == "" {
		return domain.EmptyCompleteLineage()
	}

	up := Upstream(startPortID, m)
	down := Downstream(startPortID, m)
	return domain.CompleteLineage{
		LineageResult: up.Union(down),
		Upstream:      up,
		Downstream:    down,
	}
}

// ForNode computes collapsed-node lineage: an undirected flood fill over
// direct relationships only, with no port detail. The result carries nodes
// and edges; collapsed nodes have no visible ports.
func ForNode(startNodeID string, rels []domain.Relationship, nodes []domain.Node) domain.NodeLineageResult {
	res := domain.NewNodeLineageResult()
	if startNodeID == "" {
		return res
	}

	m := BuildMaps(rels, nodes)
	m.floodNodes(startNodeID, map[string]bool{}, &res)
	return res
}

func (m *Maps) floodNodes(nodeID string, visited map[string]bool, res *domain.NodeLineageResult) {
	if visited[nodeID] {
		return
	}
	visited[nodeID] = true
	res.NodeIDs.Add(nodeID)

	for _, rel := range m.nodeEdges[nodeID] {
		res.EdgeIDs.Add(rel.ID)
		m.floodNodes(rel.SourceNodeID, visited, res)
		m.floodNodes(rel.TargetNodeID, visited, res)
	}
}

// ForColumn computes the complete column lineage of one column within the
// given port scope. Same shape as ForPort: empty start returns the empty
// sentinel, the start column is always included, halves are preserved.
func ForColumn(startColumnID string, rels []domain.ColumnRelationship, scope domain.PortScope) domain.CompleteColumnLineage {
	if startColumnID == "" {
		return domain.EmptyCompleteColumnLineage()
	}

	m := BuildColumnMaps(rels, scope)
	up := ColumnUpstream(startColumnID, m)
	down := ColumnDownstream(startColumnID, m)
	return domain.CompleteColumnLineage{
		ColumnLineageResult: up.Union(down),
		Upstream:            up,
		Downstream:          down,
	}
}
