package lineage

import "mesh-demo/internal/domain"

// Query helpers the embedding layer composes to drive expand/collapse
// logic. OwnerNode resolves through the adjacency maps; the rest are
// linear scans. None of them has a failure mode beyond "not found"
// returning nil or false.

// OwnerNode returns the node that declares any of the given ports, or nil
// if no node does. Ports in one group belong to one node, so the first hit
// settles it.
func OwnerNode(portIDs []string, m *Maps) *domain.Node {
	for _, id := range portIDs {
		_, nodeID, _, ok := m.Owner(id)
		if !ok {
			continue
		}
		if n, ok := m.Node(nodeID); ok {
			return &n
		}
	}
	return nil
}

// DependentNodeIDs returns the IDs of nodes that consume from the given
// node, i.e. targets of relationships whose source is nodeID.
func DependentNodeIDs(nodeID string, rels []domain.Relationship) []string {
	seen := domain.StringSet{}
	var out []string
	for _, rel := range rels {
		if rel.SourceNodeID == nodeID && rel.TargetNodeID != nodeID && !seen.Has(rel.TargetNodeID) {
			seen.Add(rel.TargetNodeID)
			out = append(out, rel.TargetNodeID)
		}
	}
	return out
}

// DependencyNodeIDs returns the IDs of nodes the given node consumes from,
// i.e. sources of relationships whose target is nodeID.
func DependencyNodeIDs(nodeID string, rels []domain.Relationship) []string {
	seen := domain.StringSet{}
	var out []string
	for _, rel := range rels {
		if rel.TargetNodeID == nodeID && rel.SourceNodeID != nodeID && !seen.Has(rel.SourceNodeID) {
			seen.Add(rel.SourceNodeID)
			out = append(out, rel.SourceNodeID)
		}
	}
	return out
}

// Connected reports whether any relationship joins the two nodes, in
// either direction.
func Connected(nodeA, nodeB string, rels []domain.Relationship) bool {
	for _, rel := range rels {
		if (rel.SourceNodeID == nodeA && rel.TargetNodeID == nodeB) ||
			(rel.SourceNodeID == nodeB && rel.TargetNodeID == nodeA) {
			return true
		}
	}
	return false
}
