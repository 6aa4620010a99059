// Package lineage computes upstream/downstream lineage over a data-product
// graph at node, port, and column granularity. It is a pure in-memory
// library: no I/O, no locking, and every top-level call builds its own
// lookups and visited set, so concurrent calls never share mutable state.
package lineage

import (
	"fmt"

	"mesh-demo/internal/domain"
)

// portOwner records which node declares a port and in which of its lists.
// The port itself is kept alongside so the traversal can reach its
// related-port declarations without re-scanning the node.
type portOwner struct {
	nodeID    string
	direction domain.PortDirection
	port      domain.Port
}

// Maps holds the adjacency lookups for one traversal pass. Construction is
// O(relationships + ports); every traversal step afterwards is O(1) lookup
// plus the size of the edge list on the current port.
type Maps struct {
	portOwners map[string]portOwner
	portEdges  map[string][]domain.Relationship
	nodeEdges  map[string][]domain.Relationship
	nodes      map[string]domain.Node
}

// BuildMaps indexes a flat relationship list and node list for traversal.
// Malformed input never fails: relationships that reference ports absent
// from every node simply produce no traversal edge, because the owner
// lookup comes back empty for them.
func BuildMaps(rels []domain.Relationship, nodes []domain.Node) *Maps {
	m := &Maps{
		portOwners: make(map[string]portOwner),
		portEdges:  make(map[string][]domain.Relationship),
		nodeEdges:  make(map[string][]domain.Relationship),
		nodes:      make(map[string]domain.Node, len(nodes)),
	}

	for _, node := range nodes {
		m.nodes[node.ID] = node
		for _, p := range node.InputPorts {
			m.portOwners[p.ID] = portOwner{nodeID: node.ID, direction: domain.PortInput, port: p}
		}
		for _, p := range node.OutputPorts {
			m.portOwners[p.ID] = portOwner{nodeID: node.ID, direction: domain.PortOutput, port: p}
		}
	}

	for _, rel := range rels {
		switch rel.Kind {
		case domain.KindPort:
			// Registered under both endpoints so a traversal starting from
			// either side finds the edge in one lookup.
			m.portEdges[rel.SourcePortID] = append(m.portEdges[rel.SourcePortID], rel)
			if rel.TargetPortID != rel.SourcePortID {
				m.portEdges[rel.TargetPortID] = append(m.portEdges[rel.TargetPortID], rel)
			}
		case domain.KindDirect:
			m.nodeEdges[rel.SourceNodeID] = append(m.nodeEdges[rel.SourceNodeID], rel)
			if rel.TargetNodeID != rel.SourceNodeID {
				m.nodeEdges[rel.TargetNodeID] = append(m.nodeEdges[rel.TargetNodeID], rel)
			}
		}
	}

	return m
}

// Node returns the indexed node record for an ID.
func (m *Maps) Node(nodeID string) (domain.Node, bool) {
	n, ok := m.nodes[nodeID]
	return n, ok
}

// Owner returns the port record with its owning node ID and direction, or
// ok=false for a port no node declares.
func (m *Maps) Owner(portID string) (port domain.Port, nodeID string, dir domain.PortDirection, ok bool) {
	o, ok := m.portOwners[portID]
	if !ok {
		return domain.Port{}, "", "", false
	}
	return o.port, o.nodeID, o.direction, true
}

// columnEdge is a column relationship plus its derived identifier.
type columnEdge struct {
	id  string
	rel domain.ColumnRelationship
}

// ColumnMaps holds the adjacency lookups for one column traversal pass,
// restricted to the ports in the supplied scope.
type ColumnMaps struct {
	columnOwners map[string]string // column ID -> owning port ID
	columnEdges  map[string][]columnEdge
}

// columnEdgeID derives a stable identifier for the i-th column relationship
// in the list. The ID only holds for the ordering it was built from; it is
// not persisted and must not be compared across rebuilds with a different
// ordering.
func columnEdgeID(i int) string {
	return fmt.Sprintf("colrel-%d", i)
}

// BuildColumnMaps indexes a column-relationship list against the ports in
// scope. Columns on ports outside the scope are invisible: edges touching
// them still get registered, but traversal stops where the owner lookup
// fails.
func BuildColumnMaps(rels []domain.ColumnRelationship, scope domain.PortScope) *ColumnMaps {
	m := &ColumnMaps{
		columnOwners: make(map[string]string),
		columnEdges:  make(map[string][]columnEdge),
	}

	for _, port := range scope.All() {
		for _, col := range port.Columns {
			m.columnOwners[col.ID] = port.ID
		}
	}

	for i, rel := range rels {
		edge := columnEdge{id: columnEdgeID(i), rel: rel}
		m.columnEdges[rel.SourceColumnID] = append(m.columnEdges[rel.SourceColumnID], edge)
		if rel.TargetColumnID != rel.SourceColumnID {
			m.columnEdges[rel.TargetColumnID] = append(m.columnEdges[rel.TargetColumnID], edge)
		}
	}

	return m
}
