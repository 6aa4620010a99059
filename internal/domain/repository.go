package domain

import "context"

// GraphSnapshot is one consistent read of the whole lineage graph. Version
// increases on every write, so callers can tell whether maps or cached
// results built from an earlier snapshot are still valid.
type GraphSnapshot struct {
	Version             int64
	Nodes               []Node
	Relationships       []Relationship
	ColumnRelationships []ColumnRelationship
}

// GraphRepository is the persistence boundary for the lineage graph.
type GraphRepository interface {
	// CreateNode stores a node together with its ports, related-port
	// declarations, and columns.
	CreateNode(ctx context.Context, node *Node) error
	// GetNode returns a node with its full port and column detail.
	GetNode(ctx context.Context, nodeID string) (*Node, error)
	// ListNodes returns a page of nodes plus the total count.
	ListNodes(ctx context.Context, page PageRequest) ([]Node, int64, error)
	// DeleteNode removes a node and everything declared on it.
	DeleteNode(ctx context.Context, nodeID string) error

	// CreateRelationship stores a node- or port-level relationship.
	CreateRelationship(ctx context.Context, rel *Relationship) error
	// ListRelationships returns a page of relationships plus the total count.
	ListRelationships(ctx context.Context, page PageRequest) ([]Relationship, int64, error)
	// DeleteRelationship removes a relationship by ID.
	DeleteRelationship(ctx context.Context, id string) error

	// ReplaceColumnRelationships replaces the stored column-relationship
	// list. Order is preserved; the engine derives column-edge IDs from it.
	ReplaceColumnRelationships(ctx context.Context, rels []ColumnRelationship) error

	// Snapshot reads the whole graph at its current version.
	Snapshot(ctx context.Context) (*GraphSnapshot, error)
	// Version returns the current graph version without loading the graph.
	Version(ctx context.Context) (int64, error)
}
