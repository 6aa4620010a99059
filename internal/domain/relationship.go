package domain

// RelationshipKind discriminates the two edge variants. Code dispatches on
// the kind explicitly rather than checking which port fields happen to be
// set.
type RelationshipKind string

const (
	// KindDirect is a node-to-node edge with no port detail, used while a
	// node's ports are collapsed.
	KindDirect RelationshipKind = "direct"
	// KindPort is a port-to-port edge between two nodes.
	KindPort RelationshipKind = "port"
)

// Relationship is a directed edge between two data products. For KindPort
// edges the source and target port IDs identify the exact connection; for
// KindDirect edges they are empty.
type Relationship struct {
	ID           string
	Kind         RelationshipKind
	SourceNodeID string
	TargetNodeID string
	SourcePortID string
	TargetPortID string
}

// ColumnRelationship is a directed edge from one column to another,
// implicitly crossing whatever ports those columns belong to. Column
// relationships carry no identifier of their own; the engine derives one
// from list position when it builds its lookups.
type ColumnRelationship struct {
	SourceColumnID string
	TargetColumnID string
}
