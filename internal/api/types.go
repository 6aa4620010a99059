package api

import "mesh-demo/internal/domain"

// API payload shapes. Domain types stay tag-free; these are the wire
// representations.

// ColumnPayload mirrors domain.Column.
type ColumnPayload struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	DataType    string `json:"dataType"`
	Nullable    bool   `json:"nullable"`
	PrimaryKey  bool   `json:"primaryKey"`
	Description string `json:"description,omitempty"`
}

// PortPayload mirrors domain.Port.
type PortPayload struct {
	ID             string          `json:"id"`
	Label          string          `json:"label"`
	RelatedPortIDs []string        `json:"relatedPortIds,omitempty"`
	Columns        []ColumnPayload `json:"columns,omitempty"`
}

// NodePayload mirrors domain.Node.
type NodePayload struct {
	ID          string        `json:"id"`
	Label       string        `json:"label"`
	InputPorts  []PortPayload `json:"inputPorts,omitempty"`
	OutputPorts []PortPayload `json:"outputPorts,omitempty"`
}

// RelationshipPayload mirrors domain.Relationship.
type RelationshipPayload struct {
	ID           string `json:"id,omitempty"`
	Kind         string `json:"kind"`
	SourceNodeID string `json:"sourceNodeId"`
	TargetNodeID string `json:"targetNodeId"`
	SourcePortID string `json:"sourcePortId,omitempty"`
	TargetPortID string `json:"targetPortId,omitempty"`
}

// ColumnRelationshipPayload mirrors domain.ColumnRelationship.
type ColumnRelationshipPayload struct {
	SourceColumnID string `json:"sourceColumnId"`
	TargetColumnID string `json:"targetColumnId"`
}

// NodeListResponse is a page of nodes.
type NodeListResponse struct {
	Data          []NodePayload `json:"data"`
	TotalCount    int64         `json:"totalCount"`
	NextPageToken string        `json:"nextPageToken,omitempty"`
}

// RelationshipListResponse is a page of relationships.
type RelationshipListResponse struct {
	Data          []RelationshipPayload `json:"data"`
	TotalCount    int64                 `json:"totalCount"`
	NextPageToken string                `json:"nextPageToken,omitempty"`
}

// === Mapping helpers ===

func columnToAPI(c domain.Column) ColumnPayload {
	return ColumnPayload{
		ID:          c.ID,
		Name:        c.Name,
		DataType:    c.DataType,
		Nullable:    c.Nullable,
		PrimaryKey:  c.PrimaryKey,
		Description: c.Description,
	}
}

func columnFromAPI(c ColumnPayload) domain.Column {
	return domain.Column{
		ID:          c.ID,
		Name:        c.Name,
		DataType:    c.DataType,
		Nullable:    c.Nullable,
		PrimaryKey:  c.PrimaryKey,
		Description: c.Description,
	}
}

func portToAPI(p domain.Port) PortPayload {
	out := PortPayload{ID: p.ID, Label: p.Label, RelatedPortIDs: p.RelatedPortIDs}
	for _, c := range p.Columns {
		out.Columns = append(out.Columns, columnToAPI(c))
	}
	return out
}

func portFromAPI(p PortPayload) domain.Port {
	out := domain.Port{ID: p.ID, Label: p.Label, RelatedPortIDs: p.RelatedPortIDs}
	for _, c := range p.Columns {
		out.Columns = append(out.Columns, columnFromAPI(c))
	}
	return out
}

func nodeToAPI(n domain.Node) NodePayload {
	out := NodePayload{ID: n.ID, Label: n.Label}
	for _, p := range n.InputPorts {
		out.InputPorts = append(out.InputPorts, portToAPI(p))
	}
	for _, p := range n.OutputPorts {
		out.OutputPorts = append(out.OutputPorts, portToAPI(p))
	}
	return out
}

func nodeFromAPI(n NodePayload) domain.Node {
	out := domain.Node{ID: n.ID, Label: n.Label}
	for _, p := range n.InputPorts {
		out.InputPorts = append(out.InputPorts, portFromAPI(p))
	}
	for _, p := range n.OutputPorts {
		out.OutputPorts = append(out.OutputPorts, portFromAPI(p))
	}
	return out
}

func relationshipToAPI(rel domain.Relationship) RelationshipPayload {
	return RelationshipPayload{
		ID:           rel.ID,
		Kind:         string(rel.Kind),
		SourceNodeID: rel.SourceNodeID,
		TargetNodeID: rel.TargetNodeID,
		SourcePortID: rel.SourcePortID,
		TargetPortID: rel.TargetPortID,
	}
}

func relationshipFromAPI(rel RelationshipPayload) domain.Relationship {
	return domain.Relationship{
		ID:           rel.ID,
		Kind:         domain.RelationshipKind(rel.Kind),
		SourceNodeID: rel.SourceNodeID,
		TargetNodeID: rel.TargetNodeID,
		SourcePortID: rel.SourcePortID,
		TargetPortID: rel.TargetPortID,
	}
}
