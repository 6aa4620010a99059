// Package service implements the business layer over the graph repository:
// validation on writes and lineage computation on reads.
package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"mesh-demo/internal/domain"
)

// GraphService validates and persists graph mutations.
type GraphService struct {
	repo domain.GraphRepository
}

// NewGraphService creates a new GraphService.
func NewGraphService(repo domain.GraphRepository) *GraphService {
	return &GraphService{repo: repo}
}

// CreateNode validates a node and stores it.
func (s *GraphService) CreateNode(ctx context.Context, node *domain.Node) error {
	if node.ID == "" {
		return domain.ErrValidation("node id is required")
	}
	if node.Label == "" {
		node.Label = node.ID
	}
	if err := validatePorts(node); err != nil {
		return err
	}
	return s.repo.CreateNode(ctx, node)
}

// validatePorts rejects duplicate or empty port and column IDs within one
// node. Cross-node uniqueness is enforced by the store's primary keys.
func validatePorts(node *domain.Node) error {
	portIDs := domain.StringSet{}
	columnIDs := domain.StringSet{}
	for _, group := range [][]domain.Port{node.InputPorts, node.OutputPorts} {
		for _, p := range group {
			if p.ID == "" {
				return domain.ErrValidation("node %s: port id is required", node.ID)
			}
			if portIDs.Has(p.ID) {
				return domain.ErrValidation("node %s: duplicate port id %s", node.ID, p.ID)
			}
			portIDs.Add(p.ID)
			for _, c := range p.Columns {
				if c.ID == "" {
					return domain.ErrValidation("port %s: column id is required", p.ID)
				}
				if columnIDs.Has(c.ID) {
					return domain.ErrValidation("port %s: duplicate column id %s", p.ID, c.ID)
				}
				columnIDs.Add(c.ID)
			}
		}
	}
	return nil
}

// GetNode returns a node with full detail.
func (s *GraphService) GetNode(ctx context.Context, nodeID string) (*domain.Node, error) {
	if nodeID == "" {
		return nil, domain.ErrValidation("node id is required")
	}
	return s.repo.GetNode(ctx, nodeID)
}

// ListNodes returns a page of nodes plus the total count.
func (s *GraphService) ListNodes(ctx context.Context, page domain.PageRequest) ([]domain.Node, int64, error) {
	return s.repo.ListNodes(ctx, page)
}

// DeleteNode removes a node and its ports and columns.
func (s *GraphService) DeleteNode(ctx context.Context, nodeID string) error {
	if nodeID == "" {
		return domain.ErrValidation("node id is required")
	}
	return s.repo.DeleteNode(ctx, nodeID)
}

// CreateRelationship validates a relationship, mints an ID when the caller
// supplied none, and stores it. Returns the stored relationship.
func (s *GraphService) CreateRelationship(ctx context.Context, rel *domain.Relationship) (*domain.Relationship, error) {
	switch rel.Kind {
	case domain.KindDirect:
		if rel.SourcePortID != "" || rel.TargetPortID != "" {
			return nil, domain.ErrValidation("direct relationship must not carry port ids")
		}
	case domain.KindPort:
		if rel.SourcePortID == "" || rel.TargetPortID == "" {
			return nil, domain.ErrValidation("port relationship requires source and target port ids")
		}
	default:
		return nil, domain.ErrValidation("unknown relationship kind %q", rel.Kind)
	}
	if rel.SourceNodeID == "" || rel.TargetNodeID == "" {
		return nil, domain.ErrValidation("relationship requires source and target node ids")
	}
	if rel.ID == "" {
		rel.ID = fmt.Sprintf("rel-%s", uuid.NewString())
	}

	if err := s.repo.CreateRelationship(ctx, rel); err != nil {
		return nil, err
	}
	return rel, nil
}

// ListRelationships returns a page of relationships plus the total count.
func (s *GraphService) ListRelationships(ctx context.Context, page domain.PageRequest) ([]domain.Relationship, int64, error) {
	return s.repo.ListRelationships(ctx, page)
}

// DeleteRelationship removes a relationship by ID.
func (s *GraphService) DeleteRelationship(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrValidation("relationship id is required")
	}
	return s.repo.DeleteRelationship(ctx, id)
}

// ReplaceColumnRelationships validates and replaces the column-relationship
// list. Order matters: the engine derives column-edge IDs from it.
func (s *GraphService) ReplaceColumnRelationships(ctx context.Context, rels []domain.ColumnRelationship) error {
	for i, rel := range rels {
		if rel.SourceColumnID == "" || rel.TargetColumnID == "" {
			return domain.ErrValidation("column relationship %d requires source and target column ids", i)
		}
	}
	return s.repo.ReplaceColumnRelationships(ctx, rels)
}
