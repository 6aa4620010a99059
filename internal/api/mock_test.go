package api

import (
	"context"
	"errors"

	"mesh-demo/internal/domain"
)

var errTest = errors.New("test error")

type mockGraphService struct {
	createNodeFn         func(ctx context.Context, node *domain.Node) error
	getNodeFn            func(ctx context.Context, nodeID string) (*domain.Node, error)
	listNodesFn          func(ctx context.Context, page domain.PageRequest) ([]domain.Node, int64, error)
	deleteNodeFn         func(ctx context.Context, nodeID string) error
	createRelationshipFn func(ctx context.Context, rel *domain.Relationship) (*domain.Relationship, error)
	listRelationshipsFn  func(ctx context.Context, page domain.PageRequest) ([]domain.Relationship, int64, error)
	deleteRelationshipFn func(ctx context.Context, id string) error
	replaceColumnRelsFn  func(ctx context.Context, rels []domain.ColumnRelationship) error
}

func (m *mockGraphService) CreateNode(ctx context.Context, node *domain.Node) error {
	if m.createNodeFn == nil {
		panic("mockGraphService.CreateNode called but not set")
	}
	return m.createNodeFn(ctx, node)
}

func (m *mockGraphService) GetNode(ctx context.Context, nodeID string) (*domain.Node, error) {
	if m.getNodeFn == nil {
		panic("mockGraphService.GetNode called but not set")
	}
	return m.getNodeFn(ctx, nodeID)
}

func (m *mockGraphService) ListNodes(ctx context.Context, page domain.PageRequest) ([]domain.Node, int64, error) {
	if m.listNodesFn == nil {
		panic("mockGraphService.ListNodes called but not set")
	}
	return m.listNodesFn(ctx, page)
}

func (m *mockGraphService) DeleteNode(ctx context.Context, nodeID string) error {
	if m.deleteNodeFn == nil {
		panic("mockGraphService.DeleteNode called but not set")
	}
	return m.deleteNodeFn(ctx, nodeID)
}

func (m *mockGraphService) CreateRelationship(ctx context.Context, rel *domain.Relationship) (*domain.Relationship, error) {
	if m.createRelationshipFn == nil {
		panic("mockGraphService.CreateRelationship called but not set")
	}
	return m.createRelationshipFn(ctx, rel)
}

func (m *mockGraphService) ListRelationships(ctx context.Context, page domain.PageRequest) ([]domain.Relationship, int64, error) {
	if m.listRelationshipsFn == nil {
		panic("mockGraphService.ListRelationships called but not set")
	}
	return m.listRelationshipsFn(ctx, page)
}

func (m *mockGraphService) DeleteRelationship(ctx context.Context, id string) error {
	if m.deleteRelationshipFn == nil {
		panic("mockGraphService.DeleteRelationship called but not set")
	}
	return m.deleteRelationshipFn(ctx, id)
}

func (m *mockGraphService) ReplaceColumnRelationships(ctx context.Context, rels []domain.ColumnRelationship) error {
	if m.replaceColumnRelsFn == nil {
		panic("mockGraphService.ReplaceColumnRelationships called but not set")
	}
	return m.replaceColumnRelsFn(ctx, rels)
}

type mockLineageService struct {
	portLineageFn   func(ctx context.Context, portID string) (domain.CompleteLineage, error)
	nodeLineageFn   func(ctx context.Context, nodeID string) (domain.NodeLineageResult, error)
	columnLineageFn func(ctx context.Context, columnID string) (domain.CompleteColumnLineage, error)
}

func (m *mockLineageService) PortLineage(ctx context.Context, portID string) (domain.CompleteLineage, error) {
	if m.portLineageFn == nil {
		panic("mockLineageService.PortLineage called but not set")
	}
	return m.portLineageFn(ctx, portID)
}

func (m *mockLineageService) NodeLineage(ctx context.Context, nodeID string) (domain.NodeLineageResult, error) {
	if m.nodeLineageFn == nil {
		panic("mockLineageService.NodeLineage called but not set")
	}
	return m.nodeLineageFn(ctx, nodeID)
}

func (m *mockLineageService) ColumnLineage(ctx context.Context, columnID string) (domain.CompleteColumnLineage, error) {
	if m.columnLineageFn == nil {
		panic("mockLineageService.ColumnLineage called but not set")
	}
	return m.columnLineageFn(ctx, columnID)
}
