package service

import (
	"context"
	"errors"

	"mesh-demo/internal/domain"
)

var errTest = errors.New("boom")

// === Graph Repository Mock ===

type mockGraphRepo struct {
	createNodeFn          func(ctx context.Context, node *domain.Node) error
	getNodeFn             func(ctx context.Context, nodeID string) (*domain.Node, error)
	listNodesFn           func(ctx context.Context, page domain.PageRequest) ([]domain.Node, int64, error)
	deleteNodeFn          func(ctx context.Context, nodeID string) error
	createRelationshipFn  func(ctx context.Context, rel *domain.Relationship) error
	listRelationshipsFn   func(ctx context.Context, page domain.PageRequest) ([]domain.Relationship, int64, error)
	deleteRelationshipFn  func(ctx context.Context, id string) error
	replaceColumnRelsFn   func(ctx context.Context, rels []domain.ColumnRelationship) error
	snapshotFn            func(ctx context.Context) (*domain.GraphSnapshot, error)
	versionFn             func(ctx context.Context) (int64, error)
}

func (m *mockGraphRepo) CreateNode(ctx context.Context, node *domain.Node) error {
	if m.createNodeFn != nil {
		return m.createNodeFn(ctx, node)
	}
	panic("unexpected call to mockGraphRepo.CreateNode")
}

func (m *mockGraphRepo) GetNode(ctx context.Context, nodeID string) (*domain.Node, error) {
	if m.getNodeFn != nil {
		return m.getNodeFn(ctx, nodeID)
	}
	panic("unexpected call to mockGraphRepo.GetNode")
}

func (m *mockGraphRepo) ListNodes(ctx context.Context, page domain.PageRequest) ([]domain.Node, int64, error) {
	if m.listNodesFn != nil {
		return m.listNodesFn(ctx, page)
	}
	panic("unexpected call to mockGraphRepo.ListNodes")
}

func (m *mockGraphRepo) DeleteNode(ctx context.Context, nodeID string) error {
	if m.deleteNodeFn != nil {
		return m.deleteNodeFn(ctx, nodeID)
	}
	panic("unexpected call to mockGraphRepo.DeleteNode")
}

func (m *mockGraphRepo) CreateRelationship(ctx context.Context, rel *domain.Relationship) error {
	if m.createRelationshipFn != nil {
		return m.createRelationshipFn(ctx, rel)
	}
	panic("unexpected call to mockGraphRepo.CreateRelationship")
}

func (m *mockGraphRepo) ListRelationships(ctx context.Context, page domain.PageRequest) ([]domain.Relationship, int64, error) {
	if m.listRelationshipsFn != nil {
		return m.listRelationshipsFn(ctx, page)
	}
	panic("unexpected call to mockGraphRepo.ListRelationships")
}

func (m *mockGraphRepo) DeleteRelationship(ctx context.Context, id string) error {
	if m.deleteRelationshipFn != nil {
		return m.deleteRelationshipFn(ctx, id)
	}
	panic("unexpected call to mockGraphRepo.DeleteRelationship")
}

func (m *mockGraphRepo) ReplaceColumnRelationships(ctx context.Context, rels []domain.ColumnRelationship) error {
	if m.replaceColumnRelsFn != nil {
		return m.replaceColumnRelsFn(ctx, rels)
	}
	panic("unexpected call to mockGraphRepo.ReplaceColumnRelationships")
}

func (m *mockGraphRepo) Snapshot(ctx context.Context) (*domain.GraphSnapshot, error) {
	if m.snapshotFn != nil {
		return m.snapshotFn(ctx)
	}
	panic("unexpected call to mockGraphRepo.Snapshot")
}

func (m *mockGraphRepo) Version(ctx context.Context) (int64, error) {
	if m.versionFn != nil {
		return m.versionFn(ctx)
	}
	panic("unexpected call to mockGraphRepo.Version")
}
