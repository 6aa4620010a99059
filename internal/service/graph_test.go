package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mesh-demo/internal/domain"
)

func TestGraphService_CreateNode(t *testing.T) {
	t.Run("happy_path_defaults_label", func(t *testing.T) {
		var stored *domain.Node
		repo := &mockGraphRepo{
			createNodeFn: func(_ context.Context, node *domain.Node) error {
				stored = node
				return nil
			},
		}
		svc := NewGraphService(repo)

		err := svc.CreateNode(context.Background(), &domain.Node{ID: "orders"})

		require.NoError(t, err)
		assert.Equal(t, "orders", stored.Label)
	})

	t.Run("missing_id", func(t *testing.T) {
		svc := NewGraphService(&mockGraphRepo{})

		err := svc.CreateNode(context.Background(), &domain.Node{Label: "x"})

		assert.ErrorAs(t, err, new(*domain.ValidationError))
	})

	t.Run("duplicate_port_across_lists", func(t *testing.T) {
		svc := NewGraphService(&mockGraphRepo{})

		err := svc.CreateNode(context.Background(), &domain.Node{
			ID:          "n",
			InputPorts:  []domain.Port{{ID: "p1"}},
			OutputPorts: []domain.Port{{ID: "p1"}},
		})

		assert.ErrorAs(t, err, new(*domain.ValidationError))
	})

	t.Run("duplicate_column", func(t *testing.T) {
		svc := NewGraphService(&mockGraphRepo{})

		err := svc.CreateNode(context.Background(), &domain.Node{
			ID: "n",
			InputPorts: []domain.Port{
				{ID: "p1", Columns: []domain.Column{{ID: "c1"}}},
				{ID: "p2", Columns: []domain.Column{{ID: "c1"}}},
			},
		})

		assert.ErrorAs(t, err, new(*domain.ValidationError))
	})

	t.Run("repo_error", func(t *testing.T) {
		repo := &mockGraphRepo{
			createNodeFn: func(_ context.Context, _ *domain.Node) error { return errTest },
		}
		svc := NewGraphService(repo)

		err := svc.CreateNode(context.Background(), &domain.Node{ID: "n"})

		assert.ErrorIs(t, err, errTest)
	})
}

func TestGraphService_CreateRelationship(t *testing.T) {
	t.Run("mints_id_when_absent", func(t *testing.T) {
		repo := &mockGraphRepo{
			createRelationshipFn: func(_ context.Context, _ *domain.Relationship) error { return nil },
		}
		svc := NewGraphService(repo)

		rel, err := svc.CreateRelationship(context.Background(), &domain.Relationship{
			Kind: domain.KindDirect, SourceNodeID: "a", TargetNodeID: "b",
		})

		require.NoError(t, err)
		assert.NotEmpty(t, rel.ID)
		assert.Contains(t, rel.ID, "rel-")
	})

	t.Run("keeps_caller_id", func(t *testing.T) {
		repo := &mockGraphRepo{
			createRelationshipFn: func(_ context.Context, _ *domain.Relationship) error { return nil },
		}
		svc := NewGraphService(repo)

		rel, err := svc.CreateRelationship(context.Background(), &domain.Relationship{
			ID: "my-edge", Kind: domain.KindPort,
			SourceNodeID: "a", TargetNodeID: "b",
			SourcePortID: "a.out", TargetPortID: "b.in",
		})

		require.NoError(t, err)
		assert.Equal(t, "my-edge", rel.ID)
	})

	t.Run("direct_with_ports_rejected", func(t *testing.T) {
		svc := NewGraphService(&mockGraphRepo{})

		_, err := svc.CreateRelationship(context.Background(), &domain.Relationship{
			Kind: domain.KindDirect, SourceNodeID: "a", TargetNodeID: "b", SourcePortID: "a.out",
		})

		assert.ErrorAs(t, err, new(*domain.ValidationError))
	})

	t.Run("port_without_ports_rejected", func(t *testing.T) {
		svc := NewGraphService(&mockGraphRepo{})

		_, err := svc.CreateRelationship(context.Background(), &domain.Relationship{
			Kind: domain.KindPort, SourceNodeID: "a", TargetNodeID: "b",
		})

		assert.ErrorAs(t, err, new(*domain.ValidationError))
	})

	t.Run("unknown_kind_rejected", func(t *testing.T) {
		svc := NewGraphService(&mockGraphRepo{})

		_, err := svc.CreateRelationship(context.Background(), &domain.Relationship{
			Kind: "sideways", SourceNodeID: "a", TargetNodeID: "b",
		})

		assert.ErrorAs(t, err, new(*domain.ValidationError))
	})
}

func TestGraphService_ReplaceColumnRelationships(t *testing.T) {
	t.Run("happy_path", func(t *testing.T) {
		repo := &mockGraphRepo{
			replaceColumnRelsFn: func(_ context.Context, _ []domain.ColumnRelationship) error { return nil },
		}
		svc := NewGraphService(repo)

		err := svc.ReplaceColumnRelationships(context.Background(), []domain.ColumnRelationship{
			{SourceColumnID: "c0", TargetColumnID: "c1"},
		})

		require.NoError(t, err)
	})

	t.Run("missing_endpoint_rejected", func(t *testing.T) {
		svc := NewGraphService(&mockGraphRepo{})

		err := svc.ReplaceColumnRelationships(context.Background(), []domain.ColumnRelationship{
			{SourceColumnID: "c0"},
		})

		assert.ErrorAs(t, err, new(*domain.ValidationError))
	})
}
