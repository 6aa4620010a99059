package repository

import (
	"context"
	"fmt"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	internaldb "mesh-demo/internal/db"
	"mesh-demo/internal/domain"
)

func setupGraphRepo(t *testing.T) *Graph {
	t.Helper()
	writeDB, readDB := internaldb.OpenTestPair(t)
	return NewGraph(writeDB, readDB)
}

func demoNode() *domain.Node {
	return &domain.Node{
		ID:    "enriched",
		Label: "Enriched Orders",
		InputPorts: []domain.Port{{
			ID:             "enriched.in1",
			Label:          "orders",
			RelatedPortIDs: []string{"enriched.out1"},
			Columns: []domain.Column{
				{ID: "c1", Name: "order_id", DataType: "VARCHAR", PrimaryKey: true, Description: "order key"},
				{ID: "c2", Name: "amount", DataType: "DECIMAL", Nullable: true},
			},
		}},
		OutputPorts: []domain.Port{{
			ID:             "enriched.out1",
			Label:          "enriched",
			RelatedPortIDs: []string{"enriched.in1"},
		}},
	}
}

func TestGraph_CreateAndGetNode(t *testing.T) {
	repo := setupGraphRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.CreateNode(ctx, demoNode()))

	got, err := repo.GetNode(ctx, "enriched")
	require.NoError(t, err)
	assert.Equal(t, "Enriched Orders", got.Label)
	require.Len(t, got.InputPorts, 1)
	require.Len(t, got.OutputPorts, 1)

	in := got.InputPorts[0]
	assert.Equal(t, "enriched.in1", in.ID)
	assert.Equal(t, []string{"enriched.out1"}, in.RelatedPortIDs)
	require.Len(t, in.Columns, 2)
	assert.Equal(t, "order_id", in.Columns[0].Name)
	assert.True(t, in.Columns[0].PrimaryKey)
	assert.False(t, in.Columns[0].Nullable)
	assert.True(t, in.Columns[1].Nullable)
}

func TestGraph_CreateNodeConflict(t *testing.T) {
	repo := setupGraphRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.CreateNode(ctx, demoNode()))

	err := repo.CreateNode(ctx, demoNode())
	require.Error(t, err)
	assert.ErrorAs(t, err, new(*domain.ConflictError))
}

func TestGraph_GetNodeNotFound(t *testing.T) {
	repo := setupGraphRepo(t)

	_, err := repo.GetNode(context.Background(), "nope")
	require.Error(t, err)
	assert.ErrorAs(t, err, new(*domain.NotFoundError))
}

func TestGraph_ListNodesPagination(t *testing.T) {
	repo := setupGraphRepo(t)
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, repo.CreateNode(ctx, &domain.Node{ID: id, Label: id}))
	}

	nodes, total, err := repo.ListNodes(ctx, domain.PageRequest{MaxResults: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, nodes, 2)
	assert.Equal(t, "a", nodes[0].ID)

	next := domain.NextPageToken(0, 2, total)
	require.NotEmpty(t, next)

	nodes, _, err = repo.ListNodes(ctx, domain.PageRequest{MaxResults: 2, PageToken: next})
	require.NoError(t, err)
	require.Len(t, nodes, 1)
	assert.Equal(t, "c", nodes[0].ID)
}

func TestGraph_DeleteNodeCascades(t *testing.T) {
	repo := setupGraphRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.CreateNode(ctx, demoNode()))
	require.NoError(t, repo.DeleteNode(ctx, "enriched"))

	_, err := repo.GetNode(ctx, "enriched")
	assert.ErrorAs(t, err, new(*domain.NotFoundError))

	err = repo.DeleteNode(ctx, "enriched")
	assert.ErrorAs(t, err, new(*domain.NotFoundError))
}

func TestGraph_Relationships(t *testing.T) {
	repo := setupGraphRepo(t)
	ctx := context.Background()

	rel := &domain.Relationship{
		ID: "rel-1", Kind: domain.KindPort,
		SourceNodeID: "raw_orders", TargetNodeID: "enriched",
		SourcePortID: "raw_orders.out1", TargetPortID: "enriched.in1",
	}
	require.NoError(t, repo.CreateRelationship(ctx, rel))

	err := repo.CreateRelationship(ctx, rel)
	assert.ErrorAs(t, err, new(*domain.ConflictError))

	direct := &domain.Relationship{
		ID: "rel-2", Kind: domain.KindDirect,
		SourceNodeID: "enriched", TargetNodeID: "revenue",
	}
	require.NoError(t, repo.CreateRelationship(ctx, direct))

	rels, total, err := repo.ListRelationships(ctx, domain.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, rels, 2)
	assert.Equal(t, domain.KindPort, rels[0].Kind)
	assert.Equal(t, "enriched.in1", rels[0].TargetPortID)
	assert.Equal(t, domain.KindDirect, rels[1].Kind)
	assert.Empty(t, rels[1].SourcePortID)

	require.NoError(t, repo.DeleteRelationship(ctx, "rel-1"))
	err = repo.DeleteRelationship(ctx, "rel-1")
	assert.ErrorAs(t, err, new(*domain.NotFoundError))
}

func TestGraph_ColumnRelationships(t *testing.T) {
	repo := setupGraphRepo(t)
	ctx := context.Background()

	rels := []domain.ColumnRelationship{
		{SourceColumnID: "c0", TargetColumnID: "c1"},
		{SourceColumnID: "c1", TargetColumnID: "c2"},
	}
	require.NoError(t, repo.ReplaceColumnRelationships(ctx, rels))

	snap, err := repo.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, rels, snap.ColumnRelationships)

	// Replacing keeps only the new list.
	require.NoError(t, repo.ReplaceColumnRelationships(ctx, rels[:1]))
	snap, err = repo.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, rels[:1], snap.ColumnRelationships)
}

func TestGraph_SnapshotSpansPages(t *testing.T) {
	repo := setupGraphRepo(t)
	ctx := context.Background()

	// One more row than a single listing page holds, on both tables.
	const count = domain.MaxMaxResults + 1
	for i := 0; i < count; i++ {
		require.NoError(t, repo.CreateNode(ctx, &domain.Node{
			ID:    fmt.Sprintf("node-%04d", i),
			Label: fmt.Sprintf("Node %d", i),
		}))
		require.NoError(t, repo.CreateRelationship(ctx, &domain.Relationship{
			ID:           fmt.Sprintf("rel-%04d", i),
			Kind:         domain.KindDirect,
			SourceNodeID: fmt.Sprintf("node-%04d", i),
			TargetNodeID: fmt.Sprintf("node-%04d", (i+1)%count),
		}))
	}

	snap, err := repo.Snapshot(ctx)
	require.NoError(t, err)
	assert.Len(t, snap.Nodes, count)
	assert.Len(t, snap.Relationships, count)
}

func TestGraph_VersionBumpsOnWrites(t *testing.T) {
	repo := setupGraphRepo(t)
	ctx := context.Background()

	v0, err := repo.Version(ctx)
	require.NoError(t, err)

	require.NoError(t, repo.CreateNode(ctx, &domain.Node{ID: "a", Label: "A"}))
	v1, err := repo.Version(ctx)
	require.NoError(t, err)
	assert.Equal(t, v0+1, v1)

	require.NoError(t, repo.CreateRelationship(ctx, &domain.Relationship{
		ID: "r", Kind: domain.KindDirect, SourceNodeID: "a", TargetNodeID: "a",
	}))
	v2, err := repo.Version(ctx)
	require.NoError(t, err)
	assert.Equal(t, v1+1, v2)

	snap, err := repo.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, v2, snap.Version)
	require.Len(t, snap.Nodes, 1)
	require.Len(t, snap.Relationships, 1)
}
