package demo

import (
	"context"
	"io"
	"log/slog"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mesh-demo/internal/db"
	"mesh-demo/internal/db/repository"
	"mesh-demo/internal/service"
)

func TestSeed(t *testing.T) {
	writeDB, readDB := db.OpenTestPair(t)
	repo := repository.NewGraph(writeDB, readDB)
	graph := service.NewGraphService(repo)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	require.NoError(t, Seed(context.Background(), graph, log))

	node, err := graph.GetNode(context.Background(), "enriched_orders")
	require.NoError(t, err)
	require.Len(t, node.InputPorts, 1)
	assert.Equal(t, []string{"enriched_orders.out1"}, node.InputPorts[0].RelatedPortIDs)

	snap, err := repo.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Len(t, snap.Nodes, 3)
	assert.Len(t, snap.Relationships, 2)
	assert.Len(t, snap.ColumnRelationships, 6)

	// Running the seed again is a no-op, not a conflict.
	require.NoError(t, Seed(context.Background(), graph, log))

	snap2, err := repo.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Len(t, snap2.Nodes, 3)
}

func TestSeed_LineageOverSeededGraph(t *testing.T) {
	writeDB, readDB := db.OpenTestPair(t)
	repo := repository.NewGraph(writeDB, readDB)
	graph := service.NewGraphService(repo)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	require.NoError(t, Seed(context.Background(), graph, log))

	lineage, err := service.NewLineageService(repo, log, 16)
	require.NoError(t, err)

	res, err := lineage.PortLineage(context.Background(), "enriched_orders.in1")
	require.NoError(t, err)
	assert.ElementsMatch(t,
		[]string{"raw_orders", "enriched_orders", "revenue_report"},
		res.NodeIDs.Values())

	col, err := lineage.ColumnLineage(context.Background(), "enriched_orders.in1.order_id")
	require.NoError(t, err)
	assert.Contains(t, col.ColumnIDs.Values(), "raw_orders.out1.order_id")
	assert.Contains(t, col.ColumnIDs.Values(), "revenue_report.in1.order_id")
}
