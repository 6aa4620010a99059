// Package demo seeds a small example mesh for local development.
package demo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"mesh-demo/internal/domain"
	"mesh-demo/internal/service"
)

// Seed populates a three-product chain (raw orders feeding enriched orders
// feeding a revenue report) with ports, columns, and column-level edges.
// Safe to run on every startup: if the first node already exists the whole
// seed is skipped.
func Seed(ctx context.Context, graph *service.GraphService, log *slog.Logger) error {
	if _, err := graph.GetNode(ctx, "raw_orders"); err == nil {
		log.Debug("demo graph already seeded")
		return nil
	} else if !errors.As(err, new(*domain.NotFoundError)) {
		return fmt.Errorf("checking demo graph: %w", err)
	}

	for _, node := range demoNodes() {
		n := node
		if err := graph.CreateNode(ctx, &n); err != nil {
			return fmt.Errorf("seeding node %s: %w", node.ID, err)
		}
	}

	for _, rel := range demoRelationships() {
		r := rel
		if _, err := graph.CreateRelationship(ctx, &r); err != nil {
			return fmt.Errorf("seeding relationship %s: %w", rel.ID, err)
		}
	}

	if err := graph.ReplaceColumnRelationships(ctx, demoColumnRelationships()); err != nil {
		return fmt.Errorf("seeding column relationships: %w", err)
	}

	log.Info("demo graph seeded", "nodes", len(demoNodes()))
	return nil
}

func demoNodes() []domain.Node {
	return []domain.Node{
		{
			ID:    "raw_orders",
			Label: "Raw Orders",
			OutputPorts: []domain.Port{{
				ID:    "raw_orders.out1",
				Label: "orders",
				Columns: []domain.Column{
					{ID: "raw_orders.out1.order_id", Name: "order_id", DataType: "bigint", PrimaryKey: true},
					{ID: "raw_orders.out1.amount", Name: "amount", DataType: "decimal(12,2)"},
					{ID: "raw_orders.out1.placed_at", Name: "placed_at", DataType: "timestamp"},
				},
			}},
		},
		{
			ID:    "enriched_orders",
			Label: "Enriched Orders",
			InputPorts: []domain.Port{{
				ID:             "enriched_orders.in1",
				Label:          "orders",
				RelatedPortIDs: []string{"enriched_orders.out1"},
				Columns: []domain.Column{
					{ID: "enriched_orders.in1.order_id", Name: "order_id", DataType: "bigint", PrimaryKey: true},
					{ID: "enriched_orders.in1.amount", Name: "amount", DataType: "decimal(12,2)"},
				},
			}},
			OutputPorts: []domain.Port{{
				ID:             "enriched_orders.out1",
				Label:          "enriched",
				RelatedPortIDs: []string{"enriched_orders.in1"},
				Columns: []domain.Column{
					{ID: "enriched_orders.out1.order_id", Name: "order_id", DataType: "bigint", PrimaryKey: true},
					{ID: "enriched_orders.out1.net_amount", Name: "net_amount", DataType: "decimal(12,2)"},
				},
			}},
		},
		{
			ID:    "revenue_report",
			Label: "Revenue Report",
			InputPorts: []domain.Port{{
				ID:    "revenue_report.in1",
				Label: "enriched",
				Columns: []domain.Column{
					{ID: "revenue_report.in1.order_id", Name: "order_id", DataType: "bigint"},
					{ID: "revenue_report.in1.net_amount", Name: "net_amount", DataType: "decimal(12,2)"},
				},
			}},
		},
	}
}

func demoRelationships() []domain.Relationship {
	return []domain.Relationship{
		{
			ID: "rel-raw-enriched", Kind: domain.KindPort,
			SourceNodeID: "raw_orders", TargetNodeID: "enriched_orders",
			SourcePortID: "raw_orders.out1", TargetPortID: "enriched_orders.in1",
		},
		{
			ID: "rel-enriched-revenue", Kind: domain.KindPort,
			SourceNodeID: "enriched_orders", TargetNodeID: "revenue_report",
			SourcePortID: "enriched_orders.out1", TargetPortID: "revenue_report.in1",
		},
	}
}

func demoColumnRelationships() []domain.ColumnRelationship {
	return []domain.ColumnRelationship{
		{SourceColumnID: "raw_orders.out1.order_id", TargetColumnID: "enriched_orders.in1.order_id"},
		{SourceColumnID: "raw_orders.out1.amount", TargetColumnID: "enriched_orders.in1.amount"},
		{SourceColumnID: "enriched_orders.in1.order_id", TargetColumnID: "enriched_orders.out1.order_id"},
		{SourceColumnID: "enriched_orders.in1.amount", TargetColumnID: "enriched_orders.out1.net_amount"},
		{SourceColumnID: "enriched_orders.out1.order_id", TargetColumnID: "revenue_report.in1.order_id"},
		{SourceColumnID: "enriched_orders.out1.net_amount", TargetColumnID: "revenue_report.in1.net_amount"},
	}
}
