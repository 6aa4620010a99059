// Package repository implements domain repositories over the SQLite
// metastore with hand-written SQL.
package repository

import (
	"context"
	"database/sql"
	"fmt"

	"mesh-demo/internal/domain"
)

// Graph persists the lineage graph. Writes go through the single-connection
// write pool; reads use the read pool.
type Graph struct {
	writeDB *sql.DB
	readDB  *sql.DB
}

// NewGraph creates a Graph repository over a write/read pool pair.
func NewGraph(writeDB, readDB *sql.DB) *Graph {
	return &Graph{writeDB: writeDB, readDB: readDB}
}

// CreateNode stores a node with its ports, related-port declarations, and
// columns in one transaction, and bumps the graph version.
func (r *Graph) CreateNode(ctx context.Context, node *domain.Node) error {
	tx, err := r.writeDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	var exists int
	err = tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM nodes WHERE id = ?`, node.ID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check node %s: %w", node.ID, err)
	}
	if exists > 0 {
		return domain.ErrConflict("node %s already exists", node.ID)
	}

	if _, err := tx.ExecContext(ctx, `INSERT INTO nodes (id, label) VALUES (?, ?)`, node.ID, node.Label); err != nil {
		return fmt.Errorf("insert node %s: %w", node.ID, err)
	}

	if err := insertPorts(ctx, tx, node.ID, domain.PortInput, node.InputPorts); err != nil {
		return err
	}
	if err := insertPorts(ctx, tx, node.ID, domain.PortOutput, node.OutputPorts); err != nil {
		return err
	}

	if err := bumpVersion(ctx, tx); err != nil {
		return err
	}
	return tx.Commit()
}

func insertPorts(ctx context.Context, tx *sql.Tx, nodeID string, dir domain.PortDirection, ports []domain.Port) error {
	for i, p := range ports {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO ports (id, node_id, direction, label, position) VALUES (?, ?, ?, ?, ?)`,
			p.ID, nodeID, string(dir), p.Label, i)
		if err != nil {
			return fmt.Errorf("insert port %s: %w", p.ID, err)
		}
		for j, related := range p.RelatedPortIDs {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO port_related (port_id, related_port_id, position) VALUES (?, ?, ?)`,
				p.ID, related, j)
			if err != nil {
				return fmt.Errorf("insert related port %s -> %s: %w", p.ID, related, err)
			}
		}
		for j, col := range p.Columns {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO columns (id, port_id, name, data_type, is_nullable, is_primary_key, description, position)
				 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
				col.ID, p.ID, col.Name, col.DataType, boolToInt(col.Nullable), boolToInt(col.PrimaryKey), col.Description, j)
			if err != nil {
				return fmt.Errorf("insert column %s: %w", col.ID, err)
			}
		}
	}
	return nil
}

// GetNode returns a node with its full port and column detail.
func (r *Graph) GetNode(ctx context.Context, nodeID string) (*domain.Node, error) {
	node := &domain.Node{ID: nodeID}
	err := r.readDB.QueryRowContext(ctx, `SELECT label FROM nodes WHERE id = ?`, nodeID).Scan(&node.Label)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound("node %s not found", nodeID)
	}
	if err != nil {
		return nil, fmt.Errorf("get node %s: %w", nodeID, err)
	}

	if err := r.loadPorts(ctx, node); err != nil {
		return nil, err
	}
	return node, nil
}

func (r *Graph) loadPorts(ctx context.Context, node *domain.Node) error {
	rows, err := r.readDB.QueryContext(ctx,
		`SELECT id, direction, label FROM ports WHERE node_id = ? ORDER BY direction, position`, node.ID)
	if err != nil {
		return fmt.Errorf("load ports for %s: %w", node.ID, err)
	}
	defer rows.Close() //nolint:errcheck

	for rows.Next() {
		var p domain.Port
		var dir string
		if err := rows.Scan(&p.ID, &dir, &p.Label); err != nil {
			return fmt.Errorf("scan port: %w", err)
		}
		if err := r.loadPortDetail(ctx, &p); err != nil {
			return err
		}
		if dir == string(domain.PortInput) {
			node.InputPorts = append(node.InputPorts, p)
		} else {
			node.OutputPorts = append(node.OutputPorts, p)
		}
	}
	return rows.Err()
}

func (r *Graph) loadPortDetail(ctx context.Context, p *domain.Port) error {
	related, err := r.readDB.QueryContext(ctx,
		`SELECT related_port_id FROM port_related WHERE port_id = ? ORDER BY position`, p.ID)
	if err != nil {
		return fmt.Errorf("load related ports for %s: %w", p.ID, err)
	}
	defer related.Close() //nolint:errcheck
	for related.Next() {
		var id string
		if err := related.Scan(&id); err != nil {
			return fmt.Errorf("scan related port: %w", err)
		}
		p.RelatedPortIDs = append(p.RelatedPortIDs, id)
	}
	if err := related.Err(); err != nil {
		return err
	}

	cols, err := r.readDB.QueryContext(ctx,
		`SELECT id, name, data_type, is_nullable, is_primary_key, description
		 FROM columns WHERE port_id = ? ORDER BY position`, p.ID)
	if err != nil {
		return fmt.Errorf("load columns for %s: %w", p.ID, err)
	}
	defer cols.Close() //nolint:errcheck
	for cols.Next() {
		var c domain.Column
		var nullable, pk int
		if err := cols.Scan(&c.ID, &c.Name, &c.DataType, &nullable, &pk, &c.Description); err != nil {
			return fmt.Errorf("scan column: %w", err)
		}
		c.Nullable = nullable != 0
		c.PrimaryKey = pk != 0
		p.Columns = append(p.Columns, c)
	}
	return cols.Err()
}

// ListNodes returns a page of nodes with full detail plus the total count.
func (r *Graph) ListNodes(ctx context.Context, page domain.PageRequest) ([]domain.Node, int64, error) {
	var total int64
	if err := r.readDB.QueryRowContext(ctx, `SELECT COUNT(*) FROM nodes`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count nodes: %w", err)
	}

	rows, err := r.readDB.QueryContext(ctx,
		`SELECT id, label FROM nodes ORDER BY id LIMIT ? OFFSET ?`, page.Limit(), page.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("list nodes: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	var nodes []domain.Node
	for rows.Next() {
		var n domain.Node
		if err := rows.Scan(&n.ID, &n.Label); err != nil {
			return nil, 0, fmt.Errorf("scan node: %w", err)
		}
		nodes = append(nodes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	for i := range nodes {
		if err := r.loadPorts(ctx, &nodes[i]); err != nil {
			return nil, 0, err
		}
	}
	return nodes, total, nil
}

// DeleteNode removes a node; ports, related-port declarations, and columns
// cascade.
func (r *Graph) DeleteNode(ctx context.Context, nodeID string) error {
	tx, err := r.writeDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	res, err := tx.ExecContext(ctx, `DELETE FROM nodes WHERE id = ?`, nodeID)
	if err != nil {
		return fmt.Errorf("delete node %s: %w", nodeID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound("node %s not found", nodeID)
	}

	if err := bumpVersion(ctx, tx); err != nil {
		return err
	}
	return tx.Commit()
}

// Version returns the current graph version.
func (r *Graph) Version(ctx context.Context) (int64, error) {
	var v int64
	if err := r.readDB.QueryRowContext(ctx, `SELECT version FROM graph_version WHERE id = 1`).Scan(&v); err != nil {
		return 0, fmt.Errorf("read graph version: %w", err)
	}
	return v, nil
}

// Snapshot reads the whole graph at its current version. The listings are
// drained page by page so the snapshot is complete no matter how far the
// graph has grown past a single page.
func (r *Graph) Snapshot(ctx context.Context) (*domain.GraphSnapshot, error) {
	snap := &domain.GraphSnapshot{}

	if err := r.readDB.QueryRowContext(ctx, `SELECT version FROM graph_version WHERE id = 1`).Scan(&snap.Version); err != nil {
		return nil, fmt.Errorf("read graph version: %w", err)
	}

	nodes, err := drainPages(ctx, r.ListNodes)
	if err != nil {
		return nil, err
	}
	snap.Nodes = nodes

	rels, err := drainPages(ctx, r.ListRelationships)
	if err != nil {
		return nil, err
	}
	snap.Relationships = rels

	colRels, err := r.listColumnRelationships(ctx)
	if err != nil {
		return nil, err
	}
	snap.ColumnRelationships = colRels

	return snap, nil
}

// drainPages walks a paged listing to the end and returns every item.
func drainPages[T any](ctx context.Context, list func(context.Context, domain.PageRequest) ([]T, int64, error)) ([]T, error) {
	var out []T
	for offset := 0; ; {
		page := domain.PageRequest{MaxResults: domain.MaxMaxResults, PageToken: domain.EncodePageToken(offset)}
		items, total, err := list(ctx, page)
		if err != nil {
			return nil, err
		}
		out = append(out, items...)
		offset += len(items)
		if len(items) == 0 || int64(offset) >= total {
			return out, nil
		}
	}
}

func bumpVersion(ctx context.Context, tx *sql.Tx) error {
	if _, err := tx.ExecContext(ctx, `UPDATE graph_version SET version = version + 1 WHERE id = 1`); err != nil {
		return fmt.Errorf("bump graph version: %w", err)
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
