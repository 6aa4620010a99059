package repository

import (
	"context"
	"database/sql"
	"fmt"

	"mesh-demo/internal/domain"
)

// CreateRelationship stores a node- or port-level relationship and bumps
// the graph version.
func (r *Graph) CreateRelationship(ctx context.Context, rel *domain.Relationship) error {
	tx, err := r.writeDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	var exists int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM relationships WHERE id = ?`, rel.ID).Scan(&exists); err != nil {
		return fmt.Errorf("check relationship %s: %w", rel.ID, err)
	}
	if exists > 0 {
		return domain.ErrConflict("relationship %s already exists", rel.ID)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO relationships (id, kind, source_node_id, target_node_id, source_port_id, target_port_id)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		rel.ID, string(rel.Kind), rel.SourceNodeID, rel.TargetNodeID,
		nullIfEmpty(rel.SourcePortID), nullIfEmpty(rel.TargetPortID))
	if err != nil {
		return fmt.Errorf("insert relationship %s: %w", rel.ID, err)
	}

	if err := bumpVersion(ctx, tx); err != nil {
		return err
	}
	return tx.Commit()
}

// ListRelationships returns a page of relationships plus the total count.
func (r *Graph) ListRelationships(ctx context.Context, page domain.PageRequest) ([]domain.Relationship, int64, error) {
	var total int64
	if err := r.readDB.QueryRowContext(ctx, `SELECT COUNT(*) FROM relationships`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count relationships: %w", err)
	}

	rows, err := r.readDB.QueryContext(ctx,
		`SELECT id, kind, source_node_id, target_node_id, source_port_id, target_port_id
		 FROM relationships ORDER BY created_at, id LIMIT ? OFFSET ?`,
		page.Limit(), page.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("list relationships: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	var rels []domain.Relationship
	for rows.Next() {
		var rel domain.Relationship
		var kind string
		var sourcePort, targetPort sql.NullString
		if err := rows.Scan(&rel.ID, &kind, &rel.SourceNodeID, &rel.TargetNodeID, &sourcePort, &targetPort); err != nil {
			return nil, 0, fmt.Errorf("scan relationship: %w", err)
		}
		rel.Kind = domain.RelationshipKind(kind)
		rel.SourcePortID = sourcePort.String
		rel.TargetPortID = targetPort.String
		rels = append(rels, rel)
	}
	return rels, total, rows.Err()
}

// DeleteRelationship removes a relationship by ID.
func (r *Graph) DeleteRelationship(ctx context.Context, id string) error {
	tx, err := r.writeDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	res, err := tx.ExecContext(ctx, `DELETE FROM relationships WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete relationship %s: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound("relationship %s not found", id)
	}

	if err := bumpVersion(ctx, tx); err != nil {
		return err
	}
	return tx.Commit()
}

// ReplaceColumnRelationships replaces the stored column-relationship list,
// preserving list order in the position column.
func (r *Graph) ReplaceColumnRelationships(ctx context.Context, rels []domain.ColumnRelationship) error {
	tx, err := r.writeDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, `DELETE FROM column_relationships`); err != nil {
		return fmt.Errorf("clear column relationships: %w", err)
	}
	for i, rel := range rels {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO column_relationships (position, source_column_id, target_column_id) VALUES (?, ?, ?)`,
			i, rel.SourceColumnID, rel.TargetColumnID)
		if err != nil {
			return fmt.Errorf("insert column relationship %d: %w", i, err)
		}
	}

	if err := bumpVersion(ctx, tx); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *Graph) listColumnRelationships(ctx context.Context) ([]domain.ColumnRelationship, error) {
	rows, err := r.readDB.QueryContext(ctx,
		`SELECT source_column_id, target_column_id FROM column_relationships ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("list column relationships: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	var rels []domain.ColumnRelationship
	for rows.Next() {
		var rel domain.ColumnRelationship
		if err := rows.Scan(&rel.SourceColumnID, &rel.TargetColumnID); err != nil {
			return nil, fmt.Errorf("scan column relationship: %w", err)
		}
		rels = append(rels, rel)
	}
	return rels, rows.Err()
}

func nullIfEmpty(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
