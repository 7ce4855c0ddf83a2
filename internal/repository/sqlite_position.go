package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/teammap/internal/db"
	"github.com/alexanderramin/teammap/internal/domain"
)

// SQLitePositionRepo implements PositionRepo using a SQLite database.
type SQLitePositionRepo struct {
	db db.DBTX
}

func NewSQLitePositionRepo(conn db.DBTX) *SQLitePositionRepo {
	return &SQLitePositionRepo{db: conn}
}

func (r *SQLitePositionRepo) List(ctx context.Context) (map[string]domain.Position, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT node_id, x, y FROM node_positions`)
	if err != nil {
		return nil, fmt.Errorf("listing positions: %w", err)
	}
	defer rows.Close()

	out := make(map[string]domain.Position)
	for rows.Next() {
		var id string
		var p domain.Position
		if err := rows.Scan(&id, &p.X, &p.Y); err != nil {
			return nil, fmt.Errorf("scanning position: %w", err)
		}
		out[id] = p
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating positions: %w", err)
	}
	return out, nil
}

func (r *SQLitePositionRepo) Upsert(ctx context.Context, nodeID string, p domain.Position) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO node_positions (node_id, x, y) VALUES (?, ?, ?)
		ON CONFLICT(node_id) DO UPDATE SET x = excluded.x, y = excluded.y`,
		nodeID, p.X, p.Y)
	if err != nil {
		return fmt.Errorf("upserting position for %s: %w", nodeID, err)
	}
	return nil
}

func (r *SQLitePositionRepo) Delete(ctx context.Context, nodeID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM node_positions WHERE node_id = ?`, nodeID); err != nil {
		return fmt.Errorf("deleting position: %w", err)
	}
	return nil
}

func (r *SQLitePositionRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM node_positions`); err != nil {
		return fmt.Errorf("deleting positions: %w", err)
	}
	return nil
}
