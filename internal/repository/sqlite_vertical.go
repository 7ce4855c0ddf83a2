package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/teammap/internal/db"
	"github.com/alexanderramin/teammap/internal/domain"
)

// SQLiteVerticalRepo implements VerticalRepo using a SQLite database.
type SQLiteVerticalRepo struct {
	db db.DBTX
}

func NewSQLiteVerticalRepo(conn db.DBTX) *SQLiteVerticalRepo {
	return &SQLiteVerticalRepo{db: conn}
}

func (r *SQLiteVerticalRepo) GetByID(ctx context.Context, id string) (*domain.Vertical, error) {
	var v domain.Vertical
	err := r.db.QueryRowContext(ctx, `SELECT id, name, color, x, y FROM verticals WHERE id = ?`, id).
		Scan(&v.ID, &v.Name, &v.Color, &v.Position.X, &v.Position.Y)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("vertical: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning vertical: %w", err)
	}
	return &v, nil
}

func (r *SQLiteVerticalRepo) List(ctx context.Context) ([]*domain.Vertical, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, color, x, y FROM verticals ORDER BY sort_order, id`)
	if err != nil {
		return nil, fmt.Errorf("listing verticals: %w", err)
	}
	defer rows.Close()

	var out []*domain.Vertical
	for rows.Next() {
		var v domain.Vertical
		if err := rows.Scan(&v.ID, &v.Name, &v.Color, &v.Position.X, &v.Position.Y); err != nil {
			return nil, fmt.Errorf("scanning vertical: %w", err)
		}
		out = append(out, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating verticals: %w", err)
	}
	return out, nil
}

func (r *SQLiteVerticalRepo) Upsert(ctx context.Context, v *domain.Vertical, order int) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO verticals (id, name, color, x, y, sort_order) VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			color = excluded.color,
			x = excluded.x,
			y = excluded.y,
			sort_order = excluded.sort_order`,
		v.ID, v.Name, v.Color, v.Position.X, v.Position.Y, order)
	if err != nil {
		return fmt.Errorf("upserting vertical %s: %w", v.ID, err)
	}
	return nil
}

func (r *SQLiteVerticalRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM verticals WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting vertical: %w", err)
	}
	return nil
}

func (r *SQLiteVerticalRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM verticals`); err != nil {
		return fmt.Errorf("deleting verticals: %w", err)
	}
	return nil
}
