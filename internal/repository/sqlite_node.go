package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/teammap/internal/db"
	"github.com/alexanderramin/teammap/internal/domain"
)

// SQLiteNodeRepo implements NodeRepo using a SQLite database.
type SQLiteNodeRepo struct {
	db db.DBTX
}

// NewSQLiteNodeRepo creates a new SQLiteNodeRepo.
func NewSQLiteNodeRepo(conn db.DBTX) *SQLiteNodeRepo {
	return &SQLiteNodeRepo{db: conn}
}

const nodeColumns = `id, kind, name, role_type, level, track, years_of_experience,
	manager_state, manager_id, vertical_id, joining_date, tentative_date, notes, gender,
	created_at, updated_at`

func (r *SQLiteNodeRepo) GetByID(ctx context.Context, id string) (*domain.Node, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+nodeColumns+` FROM nodes WHERE id = ?`, id)
	n, err := scanNode(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("node: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning node: %w", err)
	}
	return n, nil
}

func (r *SQLiteNodeRepo) List(ctx context.Context) ([]*domain.Node, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+nodeColumns+` FROM nodes ORDER BY sort_order, created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("listing nodes: %w", err)
	}
	defer rows.Close()

	var nodes []*domain.Node
	for rows.Next() {
		n, err := scanNode(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning node: %w", err)
		}
		nodes = append(nodes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating nodes: %w", err)
	}
	return nodes, nil
}

func (r *SQLiteNodeRepo) Upsert(ctx context.Context, n *domain.Node, order int) error {
	managerID, _ := n.Manager.ManagerID()
	query := `INSERT INTO nodes (` + nodeColumns + `, sort_order)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			kind = excluded.kind,
			name = excluded.name,
			role_type = excluded.role_type,
			level = excluded.level,
			track = excluded.track,
			years_of_experience = excluded.years_of_experience,
			manager_state = excluded.manager_state,
			manager_id = excluded.manager_id,
			vertical_id = excluded.vertical_id,
			joining_date = excluded.joining_date,
			tentative_date = excluded.tentative_date,
			notes = excluded.notes,
			gender = excluded.gender,
			created_at = excluded.created_at,
			updated_at = excluded.updated_at,
			sort_order = excluded.sort_order`
	_, err := r.db.ExecContext(ctx, query,
		n.ID,
		string(n.Kind),
		n.Name,
		n.RoleType,
		n.Level,
		string(n.Track),
		n.YearsOfExperience,
		string(n.Manager.State()),
		nullableString(managerID),
		nullableString(n.VerticalID),
		nullableTimeToString(n.JoiningDate, dateLayout),
		n.TentativeDate,
		n.Notes,
		string(n.Gender),
		n.CreatedAt.Format(time.RFC3339Nano),
		n.UpdatedAt.Format(time.RFC3339Nano),
		order,
	)
	if err != nil {
		return fmt.Errorf("upserting node %s: %w", n.ID, err)
	}
	return nil
}

func (r *SQLiteNodeRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM nodes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting node: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("node %s: %w", id, ErrNotFound)
	}
	return nil
}

func (r *SQLiteNodeRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM nodes`); err != nil {
		return fmt.Errorf("deleting nodes: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanNode(s scanner) (*domain.Node, error) {
	var (
		n                              domain.Node
		kind, track, gender, mgrState  string
		managerID, verticalID, joining sql.NullString
		createdAt, updatedAt           string
	)
	err := s.Scan(
		&n.ID,
		&kind,
		&n.Name,
		&n.RoleType,
		&n.Level,
		&track,
		&n.YearsOfExperience,
		&mgrState,
		&managerID,
		&verticalID,
		&joining,
		&n.TentativeDate,
		&n.Notes,
		&gender,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	n.Kind = domain.NodeKind(kind)
	n.Track = domain.Track(track)
	n.Gender = domain.Gender(gender)
	n.VerticalID = verticalID.String
	n.JoiningDate = parseNullableTime(joining, dateLayout)

	n.Manager, err = domain.ManagerRefFromState(domain.ManagerState(mgrState), managerID.String)
	if err != nil {
		return nil, fmt.Errorf("node %s: %w", n.ID, err)
	}
	if n.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return nil, fmt.Errorf("node %s created_at: %w", n.ID, err)
	}
	if n.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt); err != nil {
		return nil, fmt.Errorf("node %s updated_at: %w", n.ID, err)
	}
	return &n, nil
}
