package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/teammap/internal/db"
	"github.com/alexanderramin/teammap/internal/domain"
)

// SQLiteSettingsRepo implements SettingsRepo across the app_settings,
// level_configs and role_types tables.
type SQLiteSettingsRepo struct {
	db db.DBTX
}

func NewSQLiteSettingsRepo(conn db.DBTX) *SQLiteSettingsRepo {
	return &SQLiteSettingsRepo{db: conn}
}

func (r *SQLiteSettingsRepo) Get(ctx context.Context) (domain.Settings, error) {
	var s domain.Settings
	err := r.db.QueryRowContext(ctx,
		`SELECT span_of_control_threshold, track_split_level, company_name FROM app_settings WHERE id = 1`).
		Scan(&s.SpanOfControlThreshold, &s.TrackSplitLevel, &s.CompanyName)
	if err != nil {
		if err == sql.ErrNoRows {
			return domain.Settings{}, fmt.Errorf("settings: %w", ErrNotFound)
		}
		return domain.Settings{}, fmt.Errorf("scanning settings: %w", err)
	}

	if s.Levels, err = r.listLevels(ctx); err != nil {
		return domain.Settings{}, err
	}
	if s.RoleTypes, err = r.listRoleTypes(ctx); err != nil {
		return domain.Settings{}, err
	}
	return s, nil
}

func (r *SQLiteSettingsRepo) listLevels(ctx context.Context) ([]domain.LevelConfig, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, level, name, color, min_years_from_previous, track, is_max_level
		FROM level_configs ORDER BY sort_order, id`)
	if err != nil {
		return nil, fmt.Errorf("listing levels: %w", err)
	}
	defer rows.Close()

	var out []domain.LevelConfig
	for rows.Next() {
		var l domain.LevelConfig
		var track string
		var isMax int
		if err := rows.Scan(&l.ID, &l.Level, &l.Name, &l.Color, &l.MinYearsFromPrevious, &track, &isMax); err != nil {
			return nil, fmt.Errorf("scanning level: %w", err)
		}
		l.Track = domain.Track(track)
		l.IsMaxLevel = intToBool(isMax)
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating levels: %w", err)
	}
	return out, nil
}

func (r *SQLiteSettingsRepo) listRoleTypes(ctx context.Context) ([]domain.RoleType, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, abbreviation FROM role_types ORDER BY sort_order, id`)
	if err != nil {
		return nil, fmt.Errorf("listing role types: %w", err)
	}
	defer rows.Close()

	var out []domain.RoleType
	for rows.Next() {
		var rt domain.RoleType
		if err := rows.Scan(&rt.ID, &rt.Name, &rt.Abbreviation); err != nil {
			return nil, fmt.Errorf("scanning role type: %w", err)
		}
		out = append(out, rt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating role types: %w", err)
	}
	return out, nil
}

// Save writes s in full. Callers run it inside a transaction so a failure
// leaves the previous settings intact.
func (r *SQLiteSettingsRepo) Save(ctx context.Context, s domain.Settings) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO app_settings (id, span_of_control_threshold, track_split_level, company_name)
		VALUES (1, ?, ?, ?)`,
		s.SpanOfControlThreshold, s.TrackSplitLevel, s.CompanyName)
	if err != nil {
		return fmt.Errorf("saving settings: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, `DELETE FROM level_configs`); err != nil {
		return fmt.Errorf("clearing levels: %w", err)
	}
	for i, l := range s.Levels {
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO level_configs (id, sort_order, level, name, color, min_years_from_previous, track, is_max_level)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			l.ID, i, l.Level, l.Name, l.Color, l.MinYearsFromPrevious, string(l.Track), boolToInt(l.IsMaxLevel))
		if err != nil {
			return fmt.Errorf("inserting level %s: %w", l.ID, err)
		}
	}

	if _, err := r.db.ExecContext(ctx, `DELETE FROM role_types`); err != nil {
		return fmt.Errorf("clearing role types: %w", err)
	}
	for i, rt := range s.RoleTypes {
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO role_types (id, sort_order, name, abbreviation) VALUES (?, ?, ?, ?)`,
			rt.ID, i, rt.Name, rt.Abbreviation)
		if err != nil {
			return fmt.Errorf("inserting role type %s: %w", rt.ID, err)
		}
	}
	return nil
}
