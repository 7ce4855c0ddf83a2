package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/alexanderramin/teammap/internal/domain"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	if err := seedDefaultSettings(db); err != nil {
		return fmt.Errorf("seeding default settings: %w", err)
	}
	return nil
}

// seedDefaultSettings stores the default taxonomy the first time a database
// is opened. Later runs leave the stored settings alone.
func seedDefaultSettings(db *sql.DB) error {
	ctx := context.Background()

	var n int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM app_settings`).Scan(&n); err != nil {
		return fmt.Errorf("counting settings rows: %w", err)
	}
	if n > 0 {
		return nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting seed transaction: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	s := domain.DefaultSettings()
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO app_settings (id, span_of_control_threshold, track_split_level, company_name) VALUES (1, ?, ?, ?)`,
		s.SpanOfControlThreshold, s.TrackSplitLevel, s.CompanyName); err != nil {
		return fmt.Errorf("inserting settings row: %w", err)
	}
	for i, l := range s.Levels {
		isMax := 0
		if l.IsMaxLevel {
			isMax = 1
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO level_configs (id, sort_order, level, name, color, min_years_from_previous, track, is_max_level)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			l.ID, i, l.Level, l.Name, l.Color, l.MinYearsFromPrevious, string(l.Track), isMax); err != nil {
			return fmt.Errorf("inserting level %s: %w", l.ID, err)
		}
	}
	for i, r := range s.RoleTypes {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO role_types (id, sort_order, name, abbreviation) VALUES (?, ?, ?, ?)`,
			r.ID, i, r.Name, r.Abbreviation); err != nil {
			return fmt.Errorf("inserting role type %s: %w", r.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing seed: %w", err)
	}
	committed = true
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS verticals (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		color      TEXT NOT NULL DEFAULT '',
		x          REAL NOT NULL DEFAULT 0,
		y          REAL NOT NULL DEFAULT 0,
		sort_order INTEGER NOT NULL DEFAULT 0
	)`,

	// manager_id is not a foreign key: a dangling reference behaves like a
	// node with no manager and must survive import.
	`CREATE TABLE IF NOT EXISTS nodes (
		id                  TEXT PRIMARY KEY,
		kind                TEXT NOT NULL
		                    CHECK(kind IN ('team_member','planned_hire')),
		name                TEXT NOT NULL,
		role_type           TEXT NOT NULL DEFAULT '',
		level               INTEGER NOT NULL CHECK(level >= 1),
		track               TEXT NOT NULL DEFAULT ''
		                    CHECK(track IN ('','ic','manager')),
		years_of_experience REAL NOT NULL DEFAULT 0,
		manager_state       TEXT NOT NULL DEFAULT 'unassigned'
		                    CHECK(manager_state IN ('unassigned','top_level','reports_to')),
		manager_id          TEXT,
		vertical_id         TEXT,
		joining_date        TEXT,
		tentative_date      TEXT NOT NULL DEFAULT '',
		notes               TEXT NOT NULL DEFAULT '',
		gender              TEXT NOT NULL DEFAULT '',
		sort_order          INTEGER NOT NULL DEFAULT 0,
		created_at          TEXT NOT NULL,
		updated_at          TEXT NOT NULL,
		CHECK((manager_state = 'reports_to') = (manager_id IS NOT NULL))
	)`,
	`CREATE INDEX IF NOT EXISTS idx_nodes_manager ON nodes(manager_id)`,
	`CREATE INDEX IF NOT EXISTS idx_nodes_vertical ON nodes(vertical_id)`,

	`CREATE TABLE IF NOT EXISTS node_positions (
		node_id TEXT PRIMARY KEY REFERENCES nodes(id) ON DELETE CASCADE,
		x       REAL NOT NULL,
		y       REAL NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS app_settings (
		id                        INTEGER PRIMARY KEY CHECK(id = 1),
		span_of_control_threshold INTEGER NOT NULL CHECK(span_of_control_threshold >= 1),
		track_split_level         INTEGER NOT NULL,
		company_name              TEXT NOT NULL DEFAULT ''
	)`,

	`CREATE TABLE IF NOT EXISTS level_configs (
		id                      TEXT PRIMARY KEY,
		sort_order              INTEGER NOT NULL DEFAULT 0,
		level                   INTEGER NOT NULL,
		name                    TEXT NOT NULL,
		color                   TEXT NOT NULL DEFAULT '',
		min_years_from_previous REAL NOT NULL DEFAULT 0,
		track                   TEXT NOT NULL DEFAULT ''
		                        CHECK(track IN ('','ic','manager')),
		is_max_level            INTEGER NOT NULL DEFAULT 0
	)`,

	`CREATE TABLE IF NOT EXISTS role_types (
		id           TEXT PRIMARY KEY,
		sort_order   INTEGER NOT NULL DEFAULT 0,
		name         TEXT NOT NULL,
		abbreviation TEXT NOT NULL DEFAULT ''
	)`,
}
