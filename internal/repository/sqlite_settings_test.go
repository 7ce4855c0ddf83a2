package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/teammap/internal/domain"
	"github.com/alexanderramin/teammap/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsRepo_Get_DefaultSeeded(t *testing.T) {
	repo := NewSQLiteSettingsRepo(testutil.NewTestDB(t))

	got, err := repo.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSettings(), got)
}

func TestSettingsRepo_SaveReplacesLists(t *testing.T) {
	repo := NewSQLiteSettingsRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	s := domain.DefaultSettings()
	s.CompanyName = "Acme"
	s.SpanOfControlThreshold = 3
	s.RoleTypes = []domain.RoleType{{ID: "backend", Name: "Backend Engineer", Abbreviation: "BE"}}
	s.Levels = s.Levels[:len(s.Levels)-1]
	s.Levels = append(s.Levels, domain.LevelConfig{ID: "level-6-head", Level: 6, Name: "VP", Color: "#000", MinYearsFromPrevious: 5, IsMaxLevel: true})
	require.NoError(t, repo.Save(ctx, s))

	got, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, s, got)
}

func TestSettingsRepo_Get_NotFoundWhenRowDeleted(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteSettingsRepo(database)
	ctx := context.Background()

	_, err := database.ExecContext(ctx, `DELETE FROM app_settings`)
	require.NoError(t, err)

	_, err = repo.Get(ctx)
	assert.ErrorIs(t, err, ErrNotFound)
}
