package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/teammap/internal/domain"
	"github.com/alexanderramin/teammap/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNodeRepo_UpsertAndGetByID(t *testing.T) {
	repo := NewSQLiteNodeRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	lead := testutil.NewTestMember("Lead",
		testutil.WithTopLevel(),
		testutil.WithLevel(5),
		testutil.WithTrack(domain.TrackManager),
		testutil.WithYears(11.5),
		testutil.WithVertical("growth"),
	)
	lead.Notes = "hiring manager"
	lead.Gender = domain.GenderNonBinary
	require.NoError(t, repo.Upsert(ctx, lead, 0))

	got, err := repo.GetByID(ctx, lead.ID)
	require.NoError(t, err)
	assert.Equal(t, lead.Name, got.Name)
	assert.Equal(t, domain.KindTeamMember, got.Kind)
	assert.Equal(t, 5, got.Level)
	assert.Equal(t, domain.TrackManager, got.Track)
	assert.Equal(t, 11.5, got.YearsOfExperience)
	assert.True(t, got.Manager.IsTopLevel())
	assert.Equal(t, "growth", got.VerticalID)
	assert.Equal(t, "hiring manager", got.Notes)
	assert.Equal(t, domain.GenderNonBinary, got.Gender)
	require.NotNil(t, got.JoiningDate)
	assert.True(t, lead.JoiningDate.Equal(*got.JoiningDate))
	assert.True(t, lead.CreatedAt.Equal(got.CreatedAt))
}

func TestNodeRepo_ManagerStatesRoundTrip(t *testing.T) {
	repo := NewSQLiteNodeRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	top := testutil.NewTestMember("Top", testutil.WithTopLevel())
	report := testutil.NewTestMember("Report", testutil.WithManager(top.ID))
	loose := testutil.NewTestHire("Loose")
	dangling := testutil.NewTestMember("Dangling", testutil.WithManager("gone"))

	for i, n := range []*domain.Node{top, report, loose, dangling} {
		require.NoError(t, repo.Upsert(ctx, n, i))
	}

	nodes, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, nodes, 4)

	assert.True(t, nodes[0].Manager.IsTopLevel())
	assert.True(t, nodes[1].Manager.ReportsToID(top.ID))
	assert.True(t, nodes[2].Manager.IsUnassigned(), "unassigned must not come back as top-level")
	assert.True(t, nodes[3].Manager.ReportsToID("gone"))

	assert.Equal(t, domain.KindPlannedHire, nodes[2].Kind)
	assert.Equal(t, "Q3 2025", nodes[2].TentativeDate)
	assert.Nil(t, nodes[2].JoiningDate)
}

func TestNodeRepo_ListFollowsOrder(t *testing.T) {
	repo := NewSQLiteNodeRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	a := testutil.NewTestMember("A")
	b := testutil.NewTestMember("B")
	require.NoError(t, repo.Upsert(ctx, a, 1))
	require.NoError(t, repo.Upsert(ctx, b, 0))

	nodes, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"B", "A"}, []string{nodes[0].Name, nodes[1].Name})
}

func TestNodeRepo_UpsertUpdatesExisting(t *testing.T) {
	repo := NewSQLiteNodeRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	n := testutil.NewTestHire("TBD")
	require.NoError(t, repo.Upsert(ctx, n, 0))

	joined := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	n.Kind = domain.KindTeamMember
	n.JoiningDate = &joined
	n.Manager = domain.TopLevel()
	require.NoError(t, repo.Upsert(ctx, n, 0))

	got, err := repo.GetByID(ctx, n.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.KindTeamMember, got.Kind)
	assert.Equal(t, "2025-04-01", got.JoiningDate.Format(dateLayout))
	assert.True(t, got.Manager.IsTopLevel())

	nodes, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, nodes, 1)
}

func TestNodeRepo_DeleteAndNotFound(t *testing.T) {
	repo := NewSQLiteNodeRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	n := testutil.NewTestMember("Gone")
	require.NoError(t, repo.Upsert(ctx, n, 0))
	require.NoError(t, repo.Delete(ctx, n.ID))

	_, err := repo.GetByID(ctx, n.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	err = repo.Delete(ctx, n.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestNodeRepo_DeleteAll(t *testing.T) {
	repo := NewSQLiteNodeRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Upsert(ctx, testutil.NewTestMember("N"), i))
	}
	require.NoError(t, repo.DeleteAll(ctx))

	nodes, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, nodes)
}
