package service

import (
	"context"
	"testing"

	"github.com/alexanderramin/teammap/internal/domain"
	"github.com/alexanderramin/teammap/internal/orgchart"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerticalService_Lifecycle(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()

	web, err := s.verticals.Add(ctx, "Web", "#ff0000", domain.Position{X: 10, Y: 20})
	require.NoError(t, err)
	mobile, err := s.verticals.Add(ctx, "Mobile", "", domain.Position{})
	require.NoError(t, err)

	list, err := s.verticals.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, web.ID, list[0].ID)
	assert.Equal(t, domain.Position{X: 10, Y: 20}, list[0].Position)
	assert.Equal(t, mobile.ID, list[1].ID)

	renamed, err := s.verticals.Update(ctx, mobile.ID, orgchart.VerticalPatch{Name: ptr("Apps")})
	require.NoError(t, err)
	assert.Equal(t, "Apps", renamed.Name)

	_, err = s.verticals.Update(ctx, mobile.ID, orgchart.VerticalPatch{Name: ptr("")})
	require.Error(t, err)
	_, err = s.verticals.Add(ctx, "", "", domain.Position{})
	require.Error(t, err)

	a := addMember(t, s, "A", 1, domain.Unassigned())
	b := addMember(t, s, "B", 1, domain.Unassigned())
	_, err = s.verticals.Assign(ctx, a.ID, web.ID)
	require.NoError(t, err)
	_, err = s.verticals.Assign(ctx, b.ID, web.ID)
	require.NoError(t, err)

	_, err = s.verticals.Assign(ctx, a.ID, "missing")
	require.ErrorIs(t, err, orgchart.ErrVerticalNotFound)

	cleared, err := s.verticals.Delete(ctx, web.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{a.ID, b.ID}, cleared)

	got, err := s.nodes.Get(ctx, a.ID)
	require.NoError(t, err)
	assert.Empty(t, got.VerticalID)

	list, err = s.verticals.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Apps", list[0].Name)

	_, err = s.verticals.Delete(ctx, web.ID)
	require.ErrorIs(t, err, orgchart.ErrVerticalNotFound)
}

func TestVerticalService_AssignEmptyClears(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()

	v, err := s.verticals.Add(ctx, "Data", "", domain.Position{})
	require.NoError(t, err)
	n := addMember(t, s, "N", 1, domain.Unassigned())

	_, err = s.verticals.Assign(ctx, n.ID, v.ID)
	require.NoError(t, err)
	got, err := s.verticals.Assign(ctx, n.ID, "")
	require.NoError(t, err)
	assert.Empty(t, got.VerticalID)
}
