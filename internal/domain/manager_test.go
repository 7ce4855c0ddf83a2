package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManagerRef_Variants(t *testing.T) {
	var zero ManagerRef
	assert.True(t, zero.IsUnassigned(), "zero value is unassigned")
	assert.False(t, zero.IsTopLevel())

	top := TopLevel()
	assert.True(t, top.IsTopLevel())
	assert.False(t, top.IsUnassigned())
	_, ok := top.ManagerID()
	assert.False(t, ok)

	ref := ReportsTo("m-1")
	id, ok := ref.ManagerID()
	require.True(t, ok)
	assert.Equal(t, "m-1", id)
	assert.True(t, ref.ReportsToID("m-1"))
	assert.False(t, ref.ReportsToID("m-2"))

	assert.False(t, top.Equal(zero), "top-level and unassigned must stay distinct")
	assert.True(t, ReportsTo("").IsUnassigned())
}

func TestManagerRefFromState_RoundTrip(t *testing.T) {
	for _, ref := range []ManagerRef{Unassigned(), TopLevel(), ReportsTo("abc")} {
		id, _ := ref.ManagerID()
		back, err := ManagerRefFromState(ref.State(), id)
		require.NoError(t, err)
		assert.True(t, ref.Equal(back), ref.String())
	}

	_, err := ManagerRefFromState(ManagerStateReportsTo, "")
	assert.Error(t, err)
	_, err = ManagerRefFromState("sideways", "")
	assert.Error(t, err)
}

func TestNodePatch_VariantDates(t *testing.T) {
	tentative := "Q3 2026"
	hire := &Node{Kind: KindPlannedHire, TentativeDate: "Q2 2026"}
	member := &Node{Kind: KindTeamMember}

	patch := NodePatch{TentativeDate: &tentative}
	patch.Apply(hire)
	patch.Apply(member)

	assert.Equal(t, "Q3 2026", hire.TentativeDate)
	assert.Empty(t, member.TentativeDate, "team members never carry a tentative date")
}
