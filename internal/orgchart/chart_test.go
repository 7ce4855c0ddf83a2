package orgchart

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/alexanderramin/teammap/internal/domain"
	"github.com/alexanderramin/teammap/internal/layout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 3, 14, 15, 9, 26, 0, time.UTC)

func newTestChart(t *testing.T) *Chart {
	t.Helper()
	seq := 0
	return New(State{Settings: domain.DefaultSettings()},
		WithClock(func() time.Time { return fixedNow }),
		WithIDGenerator(func() string {
			seq++
			return fmt.Sprintf("id-%d", seq)
		}),
	)
}

func TestChart_AddAssignsIDsAndNormalizesTrack(t *testing.T) {
	c := newTestChart(t)

	a := c.AddTeamMember(NewNode{Name: "Ada", Level: 3, Track: domain.TrackManager, Manager: domain.TopLevel()})
	b := c.AddTeamMember(NewNode{Name: "Bo", Level: 4})
	h := c.AddPlannedHire(NewNode{Name: "Future", Level: 6, Track: domain.TrackIC, TentativeDate: "Q2 2025"})

	assert.Equal(t, "id-1", a.ID)
	assert.Equal(t, domain.TrackNone, a.Track, "track dropped below split")
	assert.Equal(t, domain.TrackIC, b.Track, "branched band defaults to ic")
	assert.Equal(t, domain.TrackNone, h.Track, "head carries no track")
	assert.True(t, h.IsPlannedHire())
	assert.Equal(t, "Q2 2025", h.TentativeDate)
	assert.Equal(t, fixedNow, a.CreatedAt)
	assert.Equal(t, 3, c.Len())
}

func TestChart_ReturnedNodesAreCopies(t *testing.T) {
	c := newTestChart(t)
	a := c.AddTeamMember(NewNode{Name: "Ada", Level: 1})
	a.Name = "mutated"

	got, ok := c.Node(a.ID)
	require.True(t, ok)
	assert.Equal(t, "Ada", got.Name)
}

func TestChart_UpdateNode(t *testing.T) {
	c := newTestChart(t)
	a := c.AddTeamMember(NewNode{Name: "Ada", Level: 4, Track: domain.TrackManager})

	lvl := 2
	name := "Ada L."
	got, err := c.UpdateNode(a.ID, domain.NodePatch{Name: &name, Level: &lvl})
	require.NoError(t, err)
	assert.Equal(t, "Ada L.", got.Name)
	assert.Equal(t, domain.TrackNone, got.Track, "level change renormalizes track")

	notes := "only notes"
	_, err = c.UpdateNode("missing", domain.NodePatch{Notes: &notes})
	assert.ErrorIs(t, err, ErrNodeNotFound)
}

func TestChart_SetManagerRejectsCycle(t *testing.T) {
	c := newTestChart(t)
	a := c.AddTeamMember(NewNode{Name: "A", Level: 5, Manager: domain.TopLevel()})
	b := c.AddTeamMember(NewNode{Name: "B", Level: 3, Manager: domain.ReportsTo(a.ID)})
	cc := c.AddTeamMember(NewNode{Name: "C", Level: 2, Manager: domain.ReportsTo(b.ID)})

	applied, err := c.SetManager(a.ID, cc.ID)
	require.NoError(t, err)
	assert.False(t, applied)

	got, _ := c.Node(a.ID)
	assert.True(t, got.Manager.IsTopLevel(), "rejected edge leaves state unchanged")

	applied, err = c.SetManager(a.ID, a.ID)
	require.NoError(t, err)
	assert.False(t, applied, "self-management is a cycle")

	applied, err = c.SetManager(cc.ID, a.ID)
	require.NoError(t, err)
	assert.True(t, applied)
	assert.Equal(t, []string{cc.ID, a.ID}, ids(c.AncestorChain(cc.ID)))

	_, err = c.SetManager("ghost", a.ID)
	assert.ErrorIs(t, err, ErrNodeNotFound)
}

func TestChart_TopLevelAndRemoveManagerKeepThreeStates(t *testing.T) {
	c := newTestChart(t)
	a := c.AddTeamMember(NewNode{Name: "A", Level: 1, Manager: domain.ReportsTo("x")})

	require.NoError(t, c.SetTopLevel(a.ID))
	got, _ := c.Node(a.ID)
	assert.True(t, got.Manager.IsTopLevel())

	require.NoError(t, c.RemoveManager(a.ID))
	got, _ = c.Node(a.ID)
	assert.True(t, got.Manager.IsUnassigned())
	assert.False(t, got.Manager.IsTopLevel())

	assert.ErrorIs(t, c.RemoveManager("ghost"), ErrNodeNotFound)
}

func TestChart_DeleteNodeCascades(t *testing.T) {
	c := newTestChart(t)
	a := c.AddTeamMember(NewNode{Name: "A", Level: 5, Manager: domain.TopLevel()})
	b := c.AddTeamMember(NewNode{Name: "B", Level: 2, Manager: domain.ReportsTo(a.ID)})
	d := c.AddTeamMember(NewNode{Name: "D", Level: 2, Manager: domain.ReportsTo(a.ID)})
	e := c.AddTeamMember(NewNode{Name: "E", Level: 1, Manager: domain.ReportsTo(b.ID)})
	require.NoError(t, c.SetPosition(a.ID, domain.Position{X: 1, Y: 2}))

	cleared, err := c.DeleteNode(a.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{b.ID, d.ID}, cleared)

	_, ok := c.Node(a.ID)
	assert.False(t, ok)
	_, ok = c.Position(a.ID)
	assert.False(t, ok, "position removed with the node")

	for _, x := range c.Nodes() {
		assert.False(t, x.Manager.ReportsToID(a.ID))
	}
	got, _ := c.Node(b.ID)
	assert.True(t, got.Manager.IsUnassigned())
	got, _ = c.Node(e.ID)
	assert.True(t, got.Manager.ReportsToID(b.ID), "grand-reports keep their manager")

	_, err = c.DeleteNode(a.ID)
	assert.ErrorIs(t, err, ErrNodeNotFound)
}

func TestChart_ConvertToHired(t *testing.T) {
	c := newTestChart(t)
	mgr := c.AddTeamMember(NewNode{Name: "M", Level: 5, Track: domain.TrackManager, Manager: domain.TopLevel()})
	h := c.AddPlannedHire(NewNode{
		Name:          "Future",
		RoleType:      "product",
		Level:         4,
		Track:         domain.TrackManager,
		Manager:       domain.ReportsTo(mgr.ID),
		TentativeDate: "Q3 2025",
	})

	got, err := c.ConvertToHired(h.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, h.ID, got.ID)
	assert.False(t, got.IsPlannedHire())
	assert.Empty(t, got.TentativeDate)
	require.NotNil(t, got.JoiningDate)
	assert.Equal(t, time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC), *got.JoiningDate)
	assert.Equal(t, 4, got.Level)
	assert.Equal(t, domain.TrackManager, got.Track)
	assert.True(t, got.Manager.ReportsToID(mgr.ID))
	assert.Equal(t, "product", got.RoleType)

	_, err = c.ConvertToHired(h.ID, nil)
	assert.ErrorIs(t, err, ErrNotPlannedHire)

	h2 := c.AddPlannedHire(NewNode{Name: "Later", Level: 1})
	joined := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	got, err = c.ConvertToHired(h2.ID, &joined)
	require.NoError(t, err)
	assert.Equal(t, joined, *got.JoiningDate)
}

func TestChart_PositionsStore(t *testing.T) {
	c := newTestChart(t)
	a := c.AddTeamMember(NewNode{Name: "A", Level: 5, Manager: domain.TopLevel()})
	b := c.AddTeamMember(NewNode{Name: "B", Level: 1, Manager: domain.ReportsTo(a.ID)})

	err := c.SetPositions(map[string]domain.Position{
		a.ID:    {X: 5, Y: 5},
		"ghost": {X: 1, Y: 1},
	})
	assert.ErrorIs(t, err, ErrNodeNotFound)
	assert.Empty(t, c.Positions(), "bulk write is all or nothing")

	require.NoError(t, c.SetPosition(a.ID, domain.Position{X: 5, Y: 5}))
	added := c.FillMissingPositions(layout.DefaultConfig())
	assert.Len(t, added, 1)
	assert.Contains(t, added, b.ID)

	p, ok := c.Position(a.ID)
	require.True(t, ok)
	assert.Equal(t, domain.Position{X: 5, Y: 5}, p, "existing positions survive fill-in")

	all := c.AutoArrange(layout.DefaultConfig())
	assert.Len(t, all, 2)
	assert.NotEqual(t, domain.Position{X: 5, Y: 5}, all[a.ID], "auto-arrange discards cached positions")
}

func TestChart_Verticals(t *testing.T) {
	c := newTestChart(t)
	a := c.AddTeamMember(NewNode{Name: "A", Level: 1})
	v := c.AddVertical("Growth", "#fde68a", domain.Position{X: 10})

	_, err := c.AssignVertical(a.ID, "nope")
	assert.ErrorIs(t, err, ErrVerticalNotFound)

	got, err := c.AssignVertical(a.ID, v.ID)
	require.NoError(t, err)
	assert.Equal(t, v.ID, got.VerticalID)

	name := "Core"
	upd, err := c.UpdateVertical(v.ID, VerticalPatch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Core", upd.Name)
	assert.Equal(t, "#fde68a", upd.Color)

	cleared, err := c.DeleteVertical(v.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{a.ID}, cleared)
	n, _ := c.Node(a.ID)
	assert.Empty(t, n.VerticalID)
	assert.Empty(t, c.Verticals())

	_, err = c.DeleteVertical(v.ID)
	assert.ErrorIs(t, err, ErrVerticalNotFound)
}

func TestChart_SettingsValidation(t *testing.T) {
	c := newTestChart(t)

	bad := c.Settings()
	bad.SpanOfControlThreshold = 0
	err := c.SetSettings(bad)
	assert.ErrorIs(t, err, domain.ErrInvalidSettings)
	assert.Equal(t, domain.DefaultSpanOfControlThreshold, c.Settings().SpanOfControlThreshold)

	good := c.Settings()
	good.SpanOfControlThreshold = 3
	require.NoError(t, c.SetSettings(good))
	assert.Equal(t, 3, c.Settings().SpanOfControlThreshold)

	c.ResetSettings()
	assert.Equal(t, domain.DefaultSettings(), c.Settings())
}

func TestChart_SettingsChangeRenormalizesTracks(t *testing.T) {
	c := newTestChart(t)
	three := c.AddTeamMember(NewNode{Name: "Three", Level: 3})
	four := c.AddTeamMember(NewNode{Name: "Four", Level: 4, Track: domain.TrackManager})
	five := c.AddTeamMember(NewNode{Name: "Five", Level: 5, Track: domain.TrackIC})

	track := func(id string) domain.Track {
		t.Helper()
		n, ok := c.Node(id)
		require.True(t, ok)
		return n.Track
	}

	// Head moves down to 5 and the split down to 3.
	s := c.Settings()
	s.TrackSplitLevel = 3
	s.Levels = []domain.LevelConfig{
		{ID: "level-1", Level: 1, Name: "L1"},
		{ID: "level-2", Level: 2, Name: "L2", MinYearsFromPrevious: 1},
		{ID: "level-3-ic", Level: 3, Name: "L3 IC", MinYearsFromPrevious: 2, Track: domain.TrackIC},
		{ID: "level-3-manager", Level: 3, Name: "L3 Manager", MinYearsFromPrevious: 2, Track: domain.TrackManager},
		{ID: "level-4-ic", Level: 4, Name: "L4 IC", MinYearsFromPrevious: 3, Track: domain.TrackIC},
		{ID: "level-4-manager", Level: 4, Name: "L4 Manager", MinYearsFromPrevious: 3, Track: domain.TrackManager},
		{ID: "level-5-head", Level: 5, Name: "Head", MinYearsFromPrevious: 4, IsMaxLevel: true},
	}
	require.NoError(t, c.SetSettings(s))
	assert.Equal(t, domain.TrackIC, track(three.ID), "newly branched level defaults to ic")
	assert.Equal(t, domain.TrackManager, track(four.ID))
	assert.Equal(t, domain.TrackNone, track(five.ID), "new head carries no track")

	c.ResetSettings()
	assert.Equal(t, domain.TrackNone, track(three.ID), "shared again below the default split")
	assert.Equal(t, domain.TrackManager, track(four.ID))
	assert.Equal(t, domain.TrackIC, track(five.ID))

	state := c.State()
	state.Nodes[1].Level = 2
	c.Replace(state)
	assert.Equal(t, domain.TrackNone, track(four.ID), "replace normalizes against incoming settings")
}

func TestChart_ReplaceAndClear(t *testing.T) {
	c := newTestChart(t)
	a := c.AddTeamMember(NewNode{Name: "A", Level: 1, Manager: domain.TopLevel()})
	c.AddVertical("V", "", domain.Position{})
	require.NoError(t, c.SetPosition(a.ID, domain.Position{X: 1}))

	state := c.State()
	state.Positions["stale"] = domain.Position{X: 9}
	other := New(state)
	assert.Equal(t, c.Nodes(), other.Nodes())
	assert.Equal(t, c.Verticals(), other.Verticals())
	assert.NotContains(t, other.Positions(), "stale", "positions without a node are dropped")

	s := c.Settings()
	s.CompanyName = "Acme"
	require.NoError(t, c.SetSettings(s))
	c.Clear()
	assert.Zero(t, c.Len())
	assert.Empty(t, c.Verticals())
	assert.Empty(t, c.Positions())
	assert.Equal(t, "Acme", c.Settings().CompanyName, "clear keeps settings")

	c.Replace(state)
	assert.Equal(t, 1, c.Len())
}

func TestChart_Facts(t *testing.T) {
	c := newTestChart(t)
	s := c.Settings()
	s.SpanOfControlThreshold = 1
	require.NoError(t, c.SetSettings(s))

	lead := c.AddTeamMember(NewNode{Name: "Lead", RoleType: "product", Level: 5, Track: domain.TrackManager, Manager: domain.TopLevel()})
	c.AddTeamMember(NewNode{Name: "R1", Level: 2, Manager: domain.ReportsTo(lead.ID)})
	r2 := c.AddPlannedHire(NewNode{Name: "R2", Level: 2, Manager: domain.ReportsTo(lead.ID)})

	facts := c.Facts()
	require.Len(t, facts, 3)

	assert.Equal(t, 2, facts[0].ReportCount)
	assert.True(t, facts[0].OverCapacity)
	assert.Equal(t, "Senior Design Manager", facts[0].LevelName)
	assert.Equal(t, "Product Designer", facts[0].RoleName)
	assert.Empty(t, facts[0].ManagerName)
	assert.Zero(t, facts[0].Depth)

	got, ok := c.FactsFor(r2.ID)
	require.True(t, ok)
	assert.Equal(t, "Lead", got.ManagerName)
	assert.Equal(t, 1, got.Depth)
	assert.False(t, got.Promotion.Eligible)

	_, ok = c.FactsFor("ghost")
	assert.False(t, ok)
}

// TestChart_Invariants_NoCycles property-tests that random manager
// assignments never produce a cycle and that report counts stay exact.
func TestChart_Invariants_NoCycles(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for trial := 0; trial < 100; trial++ {
		c := newTestChart(t)
		size := rng.Intn(20) + 2
		var all []string
		for i := 0; i < size; i++ {
			all = append(all, c.AddTeamMember(NewNode{Name: fmt.Sprintf("n%d", i), Level: 1}).ID)
		}

		for op := 0; op < 60; op++ {
			node := all[rng.Intn(len(all))]
			mgr := all[rng.Intn(len(all))]
			before, ok := c.Node(node)
			if !ok {
				continue
			}

			applied, err := c.SetManager(node, mgr)
			require.NoError(t, err)

			after, _ := c.Node(node)
			if !applied {
				assert.True(t, before.Manager.Equal(after.Manager),
					"trial %d: rejected edge changed state", trial)
			}

			if rng.Intn(10) == 0 {
				victim := all[rng.Intn(len(all))]
				if _, ok := c.Node(victim); ok {
					_, err := c.DeleteNode(victim)
					require.NoError(t, err)
					for _, x := range c.Nodes() {
						assert.False(t, x.Manager.ReportsToID(victim), "trial %d: dangling after delete", trial)
					}
				}
			}
		}

		nodes := c.Nodes()
		for _, x := range nodes {
			chain := AncestorChain(x.ID, nodes)
			last := chain[len(chain)-1]
			mgr, ok := last.Manager.ManagerID()
			if ok {
				_, exists := c.Node(mgr)
				assert.False(t, exists, "trial %d: chain from %s ended on a live manager, so it looped", trial, x.ID)
			}
		}

		want := make(map[string]int)
		for _, x := range nodes {
			if id, ok := x.Manager.ManagerID(); ok {
				want[id]++
			}
		}
		assert.Equal(t, want, c.ReportCounts(), "trial %d", trial)
	}
}
