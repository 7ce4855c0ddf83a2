package layout

import (
	"fmt"
	"math"
	"math/rand"
	"testing"

	"github.com/alexanderramin/teammap/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func node(id string, mgr domain.ManagerRef) *domain.Node {
	return &domain.Node{ID: id, Kind: domain.KindTeamMember, Name: id, Level: 1, Manager: mgr}
}

func TestCompute_Empty(t *testing.T) {
	got := Compute(nil, DefaultConfig())
	assert.Empty(t, got)
}

func TestCompute_ParentCenteredOverTwoChildren(t *testing.T) {
	cfg := DefaultConfig()
	nodes := []*domain.Node{
		node("A", domain.TopLevel()),
		node("B", domain.ReportsTo("A")),
		node("C", domain.ReportsTo("A")),
	}

	got := Compute(nodes, cfg)
	require.Len(t, got, 3)

	a, b, c := got["A"], got["B"], got["C"]
	assert.Equal(t, cfg.StartY, a.Y)
	assert.Equal(t, b.Y, c.Y)
	assert.Equal(t, a.Y+cfg.RowHeight(), b.Y)
	assert.InDelta(t, (b.X+c.X)/2, a.X, 1e-9, "parent sits over the midpoint of its children")

	assert.InDelta(t, 210.0, a.X, 1e-9)
	assert.InDelta(t, 100.0, b.X, 1e-9)
	assert.InDelta(t, 320.0, c.X, 1e-9)
}

func TestCompute_SingleRoot(t *testing.T) {
	cfg := DefaultConfig()
	got := Compute([]*domain.Node{node("A", domain.TopLevel())}, cfg)
	assert.Equal(t, domain.Position{X: cfg.StartX, Y: cfg.StartY}, got["A"])
}

func TestCompute_RootsAdvanceBySubtreeWidth(t *testing.T) {
	cfg := DefaultConfig()
	nodes := []*domain.Node{
		node("A", domain.TopLevel()),
		node("A1", domain.ReportsTo("A")),
		node("A2", domain.ReportsTo("A")),
		node("B", domain.TopLevel()),
	}

	got := Compute(nodes, cfg)

	// A's subtree is two cards plus one gap wide.
	aWidth := 2*cfg.NodeWidth + cfg.HorizontalGap
	assert.InDelta(t, cfg.StartX+aWidth+2*cfg.HorizontalGap, got["B"].X, 1e-9)
	assert.Equal(t, cfg.StartY, got["B"].Y)
}

func TestCompute_DanglingManagerGoesToOrphanRow(t *testing.T) {
	cfg := DefaultConfig()
	nodes := []*domain.Node{
		node("A", domain.TopLevel()),
		node("B", domain.ReportsTo("A")),
		node("D", domain.ReportsTo("nonexistent-id")),
	}

	got := Compute(nodes, cfg)
	require.Contains(t, got, "D")

	d := got["D"]
	assert.Equal(t, cfg.StartY, d.Y, "orphans share the top row")
	for _, id := range []string{"A", "B"} {
		assert.GreaterOrEqual(t, d.X, got[id].X+cfg.NodeWidth+cfg.HorizontalGap,
			"orphan must sit to the right of %s", id)
	}
}

func TestCompute_UnassignedIsNotARoot(t *testing.T) {
	cfg := DefaultConfig()
	nodes := []*domain.Node{
		node("U1", domain.Unassigned()),
		node("U2", domain.Unassigned()),
		node("U3", domain.ReportsTo("U1")),
	}

	got := Compute(nodes, cfg)
	require.Len(t, got, 3)

	// Nothing is placed as a tree, so the orphan row starts at the origin.
	assert.Equal(t, domain.Position{X: cfg.StartX, Y: cfg.StartY}, got["U1"])
	assert.InDelta(t, cfg.StartX+cfg.NodeWidth+cfg.HorizontalGap, got["U2"].X, 1e-9)
	assert.InDelta(t, cfg.StartX+2*(cfg.NodeWidth+cfg.HorizontalGap), got["U3"].X, 1e-9)
}

func TestCompute_CyclicDataTerminates(t *testing.T) {
	nodes := []*domain.Node{
		node("R", domain.TopLevel()),
		node("X", domain.ReportsTo("Y")),
		node("Y", domain.ReportsTo("X")),
	}

	got := Compute(nodes, DefaultConfig())
	assert.Len(t, got, 3, "cycle members end up in the orphan row")
}

func TestCompute_CustomConfigKeepsProportions(t *testing.T) {
	cfg := Config{NodeWidth: 90, NodeHeight: 50, HorizontalGap: 20, VerticalGap: 40}
	nodes := []*domain.Node{
		node("A", domain.TopLevel()),
		node("B", domain.ReportsTo("A")),
		node("C", domain.ReportsTo("A")),
	}

	got := Compute(nodes, cfg)
	assert.InDelta(t, 55.0, got["A"].X, 1e-9)
	assert.InDelta(t, 90.0, got["B"].Y, 1e-9)
	assert.InDelta(t, 110.0, got["C"].X, 1e-9)
}

// TestCompute_Invariants_RandomForests property-tests row depth and the
// non-overlap of sibling subtrees.
func TestCompute_Invariants_RandomForests(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	cfg := DefaultConfig()

	for trial := 0; trial < 200; trial++ {
		size := rng.Intn(50) + 1
		nodes := make([]*domain.Node, size)
		nodes[0] = node("n0", domain.TopLevel())
		for i := 1; i < size; i++ {
			id := fmt.Sprintf("n%d", i)
			if rng.Intn(5) == 0 {
				nodes[i] = node(id, domain.TopLevel())
				continue
			}
			nodes[i] = node(id, domain.ReportsTo(fmt.Sprintf("n%d", rng.Intn(i))))
		}

		got := Compute(nodes, cfg)
		require.Len(t, got, size, "trial %d", trial)

		children := make(map[string][]string)
		depth := make(map[string]int)
		var roots []string
		for _, n := range nodes {
			if mgr, ok := n.Manager.ManagerID(); ok {
				children[mgr] = append(children[mgr], n.ID)
				depth[n.ID] = depth[mgr] + 1
			} else {
				roots = append(roots, n.ID)
			}
		}

		for _, n := range nodes {
			want := cfg.StartY + float64(depth[n.ID])*cfg.RowHeight()
			assert.InDelta(t, want, got[n.ID].Y, 1e-9, "trial %d node %s depth", trial, n.ID)
		}

		extent := func(id string) (float64, float64) {
			lo, hi := math.Inf(1), math.Inf(-1)
			var walk func(string)
			walk = func(cur string) {
				p := got[cur]
				lo = math.Min(lo, p.X)
				hi = math.Max(hi, p.X+cfg.NodeWidth)
				for _, k := range children[cur] {
					walk(k)
				}
			}
			walk(id)
			return lo, hi
		}

		checkRow := func(ids []string) {
			for i := 1; i < len(ids); i++ {
				_, prevHi := extent(ids[i-1])
				lo, _ := extent(ids[i])
				assert.LessOrEqual(t, prevHi, lo+1e-9,
					"trial %d: subtrees %s and %s overlap", trial, ids[i-1], ids[i])
			}
		}
		checkRow(roots)
		for _, kids := range children {
			checkRow(kids)
		}
	}
}
