package orgchart

import (
	"github.com/alexanderramin/teammap/internal/domain"
	"github.com/alexanderramin/teammap/internal/levels"
)

// NodeFacts is everything a rendered card shows that is derived rather than
// stored.
type NodeFacts struct {
	Node             *domain.Node
	ReportCount      int
	OverCapacity     bool
	SpanThreshold    int
	Promotion        levels.Promotion
	LevelName        string
	LevelColor       string
	RoleName         string
	RoleAbbreviation string
	ManagerName      string
	Depth            int
}

// Facts derives the card facts for every node, in node order. Report counts
// are computed once for the whole set.
func (c *Chart) Facts() []NodeFacts {
	counts := ReportCounts(c.nodes)
	threshold := c.settings.SpanOfControlThreshold

	out := make([]NodeFacts, 0, len(c.nodes))
	for _, n := range c.nodes {
		out = append(out, c.factsFor(n, counts, threshold))
	}
	return out
}

// FactsFor derives the card facts for a single node.
func (c *Chart) FactsFor(id string) (NodeFacts, bool) {
	n, ok := c.byID[id]
	if !ok {
		return NodeFacts{}, false
	}
	return c.factsFor(n, ReportCounts(c.nodes), c.settings.SpanOfControlThreshold), true
}

func (c *Chart) factsFor(n *domain.Node, counts map[string]int, threshold int) NodeFacts {
	f := NodeFacts{
		Node:             n.Clone(),
		ReportCount:      counts[n.ID],
		OverCapacity:     IsOverCapacity(n.ID, counts, threshold),
		SpanThreshold:    threshold,
		Promotion:        levels.PromotionStatus(n, c.settings),
		LevelName:        levels.Name(n.Level, n.Track, c.settings),
		LevelColor:       levels.Color(n.Level, n.Track, c.settings),
		RoleName:         levels.RoleTypeName(n.RoleType, c.settings),
		RoleAbbreviation: levels.RoleTypeAbbreviation(n.RoleType, c.settings),
	}
	chain := ancestorChain(n.ID, c.byID)
	if len(chain) > 1 {
		f.Depth = len(chain) - 1
		f.ManagerName = chain[1].Name
	}
	return f
}
