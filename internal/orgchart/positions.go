package orgchart

import (
	"fmt"
	"maps"

	"github.com/alexanderramin/teammap/internal/domain"
	"github.com/alexanderramin/teammap/internal/layout"
)

// Position returns the cached position of id, if any.
func (c *Chart) Position(id string) (domain.Position, bool) {
	p, ok := c.positions[id]
	return p, ok
}

// Positions returns a copy of the cached positions.
func (c *Chart) Positions() map[string]domain.Position {
	return maps.Clone(c.positions)
}

// SetPosition caches a single position, e.g. after a drag.
func (c *Chart) SetPosition(id string, p domain.Position) error {
	if _, ok := c.byID[id]; !ok {
		return fmt.Errorf("positioning %s: %w", id, ErrNodeNotFound)
	}
	c.positions[id] = p
	return nil
}

// SetPositions caches several positions at once. Nothing is written when any
// id is unknown.
func (c *Chart) SetPositions(ps map[string]domain.Position) error {
	for id := range ps {
		if _, ok := c.byID[id]; !ok {
			return fmt.Errorf("positioning %s: %w", id, ErrNodeNotFound)
		}
	}
	maps.Copy(c.positions, ps)
	return nil
}

// AutoArrange recomputes every position from the reporting forest and
// replaces the cache with the result.
func (c *Chart) AutoArrange(cfg layout.Config) map[string]domain.Position {
	c.positions = layout.Compute(c.nodes, cfg)
	return maps.Clone(c.positions)
}

// FillMissingPositions computes a fresh layout and caches it only for nodes
// without a position. It returns the entries it added.
func (c *Chart) FillMissingPositions(cfg layout.Config) map[string]domain.Position {
	added := make(map[string]domain.Position)
	if len(c.positions) == len(c.nodes) {
		return added
	}
	fresh := layout.Compute(c.nodes, cfg)
	for _, n := range c.nodes {
		if _, ok := c.positions[n.ID]; ok {
			continue
		}
		if p, ok := fresh[n.ID]; ok {
			c.positions[n.ID] = p
			added[n.ID] = p
		}
	}
	return added
}
