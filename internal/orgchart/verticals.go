package orgchart

import (
	"fmt"

	"github.com/alexanderramin/teammap/internal/domain"
)

// VerticalPatch is a partial update of a vertical. Nil fields are untouched.
type VerticalPatch struct {
	Name     *string
	Color    *string
	Position *domain.Position
}

func (c *Chart) Verticals() []*domain.Vertical {
	out := make([]*domain.Vertical, 0, len(c.verticals))
	for _, v := range c.verticals {
		cp := *v
		out = append(out, &cp)
	}
	return out
}

func (c *Chart) Vertical(id string) (*domain.Vertical, bool) {
	v := c.findVertical(id)
	if v == nil {
		return nil, false
	}
	cp := *v
	return &cp, true
}

func (c *Chart) AddVertical(name, color string, pos domain.Position) *domain.Vertical {
	v := &domain.Vertical{
		ID:       c.newID(),
		Name:     name,
		Color:    color,
		Position: pos,
	}
	c.verticals = append(c.verticals, v)
	cp := *v
	return &cp
}

func (c *Chart) UpdateVertical(id string, patch VerticalPatch) (*domain.Vertical, error) {
	v := c.findVertical(id)
	if v == nil {
		return nil, fmt.Errorf("updating vertical %s: %w", id, ErrVerticalNotFound)
	}
	if patch.Name != nil {
		v.Name = *patch.Name
	}
	if patch.Color != nil {
		v.Color = *patch.Color
	}
	if patch.Position != nil {
		v.Position = *patch.Position
	}
	cp := *v
	return &cp, nil
}

// DeleteVertical removes the vertical and clears it from every member node.
// It returns the ids of the nodes that were cleared.
func (c *Chart) DeleteVertical(id string) ([]string, error) {
	idx := -1
	for i, v := range c.verticals {
		if v.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("deleting vertical %s: %w", id, ErrVerticalNotFound)
	}
	c.verticals = append(c.verticals[:idx], c.verticals[idx+1:]...)

	now := c.now()
	var cleared []string
	for _, n := range c.nodes {
		if n.VerticalID == id {
			n.VerticalID = ""
			n.UpdatedAt = now
			cleared = append(cleared, n.ID)
		}
	}
	return cleared, nil
}

// AssignVertical puts nodeID into verticalID. An empty verticalID removes the
// node from its vertical.
func (c *Chart) AssignVertical(nodeID, verticalID string) (*domain.Node, error) {
	n, ok := c.byID[nodeID]
	if !ok {
		return nil, fmt.Errorf("assigning vertical to %s: %w", nodeID, ErrNodeNotFound)
	}
	if verticalID != "" && c.findVertical(verticalID) == nil {
		return nil, fmt.Errorf("assigning vertical %s: %w", verticalID, ErrVerticalNotFound)
	}
	n.VerticalID = verticalID
	n.UpdatedAt = c.now()
	return n.Clone(), nil
}

func (c *Chart) findVertical(id string) *domain.Vertical {
	for _, v := range c.verticals {
		if v.ID == id {
			return v
		}
	}
	return nil
}
