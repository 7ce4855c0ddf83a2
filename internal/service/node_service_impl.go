package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/teammap/internal/db"
	"github.com/alexanderramin/teammap/internal/domain"
	"github.com/alexanderramin/teammap/internal/orgchart"
)

type nodeService struct {
	chart    chartAccess
	observer UseCaseObserver
}

func NewNodeService(uow db.UnitOfWork, observers ...UseCaseObserver) NodeService {
	return &nodeService{
		chart:    chartAccess{uow: uow},
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *nodeService) AddTeamMember(ctx context.Context, in orgchart.NewNode) (node *domain.Node, err error) {
	return s.add(ctx, "add-team-member", in, (*orgchart.Chart).AddTeamMember)
}

func (s *nodeService) AddPlannedHire(ctx context.Context, in orgchart.NewNode) (node *domain.Node, err error) {
	return s.add(ctx, "add-planned-hire", in, (*orgchart.Chart).AddPlannedHire)
}

func (s *nodeService) add(ctx context.Context, name string, in orgchart.NewNode, addFn func(*orgchart.Chart, orgchart.NewNode) *domain.Node) (node *domain.Node, err error) {
	fields := map[string]any{"name": in.Name, "level": in.Level}
	defer observe(ctx, s.observer, name, time.Now(), fields, &err)

	err = s.chart.write(ctx, func(c *orgchart.Chart) error {
		if in.VerticalID != "" {
			if _, ok := c.Vertical(in.VerticalID); !ok {
				return fmt.Errorf("vertical %s: %w", in.VerticalID, orgchart.ErrVerticalNotFound)
			}
		}
		node = addFn(c, in)
		return node.Validate()
	})
	if err != nil {
		return nil, err
	}
	fields["node_id"] = node.ID
	return node, nil
}

func (s *nodeService) Get(ctx context.Context, id string) (node *domain.Node, err error) {
	err = s.chart.read(ctx, func(c *orgchart.Chart) error {
		n, ok := c.Node(id)
		if !ok {
			return fmt.Errorf("node %s: %w", id, orgchart.ErrNodeNotFound)
		}
		node = n
		return nil
	})
	return node, err
}

func (s *nodeService) List(ctx context.Context) (nodes []*domain.Node, err error) {
	err = s.chart.read(ctx, func(c *orgchart.Chart) error {
		nodes = c.Nodes()
		return nil
	})
	return nodes, err
}

func (s *nodeService) Update(ctx context.Context, id string, patch domain.NodePatch) (node *domain.Node, err error) {
	defer observe(ctx, s.observer, "update-node", time.Now(), map[string]any{"node_id": id}, &err)

	err = s.chart.write(ctx, func(c *orgchart.Chart) error {
		if patch.VerticalID != nil {
			if _, err := c.AssignVertical(id, *patch.VerticalID); err != nil {
				return err
			}
			patch.VerticalID = nil
		}
		n, err := c.UpdateNode(id, patch)
		if err != nil {
			return err
		}
		node = n
		return n.Validate()
	})
	if err != nil {
		return nil, err
	}
	return node, nil
}

func (s *nodeService) Delete(ctx context.Context, id string) (cleared []string, err error) {
	fields := map[string]any{"node_id": id}
	defer observe(ctx, s.observer, "delete-node", time.Now(), fields, &err)

	err = s.chart.write(ctx, func(c *orgchart.Chart) error {
		var err error
		cleared, err = c.DeleteNode(id)
		return err
	})
	fields["cleared_reports"] = len(cleared)
	return cleared, err
}

func (s *nodeService) ConvertToHired(ctx context.Context, id string, joiningDate *time.Time) (node *domain.Node, err error) {
	defer observe(ctx, s.observer, "convert-to-hired", time.Now(), map[string]any{"node_id": id}, &err)

	err = s.chart.write(ctx, func(c *orgchart.Chart) error {
		var err error
		node, err = c.ConvertToHired(id, joiningDate)
		return err
	})
	return node, err
}
