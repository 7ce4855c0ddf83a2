package service

import (
	"context"
	"errors"
	"time"

	"github.com/alexanderramin/teammap/internal/db"
	"github.com/alexanderramin/teammap/internal/domain"
	"github.com/alexanderramin/teammap/internal/orgchart"
)

type verticalService struct {
	chart    chartAccess
	observer UseCaseObserver
}

func NewVerticalService(uow db.UnitOfWork, observers ...UseCaseObserver) VerticalService {
	return &verticalService{
		chart:    chartAccess{uow: uow},
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *verticalService) Add(ctx context.Context, name, color string, pos domain.Position) (v *domain.Vertical, err error) {
	fields := map[string]any{"name": name}
	defer observe(ctx, s.observer, "add-vertical", time.Now(), fields, &err)

	if name == "" {
		return nil, errors.New("vertical name is required")
	}
	err = s.chart.write(ctx, func(c *orgchart.Chart) error {
		v = c.AddVertical(name, color, pos)
		return nil
	})
	if err != nil {
		return nil, err
	}
	fields["vertical_id"] = v.ID
	return v, nil
}

func (s *verticalService) List(ctx context.Context) (verticals []*domain.Vertical, err error) {
	err = s.chart.read(ctx, func(c *orgchart.Chart) error {
		verticals = c.Verticals()
		return nil
	})
	return verticals, err
}

func (s *verticalService) Update(ctx context.Context, id string, patch orgchart.VerticalPatch) (v *domain.Vertical, err error) {
	defer observe(ctx, s.observer, "update-vertical", time.Now(), map[string]any{"vertical_id": id}, &err)

	if patch.Name != nil && *patch.Name == "" {
		return nil, errors.New("vertical name is required")
	}
	err = s.chart.write(ctx, func(c *orgchart.Chart) error {
		var err error
		v, err = c.UpdateVertical(id, patch)
		return err
	})
	return v, err
}

// Delete removes the vertical and returns the ids of the nodes that were
// taken out of it.
func (s *verticalService) Delete(ctx context.Context, id string) (cleared []string, err error) {
	fields := map[string]any{"vertical_id": id}
	defer observe(ctx, s.observer, "delete-vertical", time.Now(), fields, &err)

	err = s.chart.write(ctx, func(c *orgchart.Chart) error {
		var err error
		cleared, err = c.DeleteVertical(id)
		return err
	})
	fields["cleared_nodes"] = len(cleared)
	return cleared, err
}

// Assign puts nodeID in verticalID, or takes it out of any vertical when
// verticalID is empty.
func (s *verticalService) Assign(ctx context.Context, nodeID, verticalID string) (node *domain.Node, err error) {
	defer observe(ctx, s.observer, "assign-vertical", time.Now(),
		map[string]any{"node_id": nodeID, "vertical_id": verticalID}, &err)

	err = s.chart.write(ctx, func(c *orgchart.Chart) error {
		var err error
		node, err = c.AssignVertical(nodeID, verticalID)
		return err
	})
	return node, err
}
