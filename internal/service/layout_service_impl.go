package service

import (
	"context"
	"time"

	"github.com/alexanderramin/teammap/internal/db"
	"github.com/alexanderramin/teammap/internal/domain"
	"github.com/alexanderramin/teammap/internal/layout"
	"github.com/alexanderramin/teammap/internal/orgchart"
)

type layoutService struct {
	chart    chartAccess
	cfg      layout.Config
	observer UseCaseObserver
}

func NewLayoutService(uow db.UnitOfWork, cfg layout.Config, observers ...UseCaseObserver) LayoutService {
	return &layoutService{
		chart:    chartAccess{uow: uow},
		cfg:      cfg,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *layoutService) AutoArrange(ctx context.Context) (positions map[string]domain.Position, err error) {
	fields := map[string]any{}
	defer observe(ctx, s.observer, "auto-arrange", time.Now(), fields, &err)

	err = s.chart.write(ctx, func(c *orgchart.Chart) error {
		positions = c.AutoArrange(s.cfg)
		return nil
	})
	fields["node_count"] = len(positions)
	return positions, err
}

func (s *layoutService) Positions(ctx context.Context) (positions map[string]domain.Position, err error) {
	err = s.chart.write(ctx, func(c *orgchart.Chart) error {
		c.FillMissingPositions(s.cfg)
		positions = c.Positions()
		return nil
	})
	return positions, err
}

func (s *layoutService) Position(ctx context.Context, nodeID string) (p domain.Position, ok bool, err error) {
	err = s.chart.read(ctx, func(c *orgchart.Chart) error {
		p, ok = c.Position(nodeID)
		return nil
	})
	return p, ok, err
}

func (s *layoutService) SetPosition(ctx context.Context, nodeID string, p domain.Position) (err error) {
	defer observe(ctx, s.observer, "set-position", time.Now(), map[string]any{"node_id": nodeID}, &err)
	return s.chart.write(ctx, func(c *orgchart.Chart) error {
		return c.SetPosition(nodeID, p)
	})
}

func (s *layoutService) SetPositions(ctx context.Context, ps map[string]domain.Position) (err error) {
	defer observe(ctx, s.observer, "set-positions", time.Now(), map[string]any{"count": len(ps)}, &err)
	return s.chart.write(ctx, func(c *orgchart.Chart) error {
		return c.SetPositions(ps)
	})
}
