package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/teammap/internal/db"
	"github.com/alexanderramin/teammap/internal/domain"
	"github.com/alexanderramin/teammap/internal/orgchart"
)

type reportingService struct {
	chart    chartAccess
	observer UseCaseObserver
}

func NewReportingService(uow db.UnitOfWork, observers ...UseCaseObserver) ReportingService {
	return &reportingService{
		chart:    chartAccess{uow: uow},
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *reportingService) SetManager(ctx context.Context, nodeID, managerID string) (applied bool, err error) {
	fields := map[string]any{"node_id": nodeID, "manager_id": managerID}
	defer observe(ctx, s.observer, "set-manager", time.Now(), fields, &err)

	if managerID == "" {
		return false, errors.New("manager id is required")
	}
	err = s.chart.write(ctx, func(c *orgchart.Chart) error {
		var err error
		applied, err = c.SetManager(nodeID, managerID)
		return err
	})
	if err != nil {
		return false, err
	}
	if !applied {
		fields["rejected"] = true
		fields["reason"] = "circular_reference"
	}
	return applied, nil
}

func (s *reportingService) SetTopLevel(ctx context.Context, nodeID string) (err error) {
	defer observe(ctx, s.observer, "set-top-level", time.Now(), map[string]any{"node_id": nodeID}, &err)
	return s.chart.write(ctx, func(c *orgchart.Chart) error {
		return c.SetTopLevel(nodeID)
	})
}

func (s *reportingService) RemoveManager(ctx context.Context, nodeID string) (err error) {
	defer observe(ctx, s.observer, "remove-manager", time.Now(), map[string]any{"node_id": nodeID}, &err)
	return s.chart.write(ctx, func(c *orgchart.Chart) error {
		return c.RemoveManager(nodeID)
	})
}

// Chain returns nodeID followed by its managers, nearest first.
func (s *reportingService) Chain(ctx context.Context, nodeID string) (chain []*domain.Node, err error) {
	err = s.chart.read(ctx, func(c *orgchart.Chart) error {
		if _, ok := c.Node(nodeID); !ok {
			return fmt.Errorf("node %s: %w", nodeID, orgchart.ErrNodeNotFound)
		}
		chain = c.AncestorChain(nodeID)
		return nil
	})
	return chain, err
}

func (s *reportingService) DirectReports(ctx context.Context, managerID string) (reports []*domain.Node, err error) {
	err = s.chart.read(ctx, func(c *orgchart.Chart) error {
		reports = c.DirectReports(managerID)
		return nil
	})
	return reports, err
}

func (s *reportingService) ReportCounts(ctx context.Context) (counts map[string]int, err error) {
	err = s.chart.read(ctx, func(c *orgchart.Chart) error {
		counts = c.ReportCounts()
		return nil
	})
	return counts, err
}

func (s *reportingService) Facts(ctx context.Context) (facts []orgchart.NodeFacts, err error) {
	err = s.chart.read(ctx, func(c *orgchart.Chart) error {
		facts = c.Facts()
		return nil
	})
	return facts, err
}
