package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/teammap/internal/db"
	"github.com/alexanderramin/teammap/internal/orgchart"
	"github.com/alexanderramin/teammap/internal/roster"
	"github.com/alexanderramin/teammap/internal/snapshot"
)

type dataService struct {
	chart    chartAccess
	observer UseCaseObserver
}

func NewDataService(uow db.UnitOfWork, observers ...UseCaseObserver) DataService {
	return &dataService{
		chart:    chartAccess{uow: uow},
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *dataService) Export(ctx context.Context) (doc *snapshot.Document, err error) {
	err = s.chart.read(ctx, func(c *orgchart.Chart) error {
		doc = snapshot.FromState(c.State())
		return nil
	})
	return doc, err
}

func (s *dataService) ExportFile(ctx context.Context, path string) (err error) {
	fields := map[string]any{"path": path}
	defer observe(ctx, s.observer, "export", time.Now(), fields, &err)

	doc, err := s.Export(ctx)
	if err != nil {
		return err
	}
	fields["node_count"] = len(doc.Nodes)
	if err := snapshot.Save(path, doc); err != nil {
		return fmt.Errorf("saving export: %w", err)
	}
	return nil
}

func (s *dataService) ImportFile(ctx context.Context, path string) (*ImportResult, error) {
	doc, err := snapshot.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading import file: %w", err)
	}
	return s.Import(ctx, doc)
}

// Import replaces the whole chart with doc. A document that fails
// validation changes nothing.
func (s *dataService) Import(ctx context.Context, doc *snapshot.Document) (result *ImportResult, err error) {
	fields := map[string]any{}
	defer observe(ctx, s.observer, "import", time.Now(), fields, &err)

	if errs := snapshot.Validate(doc); len(errs) > 0 {
		fields["validation_errors"] = len(errs)
		return nil, formatValidationErrors(errs)
	}
	state, err := doc.ToState()
	if err != nil {
		return nil, fmt.Errorf("converting import: %w", err)
	}

	err = s.chart.write(ctx, func(c *orgchart.Chart) error {
		c.Replace(state)
		st := c.State()
		result = &ImportResult{
			NodeCount:     len(st.Nodes),
			VerticalCount: len(st.Verticals),
			PositionCount: len(st.Positions),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	fields["node_count"] = result.NodeCount
	return result, nil
}

func (s *dataService) ExportRoster(ctx context.Context, path string) (err error) {
	fields := map[string]any{"path": path}
	defer observe(ctx, s.observer, "export-roster", time.Now(), fields, &err)

	var facts []orgchart.NodeFacts
	err = s.chart.read(ctx, func(c *orgchart.Chart) error {
		facts = c.Facts()
		return nil
	})
	if err != nil {
		return err
	}
	fields["node_count"] = len(facts)
	if err := roster.Save(path, facts); err != nil {
		return fmt.Errorf("saving roster: %w", err)
	}
	return nil
}

// ClearAll removes every node, vertical and position. Settings are kept.
func (s *dataService) ClearAll(ctx context.Context) (err error) {
	defer observe(ctx, s.observer, "clear-all", time.Now(), map[string]any{}, &err)
	return s.chart.write(ctx, func(c *orgchart.Chart) error {
		c.Clear()
		return nil
	})
}

func formatValidationErrors(errs []error) error {
	msg := fmt.Sprintf("import validation failed (%d errors):", len(errs))
	for _, e := range errs {
		msg += "\n  - " + e.Error()
	}
	return fmt.Errorf("%s", msg)
}
