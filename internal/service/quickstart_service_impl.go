package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/teammap/internal/db"
	"github.com/alexanderramin/teammap/internal/domain"
	"github.com/alexanderramin/teammap/internal/layout"
	"github.com/alexanderramin/teammap/internal/orgchart"
	"github.com/alexanderramin/teammap/internal/quickstart"
)

type quickstartService struct {
	chart    chartAccess
	cfg      layout.Config
	now      func() time.Time
	observer UseCaseObserver
}

func NewQuickstartService(uow db.UnitOfWork, cfg layout.Config, observers ...UseCaseObserver) QuickstartService {
	return &quickstartService{
		chart:    chartAccess{uow: uow},
		cfg:      cfg,
		now:      time.Now,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *quickstartService) Presets(ctx context.Context) ([]quickstart.Preset, error) {
	return quickstart.Presets()
}

// Apply replaces the chart with a generated starter team. The preset's level
// ladder and role types replace the current ones; other settings are kept.
func (s *quickstartService) Apply(ctx context.Context, req quickstart.Request) (result *QuickstartResult, err error) {
	fields := map[string]any{
		"preset":    req.Preset,
		"size":      string(req.Size),
		"structure": string(req.Structure),
	}
	defer observe(ctx, s.observer, "quickstart", time.Now(), fields, &err)

	preset, err := quickstart.Find(req.Preset)
	if err != nil {
		return nil, err
	}
	nodes, err := quickstart.Generate(preset, req, s.now())
	if err != nil {
		return nil, err
	}

	err = s.chart.write(ctx, func(c *orgchart.Chart) error {
		settings := domain.ApplySettingsPatch(c.Settings(), preset.SettingsPatch(req.RoleTypes))
		if err := settings.Validate(); err != nil {
			return fmt.Errorf("preset %s: %w", preset.ID, err)
		}
		c.Replace(orgchart.State{Nodes: nodes, Settings: settings})
		positions := c.AutoArrange(s.cfg)
		result = &QuickstartResult{
			Preset:    preset,
			Nodes:     c.Nodes(),
			Positions: positions,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	fields["node_count"] = len(result.Nodes)
	return result, nil
}
