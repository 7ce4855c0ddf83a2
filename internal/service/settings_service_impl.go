package service

import (
	"context"
	"time"

	"github.com/alexanderramin/teammap/internal/db"
	"github.com/alexanderramin/teammap/internal/domain"
	"github.com/alexanderramin/teammap/internal/orgchart"
)

type settingsService struct {
	chart    chartAccess
	observer UseCaseObserver
}

func NewSettingsService(uow db.UnitOfWork, observers ...UseCaseObserver) SettingsService {
	return &settingsService{
		chart:    chartAccess{uow: uow},
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *settingsService) Get(ctx context.Context) (settings domain.Settings, err error) {
	err = s.chart.read(ctx, func(c *orgchart.Chart) error {
		settings = c.Settings()
		return nil
	})
	return settings, err
}

// Update applies patch over the stored settings. Invalid results are
// rejected with domain.ErrInvalidSettings and nothing is saved.
func (s *settingsService) Update(ctx context.Context, patch domain.SettingsPatch) (settings domain.Settings, err error) {
	defer observe(ctx, s.observer, "update-settings", time.Now(), map[string]any{}, &err)

	err = s.chart.write(ctx, func(c *orgchart.Chart) error {
		next := domain.ApplySettingsPatch(c.Settings(), patch)
		if err := c.SetSettings(next); err != nil {
			return err
		}
		settings = c.Settings()
		return nil
	})
	return settings, err
}

func (s *settingsService) Reset(ctx context.Context) (settings domain.Settings, err error) {
	defer observe(ctx, s.observer, "reset-settings", time.Now(), map[string]any{}, &err)

	err = s.chart.write(ctx, func(c *orgchart.Chart) error {
		c.ResetSettings()
		settings = c.Settings()
		return nil
	})
	return settings, err
}
