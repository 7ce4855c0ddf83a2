package service

import (
	"context"
	"database/sql"
	"sync"
	"testing"

	"github.com/alexanderramin/teammap/internal/db"
	"github.com/alexanderramin/teammap/internal/domain"
	"github.com/alexanderramin/teammap/internal/layout"
	"github.com/alexanderramin/teammap/internal/orgchart"
	"github.com/alexanderramin/teammap/internal/testutil"
	"github.com/stretchr/testify/require"
)

type testServices struct {
	db         *sql.DB
	uow        db.UnitOfWork
	nodes      NodeService
	reporting  ReportingService
	layout     LayoutService
	settings   SettingsService
	verticals  VerticalService
	data       DataService
	quickstart QuickstartService
	events     *recordingObserver
}

func setupServices(t *testing.T) *testServices {
	t.Helper()
	database := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(database)
	obs := &recordingObserver{}
	cfg := layout.DefaultConfig()
	return &testServices{
		db:         database,
		uow:        uow,
		nodes:      NewNodeService(uow, obs),
		reporting:  NewReportingService(uow, obs),
		layout:     NewLayoutService(uow, cfg, obs),
		settings:   NewSettingsService(uow, obs),
		verticals:  NewVerticalService(uow, obs),
		data:       NewDataService(uow, obs),
		quickstart: NewQuickstartService(uow, cfg, obs),
		events:     obs,
	}
}

type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, e)
}

func (o *recordingObserver) last(name string) (UseCaseEvent, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	for i := len(o.events) - 1; i >= 0; i-- {
		if o.events[i].Name == name {
			return o.events[i], true
		}
	}
	return UseCaseEvent{}, false
}

func addMember(t *testing.T, s *testServices, name string, level int, mgr domain.ManagerRef) *domain.Node {
	t.Helper()
	n, err := s.nodes.AddTeamMember(context.Background(), orgchart.NewNode{
		Name:     name,
		RoleType: "ux",
		Level:    level,
		Manager:  mgr,
	})
	require.NoError(t, err)
	return n
}

func ptr[T any](v T) *T { return &v }
