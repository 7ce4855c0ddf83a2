package service

import (
	"context"
	"time"

	"github.com/alexanderramin/teammap/internal/domain"
	"github.com/alexanderramin/teammap/internal/orgchart"
	"github.com/alexanderramin/teammap/internal/quickstart"
	"github.com/alexanderramin/teammap/internal/snapshot"
)

type NodeService interface {
	AddTeamMember(ctx context.Context, in orgchart.NewNode) (*domain.Node, error)
	AddPlannedHire(ctx context.Context, in orgchart.NewNode) (*domain.Node, error)
	Get(ctx context.Context, id string) (*domain.Node, error)
	List(ctx context.Context) ([]*domain.Node, error)
	Update(ctx context.Context, id string, patch domain.NodePatch) (*domain.Node, error)
	// Delete removes the node and its position and returns the ids of the
	// direct reports that were left without a manager.
	Delete(ctx context.Context, id string) ([]string, error)
	ConvertToHired(ctx context.Context, id string, joiningDate *time.Time) (*domain.Node, error)
}

type ReportingService interface {
	// SetManager reports applied=false, with no error and no change, when
	// the assignment would create a reporting cycle.
	SetManager(ctx context.Context, nodeID, managerID string) (applied bool, err error)
	SetTopLevel(ctx context.Context, nodeID string) error
	RemoveManager(ctx context.Context, nodeID string) error
	Chain(ctx context.Context, nodeID string) ([]*domain.Node, error)
	DirectReports(ctx context.Context, managerID string) ([]*domain.Node, error)
	ReportCounts(ctx context.Context) (map[string]int, error)
	Facts(ctx context.Context) ([]orgchart.NodeFacts, error)
}

type LayoutService interface {
	AutoArrange(ctx context.Context) (map[string]domain.Position, error)
	// Positions returns every node's position, computing and caching any
	// that are missing.
	Positions(ctx context.Context) (map[string]domain.Position, error)
	Position(ctx context.Context, nodeID string) (domain.Position, bool, error)
	SetPosition(ctx context.Context, nodeID string, p domain.Position) error
	SetPositions(ctx context.Context, ps map[string]domain.Position) error
}

type SettingsService interface {
	Get(ctx context.Context) (domain.Settings, error)
	Update(ctx context.Context, patch domain.SettingsPatch) (domain.Settings, error)
	Reset(ctx context.Context) (domain.Settings, error)
}

type VerticalService interface {
	Add(ctx context.Context, name, color string, pos domain.Position) (*domain.Vertical, error)
	List(ctx context.Context) ([]*domain.Vertical, error)
	Update(ctx context.Context, id string, patch orgchart.VerticalPatch) (*domain.Vertical, error)
	Delete(ctx context.Context, id string) ([]string, error)
	Assign(ctx context.Context, nodeID, verticalID string) (*domain.Node, error)
}

// ImportResult holds the outcome of a chart import.
type ImportResult struct {
	NodeCount     int
	VerticalCount int
	PositionCount int
}

type DataService interface {
	Export(ctx context.Context) (*snapshot.Document, error)
	ExportFile(ctx context.Context, path string) error
	Import(ctx context.Context, doc *snapshot.Document) (*ImportResult, error)
	ImportFile(ctx context.Context, path string) (*ImportResult, error)
	ExportRoster(ctx context.Context, path string) error
	ClearAll(ctx context.Context) error
}

// QuickstartResult describes the chart a preset produced.
type QuickstartResult struct {
	Preset    quickstart.Preset
	Nodes     []*domain.Node
	Positions map[string]domain.Position
}

type QuickstartService interface {
	Presets(ctx context.Context) ([]quickstart.Preset, error)
	Apply(ctx context.Context, req quickstart.Request) (*QuickstartResult, error)
}
