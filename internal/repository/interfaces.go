package repository

import (
	"context"

	"github.com/alexanderramin/teammap/internal/domain"
)

// NodeRepo stores org chart nodes. order is the node's position in the
// chart's node list and is what List sorts by.
type NodeRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Node, error)
	List(ctx context.Context) ([]*domain.Node, error)
	Upsert(ctx context.Context, n *domain.Node, order int) error
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) error
}

type PositionRepo interface {
	List(ctx context.Context) (map[string]domain.Position, error)
	Upsert(ctx context.Context, nodeID string, p domain.Position) error
	Delete(ctx context.Context, nodeID string) error
	DeleteAll(ctx context.Context) error
}

type VerticalRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Vertical, error)
	List(ctx context.Context) ([]*domain.Vertical, error)
	Upsert(ctx context.Context, v *domain.Vertical, order int) error
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) error
}

// SettingsRepo stores the single settings record. Save replaces the level and
// role type lists wholesale.
type SettingsRepo interface {
	Get(ctx context.Context) (domain.Settings, error)
	Save(ctx context.Context, s domain.Settings) error
}
