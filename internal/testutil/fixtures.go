package testutil

import (
	"time"

	"github.com/alexanderramin/teammap/internal/domain"
	"github.com/google/uuid"
)

// Node options
type NodeOption func(*domain.Node)

func WithManager(id string) NodeOption {
	return func(n *domain.Node) {
		n.Manager = domain.ReportsTo(id)
	}
}

func WithTopLevel() NodeOption {
	return func(n *domain.Node) {
		n.Manager = domain.TopLevel()
	}
}

func WithLevel(level int) NodeOption {
	return func(n *domain.Node) {
		n.Level = level
	}
}

func WithTrack(t domain.Track) NodeOption {
	return func(n *domain.Node) {
		n.Track = t
	}
}

func WithYears(y float64) NodeOption {
	return func(n *domain.Node) {
		n.YearsOfExperience = y
	}
}

func WithRoleType(id string) NodeOption {
	return func(n *domain.Node) {
		n.RoleType = id
	}
}

func WithVertical(id string) NodeOption {
	return func(n *domain.Node) {
		n.VerticalID = id
	}
}

func WithID(id string) NodeOption {
	return func(n *domain.Node) {
		n.ID = id
	}
}

// NewTestMember returns an unassigned level-1 team member who joined today.
func NewTestMember(name string, opts ...NodeOption) *domain.Node {
	now := time.Now().UTC()
	joined := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	n := &domain.Node{
		ID:          uuid.New().String(),
		Kind:        domain.KindTeamMember,
		Name:        name,
		RoleType:    "ux",
		Level:       1,
		JoiningDate: &joined,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// NewTestHire returns an unassigned level-1 planned hire.
func NewTestHire(name string, opts ...NodeOption) *domain.Node {
	now := time.Now().UTC()
	n := &domain.Node{
		ID:            uuid.New().String(),
		Kind:          domain.KindPlannedHire,
		Name:          name,
		RoleType:      "ux",
		Level:         1,
		TentativeDate: "Q3 2025",
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}
