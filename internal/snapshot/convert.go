package snapshot

import (
	"fmt"
	"time"

	"github.com/alexanderramin/teammap/internal/domain"
	"github.com/alexanderramin/teammap/internal/orgchart"
)

// ToState converts a validated document into chart state. Imported settings
// are merged over the defaults, so any field the document omits reverts to
// its default. Call Validate first.
func (d *Document) ToState() (orgchart.State, error) {
	nodes := make([]*domain.Node, 0, len(d.Nodes))
	for i, n := range d.Nodes {
		node, err := n.toDomain()
		if err != nil {
			return orgchart.State{}, fmt.Errorf("nodes[%d]: %w", i, err)
		}
		nodes = append(nodes, node)
	}

	verticals := make([]*domain.Vertical, 0, len(d.Verticals))
	for _, v := range d.Verticals {
		verticals = append(verticals, &domain.Vertical{
			ID:       v.ID,
			Name:     v.Name,
			Color:    v.Color,
			Position: domain.Position{X: v.Position.X, Y: v.Position.Y},
		})
	}

	positions := make(map[string]domain.Position, len(d.NodePositions))
	for _, p := range d.NodePositions {
		positions[p.ID] = domain.Position{X: p.X, Y: p.Y}
	}

	var patch domain.SettingsPatch
	if d.Settings != nil {
		patch = d.Settings.patch()
	}

	return orgchart.State{
		Nodes:     nodes,
		Verticals: verticals,
		Positions: positions,
		Settings:  domain.ApplySettingsPatch(domain.DefaultSettings(), patch),
	}, nil
}

func (n Node) toDomain() (*domain.Node, error) {
	out := &domain.Node{
		ID:                n.ID,
		Kind:              domain.KindTeamMember,
		Name:              n.Name,
		RoleType:          n.RoleType,
		Level:             n.Level,
		Track:             domain.Track(n.Track),
		YearsOfExperience: n.YearsOfExperience,
		Manager:           n.ManagerID.Ref,
		VerticalID:        n.VerticalID,
		Notes:             n.Notes,
		Gender:            domain.Gender(n.Gender),
		CreatedAt:         n.CreatedAt,
		UpdatedAt:         n.UpdatedAt,
	}
	if n.IsPlannedHire {
		out.Kind = domain.KindPlannedHire
		out.TentativeDate = n.TentativeDate
		return out, nil
	}
	if n.JoiningDate != "" {
		t, err := time.Parse(dateLayout, n.JoiningDate)
		if err != nil {
			return nil, fmt.Errorf("parsing joiningDate: %w", err)
		}
		out.JoiningDate = &t
	}
	return out, nil
}

func (s *Settings) patch() domain.SettingsPatch {
	p := domain.SettingsPatch{
		SpanOfControlThreshold: s.SpanOfControlThreshold,
		TrackSplitLevel:        s.TrackSplitLevel,
		CompanyName:            s.CompanyName,
	}
	if s.Levels != nil {
		p.Levels = make([]domain.LevelConfig, 0, len(s.Levels))
		for _, l := range s.Levels {
			track := domain.Track(l.Track)
			id := l.ID
			if id == "" {
				id = domain.LevelID(l.Level, track, l.IsMaxLevel)
			}
			p.Levels = append(p.Levels, domain.LevelConfig{
				ID:                   id,
				Level:                l.Level,
				Name:                 l.Name,
				Color:                l.Color,
				MinYearsFromPrevious: l.MinYearsFromPrevious,
				Track:                track,
				IsMaxLevel:           l.IsMaxLevel,
			})
		}
	}
	if s.RoleTypes != nil {
		p.RoleTypes = make([]domain.RoleType, 0, len(s.RoleTypes))
		for _, r := range s.RoleTypes {
			p.RoleTypes = append(p.RoleTypes, domain.RoleType(r))
		}
	}
	return p
}

// FromState builds a document holding the full state. Positions are listed
// in node order.
func FromState(state orgchart.State) *Document {
	doc := &Document{
		Nodes:     make([]Node, 0, len(state.Nodes)),
		Verticals: make([]Vertical, 0, len(state.Verticals)),
		Settings:  fromSettings(state.Settings),
	}

	for _, n := range state.Nodes {
		doc.Nodes = append(doc.Nodes, fromNode(n))
		if p, ok := state.Positions[n.ID]; ok {
			doc.NodePositions = append(doc.NodePositions, PositionEntry{ID: n.ID, Point: Point{X: p.X, Y: p.Y}})
		}
	}
	for _, v := range state.Verticals {
		doc.Verticals = append(doc.Verticals, Vertical{
			ID:       v.ID,
			Name:     v.Name,
			Color:    v.Color,
			Position: Point{X: v.Position.X, Y: v.Position.Y},
		})
	}
	return doc
}

func fromNode(n *domain.Node) Node {
	out := Node{
		ID:                n.ID,
		Name:              n.Name,
		RoleType:          n.RoleType,
		Level:             n.Level,
		Track:             string(n.Track),
		YearsOfExperience: n.YearsOfExperience,
		ManagerID:         ManagerID{Ref: n.Manager},
		IsPlannedHire:     n.IsPlannedHire(),
		VerticalID:        n.VerticalID,
		Notes:             n.Notes,
		Gender:            string(n.Gender),
		CreatedAt:         n.CreatedAt,
		UpdatedAt:         n.UpdatedAt,
	}
	if n.IsPlannedHire() {
		out.TentativeDate = n.TentativeDate
	} else if n.JoiningDate != nil {
		out.JoiningDate = n.JoiningDate.Format(dateLayout)
	}
	return out
}

func fromSettings(s domain.Settings) *Settings {
	threshold := s.SpanOfControlThreshold
	split := s.TrackSplitLevel
	out := &Settings{
		Levels:                 make([]Level, 0, len(s.Levels)),
		RoleTypes:              make([]RoleType, 0, len(s.RoleTypes)),
		SpanOfControlThreshold: &threshold,
		TrackSplitLevel:        &split,
	}
	if s.CompanyName != "" {
		name := s.CompanyName
		out.CompanyName = &name
	}
	for _, l := range s.Levels {
		out.Levels = append(out.Levels, Level{
			ID:                   l.ID,
			Level:                l.Level,
			Name:                 l.Name,
			Color:                l.Color,
			MinYearsFromPrevious: l.MinYearsFromPrevious,
			Track:                string(l.Track),
			IsMaxLevel:           l.IsMaxLevel,
		})
	}
	for _, r := range s.RoleTypes {
		out.RoleTypes = append(out.RoleTypes, RoleType(r))
	}
	return out
}
