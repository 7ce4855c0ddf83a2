package quickstart

import (
	"fmt"
	"time"

	"github.com/alexanderramin/teammap/internal/domain"
	"github.com/alexanderramin/teammap/internal/levels"
	"github.com/google/uuid"
)

type Size string

const (
	SizeTiny   Size = "tiny"
	SizeSmall  Size = "small"
	SizeMedium Size = "medium"
	SizeLarge  Size = "large"
)

type Structure string

const (
	StructureFlat         Structure = "flat"
	StructureHierarchical Structure = "hierarchical"
	StructurePods         Structure = "pods"
)

var (
	validSizes      = map[Size]bool{SizeTiny: true, SizeSmall: true, SizeMedium: true, SizeLarge: true}
	validStructures = map[Structure]bool{StructureFlat: true, StructureHierarchical: true, StructurePods: true}
)

func ParseSize(s string) (Size, error) {
	if !validSizes[Size(s)] {
		return "", fmt.Errorf("invalid team size %q (expected tiny, small, medium or large)", s)
	}
	return Size(s), nil
}

func ParseStructure(s string) (Structure, error) {
	if !validStructures[Structure(s)] {
		return "", fmt.Errorf("invalid structure %q (expected flat, hierarchical or pods)", s)
	}
	return Structure(s), nil
}

// Request describes the starter chart to build.
type Request struct {
	Preset    string
	Size      Size
	Structure Structure
	RoleTypes []string
}

var podNames = []string{"Alpha", "Beta", "Gamma", "Delta"}

type generator struct {
	preset   Preset
	settings domain.Settings
	types    []string
	now      time.Time
	nodes    []*domain.Node
}

// Generate builds the starter nodes for req from p. Nodes get fresh ids and
// manager links but no positions.
func Generate(p Preset, req Request, now time.Time) ([]*domain.Node, error) {
	if !validSizes[req.Size] {
		return nil, fmt.Errorf("invalid team size %q", req.Size)
	}
	if !validStructures[req.Structure] {
		return nil, fmt.Errorf("invalid structure %q", req.Structure)
	}

	g := &generator{
		preset:   p,
		settings: p.settings(req.RoleTypes),
		now:      now,
	}
	for _, r := range g.settings.RoleTypes {
		g.types = append(g.types, r.ID)
	}
	if len(req.RoleTypes) == 0 && len(g.types) > 3 {
		g.types = g.types[:3]
	}

	switch req.Structure {
	case StructureFlat:
		g.flat(req.Size)
	case StructureHierarchical:
		g.hierarchical(req.Size)
	case StructurePods:
		g.pods(req.Size)
	}
	return g.nodes, nil
}

func (g *generator) flat(size Size) {
	leadLevel := 5
	if size == SizeTiny {
		leadLevel = 4
	}
	lead := g.member(g.levelName(leadLevel, domain.TrackIC), leadLevel, g.typeAt(0), domain.TopLevel(), domain.TrackIC)

	count := map[Size]int{SizeTiny: 2, SizeSmall: 4, SizeMedium: 6, SizeLarge: 8}[size]
	for i := 0; i < count; i++ {
		level := 2
		if float64(i) < float64(count)/2 {
			level = 3
		}
		g.member(fmt.Sprintf("%s %d", g.preset.RoleTerm, i+1), level, g.typeAt(i), domain.ReportsTo(lead.ID), domain.TrackNone)
	}

	if size != SizeTiny {
		g.hire("TBD", 2, g.typeAt(1), domain.ReportsTo(lead.ID), domain.TrackNone)
	}
}

func (g *generator) hierarchical(size Size) {
	head := g.member(g.preset.HeadTitle, 6, g.typeAt(0), domain.TopLevel(), domain.TrackNone)

	switch size {
	case SizeTiny:
		for i := 0; i < 2; i++ {
			g.member(fmt.Sprintf("%s %d", g.preset.RoleTerm, i+1), 3, g.typeAt(i), domain.ReportsTo(head.ID), domain.TrackNone)
		}

	case SizeSmall:
		for m := 0; m < 2; m++ {
			track := domain.TrackIC
			if m == 1 {
				track = domain.TrackManager
			}
			mgr := g.member(g.levelName(4, track), 4, g.typeAt(m), domain.ReportsTo(head.ID), track)
			for i := 0; i < 2; i++ {
				n := m*2 + i
				g.member(fmt.Sprintf("%s %d", g.preset.RoleTerm, n+1), 2, g.typeAt(n), domain.ReportsTo(mgr.ID), domain.TrackNone)
			}
		}

	default:
		managers, leadsPer, icsPer := 2, 1, 2
		if size == SizeLarge {
			managers, leadsPer, icsPer = 3, 2, 3
		}
		var firstManager string
		for m := 0; m < managers; m++ {
			mgr := g.member(g.levelName(5, domain.TrackManager), 5, g.typeAt(m), domain.ReportsTo(head.ID), domain.TrackManager)
			if m == 0 {
				firstManager = mgr.ID
			}
			for l := 0; l < leadsPer; l++ {
				lead := g.member(g.levelName(4, domain.TrackIC), 4, g.typeAt(m+l), domain.ReportsTo(mgr.ID), domain.TrackIC)
				for i := 0; i < icsPer; i++ {
					g.member(g.preset.RoleTerm, 2+i%2, g.typeAt(m+l+i), domain.ReportsTo(lead.ID), domain.TrackNone)
				}
			}
		}
		g.hire("TBD - "+g.levelName(4, domain.TrackIC), 4, g.typeAt(1), domain.ReportsTo(firstManager), domain.TrackIC)
	}
}

func (g *generator) pods(size Size) {
	podCount := map[Size]int{SizeTiny: 2, SizeSmall: 2, SizeMedium: 3, SizeLarge: 4}[size]
	perPod := map[Size]int{SizeTiny: 1, SizeSmall: 2, SizeMedium: 3, SizeLarge: 3}[size]

	leadRef := domain.TopLevel()
	leadLevel, leadTrack := 4, domain.TrackIC
	if size != SizeTiny {
		head := g.member(g.preset.HeadTitle, 6, g.typeAt(0), domain.TopLevel(), domain.TrackNone)
		leadRef = domain.ReportsTo(head.ID)
		leadLevel, leadTrack = 5, domain.TrackManager
	}

	for p := 0; p < podCount; p++ {
		lead := g.member(podNames[p]+" Lead", leadLevel, g.typeAt(p), leadRef, leadTrack)
		for i := 0; i < perPod; i++ {
			level := 2
			if i == 0 {
				level = 3
			}
			name := fmt.Sprintf("%s %s %d", podNames[p], g.preset.RoleTerm, i+1)
			g.member(name, level, g.typeAt(p+i), domain.ReportsTo(lead.ID), domain.TrackNone)
		}
	}
}

func (g *generator) typeAt(i int) string {
	if len(g.types) == 0 {
		return ""
	}
	return g.types[i%len(g.types)]
}

// levelName titles generated people after their level, with the preset's
// head title at the top.
func (g *generator) levelName(level int, track domain.Track) string {
	if level == g.settings.HeadLevel() {
		return g.preset.HeadTitle
	}
	if c, ok := levels.ResolveFor(level, track, g.settings); ok {
		return c.Name
	}
	return fmt.Sprintf("%s L%d", g.preset.RoleTerm, level)
}

func (g *generator) member(name string, level int, roleType string, mgr domain.ManagerRef, track domain.Track) *domain.Node {
	y, m, d := g.now.Date()
	joined := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	n := g.node(name, level, roleType, mgr, track)
	n.Kind = domain.KindTeamMember
	n.YearsOfExperience = float64(max(0, (level-1)*2))
	n.JoiningDate = &joined
	return n
}

func (g *generator) hire(name string, level int, roleType string, mgr domain.ManagerRef, track domain.Track) *domain.Node {
	n := g.node(name, level, roleType, mgr, track)
	n.Kind = domain.KindPlannedHire
	n.TentativeDate = nextQuarter(g.now)
	return n
}

func (g *generator) node(name string, level int, roleType string, mgr domain.ManagerRef, track domain.Track) *domain.Node {
	n := &domain.Node{
		ID:        uuid.New().String(),
		Name:      name,
		RoleType:  roleType,
		Level:     level,
		Track:     levels.NormalizeTrack(level, track, g.settings),
		Manager:   mgr,
		CreatedAt: g.now,
		UpdatedAt: g.now,
	}
	g.nodes = append(g.nodes, n)
	return n
}

// nextQuarter labels the calendar quarter after now, e.g. "Q3 2025".
func nextQuarter(now time.Time) string {
	q := (int(now.Month())-1)/3 + 2
	year := now.Year()
	if q > 4 {
		q = 1
		year++
	}
	return fmt.Sprintf("Q%d %d", q, year)
}
