package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrInvalidSettings wraps every settings validation failure.
var ErrInvalidSettings = errors.New("invalid settings")

const (
	DefaultSpanOfControlThreshold = 6
	DefaultTrackSplitLevel        = 4
)

// LevelConfig is one rung of the career ladder. Shared levels and the head
// level have no track; levels from the split point up to (not including) the
// head exist once per track.
type LevelConfig struct {
	ID                   string
	Level                int
	Name                 string
	Color                string
	MinYearsFromPrevious float64
	Track                Track
	IsMaxLevel           bool
}

type RoleType struct {
	ID           string
	Name         string
	Abbreviation string
}

type Settings struct {
	Levels                 []LevelConfig
	RoleTypes              []RoleType
	SpanOfControlThreshold int
	TrackSplitLevel        int
	CompanyName            string
}

// LevelID derives the deterministic id of a level entry.
func LevelID(level int, track Track, isHead bool) string {
	switch {
	case isHead:
		return fmt.Sprintf("level-%d-head", level)
	case track != TrackNone:
		return fmt.Sprintf("level-%d-%s", level, track)
	default:
		return fmt.Sprintf("level-%d", level)
	}
}

// DefaultLevels is the design-team ladder used when no settings are stored.
func DefaultLevels() []LevelConfig {
	return []LevelConfig{
		{ID: "level-1", Level: 1, Name: "Designer I", Color: "#FED7AA", MinYearsFromPrevious: 0},
		{ID: "level-2", Level: 2, Name: "Designer II", Color: "#FDBA74", MinYearsFromPrevious: 1.5},
		{ID: "level-3", Level: 3, Name: "Designer III", Color: "#FB923C", MinYearsFromPrevious: 2},
		{ID: "level-4-ic", Level: 4, Name: "Senior Designer", Color: "#F97316", MinYearsFromPrevious: 3, Track: TrackIC},
		{ID: "level-5-ic", Level: 5, Name: "Staff Designer", Color: "#EA580C", MinYearsFromPrevious: 4, Track: TrackIC},
		{ID: "level-4-manager", Level: 4, Name: "Design Manager", Color: "#86EFAC", MinYearsFromPrevious: 3, Track: TrackManager},
		{ID: "level-5-manager", Level: 5, Name: "Senior Design Manager", Color: "#4ADE80", MinYearsFromPrevious: 4, Track: TrackManager},
		{ID: "level-6-head", Level: 6, Name: "Head of Design", Color: "#22C55E", MinYearsFromPrevious: 4, IsMaxLevel: true},
	}
}

func DefaultRoleTypes() []RoleType {
	return []RoleType{
		{ID: "ux", Name: "UX Designer", Abbreviation: "UX"},
		{ID: "ui", Name: "UI Designer", Abbreviation: "UI"},
		{ID: "product", Name: "Product Designer", Abbreviation: "PD"},
		{ID: "visual", Name: "Visual Designer", Abbreviation: "VD"},
		{ID: "research", Name: "UX Researcher", Abbreviation: "UXR"},
		{ID: "content", Name: "Content Designer", Abbreviation: "CD"},
		{ID: "motion", Name: "Motion Designer", Abbreviation: "MD"},
	}
}

func DefaultSettings() Settings {
	return Settings{
		Levels:                 DefaultLevels(),
		RoleTypes:              DefaultRoleTypes(),
		SpanOfControlThreshold: DefaultSpanOfControlThreshold,
		TrackSplitLevel:        DefaultTrackSplitLevel,
	}
}

// Clone returns a copy of s that shares no slices with it.
func (s Settings) Clone() Settings {
	c := s
	c.Levels = append([]LevelConfig(nil), s.Levels...)
	c.RoleTypes = append([]RoleType(nil), s.RoleTypes...)
	return c
}

// HeadLevel returns the level number of the convergence entry. When no entry
// is flagged, the highest configured level stands in; 0 means no levels.
func (s Settings) HeadLevel() int {
	highest := 0
	for _, l := range s.Levels {
		if l.IsMaxLevel {
			return l.Level
		}
		if l.Level > highest {
			highest = l.Level
		}
	}
	return highest
}

// Validate checks the taxonomy invariants. All problems are reported at once.
func (s Settings) Validate() error {
	var problems []string

	if s.SpanOfControlThreshold < 1 {
		problems = append(problems, fmt.Sprintf("span of control threshold must be >= 1 (got %d)", s.SpanOfControlThreshold))
	}
	if len(s.Levels) == 0 {
		problems = append(problems, "at least one level is required")
	}

	ids := make(map[string]bool, len(s.Levels))
	byLevel := make(map[int][]LevelConfig)
	var heads []LevelConfig
	for i, l := range s.Levels {
		if l.ID == "" {
			problems = append(problems, fmt.Sprintf("levels[%d]: id is required", i))
		} else if ids[l.ID] {
			problems = append(problems, fmt.Sprintf("levels[%d]: duplicate id %q", i, l.ID))
		}
		ids[l.ID] = true
		if l.Level < 1 {
			problems = append(problems, fmt.Sprintf("levels[%d]: level must be >= 1 (got %d)", i, l.Level))
		}
		if l.MinYearsFromPrevious < 0 {
			problems = append(problems, fmt.Sprintf("levels[%d]: minYearsFromPrevious must be >= 0", i))
		}
		if l.Track != TrackNone && !ValidTracks[string(l.Track)] {
			problems = append(problems, fmt.Sprintf("levels[%d]: invalid track %q", i, l.Track))
		}
		if l.IsMaxLevel {
			heads = append(heads, l)
			if l.Track != TrackNone {
				problems = append(problems, fmt.Sprintf("levels[%d]: head level cannot belong to a track", i))
			}
		}
		byLevel[l.Level] = append(byLevel[l.Level], l)
	}

	head := 0
	switch len(heads) {
	case 0:
		if len(s.Levels) > 0 {
			problems = append(problems, "exactly one head level is required (none found)")
		}
	case 1:
		head = heads[0].Level
	default:
		problems = append(problems, fmt.Sprintf("exactly one head level is required (found %d)", len(heads)))
	}

	if head > 0 {
		if !(s.TrackSplitLevel > 1 && s.TrackSplitLevel < head) {
			problems = append(problems, fmt.Sprintf("track split level must satisfy 1 < split < %d (got %d)", head, s.TrackSplitLevel))
		}
	}

	levelNums := make([]int, 0, len(byLevel))
	for n := range byLevel {
		levelNums = append(levelNums, n)
	}
	sort.Ints(levelNums)
	for _, n := range levelNums {
		entries := byLevel[n]
		if head > 0 && n > head {
			problems = append(problems, fmt.Sprintf("level %d is above the head level %d", n, head))
			continue
		}
		branched := head > 0 && n >= s.TrackSplitLevel && n < head
		if branched {
			if !hasTrackPair(entries) {
				problems = append(problems, fmt.Sprintf("level %d must have exactly one ic and one manager entry", n))
			}
			continue
		}
		if len(entries) != 1 || entries[0].Track != TrackNone {
			problems = append(problems, fmt.Sprintf("level %d must have exactly one shared entry", n))
		}
	}

	roleIDs := make(map[string]bool, len(s.RoleTypes))
	for i, r := range s.RoleTypes {
		if r.ID == "" {
			problems = append(problems, fmt.Sprintf("roleTypes[%d]: id is required", i))
			continue
		}
		if roleIDs[r.ID] {
			problems = append(problems, fmt.Sprintf("roleTypes[%d]: duplicate id %q", i, r.ID))
		}
		roleIDs[r.ID] = true
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidSettings, strings.Join(problems, "; "))
	}
	return nil
}

func hasTrackPair(entries []LevelConfig) bool {
	if len(entries) != 2 {
		return false
	}
	var ic, mgr int
	for _, e := range entries {
		switch e.Track {
		case TrackIC:
			ic++
		case TrackManager:
			mgr++
		}
	}
	return ic == 1 && mgr == 1
}

// SettingsPatch carries optional replacements for each settings field.
type SettingsPatch struct {
	Levels                 []LevelConfig
	RoleTypes              []RoleType
	SpanOfControlThreshold *int
	TrackSplitLevel        *int
	CompanyName            *string
}

// ApplySettingsPatch returns base with every field present in patch replaced.
// Lists are replaced wholesale, never merged element-wise.
func ApplySettingsPatch(base Settings, patch SettingsPatch) Settings {
	out := base.Clone()
	if patch.Levels != nil {
		out.Levels = append([]LevelConfig(nil), patch.Levels...)
	}
	if patch.RoleTypes != nil {
		out.RoleTypes = append([]RoleType(nil), patch.RoleTypes...)
	}
	if patch.SpanOfControlThreshold != nil {
		out.SpanOfControlThreshold = *patch.SpanOfControlThreshold
	}
	if patch.TrackSplitLevel != nil {
		out.TrackSplitLevel = *patch.TrackSplitLevel
	}
	if patch.CompanyName != nil {
		out.CompanyName = *patch.CompanyName
	}
	return out
}
