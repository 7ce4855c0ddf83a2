// Package quickstart holds the built-in team presets and generates starter
// charts from them.
package quickstart

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/alexanderramin/teammap/internal/domain"
	"gopkg.in/yaml.v3"
)

//go:embed presets.yaml
var presetsYAML []byte

// Preset is a team type with its own role types and level ladder.
type Preset struct {
	ID          string       `yaml:"id"`
	Name        string       `yaml:"name"`
	Description string       `yaml:"description"`
	TeamName    string       `yaml:"team_name"`
	RoleTerm    string       `yaml:"role_term"`
	HeadTitle   string       `yaml:"head_title"`
	RoleTypes   []presetRole `yaml:"role_types"`
	Levels      []presetLvl  `yaml:"levels"`
}

type presetRole struct {
	ID           string `yaml:"id"`
	Name         string `yaml:"name"`
	Abbreviation string `yaml:"abbreviation"`
}

type presetLvl struct {
	Level    int     `yaml:"level"`
	Track    string  `yaml:"track"`
	Head     bool    `yaml:"head"`
	Name     string  `yaml:"name"`
	Color    string  `yaml:"color"`
	MinYears float64 `yaml:"min_years"`
}

var (
	loadOnce sync.Once
	presets  []Preset
	loadErr  error
)

// Presets returns the built-in presets in display order.
func Presets() ([]Preset, error) {
	loadOnce.Do(func() {
		presets, loadErr = parsePresets(presetsYAML)
	})
	return presets, loadErr
}

func parsePresets(data []byte) ([]Preset, error) {
	var out []Preset
	if err := yaml.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("parsing presets: %w", err)
	}
	for _, p := range out {
		if err := p.settings(nil).Validate(); err != nil {
			return nil, fmt.Errorf("preset %s: %w", p.ID, err)
		}
	}
	return out, nil
}

// Find looks up a preset by id.
func Find(id string) (Preset, error) {
	all, err := Presets()
	if err != nil {
		return Preset{}, err
	}
	for _, p := range all {
		if p.ID == id {
			return p, nil
		}
	}
	return Preset{}, fmt.Errorf("unknown preset %q", id)
}

// LevelConfigs returns the preset's ladder as domain level entries.
func (p Preset) LevelConfigs() []domain.LevelConfig {
	out := make([]domain.LevelConfig, 0, len(p.Levels))
	for _, l := range p.Levels {
		track := domain.Track(l.Track)
		out = append(out, domain.LevelConfig{
			ID:                   domain.LevelID(l.Level, track, l.Head),
			Level:                l.Level,
			Name:                 l.Name,
			Color:                l.Color,
			MinYearsFromPrevious: l.MinYears,
			Track:                track,
			IsMaxLevel:           l.Head,
		})
	}
	return out
}

// RoleTypeConfigs returns the preset's role types, limited to selected when
// it names at least one known id.
func (p Preset) RoleTypeConfigs(selected []string) []domain.RoleType {
	want := make(map[string]bool, len(selected))
	for _, id := range selected {
		want[id] = true
	}

	var all, picked []domain.RoleType
	for _, r := range p.RoleTypes {
		rt := domain.RoleType{ID: r.ID, Name: r.Name, Abbreviation: r.Abbreviation}
		all = append(all, rt)
		if want[r.ID] {
			picked = append(picked, rt)
		}
	}
	if len(picked) == 0 {
		return all
	}
	return picked
}

// SettingsPatch replaces the ladder and role types, leaving the remaining
// settings to the caller.
func (p Preset) SettingsPatch(selected []string) domain.SettingsPatch {
	split := domain.DefaultTrackSplitLevel
	return domain.SettingsPatch{
		Levels:          p.LevelConfigs(),
		RoleTypes:       p.RoleTypeConfigs(selected),
		TrackSplitLevel: &split,
	}
}

func (p Preset) settings(selected []string) domain.Settings {
	return domain.ApplySettingsPatch(domain.DefaultSettings(), p.SettingsPatch(selected))
}
