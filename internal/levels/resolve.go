// Package levels resolves a node's place in the career ladder: which level
// entry applies to a (level, track) pair, what to call it, which color to
// paint it, and how far the node is from its next promotion.
//
// Every function here is total. Missing or hand-edited configuration
// degrades to placeholder values instead of failing.
package levels

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/alexanderramin/teammap/internal/domain"
)

// FallbackColor is used for levels that have no configuration entry.
const FallbackColor = "#e4e4e7"

// Resolve finds the level entry for level, preferring the requested track
// when the level is branched. The second return is false when nothing is
// configured for level.
func Resolve(level int, track domain.Track, splitLevel int, configs []domain.LevelConfig) (domain.LevelConfig, bool) {
	var matches []domain.LevelConfig
	for _, c := range configs {
		if c.Level == level {
			matches = append(matches, c)
		}
	}

	switch len(matches) {
	case 0:
		return domain.LevelConfig{}, false
	case 1:
		return matches[0], true
	}

	if track != domain.TrackNone {
		for _, m := range matches {
			if m.Track == track {
				return m, true
			}
		}
	}
	for _, m := range matches {
		if m.Track == domain.TrackNone {
			return m, true
		}
	}
	if level >= splitLevel {
		for _, m := range matches {
			if m.Track == domain.TrackIC {
				return m, true
			}
		}
	}
	return matches[0], true
}

// ResolveFor resolves a level against settings.
func ResolveFor(level int, track domain.Track, s domain.Settings) (domain.LevelConfig, bool) {
	return Resolve(level, track, s.TrackSplitLevel, s.Levels)
}

// Name returns the display name of a level, or "Level N" when unconfigured.
func Name(level int, track domain.Track, s domain.Settings) string {
	if c, ok := ResolveFor(level, track, s); ok && c.Name != "" {
		return c.Name
	}
	return fmt.Sprintf("Level %d", level)
}

// Color returns the level color, or FallbackColor when unconfigured.
func Color(level int, track domain.Track, s domain.Settings) string {
	if c, ok := ResolveFor(level, track, s); ok && c.Color != "" {
		return c.Color
	}
	return FallbackColor
}

// RoleTypeName returns the configured role name, or the raw id.
func RoleTypeName(id string, s domain.Settings) string {
	if r, ok := findRoleType(id, s); ok && r.Name != "" {
		return r.Name
	}
	return id
}

// RoleTypeAbbreviation returns the configured abbreviation, or the first two
// characters of the id upper-cased.
func RoleTypeAbbreviation(id string, s domain.Settings) string {
	if r, ok := findRoleType(id, s); ok && r.Abbreviation != "" {
		return r.Abbreviation
	}
	upper := strings.ToUpper(id)
	if utf8.RuneCountInString(upper) <= 2 {
		return upper
	}
	return string([]rune(upper)[:2])
}

func findRoleType(id string, s domain.Settings) (domain.RoleType, bool) {
	for _, r := range s.RoleTypes {
		if r.ID == id {
			return r, true
		}
	}
	return domain.RoleType{}, false
}

// TrackApplies reports whether a node at level carries a track: at or above
// the split and below the head level.
func TrackApplies(level int, s domain.Settings) bool {
	head := s.HeadLevel()
	if level < s.TrackSplitLevel {
		return false
	}
	return head == 0 || level < head
}

// NormalizeTrack returns the track a node at level should store. Outside the
// branched band the track is dropped; inside it a missing track becomes ic.
func NormalizeTrack(level int, track domain.Track, s domain.Settings) domain.Track {
	if !TrackApplies(level, s) {
		return domain.TrackNone
	}
	if track == domain.TrackNone {
		return domain.TrackIC
	}
	return track
}
