package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSettings_Valid(t *testing.T) {
	require.NoError(t, DefaultSettings().Validate())
	assert.Equal(t, 6, DefaultSettings().HeadLevel())
}

func TestLevelID(t *testing.T) {
	assert.Equal(t, "level-2", LevelID(2, TrackNone, false))
	assert.Equal(t, "level-4-ic", LevelID(4, TrackIC, false))
	assert.Equal(t, "level-5-manager", LevelID(5, TrackManager, false))
	assert.Equal(t, "level-6-head", LevelID(6, TrackNone, true))
}

func TestSettingsValidate_Violations(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(s *Settings)
		want   string
	}{
		{
			name:   "split at 1",
			mutate: func(s *Settings) { s.TrackSplitLevel = 1 },
			want:   "track split level",
		},
		{
			name:   "split at head",
			mutate: func(s *Settings) { s.TrackSplitLevel = 6 },
			want:   "track split level",
		},
		{
			name:   "zero threshold",
			mutate: func(s *Settings) { s.SpanOfControlThreshold = 0 },
			want:   "span of control",
		},
		{
			name: "two heads",
			mutate: func(s *Settings) {
				s.Levels = append(s.Levels, LevelConfig{ID: "level-7-head", Level: 7, IsMaxLevel: true})
			},
			want: "exactly one head",
		},
		{
			name: "missing manager branch",
			mutate: func(s *Settings) {
				var kept []LevelConfig
				for _, l := range s.Levels {
					if l.ID != "level-5-manager" {
						kept = append(kept, l)
					}
				}
				s.Levels = kept
			},
			want: "level 5 must have exactly one ic and one manager entry",
		},
		{
			name: "tracked shared level",
			mutate: func(s *Settings) {
				s.Levels[1].Track = TrackIC
			},
			want: "level 2 must have exactly one shared entry",
		},
		{
			name: "duplicate role type",
			mutate: func(s *Settings) {
				s.RoleTypes = append(s.RoleTypes, RoleType{ID: "ux", Name: "Again"})
			},
			want: "duplicate id \"ux\"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			tt.mutate(&s)
			err := s.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidSettings)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestApplySettingsPatch_AbsentFieldsKeepBase(t *testing.T) {
	threshold := 8
	name := "Acme"
	out := ApplySettingsPatch(DefaultSettings(), SettingsPatch{
		SpanOfControlThreshold: &threshold,
		CompanyName:            &name,
	})

	assert.Equal(t, 8, out.SpanOfControlThreshold)
	assert.Equal(t, "Acme", out.CompanyName)
	assert.Equal(t, DefaultTrackSplitLevel, out.TrackSplitLevel)
	assert.Equal(t, DefaultLevels(), out.Levels)
}

func TestApplySettingsPatch_DoesNotAliasBase(t *testing.T) {
	base := DefaultSettings()
	out := ApplySettingsPatch(base, SettingsPatch{})
	out.Levels[0].Name = "changed"
	assert.Equal(t, "Designer I", base.Levels[0].Name)
}
