package levels

import (
	"math"

	"github.com/alexanderramin/teammap/internal/domain"
)

// Promotion is a node's promotion outlook.
//
// YearsUntilEligible is 0 both when the node is eligible now and when there
// is no level above it. Check Eligible first.
type Promotion struct {
	Eligible           bool
	YearsUntilEligible float64
}

// PromotionStatus computes eligibility from cumulative tenure requirements
// along the node's track path. Planned hires are never eligible.
func PromotionStatus(n *domain.Node, s domain.Settings) Promotion {
	if n.IsPlannedHire() {
		return Promotion{}
	}

	var needed float64
	for i := 1; i <= n.Level; i++ {
		if c, ok := ResolveFor(i, pathTrack(i, n.Track, s), s); ok {
			needed += c.MinYearsFromPrevious
		}
	}

	nextLevel := n.Level + 1
	next, ok := ResolveFor(nextLevel, pathTrack(nextLevel, n.Track, s), s)
	if !ok {
		return Promotion{}
	}
	needed += next.MinYearsFromPrevious

	remaining := math.Max(0, needed-n.YearsOfExperience)
	return Promotion{
		Eligible:           remaining == 0,
		YearsUntilEligible: remaining,
	}
}

// pathTrack only uses the node's track at or above the split level.
func pathTrack(level int, track domain.Track, s domain.Settings) domain.Track {
	if level >= s.TrackSplitLevel {
		return track
	}
	return domain.TrackNone
}
