package formatter

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/teammap/internal/domain"
	"github.com/alexanderramin/teammap/internal/levels"
	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		titleRendered := StyleHeader.Render(strings.ToUpper(title))
		return boxStyle.Render(titleRendered + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// FormatDate renders a date-only value, or "--" when unset.
func FormatDate(t *time.Time) string {
	if t == nil {
		return StyleDim.Render("--")
	}
	return t.Format("Jan 2, 2006")
}

// FormatYears renders a year count without trailing zeros, e.g. "2.5y".
func FormatYears(y float64) string {
	return strconv.FormatFloat(y, 'f', -1, 64) + "y"
}

// KindPill returns a colored indicator for member vs planned hire.
func KindPill(n *domain.Node) string {
	if n.IsPlannedHire() {
		return StyleYellow.Render("○ Planned")
	}
	return StyleGreen.Render("● Member")
}

// TrackLabel renders the career track, dim when the level has none.
func TrackLabel(t domain.Track) string {
	switch t {
	case domain.TrackIC:
		return "IC"
	case domain.TrackManager:
		return "Manager"
	default:
		return StyleDim.Render("--")
	}
}

// ManagerLabel describes a manager reference. name is the resolved manager
// name and is empty when the manager id does not exist.
func ManagerLabel(ref domain.ManagerRef, name string) string {
	switch {
	case ref.IsTopLevel():
		return StylePurple.Render("top level")
	case ref.IsUnassigned():
		return StyleDim.Render("unassigned")
	case name != "":
		return name
	default:
		id, _ := ref.ManagerID()
		return StyleRed.Render("missing " + TruncID(id))
	}
}

// PromotionLabel renders eligibility: "eligible", "in 1.5y" or "--" for
// planned hires.
func PromotionLabel(n *domain.Node, p levels.Promotion) string {
	switch {
	case n.IsPlannedHire():
		return StyleDim.Render("--")
	case p.Eligible:
		return StyleGreen.Render("eligible")
	default:
		return "in " + FormatYears(p.YearsUntilEligible)
	}
}

// ReportsLabel renders a direct-report count, red with a marker when over
// the span of control.
func ReportsLabel(count int, over bool) string {
	if over {
		return StyleRed.Render(fmt.Sprintf("%d !", count))
	}
	if count == 0 {
		return StyleDim.Render("0")
	}
	return strconv.Itoa(count)
}
