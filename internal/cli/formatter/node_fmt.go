package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/teammap/internal/domain"
	"github.com/alexanderramin/teammap/internal/orgchart"
)

// FormatNodeList renders one row per node.
func FormatNodeList(facts []orgchart.NodeFacts) string {
	if len(facts) == 0 {
		return Dim("No nodes.") + "\n"
	}
	headers := []string{"ID", "NAME", "STATUS", "ROLE", "LEVEL", "TRACK", "MANAGER", "REPORTS", "PROMOTION"}
	rows := make([][]string, 0, len(facts))
	for _, f := range facts {
		rows = append(rows, []string{
			TruncID(f.Node.ID),
			f.Node.Name,
			KindPill(f.Node),
			f.RoleName,
			LevelLabel(f.LevelName, f.LevelColor),
			TrackLabel(f.Node.Track),
			ManagerLabel(f.Node.Manager, f.ManagerName),
			ReportsLabel(f.ReportCount, f.OverCapacity),
			PromotionLabel(f.Node, f.Promotion),
		})
	}
	return RenderTable(headers, rows)
}

const spanBarWidth = 12

// FormatNodeDetail renders a single node card with its chain of command.
// chain starts with the node itself, as returned by the reporting service.
func FormatNodeDetail(f orgchart.NodeFacts, chain []*domain.Node, vertical *domain.Vertical) string {
	n := f.Node
	var b strings.Builder

	fmt.Fprintf(&b, "%s  %s\n\n", Bold(n.Name), KindPill(n))
	field := func(label, value string) {
		fmt.Fprintf(&b, "  %s  %s\n", Dim(fmt.Sprintf("%-9s", label)), value)
	}
	field("ID", n.ID)
	field("ROLE", fmt.Sprintf("%s %s", f.RoleName, Dim("("+f.RoleAbbreviation+")")))
	field("LEVEL", fmt.Sprintf("%s %s", LevelLabel(f.LevelName, f.LevelColor), Dim(fmt.Sprintf("L%d", n.Level))))
	field("TRACK", TrackLabel(n.Track))
	field("EXPERIENCE", FormatYears(n.YearsOfExperience))
	field("MANAGER", ManagerLabel(n.Manager, f.ManagerName))
	field("REPORTS", ReportsLabel(f.ReportCount, f.OverCapacity))
	if f.ReportCount > 0 {
		field("SPAN", RenderSpan(f.ReportCount, f.SpanThreshold, spanBarWidth))
	}
	if n.IsPlannedHire() {
		field("TENTATIVE", n.TentativeDate)
	} else {
		field("JOINED", FormatDate(n.JoiningDate))
		field("PROMOTION", PromotionLabel(n, f.Promotion))
	}
	if vertical != nil {
		field("VERTICAL", Swatch(vertical.Color)+" "+vertical.Name)
	}
	if n.Gender != domain.GenderUnspecified {
		field("GENDER", string(n.Gender))
	}
	if n.Notes != "" {
		field("NOTES", n.Notes)
	}

	if len(chain) > 1 {
		names := make([]string, 0, len(chain)-1)
		for _, m := range chain[1:] {
			names = append(names, m.Name)
		}
		b.WriteString("\n")
		b.WriteString(Header("Chain of command"))
		b.WriteString("\n")
		b.WriteString("  " + strings.Join(names, Dim(" → ")) + "\n")
	}

	title := "Team member"
	if n.IsPlannedHire() {
		title = "Planned hire"
	}
	return RenderBox(title, b.String())
}

// FormatNodeRefs renders a short bulleted list of nodes, e.g. direct reports.
func FormatNodeRefs(nodes []*domain.Node) string {
	if len(nodes) == 0 {
		return Dim("None.") + "\n"
	}
	var b strings.Builder
	for _, n := range nodes {
		fmt.Fprintf(&b, "  %s %s  %s\n", Dim("•"), n.Name, TruncID(n.ID))
	}
	return b.String()
}
