package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/teammap/internal/domain"
	"github.com/alexanderramin/teammap/internal/quickstart"
)

func FormatSettings(s domain.Settings) string {
	var b strings.Builder

	company := s.CompanyName
	if company == "" {
		company = Dim("--")
	}
	fmt.Fprintf(&b, "  %s  %s\n", Dim("COMPANY        "), company)
	fmt.Fprintf(&b, "  %s  %d\n", Dim("SPAN OF CONTROL"), s.SpanOfControlThreshold)
	fmt.Fprintf(&b, "  %s  level %d\n", Dim("TRACK SPLIT    "), s.TrackSplitLevel)

	b.WriteString("\n")
	b.WriteString(Header("Levels"))
	b.WriteString("\n")
	rows := make([][]string, 0, len(s.Levels))
	for _, l := range s.Levels {
		name := LevelLabel(l.Name, l.Color)
		if l.IsMaxLevel {
			name += Dim(" (head)")
		}
		rows = append(rows, []string{
			Dim(l.ID),
			strconv.Itoa(l.Level),
			name,
			TrackLabel(l.Track),
			FormatYears(l.MinYearsFromPrevious),
		})
	}
	b.WriteString(RenderTable([]string{"ID", "LEVEL", "NAME", "TRACK", "MIN YEARS"}, rows))

	b.WriteString("\n")
	b.WriteString(Header("Role types"))
	b.WriteString("\n")
	rows = rows[:0]
	for _, r := range s.RoleTypes {
		rows = append(rows, []string{Dim(r.ID), r.Name, StyleBlue.Render(r.Abbreviation)})
	}
	b.WriteString(RenderTable([]string{"ID", "NAME", "ABBR"}, rows))
	return b.String()
}

func FormatVerticals(vs []*domain.Vertical, members map[string]int) string {
	if len(vs) == 0 {
		return Dim("No verticals.") + "\n"
	}
	rows := make([][]string, 0, len(vs))
	for _, v := range vs {
		rows = append(rows, []string{
			TruncID(v.ID),
			Swatch(v.Color) + " " + v.Name,
			strconv.Itoa(members[v.ID]),
			fmt.Sprintf("%g, %g", v.Position.X, v.Position.Y),
		})
	}
	return RenderTable([]string{"ID", "NAME", "MEMBERS", "POSITION"}, rows)
}

// FormatPositions lists cached positions in node order.
func FormatPositions(nodes []*domain.Node, positions map[string]domain.Position) string {
	rows := make([][]string, 0, len(nodes))
	for _, n := range nodes {
		p, ok := positions[n.ID]
		if !ok {
			rows = append(rows, []string{TruncID(n.ID), n.Name, Dim("--"), Dim("--")})
			continue
		}
		rows = append(rows, []string{
			TruncID(n.ID),
			n.Name,
			strconv.FormatFloat(p.X, 'f', -1, 64),
			strconv.FormatFloat(p.Y, 'f', -1, 64),
		})
	}
	if len(rows) == 0 {
		return Dim("No nodes.") + "\n"
	}
	return RenderTable([]string{"ID", "NAME", "X", "Y"}, rows)
}

func FormatPresets(presets []quickstart.Preset) string {
	rows := make([][]string, 0, len(presets))
	for _, p := range presets {
		rows = append(rows, []string{
			StyleBlue.Render(p.ID),
			p.Name,
			strconv.Itoa(len(p.RoleTypes)),
			Dim(p.Description),
		})
	}
	return RenderTable([]string{"ID", "NAME", "ROLES", "DESCRIPTION"}, rows)
}
