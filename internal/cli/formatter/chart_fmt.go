package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/teammap/internal/orgchart"
)

// FormatChart renders the reporting forest as a tree. Nodes whose manager is
// not in facts start a new tree. Nodes stuck in a stored cycle are shown as
// roots so nothing is dropped.
func FormatChart(facts []orgchart.NodeFacts) string {
	if len(facts) == 0 {
		return Dim("No one on the chart yet.") + "\n"
	}

	known := make(map[string]bool, len(facts))
	for _, f := range facts {
		known[f.Node.ID] = true
	}
	children := make(map[string][]int)
	var roots []int
	for i, f := range facts {
		if id, ok := f.Node.Manager.ManagerID(); ok && known[id] && id != f.Node.ID {
			children[id] = append(children[id], i)
			continue
		}
		roots = append(roots, i)
	}

	var items []TreeItem
	visited := make([]bool, len(facts))
	var walk func(i int, lasts []bool)
	walk = func(i int, lasts []bool) {
		if visited[i] {
			return
		}
		visited[i] = true
		items = append(items, chartItem(facts[i], lasts))
		kids := children[facts[i].Node.ID]
		for k, child := range kids {
			next := append(append([]bool(nil), lasts...), k == len(kids)-1)
			walk(child, next)
		}
	}
	for _, r := range roots {
		walk(r, nil)
	}
	for i := range facts {
		if !visited[i] {
			walk(i, nil)
		}
	}
	return RenderTree(items)
}

func chartItem(f orgchart.NodeFacts, lasts []bool) TreeItem {
	n := f.Node
	title := Bold(n.Name)
	if n.IsPlannedHire() {
		title = StyleYellow.Render(n.Name)
	}
	if n.Manager.IsUnassigned() {
		title += Dim(" (unassigned)")
	}

	parts := []string{LevelLabel(f.LevelName, f.LevelColor)}
	if f.RoleAbbreviation != "" {
		parts = append(parts, StyleBlue.Render(f.RoleAbbreviation))
	}
	if f.ReportCount > 0 {
		parts = append(parts, fmt.Sprintf("%s reports", ReportsLabel(f.ReportCount, f.OverCapacity)))
	}
	switch {
	case n.IsPlannedHire():
		date := n.TentativeDate
		if date == "" {
			date = "TBD"
		}
		parts = append(parts, StyleYellow.Render("hire "+date))
	case f.Promotion.Eligible:
		parts = append(parts, StyleGreen.Render("↑ eligible"))
	}
	return TreeItem{Title: title, Lasts: lasts, Badge: strings.Join(parts, Dim(" · "))}
}
