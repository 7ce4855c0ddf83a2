package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// TreeItem is one line of a tree. Lasts holds, for each depth from 1 to the
// item's own depth, whether the ancestor at that depth (or the item itself,
// last entry) is the final child of its parent. Roots have an empty Lasts.
type TreeItem struct {
	Title string
	Lasts []bool
	Badge string
}

const (
	treeBranch = "├─ "
	treeCorner = "└─ "
	treePipe   = "│  "
	treeBlank  = "   "
)

// RenderTree renders items as an indented tree with box-drawing connectors.
// Badges are right-aligned in a column after the widest title.
func RenderTree(items []TreeItem) string {
	if len(items) == 0 {
		return ""
	}

	contents := make([]string, len(items))
	widest := 0
	for i, item := range items {
		contents[i] = treePrefix(item.Lasts) + item.Title
		widest = max(widest, lipgloss.Width(contents[i]))
	}

	var b strings.Builder
	for i, item := range items {
		b.WriteString(contents[i])
		if item.Badge != "" {
			pad := widest - lipgloss.Width(contents[i])
			b.WriteString(strings.Repeat(" ", pad+colGap))
			b.WriteString(item.Badge)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func treePrefix(lasts []bool) string {
	if len(lasts) == 0 {
		return ""
	}
	var p strings.Builder
	for _, last := range lasts[:len(lasts)-1] {
		if last {
			p.WriteString(treeBlank)
		} else {
			p.WriteString(treePipe)
		}
	}
	if lasts[len(lasts)-1] {
		p.WriteString(treeCorner)
	} else {
		p.WriteString(treeBranch)
	}
	return StyleDim.Render(p.String())
}
