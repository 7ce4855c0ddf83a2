// Package orgchart maintains the reporting forest. Relationships live on each
// node as a parent pointer (domain.ManagerRef); adjacency is derived on demand.
package orgchart

import "github.com/alexanderramin/teammap/internal/domain"

// ReportCounts maps each manager id to its number of direct reports. Ids with
// no reports are absent. Dangling manager ids are counted like any other.
func ReportCounts(nodes []*domain.Node) map[string]int {
	counts := make(map[string]int)
	for _, n := range nodes {
		if id, ok := n.Manager.ManagerID(); ok {
			counts[id]++
		}
	}
	return counts
}

// IsOverCapacity reports whether managerID has strictly more reports than
// threshold.
func IsOverCapacity(managerID string, counts map[string]int, threshold int) bool {
	return counts[managerID] > threshold
}

// AncestorChain returns the node followed by its manager, its manager's
// manager and so on. The walk stops at the first top-level, unassigned or
// missing manager, and on any revisited id so a corrupted cyclic graph
// cannot loop forever. An unknown nodeID yields an empty chain.
func AncestorChain(nodeID string, nodes []*domain.Node) []*domain.Node {
	return ancestorChain(nodeID, indexByID(nodes))
}

func ancestorChain(nodeID string, byID map[string]*domain.Node) []*domain.Node {
	var chain []*domain.Node
	seen := make(map[string]bool)
	current := nodeID
	for {
		if seen[current] {
			break
		}
		n, ok := byID[current]
		if !ok {
			break
		}
		seen[current] = true
		chain = append(chain, n)

		next, ok := n.Manager.ManagerID()
		if !ok {
			break
		}
		current = next
	}
	return chain
}

// DirectReports returns the nodes whose manager is exactly managerID, in
// input order.
func DirectReports(managerID string, nodes []*domain.Node) []*domain.Node {
	var out []*domain.Node
	for _, n := range nodes {
		if n.Manager.ReportsToID(managerID) {
			out = append(out, n)
		}
	}
	return out
}

// WouldCreateCycle reports whether making managerID the manager of nodeID
// closes a loop, i.e. nodeID already sits on managerID's ancestor chain
// (which includes managerID itself).
func WouldCreateCycle(nodeID, managerID string, nodes []*domain.Node) bool {
	return wouldCreateCycle(nodeID, managerID, indexByID(nodes))
}

func wouldCreateCycle(nodeID, managerID string, byID map[string]*domain.Node) bool {
	if nodeID == managerID {
		return true
	}
	for _, n := range ancestorChain(managerID, byID) {
		if n.ID == nodeID {
			return true
		}
	}
	return false
}

// Depth is the number of managers above nodeID that exist in nodes.
func Depth(nodeID string, nodes []*domain.Node) int {
	chain := AncestorChain(nodeID, nodes)
	if len(chain) == 0 {
		return 0
	}
	return len(chain) - 1
}

// ChildrenIndex groups nodes under their manager id, preserving input order.
func ChildrenIndex(nodes []*domain.Node) map[string][]*domain.Node {
	children := make(map[string][]*domain.Node)
	for _, n := range nodes {
		if id, ok := n.Manager.ManagerID(); ok {
			children[id] = append(children[id], n)
		}
	}
	return children
}

func indexByID(nodes []*domain.Node) map[string]*domain.Node {
	byID := make(map[string]*domain.Node, len(nodes))
	for _, n := range nodes {
		byID[n.ID] = n
	}
	return byID
}
