// Package layout computes auto-arranged canvas positions for the reporting
// forest with a two-pass tree drawing: subtree widths bottom-up, then
// coordinates top-down. Positions are the top-left corner of each card.
package layout

import "github.com/alexanderramin/teammap/internal/domain"

// Config holds the card size, gaps and canvas origin.
type Config struct {
	NodeWidth     float64
	NodeHeight    float64
	HorizontalGap float64
	VerticalGap   float64
	StartX        float64
	StartY        float64
}

func DefaultConfig() Config {
	return Config{
		NodeWidth:     180,
		NodeHeight:    100,
		HorizontalGap: 40,
		VerticalGap:   80,
		StartX:        100,
		StartY:        100,
	}
}

// RowHeight is the vertical distance between a parent row and its children.
func (c Config) RowHeight() float64 {
	return c.NodeHeight + c.VerticalGap
}

type engine struct {
	cfg       Config
	children  map[string][]*domain.Node
	widths    map[string]float64
	computing map[string]bool
	out       map[string]domain.Position
}

// Compute lays out nodes without looking at any cached positions.
//
// Explicit top-level nodes are roots, placed left to right in input order.
// Every node reachable from a root is centered over its own subtree with its
// children in one row below. Nodes that are unassigned, report to a missing
// manager, or are unreachable for any other reason go into a single row to
// the right of everything else.
func Compute(nodes []*domain.Node, cfg Config) map[string]domain.Position {
	e := &engine{
		cfg:       cfg,
		children:  make(map[string][]*domain.Node),
		widths:    make(map[string]float64, len(nodes)),
		computing: make(map[string]bool),
		out:       make(map[string]domain.Position, len(nodes)),
	}

	var roots []*domain.Node
	for _, n := range nodes {
		if n.Manager.IsTopLevel() {
			roots = append(roots, n)
		}
		if id, ok := n.Manager.ManagerID(); ok {
			e.children[id] = append(e.children[id], n)
		}
	}

	cursor := cfg.StartX
	for _, r := range roots {
		w := e.width(r.ID)
		e.place(r, cursor, cfg.StartY)
		cursor += w + 2*cfg.HorizontalGap
	}

	e.placeOrphans(nodes)
	return e.out
}

// width returns the horizontal extent of id's subtree. A node already on the
// current recursion path counts as a leaf so cyclic data terminates.
func (e *engine) width(id string) float64 {
	if w, ok := e.widths[id]; ok {
		return w
	}
	if e.computing[id] {
		return e.cfg.NodeWidth
	}
	e.computing[id] = true
	defer delete(e.computing, id)

	kids := e.children[id]
	if len(kids) == 0 {
		e.widths[id] = e.cfg.NodeWidth
		return e.cfg.NodeWidth
	}

	var sum float64
	for _, k := range kids {
		sum += e.width(k.ID)
	}
	sum += float64(len(kids)-1) * e.cfg.HorizontalGap

	w := max(e.cfg.NodeWidth, sum)
	e.widths[id] = w
	return w
}

func (e *engine) place(n *domain.Node, left, y float64) {
	if _, done := e.out[n.ID]; done {
		return
	}
	w := e.width(n.ID)
	e.out[n.ID] = domain.Position{
		X: left + (w-e.cfg.NodeWidth)/2,
		Y: y,
	}

	kids := e.children[n.ID]
	if len(kids) == 0 {
		return
	}
	var row float64
	for _, k := range kids {
		row += e.width(k.ID)
	}
	row += float64(len(kids)-1) * e.cfg.HorizontalGap

	cursor := left + (w-row)/2
	childY := y + e.cfg.RowHeight()
	for _, k := range kids {
		e.place(k, cursor, childY)
		cursor += e.width(k.ID) + e.cfg.HorizontalGap
	}
}

func (e *engine) placeOrphans(nodes []*domain.Node) {
	var orphans []*domain.Node
	for _, n := range nodes {
		if _, ok := e.out[n.ID]; !ok {
			orphans = append(orphans, n)
		}
	}
	if len(orphans) == 0 {
		return
	}

	x := e.cfg.StartX
	if len(e.out) > 0 {
		var right float64
		first := true
		for _, p := range e.out {
			if r := p.X + e.cfg.NodeWidth; first || r > right {
				right = r
				first = false
			}
		}
		x = right + 2*e.cfg.HorizontalGap
	}

	for _, n := range orphans {
		e.out[n.ID] = domain.Position{X: x, Y: e.cfg.StartY}
		x += e.cfg.NodeWidth + e.cfg.HorizontalGap
	}
}
