package orgchart

import (
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/teammap/internal/domain"
	"github.com/alexanderramin/teammap/internal/layout"
	"github.com/alexanderramin/teammap/internal/levels"
	"github.com/google/uuid"
)

var (
	ErrNodeNotFound     = errors.New("node not found")
	ErrNotPlannedHire   = errors.New("node is not a planned hire")
	ErrVerticalNotFound = errors.New("vertical not found")
)

// State is the full editable data set: nodes, verticals, cached positions
// and settings.
type State struct {
	Nodes     []*domain.Node
	Verticals []*domain.Vertical
	Positions map[string]domain.Position
	Settings  domain.Settings
}

// Chart owns one State and applies the editing operations to it. Every
// operation either applies completely or leaves the state untouched. A Chart
// is not safe for concurrent use.
type Chart struct {
	nodes     []*domain.Node
	byID      map[string]*domain.Node
	verticals []*domain.Vertical
	positions map[string]domain.Position
	settings  domain.Settings

	now   func() time.Time
	newID func() string
}

type Option func(*Chart)

// WithClock overrides the time source used for timestamps and default dates.
func WithClock(now func() time.Time) Option {
	return func(c *Chart) { c.now = now }
}

// WithIDGenerator overrides node and vertical id generation.
func WithIDGenerator(gen func() string) Option {
	return func(c *Chart) { c.newID = gen }
}

// New builds a Chart from a copy of state. Positions for ids that are not
// nodes are dropped.
func New(state State, opts ...Option) *Chart {
	c := &Chart{
		now:   func() time.Time { return time.Now().UTC() },
		newID: func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(c)
	}
	c.load(state)
	return c
}

func (c *Chart) load(state State) {
	c.nodes = make([]*domain.Node, 0, len(state.Nodes))
	c.byID = make(map[string]*domain.Node, len(state.Nodes))
	for _, n := range state.Nodes {
		cp := n.Clone()
		c.nodes = append(c.nodes, cp)
		c.byID[cp.ID] = cp
	}
	c.verticals = make([]*domain.Vertical, 0, len(state.Verticals))
	for _, v := range state.Verticals {
		cp := *v
		c.verticals = append(c.verticals, &cp)
	}
	c.positions = make(map[string]domain.Position, len(state.Positions))
	for id, p := range state.Positions {
		if _, ok := c.byID[id]; ok {
			c.positions[id] = p
		}
	}
	c.settings = state.Settings.Clone()
}

// State returns a deep copy of the current state.
func (c *Chart) State() State {
	return State{
		Nodes:     c.Nodes(),
		Verticals: c.Verticals(),
		Positions: c.Positions(),
		Settings:  c.settings.Clone(),
	}
}

// Nodes returns copies of all nodes in insertion order.
func (c *Chart) Nodes() []*domain.Node {
	out := make([]*domain.Node, 0, len(c.nodes))
	for _, n := range c.nodes {
		out = append(out, n.Clone())
	}
	return out
}

func (c *Chart) Node(id string) (*domain.Node, bool) {
	n, ok := c.byID[id]
	if !ok {
		return nil, false
	}
	return n.Clone(), true
}

func (c *Chart) Len() int { return len(c.nodes) }

// NewNode holds the caller-supplied fields of a node being added.
type NewNode struct {
	Name              string
	RoleType          string
	Level             int
	Track             domain.Track
	YearsOfExperience float64
	Manager           domain.ManagerRef
	VerticalID        string
	JoiningDate       *time.Time
	TentativeDate     string
	Notes             string
	Gender            domain.Gender
}

// AddTeamMember adds an active member and returns it with its new id.
func (c *Chart) AddTeamMember(in NewNode) *domain.Node {
	n := c.newNode(domain.KindTeamMember, in)
	if in.JoiningDate != nil {
		d := *in.JoiningDate
		n.JoiningDate = &d
	}
	return c.insert(n)
}

// AddPlannedHire adds a planned hire and returns it with its new id.
func (c *Chart) AddPlannedHire(in NewNode) *domain.Node {
	n := c.newNode(domain.KindPlannedHire, in)
	n.TentativeDate = in.TentativeDate
	return c.insert(n)
}

func (c *Chart) newNode(kind domain.NodeKind, in NewNode) *domain.Node {
	now := c.now()
	return &domain.Node{
		ID:                c.newID(),
		Kind:              kind,
		Name:              in.Name,
		RoleType:          in.RoleType,
		Level:             in.Level,
		Track:             levels.NormalizeTrack(in.Level, in.Track, c.settings),
		YearsOfExperience: in.YearsOfExperience,
		Manager:           in.Manager,
		VerticalID:        in.VerticalID,
		Notes:             in.Notes,
		Gender:            in.Gender,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

func (c *Chart) insert(n *domain.Node) *domain.Node {
	c.nodes = append(c.nodes, n)
	c.byID[n.ID] = n
	return n.Clone()
}

// UpdateNode applies a partial update. When the level or track changes the
// track is re-normalized against the taxonomy.
func (c *Chart) UpdateNode(id string, patch domain.NodePatch) (*domain.Node, error) {
	n, ok := c.byID[id]
	if !ok {
		return nil, fmt.Errorf("updating %s: %w", id, ErrNodeNotFound)
	}
	patch.Apply(n)
	if patch.Level != nil || patch.Track != nil {
		n.Track = levels.NormalizeTrack(n.Level, n.Track, c.settings)
	}
	n.UpdatedAt = c.now()
	return n.Clone(), nil
}

// DeleteNode removes id, clears the manager of each of its direct reports to
// unassigned and drops its cached position. It returns the ids of the nodes
// whose manager was cleared.
func (c *Chart) DeleteNode(id string) ([]string, error) {
	if _, ok := c.byID[id]; !ok {
		return nil, fmt.Errorf("deleting %s: %w", id, ErrNodeNotFound)
	}

	now := c.now()
	var cleared []string
	kept := c.nodes[:0]
	for _, n := range c.nodes {
		if n.ID == id {
			continue
		}
		if n.Manager.ReportsToID(id) {
			n.Manager = domain.Unassigned()
			n.UpdatedAt = now
			cleared = append(cleared, n.ID)
		}
		kept = append(kept, n)
	}
	for i := len(kept); i < len(c.nodes); i++ {
		c.nodes[i] = nil
	}
	c.nodes = kept
	delete(c.byID, id)
	delete(c.positions, id)
	return cleared, nil
}

// ConvertToHired turns a planned hire into a team member in place. The id,
// level, track and manager are preserved; the tentative date is replaced by
// joiningDate, or today when joiningDate is nil.
func (c *Chart) ConvertToHired(id string, joiningDate *time.Time) (*domain.Node, error) {
	n, ok := c.byID[id]
	if !ok {
		return nil, fmt.Errorf("converting %s: %w", id, ErrNodeNotFound)
	}
	if !n.IsPlannedHire() {
		return nil, fmt.Errorf("converting %s: %w", id, ErrNotPlannedHire)
	}

	now := c.now()
	var joined time.Time
	if joiningDate != nil {
		joined = *joiningDate
	} else {
		y, m, d := now.Date()
		joined = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}

	n.Kind = domain.KindTeamMember
	n.TentativeDate = ""
	n.JoiningDate = &joined
	n.UpdatedAt = now
	return n.Clone(), nil
}

// SetManager makes managerID the manager of nodeID. It returns false and
// changes nothing when nodeID already sits on managerID's ancestor chain.
// The manager itself is not required to exist.
func (c *Chart) SetManager(nodeID, managerID string) (bool, error) {
	n, ok := c.byID[nodeID]
	if !ok {
		return false, fmt.Errorf("setting manager of %s: %w", nodeID, ErrNodeNotFound)
	}
	if wouldCreateCycle(nodeID, managerID, c.byID) {
		return false, nil
	}
	n.Manager = domain.ReportsTo(managerID)
	n.UpdatedAt = c.now()
	return true, nil
}

// SetTopLevel marks nodeID as explicitly having no manager.
func (c *Chart) SetTopLevel(nodeID string) error {
	return c.setManagerRef(nodeID, domain.TopLevel())
}

// RemoveManager returns nodeID to the unassigned state.
func (c *Chart) RemoveManager(nodeID string) error {
	return c.setManagerRef(nodeID, domain.Unassigned())
}

func (c *Chart) setManagerRef(nodeID string, ref domain.ManagerRef) error {
	n, ok := c.byID[nodeID]
	if !ok {
		return fmt.Errorf("changing manager of %s: %w", nodeID, ErrNodeNotFound)
	}
	n.Manager = ref
	n.UpdatedAt = c.now()
	return nil
}

func (c *Chart) AncestorChain(nodeID string) []*domain.Node {
	return cloneAll(ancestorChain(nodeID, c.byID))
}

func (c *Chart) DirectReports(managerID string) []*domain.Node {
	return cloneAll(DirectReports(managerID, c.nodes))
}

func (c *Chart) ReportCounts() map[string]int {
	return ReportCounts(c.nodes)
}

// IsOverCapacity checks managerID against the configured span of control.
func (c *Chart) IsOverCapacity(managerID string) bool {
	return IsOverCapacity(managerID, ReportCounts(c.nodes), c.settings.SpanOfControlThreshold)
}

func (c *Chart) Promotion(nodeID string) (levels.Promotion, error) {
	n, ok := c.byID[nodeID]
	if !ok {
		return levels.Promotion{}, fmt.Errorf("promotion of %s: %w", nodeID, ErrNodeNotFound)
	}
	return levels.PromotionStatus(n, c.settings), nil
}

// Settings returns a copy of the current settings.
func (c *Chart) Settings() domain.Settings { return c.settings.Clone() }

// SetSettings replaces the settings after validating them.
func (c *Chart) SetSettings(s domain.Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}
	c.settings = s.Clone()
	c.normalizeTracks()
	return nil
}

// ResetSettings restores the default settings.
func (c *Chart) ResetSettings() {
	c.settings = domain.DefaultSettings()
	c.normalizeTracks()
}

// Replace swaps in a whole new state, as an import does. Settings are taken
// as given; callers merge them over defaults beforehand. Node tracks are
// normalized against the incoming settings.
func (c *Chart) Replace(state State) {
	c.load(state)
	c.normalizeTracks()
}

// normalizeTracks re-applies the track rule to every node after the ladder
// or split level changed.
func (c *Chart) normalizeTracks() {
	for _, n := range c.nodes {
		n.Track = levels.NormalizeTrack(n.Level, n.Track, c.settings)
	}
}

// Clear removes every node, vertical and position. Settings are kept.
func (c *Chart) Clear() {
	c.nodes = nil
	c.byID = make(map[string]*domain.Node)
	c.verticals = nil
	c.positions = make(map[string]domain.Position)
}

func cloneAll(nodes []*domain.Node) []*domain.Node {
	out := make([]*domain.Node, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.Clone())
	}
	return out
}

// Layout computes a fresh auto-arrangement of the current forest without
// touching the cached positions.
func (c *Chart) Layout(cfg layout.Config) map[string]domain.Position {
	return layout.Compute(c.nodes, cfg)
}
