package domain

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidNode wraps every node field validation failure.
var ErrInvalidNode = errors.New("invalid node")

type NodeKind string

const (
	KindTeamMember  NodeKind = "team_member"
	KindPlannedHire NodeKind = "planned_hire"
)

type Track string

const (
	TrackNone    Track = ""
	TrackIC      Track = "ic"
	TrackManager Track = "manager"
)

// ValidTracks is the canonical set of accepted track strings.
var ValidTracks = map[string]bool{"ic": true, "manager": true}

type Gender string

const (
	GenderUnspecified Gender = ""
	GenderFemale      Gender = "female"
	GenderMale        Gender = "male"
	GenderNonBinary   Gender = "non_binary"
	GenderUndisclosed Gender = "undisclosed"
)

// ValidGenders is the canonical set of accepted non-empty gender strings.
var ValidGenders = map[string]bool{
	"female": true, "male": true, "non_binary": true, "undisclosed": true,
}

// Node is a box on the org chart: either an active team member or a planned
// hire. Kind is the discriminant; JoiningDate belongs to team members and
// TentativeDate to planned hires.
type Node struct {
	ID                string
	Kind              NodeKind
	Name              string
	RoleType          string
	Level             int
	Track             Track
	YearsOfExperience float64
	Manager           ManagerRef
	VerticalID        string
	JoiningDate       *time.Time
	TentativeDate     string
	Notes             string
	Gender            Gender
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (n *Node) IsPlannedHire() bool {
	return n.Kind == KindPlannedHire
}

// Validate checks the stored fields. Manager references are not checked:
// dangling ids are allowed.
func (n *Node) Validate() error {
	var errs []error
	if n.Name == "" {
		errs = append(errs, errors.New("name is required"))
	}
	if n.Level < 1 {
		errs = append(errs, fmt.Errorf("level must be >= 1 (got %d)", n.Level))
	}
	if n.YearsOfExperience < 0 {
		errs = append(errs, fmt.Errorf("years of experience must not be negative (got %v)", n.YearsOfExperience))
	}
	if n.Track != TrackNone && !ValidTracks[string(n.Track)] {
		errs = append(errs, fmt.Errorf("invalid track %q", n.Track))
	}
	if n.Gender != GenderUnspecified && !ValidGenders[string(n.Gender)] {
		errs = append(errs, fmt.Errorf("invalid gender %q", n.Gender))
	}
	if n.Kind != KindTeamMember && n.Kind != KindPlannedHire {
		errs = append(errs, fmt.Errorf("invalid kind %q", n.Kind))
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidNode, errors.Join(errs...))
}

// Clone returns a deep copy of n.
func (n *Node) Clone() *Node {
	c := *n
	if n.JoiningDate != nil {
		d := *n.JoiningDate
		c.JoiningDate = &d
	}
	return &c
}

// NodePatch is a partial update. Nil fields are left untouched. The manager
// relationship is deliberately absent: it only changes through the
// reporting operations.
type NodePatch struct {
	Name              *string
	RoleType          *string
	Level             *int
	Track             *Track
	YearsOfExperience *float64
	JoiningDate       *time.Time
	TentativeDate     *string
	Notes             *string
	Gender            *Gender
	VerticalID        *string
}

// Apply copies every set field of p onto n. Variant-specific dates are only
// applied to the matching variant.
func (p NodePatch) Apply(n *Node) {
	if p.Name != nil {
		n.Name = *p.Name
	}
	if p.RoleType != nil {
		n.RoleType = *p.RoleType
	}
	if p.Level != nil {
		n.Level = *p.Level
	}
	if p.Track != nil {
		n.Track = *p.Track
	}
	if p.YearsOfExperience != nil {
		n.YearsOfExperience = *p.YearsOfExperience
	}
	if p.JoiningDate != nil && !n.IsPlannedHire() {
		d := *p.JoiningDate
		n.JoiningDate = &d
	}
	if p.TentativeDate != nil && n.IsPlannedHire() {
		n.TentativeDate = *p.TentativeDate
	}
	if p.Notes != nil {
		n.Notes = *p.Notes
	}
	if p.Gender != nil {
		n.Gender = *p.Gender
	}
	if p.VerticalID != nil {
		n.VerticalID = *p.VerticalID
	}
}

// Position is a cached canvas coordinate (top-left corner of the node card).
type Position struct {
	X float64
	Y float64
}

// Vertical is a named grouping band on the canvas that nodes can belong to.
type Vertical struct {
	ID       string
	Name     string
	Color    string
	Position Position
}
