package domain

import "fmt"

type managerState uint8

const (
	managerUnassigned managerState = iota
	managerTopLevel
	managerReportsTo
)

// ManagerState names the persisted form of a ManagerRef variant.
type ManagerState string

const (
	ManagerStateUnassigned ManagerState = "unassigned"
	ManagerStateTopLevel   ManagerState = "top_level"
	ManagerStateReportsTo  ManagerState = "reports_to"
)

// ManagerRef is a node's reporting relationship. It has three variants:
// unassigned (the zero value, may still receive a manager), explicitly
// top-level, and reports-to a specific node id. Unassigned and top-level
// are different states and must never be collapsed into one another.
type ManagerRef struct {
	state managerState
	id    string
}

func Unassigned() ManagerRef { return ManagerRef{} }

func TopLevel() ManagerRef { return ManagerRef{state: managerTopLevel} }

// ReportsTo returns a reference to managerID. An empty id yields Unassigned.
func ReportsTo(managerID string) ManagerRef {
	if managerID == "" {
		return Unassigned()
	}
	return ManagerRef{state: managerReportsTo, id: managerID}
}

func (m ManagerRef) IsUnassigned() bool { return m.state == managerUnassigned }

func (m ManagerRef) IsTopLevel() bool { return m.state == managerTopLevel }

// ManagerID returns the managing node's id when the ref is a reports-to.
func (m ManagerRef) ManagerID() (string, bool) {
	if m.state != managerReportsTo {
		return "", false
	}
	return m.id, true
}

// ReportsToID reports whether m points at id.
func (m ManagerRef) ReportsToID(id string) bool {
	return m.state == managerReportsTo && m.id == id
}

func (m ManagerRef) Equal(o ManagerRef) bool {
	return m.state == o.state && m.id == o.id
}

// IsZero lets encoders with omitzero drop unassigned refs.
func (m ManagerRef) IsZero() bool { return m.state == managerUnassigned }

func (m ManagerRef) State() ManagerState {
	switch m.state {
	case managerTopLevel:
		return ManagerStateTopLevel
	case managerReportsTo:
		return ManagerStateReportsTo
	default:
		return ManagerStateUnassigned
	}
}

// ManagerRefFromState rebuilds a ManagerRef from its persisted form.
func ManagerRefFromState(state ManagerState, id string) (ManagerRef, error) {
	switch state {
	case ManagerStateUnassigned, "":
		return Unassigned(), nil
	case ManagerStateTopLevel:
		return TopLevel(), nil
	case ManagerStateReportsTo:
		if id == "" {
			return ManagerRef{}, fmt.Errorf("manager state %q requires a manager id", state)
		}
		return ReportsTo(id), nil
	default:
		return ManagerRef{}, fmt.Errorf("unknown manager state %q", state)
	}
}

func (m ManagerRef) String() string {
	switch m.state {
	case managerTopLevel:
		return "top-level"
	case managerReportsTo:
		return "reports to " + m.id
	default:
		return "unassigned"
	}
}
