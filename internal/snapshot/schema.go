// Package snapshot is the JSON document form of a chart, used for export and
// import files.
package snapshot

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/alexanderramin/teammap/internal/domain"
)

const dateLayout = "2006-01-02"

// Document is the top-level JSON structure of an export file.
type Document struct {
	Nodes         []Node          `json:"nodes" validate:"dive"`
	Verticals     []Vertical      `json:"verticals,omitempty" validate:"dive"`
	Settings      *Settings       `json:"settings,omitempty"`
	NodePositions []PositionEntry `json:"nodePositions,omitempty"`
}

// Node is a team member or planned hire. ManagerID is three-state: an absent
// key means unassigned, null means top-level and a string names the manager.
type Node struct {
	ID                string    `json:"id" validate:"required"`
	Name              string    `json:"name"`
	RoleType          string    `json:"roleType"`
	Level             int       `json:"level" validate:"gte=1"`
	Track             string    `json:"track,omitempty" validate:"omitempty,oneof=ic manager"`
	YearsOfExperience float64   `json:"yearsOfExperience" validate:"gte=0"`
	ManagerID         ManagerID `json:"managerId,omitzero"`
	IsPlannedHire     bool      `json:"isPlannedHire"`
	JoiningDate       string    `json:"joiningDate,omitempty"`
	TentativeDate     string    `json:"tentativeDate,omitempty"`
	VerticalID        string    `json:"verticalId,omitempty"`
	Notes             string    `json:"notes,omitempty"`
	Gender            string    `json:"gender,omitempty" validate:"omitempty,oneof=female male non_binary undisclosed"`
	CreatedAt         time.Time `json:"createdAt,omitzero"`
	UpdatedAt         time.Time `json:"updatedAt,omitzero"`
}

type Vertical struct {
	ID       string `json:"id" validate:"required"`
	Name     string `json:"name" validate:"required"`
	Color    string `json:"color,omitempty"`
	Position Point  `json:"position"`
}

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Settings uses pointers and nil slices so that a missing field can fall
// back to its default on import.
type Settings struct {
	Levels                 []Level    `json:"levels,omitzero" validate:"omitempty,dive"`
	RoleTypes              []RoleType `json:"roleTypes,omitzero" validate:"omitempty,dive"`
	SpanOfControlThreshold *int       `json:"spanOfControlThreshold,omitempty" validate:"omitempty,gte=1"`
	TrackSplitLevel        *int       `json:"trackSplitLevel,omitempty" validate:"omitempty,gte=2"`
	CompanyName            *string    `json:"companyName,omitempty"`
}

type Level struct {
	ID                   string  `json:"id,omitempty"`
	Level                int     `json:"level" validate:"gte=1"`
	Name                 string  `json:"name"`
	Color                string  `json:"color,omitempty"`
	MinYearsFromPrevious float64 `json:"minYearsFromPrevious" validate:"gte=0"`
	Track                string  `json:"track,omitempty" validate:"omitempty,oneof=ic manager"`
	IsMaxLevel           bool    `json:"isMaxLevel,omitempty"`
}

type RoleType struct {
	ID           string `json:"id" validate:"required"`
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation,omitempty"`
}

// ManagerID carries a domain.ManagerRef through JSON.
type ManagerID struct {
	Ref domain.ManagerRef
}

func (m ManagerID) IsZero() bool { return m.Ref.IsUnassigned() }

func (m ManagerID) MarshalJSON() ([]byte, error) {
	if id, ok := m.Ref.ManagerID(); ok {
		return json.Marshal(id)
	}
	return []byte("null"), nil
}

func (m *ManagerID) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		m.Ref = domain.TopLevel()
		return nil
	}
	var id string
	if err := json.Unmarshal(data, &id); err != nil {
		return fmt.Errorf("managerId must be a string or null: %w", err)
	}
	m.Ref = domain.ReportsTo(id)
	return nil
}

// PositionEntry is one cached position, encoded as the pair [id, {x, y}].
type PositionEntry struct {
	ID string
	Point
}

func (p PositionEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{p.ID, p.Point})
}

func (p *PositionEntry) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("position entry must be [id, {x, y}]: %w", err)
	}
	if len(raw) != 2 {
		return fmt.Errorf("position entry must be [id, {x, y}], got %d elements", len(raw))
	}
	if err := json.Unmarshal(raw[0], &p.ID); err != nil {
		return fmt.Errorf("position entry id: %w", err)
	}
	if err := json.Unmarshal(raw[1], &p.Point); err != nil {
		return fmt.Errorf("position entry %q: %w", p.ID, err)
	}
	return nil
}

// Decode parses a document from r.
func Decode(r io.Reader) (*Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("parsing snapshot: %w", err)
	}
	return &doc, nil
}

// Encode writes doc to w as indented JSON.
func Encode(w io.Writer, doc *Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// Load reads and parses a snapshot file.
func Load(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f)
}

// Save writes doc to path, replacing any existing file.
func Save(path string, doc *Document) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Encode(f, doc); err != nil {
		f.Close()
		return fmt.Errorf("writing snapshot: %w", err)
	}
	return f.Close()
}
