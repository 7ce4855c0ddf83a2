// Package roster renders the chart as a flat spreadsheet, one row per node.
package roster

import (
	"fmt"
	"io"

	"github.com/alexanderramin/teammap/internal/domain"
	"github.com/alexanderramin/teammap/internal/orgchart"
	"github.com/xuri/excelize/v2"
)

const SheetName = "Roster"

var header = []any{
	"Name", "Status", "Role", "Level", "Level Name", "Track", "Manager",
	"Direct Reports", "Over Capacity", "Promotion Eligible", "Years Until Eligible", "Date",
}

// Row is one roster line. Date is the joining date for members and the
// tentative date for planned hires.
type Row struct {
	Name               string
	Status             string
	Role               string
	Level              int
	LevelName          string
	Track              string
	Manager            string
	DirectReports      int
	OverCapacity       bool
	PromotionEligible  bool
	YearsUntilEligible float64
	Date               string
}

// Rows flattens facts into roster rows, keeping their order.
func Rows(facts []orgchart.NodeFacts) []Row {
	out := make([]Row, 0, len(facts))
	for _, f := range facts {
		n := f.Node
		r := Row{
			Name:               n.Name,
			Status:             "Member",
			Role:               f.RoleName,
			Level:              n.Level,
			LevelName:          f.LevelName,
			Track:              trackLabel(n.Track),
			Manager:            managerLabel(n.Manager, f.ManagerName),
			DirectReports:      f.ReportCount,
			OverCapacity:       f.OverCapacity,
			PromotionEligible:  f.Promotion.Eligible,
			YearsUntilEligible: f.Promotion.YearsUntilEligible,
		}
		if n.IsPlannedHire() {
			r.Status = "Planned hire"
			r.Date = n.TentativeDate
		} else if n.JoiningDate != nil {
			r.Date = n.JoiningDate.Format("2006-01-02")
		}
		out = append(out, r)
	}
	return out
}

func trackLabel(t domain.Track) string {
	switch t {
	case domain.TrackIC:
		return "IC"
	case domain.TrackManager:
		return "Manager"
	default:
		return ""
	}
}

func managerLabel(ref domain.ManagerRef, name string) string {
	switch {
	case ref.IsTopLevel():
		return "(top level)"
	case name != "":
		return name
	default:
		return ""
	}
}

// Build lays the rows out in a workbook with a bold, frozen header row.
// The caller closes the returned file.
func Build(rows []Row) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		f.Close()
		return nil, fmt.Errorf("naming sheet: %w", err)
	}

	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		f.Close()
		return nil, fmt.Errorf("writing header: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("creating header style: %w", err)
	}
	last, _ := excelize.CoordinatesToCellName(len(header), 1)
	if err := f.SetCellStyle(SheetName, "A1", last, bold); err != nil {
		f.Close()
		return nil, fmt.Errorf("styling header: %w", err)
	}

	for i, r := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		values := []any{
			r.Name, r.Status, r.Role, r.Level, r.LevelName, r.Track, r.Manager,
			r.DirectReports, yesNo(r.OverCapacity), yesNo(r.PromotionEligible), r.YearsUntilEligible, r.Date,
		}
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			f.Close()
			return nil, fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}

	if err := f.SetColWidth(SheetName, "A", "A", 28); err != nil {
		f.Close()
		return nil, fmt.Errorf("sizing columns: %w", err)
	}
	if err := f.SetPanes(SheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		f.Close()
		return nil, fmt.Errorf("freezing header: %w", err)
	}
	return f, nil
}

// Write streams the workbook for facts to w.
func Write(w io.Writer, facts []orgchart.NodeFacts) error {
	f, err := Build(Rows(facts))
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

// Save writes the workbook for facts to path.
func Save(path string, facts []orgchart.NodeFacts) error {
	f, err := Build(Rows(facts))
	if err != nil {
		return err
	}
	defer f.Close()
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving roster %s: %w", path, err)
	}
	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
