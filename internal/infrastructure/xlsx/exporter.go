package xlsx

import (
	"fmt"
	"io"
	"strings"

	"github.com/skillmatch/backend/internal/domain"
	"github.com/xuri/excelize/v2"
)

const exportSheet = "Sheet1"

// Export column headers
const (
	ColMatchingSkills = "Matching Skills"
	ColMatchPercent   = "Match %"
	ColBenchSkill     = "Bench Skill"
)

var (
	demandExportColumns = []string{
		ColLDAPID, ColEmployeeName, ColEmail, ColSkill,
		ColID, ColClient, ColProjectName, ColMandatorySkills,
		ColMatchingSkills, ColMatchPercent,
	}
	subconExportColumns = []string{
		ColLDAPID, ColEmployeeName, ColEmail, ColBenchSkill,
		ColEmpID, ColConsultantName, ColProjectManager, ColClient, ColSkill,
		ColMatchingSkills, ColMatchPercent,
	}
)

// ExportColumns returns the report columns of a mode
func ExportColumns(mode domain.Mode) []string {
	if mode == domain.ModeSubcon {
		return subconExportColumns
	}
	return demandExportColumns
}

// FileName returns the download file name of a mode's report
func FileName(mode domain.Mode) string {
	if mode == domain.ModeSubcon {
		return "combined_bench_subcon_match.xlsx"
	}
	return "combined_bench_demand_match.xlsx"
}

// Exporter writes reports as single-sheet workbooks
type Exporter struct{}

// NewExporter creates a new report exporter
func NewExporter() *Exporter {
	return &Exporter{}
}

// Export writes the report to w: one header row, one row per match, no index column.
func (e *Exporter) Export(report *domain.Report, w io.Writer) error {
	if report == nil {
		return domain.ErrInvalidRequest
	}

	f := excelize.NewFile()
	defer f.Close()

	header := toCells(ExportColumns(report.Mode))
	if err := f.SetSheetRow(exportSheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, result := range report.Results {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := ReportRow(report.Mode, result)
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// ReportRow lays out one match in the column order of ExportColumns
func ReportRow(mode domain.Mode, result domain.MatchResult) []interface{} {
	row := []interface{}{
		result.Bench.LDAPID,
		result.Bench.EmployeeName,
		result.Bench.Email,
		result.Bench.Skill.String(),
	}

	switch target := result.Target.(type) {
	case domain.DemandRecord:
		row = append(row, target.ID, target.Client, target.ProjectName, target.MandatorySkills.String())
	case domain.SubconRecord:
		row = append(row, target.EmpID, target.ConsultantName, target.ProjectManager, target.Client, target.Skill.String())
	default:
		// keep the column count stable for unknown targets
		for i := len(row); i < len(ExportColumns(mode))-2; i++ {
			row = append(row, "")
		}
	}

	return append(row, strings.Join(result.MatchingSkills, ", "), result.MatchPercent)
}

func toCells(values []string) []interface{} {
	out := make([]interface{}, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
