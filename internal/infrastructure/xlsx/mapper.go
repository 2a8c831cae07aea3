package xlsx

import (
	"strings"

	"github.com/skillmatch/backend/internal/domain"
)

// Table names used in error messages
const (
	TableBench  = "Bench"
	TableDemand = "Demand"
	TableSubcon = "Sub-Con"
	TableMaster = "MasterSkill"
)

// Column headers of the input sheets
const (
	ColRegion        = "Region"
	ColCountry       = "Country"
	ColPractice      = "Practice"
	ColSubPractice   = "Sub Practice"
	ColGrade         = "Grade"
	ColSkillGrouping = "Skill Grouping"
	ColLDAPID        = "LDAP ID"
	ColEmployeeName  = "EmployeeName"
	ColEmail         = "Email"
	ColSkill         = "Skill"

	ColID              = "ID"
	ColClient          = "Client"
	ColProjectName     = "Project Name"
	ColMandatorySkills = "Mandatory Skills"

	ColEmpID          = "Emp ID"
	ColConsultantName = "Consultant Name"
	ColProjectManager = "Project Manager"

	ColSkills = "Skills"
	ColAlias  = "Alias"
)

var (
	benchColumns  = []string{ColPractice, ColSubPractice, ColGrade, ColSkillGrouping, ColLDAPID, ColEmployeeName, ColEmail, ColSkill}
	demandColumns = []string{ColID, ColClient, ColProjectName, ColMandatorySkills}
	subconColumns = []string{ColEmpID, ColConsultantName, ColProjectManager, ColClient, ColSkill}
	masterColumns = []string{ColSkills, ColAlias}
)

// header maps column names to their index in a sheet row
type header map[string]int

// parseHeader indexes the header row and checks that every required column is present
func parseHeader(table string, row []string, required []string) (header, error) {
	h := make(header, len(row))
	for i, name := range row {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, dup := h[name]; !dup {
			h[name] = i
		}
	}

	for _, col := range required {
		if _, ok := h[col]; !ok {
			return nil, &domain.ColumnError{Table: table, Column: col}
		}
	}
	return h, nil
}

// cell returns the value of a column, or a missing cell when the row is short
// or the column does not exist.
func (h header) cell(row []string, col string) domain.OptionalString {
	i, ok := h[col]
	if !ok || i >= len(row) {
		return domain.Missing()
	}
	if strings.TrimSpace(row[i]) == "" {
		return domain.Missing()
	}
	return domain.Text(row[i])
}

// text returns the trimmed value of a column, "" when missing
func (h header) text(row []string, col string) string {
	return strings.TrimSpace(h.cell(row, col).String())
}

// isBlankRow reports whether every cell of a row is empty
func isBlankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// mapRows parses the header row and converts each data row with convert.
// Blank rows are skipped.
func mapRows[T any](table string, rows [][]string, required []string, convert func(header, []string) T) ([]T, error) {
	if len(rows) == 0 {
		// An empty sheet has no header row to satisfy the required columns
		if len(required) > 0 {
			return nil, &domain.ColumnError{Table: table, Column: required[0]}
		}
		return []T{}, nil
	}

	h, err := parseHeader(table, rows[0], required)
	if err != nil {
		return nil, err
	}

	out := make([]T, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if isBlankRow(row) {
			continue
		}
		out = append(out, convert(h, row))
	}
	return out, nil
}

// MapBench converts Bench Base sheet rows to bench records
func MapBench(rows [][]string) ([]domain.BenchRecord, error) {
	return mapRows(TableBench, rows, benchColumns, func(h header, row []string) domain.BenchRecord {
		return domain.BenchRecord{
			Region:        h.text(row, ColRegion),
			Country:       h.text(row, ColCountry),
			Practice:      h.text(row, ColPractice),
			SubPractice:   h.text(row, ColSubPractice),
			Grade:         h.text(row, ColGrade),
			SkillGrouping: h.text(row, ColSkillGrouping),
			LDAPID:        h.text(row, ColLDAPID),
			EmployeeName:  h.text(row, ColEmployeeName),
			Email:         h.text(row, ColEmail),
			Skill:         h.cell(row, ColSkill),
		}
	})
}

// MapDemand converts Demand Base sheet rows to demand records
func MapDemand(rows [][]string) ([]domain.DemandRecord, error) {
	return mapRows(TableDemand, rows, demandColumns, func(h header, row []string) domain.DemandRecord {
		return domain.DemandRecord{
			ID:              h.text(row, ColID),
			Client:          h.text(row, ColClient),
			ProjectName:     h.text(row, ColProjectName),
			MandatorySkills: h.cell(row, ColMandatorySkills),
		}
	})
}

// MapSubcon converts sub-con candidate sheet rows to sub-con records
func MapSubcon(rows [][]string) ([]domain.SubconRecord, error) {
	return mapRows(TableSubcon, rows, subconColumns, func(h header, row []string) domain.SubconRecord {
		return domain.SubconRecord{
			EmpID:          h.text(row, ColEmpID),
			ConsultantName: h.text(row, ColConsultantName),
			ProjectManager: h.text(row, ColProjectManager),
			Client:         h.text(row, ColClient),
			Skill:          h.cell(row, ColSkill),
		}
	})
}

// MapMaster converts MasterList sheet rows to raw master skill rows
func MapMaster(rows [][]string) ([]domain.MasterSkillRow, error) {
	return mapRows(TableMaster, rows, masterColumns, func(h header, row []string) domain.MasterSkillRow {
		return domain.MasterSkillRow{
			Skills: h.cell(row, ColSkills),
			Alias:  h.cell(row, ColAlias),
		}
	})
}
