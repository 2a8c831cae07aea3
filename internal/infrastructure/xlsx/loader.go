package xlsx

import (
	"context"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strings"

	"github.com/skillmatch/backend/internal/domain"
	"github.com/xuri/excelize/v2"
)

// SheetNames names the sheet read from each uploaded workbook
type SheetNames struct {
	Bench  string
	Demand string
	Subcon string
	Master string
}

// DefaultSheetNames returns the sheet names of the standard RMG workbooks
func DefaultSheetNames() SheetNames {
	return SheetNames{
		Bench:  "Bench Base",
		Demand: "Demand Base",
		Subcon: "Engineering",
		Master: "MasterList",
	}
}

// Loader reads the bench & demand, sub-con and master skill workbooks
type Loader struct {
	sheets SheetNames
	debug  bool
}

// NewLoader creates a new workbook loader
func NewLoader(sheets SheetNames) *Loader {
	defaults := DefaultSheetNames()
	if sheets.Bench == "" {
		sheets.Bench = defaults.Bench
	}
	if sheets.Demand == "" {
		sheets.Demand = defaults.Demand
	}
	if sheets.Subcon == "" {
		sheets.Subcon = defaults.Subcon
	}
	if sheets.Master == "" {
		sheets.Master = defaults.Master
	}
	return &Loader{sheets: sheets}
}

// SetDebug enables or disables debug logging
func (l *Loader) SetDebug(debug bool) {
	l.debug = debug
}

// Load parses all three workbooks. Any missing sheet or required column
// aborts the load with a single descriptive error.
func (l *Loader) Load(ctx context.Context, sources domain.WorkbookSources) (*domain.Tables, error) {
	var tables domain.Tables

	benchDemand, err := openWorkbook(sources.BenchDemand, "Bench & Demand")
	if err != nil {
		return nil, err
	}
	defer benchDemand.Close()

	rows, err := l.readSheet(benchDemand, TableBench, l.sheets.Bench)
	if err != nil {
		return nil, err
	}
	if tables.Bench, err = MapBench(rows); err != nil {
		return nil, err
	}

	rows, err = l.readSheet(benchDemand, TableDemand, l.sheets.Demand)
	if err != nil {
		return nil, err
	}
	if tables.Demand, err = MapDemand(rows); err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	subcon, err := openWorkbook(sources.Subcon, "Sub-Con Candidate Report")
	if err != nil {
		return nil, err
	}
	defer subcon.Close()

	rows, err = l.readSheet(subcon, TableSubcon, l.sheets.Subcon)
	if err != nil {
		return nil, err
	}
	if tables.Subcon, err = MapSubcon(rows); err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	master, err := openWorkbook(sources.Master, "Master Skills")
	if err != nil {
		return nil, err
	}
	defer master.Close()

	rows, err = l.readSheet(master, TableMaster, l.sheets.Master)
	if err != nil {
		return nil, err
	}
	if tables.Master, err = MapMaster(rows); err != nil {
		return nil, err
	}

	return &tables, nil
}

// openWorkbook opens an uploaded workbook from r
func openWorkbook(r io.Reader, description string) (*excelize.File, error) {
	if r == nil {
		return nil, fmt.Errorf("%w: %s workbook is missing", domain.ErrInvalidRequest, description)
	}
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrInvalidWorkbook, description, err)
	}
	return f, nil
}

// readSheet returns every row of a sheet; the first row is the header
func (l *Loader) readSheet(f *excelize.File, table, sheet string) ([][]string, error) {
	if !hasSheet(f, sheet) {
		return nil, &domain.SheetError{Table: table, Sheet: sheet}
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("%w: sheet %q: %v", domain.ErrInvalidWorkbook, sheet, err)
	}

	if l.debug {
		log.Printf("[XLSX] %s: read %d rows from sheet %q", table, len(rows), sheet)
	}
	return rows, nil
}

func hasSheet(f *excelize.File, sheet string) bool {
	for _, name := range f.GetSheetList() {
		if name == sheet {
			return true
		}
	}
	return false
}

// ValidateFileName accepts only .xlsx uploads
func ValidateFileName(name string) error {
	if !strings.EqualFold(filepath.Ext(name), ".xlsx") {
		return fmt.Errorf("%w: %q", domain.ErrUnsupportedFile, name)
	}
	return nil
}
