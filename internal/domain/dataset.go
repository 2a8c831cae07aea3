package domain

import (
	"io"
	"time"
)

// Tables holds the four input tables of a matching run
type Tables struct {
	Bench  []BenchRecord    `json:"bench"`
	Demand []DemandRecord   `json:"demand"`
	Subcon []SubconRecord   `json:"subcon"`
	Master []MasterSkillRow `json:"master"`
}

// Targets returns the target table for mode.
func (t *Tables) Targets(mode Mode) []TargetRecord {
	switch mode {
	case ModeDemand:
		out := make([]TargetRecord, len(t.Demand))
		for i, d := range t.Demand {
			out[i] = d
		}
		return out
	case ModeSubcon:
		out := make([]TargetRecord, len(t.Subcon))
		for i, s := range t.Subcon {
			out[i] = s
		}
		return out
	}
	return nil
}

// Dataset is a set of uploaded tables kept between requests
type Dataset struct {
	ID        string    `json:"datasetId"`
	CreatedAt time.Time `json:"createdAt"`
	Tables    Tables    `json:"-"`
}

// Counts summarises the number of rows in each table
type Counts struct {
	Bench  int `json:"bench"`
	Demand int `json:"demand"`
	Subcon int `json:"subcon"`
	Master int `json:"master"`
}

// Counts returns the row count of each table.
func (d *Dataset) Counts() Counts {
	return Counts{
		Bench:  len(d.Tables.Bench),
		Demand: len(d.Tables.Demand),
		Subcon: len(d.Tables.Subcon),
		Master: len(d.Tables.Master),
	}
}

// WorkbookSources are the three uploaded workbooks
type WorkbookSources struct {
	BenchDemand io.Reader
	Subcon      io.Reader
	Master      io.Reader
}
