package domain

import (
	"fmt"
	"strings"
)

// Mode selects the target pool and its scoring convention.
type Mode string

const (
	// ModeDemand scores coverage of a demand's mandatory skills
	ModeDemand Mode = "demand"
	// ModeSubcon scores overlap with a sub-contractor's listed skills
	ModeSubcon Mode = "subcon"
)

// ParseMode converts user input into a Mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeDemand:
		return ModeDemand, nil
	case ModeSubcon:
		return ModeSubcon, nil
	}
	return "", fmt.Errorf("%w: unknown match mode %q", ErrInvalidRequest, s)
}

// PercentRange is an inclusive match-percentage window.
type PercentRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// FullRange accepts every match percentage.
var FullRange = PercentRange{Min: 0, Max: 100}

// Validate checks 0 <= Min <= Max <= 100.
func (r PercentRange) Validate() error {
	if r.Min < 0 || r.Max > 100 || r.Min > r.Max {
		return fmt.Errorf("%w: percent range must satisfy 0 <= min <= max <= 100, got [%d, %d]",
			ErrInvalidRequest, r.Min, r.Max)
	}
	return nil
}

// Contains reports whether p lies within the range, both ends included.
func (r PercentRange) Contains(p float64) bool {
	return p >= float64(r.Min) && p <= float64(r.Max)
}

// BenchIdentity is the bench employee data copied onto every match row
type BenchIdentity struct {
	LDAPID       string         `json:"ldapId"`
	EmployeeName string         `json:"employeeName"`
	Email        string         `json:"email"`
	Skill        OptionalString `json:"benchSkill"`
}

// MatchResult is one (bench employee, target row) pair with a non-zero match
type MatchResult struct {
	Bench          BenchIdentity `json:"bench"`
	Target         TargetRecord  `json:"target"`
	MatchPercent   float64       `json:"matchPercent"`
	MatchingSkills []string      `json:"matchingSkills"`
}

// Warning is a non-fatal per-employee problem found during matching
type Warning struct {
	LDAPID       string `json:"ldapId"`
	EmployeeName string `json:"employeeName"`
	Message      string `json:"message"`
}

// Report is the combined, ranked result of one matching run
type Report struct {
	Mode     Mode          `json:"mode"`
	Range    PercentRange  `json:"range"`
	Results  []MatchResult `json:"results"`
	Warnings []Warning     `json:"warnings,omitempty"`
}

// Empty reports whether no match survived the range filter.
func (r *Report) Empty() bool {
	return len(r.Results) == 0
}

// MatchRequest is everything one matching run depends on
type MatchRequest struct {
	DatasetID string
	Mode      Mode
	Filter    BenchFilter
	Range     PercentRange
}
