package usecase

import (
	"fmt"
	"sort"

	"github.com/skillmatch/backend/internal/domain"
)

// RunMatching scores every bench employee against every target row and
// returns the combined report, ranked by match percentage and restricted to
// rng. Employees without skills are reported as warnings and skipped.
//
// RunMatching is pure: the same inputs always produce the same report in the
// same order, ties keeping bench order then target-row order.
func RunMatching(
	bench []domain.BenchRecord,
	targets []domain.TargetRecord,
	master []domain.MasterSkillEntry,
	mode domain.Mode,
	rng domain.PercentRange,
) domain.Report {
	score := ScorerFor(mode)

	var combined []domain.MatchResult
	var warnings []domain.Warning
	for _, employee := range bench {
		results, warning := matchEmployee(employee, targets, master, score)
		if warning != nil {
			warnings = append(warnings, *warning)
			continue
		}
		combined = append(combined, results...)
	}

	sortByPercent(combined)

	filtered := make([]domain.MatchResult, 0, len(combined))
	for _, r := range combined {
		if rng.Contains(r.MatchPercent) {
			filtered = append(filtered, r)
		}
	}

	return domain.Report{
		Mode:     mode,
		Range:    rng,
		Results:  filtered,
		Warnings: warnings,
	}
}

// matchEmployee returns one employee's non-zero matches, best first.
func matchEmployee(
	employee domain.BenchRecord,
	targets []domain.TargetRecord,
	master []domain.MasterSkillEntry,
	score Scorer,
) ([]domain.MatchResult, *domain.Warning) {
	raw := NormalizeSkills(employee.Skill)
	if raw.Len() == 0 {
		return nil, &domain.Warning{
			LDAPID:       employee.LDAPID,
			EmployeeName: employee.EmployeeName,
			Message:      fmt.Sprintf("No skills provided for %s.", employee.EmployeeName),
		}
	}

	resolved := ResolveSkills(raw, master)
	identity := domain.BenchIdentity{
		LDAPID:       employee.LDAPID,
		EmployeeName: employee.EmployeeName,
		Email:        employee.Email,
		Skill:        employee.Skill,
	}

	var results []domain.MatchResult
	for _, target := range targets {
		percent, matched := score(resolved, target.SkillText())
		if percent == 0 {
			continue
		}
		results = append(results, domain.MatchResult{
			Bench:          identity,
			Target:         target,
			MatchPercent:   percent,
			MatchingSkills: matched,
		})
	}

	sortByPercent(results)
	return results, nil
}

// sortByPercent orders results by descending match percentage, stable on ties
func sortByPercent(results []domain.MatchResult) {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].MatchPercent > results[j].MatchPercent
	})
}
