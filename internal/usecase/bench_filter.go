package usecase

import (
	"sort"
	"strings"

	"github.com/skillmatch/backend/internal/domain"
)

// FilterBench applies the bench filters and collects the dropdown options
// and extracted skills for the resulting pool.
//
// Equality filters cascade Practice -> Sub Practice -> Grade -> Skill
// Grouping; each option list is drawn from the pool narrowed by the
// preceding selections only.
func FilterBench(bench []domain.BenchRecord, filter domain.BenchFilter) domain.BenchView {
	var options domain.FilterOptions

	pool := bench
	options.Practices = distinctValues(pool, func(b domain.BenchRecord) string { return b.Practice })
	pool = keepAccepted(pool, filter.Practices, func(b domain.BenchRecord) string { return b.Practice })

	options.SubPractices = distinctValues(pool, func(b domain.BenchRecord) string { return b.SubPractice })
	pool = keepAccepted(pool, filter.SubPractices, func(b domain.BenchRecord) string { return b.SubPractice })

	options.Grades = distinctValues(pool, func(b domain.BenchRecord) string { return b.Grade })
	pool = keepAccepted(pool, filter.Grades, func(b domain.BenchRecord) string { return b.Grade })

	options.SkillGroupings = distinctValues(pool, func(b domain.BenchRecord) string { return b.SkillGrouping })
	pool = keepAccepted(pool, filter.SkillGroupings, func(b domain.BenchRecord) string { return b.SkillGrouping })

	if filter.NamePrefix != "" {
		prefix := lowerText(filter.NamePrefix)
		pool = keepWhere(pool, func(b domain.BenchRecord) bool {
			return strings.HasPrefix(lowerText(b.EmployeeName), prefix)
		})
	}

	if filter.SkillContains != "" {
		needle := lowerText(filter.SkillContains)
		pool = keepWhere(pool, func(b domain.BenchRecord) bool {
			return b.Skill.Valid && strings.Contains(lowerText(b.Skill.Value), needle)
		})
	}

	return domain.BenchView{
		Employees: pool,
		Options:   options,
		Skills:    ExtractSkills(pool),
	}
}

// ExtractSkills returns the sorted distinct skill tokens of a bench pool,
// without alias expansion.
func ExtractSkills(bench []domain.BenchRecord) []string {
	all := make(domain.SkillSet)
	for _, b := range bench {
		for t := range NormalizeSkills(b.Skill) {
			all[t] = struct{}{}
		}
	}
	return all.Sorted()
}

func keepAccepted(pool []domain.BenchRecord, accepted []string, field func(domain.BenchRecord) string) []domain.BenchRecord {
	if len(accepted) == 0 {
		return pool
	}
	allowed := make(map[string]bool, len(accepted))
	for _, v := range accepted {
		allowed[v] = true
	}
	return keepWhere(pool, func(b domain.BenchRecord) bool {
		return allowed[field(b)]
	})
}

func keepWhere(pool []domain.BenchRecord, keep func(domain.BenchRecord) bool) []domain.BenchRecord {
	out := make([]domain.BenchRecord, 0, len(pool))
	for _, b := range pool {
		if keep(b) {
			out = append(out, b)
		}
	}
	return out
}

// distinctValues returns the sorted distinct non-blank values of a column
func distinctValues(pool []domain.BenchRecord, field func(domain.BenchRecord) string) []string {
	seen := make(map[string]bool)
	values := []string{}
	for _, b := range pool {
		v := field(b)
		if strings.TrimSpace(v) == "" || seen[v] {
			continue
		}
		seen[v] = true
		values = append(values, v)
	}
	sort.Strings(values)
	return values
}
