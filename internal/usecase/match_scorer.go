package usecase

import (
	"math"

	"github.com/skillmatch/backend/internal/domain"
)

// Scorer computes a match percentage and the overlapping skills between a
// resolved employee skill set and a target's skill text.
type Scorer func(resolved domain.SkillSet, text domain.OptionalString) (float64, []string)

// ScorerFor returns the scoring convention of the given mode.
func ScorerFor(mode domain.Mode) Scorer {
	if mode == domain.ModeSubcon {
		return ScoreSubcon
	}
	return ScoreDemand
}

// ScoreDemand measures how much of a demand's mandatory skill list the
// employee covers. The denominator is the length of the mandatory list.
// Matched skills follow the mandatory list order.
func ScoreDemand(resolved domain.SkillSet, mandatory domain.OptionalString) (float64, []string) {
	if !mandatory.Valid || resolved.Len() == 0 {
		return 0, []string{}
	}

	required := splitMandatory(mandatory.Value)
	if len(required) == 0 {
		return 0, []string{}
	}

	matched := make([]string, 0, len(required))
	for _, skill := range required {
		if resolved.Has(skill) {
			matched = append(matched, skill)
		}
	}
	return percentOf(len(matched), len(required)), matched
}

// ScoreSubcon measures how much of a candidate's listed skills overlap with
// the employee. The denominator is the candidate's skill count, so skills
// the employee has beyond the candidate's never lower the score.
// Matched skills follow the ascending order of the resolved set.
func ScoreSubcon(resolved domain.SkillSet, candidate domain.OptionalString) (float64, []string) {
	if !candidate.Valid || resolved.Len() == 0 {
		return 0, []string{}
	}

	candidateSkills := NormalizeSkills(candidate)
	if candidateSkills.Len() == 0 {
		return 0, []string{}
	}

	matched := make([]string, 0, candidateSkills.Len())
	for _, skill := range resolved.Sorted() {
		if candidateSkills.Has(skill) {
			matched = append(matched, skill)
		}
	}
	return percentOf(len(matched), candidateSkills.Len()), matched
}

// percentOf returns 100*n/d rounded to two decimals, half to even
func percentOf(n, d int) float64 {
	if d == 0 {
		return 0
	}
	return roundPercent(float64(n) / float64(d) * 100)
}

func roundPercent(p float64) float64 {
	return math.RoundToEven(p*100) / 100
}
