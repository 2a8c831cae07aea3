package usecase

import (
	"strings"

	"github.com/skillmatch/backend/internal/domain"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// isSkillDelimiter matches the separators accepted in free-text skill lists
func isSkillDelimiter(r rune) bool {
	return r == ',' || r == ':' || r == ';'
}

// NormalizeSkills splits a free-text skill list on ',', ':' and ';' and
// returns the set of trimmed, lowercased, non-empty tokens.
// A missing or blank cell yields an empty set.
func NormalizeSkills(text domain.OptionalString) domain.SkillSet {
	set := make(domain.SkillSet)
	if text.IsBlank() {
		return set
	}

	for _, fragment := range strings.FieldsFunc(text.Value, isSkillDelimiter) {
		if token := normalizeToken(fragment); token != "" {
			set[token] = struct{}{}
		}
	}
	return set
}

// splitMandatory splits a demand's mandatory skills on commas only.
// Order and duplicates are kept since the list length is the denominator.
func splitMandatory(text string) []string {
	parts := strings.Split(text, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if token := normalizeToken(p); token != "" {
			out = append(out, token)
		}
	}
	return out
}

// normalizeToken trims and lowercases a single skill fragment
func normalizeToken(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	// Caser is stateful; a fresh one per call keeps this safe for concurrent use
	return cases.Lower(language.Und).String(s)
}

// lowerText lowercases free text for case-insensitive comparisons
func lowerText(s string) string {
	return cases.Lower(language.Und).String(s)
}
