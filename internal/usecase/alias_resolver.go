package usecase

import "github.com/skillmatch/backend/internal/domain"

// BuildMasterTable converts raw master sheet rows into alias entries.
// Rows without a primary skill cannot anchor an alias group and are dropped.
func BuildMasterTable(rows []domain.MasterSkillRow) []domain.MasterSkillEntry {
	entries := make([]domain.MasterSkillEntry, 0, len(rows))
	for _, row := range rows {
		if row.Skills.IsBlank() {
			continue
		}
		entries = append(entries, domain.MasterSkillEntry{
			Primary: normalizeToken(row.Skills.Value),
			Aliases: NormalizeSkills(row.Alias),
		})
	}
	return entries
}

// ResolveSkills expands raw tokens through the master alias table. Whenever a
// raw token equals an entry's primary skill or one of its aliases, the whole
// group is added to the result.
//
// The expansion is a single pass over the table and is not transitive: groups
// that only share a name with another pulled-in group are not followed.
func ResolveSkills(raw domain.SkillSet, master []domain.MasterSkillEntry) domain.SkillSet {
	if raw.Len() == 0 {
		return make(domain.SkillSet)
	}

	result := raw.Clone()
	for _, entry := range master {
		if entry.Primary == "" {
			continue
		}
		names := entry.Names()
		if !intersects(raw, names) {
			continue
		}
		for name := range names {
			result[name] = struct{}{}
		}
	}
	return result
}

// intersects reports whether a and b share at least one token
func intersects(a, b domain.SkillSet) bool {
	if a.Len() > b.Len() {
		a, b = b, a
	}
	for t := range a {
		if b.Has(t) {
			return true
		}
	}
	return false
}
