package domain

import "sort"

// SkillSet is a set of normalized skill tokens.
type SkillSet map[string]struct{}

// NewSkillSet builds a set from the given tokens.
func NewSkillSet(tokens ...string) SkillSet {
	set := make(SkillSet, len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}
	return set
}

// Has reports whether token is in the set.
func (s SkillSet) Has(token string) bool {
	_, ok := s[token]
	return ok
}

// Len returns the number of tokens.
func (s SkillSet) Len() int {
	return len(s)
}

// Clone returns an independent copy of the set.
func (s SkillSet) Clone() SkillSet {
	out := make(SkillSet, len(s))
	for t := range s {
		out[t] = struct{}{}
	}
	return out
}

// Sorted returns the tokens in ascending order. Callers iterate skill sets
// through Sorted so results never depend on map order.
func (s SkillSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for t := range s {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// MasterSkillRow is one raw row of the master skill sheet.
type MasterSkillRow struct {
	Skills OptionalString `json:"skills"`
	Alias  OptionalString `json:"alias"`
}

// MasterSkillEntry is a primary skill with its synonymous aliases.
// Aliases never contain the empty token.
type MasterSkillEntry struct {
	Primary string   `json:"primary"`
	Aliases SkillSet `json:"-"`
}

// Names returns the primary skill together with all its aliases.
func (e MasterSkillEntry) Names() SkillSet {
	names := e.Aliases.Clone()
	names[e.Primary] = struct{}{}
	return names
}
