package domain

// BenchRecord is an employee currently available for assignment
type BenchRecord struct {
	Region        string         `json:"region,omitempty"`
	Country       string         `json:"country,omitempty"`
	Practice      string         `json:"practice"`
	SubPractice   string         `json:"subPractice"`
	Grade         string         `json:"grade"`
	SkillGrouping string         `json:"skillGrouping"`
	LDAPID        string         `json:"ldapId"`
	EmployeeName  string         `json:"employeeName"`
	Email         string         `json:"email"`
	Skill         OptionalString `json:"skill"`
}

// BenchFilter selects a subset of the bench pool.
// An empty accepted-value list disables that filter.
type BenchFilter struct {
	Practices      []string `json:"practice,omitempty" form:"practice"`
	SubPractices   []string `json:"subPractice,omitempty" form:"sub_practice"`
	Grades         []string `json:"grade,omitempty" form:"grade"`
	SkillGroupings []string `json:"skillGrouping,omitempty" form:"skill_grouping"`
	NamePrefix     string   `json:"name,omitempty" form:"name"`
	SkillContains  string   `json:"skill,omitempty" form:"skill"`
}

// FilterOptions lists the selectable values of each bench dropdown.
type FilterOptions struct {
	Practices      []string `json:"practice"`
	SubPractices   []string `json:"subPractice"`
	Grades         []string `json:"grade"`
	SkillGroupings []string `json:"skillGrouping"`
}

// BenchView is the filtered bench pool plus the data shown alongside it
type BenchView struct {
	Employees []BenchRecord `json:"employees"`
	Options   FilterOptions `json:"options"`
	Skills    []string      `json:"skills"`
}
