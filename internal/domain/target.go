package domain

// TargetRecord is a row that bench employees are scored against.
type TargetRecord interface {
	// SkillText is the requirement (demand) or candidate (sub-con) skill list.
	SkillText() OptionalString
}

// DemandRecord is an open staffing request
type DemandRecord struct {
	ID              string         `json:"id"`
	Client          string         `json:"client"`
	ProjectName     string         `json:"projectName"`
	MandatorySkills OptionalString `json:"mandatorySkills"`
}

// SkillText returns the mandatory skills.
func (d DemandRecord) SkillText() OptionalString { return d.MandatorySkills }

// SubconRecord is an external sub-contractor candidate
type SubconRecord struct {
	EmpID          string         `json:"empId"`
	ConsultantName string         `json:"consultantName"`
	ProjectManager string         `json:"projectManager"`
	Client         string         `json:"client"`
	Skill          OptionalString `json:"skill"`
}

// SkillText returns the candidate's skills.
func (s SubconRecord) SkillText() OptionalString { return s.Skill }
