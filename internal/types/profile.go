// Package types provides type definitions for structured data used throughout the cv-tailor system.
package types

// PersonalInfo holds the candidate's contact block.
type PersonalInfo struct {
	Name     string `json:"name"`
	Title    string `json:"title"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	LinkedIn string `json:"linkedin"`
	GitHub   string `json:"github"`
	Location string `json:"location"`
	Keywords string `json:"keywords,omitempty"`
}

// Experience represents one work history entry.
type Experience struct {
	Company          string   `json:"company"`
	Location         string   `json:"location"`
	Title            string   `json:"title"`
	Period           string   `json:"period"`
	Responsibilities []string `json:"responsibilities"`
	Technologies     []string `json:"technologies"`
}

// HardSkill is a categorized technical skill with a proficiency level.
type HardSkill struct {
	Name  string `json:"name"`
	Level string `json:"level"`
}

// SoftSkill is an interpersonal trait with a proficiency level.
type SoftSkill struct {
	Name  string `json:"name"`
	Level string `json:"level"`
}

// Skills groups hard skills (by category) and soft skills.
// Category names are unique keys of the HardSkills map.
type Skills struct {
	HardSkills map[string][]HardSkill `json:"hardSkills"`
	SoftSkills []SoftSkill            `json:"softSkills"`
}

// Project represents one portfolio project entry.
type Project struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
	Link         string   `json:"link"`
}

// Education is the candidate's single education record.
type Education struct {
	Degree     string `json:"degree"`
	University string `json:"university"`
	Period     string `json:"period"`
}

// CandidateProfile is the root candidate document. One instance exists per
// session; both editing surfaces replace it wholesale.
type CandidateProfile struct {
	PersonalInfo PersonalInfo `json:"personalInfo"`
	Summary      string       `json:"summary"`
	Experience   []Experience `json:"experience"`
	Skills       Skills       `json:"skills"`
	Projects     []Project    `json:"projects"`
	Education    Education    `json:"education"`
	Philosophy   string       `json:"philosophy"`
}

// Normalize fills absent collections with empty sequences so that every list
// field is present rather than nil. Profiles may arrive from hand-edited JSON
// imports or stale storage where skills sub-structures are missing entirely.
func (p *CandidateProfile) Normalize() {
	if p.Experience == nil {
		p.Experience = []Experience{}
	}
	if p.Projects == nil {
		p.Projects = []Project{}
	}
	if p.Skills.HardSkills == nil {
		p.Skills.HardSkills = map[string][]HardSkill{}
	}
	for category, skills := range p.Skills.HardSkills {
		if skills == nil {
			p.Skills.HardSkills[category] = []HardSkill{}
		}
	}
	if p.Skills.SoftSkills == nil {
		p.Skills.SoftSkills = []SoftSkill{}
	}
	for i := range p.Experience {
		if p.Experience[i].Responsibilities == nil {
			p.Experience[i].Responsibilities = []string{}
		}
		if p.Experience[i].Technologies == nil {
			p.Experience[i].Technologies = []string{}
		}
	}
	for i := range p.Projects {
		if p.Projects[i].Technologies == nil {
			p.Projects[i].Technologies = []string{}
		}
	}
}

// Clone returns a deep copy of the profile. History snapshots must not alias
// the live document.
func (p CandidateProfile) Clone() CandidateProfile {
	out := p
	out.Experience = make([]Experience, len(p.Experience))
	for i, exp := range p.Experience {
		exp.Responsibilities = append([]string(nil), exp.Responsibilities...)
		exp.Technologies = append([]string(nil), exp.Technologies...)
		out.Experience[i] = exp
	}
	out.Projects = make([]Project, len(p.Projects))
	for i, proj := range p.Projects {
		proj.Technologies = append([]string(nil), proj.Technologies...)
		out.Projects[i] = proj
	}
	out.Skills.HardSkills = make(map[string][]HardSkill, len(p.Skills.HardSkills))
	for category, skills := range p.Skills.HardSkills {
		out.Skills.HardSkills[category] = append([]HardSkill(nil), skills...)
	}
	out.Skills.SoftSkills = append([]SoftSkill(nil), p.Skills.SoftSkills...)
	return out
}
