// Package profile provides the pure mutation operations over a CandidateProfile.
// Every operation takes the current document by value and returns a new one;
// callers never observe in-place mutation. Operations are defensive against
// documents with absent or mis-shaped collections (hand-edited imports, stale
// storage): inputs are normalized before the change is applied.
package profile

import (
	"fmt"
	"strings"

	"github.com/andrei/cv-tailor/internal/types"
)

// ErrUnknownField indicates a field update named a field the section does not have.
type ErrUnknownField struct {
	Section string
	Field   string
}

func (e *ErrUnknownField) Error() string {
	return fmt.Sprintf("unknown field %q in %s", e.Field, e.Section)
}

// ErrIndexOutOfRange indicates an indexed operation addressed a missing item.
type ErrIndexOutOfRange struct {
	Section string
	Index   int
	Length  int
}

func (e *ErrIndexOutOfRange) Error() string {
	return fmt.Sprintf("index %d out of range for %s (len %d)", e.Index, e.Section, e.Length)
}

// clone normalizes and deep-copies the input so the returned document never
// aliases the caller's.
func clone(p types.CandidateProfile) types.CandidateProfile {
	out := p.Clone()
	out.Normalize()
	return out
}

// SetSummary replaces the professional summary.
func SetSummary(p types.CandidateProfile, value string) types.CandidateProfile {
	out := clone(p)
	out.Summary = value
	return out
}

// SetPhilosophy replaces the work philosophy text.
func SetPhilosophy(p types.CandidateProfile, value string) types.CandidateProfile {
	out := clone(p)
	out.Philosophy = value
	return out
}

// UpdatePersonalInfo replaces one named field of the personal info block.
func UpdatePersonalInfo(p types.CandidateProfile, field, value string) (types.CandidateProfile, error) {
	out := clone(p)
	switch field {
	case "name":
		out.PersonalInfo.Name = value
	case "title":
		out.PersonalInfo.Title = value
	case "email":
		out.PersonalInfo.Email = value
	case "phone":
		out.PersonalInfo.Phone = value
	case "linkedin":
		out.PersonalInfo.LinkedIn = value
	case "github":
		out.PersonalInfo.GitHub = value
	case "location":
		out.PersonalInfo.Location = value
	case "keywords":
		out.PersonalInfo.Keywords = value
	default:
		return p, &ErrUnknownField{Section: "personalInfo", Field: field}
	}
	return out, nil
}

// UpdateEducation replaces one named field of the education record.
func UpdateEducation(p types.CandidateProfile, field, value string) (types.CandidateProfile, error) {
	out := clone(p)
	switch field {
	case "degree":
		out.Education.Degree = value
	case "university":
		out.Education.University = value
	case "period":
		out.Education.Period = value
	default:
		return p, &ErrUnknownField{Section: "education", Field: field}
	}
	return out, nil
}

// splitComma turns a comma-separated technologies string into a trimmed sequence.
func splitComma(value string) []string {
	parts := strings.Split(value, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// UpdateExperienceField replaces one field of the experience entry at index.
// The responsibilities field is edited as newline-separated text (no trimming),
// technologies as comma-separated text (trimmed).
func UpdateExperienceField(p types.CandidateProfile, index int, field, value string) (types.CandidateProfile, error) {
	out := clone(p)
	if index < 0 || index >= len(out.Experience) {
		return p, &ErrIndexOutOfRange{Section: "experience", Index: index, Length: len(out.Experience)}
	}
	exp := &out.Experience[index]
	switch field {
	case "company":
		exp.Company = value
	case "location":
		exp.Location = value
	case "title":
		exp.Title = value
	case "period":
		exp.Period = value
	case "responsibilities":
		exp.Responsibilities = strings.Split(value, "\n")
	case "technologies":
		exp.Technologies = splitComma(value)
	default:
		return p, &ErrUnknownField{Section: "experience", Field: field}
	}
	return out, nil
}

// UpdateProjectField replaces one field of the project entry at index.
func UpdateProjectField(p types.CandidateProfile, index int, field, value string) (types.CandidateProfile, error) {
	out := clone(p)
	if index < 0 || index >= len(out.Projects) {
		return p, &ErrIndexOutOfRange{Section: "projects", Index: index, Length: len(out.Projects)}
	}
	proj := &out.Projects[index]
	switch field {
	case "name":
		proj.Name = value
	case "description":
		proj.Description = value
	case "link":
		proj.Link = value
	case "technologies":
		proj.Technologies = splitComma(value)
	default:
		return p, &ErrUnknownField{Section: "projects", Field: field}
	}
	return out, nil
}

// AppendExperience appends an empty experience entry.
func AppendExperience(p types.CandidateProfile) types.CandidateProfile {
	out := clone(p)
	out.Experience = append(out.Experience, types.Experience{
		Responsibilities: []string{},
		Technologies:     []string{},
	})
	return out
}

// RemoveExperience removes the experience entry at index.
func RemoveExperience(p types.CandidateProfile, index int) (types.CandidateProfile, error) {
	out := clone(p)
	if index < 0 || index >= len(out.Experience) {
		return p, &ErrIndexOutOfRange{Section: "experience", Index: index, Length: len(out.Experience)}
	}
	out.Experience = append(out.Experience[:index], out.Experience[index+1:]...)
	return out, nil
}

// AppendProject appends an empty project entry.
func AppendProject(p types.CandidateProfile) types.CandidateProfile {
	out := clone(p)
	out.Projects = append(out.Projects, types.Project{Technologies: []string{}})
	return out
}

// RemoveProject removes the project entry at index.
func RemoveProject(p types.CandidateProfile, index int) (types.CandidateProfile, error) {
	out := clone(p)
	if index < 0 || index >= len(out.Projects) {
		return p, &ErrIndexOutOfRange{Section: "projects", Index: index, Length: len(out.Projects)}
	}
	out.Projects = append(out.Projects[:index], out.Projects[index+1:]...)
	return out, nil
}
