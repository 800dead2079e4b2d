package profile

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/andrei/cv-tailor/internal/types"
)

// SortKey selects the ordering for SortSkills.
type SortKey string

// Supported skill sort keys.
const (
	SortByName  SortKey = "name"
	SortByLevel SortKey = "level"
)

// levelOrder ranks known proficiency levels; anything unrecognized sorts last.
var levelOrder = map[string]int{
	"Эксперт":     1,
	"Продвинутый": 2,
	"Средний":     3,
}

const unknownLevelRank = 99

// collator orders skill and category names the way a Russian-locale string
// comparison would. Collators are not safe for concurrent use, so each sort
// builds its own.
func collator() *collate.Collator {
	return collate.New(language.Russian)
}

// AddCategory adds an empty hard-skill category. A blank (after trimming) or
// already-present name is a no-op.
func AddCategory(p types.CandidateProfile, name string) types.CandidateProfile {
	name = strings.TrimSpace(name)
	if name == "" {
		return p
	}
	out := clone(p)
	if _, exists := out.Skills.HardSkills[name]; exists {
		return p
	}
	out.Skills.HardSkills[name] = []types.HardSkill{}
	return out
}

// RemoveCategory deletes a hard-skill category. Absent names are tolerated.
func RemoveCategory(p types.CandidateProfile, name string) types.CandidateProfile {
	out := clone(p)
	delete(out.Skills.HardSkills, name)
	return out
}

// RenameCategory renames a hard-skill category. The rename is silently
// rejected when the new name is empty, unchanged, or already taken by a
// different category; no error channel exists for this by design of the
// editing surface.
func RenameCategory(p types.CandidateProfile, oldName, newName string) types.CandidateProfile {
	if newName == "" || newName == oldName {
		return p
	}
	out := clone(p)
	if _, taken := out.Skills.HardSkills[newName]; taken {
		return p
	}
	skills, exists := out.Skills.HardSkills[oldName]
	if !exists {
		return p
	}
	delete(out.Skills.HardSkills, oldName)
	out.Skills.HardSkills[newName] = skills
	return out
}

// AddSkill appends an empty skill to a category, creating the category when it
// does not exist yet.
func AddSkill(p types.CandidateProfile, category string) types.CandidateProfile {
	out := clone(p)
	out.Skills.HardSkills[category] = append(out.Skills.HardSkills[category], types.HardSkill{})
	return out
}

// RemoveSkill removes the skill at index from a category.
func RemoveSkill(p types.CandidateProfile, category string, index int) (types.CandidateProfile, error) {
	out := clone(p)
	skills := out.Skills.HardSkills[category]
	if index < 0 || index >= len(skills) {
		return p, &ErrIndexOutOfRange{Section: "hardSkills/" + category, Index: index, Length: len(skills)}
	}
	out.Skills.HardSkills[category] = append(skills[:index], skills[index+1:]...)
	return out, nil
}

// UpdateSkill replaces one field of the skill at index within a category.
func UpdateSkill(p types.CandidateProfile, category string, index int, field, value string) (types.CandidateProfile, error) {
	out := clone(p)
	skills := out.Skills.HardSkills[category]
	if index < 0 || index >= len(skills) {
		return p, &ErrIndexOutOfRange{Section: "hardSkills/" + category, Index: index, Length: len(skills)}
	}
	switch field {
	case "name":
		skills[index].Name = value
	case "level":
		skills[index].Level = value
	default:
		return p, &ErrUnknownField{Section: "hardSkills", Field: field}
	}
	return out, nil
}

// SortSkills reorders the skills of a category, either by locale-aware name
// comparison or by proficiency rank (Эксперт < Продвинутый < Средний < other).
// Both orderings are stable with respect to equal keys.
func SortSkills(p types.CandidateProfile, category string, key SortKey) types.CandidateProfile {
	out := clone(p)
	skills, exists := out.Skills.HardSkills[category]
	if !exists {
		return p
	}

	switch key {
	case SortByName:
		c := collator()
		sort.SliceStable(skills, func(i, j int) bool {
			return c.CompareString(skills[i].Name, skills[j].Name) < 0
		})
	case SortByLevel:
		sort.SliceStable(skills, func(i, j int) bool {
			return levelRank(skills[i].Level) < levelRank(skills[j].Level)
		})
	}

	return out
}

func levelRank(level string) int {
	if rank, ok := levelOrder[level]; ok {
		return rank
	}
	return unknownLevelRank
}

// AddSoftSkill appends an empty soft skill.
func AddSoftSkill(p types.CandidateProfile) types.CandidateProfile {
	out := clone(p)
	out.Skills.SoftSkills = append(out.Skills.SoftSkills, types.SoftSkill{})
	return out
}

// RemoveSoftSkill removes the soft skill at index.
func RemoveSoftSkill(p types.CandidateProfile, index int) (types.CandidateProfile, error) {
	out := clone(p)
	if index < 0 || index >= len(out.Skills.SoftSkills) {
		return p, &ErrIndexOutOfRange{Section: "softSkills", Index: index, Length: len(out.Skills.SoftSkills)}
	}
	out.Skills.SoftSkills = append(out.Skills.SoftSkills[:index], out.Skills.SoftSkills[index+1:]...)
	return out, nil
}

// UpdateSoftSkill replaces one field of the soft skill at index.
func UpdateSoftSkill(p types.CandidateProfile, index int, field, value string) (types.CandidateProfile, error) {
	out := clone(p)
	if index < 0 || index >= len(out.Skills.SoftSkills) {
		return p, &ErrIndexOutOfRange{Section: "softSkills", Index: index, Length: len(out.Skills.SoftSkills)}
	}
	switch field {
	case "name":
		out.Skills.SoftSkills[index].Name = value
	case "level":
		out.Skills.SoftSkills[index].Level = value
	default:
		return p, &ErrUnknownField{Section: "softSkills", Field: field}
	}
	return out, nil
}

// SkillNames collects every distinct non-empty skill name across all hard-skill
// categories and the soft skills, for autocomplete suggestions. Categories are
// visited in collated order so the result is deterministic; within a category
// and within the soft skills, first-encounter order is kept and duplicates
// dropped.
func SkillNames(p types.CandidateProfile) []string {
	normalized := clone(p)

	categories := make([]string, 0, len(normalized.Skills.HardSkills))
	for category := range normalized.Skills.HardSkills {
		categories = append(categories, category)
	}
	c := collator()
	sort.SliceStable(categories, func(i, j int) bool {
		return c.CompareString(categories[i], categories[j]) < 0
	})

	seen := make(map[string]bool)
	var names []string
	add := func(name string) {
		if name == "" || seen[name] {
			return
		}
		seen[name] = true
		names = append(names, name)
	}

	for _, category := range categories {
		for _, skill := range normalized.Skills.HardSkills[category] {
			add(skill.Name)
		}
	}
	for _, skill := range normalized.Skills.SoftSkills {
		add(skill.Name)
	}
	return names
}
