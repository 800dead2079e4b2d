package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrei/cv-tailor/internal/types"
)

func skillsProfile() types.CandidateProfile {
	return types.CandidateProfile{
		Skills: types.Skills{
			HardSkills: map[string][]types.HardSkill{
				"Языки": {
					{Name: "Python", Level: "Средний"},
					{Name: "Go", Level: "Эксперт"},
				},
				"Базы данных": {
					{Name: "PostgreSQL", Level: "Продвинутый"},
				},
			},
			SoftSkills: []types.SoftSkill{
				{Name: "Коммуникация", Level: "Продвинутый"},
			},
		},
	}
}

func TestAddCategory(t *testing.T) {
	updated := AddCategory(skillsProfile(), "DevOps")
	require.Contains(t, updated.Skills.HardSkills, "DevOps")
	assert.Empty(t, updated.Skills.HardSkills["DevOps"])

	// Trims before adding.
	updated = AddCategory(skillsProfile(), "  Облака  ")
	assert.Contains(t, updated.Skills.HardSkills, "Облака")
}

func TestAddCategory_NoOps(t *testing.T) {
	original := skillsProfile()

	assert.Equal(t, original, AddCategory(original, ""))
	assert.Equal(t, original, AddCategory(original, "   "))
	assert.Equal(t, original, AddCategory(original, "Языки"))
}

func TestRemoveCategory(t *testing.T) {
	updated := RemoveCategory(skillsProfile(), "Языки")
	assert.NotContains(t, updated.Skills.HardSkills, "Языки")
	assert.Contains(t, updated.Skills.HardSkills, "Базы данных")

	// Absent category is tolerated.
	updated = RemoveCategory(skillsProfile(), "нет такой")
	assert.Len(t, updated.Skills.HardSkills, 2)
}

func TestRenameCategory(t *testing.T) {
	updated := RenameCategory(skillsProfile(), "Языки", "Языки программирования")
	require.Contains(t, updated.Skills.HardSkills, "Языки программирования")
	assert.NotContains(t, updated.Skills.HardSkills, "Языки")
	assert.Len(t, updated.Skills.HardSkills["Языки программирования"], 2)
}

func TestRenameCategory_SilentRejections(t *testing.T) {
	original := skillsProfile()

	tests := []struct {
		name    string
		oldName string
		newName string
	}{
		{"empty new name", "Языки", ""},
		{"unchanged name", "Языки", "Языки"},
		{"collision with existing category", "Языки", "Базы данных"},
		{"missing old category", "нет такой", "Новая"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, original, RenameCategory(original, tt.oldName, tt.newName))
		})
	}
}

func TestAddSkill_CreatesCategoryWhenMissing(t *testing.T) {
	updated := AddSkill(skillsProfile(), "Новая")
	require.Len(t, updated.Skills.HardSkills["Новая"], 1)
	assert.Equal(t, types.HardSkill{}, updated.Skills.HardSkills["Новая"][0])

	updated = AddSkill(skillsProfile(), "Языки")
	assert.Len(t, updated.Skills.HardSkills["Языки"], 3)
}

func TestUpdateAndRemoveSkill(t *testing.T) {
	updated, err := UpdateSkill(skillsProfile(), "Языки", 0, "level", "Эксперт")
	require.NoError(t, err)
	assert.Equal(t, "Эксперт", updated.Skills.HardSkills["Языки"][0].Level)

	_, err = UpdateSkill(skillsProfile(), "Языки", 9, "level", "x")
	assert.Error(t, err)

	removed, err := RemoveSkill(skillsProfile(), "Языки", 0)
	require.NoError(t, err)
	require.Len(t, removed.Skills.HardSkills["Языки"], 1)
	assert.Equal(t, "Go", removed.Skills.HardSkills["Языки"][0].Name)
}

func TestSortSkills_ByName(t *testing.T) {
	updated := SortSkills(skillsProfile(), "Языки", SortByName)
	names := []string{
		updated.Skills.HardSkills["Языки"][0].Name,
		updated.Skills.HardSkills["Языки"][1].Name,
	}
	assert.Equal(t, []string{"Go", "Python"}, names)
}

func TestSortSkills_ByLevel(t *testing.T) {
	profile := types.CandidateProfile{
		Skills: types.Skills{
			HardSkills: map[string][]types.HardSkill{
				"Все": {
					{Name: "a", Level: "что-то"},
					{Name: "b", Level: "Средний"},
					{Name: "c", Level: "Эксперт"},
					{Name: "d", Level: "Продвинутый"},
				},
			},
		},
	}

	updated := SortSkills(profile, "Все", SortByLevel)
	levels := make([]string, 0, 4)
	for _, s := range updated.Skills.HardSkills["Все"] {
		levels = append(levels, s.Level)
	}
	assert.Equal(t, []string{"Эксперт", "Продвинутый", "Средний", "что-то"}, levels)
}

func TestSortSkills_ByLevelStable(t *testing.T) {
	profile := types.CandidateProfile{
		Skills: types.Skills{
			HardSkills: map[string][]types.HardSkill{
				"Все": {
					{Name: "first", Level: "Эксперт"},
					{Name: "second", Level: "Эксперт"},
					{Name: "third", Level: "Эксперт"},
				},
			},
		},
	}

	updated := SortSkills(profile, "Все", SortByLevel)
	names := make([]string, 0, 3)
	for _, s := range updated.Skills.HardSkills["Все"] {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{"first", "second", "third"}, names)
}

func TestSortSkills_MissingCategoryNoOp(t *testing.T) {
	original := skillsProfile()
	assert.Equal(t, original, SortSkills(original, "нет такой", SortByName))
}

func TestSoftSkillOps(t *testing.T) {
	grown := AddSoftSkill(skillsProfile())
	require.Len(t, grown.Skills.SoftSkills, 2)

	updated, err := UpdateSoftSkill(grown, 1, "name", "Наставничество")
	require.NoError(t, err)
	assert.Equal(t, "Наставничество", updated.Skills.SoftSkills[1].Name)

	shrunk, err := RemoveSoftSkill(skillsProfile(), 0)
	require.NoError(t, err)
	assert.Empty(t, shrunk.Skills.SoftSkills)

	_, err = RemoveSoftSkill(skillsProfile(), 3)
	assert.Error(t, err)
}

func TestSkillNames(t *testing.T) {
	profile := skillsProfile()
	// Duplicate and empty names must be dropped.
	profile.Skills.HardSkills["Языки"] = append(profile.Skills.HardSkills["Языки"],
		types.HardSkill{Name: "Go", Level: "Средний"},
		types.HardSkill{Name: "", Level: "Средний"},
	)

	names := SkillNames(profile)

	assert.ElementsMatch(t, []string{"PostgreSQL", "Python", "Go", "Коммуникация"}, names)
	// Soft skills come after all hard-skill categories.
	assert.Equal(t, "Коммуникация", names[len(names)-1])
	// Deterministic across calls despite map-backed categories.
	assert.Equal(t, names, SkillNames(profile))
}

func TestSkillNames_DegenerateSkills(t *testing.T) {
	var empty types.CandidateProfile
	assert.Empty(t, SkillNames(empty))
}
