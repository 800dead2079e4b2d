package observability

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/andrei/cv-tailor/internal/types"
)

func TestPrintProfile(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	profile := &types.CandidateProfile{
		PersonalInfo: types.PersonalInfo{
			Name:     "Алексей Смирнов",
			Title:    "Go-разработчик",
			Location: "Москва",
		},
		Experience: []types.Experience{
			{Title: "Senior Go Developer", Company: "Финтех", Period: "2021 - н.в."},
			{Title: "Backend Developer", Company: "Стартап", Period: "2018 - 2021"},
		},
		Skills: types.Skills{
			HardSkills: map[string][]types.HardSkill{
				"Языки": {{Name: "Go", Level: "Эксперт"}},
			},
		},
		Projects: []types.Project{{Name: "cv-tailor"}},
	}

	p.PrintProfile(profile)
	output := buf.String()

	assert.Contains(t, output, "CANDIDATE PROFILE")
	assert.Contains(t, output, "Алексей Смирнов")
	assert.Contains(t, output, "Senior Go Developer")
	assert.Contains(t, output, "1 in 1 categories")
	assert.Contains(t, output, "Projects: 1")
}

func TestPrintProfile_Nil(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintProfile(nil)

	assert.Empty(t, buf.String())
}

func TestPrintProfile_ManyEntries(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	profile := &types.CandidateProfile{}
	for i := 0; i < 8; i++ {
		profile.Experience = append(profile.Experience, types.Experience{
			Title: "Developer", Company: "Компания", Period: "2020",
		})
	}

	p.PrintProfile(profile)

	assert.Contains(t, buf.String(), "... and 3 more")
}

func TestPrintVacancy(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintVacancy("Senior Go Developer\nТребования:\nОпыт от 5 лет")
	output := buf.String()

	assert.Contains(t, output, "VACANCY TEXT")
	assert.Contains(t, output, "Senior Go Developer")
	assert.Contains(t, output, "characters")
}

func TestPrintVacancy_Empty(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintVacancy("   \n  ")

	assert.Empty(t, buf.String())
}

func TestPrintVacancy_TruncatesLongLines(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	// Long Cyrillic line must be cut on a rune boundary, not mid-byte.
	p.PrintVacancy(strings.Repeat("вакансия ", 20))
	output := buf.String()

	assert.Contains(t, output, "...")
	assert.True(t, bytes.ContainsRune(buf.Bytes(), 'я') || strings.Contains(output, "вакансия"))
}

func TestPrintOutput(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintOutput(&types.GenerationOutput{
		Resume:      "# Резюме\n\nТекст",
		CoverLetter: "Письмо",
	})
	output := buf.String()

	assert.Contains(t, output, "GENERATED DOCUMENTS")
	assert.Contains(t, output, "Resume:")
	assert.Contains(t, output, "Cover letter:")
}

func TestPrintOutput_Nil(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintOutput(nil)

	assert.Empty(t, buf.String())
}

func TestPrintHistoryItem(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintHistoryItem(&types.HistoryItem{
		ID:          "abc-123",
		Timestamp:   "2025-01-15T10:00:00Z",
		VacancyText: "Требуется Go-разработчик",
	})
	output := buf.String()

	assert.Contains(t, output, "SAVED TO HISTORY")
	assert.Contains(t, output, "abc-123")
	assert.Contains(t, output, "Требуется Go-разработчик")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "абв...", truncate("абвгдежзик", 6))
	assert.Len(t, []rune(truncate(strings.Repeat("ж", 100), 20)), 20)
}
