// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/andrei/cv-tailor/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// truncate shortens s to at most n display runes. Profile and vacancy text is
// mostly Cyrillic, so byte slicing would cut multi-byte runes in half.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		line = truncate(line, boxWidth-4)
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintProfile outputs a human-readable summary of the candidate profile
// that will be sent to the model.
func (p *Printer) PrintProfile(profile *types.CandidateProfile) {
	if profile == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Name:     %s\n", profile.PersonalInfo.Name))
	sb.WriteString(fmt.Sprintf("Title:    %s\n", profile.PersonalInfo.Title))
	sb.WriteString(fmt.Sprintf("Location: %s\n", profile.PersonalInfo.Location))
	sb.WriteString("\n")

	if len(profile.Experience) > 0 {
		sb.WriteString("Experience:\n")
		count := min(len(profile.Experience), maxItemsToShow)
		for i := 0; i < count; i++ {
			exp := profile.Experience[i]
			sb.WriteString(fmt.Sprintf("  • %s, %s (%s)\n", exp.Title, exp.Company, exp.Period))
		}
		if len(profile.Experience) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(profile.Experience)-maxItemsToShow))
		}
		sb.WriteString("\n")
	}

	if len(profile.Skills.HardSkills) > 0 {
		total := 0
		for _, skills := range profile.Skills.HardSkills {
			total += len(skills)
		}
		sb.WriteString(fmt.Sprintf("Skills:   %d in %d categories\n", total, len(profile.Skills.HardSkills)))
	}
	if len(profile.Projects) > 0 {
		sb.WriteString(fmt.Sprintf("Projects: %d\n", len(profile.Projects)))
	}

	p.printBox("CANDIDATE PROFILE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintVacancy outputs the beginning of the vacancy text and its size.
func (p *Printer) PrintVacancy(text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Length: %d characters\n\n", len([]rune(text))))

	lines := strings.Split(text, "\n")
	count := min(len(lines), maxItemsToShow)
	for i := 0; i < count; i++ {
		sb.WriteString(lines[i])
		sb.WriteString("\n")
	}
	if len(lines) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("... and %d more lines", len(lines)-maxItemsToShow))
	}

	p.printBox("VACANCY TEXT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintOutput outputs size statistics for the generated documents.
func (p *Printer) PrintOutput(output *types.GenerationOutput) {
	if output == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Resume:       %d characters, %d lines\n",
		len([]rune(output.Resume)), strings.Count(output.Resume, "\n")+1))
	sb.WriteString(fmt.Sprintf("Cover letter: %d characters, %d lines",
		len([]rune(output.CoverLetter)), strings.Count(output.CoverLetter, "\n")+1))

	p.printBox("GENERATED DOCUMENTS", sb.String())
}

// PrintHistoryItem outputs a short summary of a persisted generation record.
func (p *Printer) PrintHistoryItem(item *types.HistoryItem) {
	if item == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("ID:        %s\n", item.ID))
	sb.WriteString(fmt.Sprintf("Timestamp: %s\n", item.Timestamp))
	sb.WriteString(fmt.Sprintf("Vacancy:   %s", truncate(strings.TrimSpace(item.VacancyText), 45)))

	p.printBox("SAVED TO HISTORY", sb.String())
}
