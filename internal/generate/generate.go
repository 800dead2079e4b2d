// Package generate coordinates a single tailoring run: it validates the
// vacancy text, drives the loading state, calls the generation boundary and
// records successful runs in the history.
package generate

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/andrei/cv-tailor/internal/app"
	"github.com/andrei/cv-tailor/internal/history"
	"github.com/andrei/cv-tailor/internal/types"
)

// User-facing messages are Russian, matching the rest of the product surface.
const (
	msgEmptyVacancy  = "Пожалуйста, вставьте описание вакансии для генерации документов."
	msgGenerateError = "Не удалось сгенерировать контент."
)

// ErrEmptyVacancy is returned when the vacancy text is blank after trimming.
type ErrEmptyVacancy struct{}

func (ErrEmptyVacancy) Error() string { return msgEmptyVacancy }

// Boundary is the slice of the LLM client the orchestrator needs.
type Boundary interface {
	TailorDocuments(ctx context.Context, vacancyText, profileJSON string, length types.CoverLetterLength) (types.GenerationOutput, error)
}

// Orchestrator runs generations against the shared application state.
type Orchestrator struct {
	state    *app.State
	history  *history.Store
	boundary Boundary
}

// New creates an orchestrator.
func New(state *app.State, hist *history.Store, boundary Boundary) *Orchestrator {
	return &Orchestrator{
		state:    state,
		history:  hist,
		boundary: boundary,
	}
}

// Run performs one generation for the state's current vacancy text and
// profile. It returns the recorded history item on success. A blank vacancy
// fails fast without touching the loading state; a second Run while one is in
// flight returns app.ErrGenerationInFlight.
func (o *Orchestrator) Run(ctx context.Context, length types.CoverLetterLength) (types.HistoryItem, error) {
	vacancy := o.state.VacancyText()
	if strings.TrimSpace(vacancy) == "" {
		o.state.SetError(msgEmptyVacancy)
		return types.HistoryItem{}, ErrEmptyVacancy{}
	}

	if err := o.state.BeginGeneration(); err != nil {
		return types.HistoryItem{}, err
	}

	profile := o.state.Profile()
	profileJSON, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		msg := fmt.Sprintf("%s %v", msgGenerateError, err)
		o.state.FinishGeneration(nil, msg)
		return types.HistoryItem{}, fmt.Errorf("marshal profile: %w", err)
	}

	output, err := o.boundary.TailorDocuments(ctx, vacancy, string(profileJSON), length)
	if err != nil {
		log.Printf("[generate] generation failed: %v", err)
		o.state.FinishGeneration(nil, fmt.Sprintf("%s %v", msgGenerateError, err))
		return types.HistoryItem{}, err
	}

	o.state.FinishGeneration(&output, "")
	item := o.history.Record(ctx, vacancy, profile, output)
	return item, nil
}
