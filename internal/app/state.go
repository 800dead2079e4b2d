// Package app holds the single application-state value: the vacancy text, the
// committed candidate profile, the latest generation output, and the
// loading/error flags. All state lives in this one struct and changes only
// through its typed update methods; there are no ambient singletons.
package app

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/andrei/cv-tailor/internal/store"
	"github.com/andrei/cv-tailor/internal/types"
)

// ErrGenerationInFlight indicates a generation is already running.
var ErrGenerationInFlight = errors.New("a generation is already in progress")

// State is the root application state. Safe for concurrent use.
type State struct {
	mu          sync.Mutex
	vacancyText string
	profile     types.CandidateProfile
	output      *types.GenerationOutput
	errMsg      string
	loading     bool

	kv    store.Store
	sched *store.Scheduler
}

// New creates application state over the given storage, starting from the
// built-in default profile. Profile writes are debounced by the given quiet
// period; pass zero for the default.
func New(kv store.Store, debounce time.Duration) *State {
	s := &State{
		kv:    kv,
		sched: store.NewScheduler(debounce),
	}
	s.profile = types.DefaultCandidateProfile()
	return s
}

// LoadSaved reads the persisted profile once at startup. A missing key keeps
// the default profile; an unparsable payload falls back to the default with a
// logged warning.
func (s *State) LoadSaved(ctx context.Context) {
	data, err := s.kv.Load(ctx, store.KeyProfile)
	if errors.Is(err, store.ErrNotFound) {
		return
	}
	if err != nil {
		log.Printf("[state] failed to load saved profile: %v", err)
		return
	}

	var profile types.CandidateProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		log.Printf("[state] saved profile is unreadable, using default: %v", err)
		return
	}
	profile.Normalize()

	s.mu.Lock()
	s.profile = profile
	s.mu.Unlock()
}

// Profile returns a deep copy of the committed profile.
func (s *State) Profile() types.CandidateProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile.Clone()
}

// SetProfile commits a whole-document profile replacement and schedules a
// debounced persistence write. Rapid successive commits collapse into one write.
func (s *State) SetProfile(profile types.CandidateProfile) {
	profile.Normalize()

	s.mu.Lock()
	s.profile = profile
	s.mu.Unlock()

	s.sched.Schedule(func() { s.persistProfile() })
}

// VacancyText returns the current job posting text.
func (s *State) VacancyText() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.vacancyText
}

// SetVacancyText replaces the job posting text.
func (s *State) SetVacancyText(text string) {
	s.mu.Lock()
	s.vacancyText = text
	s.mu.Unlock()
}

// Output returns the current generation output, if any.
func (s *State) Output() (types.GenerationOutput, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.output == nil {
		return types.GenerationOutput{}, false
	}
	return *s.output, true
}

// ErrorMessage returns the current user-facing error message, if any.
func (s *State) ErrorMessage() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errMsg
}

// Loading reports whether a generation is in flight.
func (s *State) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// BeginGeneration enters the loading state, clearing any previous error and
// output. Returns ErrGenerationInFlight if one is already running.
func (s *State) BeginGeneration() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loading {
		return ErrGenerationInFlight
	}
	s.loading = true
	s.errMsg = ""
	s.output = nil
	return nil
}

// FinishGeneration exits the loading state with the generation result: either
// an output or a user-facing error message. Called exactly once per
// BeginGeneration, regardless of outcome.
func (s *State) FinishGeneration(output *types.GenerationOutput, errMsg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	s.output = output
	s.errMsg = errMsg
}

// SetError sets the user-facing error message without touching other state.
// Used for validation failures that never enter the loading state.
func (s *State) SetError(msg string) {
	s.mu.Lock()
	s.errMsg = msg
	s.mu.Unlock()
}

// Restore applies a history item as one atomic transition: vacancy text,
// profile, and output all change together, and any error is cleared.
func (s *State) Restore(item types.HistoryItem) {
	profile := item.CandidateProfile.Clone()
	profile.Normalize()
	output := item.Output

	s.mu.Lock()
	s.vacancyText = item.VacancyText
	s.profile = profile
	s.output = &output
	s.errMsg = ""
	s.mu.Unlock()

	s.sched.Schedule(func() { s.persistProfile() })
}

// Flush forces any pending debounced profile write to run now and stops the
// scheduler. Called on shutdown so the last edit is not lost and no write
// fires after the store closes.
func (s *State) Flush() {
	s.sched.Flush()
	s.sched.Stop()
}

// persistProfile writes the committed profile to storage, best-effort.
func (s *State) persistProfile() {
	s.mu.Lock()
	data, err := json.Marshal(s.profile)
	s.mu.Unlock()
	if err != nil {
		log.Printf("[state] failed to serialize profile: %v", err)
		return
	}
	if err := s.kv.Save(context.Background(), store.KeyProfile, data); err != nil {
		log.Printf("[state] failed to persist profile: %v", err)
	}
}
