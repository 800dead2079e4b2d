// Package samples ships example vacancies and candidate profiles so the app
// is usable before the user has entered anything of their own.
package samples

import (
	"embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/andrei/cv-tailor/internal/types"
)

//go:embed data/*.json
var dataFS embed.FS

// Vacancy is a named example job posting.
type Vacancy struct {
	Name string `json:"name"`
	Text string `json:"text"`
}

// Profile is a named example candidate profile.
type Profile struct {
	Name    string                 `json:"name"`
	Profile types.CandidateProfile `json:"profile"`
}

var (
	once      sync.Once
	vacancies []Vacancy
	profiles  []Profile
	loadErr   error
)

func load() {
	once.Do(func() {
		if loadErr = loadJSON("data/vacancies.json", &vacancies); loadErr != nil {
			return
		}
		loadErr = loadJSON("data/profiles.json", &profiles)
		for i := range profiles {
			profiles[i].Profile.Normalize()
		}
	})
}

func loadJSON(path string, dst any) error {
	data, err := dataFS.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read embedded %s: %w", path, err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("failed to parse embedded %s: %w", path, err)
	}
	return nil
}

// Vacancies returns the embedded example postings.
func Vacancies() ([]Vacancy, error) {
	load()
	if loadErr != nil {
		return nil, loadErr
	}
	out := make([]Vacancy, len(vacancies))
	copy(out, vacancies)
	return out, nil
}

// Profiles returns the embedded example profiles.
func Profiles() ([]Profile, error) {
	load()
	if loadErr != nil {
		return nil, loadErr
	}
	out := make([]Profile, len(profiles))
	for i, p := range profiles {
		out[i] = Profile{Name: p.Name, Profile: p.Profile.Clone()}
	}
	return out, nil
}
