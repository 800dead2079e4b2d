package types

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// CoverLetterLength selects the approximate length of the generated cover letter.
type CoverLetterLength string

// Supported cover letter lengths. Each maps to an approximate paragraph count
// in the generation prompt.
const (
	LengthShort  CoverLetterLength = "short"  // ~2-3 paragraphs
	LengthMedium CoverLetterLength = "medium" // ~3-4 paragraphs
	LengthLong   CoverLetterLength = "long"   // ~4-5 paragraphs
)

// Paragraphs returns the paragraph-count instruction for the prompt.
func (l CoverLetterLength) Paragraphs() string {
	switch l {
	case LengthShort:
		return "2-3"
	case LengthLong:
		return "4-5"
	default:
		return "3-4"
	}
}

// GenerationOutput holds the two generated documents, both Markdown text.
// Opaque to this system beyond display formatting.
type GenerationOutput struct {
	Resume      string `json:"resume"`
	CoverLetter string `json:"coverLetter"`
}

// HistoryItem is one persisted record of a past generation request and its result.
// CandidateProfile is a deep-copy snapshot taken at call time.
type HistoryItem struct {
	ID               string           `json:"id"`
	Timestamp        string           `json:"timestamp"` // RFC3339
	VacancyText      string           `json:"vacancyText"`
	CandidateProfile CandidateProfile `json:"candidateProfile"`
	Output           GenerationOutput `json:"output"`
}

// NewHistoryItem builds a history item with a fresh id and current timestamp,
// snapshotting the profile so later edits cannot mutate the record.
func NewHistoryItem(vacancyText string, profile CandidateProfile, output GenerationOutput) HistoryItem {
	return HistoryItem{
		ID:               uuid.NewString(),
		Timestamp:        time.Now().Format(time.RFC3339),
		VacancyText:      vacancyText,
		CandidateProfile: profile.Clone(),
		Output:           output,
	}
}

// GenerateRequest is the request body for starting a generation.
type GenerateRequest struct {
	CoverLetterLength CoverLetterLength `json:"cover_letter_length,omitempty" validate:"omitempty,oneof=short medium long"`
}

// Validate validates the GenerateRequest using the validator.
func (r *GenerateRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// VacancyFetchRequest is the request body for fetching a job posting from a URL.
// Refresh drops any cached text for the URL before fetching.
type VacancyFetchRequest struct {
	URL        string `json:"url" validate:"required,url"`
	UseBrowser bool   `json:"use_browser,omitempty"`
	Refresh    bool   `json:"refresh,omitempty"`
}

// Validate validates the VacancyFetchRequest using the validator.
func (r *VacancyFetchRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
