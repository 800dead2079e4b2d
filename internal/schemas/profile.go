// Package schemas provides JSON Schema validation for profile documents.
// Untrusted JSON (the raw editor, imports, durable storage) goes through an
// explicit schema check and comes out as a typed, normalized document or an
// error; call sites never poke at possibly-absent dynamic fields.
package schemas

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/andrei/cv-tailor/internal/types"
)

//go:embed candidate_profile.schema.json
var profileSchemaJSON []byte

// profileSchema is compiled once at startup; the embedded schema is trusted.
var profileSchema = func() *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(profileSchemaJSON))
	if err != nil {
		panic(fmt.Sprintf("failed to compile candidate profile schema: %v", err))
	}
	return schema
}()

// ValidationError reports schema violations with field paths.
type ValidationError struct {
	Errors []FieldError
}

// FieldError is a single violation at a specific field path.
type FieldError struct {
	Field   string
	Message string
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("profile validation failed:")
	for _, fe := range ve.Errors {
		sb.WriteString(fmt.Sprintf(" %s: %s;", fe.Field, fe.Message))
	}
	return strings.TrimSuffix(sb.String(), ";")
}

// ParseProfile parses and validates raw JSON into a normalized CandidateProfile.
// Malformed JSON or a schema violation yields an error and no document; the
// caller keeps whatever profile it had. Fields the document omits come back as
// empty sequences, never nil.
func ParseProfile(data []byte) (types.CandidateProfile, error) {
	var zero types.CandidateProfile

	result, err := profileSchema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return zero, fmt.Errorf("invalid profile JSON: %w", err)
	}
	if !result.Valid() {
		ve := &ValidationError{}
		for _, desc := range result.Errors() {
			ve.Errors = append(ve.Errors, FieldError{
				Field:   desc.Field(),
				Message: desc.Description(),
			})
		}
		return zero, ve
	}

	var profile types.CandidateProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return zero, fmt.Errorf("failed to decode profile: %w", err)
	}
	profile.Normalize()
	return profile, nil
}
