package server

import (
	"errors"
	"net/http"

	"github.com/andrei/cv-tailor/internal/app"
	"github.com/andrei/cv-tailor/internal/fetch"
	"github.com/andrei/cv-tailor/internal/generate"
	"github.com/andrei/cv-tailor/internal/llm"
	"github.com/andrei/cv-tailor/internal/profile"
	"github.com/andrei/cv-tailor/internal/schemas"
)

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		emptyVacancy  generate.ErrEmptyVacancy
		boundaryErr   *llm.BoundaryError
		validationErr *schemas.ValidationError
		unknownField  *profile.ErrUnknownField
		outOfRange    *profile.ErrIndexOutOfRange
		fetchErr      *fetch.Error
	)

	switch {
	case errors.As(err, &emptyVacancy):
		return http.StatusUnprocessableEntity
	case errors.Is(err, app.ErrGenerationInFlight):
		return http.StatusConflict
	case errors.As(err, &boundaryErr), errors.As(err, &fetchErr):
		return http.StatusBadGateway
	case errors.As(err, &validationErr), errors.As(err, &unknownField), errors.As(err, &outOfRange):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
