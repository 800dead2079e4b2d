package server

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/andrei/cv-tailor/internal/profile"
	"github.com/andrei/cv-tailor/internal/schemas"
	"github.com/andrei/cv-tailor/internal/types"
)

// valueRequest is the body for single-value field mutations.
type valueRequest struct {
	Value string `json:"value"`
}

// fieldValueRequest is the body for named-field mutations.
type fieldValueRequest struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

// decodeBody decodes a JSON request body into dst.
func decodeBody(r *http.Request, dst any) error {
	defer func() { _, _ = io.Copy(io.Discard, r.Body) }()
	return json.NewDecoder(r.Body).Decode(dst)
}

// pathIndex parses a numeric {index} path segment.
func pathIndex(r *http.Request) (int, error) {
	return strconv.Atoi(r.PathValue("index"))
}

// commitProfile stores a mutated profile and returns it to the client.
// The write is debounced inside the app state.
func (s *Server) commitProfile(w http.ResponseWriter, p types.CandidateProfile) {
	s.state.SetProfile(p)
	s.jsonResponse(w, http.StatusOK, s.state.Profile())
}

// handleGetProfile returns the committed profile document, indented because
// the raw JSON editor regenerates its text buffer from this response.
func (s *Server) handleGetProfile(w http.ResponseWriter, _ *http.Request) {
	data, err := json.MarshalIndent(s.state.Profile(), "", "  ")
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to encode profile")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// handlePutProfile replaces the whole profile from a raw JSON document.
// A document that fails to parse or validate leaves the committed profile
// untouched.
func (s *Server) handlePutProfile(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Failed to read request body")
		return
	}

	parsed, err := schemas.ParseProfile(data)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.commitProfile(w, parsed)
}

// handleResetProfile restores the built-in default profile
func (s *Server) handleResetProfile(w http.ResponseWriter, _ *http.Request) {
	s.commitProfile(w, types.DefaultCandidateProfile())
}

// handleSetSummary replaces the profile summary
func (s *Server) handleSetSummary(w http.ResponseWriter, r *http.Request) {
	var req valueRequest
	if err := decodeBody(r, &req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	s.commitProfile(w, profile.SetSummary(s.state.Profile(), req.Value))
}

// handleSetPhilosophy replaces the work philosophy text
func (s *Server) handleSetPhilosophy(w http.ResponseWriter, r *http.Request) {
	var req valueRequest
	if err := decodeBody(r, &req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	s.commitProfile(w, profile.SetPhilosophy(s.state.Profile(), req.Value))
}

// handleUpdatePersonalInfo sets one personal info field
func (s *Server) handleUpdatePersonalInfo(w http.ResponseWriter, r *http.Request) {
	var req fieldValueRequest
	if err := decodeBody(r, &req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := profile.UpdatePersonalInfo(s.state.Profile(), req.Field, req.Value)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.commitProfile(w, updated)
}

// handleUpdateEducation sets one education field
func (s *Server) handleUpdateEducation(w http.ResponseWriter, r *http.Request) {
	var req fieldValueRequest
	if err := decodeBody(r, &req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := profile.UpdateEducation(s.state.Profile(), req.Field, req.Value)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.commitProfile(w, updated)
}

// handleAppendExperience adds an empty experience entry
func (s *Server) handleAppendExperience(w http.ResponseWriter, _ *http.Request) {
	s.commitProfile(w, profile.AppendExperience(s.state.Profile()))
}

// handleUpdateExperience sets one field of an experience entry
func (s *Server) handleUpdateExperience(w http.ResponseWriter, r *http.Request) {
	index, err := pathIndex(r)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid experience index")
		return
	}

	var req fieldValueRequest
	if err := decodeBody(r, &req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := profile.UpdateExperienceField(s.state.Profile(), index, req.Field, req.Value)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.commitProfile(w, updated)
}

// handleRemoveExperience deletes an experience entry by index
func (s *Server) handleRemoveExperience(w http.ResponseWriter, r *http.Request) {
	index, err := pathIndex(r)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid experience index")
		return
	}

	updated, err := profile.RemoveExperience(s.state.Profile(), index)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.commitProfile(w, updated)
}

// handleAppendProject adds an empty project entry
func (s *Server) handleAppendProject(w http.ResponseWriter, _ *http.Request) {
	s.commitProfile(w, profile.AppendProject(s.state.Profile()))
}

// handleUpdateProject sets one field of a project entry
func (s *Server) handleUpdateProject(w http.ResponseWriter, r *http.Request) {
	index, err := pathIndex(r)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid project index")
		return
	}

	var req fieldValueRequest
	if err := decodeBody(r, &req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := profile.UpdateProjectField(s.state.Profile(), index, req.Field, req.Value)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.commitProfile(w, updated)
}

// handleRemoveProject deletes a project entry by index
func (s *Server) handleRemoveProject(w http.ResponseWriter, r *http.Request) {
	index, err := pathIndex(r)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid project index")
		return
	}

	updated, err := profile.RemoveProject(s.state.Profile(), index)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.commitProfile(w, updated)
}
