package server

import (
	"net/http"

	"github.com/andrei/cv-tailor/internal/profile"
)

// handleAddCategory creates a new skill category
func (s *Server) handleAddCategory(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := decodeBody(r, &req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	s.commitProfile(w, profile.AddCategory(s.state.Profile(), req.Name))
}

// handleRemoveCategory deletes a skill category and its skills
func (s *Server) handleRemoveCategory(w http.ResponseWriter, r *http.Request) {
	s.commitProfile(w, profile.RemoveCategory(s.state.Profile(), r.PathValue("name")))
}

// handleRenameCategory renames a skill category. Renames that would collide
// with an existing category, or that change nothing, are silently ignored
// and return the profile as is.
func (s *Server) handleRenameCategory(w http.ResponseWriter, r *http.Request) {
	var req struct {
		NewName string `json:"new_name"`
	}
	if err := decodeBody(r, &req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	s.commitProfile(w, profile.RenameCategory(s.state.Profile(), r.PathValue("name"), req.NewName))
}

// handleAddSkill appends an empty skill to a category, creating the category
// when it does not exist yet
func (s *Server) handleAddSkill(w http.ResponseWriter, r *http.Request) {
	s.commitProfile(w, profile.AddSkill(s.state.Profile(), r.PathValue("name")))
}

// handleUpdateSkill sets one field of a skill
func (s *Server) handleUpdateSkill(w http.ResponseWriter, r *http.Request) {
	index, err := pathIndex(r)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid skill index")
		return
	}

	var req fieldValueRequest
	if err := decodeBody(r, &req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := profile.UpdateSkill(s.state.Profile(), r.PathValue("name"), index, req.Field, req.Value)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.commitProfile(w, updated)
}

// handleRemoveSkill deletes a skill from a category by index
func (s *Server) handleRemoveSkill(w http.ResponseWriter, r *http.Request) {
	index, err := pathIndex(r)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid skill index")
		return
	}

	updated, err := profile.RemoveSkill(s.state.Profile(), r.PathValue("name"), index)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.commitProfile(w, updated)
}

// handleSortSkills sorts a category by name or proficiency level
func (s *Server) handleSortSkills(w http.ResponseWriter, r *http.Request) {
	var req struct {
		By string `json:"by"`
	}
	if err := decodeBody(r, &req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	key := profile.SortKey(req.By)
	if key != profile.SortByName && key != profile.SortByLevel {
		s.errorResponse(w, http.StatusBadRequest, "Sort key must be 'name' or 'level'")
		return
	}

	s.commitProfile(w, profile.SortSkills(s.state.Profile(), r.PathValue("name"), key))
}

// handleAddSoftSkill appends an empty soft skill
func (s *Server) handleAddSoftSkill(w http.ResponseWriter, _ *http.Request) {
	s.commitProfile(w, profile.AddSoftSkill(s.state.Profile()))
}

// handleUpdateSoftSkill sets one field of a soft skill
func (s *Server) handleUpdateSoftSkill(w http.ResponseWriter, r *http.Request) {
	index, err := pathIndex(r)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid soft skill index")
		return
	}

	var req fieldValueRequest
	if err := decodeBody(r, &req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := profile.UpdateSoftSkill(s.state.Profile(), index, req.Field, req.Value)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.commitProfile(w, updated)
}

// handleRemoveSoftSkill deletes a soft skill by index
func (s *Server) handleRemoveSoftSkill(w http.ResponseWriter, r *http.Request) {
	index, err := pathIndex(r)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid soft skill index")
		return
	}

	updated, err := profile.RemoveSoftSkill(s.state.Profile(), index)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.commitProfile(w, updated)
}

// handleSkillNames returns the deduplicated skill names for autocomplete
func (s *Server) handleSkillNames(w http.ResponseWriter, _ *http.Request) {
	names := profile.SkillNames(s.state.Profile())
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"names": names,
		"count": len(names),
	})
}
