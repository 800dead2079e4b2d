package server

import (
	"net/http"
)

// handleListHistory returns all saved generations, most recent first
func (s *Server) handleListHistory(w http.ResponseWriter, _ *http.Request) {
	items := s.history.Items()
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"items": items,
		"count": len(items),
	})
}

// handleGetHistory returns one saved generation by id
func (s *Server) handleGetHistory(w http.ResponseWriter, r *http.Request) {
	item, ok := s.history.Get(r.PathValue("id"))
	if !ok {
		s.errorResponse(w, http.StatusNotFound, "History item not found")
		return
	}
	s.jsonResponse(w, http.StatusOK, item)
}

// handleRestoreHistory loads a saved generation back into the app state:
// vacancy text, profile and output together
func (s *Server) handleRestoreHistory(w http.ResponseWriter, r *http.Request) {
	item, ok := s.history.Get(r.PathValue("id"))
	if !ok {
		s.errorResponse(w, http.StatusNotFound, "History item not found")
		return
	}

	s.state.Restore(item)
	s.jsonResponse(w, http.StatusOK, item)
}

// handleDeleteHistory removes one saved generation; an unknown id is not an
// error
func (s *Server) handleDeleteHistory(w http.ResponseWriter, r *http.Request) {
	s.history.Delete(r.Context(), r.PathValue("id"))
	s.jsonResponse(w, http.StatusOK, map[string]int{"count": s.history.Len()})
}

// handleClearHistory removes all saved generations. Requires confirm=true;
// without it the history is left untouched.
func (s *Server) handleClearHistory(w http.ResponseWriter, r *http.Request) {
	confirmed := r.URL.Query().Get("confirm") == "true"

	if !s.history.Clear(r.Context(), confirmed) {
		s.errorResponse(w, http.StatusBadRequest, "Clearing history requires confirm=true")
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]int{"count": 0})
}
