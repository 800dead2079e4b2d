package server

import (
	"fmt"
	"net/http"

	"github.com/andrei/cv-tailor/internal/export"
	"github.com/andrei/cv-tailor/internal/markdown"
	"github.com/andrei/cv-tailor/internal/samples"
	"github.com/andrei/cv-tailor/internal/types"
)

// handleGetVacancy returns the current vacancy text
func (s *Server) handleGetVacancy(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"text": s.state.VacancyText()})
}

// handlePutVacancy replaces the vacancy text
func (s *Server) handlePutVacancy(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
	}
	if err := decodeBody(r, &req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	s.state.SetVacancyText(req.Text)
	s.jsonResponse(w, http.StatusOK, map[string]string{"text": s.state.VacancyText()})
}

// handleFetchVacancy fetches a job posting from a URL and sets the vacancy
// text to its extracted content
func (s *Server) handleFetchVacancy(w http.ResponseWriter, r *http.Request) {
	var req types.VacancyFetchRequest
	if err := decodeBody(r, &req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	if req.Refresh {
		if err := s.fetcher.Invalidate(r.Context(), req.URL); err != nil {
			s.errorResponse(w, http.StatusInternalServerError, "Failed to drop cached posting: "+err.Error())
			return
		}
	}

	text, err := s.fetcher.Fetch(r.Context(), req.URL, req.UseBrowser || s.useBrowser)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.state.SetVacancyText(text)
	s.jsonResponse(w, http.StatusOK, map[string]string{"text": text})
}

// handleGenerate runs one tailoring generation for the current vacancy text
// and profile
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req types.GenerateRequest
	if r.ContentLength > 0 {
		if err := decodeBody(r, &req); err != nil {
			s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if err := req.Validate(); err != nil {
			s.errorResponse(w, http.StatusBadRequest, "Validation failed: "+err.Error())
			return
		}
	}

	item, err := s.orch.Run(r.Context(), req.CoverLetterLength)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, item)
}

// handleGetOutput returns the raw Markdown of the last generation
func (s *Server) handleGetOutput(w http.ResponseWriter, _ *http.Request) {
	output, ok := s.state.Output()
	if !ok {
		s.errorResponse(w, http.StatusNotFound, "No generated output yet")
		return
	}
	s.jsonResponse(w, http.StatusOK, output)
}

// docFromPath resolves the {doc} path segment against the last generation.
func (s *Server) docFromPath(w http.ResponseWriter, r *http.Request) (export.DocKind, types.GenerationOutput, bool) {
	kind, err := export.ParseDocKind(r.PathValue("doc"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return "", types.GenerationOutput{}, false
	}

	output, ok := s.state.Output()
	if !ok {
		s.errorResponse(w, http.StatusNotFound, "No generated output yet")
		return "", types.GenerationOutput{}, false
	}
	return kind, output, true
}

// handleGetOutputHTML returns one document rendered to an HTML fragment
func (s *Server) handleGetOutputHTML(w http.ResponseWriter, r *http.Request) {
	kind, output, ok := s.docFromPath(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(markdown.Render(kind.Pick(output))))
}

// handleExportHTML returns one document as a standalone printable page
func (s *Server) handleExportHTML(w http.ResponseWriter, r *http.Request) {
	kind, output, ok := s.docFromPath(w, r)
	if !ok {
		return
	}

	page, err := export.PrintableHTML(kind, kind.Pick(output))
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(page))
}

// handleExportPDF renders one document to PDF with headless Chrome
func (s *Server) handleExportPDF(w http.ResponseWriter, r *http.Request) {
	kind, output, ok := s.docFromPath(w, r)
	if !ok {
		return
	}

	pdf, err := s.renderer.RenderDocument(r.Context(), kind, output)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "PDF rendering failed: "+err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s.pdf", kind))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}

// handleListSampleProfiles returns the embedded example profiles
func (s *Server) handleListSampleProfiles(w http.ResponseWriter, _ *http.Request) {
	profiles, err := samples.Profiles()
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"profiles": profiles,
		"count":    len(profiles),
	})
}

// handleListSampleVacancies returns the embedded example postings
func (s *Server) handleListSampleVacancies(w http.ResponseWriter, _ *http.Request) {
	vacancies, err := samples.Vacancies()
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"vacancies": vacancies,
		"count":     len(vacancies),
	})
}
