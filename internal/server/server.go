// Package server provides the HTTP REST API for the CV tailoring assistant.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/andrei/cv-tailor/internal/app"
	"github.com/andrei/cv-tailor/internal/config"
	"github.com/andrei/cv-tailor/internal/export"
	"github.com/andrei/cv-tailor/internal/fetch"
	"github.com/andrei/cv-tailor/internal/generate"
	"github.com/andrei/cv-tailor/internal/history"
	"github.com/andrei/cv-tailor/internal/llm"
	"github.com/andrei/cv-tailor/internal/store"
)

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	kv         store.Store
	state      *app.State
	history    *history.Store
	orch       *generate.Orchestrator
	fetcher    *fetch.VacancyFetcher
	renderer   *export.PDFRenderer
	llmClient  llm.Client
	useBrowser bool
}

// New creates a new server instance. An empty DatabaseURL keeps all state in
// memory; an empty APIKey is rejected because generation is the point.
func New(ctx context.Context, cfg config.Config) (*Server, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	var kv store.Store
	if cfg.DatabaseURL != "" {
		pg, err := store.ConnectPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		kv = pg
	} else {
		log.Println("[server] no database URL configured, state will not survive restarts")
		kv = store.NewMemory()
	}

	llmClient, err := llm.NewClient(ctx, llm.DefaultConfig().WithModel(cfg.Model), cfg.APIKey)
	if err != nil {
		kv.Close()
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	state := app.New(kv, cfg.Debounce())
	state.LoadSaved(ctx)

	hist := history.New(kv)
	hist.Load(ctx)

	s := &Server{
		kv:      kv,
		state:   state,
		history: hist,
		orch:    generate.New(state, hist, llmClient),
		fetcher: fetch.NewVacancyFetcher(kv, &fetch.VacancyFetcherConfig{
			CacheTTL: cfg.CacheTTL(),
		}),
		renderer:   export.NewPDFRenderer(cfg.ChromePath),
		llmClient:  llmClient,
		useBrowser: cfg.UseBrowser,
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withLogging(s.withCORS(s.routes())),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second, // generation and PDF rendering are slow
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// routes builds the request mux.
func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /status", s.handleStatus)

	// Profile document
	mux.HandleFunc("GET /profile", s.handleGetProfile)
	mux.HandleFunc("PUT /profile", s.handlePutProfile)
	mux.HandleFunc("POST /profile/reset", s.handleResetProfile)

	// Profile field mutations
	mux.HandleFunc("PATCH /profile/summary", s.handleSetSummary)
	mux.HandleFunc("PATCH /profile/philosophy", s.handleSetPhilosophy)
	mux.HandleFunc("PATCH /profile/personal", s.handleUpdatePersonalInfo)
	mux.HandleFunc("PATCH /profile/education", s.handleUpdateEducation)

	// Experience and projects
	mux.HandleFunc("POST /profile/experience", s.handleAppendExperience)
	mux.HandleFunc("PATCH /profile/experience/{index}", s.handleUpdateExperience)
	mux.HandleFunc("DELETE /profile/experience/{index}", s.handleRemoveExperience)
	mux.HandleFunc("POST /profile/projects", s.handleAppendProject)
	mux.HandleFunc("PATCH /profile/projects/{index}", s.handleUpdateProject)
	mux.HandleFunc("DELETE /profile/projects/{index}", s.handleRemoveProject)

	// Skill categories
	mux.HandleFunc("POST /profile/skills/categories", s.handleAddCategory)
	mux.HandleFunc("DELETE /profile/skills/categories/{name}", s.handleRemoveCategory)
	mux.HandleFunc("POST /profile/skills/categories/{name}/rename", s.handleRenameCategory)
	mux.HandleFunc("POST /profile/skills/categories/{name}/skills", s.handleAddSkill)
	mux.HandleFunc("PATCH /profile/skills/categories/{name}/skills/{index}", s.handleUpdateSkill)
	mux.HandleFunc("DELETE /profile/skills/categories/{name}/skills/{index}", s.handleRemoveSkill)
	mux.HandleFunc("POST /profile/skills/categories/{name}/sort", s.handleSortSkills)

	// Soft skills
	mux.HandleFunc("POST /profile/skills/soft", s.handleAddSoftSkill)
	mux.HandleFunc("PATCH /profile/skills/soft/{index}", s.handleUpdateSoftSkill)
	mux.HandleFunc("DELETE /profile/skills/soft/{index}", s.handleRemoveSoftSkill)

	// Skill name autocomplete
	mux.HandleFunc("GET /profile/skills/names", s.handleSkillNames)

	// Vacancy and generation
	mux.HandleFunc("GET /vacancy", s.handleGetVacancy)
	mux.HandleFunc("PUT /vacancy", s.handlePutVacancy)
	mux.HandleFunc("POST /vacancy/fetch", s.handleFetchVacancy)
	mux.HandleFunc("POST /generate", s.handleGenerate)

	// Output and export
	mux.HandleFunc("GET /output", s.handleGetOutput)
	mux.HandleFunc("GET /output/{doc}/html", s.handleGetOutputHTML)
	mux.HandleFunc("GET /export/{doc}", s.handleExportHTML)
	mux.HandleFunc("GET /export/{doc}/pdf", s.handleExportPDF)

	// History
	mux.HandleFunc("GET /history", s.handleListHistory)
	mux.HandleFunc("GET /history/{id}", s.handleGetHistory)
	mux.HandleFunc("POST /history/{id}/restore", s.handleRestoreHistory)
	mux.HandleFunc("DELETE /history/{id}", s.handleDeleteHistory)
	mux.HandleFunc("DELETE /history", s.handleClearHistory)

	// Sample data
	mux.HandleFunc("GET /samples/profiles", s.handleListSampleProfiles)
	mux.HandleFunc("GET /samples/vacancies", s.handleListSampleVacancies)

	return mux
}

// Start begins listening for requests
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	// Push any debounced profile write before the store goes away
	s.state.Flush()

	if s.llmClient != nil {
		_ = s.llmClient.Close()
	}
	s.kv.Close()
	log.Println("Server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleStatus reports the generation state the UI polls: whether a run is in
// flight, the last user-facing error, and whether output exists
func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	_, hasOutput := s.state.Output()
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"loading":    s.state.Loading(),
		"error":      s.state.ErrorMessage(),
		"has_output": hasOutput,
	})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}
