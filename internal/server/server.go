// Package server provides the HTTP API for the resume intake wizard.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/resume-wizard/internal/config"
	"github.com/jonathan/resume-wizard/internal/db"
	"github.com/jonathan/resume-wizard/internal/llm"
	"github.com/jonathan/resume-wizard/internal/parsing"
	"github.com/jonathan/resume-wizard/internal/server/ratelimit"
	"github.com/jonathan/resume-wizard/internal/types"
	"github.com/jonathan/resume-wizard/internal/wizard"
)

// CommitStore is the persistence surface the wizard commits through.
type CommitStore interface {
	CreateResume(ctx context.Context, userID uuid.UUID, templateID string, draft types.ResumeDraft) (uuid.UUID, error)
	UpdateResume(ctx context.Context, resumeID uuid.UUID, draft types.ResumeDraft) error
	GetResume(ctx context.Context, resumeID uuid.UUID) (*db.Resume, error)
	ListResumes(ctx context.Context, userID uuid.UUID) ([]db.ResumeSummary, error)
	DeleteResume(ctx context.Context, resumeID uuid.UUID) error
}

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	db          *db.DB
	store       CommitStore
	sessions    *wizard.Store
	machine     *wizard.Machine
	parser      parsing.StructuredParser
	llmClient   llm.Client
	rateLimiter *ratelimit.Limiter
	maxUpload   int64
}

// New creates a new server instance
func New(cfg *config.Config) (*Server, error) {
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required to serve")
	}
	database, err := db.Connect(context.Background(), cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// An unusable AI backend is not fatal; parsing degrades to the
	// deterministic fallback.
	var client llm.Client
	if cfg.AIParsingEnabled && cfg.APIKey() != "" {
		client, err = llm.NewClient(context.Background(), llm.Provider(cfg.AIProvider), cfg.APIKey(), cfg.AIModel)
		if err != nil {
			log.Printf("AI client unavailable, using fallback parser: %v", err)
			client = nil
		}
	}

	s := newServer(database, parsing.NewParser(client), cfg.MaxUploadBytes)
	s.db = database
	s.llmClient = client
	s.rateLimiter = ratelimit.NewLimiter(ratelimit.LoadConfig())

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withRateLimit(s.withLogging(s.withCORS(s.routes()))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // upload may wait on the AI provider
		IdleTimeout:  60 * time.Second,
	}
	return s, nil
}

// newServer wires the request-handling core without network or database
// setup. Tests construct servers through this.
func newServer(store CommitStore, parser parsing.StructuredParser, maxUpload int64) *Server {
	return &Server{
		store:     store,
		sessions:  wizard.NewStore(),
		machine:   wizard.NewMachine(),
		parser:    parser,
		maxUpload: maxUpload,
	}
}

// routes builds the request multiplexer.
func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.handleHealth)

	// Wizard session endpoints
	mux.HandleFunc("POST /wizard/start", s.handleWizardStart)
	mux.HandleFunc("POST /wizard/upload", s.handleWizardUpload)
	mux.HandleFunc("GET /wizard/step/{n}", s.handleWizardStepGet)
	mux.HandleFunc("POST /wizard/step/{n}", s.handleWizardStepPost)
	mux.HandleFunc("POST /wizard/goto/{n}", s.handleWizardGoto)
	mux.HandleFunc("POST /wizard/commit", s.handleWizardCommit)
	mux.HandleFunc("POST /wizard/edit/{resume_id}", s.handleWizardEdit)
	mux.HandleFunc("POST /wizard/abandon", s.handleWizardAbandon)

	// Committed resume endpoints
	mux.HandleFunc("GET /resumes", s.handleListResumes)
	mux.HandleFunc("GET /resumes/{id}", s.handleGetResume)
	mux.HandleFunc("DELETE /resumes/{id}", s.handleDeleteResume)

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

	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
	if s.llmClient != nil {
		if err := s.llmClient.Close(); err != nil {
			log.Printf("Error closing AI client: %v", err)
		}
	}
	s.db.Close()
	log.Println("Server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-User-ID")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting keyed on the owner header, falling back
// to the remote address for unidentified clients.
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := r.Header.Get(ownerHeader)
		if clientID == "" {
			clientID = r.RemoteAddr
		}

		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)
		if info.Limit > 0 {
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
		}
		if !allowed {
			w.Header().Set("Retry-After", strconv.Itoa(int(info.RetryAfter.Seconds())+1))
			s.errorResponse(w, http.StatusTooManyRequests, "rate limit exceeded")
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
