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

	"github.com/redis/go-redis/v9"

	"github.com/karim/wadhifa/internal/config"
	"github.com/karim/wadhifa/internal/db"
	"github.com/karim/wadhifa/internal/draft"
	"github.com/karim/wadhifa/internal/server/middleware"
)

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	db          *db.DB
	drafts      *draft.Store
	jwtService  *JWTService
	userService *UserService
	authHandler *AuthHandler
}

// Config holds server configuration
type Config struct {
	Port        int
	DatabaseURL string
	RedisURL    string
}

// New creates a new server instance
func New(cfg Config) (*Server, error) {
	// Connect to database
	database, err := db.Connect(context.Background(), cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	s := &Server{db: database}

	// Draft storage: Redis when configured, in-memory otherwise. Drafts are
	// best effort, so a missing backend is not fatal.
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("failed to parse redis URL: %w", err)
		}
		s.drafts = draft.NewStore(draft.NewRedisKV(redis.NewClient(opts)))
	} else {
		log.Println("REDIS_URL not set, drafts will not survive restarts")
		s.drafts = draft.NewStore(draft.NewMemoryKV())
	}

	// Initialize authentication services
	passwordConfig, err := config.NewPasswordConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create password config: %w", err)
	}
	s.userService = NewUserService(database, passwordConfig)

	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT config: %w", err)
	}
	s.jwtService = NewJWTService(jwtConfig)
	s.authHandler = NewAuthHandler(s.userService, s.jwtService)

	requireAuth := middleware.RequireAuth(s.jwtService.ValidateToken)
	optionalAuth := middleware.OptionalAuth(s.jwtService.ValidateToken)

	// Setup router
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)

	// Authentication endpoints
	mux.HandleFunc("POST /auth/register", s.authHandler.Register)
	mux.HandleFunc("POST /auth/login", s.authHandler.Login)

	// Job board endpoints. Listing works anonymously but scores jobs when a
	// signed-in user has a profile.
	mux.Handle("GET /jobs", optionalAuth(http.HandlerFunc(s.handleListJobs)))
	mux.HandleFunc("GET /jobs/suggest", s.handleSuggestTitles)
	mux.HandleFunc("GET /jobs/{id}", s.handleGetJob)

	// Submission endpoints
	mux.Handle("POST /jobs/{id}/apply", requireAuth(http.HandlerFunc(s.handleApply)))
	mux.Handle("POST /jobs/{id}/save", requireAuth(http.HandlerFunc(s.handleToggleSave)))
	mux.HandleFunc("GET /companies/{id}/reviews", s.handleListReviews)
	mux.Handle("POST /companies/{id}/reviews", requireAuth(http.HandlerFunc(s.handleSubmitReview)))
	mux.Handle("POST /reviews/{id}/helpful", requireAuth(http.HandlerFunc(s.handleToggleHelpful)))

	// Per-user state
	mux.Handle("GET /me/jobs", requireAuth(http.HandlerFunc(s.handleMyJobs)))
	mux.Handle("GET /profile", requireAuth(http.HandlerFunc(s.handleGetProfile)))
	mux.Handle("PUT /profile", requireAuth(http.HandlerFunc(s.handleUpsertProfile)))

	// Draft endpoints
	mux.Handle("GET /drafts/{flow}/{entity_id}", requireAuth(http.HandlerFunc(s.handleGetDraft)))
	mux.Handle("PUT /drafts/{flow}/{entity_id}", requireAuth(http.HandlerFunc(s.handlePutDraft)))
	mux.Handle("DELETE /drafts/{flow}/{entity_id}", requireAuth(http.HandlerFunc(s.handleDeleteDraft)))

	// Create HTTP server
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withLogging(s.withCORS(mux)),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Start begins listening for requests
func (s *Server) Start() error {
	// Graceful shutdown
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

	s.db.Close()
	log.Println("Server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

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
