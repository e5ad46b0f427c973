// Package api exposes the test and chat services over HTTP.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/abhisek/mcqgenie/internal/quiz"
)

// TestService is the test lifecycle used by the handlers.
type TestService interface {
	Generate(ctx context.Context, req quiz.GenerationRequest) (quiz.PublicTest, error)
	Details(ctx context.Context, id string) (quiz.PublicTest, error)
	Submit(ctx context.Context, id string, answers []quiz.AnswerSubmission) (quiz.TestResult, error)
	Result(ctx context.Context, id string) (quiz.TestResult, error)
	Status(ctx context.Context, id string) (quiz.TestStatus, error)
	History(ctx context.Context, limit int) ([]quiz.TestSummary, error)
}

// ChatService is the chat surface used by the handlers.
type ChatService interface {
	Send(ctx context.Context, sessionID, message string) (quiz.ChatReply, error)
	History(ctx context.Context, sessionID string) ([]quiz.ChatMessage, error)
	NewSession(ctx context.Context) (string, error)
	Exists(ctx context.Context, sessionID string) (bool, error)
}

// Deps holds everything the router needs.
type Deps struct {
	Tests TestService
	Chat  ChatService

	// Ping reports database health for /health. Nil means always healthy.
	Ping func(ctx context.Context) error

	// DefaultCount is used when a generate request omits num_questions.
	DefaultCount int

	CORSOrigins []string
	Version     string
}

// NewRouter builds the HTTP handler.
func NewRouter(d Deps) http.Handler {
	if d.DefaultCount <= 0 {
		d.DefaultCount = 10
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   d.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/", rootHandler(d.Version))
	r.Get("/health", healthHandler(d.Ping))

	r.Route("/api/test", func(tr chi.Router) {
		tr.Post("/generate", generateHandler(d.Tests, d.DefaultCount))
		tr.Post("/submit", submitHandler(d.Tests))
		tr.Get("/history", historyHandler(d.Tests))
		tr.Get("/{testID}", detailsHandler(d.Tests))
		tr.Get("/{testID}/result", resultHandler(d.Tests))
		tr.Get("/{testID}/status", statusHandler(d.Tests))
	})

	r.Route("/api/chat", func(cr chi.Router) {
		cr.Post("/message", chatMessageHandler(d.Chat))
		cr.Get("/history/{sessionID}", chatHistoryHandler(d.Chat))
		cr.Post("/session/new", newChatSessionHandler(d.Chat))
		cr.Get("/session/{sessionID}/exists", chatSessionExistsHandler(d.Chat))
	})

	return r
}

func rootHandler(version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]any{
			"message": "Welcome to MCQ Genie",
			"version": version,
			"status":  "running",
			"endpoints": map[string]string{
				"chat": "/api/chat",
				"test": "/api/test",
			},
		})
	}
}

func healthHandler(ping func(ctx context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status, code, db := "healthy", http.StatusOK, "connected"
		if ping != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := ping(ctx); err != nil {
				status, code, db = "unhealthy", http.StatusServiceUnavailable, "disconnected"
			}
		}
		respondJSON(w, code, map[string]string{
			"status":    status,
			"database":  db,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	}
}
