package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/jonathan/resume-studio/internal/ai"
	"github.com/jonathan/resume-studio/internal/compile"
	"github.com/jonathan/resume-studio/internal/config"
	"github.com/jonathan/resume-studio/internal/server/middleware"
	"github.com/jonathan/resume-studio/internal/session"
	"github.com/jonathan/resume-studio/internal/store"
)

// Server exposes one generation session over REST.
type Server struct {
	httpServer *http.Server
	session    *session.Session
	previewer  *session.Previewer
	ai         ai.Client
	validate   *validator.Validate
	logger     *zap.Logger
}

// Config holds server wiring.
type Config struct {
	Port        int
	AuthEnabled bool
	AI          ai.Client
	Compiler    compile.Compiler
	Store       store.Store
	Logger      *zap.Logger
}

// New creates a server instance, restoring any fresh cached session.
func New(cfg Config) (*Server, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	sess := session.New(context.Background(), cfg.Store, logger)
	if restored, err := sess.Restore(context.Background()); err != nil {
		logger.Warn("session cache unavailable", zap.Error(err))
	} else if restored {
		logger.Info("restored cached session")
	}

	s := &Server{
		session:   sess,
		previewer: session.NewPreviewer(cfg.Compiler, logger),
		ai:        cfg.AI,
		validate:  validator.New(),
		logger:    logger,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)

	mux.HandleFunc("POST /generate", s.handleGenerate)
	mux.HandleFunc("GET /session", s.handleGetSession)
	mux.HandleFunc("POST /session/variation", s.handleSelectVariation)
	mux.HandleFunc("DELETE /session", s.handleClearSession)

	mux.HandleFunc("POST /layout/reorder", s.handleReorder)
	mux.HandleFunc("POST /layout/visibility", s.handleToggleVisibility)
	mux.HandleFunc("POST /layout/formatting", s.handleSetFormatting)
	mux.HandleFunc("POST /layout/reset", s.handleResetLayout)

	mux.HandleFunc("POST /sections/{section}/regenerate", s.handleRegenerateSection)

	mux.HandleFunc("POST /bullets/text", s.handleSetBulletText)
	mux.HandleFunc("DELETE /bullets/text", s.handleClearBulletText)
	mux.HandleFunc("POST /bullets/order", s.handleSetBulletOrder)
	mux.HandleFunc("POST /bullets/bulk-replace", s.handleBulkReplace)

	mux.HandleFunc("POST /experiences/{id}/phrasings", s.handlePhrasings)
	mux.HandleFunc("POST /experiences/{id}/bullets/{index}/regenerate", s.handleRegenerateBullet)

	mux.HandleFunc("GET /templates", s.handleListTemplates)
	mux.HandleFunc("POST /templates", s.handleSaveTemplate)
	mux.HandleFunc("POST /templates/{id}/apply", s.handleApplyTemplate)
	mux.HandleFunc("DELETE /templates/{id}", s.handleDeleteTemplate)

	mux.HandleFunc("GET /document", s.handleGetDocument)
	mux.HandleFunc("GET /render", s.handleGetRender)
	mux.HandleFunc("GET /preview", s.handleGetPreview)
	mux.HandleFunc("POST /preview/refresh", s.handleRefreshPreview)

	var handler http.Handler = mux
	if cfg.AuthEnabled {
		jwtConfig, err := config.NewJWTConfig()
		if err != nil {
			return nil, fmt.Errorf("failed to create JWT config: %w", err)
		}
		handler = middleware.Auth(NewJWTService(jwtConfig).AsTokenValidator())(handler)
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withLogging(s.withCORS(handler)),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Handler returns the root handler. Test hook.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start listens until interrupted, then shuts down gracefully.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		s.logger.Info("server starting", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Fatal("server error", zap.Error(err))
		}
	}()

	<-stop
	s.logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.previewer.Wait()
	if err := s.session.Persist(context.Background()); err != nil {
		s.logger.Warn("failed to persist session on shutdown", zap.Error(err))
	}
	s.logger.Info("server stopped")
	return nil
}

// withCORS adds CORS headers.
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("duration", time.Since(start)))
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response.
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("failed to encode JSON response", zap.Error(err))
	}
}

// errorResponse writes an error JSON response.
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// afterMutation refreshes the derived preview and persists the session.
func (s *Server) afterMutation(ctx context.Context) {
	s.previewer.Submit(s.session.Document())
	if err := s.session.Persist(ctx); err != nil {
		s.logger.Warn("failed to persist session", zap.Error(err))
	}
}
