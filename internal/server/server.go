// Package server wires the application together: it is the composition root
// where the database, services, handlers, and middleware are assembled and
// bound to routes, and it owns the HTTP server lifecycle.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sakif/taskboard/internal/auth"
	"github.com/sakif/taskboard/internal/config"
	"github.com/sakif/taskboard/internal/handler"
	"github.com/sakif/taskboard/internal/middleware"
	sqliteRepo "github.com/sakif/taskboard/internal/repository/sqlite"
	"github.com/sakif/taskboard/internal/service"
)

// Server holds the router and the resources it owns. The database handle is
// closed during shutdown, after in-flight requests drain.
type Server struct {
	router *chi.Mux
	cfg    *config.Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New assembles the full dependency graph:
//
//	sqlite.DB → AuthService/UserService/TaskService → handlers → routes
//
// Handlers never see the concrete DB; services receive the repository
// interfaces it implements.
func New(cfg *config.Config, logger *slog.Logger) (*Server, error) {
	db, err := sqliteRepo.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		cfg:    cfg,
		logger: logger,
		db:     db,
	}

	if err := s.setupRoutes(); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	return s, nil
}

// setupRoutes binds middleware and the route table.
//
// ROUTE TABLE:
//
//	GET    /users            public  — all users with nested tasks
//	POST   /register         public
//	POST   /login            public
//	GET    /metrics          public  — Prometheus exposition
//	GET    /auth/github/*    public  — only when OAuth is configured
//	GET    /user/{id}        gated   — id must equal token identity
//	PUT    /user/{id}        gated   — ditto
//	DELETE /user/{id}        gated   — ditto
//	GET    /tasks            gated
//	POST   /tasks            gated
//	PUT    /task/{id}        gated
//	DELETE /task/{id}        gated
//
// Anything else — unknown path OR known path with the wrong method — answers
// 400 {"error":"this router is not exists"}, the contract's catch-all.
func (s *Server) setupRoutes() error {
	tokens, err := auth.NewTokenService(s.cfg.JWTSecret)
	if err != nil {
		return fmt.Errorf("creating token service: %w", err)
	}
	passwords := auth.NewPasswordService()

	authSvc := service.NewAuthService(s.db.Users(), tokens, passwords, s.logger)
	userSvc := service.NewUserService(s.db.Users(), passwords, s.logger)
	taskSvc := service.NewTaskService(s.db.Tasks(), s.db.Users(), s.logger)

	var github *auth.GitHubProvider
	if s.cfg.GitHub.ClientID != "" {
		callback := s.cfg.GitHub.CallbackURL
		if callback == "" {
			callback = fmt.Sprintf("http://localhost:%d/auth/github/callback", s.cfg.Port)
		}
		github = auth.NewGitHubProvider(s.cfg.GitHub.ClientID, s.cfg.GitHub.ClientSecret, callback)
	}

	authHandler := handler.NewAuthHandler(authSvc, github, s.logger)
	userHandler := handler.NewUserHandler(userSvc, s.logger)
	taskHandler := handler.NewTaskHandler(taskSvc, s.logger)

	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))
	s.router.Use(middleware.Metrics())

	s.router.NotFound(unknownRoute)
	s.router.MethodNotAllowed(unknownRoute)

	// Public surface
	s.router.Get("/users", userHandler.HandleList)
	s.router.Post("/register", authHandler.HandleRegister)
	s.router.Post("/login", authHandler.HandleLogin)
	s.router.Handle("/metrics", promhttp.Handler())

	if github != nil {
		s.router.Get("/auth/github/login", authHandler.HandleGitHubLogin)
		s.router.Get("/auth/github/callback", authHandler.HandleGitHubCallback)
	} else {
		s.logger.Warn("GITHUB_CLIENT_ID not set — GitHub login routes disabled")
	}

	// Gated surface
	s.router.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth(tokens))

		r.Get("/user/{id}", userHandler.HandleGet)
		r.Put("/user/{id}", userHandler.HandleUpdate)
		r.Delete("/user/{id}", userHandler.HandleDelete)

		r.Get("/tasks", taskHandler.HandleList)
		r.Post("/tasks", taskHandler.HandleCreate)
		r.Put("/task/{id}", taskHandler.HandleUpdate)
		r.Delete("/task/{id}", taskHandler.HandleDelete)
	})

	return nil
}

// unknownRoute is the catch-all for unmatched paths and methods. 400, not
// 404 — consistent with the rest of the error surface.
func unknownRoute(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	json.NewEncoder(w).Encode(map[string]string{"error": "this router is not exists"})
}

// Router exposes the assembled handler, mainly for httptest-based tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// Start runs the HTTP server until SIGINT/SIGTERM, then shuts down
// gracefully: stop accepting, drain in-flight requests (30s budget), close
// the database so the WAL is flushed.
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.cfg.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.cfg.Port),
			slog.String("database", s.cfg.DBPath),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
