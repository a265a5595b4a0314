// Package server wires the application together: it owns the router, the
// store connection, and the lifecycle. main.go hands it a Config and calls
// Start; everything else is composed here.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/sakif/exercise-tracker/internal/handler"
	"github.com/sakif/exercise-tracker/internal/middleware"
	"github.com/sakif/exercise-tracker/internal/repository/mongodb"
	"github.com/sakif/exercise-tracker/internal/service"
)

// connectTimeout bounds the initial store connection; an unreachable
// database fails startup within this window rather than hanging.
const connectTimeout = 10 * time.Second

// shutdownTimeout is how long in-flight requests get to drain.
const shutdownTimeout = 30 * time.Second

// Config holds server configuration, assembled in main.go from the
// environment.
type Config struct {
	Port        int
	TemplateDir string
	StaticDir   string
	MongoURI    string
	MongoDB     string
}

// Server is the HTTP server and its dependencies. It owns the store
// connection and closes it on shutdown.
type Server struct {
	router *chi.Mux
	config Config
	logger *slog.Logger
	db     *mongodb.DB
}

// New connects to the store and assembles the dependency chain:
// mongodb.DB → UserService → UserHandler → routes. Each layer receives
// only what it needs; the handler never sees the database.
func New(cfg Config, logger *slog.Logger) (*Server, error) {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	db, err := mongodb.New(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		return nil, fmt.Errorf("connecting to store: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		db:     db,
	}

	if err := s.setupRoutes(); err != nil {
		s.closeDB()
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	return s, nil
}

// setupRoutes configures middleware and all route handlers.
//
// Routes:
//
//	GET  /                           → landing page
//	GET  /static/*                   → static assets
//	POST /api/users                  → create-or-fetch user
//	GET  /api/users                  → list users
//	POST /api/users/{id}/exercises   → log an exercise
//	GET  /api/users/{id}/logs        → filtered exercise log
func (s *Server) setupRoutes() error {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	fileServer := http.FileServer(http.Dir(s.config.StaticDir))
	s.router.Handle("/static/*", http.StripPrefix("/static/", fileServer))

	homeHandler, err := handler.NewHomeHandler(s.config.TemplateDir, s.logger)
	if err != nil {
		return fmt.Errorf("creating home handler: %w", err)
	}
	s.router.Get("/", homeHandler.HandleHome)

	userService := service.NewUserService(s.db, s.logger)
	userHandler := handler.NewUserHandler(userService, s.logger)

	s.router.Route("/api", func(r chi.Router) {
		r.Post("/users", userHandler.HandleCreateUser)
		r.Get("/users", userHandler.HandleListUsers)
		r.Post("/users/{id}/exercises", userHandler.HandleAddExercise)
		r.Get("/users/{id}/logs", userHandler.HandleGetLog)
	})

	return nil
}

// Start runs the HTTP server until SIGINT/SIGTERM, then drains in-flight
// requests and closes the store connection.
func (s *Server) Start() error {
	defer s.closeDB()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
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
			slog.Int("port", s.config.Port),
			slog.String("database", s.config.MongoDB),
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

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}

func (s *Server) closeDB() {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	if err := s.db.Close(ctx); err != nil {
		s.logger.Error("failed to close store connection", slog.String("error", err.Error()))
	}
}
