// Package main initializes and starts the TodoKeeper HTTP server,
// setting up configuration, logging, the database connection,
// repositories, services, and handlers.
package main

import (
	"context"
	"time"

	nethttp "net/http"

	"github.com/ameleshko/TodoKeeper/internal/config"
	"github.com/ameleshko/TodoKeeper/internal/db"
	"github.com/ameleshko/TodoKeeper/internal/logger"
	"github.com/ameleshko/TodoKeeper/internal/middleware"
	"github.com/ameleshko/TodoKeeper/internal/repository"
	"github.com/ameleshko/TodoKeeper/internal/server/handler/http"
	"github.com/ameleshko/TodoKeeper/internal/service"
	"github.com/ameleshko/TodoKeeper/internal/token"
	"go.uber.org/zap"
)

func main() {
	// Parse command-line and environment configuration.
	options := config.Parse()

	// Initialize structured logging.
	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init("Info"); err != nil {
		log.Log.Fatal("failed to init logger", zap.Error(err))
	}
	zapLogger := log.Log

	// The signing secret must come from the environment or config file.
	if options.JWTSecret == "" {
		zapLogger.Fatal("JWT_SECRET is not configured")
	}

	// Initialize PostgreSQL connection and schema.
	postgresDB, err := db.InitPostgres(options.DatabaseDSN)
	if err != nil {
		zapLogger.Fatal("cannot init database", zap.Error(err))
	}

	// Purge expired token revocations in the background.
	db.StartRevokedTokenCleaner(context.Background(), postgresDB,
		time.Hour, // interval
		zapLogger,
	)

	// Initialize repositories for authentication and todos.
	authRepo := repository.NewPostgresAuthRepository(postgresDB)
	todoRepo := repository.NewPostgresTodoRepository(postgresDB)

	// Initialize the token service and business-logic services.
	tokens := token.New([]byte(options.JWTSecret), options.TokenTTL)
	authService := service.NewAuthService(authRepo, tokens)
	todoService := service.NewTodoService(todoRepo)

	// Create HTTP handlers for auth and todo endpoints.
	authHandler := &http.AuthHandler{AuthService: authService, Log: zapLogger}
	todoHandler := &http.TodoHandler{TodoService: todoService, Log: zapLogger}

	// Build the router with middleware and routes.
	authMiddleware := middleware.Auth(tokens, authService, zapLogger)
	router := http.NewRouter(authHandler, todoHandler, authMiddleware, zapLogger)

	// Create and start the HTTP server.
	server := &nethttp.Server{
		Addr:    options.Port,
		Handler: router,
	}

	zapLogger.Info("starting HTTP server", zap.String("addr", options.Port))
	if err := server.ListenAndServe(); err != nil {
		zapLogger.Fatal("failed to start HTTP server", zap.Error(err))
	}
}
