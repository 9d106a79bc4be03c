package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cluetrainer/internal/abbrev"
	"cluetrainer/internal/config"
	"cluetrainer/internal/database"
	"cluetrainer/internal/handlers"
	"cluetrainer/internal/repository"
	"cluetrainer/internal/security"
	"cluetrainer/internal/service"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database with config (supports sqlite, postgres, mysql)
	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	log.Printf("Database connection established (type: %s)", cfg.DatabaseType)

	// Run migrations
	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Migrations completed successfully")

	// Load the abbreviation dataset
	dataset, err := abbrev.LoadDataset(cfg.AbbreviationsPath)
	if err != nil {
		log.Printf("Warning: Failed to load abbreviations from %s: %v", cfg.AbbreviationsPath, err)
		dataset = &abbrev.Dataset{}
	} else {
		log.Printf("Loaded %d abbreviation entries", len(dataset.Entries))
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	clueRepo := repository.NewClueRepository(db)
	attemptRepo := repository.NewAttemptRepository(db)
	savedClueRepo := repository.NewSavedClueRepository(db)

	// Initialize services
	tokens := security.NewTokenIssuer(cfg.JWTSecret, cfg.TokenLifetime)
	authService := service.NewAuthService(userRepo, tokens)
	clueService := service.NewClueService(clueRepo)
	statsService := service.NewStatsService(attemptRepo)

	emailService, err := service.NewEmailService(cfg.AWSRegion, cfg.SESFromEmail, cfg.SESFromName, cfg.AppBaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize email service: %v", err)
	}

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, emailService)
	clueHandler := handlers.NewClueHandler(clueService)
	statsHandler := handlers.NewStatsHandler(statsService)
	savedClueHandler := handlers.NewSavedClueHandler(savedClueRepo)
	abbreviationHandler := handlers.NewAbbreviationHandler(dataset)

	loginLimiter := security.NewRateLimiter(10, time.Minute)

	// Setup routes
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Auth routes
	mux.HandleFunc("POST /api/auth/register", handlers.RateLimit(loginLimiter, authHandler.Register))
	mux.HandleFunc("POST /api/auth/login", handlers.RateLimit(loginLimiter, authHandler.Login))
	mux.HandleFunc("GET /api/auth/me", handlers.RequireAuth(authService, authHandler.Me))
	mux.HandleFunc("POST /api/auth/logout", authHandler.Logout)
	mux.HandleFunc("POST /api/auth/forgot-password", handlers.RateLimit(loginLimiter, authHandler.ForgotPassword))
	mux.HandleFunc("POST /api/auth/reset-password", handlers.RateLimit(loginLimiter, authHandler.ResetPassword))

	// Clue routes
	mux.HandleFunc("GET /api/clues/types", clueHandler.Types)
	mux.HandleFunc("GET /api/clues/random", clueHandler.Random)
	mux.HandleFunc("GET /api/clues/by-id", clueHandler.ByID)
	mux.HandleFunc("POST /api/clues/check", clueHandler.Check)
	mux.HandleFunc("POST /api/clues/hint", clueHandler.Hint)
	mux.HandleFunc("POST /api/clues/letter-hint", clueHandler.LetterHint)

	// Protected stats routes
	mux.HandleFunc("POST /api/stats/attempt", handlers.RequireAuth(authService, statsHandler.RecordAttempt))
	mux.HandleFunc("GET /api/stats/summary", handlers.RequireAuth(authService, statsHandler.Summary))
	mux.HandleFunc("GET /api/stats/history", handlers.RequireAuth(authService, statsHandler.History))

	// Protected saved-clue routes
	mux.HandleFunc("POST /api/saved-clues", handlers.RequireAuth(authService, savedClueHandler.Save))
	mux.HandleFunc("GET /api/saved-clues", handlers.RequireAuth(authService, savedClueHandler.List))
	mux.HandleFunc("DELETE /api/saved-clues/{clueRowid}", handlers.RequireAuth(authService, savedClueHandler.Delete))

	// Abbreviation routes
	mux.HandleFunc("GET /api/abbreviations", abbreviationHandler.List)

	// Wrap with CORS and logging middleware
	handler := handlers.Logging(handlers.CORS(mux))

	// Start server
	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start background reset-token cleanup
	go cleanupExpiredResetTokens(authService)

	// Graceful shutdown
	go func() {
		log.Printf("Server starting on http://localhost%s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}
}

// cleanupExpiredResetTokens periodically removes expired password
// reset tokens
func cleanupExpiredResetTokens(authService *service.AuthService) {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		if err := authService.CleanupExpiredPasswordResetTokens(); err != nil {
			log.Printf("Error cleaning up expired reset tokens: %v", err)
		}
	}
}
