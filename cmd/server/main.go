package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pathfinder-backend/internal/config"
	"pathfinder-backend/internal/handlers"
	"pathfinder-backend/internal/router"
	"pathfinder-backend/internal/services"
	"pathfinder-backend/internal/upstream"
)

func main() {
	log.Println("🚀 Starting Pathfinder Backend...")

	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()
	log.Println("✓ Environment variables loaded")

	if cfg.GeminiAPIKey == "" {
		// Degraded mode: every AI request will fail with a
		// configuration error until the key is provided.
		log.Println("⚠ GEMINI_API_KEY is not set; AI requests will fail until it is configured")
	}

	// ──── Step 2: Initialize Gemini Client ────
	geminiClient := upstream.NewClient(cfg.GeminiBaseURL, cfg.GeminiModel, cfg.GeminiAPIKey)
	log.Printf("✓ Gemini client initialized (model %s)", cfg.GeminiModel)

	// ──── Step 3: Initialize Service & Handlers ────
	advisor := services.NewAdvisorService(geminiClient)
	recommendationHandler := handlers.NewRecommendationHandler(advisor)
	chatHandler := handlers.NewChatHandler(advisor)

	// ──── Step 4: Start HTTP Server ────
	r := router.New(recommendationHandler, chatHandler, cfg.StaticDir, cfg.FrontendURL)

	server := &http.Server{
		Addr:        fmt.Sprintf(":%s", cfg.Port),
		Handler:     r,
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
		// No WriteTimeout: the chat path has no upstream deadline and
		// may legitimately hold a response open.
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	log.Printf("✓ Pathfinder Backend ready on http://localhost:%s", cfg.Port)
	log.Printf("  API: http://localhost:%s/api", cfg.Port)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
}
