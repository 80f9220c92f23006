package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/fpgabadges/badge-api/internal/auth"
	"github.com/fpgabadges/badge-api/internal/config"
	"github.com/fpgabadges/badge-api/internal/handlers"
	"github.com/fpgabadges/badge-api/internal/notifier"
	"github.com/fpgabadges/badge-api/internal/store"
	"github.com/fpgabadges/badge-api/internal/ws"
	"github.com/go-chi/chi/v5"
)

func main() {
	// Load Configuration
	cfg := config.LoadConfig()

	// Open the badge store and make sure the default admin and badge exist
	badgeStore, err := store.Open(cfg.DataDir, cfg.StaticDir)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	if err := badgeStore.Bootstrap(cfg.AdminUsername, cfg.AdminPassword); err != nil {
		log.Fatalf("Failed to bootstrap store: %v", err)
	}

	// Initialize Handlers
	var awardNotifier notifier.Notifier
	if n, err := notifier.NewDiscordNotifier(cfg); err != nil {
		log.Printf("Discord notifier not initialized: %v", err)
	} else {
		awardNotifier = n
	}

	hub := ws.NewHub()
	authHandler := auth.NewAuthHandler(cfg, badgeStore)
	userHandler := handlers.NewUserHandler(badgeStore, authHandler)
	badgeHandler := handlers.NewBadgeHandler(badgeStore, authHandler)
	awardHandler := handlers.NewAwardHandler(badgeStore, authHandler, hub, awardNotifier)
	uploadHandler := handlers.NewUploadHandler(badgeStore, cfg.StaticDir)

	// Initialize Router
	r := chi.NewRouter()

	// Register Routes
	handlers.RegisterRoutes(r, authHandler, userHandler, badgeHandler, awardHandler, uploadHandler, hub, cfg.StaticDir)

	// Start Server
	log.Printf("Starting server on port %s", cfg.Port)
	if err := http.ListenAndServe(fmt.Sprintf(":%s", cfg.Port), r); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
