package handlers

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/fpgabadges/badge-api/internal/auth"
	"github.com/fpgabadges/badge-api/internal/ws"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func RegisterRoutes(r *chi.Mux, authHandler *auth.AuthHandler, userHandler *UserHandler, badgeHandler *BadgeHandler, awardHandler *AwardHandler, uploadHandler *UploadHandler, hub *ws.Hub, staticDir string) {
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Initialize Huma API
	config := huma.DefaultConfig("Badge Tracker API", "1.0.0")
	config.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"cookieAuth": {
			Type: "apiKey",
			In:   "cookie",
			Name: auth.SessionCookie,
		},
	}
	api := humachi.New(r, config)

	secured := func(o *huma.Operation) {
		o.Security = []map[string][]string{{"cookieAuth": {}}}
	}

	// Public routes
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir(staticDir))))
	r.Method(http.MethodGet, "/ws", hub)

	huma.Post(api, "/login", userHandler.HandleLogin)
	huma.Post(api, "/register", userHandler.HandleRegister)
	huma.Get(api, "/users", userHandler.HandleListUsers)
	huma.Get(api, "/users/{user_id}/badges", userHandler.HandleUserBadges)
	huma.Get(api, "/badges", badgeHandler.HandleListBadges)
	huma.Get(api, "/badge-details-api/{badge_id}", badgeHandler.HandleBadgeDetails)
	huma.Get(api, "/activity-feed", awardHandler.HandleActivityFeed)

	// Authenticated routes
	huma.Post(api, "/badges/award", awardHandler.HandleAwardBadge, secured)
	huma.Post(api, "/badges/remove", awardHandler.HandleRevokeBadge, secured)

	// Admin routes
	huma.Get(api, "/admin/users", userHandler.HandleAdminListUsers, secured)
	huma.Post(api, "/admin/users/{user_id}/reset-password", userHandler.HandleResetPassword, secured)
	huma.Delete(api, "/admin/users/{user_id}", userHandler.HandleRemoveUser, secured)
	huma.Post(api, "/badges", badgeHandler.HandleCreateBadge, secured)
	huma.Put(api, "/badges/{badge_id}", badgeHandler.HandleUpdateBadge, secured)
	huma.Delete(api, "/badges/{badge_id}", badgeHandler.HandleDeleteBadge, secured)

	// Icon upload is a raw multipart endpoint outside the huma API.
	r.Group(func(r chi.Router) {
		r.Use(authHandler.Middleware)
		r.Method(http.MethodPost, "/upload/badge-image", uploadHandler)
	})
}
