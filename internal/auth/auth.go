package auth

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/fpgabadges/badge-api/internal/config"
	"github.com/fpgabadges/badge-api/internal/models"
	"github.com/fpgabadges/badge-api/internal/store"
	"github.com/golang-jwt/jwt/v5"
)

const (
	// SessionCookie is the name of the JWT session cookie.
	SessionCookie = "auth_token"

	// TokenDuration is how long a session token stays valid.
	TokenDuration = 24 * time.Hour
)

type AuthHandler struct {
	cfg   *config.Config
	store *store.Store
}

func NewAuthHandler(cfg *config.Config, store *store.Store) *AuthHandler {
	return &AuthHandler{cfg: cfg, store: store}
}

// AuthInput is embedded in huma request structs for authenticated
// operations; it captures the raw Cookie header for Authorize.
type AuthInput struct {
	Cookie string `header:"Cookie" doc:"Session cookie" required:"false"`
}

// GenerateToken signs a session token for the given user id.
func (h *AuthHandler) GenerateToken(userID string) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(TokenDuration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.cfg.JWTSecret))
}

// SessionCookieValue formats a Set-Cookie header value for a fresh token.
func (h *AuthHandler) SessionCookieValue(token string) string {
	c := http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Expires:  time.Now().Add(TokenDuration),
		HttpOnly: true,
		Path:     "/",
	}
	return c.String()
}

func (h *AuthHandler) parseToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(h.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return "", fmt.Errorf("invalid token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", fmt.Errorf("invalid token claims")
	}
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", fmt.Errorf("invalid token claims")
	}
	return userID, nil
}

// Authorize extracts and validates the session token from a raw Cookie
// header and returns the authenticated user id.
func (h *AuthHandler) Authorize(ctx context.Context, cookieHeader string) (string, error) {
	if cookieHeader == "" {
		return "", huma.Error401Unauthorized("No token found")
	}
	// Reuse net/http's cookie parsing on the raw header.
	req := http.Request{Header: http.Header{"Cookie": []string{cookieHeader}}}
	cookie, err := req.Cookie(SessionCookie)
	if err != nil {
		return "", huma.Error401Unauthorized("No token found")
	}
	userID, err := h.parseToken(cookie.Value)
	if err != nil {
		return "", huma.Error401Unauthorized("Invalid token")
	}
	return userID, nil
}

// AuthorizeUser is Authorize plus a lookup of the caller's record.
func (h *AuthHandler) AuthorizeUser(ctx context.Context, cookieHeader string) (*models.User, error) {
	userID, err := h.Authorize(ctx, cookieHeader)
	if err != nil {
		return nil, err
	}
	user, err := h.store.GetUser(userID)
	if err != nil {
		return nil, huma.Error401Unauthorized("Unknown user")
	}
	return user, nil
}

// RequireAdmin authorizes the caller and rejects non-admin roles.
func (h *AuthHandler) RequireAdmin(ctx context.Context, cookieHeader string) (*models.User, error) {
	user, err := h.AuthorizeUser(ctx, cookieHeader)
	if err != nil {
		return nil, err
	}
	if !user.IsAdmin() {
		return nil, huma.Error403Forbidden("Administrator access required")
	}
	return user, nil
}
