package handlers

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"github.com/fpgabadges/badge-api/internal/auth"
	"github.com/fpgabadges/badge-api/internal/store"
)

type UserHandler struct {
	store       *store.Store
	authHandler *auth.AuthHandler
}

func NewUserHandler(store *store.Store, authHandler *auth.AuthHandler) *UserHandler {
	return &UserHandler{store: store, authHandler: authHandler}
}

type LoginRequest struct {
	Body struct {
		Username string `json:"username" doc:"Username" required:"true"`
		Password string `json:"password" doc:"Password" required:"true"`
	}
}

type LoginResponse struct {
	SetCookie string `header:"Set-Cookie"`
	Body      struct {
		Success     bool   `json:"success"`
		UserID      string `json:"user_id"`
		Username    string `json:"username"`
		DisplayName string `json:"display_name"`
		Role        string `json:"role"`
	}
}

func (h *UserHandler) HandleLogin(ctx context.Context, input *LoginRequest) (*LoginResponse, error) {
	user, err := h.store.Authenticate(input.Body.Username, input.Body.Password)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, huma.Error401Unauthorized("Invalid credentials")
		}
		return nil, huma.Error500InternalServerError("Failed to authenticate: " + err.Error())
	}

	token, err := h.authHandler.GenerateToken(user.ID)
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to generate token")
	}

	res := &LoginResponse{SetCookie: h.authHandler.SessionCookieValue(token)}
	res.Body.Success = true
	res.Body.UserID = user.ID
	res.Body.Username = user.Username
	res.Body.DisplayName = user.DisplayName
	res.Body.Role = user.Role
	return res, nil
}

type RegisterRequest struct {
	Body struct {
		Username    string `json:"username" doc:"Unique username" required:"true"`
		Password    string `json:"password" doc:"Password" required:"true"`
		Email       string `json:"email,omitempty" doc:"Email address"`
		DisplayName string `json:"display_name,omitempty" doc:"Display name, defaults to username"`
	}
}

type RegisterResponse struct {
	Body struct {
		Success bool   `json:"success"`
		UserID  string `json:"user_id"`
	}
}

func (h *UserHandler) HandleRegister(ctx context.Context, input *RegisterRequest) (*RegisterResponse, error) {
	user, err := h.store.Register(input.Body.Username, input.Body.Password, input.Body.Email, input.Body.DisplayName)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrDuplicateUsername):
			return nil, huma.Error400BadRequest("Username already exists")
		case errors.Is(err, store.ErrValidation):
			return nil, huma.Error400BadRequest("Username and password are required")
		default:
			return nil, huma.Error500InternalServerError("Failed to register: " + err.Error())
		}
	}

	res := &RegisterResponse{}
	res.Body.Success = true
	res.Body.UserID = user.ID
	return res, nil
}

// UserSummary is the public projection of a user record.
type UserSummary struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
}

type ListUsersResponse struct {
	Body []UserSummary
}

func (h *UserHandler) HandleListUsers(ctx context.Context, input *struct{}) (*ListUsersResponse, error) {
	users, err := h.store.ListUsers()
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to list users")
	}

	summaries := make([]UserSummary, 0, len(users))
	for _, u := range users {
		summaries = append(summaries, UserSummary{
			ID:          u.ID,
			Username:    u.Username,
			DisplayName: u.DisplayName,
		})
	}
	return &ListUsersResponse{Body: summaries}, nil
}

// AdminUser adds the administrative fields to the public projection. The
// password hash stays server-side.
type AdminUser struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
	Role        string `json:"role"`
}

type AdminListUsersRequest struct {
	auth.AuthInput
}

type AdminListUsersResponse struct {
	Body []AdminUser
}

func (h *UserHandler) HandleAdminListUsers(ctx context.Context, input *AdminListUsersRequest) (*AdminListUsersResponse, error) {
	if _, err := h.authHandler.RequireAdmin(ctx, input.Cookie); err != nil {
		return nil, err
	}

	users, err := h.store.ListUsers()
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to list users")
	}

	result := make([]AdminUser, 0, len(users))
	for _, u := range users {
		result = append(result, AdminUser{
			ID:          u.ID,
			Username:    u.Username,
			DisplayName: u.DisplayName,
			Email:       u.Email,
			Role:        u.Role,
		})
	}
	return &AdminListUsersResponse{Body: result}, nil
}

type ResetPasswordRequest struct {
	auth.AuthInput
	UserID string `path:"user_id"`
	Body   struct {
		Password string `json:"password" doc:"New password" required:"true"`
	}
}

type MessageResponse struct {
	Body struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
}

func (h *UserHandler) HandleResetPassword(ctx context.Context, input *ResetPasswordRequest) (*MessageResponse, error) {
	if _, err := h.authHandler.RequireAdmin(ctx, input.Cookie); err != nil {
		return nil, err
	}

	if err := h.store.ResetPassword(input.UserID, input.Body.Password); err != nil {
		switch {
		case errors.Is(err, store.ErrValidation):
			return nil, huma.Error400BadRequest("Password is required")
		case errors.Is(err, store.ErrNotFound):
			return nil, huma.Error404NotFound("User not found")
		default:
			return nil, huma.Error500InternalServerError("Failed to reset password: " + err.Error())
		}
	}

	res := &MessageResponse{}
	res.Body.Success = true
	res.Body.Message = "Password updated successfully"
	return res, nil
}

type RemoveUserRequest struct {
	auth.AuthInput
	UserID string `path:"user_id"`
}

func (h *UserHandler) HandleRemoveUser(ctx context.Context, input *RemoveUserRequest) (*MessageResponse, error) {
	if _, err := h.authHandler.RequireAdmin(ctx, input.Cookie); err != nil {
		return nil, err
	}

	if err := h.store.RemoveUser(input.UserID); err != nil {
		switch {
		case errors.Is(err, store.ErrForbidden):
			return nil, huma.Error400BadRequest("Cannot remove administrator accounts")
		case errors.Is(err, store.ErrNotFound):
			return nil, huma.Error404NotFound("User not found")
		default:
			return nil, huma.Error500InternalServerError("Failed to remove user: " + err.Error())
		}
	}

	res := &MessageResponse{}
	res.Body.Success = true
	res.Body.Message = "User removed successfully"
	return res, nil
}

type UserBadgesRequest struct {
	UserID string `path:"user_id"`
}

type UserBadgesResponse struct {
	Body []store.BadgeWithCount
}

func (h *UserHandler) HandleUserBadges(ctx context.Context, input *UserBadgesRequest) (*UserBadgesResponse, error) {
	badges, err := h.store.UserBadges(input.UserID)
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to load user badges")
	}
	return &UserBadgesResponse{Body: badges}, nil
}
