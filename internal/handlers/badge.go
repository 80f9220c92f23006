package handlers

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"github.com/fpgabadges/badge-api/internal/auth"
	"github.com/fpgabadges/badge-api/internal/models"
	"github.com/fpgabadges/badge-api/internal/store"
)

type BadgeHandler struct {
	store       *store.Store
	authHandler *auth.AuthHandler
}

func NewBadgeHandler(store *store.Store, authHandler *auth.AuthHandler) *BadgeHandler {
	return &BadgeHandler{store: store, authHandler: authHandler}
}

type ListBadgesResponse struct {
	Body []store.BadgeWithCount
}

func (h *BadgeHandler) HandleListBadges(ctx context.Context, input *struct{}) (*ListBadgesResponse, error) {
	badges, err := h.store.BadgesWithCounts()
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to list badges")
	}
	return &ListBadgesResponse{Body: badges}, nil
}

type CreateBadgeRequest struct {
	auth.AuthInput
	Body struct {
		Name        string `json:"name" doc:"Name of the badge" required:"true"`
		Description string `json:"description,omitempty" doc:"What the badge is for"`
		Icon        string `json:"icon,omitempty" doc:"Icon filename or built-in icon name"`
	}
}

type CreateBadgeResponse struct {
	Body models.Badge
}

func (h *BadgeHandler) HandleCreateBadge(ctx context.Context, input *CreateBadgeRequest) (*CreateBadgeResponse, error) {
	if _, err := h.authHandler.RequireAdmin(ctx, input.Cookie); err != nil {
		return nil, err
	}

	badge, err := h.store.CreateBadge(input.Body.Name, input.Body.Description, input.Body.Icon)
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to create badge: " + err.Error())
	}
	return &CreateBadgeResponse{Body: *badge}, nil
}

type UpdateBadgeRequest struct {
	auth.AuthInput
	BadgeID string `path:"badge_id"`
	Body    struct {
		Name        *string `json:"name,omitempty" doc:"New name"`
		Description *string `json:"description,omitempty" doc:"New description"`
		Icon        *string `json:"icon,omitempty" doc:"New icon filename"`
	}
}

type SuccessResponse struct {
	Body struct {
		Success bool `json:"success"`
	}
}

func (h *BadgeHandler) HandleUpdateBadge(ctx context.Context, input *UpdateBadgeRequest) (*SuccessResponse, error) {
	if _, err := h.authHandler.RequireAdmin(ctx, input.Cookie); err != nil {
		return nil, err
	}

	res := &SuccessResponse{}
	err := h.store.UpdateBadge(input.BadgeID, store.BadgePatch{
		Name:        input.Body.Name,
		Description: input.Body.Description,
		Icon:        input.Body.Icon,
	})
	switch {
	case err == nil:
		res.Body.Success = true
	case errors.Is(err, store.ErrNotFound):
		// Mirror the boolean contract: unknown id is success:false, not 404.
	default:
		return nil, huma.Error500InternalServerError("Failed to update badge: " + err.Error())
	}
	return res, nil
}

type DeleteBadgeRequest struct {
	auth.AuthInput
	BadgeID string `path:"badge_id"`
}

func (h *BadgeHandler) HandleDeleteBadge(ctx context.Context, input *DeleteBadgeRequest) (*SuccessResponse, error) {
	if _, err := h.authHandler.RequireAdmin(ctx, input.Cookie); err != nil {
		return nil, err
	}

	if err := h.store.DeleteBadge(input.BadgeID); err != nil {
		return nil, huma.Error500InternalServerError("Failed to delete badge: " + err.Error())
	}
	res := &SuccessResponse{}
	res.Body.Success = true
	return res, nil
}

type BadgeDetailsRequest struct {
	BadgeID string `path:"badge_id"`
}

type BadgeDetailsResponse struct {
	Body store.BadgeDetails
}

func (h *BadgeHandler) HandleBadgeDetails(ctx context.Context, input *BadgeDetailsRequest) (*BadgeDetailsResponse, error) {
	details, err := h.store.BadgeDetailsReport(input.BadgeID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, huma.Error404NotFound("Badge not found")
		}
		return nil, huma.Error500InternalServerError("Failed to load badge details")
	}
	return &BadgeDetailsResponse{Body: *details}, nil
}
