package handlers

import (
	"context"
	"errors"
	"log"

	"github.com/danielgtaylor/huma/v2"
	"github.com/fpgabadges/badge-api/internal/auth"
	"github.com/fpgabadges/badge-api/internal/models"
	"github.com/fpgabadges/badge-api/internal/notifier"
	"github.com/fpgabadges/badge-api/internal/store"
	"github.com/fpgabadges/badge-api/internal/ws"
)

type AwardHandler struct {
	store       *store.Store
	authHandler *auth.AuthHandler
	hub         *ws.Hub
	notifier    notifier.Notifier
}

func NewAwardHandler(store *store.Store, authHandler *auth.AuthHandler, hub *ws.Hub, notifier notifier.Notifier) *AwardHandler {
	return &AwardHandler{store: store, authHandler: authHandler, hub: hub, notifier: notifier}
}

type AwardBadgeRequest struct {
	auth.AuthInput
	Body struct {
		UserID    string `json:"user_id" doc:"Recipient user id" required:"true"`
		BadgeID   string `json:"badge_id" doc:"Badge id" required:"true"`
		AwardedBy string `json:"awarded_by,omitempty" doc:"Id of the granting user, empty for system grants"`
	}
}

type AwardBadgeResponse struct {
	Body struct {
		Success bool         `json:"success"`
		Award   models.Award `json:"award"`
	}
}

func (h *AwardHandler) HandleAwardBadge(ctx context.Context, input *AwardBadgeRequest) (*AwardBadgeResponse, error) {
	if _, err := h.authHandler.Authorize(ctx, input.Cookie); err != nil {
		return nil, err
	}

	award, err := h.store.AwardBadge(input.Body.UserID, input.Body.BadgeID, input.Body.AwardedBy)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrForbidden):
			return nil, huma.Error400BadRequest("You cannot award badges to yourself")
		case errors.Is(err, store.ErrValidation):
			return nil, huma.Error400BadRequest("user_id and badge_id are required")
		default:
			return nil, huma.Error500InternalServerError("Failed to award badge: " + err.Error())
		}
	}

	h.announce(*award)

	res := &AwardBadgeResponse{}
	res.Body.Success = true
	res.Body.Award = *award
	return res, nil
}

// announce pushes the award to connected clients and the configured
// notifier. Both are best effort; lookups can miss when a badge or user
// was deleted between write and announce.
func (h *AwardHandler) announce(award models.Award) {
	user, userErr := h.store.GetUser(award.UserID)
	badge, badgeErr := h.store.GetBadge(award.BadgeID)

	if h.hub != nil {
		event := ws.Event{
			Type:    ws.EventBadgeAwarded,
			UserID:  award.UserID,
			BadgeID: award.BadgeID,
			Date:    award.AwardedAt,
		}
		if userErr == nil {
			event.Username = user.Username
		}
		if badgeErr == nil {
			event.Badge = badge.Name
		}
		h.hub.Broadcast(event)
	}

	if h.notifier != nil && userErr == nil && badgeErr == nil {
		var actor *models.User
		if award.AwardedBy != "" {
			if u, err := h.store.GetUser(award.AwardedBy); err == nil {
				actor = u
			}
		}
		if err := h.notifier.NotifyAward(*user, *badge, actor); err != nil {
			log.Printf("Failed to send award notification: %v", err)
		}
	}
}

type RevokeBadgeRequest struct {
	auth.AuthInput
	Body struct {
		UserID  string `json:"user_id" doc:"User to revoke from" required:"true"`
		BadgeID string `json:"badge_id" doc:"Badge to revoke" required:"true"`
	}
}

func (h *AwardHandler) HandleRevokeBadge(ctx context.Context, input *RevokeBadgeRequest) (*SuccessResponse, error) {
	if _, err := h.authHandler.Authorize(ctx, input.Cookie); err != nil {
		return nil, err
	}
	if input.Body.UserID == "" || input.Body.BadgeID == "" {
		return nil, huma.Error400BadRequest("user_id and badge_id required")
	}

	if err := h.store.RevokeBadge(input.Body.UserID, input.Body.BadgeID); err != nil {
		return nil, huma.Error500InternalServerError("Failed to revoke badge: " + err.Error())
	}

	if h.hub != nil {
		h.hub.Broadcast(ws.Event{
			Type:    ws.EventBadgeRevoked,
			UserID:  input.Body.UserID,
			BadgeID: input.Body.BadgeID,
		})
	}

	res := &SuccessResponse{}
	res.Body.Success = true
	return res, nil
}

type ActivityFeedResponse struct {
	Body []store.FeedEntry
}

func (h *AwardHandler) HandleActivityFeed(ctx context.Context, input *struct{}) (*ActivityFeedResponse, error) {
	feed, err := h.store.ActivityFeed(store.DefaultFeedLimit)
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to load activity feed")
	}
	return &ActivityFeedResponse{Body: feed}, nil
}
