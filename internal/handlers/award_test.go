package handlers

import (
	"context"
	"testing"

	"github.com/fpgabadges/badge-api/internal/models"
	"github.com/fpgabadges/badge-api/internal/store"
)

// recordingNotifier captures award notifications for assertions.
type recordingNotifier struct {
	awards []string
}

func (n *recordingNotifier) NotifyAward(user models.User, badge models.Badge, awardedBy *models.User) error {
	n.awards = append(n.awards, user.Username+":"+badge.Name)
	return nil
}

func TestHandleAwardBadge(t *testing.T) {
	env := newTestEnv(t)
	notif := &recordingNotifier{}
	handler := NewAwardHandler(env.store, env.authHandler, nil, notif)

	alice, _ := env.store.Register("alice", "secret", "", "")
	bob, _ := env.store.Register("bob", "secret", "", "")
	badge, _ := env.store.CreateBadge("Tester", "", "star.svg")
	bobCookie := env.cookieFor(t, bob.ID)

	t.Run("SelfAwardRejected", func(t *testing.T) {
		req := AwardBadgeRequest{}
		req.Cookie = env.cookieFor(t, alice.ID)
		req.Body.UserID = alice.ID
		req.Body.BadgeID = badge.ID
		req.Body.AwardedBy = alice.ID

		if _, err := handler.HandleAwardBadge(context.Background(), &req); err == nil {
			t.Fatal("expected error for self-award, got nil")
		}
	})

	t.Run("Success", func(t *testing.T) {
		req := AwardBadgeRequest{}
		req.Cookie = bobCookie
		req.Body.UserID = alice.ID
		req.Body.BadgeID = badge.ID
		req.Body.AwardedBy = bob.ID

		resp, err := handler.HandleAwardBadge(context.Background(), &req)
		if err != nil {
			t.Fatalf("HandleAwardBadge returned error: %v", err)
		}
		if !resp.Body.Success {
			t.Error("expected success")
		}
		if resp.Body.Award.UserID != alice.ID || resp.Body.Award.AwardedBy != bob.ID {
			t.Errorf("unexpected award: %+v", resp.Body.Award)
		}
		if len(notif.awards) != 1 || notif.awards[0] != "alice:Tester" {
			t.Errorf("expected one notification for alice:Tester, got %v", notif.awards)
		}
	})

	t.Run("Unauthenticated", func(t *testing.T) {
		req := AwardBadgeRequest{}
		req.Body.UserID = alice.ID
		req.Body.BadgeID = badge.ID

		if _, err := handler.HandleAwardBadge(context.Background(), &req); err == nil {
			t.Fatal("expected error without a session, got nil")
		}
	})
}

func TestHandleRevokeBadge(t *testing.T) {
	env := newTestEnv(t)
	handler := NewAwardHandler(env.store, env.authHandler, nil, nil)

	alice, _ := env.store.Register("alice", "secret", "", "")
	bob, _ := env.store.Register("bob", "secret", "", "")
	badge, _ := env.store.CreateBadge("Tester", "", "star.svg")

	env.store.AwardBadge(alice.ID, badge.ID, "")
	env.store.AwardBadge(alice.ID, badge.ID, "")

	req := RevokeBadgeRequest{}
	req.Cookie = env.cookieFor(t, bob.ID)
	req.Body.UserID = alice.ID
	req.Body.BadgeID = badge.ID

	resp, err := handler.HandleRevokeBadge(context.Background(), &req)
	if err != nil {
		t.Fatalf("HandleRevokeBadge returned error: %v", err)
	}
	if !resp.Body.Success {
		t.Error("expected success")
	}

	badges, _ := env.store.UserBadges(alice.ID)
	if len(badges) != 0 {
		t.Errorf("expected all awards revoked, got %d entries", len(badges))
	}
}

func TestHandleBadgeDetails(t *testing.T) {
	env := newTestEnv(t)
	handler := NewBadgeHandler(env.store, env.authHandler)

	alice, _ := env.store.Register("alice", "secret", "", "")
	badge, _ := env.store.CreateBadge("Tester", "", "star.svg")
	env.store.AwardBadge(alice.ID, badge.ID, "")

	resp, err := handler.HandleBadgeDetails(context.Background(), &BadgeDetailsRequest{BadgeID: badge.ID})
	if err != nil {
		t.Fatalf("HandleBadgeDetails returned error: %v", err)
	}
	if resp.Body.AwardCount != 1 || resp.Body.UniqueUserCount != 1 {
		t.Errorf("unexpected counts: %+v", resp.Body)
	}

	if _, err := handler.HandleBadgeDetails(context.Background(), &BadgeDetailsRequest{BadgeID: "missing"}); err == nil {
		t.Fatal("expected error for unknown badge, got nil")
	}
}

func TestHandleUpdateBadge(t *testing.T) {
	env := newTestEnv(t)
	handler := NewBadgeHandler(env.store, env.authHandler)
	adminCookie := env.adminCookie(t)

	badge, _ := env.store.CreateBadge("Old Name", "", "star.svg")

	name := "New Name"
	req := UpdateBadgeRequest{BadgeID: badge.ID}
	req.Cookie = adminCookie
	req.Body.Name = &name

	resp, err := handler.HandleUpdateBadge(context.Background(), &req)
	if err != nil {
		t.Fatalf("HandleUpdateBadge returned error: %v", err)
	}
	if !resp.Body.Success {
		t.Error("expected success")
	}

	got, _ := env.store.GetBadge(badge.ID)
	if got.Name != "New Name" {
		t.Errorf("expected updated name, got %q", got.Name)
	}

	t.Run("UnknownBadge", func(t *testing.T) {
		req := UpdateBadgeRequest{BadgeID: "missing"}
		req.Cookie = adminCookie
		req.Body.Name = &name

		resp, err := handler.HandleUpdateBadge(context.Background(), &req)
		if err != nil {
			t.Fatalf("HandleUpdateBadge returned error: %v", err)
		}
		if resp.Body.Success {
			t.Error("expected success=false for unknown badge")
		}
	})

	t.Run("NonAdmin", func(t *testing.T) {
		user, _ := env.store.Register("carol", "secret", "", "")
		req := UpdateBadgeRequest{BadgeID: badge.ID}
		req.Cookie = env.cookieFor(t, user.ID)
		req.Body.Name = &name

		if _, err := handler.HandleUpdateBadge(context.Background(), &req); err == nil {
			t.Fatal("expected error for non-admin caller, got nil")
		}
	})
}

func TestHandleActivityFeed(t *testing.T) {
	env := newTestEnv(t)
	handler := NewAwardHandler(env.store, env.authHandler, nil, nil)

	alice, _ := env.store.Register("alice", "secret", "", "")
	badge, _ := env.store.CreateBadge("Tester", "", "star.svg")
	for i := 0; i < 12; i++ {
		env.store.AwardBadge(alice.ID, badge.ID, "")
	}

	resp, err := handler.HandleActivityFeed(context.Background(), &struct{}{})
	if err != nil {
		t.Fatalf("HandleActivityFeed returned error: %v", err)
	}
	if len(resp.Body) != store.DefaultFeedLimit {
		t.Errorf("expected %d entries, got %d", store.DefaultFeedLimit, len(resp.Body))
	}
}
