package store

import (
	"fmt"
	"testing"
)

func TestBadgesWithCounts(t *testing.T) {
	s := newTestStore(t)
	alice, _ := s.Register("alice", "secret", "", "")
	popular, _ := s.CreateBadge("Popular", "", "star.svg")
	unused, _ := s.CreateBadge("Unused", "", "star.svg")

	s.AwardBadge(alice.ID, popular.ID, "")
	s.AwardBadge(alice.ID, popular.ID, "")

	badges, err := s.BadgesWithCounts()
	if err != nil {
		t.Fatalf("BadgesWithCounts failed: %v", err)
	}
	if len(badges) != 2 {
		t.Fatalf("expected 2 badges, got %d", len(badges))
	}
	counts := map[string]int{}
	for _, b := range badges {
		counts[b.ID] = b.Count
	}
	if counts[popular.ID] != 2 {
		t.Errorf("expected popular count 2, got %d", counts[popular.ID])
	}
	if counts[unused.ID] != 0 {
		t.Errorf("expected unused count 0, got %d", counts[unused.ID])
	}
}

func TestBadgeDetailsReport(t *testing.T) {
	s := newTestStore(t)
	stepClock(s)

	alice, _ := s.Register("alice", "secret", "", "Alice A")
	bob, _ := s.Register("bob", "secret", "", "Bob B")
	zed, _ := s.Register("zed", "secret", "", "")
	badge, _ := s.CreateBadge("Tester", "", "star.svg")

	// zed first in stored order, then alice twice, then bob.
	s.AwardBadge(zed.ID, badge.ID, "")
	first, _ := s.AwardBadge(alice.ID, badge.ID, bob.ID)
	s.AwardBadge(alice.ID, badge.ID, "")
	s.AwardBadge(bob.ID, badge.ID, "")

	details, err := s.BadgeDetailsReport(badge.ID)
	if err != nil {
		t.Fatalf("BadgeDetailsReport failed: %v", err)
	}

	if details.AwardCount != 4 {
		t.Errorf("expected award_count 4 (duplicates counted), got %d", details.AwardCount)
	}
	if details.UniqueUserCount != 3 {
		t.Errorf("expected unique_user_count 3, got %d", details.UniqueUserCount)
	}
	if len(details.Users) != 3 {
		t.Fatalf("expected 3 recipients, got %d", len(details.Users))
	}

	// Sorted by username ascending.
	order := []string{"alice", "bob", "zed"}
	for i, want := range order {
		if details.Users[i].Username != want {
			t.Errorf("recipient %d: expected %q, got %q", i, want, details.Users[i].Username)
		}
	}

	// Alice is deduplicated and keeps the first award's timestamp and actor.
	aliceEntry := details.Users[0]
	if aliceEntry.AwardDate != first.AwardedAt {
		t.Errorf("expected first award timestamp %q, got %q", first.AwardedAt, aliceEntry.AwardDate)
	}
	if aliceEntry.AwardedBy == nil || aliceEntry.AwardedBy.ID != bob.ID {
		t.Errorf("expected awarding actor bob, got %+v", aliceEntry.AwardedBy)
	}

	// System grants carry no actor.
	if details.Users[1].AwardedBy != nil {
		t.Errorf("expected no actor for bob's system grant, got %+v", details.Users[1].AwardedBy)
	}

	t.Run("UnknownBadge", func(t *testing.T) {
		if _, err := s.BadgeDetailsReport("missing"); err == nil {
			t.Error("expected error for unknown badge")
		}
	})
}

func TestBadgeDetailsSkipsDeletedUsers(t *testing.T) {
	s := newTestStore(t)
	alice, _ := s.Register("alice", "secret", "", "")
	bob, _ := s.Register("bob", "secret", "", "")
	badge, _ := s.CreateBadge("Tester", "", "star.svg")

	s.AwardBadge(alice.ID, badge.ID, "")
	s.AwardBadge(bob.ID, badge.ID, "")

	// Orphan alice's award by rewriting the users collection directly;
	// RemoveUser would cascade the award away.
	users, _ := s.ListUsers()
	kept := users[:0]
	for _, u := range users {
		if u.ID != alice.ID {
			kept = append(kept, u)
		}
	}
	if err := writeCollection(s.path(usersFile), kept); err != nil {
		t.Fatal(err)
	}

	details, err := s.BadgeDetailsReport(badge.ID)
	if err != nil {
		t.Fatalf("BadgeDetailsReport failed: %v", err)
	}
	if details.AwardCount != 2 {
		t.Errorf("expected orphaned award to still count, got %d", details.AwardCount)
	}
	if details.UniqueUserCount != 1 || len(details.Users) != 1 {
		t.Errorf("expected only resolvable recipients, got %+v", details.Users)
	}
	if details.Users[0].Username != "bob" {
		t.Errorf("expected bob, got %q", details.Users[0].Username)
	}
}

func TestActivityFeed(t *testing.T) {
	s := newTestStore(t)
	stepClock(s)

	alice, _ := s.Register("alice", "secret", "", "")
	badge, _ := s.CreateBadge("Tester", "", "star.svg")

	for i := 0; i < 15; i++ {
		if _, err := s.AwardBadge(alice.ID, badge.ID, ""); err != nil {
			t.Fatalf("AwardBadge failed: %v", err)
		}
	}

	feed, err := s.ActivityFeed(0)
	if err != nil {
		t.Fatalf("ActivityFeed failed: %v", err)
	}
	if len(feed) != DefaultFeedLimit {
		t.Fatalf("expected feed capped at %d, got %d", DefaultFeedLimit, len(feed))
	}
	for i := 1; i < len(feed); i++ {
		if feed[i-1].Date < feed[i].Date {
			t.Errorf("feed not newest-first at index %d: %q before %q", i, feed[i-1].Date, feed[i].Date)
		}
	}
	if feed[0].User != "alice" || feed[0].Badge != "Tester" {
		t.Errorf("unexpected join: %+v", feed[0])
	}
}

func TestActivityFeedSentinels(t *testing.T) {
	s := newTestStore(t)
	alice, _ := s.Register("alice", "secret", "", "")
	badge, _ := s.CreateBadge("Tester", "", "star.svg")

	if _, err := s.AwardBadge(alice.ID, badge.ID, ""); err != nil {
		t.Fatalf("AwardBadge failed: %v", err)
	}

	// Deleting the badge leaves the award orphaned; the feed substitutes
	// sentinel names instead of failing.
	if err := s.DeleteBadge(badge.ID); err != nil {
		t.Fatalf("DeleteBadge failed: %v", err)
	}
	if _, err := s.AwardBadge("ghost-user", badge.ID, ""); err != nil {
		t.Fatalf("AwardBadge failed: %v", err)
	}

	feed, err := s.ActivityFeed(10)
	if err != nil {
		t.Fatalf("ActivityFeed failed: %v", err)
	}
	if len(feed) != 2 {
		t.Fatalf("expected 2 feed entries, got %d", len(feed))
	}

	found := map[string]bool{}
	for _, e := range feed {
		if e.Badge != "Unknown Badge" {
			t.Errorf("expected badge sentinel, got %q", e.Badge)
		}
		found[e.User] = true
	}
	if !found["alice"] || !found["Unknown"] {
		t.Errorf("expected alice and the user sentinel, got %v", found)
	}
}

func TestUserBadgesFollowsBadgeOrder(t *testing.T) {
	s := newTestStore(t)
	alice, _ := s.Register("alice", "secret", "", "")

	var ids []string
	for i := 0; i < 3; i++ {
		b, err := s.CreateBadge(fmt.Sprintf("Badge %d", i), "", "star.svg")
		if err != nil {
			t.Fatalf("CreateBadge failed: %v", err)
		}
		ids = append(ids, b.ID)
	}

	// Award in reverse creation order; the view still follows the badge
	// collection's order.
	for i := len(ids) - 1; i >= 0; i-- {
		s.AwardBadge(alice.ID, ids[i], "")
	}

	badges, err := s.UserBadges(alice.ID)
	if err != nil {
		t.Fatalf("UserBadges failed: %v", err)
	}
	if len(badges) != 3 {
		t.Fatalf("expected 3 badges, got %d", len(badges))
	}
	for i, b := range badges {
		if b.ID != ids[i] {
			t.Errorf("position %d: expected %s, got %s", i, ids[i], b.ID)
		}
	}
}
