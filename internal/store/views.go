package store

import (
	"sort"

	"github.com/fpgabadges/badge-api/internal/models"
)

// BadgeWithCount is a badge joined with how many times it has been
// awarded, either overall or to one user depending on the query.
type BadgeWithCount struct {
	models.Badge
	Count int `json:"count"`
}

// AwardActor identifies the user who granted an award.
type AwardActor struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
}

// Recipient is one user holding a badge, carrying the timestamp of their
// first award of it in stored order.
type Recipient struct {
	ID          string      `json:"id"`
	Username    string      `json:"username"`
	DisplayName string      `json:"display_name"`
	AwardDate   string      `json:"award_date"`
	AwardedBy   *AwardActor `json:"awarded_by,omitempty"`
}

// BadgeDetails is the full report for one badge. AwardCount counts every
// award row including duplicates; UniqueUserCount and Users are
// deduplicated by recipient.
type BadgeDetails struct {
	Badge           models.Badge `json:"badge"`
	AwardCount      int          `json:"award_count"`
	UniqueUserCount int          `json:"unique_user_count"`
	Users           []Recipient  `json:"users"`
}

// FeedEntry is one line of the global activity feed.
type FeedEntry struct {
	User  string `json:"user"`
	Badge string `json:"badge"`
	Date  string `json:"date"`
}

const (
	unknownUser  = "Unknown"
	unknownBadge = "Unknown Badge"
)

// DefaultFeedLimit caps the activity feed when the caller does not.
const DefaultFeedLimit = 10

// UserBadges returns the badges awarded to one user with per-badge award
// counts, in badge-collection order. Badges the user does not hold are
// omitted.
func (s *Store) UserBadges(userID string) ([]BadgeWithCount, error) {
	awards, err := readCollection[models.Award](s.path(awardsFile))
	if err != nil {
		return nil, err
	}
	badges, err := readCollection[models.Badge](s.path(badgesFile))
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	for _, a := range awards {
		if a.UserID == userID {
			counts[a.BadgeID]++
		}
	}

	result := []BadgeWithCount{}
	for _, b := range badges {
		if n := counts[b.ID]; n > 0 {
			result = append(result, BadgeWithCount{Badge: b, Count: n})
		}
	}
	return result, nil
}

// BadgesWithCounts returns every badge with its total award count
// (duplicates included).
func (s *Store) BadgesWithCounts() ([]BadgeWithCount, error) {
	badges, err := readCollection[models.Badge](s.path(badgesFile))
	if err != nil {
		return nil, err
	}
	awards, err := readCollection[models.Award](s.path(awardsFile))
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	for _, a := range awards {
		counts[a.BadgeID]++
	}

	result := make([]BadgeWithCount, 0, len(badges))
	for _, b := range badges {
		result = append(result, BadgeWithCount{Badge: b, Count: counts[b.ID]})
	}
	return result, nil
}

// BadgeDetailsReport joins one badge with its recipients. Recipients are
// deduplicated by user id, first stored award wins, and sorted by username
// ascending. Awards whose user record no longer exists contribute to
// AwardCount but produce no recipient entry.
func (s *Store) BadgeDetailsReport(badgeID string) (*BadgeDetails, error) {
	badge, err := s.GetBadge(badgeID)
	if err != nil {
		return nil, err
	}
	awards, err := readCollection[models.Award](s.path(awardsFile))
	if err != nil {
		return nil, err
	}
	users, err := readCollection[models.User](s.path(usersFile))
	if err != nil {
		return nil, err
	}

	byID := make(map[string]*models.User, len(users))
	for i := range users {
		byID[users[i].ID] = &users[i]
	}

	seen := make(map[string]bool)
	recipients := []Recipient{}
	awardCount := 0
	for _, a := range awards {
		if a.BadgeID != badgeID {
			continue
		}
		awardCount++
		if seen[a.UserID] {
			continue
		}
		user, ok := byID[a.UserID]
		if !ok {
			continue
		}
		r := Recipient{
			ID:          user.ID,
			Username:    user.Username,
			DisplayName: user.DisplayName,
			AwardDate:   a.AwardedAt,
		}
		if actor, ok := byID[a.AwardedBy]; ok && a.AwardedBy != "" {
			r.AwardedBy = &AwardActor{
				ID:          actor.ID,
				Username:    actor.Username,
				DisplayName: actor.DisplayName,
			}
		}
		recipients = append(recipients, r)
		seen[a.UserID] = true
	}

	sort.Slice(recipients, func(i, j int) bool {
		return recipients[i].Username < recipients[j].Username
	})

	return &BadgeDetails{
		Badge:           *badge,
		AwardCount:      awardCount,
		UniqueUserCount: len(recipients),
		Users:           recipients,
	}, nil
}

// ActivityFeed returns the most recent awards, newest first, joined with
// user and badge names. Orphaned references resolve to sentinel names.
// Timestamps are uniformly formatted UTC strings, so a lexicographic sort
// is a chronological one.
func (s *Store) ActivityFeed(limit int) ([]FeedEntry, error) {
	if limit <= 0 {
		limit = DefaultFeedLimit
	}
	awards, err := readCollection[models.Award](s.path(awardsFile))
	if err != nil {
		return nil, err
	}
	badges, err := readCollection[models.Badge](s.path(badgesFile))
	if err != nil {
		return nil, err
	}
	users, err := readCollection[models.User](s.path(usersFile))
	if err != nil {
		return nil, err
	}

	sort.SliceStable(awards, func(i, j int) bool {
		return awards[i].AwardedAt > awards[j].AwardedAt
	})
	if len(awards) > limit {
		awards = awards[:limit]
	}

	usernames := make(map[string]string, len(users))
	for _, u := range users {
		usernames[u.ID] = u.Username
	}
	badgeNames := make(map[string]string, len(badges))
	for _, b := range badges {
		badgeNames[b.ID] = b.Name
	}

	feed := make([]FeedEntry, 0, len(awards))
	for _, a := range awards {
		entry := FeedEntry{
			User:  unknownUser,
			Badge: unknownBadge,
			Date:  a.AwardedAt,
		}
		if name, ok := usernames[a.UserID]; ok {
			entry.User = name
		}
		if name, ok := badgeNames[a.BadgeID]; ok {
			entry.Badge = name
		}
		feed = append(feed, entry)
	}
	return feed, nil
}
