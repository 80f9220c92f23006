package store

import (
	"fmt"

	"github.com/fpgabadges/badge-api/internal/models"
	"github.com/google/uuid"
)

// AwardBadge appends a new award for the user/badge pair. There is no
// uniqueness constraint: awarding the same badge twice is two rows and
// counts as two. awardedBy is the actor granting the badge and may be
// empty for system grants; when present it must differ from the recipient.
func (s *Store) AwardBadge(userID, badgeID, awardedBy string) (*models.Award, error) {
	if userID == "" || badgeID == "" {
		return nil, fmt.Errorf("%w: user_id and badge_id are required", ErrValidation)
	}
	if awardedBy != "" && awardedBy == userID {
		return nil, fmt.Errorf("%w: you cannot award badges to yourself", ErrForbidden)
	}

	s.awardsMu.Lock()
	defer s.awardsMu.Unlock()

	awards, err := readCollection[models.Award](s.path(awardsFile))
	if err != nil {
		return nil, err
	}
	award := models.Award{
		ID:        uuid.NewString(),
		UserID:    userID,
		BadgeID:   badgeID,
		AwardedAt: models.FormatAwardTime(s.now()),
		AwardedBy: awardedBy,
	}
	awards = append(awards, award)
	if err := writeCollection(s.path(awardsFile), awards); err != nil {
		return nil, err
	}
	return &award, nil
}

// RevokeBadge removes every award matching the user/badge pair, not just
// one instance. Revoking a pair with no awards is a no-op, not an error.
func (s *Store) RevokeBadge(userID, badgeID string) error {
	s.awardsMu.Lock()
	defer s.awardsMu.Unlock()

	awards, err := readCollection[models.Award](s.path(awardsFile))
	if err != nil {
		return err
	}
	kept := awards[:0]
	for _, a := range awards {
		if !(a.UserID == userID && a.BadgeID == badgeID) {
			kept = append(kept, a)
		}
	}
	return writeCollection(s.path(awardsFile), kept)
}

func (s *Store) ListAwards() ([]models.Award, error) {
	return readCollection[models.Award](s.path(awardsFile))
}
