package models

import "time"

// AwardTimeLayout is the fixed-width UTC timestamp format used for
// AwardedAt. Uniform width keeps lexicographic order equal to
// chronological order, which the activity feed relies on.
const AwardTimeLayout = "2006-01-02T15:04:05.000000Z07:00"

// Award is a record in the awards collection: one grant of one badge to
// one user. UserID and BadgeID are references only; an award may outlive
// the badge it points at. AwardedBy is empty for system-granted awards.
type Award struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	BadgeID   string `json:"badge_id"`
	AwardedAt string `json:"awarded_at"`
	AwardedBy string `json:"awarded_by,omitempty"`
}

func FormatAwardTime(t time.Time) string {
	return t.UTC().Format(AwardTimeLayout)
}
