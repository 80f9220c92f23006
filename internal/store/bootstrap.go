package store

import (
	"fmt"

	"github.com/fpgabadges/badge-api/internal/models"
	"github.com/google/uuid"
)

const (
	defaultBadgeName        = "First FPGA Design"
	defaultBadgeDescription = "Completed first FPGA design project"
	defaultBadgeIcon        = "chip.svg"

	defaultAdminDisplayName = "Administrator"
	defaultAdminEmail       = "admin@fpgabadges.com"
)

// Bootstrap makes sure the store is usable: exactly one default admin
// account when no admin exists, and one default badge when the badge
// collection is empty. Safe to run on every startup.
func (s *Store) Bootstrap(adminUsername, adminPassword string) error {
	if err := s.ensureAdmin(adminUsername, adminPassword); err != nil {
		return err
	}
	return s.ensureDefaultBadge()
}

func (s *Store) ensureAdmin(username, password string) error {
	if username == "" || password == "" {
		return fmt.Errorf("%w: admin username and password are required", ErrValidation)
	}

	s.usersMu.Lock()
	defer s.usersMu.Unlock()

	users, err := readCollection[models.User](s.path(usersFile))
	if err != nil {
		return err
	}
	for i := range users {
		if users[i].IsAdmin() {
			return nil
		}
	}

	hash, err := hashPassword(password)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}
	users = append(users, models.User{
		ID:          uuid.NewString(),
		Username:    username,
		Password:    hash,
		Email:       defaultAdminEmail,
		DisplayName: defaultAdminDisplayName,
		Role:        models.RoleAdmin,
	})
	return writeCollection(s.path(usersFile), users)
}

func (s *Store) ensureDefaultBadge() error {
	s.badgesMu.Lock()
	defer s.badgesMu.Unlock()

	badges, err := readCollection[models.Badge](s.path(badgesFile))
	if err != nil {
		return err
	}
	if len(badges) > 0 {
		return nil
	}
	badges = append(badges, models.Badge{
		ID:          uuid.NewString(),
		Name:        defaultBadgeName,
		Description: defaultBadgeDescription,
		Icon:        defaultBadgeIcon,
	})
	return writeCollection(s.path(badgesFile), badges)
}
