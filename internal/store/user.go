package store

import (
	"fmt"

	"github.com/fpgabadges/badge-api/internal/models"
	"github.com/google/uuid"
)

// Authenticate scans the users collection for a matching username and
// verifies the password against the stored bcrypt hash. Returns
// ErrNotFound on any mismatch; callers never learn which half failed.
func (s *Store) Authenticate(username, password string) (*models.User, error) {
	users, err := readCollection[models.User](s.path(usersFile))
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].Username == username && checkPassword(users[i].Password, password) {
			u := users[i]
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

// Register creates a new user with role "user". Usernames are compared
// case-sensitively; "alice" and "ALICE" are distinct accounts.
func (s *Store) Register(username, password, email, displayName string) (*models.User, error) {
	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password are required", ErrValidation)
	}
	if displayName == "" {
		displayName = username
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	s.usersMu.Lock()
	defer s.usersMu.Unlock()

	users, err := readCollection[models.User](s.path(usersFile))
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].Username == username {
			return nil, ErrDuplicateUsername
		}
	}

	user := models.User{
		ID:          uuid.NewString(),
		Username:    username,
		Password:    hash,
		Email:       email,
		DisplayName: displayName,
		Role:        models.RoleUser,
	}
	users = append(users, user)
	if err := writeCollection(s.path(usersFile), users); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Store) GetUser(id string) (*models.User, error) {
	users, err := readCollection[models.User](s.path(usersFile))
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].ID == id {
			u := users[i]
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (s *Store) ListUsers() ([]models.User, error) {
	return readCollection[models.User](s.path(usersFile))
}

// UserPatch lists the user fields an update may touch. Identity, role and
// the password hash are deliberately not here; role changes and password
// resets have their own paths.
type UserPatch struct {
	Email       *string
	DisplayName *string
}

// UpdateUser merges the patch into the matching record. Returns
// ErrNotFound if no user has that id.
func (s *Store) UpdateUser(id string, patch UserPatch) error {
	s.usersMu.Lock()
	defer s.usersMu.Unlock()

	users, err := readCollection[models.User](s.path(usersFile))
	if err != nil {
		return err
	}
	for i := range users {
		if users[i].ID != id {
			continue
		}
		if patch.Email != nil {
			users[i].Email = *patch.Email
		}
		if patch.DisplayName != nil {
			users[i].DisplayName = *patch.DisplayName
		}
		return writeCollection(s.path(usersFile), users)
	}
	return ErrNotFound
}

// RemoveUser deletes a user and every award that references them. Admin
// accounts cannot be removed.
func (s *Store) RemoveUser(id string) error {
	s.usersMu.Lock()
	defer s.usersMu.Unlock()

	users, err := readCollection[models.User](s.path(usersFile))
	if err != nil {
		return err
	}
	idx := -1
	for i := range users {
		if users[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return ErrNotFound
	}
	if users[idx].IsAdmin() {
		return fmt.Errorf("%w: cannot remove administrator accounts", ErrForbidden)
	}

	users = append(users[:idx], users[idx+1:]...)
	if err := writeCollection(s.path(usersFile), users); err != nil {
		return err
	}

	s.awardsMu.Lock()
	defer s.awardsMu.Unlock()

	awards, err := readCollection[models.Award](s.path(awardsFile))
	if err != nil {
		return err
	}
	kept := awards[:0]
	for _, a := range awards {
		if a.UserID != id {
			kept = append(kept, a)
		}
	}
	return writeCollection(s.path(awardsFile), kept)
}

// ResetPassword re-hashes and replaces the user's password.
func (s *Store) ResetPassword(id, newPassword string) error {
	if newPassword == "" {
		return fmt.Errorf("%w: password is required", ErrValidation)
	}
	hash, err := hashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	s.usersMu.Lock()
	defer s.usersMu.Unlock()

	users, err := readCollection[models.User](s.path(usersFile))
	if err != nil {
		return err
	}
	for i := range users {
		if users[i].ID == id {
			users[i].Password = hash
			return writeCollection(s.path(usersFile), users)
		}
	}
	return ErrNotFound
}
