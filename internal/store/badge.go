package store

import (
	"log"
	"os"
	"path/filepath"

	"github.com/fpgabadges/badge-api/internal/models"
	"github.com/google/uuid"
)

// defaultIcons are the built-in icon names shipped with the frontend.
// Anything else in a badge's Icon field is an uploaded asset owned by that
// badge and removed together with it.
var defaultIcons = map[string]bool{
	"chip.svg":   true,
	"star.svg":   true,
	"pencil.svg": true,
	"trash.svg":  true,
}

// CreateBadge stores a new badge with a generated id. Fields are taken
// as supplied.
func (s *Store) CreateBadge(name, description, icon string) (*models.Badge, error) {
	s.badgesMu.Lock()
	defer s.badgesMu.Unlock()

	badges, err := readCollection[models.Badge](s.path(badgesFile))
	if err != nil {
		return nil, err
	}
	badge := models.Badge{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		Icon:        icon,
	}
	badges = append(badges, badge)
	if err := writeCollection(s.path(badgesFile), badges); err != nil {
		return nil, err
	}
	return &badge, nil
}

func (s *Store) GetBadge(id string) (*models.Badge, error) {
	badges, err := readCollection[models.Badge](s.path(badgesFile))
	if err != nil {
		return nil, err
	}
	for i := range badges {
		if badges[i].ID == id {
			b := badges[i]
			return &b, nil
		}
	}
	return nil, ErrNotFound
}

func (s *Store) ListBadges() ([]models.Badge, error) {
	return readCollection[models.Badge](s.path(badgesFile))
}

// BadgePatch lists the badge fields an update may touch.
type BadgePatch struct {
	Name        *string
	Description *string
	Icon        *string
}

// UpdateBadge merges the patch into the matching record. Returns
// ErrNotFound if no badge has that id.
func (s *Store) UpdateBadge(id string, patch BadgePatch) error {
	s.badgesMu.Lock()
	defer s.badgesMu.Unlock()

	badges, err := readCollection[models.Badge](s.path(badgesFile))
	if err != nil {
		return err
	}
	for i := range badges {
		if badges[i].ID != id {
			continue
		}
		if patch.Name != nil {
			badges[i].Name = *patch.Name
		}
		if patch.Description != nil {
			badges[i].Description = *patch.Description
		}
		if patch.Icon != nil {
			badges[i].Icon = *patch.Icon
		}
		return writeCollection(s.path(badgesFile), badges)
	}
	return ErrNotFound
}

// DeleteBadge removes the badge and, when its icon is an uploaded asset,
// the backing image file. Asset removal failures are logged and swallowed;
// the logical delete always wins. Deleting an unknown id is a no-op, not
// an error. Awards referencing the badge are left in place; the read paths
// substitute a sentinel name for them.
func (s *Store) DeleteBadge(id string) error {
	s.badgesMu.Lock()
	defer s.badgesMu.Unlock()

	badges, err := readCollection[models.Badge](s.path(badgesFile))
	if err != nil {
		return err
	}

	kept := badges[:0]
	for _, b := range badges {
		if b.ID != id {
			kept = append(kept, b)
			continue
		}
		if b.Icon != "" && !defaultIcons[b.Icon] {
			s.removeIconAsset(b.Icon)
		}
	}
	return writeCollection(s.path(badgesFile), kept)
}

func (s *Store) removeIconAsset(icon string) {
	path := filepath.Join(s.staticDir, "images", icon)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		log.Printf("Failed to delete badge image %s: %v", path, err)
		return
	}
	log.Printf("Deleted badge image: %s", path)
}
