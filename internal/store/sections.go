package store

import (
	"context"
	"strings"

	"Wardrobe/internal/model"
	"Wardrobe/internal/repo"

	"github.com/google/uuid"
)

// SaveCustomSection upserts a section, assigning a UUID when absent.
func (s *Store) SaveCustomSection(ctx context.Context, sec *model.CustomSection) (string, error) {
	if sec == nil {
		return "", invalidf("nil section")
	}
	sec.Name = strings.TrimSpace(sec.Name)
	if sec.Name == "" {
		return "", invalidf("section name is required")
	}
	if sec.ID == "" {
		sec.ID = uuid.NewString()
	}
	if err := s.repos.Sections.Upsert(ctx, sec); err != nil {
		return "", wrap("save section", err)
	}
	return sec.ID, nil
}

// GetCustomSection returns a section or nil.
func (s *Store) GetCustomSection(ctx context.Context, id string) (*model.CustomSection, error) {
	sec, err := s.repos.Sections.GetByID(ctx, id)
	return sec, wrap("get section", err)
}

// GetAllCustomSections returns sections in creation order.
func (s *Store) GetAllCustomSections(ctx context.Context) ([]model.CustomSection, error) {
	list, err := s.repos.Sections.List(ctx)
	return list, wrap("get sections", err)
}

// DeleteCustomSection moves every item of the section to the trash and then removes
// the section, all in one transaction. It returns the number of items moved.
func (s *Store) DeleteCustomSection(ctx context.Context, id string) (int, error) {
	cat := model.CustomCategory(id)
	var moved int
	err := s.inTx(ctx, "delete section", func(r *repo.Repositories) error {
		items, err := r.Items.List(ctx, repo.ItemFilter{Category: &cat})
		if err != nil {
			return err
		}
		now := s.now()
		for _, it := range items {
			e := it.ToTrash(now)
			if err := r.Trash.Upsert(ctx, &e); err != nil {
				return err
			}
			if _, err := r.Items.Delete(ctx, it.ID); err != nil {
				return err
			}
		}
		moved = len(items)
		return r.Sections.Delete(ctx, id)
	})
	if err != nil {
		return 0, err
	}
	s.log.Debugw("section deleted", "id", id, "itemsMoved", moved)
	return moved, nil
}
