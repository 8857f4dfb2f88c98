package store

import (
	"context"
	"strings"

	"Wardrobe/internal/model"
	"Wardrobe/internal/repo"

	"github.com/google/uuid"
)

// SaveShoppingItem upserts a wish-list entry. The name is required.
func (s *Store) SaveShoppingItem(ctx context.Context, it *model.ShoppingItem) (string, error) {
	if it == nil {
		return "", invalidf("nil shopping item")
	}
	it.Name = strings.TrimSpace(it.Name)
	if it.Name == "" {
		return "", invalidf("shopping item name is required")
	}
	if it.ID == "" {
		it.ID = uuid.NewString()
	}
	if err := s.repos.Shopping.Upsert(ctx, it); err != nil {
		return "", wrap("save shopping item", err)
	}
	return it.ID, nil
}

// GetAllShoppingItems returns the wish-list, newest first.
func (s *Store) GetAllShoppingItems(ctx context.Context) ([]model.ShoppingItem, error) {
	list, err := s.repos.Shopping.List(ctx)
	return list, wrap("get shopping list", err)
}

// DeleteShoppingItem removes the entry and its image in one transaction.
// Missing ids are ignored.
func (s *Store) DeleteShoppingItem(ctx context.Context, id string) error {
	return s.inTx(ctx, "delete shopping item", func(r *repo.Repositories) error {
		it, err := r.Shopping.GetByID(ctx, id)
		if err != nil || it == nil {
			return err
		}
		if _, err := r.Shopping.Delete(ctx, id); err != nil {
			return err
		}
		return deleteUnreferencedImages(ctx, r, []string{it.ImageID})
	})
}
