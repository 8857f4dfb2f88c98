package store

import (
	"context"

	"Wardrobe/internal/model"

	"github.com/google/uuid"
)

// SaveOutfit upserts an outfit, assigning a UUID when absent. Item ids are stored as given.
func (s *Store) SaveOutfit(ctx context.Context, o *model.SavedOutfit) (string, error) {
	if o == nil {
		return "", invalidf("nil outfit")
	}
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	if err := s.repos.Outfits.Upsert(ctx, o); err != nil {
		return "", wrap("save outfit", err)
	}
	return o.ID, nil
}

// GetAllSavedOutfits returns outfits, newest first.
func (s *Store) GetAllSavedOutfits(ctx context.Context) ([]model.SavedOutfit, error) {
	list, err := s.repos.Outfits.List(ctx)
	return list, wrap("get outfits", err)
}

// DeleteSavedOutfit removes an outfit. Missing ids are ignored.
func (s *Store) DeleteSavedOutfit(ctx context.Context, id string) error {
	return wrap("delete outfit", s.repos.Outfits.Delete(ctx, id))
}
