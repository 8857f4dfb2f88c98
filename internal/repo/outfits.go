package repo

import (
	"context"

	"Wardrobe/internal/model"

	"gorm.io/gorm"
)

// OutfitRepository хранит сохранённые комплекты.
type OutfitRepository interface {
	Upsert(ctx context.Context, o *model.SavedOutfit) error
	// List возвращает комплекты, новые первыми.
	List(ctx context.Context) ([]model.SavedOutfit, error)
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) error
}

type outfitRepo struct {
	db *gorm.DB
}

var _ OutfitRepository = (*outfitRepo)(nil)

// NewOutfitRepository создаёт реализацию репозитория комплектов.
func NewOutfitRepository(db *gorm.DB) OutfitRepository {
	return &outfitRepo{db: db}
}

func (r *outfitRepo) Upsert(ctx context.Context, o *model.SavedOutfit) error {
	if o.Items == nil {
		o.Items = []string{}
	}
	return upsert(ctx, r.db, o)
}

func (r *outfitRepo) List(ctx context.Context) ([]model.SavedOutfit, error) {
	var res []model.SavedOutfit
	err := r.db.WithContext(ctx).Order("created_at DESC").Order("rowid DESC").Find(&res).Error
	return res, err
}

func (r *outfitRepo) Delete(ctx context.Context, id string) error {
	_, err := deleteByIDs(ctx, r.db, &model.SavedOutfit{}, []string{id})
	return err
}

func (r *outfitRepo) DeleteAll(ctx context.Context) error {
	return deleteAll(ctx, r.db, &model.SavedOutfit{})
}
