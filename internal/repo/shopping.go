package repo

import (
	"context"

	"Wardrobe/internal/model"

	"gorm.io/gorm"
)

// ShoppingRepository хранит список покупок.
type ShoppingRepository interface {
	Upsert(ctx context.Context, s *model.ShoppingItem) error
	GetByID(ctx context.Context, id string) (*model.ShoppingItem, error)
	// List возвращает позиции, новые первыми.
	List(ctx context.Context) ([]model.ShoppingItem, error)
	Delete(ctx context.Context, id string) (bool, error)
	DeleteAll(ctx context.Context) error
	// ImageIDs возвращает id картинок, привязанных к позициям.
	ImageIDs(ctx context.Context) ([]string, error)
}

type shoppingRepo struct {
	db *gorm.DB
}

var _ ShoppingRepository = (*shoppingRepo)(nil)

// NewShoppingRepository создаёт реализацию репозитория списка покупок.
func NewShoppingRepository(db *gorm.DB) ShoppingRepository {
	return &shoppingRepo{db: db}
}

func (r *shoppingRepo) Upsert(ctx context.Context, s *model.ShoppingItem) error {
	return upsert(ctx, r.db, s)
}

func (r *shoppingRepo) GetByID(ctx context.Context, id string) (*model.ShoppingItem, error) {
	var s model.ShoppingItem
	found, err := first(ctx, r.db, &s, "id = ?", id)
	if err != nil || !found {
		return nil, err
	}
	return &s, nil
}

func (r *shoppingRepo) List(ctx context.Context) ([]model.ShoppingItem, error) {
	var res []model.ShoppingItem
	err := r.db.WithContext(ctx).Order("created_at DESC").Order("rowid DESC").Find(&res).Error
	return res, err
}

func (r *shoppingRepo) Delete(ctx context.Context, id string) (bool, error) {
	n, err := deleteByIDs(ctx, r.db, &model.ShoppingItem{}, []string{id})
	return n > 0, err
}

func (r *shoppingRepo) DeleteAll(ctx context.Context) error {
	return deleteAll(ctx, r.db, &model.ShoppingItem{})
}

func (r *shoppingRepo) ImageIDs(ctx context.Context) ([]string, error) {
	return pluckStrings(ctx, r.db, &model.ShoppingItem{}, "image_id")
}
