package repo

import (
	"context"

	"Wardrobe/internal/model"

	"gorm.io/gorm"
)

// ItemFilter сужает выборку активных вещей. nil-поля не фильтруют.
type ItemFilter struct {
	Category *model.Category
	Favorite *bool
	Laundry  *bool
}

// ItemRepository определяет контракт доступа к активным вещам гардероба.
type ItemRepository interface {
	// Upsert вставляет вещь или перезаписывает её по id.
	Upsert(ctx context.Context, it *model.Item) error
	// GetByID возвращает вещь или nil, если её нет.
	GetByID(ctx context.Context, id string) (*model.Item, error)
	// List возвращает вещи по фильтру, новые первыми.
	List(ctx context.Context, f ItemFilter) ([]model.Item, error)
	// Delete удаляет вещь и сообщает, была ли она.
	Delete(ctx context.Context, id string) (bool, error)
	DeleteAll(ctx context.Context) error
	// ImageIDs возвращает id картинок, на которые ссылаются активные вещи.
	ImageIDs(ctx context.Context) ([]string, error)
}

type itemRepo struct {
	db *gorm.DB
}

var _ ItemRepository = (*itemRepo)(nil)

// NewItemRepository создаёт реализацию репозитория для Item.
func NewItemRepository(db *gorm.DB) ItemRepository {
	return &itemRepo{db: db}
}

func (r *itemRepo) Upsert(ctx context.Context, it *model.Item) error {
	return upsert(ctx, r.db, it)
}

func (r *itemRepo) GetByID(ctx context.Context, id string) (*model.Item, error) {
	var it model.Item
	found, err := first(ctx, r.db, &it, "id = ?", id)
	if err != nil || !found {
		return nil, err
	}
	return &it, nil
}

func (r *itemRepo) List(ctx context.Context, f ItemFilter) ([]model.Item, error) {
	q := r.db.WithContext(ctx).Model(&model.Item{})
	if f.Category != nil {
		q = q.Where("category = ?", f.Category.String())
	}
	if f.Favorite != nil {
		q = q.Where("favorite = ?", *f.Favorite)
	}
	if f.Laundry != nil {
		q = q.Where("laundry = ?", *f.Laundry)
	}
	var res []model.Item
	if err := q.Order("date_added DESC").Order("rowid DESC").Find(&res).Error; err != nil {
		return nil, err
	}
	return res, nil
}

func (r *itemRepo) Delete(ctx context.Context, id string) (bool, error) {
	n, err := deleteByIDs(ctx, r.db, &model.Item{}, []string{id})
	return n > 0, err
}

func (r *itemRepo) DeleteAll(ctx context.Context) error {
	return deleteAll(ctx, r.db, &model.Item{})
}

func (r *itemRepo) ImageIDs(ctx context.Context) ([]string, error) {
	return pluckStrings(ctx, r.db, &model.Item{}, "image_id")
}
