package repo

import (
	"context"

	"Wardrobe/internal/model"

	"gorm.io/gorm"
)

// ImageRepository хранит байты фотографий.
type ImageRepository interface {
	Upsert(ctx context.Context, img *model.Image) error
	// GetByID возвращает картинку вместе с данными или nil.
	GetByID(ctx context.Context, id string) (*model.Image, error)
	// GetMany возвращает картинки с данными по списку id; отсутствующие пропускаются.
	GetMany(ctx context.Context, ids []string) ([]model.Image, error)
	// ListMeta возвращает все картинки без поля Data.
	ListMeta(ctx context.Context) ([]model.Image, error)
	Delete(ctx context.Context, ids ...string) (int64, error)
	DeleteAll(ctx context.Context) error
}

type imageRepo struct {
	db *gorm.DB
}

var _ ImageRepository = (*imageRepo)(nil)

// NewImageRepository создаёт реализацию репозитория для Image.
func NewImageRepository(db *gorm.DB) ImageRepository {
	return &imageRepo{db: db}
}

func (r *imageRepo) Upsert(ctx context.Context, img *model.Image) error {
	return upsert(ctx, r.db, img)
}

func (r *imageRepo) GetByID(ctx context.Context, id string) (*model.Image, error) {
	var img model.Image
	found, err := first(ctx, r.db, &img, "id = ?", id)
	if err != nil || !found {
		return nil, err
	}
	return &img, nil
}

func (r *imageRepo) GetMany(ctx context.Context, ids []string) ([]model.Image, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var res []model.Image
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("id").Find(&res).Error
	return res, err
}

func (r *imageRepo) ListMeta(ctx context.Context) ([]model.Image, error) {
	var res []model.Image
	err := r.db.WithContext(ctx).
		Select("id", "checksum", "size", "created_at").
		Order("id").
		Find(&res).Error
	return res, err
}

func (r *imageRepo) Delete(ctx context.Context, ids ...string) (int64, error) {
	return deleteByIDs(ctx, r.db, &model.Image{}, ids)
}

func (r *imageRepo) DeleteAll(ctx context.Context) error {
	return deleteAll(ctx, r.db, &model.Image{})
}
