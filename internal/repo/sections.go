package repo

import (
	"context"

	"Wardrobe/internal/model"

	"gorm.io/gorm"
)

// SectionRepository хранит пользовательские разделы.
type SectionRepository interface {
	Upsert(ctx context.Context, s *model.CustomSection) error
	GetByID(ctx context.Context, id string) (*model.CustomSection, error)
	// List возвращает разделы в порядке создания.
	List(ctx context.Context) ([]model.CustomSection, error)
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) error
}

type sectionRepo struct {
	db *gorm.DB
}

var _ SectionRepository = (*sectionRepo)(nil)

// NewSectionRepository создаёт реализацию репозитория разделов.
func NewSectionRepository(db *gorm.DB) SectionRepository {
	return &sectionRepo{db: db}
}

func (r *sectionRepo) Upsert(ctx context.Context, s *model.CustomSection) error {
	return upsert(ctx, r.db, s)
}

func (r *sectionRepo) GetByID(ctx context.Context, id string) (*model.CustomSection, error) {
	var s model.CustomSection
	found, err := first(ctx, r.db, &s, "id = ?", id)
	if err != nil || !found {
		return nil, err
	}
	return &s, nil
}

func (r *sectionRepo) List(ctx context.Context) ([]model.CustomSection, error) {
	var res []model.CustomSection
	err := r.db.WithContext(ctx).Order("created_at").Order("rowid").Find(&res).Error
	return res, err
}

func (r *sectionRepo) Delete(ctx context.Context, id string) error {
	_, err := deleteByIDs(ctx, r.db, &model.CustomSection{}, []string{id})
	return err
}

func (r *sectionRepo) DeleteAll(ctx context.Context) error {
	return deleteAll(ctx, r.db, &model.CustomSection{})
}
