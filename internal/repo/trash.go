package repo

import (
	"context"

	"Wardrobe/internal/model"

	"gorm.io/gorm"
)

// TrashRepository хранит удалённые вещи до окончательной очистки.
type TrashRepository interface {
	Upsert(ctx context.Context, e *model.TrashEntry) error
	GetByID(ctx context.Context, id string) (*model.TrashEntry, error)
	// List возвращает записи корзины, недавно удалённые первыми.
	List(ctx context.Context) ([]model.TrashEntry, error)
	Delete(ctx context.Context, ids ...string) (int64, error)
	DeleteAll(ctx context.Context) error
}

type trashRepo struct {
	db *gorm.DB
}

var _ TrashRepository = (*trashRepo)(nil)

// NewTrashRepository создаёт реализацию репозитория корзины.
func NewTrashRepository(db *gorm.DB) TrashRepository {
	return &trashRepo{db: db}
}

func (r *trashRepo) Upsert(ctx context.Context, e *model.TrashEntry) error {
	e.Deleted = true
	return upsert(ctx, r.db, e)
}

func (r *trashRepo) GetByID(ctx context.Context, id string) (*model.TrashEntry, error) {
	var e model.TrashEntry
	found, err := first(ctx, r.db, &e, "id = ?", id)
	if err != nil || !found {
		return nil, err
	}
	return &e, nil
}

func (r *trashRepo) List(ctx context.Context) ([]model.TrashEntry, error) {
	var res []model.TrashEntry
	err := r.db.WithContext(ctx).Order("deleted_date DESC").Order("rowid DESC").Find(&res).Error
	return res, err
}

func (r *trashRepo) Delete(ctx context.Context, ids ...string) (int64, error) {
	return deleteByIDs(ctx, r.db, &model.TrashEntry{}, ids)
}

func (r *trashRepo) DeleteAll(ctx context.Context) error {
	return deleteAll(ctx, r.db, &model.TrashEntry{})
}
