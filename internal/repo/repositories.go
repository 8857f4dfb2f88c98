package repo

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repositories собирает репозитории всех коллекций поверх одного *gorm.DB.
// Внутри транзакции создаётся заново на tx, чтобы каскады шли одним коммитом.
type Repositories struct {
	Items    ItemRepository
	Images   ImageRepository
	Trash    TrashRepository
	Weekly   WeeklyRepository
	Outfits  OutfitRepository
	Sections SectionRepository
	Shopping ShoppingRepository
}

// NewRepositories создаёт набор репозиториев.
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Items:    NewItemRepository(db),
		Images:   NewImageRepository(db),
		Trash:    NewTrashRepository(db),
		Weekly:   NewWeeklyRepository(db),
		Outfits:  NewOutfitRepository(db),
		Sections: NewSectionRepository(db),
		Shopping: NewShoppingRepository(db),
	}
}

// ClearAll удаляет все записи всех коллекций.
func (r *Repositories) ClearAll(ctx context.Context) error {
	for _, c := range []interface{ DeleteAll(context.Context) error }{
		r.Items, r.Trash, r.Weekly, r.Outfits, r.Sections, r.Shopping, r.Images,
	} {
		if err := c.DeleteAll(ctx); err != nil {
			return err
		}
	}
	return nil
}

// upsert вставляет запись или перезаписывает все поля существующей (кроме created_at).
func upsert(ctx context.Context, db *gorm.DB, v any) error {
	return db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(v).Error
}

// first читает одну запись по условию; промах даёт found=false без ошибки.
func first(ctx context.Context, db *gorm.DB, dst any, query string, args ...any) (bool, error) {
	tx := db.WithContext(ctx).Where(query, args...).Limit(1).Find(dst)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

// deleteAll удаляет все строки таблицы модели.
func deleteAll(ctx context.Context, db *gorm.DB, m any) error {
	return db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(m).Error
}

// deleteByIDs удаляет строки по списку id и возвращает число удалённых.
func deleteByIDs(ctx context.Context, db *gorm.DB, m any, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	tx := db.WithContext(ctx).Where("id IN ?", ids).Delete(m)
	return tx.RowsAffected, tx.Error
}

// pluckStrings собирает непустые значения колонки.
func pluckStrings(ctx context.Context, db *gorm.DB, m any, column string) ([]string, error) {
	var out []string
	err := db.WithContext(ctx).Model(m).Where(column+" <> ''").Distinct().Pluck(column, &out).Error
	return out, err
}
