package repo

import (
	"context"
	"sort"

	"Wardrobe/internal/model"

	"gorm.io/gorm"
)

// WeeklyRepository хранит план на неделю, по одной записи на день.
type WeeklyRepository interface {
	Upsert(ctx context.Context, p *model.WeeklyDayPlan) error
	Get(ctx context.Context, day model.Weekday) (*model.WeeklyDayPlan, error)
	// List возвращает сохранённые дни в календарном порядке.
	List(ctx context.Context) ([]model.WeeklyDayPlan, error)
	Delete(ctx context.Context, day model.Weekday) error
	DeleteAll(ctx context.Context) error
}

type weeklyRepo struct {
	db *gorm.DB
}

var _ WeeklyRepository = (*weeklyRepo)(nil)

// NewWeeklyRepository создаёт реализацию репозитория плана недели.
func NewWeeklyRepository(db *gorm.DB) WeeklyRepository {
	return &weeklyRepo{db: db}
}

func (r *weeklyRepo) Upsert(ctx context.Context, p *model.WeeklyDayPlan) error {
	if p.Items == nil {
		p.Items = []string{}
	}
	return upsert(ctx, r.db, p)
}

func (r *weeklyRepo) Get(ctx context.Context, day model.Weekday) (*model.WeeklyDayPlan, error) {
	var p model.WeeklyDayPlan
	found, err := first(ctx, r.db, &p, "day = ?", string(day))
	if err != nil || !found {
		return nil, err
	}
	return &p, nil
}

func (r *weeklyRepo) List(ctx context.Context) ([]model.WeeklyDayPlan, error) {
	var res []model.WeeklyDayPlan
	if err := r.db.WithContext(ctx).Find(&res).Error; err != nil {
		return nil, err
	}
	sort.SliceStable(res, func(i, j int) bool {
		return res[i].Day.Index() < res[j].Day.Index()
	})
	return res, nil
}

func (r *weeklyRepo) Delete(ctx context.Context, day model.Weekday) error {
	return r.db.WithContext(ctx).Where("day = ?", string(day)).Delete(&model.WeeklyDayPlan{}).Error
}

func (r *weeklyRepo) DeleteAll(ctx context.Context) error {
	return deleteAll(ctx, r.db, &model.WeeklyDayPlan{})
}
