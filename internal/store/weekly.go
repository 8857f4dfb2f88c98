package store

import (
	"context"

	"Wardrobe/internal/model"
	"Wardrobe/internal/repo"
)

// SaveWeeklyDay upserts the plan for p.Day, collapsing duplicate item ids.
func (s *Store) SaveWeeklyDay(ctx context.Context, p *model.WeeklyDayPlan) error {
	if p == nil || p.Day.Index() < 0 {
		return invalidf("unknown weekday")
	}
	p.Dedup()
	return wrap("save weekly day", s.repos.Weekly.Upsert(ctx, p))
}

// GetWeeklyPlan returns the stored days in calendar order. Days never saved are absent.
func (s *Store) GetWeeklyPlan(ctx context.Context) ([]model.WeeklyDayPlan, error) {
	plans, err := s.repos.Weekly.List(ctx)
	return plans, wrap("get weekly plan", err)
}

// GetWeeklyDay returns one day's plan or nil.
func (s *Store) GetWeeklyDay(ctx context.Context, day model.Weekday) (*model.WeeklyDayPlan, error) {
	p, err := s.repos.Weekly.Get(ctx, day)
	return p, wrap("get weekly day", err)
}

// AddToWeeklyDay appends itemID to the day. Adding an id already present is a no-op.
func (s *Store) AddToWeeklyDay(ctx context.Context, day model.Weekday, itemID string) (*model.WeeklyDayPlan, error) {
	if itemID == "" {
		return nil, invalidf("item id is required")
	}
	return s.updateWeeklyDay(ctx, "add to weekly day", day, func(p *model.WeeklyDayPlan) {
		if !p.Contains(itemID) {
			p.Items = append(p.Items, itemID)
		}
	})
}

// RemoveFromWeeklyDay drops itemID from the day.
func (s *Store) RemoveFromWeeklyDay(ctx context.Context, day model.Weekday, itemID string) (*model.WeeklyDayPlan, error) {
	return s.updateWeeklyDay(ctx, "remove from weekly day", day, func(p *model.WeeklyDayPlan) {
		out := p.Items[:0]
		for _, id := range p.Items {
			if id != itemID {
				out = append(out, id)
			}
		}
		p.Items = out
	})
}

// ClearWeeklyDay empties the day's items, keeping its type and notes.
func (s *Store) ClearWeeklyDay(ctx context.Context, day model.Weekday) (*model.WeeklyDayPlan, error) {
	return s.updateWeeklyDay(ctx, "clear weekly day", day, func(p *model.WeeklyDayPlan) {
		p.Items = []string{}
	})
}

func (s *Store) updateWeeklyDay(ctx context.Context, op string, day model.Weekday, fn func(p *model.WeeklyDayPlan)) (*model.WeeklyDayPlan, error) {
	if day.Index() < 0 {
		return nil, invalidf("unknown weekday %q", day)
	}
	var plan *model.WeeklyDayPlan
	err := s.inTx(ctx, op, func(r *repo.Repositories) error {
		p, err := r.Weekly.Get(ctx, day)
		if err != nil {
			return err
		}
		if p == nil {
			p = &model.WeeklyDayPlan{Day: day, Items: []string{}}
		}
		fn(p)
		p.Dedup()
		plan = p
		return r.Weekly.Upsert(ctx, p)
	})
	if err != nil {
		return nil, err
	}
	return plan, nil
}
