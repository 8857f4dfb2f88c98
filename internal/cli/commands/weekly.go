package commands

import (
	"context"
	"fmt"
	"strings"

	"Wardrobe/internal/cli/bootstrap"
	"Wardrobe/internal/config"
	"Wardrobe/internal/model"
)

type weekCmd struct{}

func (weekCmd) Name() string { return "week" }
func (weekCmd) Description() string {
	return "Показать план на неделю или на один день; --type/--notes меняют описание дня"
}
func (weekCmd) Usage() string { return "week [--type <label>] [--notes <text>] [day]" }

func (weekCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	flags := newFlagSet("week")
	typ := flags.String("type", "", "тип дня (work, gym, ...)")
	notes := flags.String("notes", "", "заметки к дню")
	rest, err := parseFlags(flags, args, 0, 1)
	if err != nil {
		return err
	}
	edit := isSet(flags, "type") || isSet(flags, "notes")
	if edit && len(rest) == 0 {
		return ErrUsage
	}

	return withApp(ctx, cfg, func(app *bootstrap.App) error {
		if len(rest) == 0 {
			plan, err := app.Store.GetWeeklyPlan(ctx)
			if err != nil {
				return err
			}
			byDay := make(map[model.Weekday]model.WeeklyDayPlan, len(plan))
			for _, p := range plan {
				byDay[p.Day] = p
			}
			for _, d := range model.Weekdays {
				p, ok := byDay[d]
				if !ok {
					p = model.WeeklyDayPlan{Day: d}
				}
				printDay(ctx, app, p)
			}
			return nil
		}

		day, err := model.ParseWeekday(rest[0])
		if err != nil {
			return err
		}
		p, err := app.Store.GetWeeklyDay(ctx, day)
		if err != nil {
			return err
		}
		if p == nil {
			p = &model.WeeklyDayPlan{Day: day}
		}
		if edit {
			if isSet(flags, "type") {
				p.Type = *typ
			}
			if isSet(flags, "notes") {
				p.Notes = *notes
			}
			if err := app.Store.SaveWeeklyDay(ctx, p); err != nil {
				return err
			}
		}
		printDay(ctx, app, *p)
		return nil
	})
}

// printDay печатает день, раскрывая id в категории; удалённые вещи пропускаются.
func printDay(ctx context.Context, app *bootstrap.App, p model.WeeklyDayPlan) {
	header := string(p.Day)
	if p.Type != "" {
		header += " [" + p.Type + "]"
	}
	fmt.Fprintln(Out, header)
	items, err := app.Wardrobe.ResolveItems(ctx, p.Items)
	if err != nil {
		fmt.Fprintf(Out, "  ! %v\n", err)
		return
	}
	for _, it := range items {
		fmt.Fprintf(Out, "  - %s  %s\n", it.ID, it.Category)
	}
	if p.Notes != "" {
		fmt.Fprintf(Out, "  notes: %s\n", strings.TrimSpace(p.Notes))
	}
}

type weekAddCmd struct{}

func (weekAddCmd) Name() string        { return "week-add" }
func (weekAddCmd) Description() string { return "Добавить вещь в день недели" }
func (weekAddCmd) Usage() string       { return "week-add <day> <item-id>" }

func (weekAddCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 2 {
		return ErrUsage
	}
	day, err := model.ParseWeekday(args[0])
	if err != nil {
		return err
	}
	return withApp(ctx, cfg, func(app *bootstrap.App) error {
		p, err := app.Wardrobe.AddToWeeklyOutfit(ctx, day, args[1])
		if err != nil {
			return err
		}
		fmt.Fprintf(Out, "%s: %d item(s)\n", p.Day, len(p.Items))
		return nil
	})
}

type weekRemoveCmd struct{}

func (weekRemoveCmd) Name() string { return "week-remove" }
func (weekRemoveCmd) Description() string {
	return "Убрать вещь из дня недели; без item-id очищает день"
}
func (weekRemoveCmd) Usage() string { return "week-remove <day> [item-id]" }

func (weekRemoveCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return ErrUsage
	}
	day, err := model.ParseWeekday(args[0])
	if err != nil {
		return err
	}
	return withApp(ctx, cfg, func(app *bootstrap.App) error {
		var p *model.WeeklyDayPlan
		if len(args) == 2 {
			p, err = app.Store.RemoveFromWeeklyDay(ctx, day, args[1])
		} else {
			p, err = app.Store.ClearWeeklyDay(ctx, day)
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(Out, "%s: %d item(s)\n", p.Day, len(p.Items))
		return nil
	})
}

func init() {
	RegisterCmd(weekCmd{})
	RegisterCmd(weekAddCmd{})
	RegisterCmd(weekRemoveCmd{})
}
