package commands

import (
	"context"
	"fmt"
	"strings"

	"Wardrobe/internal/cli/bootstrap"
	"Wardrobe/internal/config"
	"Wardrobe/internal/model"
)

type sectionsCmd struct{}

func (sectionsCmd) Name() string        { return "sections" }
func (sectionsCmd) Description() string { return "Показать пользовательские разделы" }
func (sectionsCmd) Usage() string       { return "sections" }

func (sectionsCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	return withApp(ctx, cfg, func(app *bootstrap.App) error {
		list, err := app.Store.GetAllCustomSections(ctx)
		if err != nil {
			return err
		}
		if len(list) == 0 {
			fmt.Fprintln(Out, "Нет разделов")
			return nil
		}
		for _, s := range list {
			fmt.Fprintf(Out, "- %s  %s  (category %s)\n", s.ID, s.Name, s.Category())
		}
		return nil
	})
}

type sectionAddCmd struct{}

func (sectionAddCmd) Name() string        { return "section-add" }
func (sectionAddCmd) Description() string { return "Создать раздел" }
func (sectionAddCmd) Usage() string       { return "section-add <name>" }

func (sectionAddCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	name := strings.TrimSpace(strings.Join(args, " "))
	if name == "" {
		return ErrUsage
	}
	return withApp(ctx, cfg, func(app *bootstrap.App) error {
		sec := &model.CustomSection{Name: name}
		if _, err := app.Store.SaveCustomSection(ctx, sec); err != nil {
			return err
		}
		fmt.Fprintf(Out, "Created section %s: %s (category %s)\n", sec.ID, sec.Name, sec.Category())
		return nil
	})
}

type sectionDelCmd struct{}

func (sectionDelCmd) Name() string { return "section-del" }
func (sectionDelCmd) Description() string {
	return "Удалить раздел; его вещи уходят в корзину"
}
func (sectionDelCmd) Usage() string { return "section-del <id>" }

func (sectionDelCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	return withApp(ctx, cfg, func(app *bootstrap.App) error {
		moved, err := app.Store.DeleteCustomSection(ctx, args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(Out, "Deleted section %s; %d item(s) moved to trash\n", args[0], moved)
		return nil
	})
}

func init() {
	RegisterCmd(sectionsCmd{})
	RegisterCmd(sectionAddCmd{})
	RegisterCmd(sectionDelCmd{})
}
