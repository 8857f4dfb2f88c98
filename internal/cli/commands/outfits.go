package commands

import (
	"context"
	"fmt"
	"strings"

	"Wardrobe/internal/cli/bootstrap"
	"Wardrobe/internal/config"
)

type outfitsCmd struct{}

func (outfitsCmd) Name() string        { return "outfits" }
func (outfitsCmd) Description() string { return "Показать сохранённые комплекты" }
func (outfitsCmd) Usage() string       { return "outfits" }

func (outfitsCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	return withApp(ctx, cfg, func(app *bootstrap.App) error {
		list, err := app.Store.GetAllSavedOutfits(ctx)
		if err != nil {
			return err
		}
		if len(list) == 0 {
			fmt.Fprintln(Out, "Нет комплектов")
			return nil
		}
		for _, o := range list {
			fmt.Fprintf(Out, "- %s  %s  items=%s", o.ID, o.Date, strings.Join(o.Items, ","))
			if o.Notes != "" {
				fmt.Fprintf(Out, "  notes=%q", o.Notes)
			}
			fmt.Fprintln(Out)
		}
		return nil
	})
}

type outfitSaveCmd struct{}

func (outfitSaveCmd) Name() string        { return "outfit-save" }
func (outfitSaveCmd) Description() string { return "Сохранить комплект из вещей" }
func (outfitSaveCmd) Usage() string       { return "outfit-save [--notes <text>] <item-id>..." }

func (outfitSaveCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	flags := newFlagSet("outfit-save")
	notes := flags.String("notes", "", "заметки")
	ids, err := parseFlags(flags, args, 1, -1)
	if err != nil {
		return err
	}
	return withApp(ctx, cfg, func(app *bootstrap.App) error {
		o, err := app.Wardrobe.SaveCurrentOutfit(ctx, ids, *notes)
		if err != nil {
			return err
		}
		fmt.Fprintf(Out, "Saved outfit %s (%d item(s), %s)\n", o.ID, len(o.Items), o.Date)
		return nil
	})
}

type outfitDelCmd struct{}

func (outfitDelCmd) Name() string        { return "outfit-del" }
func (outfitDelCmd) Description() string { return "Удалить сохранённый комплект" }
func (outfitDelCmd) Usage() string       { return "outfit-del <id>" }

func (outfitDelCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	return withApp(ctx, cfg, func(app *bootstrap.App) error {
		if err := app.Store.DeleteSavedOutfit(ctx, args[0]); err != nil {
			return err
		}
		fmt.Fprintf(Out, "Deleted: %s\n", args[0])
		return nil
	})
}

func init() {
	RegisterCmd(outfitsCmd{})
	RegisterCmd(outfitSaveCmd{})
	RegisterCmd(outfitDelCmd{})
}
