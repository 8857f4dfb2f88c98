package commands

import (
	"context"
	"fmt"

	"Wardrobe/internal/cli/bootstrap"
	"Wardrobe/internal/config"
	"Wardrobe/internal/model"
)

type trashCmd struct{}

func (trashCmd) Name() string        { return "trash" }
func (trashCmd) Description() string { return "Показать корзину" }
func (trashCmd) Usage() string       { return "trash" }

func (trashCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	return withApp(ctx, cfg, func(app *bootstrap.App) error {
		list, err := app.Store.GetAllTrash(ctx)
		if err != nil {
			return err
		}
		if len(list) == 0 {
			fmt.Fprintln(Out, "Корзина пуста")
			return nil
		}
		for _, e := range list {
			printTrashEntry(Out, e)
		}
		fmt.Fprintf(Out, "Всего: %d\n", len(list))
		return nil
	})
}

type restoreCmd struct{}

func (restoreCmd) Name() string { return "restore" }
func (restoreCmd) Description() string {
	return "Вернуть вещь из корзины (в исходную или указанную категорию)"
}
func (restoreCmd) Usage() string { return "restore <id> [category]" }

func (restoreCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return ErrUsage
	}
	var target *model.Category
	if len(args) == 2 {
		cat, err := model.ParseCategory(args[1])
		if err != nil {
			return err
		}
		target = &cat
	}
	return withApp(ctx, cfg, func(app *bootstrap.App) error {
		it, err := app.Wardrobe.Restore(ctx, args[0], target)
		if err != nil {
			return err
		}
		fmt.Fprint(Out, "Restored: ")
		printItem(Out, *it)
		return nil
	})
}

type purgeCmd struct{}

func (purgeCmd) Name() string        { return "purge" }
func (purgeCmd) Description() string { return "Удалить запись корзины навсегда" }
func (purgeCmd) Usage() string       { return "purge <id>" }

func (purgeCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	return withApp(ctx, cfg, func(app *bootstrap.App) error {
		if err := app.Wardrobe.Purge(ctx, args[0]); err != nil {
			return err
		}
		fmt.Fprintf(Out, "Purged: %s\n", args[0])
		return nil
	})
}

type emptyTrashCmd struct{}

func (emptyTrashCmd) Name() string        { return "empty-trash" }
func (emptyTrashCmd) Description() string { return "Очистить корзину (нужен --yes)" }
func (emptyTrashCmd) Usage() string       { return "empty-trash --yes" }

func (emptyTrashCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	flags := newFlagSet("empty-trash")
	yes := flags.Bool("yes", false, "подтвердить удаление")
	if _, err := parseFlags(flags, args, 0, 0); err != nil {
		return err
	}
	if !*yes {
		return ErrUsage
	}
	return withApp(ctx, cfg, func(app *bootstrap.App) error {
		n, err := app.Wardrobe.EmptyTrash(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(Out, "Purged: %d\n", n)
		return nil
	})
}

func init() {
	RegisterCmd(trashCmd{})
	RegisterCmd(restoreCmd{})
	RegisterCmd(purgeCmd{})
	RegisterCmd(emptyTrashCmd{})
}
