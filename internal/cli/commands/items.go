package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"Wardrobe/internal/cli/bootstrap"
	"Wardrobe/internal/config"
	"Wardrobe/internal/model"
	"Wardrobe/internal/store"
)

type itemsCmd struct{}

func (itemsCmd) Name() string { return "items" }
func (itemsCmd) Description() string {
	return "Показать вещи (фильтры: категория, избранное, стирка)"
}
func (itemsCmd) Usage() string { return "items [--fav] [--laundry] [category]" }

func (itemsCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	flags := newFlagSet("items")
	fav := flags.Bool("fav", false, "только избранное")
	laundry := flags.Bool("laundry", false, "только в стирке")
	rest, err := parseFlags(flags, args, 0, 1)
	if err != nil {
		return err
	}

	var f store.ItemFilter
	if len(rest) == 1 {
		cat, err := model.ParseCategory(rest[0])
		if err != nil {
			return err
		}
		f.Category = &cat
	}
	if *fav {
		f.Favorite = fav
	}
	if *laundry {
		f.Laundry = laundry
	}

	return withApp(ctx, cfg, func(app *bootstrap.App) error {
		list, err := app.Store.ListItems(ctx, f)
		if err != nil {
			return err
		}
		if len(list) == 0 {
			fmt.Fprintln(Out, "Нет вещей")
			return nil
		}
		for _, it := range list {
			printItem(Out, it)
		}
		fmt.Fprintf(Out, "Всего: %d\n", len(list))
		return nil
	})
}

type itemAddCmd struct{}

func (itemAddCmd) Name() string { return "item-add" }
func (itemAddCmd) Description() string {
	return "Добавить вещь из файла с фото"
}
func (itemAddCmd) Usage() string { return "item-add <category> <image-file>" }

func (itemAddCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 2 {
		return ErrUsage
	}
	cat, err := model.ParseCategory(args[0])
	if err != nil {
		return err
	}
	data, err := os.ReadFile(args[1])
	if err != nil {
		return fmt.Errorf("read image: %w", err)
	}
	if cfg.ImageMaxMB > 0 && int64(len(data)) > cfg.ImageMaxBytes() {
		return fmt.Errorf("image is larger than %d MB", cfg.ImageMaxMB)
	}

	return withApp(ctx, cfg, func(app *bootstrap.App) error {
		it, err := app.Wardrobe.Upload(ctx, cat, data)
		if err != nil {
			return err
		}
		fmt.Fprintln(Out, "Created:")
		fmt.Fprintf(Out, "  id:       %s\n", it.ID)
		fmt.Fprintf(Out, "  category: %s\n", it.Category)
		fmt.Fprintf(Out, "  image:    %s (%d bytes)\n", it.ImageID, len(data))
		return nil
	})
}

type itemGetCmd struct{}

func (itemGetCmd) Name() string { return "item-get" }
func (itemGetCmd) Description() string {
	return "Показать вещь по id; --image сохраняет фото в файл"
}
func (itemGetCmd) Usage() string { return "item-get [--image <file>] <id>" }

func (itemGetCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	flags := newFlagSet("item-get")
	imageOut := flags.String("image", "", "куда сохранить фото")
	rest, err := parseFlags(flags, args, 1, 1)
	if err != nil {
		return err
	}
	id := rest[0]

	return withApp(ctx, cfg, func(app *bootstrap.App) error {
		it, err := app.Store.GetItem(ctx, id)
		if err != nil {
			return err
		}
		if it == nil {
			return fmt.Errorf("item %q: %w", id, store.ErrNotFound)
		}
		fmt.Fprintf(Out, "id:        %s\n", it.ID)
		fmt.Fprintf(Out, "category:  %s\n", it.Category)
		fmt.Fprintf(Out, "favorite:  %t\n", it.Favorite)
		fmt.Fprintf(Out, "laundry:   %t\n", it.Laundry)
		fmt.Fprintf(Out, "added:     %s\n", it.DateAdded.Local().Format(time.DateTime))
		fmt.Fprintf(Out, "image:     %s\n", it.ImageID)

		if *imageOut == "" {
			return nil
		}
		img, err := app.Store.GetImage(ctx, it.ImageID)
		if err != nil {
			return err
		}
		if img == nil {
			return fmt.Errorf("image %q is missing; run check", it.ImageID)
		}
		if err := os.WriteFile(*imageOut, img.Data, 0o600); err != nil {
			return fmt.Errorf("write image: %w", err)
		}
		fmt.Fprintf(Out, "saved:     %s\n", *imageOut)
		return nil
	})
}

// toggleCmd переключает избранное или стирку
type toggleCmd struct {
	name, desc string
	toggle     func(ctx context.Context, app *bootstrap.App, id string) (*model.Item, error)
}

func (c toggleCmd) Name() string        { return c.name }
func (c toggleCmd) Description() string { return c.desc }
func (c toggleCmd) Usage() string       { return c.name + " <id>" }

func (c toggleCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	return withApp(ctx, cfg, func(app *bootstrap.App) error {
		it, err := c.toggle(ctx, app, args[0])
		if err != nil {
			return err
		}
		printItem(Out, *it)
		return nil
	})
}

type moveCmd struct{}

func (moveCmd) Name() string        { return "move" }
func (moveCmd) Description() string { return "Перенести вещь в другую категорию" }
func (moveCmd) Usage() string       { return "move <id> <category>" }

func (moveCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 2 {
		return ErrUsage
	}
	cat, err := model.ParseCategory(args[1])
	if err != nil {
		return err
	}
	return withApp(ctx, cfg, func(app *bootstrap.App) error {
		it, err := app.Wardrobe.Move(ctx, args[0], cat)
		if err != nil {
			return err
		}
		printItem(Out, *it)
		return nil
	})
}

type deleteCmd struct{}

func (deleteCmd) Name() string        { return "delete" }
func (deleteCmd) Description() string { return "Переместить вещь в корзину" }
func (deleteCmd) Usage() string       { return "delete <id>" }

func (deleteCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	return withApp(ctx, cfg, func(app *bootstrap.App) error {
		e, err := app.Wardrobe.Delete(ctx, args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(Out, "Moved to trash: %s (restore with: restore %s)\n", e.ID, e.ID)
		return nil
	})
}

func init() {
	RegisterCmd(itemsCmd{})
	RegisterCmd(itemAddCmd{})
	RegisterCmd(itemGetCmd{})
	RegisterCmd(toggleCmd{
		name: "fav",
		desc: "Переключить «избранное»",
		toggle: func(ctx context.Context, app *bootstrap.App, id string) (*model.Item, error) {
			return app.Wardrobe.ToggleFavorite(ctx, id)
		},
	})
	RegisterCmd(toggleCmd{
		name: "laundry",
		desc: "Переключить «в стирке»",
		toggle: func(ctx context.Context, app *bootstrap.App, id string) (*model.Item, error) {
			return app.Wardrobe.ToggleLaundry(ctx, id)
		},
	})
	RegisterCmd(moveCmd{})
	RegisterCmd(deleteCmd{})
}
