package commands

import (
	"context"
	"fmt"
	"os"
	"strings"

	"Wardrobe/internal/cli/bootstrap"
	"Wardrobe/internal/config"
	"Wardrobe/internal/model"
)

type shopCmd struct{}

func (shopCmd) Name() string        { return "shop" }
func (shopCmd) Description() string { return "Показать список покупок" }
func (shopCmd) Usage() string       { return "shop" }

func (shopCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	return withApp(ctx, cfg, func(app *bootstrap.App) error {
		list, err := app.Store.GetAllShoppingItems(ctx)
		if err != nil {
			return err
		}
		if len(list) == 0 {
			fmt.Fprintln(Out, "Список покупок пуст")
			return nil
		}
		for _, it := range list {
			line := fmt.Sprintf("- %s  %s", it.ID, it.Name)
			if it.Price != "" {
				line += "  " + it.Price
			}
			if it.Desc != "" {
				line += "  (" + it.Desc + ")"
			}
			fmt.Fprintln(Out, line)
		}
		return nil
	})
}

type shopAddCmd struct{}

func (shopAddCmd) Name() string        { return "shop-add" }
func (shopAddCmd) Description() string { return "Добавить позицию в список покупок" }
func (shopAddCmd) Usage() string {
	return "shop-add [--desc <text>] [--price <p>] [--image <file>] <name>"
}

func (shopAddCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	flags := newFlagSet("shop-add")
	desc := flags.String("desc", "", "описание")
	price := flags.String("price", "", "цена")
	image := flags.String("image", "", "файл с фото")
	rest, err := parseFlags(flags, args, 1, -1)
	if err != nil {
		return err
	}
	name := strings.TrimSpace(strings.Join(rest, " "))
	if name == "" {
		return ErrUsage
	}

	var data []byte
	if *image != "" {
		if data, err = os.ReadFile(*image); err != nil {
			return fmt.Errorf("read image: %w", err)
		}
	}

	return withApp(ctx, cfg, func(app *bootstrap.App) error {
		it := &model.ShoppingItem{Name: name, Desc: *desc, Price: *price}
		if len(data) > 0 {
			if it.ImageID, err = app.Store.SaveImage(ctx, "", data); err != nil {
				return err
			}
		}
		if _, err := app.Store.SaveShoppingItem(ctx, it); err != nil {
			if it.ImageID != "" {
				_ = app.Store.DeleteImage(ctx, it.ImageID)
			}
			return err
		}
		fmt.Fprintf(Out, "Added: %s  %s\n", it.ID, it.Name)
		return nil
	})
}

type shopDelCmd struct{}

func (shopDelCmd) Name() string        { return "shop-del" }
func (shopDelCmd) Description() string { return "Удалить позицию из списка покупок" }
func (shopDelCmd) Usage() string       { return "shop-del <id>" }

func (shopDelCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	return withApp(ctx, cfg, func(app *bootstrap.App) error {
		if err := app.Store.DeleteShoppingItem(ctx, args[0]); err != nil {
			return err
		}
		fmt.Fprintf(Out, "Deleted: %s\n", args[0])
		return nil
	})
}

func init() {
	RegisterCmd(shopCmd{})
	RegisterCmd(shopAddCmd{})
	RegisterCmd(shopDelCmd{})
}
