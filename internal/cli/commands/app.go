package commands

import (
	"context"
	"fmt"
	"io"
	"time"

	"Wardrobe/internal/cli/bootstrap"
	"Wardrobe/internal/config"
	"Wardrobe/internal/model"
)

// withApp открывает хранилище на время выполнения fn.
func withApp(ctx context.Context, cfg *config.Config, fn func(app *bootstrap.App) error) error {
	app, done, err := bootstrap.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer done()
	return fn(app)
}

func printItem(w io.Writer, it model.Item) {
	flags := ""
	if it.Favorite {
		flags += "  ★"
	}
	if it.Laundry {
		flags += "  (laundry)"
	}
	fmt.Fprintf(w, "- %s  category=%s  added=%s%s\n", it.ID, it.Category, it.DateAdded.Local().Format(time.DateOnly), flags)
}

func printTrashEntry(w io.Writer, e model.TrashEntry) {
	deleted := ""
	if e.DeletedDate != nil {
		deleted = e.DeletedDate.Local().Format(time.DateTime)
	}
	fmt.Fprintf(w, "- %s  from=%s  deleted=%s\n", e.ID, e.RestoreCategory(), deleted)
}
