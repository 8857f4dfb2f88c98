package commands

import (
	"context"
	"fmt"
	"time"

	"Wardrobe/internal/cli/bootstrap"
	"Wardrobe/internal/config"
)

type statusCmd struct{}

func (statusCmd) Name() string { return "status" }
func (statusCmd) Description() string {
	return "Сводка: пути, первый запуск, число вещей, последний бэкап; --migrated завершает онбординг"
}
func (statusCmd) Usage() string { return "status [--migrated]" }

func (statusCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	flags := newFlagSet("status")
	migrated := flags.Bool("migrated", false, "отметить первый запуск завершённым")
	if _, err := parseFlags(flags, args, 0, 0); err != nil {
		return err
	}

	return withApp(ctx, cfg, func(app *bootstrap.App) error {
		if *migrated {
			if err := app.Store.SetMigrated(); err != nil {
				return err
			}
		}
		first, err := app.Store.IsFirstRun()
		if err != nil {
			return err
		}
		counts, err := app.Wardrobe.Counts(ctx)
		if err != nil {
			return err
		}
		trash, err := app.Store.GetAllTrash(ctx)
		if err != nil {
			return err
		}

		fmt.Fprintf(Out, "database:  %s\n", cfg.DBPath)
		fmt.Fprintf(Out, "backups:   %s\n", app.Backups.Dir())
		fmt.Fprintf(Out, "first run: %t\n", first)
		fmt.Fprintf(Out, "items:     %d (favorites %d, laundry %d, trash %d)\n", counts.Total, counts.Favorites, counts.Laundry, len(trash))
		for _, c := range counts.Categories {
			fmt.Fprintf(Out, "  %-20s %d\n", c.Name, c.Count)
		}

		latest, ok, err := app.Backups.Latest()
		if err != nil {
			return err
		}
		if ok {
			fmt.Fprintf(Out, "last backup: %s (%s)\n", latest.Name, latest.ModTime.Local().Format(time.DateTime))
		} else {
			fmt.Fprintln(Out, "last backup: none")
		}
		return nil
	})
}

func init() { RegisterCmd(statusCmd{}) }
