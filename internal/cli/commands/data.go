package commands

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"Wardrobe/internal/cli/bootstrap"
	"Wardrobe/internal/config"
	"Wardrobe/internal/repo/fs"
	"Wardrobe/internal/store"
)

type exportCmd struct{}

func (exportCmd) Name() string { return "export" }
func (exportCmd) Description() string {
	return "Выгрузить все данные: в каталог бэкапов, в файл или в stdout (--out -)"
}
func (exportCmd) Usage() string { return "export [--out <file>|-] [--keep <n>]" }

func (exportCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	flags := newFlagSet("export")
	out := flags.String("out", "", "файл назначения")
	keep := flags.Int("keep", 0, "сколько последних бэкапов оставить")
	if _, err := parseFlags(flags, args, 0, 0); err != nil {
		return err
	}
	if *keep < 0 {
		return ErrUsage
	}

	return withApp(ctx, cfg, func(app *bootstrap.App) error {
		doc, err := app.Store.ExportAllData(ctx)
		if err != nil {
			return err
		}
		var buf bytes.Buffer
		if err := doc.Encode(&buf); err != nil {
			return err
		}

		switch *out {
		case "-":
			_, err := Out.Write(buf.Bytes())
			return err
		case "":
			path, err := app.Backups.Save(fs.BackupName(doc.ExportDate.Time), buf.Bytes())
			if err != nil {
				return fmt.Errorf("save backup: %w", err)
			}
			fmt.Fprintf(Out, "Exported %d item(s), %d image(s) to %s\n", len(doc.Items), len(doc.Images), path)
			if *keep > 0 {
				n, err := app.Backups.Prune(*keep)
				if err != nil {
					return fmt.Errorf("prune backups: %w", err)
				}
				if n > 0 {
					fmt.Fprintf(Out, "Removed %d old backup(s)\n", n)
				}
			}
		default:
			if err := os.WriteFile(*out, buf.Bytes(), 0o600); err != nil {
				return err
			}
			fmt.Fprintf(Out, "Exported %d item(s), %d image(s) to %s\n", len(doc.Items), len(doc.Images), *out)
		}
		return nil
	})
}

type importCmd struct{}

func (importCmd) Name() string { return "import" }
func (importCmd) Description() string {
	return "Заменить все данные документом из файла или бэкапа (нужен --yes)"
}
func (importCmd) Usage() string { return "import --yes <file|backup-name>" }

func (importCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	flags := newFlagSet("import")
	yes := flags.Bool("yes", false, "подтвердить замену данных")
	rest, err := parseFlags(flags, args, 1, 1)
	if err != nil {
		return err
	}
	if !*yes {
		return ErrUsage
	}
	src := rest[0]

	return withApp(ctx, cfg, func(app *bootstrap.App) error {
		data, err := os.ReadFile(src)
		if errors.Is(err, os.ErrNotExist) {
			data, err = app.Backups.Load(src)
		}
		if err != nil {
			return fmt.Errorf("read %s: %w", src, err)
		}
		doc, err := store.DecodeDocument(bytes.NewReader(data))
		if err != nil {
			return err
		}
		sum, err := app.Store.ImportAllData(ctx, doc)
		if err != nil {
			return err
		}
		fmt.Fprintf(Out, "Imported: %d item(s), %d in trash, %d image(s), %d day(s), %d outfit(s), %d section(s), %d shopping item(s)\n",
			sum.Items, sum.Trash, sum.Images, sum.Days, sum.Outfits, sum.Sections, sum.Shopping)
		return nil
	})
}

type backupsCmd struct{}

func (backupsCmd) Name() string        { return "backups" }
func (backupsCmd) Description() string { return "Показать сохранённые бэкапы" }
func (backupsCmd) Usage() string       { return "backups" }

func (backupsCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	return withApp(ctx, cfg, func(app *bootstrap.App) error {
		list, err := app.Backups.List()
		if err != nil {
			return err
		}
		if len(list) == 0 {
			fmt.Fprintf(Out, "Нет бэкапов в %s\n", app.Backups.Dir())
			return nil
		}
		for _, b := range list {
			fmt.Fprintf(Out, "- %s  %d bytes  %s\n", b.Name, b.Size, b.ModTime.Local().Format(time.DateTime))
		}
		return nil
	})
}

// errInconsistent возвращается check, если найдены проблемы: процесс завершается с кодом 1.
var errInconsistent = errors.New("consistency problems found")

type checkCmd struct{}

func (checkCmd) Name() string        { return "check" }
func (checkCmd) Description() string { return "Проверить целостность ссылок между коллекциями" }
func (checkCmd) Usage() string       { return "check" }

func (checkCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	return withApp(ctx, cfg, func(app *bootstrap.App) error {
		rep, err := app.Store.CheckConsistency(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(Out, "items: %d  trash: %d  images: %d\n", rep.Items, rep.Trash, rep.Images)
		if rep.OK() {
			fmt.Fprintln(Out, "OK")
			return nil
		}
		for _, p := range rep.Problems {
			fmt.Fprintf(Out, "- %-20s %s  %s\n", p.Kind, p.Ref, p.Detail)
		}
		return fmt.Errorf("%w: %d", errInconsistent, len(rep.Problems))
	})
}

func init() {
	RegisterCmd(exportCmd{})
	RegisterCmd(importCmd{})
	RegisterCmd(backupsCmd{})
	RegisterCmd(checkCmd{})
}
