package commands

import (
	"context"
	"encoding/json"
	"fmt"

	"Wardrobe/internal/cli/bootstrap"
	"Wardrobe/internal/config"
	"Wardrobe/internal/model"
)

type settingCmd struct{}

func (settingCmd) Name() string { return "setting" }
func (settingCmd) Description() string {
	return "Показать или изменить настройки (значение: JSON или строка)"
}
func (settingCmd) Usage() string { return "setting [--unset] [<key> [<value>]]" }

func (settingCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	flags := newFlagSet("setting")
	unset := flags.Bool("unset", false, "удалить ключ")
	rest, err := parseFlags(flags, args, 0, 2)
	if err != nil {
		return err
	}
	if *unset && len(rest) != 1 {
		return ErrUsage
	}
	var value any
	if len(rest) == 2 {
		if value, err = settingValue(rest[0], rest[1]); err != nil {
			return err
		}
	}

	return withApp(ctx, cfg, func(app *bootstrap.App) error {
		switch {
		case *unset:
			if err := app.Store.DeleteSetting(rest[0]); err != nil {
				return err
			}
			fmt.Fprintf(Out, "%s unset\n", rest[0])
			return nil
		case len(rest) == 2:
			if err := app.Store.SetSetting(rest[0], value); err != nil {
				return err
			}
		}

		keys := rest[:min(len(rest), 1)]
		if len(keys) == 0 {
			if keys, err = app.Store.SettingKeys(); err != nil {
				return err
			}
		}
		for _, k := range keys {
			raw, err := app.Store.RawSetting(k)
			if err != nil {
				return err
			}
			if raw == nil {
				fmt.Fprintf(Out, "%s: <unset>\n", k)
				continue
			}
			fmt.Fprintf(Out, "%s: %s\n", k, raw)
		}
		return nil
	})
}

// settingValue превращает аргумент в значение настройки. Известные ключи проверяются,
// для прочих корректный JSON сохраняется как есть, остальное как строка.
func settingValue(key, arg string) (any, error) {
	switch key {
	case model.SettingTheme:
		if arg != model.ThemeLight && arg != model.ThemeDark {
			return nil, fmt.Errorf("theme must be %q or %q", model.ThemeLight, model.ThemeDark)
		}
		return arg, nil
	case model.SettingTempUnit:
		if arg != model.Fahrenheit && arg != model.Celsius {
			return nil, fmt.Errorf("tempUnit must be %q or %q", model.Fahrenheit, model.Celsius)
		}
		return arg, nil
	case model.SettingUserName:
		return arg, nil
	case model.SettingLocation:
		var loc model.Location
		if err := json.Unmarshal([]byte(arg), &loc); err != nil {
			return nil, fmt.Errorf("location must be JSON {\"lat\":..,\"lon\":..,\"name\":..}: %w", err)
		}
		return loc, nil
	}
	if json.Valid([]byte(arg)) {
		return json.RawMessage(arg), nil
	}
	return arg, nil
}

func init() { RegisterCmd(settingCmd{}) }
