package commands

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"Wardrobe/internal/cli/bootstrap"
	"Wardrobe/internal/config"
	"Wardrobe/internal/model"
	"Wardrobe/internal/store"
	"Wardrobe/internal/weather"
)

type weatherCmd struct{}

func (weatherCmd) Name() string { return "weather" }
func (weatherCmd) Description() string {
	return "Погода и подсказки по одежде; --locate задаёт координаты"
}
func (weatherCmd) Usage() string { return "weather [--force] [--locate <lat>,<lon>]" }

func (weatherCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	flags := newFlagSet("weather")
	force := flags.Bool("force", false, "не использовать кэш")
	locate := flags.String("locate", "", "координаты lat,lon")
	if _, err := parseFlags(flags, args, 0, 0); err != nil {
		return err
	}
	var lat, lon float64
	if *locate != "" {
		var err error
		if lat, lon, err = parseLatLon(*locate); err != nil {
			return err
		}
	}

	return withApp(ctx, cfg, func(app *bootstrap.App) error {
		if *locate != "" {
			loc, err := app.Weather.Locate(ctx, lat, lon)
			if err != nil {
				return err
			}
			fmt.Fprintf(Out, "Location: %s (%.4f, %.4f)\n", loc.Name, loc.Lat, loc.Lon)
		}

		res, err := app.Weather.Current(ctx, *force)
		if err != nil {
			return err
		}
		printForecast(res)

		items, err := app.Store.ListItems(ctx, store.ItemFilter{})
		if err != nil {
			return err
		}
		sug := weather.Suggest(res.Forecast, items)
		fmt.Fprintf(Out, "Suggestion: %s\n", sug.Label)
		cats := make([]string, 0, len(sug.Categories))
		for _, c := range sug.Categories {
			cats = append(cats, string(c))
		}
		fmt.Fprintf(Out, "  wear: %s\n", strings.Join(cats, ", "))
		for _, n := range sug.Notes {
			fmt.Fprintf(Out, "  note: %s\n", n)
		}
		for _, it := range sug.Picks {
			fmt.Fprintf(Out, "  pick: %s  %s\n", it.ID, it.Category)
		}
		return nil
	})
}

func printForecast(res *weather.Result) {
	unit := "°F"
	if res.Forecast.Unit == model.Celsius {
		unit = "°C"
	}
	c := res.Forecast.Current
	fmt.Fprintf(Out, "%s: %.0f%s (feels like %.0f%s), humidity %.0f%%, wind %.0f\n",
		res.Location.Name, c.Temperature, unit, c.ApparentTemperature, unit, c.Humidity, c.WindSpeed)
	switch {
	case res.Stale:
		fmt.Fprintf(Out, "  (offline: showing forecast from %s)\n", res.FetchedAt.Local().Format(time.DateTime))
	case res.Cached:
		fmt.Fprintf(Out, "  (cached %s)\n", res.FetchedAt.Local().Format(time.TimeOnly))
	}
	for _, d := range res.Forecast.Daily {
		fmt.Fprintf(Out, "  %s  %.0f/%.0f%s  rain %.0f%%\n", d.Date, d.TempMax, d.TempMin, unit, d.PrecipitationProbability)
	}
}

func parseLatLon(s string) (float64, float64, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return 0, 0, ErrUsage
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil || lat < -90 || lat > 90 {
		return 0, 0, fmt.Errorf("invalid latitude %q", parts[0])
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil || lon < -180 || lon > 180 {
		return 0, 0, fmt.Errorf("invalid longitude %q", parts[1])
	}
	return lat, lon, nil
}

func init() { RegisterCmd(weatherCmd{}) }
