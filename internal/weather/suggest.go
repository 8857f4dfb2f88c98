package weather

import (
	"sort"

	"Wardrobe/internal/model"
)

// outerwearBelowF is the temperature under which outerwear is recommended (10°C).
const outerwearBelowF = 50.0

// Suggestion is a weather-driven outfit proposal.
type Suggestion struct {
	Label       string        `json:"label"`
	Temperature float64       `json:"temperature"`
	Unit        string        `json:"unit"`
	Categories  []model.Fixed `json:"categories"`
	Notes       []string      `json:"notes"`
	Picks       []model.Item  `json:"picks"`
}

// Suggest picks one item per recommended category for the current conditions.
// Items in the laundry are skipped; favorites win, then the most recently added.
func Suggest(f *Forecast, items []model.Item) Suggestion {
	tempF := f.Current.ApparentTemperature
	if tempF == 0 {
		tempF = f.Current.Temperature
	}
	if f.Unit == model.Celsius {
		tempF = tempF*9/5 + 32
	}

	s := Suggestion{
		Temperature: f.Current.Temperature,
		Unit:        f.Unit,
		Notes:       []string{},
		Picks:       []model.Item{},
	}
	switch {
	case tempF < 32:
		s.Label = "Freezing"
	case tempF < outerwearBelowF:
		s.Label = "Cold"
	case tempF < 65:
		s.Label = "Cool"
	case tempF < 80:
		s.Label = "Warm"
	default:
		s.Label = "Hot"
	}

	if tempF < outerwearBelowF {
		s.Categories = []model.Fixed{model.Outerwear, model.Tops, model.Bottoms}
	} else {
		s.Categories = []model.Fixed{model.Tops, model.Bottoms}
	}
	if tempF < 32 {
		s.Notes = append(s.Notes, "Layer up: it is below freezing.")
	}
	if tempF >= 80 {
		s.Notes = append(s.Notes, "Choose light, breathable fabrics.")
	}
	if rainy(f) {
		s.Notes = append(s.Notes, "Rain expected: bring a waterproof layer or umbrella.")
	}

	for _, cat := range s.Categories {
		if it, ok := pick(items, cat); ok {
			s.Picks = append(s.Picks, it)
		}
	}
	return s
}

// rainy reports precipitation now or a likely wet day today.
func rainy(f *Forecast) bool {
	if f.Current.Precipitation > 0 || isRainCode(f.Current.WeatherCode) {
		return true
	}
	if len(f.Daily) > 0 {
		today := f.Daily[0]
		return today.PrecipitationProbability >= 50 || isRainCode(today.WeatherCode)
	}
	return false
}

// isRainCode matches WMO drizzle, rain, showers and thunderstorm codes.
func isRainCode(code int) bool {
	return (code >= 51 && code <= 67) || (code >= 80 && code <= 82) || code >= 95
}

func pick(items []model.Item, cat model.Fixed) (model.Item, bool) {
	var candidates []model.Item
	for _, it := range items {
		if f, ok := it.Category.Fixed(); ok && f == cat && !it.Laundry && !it.Deleted {
			candidates = append(candidates, it)
		}
	}
	if len(candidates) == 0 {
		return model.Item{}, false
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Favorite != candidates[j].Favorite {
			return candidates[i].Favorite
		}
		return candidates[i].DateAdded.After(candidates[j].DateAdded)
	})
	return candidates[0], true
}
