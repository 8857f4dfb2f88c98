package model

import "encoding/json"

// Setting keys.
const (
	SettingUserName     = "userName"
	SettingTheme        = "theme"
	SettingLocation     = "location"
	SettingTempUnit     = "tempUnit"
	SettingWeatherCache = "weatherCache"
	SettingMigrated     = "migrated"
	SettingMigratedAt   = "migratedAt"
)

const (
	ThemeLight = "light"
	ThemeDark  = "dark"

	Fahrenheit = "fahrenheit"
	Celsius    = "celsius"
)

// Location is the place used for weather lookups.
type Location struct {
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
	Name string  `json:"name"`
}

// WeatherCache keeps the last forecast payload. Timestamp is unix milliseconds.
type WeatherCache struct {
	Data      json.RawMessage `json:"data"`
	Timestamp int64           `json:"timestamp"`
}
