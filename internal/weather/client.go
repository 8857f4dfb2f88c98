package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"Wardrobe/internal/model"
)

const (
	DefaultForecastURL = "https://api.open-meteo.com/v1/forecast"
	DefaultGeocodeURL  = "https://nominatim.openstreetmap.org/reverse"

	// DefaultPlaceName is used when reverse geocoding fails.
	DefaultPlaceName = "Current location"

	userAgent = "wardrobe/1.0"
)

// NetworkError is a failed outbound lookup.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string { return fmt.Sprintf("weather: %s: %v", e.Op, e.Err) }
func (e *NetworkError) Unwrap() error { return e.Err }

// Current conditions.
type Current struct {
	Time                string  `json:"time"`
	Temperature         float64 `json:"temperature"`
	ApparentTemperature float64 `json:"apparentTemperature"`
	Precipitation       float64 `json:"precipitation"`
	Humidity            float64 `json:"humidity"`
	WindSpeed           float64 `json:"windSpeed"`
	WeatherCode         int     `json:"weatherCode"`
}

// Day is one row of the daily forecast.
type Day struct {
	Date                     string  `json:"date"`
	TempMax                  float64 `json:"tempMax"`
	TempMin                  float64 `json:"tempMin"`
	PrecipitationProbability float64 `json:"precipitationProbability"`
	WeatherCode              int     `json:"weatherCode"`
}

// Forecast is the normalized payload kept in the weather cache.
type Forecast struct {
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Unit    string  `json:"unit"`
	Current Current `json:"current"`
	Daily   []Day   `json:"daily"`
}

// covers reports whether the forecast was fetched for the location.
func (f *Forecast) covers(loc model.Location) bool {
	return f.Lat == loc.Lat && f.Lon == loc.Lon
}

// Client talks to the forecast and reverse geocoding APIs.
type Client struct {
	http        *http.Client
	forecastURL string
	geocodeURL  string
}

// NewClient builds a client. Empty URLs fall back to the public endpoints; timeout bounds every call.
func NewClient(forecastURL, geocodeURL string, timeout time.Duration) *Client {
	if forecastURL == "" {
		forecastURL = DefaultForecastURL
	}
	if geocodeURL == "" {
		geocodeURL = DefaultGeocodeURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		http:        &http.Client{Timeout: timeout},
		forecastURL: forecastURL,
		geocodeURL:  geocodeURL,
	}
}

type openMeteoResponse struct {
	Current struct {
		Time                string  `json:"time"`
		Temperature         float64 `json:"temperature_2m"`
		ApparentTemperature float64 `json:"apparent_temperature"`
		Precipitation       float64 `json:"precipitation"`
		Humidity            float64 `json:"relative_humidity_2m"`
		WindSpeed           float64 `json:"wind_speed_10m"`
		WeatherCode         int     `json:"weather_code"`
	} `json:"current"`
	Daily struct {
		Time                     []string  `json:"time"`
		TempMax                  []float64 `json:"temperature_2m_max"`
		TempMin                  []float64 `json:"temperature_2m_min"`
		PrecipitationProbability []float64 `json:"precipitation_probability_max"`
		WeatherCode              []int     `json:"weather_code"`
	} `json:"daily"`
}

// Forecast fetches current conditions and a 7-day forecast. unit is fahrenheit or celsius.
func (c *Client) Forecast(ctx context.Context, lat, lon float64, unit string) (*Forecast, error) {
	if unit != model.Celsius {
		unit = model.Fahrenheit
	}
	q := url.Values{}
	q.Set("latitude", formatCoord(lat))
	q.Set("longitude", formatCoord(lon))
	q.Set("current", "temperature_2m,apparent_temperature,precipitation,relative_humidity_2m,wind_speed_10m,weather_code")
	q.Set("daily", "temperature_2m_max,temperature_2m_min,precipitation_probability_max,weather_code")
	q.Set("temperature_unit", unit)
	q.Set("timezone", "auto")
	q.Set("forecast_days", "7")

	var resp openMeteoResponse
	if err := c.getJSON(ctx, c.forecastURL+"?"+q.Encode(), &resp); err != nil {
		return nil, &NetworkError{Op: "forecast", Err: err}
	}

	f := &Forecast{
		Lat:  lat,
		Lon:  lon,
		Unit: unit,
		Current: Current{
			Time:                resp.Current.Time,
			Temperature:         resp.Current.Temperature,
			ApparentTemperature: resp.Current.ApparentTemperature,
			Precipitation:       resp.Current.Precipitation,
			Humidity:            resp.Current.Humidity,
			WindSpeed:           resp.Current.WindSpeed,
			WeatherCode:         resp.Current.WeatherCode,
		},
		Daily: make([]Day, 0, len(resp.Daily.Time)),
	}
	d := resp.Daily
	for i, date := range d.Time {
		f.Daily = append(f.Daily, Day{
			Date:                     date,
			TempMax:                  at(d.TempMax, i),
			TempMin:                  at(d.TempMin, i),
			PrecipitationProbability: at(d.PrecipitationProbability, i),
			WeatherCode:              at(d.WeatherCode, i),
		})
	}
	return f, nil
}

type geocodeResponse struct {
	Name    string `json:"name"`
	Address struct {
		City    string `json:"city"`
		Town    string `json:"town"`
		Village string `json:"village"`
		County  string `json:"county"`
		State   string `json:"state"`
	} `json:"address"`
}

// ReverseGeocode returns a place name for the coordinates.
func (c *Client) ReverseGeocode(ctx context.Context, lat, lon float64) (string, error) {
	q := url.Values{}
	q.Set("format", "jsonv2")
	q.Set("lat", formatCoord(lat))
	q.Set("lon", formatCoord(lon))
	q.Set("zoom", "10")

	var resp geocodeResponse
	if err := c.getJSON(ctx, c.geocodeURL+"?"+q.Encode(), &resp); err != nil {
		return "", &NetworkError{Op: "reverse geocode", Err: err}
	}
	a := resp.Address
	for _, name := range []string{a.City, a.Town, a.Village, resp.Name, a.County, a.State} {
		if name = strings.TrimSpace(name); name != "" {
			return name, nil
		}
	}
	return "", &NetworkError{Op: "reverse geocode", Err: fmt.Errorf("no place name in response")}
}

func (c *Client) getJSON(ctx context.Context, u string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}
	return json.NewDecoder(resp.Body).Decode(dst)
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}

// at tolerates daily arrays shorter than the time axis.
func at[T int | float64](s []T, i int) T {
	var zero T
	if i < len(s) {
		return s[i]
	}
	return zero
}
