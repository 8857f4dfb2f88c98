package weather

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"Wardrobe/internal/metrics"
	"Wardrobe/internal/model"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// CacheTTL is how long a cached forecast is served without refetching.
const CacheTTL = 30 * time.Minute

// ErrNoLocation is returned when no location has been chosen yet.
var ErrNoLocation = errors.New("location is not set")

// Settings is the settings access the weather service needs.
type Settings interface {
	RawSetting(key string) (json.RawMessage, error)
	SetSetting(key string, value any) error
}

// Fetcher is the outbound side, implemented by *Client.
type Fetcher interface {
	Forecast(ctx context.Context, lat, lon float64, unit string) (*Forecast, error)
	ReverseGeocode(ctx context.Context, lat, lon float64) (string, error)
}

var _ Fetcher = (*Client)(nil)

// Result is a forecast together with where it came from.
type Result struct {
	Forecast  *Forecast      `json:"forecast"`
	Location  model.Location `json:"location"`
	FetchedAt time.Time      `json:"fetchedAt"`
	// Cached is true when no network call was made.
	Cached bool `json:"cached"`
	// Stale is true when the fetch failed and an expired cache was served.
	Stale bool `json:"stale"`
}

// Service serves forecasts through the settings-backed cache.
type Service struct {
	settings Settings
	fetcher  Fetcher
	log      *zap.SugaredLogger
	now      func() time.Time
}

func NewService(settings Settings, fetcher Fetcher, log *zap.SugaredLogger) *Service {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Service{settings: settings, fetcher: fetcher, log: log, now: time.Now}
}

// Current returns the forecast for the stored location. A cache younger than CacheTTL for
// the same coordinates and unit is served unless force is set. When the fetch fails and a
// cache for the same coordinates exists, it is returned as stale and the failure is only logged.
func (s *Service) Current(ctx context.Context, force bool) (*Result, error) {
	loc, ok, err := s.location()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNoLocation
	}
	unit, err := s.unit()
	if err != nil {
		return nil, err
	}

	cached, cachedAt := s.cached()
	if cached != nil && !cached.covers(loc) {
		cached = nil
	}
	if cached != nil && !force && cached.Unit == unit && s.now().Sub(cachedAt) < CacheTTL {
		metrics.WeatherFetches.WithLabelValues("cached").Inc()
		return &Result{Forecast: cached, Location: loc, FetchedAt: cachedAt, Cached: true}, nil
	}

	f, err := s.fetcher.Forecast(ctx, loc.Lat, loc.Lon, unit)
	if err != nil {
		if cached != nil {
			metrics.WeatherFetches.WithLabelValues("stale").Inc()
			s.log.Warnw("forecast fetch failed, serving stale cache", "error", err, "cachedAt", cachedAt)
			return &Result{Forecast: cached, Location: loc, FetchedAt: cachedAt, Cached: true, Stale: true}, nil
		}
		metrics.WeatherFetches.WithLabelValues("failed").Inc()
		return nil, err
	}
	metrics.WeatherFetches.WithLabelValues("fresh").Inc()

	now := s.now()
	if err := s.store(f, loc, now); err != nil {
		return nil, err
	}
	return &Result{Forecast: f, Location: loc, FetchedAt: now}, nil
}

// Locate stores lat/lon as the current location. The place name lookup and a forecast
// warm-up run concurrently; a failed lookup yields DefaultPlaceName.
func (s *Service) Locate(ctx context.Context, lat, lon float64) (model.Location, error) {
	unit, err := s.unit()
	if err != nil {
		return model.Location{}, err
	}

	loc := model.Location{Lat: lat, Lon: lon, Name: DefaultPlaceName}
	var forecast *Forecast

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		name, err := s.fetcher.ReverseGeocode(gctx, lat, lon)
		if err != nil {
			s.log.Warnw("reverse geocode failed", "error", err)
			return nil
		}
		loc.Name = name
		return nil
	})
	g.Go(func() error {
		f, err := s.fetcher.Forecast(gctx, lat, lon, unit)
		if err != nil {
			metrics.WeatherFetches.WithLabelValues("failed").Inc()
			s.log.Warnw("forecast warm-up failed", "error", err)
			return nil
		}
		metrics.WeatherFetches.WithLabelValues("fresh").Inc()
		forecast = f
		return nil
	})
	if err := g.Wait(); err != nil {
		return model.Location{}, err
	}

	if err := s.settings.SetSetting(model.SettingLocation, loc); err != nil {
		return model.Location{}, err
	}
	if forecast != nil {
		if err := s.store(forecast, loc, s.now()); err != nil {
			return model.Location{}, err
		}
	}
	return loc, nil
}

func (s *Service) location() (model.Location, bool, error) {
	raw, err := s.settings.RawSetting(model.SettingLocation)
	if err != nil || raw == nil {
		return model.Location{}, false, err
	}
	var loc *model.Location
	if err := json.Unmarshal(raw, &loc); err != nil || loc == nil {
		s.log.Debugw("location setting not decodable", "error", err)
		return model.Location{}, false, nil
	}
	return *loc, true, nil
}

func (s *Service) unit() (string, error) {
	raw, err := s.settings.RawSetting(model.SettingTempUnit)
	if err != nil {
		return "", err
	}
	var unit string
	if raw == nil || json.Unmarshal(raw, &unit) != nil || unit != model.Celsius {
		return model.Fahrenheit, nil
	}
	return unit, nil
}

// cached returns the stored forecast, or nil when there is none or it cannot be decoded.
func (s *Service) cached() (*Forecast, time.Time) {
	raw, err := s.settings.RawSetting(model.SettingWeatherCache)
	if err != nil || raw == nil {
		return nil, time.Time{}
	}
	var wc model.WeatherCache
	if err := json.Unmarshal(raw, &wc); err != nil || len(wc.Data) == 0 {
		return nil, time.Time{}
	}
	var f Forecast
	if err := json.Unmarshal(wc.Data, &f); err != nil {
		return nil, time.Time{}
	}
	return &f, time.UnixMilli(wc.Timestamp)
}

// store caches f stamped with the coordinates it was fetched for.
func (s *Service) store(f *Forecast, loc model.Location, at time.Time) error {
	f.Lat, f.Lon = loc.Lat, loc.Lon
	data, err := json.Marshal(f)
	if err != nil {
		return err
	}
	return s.settings.SetSetting(model.SettingWeatherCache, model.WeatherCache{Data: data, Timestamp: at.UnixMilli()})
}
