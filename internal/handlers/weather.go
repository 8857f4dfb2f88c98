package handlers

import (
	"net/http"
	"strconv"

	"Wardrobe/internal/store"
	"Wardrobe/internal/weather"

	"go.uber.org/zap"
)

// WeatherHandler отдаёт прогноз и подсказки по одежде.
type WeatherHandler struct {
	Store   *store.Store
	Weather *weather.Service
	Logger  *zap.SugaredLogger
}

func NewWeatherHandler(st *store.Store, forecasts *weather.Service, logger *zap.SugaredLogger) *WeatherHandler {
	return &WeatherHandler{Store: st, Weather: forecasts, Logger: logger}
}

// Current отдаёт прогноз для сохранённой локации; ?force=true игнорирует кэш.
func (h *WeatherHandler) Current(w http.ResponseWriter, r *http.Request) {
	force, _ := strconv.ParseBool(r.URL.Query().Get("force"))
	res, err := h.Weather.Current(r.Context(), force)
	if err != nil {
		writeError(w, h.Logger, "WeatherCurrent", err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

type suggestResponse struct {
	weather.Suggestion
	Stale bool `json:"stale"`
}

// Suggest подбирает вещи под текущую погоду.
func (h *WeatherHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	res, err := h.Weather.Current(r.Context(), false)
	if err != nil {
		writeError(w, h.Logger, "WeatherCurrent", err)
		return
	}
	items, err := h.Store.ListItems(r.Context(), store.ItemFilter{})
	if err != nil {
		writeError(w, h.Logger, "ListItems", err)
		return
	}
	writeJSON(w, http.StatusOK, suggestResponse{Suggestion: weather.Suggest(res.Forecast, items), Stale: res.Stale})
}

type locateRequest struct {
	Lat *float64 `json:"lat"`
	Lon *float64 `json:"lon"`
}

// Locate сохраняет координаты пользователя и название места.
func (h *WeatherHandler) Locate(w http.ResponseWriter, r *http.Request) {
	var req locateRequest
	if err := decodeJSON(r, &req); err != nil || req.Lat == nil || req.Lon == nil {
		badRequest(w, "lat and lon are required")
		return
	}
	if *req.Lat < -90 || *req.Lat > 90 || *req.Lon < -180 || *req.Lon > 180 {
		badRequest(w, "coordinates out of range")
		return
	}
	loc, err := h.Weather.Locate(r.Context(), *req.Lat, *req.Lon)
	if err != nil {
		writeError(w, h.Logger, "Locate", err)
		return
	}
	writeJSON(w, http.StatusOK, loc)
}
