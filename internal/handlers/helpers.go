package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"Wardrobe/internal/model"
	"Wardrobe/internal/store"
	"Wardrobe/internal/weather"

	"go.uber.org/zap"
)

// errorBody: тело ответа об ошибке
type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// writeError переводит ошибки хранилища и сервисов в HTTP-статусы.
// Сбой погодного API отдаётся как 502, прочие неожиданные ошибки логируются и отдаются как 500 без подробностей.
func writeError(w http.ResponseWriter, logger *zap.SugaredLogger, op string, err error) {
	var fe *store.FormatError
	var ne *weather.NetworkError
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorBody{Error: err.Error()})
	case errors.As(err, &fe),
		errors.Is(err, store.ErrInvalid),
		errors.Is(err, model.ErrInvalidCategory),
		errors.Is(err, weather.ErrNoLocation):
		logger.Warnw(op+": rejected", "error", err)
		writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
	case errors.As(err, &ne):
		logger.Warnw(op+": upstream failed", "error", err)
		writeJSON(w, http.StatusBadGateway, errorBody{Error: "weather service unavailable"})
	default:
		logger.Errorw(op+": internal error", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "internal error"})
	}
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, errorBody{Error: msg})
}

// orEmpty не даёт отдать null вместо пустого списка
func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
