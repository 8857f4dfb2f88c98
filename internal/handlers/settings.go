package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"Wardrobe/internal/store"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// SettingsHandler отдаёт и меняет пользовательские настройки как сырой JSON.
type SettingsHandler struct {
	Store  *store.Store
	Logger *zap.SugaredLogger
}

func NewSettingsHandler(st *store.Store, logger *zap.SugaredLogger) *SettingsHandler {
	return &SettingsHandler{Store: st, Logger: logger}
}

// List отдаёт все заданные настройки объектом key → value.
func (h *SettingsHandler) List(w http.ResponseWriter, r *http.Request) {
	keys, err := h.Store.SettingKeys()
	if err != nil {
		writeError(w, h.Logger, "SettingKeys", err)
		return
	}
	out := make(map[string]json.RawMessage, len(keys))
	for _, k := range keys {
		raw, err := h.Store.RawSetting(k)
		if err != nil {
			writeError(w, h.Logger, "RawSetting", err)
			return
		}
		if raw != nil {
			out[k] = raw
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	raw, err := h.Store.RawSetting(key)
	if err != nil {
		writeError(w, h.Logger, "RawSetting", err)
		return
	}
	if raw == nil {
		writeJSON(w, http.StatusNotFound, errorBody{Error: "setting not set"})
		return
	}
	writeJSON(w, http.StatusOK, raw)
}

// Set сохраняет тело запроса (любое JSON-значение) под ключом.
func (h *SettingsHandler) Set(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil || !json.Valid(body) {
		badRequest(w, "body must be a JSON value")
		return
	}
	if err := h.Store.SetSetting(chi.URLParam(r, "key"), json.RawMessage(body)); err != nil {
		writeError(w, h.Logger, "SetSetting", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *SettingsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.DeleteSetting(chi.URLParam(r, "key")); err != nil {
		writeError(w, h.Logger, "DeleteSetting", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type statusResponse struct {
	FirstRun bool `json:"firstRun"`
}

// Status сообщает, пройден ли первый запуск.
func (h *SettingsHandler) Status(w http.ResponseWriter, r *http.Request) {
	first, err := h.Store.IsFirstRun()
	if err != nil {
		writeError(w, h.Logger, "IsFirstRun", err)
		return
	}
	writeJSON(w, http.StatusOK, statusResponse{FirstRun: first})
}

func (h *SettingsHandler) MarkMigrated(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.SetMigrated(); err != nil {
		writeError(w, h.Logger, "SetMigrated", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
