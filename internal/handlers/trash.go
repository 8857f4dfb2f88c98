package handlers

import (
	"errors"
	"io"
	"net/http"

	"Wardrobe/internal/model"
	"Wardrobe/internal/service"
	"Wardrobe/internal/store"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// TrashHandler обслуживает корзину.
type TrashHandler struct {
	Store    *store.Store
	Wardrobe *service.WardrobeService
	Logger   *zap.SugaredLogger
}

func NewTrashHandler(st *store.Store, wardrobe *service.WardrobeService, logger *zap.SugaredLogger) *TrashHandler {
	return &TrashHandler{Store: st, Wardrobe: wardrobe, Logger: logger}
}

func (h *TrashHandler) List(w http.ResponseWriter, r *http.Request) {
	entries, err := h.Store.GetAllTrash(r.Context())
	if err != nil {
		writeError(w, h.Logger, "GetAllTrash", err)
		return
	}
	writeJSON(w, http.StatusOK, orEmpty(entries))
}

type restoreRequest struct {
	Category *model.Category `json:"category,omitempty"`
}

// Restore возвращает вещь из корзины. Тело необязательно: без category вещь
// возвращается в исходную категорию.
func (h *TrashHandler) Restore(w http.ResponseWriter, r *http.Request) {
	var req restoreRequest
	if err := decodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		badRequest(w, "invalid request")
		return
	}
	it, err := h.Wardrobe.Restore(r.Context(), chi.URLParam(r, "id"), req.Category)
	if err != nil {
		writeError(w, h.Logger, "Restore", err)
		return
	}
	writeJSON(w, http.StatusOK, it)
}

func (h *TrashHandler) Purge(w http.ResponseWriter, r *http.Request) {
	if err := h.Wardrobe.Purge(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, h.Logger, "Purge", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Empty очищает корзину целиком.
func (h *TrashHandler) Empty(w http.ResponseWriter, r *http.Request) {
	n, err := h.Wardrobe.EmptyTrash(r.Context())
	if err != nil {
		writeError(w, h.Logger, "EmptyTrash", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"purged": n})
}
